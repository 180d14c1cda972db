package bluebatt

import (
	"time"

	"github.com/mcuadros/go-defaults"
)

// Options configures how devices are looked up.
type Options struct {
	// Adapter is the controller targeted addresses are resolved under.
	Adapter string `default:"hci0"`
	// Timeout bounds every single bus call.
	Timeout time.Duration `default:"5s"`
}

// DefaultOptions returns options with every field set to its default.
func DefaultOptions() *Options {
	opts := &Options{}
	defaults.SetDefaults(opts)
	return opts
}
