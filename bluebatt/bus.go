package bluebatt

import (
	"context"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/pkg/errors"
)

const (
	bluezDest        = "org.bluez"
	bluezRoot        = dbus.ObjectPath("/")
	deviceInterface  = "org.bluez.Device1"
	batteryInterface = "org.bluez.Battery1"

	getManagedObjects = "org.freedesktop.DBus.ObjectManager.GetManagedObjects"
	getProperty       = "org.freedesktop.DBus.Properties.Get"
)

// ManagedObjects is the reply of GetManagedObjects: object path to interface
// name to property bag.
type ManagedObjects map[dbus.ObjectPath]map[string]map[string]dbus.Variant

// Bus is the subset of the BlueZ D-Bus API this package needs.
type Bus interface {
	// ManagedObjects returns every object BlueZ exports.
	ManagedObjects(ctx context.Context) (ManagedObjects, error)
	// Property reads a single property of an object.
	Property(ctx context.Context, path dbus.ObjectPath, iface, name string) (dbus.Variant, error)
}

var _ Bus = &SystemBus{}

// SystemBus talks to bluetoothd on the system bus. Every call is bounded by
// the configured timeout.
type SystemBus struct {
	conn    *dbus.Conn
	timeout time.Duration
}

// ConnectSystemBus opens a private connection to the system bus.
func ConnectSystemBus(opts *Options) (*SystemBus, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return nil, errors.Wrap(ErrBusUnavailable, err.Error())
	}
	return &SystemBus{conn: conn, timeout: opts.Timeout}, nil
}

func (b *SystemBus) Close() error {
	return b.conn.Close()
}

func (b *SystemBus) ManagedObjects(ctx context.Context) (ManagedObjects, error) {
	ctx, cancel := b.withTimeout(ctx)
	defer cancel()

	var out ManagedObjects
	err := b.conn.Object(bluezDest, bluezRoot).CallWithContext(ctx, getManagedObjects, 0).Store(&out)
	if err != nil {
		return nil, wrapCallError(err, "failed to list objects of %s", bluezDest)
	}
	return out, nil
}

func (b *SystemBus) Property(ctx context.Context, path dbus.ObjectPath, iface, name string) (dbus.Variant, error) {
	ctx, cancel := b.withTimeout(ctx)
	defer cancel()

	var v dbus.Variant
	err := b.conn.Object(bluezDest, path).CallWithContext(ctx, getProperty, 0, iface, name).Store(&v)
	if err != nil {
		return dbus.Variant{}, wrapCallError(err, "failed to read %s.%s on %s", iface, name, path)
	}
	return v, nil
}

func (b *SystemBus) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if b.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, b.timeout)
}

// wrapCallError maps well-known D-Bus error names onto this package's
// sentinel errors. Anything else, including timeouts, is wrapped as is.
func wrapCallError(err error, format string, args ...interface{}) error {
	if name, ok := dbusErrorName(err); ok {
		switch name {
		case "org.freedesktop.DBus.Error.ServiceUnknown",
			"org.freedesktop.DBus.Error.NameHasNoOwner":
			return errors.Wrapf(ErrBusUnavailable, format+": %v", append(args, err)...)
		case "org.freedesktop.DBus.Error.UnknownObject",
			"org.freedesktop.DBus.Error.UnknownInterface",
			"org.freedesktop.DBus.Error.UnknownProperty",
			"org.freedesktop.DBus.Error.InvalidArgs":
			return errors.Wrapf(ErrPropertyMissing, format+": %v", append(args, err)...)
		}
	}
	return errors.Wrapf(err, format, args...)
}

func dbusErrorName(err error) (string, bool) {
	var e dbus.Error
	if errors.As(err, &e) {
		return e.Name, true
	}
	var pe *dbus.Error
	if errors.As(err, &pe) && pe != nil {
		return pe.Name, true
	}
	return "", false
}
