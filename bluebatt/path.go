package bluebatt

import (
	"strings"

	"github.com/godbus/dbus/v5"
	"github.com/pkg/errors"
)

const adapterPrefix = "/org/bluez/"

var addrSeparators = strings.NewReplacer(":", "_")

// DevicePath converts an address to the device object path under the given
// adapter (e.g. AA:BB:CC:DD:EE:FF -> /org/bluez/hci0/dev_AA_BB_CC_DD_EE_FF).
func DevicePath(adapter, addr string) dbus.ObjectPath {
	s := addrSeparators.Replace(strings.ToUpper(addr))
	return dbus.ObjectPath(adapterPrefix + adapter + "/dev_" + s)
}

// ValidateAddress accepts non-empty strings made of hex digits and colons.
func ValidateAddress(addr string) error {
	if addr == "" {
		return errors.Wrap(ErrInvalidAddress, "empty address")
	}
	for _, c := range addr {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F', c == ':':
		default:
			return errors.Wrapf(ErrInvalidAddress, "%q", addr)
		}
	}
	return nil
}
