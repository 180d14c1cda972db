package bluebatt

import (
	"context"

	"github.com/godbus/dbus/v5"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// TargetedRetriever reads the devices at the given addresses one by one.
// Disconnected devices are skipped. Any other failure to read a property
// aborts the whole lookup.
type TargetedRetriever struct {
	bus     Bus
	addrs   []string
	adapter string
	logger  *logrus.Logger
}

var _ Retriever = &TargetedRetriever{}

func NewTargetedRetriever(bus Bus, addrs []string, opts *Options, logger *logrus.Logger) *TargetedRetriever {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &TargetedRetriever{
		bus:     bus,
		addrs:   addrs,
		adapter: opts.Adapter,
		logger:  orDiscard(logger),
	}
}

// Devices returns the connected devices in address order.
func (r *TargetedRetriever) Devices(ctx context.Context) ([]Device, error) {
	var dl []Device
	for _, addr := range r.addrs {
		path := DevicePath(r.adapter, addr)

		connected, err := r.readBool(ctx, path, deviceInterface, "Connected")
		if err != nil {
			return nil, err
		}
		if !connected {
			r.logger.WithFields(logrus.Fields{"address": addr, "path": path}).Debug("device not connected")
			continue
		}

		power, err := r.readByte(ctx, path, batteryInterface, "Percentage")
		if err != nil {
			return nil, err
		}
		name, err := r.readString(ctx, path, deviceInterface, "Name")
		if err != nil {
			return nil, err
		}
		if name == "" {
			return nil, errors.Wrapf(ErrPropertyMissing, "%s.Name on %s is empty", deviceInterface, path)
		}
		icon, err := r.readString(ctx, path, deviceInterface, "Icon")
		if err != nil {
			return nil, err
		}

		dl = append(dl, Device{Name: name, Icon: ParseIcon(icon), Power: uint64(power)})
	}
	return dl, nil
}

func (r *TargetedRetriever) read(ctx context.Context, path dbus.ObjectPath, iface, name string) (interface{}, error) {
	v, err := r.bus.Property(ctx, path, iface, name)
	if err != nil {
		return nil, err
	}
	if v.Value() == nil {
		return nil, errors.Wrapf(ErrPropertyMissing, "%s.%s on %s", iface, name, path)
	}
	return v.Value(), nil
}

func (r *TargetedRetriever) readBool(ctx context.Context, path dbus.ObjectPath, iface, name string) (bool, error) {
	v, err := r.read(ctx, path, iface, name)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, typeError(path, iface, name, "boolean", v)
	}
	return b, nil
}

func (r *TargetedRetriever) readByte(ctx context.Context, path dbus.ObjectPath, iface, name string) (byte, error) {
	v, err := r.read(ctx, path, iface, name)
	if err != nil {
		return 0, err
	}
	b, ok := v.(byte)
	if !ok {
		return 0, typeError(path, iface, name, "byte", v)
	}
	return b, nil
}

func (r *TargetedRetriever) readString(ctx context.Context, path dbus.ObjectPath, iface, name string) (string, error) {
	v, err := r.read(ctx, path, iface, name)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", typeError(path, iface, name, "string", v)
	}
	return s, nil
}

func typeError(path dbus.ObjectPath, iface, name, want string, got interface{}) error {
	return errors.Wrapf(ErrPropertyType, "%s.%s on %s: want %s, got %T", iface, name, path, want, got)
}
