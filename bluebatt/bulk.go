package bluebatt

import (
	"context"
	"io"
	"sort"

	"github.com/godbus/dbus/v5"
	"github.com/sirupsen/logrus"
)

// Retriever produces the devices to report.
type Retriever interface {
	Devices(ctx context.Context) ([]Device, error)
}

// BulkRetriever lists every device BlueZ knows about with a single
// GetManagedObjects call. Objects that are not connected devices with a name,
// an icon and a battery level are skipped.
type BulkRetriever struct {
	bus    Bus
	logger *logrus.Logger
}

var _ Retriever = &BulkRetriever{}

func NewBulkRetriever(bus Bus, logger *logrus.Logger) *BulkRetriever {
	return &BulkRetriever{bus: bus, logger: orDiscard(logger)}
}

func (r *BulkRetriever) Devices(ctx context.Context) ([]Device, error) {
	objs, err := r.bus.ManagedObjects(ctx)
	if err != nil {
		return nil, err
	}
	return DecodeManagedObjects(objs, r.logger), nil
}

// DecodeManagedObjects extracts devices from a GetManagedObjects reply.
// The result is in object path order.
func DecodeManagedObjects(objs ManagedObjects, logger *logrus.Logger) []Device {
	logger = orDiscard(logger)

	paths := make([]dbus.ObjectPath, 0, len(objs))
	for p := range objs {
		paths = append(paths, p)
	}
	sort.Slice(paths, func(i, j int) bool { return paths[i] < paths[j] })

	var dl []Device
	for _, p := range paths {
		d, reason := decodeObject(objs[p])
		if reason != "" {
			logger.WithFields(logrus.Fields{"path": p, "reason": reason}).Debug("skipping object")
			continue
		}
		dl = append(dl, d)
	}
	return dl
}

// decodeObject returns a non-empty reason when the object does not describe
// a reportable device.
func decodeObject(ifaces map[string]map[string]dbus.Variant) (Device, string) {
	props, ok := ifaces[deviceInterface]
	if !ok {
		return Device{}, "not a device"
	}
	dev := Properties(props)

	connected := false
	if v, ok := dev.Get("Connected"); ok {
		connected, _ = v.BoolLike()
	}

	name, ok := text(dev, "Name")
	if !ok || name == "" {
		return Device{}, "no name"
	}
	icon, ok := text(dev, "Icon")
	if !ok {
		return Device{}, "no icon"
	}

	bat, ok := ifaces[batteryInterface]
	if !ok {
		return Device{}, "no battery"
	}
	v, ok := Properties(bat).Get("Percentage")
	if !ok {
		return Device{}, "no battery percentage"
	}
	power, ok := v.Uint()
	if !ok {
		return Device{}, "unreadable battery percentage"
	}

	if !connected {
		return Device{}, "not connected"
	}
	return Device{Name: name, Icon: ParseIcon(icon), Power: power}, ""
}

func text(p Properties, name string) (string, bool) {
	v, ok := p.Get(name)
	if !ok {
		return "", false
	}
	return v.Text()
}

func orDiscard(logger *logrus.Logger) *logrus.Logger {
	if logger != nil {
		return logger
	}
	logger = logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
