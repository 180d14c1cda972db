package bluebatt

import (
	"context"
	"errors"
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type objectBuilder struct {
	ifaces map[string]map[string]dbus.Variant
}

func newDeviceObject(name, icon string, connected bool, percentage byte) *objectBuilder {
	return &objectBuilder{ifaces: map[string]map[string]dbus.Variant{
		deviceInterface: {
			"Name":      dbus.MakeVariant(name),
			"Icon":      dbus.MakeVariant(icon),
			"Connected": dbus.MakeVariant(connected),
			"Paired":    dbus.MakeVariant(true),
		},
		batteryInterface: {
			"Percentage": dbus.MakeVariant(percentage),
		},
	}}
}

func (b *objectBuilder) without(iface, prop string) *objectBuilder {
	if prop == "" {
		delete(b.ifaces, iface)
	} else {
		delete(b.ifaces[iface], prop)
	}
	return b
}

func (b *objectBuilder) with(iface, prop string, v interface{}) *objectBuilder {
	b.ifaces[iface][prop] = dbus.MakeVariant(v)
	return b
}

func (b *objectBuilder) build() map[string]map[string]dbus.Variant {
	return b.ifaces
}

func TestDecodeManagedObjects(t *testing.T) {
	objs := ManagedObjects{
		"/": {
			"org.freedesktop.DBus.ObjectManager": {},
		},
		"/org/bluez/hci0": {
			"org.bluez.Adapter1": {"Powered": dbus.MakeVariant(true)},
		},
		"/org/bluez/hci0/dev_01": newDeviceObject("Headset", "audio-headset", true, 42).build(),
		"/org/bluez/hci0/dev_02": newDeviceObject("Mouse", "input-mouse", true, 80).
			with(deviceInterface, "Connected", uint32(1)).build(),
		"/org/bluez/hci0/dev_03": newDeviceObject("Old Phone", "phone", false, 10).build(),
		"/org/bluez/hci0/dev_04": newDeviceObject("Speaker", "audio-card", true, 5).
			without(batteryInterface, "").build(),
		"/org/bluez/hci0/dev_05": newDeviceObject("Pen", "input-tablet", true, 5).
			without(batteryInterface, "Percentage").build(),
		"/org/bluez/hci0/dev_06": newDeviceObject("Nameless", "phone", true, 5).
			without(deviceInterface, "Name").build(),
		"/org/bluez/hci0/dev_07": newDeviceObject("Iconless", "phone", true, 5).
			without(deviceInterface, "Icon").build(),
		"/org/bluez/hci0/dev_08": newDeviceObject("Gamepad", "input-gaming", true, 5).
			without(deviceInterface, "Connected").build(),
		"/org/bluez/hci0/dev_09": newDeviceObject("Weird", "phone", true, 5).
			with(deviceInterface, "Name", uint32(7)).build(),
		"/org/bluez/hci0/dev_10": newDeviceObject("Blank", "phone", true, 5).
			with(deviceInterface, "Name", "").build(),
		"/org/bluez/hci0/dev_11": newDeviceObject("Gadget", "gadget", true, 66).build(),
		"/org/bluez/hci0/dev_12": newDeviceObject("Zero", "phone", true, 5).
			with(deviceInterface, "Connected", uint32(0)).build(),
		"/org/bluez/hci0/dev_13": newDeviceObject("Signed", "input-keyboard", true, 33).
			with(deviceInterface, "Connected", int32(-1)).build(),
	}

	devices := DecodeManagedObjects(objs, nil)

	assert.Equal(t, []Device{
		{Name: "Headset", Icon: "audio-headset", Power: 42},
		{Name: "Mouse", Icon: "input-mouse", Power: 80},
		{Name: "Gadget", Icon: "gadget", Power: 66},
		{Name: "Signed", Icon: "input-keyboard", Power: 33},
	}, devices)
}

func TestDecodeManagedObjects_Empty(t *testing.T) {
	assert.Empty(t, DecodeManagedObjects(nil, nil))
	assert.Empty(t, DecodeManagedObjects(ManagedObjects{}, nil))
}

func TestDecodeManagedObjects_DisconnectedNeverReported(t *testing.T) {
	for _, connected := range []interface{}{false, uint32(0), byte(0), int32(0)} {
		objs := ManagedObjects{
			"/org/bluez/hci0/dev_01": newDeviceObject("Headset", "audio-headset", true, 42).
				with(deviceInterface, "Connected", connected).build(),
		}
		assert.Empty(t, DecodeManagedObjects(objs, nil), "Connected=%v", connected)
	}
}

func TestBulkRetriever_Devices(t *testing.T) {
	bus := &mockBus{}
	bus.On("ManagedObjects", mock.Anything).Return(ManagedObjects{
		"/org/bluez/hci0/dev_01": newDeviceObject("Keyboard", "input-keyboard", true, 70).build(),
	}, nil).Once()

	devices, err := NewBulkRetriever(bus, nil).Devices(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []Device{{Name: "Keyboard", Icon: "input-keyboard", Power: 70}}, devices)
	bus.AssertExpectations(t)
}

func TestBulkRetriever_TransportError(t *testing.T) {
	busErr := errors.New("connection refused")
	bus := &mockBus{}
	bus.On("ManagedObjects", mock.Anything).Return(nil, busErr).Once()

	devices, err := NewBulkRetriever(bus, nil).Devices(context.Background())

	assert.ErrorIs(t, err, busErr)
	assert.Nil(t, devices)
	bus.AssertExpectations(t)
}
