package bluebatt

import (
	"context"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/mock"
)

type mockBus struct {
	mock.Mock
}

func (m *mockBus) ManagedObjects(ctx context.Context) (ManagedObjects, error) {
	args := m.Called(ctx)
	objs, _ := args.Get(0).(ManagedObjects)
	return objs, args.Error(1)
}

func (m *mockBus) Property(ctx context.Context, path dbus.ObjectPath, iface, name string) (dbus.Variant, error) {
	args := m.Called(ctx, path, iface, name)
	v, _ := args.Get(0).(dbus.Variant)
	return v, args.Error(1)
}
