package bluebatt

import "github.com/godbus/dbus/v5"

// Value is a loosely typed BlueZ property. Its accessors report whether the
// underlying value can be read as the requested kind instead of failing.
type Value struct {
	v dbus.Variant
}

// NewValue wraps a variant.
func NewValue(v dbus.Variant) Value {
	return Value{v: v}
}

func (p Value) raw() interface{} {
	v := p.v.Value()
	for {
		inner, ok := v.(dbus.Variant)
		if !ok {
			return v
		}
		v = inner.Value()
	}
}

// Uint reads any non-negative integer or boolean as an unsigned integer.
func (p Value) Uint() (uint64, bool) {
	switch v := p.raw().(type) {
	case bool:
		if v {
			return 1, true
		}
		return 0, true
	case byte:
		return uint64(v), true
	case uint16:
		return uint64(v), true
	case uint32:
		return uint64(v), true
	case uint64:
		return v, true
	case int16:
		return nonNegative(int64(v))
	case int32:
		return nonNegative(int64(v))
	case int64:
		return nonNegative(v)
	}
	return 0, false
}

func nonNegative(v int64) (uint64, bool) {
	if v < 0 {
		return 0, false
	}
	return uint64(v), true
}

// Text reads strings and object paths.
func (p Value) Text() (string, bool) {
	switch v := p.raw().(type) {
	case string:
		return v, true
	case dbus.ObjectPath:
		return string(v), true
	}
	return "", false
}

// BoolLike is true for any non-zero integer-like value, negative ones
// included.
func (p Value) BoolLike() (bool, bool) {
	switch v := p.raw().(type) {
	case bool:
		return v, true
	case byte:
		return v != 0, true
	case uint16:
		return v != 0, true
	case uint32:
		return v != 0, true
	case uint64:
		return v != 0, true
	case int16:
		return v != 0, true
	case int32:
		return v != 0, true
	case int64:
		return v != 0, true
	}
	return false, false
}

// Properties is the property bag of one interface.
type Properties map[string]dbus.Variant

// Get looks up a property. The second result is false if it is absent.
func (p Properties) Get(name string) (Value, bool) {
	v, ok := p[name]
	if !ok {
		return Value{}, false
	}
	return NewValue(v), true
}
