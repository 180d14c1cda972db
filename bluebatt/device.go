package bluebatt

import (
	"sort"
	"strings"
)

// Device is a connected Bluetooth peripheral that reports a battery level.
type Device struct {
	Name  string
	Icon  Icon
	Power uint64
}

// Compare orders devices by name, then icon name, then power.
func (d Device) Compare(o Device) int {
	if c := strings.Compare(d.Name, o.Name); c != 0 {
		return c
	}
	if c := strings.Compare(string(d.Icon), string(o.Icon)); c != 0 {
		return c
	}
	switch {
	case d.Power < o.Power:
		return -1
	case d.Power > o.Power:
		return 1
	}
	return 0
}

func (d Device) Less(o Device) bool {
	return d.Compare(o) < 0
}

// Sort returns a sorted copy of dl.
func Sort(dl []Device) []Device {
	out := make([]Device, len(dl))
	copy(out, dl)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Less(out[j])
	})
	return out
}
