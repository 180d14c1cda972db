package bluebatt

import "errors"

var (
	// ErrBusUnavailable is returned when the system bus cannot be reached
	ErrBusUnavailable = errors.New("system bus unavailable")

	// ErrPropertyMissing is returned when a targeted device lacks a required property
	ErrPropertyMissing = errors.New("property missing")

	// ErrPropertyType is returned when a targeted device property has an unexpected type
	ErrPropertyType = errors.New("unexpected property type")

	// ErrInvalidAddress is returned for device addresses that are not hex digits and colons
	ErrInvalidAddress = errors.New("invalid device address")
)
