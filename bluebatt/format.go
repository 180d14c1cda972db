package bluebatt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Mode selects how much of a device is shown. The zero value is Narrow.
type Mode int

const (
	// Narrow shows the glyph and battery level.
	Narrow Mode = iota
	// Long shows the glyph, name and battery level.
	Long
	// Short shows the name and battery level.
	Short
)

func (m Mode) String() string {
	switch m {
	case Narrow:
		return "narrow"
	case Long:
		return "long"
	case Short:
		return "short"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

func (m Mode) separator() string {
	if m == Short {
		return "  "
	}
	return " "
}

var markupEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// Formatter renders devices. Markup only affects the glyph, so it has no
// effect in Short mode.
type Formatter struct {
	Mode   Mode
	Markup bool
}

// Device renders a single device.
func (f Formatter) Device(d Device) string {
	switch f.Mode {
	case Long:
		name := d.Name
		if f.Markup {
			name = markupEscaper.Replace(name)
		}
		return fmt.Sprintf("%s%s (%d%%)", d.Icon.Glyph(f.Markup), name, d.Power)
	case Short:
		return fmt.Sprintf("%s %d%%", d.Name, d.Power)
	default:
		return fmt.Sprintf("%s%d%%", d.Icon.Glyph(f.Markup), d.Power)
	}
}

// Render sorts the devices and joins them on one line terminated by a
// newline. No devices render as an empty string.
func (f Formatter) Render(dl []Device) string {
	var sb strings.Builder
	for i, d := range Sort(dl) {
		if i > 0 {
			sb.WriteString(f.Mode.separator())
		}
		sb.WriteString(f.Device(d))
	}
	if sb.Len() > 0 {
		sb.WriteByte('\n')
	}
	return sb.String()
}

const (
	waybarClass        = "bluebatt"
	waybarDisconnected = "Disconnected"
)

type waybarOutput struct {
	Text    string `json:"text"`
	Tooltip string `json:"tooltip"`
	Class   string `json:"class"`
}

// Waybar renders the devices as one JSON line for Waybar's custom module.
// The tooltip lists every device in plain Long mode, one per line.
func (f Formatter) Waybar(dl []Device) (string, error) {
	out := waybarOutput{
		Text:    strings.TrimSuffix(f.Render(dl), "\n"),
		Tooltip: waybarDisconnected,
		Class:   waybarClass,
	}
	if out.Text == "" {
		out.Text = waybarDisconnected
	} else {
		tip := Formatter{Mode: Long}
		lines := make([]string, 0, len(dl))
		for _, d := range Sort(dl) {
			lines = append(lines, tip.Device(d))
		}
		out.Tooltip = strings.Join(lines, "\n")
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		return "", err
	}
	return buf.String(), nil
}
