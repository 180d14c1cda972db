package bluebatt

import "fmt"

// Icon is a freedesktop device icon name as reported by BlueZ,
// e.g. "audio-headset".
type Icon string

// ParseIcon accepts any string.
func ParseIcon(s string) Icon {
	return Icon(s)
}

func (i Icon) String() string {
	return string(i)
}

const markupFont = "Material Symbols Rounded"

// https://specifications.freedesktop.org/icon-naming-spec/latest/#devices
// Each glyph carries its own trailing padding.
var emojiMap = map[Icon]string{
	"audio-headset":     "🎧 ",
	"phone":             "📱 ",
	"pda":               "📱 ",
	"input-keyboard":    "⌨️ ",
	"input-mouse":       "🖱️ ",
	"input-gaming":      "🎮 ",
	"input-tablet":      "🖍️ ",
	"multimedia-player": "📻 ",
	"printer":           "🖨️ ",
	"scanner":           "🖨️ ",
}

// Symbol names for the markup font. Printers, scanners and media players get
// their own symbols here.
var symbolMap = map[Icon]string{
	"audio-headset":     "headset_mic",
	"phone":             "smartphone",
	"pda":               "smartphone",
	"input-keyboard":    "keyboard",
	"input-mouse":       "mouse",
	"input-gaming":      "stadia_controller",
	"input-tablet":      "stylus",
	"multimedia-player": "music_note",
	"printer":           "print",
	"scanner":           "scanner",
}

// Emoji returns the plain glyph for the icon, or "" if the icon is unknown.
func (i Icon) Emoji() string {
	return emojiMap[i]
}

// Markup returns a Pango span rendering the icon's symbol, or "" if the icon
// is unknown.
func (i Icon) Markup() string {
	sym, ok := symbolMap[i]
	if !ok {
		return ""
	}
	return fmt.Sprintf("<span font_family=%q>%s</span> ", markupFont, sym)
}

// Glyph picks Markup or Emoji.
func (i Icon) Glyph(markup bool) string {
	if markup {
		return i.Markup()
	}
	return i.Emoji()
}
