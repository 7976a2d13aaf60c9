package recommendation

import "strings"

const (
	// BreakMarker separates the lead-in from the bold payload in every template.
	BreakMarker = "{br}"
	// SizeSlot is replaced with Message.SizeName.
	SizeSlot = "{size}"
)

// Form selects how the break marker is rendered.
type Form int

const (
	TwoLines Form = iota
	OneLine
)

// Localizer returns the text for a key, or the key itself when no text is known.
type Localizer interface {
	Lookup(key string) string
}

// Render fills the template of msg with the localized text.
func Render(msg Message, loc Localizer, form Form) string {
	text := string(msg.Template)
	if loc != nil {
		text = loc.Lookup(string(msg.Template))
	}

	text = strings.ReplaceAll(text, SizeSlot, msg.SizeName)

	switch form {
	case OneLine:
		text = strings.ReplaceAll(text, BreakMarker, " ")
	default:
		text = strings.ReplaceAll(text, BreakMarker, "\n")
	}

	return text
}
