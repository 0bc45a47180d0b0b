// Package components contains reusable TUI building blocks.
package components

import "strings"

const (
	// MaxChars is the capacity of a field buffer, in characters
	MaxChars = 20
	// MaskGlyph replaces every character of a sensitive field
	MaskGlyph = '*'
)

// FieldBuffer is a bounded string edited only at its end.
type FieldBuffer struct {
	Placeholder string
	runes       []rune
	Sensitive   bool
}

// NewFieldBuffer creates an empty buffer.
func NewFieldBuffer(placeholder string, sensitive bool) FieldBuffer {
	return FieldBuffer{
		Placeholder: placeholder,
		Sensitive:   sensitive,
		runes:       make([]rune, 0, MaxChars),
	}
}

// Append adds r at the end. It reports false and changes nothing when the
// buffer is full.
func (f *FieldBuffer) Append(r rune) bool {
	if len(f.runes) >= MaxChars {
		return false
	}

	f.runes = append(f.runes, r)

	return true
}

// Backspace removes the last character, if any.
func (f *FieldBuffer) Backspace() bool {
	if len(f.runes) == 0 {
		return false
	}

	f.runes = f.runes[:len(f.runes)-1]

	return true
}

// Reset discards the contents.
func (f *FieldBuffer) Reset() {
	f.runes = f.runes[:0]
}

// Len returns the number of characters held.
func (f *FieldBuffer) Len() int {
	return len(f.runes)
}

// Empty reports whether nothing has been typed.
func (f *FieldBuffer) Empty() bool {
	return len(f.runes) == 0
}

// Value returns the raw text.
func (f *FieldBuffer) Value() string {
	return string(f.runes)
}

// RenderText returns what the field shows: the mask for non-empty sensitive
// fields, the raw text otherwise, or the placeholder when empty.
func (f *FieldBuffer) RenderText() string {
	switch {
	case f.Empty():
		return f.Placeholder
	case f.Sensitive:
		return strings.Repeat(string(MaskGlyph), len(f.runes))
	default:
		return string(f.runes)
	}
}
