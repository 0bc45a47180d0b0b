package components

import (
	tea "github.com/charmbracelet/bubbletea"
)

// FieldWidth is the inner width of a rendered text field: the buffer
// capacity, one cell of cursor and the horizontal padding.
const FieldWidth = MaxChars + 3

// TextField is a FieldBuffer with focus and a boxed rendering
type TextField struct {
	buffer  FieldBuffer
	focused bool
}

// NewTextField creates a new TextField
func NewTextField(placeholder string, sensitive bool) TextField {
	return TextField{
		buffer: NewFieldBuffer(placeholder, sensitive),
	}
}

// Focus marks the field as the one receiving input
func (t *TextField) Focus() {
	t.focused = true
}

// Blur removes focus from the field
func (t *TextField) Blur() {
	t.focused = false
}

// IsFocused returns whether the field is focused
func (t *TextField) IsFocused() bool {
	return t.focused
}

// Value returns the current field value
func (t *TextField) Value() string {
	return t.buffer.Value()
}

// Buffer exposes the underlying buffer for inspection.
func (t *TextField) Buffer() *FieldBuffer {
	return &t.buffer
}

// Reset clears the typed text
func (t *TextField) Reset() {
	t.buffer.Reset()
}

// Update applies character and backspace keys while focused. Characters
// beyond the capacity are dropped one by one, so a long paste keeps its
// leading part.
func (t *TextField) Update(msg tea.Msg) tea.Cmd {
	if !t.focused {
		return nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || keyMsg.Alt {
		return nil
	}

	switch keyMsg.Type {
	case tea.KeyRunes, tea.KeySpace:
		for _, r := range keyMsg.Runes {
			t.buffer.Append(r)
		}
	case tea.KeyBackspace:
		t.buffer.Backspace()
	}

	return nil
}

// View renders the field box. The focused field gets the highlighted border
// and a cursor.
func (t *TextField) View() string {
	text := t.buffer.RenderText()
	if t.buffer.Empty() {
		text = placeholderStyle.Render(text)
	} else if t.focused {
		text += "_"
	}

	return Box(text, FieldWidth, t.focused)
}
