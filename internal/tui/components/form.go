package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Status is the lifecycle state of a Form.
type Status int

// Form states.
const (
	// StatusActive means the form still accepts input
	StatusActive Status = iota
	// StatusCommitted means the user submitted the values
	StatusCommitted
	// StatusCanceled means the user backed out; values are discarded
	StatusCanceled
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusCommitted:
		return "committed"
	case StatusCanceled:
		return "canceled"
	}

	return "unknown"
}

// FieldSpec describes one field of a Form.
type FieldSpec struct {
	Placeholder string
	Sensitive   bool
}

// FormKeyMap defines the control keys of a Form.
type FormKeyMap struct {
	Commit   key.Binding
	Cancel   key.Binding
	Next     key.Binding
	Previous key.Binding
}

// FormKeys are the keybindings shared by every Form.
var FormKeys = FormKeyMap{
	Commit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "submit"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "cancel"),
	),
	Next: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next field"),
	),
	Previous: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "previous field"),
	),
}

// Instruction is the help line drawn under the fields.
const Instruction = "Press Enter to submit, Esc to cancel, Tab to switch fields"

// Form collects a fixed set of text fields until committed or canceled.
// It never blocks: the caller feeds it messages through Step and reads
// the result once Step stops returning StatusActive.
type Form struct {
	Title  string
	fields []TextField
	active int
	status Status
}

// NewForm creates a form with one field per FieldSpec, focused on the first.
func NewForm(title string, specs []FieldSpec) *Form {
	fields := make([]TextField, len(specs))
	for i, spec := range specs {
		fields[i] = NewTextField(spec.Placeholder, spec.Sensitive)
	}

	f := &Form{Title: title, fields: fields}
	if len(fields) > 0 {
		f.fields[0].Focus()
	}

	return f
}

// Step applies one message and returns the resulting status. Once the form
// has left StatusActive further messages are ignored.
func (f *Form) Step(msg tea.Msg) Status {
	if f.status != StatusActive {
		return f.status
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return f.status
	}

	switch {
	case key.Matches(keyMsg, FormKeys.Commit):
		f.status = StatusCommitted
	case key.Matches(keyMsg, FormKeys.Cancel):
		f.status = StatusCanceled
		for i := range f.fields {
			f.fields[i].Reset()
		}
	case len(f.fields) == 0:
	case key.Matches(keyMsg, FormKeys.Next):
		f.focus((f.active + 1) % len(f.fields))
	case key.Matches(keyMsg, FormKeys.Previous):
		f.focus((f.active - 1 + len(f.fields)) % len(f.fields))
	default:
		f.fields[f.active].Update(keyMsg)
	}

	return f.status
}

func (f *Form) focus(i int) {
	f.fields[f.active].Blur()
	f.active = i
	f.fields[f.active].Focus()
}

// Status returns the current lifecycle state.
func (f *Form) Status() Status {
	return f.status
}

// Focus returns the index of the field receiving input.
func (f *Form) Focus() int {
	return f.active
}

// Field returns field i for inspection.
func (f *Form) Field(i int) *TextField {
	return &f.fields[i]
}

// Len returns the number of fields.
func (f *Form) Len() int {
	return len(f.fields)
}

// Values returns the submitted values, or nil unless the form was committed.
func (f *Form) Values() []string {
	if f.status != StatusCommitted {
		return nil
	}

	values := make([]string, len(f.fields))
	for i := range f.fields {
		values[i] = f.fields[i].Value()
	}

	return values
}

// View renders the title, every field and the instruction line.
func (f *Form) View() string {
	parts := make([]string, 0, len(f.fields)+2)
	parts = append(parts, lipgloss.NewStyle().Bold(true).Render(f.Title)+"\n")

	for i := range f.fields {
		parts = append(parts, f.fields[i].View())
	}

	parts = append(parts, instructionStyle.Render(Instruction))

	return strings.Join(parts, "\n")
}
