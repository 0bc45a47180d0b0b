package components

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

var serviceFields = []FieldSpec{
	{Placeholder: "Service Name"},
	{Placeholder: "Account Name"},
	{Placeholder: "Password", Sensitive: true},
}

var (
	keyEnter     = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc       = tea.KeyMsg{Type: tea.KeyEsc}
	keyTab       = tea.KeyMsg{Type: tea.KeyTab}
	keyShiftTab  = tea.KeyMsg{Type: tea.KeyShiftTab}
	keyBackspace = tea.KeyMsg{Type: tea.KeyBackspace}
	keyCtrlC     = tea.KeyMsg{Type: tea.KeyCtrlC}
)

// fill types each value into consecutive fields, tabbing between them.
func fill(f *Form, values ...string) {
	for i, v := range values {
		if i > 0 {
			f.Step(keyTab)
		}
		f.Step(runes(v))
	}
}

func TestForm_CommitReturnsValues(t *testing.T) {
	f := NewForm("New Service", serviceFields)
	fill(f, "Mail", "alice", "secret1")

	if got := f.Step(keyEnter); got != StatusCommitted {
		t.Fatalf("Step(enter) = %v, want committed", got)
	}

	values := f.Values()
	want := []string{"Mail", "alice", "secret1"}
	if len(values) != len(want) {
		t.Fatalf("Values() = %v, want %v", values, want)
	}
	for i := range want {
		if values[i] != want[i] {
			t.Errorf("Values()[%d] = %q, want %q", i, values[i], want[i])
		}
	}
}

func TestForm_CancelDiscardsValues(t *testing.T) {
	for _, cancel := range []tea.KeyMsg{keyEsc, keyCtrlC} {
		t.Run(cancel.String(), func(t *testing.T) {
			f := NewForm("New Service", serviceFields)
			fill(f, "Mail", "alice")

			if got := f.Step(cancel); got != StatusCanceled {
				t.Fatalf("Step(%s) = %v, want canceled", cancel, got)
			}
			if f.Values() != nil {
				t.Errorf("Values() = %v after cancel, want nil", f.Values())
			}
			for i := 0; i < f.Len(); i++ {
				if f.Field(i).Value() != "" {
					t.Errorf("field %d still holds %q after cancel", i, f.Field(i).Value())
				}
			}
		})
	}
}

func TestForm_EmptySubmissionAccepted(t *testing.T) {
	f := NewForm("New Account", serviceFields[1:])

	if got := f.Step(keyEnter); got != StatusCommitted {
		t.Fatalf("Step(enter) = %v, want committed", got)
	}
	if values := f.Values(); len(values) != 2 || values[0] != "" || values[1] != "" {
		t.Errorf("Values() = %q, want two empty strings", values)
	}
}

func TestForm_IgnoresInputAfterExit(t *testing.T) {
	f := NewForm("New Account", serviceFields[1:])
	f.Step(runes("bob"))
	f.Step(keyEnter)

	if got := f.Step(runes("x")); got != StatusCommitted {
		t.Errorf("Step after commit = %v, want committed", got)
	}
	if got := f.Step(keyEsc); got != StatusCommitted {
		t.Errorf("esc after commit = %v, want committed", got)
	}
	if f.Values()[0] != "bob" {
		t.Errorf("Values()[0] = %q, want bob", f.Values()[0])
	}
}

func TestForm_FocusCycles(t *testing.T) {
	for _, n := range []int{2, 3} {
		f := NewForm("cycle", serviceFields[3-n:])

		for start := 0; start < n; start++ {
			if f.Focus() != start {
				t.Fatalf("n=%d: Focus() = %d, want %d", n, f.Focus(), start)
			}
			for i := 0; i < n; i++ {
				f.Step(keyTab)
			}
			if f.Focus() != start {
				t.Errorf("n=%d: %d tabs from %d landed on %d", n, n, start, f.Focus())
			}
			f.Step(keyTab)
		}
	}
}

func TestForm_FocusAdvanceWraps(t *testing.T) {
	f := NewForm("wrap", serviceFields)

	want := []int{1, 2, 0, 1}
	for i, w := range want {
		f.Step(keyTab)
		if f.Focus() != w {
			t.Errorf("after %d tabs Focus() = %d, want %d", i+1, f.Focus(), w)
		}
	}

	f.Step(keyShiftTab)
	if f.Focus() != 0 {
		t.Errorf("shift+tab Focus() = %d, want 0", f.Focus())
	}
	f.Step(keyShiftTab)
	if f.Focus() != 2 {
		t.Errorf("shift+tab from 0 Focus() = %d, want 2", f.Focus())
	}

	for i := 0; i < f.Len(); i++ {
		if f.Field(i).IsFocused() != (i == f.Focus()) {
			t.Errorf("field %d IsFocused() = %v, only the active field may be focused", i, f.Field(i).IsFocused())
		}
	}
}

func TestForm_InputGoesToActiveField(t *testing.T) {
	f := NewForm("New Service", serviceFields)

	f.Step(runes("Bank"))
	f.Step(keyTab)
	f.Step(runes("bobx"))
	f.Step(keyBackspace)

	if f.Field(0).Value() != "Bank" {
		t.Errorf("field 0 = %q, want Bank", f.Field(0).Value())
	}
	if f.Field(1).Value() != "bob" {
		t.Errorf("field 1 = %q, want bob", f.Field(1).Value())
	}
	if f.Field(2).Value() != "" {
		t.Errorf("field 2 = %q, want empty", f.Field(2).Value())
	}
}

func TestForm_CapacityPerField(t *testing.T) {
	f := NewForm("cap", serviceFields)

	for i := 0; i < 30; i++ {
		f.Step(runes("a"))
	}

	if f.Field(0).Buffer().Len() != MaxChars {
		t.Errorf("field length = %d, want %d", f.Field(0).Buffer().Len(), MaxChars)
	}
}

func TestForm_NonKeyMessagesIgnored(t *testing.T) {
	f := NewForm("New Service", serviceFields)

	if got := f.Step(tea.WindowSizeMsg{Width: 10, Height: 10}); got != StatusActive {
		t.Errorf("Step(WindowSizeMsg) = %v, want active", got)
	}
}

func TestForm_View(t *testing.T) {
	f := NewForm("New Service", serviceFields)
	fill(f, "Mail", "alice", "secret1")

	view := f.View()

	for _, want := range []string{"New Service", "Mail", "alice", "*******", Instruction} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}
	if strings.Contains(view, "secret1") {
		t.Errorf("View() leaked the password:\n%s", view)
	}
	if got := strings.Count(view, Instruction); got != 1 {
		t.Errorf("instruction drawn %d times, want 1", got)
	}
	if got := strings.Count(view, "┏"); got != 1 {
		t.Errorf("%d highlighted fields, want exactly 1", got)
	}
}

func TestStatusString(t *testing.T) {
	tests := []struct {
		s    Status
		want string
	}{
		{StatusActive, "active"},
		{StatusCommitted, "committed"},
		{StatusCanceled, "canceled"},
		{Status(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("Status(%d).String() = %q, want %q", tt.s, got, tt.want)
		}
	}
}
