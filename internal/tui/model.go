package tui

import (
	"fmt"
	"log/slog"

	"github.com/AntoineGS/tidypass/internal/tui/components"
	"github.com/AntoineGS/tidypass/internal/vault"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// FormPurpose says what a committed form creates.
type FormPurpose int

// Form purposes.
const (
	// FormNone indicates no active form
	FormNone FormPurpose = iota
	// FormAddService creates a service with its first account
	FormAddService
	// FormAddAccount adds an account to the service open in the details modal
	FormAddAccount
)

func (p FormPurpose) String() string {
	switch p {
	case FormNone:
		return "none"
	case FormAddService:
		return "add-service"
	case FormAddAccount:
		return "add-account"
	}

	return "unknown"
}

// Model holds the whole application state. Messages are dispatched to at
// most one layer: form, then details modal, then help overlay, then the
// search input, then the service list.
type Model struct {
	Clipboard   Clipboard
	Sink        VaultSink
	saves       *saveQueue
	details     *DetailsModal
	form        *components.Form
	status      string
	helpView    string
	Collection  vault.Collection
	search      textinput.Model
	list        components.ScrollList
	cursor      int
	width       int
	height      int
	Layout      vault.Layout
	formPurpose FormPurpose
	statusErr   bool
	searching   bool
	showHelp    bool
}

// NewModel creates the application state for coll.
func NewModel(coll vault.Collection, layout vault.Layout) Model {
	search := textinput.New()
	search.Prompt = "/"
	search.Placeholder = "search services"
	search.CharLimit = components.MaxChars

	m := Model{
		Collection: coll,
		Layout:     layout,
		Clipboard:  SystemClipboard{},
		search:     search,
		saves:      &saveQueue{},
		height:     defaultHeight,
		list: components.ScrollList{
			Left:      screenLeft,
			Top:       screenTop,
			Width:     rowWidth + 2,
			RowHeight: serviceRowHeight,
			Spacing:   rowSpacing,
		},
	}
	m.resize()

	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// viewport returns the height of the scrolling region.
func (m *Model) viewport() int {
	return max(m.height-screenTop-footerHeight, minViewport)
}

func (m *Model) resize() {
	m.list.Viewport = m.viewport()
	m.clampList()

	if m.details != nil {
		if g, err := m.Collection.Group(m.details.Group); err == nil {
			m.details.Resize(m.viewport(), len(g.Children))
		}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		if m.showHelp {
			m.helpView = renderHelpOverlay(m.width)
		}
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.setError(fmt.Sprintf("Copy failed: %v", msg.err))
		} else {
			m.setStatus(fmt.Sprintf("Copied password for %s", msg.account))
		}
		return m, nil

	case savedMsg:
		if msg.err != nil {
			m.setError(fmt.Sprintf("Save failed: %v", msg.err))
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, SharedKeys.ForceQuit) {
			return m.forceQuit(msg)
		}
	}

	switch {
	case m.form != nil:
		return m.updateForm(msg)
	case m.details != nil:
		return m.updateDetails(msg)
	case m.showHelp:
		return m.updateHelp(msg)
	case m.searching:
		return m.updateSearch(msg)
	}

	return m.updateList(msg)
}

// forceQuit cancels any open modal and exits.
func (m Model) forceQuit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.form != nil {
		m.form.Step(msg)
		slog.Debug("form canceled on quit", "purpose", m.formPurpose)
		m.form = nil
		m.formPurpose = FormNone
	}
	m.details = nil

	return m, tea.Quit
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(s string) {
	m.status = s
	m.statusErr = true
}

// statusLine renders line 1: the search input, the last status message or
// the active filter.
func (m *Model) statusLine() string {
	switch {
	case m.searching:
		return m.search.View()
	case m.status != "" && m.statusErr:
		return ErrorStyle.Render(m.status)
	case m.status != "":
		return SuccessStyle.Render(m.status)
	case m.query() != "":
		return MutedTextStyle.Render("Filter: " + m.query())
	}

	return ""
}

// View implements tea.Model. Only the innermost layer is drawn.
func (m Model) View() string {
	switch {
	case m.form != nil:
		return ModalStyle.Render(m.form.View())
	case m.details != nil:
		g, err := m.Collection.Group(m.details.Group)
		if err != nil {
			return m.viewList()
		}
		return m.details.View(g, m.statusLine())
	case m.showHelp:
		return m.helpView
	}

	return m.viewList()
}

// Details returns the open details modal, or nil.
func (m Model) Details() *DetailsModal {
	return m.details
}

// Form returns the open form and its purpose.
func (m Model) Form() (*components.Form, FormPurpose) {
	return m.form, m.formPurpose
}

// Status returns the status line text.
func (m Model) Status() string {
	return m.status
}

// Cursor returns the selected row of the service list.
func (m Model) Cursor() int {
	return m.cursor
}

// Offset returns the scroll offset of the service list.
func (m Model) Offset() int {
	return m.list.Offset()
}

func (m Model) openForm(purpose FormPurpose) (tea.Model, tea.Cmd) {
	switch purpose {
	case FormAddService:
		m.form = components.NewForm(TitleNewService, []components.FieldSpec{
			{Placeholder: PlaceholderService},
			{Placeholder: PlaceholderAccount},
			{Placeholder: PlaceholderPassword, Sensitive: true},
		})
	case FormAddAccount:
		g, err := m.Collection.Group(m.details.Group)
		if err != nil {
			return m, nil
		}
		m.form = components.NewForm(fmt.Sprintf("%s for %s", TitleNewAccount, g.Label()), []components.FieldSpec{
			{Placeholder: PlaceholderAccount},
			{Placeholder: PlaceholderPassword, Sensitive: true},
		})
	default:
		return m, nil
	}

	m.formPurpose = purpose
	m.status = ""
	slog.Debug("form opened", "purpose", purpose)

	return m, nil
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.form.Step(msg) {
	case components.StatusCommitted:
		values := m.form.Values()
		purpose := m.formPurpose
		m.form = nil
		m.formPurpose = FormNone
		return m.applyForm(purpose, values)

	case components.StatusCanceled:
		slog.Debug("form canceled", "purpose", m.formPurpose)
		m.form = nil
		m.formPurpose = FormNone
	}

	return m, nil
}

// applyForm turns committed form values into a collection change.
func (m Model) applyForm(purpose FormPurpose, values []string) (tea.Model, tea.Cmd) {
	switch purpose {
	case FormAddService:
		cred := vault.Credential{Name: values[1], Secret: values[2]}
		gi := m.Collection.AddGroup(values[0], &cred)
		m.selectGroup(gi)
		m.setStatus(fmt.Sprintf("Added service %s", values[0]))
		slog.Debug("service added", "index", gi)

	case FormAddAccount:
		if m.details == nil {
			return m, nil
		}
		cred := vault.Credential{Name: values[0], Secret: values[1]}
		if err := m.Collection.AddChild(m.details.Group, cred); err != nil {
			m.setError(err.Error())
			return m, nil
		}
		g, _ := m.Collection.Group(m.details.Group)
		n := len(g.Children)
		m.details.Select(n-1, n)
		m.setStatus(fmt.Sprintf("Added account %s", cred.Name))
		slog.Debug("account added", "service", m.details.Group, "index", n-1)

	default:
		return m, nil
	}

	return m, m.saveCmd()
}

func (m Model) updateDetails(msg tea.Msg) (tea.Model, tea.Cmd) {
	g, err := m.Collection.Group(m.details.Group)
	if err != nil {
		m.details = nil
		return m, nil
	}

	return m.applyAction(m.details.Step(msg, g), g)
}

// applyAction carries out a details modal action on the collection.
func (m Model) applyAction(action Action, g vault.Group) (tea.Model, tea.Cmd) {
	gi := m.details.Group

	switch action.Kind {
	case ActionNone:
		return m, nil

	case ActionClose:
		slog.Debug("details closed", "service", gi)
		m.details = nil
		return m, nil

	case ActionAddChild:
		return m.openForm(FormAddAccount)

	case ActionDeleteChild:
		if err := m.Collection.RemoveChild(gi, action.Index); err != nil {
			m.setError(err.Error())
			return m, nil
		}
		m.details.Clamp(len(g.Children) - 1)
		m.setStatus(fmt.Sprintf("Deleted account %s", g.Children[action.Index].Name))
		return m, m.saveCmd()

	case ActionCopySecret:
		secret, err := m.Collection.Secret(gi, action.Index)
		if err != nil {
			m.setError(err.Error())
			return m, nil
		}
		return m, copySecretCmd(m.Clipboard, g.Children[action.Index].Name, secret)

	case ActionDeleteGroup:
		if err := m.Collection.RemoveGroup(gi); err != nil {
			m.setError(err.Error())
			return m, nil
		}
		m.details = nil
		m.clampList()
		m.setStatus(fmt.Sprintf("Deleted service %s", g.Label()))
		slog.Debug("service deleted", "index", gi)
		return m, m.saveCmd()
	}

	return m, nil
}
