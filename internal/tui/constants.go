package tui

// Screen geometry, in terminal cells. Line 0 holds the title and line 1
// the status or search line; the scrolling viewport starts below them.
const (
	screenLeft = 2
	screenTop  = 2

	// rowWidth is the inner width of a row box; borders add two cells
	rowWidth = 34

	serviceRowHeight = 3
	accountRowHeight = 5
	rowSpacing       = 1

	// footerHeight covers the button boxes and the help line
	footerHeight = 4
	minViewport  = 3

	// defaultHeight is used until the first WindowSizeMsg arrives
	defaultHeight = 24
)

// Button labels and widths. A button box is its label plus padding;
// borders add two more cells.
const (
	LabelAddService    = "Add Service"
	LabelAddAccount    = "Add Account"
	LabelDeleteService = "Delete Service"
	LabelDelete        = "[Delete]"
	LabelCopy          = "[Copy]"

	addButtonWidth    = len(LabelAddService) + 2
	deleteButtonWidth = len(LabelDeleteService) + 2
	buttonGap         = 1
)

// Form titles and placeholders
const (
	TitleNewService = "New Service"
	TitleNewAccount = "New Account"

	PlaceholderService  = "Service Name"
	PlaceholderAccount  = "Account Name"
	PlaceholderPassword = "Password"
)

// Empty-state messages
const (
	EmptyServices = "No services yet"
	EmptyMatches  = "No matches"
	EmptyAccounts = "No accounts yet"
)
