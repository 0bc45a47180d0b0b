package vault

import "fmt"

// Layout selects how services and accounts relate.
type Layout int

const (
	// LayoutGrouped lets a service own any number of accounts
	LayoutGrouped Layout = iota
	// LayoutFlat keeps exactly one inline account per service
	LayoutFlat
)

// Layout names as used in config files and flags.
const (
	LayoutNameGrouped = "grouped"
	LayoutNameFlat    = "flat"
)

func (l Layout) String() string {
	switch l {
	case LayoutGrouped:
		return LayoutNameGrouped
	case LayoutFlat:
		return LayoutNameFlat
	}

	return "unknown"
}

// ParseLayout converts a layout name. An empty name selects LayoutGrouped.
func ParseLayout(name string) (Layout, error) {
	switch name {
	case "", LayoutNameGrouped:
		return LayoutGrouped, nil
	case LayoutNameFlat:
		return LayoutFlat, nil
	}

	return LayoutGrouped, fmt.Errorf("unknown layout %q (must be %q or %q)", name, LayoutNameGrouped, LayoutNameFlat)
}
