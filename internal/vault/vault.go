// Package vault holds the in-memory service/account collection.
package vault

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for collection operations
var (
	ErrGroupNotFound      = errors.New("service not found")
	ErrCredentialNotFound = errors.New("account not found")
)

// Credential is a single account under a service.
type Credential struct {
	Name   string
	Secret string
}

// Group is a named service owning zero or more credentials.
// The label is set at creation and never changes.
type Group struct {
	label    string
	Children []Credential
}

// NewGroup creates a group with the given label and initial children.
func NewGroup(label string, children ...Credential) Group {
	return Group{label: label, Children: children}
}

// Label returns the service name.
func (g Group) Label() string {
	return g.label
}

// Collection is the ordered list of services. Insertion order is display order.
type Collection struct {
	Groups []Group
}

// Len returns the number of services.
func (c *Collection) Len() int {
	return len(c.Groups)
}

// Group returns the service at index gi.
func (c *Collection) Group(gi int) (Group, error) {
	if gi < 0 || gi >= len(c.Groups) {
		return Group{}, fmt.Errorf("%w: index %d", ErrGroupNotFound, gi)
	}

	return c.Groups[gi], nil
}

// AddGroup appends a new service. With a non-nil first credential the
// service starts with that one account.
func (c *Collection) AddGroup(label string, first *Credential) int {
	g := NewGroup(label)
	if first != nil {
		g.Children = append(g.Children, *first)
	}
	c.Groups = append(c.Groups, g)

	return len(c.Groups) - 1
}

// RemoveGroup deletes the service at gi, preserving the order of the rest.
func (c *Collection) RemoveGroup(gi int) error {
	if gi < 0 || gi >= len(c.Groups) {
		return fmt.Errorf("%w: index %d", ErrGroupNotFound, gi)
	}

	c.Groups = append(c.Groups[:gi:gi], c.Groups[gi+1:]...)

	return nil
}

// AddChild appends an account to the service at gi.
func (c *Collection) AddChild(gi int, cred Credential) error {
	if gi < 0 || gi >= len(c.Groups) {
		return fmt.Errorf("%w: index %d", ErrGroupNotFound, gi)
	}

	c.Groups[gi].Children = append(c.Groups[gi].Children, cred)

	return nil
}

// RemoveChild deletes account ci from service gi.
func (c *Collection) RemoveChild(gi, ci int) error {
	if gi < 0 || gi >= len(c.Groups) {
		return fmt.Errorf("%w: index %d", ErrGroupNotFound, gi)
	}

	children := c.Groups[gi].Children
	if ci < 0 || ci >= len(children) {
		return fmt.Errorf("%w: service %q index %d", ErrCredentialNotFound, c.Groups[gi].label, ci)
	}

	c.Groups[gi].Children = append(children[:ci:ci], children[ci+1:]...)

	return nil
}

// Secret returns the secret of account ci in service gi.
func (c *Collection) Secret(gi, ci int) (string, error) {
	if gi < 0 || gi >= len(c.Groups) {
		return "", fmt.Errorf("%w: index %d", ErrGroupNotFound, gi)
	}

	children := c.Groups[gi].Children
	if ci < 0 || ci >= len(children) {
		return "", fmt.Errorf("%w: service %q index %d", ErrCredentialNotFound, c.Groups[gi].label, ci)
	}

	return children[ci].Secret, nil
}

// Filter returns the indices of services whose label contains query,
// case-insensitively, in display order. An empty query matches everything.
func (c *Collection) Filter(query string) []int {
	query = strings.ToLower(strings.TrimSpace(query))

	indices := make([]int, 0, len(c.Groups))
	for i, g := range c.Groups {
		if query == "" || strings.Contains(strings.ToLower(g.label), query) {
			indices = append(indices, i)
		}
	}

	return indices
}
