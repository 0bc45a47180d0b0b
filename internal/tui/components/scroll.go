package components

import "strings"

// Rect is a screen region in cell coordinates.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// ScrollStep is the number of lines one wheel notch scrolls.
const ScrollStep = 1

// ScrollList lays out fixed-height rows in a vertical viewport and tracks
// the scroll offset. Offsets are in lines and always stay within
// [0, MaxOffset].
type ScrollList struct {
	// Left and Top place the viewport on screen
	Left, Top int
	// Width is the on-screen width of a row
	Width int
	// RowHeight and Spacing are the row pitch in lines
	RowHeight, Spacing int
	// Viewport is the number of visible lines
	Viewport int

	offset int
}

// Offset returns the current scroll offset.
func (s *ScrollList) Offset() int {
	return s.offset
}

// ContentHeight returns the height of n rows including the gaps between them.
func (s *ScrollList) ContentHeight(n int) int {
	if n <= 0 {
		return 0
	}

	return n*(s.RowHeight+s.Spacing) - s.Spacing
}

// MaxOffset returns the largest offset that still fills the viewport.
func (s *ScrollList) MaxOffset(n int) int {
	return max(0, s.ContentHeight(n)-s.Viewport)
}

// Scroll applies a wheel delta (positive scrolls up) for a list of n rows.
func (s *ScrollList) Scroll(delta, n int) {
	s.SetOffset(s.offset-delta*ScrollStep, n)
}

// SetOffset moves to offset, clamped for a list of n rows.
func (s *ScrollList) SetOffset(offset, n int) {
	s.offset = min(max(offset, 0), s.MaxOffset(n))
}

// Clamp re-applies the bounds after the row count or viewport changed.
func (s *ScrollList) Clamp(n int) {
	s.SetOffset(s.offset, n)
}

// RowY returns the on-screen line of row i's top edge. It may lie outside
// the viewport.
func (s *ScrollList) RowY(i int) int {
	return s.Top + i*(s.RowHeight+s.Spacing) - s.offset
}

// RowRect returns row i's full rectangle and whether any of it is visible.
func (s *ScrollList) RowRect(i int) (Rect, bool) {
	r := Rect{X: s.Left, Y: s.RowY(i), W: s.Width, H: s.RowHeight}
	visible := r.Y+r.H > s.Top && r.Y < s.Top+s.Viewport

	return r, visible
}

// viewportRect is the visible region of the list.
func (s *ScrollList) viewportRect() Rect {
	return Rect{X: s.Left, Y: s.Top, W: s.Width, H: s.Viewport}
}

// HitTest returns the first of n rows containing (x, y), or -1. Rows fully
// outside the viewport are skipped and clipped parts never match.
func (s *ScrollList) HitTest(n, x, y int) int {
	if !s.viewportRect().Contains(x, y) {
		return -1
	}

	for i := 0; i < n; i++ {
		r, visible := s.RowRect(i)
		if !visible {
			continue
		}
		if r.Contains(x, y) {
			return i
		}
	}

	return -1
}

// Visible reports whether the cell (x, y) is inside the viewport.
func (s *ScrollList) Visible(x, y int) bool {
	return s.viewportRect().Contains(x, y)
}

// EnsureVisible scrolls the minimum amount so row i is fully shown.
func (s *ScrollList) EnsureVisible(i, n int) {
	top := i * (s.RowHeight + s.Spacing)
	bottom := top + s.RowHeight

	switch {
	case top < s.offset:
		s.SetOffset(top, n)
	case bottom > s.offset+s.Viewport:
		s.SetOffset(bottom-s.Viewport, n)
	}
}

// Render paints n rows into exactly Viewport lines. row(i) must return a
// block of RowHeight lines; lines falling outside the viewport are clipped
// and rows entirely outside it are never rendered.
func (s *ScrollList) Render(n int, row func(i int) string) string {
	lines := make([]string, s.Viewport)
	indent := strings.Repeat(" ", s.Left)

	for i := 0; i < n; i++ {
		r, visible := s.RowRect(i)
		if !visible {
			continue
		}

		for k, line := range strings.Split(row(i), "\n") {
			y := r.Y + k - s.Top
			if k >= s.RowHeight || y < 0 || y >= s.Viewport {
				continue
			}
			lines[y] = indent + line
		}
	}

	return strings.Join(lines, "\n")
}
