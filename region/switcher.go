package region

import (
	"fmt"

	"go-launchgrid/debug"
	"go-launchgrid/grid"
	"go-launchgrid/midi"
)

const scrollArmedColor = grid.Red3 + grid.Green3

// NoButton marks an unassigned optional button
const NoButton = -1

// Switcher stacks same-sized child regions on one rectangle and shows one
// of them at a time. A scroll page button cycles through the children and
// page buttons can be bound directly to a child.
type Switcher struct {
	Base

	children []Region
	current  int
	scroll   int
	direct   map[int]int // page button -> child index

	scrollPressed bool
}

// NewSwitcher creates a switcher. scroll is a page button index or NoButton.
func NewSwitcher(rect grid.Rect, scroll int) (*Switcher, error) {
	if rect.W <= 0 || rect.H <= 0 {
		return nil, fmt.Errorf("switcher %v: empty size", rect)
	}
	if scroll != NoButton && !grid.ValidPage(scroll) {
		return nil, fmt.Errorf("switcher %v: scroll button %d out of range", rect, scroll)
	}
	return &Switcher{
		Base:   newBase(rect),
		scroll: scroll,
		direct: make(map[int]int),
	}, nil
}

// Add appends a child. page binds a page button to it, or NoButton.
func (s *Switcher) Add(child Region, page int) error {
	if !child.Rect().SameSize(s.rect) {
		return fmt.Errorf("switcher %v: child %v has a different size", s.rect, child.Rect())
	}
	if page != NoButton {
		if !grid.ValidPage(page) {
			return fmt.Errorf("switcher %v: page button %d out of range", s.rect, page)
		}
		if page == s.scroll {
			return fmt.Errorf("switcher %v: page button %d is the scroll button", s.rect, page)
		}
		if _, dup := s.direct[page]; dup {
			return fmt.Errorf("switcher %v: page button %d bound twice", s.rect, page)
		}
		s.direct[page] = len(s.children)
	}
	s.children = append(s.children, child)
	s.setCurrent(0)
	return nil
}

// Validate reports a switcher without children
func (s *Switcher) Validate() error {
	if len(s.children) == 0 {
		return fmt.Errorf("switcher %v: no children", s.rect)
	}
	return nil
}

// Current returns the index of the visible child
func (s *Switcher) Current() int {
	return s.current
}

// Children returns the child regions in order
func (s *Switcher) Children() []Region {
	return s.children
}

func (s *Switcher) active() Region {
	if len(s.children) == 0 {
		return nil
	}
	return s.children[s.current]
}

func (s *Switcher) Process(ev midi.Event) []midi.Event {
	var out []midi.Event
	for _, c := range s.children {
		out = append(out, c.Process(ev)...)
	}
	s.draw()
	return out
}

func (s *Switcher) CtrlButtonEvent(x int, edge Edge) []midi.Event {
	a := s.active()
	if a == nil {
		return nil
	}
	out := a.CtrlButtonEvent(x, edge)
	s.draw()
	return out
}

func (s *Switcher) PageButtonEvent(y int, edge Edge) []midi.Event {
	if len(s.children) == 0 {
		return nil
	}

	var out []midi.Event
	if idx, ok := s.direct[y]; ok {
		if edge == Press {
			s.setCurrent(idx)
		}
	} else if y == s.scroll {
		if edge == Press {
			s.setCurrent((s.current + 1) % len(s.children))
		}
		s.scrollPressed = edge == Press
	} else {
		out = s.active().PageButtonEvent(y, edge)
	}
	s.draw()
	return out
}

func (s *Switcher) MatrixButtonEvent(x, y int, edge Edge) []midi.Event {
	a := s.active()
	if a == nil {
		return nil
	}
	out := a.MatrixButtonEvent(x, y, edge)
	s.draw()
	return out
}

func (s *Switcher) setCurrent(idx int) {
	s.current = idx
	debug.Log("switch", "switcher %v shows child %d", s.rect, idx)

	a := s.active()
	s.clearClaims()
	for i := 0; i < grid.CtrlButtons; i++ {
		if a.ClaimsCtrl(i) {
			s.claimCtrl(i)
		}
	}
	for i := 0; i < grid.PageButtons; i++ {
		if a.ClaimsPage(i) {
			s.claimPage(i)
		}
	}
	if s.scroll != NoButton {
		s.claimPage(s.scroll)
	}
	for page := range s.direct {
		s.claimPage(page)
	}
	s.draw()
}

func (s *Switcher) draw() {
	a := s.active()
	if a == nil {
		return
	}
	f := a.Frame()
	for x := 0; x < grid.CtrlButtons; x++ {
		if a.ClaimsCtrl(x) {
			s.frame.setCtrl(x, f.Ctrl(x))
		}
	}
	for y := 0; y < grid.PageButtons; y++ {
		if a.ClaimsPage(y) {
			s.frame.setPage(y, f.Page(y))
		}
	}
	for y := 0; y < s.rect.H; y++ {
		for x := 0; x < s.rect.W; x++ {
			s.frame.setMatrix(x, y, f.Matrix(x, y))
		}
	}

	if s.scroll != NoButton {
		c := grid.LEDOff
		if s.scrollPressed {
			c = scrollArmedColor
		}
		s.frame.setPage(s.scroll, c)
	}
}
