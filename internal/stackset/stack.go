package stackset

import (
	"github.com/yourusername/stackwm/internal/types"
)

// Stack is a non-empty zipper over an ordered window list: one focused
// window plus the windows above it (Up, nearest first) and below it
// (Down, in order). Integrating yields reverse(Up) ++ [Focus] ++ Down.
//
// Stacks are treated as immutable; every operation returns a fresh value
// and never aliases the receiver's slices in a way a later operation
// could observe.
type Stack struct {
	Focus types.WindowID
	Up    []types.WindowID
	Down  []types.WindowID
}

// NewStack builds a stack focused on w with nothing above or below.
func NewStack(w types.WindowID) *Stack {
	return &Stack{Focus: w}
}

// Integrate flattens the zipper into a plain ordered list.
func (s *Stack) Integrate() []types.WindowID {
	out := make([]types.WindowID, 0, len(s.Up)+1+len(s.Down))
	for i := len(s.Up) - 1; i >= 0; i-- {
		out = append(out, s.Up[i])
	}
	out = append(out, s.Focus)
	out = append(out, s.Down...)
	return out
}

// Integrate returns the ordered window list of a possibly-nil stack.
func Integrate(s *Stack) []types.WindowID {
	if s == nil {
		return nil
	}
	return s.Integrate()
}

// Differentiate rebuilds a stack from an ordered list, focusing the head.
// An empty list yields nil.
func Differentiate(ws []types.WindowID) *Stack {
	if len(ws) == 0 {
		return nil
	}
	down := make([]types.WindowID, len(ws)-1)
	copy(down, ws[1:])
	return &Stack{Focus: ws[0], Down: down}
}

// Len reports the number of windows in the stack.
func (s *Stack) Len() int {
	return len(s.Up) + 1 + len(s.Down)
}

// Member reports whether w is anywhere in the stack.
func (s *Stack) Member(w types.WindowID) bool {
	if s.Focus == w {
		return true
	}
	for _, u := range s.Up {
		if u == w {
			return true
		}
	}
	for _, d := range s.Down {
		if d == w {
			return true
		}
	}
	return false
}

func (s *Stack) clone() *Stack {
	up := make([]types.WindowID, len(s.Up))
	copy(up, s.Up)
	down := make([]types.WindowID, len(s.Down))
	copy(down, s.Down)
	return &Stack{Focus: s.Focus, Up: up, Down: down}
}

// FocusUp moves focus to the previous window, wrapping from the top to
// the bottom of the stack.
func (s *Stack) FocusUp() *Stack {
	switch {
	case len(s.Up) > 0:
		out := s.clone()
		out.Focus = out.Up[0]
		out.Down = append([]types.WindowID{s.Focus}, out.Down...)
		out.Up = out.Up[1:]
		return out
	case len(s.Down) == 0:
		return s
	default:
		// Wrap: the last window of Down becomes the focus and
		// everything else ends up above it.
		all := s.Integrate()
		last := all[len(all)-1]
		rest := all[:len(all)-1]
		up := make([]types.WindowID, len(rest))
		for i, w := range rest {
			up[len(rest)-1-i] = w
		}
		return &Stack{Focus: last, Up: up}
	}
}

// FocusDown moves focus to the next window, wrapping from the bottom to
// the top of the stack.
func (s *Stack) FocusDown() *Stack {
	return s.reverse().FocusUp().reverse()
}

// SwapUp exchanges the focused window with the one above it, wrapping to
// the bottom when focus is already at the top.
func (s *Stack) SwapUp() *Stack {
	if len(s.Up) > 0 {
		out := s.clone()
		swapped := out.Up[0]
		out.Up = out.Up[1:]
		out.Down = append([]types.WindowID{swapped}, out.Down...)
		return out
	}
	// Focus at the top: rotate everything below above it.
	up := make([]types.WindowID, len(s.Down))
	for i, w := range s.Down {
		up[len(s.Down)-1-i] = w
	}
	return &Stack{Focus: s.Focus, Up: up}
}

// SwapDown exchanges the focused window with the one below it.
func (s *Stack) SwapDown() *Stack {
	return s.reverse().SwapUp().reverse()
}

// SwapMaster moves the focused window to the head of the stack. The
// previous head moves to just below the other windows that were above
// the focus; focus does not change window.
func (s *Stack) SwapMaster() *Stack {
	if len(s.Up) == 0 {
		return s
	}
	out := s.clone()
	rest := make([]types.WindowID, 0, len(out.Up)-1)
	for i := len(out.Up) - 2; i >= 0; i-- {
		rest = append(rest, out.Up[i])
	}
	out.Down = append(append(rest, out.Up[len(out.Up)-1]), out.Down...)
	out.Up = nil
	return out
}

// FocusMaster moves focus to the head of the stack.
func (s *Stack) FocusMaster() *Stack {
	if len(s.Up) == 0 {
		return s
	}
	all := s.Integrate()
	return Differentiate(all)
}

// Filter keeps only the windows satisfying p, preserving order. Focus
// moves to the nearest survivor below, then above. Returns nil when
// nothing survives.
func (s *Stack) Filter(p func(types.WindowID) bool) *Stack {
	var up, down []types.WindowID
	for _, w := range s.Up {
		if p(w) {
			up = append(up, w)
		}
	}
	for _, w := range s.Down {
		if p(w) {
			down = append(down, w)
		}
	}
	if p(s.Focus) {
		return &Stack{Focus: s.Focus, Up: up, Down: down}
	}
	if len(down) > 0 {
		return &Stack{Focus: down[0], Up: up, Down: down[1:]}
	}
	if len(up) > 0 {
		return &Stack{Focus: up[0], Up: up[1:]}
	}
	return nil
}

// InsertUp places w directly above the focused window and focuses it.
func (s *Stack) InsertUp(w types.WindowID) *Stack {
	out := s.clone()
	out.Down = append([]types.WindowID{s.Focus}, out.Down...)
	out.Focus = w
	return out
}

func (s *Stack) reverse() *Stack {
	return &Stack{Focus: s.Focus, Up: s.Down, Down: s.Up}
}
