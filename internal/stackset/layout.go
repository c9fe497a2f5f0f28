package stackset

import (
	"github.com/yourusername/stackwm/internal/types"
)

// Message is a dynamically typed carrier delivered to layouts. Layouts
// type-switch on the concrete messages they recognise and ignore the
// rest. The built-in message set lives in the layout package; user
// extensions may define their own types.
type Message any

// Placement assigns a window a pixel rectangle within a viewport.
// Placement order is the stacking order, bottom-most first.
type Placement struct {
	Window types.WindowID
	Rect   types.Rect
}

// Layout produces window placements for a stack within a viewport.
// Implementations are immutable: methods that change the layout return a
// new value and leave the receiver untouched.
type Layout interface {
	// DoLayout places the stack's windows inside the viewport. A
	// window omitted from the result is hidden. The returned Layout
	// is nil when the pass left the layout unchanged.
	DoLayout(viewport types.Rect, s Stack) ([]Placement, Layout, error)

	// HandleMessage reacts to a message. It returns a non-nil Layout
	// exactly when the message changed the layout, which triggers a
	// refresh. Unrecognised messages return (nil, nil).
	HandleMessage(msg Message) (Layout, error)

	// Description names the layout for the user and for JumpToLayout
	// matching.
	Description() string

	// Encode serialises the layout for the in-place-restart path. The
	// encoding is decoded by the layout registry.
	Encode() ([]byte, error)
}
