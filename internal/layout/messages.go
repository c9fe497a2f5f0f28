// Package layout provides the built-in layout algorithms and the
// message types key bindings use to reconfigure them.
package layout

// ResizeDir selects the direction of a master-pane resize.
type ResizeDir int

const (
	Shrink ResizeDir = iota
	Expand
)

// Resize adjusts the master pane fraction of a tiled layout.
type Resize struct {
	Dir ResizeDir
}

// IncMasterN changes the number of master-pane windows by Delta.
type IncMasterN struct {
	Delta int
}

// Hide tells a layout it is about to be covered; transient state tied
// to being visible should be released.
type Hide struct{}

// ReleaseResources tells a layout the manager is shutting down and any
// server resources must be freed.
type ReleaseResources struct{}

// NextLayout rotates a layout selector to its next choice.
type NextLayout struct{}

// PrevLayout rotates a layout selector to its previous choice.
type PrevLayout struct{}

// JumpToLayout selects the first layout whose description matches Name.
type JumpToLayout struct {
	Name string
}
