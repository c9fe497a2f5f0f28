package types

// WindowID is an opaque window handle assigned by the X server. The core
// never constructs windows; it only tracks identifiers.
type WindowID uint32

// Rect is a screen-space rectangle in pixels. Width and height are at
// least 1 for any rectangle handed to a client.
type Rect struct {
	X, Y int32
	W, H uint32
}

// RationalRect is a rectangle whose coordinates are fractions of a screen
// rectangle. Floating windows are stored this way so their positions
// survive a screen geometry change.
type RationalRect struct {
	X, Y, W, H float64
}

// Gap reserves space at the edges of a screen, typically for a status bar.
type Gap struct {
	Top, Bottom, Left, Right uint32
}

// SizeHints is the subset of WM_NORMAL_HINTS the manager acts on.
// Zero values mean the hint is absent.
type SizeHints struct {
	MinW, MinH int
	MaxW, MaxH int
	BaseW, BaseH int
	IncW, IncH int
	// Aspect ratios as numerator/denominator pairs; zero denominator
	// means no constraint.
	MinAspectNum, MinAspectDen int
	MaxAspectNum, MaxAspectDen int
}

// Fixed reports whether the hints pin the window to a single size.
// Such windows are floated rather than tiled.
func (h SizeHints) Fixed() bool {
	return h.MinW > 0 && h.MinH > 0 && h.MinW == h.MaxW && h.MinH == h.MaxH
}

// Shrink returns r reduced by the gap on each edge. The result keeps a
// minimum size of 1x1 even when the gap exceeds the rectangle.
func (r Rect) Shrink(g Gap) Rect {
	out := Rect{
		X: r.X + int32(g.Left),
		Y: r.Y + int32(g.Top),
	}
	horiz := g.Left + g.Right
	vert := g.Top + g.Bottom
	if r.W > horiz {
		out.W = r.W - horiz
	} else {
		out.W = 1
	}
	if r.H > vert {
		out.H = r.H - vert
	} else {
		out.H = 1
	}
	return out
}

// Contains reports whether inner lies entirely within r.
func (r Rect) Contains(inner Rect) bool {
	return inner.X >= r.X && inner.Y >= r.Y &&
		inner.X+int32(inner.W) <= r.X+int32(r.W) &&
		inner.Y+int32(inner.H) <= r.Y+int32(r.H)
}

// Overlaps reports whether r and other share any pixel.
func (r Rect) Overlaps(other Rect) bool {
	return r.X < other.X+int32(other.W) && other.X < r.X+int32(r.W) &&
		r.Y < other.Y+int32(other.H) && other.Y < r.Y+int32(r.H)
}

// ToRational expresses r as fractions of the screen rectangle.
func (r Rect) ToRational(screen Rect) RationalRect {
	sw := float64(screen.W)
	sh := float64(screen.H)
	return RationalRect{
		X: float64(r.X-screen.X) / sw,
		Y: float64(r.Y-screen.Y) / sh,
		W: float64(r.W) / sw,
		H: float64(r.H) / sh,
	}
}

// ToPixels scales the rational rectangle back to pixels on the given
// screen. Width and height are clamped to at least 1.
func (rr RationalRect) ToPixels(screen Rect) Rect {
	w := uint32(rr.W * float64(screen.W))
	h := uint32(rr.H * float64(screen.H))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return Rect{
		X: screen.X + int32(rr.X*float64(screen.W)),
		Y: screen.Y + int32(rr.Y*float64(screen.H)),
		W: w,
		H: h,
	}
}
