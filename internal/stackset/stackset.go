package stackset

import (
	"fmt"

	"github.com/yourusername/stackwm/internal/types"
)

// ScreenID identifies a physical output. IDs are assigned positionally
// at startup and on rescreen.
type ScreenID int

// ScreenDetail carries a screen's pixel geometry and its reserved gap.
type ScreenDetail struct {
	Rect types.Rect
	Gap  types.Gap
}

// Workspace is a named tag carrying an ordered window stack and the
// layout that arranges it. An empty workspace has a nil stack.
type Workspace struct {
	Tag    string
	Layout Layout
	Stack  *Stack
}

// Screen mounts exactly one workspace on a physical output.
type Screen struct {
	Workspace Workspace
	ID        ScreenID
	Detail    ScreenDetail
}

// StackSet is the whole-world model: every workspace, which workspaces
// are on which screens, and the floating override map. All operations
// are total functions returning a new StackSet; the receiver is never
// modified.
type StackSet struct {
	Current  Screen
	Visible  []Screen
	Hidden   []Workspace
	Floating map[types.WindowID]types.RationalRect
}

// New builds a StackSet with one workspace per tag. The first
// len(details) workspaces are mounted on screens in order; the rest
// start hidden.
func New(l Layout, tags []string, details []ScreenDetail) (StackSet, error) {
	if len(tags) == 0 {
		return StackSet{}, fmt.Errorf("stackset: no workspace tags")
	}
	if len(details) == 0 {
		return StackSet{}, fmt.Errorf("stackset: no screens")
	}
	if len(details) > len(tags) {
		return StackSet{}, fmt.Errorf("stackset: %d screens but only %d workspaces", len(details), len(tags))
	}
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		if seen[t] {
			return StackSet{}, fmt.Errorf("stackset: duplicate workspace tag %q", t)
		}
		seen[t] = true
	}

	s := StackSet{Floating: make(map[types.WindowID]types.RationalRect)}
	s.Current = Screen{
		Workspace: Workspace{Tag: tags[0], Layout: l},
		ID:        0,
		Detail:    details[0],
	}
	for i := 1; i < len(details); i++ {
		s.Visible = append(s.Visible, Screen{
			Workspace: Workspace{Tag: tags[i], Layout: l},
			ID:        ScreenID(i),
			Detail:    details[i],
		})
	}
	for _, t := range tags[len(details):] {
		s.Hidden = append(s.Hidden, Workspace{Tag: t, Layout: l})
	}
	return s, nil
}

func (s StackSet) clone() StackSet {
	out := s
	out.Visible = make([]Screen, len(s.Visible))
	copy(out.Visible, s.Visible)
	out.Hidden = make([]Workspace, len(s.Hidden))
	copy(out.Hidden, s.Hidden)
	out.Floating = make(map[types.WindowID]types.RationalRect, len(s.Floating))
	for k, v := range s.Floating {
		out.Floating[k] = v
	}
	return out
}

// CurrentTag returns the tag of the workspace on the current screen.
func (s StackSet) CurrentTag() string {
	return s.Current.Workspace.Tag
}

// Screens returns every screen, the current one first.
func (s StackSet) Screens() []Screen {
	out := make([]Screen, 0, 1+len(s.Visible))
	out = append(out, s.Current)
	out = append(out, s.Visible...)
	return out
}

// Workspaces returns every workspace in current, visible, hidden order.
func (s StackSet) Workspaces() []Workspace {
	out := make([]Workspace, 0, 1+len(s.Visible)+len(s.Hidden))
	out = append(out, s.Current.Workspace)
	for _, scr := range s.Visible {
		out = append(out, scr.Workspace)
	}
	out = append(out, s.Hidden...)
	return out
}

// View makes the workspace with the given tag current. A tag visible on
// another screen moves focus to that screen; a hidden tag is mounted on
// the current screen. Unknown tags and the current tag are no-ops.
func (s StackSet) View(tag string) StackSet {
	if tag == s.CurrentTag() {
		return s
	}
	for i, scr := range s.Visible {
		if scr.Workspace.Tag == tag {
			out := s.clone()
			out.Visible[i] = s.Current
			out.Current = scr
			return out
		}
	}
	for i, ws := range s.Hidden {
		if ws.Tag == tag {
			out := s.clone()
			out.Hidden[i] = s.Current.Workspace
			out.Current.Workspace = ws
			return out
		}
	}
	return s
}

// GreedyView is like View but always brings the workspace to the
// current screen: a tag visible elsewhere swaps workspaces with the
// current screen instead of moving focus there.
func (s StackSet) GreedyView(tag string) StackSet {
	for i, scr := range s.Visible {
		if scr.Workspace.Tag == tag {
			out := s.clone()
			out.Visible[i].Workspace = s.Current.Workspace
			out.Current.Workspace = scr.Workspace
			return out
		}
	}
	return s.View(tag)
}

// ModifyStack applies f to the current workspace's stack when it is
// non-empty.
func (s StackSet) ModifyStack(f func(*Stack) *Stack) StackSet {
	if s.Current.Workspace.Stack == nil {
		return s
	}
	out := s.clone()
	out.Current.Workspace.Stack = f(s.Current.Workspace.Stack)
	return out
}

// FocusUp rotates focus to the previous window of the current stack.
func (s StackSet) FocusUp() StackSet { return s.ModifyStack((*Stack).FocusUp) }

// FocusDown rotates focus to the next window of the current stack.
func (s StackSet) FocusDown() StackSet { return s.ModifyStack((*Stack).FocusDown) }

// SwapUp exchanges the focused window with its upper neighbour.
func (s StackSet) SwapUp() StackSet { return s.ModifyStack((*Stack).SwapUp) }

// SwapDown exchanges the focused window with its lower neighbour.
func (s StackSet) SwapDown() StackSet { return s.ModifyStack((*Stack).SwapDown) }

// SwapMaster moves the focused window to the master slot.
func (s StackSet) SwapMaster() StackSet { return s.ModifyStack((*Stack).SwapMaster) }

// FocusMaster focuses the master window.
func (s StackSet) FocusMaster() StackSet { return s.ModifyStack((*Stack).FocusMaster) }

// Peek returns the focused window of the current screen.
func (s StackSet) Peek() (types.WindowID, bool) {
	if s.Current.Workspace.Stack == nil {
		return 0, false
	}
	return s.Current.Workspace.Stack.Focus, true
}

// Index returns the current workspace's windows in order.
func (s StackSet) Index() []types.WindowID {
	return Integrate(s.Current.Workspace.Stack)
}

// AllWindows returns every managed window, grouped by workspace in
// current, visible, hidden order.
func (s StackSet) AllWindows() []types.WindowID {
	var out []types.WindowID
	for _, ws := range s.Workspaces() {
		out = append(out, Integrate(ws.Stack)...)
	}
	return out
}

// Member reports whether w is in any workspace stack.
func (s StackSet) Member(w types.WindowID) bool {
	_, ok := s.FindTag(w)
	return ok
}

// FindTag returns the tag of the workspace holding w.
func (s StackSet) FindTag(w types.WindowID) (string, bool) {
	for _, ws := range s.Workspaces() {
		if ws.Stack != nil && ws.Stack.Member(w) {
			return ws.Tag, true
		}
	}
	return "", false
}

// LookupWorkspace returns the tag mounted on the given screen.
func (s StackSet) LookupWorkspace(id ScreenID) (string, bool) {
	for _, scr := range s.Screens() {
		if scr.ID == id {
			return scr.Workspace.Tag, true
		}
	}
	return "", false
}

func (s StackSet) tagKnown(tag string) bool {
	for _, ws := range s.Workspaces() {
		if ws.Tag == tag {
			return true
		}
	}
	return false
}

// InsertUp inserts w above the focused window of the current workspace
// and focuses it. A window that is already managed is left untouched.
func (s StackSet) InsertUp(w types.WindowID) StackSet {
	if s.Member(w) {
		return s
	}
	out := s.clone()
	if out.Current.Workspace.Stack == nil {
		out.Current.Workspace.Stack = NewStack(w)
	} else {
		out.Current.Workspace.Stack = out.Current.Workspace.Stack.InsertUp(w)
	}
	return out
}

// Delete removes w from every stack and from the floating map. When w
// was focused, focus falls to the window below it, then above.
func (s StackSet) Delete(w types.WindowID) StackSet {
	out := s.deleteFromStacks(w)
	if _, ok := out.Floating[w]; ok {
		out = out.clone()
		delete(out.Floating, w)
	}
	return out
}

// deleteFromStacks removes w from the workspace stacks only, leaving
// any floating entry in place. Moving a window between workspaces keeps
// its floating geometry this way.
func (s StackSet) deleteFromStacks(w types.WindowID) StackSet {
	if !s.Member(w) {
		return s
	}
	keep := func(x types.WindowID) bool { return x != w }
	out := s.clone()
	if st := out.Current.Workspace.Stack; st != nil {
		out.Current.Workspace.Stack = st.Filter(keep)
	}
	for i := range out.Visible {
		if st := out.Visible[i].Workspace.Stack; st != nil {
			out.Visible[i].Workspace.Stack = st.Filter(keep)
		}
	}
	for i := range out.Hidden {
		if st := out.Hidden[i].Stack; st != nil {
			out.Hidden[i].Stack = st.Filter(keep)
		}
	}
	return out
}

// Float records a floating rectangle for w. A window not yet managed is
// first inserted on the current workspace.
func (s StackSet) Float(w types.WindowID, r types.RationalRect) StackSet {
	out := s.InsertUp(w).clone()
	out.Floating[w] = r
	return out
}

// Sink drops w's floating override so the layout places it again.
func (s StackSet) Sink(w types.WindowID) StackSet {
	if _, ok := s.Floating[w]; !ok {
		return s
	}
	out := s.clone()
	delete(out.Floating, w)
	return out
}

// Shift moves the focused window of the current workspace to the given
// workspace. Focus falls to the next window in the source stack.
func (s StackSet) Shift(tag string) StackSet {
	w, ok := s.Peek()
	if !ok {
		return s
	}
	return s.ShiftWin(tag, w)
}

// ShiftWin moves w to the given workspace, leaving the source
// workspace's focus on its remaining windows and the current screen
// unchanged.
func (s StackSet) ShiftWin(tag string, w types.WindowID) StackSet {
	from, ok := s.FindTag(w)
	if !ok || !s.tagKnown(tag) || from == tag {
		return s
	}
	return s.deleteFromStacks(w).onWorkspace(tag, func(x StackSet) StackSet {
		out := x.clone()
		if out.Current.Workspace.Stack == nil {
			out.Current.Workspace.Stack = NewStack(w)
		} else {
			out.Current.Workspace.Stack = out.Current.Workspace.Stack.InsertUp(w)
		}
		return out
	})
}

// onWorkspace runs f with the given tag current, then restores the
// originally current tag.
func (s StackSet) onWorkspace(tag string, f func(StackSet) StackSet) StackSet {
	cur := s.CurrentTag()
	return f(s.View(tag)).View(cur)
}

// FocusWindow shifts focus to w, switching workspaces when necessary.
// Unknown windows are a no-op.
func (s StackSet) FocusWindow(w types.WindowID) StackSet {
	if cur, ok := s.Peek(); ok && cur == w {
		return s
	}
	tag, ok := s.FindTag(w)
	if !ok {
		return s
	}
	out := s.View(tag)
	if out.Current.Workspace.Stack == nil {
		return s
	}
	for i := out.Current.Workspace.Stack.Len(); i > 0; i-- {
		if cur, ok := out.Peek(); ok && cur == w {
			return out
		}
		out = out.FocusUp()
	}
	return out
}

// EnsureTags appends a hidden empty workspace for every listed tag that
// the set does not already carry. Used when resuming with a changed tag
// list.
func (s StackSet) EnsureTags(l Layout, tags []string) StackSet {
	out := s
	cloned := false
	for _, t := range tags {
		if out.tagKnown(t) {
			continue
		}
		if !cloned {
			out = out.clone()
			cloned = true
		}
		out.Hidden = append(out.Hidden, Workspace{Tag: t, Layout: l})
	}
	return out
}

// MapLayout replaces every workspace's layout with f of it. Used on
// resume to re-instantiate layouts from their serialised form.
func (s StackSet) MapLayout(f func(Layout) Layout) StackSet {
	out := s.clone()
	out.Current.Workspace.Layout = f(out.Current.Workspace.Layout)
	for i := range out.Visible {
		out.Visible[i].Workspace.Layout = f(out.Visible[i].Workspace.Layout)
	}
	for i := range out.Hidden {
		out.Hidden[i].Layout = f(out.Hidden[i].Layout)
	}
	return out
}

// SetLayout replaces the layout of the workspace with the given tag.
func (s StackSet) SetLayout(tag string, l Layout) StackSet {
	out := s.clone()
	if out.Current.Workspace.Tag == tag {
		out.Current.Workspace.Layout = l
		return out
	}
	for i := range out.Visible {
		if out.Visible[i].Workspace.Tag == tag {
			out.Visible[i].Workspace.Layout = l
			return out
		}
	}
	for i := range out.Hidden {
		if out.Hidden[i].Tag == tag {
			out.Hidden[i].Layout = l
			return out
		}
	}
	return s
}

// WithScreens rebinds workspaces to a new set of physical screens,
// preserving the current, visible, hidden workspace order: the first
// len(details) workspaces are mounted positionally and the remainder
// become hidden. An empty detail list is a no-op.
func (s StackSet) WithScreens(details []ScreenDetail) StackSet {
	if len(details) == 0 {
		return s
	}
	wss := s.Workspaces()
	n := len(details)
	if n > len(wss) {
		n = len(wss)
	}
	out := s.clone()
	out.Current = Screen{Workspace: wss[0], ID: 0, Detail: details[0]}
	out.Visible = nil
	for i := 1; i < n; i++ {
		out.Visible = append(out.Visible, Screen{
			Workspace: wss[i],
			ID:        ScreenID(i),
			Detail:    details[i],
		})
	}
	out.Hidden = append([]Workspace(nil), wss[n:]...)
	return out
}
