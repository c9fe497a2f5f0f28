package stackset

import (
	"encoding/json"
	"fmt"

	"github.com/yourusername/stackwm/internal/types"
)

const (
	// codecVersion is the serialised StackSet format version.
	codecVersion = 1
)

type stackJSON struct {
	Focus types.WindowID   `json:"focus"`
	Up    []types.WindowID `json:"up,omitempty"`
	Down  []types.WindowID `json:"down,omitempty"`
}

type workspaceJSON struct {
	Tag    string          `json:"tag"`
	Layout json.RawMessage `json:"layout"`
	Stack  *stackJSON      `json:"stack,omitempty"`
}

type screenJSON struct {
	Workspace workspaceJSON `json:"workspace"`
	ID        ScreenID      `json:"id"`
	Rect      types.Rect    `json:"rect"`
	Gap       types.Gap     `json:"gap"`
}

type floatJSON struct {
	Window types.WindowID     `json:"window"`
	Rect   types.RationalRect `json:"rect"`
}

type setJSON struct {
	Version  int             `json:"version"`
	Current  screenJSON      `json:"current"`
	Visible  []screenJSON    `json:"visible,omitempty"`
	Hidden   []workspaceJSON `json:"hidden,omitempty"`
	Floating []floatJSON     `json:"floating,omitempty"`
}

// Encode serialises the StackSet, layouts included, as a single JSON
// document. The result round-trips through Decode given a layout
// decoder that recognises every encoded layout.
func (s StackSet) Encode() (string, error) {
	doc := setJSON{Version: codecVersion}
	var err error
	if doc.Current, err = encodeScreen(s.Current); err != nil {
		return "", err
	}
	for _, scr := range s.Visible {
		sj, err := encodeScreen(scr)
		if err != nil {
			return "", err
		}
		doc.Visible = append(doc.Visible, sj)
	}
	for _, ws := range s.Hidden {
		wj, err := encodeWorkspace(ws)
		if err != nil {
			return "", err
		}
		doc.Hidden = append(doc.Hidden, wj)
	}
	// Deterministic order: floats follow the window order of the set.
	for _, w := range s.AllWindows() {
		if r, ok := s.Floating[w]; ok {
			doc.Floating = append(doc.Floating, floatJSON{Window: w, Rect: r})
		}
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("stackset: encode: %w", err)
	}
	return string(out), nil
}

func encodeScreen(scr Screen) (screenJSON, error) {
	wj, err := encodeWorkspace(scr.Workspace)
	if err != nil {
		return screenJSON{}, err
	}
	return screenJSON{
		Workspace: wj,
		ID:        scr.ID,
		Rect:      scr.Detail.Rect,
		Gap:       scr.Detail.Gap,
	}, nil
}

func encodeWorkspace(ws Workspace) (workspaceJSON, error) {
	raw, err := ws.Layout.Encode()
	if err != nil {
		return workspaceJSON{}, fmt.Errorf("stackset: encode layout of %q: %w", ws.Tag, err)
	}
	wj := workspaceJSON{Tag: ws.Tag, Layout: raw}
	if ws.Stack != nil {
		wj.Stack = &stackJSON{
			Focus: ws.Stack.Focus,
			Up:    ws.Stack.Up,
			Down:  ws.Stack.Down,
		}
	}
	return wj, nil
}

// Decode rebuilds a StackSet from its serialised form. Layouts are
// re-instantiated through decodeLayout, typically the layout package's
// registry.
func Decode(data string, decodeLayout func([]byte) (Layout, error)) (StackSet, error) {
	var doc setJSON
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return StackSet{}, fmt.Errorf("stackset: decode: %w", err)
	}
	if doc.Version != codecVersion {
		return StackSet{}, fmt.Errorf("stackset: unsupported state version %d", doc.Version)
	}
	s := StackSet{Floating: make(map[types.WindowID]types.RationalRect)}
	var err error
	if s.Current, err = decodeScreen(doc.Current, decodeLayout); err != nil {
		return StackSet{}, err
	}
	for _, sj := range doc.Visible {
		scr, err := decodeScreen(sj, decodeLayout)
		if err != nil {
			return StackSet{}, err
		}
		s.Visible = append(s.Visible, scr)
	}
	for _, wj := range doc.Hidden {
		ws, err := decodeWorkspace(wj, decodeLayout)
		if err != nil {
			return StackSet{}, err
		}
		s.Hidden = append(s.Hidden, ws)
	}
	for _, f := range doc.Floating {
		s.Floating[f.Window] = f.Rect
	}
	return s, nil
}

func decodeScreen(sj screenJSON, decodeLayout func([]byte) (Layout, error)) (Screen, error) {
	ws, err := decodeWorkspace(sj.Workspace, decodeLayout)
	if err != nil {
		return Screen{}, err
	}
	return Screen{
		Workspace: ws,
		ID:        sj.ID,
		Detail:    ScreenDetail{Rect: sj.Rect, Gap: sj.Gap},
	}, nil
}

func decodeWorkspace(wj workspaceJSON, decodeLayout func([]byte) (Layout, error)) (Workspace, error) {
	l, err := decodeLayout(wj.Layout)
	if err != nil {
		return Workspace{}, fmt.Errorf("stackset: decode layout of %q: %w", wj.Tag, err)
	}
	ws := Workspace{Tag: wj.Tag, Layout: l}
	if wj.Stack != nil {
		ws.Stack = &Stack{
			Focus: wj.Stack.Focus,
			Up:    wj.Stack.Up,
			Down:  wj.Stack.Down,
		}
	}
	return ws, nil
}
