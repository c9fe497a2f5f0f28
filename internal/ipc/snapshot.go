package ipc

// Snapshot is a read-only view of manager state at a point in time.
// The event loop publishes a fresh one after every reconciliation; the
// socket answers dump requests from the latest published value and
// never touches live manager state.
type Snapshot struct {
	CurrentTag    string          `json:"currentTag"`
	FocusedWindow uint32          `json:"focusedWindow,omitempty"`
	Screens       []ScreenInfo    `json:"screens"`
	Workspaces    []WorkspaceInfo `json:"workspaces"`
}

// ScreenInfo describes one physical output and its mounted workspace.
type ScreenInfo struct {
	ID     int    `json:"id"`
	Tag    string `json:"tag"`
	X      int32  `json:"x"`
	Y      int32  `json:"y"`
	Width  uint32 `json:"width"`
	Height uint32 `json:"height"`
}

// WorkspaceInfo describes one workspace and its windows in stack order.
type WorkspaceInfo struct {
	Tag      string   `json:"tag"`
	Layout   string   `json:"layout"`
	Screen   int      `json:"screen"` // -1 when hidden
	Windows  []uint32 `json:"windows,omitempty"`
	Focused  uint32   `json:"focused,omitempty"`
	Floating []uint32 `json:"floating,omitempty"`
}
