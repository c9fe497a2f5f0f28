package output

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"

	"github.com/yourusername/stackwm/internal/ipc"
)

// PrintWorkspacesTable prints every workspace with its layout, screen
// and window count.
func PrintWorkspacesTable(snap *ipc.Snapshot) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Tag", "Layout", "Screen", "Windows", "Current")

	for _, ws := range snap.Workspaces {
		screen := "-"
		if ws.Screen >= 0 {
			screen = fmt.Sprintf("%d", ws.Screen)
		}
		current := ""
		if ws.Tag == snap.CurrentTag {
			current = "*"
		}
		table.Append(ws.Tag, ws.Layout, screen, fmt.Sprintf("%d", len(ws.Windows)), current)
	}

	table.Render()
}

// PrintWindowsTable prints every managed window in workspace order.
func PrintWindowsTable(snap *ipc.Snapshot) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Workspace", "Mode", "Focused")

	floating := make(map[uint32]bool)
	for _, ws := range snap.Workspaces {
		for _, w := range ws.Floating {
			floating[w] = true
		}
	}
	for _, ws := range snap.Workspaces {
		for _, w := range ws.Windows {
			mode := "tiled"
			if floating[w] {
				mode = "floating"
			}
			focused := ""
			if w == snap.FocusedWindow {
				focused = "*"
			}
			table.Append(fmt.Sprintf("0x%x", w), ws.Tag, mode, focused)
		}
	}

	table.Render()
}

// PrintScreensTable prints the physical outputs and what they show.
func PrintScreensTable(snap *ipc.Snapshot) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Tag", "Geometry")

	for _, scr := range snap.Screens {
		geom := fmt.Sprintf("%dx%d+%d+%d", scr.Width, scr.Height, scr.X, scr.Y)
		table.Append(fmt.Sprintf("%d", scr.ID), scr.Tag, geom)
	}

	table.Render()
}
