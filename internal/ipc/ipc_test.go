package ipc

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func startServer(t *testing.T) (*Server, string) {
	t.Helper()
	sock := filepath.Join(t.TempDir(), "wm.sock")
	srv, err := NewServer(sock, "test")
	if err != nil {
		t.Fatalf("server start failed: %v", err)
	}
	go func() { _ = srv.Serve() }()
	t.Cleanup(func() { _ = srv.Close() })
	return srv, sock
}

func TestPingAndInfo(t *testing.T) {
	_, sock := startServer(t)
	c := NewClient(sock, 2*time.Second)
	defer c.Close()

	if _, err := c.Ping(context.Background()); err != nil {
		t.Fatalf("ping failed: %v", err)
	}
	info, err := c.ManagerInfo(context.Background())
	if err != nil {
		t.Fatalf("info failed: %v", err)
	}
	if info["name"] != "stackwm" || info["version"] != "test" {
		t.Errorf("info = %v", info)
	}
}

func TestDumpBeforeAndAfterPublish(t *testing.T) {
	srv, sock := startServer(t)
	c := NewClient(sock, 2*time.Second)
	defer c.Close()

	// Nothing published yet: a clean error, not a hang.
	if _, err := c.Dump(context.Background()); err == nil {
		t.Fatal("dump before publish should fail")
	}

	srv.Publish(Snapshot{
		CurrentTag:    "2",
		FocusedWindow: 42,
		Screens: []ScreenInfo{
			{ID: 0, Tag: "2", Width: 1920, Height: 1080},
		},
		Workspaces: []WorkspaceInfo{
			{Tag: "2", Layout: "Tall", Screen: 0, Windows: []uint32{42, 43}, Focused: 42},
			{Tag: "1", Layout: "Tall", Screen: -1},
		},
	})

	snap, err := c.Dump(context.Background())
	if err != nil {
		t.Fatalf("dump failed: %v", err)
	}
	if snap.CurrentTag != "2" || snap.FocusedWindow != 42 {
		t.Errorf("snapshot header = %q/%d", snap.CurrentTag, snap.FocusedWindow)
	}
	if len(snap.Workspaces) != 2 || len(snap.Workspaces[0].Windows) != 2 {
		t.Errorf("snapshot workspaces = %+v", snap.Workspaces)
	}
	if snap.Workspaces[1].Screen != -1 {
		t.Error("hidden workspace should report screen -1")
	}
}

func TestUnknownMethod(t *testing.T) {
	_, sock := startServer(t)
	c := NewClient(sock, 2*time.Second)
	defer c.Close()

	resp, err := c.request(context.Background(), "explode", nil)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if !resp.IsError() {
		t.Error("unknown method should answer with an error")
	}
}

func TestMultipleRequestsOnOneConnection(t *testing.T) {
	srv, sock := startServer(t)
	srv.Publish(Snapshot{CurrentTag: "1"})

	c := NewClient(sock, 2*time.Second)
	defer c.Close()

	for i := 0; i < 5; i++ {
		if _, err := c.Ping(context.Background()); err != nil {
			t.Fatalf("ping %d failed: %v", i, err)
		}
	}
	if _, err := c.Dump(context.Background()); err != nil {
		t.Fatalf("dump after pings failed: %v", err)
	}
}
