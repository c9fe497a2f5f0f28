package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if len(cfg.Tags) == 0 {
		t.Error("default config has no tags")
	}
}

func TestLoadFromBytes(t *testing.T) {
	data := []byte(`
tags: ["web", "code", "chat"]
modifier: mod4
borderWidth: 2
focusedBorderColor: "#88cc44"
terminal: alacritty
focusFollowsMouse: false
`)
	cfg, err := LoadFromBytes(data)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(cfg.Tags) != 3 || cfg.Tags[0] != "web" {
		t.Errorf("tags = %v", cfg.Tags)
	}
	if cfg.Modifier != "mod4" {
		t.Errorf("modifier = %q", cfg.Modifier)
	}
	if cfg.Terminal != "alacritty" {
		t.Errorf("terminal = %q", cfg.Terminal)
	}
	// Unset fields keep their defaults.
	if cfg.NormalBorderColor != Default().NormalBorderColor {
		t.Errorf("normal border color = %q, want default", cfg.NormalBorderColor)
	}
	if cfg.FocusFollowsMouse {
		t.Error("focusFollowsMouse should be off")
	}
}

func TestLoadFromBytesRejectsBadConfigs(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"empty tags", `tags: []`},
		{"duplicate tags", `tags: ["1", "1"]`},
		{"bad modifier", `modifier: hyper`},
		{"bad color", `focusedBorderColor: "red"`},
		{"not yaml", `{{{`},
	}
	for _, tc := range cases {
		if _, err := LoadFromBytes([]byte(tc.data)); err == nil {
			t.Errorf("%s: expected an error", tc.name)
		}
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(`terminal: urxvt`), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Terminal != "urxvt" {
		t.Errorf("terminal = %q", cfg.Terminal)
	}

	// An explicitly named missing file is an error.
	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing explicit config should fail")
	}
}
