package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigDir  = ".config/stackwm"
	DefaultConfigFile = "config.yaml"
)

// Gap reserves pixels at the screen edges for a status bar.
type Gap struct {
	Top    uint32 `yaml:"top"`
	Bottom uint32 `yaml:"bottom"`
	Left   uint32 `yaml:"left"`
	Right  uint32 `yaml:"right"`
}

// Config is the root configuration structure. Key and button bindings
// are compiled into the host binary; the file tunes parameters only.
type Config struct {
	// Tags names the workspaces, in order. The first tags are mounted
	// on screens at startup.
	Tags []string `yaml:"tags"`

	// Modifier is the base modifier of every binding: "mod1" (alt)
	// through "mod5", or "control".
	Modifier string `yaml:"modifier"`

	BorderWidth        uint32 `yaml:"borderWidth"`
	NormalBorderColor  string `yaml:"normalBorderColor"`
	FocusedBorderColor string `yaml:"focusedBorderColor"`

	// Gap is applied to every screen's usable area.
	Gap Gap `yaml:"gap"`

	Terminal          string `yaml:"terminal"`
	FocusFollowsMouse bool   `yaml:"focusFollowsMouse"`

	// SocketPath is where the read-only IPC query socket listens.
	// Empty disables the socket.
	SocketPath string `yaml:"socketPath"`

	LogLevel string `yaml:"logLevel"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Tags:               []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"},
		Modifier:           "mod1",
		BorderWidth:        1,
		NormalBorderColor:  "#dddddd",
		FocusedBorderColor: "#ff0000",
		Terminal:           "xterm",
		FocusFollowsMouse:  true,
		SocketPath:         defaultSocketPath(),
		LogLevel:           "info",
	}
}

func defaultSocketPath() string {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, "stackwm.sock")
	}
	return filepath.Join(os.TempDir(), "stackwm.sock")
}

// Load reads the configuration from path, or from the default location
// when path is empty. A missing default file yields Default().
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot determine home directory: %w", err)
		}
		path = filepath.Join(home, DefaultConfigDir, DefaultConfigFile)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return LoadFromBytes(data)
}

// LoadFromBytes parses a YAML configuration. Absent fields keep their
// defaults.
func LoadFromBytes(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
