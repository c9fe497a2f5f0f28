package manager

import (
	"encoding/json"

	"github.com/yourusername/stackwm/internal/logging"
)

// The extension state is an opaque string map user extensions stash
// values in. It rides across an in-place restart untouched; the core
// assigns it no meaning.

func (m *Manager) encodeExtState() string {
	if len(m.extState) == 0 {
		return "{}"
	}
	out, err := json.Marshal(m.extState)
	if err != nil {
		logging.Warn().Err(err).Msg("extension state dropped on restart")
		return "{}"
	}
	return string(out)
}

func (m *Manager) decodeExtState(data string) {
	if data == "" {
		return
	}
	ext := make(map[string]string)
	if err := json.Unmarshal([]byte(data), &ext); err != nil {
		logging.Warn().Err(err).Msg("extension state rejected on resume")
		return
	}
	m.extState = ext
}

// ExtState exposes the extension map to in-process user extensions.
func (m *Manager) ExtState() map[string]string { return m.extState }
