package stackset_test

import (
	"testing"

	"github.com/yourusername/stackwm/internal/layout"
	"github.com/yourusername/stackwm/internal/stackset"
	"github.com/yourusername/stackwm/internal/types"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	s := mkSet(t, []string{"1", "2", "3"}, 2)
	s = s.InsertUp(10).InsertUp(11)
	s = s.View("3").InsertUp(12)
	s = s.Float(11, types.RationalRect{X: 0.1, Y: 0.2, W: 0.3, H: 0.4})
	s = s.View("1")

	data, err := s.Encode()
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	back, err := stackset.Decode(data, layout.Decode)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if fingerprint(back) != fingerprint(s) {
		t.Errorf("round trip changed the set:\n%s\nvs:\n%s", fingerprint(back), fingerprint(s))
	}
	checkInvariants(t, back)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, err := stackset.Decode("not json", layout.Decode); err == nil {
		t.Error("garbage input should fail")
	}
	if _, err := stackset.Decode(`{"version":99}`, layout.Decode); err == nil {
		t.Error("unknown version should fail")
	}
}

func TestEncodeSurvivesLayoutState(t *testing.T) {
	// A resized Tall keeps its fraction across the round trip.
	s := mkSet(t, []string{"1"}, 1)
	tall := layout.Tall{NMaster: 2, Delta: 0.05, Frac: 0.65}
	s = s.SetLayout("1", tall)

	data, err := s.Encode()
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	back, err := stackset.Decode(data, layout.Decode)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	got, ok := back.Current.Workspace.Layout.(layout.Tall)
	if !ok {
		t.Fatalf("layout decoded as %T", back.Current.Workspace.Layout)
	}
	if got != tall {
		t.Errorf("layout = %+v, want %+v", got, tall)
	}
}
