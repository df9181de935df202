package metrics

import (
	"testing"

	"homestead/internal/adapter/metrics/inmemory"
	"homestead/internal/app/ports"
)

func TestFanout_ForwardsToAll(t *testing.T) {
	a := inmemory.NewRecorder()
	b := inmemory.NewRecorder()
	f := NewFanout(a, nil, b)
	if len(f) != 2 {
		t.Fatalf("got=%d want=2", len(f))
	}

	f.RecordSuccess("water")
	f.RecordRejected("already_watered")
	f.RecordConflict()
	f.RecordFailure()
	f.RecordEvents([]ports.EventRecord{{Type: "watered"}})

	for i, r := range []*inmemory.Recorder{a, b} {
		s := r.Snapshot()
		if s.ActionTotal != 4 || s.EventsByType["watered"] != 1 {
			t.Fatalf("recorder %d: unexpected snapshot %+v", i, s)
		}
	}
}
