package inmemory

import (
	"testing"

	"homestead/internal/app/ports"
)

func TestRecorderSnapshot(t *testing.T) {
	r := NewRecorder()
	r.RecordSuccess("till")
	r.RecordSuccess("harvest")
	r.RecordSuccess("till")
	r.RecordRejected("not_ready")
	r.RecordConflict()
	r.RecordFailure()
	r.RecordEvents([]ports.EventRecord{{Type: "tilled"}, {Type: "planted"}, {Type: "tilled"}})

	s := r.Snapshot()
	if s.ActionTotal != 6 {
		t.Fatalf("expected total 6, got %d", s.ActionTotal)
	}
	if s.ActionSuccess != 3 {
		t.Fatalf("expected success 3, got %d", s.ActionSuccess)
	}
	if s.ActionRejected != 1 || s.ByRejection["not_ready"] != 1 {
		t.Fatalf("expected one not_ready rejection, got %d %v", s.ActionRejected, s.ByRejection)
	}
	if s.ActionConflict != 1 {
		t.Fatalf("expected conflict 1, got %d", s.ActionConflict)
	}
	if s.ActionFailure != 1 {
		t.Fatalf("expected failure 1, got %d", s.ActionFailure)
	}
	if s.ByAction["till"] != 2 || s.ByAction["harvest"] != 1 {
		t.Fatalf("unexpected by action %v", s.ByAction)
	}
	if s.EventsByType["tilled"] != 2 || s.EventsByType["planted"] != 1 {
		t.Fatalf("unexpected events %v", s.EventsByType)
	}
}

func TestRecorderSnapshotIsCopy(t *testing.T) {
	r := NewRecorder()
	r.RecordSuccess("till")
	s := r.Snapshot()
	s.ByAction["till"] = 99
	if got := r.Snapshot().ByAction["till"]; got != 1 {
		t.Fatalf("got=%d want=1", got)
	}
}
