package inmemory

import (
	"maps"
	"sync"

	"homestead/internal/app/ports"
)

type Snapshot struct {
	ActionTotal    uint64            `json:"action_total"`
	ActionSuccess  uint64            `json:"action_success"`
	ActionRejected uint64            `json:"action_rejected"`
	ActionConflict uint64            `json:"action_conflict"`
	ActionFailure  uint64            `json:"action_failure"`
	ByAction       map[string]uint64 `json:"by_action"`
	ByRejection    map[string]uint64 `json:"by_rejection"`
	EventsByType   map[string]uint64 `json:"events_by_type"`
}

type Recorder struct {
	mu          sync.Mutex
	success     uint64
	rejected    uint64
	conflict    uint64
	failure     uint64
	byAction    map[string]uint64
	byRejection map[string]uint64
	events      map[string]uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		byAction:    map[string]uint64{},
		byRejection: map[string]uint64{},
		events:      map[string]uint64{},
	}
}

func (r *Recorder) RecordSuccess(action string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.success++
	r.byAction[action]++
}

func (r *Recorder) RecordRejected(reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rejected++
	r.byRejection[reason]++
}

func (r *Recorder) RecordConflict() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conflict++
}

func (r *Recorder) RecordFailure() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failure++
}

func (r *Recorder) RecordEvents(events []ports.EventRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range events {
		r.events[e.Type]++
	}
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	return Snapshot{
		ActionSuccess:  r.success,
		ActionRejected: r.rejected,
		ActionConflict: r.conflict,
		ActionFailure:  r.failure,
		ActionTotal:    r.success + r.rejected + r.conflict + r.failure,
		ByAction:       maps.Clone(r.byAction),
		ByRejection:    maps.Clone(r.byRejection),
		EventsByType:   maps.Clone(r.events),
	}
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
