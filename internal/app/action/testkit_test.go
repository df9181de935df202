package action

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"homestead/internal/app/ports"
	"homestead/internal/domain/farm"
	"homestead/internal/domain/homestead"
	"homestead/internal/domain/mission"
)

type stubTxManager struct{}

func (stubTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type stubStateRepo struct {
	byFarm map[string]ports.FarmState
}

func (r *stubStateRepo) GetByFarmID(_ context.Context, farmID string) (ports.FarmState, error) {
	state, ok := r.byFarm[farmID]
	if !ok {
		return ports.FarmState{}, ports.ErrNotFound
	}
	return state, nil
}

func (r *stubStateRepo) SaveWithVersion(_ context.Context, state ports.FarmState, expectedVersion int64) error {
	current, ok := r.byFarm[state.FarmID]
	if !ok {
		if expectedVersion != 0 {
			return ports.ErrConflict
		}
		r.byFarm[state.FarmID] = state
		return nil
	}
	if current.Version != expectedVersion {
		return ports.ErrConflict
	}
	r.byFarm[state.FarmID] = state
	return nil
}

type conflictOnSaveStateRepo struct {
	stubStateRepo
}

func (r *conflictOnSaveStateRepo) SaveWithVersion(_ context.Context, _ ports.FarmState, _ int64) error {
	return ports.ErrConflict
}

type stubActionRepo struct {
	byKey map[string]ports.ActionExecutionRecord
}

func (r *stubActionRepo) GetByIdempotencyKey(_ context.Context, farmID, key string) (*ports.ActionExecutionRecord, error) {
	record, ok := r.byKey[farmID+"|"+key]
	if !ok {
		return nil, ports.ErrNotFound
	}
	copy := record
	return &copy, nil
}

func (r *stubActionRepo) SaveExecution(_ context.Context, execution ports.ActionExecutionRecord) error {
	r.byKey[execution.FarmID+"|"+execution.IdempotencyKey] = execution
	return nil
}

type stubEventRepo struct {
	events []ports.EventRecord
}

func (r *stubEventRepo) Append(_ context.Context, _ string, events []ports.EventRecord) error {
	r.events = append(r.events, events...)
	return nil
}

func (r *stubEventRepo) ListByFarmID(_ context.Context, _ string, limit int) ([]ports.EventRecord, error) {
	if limit <= 0 || limit > len(r.events) {
		limit = len(r.events)
	}
	out := make([]ports.EventRecord, limit)
	copy(out, r.events[len(r.events)-limit:])
	return out, nil
}

type stubActionMetrics struct {
	successCalls  int
	rejectedCalls int
	conflictCalls int
	failureCalls  int
	lastAction    string
	lastReason    string
	events        int
}

func (m *stubActionMetrics) RecordSuccess(action string) {
	m.successCalls++
	m.lastAction = action
}

func (m *stubActionMetrics) RecordRejected(reason string) {
	m.rejectedCalls++
	m.lastReason = reason
}

func (m *stubActionMetrics) RecordConflict() {
	m.conflictCalls++
}

func (m *stubActionMetrics) RecordFailure() {
	m.failureCalls++
}

func (m *stubActionMetrics) RecordEvents(events []ports.EventRecord) {
	m.events += len(events)
}

func testContent() homestead.Options {
	return homestead.Options{
		Catalog: farm.MustCatalog(farm.Species{
			Name: "carrot", SeedItem: "CarrotSeed", HarvestItem: "Carrot",
			GrowthDuration: 10 * time.Second, StageCount: 4, WitherDuration: time.Minute,
		}),
		Inventory: map[string]int{"CarrotSeed": 5},
		Missions: []mission.Objective{
			{Name: "Harvest a carrot", Kind: mission.KindHarvest, Species: "carrot", Required: 1, RewardItem: "CarrotSeed", RewardAmount: 2},
		},
		MaxActive: 1,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

type harness struct {
	uc      UseCase
	states  *stubStateRepo
	actions *stubActionRepo
	events  *stubEventRepo
	metrics *stubActionMetrics
	now     time.Time
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		states:  &stubStateRepo{byFarm: map[string]ports.FarmState{}},
		actions: &stubActionRepo{byKey: map[string]ports.ActionExecutionRecord{}},
		events:  &stubEventRepo{},
		metrics: &stubActionMetrics{},
		now:     time.Unix(1_700_000_000, 0).UTC(),
	}
	g, err := homestead.New(testContent())
	if err != nil {
		t.Fatalf("seed game: %v", err)
	}
	h.states.byFarm["farm-1"] = ports.FarmState{FarmID: "farm-1", Snapshot: g.Snapshot(), Version: 1, UpdatedAt: h.now}
	g.Close()

	h.uc = UseCase{
		TxManager:  stubTxManager{},
		StateRepo:  h.states,
		ActionRepo: h.actions,
		EventRepo:  h.events,
		Metrics:    h.metrics,
		Content:    testContent(),
		Now:        func() time.Time { return h.now },
	}
	return h
}

func (h *harness) advance(d time.Duration) {
	h.now = h.now.Add(d)
}
