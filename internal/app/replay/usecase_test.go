package replay

import (
	"context"
	"errors"
	"testing"
	"time"

	"homestead/internal/app/ports"
)

func TestUseCase_SummarizesEvents(t *testing.T) {
	repo := &fakeRepo{events: []ports.EventRecord{
		{Type: "tilled", OccurredAt: time.Unix(1, 0)},
		{Type: "planted", OccurredAt: time.Unix(2, 0), Payload: map[string]any{"species": "carrot"}},
		{Type: "harvested", OccurredAt: time.Unix(3, 0), Payload: map[string]any{"harvest_item": "Carrot"}},
		{Type: "objective_completed", OccurredAt: time.Unix(3, 0), Payload: map[string]any{"objective": "Harvest", "reward_item": "CarrotSeed", "reward_amount": 3.0}},
		{Type: "withered", OccurredAt: time.Unix(4, 0), Payload: map[string]any{"species": "rose"}},
	}}

	uc := UseCase{Events: repo}
	out, err := uc.Execute(context.Background(), Request{FarmID: "farm-1", Limit: 10})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if len(out.Events) != 5 {
		t.Fatalf("expected 5 events, got %d", len(out.Events))
	}
	s := out.Summary
	if s.Tilled != 1 || s.Planted["carrot"] != 1 || s.Harvested["Carrot"] != 1 || s.Withered["rose"] != 1 {
		t.Fatalf("unexpected summary %+v", s)
	}
	if len(s.Objectives) != 1 || s.Rewards["CarrotSeed"] != 3 {
		t.Fatalf("unexpected objective summary %+v", s)
	}
	if repo.lastLimit != 10 {
		t.Fatalf("limit got=%d want=10", repo.lastLimit)
	}
}

func TestUseCase_TimeWindowAndLimits(t *testing.T) {
	repo := &fakeRepo{events: []ports.EventRecord{
		{Type: "tilled", OccurredAt: time.Unix(100, 0)},
		{Type: "tilled", OccurredAt: time.Unix(200, 0)},
		{Type: "tilled", OccurredAt: time.Unix(300, 0)},
	}}
	uc := UseCase{Events: repo}

	out, err := uc.Execute(context.Background(), Request{FarmID: "farm-1", OccurredFrom: 150, OccurredTo: 250})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if len(out.Events) != 1 || out.Events[0].OccurredAt.Unix() != 200 {
		t.Fatalf("unexpected window %+v", out.Events)
	}
	if repo.lastLimit != DefaultLimit {
		t.Fatalf("limit got=%d want=%d", repo.lastLimit, DefaultLimit)
	}

	if _, err := uc.Execute(context.Background(), Request{FarmID: "farm-1", Limit: 10_000}); err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if repo.lastLimit != MaxLimit {
		t.Fatalf("limit got=%d want=%d", repo.lastLimit, MaxLimit)
	}

	if _, err := uc.Execute(context.Background(), Request{FarmID: "farm-1", OccurredFrom: 300, OccurredTo: 100}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

type fakeRepo struct {
	events    []ports.EventRecord
	lastLimit int
}

func (r *fakeRepo) Append(_ context.Context, _ string, _ []ports.EventRecord) error {
	return nil
}

func (r *fakeRepo) ListByFarmID(_ context.Context, _ string, limit int) ([]ports.EventRecord, error) {
	r.lastLimit = limit
	return r.events, nil
}
