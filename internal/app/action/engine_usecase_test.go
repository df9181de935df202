package action

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"homestead/internal/app/ports"
	"homestead/internal/domain/farm"
	"homestead/internal/domain/homestead"
	"homestead/internal/domain/world"
)

var plot = world.Point{X: 2, Y: 3}

func (h *harness) do(t *testing.T, key string, in homestead.Intent) Response {
	t.Helper()
	resp, err := h.uc.Execute(context.Background(), Request{FarmID: "farm-1", IdempotencyKey: key, Intent: in})
	if err != nil {
		t.Fatalf("%s: %v", key, err)
	}
	return resp
}

func TestUseCase_CarrotFlowSettlesWallClock(t *testing.T) {
	h := newHarness(t)

	h.do(t, "k-till", homestead.Intent{Type: homestead.IntentTill, Pos: plot})
	resp := h.do(t, "k-plant", homestead.Intent{Type: homestead.IntentPlant, Pos: plot, Species: "CarrotSeed"})
	if got := resp.View.Inventory["CarrotSeed"]; got != 4 {
		t.Fatalf("seeds got=%d want=4", got)
	}
	h.do(t, "k-water-1", homestead.Intent{Type: homestead.IntentWater, Pos: plot})

	h.advance(5 * time.Second)
	resp = h.do(t, "k-water-2", homestead.Intent{Type: homestead.IntentWater, Pos: plot})
	if resp.SettledMS != 5000 {
		t.Fatalf("settled got=%d want=5000", resp.SettledMS)
	}

	h.advance(5 * time.Second)
	resp = h.do(t, "k-harvest", homestead.Intent{Type: homestead.IntentHarvest, Pos: plot})
	if resp.ResultCode != ResultOK || resp.Action != string(farm.ActionHarvest) {
		t.Fatalf("unexpected response %+v", resp)
	}
	if got := resp.View.Inventory["Carrot"]; got != 1 {
		t.Fatalf("carrots got=%d want=1", got)
	}
	if got := resp.View.Inventory["CarrotSeed"]; got != 6 {
		t.Fatalf("seeds after reward got=%d want=6", got)
	}
	if len(resp.View.Cells) != 1 || resp.View.Cells[0].State != farm.CellTilled {
		t.Fatalf("expected plot back to tilled, got %+v", resp.View.Cells)
	}
	if got := h.states.byFarm["farm-1"].Version; got != 6 {
		t.Fatalf("version got=%d want=6", got)
	}
	if h.metrics.successCalls != 5 {
		t.Fatalf("success calls got=%d want=5", h.metrics.successCalls)
	}

	var types []string
	for _, e := range h.events.events {
		types = append(types, e.Type)
	}
	want := []string{"tilled", "planted", "watered", "watered", "harvested", "objective_completed"}
	if fmt.Sprint(types) != fmt.Sprint(want) {
		t.Fatalf("events got=%v want=%v", types, want)
	}
}

func TestUseCase_Idempotency(t *testing.T) {
	h := newHarness(t)
	req := homestead.Intent{Type: homestead.IntentTill, Pos: plot}

	first := h.do(t, "k-1", req)
	h.advance(time.Minute)
	second := h.do(t, "k-1", req)

	if first.Action != second.Action || len(first.View.Cells) != len(second.View.Cells) {
		t.Fatalf("idempotency broken: first=%+v second=%+v", first, second)
	}
	if got := h.states.byFarm["farm-1"].Version; got != 2 {
		t.Fatalf("replay must not save again, version=%d", got)
	}
	if h.metrics.successCalls != 1 {
		t.Fatalf("replay must not be counted, success=%d", h.metrics.successCalls)
	}
}

func TestUseCase_RejectedActionIsNotPersisted(t *testing.T) {
	h := newHarness(t)
	before := h.states.byFarm["farm-1"]

	_, err := h.uc.Execute(context.Background(), Request{
		FarmID:         "farm-1",
		IdempotencyKey: "k-1",
		Intent:         homestead.Intent{Type: homestead.IntentHarvest, Pos: plot},
	})
	if !errors.Is(err, ErrActionRejected) || !errors.Is(err, farm.ErrNotReady) {
		t.Fatalf("expected rejected not-ready error, got %v", err)
	}
	var rejected *ActionRejectedError
	if !errors.As(err, &rejected) || rejected.Message() == "" {
		t.Fatalf("expected a player message on rejection")
	}
	if h.states.byFarm["farm-1"].Version != before.Version {
		t.Fatalf("rejected action must not save state")
	}
	if len(h.actions.byKey) != 0 || len(h.events.events) != 0 {
		t.Fatalf("rejected action must not record executions or events")
	}
	if h.metrics.rejectedCalls != 1 || h.metrics.lastReason != "not_ready" {
		t.Fatalf("unexpected metrics %+v", h.metrics)
	}
}

func TestUseCase_SettledWitherKeepsItsOwnTime(t *testing.T) {
	h := newHarness(t)
	start := h.now

	h.do(t, "k-till", homestead.Intent{Type: homestead.IntentTill, Pos: plot})
	h.do(t, "k-plant", homestead.Intent{Type: homestead.IntentPlant, Pos: plot, Species: "carrot"})
	h.do(t, "k-water-1", homestead.Intent{Type: homestead.IntentWater, Pos: plot})
	h.advance(5 * time.Second)
	h.do(t, "k-water-2", homestead.Intent{Type: homestead.IntentWater, Pos: plot})
	h.advance(time.Hour)
	h.do(t, "k-till-2", homestead.Intent{Type: homestead.IntentTill, Pos: world.Point{}})

	var withered []ports.EventRecord
	for _, e := range h.events.events {
		if e.Type == string(homestead.EventWithered) {
			withered = append(withered, e)
		}
	}
	if len(withered) != 1 {
		t.Fatalf("withered events got=%d want=1", len(withered))
	}
	// ripe 10s after planting, withered a minute later
	if want := start.Add(70 * time.Second); !withered[0].OccurredAt.Equal(want) {
		t.Fatalf("withered occurred got=%s want=%s", withered[0].OccurredAt, want)
	}
	last := h.events.events[len(h.events.events)-1]
	if last.Type != string(homestead.EventTilled) || !last.OccurredAt.Equal(h.now) {
		t.Fatalf("expected till stamped now, got %+v", last)
	}
}

func TestUseCase_RejectionKeepsSettlementMessages(t *testing.T) {
	h := newHarness(t)

	h.do(t, "k-till", homestead.Intent{Type: homestead.IntentTill, Pos: plot})
	h.do(t, "k-plant", homestead.Intent{Type: homestead.IntentPlant, Pos: plot, Species: "carrot"})
	h.do(t, "k-water-1", homestead.Intent{Type: homestead.IntentWater, Pos: plot})
	h.advance(5 * time.Second)
	h.do(t, "k-water-2", homestead.Intent{Type: homestead.IntentWater, Pos: plot})
	h.advance(time.Hour)

	_, err := h.uc.Execute(context.Background(), Request{
		FarmID:         "farm-1",
		IdempotencyKey: "k-harvest",
		Intent:         homestead.Intent{Type: homestead.IntentHarvest, Pos: plot},
	})
	var rejected *ActionRejectedError
	if !errors.As(err, &rejected) {
		t.Fatalf("expected rejection, got %v", err)
	}
	if len(rejected.Messages) < 2 {
		t.Fatalf("expected settlement and rejection messages, got %q", rejected.Messages)
	}
	if !strings.Contains(rejected.Message(), "has withered") {
		t.Fatalf("wither message dropped: %q", rejected.Messages)
	}
}

func TestUseCase_ValidateRequest(t *testing.T) {
	h := newHarness(t)
	cases := []struct {
		name string
		req  Request
		want error
	}{
		{name: "missing farm", req: Request{IdempotencyKey: "k", Intent: homestead.Intent{Type: homestead.IntentTill}}, want: ErrInvalidRequest},
		{name: "missing key", req: Request{FarmID: "farm-1", Intent: homestead.Intent{Type: homestead.IntentTill}}, want: ErrInvalidRequest},
		{name: "unknown type", req: Request{FarmID: "farm-1", IdempotencyKey: "k", Intent: homestead.Intent{Type: "dig"}}, want: ErrInvalidRequest},
		{name: "plant without species", req: Request{FarmID: "farm-1", IdempotencyKey: "k", Intent: homestead.Intent{Type: homestead.IntentPlant}}, want: ErrInvalidActionParams},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := h.uc.Execute(context.Background(), tc.req); !errors.Is(err, tc.want) {
				t.Fatalf("err got=%v want=%v", err, tc.want)
			}
		})
	}
}

func TestUseCase_NormalizesIntentType(t *testing.T) {
	h := newHarness(t)
	resp := h.do(t, "k-1", homestead.Intent{Type: " Interact ", Pos: plot})
	if resp.Action != string(farm.ActionTill) {
		t.Fatalf("action got=%s want=till", resp.Action)
	}
}

func TestUseCase_ConflictRecorded(t *testing.T) {
	h := newHarness(t)
	repo := &conflictOnSaveStateRepo{stubStateRepo: *h.states}
	h.uc.StateRepo = repo

	_, err := h.uc.Execute(context.Background(), Request{FarmID: "farm-1", IdempotencyKey: "k-1", Intent: homestead.Intent{Type: homestead.IntentTill, Pos: plot}})
	if !errors.Is(err, ports.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if h.metrics.conflictCalls != 1 {
		t.Fatalf("conflict calls got=%d want=1", h.metrics.conflictCalls)
	}
}

func TestUseCase_UnknownFarm(t *testing.T) {
	h := newHarness(t)
	_, err := h.uc.Execute(context.Background(), Request{FarmID: "nope", IdempotencyKey: "k-1", Intent: homestead.Intent{Type: homestead.IntentTill}})
	if !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if h.metrics.failureCalls != 1 {
		t.Fatalf("failure calls got=%d want=1", h.metrics.failureCalls)
	}
}

func TestUseCase_SettlementCapped(t *testing.T) {
	h := newHarness(t)
	h.uc.MaxSettle = 30 * time.Second
	h.do(t, "k-till", homestead.Intent{Type: homestead.IntentTill, Pos: plot})
	h.advance(2 * time.Hour)
	resp := h.do(t, "k-plant", homestead.Intent{Type: homestead.IntentPlant, Pos: plot, Species: "carrot"})
	if resp.SettledMS != 30_000 {
		t.Fatalf("settled got=%d want=30000", resp.SettledMS)
	}
	if resp.View.ElapsedMS != 30_000 {
		t.Fatalf("elapsed got=%d want=30000", resp.View.ElapsedMS)
	}
}
