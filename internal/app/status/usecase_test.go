package status

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"homestead/internal/app/ports"
	"homestead/internal/domain/farm"
	"homestead/internal/domain/homestead"
	"homestead/internal/domain/world"
)

func testContent() homestead.Options {
	return homestead.Options{
		Catalog: farm.MustCatalog(farm.Species{
			Name: "carrot", SeedItem: "CarrotSeed", HarvestItem: "Carrot",
			GrowthDuration: 10 * time.Second, StageCount: 4, WitherDuration: 20 * time.Second,
		}),
		Inventory:     map[string]int{"CarrotSeed": 2},
		WaterInterval: -1,
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

type statusStateRepo struct {
	state ports.FarmState
	err   error
}

func (r statusStateRepo) GetByFarmID(_ context.Context, _ string) (ports.FarmState, error) {
	if r.err != nil {
		return ports.FarmState{}, r.err
	}
	return r.state, nil
}

func (r statusStateRepo) SaveWithVersion(_ context.Context, _ ports.FarmState, _ int64) error {
	return nil
}

func TestUseCase_RejectsEmptyFarmID(t *testing.T) {
	uc := UseCase{StateRepo: statusStateRepo{}}
	if _, err := uc.Execute(context.Background(), Request{FarmID: "  "}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestUseCase_PropagatesRepoError(t *testing.T) {
	uc := UseCase{StateRepo: statusStateRepo{err: ports.ErrNotFound}, Content: testContent()}
	if _, err := uc.Execute(context.Background(), Request{FarmID: "farm-1"}); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUseCase_SummarizesSettledFarm(t *testing.T) {
	now := time.Unix(1_700_000_000, 0).UTC()
	g, err := homestead.New(testContent())
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	wet := world.Point{X: 1, Y: 1}
	dry := world.Point{X: 2, Y: 1}
	bare := world.Point{X: 3, Y: 1}
	for _, in := range []homestead.Intent{
		{Type: homestead.IntentTill, Pos: wet},
		{Type: homestead.IntentPlant, Pos: wet, Species: "carrot"},
		{Type: homestead.IntentWater, Pos: wet},
		{Type: homestead.IntentTill, Pos: dry},
		{Type: homestead.IntentPlant, Pos: dry, Species: "carrot"},
		{Type: homestead.IntentTill, Pos: bare},
	} {
		if _, err := g.Apply(in); err != nil {
			t.Fatalf("apply %s: %v", in.Type, err)
		}
	}
	repo := statusStateRepo{state: ports.FarmState{FarmID: "farm-1", Snapshot: g.Snapshot(), Version: 7, UpdatedAt: now}}
	g.Close()

	uc := UseCase{StateRepo: repo, Content: testContent(), Now: func() time.Time { return now.Add(12 * time.Second) }}
	resp, err := uc.Execute(context.Background(), Request{FarmID: "farm-1"})
	if err != nil {
		t.Fatalf("status error: %v", err)
	}
	if resp.Version != 7 {
		t.Fatalf("version got=%d want=7", resp.Version)
	}
	if resp.ElapsedMS != 12_000 {
		t.Fatalf("elapsed got=%d want=12000", resp.ElapsedMS)
	}
	if resp.Tilled != 3 {
		t.Fatalf("tilled got=%d want=3", resp.Tilled)
	}
	if resp.CellCounts[farm.CellReady] != 1 || resp.CellCounts[farm.CellGrowing] != 1 || resp.CellCounts[farm.CellTilled] != 1 {
		t.Fatalf("unexpected cell counts: %v", resp.CellCounts)
	}
	if len(resp.Ready) != 1 || resp.Ready[0] != wet {
		t.Fatalf("ready got=%v want=[%v]", resp.Ready, wet)
	}
	if len(resp.NeedsWater) != 1 || resp.NeedsWater[0] != dry {
		t.Fatalf("needs water got=%v want=[%v]", resp.NeedsWater, dry)
	}
	if len(resp.Withered) != 0 {
		t.Fatalf("withered got=%v want none", resp.Withered)
	}
	if !resp.MissionIdle || len(resp.Missions) != 0 {
		t.Fatalf("expected idle missions, got idle=%v missions=%v", resp.MissionIdle, resp.Missions)
	}
	if resp.Inventory["CarrotSeed"] != 0 {
		t.Fatalf("seeds got=%d want=0", resp.Inventory["CarrotSeed"])
	}
}
