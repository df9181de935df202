package driver

import (
	"context"
	"testing"
	"time"

	"homestead/internal/domain/farm"
	"homestead/internal/domain/homestead"
	"homestead/internal/domain/world"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGame(t *testing.T, seeds int) *homestead.Game {
	t.Helper()
	catalog := farm.MustCatalog(farm.Species{
		Name:           "carrot",
		SeedItem:       "CarrotSeed",
		HarvestItem:    "Carrot",
		GrowthDuration: 10 * time.Second,
		StageCount:     4,
		WitherDuration: 30 * time.Second,
	})
	g, err := homestead.New(homestead.Options{
		Catalog:   catalog,
		Field:     world.DefaultField(),
		Inventory: map[string]int{"CarrotSeed": seeds},
		Seed:      1,
	})
	require.NoError(t, err)
	t.Cleanup(g.Close)
	return g
}

func TestLoop_AutopilotHarvestsCarrots(t *testing.T) {
	g := newGame(t, 2)
	var seen []homestead.Event
	loop := &Loop{
		Game:     g,
		Pilot:    NewAutopilot(g.Farm.Field(), world.Point{X: 0, Y: 0}, 1, 1),
		OnEvents: func(evts []homestead.Event) { seen = append(seen, evts...) },
	}

	stats, err := loop.Run(context.Background(), 400)
	require.NoError(t, err)

	assert.Equal(t, 400, stats.Steps)
	assert.Equal(t, 40*time.Second, stats.Elapsed)
	assert.Equal(t, 40*time.Second, g.Elapsed())
	assert.GreaterOrEqual(t, stats.Actions[farm.ActionHarvest], 1)
	assert.GreaterOrEqual(t, g.Farm.Ledger().Count("Carrot"), 1)
	assert.Equal(t, 1, stats.Events[homestead.EventTilled])
	assert.NotEmpty(t, seen)
}

func TestLoop_ClockOnlyWithoutPilot(t *testing.T) {
	g := newGame(t, 1)
	loop := &Loop{Game: g, Step: time.Second}
	stats, err := loop.Run(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, g.Elapsed())
	assert.Empty(t, stats.Actions)
}

func TestLoop_StopsOnCancel(t *testing.T) {
	g := newGame(t, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	stats, err := (&Loop{Game: g}).Run(ctx, 10)
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, stats.Steps)
}

func TestLoop_RequiresGame(t *testing.T) {
	_, err := (&Loop{}).Run(context.Background(), 1)
	require.ErrorIs(t, err, ErrNoGame)
}

func TestNewAutopilot_ClipsToField(t *testing.T) {
	field := world.Bounds{Min: world.Point{X: 0, Y: 0}, Max: world.Point{X: 2, Y: 2}}
	a := NewAutopilot(field, world.Point{X: 1, Y: 1}, 3, 3)
	assert.Equal(t, []world.Point{{X: 1, Y: 1}}, a.Plots)
}

func TestAutopilot_RunsOutOfSeeds(t *testing.T) {
	g := newGame(t, 0)
	a := NewAutopilot(g.Farm.Field(), world.Point{X: 0, Y: 0}, 1, 1)
	first := a.Act(g)
	require.Len(t, first, 1)
	assert.Equal(t, farm.ActionTill, first[0].Action)
	second := a.Act(g)
	require.Len(t, second, 1)
	assert.ErrorIs(t, second[0].Err, farm.ErrNoSeeds)
}
