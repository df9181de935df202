package gdatarepo

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"homestead/internal/app/ports"
	"homestead/internal/config"
	"homestead/internal/domain/homestead"
	"homestead/internal/domain/world"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestRepo(t *testing.T) *FarmStateRepo {
	t.Helper()
	appName := fmt.Sprintf("homestead_test_%d", time.Now().UnixNano())
	repo, err := Open(appName)
	if err != nil {
		t.Skipf("save data unavailable: %v", err)
	}
	t.Cleanup(func() {
		if home, err := os.UserHomeDir(); err == nil {
			_ = os.RemoveAll(filepath.Join(home, ".local", "share", appName))
		}
	})
	return repo
}

func TestFarmStateRepo_SaveLoadSnapshot(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	content, err := config.DefaultContent()
	require.NoError(t, err)
	opts, err := content.Options(nil)
	require.NoError(t, err)
	opts.Seed = 11
	g, err := homestead.New(opts)
	require.NoError(t, err)
	defer g.Close()
	p := world.Point{X: 1, Y: 1}
	_, err = g.Apply(homestead.Intent{Type: homestead.IntentTill, Pos: p})
	require.NoError(t, err)
	_, err = g.Apply(homestead.Intent{Type: homestead.IntentPlant, Pos: p, Species: "carrot"})
	require.NoError(t, err)
	_, err = g.Apply(homestead.Intent{Type: homestead.IntentWater, Pos: p})
	require.NoError(t, err)
	g.Tick(4 * time.Second)

	_, err = repo.GetByFarmID(ctx, "local")
	require.ErrorIs(t, err, ports.ErrNotFound)

	state := ports.FarmState{FarmID: "local", Snapshot: g.Snapshot(), Version: 1, UpdatedAt: time.Unix(500, 0).UTC()}
	require.NoError(t, repo.SaveWithVersion(ctx, state, 0))
	require.ErrorIs(t, repo.SaveWithVersion(ctx, state, 0), ports.ErrConflict)

	got, err := repo.GetByFarmID(ctx, "local")
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Version)
	assert.Equal(t, 4*time.Second, got.Snapshot.Elapsed)
	assert.Equal(t, 4, got.Snapshot.Farm.Inventory["CarrotSeed"])
	require.Len(t, got.Snapshot.Farm.Cells, 1)
	require.NotNil(t, got.Snapshot.Farm.Cells[0].Crop)
	assert.Equal(t, 4*time.Second, got.Snapshot.Farm.Cells[0].Crop.Growth)

	restored, err := homestead.Restore(opts, got.Snapshot)
	require.NoError(t, err)
	defer restored.Close()
	assert.Equal(t, g.View().Cells, restored.View().Cells)
}
