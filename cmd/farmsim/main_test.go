package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"homestead/internal/adapter/repo/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	o, err := parseFlags([]string{"-farm", "north", "-steps", "50", "-step", "250ms", "-seed", "9"})
	require.NoError(t, err)
	assert.Equal(t, "north", o.FarmID)
	assert.Equal(t, 50, o.Steps)
	assert.Equal(t, 250*time.Millisecond, o.Step)
	assert.Equal(t, int64(9), o.Seed)

	_, err = parseFlags([]string{"-steps", "0"})
	require.Error(t, err)
}

func TestRun_SavesAndResumes(t *testing.T) {
	store := memory.NewStore()
	repo := memory.NewFarmStateRepo(store)
	ctx := context.Background()
	o, err := parseFlags([]string{"-steps", "200", "-seed", "3", "-w", "1", "-h", "1"})
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, run(ctx, o, repo, &out))
	assert.True(t, strings.Contains(out.String(), "ran 200 steps"), out.String())

	first, err := repo.GetByFarmID(ctx, "local")
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.Version)
	assert.Equal(t, 20*time.Second, first.Snapshot.Elapsed)

	out.Reset()
	require.NoError(t, run(ctx, o, repo, &out))
	second, err := repo.GetByFarmID(ctx, "local")
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.Version)
	assert.Equal(t, 40*time.Second, second.Snapshot.Elapsed)

	o.Fresh = true
	require.NoError(t, run(ctx, o, repo, &out))
	third, err := repo.GetByFarmID(ctx, "local")
	require.NoError(t, err)
	assert.Equal(t, int64(3), third.Version)
	assert.Equal(t, 20*time.Second, third.Snapshot.Elapsed)
}
