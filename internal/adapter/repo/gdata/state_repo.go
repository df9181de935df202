// Package gdatarepo keeps farm saves in per-user data slots for offline runs.
package gdatarepo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"homestead/internal/app/ports"
	"homestead/internal/domain/homestead"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const farmsObject = "farms"

type slot struct {
	FarmID    string             `yaml:"farm_id"`
	Version   int64              `yaml:"version"`
	UpdatedAt time.Time          `yaml:"updated_at"`
	Snapshot  homestead.Snapshot `yaml:"snapshot"`
}

// FarmStateRepo stores one yaml document per farm under the "farms" object.
type FarmStateRepo struct {
	mu      sync.Mutex
	manager *gdata.Manager
}

func Open(appName string) (*FarmStateRepo, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("open save data %q: %w", appName, err)
	}
	return NewFarmStateRepo(m), nil
}

func NewFarmStateRepo(m *gdata.Manager) *FarmStateRepo {
	return &FarmStateRepo{manager: m}
}

func (r *FarmStateRepo) GetByFarmID(_ context.Context, farmID string) (ports.FarmState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok, err := r.load(farmID)
	if err != nil {
		return ports.FarmState{}, err
	}
	if !ok {
		return ports.FarmState{}, ports.ErrNotFound
	}
	return ports.FarmState{
		FarmID:    s.FarmID,
		Snapshot:  s.Snapshot,
		Version:   s.Version,
		UpdatedAt: s.UpdatedAt,
	}, nil
}

func (r *FarmStateRepo) SaveWithVersion(_ context.Context, state ports.FarmState, expectedVersion int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok, err := r.load(state.FarmID)
	if err != nil {
		return err
	}
	switch {
	case !ok && expectedVersion != 0:
		return ports.ErrConflict
	case ok && current.Version != expectedVersion:
		return ports.ErrConflict
	}
	data, err := yaml.Marshal(slot{
		FarmID:    state.FarmID,
		Version:   state.Version,
		UpdatedAt: state.UpdatedAt,
		Snapshot:  state.Snapshot,
	})
	if err != nil {
		return fmt.Errorf("encode save %s: %w", state.FarmID, err)
	}
	if err := r.manager.SaveObjectProp(farmsObject, state.FarmID, data); err != nil {
		return fmt.Errorf("write save %s: %w", state.FarmID, err)
	}
	return nil
}

func (r *FarmStateRepo) load(farmID string) (slot, bool, error) {
	if !r.manager.ObjectPropExists(farmsObject, farmID) {
		return slot{}, false, nil
	}
	data, err := r.manager.LoadObjectProp(farmsObject, farmID)
	if err != nil {
		return slot{}, false, fmt.Errorf("read save %s: %w", farmID, err)
	}
	var s slot
	if err := yaml.Unmarshal(data, &s); err != nil {
		return slot{}, false, fmt.Errorf("decode save %s: %w", farmID, err)
	}
	return s, true, nil
}
