package gormrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"homestead/internal/adapter/repo/gorm/model"
	"homestead/internal/app/ports"

	"gorm.io/gorm"
)

type FarmStateRepo struct {
	db *gorm.DB
}

func NewFarmStateRepo(db *gorm.DB) FarmStateRepo {
	return FarmStateRepo{db: db}
}

func (r FarmStateRepo) GetByFarmID(ctx context.Context, farmID string) (ports.FarmState, error) {
	var m model.FarmState
	if err := conn(ctx, r.db).Where("farm_id = ?", farmID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.FarmState{}, ports.ErrNotFound
		}
		return ports.FarmState{}, err
	}
	state := ports.FarmState{
		FarmID:    m.FarmID,
		Version:   m.Version,
		UpdatedAt: m.UpdatedAt,
	}
	if err := json.Unmarshal(m.Snapshot, &state.Snapshot); err != nil {
		return ports.FarmState{}, fmt.Errorf("decode farm %s snapshot: %w", farmID, err)
	}
	return state, nil
}

func (r FarmStateRepo) SaveWithVersion(ctx context.Context, state ports.FarmState, expectedVersion int64) error {
	snapshot, err := json.Marshal(state.Snapshot)
	if err != nil {
		return fmt.Errorf("encode farm %s snapshot: %w", state.FarmID, err)
	}
	updatedAt := state.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}

	db := conn(ctx, r.db)
	if expectedVersion == 0 {
		m := model.FarmState{
			FarmID:    state.FarmID,
			Snapshot:  snapshot,
			ElapsedMs: state.Snapshot.Elapsed.Milliseconds(),
			Version:   state.Version,
			UpdatedAt: updatedAt,
		}
		if err := db.Create(&m).Error; err != nil {
			if isUniqueViolation(err) {
				return ports.ErrConflict
			}
			return err
		}
		return nil
	}

	updates := map[string]any{
		"snapshot":   snapshot,
		"elapsed_ms": state.Snapshot.Elapsed.Milliseconds(),
		"version":    state.Version,
		"updated_at": updatedAt,
	}

	res := db.Model(&model.FarmState{}).
		Where("farm_id = ? AND version = ?", state.FarmID, expectedVersion).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrConflict
	}
	return nil
}
