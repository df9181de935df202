package gormrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"homestead/internal/adapter/repo/gorm/model"
	"homestead/internal/app/ports"

	"gorm.io/gorm"
)

type ActionExecutionRepo struct {
	db *gorm.DB
}

func NewActionExecutionRepo(db *gorm.DB) ActionExecutionRepo {
	return ActionExecutionRepo{db: db}
}

func (r ActionExecutionRepo) GetByIdempotencyKey(ctx context.Context, farmID, key string) (*ports.ActionExecutionRecord, error) {
	var m model.ActionExecution
	err := conn(ctx, r.db).
		Where(&model.ActionExecution{FarmID: farmID, IdempotencyKey: key}).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	var result ports.ActionResult
	if err := json.Unmarshal(m.Result, &result); err != nil {
		return nil, fmt.Errorf("decode execution %s/%s: %w", farmID, key, err)
	}
	return &ports.ActionExecutionRecord{
		FarmID:         m.FarmID,
		IdempotencyKey: m.IdempotencyKey,
		IntentType:     m.IntentType,
		Result:         result,
		AppliedAt:      m.AppliedAt,
	}, nil
}

func (r ActionExecutionRepo) SaveExecution(ctx context.Context, execution ports.ActionExecutionRecord) error {
	result, err := json.Marshal(execution.Result)
	if err != nil {
		return fmt.Errorf("encode execution result: %w", err)
	}
	m := model.ActionExecution{
		FarmID:         execution.FarmID,
		IdempotencyKey: execution.IdempotencyKey,
		IntentType:     execution.IntentType,
		ResultCode:     execution.Result.ResultCode,
		Result:         result,
		AppliedAt:      execution.AppliedAt,
	}
	if err := conn(ctx, r.db).Create(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return ports.ErrConflict
		}
		return err
	}
	return nil
}
