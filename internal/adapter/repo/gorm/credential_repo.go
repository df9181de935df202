package gormrepo

import (
	"context"
	"errors"
	"strings"
	"time"

	"homestead/internal/adapter/repo/gorm/model"
	"homestead/internal/app/ports"

	"gorm.io/gorm"
)

type FarmCredentialRepo struct {
	db *gorm.DB
}

func NewFarmCredentialRepo(db *gorm.DB) FarmCredentialRepo {
	return FarmCredentialRepo{db: db}
}

func (r FarmCredentialRepo) Create(ctx context.Context, credential ports.FarmCredentialRecord) error {
	row := model.FarmCredential{
		FarmID:    credential.FarmID,
		KeySalt:   credential.KeySalt,
		KeyHash:   credential.KeyHash,
		Status:    credential.Status,
		CreatedAt: credential.CreatedAt,
		UpdatedAt: time.Now().UTC(),
	}
	if err := conn(ctx, r.db).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return ports.ErrConflict
		}
		return err
	}
	return nil
}

func (r FarmCredentialRepo) GetByFarmID(ctx context.Context, farmID string) (ports.FarmCredentialRecord, error) {
	var row model.FarmCredential
	if err := conn(ctx, r.db).Where(&model.FarmCredential{FarmID: farmID}).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.FarmCredentialRecord{}, ports.ErrNotFound
		}
		return ports.FarmCredentialRecord{}, err
	}
	return ports.FarmCredentialRecord{
		FarmID:    row.FarmID,
		KeySalt:   row.KeySalt,
		KeyHash:   row.KeyHash,
		Status:    row.Status,
		CreatedAt: row.CreatedAt,
	}, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
