package repository

import (
	"context"

	"github.com/amirasaad/digitalbank/pkg/domain/account"
	"github.com/amirasaad/digitalbank/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type historyRepository struct {
	db *gorm.DB
}

// NewHistoryRepository creates a new GORM-backed transaction history repository.
func NewHistoryRepository(db *gorm.DB) repository.HistoryRepository {
	return &historyRepository{db: db}
}

func (r *historyRepository) Create(ctx context.Context, e *account.HistoryEntry) error {
	return WrapError(func() error {
		return r.db.WithContext(ctx).Create(mapHistoryToModel(e)).Error
	})
}

func (r *historyRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*account.HistoryEntry, error) {
	var models []HistoryEntry
	err := r.db.WithContext(ctx).
		Where("origin_account_id = ? OR destination_account_id = ?", accountID, accountID).
		Order("created_at desc").
		Find(&models).Error
	if err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	out := make([]*account.HistoryEntry, 0, len(models))
	for i := range models {
		out = append(out, mapHistoryToDomain(&models[i]))
	}
	return out, nil
}
