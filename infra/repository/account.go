package repository

import (
	"context"

	"github.com/amirasaad/digitalbank/pkg/domain/account"
	"github.com/amirasaad/digitalbank/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new GORM-backed account repository.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Get(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	return r.get(r.db.WithContext(ctx), id)
}

// GetForUpdate issues SELECT ... FOR UPDATE. SQLite has no row locks and the
// driver drops the clause; its writes are serialized by the database lock.
func (r *accountRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *accountRepository) get(db *gorm.DB, id uuid.UUID) (*account.Account, error) {
	var m Account
	if err := db.Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translate(err, account.ErrAccountNotFound, nil)
	}
	return mapAccountToDomain(&m)
}

func (r *accountRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*account.Account, error) {
	var models []Account
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at asc").
		Find(&models).Error
	if err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	out := make([]*account.Account, 0, len(models))
	for i := range models {
		a, err := mapAccountToDomain(&models[i])
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func (r *accountRepository) Create(ctx context.Context, a *account.Account) error {
	err := r.db.WithContext(ctx).Create(mapAccountToModel(a)).Error
	return translate(err, nil, account.ErrDuplicateAccountType)
}

// Update persists the balance. Owner and kind never change after creation.
func (r *accountRepository) Update(ctx context.Context, a *account.Account) error {
	res := r.db.WithContext(ctx).
		Model(&Account{}).
		Where("id = ?", a.ID).
		Updates(map[string]any{
			"balance":    NewDecimal(a.Balance.Decimal()),
			"updated_at": a.UpdatedAt,
		})
	if res.Error != nil {
		return MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected == 0 {
		return account.ErrAccountNotFound
	}
	return nil
}
