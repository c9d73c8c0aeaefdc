package repository

import (
	"context"

	"github.com/amirasaad/digitalbank/pkg/domain/customer"
	"github.com/amirasaad/digitalbank/pkg/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new GORM-backed customer repository.
func NewCustomerRepository(db *gorm.DB) repository.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) find(ctx context.Context, query string, arg any) (*customer.Customer, error) {
	var m Customer
	err := r.db.WithContext(ctx).
		Preload("Accounts").
		Where(query, arg).
		First(&m).Error
	if err != nil {
		return nil, translate(err, customer.ErrCustomerNotFound, nil)
	}
	return mapCustomerToDomain(&m), nil
}

func (r *customerRepository) Get(ctx context.Context, id uuid.UUID) (*customer.Customer, error) {
	return r.find(ctx, "id = ?", id)
}

func (r *customerRepository) GetByTaxID(ctx context.Context, taxID string) (*customer.Customer, error) {
	return r.find(ctx, "tax_id = ?", taxID)
}

func (r *customerRepository) List(ctx context.Context) ([]*customer.Customer, error) {
	var models []Customer
	err := r.db.WithContext(ctx).
		Preload("Accounts").
		Order("created_at asc").
		Find(&models).Error
	if err != nil {
		return nil, MapGormErrorToDomain(err)
	}
	out := make([]*customer.Customer, 0, len(models))
	for i := range models {
		out = append(out, mapCustomerToDomain(&models[i]))
	}
	return out, nil
}

func (r *customerRepository) Create(ctx context.Context, c *customer.Customer) error {
	err := r.db.WithContext(ctx).Create(mapCustomerToModel(c)).Error
	return translate(err, nil, customer.ErrDuplicateTaxID)
}

func (r *customerRepository) Update(ctx context.Context, c *customer.Customer) error {
	res := r.db.WithContext(ctx).
		Model(&Customer{}).
		Where("id = ?", c.ID).
		Updates(map[string]any{
			"name":       c.Name,
			"tax_id":     c.TaxID,
			"updated_at": c.UpdatedAt,
		})
	if res.Error != nil {
		return translate(res.Error, customer.ErrCustomerNotFound, customer.ErrDuplicateTaxID)
	}
	if res.RowsAffected == 0 {
		return customer.ErrCustomerNotFound
	}
	return nil
}

// Delete removes the customer's accounts and then the customer. Run it inside
// UnitOfWork.Do so both statements share one transaction.
func (r *customerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("customer_id = ?", id).Delete(&Account{}).Error; err != nil {
		return MapGormErrorToDomain(err)
	}
	res := db.Where("id = ?", id).Delete(&Customer{})
	if res.Error != nil {
		return MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected == 0 {
		return customer.ErrCustomerNotFound
	}
	return nil
}
