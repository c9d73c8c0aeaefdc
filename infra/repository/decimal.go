package repository

import (
	"database/sql/driver"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Decimal is the column type of stored amounts. Postgres keeps it as
// NUMERIC(19,3). SQLite gets a TEXT column: with NUMERIC affinity it would
// coerce values past 15 significant digits to REAL.
type Decimal struct {
	decimal.Decimal
}

// NewDecimal wraps d for storage.
func NewDecimal(d decimal.Decimal) Decimal {
	return Decimal{Decimal: d}
}

// GormDBDataType picks the column type per dialect.
func (Decimal) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "sqlite" {
		return "text"
	}
	return "decimal(19,3)"
}

// Value writes the exact decimal string.
func (d Decimal) Value() (driver.Value, error) {
	return d.Decimal.Value()
}

// Scan reads a NUMERIC, TEXT or legacy REAL column.
func (d *Decimal) Scan(value any) error {
	return d.Decimal.Scan(value)
}
