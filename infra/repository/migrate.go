package repository

import "gorm.io/gorm"

// AutoMigrate creates or updates the customers, accounts and
// transaction_history tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&Customer{}, &Account{}, &HistoryEntry{})
}
