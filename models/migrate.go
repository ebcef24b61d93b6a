package models

import "gorm.io/gorm"

// Migrate creates the schema. The partial unique index is what makes the
// check-in occupancy invariant hold under concurrent requests: two inserts
// for the same table number can both pass the repository pre-read, but only
// one can commit a row with total = -1.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&Table{}, &Item{}, &Order{}); err != nil {
		return err
	}
	// Supported by both postgres and sqlite.
	return db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_tables_active_number ON tables(table_number) WHERE total = -1`,
	).Error
}
