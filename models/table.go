package models

import "time"

// OpenTotal marks a table row that is still occupied. Checkout replaces it
// with the computed order total, which is always >= 0.
const OpenTotal = -1

// Table is one visit to a physical table. A row is created at check-in and
// closed at checkout by writing the computed total; rows are never deleted,
// so a table number may appear on many historical rows but on at most one
// occupied row (enforced by a partial unique index, see Migrate).
type Table struct {
	ID            uint   `json:"id" gorm:"primaryKey"`
	TableNumber   int    `json:"table_number" gorm:"not null;index"`
	CheckedInTime string `json:"checked_in_time" gorm:"not null"`
	Total         int    `json:"total" gorm:"not null;default:-1"`
}

// Occupied reports whether the row is still open.
func (t Table) Occupied() bool {
	return t.Total == OpenTotal
}

// Timestamp is the canonical format for CheckedInTime and Order.PublishedAt.
func Timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
