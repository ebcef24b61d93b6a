package models

// Order is one line item ordered by an occupied table. TableID references the
// surrogate table id, never the client-facing table number.
type Order struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	ItemID      uint   `json:"item_id" gorm:"not null;index"`
	TableID     uint   `json:"table_id" gorm:"not null;index"`
	Quantity    int    `json:"quantity" gorm:"not null"`
	PublishedAt string `json:"published_at" gorm:"not null"`
}
