package models

// Item is a menu entry. Items are immutable after creation: the API exposes
// create/get/list only. Price is in the minor currency unit.
type Item struct {
	ID               uint   `json:"id" gorm:"primaryKey"`
	Description      string `json:"description" gorm:"type:text;not null"`
	Price            int    `json:"price" gorm:"not null"`
	EstimatedMinutes int    `json:"estimated_minutes" gorm:"not null;default:0"`
}
