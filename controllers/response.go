package controllers

import "github.com/wenrir/simple-resturant/models"

// Surrogate keys are a storage detail; clients address tables by number and
// orders never expose which row the table occupies. These DTOs keep that
// presentation rule out of the entity layer.

// TableResponse is the client-facing shape of a table row.
type TableResponse struct {
	TableNumber   int    `json:"table_number"`
	CheckedInTime string `json:"checked_in_time"`
	Total         int    `json:"total"`
}

// OrderResponse is the client-facing shape of an order row.
type OrderResponse struct {
	ID          uint   `json:"id"`
	ItemID      uint   `json:"item_id"`
	Quantity    int    `json:"quantity"`
	PublishedAt string `json:"published_at"`
}

func toTableResponse(t models.Table) TableResponse {
	return TableResponse{
		TableNumber:   t.TableNumber,
		CheckedInTime: t.CheckedInTime,
		Total:         t.Total,
	}
}

func toTableResponses(tables []models.Table) []TableResponse {
	out := make([]TableResponse, 0, len(tables))
	for _, t := range tables {
		out = append(out, toTableResponse(t))
	}
	return out
}

func toOrderResponse(o models.Order) OrderResponse {
	return OrderResponse{
		ID:          o.ID,
		ItemID:      o.ItemID,
		Quantity:    o.Quantity,
		PublishedAt: o.PublishedAt,
	}
}

func toOrderResponses(orders []models.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	return out
}
