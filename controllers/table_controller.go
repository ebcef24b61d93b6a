package controllers

import (
	"net/http"

	"github.com/wenrir/simple-resturant/common/errors"
	"github.com/wenrir/simple-resturant/repository"
	"github.com/wenrir/simple-resturant/services"

	"github.com/gin-gonic/gin"
)

// CheckInRequest defines the request body for checking in a table.
type CheckInRequest struct {
	TableNumber int `json:"table_number" binding:"required,gt=0"`
}

// TableController handles HTTP requests for tables and table-scoped orders.
// Path parameter :id on /tables routes is the client-facing table number.
type TableController struct {
	tables *services.TableService
	store  repository.Store
}

// NewTableController creates a new TableController.
func NewTableController(tables *services.TableService, store repository.Store) *TableController {
	return &TableController{tables: tables, store: store}
}

// List handles GET /tables
func (tc *TableController) List(c *gin.Context) {
	tables, err := tc.store.Tables().All(c.Request.Context())
	if err != nil {
		errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": toTableResponses(tables)})
}

// Get handles GET /tables/:id
func (tc *TableController) Get(c *gin.Context) {
	number, ok := intParam(c, "id")
	if !ok {
		return
	}
	table, err := tc.store.Tables().GetActive(c.Request.Context(), number)
	if err != nil {
		errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": toTableResponse(table)})
}

// CheckIn handles POST /tables/check_in
func (tc *TableController) CheckIn(c *gin.Context) {
	var req CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.Respond(c, errors.Validation(err))
		return
	}
	table, err := tc.tables.CheckIn(c.Request.Context(), req.TableNumber)
	if err != nil {
		errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": toTableResponse(table)})
}

// CheckOut handles POST /tables/:id/check_out
func (tc *TableController) CheckOut(c *gin.Context) {
	number, ok := intParam(c, "id")
	if !ok {
		return
	}
	total, err := tc.tables.Checkout(c.Request.Context(), number)
	if err != nil {
		errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": total})
}

// Orders handles GET /tables/:id/orders
func (tc *TableController) Orders(c *gin.Context) {
	number, ok := intParam(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	table, err := tc.store.Tables().GetActive(ctx, number)
	if err != nil {
		errors.Respond(c, err)
		return
	}
	orders, err := tc.store.Orders().FindForTable(ctx, table.ID)
	if err != nil {
		errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": toOrderResponses(orders)})
}

// Order handles GET /tables/:id/orders/:oid
func (tc *TableController) Order(c *gin.Context) {
	number, ok := intParam(c, "id")
	if !ok {
		return
	}
	orderID, ok := uintParam(c, "oid")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	table, err := tc.store.Tables().GetActive(ctx, number)
	if err != nil {
		errors.Respond(c, err)
		return
	}
	orders, err := tc.store.Orders().FindForTable(ctx, table.ID)
	if err != nil {
		errors.Respond(c, err)
		return
	}
	matched := []OrderResponse{}
	for _, o := range orders {
		if o.ID == orderID {
			matched = append(matched, toOrderResponse(o))
		}
	}
	c.JSON(http.StatusOK, gin.H{"data": matched})
}

// Items handles GET /tables/:id/items/:iid
func (tc *TableController) Items(c *gin.Context) {
	number, ok := intParam(c, "id")
	if !ok {
		return
	}
	itemID, ok := uintParam(c, "iid")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	table, err := tc.store.Tables().GetActive(ctx, number)
	if err != nil {
		errors.Respond(c, err)
		return
	}
	items, err := tc.store.Orders().FindItemsForTable(ctx, table.ID, itemID)
	if err != nil {
		errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items})
}

// DeleteOrder handles DELETE /tables/:id/orders/:oid
func (tc *TableController) DeleteOrder(c *gin.Context) {
	number, ok := intParam(c, "id")
	if !ok {
		return
	}
	orderID, ok := uintParam(c, "oid")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	table, err := tc.store.Tables().GetActive(ctx, number)
	if err != nil {
		errors.Respond(c, err)
		return
	}
	if err := tc.store.Orders().DeleteTableOrder(ctx, table.ID, orderID); err != nil {
		errors.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
