package controllers

import (
	"net/http"
	"strings"

	"github.com/wenrir/simple-resturant/common/errors"
	"github.com/wenrir/simple-resturant/repository"
	"github.com/wenrir/simple-resturant/services"

	"github.com/gin-gonic/gin"
)

// OrderController handles HTTP requests for the global order views and batch
// submission.
type OrderController struct {
	orders *services.OrderService
	store  repository.Store
}

// NewOrderController creates a new OrderController.
func NewOrderController(orders *services.OrderService, store repository.Store) *OrderController {
	return &OrderController{orders: orders, store: store}
}

// List handles GET /orders
func (oc *OrderController) List(c *gin.Context) {
	orders, err := oc.store.Orders().All(c.Request.Context())
	if err != nil {
		errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": toOrderResponses(orders)})
}

// Get handles GET /orders/:id. The response is a list: an order whose table
// has already checked out is scoped away and yields an empty list rather
// than an error.
func (oc *OrderController) Get(c *gin.Context) {
	orderID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	orders, err := oc.store.Orders().Find(c.Request.Context(), orderID)
	if err != nil {
		errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": toOrderResponses(orders)})
}

// Create handles POST /orders. The body is a batch of order lines; each line
// succeeds or fails on its own and the response is a newline-joined report.
func (oc *OrderController) Create(c *gin.Context) {
	var lines []services.OrderLine
	if err := c.ShouldBindJSON(&lines); err != nil {
		errors.Respond(c, errors.Validation(err))
		return
	}
	if len(lines) == 0 {
		errors.Respond(c, errors.New(errors.KindValidation, "Order batch is empty", nil))
		return
	}
	results := oc.orders.Submit(c.Request.Context(), lines)
	c.String(http.StatusOK, strings.Join(results, "\n"))
}

// Delete handles DELETE /orders/:id
func (oc *OrderController) Delete(c *gin.Context) {
	orderID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	if err := oc.store.Orders().Delete(c.Request.Context(), orderID); err != nil {
		errors.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
