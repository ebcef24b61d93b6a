package controllers

import (
	"net/http"
	"strconv"

	"github.com/wenrir/simple-resturant/common/errors"
	"github.com/wenrir/simple-resturant/models"
	"github.com/wenrir/simple-resturant/repository"

	"github.com/gin-gonic/gin"
)

// CreateItemRequest defines the request body for adding a menu item.
type CreateItemRequest struct {
	Description      string `json:"description" binding:"required"`
	Price            int    `json:"price" binding:"required,gte=0"`
	EstimatedMinutes int    `json:"estimated_minutes" binding:"gte=0"`
}

// ItemController handles HTTP requests for the menu.
type ItemController struct {
	items repository.ItemRepository
}

// NewItemController creates a new ItemController.
func NewItemController(items repository.ItemRepository) *ItemController {
	return &ItemController{items: items}
}

// List handles GET /items
func (ic *ItemController) List(c *gin.Context) {
	items, err := ic.items.All(c.Request.Context())
	if err != nil {
		errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items})
}

// Get handles GET /items/:id
func (ic *ItemController) Get(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	item, err := ic.items.Get(c.Request.Context(), id)
	if err != nil {
		errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": item})
}

// Create handles POST /items
func (ic *ItemController) Create(c *gin.Context) {
	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.Respond(c, errors.Validation(err))
		return
	}
	item := models.Item{
		Description:      req.Description,
		Price:            req.Price,
		EstimatedMinutes: req.EstimatedMinutes,
	}
	if err := ic.items.Create(c.Request.Context(), &item); err != nil {
		errors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": item})
}

// uintParam parses a positive integer path parameter, responding with a
// validation error on failure.
func uintParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		errors.Respond(c, errors.New(errors.KindValidation, "Invalid "+name+" parameter", err))
		return 0, false
	}
	return uint(v), true
}

// intParam parses an integer path parameter, responding with a validation
// error on failure.
func intParam(c *gin.Context, name string) (int, bool) {
	raw := c.Param(name)
	v, err := strconv.Atoi(raw)
	if err != nil {
		errors.Respond(c, errors.New(errors.KindValidation, "Invalid "+name+" parameter", err))
		return 0, false
	}
	return v, true
}
