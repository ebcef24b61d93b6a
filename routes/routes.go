package routes

import (
	"net/http"

	"github.com/wenrir/simple-resturant/controllers"
	"github.com/wenrir/simple-resturant/middleware"

	"github.com/gin-gonic/gin"
)

// Register wires the API surface under /api/v1.
func Register(r *gin.Engine, items *controllers.ItemController, tables *controllers.TableController, orders *controllers.OrderController) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	v1 := r.Group("/api/v1")

	i := v1.Group("/items")
	i.GET("", items.List)
	i.GET("/:id", items.Get)
	i.POST("", items.Create)

	t := v1.Group("/tables")
	t.Use(middleware.CheckedIn())
	t.GET("", tables.List)
	t.POST("/check_in", tables.CheckIn)
	t.GET("/:id", tables.Get)
	t.POST("/:id/check_out", tables.CheckOut)
	t.GET("/:id/orders", tables.Orders)
	t.GET("/:id/orders/:oid", tables.Order)
	t.DELETE("/:id/orders/:oid", tables.DeleteOrder)
	t.GET("/:id/items/:iid", tables.Items)

	o := v1.Group("/orders")
	o.Use(middleware.CheckedIn())
	o.GET("", orders.List)
	o.GET("/:id", orders.Get)
	o.POST("", orders.Create)
	o.DELETE("/:id", orders.Delete)
}
