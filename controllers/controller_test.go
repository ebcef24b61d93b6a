package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/wenrir/simple-resturant/common/logger"
	"github.com/wenrir/simple-resturant/controllers"
	"github.com/wenrir/simple-resturant/models"
	"github.com/wenrir/simple-resturant/repository"
	"github.com/wenrir/simple-resturant/routes"
	"github.com/wenrir/simple-resturant/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	gin.SetMode(gin.TestMode)
	m.Run()
}

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, models.Migrate(db))

	store := repository.NewStore(db)
	tableService := services.NewTableService(store)
	orderService := services.NewOrderService(store)

	r := gin.New()
	routes.Register(r,
		controllers.NewItemController(store.Items()),
		controllers.NewTableController(tableService, store),
		controllers.NewOrderController(orderService, store),
	)
	return r
}

func request(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestFullTableLifecycle(t *testing.T) {
	r := setupRouter(t)

	// Check in table 5.
	w := request(t, r, http.MethodPost, "/api/v1/tables/check_in", gin.H{"table_number": 5})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := decode(t, w)["data"].(map[string]any)
	assert.EqualValues(t, 5, data["table_number"])
	assert.EqualValues(t, -1, data["total"])

	// Create the Coffee item.
	w = request(t, r, http.MethodPost, "/api/v1/items", gin.H{"description": "Coffee", "price": 3})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	item := decode(t, w)["data"].(map[string]any)
	itemID := int(item["id"].(float64))

	// Submit one order line: 2x Coffee for table 5.
	w = request(t, r, http.MethodPost, "/api/v1/orders", []gin.H{
		{"table_id": 5, "item_id": itemID, "quantity": 2},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.True(t, strings.HasPrefix(w.Body.String(), "OK:"), w.Body.String())

	// The table's orders show one line with quantity 2.
	w = request(t, r, http.MethodGet, "/api/v1/tables/5/orders", nil)
	require.Equal(t, http.StatusOK, w.Code)
	orders := decode(t, w)["data"].([]any)
	require.Len(t, orders, 1)
	assert.EqualValues(t, 2, orders[0].(map[string]any)["quantity"])

	// Checkout totals 2 * 3.
	w = request(t, r, http.MethodPost, "/api/v1/tables/5/check_out", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.EqualValues(t, 6, decode(t, w)["data"])

	// A second checkout reports the same total and does not error.
	w = request(t, r, http.MethodPost, "/api/v1/tables/5/check_out", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.EqualValues(t, 6, decode(t, w)["data"])
}

func TestDoubleCheckInConflicts(t *testing.T) {
	r := setupRouter(t)

	w := request(t, r, http.MethodPost, "/api/v1/tables/check_in", gin.H{"table_number": 7})
	require.Equal(t, http.StatusOK, w.Code)

	w = request(t, r, http.MethodPost, "/api/v1/tables/check_in", gin.H{"table_number": 7})
	assert.Equal(t, http.StatusConflict, w.Code)
	body := decode(t, w)
	assert.Equal(t, "conflict", body["kind"])
	assert.NotEmpty(t, body["error"])
}

func TestGetMissingItem(t *testing.T) {
	r := setupRouter(t)

	w := request(t, r, http.MethodGet, "/api/v1/items/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not_found", decode(t, w)["kind"])
}

func TestCheckInValidation(t *testing.T) {
	r := setupRouter(t)

	w := request(t, r, http.MethodPost, "/api/v1/tables/check_in", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "validation", decode(t, w)["kind"])

	w = request(t, r, http.MethodPost, "/api/v1/tables/check_in", gin.H{"table_number": -2})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBatchOrderPartialSuccess(t *testing.T) {
	r := setupRouter(t)

	request(t, r, http.MethodPost, "/api/v1/tables/check_in", gin.H{"table_number": 5})
	w := request(t, r, http.MethodPost, "/api/v1/items", gin.H{"description": "Coffee", "price": 3})
	itemID := int(decode(t, w)["data"].(map[string]any)["id"].(float64))

	w = request(t, r, http.MethodPost, "/api/v1/orders", []gin.H{
		{"table_id": 5, "item_id": itemID, "quantity": 1},
		{"table_id": 9, "item_id": itemID, "quantity": 1},
		{"table_id": 5, "item_id": itemID, "quantity": 2},
	})
	require.Equal(t, http.StatusOK, w.Code)

	lines := strings.Split(w.Body.String(), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "OK:"), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "ERROR:"), lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "OK:"), lines[2])

	w = request(t, r, http.MethodGet, "/api/v1/orders", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["data"].([]any), 2)
}

func TestScopedOrderDelete(t *testing.T) {
	r := setupRouter(t)

	request(t, r, http.MethodPost, "/api/v1/tables/check_in", gin.H{"table_number": 5})
	request(t, r, http.MethodPost, "/api/v1/tables/check_in", gin.H{"table_number": 6})
	w := request(t, r, http.MethodPost, "/api/v1/items", gin.H{"description": "Cake", "price": 7})
	itemID := int(decode(t, w)["data"].(map[string]any)["id"].(float64))

	request(t, r, http.MethodPost, "/api/v1/orders", []gin.H{
		{"table_id": 5, "item_id": itemID, "quantity": 1},
	})

	w = request(t, r, http.MethodGet, "/api/v1/tables/5/orders", nil)
	orders := decode(t, w)["data"].([]any)
	require.Len(t, orders, 1)
	orderID := int(orders[0].(map[string]any)["id"].(float64))

	// Wrong table: not found, order survives.
	w = request(t, r, http.MethodDelete, fmt.Sprintf("/api/v1/tables/6/orders/%d", orderID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = request(t, r, http.MethodGet, "/api/v1/tables/5/orders", nil)
	assert.Len(t, decode(t, w)["data"].([]any), 1)

	// Owning table: deleted.
	w = request(t, r, http.MethodDelete, fmt.Sprintf("/api/v1/tables/5/orders/%d", orderID), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = request(t, r, http.MethodGet, "/api/v1/tables/5/orders", nil)
	assert.Empty(t, decode(t, w)["data"])
}

func TestTableResponseHidesSurrogateID(t *testing.T) {
	r := setupRouter(t)

	w := request(t, r, http.MethodPost, "/api/v1/tables/check_in", gin.H{"table_number": 4})
	require.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]any)
	_, hasID := data["id"]
	assert.False(t, hasID, "surrogate id must not leak to clients")
}

func TestGetOrderScopedToActiveTables(t *testing.T) {
	r := setupRouter(t)

	request(t, r, http.MethodPost, "/api/v1/tables/check_in", gin.H{"table_number": 5})
	w := request(t, r, http.MethodPost, "/api/v1/items", gin.H{"description": "Tea", "price": 2})
	itemID := int(decode(t, w)["data"].(map[string]any)["id"].(float64))
	request(t, r, http.MethodPost, "/api/v1/orders", []gin.H{
		{"table_id": 5, "item_id": itemID, "quantity": 1},
	})

	w = request(t, r, http.MethodGet, "/api/v1/tables/5/orders", nil)
	orders := decode(t, w)["data"].([]any)
	require.Len(t, orders, 1)
	orderID := int(orders[0].(map[string]any)["id"].(float64))

	w = request(t, r, http.MethodGet, fmt.Sprintf("/api/v1/orders/%d", orderID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["data"].([]any), 1)

	// After checkout the order is scoped away from the active view.
	request(t, r, http.MethodPost, "/api/v1/tables/5/check_out", nil)
	w = request(t, r, http.MethodGet, fmt.Sprintf("/api/v1/orders/%d", orderID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode(t, w)["data"])
}

func TestTableItemsLookup(t *testing.T) {
	r := setupRouter(t)

	request(t, r, http.MethodPost, "/api/v1/tables/check_in", gin.H{"table_number": 3})
	w := request(t, r, http.MethodPost, "/api/v1/items", gin.H{"description": "Coffee", "price": 3})
	itemID := int(decode(t, w)["data"].(map[string]any)["id"].(float64))
	request(t, r, http.MethodPost, "/api/v1/orders", []gin.H{
		{"table_id": 3, "item_id": itemID, "quantity": 1},
	})

	w = request(t, r, http.MethodGet, fmt.Sprintf("/api/v1/tables/3/items/%d", itemID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	items := decode(t, w)["data"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "Coffee", items[0].(map[string]any)["description"])
}

func TestCheckedOutTableNotRetrievable(t *testing.T) {
	r := setupRouter(t)

	request(t, r, http.MethodPost, "/api/v1/tables/check_in", gin.H{"table_number": 8})
	request(t, r, http.MethodPost, "/api/v1/tables/8/check_out", nil)

	w := request(t, r, http.MethodGet, "/api/v1/tables/8", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// But the closed row still shows up in the full listing.
	w = request(t, r, http.MethodGet, "/api/v1/tables", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["data"].([]any), 1)
}
