// Package client drives the restaurant API from the command line.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const (
	defaultHost = "localhost"
	defaultPort = "8080"
)

// Client is a thin HTTP wrapper around the restaurant API.
type Client struct {
	baseURL string
	http    *http.Client
}

// OrderLine is one entry of a batch order submission. TableID is the
// client-facing table number.
type OrderLine struct {
	TableID  int  `json:"table_id"`
	ItemID   uint `json:"item_id"`
	Quantity int  `json:"quantity"`
}

// New builds a client against HOST_URL/HOST_PORT, defaulting to
// localhost:8080.
func New() *Client {
	host := os.Getenv("HOST_URL")
	if host == "" {
		host = defaultHost
	}
	port := os.Getenv("HOST_PORT")
	if port == "" {
		port = defaultPort
	}
	return &Client{
		baseURL: fmt.Sprintf("http://%s:%s/api/v1", host, port),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) do(method, path string, body any) (string, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return "", err
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return "", err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	res, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	out, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}
	text := string(out)
	if res.StatusCode >= http.StatusBadRequest {
		return "", fmt.Errorf("%s: %s", res.Status, text)
	}
	if text == "" {
		text = res.Status
	}
	return text, nil
}

func (c *Client) ListItems() (string, error) { return c.do(http.MethodGet, "/items", nil) }

func (c *Client) GetItem(id uint) (string, error) {
	return c.do(http.MethodGet, fmt.Sprintf("/items/%d", id), nil)
}

func (c *Client) AddItem(description string, price, estimatedMinutes int) (string, error) {
	return c.do(http.MethodPost, "/items", map[string]any{
		"description":       description,
		"price":             price,
		"estimated_minutes": estimatedMinutes,
	})
}

func (c *Client) ListTables() (string, error) { return c.do(http.MethodGet, "/tables", nil) }

func (c *Client) GetTable(number int) (string, error) {
	return c.do(http.MethodGet, fmt.Sprintf("/tables/%d", number), nil)
}

func (c *Client) CheckIn(number int) (string, error) {
	return c.do(http.MethodPost, "/tables/check_in", map[string]any{"table_number": number})
}

func (c *Client) CheckOut(number int) (string, error) {
	return c.do(http.MethodPost, fmt.Sprintf("/tables/%d/check_out", number), nil)
}

func (c *Client) TableOrders(number int) (string, error) {
	return c.do(http.MethodGet, fmt.Sprintf("/tables/%d/orders", number), nil)
}

func (c *Client) TableOrder(number int, orderID uint) (string, error) {
	return c.do(http.MethodGet, fmt.Sprintf("/tables/%d/orders/%d", number, orderID), nil)
}

func (c *Client) DeleteTableOrder(number int, orderID uint) (string, error) {
	return c.do(http.MethodDelete, fmt.Sprintf("/tables/%d/orders/%d", number, orderID), nil)
}

func (c *Client) ListOrders() (string, error) { return c.do(http.MethodGet, "/orders", nil) }

func (c *Client) GetOrder(id uint) (string, error) {
	return c.do(http.MethodGet, fmt.Sprintf("/orders/%d", id), nil)
}

func (c *Client) SubmitOrders(lines []OrderLine) (string, error) {
	return c.do(http.MethodPost, "/orders", lines)
}

func (c *Client) DeleteOrder(id uint) (string, error) {
	return c.do(http.MethodDelete, fmt.Sprintf("/orders/%d", id), nil)
}
