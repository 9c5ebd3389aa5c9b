package zid

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/zid-upsell/backend/internal/order"
	"github.com/zid-upsell/backend/internal/product"
)

// Client is a minimal wrapper around the Zid REST API, limited to the two
// read endpoints the recommendation engine consumes.
type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
}

// NewClient creates a client for the given API base URL and access token.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpc:   &http.Client{Timeout: 10 * time.Second},
	}
}

// FetchProducts fetches one page of store products.
func (c *Client) FetchProducts(ctx context.Context, page, pageSize int) ([]product.Product, error) {
	data, err := c.get(ctx, "/v1/products/", page, pageSize)
	if err != nil {
		return nil, err
	}
	products := make([]product.Product, 0)
	// a missing or malformed `data` field counts as an empty catalog, not an error
	if len(data) > 0 {
		_ = json.Unmarshal(data, &products)
	}
	return products, nil
}

// FetchOrders fetches one page of historical orders.
func (c *Client) FetchOrders(ctx context.Context, page, pageSize int) ([]order.Order, error) {
	data, err := c.get(ctx, "/v1/managers/store/orders", page, pageSize)
	if err != nil {
		return nil, err
	}
	orders := make([]order.Order, 0)
	if len(data) > 0 {
		_ = json.Unmarshal(data, &orders)
	}
	return orders, nil
}

// get performs an authenticated GET and returns the raw `data` field of the
// response envelope.
func (c *Client) get(ctx context.Context, path string, page, pageSize int) (json.RawMessage, error) {
	if c.token == "" {
		return nil, errors.New("missing access token")
	}

	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("page_size", strconv.Itoa(pageSize))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("zid api returned status %d for %s", resp.StatusCode, path)
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, nil
	}
	return envelope.Data, nil
}
