// Package inventory is the client for the firearms-inventory partner API.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/sammyTGR/tgr-sub005/config"
	"github.com/sammyTGR/tgr-sub005/pkg/httpx"
	"github.com/sammyTGR/tgr-sub005/pkg/metrics"
)

var (
	ErrNotConfigured = errors.New("inventory partner is not configured")
	ErrItemNotFound  = errors.New("inventory item not found")
)

// Item one partner inventory line
type Item struct {
	SKU          string  `json:"sku"`
	UPC          string  `json:"upc,omitempty"`
	Description  string  `json:"description"`
	Manufacturer string  `json:"manufacturer,omitempty"`
	Model        string  `json:"model,omitempty"`
	Category     string  `json:"category,omitempty"`
	Quantity     int     `json:"quantity"`
	Price        float64 `json:"price"`
}

// Client partner API client
type Client struct {
	baseURL string
	apiKey  string
	http    *httpx.Client
}

// NewClient builds a client. Calls return ErrNotConfigured when base_url is empty.
func NewClient(cfg *config.InventoryConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http:    httpx.NewClient(nil, cfg.Timeout, httpx.DefaultRetryConfig(), httpx.DefaultBreakerConfig()),
	}
}

// Search queries items by free text.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]Item, error) {
	q := url.Values{}
	q.Set("search", query)
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	body, err := c.get(ctx, "/v1/items?"+q.Encode())
	if err != nil {
		return nil, err
	}
	return parseItems(body), nil
}

// GetBySKU fetches one item.
func (c *Client) GetBySKU(ctx context.Context, sku string) (*Item, error) {
	body, err := c.get(ctx, "/v1/items/"+url.PathEscape(sku))
	if err != nil {
		return nil, err
	}

	res := gjson.ParseBytes(body)
	if data := res.Get("data"); data.IsObject() {
		res = data
	}
	if !res.Get("sku").Exists() {
		return nil, ErrItemNotFound
	}
	item := itemFrom(res)
	return &item, nil
}

func (c *Client) get(ctx context.Context, path string) (body []byte, err error) {
	if c.baseURL == "" {
		return nil, ErrNotConfigured
	}

	start := time.Now()
	defer func() { metrics.RecordPartnerCall("inventory", err, time.Since(start)) }()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("inventory request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err = io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("inventory response read failed: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrItemNotFound
	case resp.StatusCode >= 300:
		msg := gjson.GetBytes(body, "message").String()
		return nil, fmt.Errorf("inventory partner returned %d: %s", resp.StatusCode, msg)
	}
	return body, nil
}

// parseItems accepts {"items":[...]}, {"data":[...]} or a bare array.
func parseItems(body []byte) []Item {
	res := gjson.ParseBytes(body)
	list := res
	if !res.IsArray() {
		list = res.Get("items")
		if !list.Exists() {
			list = res.Get("data")
		}
	}

	items := make([]Item, 0, len(list.Array()))
	list.ForEach(func(_, v gjson.Result) bool {
		if v.Get("sku").Exists() {
			items = append(items, itemFrom(v))
		}
		return true
	})
	return items
}

func itemFrom(v gjson.Result) Item {
	desc := v.Get("description").String()
	if desc == "" {
		desc = v.Get("name").String()
	}
	qty := v.Get("quantity")
	if !qty.Exists() {
		qty = v.Get("qty_on_hand")
	}
	return Item{
		SKU:          v.Get("sku").String(),
		UPC:          v.Get("upc").String(),
		Description:  desc,
		Manufacturer: v.Get("manufacturer").String(),
		Model:        v.Get("model").String(),
		Category:     v.Get("category").String(),
		Quantity:     int(qty.Int()),
		Price:        v.Get("price").Float(),
	}
}
