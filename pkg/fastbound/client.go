// Package fastbound is the client for the FastBound FFL bound-book API.
package fastbound

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/sammyTGR/tgr-sub005/config"
	"github.com/sammyTGR/tgr-sub005/pkg/httpx"
	"github.com/sammyTGR/tgr-sub005/pkg/metrics"
)

var (
	ErrNotConfigured   = errors.New("fastbound is not configured")
	ErrContactNotFound = errors.New("fastbound contact not found")
)

// APIError non-2xx FastBound answer
type APIError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("fastbound returned %d: %s", e.StatusCode, e.Message)
}

// Contact FastBound contact (the transferring licensee)
type Contact struct {
	ID          string `json:"id"`
	FFLNumber   string `json:"fflNumber"`
	LicenseName string `json:"licenseName"`
}

// ContactRequest body for contact creation
type ContactRequest struct {
	FFLNumber       string `json:"fflNumber"`
	FFLExpires      string `json:"fflExpires,omitempty"`
	LicenseName     string `json:"licenseName"`
	TradeName       string `json:"tradeName,omitempty"`
	PremiseAddress1 string `json:"premiseAddress1,omitempty"`
	PremiseCity     string `json:"premiseCity,omitempty"`
	PremiseState    string `json:"premiseState,omitempty"`
	PremiseZipCode  string `json:"premiseZipCode,omitempty"`
	PhoneNumber     string `json:"phoneNumber,omitempty"`
	EmailAddress    string `json:"emailAddress,omitempty"`
}

// AcquisitionItem one firearm on an acquisition
type AcquisitionItem struct {
	Manufacturer string  `json:"manufacturer"`
	Importer     string  `json:"importer,omitempty"`
	Model        string  `json:"model"`
	Caliber      string  `json:"caliber"`
	Type         string  `json:"type"`
	Serial       string  `json:"serial"`
	Condition    string  `json:"condition,omitempty"`
	Cost         float64 `json:"cost,omitempty"`
	Price        float64 `json:"price,omitempty"`
	Note         string  `json:"note,omitempty"`
}

// AcquisitionRequest body for create-and-commit
type AcquisitionRequest struct {
	ContactID           string            `json:"contactId"`
	PurchaseOrderNumber string            `json:"purchaseOrderNumber,omitempty"`
	InvoiceNumber       string            `json:"invoiceNumber,omitempty"`
	Note                string            `json:"note,omitempty"`
	Items               []AcquisitionItem `json:"items"`
}

// AcquisitionResult committed acquisition id plus the raw response
type AcquisitionResult struct {
	ID  string
	Raw json.RawMessage
}

// Client FastBound API client
type Client struct {
	baseURL   string
	apiKey    string
	auditUser string
	read      *httpx.Client
	write     *httpx.Client
}

// NewClient builds a client rooted at {base_url}/{account}/api.
func NewClient(cfg *config.FastBoundConfig) *Client {
	base := ""
	if cfg.BaseURL != "" && cfg.Account != "" {
		base = strings.TrimRight(cfg.BaseURL, "/") + "/" + url.PathEscape(cfg.Account) + "/api"
	}

	// writes only retry when the partner rejected the call outright
	writeRetry := httpx.DefaultRetryConfig()
	writeRetry.RetryableStatusCodes = []int{http.StatusTooManyRequests}

	return &Client{
		baseURL:   base,
		apiKey:    cfg.APIKey,
		auditUser: cfg.AuditUser,
		read:      httpx.NewClient(nil, cfg.Timeout, httpx.DefaultRetryConfig(), httpx.DefaultBreakerConfig()),
		write:     httpx.NewClient(nil, cfg.Timeout, writeRetry, httpx.DefaultBreakerConfig()),
	}
}

// FindContactByFFL returns ErrContactNotFound when no contact carries the number.
func (c *Client) FindContactByFFL(ctx context.Context, fflNumber string) (*Contact, error) {
	q := url.Values{}
	q.Set("fflNumber", fflNumber)

	body, err := c.do(ctx, c.read, http.MethodGet, "/Contacts?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	list := gjson.GetBytes(body, "contacts")
	if !list.Exists() {
		list = gjson.ParseBytes(body)
	}
	for _, v := range list.Array() {
		if strings.EqualFold(v.Get("fflNumber").String(), fflNumber) {
			return contactFrom(v), nil
		}
	}
	return nil, ErrContactNotFound
}

// CreateContact creates a contact and returns it.
func (c *Client) CreateContact(ctx context.Context, req ContactRequest) (*Contact, error) {
	body, err := c.do(ctx, c.write, http.MethodPost, "/Contacts", req)
	if err != nil {
		return nil, err
	}
	contact := contactFrom(gjson.ParseBytes(body))
	if contact.ID == "" {
		return nil, errors.New("fastbound contact response has no id")
	}
	return contact, nil
}

// CreateAndCommitAcquisition creates an acquisition and commits it to the bound book.
func (c *Client) CreateAndCommitAcquisition(ctx context.Context, req AcquisitionRequest) (*AcquisitionResult, error) {
	body, err := c.do(ctx, c.write, http.MethodPost, "/Acquisitions/CreateAndCommit", req)
	if err != nil {
		return nil, err
	}
	res := &AcquisitionResult{ID: gjson.GetBytes(body, "id").String(), Raw: json.RawMessage(body)}
	if !json.Valid(body) {
		res.Raw = nil
	}
	return res, nil
}

func (c *Client) do(ctx context.Context, hc *httpx.Client, method, path string, payload interface{}) (body []byte, err error) {
	if c.baseURL == "" || c.apiKey == "" {
		return nil, ErrNotConfigured
	}

	start := time.Now()
	defer func() { metrics.RecordPartnerCall("fastbound", err, time.Since(start)) }()

	var reader io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.apiKey, "")
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.auditUser != "" {
		req.Header.Set("X-AuditUser", c.auditUser)
	}

	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fastbound request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err = io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("fastbound response read failed: %w", err)
	}

	if resp.StatusCode >= 300 {
		msg := gjson.GetBytes(body, "errors.0.message").String()
		if msg == "" {
			msg = gjson.GetBytes(body, "message").String()
		}
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: msg, Body: body}
	}
	return body, nil
}

func contactFrom(v gjson.Result) *Contact {
	return &Contact{
		ID:          v.Get("id").String(),
		FFLNumber:   v.Get("fflNumber").String(),
		LicenseName: v.Get("licenseName").String(),
	}
}
