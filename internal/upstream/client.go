// Package upstream implements the HTTP client for the pharmacy
// platform API. It is the gateway's only data layer: nothing it
// returns is stored, and every call forwards the operator's bearer
// token from the request context.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pharmatill/terminal-api/internal/domain/entity"
	"github.com/pharmatill/terminal-api/internal/domain/platform"
	"github.com/pharmatill/terminal-api/pkg/apperror"
)

type ctxKey int

const tokenKey ctxKey = iota

// WithToken stores the operator's bearer token for outgoing calls.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

func tokenFrom(ctx context.Context) string {
	if t, ok := ctx.Value(tokenKey).(string); ok {
		return t
	}
	return ""
}

// Client talks JSON/HTTP to the platform API.
type Client struct {
	baseURL string
	http    *http.Client
}

var _ platform.API = (*Client)(nil)

// NewClient creates a platform client. timeout bounds each request;
// per-call cancellation still flows through ctx.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// do issues one request and decodes the platform's response envelope
// into out (which may be nil). Platform rejections come back as
// AppErrors carrying the upstream message and field details verbatim;
// a ctx cancellation is returned as-is so callers can distinguish a
// superseded request from a genuine failure.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}, headers map[string]string) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("upstream: encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("upstream: build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := tokenFrom(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			// Cancelled or superseded, not a failure.
			return ctx.Err()
		}
		return apperror.NewAppError(http.StatusBadGateway, "Pharmacy platform is unreachable")
	}
	defer resp.Body.Close()

	var env struct {
		envelope
		Data json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return apperror.NewAppError(http.StatusBadGateway, "Pharmacy platform returned an unreadable response")
	}

	if resp.StatusCode >= 400 {
		msg := env.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return apperror.NewUpstreamError(resp.StatusCode, msg, env.Errors)
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return apperror.NewAppError(http.StatusBadGateway, "Pharmacy platform returned an unreadable response")
		}
	}
	return nil
}

// SearchCatalog looks up medicines and their open lots by
// name/generic/barcode.
func (c *Client) SearchCatalog(ctx context.Context, query string, limit int) ([]entity.Medicine, error) {
	q := url.Values{}
	q.Set("search", query)
	q.Set("limit", strconv.Itoa(limit))

	var wires []medicineWire
	if err := c.do(ctx, http.MethodGet, "/api/v1/catalog/search", q, nil, &wires, nil); err != nil {
		return nil, err
	}
	out := make([]entity.Medicine, 0, len(wires))
	for _, w := range wires {
		out = append(out, w.toEntity())
	}
	return out, nil
}

// SearchCustomers returns ranked customer candidates for a phone/name
// fragment.
func (c *Client) SearchCustomers(ctx context.Context, query string, limit int) ([]entity.Customer, error) {
	q := url.Values{}
	q.Set("search", query)
	q.Set("limit", strconv.Itoa(limit))

	var wires []customerWire
	if err := c.do(ctx, http.MethodGet, "/api/v1/customers/search", q, nil, &wires, nil); err != nil {
		return nil, err
	}
	out := make([]entity.Customer, 0, len(wires))
	for _, w := range wires {
		out = append(out, w.toEntity())
	}
	return out, nil
}

// GetCustomerByPhone performs an exact phone match. A miss is returned
// as a not-found AppError, which callers treat as the designed trigger
// for the creation flow, never as a failure.
func (c *Client) GetCustomerByPhone(ctx context.Context, phone string) (*entity.Customer, error) {
	q := url.Values{}
	q.Set("phone", phone)

	var wire customerWire
	if err := c.do(ctx, http.MethodGet, "/api/v1/customers/by-phone", q, nil, &wire, nil); err != nil {
		return nil, err
	}
	cust := wire.toEntity()
	return &cust, nil
}

// CreateCustomer creates and returns a new customer record.
func (c *Client) CreateCustomer(ctx context.Context, input *platform.CreateCustomerInput) (*entity.Customer, error) {
	body := createCustomerWire{
		Name:    input.Name,
		Phone:   input.Phone,
		Email:   input.Email,
		Address: input.Address,
	}

	var wire customerWire
	if err := c.do(ctx, http.MethodPost, "/api/v1/customers", nil, body, &wire, nil); err != nil {
		return nil, err
	}
	cust := wire.toEntity()
	return &cust, nil
}

// ListCounters returns every register of the tenant, active and
// inactive.
func (c *Client) ListCounters(ctx context.Context) ([]entity.Counter, error) {
	var wires []counterWire
	if err := c.do(ctx, http.MethodGet, "/api/v1/counters", nil, nil, &wires, nil); err != nil {
		return nil, err
	}
	out := make([]entity.Counter, 0, len(wires))
	for _, w := range wires {
		out = append(out, w.toEntity())
	}
	return out, nil
}

// CreateSale commits the sale atomically. The idempotency key shields
// the ledger against transport-level duplicates of a single attempt;
// each operator-initiated attempt carries a fresh key.
func (c *Client) CreateSale(ctx context.Context, input *platform.CreateSaleInput, idempotencyKey string) (*entity.Sale, error) {
	body := createSaleWire{
		CustomerID:    input.CustomerID,
		Items:         make([]createSaleItemWire, 0, len(input.Items)),
		PaymentMethod: string(input.PaymentMethod),
		AmountPaid:    decimal(input.AmountPaid),
		CounterID:     input.CounterID,
	}
	for _, it := range input.Items {
		body.Items = append(body.Items, createSaleItemWire{
			MedicineID:   it.MedicineID,
			BatchID:      it.BatchID,
			Quantity:     it.Quantity,
			SellingPrice: decimal(it.SellingPrice),
		})
	}

	headers := map[string]string{"Idempotency-Key": idempotencyKey}

	var wire saleWire
	if err := c.do(ctx, http.MethodPost, "/api/v1/sales", nil, body, &wire, headers); err != nil {
		return nil, err
	}
	return wire.toEntity(), nil
}
