package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"gofurn.io/storefront/models"
)

const defaultTimeout = 10 * time.Second

// Client talks to the storefront backend. All pricing, stock and payment
// authority lives server-side; the client only issues calls and decodes
// results.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

func NewClient(baseURL string, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		logger:  logger,
	}
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return c.decodeError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// decodeError turns a non-2xx response into an *Error. Bodies that do not
// carry a structured code fall back to ErrorCodeUnknown.
func (c *Client) decodeError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	apiErr := &Error{Code: ErrorCodeUnknown, StatusCode: resp.StatusCode}
	if err := json.Unmarshal(data, apiErr); err != nil || apiErr.Code == "" {
		apiErr.Code = ErrorCodeUnknown
		apiErr.Message = strings.TrimSpace(string(data))
	}
	if apiErr.Message == "" {
		apiErr.Message = resp.Status
	}

	c.logger.Warn("API call failed",
		zap.String("url", resp.Request.URL.String()),
		zap.Int("status", resp.StatusCode),
		zap.String("code", string(apiErr.Code)))

	return apiErr
}

// ListProducts returns the catalog page for the given category, or the whole
// catalog when categoryID is nil.
func (c *Client) ListProducts(ctx context.Context, categoryID *uint64) ([]*models.Product, error) {
	path := "/api/products"
	if categoryID != nil {
		path += fmt.Sprintf("?category_id=%d", *categoryID)
	}

	var products []*models.Product
	if err := c.do(ctx, http.MethodGet, path, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := c.do(ctx, http.MethodGet, "/api/products/"+url.PathEscape(id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) ListCategories(ctx context.Context) ([]*models.Category, error) {
	var categories []*models.Category
	if err := c.do(ctx, http.MethodGet, "/api/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

type submitOrderResponse struct {
	OrderID string `json:"order_id"`
}

// SubmitOrder posts the checkout payload and returns the created order id.
func (c *Client) SubmitOrder(ctx context.Context, req models.OrderRequest) (string, error) {
	var resp submitOrderResponse
	if err := c.do(ctx, http.MethodPost, "/api/checkout", req, &resp); err != nil {
		return "", err
	}
	return resp.OrderID, nil
}

type confirmPaymentRequest struct {
	TransactionID string `json:"transaction_id"`
}

// ConfirmPayment reports the widget's transaction reference for an order
// that already exists server-side.
func (c *Client) ConfirmPayment(ctx context.Context, orderID, transactionID string) error {
	path := fmt.Sprintf("/api/payments/%s/confirm", url.PathEscape(orderID))
	return c.do(ctx, http.MethodPost, path, confirmPaymentRequest{TransactionID: transactionID}, nil)
}

func (c *Client) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	if err := c.do(ctx, http.MethodGet, "/api/orders/"+url.PathEscape(id), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) ListOrders(ctx context.Context, limit, offset uint64) ([]*models.Order, error) {
	path := fmt.Sprintf("/api/orders?limit=%d&offset=%d", limit, offset)

	var orders []*models.Order
	if err := c.do(ctx, http.MethodGet, path, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) ListInventory(ctx context.Context) ([]*models.InventoryItem, error) {
	var items []*models.InventoryItem
	if err := c.do(ctx, http.MethodGet, "/api/admin/inventory", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

type adjustInventoryRequest struct {
	Delta  int64  `json:"delta"`
	Reason string `json:"reason"`
}

func (c *Client) AdjustInventory(ctx context.Context, productID string, delta int64, reason string) error {
	path := fmt.Sprintf("/api/admin/inventory/%s/adjust", url.PathEscape(productID))
	return c.do(ctx, http.MethodPost, path, adjustInventoryRequest{Delta: delta, Reason: reason}, nil)
}

func (c *Client) GetSalesReport(ctx context.Context, from, to time.Time) (*models.SalesReport, error) {
	path := fmt.Sprintf("/api/admin/reports/sales?from=%s&to=%s",
		url.QueryEscape(from.Format(time.RFC3339)), url.QueryEscape(to.Format(time.RFC3339)))

	var report models.SalesReport
	if err := c.do(ctx, http.MethodGet, path, nil, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func (c *Client) ListAuditLog(ctx context.Context, limit, offset uint64) ([]*models.AuditEntry, error) {
	path := fmt.Sprintf("/api/admin/audit?limit=%d&offset=%d", limit, offset)

	var entries []*models.AuditEntry
	if err := c.do(ctx, http.MethodGet, path, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
