// Package ordering talks to the downstream commerce API that accepts
// bulk add-to-cart orders. It owns payload construction, header merging and
// response interpretation; transport failures and non-success downstream
// statuses are normalized into *apperrors.ExternalAPIError so nothing above
// this package ever sees a raw transport error.
package ordering

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	apperrors "user-api/pkg/errors"
)

const orderPath = "/add-to-cart-multiple"

// Default tax parameters of the downstream cart endpoint.
const (
	defaultTaxType = "PPH22"
	defaultPPNRate = 12
	defaultDPPRate = 0.91666666666667
)

// Gateway is the interface handlers depend on; Client is the live
// implementation.
type Gateway interface {
	BuildPayload(req OrderRequest, clientIP string, extraHeaders map[string]string) Payload
	Submit(ctx context.Context, p Payload) (*OrderResult, error)
}

// OrderRequest is a validated bulk-order request. VariantIDs and Quantities
// are parallel slices: Quantities[i] belongs to VariantIDs[i].
type OrderRequest struct {
	VariantIDs []int64 `json:"id_variant" validate:"required,min=1"`
	Quantities []int64 `json:"qty" validate:"required,min=1"`
	GrandTotal float64 `json:"grand_total"`
	TaxType    string  `json:"tax_type"`
	CurrentURL string  `json:"current_url"`
}

// Payload is the outbound request: a JSON body mapping plus the full header
// set it must be transmitted with.
type Payload struct {
	Body    map[string]any
	Headers map[string]string
}

// OrderResult is the parsed downstream response for a successful call.
type OrderResult struct {
	StatusCode int
	Response   map[string]any
}

// Config holds the downstream endpoint and session material.
type Config struct {
	BaseURL   string
	Token     string
	CSRFToken string
	UserAgent string
	Timeout   time.Duration
}

// Client implements Gateway over net/http.
type Client struct {
	cfg        Config
	httpClient *http.Client
	log        *zap.Logger
}

// NewClient creates a new downstream ordering client.
func NewClient(cfg Config, log *zap.Logger) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		log: log,
	}
}

// BuildPayload constructs the downstream JSON body and header set from a
// validated order request. Required defaults are applied first, then
// caller-supplied headers, so callers may override everything except
// Content-Type, which is enforced last. clientIP, when present, is forwarded
// as CF-Connecting-IP.
func (c *Client) BuildPayload(req OrderRequest, clientIP string, extraHeaders map[string]string) Payload {
	taxType := req.TaxType
	if taxType == "" {
		taxType = defaultTaxType
	}

	body := map[string]any{
		"token":             c.cfg.Token,
		"id_variant":        req.VariantIDs,
		"qty":               req.Quantities,
		"grand_total":       req.GrandTotal,
		"tax_type":          taxType,
		"tax_rate_npwp":     0,
		"tax_rate_non_npwp": 0,
		"tax_number":        "on",
		"ppn_rate":          defaultPPNRate,
		"dpp_rate":          defaultDPPRate,
		"current_url":       req.CurrentURL,
	}

	headers := map[string]string{
		"Accept":       "application/json, text/plain, */*",
		"User-Agent":   c.cfg.UserAgent,
		"XSRF-TOKEN":   c.cfg.CSRFToken,
		"X-CSRF-TOKEN": c.cfg.CSRFToken,
	}
	if clientIP != "" {
		headers["CF-Connecting-IP"] = clientIP
	}
	for k, v := range extraHeaders {
		headers[k] = v
	}
	headers["Content-Type"] = "application/json"

	return Payload{Body: body, Headers: headers}
}

// Submit transmits the payload and interprets the response. A 2xx status
// with a JSON body yields an OrderResult; anything else becomes an
// *apperrors.ExternalAPIError carrying the downstream status and body.
func (c *Client) Submit(ctx context.Context, p Payload) (*OrderResult, error) {
	data, err := json.Marshal(p.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order payload: %w", err)
	}

	url := c.cfg.BaseURL + orderPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create order request: %w", err)
	}
	for k, v := range p.Headers {
		req.Header.Set(k, v)
	}

	c.log.Info("submitting order to downstream api", zap.String("url", url), zap.Int("body_bytes", len(data)))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Covers transport failure, timeout and context cancellation
		c.log.Error("downstream order call failed", zap.String("url", url), zap.Error(err))
		return nil, apperrors.NewExternalAPIError(0, "", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Error("failed to read downstream response", zap.Int("status", resp.StatusCode), zap.Error(err))
		return nil, apperrors.NewExternalAPIError(resp.StatusCode, "", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.log.Warn("downstream api returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.Int("body_bytes", len(body)),
		)
		return nil, apperrors.NewExternalAPIError(resp.StatusCode, string(body), nil)
	}

	var parsed map[string]any
	if err := json.Unmarshal(body, &parsed); err != nil {
		c.log.Warn("downstream api returned unparseable body", zap.Int("status", resp.StatusCode), zap.Error(err))
		return nil, apperrors.NewExternalAPIError(resp.StatusCode, string(body), err)
	}

	c.log.Info("downstream order accepted", zap.Int("status", resp.StatusCode))

	return &OrderResult{
		StatusCode: resp.StatusCode,
		Response:   parsed,
	}, nil
}
