package naver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"orderwatch/internal/logger"
	"orderwatch/internal/models"
)

// ErrUnauthorized is returned when a call still gets 401 after the one
// allowed token refresh.
var ErrUnauthorized = errors.New("unauthorized after token refresh")

const (
	listPath  = "/external/v1/pay-order/seller/product-orders"
	queryPath = "/external/v1/pay-order/seller/product-orders/query"

	timeRangeLayout = "2006-01-02T15:04:05.000+09:00"

	// The vendor caps list pages at 300; detail batches are chunked to the
	// same bound since their cap is undocumented.
	pageLimit      = 300
	detailBatchMax = 300
)

// Client wraps the authenticated order endpoints. A 401 triggers exactly one
// token invalidate-and-retry; list failures degrade to empty results so a bad
// cycle never kills the polling loop.
type Client struct {
	baseURL    string
	tokens     *TokenManager
	httpClient *http.Client
	logger     *logger.Logger
}

func NewClient(baseURL string, tokens *TokenManager, httpClient *http.Client, logger *logger.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		baseURL:    baseURL,
		tokens:     tokens,
		httpClient: httpClient,
		logger:     logger,
	}
}

// ListRecentOrders returns the product-order ids whose payment completed
// inside [from, to]. Non-200 responses are logged and yield an empty list.
func (c *Client) ListRecentOrders(ctx context.Context, from, to time.Time) ([]string, error) {
	params := url.Values{}
	params.Set("from", from.In(KST).Format(timeRangeLayout))
	params.Set("to", to.In(KST).Format(timeRangeLayout))
	params.Set("rangeType", "PAYED_DATETIME")
	params.Set("statusType", "ALL")
	params.Set("quantityClaimCompatibility", "true")
	params.Set("limit", fmt.Sprintf("%d", pageLimit))

	resp, body, err := c.do(ctx, http.MethodGet, listPath+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("order list request failed: %d - %s", resp.StatusCode, snippet(body, 300))
		return nil, nil
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("failed to decode list response: %w", err)
	}
	return decodeOrderIDs(env.Data), nil
}

// FetchOrderDetails resolves a batch of ids into flattened orders with one
// query request per chunk. Non-200 responses are logged and skipped.
func (c *Client) FetchOrderDetails(ctx context.Context, ids []string) ([]models.Order, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var orders []models.Order
	for start := 0; start < len(ids); start += detailBatchMax {
		end := start + detailBatchMax
		if end > len(ids) {
			end = len(ids)
		}

		chunk, err := c.fetchDetailBatch(ctx, ids[start:end])
		if err != nil {
			return orders, err
		}
		orders = append(orders, chunk...)
	}
	return orders, nil
}

func (c *Client) fetchDetailBatch(ctx context.Context, ids []string) ([]models.Order, error) {
	payload, err := json.Marshal(map[string][]string{"productOrderIds": ids})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal query body: %w", err)
	}

	resp, body, err := c.do(ctx, http.MethodPost, queryPath, payload)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("order query request failed: %d - %s", resp.StatusCode, snippet(body, 300))
		return nil, nil
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("failed to decode query response: %w", err)
	}

	var items []orderItem
	if err := json.Unmarshal(env.Data, &items); err != nil {
		return nil, nil
	}

	orders := make([]models.Order, 0, len(items))
	for _, item := range items {
		order, ok := item.toOrder()
		if !ok {
			c.logger.Error("skipping malformed order item")
			continue
		}
		orders = append(orders, order)
	}
	return orders, nil
}

// do sends one authenticated request, refreshing the token and retrying once
// on 401. The body is fully read so the caller never touches resp.Body.
func (c *Client) do(ctx context.Context, method, path string, payload []byte) (*http.Response, []byte, error) {
	resp, body, err := c.send(ctx, method, path, payload)
	if err != nil {
		return nil, nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.logger.Info("401 unauthorized, reissuing token and retrying")
		c.tokens.Invalidate()

		resp, body, err = c.send(ctx, method, path, payload)
		if err != nil {
			return nil, nil, err
		}
		if resp.StatusCode == http.StatusUnauthorized {
			return nil, nil, ErrUnauthorized
		}
	}

	return resp, body, nil
}

func (c *Client) send(ctx context.Context, method, path string, payload []byte) (*http.Response, []byte, error) {
	token, err := c.tokens.GetToken(ctx)
	if err != nil {
		return nil, nil, err
	}

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response: %w", err)
	}
	return resp, body, nil
}

// NewHTTPClient builds the outbound client, optionally routed through the
// configured proxy.
func NewHTTPClient(proxyURL string, timeout time.Duration) (*http.Client, error) {
	client := &http.Client{Timeout: timeout}
	if proxyURL != "" {
		parsed, err := url.Parse(proxyURL)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy url: %w", err)
		}
		client.Transport = &http.Transport{Proxy: http.ProxyURL(parsed)}
	}
	return client, nil
}
