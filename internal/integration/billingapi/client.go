package billingapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/billforge/billforge/internal/cache"
	"github.com/billforge/billforge/internal/config"
	"github.com/billforge/billforge/internal/domain/plan"
	"github.com/billforge/billforge/internal/domain/subscription"
	ierr "github.com/billforge/billforge/internal/errors"
	"github.com/billforge/billforge/internal/logger"
	"github.com/hashicorp/go-retryablehttp"
)

// Client is the boundary to the remote billing service. The service
// owns all billing state; this client only reads it and submits
// mutations, surfacing failures verbatim.
type Client interface {
	// ResolveSlotPreview returns the backend's proration preview for a
	// slot delta.
	ResolveSlotPreview(ctx context.Context, subscriptionID, priceComponentID string, delta int64) (*SlotPreview, error)

	// CommitSlotUpdate submits a slot delta and returns the resulting
	// effective count.
	CommitSlotUpdate(ctx context.Context, subscriptionID, priceComponentID string, delta int64, billingMode string) (*SlotUpdateResult, error)

	// CancelSlotTransaction cancels a pending or future-effective slot
	// transaction.
	CancelSlotTransaction(ctx context.Context, transactionID string) error

	// ListSlotTransactions returns the slot transactions of a
	// subscription, optionally filtered by unit label.
	ListSlotTransactions(ctx context.Context, subscriptionID, unit string) ([]*subscription.SlotTransaction, error)

	// ResolvePlanChangePreview returns the backend's proration numbers
	// and effective date for a plan change.
	ResolvePlanChangePreview(ctx context.Context, subscriptionID, targetPlanVersionID string) (*PlanChangePreview, error)

	// CommitPlanChange executes a plan change and returns the
	// server-reported effective date.
	CommitPlanChange(ctx context.Context, subscriptionID, targetPlanVersionID string) (*PlanChangeResult, error)

	// GetSubscriptionFees returns the resolved fee snapshots of a
	// subscription.
	GetSubscriptionFees(ctx context.Context, subscriptionID string) ([]*subscription.Fee, error)

	// GetPlanVersion returns a plan version with its price components.
	GetPlanVersion(ctx context.Context, planVersionID string) (*plan.PlanVersion, error)
}

type httpClient struct {
	baseURL string
	apiKey  string
	http    *retryablehttp.Client
	cache   cache.Cache
	logger  *logger.Logger
}

// NewClient creates a billing service client from configuration.
// Catalog reads (fees, plan versions) are cached briefly; previews and
// mutations always hit the service.
func NewClient(cfg *config.Configuration, c cache.Cache, log *logger.Logger) Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = cfg.BillingAPI.MaxRetries
	rc.HTTPClient.Timeout = cfg.BillingAPI.Timeout
	rc.Logger = log.GetRetryableHTTPLogger()

	return &httpClient{
		baseURL: cfg.BillingAPI.BaseURL,
		apiKey:  cfg.BillingAPI.APIKey,
		http:    rc,
		cache:   c,
		logger:  log,
	}
}

func (c *httpClient) ResolveSlotPreview(ctx context.Context, subscriptionID, priceComponentID string, delta int64) (*SlotPreview, error) {
	path := fmt.Sprintf("/v1/subscriptions/%s/slots/preview", url.PathEscape(subscriptionID))
	req := SlotPreviewRequest{PriceComponentID: priceComponentID, Delta: delta}

	var preview SlotPreview
	if err := c.do(ctx, http.MethodPost, path, req, &preview); err != nil {
		return nil, err
	}
	return &preview, nil
}

func (c *httpClient) CommitSlotUpdate(ctx context.Context, subscriptionID, priceComponentID string, delta int64, billingMode string) (*SlotUpdateResult, error) {
	path := fmt.Sprintf("/v1/subscriptions/%s/slots", url.PathEscape(subscriptionID))
	req := SlotUpdateRequest{PriceComponentID: priceComponentID, Delta: delta, BillingMode: billingMode}

	var result SlotUpdateResult
	if err := c.do(ctx, http.MethodPost, path, req, &result); err != nil {
		return nil, err
	}

	// The fee list is stale after a committed update.
	c.cache.Delete(ctx, feeCacheKey(subscriptionID))
	return &result, nil
}

func (c *httpClient) CancelSlotTransaction(ctx context.Context, transactionID string) error {
	path := fmt.Sprintf("/v1/slot_transactions/%s/cancel", url.PathEscape(transactionID))
	return c.do(ctx, http.MethodPost, path, nil, nil)
}

func (c *httpClient) ListSlotTransactions(ctx context.Context, subscriptionID, unit string) ([]*subscription.SlotTransaction, error) {
	path := fmt.Sprintf("/v1/subscriptions/%s/slot_transactions", url.PathEscape(subscriptionID))
	if unit != "" {
		path = fmt.Sprintf("%s?unit=%s", path, url.QueryEscape(unit))
	}

	var out struct {
		Items []*subscription.SlotTransaction `json:"items"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

func (c *httpClient) ResolvePlanChangePreview(ctx context.Context, subscriptionID, targetPlanVersionID string) (*PlanChangePreview, error) {
	path := fmt.Sprintf("/v1/subscriptions/%s/plan_change/preview", url.PathEscape(subscriptionID))
	req := PlanChangePreviewRequest{TargetPlanVersionID: targetPlanVersionID}

	var preview PlanChangePreview
	if err := c.do(ctx, http.MethodPost, path, req, &preview); err != nil {
		return nil, err
	}
	return &preview, nil
}

func (c *httpClient) CommitPlanChange(ctx context.Context, subscriptionID, targetPlanVersionID string) (*PlanChangeResult, error) {
	path := fmt.Sprintf("/v1/subscriptions/%s/plan_change", url.PathEscape(subscriptionID))
	req := PlanChangeRequest{TargetPlanVersionID: targetPlanVersionID}

	var result PlanChangeResult
	if err := c.do(ctx, http.MethodPost, path, req, &result); err != nil {
		return nil, err
	}

	c.cache.Delete(ctx, feeCacheKey(subscriptionID))
	return &result, nil
}

func (c *httpClient) GetSubscriptionFees(ctx context.Context, subscriptionID string) ([]*subscription.Fee, error) {
	key := feeCacheKey(subscriptionID)
	if cached, ok := c.cache.Get(ctx, key); ok {
		if fees, ok := cache.UnmarshalCacheValue[[]*subscription.Fee](cached); ok {
			return fees, nil
		}
	}

	path := fmt.Sprintf("/v1/subscriptions/%s/fees", url.PathEscape(subscriptionID))
	var out struct {
		Items []*subscription.Fee `json:"items"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}

	c.cache.Set(ctx, key, out.Items, cache.ExpiryDefaultInMemory)
	return out.Items, nil
}

func (c *httpClient) GetPlanVersion(ctx context.Context, planVersionID string) (*plan.PlanVersion, error) {
	key := planVersionCacheKey(planVersionID)
	if cached, ok := c.cache.Get(ctx, key); ok {
		if pv, ok := cache.UnmarshalCacheValue[*plan.PlanVersion](cached); ok {
			return pv, nil
		}
	}

	path := fmt.Sprintf("/v1/plan_versions/%s", url.PathEscape(planVersionID))
	var pv plan.PlanVersion
	if err := c.do(ctx, http.MethodGet, path, nil, &pv); err != nil {
		return nil, err
	}

	c.cache.Set(ctx, key, &pv, cache.ExpiryDefaultInMemory)
	return &pv, nil
}

func feeCacheKey(subscriptionID string) string {
	return "billingapi:fees:" + subscriptionID
}

func planVersionCacheKey(planVersionID string) string {
	return "billingapi:plan_version:" + planVersionID
}

// do executes one request against the billing service. Non-2xx
// responses become ErrHTTPClient errors carrying the service's own
// message so it reaches the user unchanged.
func (c *httpClient) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return ierr.WithError(err).
				WithHint("Failed to encode request body").
				Mark(ierr.ErrSystem)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to build billing service request").
			Mark(ierr.ErrSystem)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Billing service is unreachable").
			WithReportableDetails(map[string]interface{}{
				"method": method,
				"path":   path,
			}).
			Mark(ierr.ErrHTTPClient)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to read billing service response").
			Mark(ierr.ErrHTTPClient)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return ierr.NewErrorf("billing service returned status %d", resp.StatusCode).
			WithHint(remoteErrorMessage(respBody, resp.StatusCode)).
			WithReportableDetails(map[string]interface{}{
				"method": method,
				"path":   path,
				"status": resp.StatusCode,
			}).
			Mark(ierr.ErrHTTPClient)
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return ierr.WithError(err).
				WithHint("Failed to decode billing service response").
				WithReportableDetails(map[string]interface{}{
					"method": method,
					"path":   path,
				}).
				Mark(ierr.ErrHTTPClient)
		}
	}

	return nil
}

// remoteErrorMessage extracts the service's error message so it can be
// surfaced verbatim, falling back to the status code.
func remoteErrorMessage(body []byte, status int) string {
	var wire struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &wire); err == nil {
		if wire.Error.Message != "" {
			return wire.Error.Message
		}
		if wire.Message != "" {
			return wire.Message
		}
	}
	return fmt.Sprintf("billing service request failed with status %d", status)
}
