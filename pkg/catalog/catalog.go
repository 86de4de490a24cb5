// Package catalog provides a client for the vehicle and service-package
// catalog gateway.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	apperrors "github.com/vodintech/caragecarcare/internal/errors"
	"github.com/vodintech/caragecarcare/internal/logger"
	"github.com/vodintech/caragecarcare/internal/models"
)

// FuelIcon maps a fuel type name to its icon reference
type FuelIcon struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// SubmitRequest is the body of the fire-and-forget lead notification
type SubmitRequest struct {
	Brand    string `json:"brand"`
	Model    string `json:"model"`
	FuelType string `json:"fuelType"`
	Phone    string `json:"phone"`
}

// SubmitAck is the gateway's acknowledgment of a submit-request
type SubmitAck struct {
	Message string `json:"message"`
}

// Client defines the catalog gateway operations
type Client interface {
	// FetchBrands retrieves the ordered brand catalog
	FetchBrands(ctx context.Context) ([]models.CarBrand, error)
	// FetchFuelIcons retrieves the fuel name to icon reference mapping
	FetchFuelIcons(ctx context.Context) ([]FuelIcon, error)
	// FetchPackages retrieves the service packages for one category
	FetchPackages(ctx context.Context, category string) ([]models.ServicePackage, error)
	// Submit posts a service request notification
	Submit(ctx context.Context, req SubmitRequest) (*SubmitAck, error)
	// BaseURL returns the configured gateway base URL
	BaseURL() string
}

// HTTPClient is the real HTTP client for the catalog gateway
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	log        logger.Logger
}

// NewHTTPClient creates a catalog client with a bounded request timeout.
// A hung gateway request must surface as an error, never a stuck screen.
func NewHTTPClient(baseURL string, timeout time.Duration, log logger.Logger) *HTTPClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// NewHTTPClientWithHTTPClient creates a catalog client with a custom http.Client
func NewHTTPClientWithHTTPClient(baseURL string, httpClient *http.Client, log logger.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL:    baseURL,
		httpClient: httpClient,
		log:        log,
	}
}

// BaseURL returns the configured gateway base URL
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

// getJSON executes a GET against the gateway and decodes the JSON response
func (c *HTTPClient) getJSON(ctx context.Context, path string, response interface{}) error {
	reqURL := c.baseURL + path

	c.log.Debug("Catalog request", "method", "GET", "url", reqURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return apperrors.Fetch("failed to create request", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.Fetch("failed to reach catalog gateway", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperrors.Fetch("failed to read response", err)
	}

	c.log.Debug("Catalog response", "status", resp.StatusCode, "bytes", len(body))

	if resp.StatusCode != http.StatusOK {
		return apperrors.Fetchf("catalog gateway returned status %d", resp.StatusCode)
	}

	if err := json.Unmarshal(body, response); err != nil {
		return apperrors.Fetch("failed to parse response", err)
	}

	return nil
}

// FetchBrands retrieves the ordered brand catalog
func (c *HTTPClient) FetchBrands(ctx context.Context) ([]models.CarBrand, error) {
	var brands []models.CarBrand
	if err := c.getJSON(ctx, "/car/all-brands", &brands); err != nil {
		return nil, err
	}
	return brands, nil
}

// FetchFuelIcons retrieves the fuel name to icon reference mapping
func (c *HTTPClient) FetchFuelIcons(ctx context.Context) ([]FuelIcon, error) {
	var icons []FuelIcon
	if err := c.getJSON(ctx, "/car/fuel-icons", &icons); err != nil {
		return nil, err
	}
	return icons, nil
}

// FetchPackages retrieves the service packages for one category
func (c *HTTPClient) FetchPackages(ctx context.Context, category string) ([]models.ServicePackage, error) {
	path := "/car/service-packages?category=" + url.QueryEscape(category)
	var packages []models.ServicePackage
	if err := c.getJSON(ctx, path, &packages); err != nil {
		return nil, err
	}
	return packages, nil
}

// Submit posts a service request notification to the gateway
func (c *HTTPClient) Submit(ctx context.Context, submitReq SubmitRequest) (*SubmitAck, error) {
	reqURL := c.baseURL + "/car/submit-request"

	payload, err := json.Marshal(submitReq)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	c.log.Debug("Catalog request", "method", "POST", "url", reqURL, "body", string(payload))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(payload))
	if err != nil {
		return nil, apperrors.Fetch("failed to create request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.Fetch("failed to reach catalog gateway", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Fetch("failed to read response", err)
	}

	c.log.Debug("Catalog response", "status", resp.StatusCode, "body", string(body))

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.Fetchf("catalog gateway returned status %d: %s", resp.StatusCode, string(body))
	}

	var ack SubmitAck
	if err := json.Unmarshal(body, &ack); err != nil {
		// Some gateway versions reply with a bare string; keep the ack usable
		ack.Message = string(body)
	}
	if ack.Message == "" {
		ack.Message = fmt.Sprintf("request submitted for %s %s", submitReq.Brand, submitReq.Model)
	}
	return &ack, nil
}

// Ensure HTTPClient implements Client
var _ Client = (*HTTPClient)(nil)
