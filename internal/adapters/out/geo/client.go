// Package geo resolves delivery addresses to coordinates through a
// Nominatim-compatible HTTP endpoint.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"marketplace/internal/core/domain/model/kernel"
)

const (
	// requestInterval spaces out upstream calls to honor the public
	// Nominatim usage policy of at most one request per second.
	requestInterval = time.Second

	requestTimeout = 5 * time.Second
)

// fallbackPoint is returned when geocoding fails or finds nothing, so the
// courier's route view always renders a map. Metro Manila city center.
var fallbackPoint = kernel.GeoPoint{}

func init() {
	fallbackPoint, _ = kernel.NewGeoPoint(14.5995, 120.9842, "Metro Manila")
}

// Client is a throttled geocoding client. Resolve never returns an error for
// upstream failures: callers get the regional fallback point instead, and the
// failure is logged.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger

	mu       sync.Mutex
	lastCall time.Time
}

// NewClient creates a geocoding client against a Nominatim-compatible search
// endpoint, e.g. "https://nominatim.openstreetmap.org".
func NewClient(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: requestTimeout},
		logger:     logger.With("component", "geocoder"),
	}
}

type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Resolve geocodes the address text. The process-wide throttle serializes
// upstream calls; a slot is consumed even when the upstream fails.
func (c *Client) Resolve(ctx context.Context, addressText string) (kernel.GeoPoint, error) {
	if addressText == "" {
		return fallbackPoint, nil
	}

	if err := c.throttle(ctx); err != nil {
		return fallbackPoint, nil
	}

	point, err := c.search(ctx, addressText)
	if err != nil {
		c.logger.WarnContext(ctx, "geocoding failed, using fallback point",
			"address", addressText, "error", err)
		return fallbackPoint, nil
	}

	return point, nil
}

func (c *Client) throttle(ctx context.Context) error {
	c.mu.Lock()
	wait := requestInterval - time.Since(c.lastCall)
	c.lastCall = time.Now().Add(max(wait, 0))
	c.mu.Unlock()

	if wait <= 0 {
		return nil
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Client) search(ctx context.Context, addressText string) (kernel.GeoPoint, error) {
	endpoint := fmt.Sprintf("%s/search?format=json&limit=1&q=%s",
		c.baseURL, url.QueryEscape(addressText))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return kernel.GeoPoint{}, err
	}
	req.Header.Set("User-Agent", "marketplace-fulfillment")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return kernel.GeoPoint{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return kernel.GeoPoint{}, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var results []searchResult
	if err = json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return kernel.GeoPoint{}, err
	}
	if len(results) == 0 {
		return kernel.GeoPoint{}, fmt.Errorf("no results for address")
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return kernel.GeoPoint{}, err
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return kernel.GeoPoint{}, err
	}

	return kernel.NewGeoPoint(lat, lon, results[0].DisplayName)
}
