package schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"tidybook/models"
)

// RemoteSlotClient talks to the external authoritative slot service. Its
// response uses the same map[date][]Slot shape as the local generator so
// callers can consume either source interchangeably.
type RemoteSlotClient interface {
	FetchSlots(ctx context.Context, housekeeperID, startDate, endDate string) (map[string][]models.Slot, error)
}

// HTTPSlotClient implements RemoteSlotClient over plain HTTP.
type HTTPSlotClient struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPSlotClient builds a client for the configured base URL.
func NewHTTPSlotClient(baseURL string) *HTTPSlotClient {
	return &HTTPSlotClient{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// FetchSlots requests the slot map for a provider and date range.
func (c *HTTPSlotClient) FetchSlots(ctx context.Context, housekeeperID, startDate, endDate string) (map[string][]models.Slot, error) {
	endpoint := fmt.Sprintf("%s/providers/%s/slots?start=%s&end=%s",
		c.BaseURL, url.PathEscape(housekeeperID), url.QueryEscape(startDate), url.QueryEscape(endDate))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building slot request failed: %w", err)
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("slot service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("slot service returned status %d", resp.StatusCode)
	}

	var slots map[string][]models.Slot
	if err := json.NewDecoder(resp.Body).Decode(&slots); err != nil {
		return nil, fmt.Errorf("decoding slot response failed: %w", err)
	}
	return slots, nil
}
