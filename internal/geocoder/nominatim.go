package geocoder

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rs/zerolog/log"
)

// PlaceholderAddress is stored when the geocoding service cannot resolve the
// coordinates, for whatever reason.
const PlaceholderAddress = "Adresse nicht gefunden"

// Client resolves coordinates to a free-text address via the Nominatim
// reverse-geocoding API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new Nominatim client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
	}
}

type reverseResponse struct {
	DisplayName string `json:"display_name"`
}

// Reverse resolves (lat, lon) to a comma-separated, most-specific-first
// address string. It never fails past its boundary: network errors, non-200
// responses, and malformed bodies all yield PlaceholderAddress.
func (c *Client) Reverse(ctx context.Context, lat, lon float64) string {
	endpoint := fmt.Sprintf("%s/reverse?format=json&lat=%s&lon=%s",
		c.baseURL,
		url.QueryEscape(fmt.Sprintf("%f", lat)),
		url.QueryEscape(fmt.Sprintf("%f", lon)),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		log.Warn().Err(err).Msg("geocoder: failed to build reverse request")
		return PlaceholderAddress
	}
	// Nominatim's usage policy requires an identifying User-Agent.
	req.Header.Set("User-Agent", "standort-api")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn().Err(err).Msg("geocoder: reverse request failed")
		return PlaceholderAddress
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warn().Int("status", resp.StatusCode).Msg("geocoder: unexpected response status")
		return PlaceholderAddress
	}

	var body reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		log.Warn().Err(err).Msg("geocoder: failed to decode reverse response")
		return PlaceholderAddress
	}

	if body.DisplayName == "" {
		return PlaceholderAddress
	}

	return body.DisplayName
}
