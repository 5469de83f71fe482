package homeassistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/emberpixel/hermes/internal/models"
)

// Client reads a person entity from a Home Assistant instance. The entity's
// coordinates are mandatory; name and status are passed through when present.
type Client struct {
	client   HTTPClient   // HTTP client for making requests
	baseURL  string       // Base URL of the Home Assistant instance
	token    string       // Long-lived access token
	entityID string       // Person entity to query, e.g. "person.jane"
	log      *slog.Logger // Logger for logging operations
}

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Common errors for the Home Assistant client.
var (
	ErrMissingCoordinates = errors.New("home assistant entity has no usable coordinates")
	ErrUnauthorized       = errors.New("home assistant rejected the access token")
)

// entityState is the relevant subset of the /api/states/<entity> response.
type entityState struct {
	State      *string `json:"state"`
	Attributes struct {
		FriendlyName *string  `json:"friendly_name"`
		Latitude     *float64 `json:"latitude"`
		Longitude    *float64 `json:"longitude"`
	} `json:"attributes"`
}

// New creates a Home Assistant client with a default HTTP client.
func New(baseURL, token, entityID string, log *slog.Logger) *Client {
	const timeout = 10

	return &Client{
		client: &http.Client{
			Timeout: timeout * time.Second,
		},
		baseURL:  baseURL,
		token:    token,
		entityID: entityID,
		log:      log,
	}
}

// NewWithClient creates a Home Assistant client with a custom HTTP client.
// Useful for testing with mocked HTTP clients.
func NewWithClient(client HTTPClient, baseURL, token, entityID string, log *slog.Logger) *Client {
	return &Client{
		client:   client,
		baseURL:  baseURL,
		token:    token,
		entityID: entityID,
		log:      log,
	}
}

// PersonState fetches the entity and returns the person's position, display
// name and status text. A missing name or status degrades to nil with a
// warning; missing or unparsable coordinates fail the whole fetch.
func (c *Client) PersonState(ctx context.Context) (*models.PersonSample, error) {
	reqURL, err := url.JoinPath(c.baseURL, "api", "states", c.entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to build entity URL: %w", err)
	}

	c.log.DebugContext(ctx, "Fetching person entity", "entity", c.entityID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute entity request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// continue
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, ErrUnauthorized
	default:
		body, _ := io.ReadAll(resp.Body)
		c.log.ErrorContext(ctx, "Home assistant API error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("home assistant API returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var state entityState
	if err = json.Unmarshal(body, &state); err != nil {
		return nil, fmt.Errorf("failed to decode entity state: %w", err)
	}

	if state.Attributes.FriendlyName == nil {
		c.log.WarnContext(ctx, "Entity has no 'friendly_name' attribute", "entity", c.entityID)
	}
	if state.State == nil || strings.TrimSpace(*state.State) == "" {
		c.log.WarnContext(ctx, "Entity provided no state", "entity", c.entityID)
		state.State = nil
	}

	if state.Attributes.Latitude == nil || state.Attributes.Longitude == nil {
		return nil, fmt.Errorf("%w: entity %s", ErrMissingCoordinates, c.entityID)
	}

	return &models.PersonSample{
		Name:   state.Attributes.FriendlyName,
		Status: state.State,
		Location: models.Coordinate{
			Latitude:  *state.Attributes.Latitude,
			Longitude: *state.Attributes.Longitude,
		},
	}, nil
}
