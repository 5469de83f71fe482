package septa

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/emberpixel/hermes/internal/models"
)

// DefaultBaseURL is the public SEPTA API host.
const DefaultBaseURL = "https://www3.septa.org/api"

// Client reads the live regional rail snapshot from the SEPTA TrainView API.
type Client struct {
	client  HTTPClient   // HTTP client for making requests
	baseURL string       // Base URL for the SEPTA API
	log     *slog.Logger // Logger for logging operations
}

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ErrInvalidTrainCoords is returned when the feed reports a train with
// coordinates that cannot be parsed.
var ErrInvalidTrainCoords = errors.New("septa API returned invalid train coordinates")

// trainViewEntry is one train from the TrainView response. The API reports
// coordinates as strings.
type trainViewEntry struct {
	TrainNo string `json:"trainno"`
	Lat     string `json:"lat"`
	Lon     string `json:"lon"`
}

// New creates a SEPTA client against the public API.
func New(log *slog.Logger) *Client {
	const timeout = 10

	return &Client{
		client: &http.Client{
			Timeout: timeout * time.Second,
		},
		baseURL: DefaultBaseURL,
		log:     log,
	}
}

// NewWithClient creates a SEPTA client with a custom HTTP client and base
// URL. Useful for testing with mocked HTTP clients.
func NewWithClient(client HTTPClient, baseURL string, log *slog.Logger) *Client {
	return &Client{
		client:  client,
		baseURL: baseURL,
		log:     log,
	}
}

// TrainView returns the current train snapshot in feed order. An empty feed
// is valid and yields an empty slice.
func (c *Client) TrainView(ctx context.Context) ([]models.Train, error) {
	reqURL := c.baseURL + "/TrainView/index.php"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute train view request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.log.ErrorContext(ctx, "SEPTA API error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("septa API returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var entries []trainViewEntry
	if err = json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode train view response: %w", err)
	}

	trains := make([]models.Train, 0, len(entries))
	for _, entry := range entries {
		lat, err := strconv.ParseFloat(entry.Lat, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: train %s latitude %q", ErrInvalidTrainCoords, entry.TrainNo, entry.Lat)
		}
		lon, err := strconv.ParseFloat(entry.Lon, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: train %s longitude %q", ErrInvalidTrainCoords, entry.TrainNo, entry.Lon)
		}

		trains = append(trains, models.Train{
			ID:       entry.TrainNo,
			Location: models.Coordinate{Latitude: lat, Longitude: lon},
		})
	}

	c.log.DebugContext(ctx, "Fetched train snapshot", "trains", len(trains))

	return trains, nil
}
