package googlemaps

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/elev8ted-roofs/estimator-api/internal/platform/metrics"
	"github.com/elev8ted-roofs/estimator-api/pkg/model"
	"github.com/elev8ted-roofs/estimator-api/pkg/util"
)

var (
	// ErrAddressNotFound is returned when the geocoder has no match for an address.
	ErrAddressNotFound = errors.New("address not found")
)

// Provider names reported to the Recorder.
const (
	ProviderGeocode      = "geocode"
	ProviderAutocomplete = "autocomplete"
	ProviderSatellite    = "satellite"
)

// Mock coordinates returned when no key is configured (San Francisco).
const (
	mockLatitude  = 37.7749
	mockLongitude = -122.4194
)

const defaultMaxImageBytes = 10 << 20

// HTTPClient matches net/http.Client Do signature for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Recorder receives the outcome of each upstream call.
type Recorder interface {
	IncUpstream(provider, outcome string)
}

type nopRecorder struct{}

func (nopRecorder) IncUpstream(string, string) {}

// Client wraps the Google Geocoding, Places Autocomplete, and Static Maps APIs.
// Without an API key every call returns a degraded response instead of failing.
type Client struct {
	apiKey        string
	geocodingKey  string
	baseURL       string
	httpClient    HTTPClient
	recorder      Recorder
	lookupTimeout time.Duration
	imageTimeout  time.Duration
	maxImageBytes int64
}

// Config defines settings for the Maps client.
type Config struct {
	APIKey        string
	GeocodingKey  string
	BaseURL       string
	LookupTimeout time.Duration
	ImageTimeout  time.Duration
	MaxImageBytes int64
}

// New creates a Maps client.
func New(httpClient HTTPClient, recorder Recorder, cfg Config) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}
	base := cfg.BaseURL
	if base == "" {
		base = "https://maps.googleapis.com/maps/api"
	}
	geoKey := cfg.GeocodingKey
	if geoKey == "" {
		geoKey = cfg.APIKey
	}
	lookup := cfg.LookupTimeout
	if lookup <= 0 {
		lookup = 10 * time.Second
	}
	image := cfg.ImageTimeout
	if image <= 0 {
		image = 30 * time.Second
	}
	maxImage := cfg.MaxImageBytes
	if maxImage <= 0 {
		maxImage = defaultMaxImageBytes
	}

	return &Client{
		apiKey:        cfg.APIKey,
		geocodingKey:  geoKey,
		baseURL:       base,
		httpClient:    httpClient,
		recorder:      recorder,
		lookupTimeout: lookup,
		imageTimeout:  image,
		maxImageBytes: maxImage,
	}
}

// Configured reports whether an API key is available.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// Geocode resolves an address to coordinates. The Maps key gates the call
// even when a dedicated geocoding key is set.
func (c *Client) Geocode(ctx context.Context, address string) (model.GeocodeResult, error) {
	address = util.CleanAddress(address)
	if !c.Configured() {
		c.recorder.IncUpstream(ProviderGeocode, metrics.OutcomeUnconfigured)
		return model.GeocodeResult{
			Address:          address,
			FormattedAddress: "Mock: " + address,
			Latitude:         mockLatitude,
			Longitude:        mockLongitude,
			Success:          false,
			Error:            "Google Maps API key not configured. Please add your API key to .env file.",
		}, nil
	}

	params := url.Values{}
	params.Set("address", address)
	params.Set("key", c.geocodingKey)

	var payload geocodeResponse
	if err := c.getJSON(ctx, "/geocode/json", params, &payload); err != nil {
		c.recorder.IncUpstream(ProviderGeocode, metrics.OutcomeError)
		return model.GeocodeResult{}, fmt.Errorf("geocoding failed: %w", err)
	}
	if payload.Status != "OK" || len(payload.Results) == 0 {
		c.recorder.IncUpstream(ProviderGeocode, metrics.OutcomeSuccess)
		status := payload.Status
		if status == "" {
			status = "Unknown error"
		}
		return model.GeocodeResult{}, fmt.Errorf("%w: %s", ErrAddressNotFound, status)
	}

	c.recorder.IncUpstream(ProviderGeocode, metrics.OutcomeSuccess)
	first := payload.Results[0]
	return model.GeocodeResult{
		Address:          address,
		FormattedAddress: first.FormattedAddress,
		Latitude:         first.Geometry.Location.Lat,
		Longitude:        first.Geometry.Location.Lng,
		Success:          true,
	}, nil
}

// Suggest returns US address predictions for partial input. Failures are
// reported in the result rather than as errors.
func (c *Client) Suggest(ctx context.Context, input, types string) model.AutocompleteResult {
	if c.apiKey == "" {
		c.recorder.IncUpstream(ProviderAutocomplete, metrics.OutcomeUnconfigured)
		return model.AutocompleteResult{
			Suggestions: []model.AddressSuggestion{},
			Error:       "Google Maps API key not configured",
		}
	}
	if len(input) < 3 {
		return model.AutocompleteResult{Suggestions: []model.AddressSuggestion{}, Success: true}
	}
	if types == "" {
		types = "address"
	}

	params := url.Values{}
	params.Set("input", input)
	params.Set("types", types)
	params.Set("key", c.apiKey)
	params.Set("components", "country:us")

	var payload autocompleteResponse
	if err := c.getJSON(ctx, "/place/autocomplete/json", params, &payload); err != nil {
		c.recorder.IncUpstream(ProviderAutocomplete, metrics.OutcomeError)
		return model.AutocompleteResult{
			Suggestions: []model.AddressSuggestion{},
			Error:       fmt.Sprintf("Failed to fetch suggestions: %v", err),
		}
	}
	if payload.Status == "REQUEST_DENIED" {
		c.recorder.IncUpstream(ProviderAutocomplete, metrics.OutcomeError)
		return model.AutocompleteResult{
			Suggestions: []model.AddressSuggestion{},
			Error:       "Google Places API not enabled. Enable it at: https://console.cloud.google.com/apis/library/places-backend.googleapis.com",
		}
	}

	c.recorder.IncUpstream(ProviderAutocomplete, metrics.OutcomeSuccess)
	suggestions := make([]model.AddressSuggestion, 0, len(payload.Predictions))
	for _, p := range payload.Predictions {
		suggestions = append(suggestions, model.AddressSuggestion{Description: p.Description, PlaceID: p.PlaceID})
	}
	return model.AutocompleteResult{Suggestions: suggestions, Success: true}
}

// SatelliteRequest describes the static map tile to fetch.
type SatelliteRequest struct {
	Latitude  float64
	Longitude float64
	Zoom      int
	Width     int
	Height    int
}

// SatelliteImage fetches a satellite tile centered on the coordinates and
// returns it base64 encoded.
func (c *Client) SatelliteImage(ctx context.Context, req SatelliteRequest) model.SatelliteImage {
	if c.apiKey == "" {
		c.recorder.IncUpstream(ProviderSatellite, metrics.OutcomeUnconfigured)
		return model.SatelliteImage{Error: "Google Maps API key not configured"}
	}
	if req.Zoom <= 0 {
		req.Zoom = 20
	}
	if req.Width <= 0 {
		req.Width = 800
	}
	if req.Height <= 0 {
		req.Height = 600
	}

	params := url.Values{}
	params.Set("center", fmt.Sprintf("%v,%v", req.Latitude, req.Longitude))
	params.Set("zoom", strconv.Itoa(req.Zoom))
	params.Set("size", fmt.Sprintf("%dx%d", req.Width, req.Height))
	params.Set("maptype", "satellite")
	params.Set("key", c.apiKey)
	imageURL := c.baseURL + "/staticmap?" + params.Encode()

	ctx, cancel := context.WithTimeout(ctx, c.imageTimeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		c.recorder.IncUpstream(ProviderSatellite, metrics.OutcomeError)
		return model.SatelliteImage{Error: fmt.Sprintf("Failed to fetch satellite image: %v", err)}
	}
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.recorder.IncUpstream(ProviderSatellite, metrics.OutcomeError)
		return model.SatelliteImage{Error: fmt.Sprintf("Failed to fetch satellite image: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusForbidden {
		c.recorder.IncUpstream(ProviderSatellite, metrics.OutcomeError)
		return model.SatelliteImage{Error: "Google Maps Static API is not enabled. Please enable it in Google Cloud Console: https://console.cloud.google.com/apis/library/static-maps-backend.googleapis.com"}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.recorder.IncUpstream(ProviderSatellite, metrics.OutcomeError)
		return model.SatelliteImage{Error: fmt.Sprintf("Google Maps API error: %d. Check API key and billing settings.", resp.StatusCode)}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxImageBytes+1))
	if err != nil {
		c.recorder.IncUpstream(ProviderSatellite, metrics.OutcomeError)
		return model.SatelliteImage{Error: fmt.Sprintf("Failed to fetch satellite image: %v", err)}
	}
	if int64(len(data)) > c.maxImageBytes {
		c.recorder.IncUpstream(ProviderSatellite, metrics.OutcomeError)
		return model.SatelliteImage{Error: fmt.Sprintf("Satellite image exceeds %d bytes", c.maxImageBytes)}
	}

	c.recorder.IncUpstream(ProviderSatellite, metrics.OutcomeSuccess)
	return model.SatelliteImage{
		ImageURL:    imageURL,
		ImageBase64: base64.StdEncoding.EncodeToString(data),
		Success:     true,
	}
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.lookupTimeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("google maps status %d: %s", resp.StatusCode, string(body))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

type geocodeResponse struct {
	Status  string          `json:"status"`
	Results []geocodeResult `json:"results"`
}

type geocodeResult struct {
	FormattedAddress string `json:"formatted_address"`
	Geometry         struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
}

type autocompleteResponse struct {
	Status      string `json:"status"`
	Predictions []struct {
		Description string `json:"description"`
		PlaceID     string `json:"place_id"`
	} `json:"predictions"`
}
