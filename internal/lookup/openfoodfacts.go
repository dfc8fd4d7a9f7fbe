package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/KirkDiggler/partybac/internal/models"
)

const (
	// DefaultBaseURL is the public OpenFoodFacts API
	DefaultBaseURL = "https://world.openfoodfacts.org"

	// DefaultProductName is used when the product has no name
	DefaultProductName = "Unbekanntes Getränk"
)

var (
	// ErrEmptyCode is returned for a blank product code
	ErrEmptyCode = errors.New("product code cannot be empty")

	// ErrUnavailable wraps transport and server failures
	ErrUnavailable = errors.New("product lookup unavailable")
)

var codePattern = regexp.MustCompile(`^[0-9A-Za-z-]{1,64}$`)

// Config holds configuration for the OpenFoodFacts client
type Config struct {
	// BaseURL overrides the API location
	BaseURL string

	// Timeout bounds each request
	Timeout time.Duration

	// HTTPClient overrides the default client
	HTTPClient *http.Client

	Logger *slog.Logger
}

// OpenFoodFacts looks products up in the OpenFoodFacts database
type OpenFoodFacts struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// NewOpenFoodFacts creates a client
func NewOpenFoodFacts(cfg *Config) *OpenFoodFacts {
	if cfg == nil {
		cfg = &Config{}
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &OpenFoodFacts{
		baseURL:    baseURL,
		httpClient: httpClient,
		log:        logger,
	}
}

type productResponse struct {
	Status  int            `json:"status"`
	Product *productDetail `json:"product"`
}

type productDetail struct {
	ProductName  string          `json:"product_name"`
	AlcoholValue json.RawMessage `json:"alcohol_value"`
	Alcohol100g  json.RawMessage `json:"alcohol_100g"`
	Quantity     string          `json:"quantity"`
	ImageURL     string          `json:"image_url"`
}

// LookupProduct fetches a product by barcode
func (c *OpenFoodFacts) LookupProduct(ctx context.Context, input *LookupProductInput) (*LookupProductOutput, error) {
	if input == nil || strings.TrimSpace(input.Code) == "" {
		return nil, ErrEmptyCode
	}
	code := strings.TrimSpace(input.Code)
	if !codePattern.MatchString(code) {
		return &LookupProductOutput{Found: false}, nil
	}

	endpoint := fmt.Sprintf("%s/api/v0/product/%s.json", c.baseURL, url.PathEscape(code))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build lookup request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return &LookupProductOutput{Found: false}, nil
	}
	if resp.StatusCode != http.StatusOK {
		c.log.Warn("product lookup failed", "code", code, "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var decoded productResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}
	if decoded.Status != 1 || decoded.Product == nil {
		return &LookupProductOutput{Found: false}, nil
	}

	detail := decoded.Product
	product := &models.Product{
		Code:     code,
		Name:     strings.TrimSpace(detail.ProductName),
		ImageURL: detail.ImageURL,
	}
	if product.Name == "" {
		product.Name = DefaultProductName
	}

	if abv, ok := parseNumber(detail.AlcoholValue); ok {
		fraction := abv / 100
		product.AlcoholFraction = &fraction
	} else if abv, ok := parseNumber(detail.Alcohol100g); ok {
		fraction := abv / 100
		product.AlcoholFraction = &fraction
	}

	if volume, ok := ParseQuantity(detail.Quantity); ok {
		product.VolumeML = &volume
	}

	return &LookupProductOutput{
		Found:   true,
		Product: product,
	}, nil
}

// parseNumber accepts a JSON number or a numeric string
func parseNumber(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", "."), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

var quantityPattern = regexp.MustCompile(`(?i)^\s*([0-9]+(?:[.,][0-9]+)?)\s*(ml|cl|l)\b`)

// ParseQuantity extracts a volume in millilitres from strings like "500ml",
// "0.5 l" or "33 cl"
func ParseQuantity(quantity string) (float64, bool) {
	m := quantityPattern.FindStringSubmatch(strings.TrimSpace(quantity))
	if m == nil {
		return 0, false
	}
	value, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64)
	if err != nil || value <= 0 {
		return 0, false
	}
	switch strings.ToLower(m[2]) {
	case "l":
		value *= 1000
	case "cl":
		value *= 10
	}
	return value, true
}
