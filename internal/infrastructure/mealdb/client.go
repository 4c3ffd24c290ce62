package mealdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pantrymatch/backend/internal/domain"
	"golang.org/x/time/rate"
)

// Client handles communication with a TheMealDB-compatible recipe catalog
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	rateLimiter *rate.Limiter
	debug       bool
}

// mealsResponse is the envelope every catalog endpoint returns.
// "meals" is null, or occasionally a message string, when nothing matched.
type mealsResponse struct {
	Meals json.RawMessage `json:"meals"`
}

// NewClient creates a new catalog client
func NewClient(apiKey, baseURL string) *Client {
	// The public catalog has no published quota; stay well below a few requests per second
	limiter := rate.NewLimiter(rate.Limit(5), 5)

	return &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		apiKey:      apiKey,
		baseURL:     strings.TrimRight(baseURL, "/"),
		rateLimiter: limiter,
	}
}

// SetDebug toggles request logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// SearchByIngredient lists recipes that use the ingredient keyword.
// No matches is an empty result, not an error.
func (c *Client) SearchByIngredient(ctx context.Context, keyword string) ([]domain.RecipeSummary, error) {
	keyword = strings.ReplaceAll(strings.TrimSpace(keyword), " ", "_")
	if keyword == "" {
		return nil, domain.ErrInvalidRequest
	}

	params := url.Values{}
	params.Add("i", keyword)

	meals, err := c.getMeals(ctx, "filter.php", params)
	if err != nil {
		return nil, err
	}

	summaries := make([]domain.RecipeSummary, 0, len(meals))
	for _, meal := range meals {
		summaries = append(summaries, MapSummary(meal))
	}
	return summaries, nil
}

// ListRecipes returns the catalog's default listing with full details
func (c *Client) ListRecipes(ctx context.Context) ([]domain.Recipe, error) {
	params := url.Values{}
	params.Add("s", "")

	meals, err := c.getMeals(ctx, "search.php", params)
	if err != nil {
		return nil, err
	}

	recipes := make([]domain.Recipe, 0, len(meals))
	for _, meal := range meals {
		recipes = append(recipes, MapMeal(meal))
	}
	return recipes, nil
}

// LookupRecipe retrieves the full recipe for an id
func (c *Client) LookupRecipe(ctx context.Context, id string) (*domain.Recipe, error) {
	params := url.Values{}
	params.Add("i", strings.TrimSpace(id))

	meals, err := c.getMeals(ctx, "lookup.php", params)
	if err != nil {
		return nil, err
	}
	if len(meals) == 0 {
		return nil, fmt.Errorf("%w: id %s", domain.ErrRecipeNotFound, id)
	}

	recipe := MapMeal(meals[0])
	return &recipe, nil
}

// getMeals performs a single GET and decodes the meals array. Nothing is retried.
func (c *Client) getMeals(ctx context.Context, endpoint string, params url.Values) ([]map[string]interface{}, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	reqURL := fmt.Sprintf("%s/%s/%s?%s", c.baseURL, c.apiKey, endpoint, params.Encode())
	if c.debug {
		log.Printf("[MEALDB] GET %s", reqURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "PantryMatch/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrRecipeNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		log.Printf("[MEALDB] API error - Status: %d, Body: %s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("%w: status %d", domain.ErrProviderFailure, resp.StatusCode)
	}

	var envelope mealsResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", domain.ErrProviderFailure, err)
	}

	var meals []map[string]interface{}
	if len(envelope.Meals) == 0 || json.Unmarshal(envelope.Meals, &meals) != nil {
		return nil, nil
	}

	if c.debug {
		log.Printf("[MEALDB] %s returned %d meals", endpoint, len(meals))
	}
	return meals, nil
}
