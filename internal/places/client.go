package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// detailsFields — фиксированный набор полей детального запроса.
const detailsFields = "name,place_id,formatted_address,formatted_phone_number,international_phone_number,website,rating,user_ratings_total,reviews,photos,opening_hours,geometry,types"

var ErrMissingAPIKey = errors.New("places api key is missing")

type Client interface {
	TextSearch(ctx context.Context, query, pageToken string) (SearchResponse, error)
	Details(ctx context.Context, placeID string) (DetailsResponse, error)
}

// GoogleClient calls the Google Places text-search and details endpoints.
type GoogleClient struct {
	apiKey     string
	baseURL    string
	language   string
	limiter    *rate.Limiter
	httpClient *http.Client
}

// NewGoogleClient создает клиент Google Places с заданными параметрами.
func NewGoogleClient(apiKey, baseURL, language string, timeout time.Duration, requestsPerSecond int) *GoogleClient {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 5
	}

	return &GoogleClient{
		apiKey:   apiKey,
		baseURL:  strings.TrimRight(baseURL, "/"),
		language: language,
		limiter:  rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// TextSearch выполняет текстовый поиск, опционально по токену следующей страницы.
func (c *GoogleClient) TextSearch(ctx context.Context, query, pageToken string) (SearchResponse, error) {
	if strings.TrimSpace(c.apiKey) == "" {
		return SearchResponse{}, ErrMissingAPIKey
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("key", c.apiKey)
	params.Set("language", c.language)
	if pageToken != "" {
		params.Set("pagetoken", pageToken)
	}

	var response SearchResponse
	if err := c.get(ctx, "/textsearch/json", params, &response); err != nil {
		return SearchResponse{}, err
	}

	switch response.Status {
	case StatusOK:
		return response, nil
	case StatusZeroResults:
		return SearchResponse{Status: response.Status}, nil
	default:
		return SearchResponse{}, apiError(response.Status, response.ErrorMessage)
	}
}

// Details запрашивает детальную карточку места с фиксированным набором полей.
func (c *GoogleClient) Details(ctx context.Context, placeID string) (DetailsResponse, error) {
	if strings.TrimSpace(c.apiKey) == "" {
		return DetailsResponse{}, ErrMissingAPIKey
	}

	params := url.Values{}
	params.Set("place_id", placeID)
	params.Set("key", c.apiKey)
	params.Set("language", c.language)
	params.Set("reviews_no_translation", "true")
	params.Set("fields", detailsFields)

	var response DetailsResponse
	if err := c.get(ctx, "/details/json", params, &response); err != nil {
		return DetailsResponse{}, err
	}

	if response.Status != StatusOK {
		return DetailsResponse{}, apiError(response.Status, response.ErrorMessage)
	}

	return response, nil
}

func (c *GoogleClient) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	endpoint := c.baseURL + path + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	response, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return err
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return fmt.Errorf("places api http %d: %s", response.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode places response: %w", err)
	}

	return nil
}

func apiError(status, message string) error {
	if message != "" {
		return fmt.Errorf("places api status %s: %s", status, message)
	}
	return fmt.Errorf("places api status %s", status)
}
