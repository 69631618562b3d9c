// Package brapi provides a client for the brapi.dev market data API.
package brapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/brfintools/fiitrack/internal/common"
	"github.com/brfintools/fiitrack/internal/interfaces"
	"github.com/brfintools/fiitrack/internal/models"
)

const (
	DefaultBaseURL   = "https://brapi.dev/api"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 5 // requests per second
)

// flexFloat64 handles JSON values that may be either a number or a string.
type flexFloat64 float64

func (f *flexFloat64) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*f = flexFloat64(num)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "" || s == "N/A" {
			*f = 0
			return nil
		}
		num, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = flexFloat64(num)
		return nil
	}
	return fmt.Errorf("cannot unmarshal %s into float64", string(data))
}

// Client implements the MarketDataClient interface against brapi.dev.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

var _ interfaces.MarketDataClient = (*Client)(nil)

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new brapi client. The token is optional; brapi serves
// a limited free tier without one.
func NewClient(token string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents an API error
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("brapi API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// get performs a rate-limited GET request
func (c *Client) get(ctx context.Context, path string, params url.Values, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	if params == nil {
		params = url.Values{}
	}
	if c.token != "" {
		params.Set("token", c.token)
	}

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	c.logger.Debug().Str("url", c.baseURL+path).Msg("brapi API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   path,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// quoteResponse mirrors the brapi /quote payload.
type quoteResponse struct {
	Results []quoteResult `json:"results"`
}

type quoteResult struct {
	Symbol             string            `json:"symbol"`
	ShortName          string            `json:"shortName"`
	RegularMarketPrice flexFloat64       `json:"regularMarketPrice"`
	HistoricalData     []historicalPrice `json:"historicalDataPrice"`

	DividendYield flexFloat64    `json:"dividendYield"`
	PriceToBook   flexFloat64    `json:"priceToBook"`
	Summary       *fundSummary   `json:"summaryProfile"`
	Dividends     *dividendsData `json:"dividendsData"`
}

type historicalPrice struct {
	Date  int64       `json:"date"` // unix seconds
	Close flexFloat64 `json:"close"`
}

type fundSummary struct {
	Sector   string `json:"sector"`
	Industry string `json:"industry"`
}

type dividendsData struct {
	CashDividends []cashDividend `json:"cashDividends"`
}

type cashDividend struct {
	Rate          flexFloat64 `json:"rate"`
	PaymentDate   string      `json:"paymentDate"`
	LastDatePrior string      `json:"lastDatePrior"` // ex-date
}

// parseDate handles the date formats brapi emits across endpoints.
func parseDate(s string) time.Time {
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05.000Z",
		"2006-01-02",
		"02/01/2006",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return models.DateOnly(t)
		}
	}
	return time.Time{}
}

// GetQuotes returns the current price and one year of daily closes per
// ticker. Tickers brapi does not know are absent from the result.
func (c *Client) GetQuotes(ctx context.Context, tickers []string) (map[string]*models.MarketSnapshot, error) {
	if len(tickers) == 0 {
		return map[string]*models.MarketSnapshot{}, nil
	}

	params := url.Values{}
	params.Set("range", "1y")
	params.Set("interval", "1d")

	path := fmt.Sprintf("/quote/%s", strings.Join(tickers, ","))

	var response quoteResponse
	if err := c.get(ctx, path, params, &response); err != nil {
		return nil, err
	}

	now := time.Now()
	result := make(map[string]*models.MarketSnapshot, len(response.Results))
	for _, r := range response.Results {
		if r.Symbol == "" {
			continue
		}
		snapshot := &models.MarketSnapshot{
			Ticker:         strings.ToUpper(r.Symbol),
			Name:           r.ShortName,
			CurrentPrice:   float64(r.RegularMarketPrice),
			QuoteUpdatedAt: now,
		}
		for _, bar := range r.HistoricalData {
			if bar.Close <= 0 {
				continue
			}
			snapshot.PriceHistory = append(snapshot.PriceHistory, models.PriceBar{
				Date:  models.DateOnly(time.Unix(bar.Date, 0).UTC()),
				Close: float64(bar.Close),
			})
		}
		sort.Slice(snapshot.PriceHistory, func(i, j int) bool {
			return snapshot.PriceHistory[i].Date.Before(snapshot.PriceHistory[j].Date)
		})
		result[snapshot.Ticker] = snapshot
	}

	return result, nil
}

// GetFundamentals returns yield, price-to-book, fund segment and dividend
// history per ticker.
func (c *Client) GetFundamentals(ctx context.Context, tickers []string) (map[string]*models.MarketSnapshot, error) {
	if len(tickers) == 0 {
		return map[string]*models.MarketSnapshot{}, nil
	}

	params := url.Values{}
	params.Set("modules", "summaryProfile,defaultKeyStatistics")
	params.Set("dividends", "true")

	path := fmt.Sprintf("/quote/%s", strings.Join(tickers, ","))

	var response quoteResponse
	if err := c.get(ctx, path, params, &response); err != nil {
		return nil, err
	}

	now := time.Now()
	result := make(map[string]*models.MarketSnapshot, len(response.Results))
	for _, r := range response.Results {
		if r.Symbol == "" {
			continue
		}
		snapshot := &models.MarketSnapshot{
			Ticker:                strings.ToUpper(r.Symbol),
			DY:                    float64(r.DividendYield),
			PVP:                   float64(r.PriceToBook),
			FundamentalsUpdatedAt: now,
		}
		if r.Summary != nil {
			if r.Summary.Industry != "" {
				snapshot.Segment = r.Summary.Industry
			} else {
				snapshot.Segment = r.Summary.Sector
			}
		}
		if r.Dividends != nil {
			for _, d := range r.Dividends.CashDividends {
				if d.Rate <= 0 {
					continue
				}
				snapshot.DividendsHistory = append(snapshot.DividendsHistory, models.DividendEvent{
					ExDate:         parseDate(d.LastDatePrior),
					PaymentDate:    parseDate(d.PaymentDate),
					AmountPerShare: float64(d.Rate),
				})
			}
			sort.Slice(snapshot.DividendsHistory, func(i, j int) bool {
				return snapshot.DividendsHistory[i].ExDate.Before(snapshot.DividendsHistory[j].ExDate)
			})
			if len(snapshot.DividendsHistory) > 0 {
				snapshot.DividendsUpdatedAt = now
			}
		}
		result[snapshot.Ticker] = snapshot
	}

	return result, nil
}
