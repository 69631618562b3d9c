// Package newsrss fetches FII news headlines from an RSS feed.
package newsrss

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/brfintools/fiitrack/internal/common"
	"github.com/brfintools/fiitrack/internal/interfaces"
	"github.com/brfintools/fiitrack/internal/models"
)

const (
	DefaultFeedURL = "https://www.infomoney.com.br/onde-investir/fundos-imobiliarios/feed/"
	DefaultTimeout = 15 * time.Second
)

// Client fetches and parses an RSS 2.0 feed.
type Client struct {
	feedURL    string
	httpClient *http.Client
	logger     *common.Logger
}

var _ interfaces.NewsClient = (*Client)(nil)

// ClientOption configures the client
type ClientOption func(*Client)

// WithFeedURL sets the feed URL
func WithFeedURL(feedURL string) ClientOption {
	return func(c *Client) {
		if feedURL != "" {
			c.feedURL = feedURL
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new RSS news client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		feedURL: DefaultFeedURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// rssFeed mirrors the RSS 2.0 payload.
type rssFeed struct {
	Channel struct {
		Title string    `xml:"title"`
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title   string `xml:"title"`
	Link    string `xml:"link"`
	PubDate string `xml:"pubDate"`
}

// parsePubDate handles the date formats seen in RSS feeds.
func parsePubDate(s string) time.Time {
	layouts := []string{time.RFC1123Z, time.RFC1123, time.RFC822Z, time.RFC822}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

// GetHeadlines fetches the feed and returns up to limit items, newest first
// in feed order.
func (c *Client) GetHeadlines(ctx context.Context, limit int) ([]*models.NewsItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/rss+xml, application/xml, text/xml")

	c.logger.Debug().Str("url", c.feedURL).Msg("Fetching news feed")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("feed returned status %d: %s", resp.StatusCode, string(body))
	}

	var feed rssFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	source := feed.Channel.Title
	items := make([]*models.NewsItem, 0, len(feed.Channel.Items))
	for _, item := range feed.Channel.Items {
		if limit > 0 && len(items) >= limit {
			break
		}
		if item.Title == "" || item.Link == "" {
			continue
		}
		items = append(items, &models.NewsItem{
			Title:       item.Title,
			URL:         item.Link,
			Source:      source,
			PublishedAt: parsePubDate(item.PubDate),
		})
	}

	return items, nil
}
