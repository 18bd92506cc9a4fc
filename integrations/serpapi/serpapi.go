package serpapi

import (
	"context"
	"net/url"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/creatorlens/backend/core/config"
	"github.com/creatorlens/backend/domains/media"
	"github.com/creatorlens/backend/pkg/fetcher"
)

const (
	engineYouTube = "youtube"
	engineImages  = "google_images"
	engineGoogle  = "google"
)

// Client calls SerpAPI through the retrying fetcher and hands back the raw
// payload; normalization is the aggregation service's job.
type Client struct {
	cfg     config.SerpConfig
	fetcher *fetcher.Client
}

func NewClient(cfg config.SerpConfig, f *fetcher.Client) *Client {
	return &Client{cfg: cfg, fetcher: f}
}

func (c *Client) policy() fetcher.Policy {
	return fetcher.Policy{
		MaxAttempts: c.cfg.MaxAttempts,
		Timeout:     c.cfg.Timeout,
		BackoffBase: c.cfg.BackoffBase,
	}
}

func (c *Client) search(ctx context.Context, params url.Values) ([]byte, error) {
	params.Set("api_key", c.cfg.APIKey)

	return c.fetcher.Do(ctx, fetcher.Request{
		URL:   c.cfg.BaseURL,
		Query: params,
		// SerpAPI throttles with 429 and has occasional 5xx blips; both
		// are worth the second attempt. Other statuses are terminal.
	}, c.policy())
}

func (c *Client) TrendingVideos(ctx context.Context, query string) ([]byte, error) {
	if query == "" {
		query = "trending"
	}
	logrus.Debugf("[SERP] fetching trending videos for %q", query)

	params := url.Values{}
	params.Set("engine", engineYouTube)
	params.Set("search_query", query)
	params.Set("gl", c.cfg.CountryCode)
	params.Set("hl", c.cfg.Language)
	return c.search(ctx, params)
}

func (c *Client) SearchVideos(ctx context.Context, query string) ([]byte, error) {
	logrus.Debugf("[SERP] searching videos for %q", query)

	params := url.Values{}
	params.Set("engine", engineYouTube)
	params.Set("search_query", query)
	return c.search(ctx, params)
}

func (c *Client) TrendingImages(ctx context.Context, query string) ([]byte, error) {
	if query == "" {
		query = "youtube thumbnail ideas"
	}
	logrus.Debugf("[SERP] fetching trending images for %q", query)

	params := url.Values{}
	params.Set("engine", engineImages)
	params.Set("q", query)
	params.Set("num", strconv.Itoa(20))
	return c.search(ctx, params)
}

func (c *Client) SearchImages(ctx context.Context, query string) ([]byte, error) {
	logrus.Debugf("[SERP] searching images for %q", query)

	params := url.Values{}
	params.Set("engine", engineImages)
	params.Set("q", query)
	params.Set("num", strconv.Itoa(20))
	return c.search(ctx, params)
}

func (c *Client) Suggestions(ctx context.Context, query string) ([]byte, error) {
	params := url.Values{}
	params.Set("engine", engineGoogle)
	params.Set("q", "youtube "+query+" tips ideas")
	params.Set("num", strconv.Itoa(10))
	return c.search(ctx, params)
}

var _ media.SearchProvider = (*Client)(nil)
