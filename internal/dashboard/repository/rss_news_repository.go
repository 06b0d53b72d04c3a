package repository

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"golang-stock-dashboard/internal/dashboard/config"
	"golang-stock-dashboard/internal/dashboard/dto"
	"golang-stock-dashboard/pkg/logger"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
)

// RSSNewsSource is the Source value carried by headlines read from the RSS feed.
const RSSNewsSource = "rss"

type rssNewsRepository struct {
	baseURL string
	client  *providerClient
	log     *logger.Logger
}

// NewRSSNewsRepository creates a NewsFeedRepository over the Yahoo Finance headline feed.
func NewRSSNewsRepository(cfg *config.Config, log *logger.Logger) NewsFeedRepository {
	p := cfg.Providers.YahooFinance
	return &rssNewsRepository{
		baseURL: p.RSSBaseURL,
		client:  newProviderClient("yahoo_rss", p.Timeout, p.MaxRequestPerMinute, log),
		log:     log,
	}
}

// Headlines returns the feed items in feed order.
func (r *rssNewsRepository) Headlines(ctx context.Context, ticker string) ([]dto.NewsItem, error) {
	params := url.Values{}
	params.Set("s", ticker)
	params.Set("region", "US")
	params.Set("lang", "en-US")

	body, err := r.client.get(ctx, buildURL(r.baseURL, "/rss/2.0/headline", params), map[string]string{
		"Accept": "application/rss+xml, application/xml, text/xml",
	})
	if err != nil {
		return nil, err
	}

	feed, err := gofeed.NewParser().ParseString(string(body))
	if err != nil {
		return nil, fmt.Errorf("%w: rss feed: %v", ErrMalformedResponse, err)
	}

	items := make([]dto.NewsItem, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil || item.Title == "" || item.Link == "" {
			continue
		}
		items = append(items, dto.NewsItem{
			Headline:    strings.TrimSpace(item.Title),
			URL:         item.Link,
			Source:      RSSNewsSource,
			Summary:     r.plainText(ctx, item.Description),
			PublishedAt: item.PublishedParsed,
		})
	}
	return items, nil
}

// plainText strips the markup feeds embed in descriptions.
func (r *rssNewsRepository) plainText(ctx context.Context, content string) string {
	if content == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		r.log.DebugContext(ctx, "Failed to parse feed description", logger.ErrorField(err))
		return ""
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
