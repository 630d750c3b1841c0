package research

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	readability "github.com/go-shiori/go-readability"
	"github.com/mmcdole/gofeed"

	"github.com/akm592/coldreach/internal/types"
)

// maxNewsItems caps fragments taken from one feed query.
const maxNewsItems = 3

// minSummaryLength below which the article body is fetched for a fuller
// fragment.
const minSummaryLength = 120

// FeedNewsReader implements NewsReader over an RSS/Atom news feed, with
// go-readability pulling article text when the feed summary is too thin.
type FeedNewsReader struct {
	// feedTemplate is an fmt template producing the feed URL; %s receives
	// the URL-escaped company name.
	feedTemplate string
	parser       *gofeed.Parser
	readArticle  func(ctx context.Context, link string) (string, error)
	now          func() time.Time
}

// NewFeedNewsReader builds a reader over the given feed URL template.
func NewFeedNewsReader(feedTemplate string) *FeedNewsReader {
	return &FeedNewsReader{
		feedTemplate: feedTemplate,
		parser:       gofeed.NewParser(),
		readArticle:  readArticleText,
		now:          time.Now,
	}
}

// CompanyNews returns scored business-news fragments for the company.
func (r *FeedNewsReader) CompanyNews(ctx context.Context, company string) ([]types.Fragment, error) {
	feedURL := fmt.Sprintf(r.feedTemplate, url.QueryEscape(company))

	feed, err := r.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("news feed parse for %s: %w", company, err)
	}

	now := r.now()
	var frags []types.Fragment
	for _, item := range feed.Items {
		if len(frags) >= maxNewsItems {
			break
		}

		text := strings.TrimSpace(item.Title)
		if desc := strings.TrimSpace(item.Description); desc != "" {
			text = text + ": " + desc
		}
		if len(text) < minSummaryLength && item.Link != "" {
			if body, err := r.readArticle(ctx, item.Link); err == nil && body != "" {
				text = text + ": " + body
			}
		}
		if text == "" {
			continue
		}

		captured := now
		if item.PublishedParsed != nil {
			captured = *item.PublishedParsed
		}

		frags = append(frags, types.Fragment{
			Data:                     truncate(text, 1000),
			SourceURL:                item.Link,
			SourceClass:              SourceNewsArticle,
			CapturedAt:               captured,
			SourceCredibility:        SourceCredibility(SourceNewsArticle),
			TemporalScore:            TemporalScore(captured, now),
			PersonalizationRelevance: PersonalizationRelevance(text, "company news"),
		})
	}
	return frags, nil
}

// readArticleText extracts readable article content from a news link.
func readArticleText(ctx context.Context, link string) (string, error) {
	article, err := readability.FromURL(link, 20*time.Second)
	if err != nil {
		return "", fmt.Errorf("readability extract for %s: %w", link, err)
	}
	_ = ctx // readability.FromURL manages its own timeout
	return truncate(strings.TrimSpace(article.TextContent), 1000), nil
}

// truncate caps s at n bytes without splitting a multi-byte rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
