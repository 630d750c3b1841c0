package research

import (
	"context"
	"fmt"

	"github.com/akm592/coldreach/internal/fetch"
)

// SitePageReader implements PageReader over the fetch package, with an
// optional headless-browser fallback for JavaScript-rendered sites.
type SitePageReader struct {
	useBrowser bool
	verbose    bool
}

// NewSitePageReader builds a page reader. When useBrowser is set, pages
// with too little static content are re-rendered in a headless browser.
func NewSitePageReader(useBrowser, verbose bool) *SitePageReader {
	return &SitePageReader{useBrowser: useBrowser, verbose: verbose}
}

// ReadPage fetches a company page and returns its main text.
func (r *SitePageReader) ReadPage(ctx context.Context, url string) (string, error) {
	result, err := fetch.URL(ctx, url, nil)
	if err != nil {
		return "", fmt.Errorf("company page fetch: %w", err)
	}

	text, err := fetch.ExtractMainText(result.HTML, fetch.CompanyPageSelectors())
	if err != nil {
		return "", fmt.Errorf("company page extract: %w", err)
	}

	if r.useBrowser && fetch.ShouldUseBrowser(text) {
		html, err := fetch.BrowserSimple(ctx, url, r.verbose)
		if err != nil {
			// Keep whatever the static fetch produced.
			return text, nil
		}
		rendered, err := fetch.ExtractMainText(html, fetch.CompanyPageSelectors())
		if err == nil && len(rendered) > len(text) {
			text = rendered
		}
	}
	return text, nil
}
