package scraper

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/slumbersage/gjirafa50/helpers"
	"github.com/stretchr/testify/require"
)

const testBaseURL = "https://gjirafa50.com"

// MockFetcher serves canned pages keyed by URL
type MockFetcher struct {
	pages  map[string]string
	errs   map[string]error
	params map[string]url.Values
}

// Ensure MockFetcher implements Fetcher
var _ Fetcher = (*MockFetcher)(nil)

func NewMockFetcher() *MockFetcher {
	return &MockFetcher{
		pages:  make(map[string]string),
		errs:   make(map[string]error),
		params: make(map[string]url.Values),
	}
}

func (m *MockFetcher) Fetch(ctx context.Context, rawURL string, params url.Values) ([]byte, error) {
	m.params[rawURL] = params
	if err, ok := m.errs[rawURL]; ok {
		return nil, err
	}
	page, ok := m.pages[rawURL]
	if !ok {
		return nil, &helpers.StatusError{URL: rawURL, StatusCode: 404}
	}
	return []byte(page), nil
}

func newTestScraper(fetcher *MockFetcher) *Scraper {
	return New(testBaseURL+"/", fetcher)
}

func mustDocument(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestNewTrimsBaseURL(t *testing.T) {
	s := newTestScraper(NewMockFetcher())
	require.Equal(t, testBaseURL, s.BaseURL)
}
