package scraper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/slumbersage/gjirafa50/helpers"
	"github.com/slumbersage/gjirafa50/logger"
	apperrors "github.com/slumbersage/gjirafa50/pkg/errors"
)

// Upstream paths relative to the base URL
const (
	searchPath     = "/product/search"
	happyHoursPath = "/happy-hours"
)

// Scraper reads the upstream shop and reshapes its pages
type Scraper struct {
	BaseURL string
	fetcher Fetcher
	log     *logger.Logger
}

// New creates a scraper for the shop at baseURL
func New(baseURL string, fetcher Fetcher) *Scraper {
	return &Scraper{
		BaseURL: strings.TrimRight(baseURL, "/"),
		fetcher: fetcher,
		log:     logger.ForScraper("gjirafa50"),
	}
}

// fetch retrieves a page, turning every failure into an upstream fetch error
func (s *Scraper) fetch(ctx context.Context, source, rawURL string, params url.Values) ([]byte, error) {
	body, err := s.fetcher.Fetch(ctx, rawURL, params)
	if err != nil {
		var statusErr *helpers.StatusError
		if errors.As(err, &statusErr) {
			s.log.Warn().Str("url", rawURL).Int("status", statusErr.StatusCode).Msg("Upstream returned non-success status")
		}
		return nil, apperrors.NewUpstreamFetch(source, fmt.Sprintf("failed to fetch %s", rawURL), err)
	}
	return body, nil
}

// fetchDocument fetches a page and parses it as HTML
func (s *Scraper) fetchDocument(ctx context.Context, source, rawURL string) (*goquery.Document, []byte, error) {
	body, err := s.fetch(ctx, source, rawURL, nil)
	if err != nil {
		return nil, nil, err
	}

	doc, err := createDocument(source, body)
	if err != nil {
		return nil, nil, err
	}
	return doc, body, nil
}

// createDocument creates a goquery document from raw markup
func createDocument(source string, body []byte) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.NewParsing(source, "failed to parse HTML", err)
	}
	return doc, nil
}
