package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	apperrors "github.com/slumbersage/gjirafa50/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func itemBox(title, price, discount string) string {
	label := ""
	if discount != "" {
		label = `<div class="discount__label">` + discount + `</div>`
	}
	return fmt.Sprintf(`<div class="item-box">
		<a href="/%s"><img src="https://cdn.gjirafa50.com/%s.jpg"></a>
		<h2 class="product-title">%s</h2>
		<span class="price">%s</span>%s
	</div>`, title, title, title, price, label)
}

func searchEnvelopeJSON(t *testing.T, totalPages, totalHits any, items ...string) string {
	t.Helper()
	data, err := json.Marshal(map[string]any{
		"totalpages": totalPages,
		"totalHits":  totalHits,
		"html":       strings.Join(items, "\n"),
	})
	require.NoError(t, err)
	return string(data)
}

func titles(products []Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Title)
	}
	return out
}

func intPtr(n int) *int { return &n }

func TestSearch(t *testing.T) {
	fetcher := NewMockFetcher()
	fetcher.pages[testBaseURL+searchPath] = searchEnvelopeJSON(t, 4, "87",
		itemBox("a", "300.00 €", ""),
		itemBox("b", "100.00 €", "-5%"),
		itemBox("c", "200.00 €", ""),
	)

	result, err := newTestScraper(fetcher).Search(context.Background(), SearchQuery{
		Page:      2,
		OrderBy:   OrderPriceAsc,
		Query:     "laptop",
		CacheBust: 1710025383220,
	})
	require.NoError(t, err)

	assert.Equal(t, 4, result.TotalPages)
	assert.Equal(t, 87, result.Views)
	assert.Equal(t, []string{"b", "c", "a"}, titles(result.Products))
	require.NotNil(t, result.Products[0].Discount)
	assert.Equal(t, "-5%", *result.Products[0].Discount)

	params := fetcher.params[testBaseURL+searchPath]
	assert.Equal(t, "2", params.Get("pagenumber"))
	assert.Equal(t, "10", params.Get("orderby"))
	assert.Equal(t, "laptop", params.Get("q"))
	assert.Equal(t, "false", params.Get("advs"))
	assert.Equal(t, "false", params.Get("hls"))
	assert.Equal(t, "false", params.Get("is"))
	assert.Equal(t, "1710025383220", params.Get("_"))
	assert.False(t, params.Has("price"))
}

func TestSearchPriceRange(t *testing.T) {
	fetcher := NewMockFetcher()
	fetcher.pages[testBaseURL+searchPath] = searchEnvelopeJSON(t, 1, 3,
		itemBox("fifty", "50 €", ""),
		itemBox("one-fifty", "150 €", ""),
		itemBox("two-fifty", "250 €", ""),
		itemBox("edge", "200 €", ""),
	)

	result, err := newTestScraper(fetcher).Search(context.Background(), SearchQuery{
		Page:            1,
		OrderBy:         OrderRelevance,
		Query:           "monitor",
		SameDayShipping: true,
		StartPrice:      intPtr(100),
		MaxPrice:        intPtr(200),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"one-fifty", "edge"}, titles(result.Products))

	params := fetcher.params[testBaseURL+searchPath]
	assert.Equal(t, "100-200", params.Get("price"))
	assert.Equal(t, "true", params.Get("hls"))
	assert.NotEmpty(t, params.Get("_"))
}

func TestSearchSingleBoundDoesNotFilter(t *testing.T) {
	fetcher := NewMockFetcher()
	fetcher.pages[testBaseURL+searchPath] = searchEnvelopeJSON(t, 1, 2,
		itemBox("cheap", "50 €", ""),
		itemBox("pricey", "500 €", ""),
	)

	result, err := newTestScraper(fetcher).Search(context.Background(), SearchQuery{
		Page: 1, OrderBy: OrderRelevance, Query: "x", StartPrice: intPtr(100),
	})
	require.NoError(t, err)
	assert.Len(t, result.Products, 2)
	assert.False(t, fetcher.params[testBaseURL+searchPath].Has("price"))
}

func TestSortProducts(t *testing.T) {
	build := func() []Product {
		discount := func(s string) *string { return &s }
		return []Product{
			{Title: "first-300", Price: "300 €"},
			{Title: "first-100", Price: "100 €", Discount: discount("-10%")},
			{Title: "200", Price: "200 €", Discount: discount("-30%")},
			{Title: "second-100", Price: "100 €", Discount: discount("-10%")},
		}
	}

	tests := []struct {
		order    OrderBy
		expected []string
	}{
		{OrderPriceAsc, []string{"first-100", "second-100", "200", "first-300"}},
		{OrderPriceDesc, []string{"first-300", "200", "first-100", "second-100"}},
		{OrderDiscount, []string{"200", "first-100", "second-100", "first-300"}},
		{OrderRelevance, []string{"first-300", "first-100", "200", "second-100"}},
		{OrderNewest, []string{"first-300", "first-100", "200", "second-100"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.order), func(t *testing.T) {
			products := build()
			sortProducts(products, tt.order)
			assert.Equal(t, tt.expected, titles(products))
		})
	}
}

func TestSearchValidation(t *testing.T) {
	s := newTestScraper(NewMockFetcher())

	tests := []SearchQuery{
		{Page: 0, OrderBy: OrderRelevance, Query: "x"},
		{Page: 1, OrderBy: "12", Query: "x"},
		{Page: 1, OrderBy: OrderRelevance, Query: ""},
		{Page: 1, OrderBy: OrderRelevance, Query: "x", StartPrice: intPtr(-1)},
		{Page: 1, OrderBy: OrderRelevance, Query: "x", MaxPrice: intPtr(-5)},
	}

	for _, q := range tests {
		_, err := s.Search(context.Background(), q)
		assert.True(t, apperrors.Is(err, apperrors.ErrorTypeValidation), "%+v", q)
	}
}

func TestSearchUpstreamFailure(t *testing.T) {
	s := newTestScraper(NewMockFetcher())

	_, err := s.Search(context.Background(), SearchQuery{Page: 1, OrderBy: OrderRelevance, Query: "x"})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeUpstreamFetch))
}

func TestSearchMalformedEnvelope(t *testing.T) {
	fetcher := NewMockFetcher()
	fetcher.pages[testBaseURL+searchPath] = `<html>not json</html>`

	_, err := newTestScraper(fetcher).Search(context.Background(), SearchQuery{Page: 1, OrderBy: OrderRelevance, Query: "x"})
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeParsing))
}

func TestParseOrderBy(t *testing.T) {
	for _, code := range []string{"0", "10", "11", "16", "17"} {
		order, ok := ParseOrderBy(code)
		assert.True(t, ok, code)
		assert.Equal(t, OrderBy(code), order)
	}
	for _, code := range []string{"", "1", "100", "010"} {
		_, ok := ParseOrderBy(code)
		assert.False(t, ok, code)
	}
}
