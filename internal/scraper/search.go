package scraper

import (
	"bytes"
	"context"
	"encoding/json"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/PuerkitoBio/goquery"
	apperrors "github.com/slumbersage/gjirafa50/pkg/errors"
)

// OrderBy is the upstream sort directive
type OrderBy string

const (
	OrderRelevance OrderBy = "0"
	OrderPriceAsc  OrderBy = "10"
	OrderPriceDesc OrderBy = "11"
	OrderNewest    OrderBy = "16"
	OrderDiscount  OrderBy = "17"
)

// ParseOrderBy validates an order-by code
func ParseOrderBy(code string) (OrderBy, bool) {
	switch o := OrderBy(code); o {
	case OrderRelevance, OrderPriceAsc, OrderPriceDesc, OrderNewest, OrderDiscount:
		return o, true
	default:
		return "", false
	}
}

// SearchQuery holds the inputs of a product search
type SearchQuery struct {
	Page            int
	OrderBy         OrderBy
	Query           string
	Advanced        bool
	SameDayShipping bool
	ExcludeSoldOut  bool
	StartPrice      *int
	MaxPrice        *int
	// CacheBust is sent as the "_" parameter; zero means now in milliseconds
	CacheBust int64
}

// Validate checks the query against the upstream's accepted ranges
func (q SearchQuery) Validate() error {
	if q.Page < 1 {
		return apperrors.NewValidation("search", "pagenumber must be at least 1")
	}
	if _, ok := ParseOrderBy(string(q.OrderBy)); !ok {
		return apperrors.NewValidation("search", "orderby must be one of 0, 10, 11, 16, 17")
	}
	if q.Query == "" {
		return apperrors.NewValidation("search", "q must not be empty")
	}
	if q.StartPrice != nil && *q.StartPrice < 0 {
		return apperrors.NewValidation("search", "startprice must not be negative")
	}
	if q.MaxPrice != nil && *q.MaxPrice < 0 {
		return apperrors.NewValidation("search", "maxprice must not be negative")
	}
	return nil
}

// hasPriceRange reports whether both price bounds were given
func (q SearchQuery) hasPriceRange() bool {
	return q.StartPrice != nil && q.MaxPrice != nil
}

// params builds the upstream query string
func (q SearchQuery) params() url.Values {
	cacheBust := q.CacheBust
	if cacheBust == 0 {
		cacheBust = time.Now().UnixMilli()
	}

	params := url.Values{
		"pagenumber": {strconv.Itoa(q.Page)},
		"orderby":    {string(q.OrderBy)},
		"q":          {q.Query},
		"advs":       {strconv.FormatBool(q.Advanced)},
		"hls":        {strconv.FormatBool(q.SameDayShipping)},
		"is":         {strconv.FormatBool(q.ExcludeSoldOut)},
		"_":          {strconv.FormatInt(cacheBust, 10)},
	}
	if q.hasPriceRange() {
		params["price"] = []string{strconv.Itoa(*q.StartPrice) + "-" + strconv.Itoa(*q.MaxPrice)}
	}
	return params
}

// flexInt accepts a JSON number or a numeric string
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	n, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = flexInt(n)
	return nil
}

// searchEnvelope is the JSON answer of the upstream search endpoint
type searchEnvelope struct {
	TotalPages flexInt `json:"totalpages"`
	TotalHits  flexInt `json:"totalHits"`
	HTML       string  `json:"html"`
}

// Search runs one upstream search and filters and sorts the returned page
func (s *Scraper) Search(ctx context.Context, q SearchQuery) (*SearchResult, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	body, err := s.fetch(ctx, "search", s.BaseURL+searchPath, q.params())
	if err != nil {
		return nil, err
	}

	var envelope searchEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, apperrors.NewParsing("search", "failed to decode search response", err)
	}

	doc, err := createDocument("search", []byte(envelope.HTML))
	if err != nil {
		return nil, err
	}

	products := extractSearchProducts(doc)
	if q.hasPriceRange() {
		products = filterByPrice(products, float64(*q.StartPrice), float64(*q.MaxPrice))
	}
	sortProducts(products, q.OrderBy)

	s.log.Debug().
		Str("q", q.Query).
		Int("page", q.Page).
		Int("products", len(products)).
		Msg("Search completed")

	return &SearchResult{
		TotalPages: int(envelope.TotalPages),
		Views:      int(envelope.TotalHits),
		Products:   products,
	}, nil
}

func extractSearchProducts(doc *goquery.Document) []Product {
	products := make([]Product, 0)
	doc.Find("div.item-box").Each(func(_ int, item *goquery.Selection) {
		products = append(products, normalizeSearchItem(item))
	})
	return products
}

// filterByPrice keeps products priced within [low, high]
func filterByPrice(products []Product, low, high float64) []Product {
	filtered := make([]Product, 0, len(products))
	for _, p := range products {
		price := ParsePrice(p.Price)
		if price < low || price > high {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

// sortProducts orders products in place. Ties keep the upstream order.
func sortProducts(products []Product, order OrderBy) {
	switch order {
	case OrderPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return ParsePrice(products[i].Price) < ParsePrice(products[j].Price)
		})
	case OrderPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return ParsePrice(products[i].Price) > ParsePrice(products[j].Price)
		})
	case OrderDiscount:
		sort.SliceStable(products, func(i, j int) bool {
			return discountValue(products[i]) > discountValue(products[j])
		})
	}
}

func discountValue(p Product) float64 {
	if p.Discount == nil {
		return 0
	}
	return ParsePrice(*p.Discount)
}
