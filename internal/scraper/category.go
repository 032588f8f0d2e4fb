package scraper

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Categories maps category names to their subcategories, keeping the order
// in which the upstream menu lists them. Treat it as read-only once built.
type Categories struct {
	names []string
	items map[string][]Subcategory
}

// NewCategories creates an empty category set
func NewCategories() *Categories {
	return &Categories{items: make(map[string][]Subcategory)}
}

// Set stores subcategories under name, appending name to the order on first use
func (c *Categories) Set(name string, subcategories []Subcategory) {
	if _, exists := c.items[name]; !exists {
		c.names = append(c.names, name)
	}
	c.items[name] = subcategories
}

// Get returns the subcategories stored under name
func (c *Categories) Get(name string) ([]Subcategory, bool) {
	subcategories, ok := c.items[name]
	return subcategories, ok
}

// Names returns the category names in upstream order
func (c *Categories) Names() []string {
	return append([]string(nil), c.names...)
}

// Len returns the number of categories
func (c *Categories) Len() int {
	return len(c.names)
}

// CategoryFilter narrows a category set
type CategoryFilter struct {
	Query            string
	MinSubcategories *int
	MaxSubcategories *int
	IncludeEmpty     bool
}

// Filter returns the categories matching f as a new set
func (c *Categories) Filter(f CategoryFilter) *Categories {
	query := strings.ToLower(f.Query)
	filtered := NewCategories()
	for _, name := range c.names {
		subcategories := c.items[name]
		count := len(subcategories)

		if f.MinSubcategories != nil && count < *f.MinSubcategories {
			continue
		}
		if f.MaxSubcategories != nil && count > *f.MaxSubcategories {
			continue
		}
		if !f.IncludeEmpty && count == 0 {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(name), query) {
			continue
		}
		filtered.Set(name, subcategories)
	}
	return filtered
}

// MarshalJSON writes the categories as one object in upstream order
func (c *Categories) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range c.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		subcategories := c.items[name]
		if subcategories == nil {
			subcategories = []Subcategory{}
		}
		value, err := json.Marshal(subcategories)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ExtractCategories walks the category menu. A category with a sublist maps
// to its entries; one without maps to itself, unless its URL was already
// listed elsewhere in the menu.
func ExtractCategories(doc *goquery.Document) *Categories {
	categories := NewCategories()
	seen := make(map[string]bool)

	doc.Find("li.category-item").Each(func(_ int, item *goquery.Selection) {
		anchor := FindFirst(item, "a.category-item-content")
		if anchor.Length() == 0 {
			return
		}
		name := Text(anchor)
		link := Attr(anchor, "href")

		sublist := FindFirst(item, "ul.sublist")
		if sublist.Length() > 0 {
			subcategories := make([]Subcategory, 0)
			sublist.Find("a.category-item-content").Each(func(_ int, sub *goquery.Selection) {
				entry := Subcategory{Name: Text(sub), URL: Attr(sub, "href")}
				seen[entry.URL] = true
				subcategories = append(subcategories, entry)
			})
			seen[link] = true
			categories.Set(name, subcategories)
			return
		}

		if seen[link] {
			return
		}
		seen[link] = true
		categories.Set(name, []Subcategory{{Name: name, URL: link}})
	})

	return categories
}

// Categories fetches the home page and extracts its category menu
func (s *Scraper) Categories(ctx context.Context) (*Categories, error) {
	doc, _, err := s.fetchDocument(ctx, "categories", s.BaseURL)
	if err != nil {
		return nil, err
	}

	categories := ExtractCategories(doc)
	s.log.Info().Int("count", categories.Len()).Msg("Extracted categories")
	return categories, nil
}
