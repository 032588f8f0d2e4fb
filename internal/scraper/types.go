package scraper

import (
	"context"
	"net/url"
)

// Product represents a single search result card
type Product struct {
	Title           string  `json:"title"`
	Price           string  `json:"price"`
	Discount        *string `json:"discount"`
	Link            string  `json:"link"`
	PriceNoDiscount string  `json:"price_no_discount"`
	ImageURL        string  `json:"image_url"`
}

// SearchResult is one page of search results
type SearchResult struct {
	TotalPages int       `json:"total_pages"`
	Views      int       `json:"views"`
	Products   []Product `json:"products"`
}

// PictureModel describes one product image
type PictureModel struct {
	ID       int64  `json:"Id"`
	ImageURL string `json:"ImageUrl"`
}

// ImageModels holds the default image and the gallery of a product
type ImageModels struct {
	DefaultPictureModel PictureModel   `json:"DefaultPictureModel"`
	PictureModels       []PictureModel `json:"PictureModels"`
}

// ProductDetail is the flattened view of a product page
type ProductDetail struct {
	Name                      string            `json:"Name"`
	Price                     float64           `json:"Price"`
	PriceWithDiscount         float64           `json:"PriceWithDiscount"`
	InStock                   bool              `json:"InStock"`
	StockQuantity             int64             `json:"StockQuantity"`
	ShortDescription          string            `json:"ShortDescription"`
	FullDescription           string            `json:"FullDescription"`
	ProductSpecificationModel map[string]string `json:"ProductSpecificationModel"`
	DeliveryTimes             map[string]string `json:"DeliveryTimes"`
	ImageModels               ImageModels       `json:"ImageModels"`
}

// HappyHourProduct is a product taken from a category page listing
type HappyHourProduct struct {
	Name          string `json:"Name"`
	Price         string `json:"Price"`
	Discount      string `json:"Discount"`
	InStock       bool   `json:"InStock"`
	StockQuantity int64  `json:"StockQuantity"`
	SeName        string `json:"SeName"`
	ImageURL      string `json:"ImageUrl"`
}

// Subcategory is a named link inside a category
type Subcategory struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Banner is a promotional slide from the home page
type Banner struct {
	Link     string `json:"link"`
	ImageURL string `json:"image_url"`
	AltText  string `json:"alt_text"`
	Title    string `json:"title"`
}

// Fetcher retrieves a page body from the upstream site
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string, params url.Values) ([]byte, error)
}
