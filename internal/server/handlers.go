package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/slumbersage/gjirafa50/internal/scraper"
	"github.com/slumbersage/gjirafa50/services/categories"
	apperrors "github.com/slumbersage/gjirafa50/pkg/errors"
)

// ProductService answers the live upstream lookups
type ProductService interface {
	Search(ctx context.Context, q scraper.SearchQuery) (*scraper.SearchResult, error)
	ProductDetails(ctx context.Context, productURL string) (*scraper.ProductDetail, error)
	Banners(ctx context.Context) ([]scraper.Banner, error)
	HappyHours(ctx context.Context) ([]scraper.HappyHourProduct, error)
}

// CategorySource exposes the current category snapshot
type CategorySource interface {
	Snapshot() *categories.Snapshot
}

func (s *Server) handleSearch(c *gin.Context) {
	q, err := bindSearchQuery(c)
	if err != nil {
		s.abortWithError(c, err, "")
		return
	}

	result, err := s.products.Search(c.Request.Context(), q)
	if err != nil {
		s.abortWithError(c, err, "Failed to search for products")
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleProductDetails(c *gin.Context) {
	productURL := c.Query("product_url")
	if productURL == "" {
		s.abortWithError(c, apperrors.NewValidation("product_details", "product_url is required"), "")
		return
	}

	detail, err := s.products.ProductDetails(c.Request.Context(), productURL)
	if err != nil {
		s.abortWithError(c, err, "Failed to fetch the product page.")
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (s *Server) handleCategories(c *gin.Context) {
	filter, err := bindCategoryFilter(c)
	if err != nil {
		s.abortWithError(c, err, "")
		return
	}

	snapshot := s.categories.Snapshot()
	if snapshot == nil || snapshot.Categories == nil {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"detail": "Failed to fetch categories from gjirafa50.com"})
		return
	}
	c.JSON(http.StatusOK, snapshot.Categories.Filter(filter))
}

func (s *Server) handleBanners(c *gin.Context) {
	banners, err := s.products.Banners(c.Request.Context())
	if err != nil {
		s.abortWithError(c, err, "Failed to fetch banners.")
		return
	}
	c.JSON(http.StatusOK, banners)
}

func (s *Server) handleHappyHours(c *gin.Context) {
	products, err := s.products.HappyHours(c.Request.Context())
	if err != nil {
		s.abortWithError(c, err, "Failed to fetch happy hour products.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (s *Server) handleHealth(c *gin.Context) {
	health := gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	if snapshot := s.categories.Snapshot(); snapshot != nil {
		health["categories"] = snapshot.Categories.Len()
		health["categories_fetched_at"] = snapshot.FetchedAt.UTC().Format(time.RFC3339)
	}
	c.JSON(http.StatusOK, health)
}

// abortWithError writes {"detail": ...} with the status mapped from err.
// Client errors carry their own message; server errors use fallback.
func (s *Server) abortWithError(c *gin.Context, err error, fallback string) {
	_ = c.Error(err)

	status := apperrors.StatusCode(err)
	detail := fallback

	var apiErr *apperrors.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Type {
		case apperrors.ErrorTypeValidation:
			detail = apiErr.Message
		case apperrors.ErrorTypeInvalidURL:
			detail = "Invalid URL provided."
		case apperrors.ErrorTypeProductModelMissing:
			detail = "Product model not found on the page."
		}
	}
	if detail == "" {
		detail = http.StatusText(status)
	}

	c.AbortWithStatusJSON(status, gin.H{"detail": detail})
}

func bindSearchQuery(c *gin.Context) (scraper.SearchQuery, error) {
	var q scraper.SearchQuery

	page, err := requiredInt(c, "pagenumber")
	if err != nil {
		return q, err
	}
	q.Page = page

	orderBy, ok := scraper.ParseOrderBy(c.Query("orderby"))
	if !ok {
		return q, apperrors.NewValidation("search", "orderby must be one of 0, 10, 11, 16, 17")
	}
	q.OrderBy = orderBy

	q.Query = c.Query("q")
	if q.Query == "" {
		return q, apperrors.NewValidation("search", "q is required")
	}

	if q.Advanced, err = optionalBool(c, "advs"); err != nil {
		return q, err
	}
	if q.SameDayShipping, err = optionalBool(c, "hls"); err != nil {
		return q, err
	}
	if q.ExcludeSoldOut, err = optionalBool(c, "is"); err != nil {
		return q, err
	}
	if q.StartPrice, err = optionalInt(c, "startprice"); err != nil {
		return q, err
	}
	if q.MaxPrice, err = optionalInt(c, "maxprice"); err != nil {
		return q, err
	}

	if raw := c.Query("_"); raw != "" {
		bust, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return q, apperrors.NewValidation("search", "_ must be an integer")
		}
		q.CacheBust = bust
	}

	return q, q.Validate()
}

func bindCategoryFilter(c *gin.Context) (scraper.CategoryFilter, error) {
	var (
		f   scraper.CategoryFilter
		err error
	)
	f.Query = c.Query("q")
	if f.MinSubcategories, err = optionalInt(c, "min_subcategories"); err != nil {
		return f, err
	}
	if f.MaxSubcategories, err = optionalInt(c, "max_subcategories"); err != nil {
		return f, err
	}
	if f.IncludeEmpty, err = optionalBool(c, "include_empty_categories"); err != nil {
		return f, err
	}
	return f, nil
}

func requiredInt(c *gin.Context, name string) (int, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return 0, apperrors.NewValidation("query", name+" is required")
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.NewValidation("query", name+" must be an integer")
	}
	return n, nil
}

func optionalInt(c *gin.Context, name string) (*int, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, apperrors.NewValidation("query", name+" must be an integer")
	}
	return &n, nil
}

func optionalBool(c *gin.Context, name string) (bool, error) {
	raw := c.Query(name)
	if raw == "" {
		return false, nil
	}
	switch raw {
	case "yes", "on":
		return true, nil
	case "no", "off":
		return false, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, apperrors.NewValidation("query", name+" must be a boolean")
	}
	return b, nil
}
