package scraper

import (
	"context"
	"regexp"

	apperrors "github.com/slumbersage/gjirafa50/pkg/errors"
)

var productURLPattern = regexp.MustCompile(`^https?://(?:www\.)?(?:[\w-]+\.)*gjirafa50\.(?:com|mk|al)(?:/\S*)?$`)

// IsValidProductURL reports whether rawURL points at one of the shop's domains
func IsValidProductURL(rawURL string) bool {
	return productURLPattern.MatchString(rawURL)
}

// ProductDetails fetches a product page and flattens its embedded model
func (s *Scraper) ProductDetails(ctx context.Context, productURL string) (*ProductDetail, error) {
	if !IsValidProductURL(productURL) {
		return nil, apperrors.NewInvalidURL("product_details", productURL)
	}

	doc, body, err := s.fetchDocument(ctx, "product_details", productURL)
	if err != nil {
		return nil, err
	}

	model, err := ExtractEmbeddedModel(string(body), "productModel")
	if err != nil {
		if apperrors.Is(err, apperrors.ErrorTypeModelNotFound) {
			return nil, apperrors.NewProductModelMissing("product_details", err)
		}
		return nil, err
	}

	detail := normalizeProductDetail(model, s.DeliveryTimes(doc))
	return &detail, nil
}
