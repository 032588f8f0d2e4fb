package scraper

import (
	"context"

	apperrors "github.com/slumbersage/gjirafa50/pkg/errors"
)

// HappyHours fetches the promotional listing and normalizes its products
func (s *Scraper) HappyHours(ctx context.Context) ([]HappyHourProduct, error) {
	body, err := s.fetch(ctx, "happy_hours", s.BaseURL+happyHoursPath, nil)
	if err != nil {
		return nil, err
	}

	model, err := ExtractEmbeddedModel(string(body), "categoryModel")
	if err != nil {
		if apperrors.Is(err, apperrors.ErrorTypeModelNotFound) {
			return nil, apperrors.NewProductModelMissing("happy_hours", err)
		}
		return nil, err
	}

	catalog := model.Object("CatalogProductsModel")
	if catalog == nil {
		s.log.Warn().Msg("Products not found in category model")
	}

	items := catalog.Objects("Products")
	products := make([]HappyHourProduct, 0, len(items))
	for _, item := range items {
		products = append(products, normalizeCatalogProduct(item))
	}
	return products, nil
}
