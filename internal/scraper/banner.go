package scraper

import (
	"context"

	"github.com/PuerkitoBio/goquery"
)

// ExtractBanners reads the home page slider. Slides without both a link and
// an image are skipped.
func ExtractBanners(doc *goquery.Document) []Banner {
	banners := make([]Banner, 0)
	doc.Find("div.swiper-slide").Each(func(_ int, slide *goquery.Selection) {
		link := FindFirst(slide, "a")
		img := FindFirst(slide, "img")
		if link.Length() == 0 || img.Length() == 0 {
			return
		}

		banners = append(banners, Banner{
			Link:     Attr(link, "href"),
			ImageURL: Attr(img, "src"),
			AltText:  Attr(img, "alt"),
			Title:    Attr(img, "title"),
		})
	})
	return banners
}

// Banners fetches the home page and extracts its promotional slides
func (s *Scraper) Banners(ctx context.Context) ([]Banner, error) {
	doc, _, err := s.fetchDocument(ctx, "banners", s.BaseURL)
	if err != nil {
		return nil, err
	}
	return ExtractBanners(doc), nil
}
