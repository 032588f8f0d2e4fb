package scraper

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// tagPattern removes markup by pattern rather than by parsing, so literal
// text shaped like "<...>" is removed as well.
var tagPattern = regexp.MustCompile(`<[^<]+?>`)

func stripTags(s string) string {
	return tagPattern.ReplaceAllString(s, "")
}

// normalizeSearchItem maps a div.item-box search card to a Product.
// Missing elements leave their field empty.
func normalizeSearchItem(item *goquery.Selection) Product {
	price := Text(FindFirst(item, "span.price"))

	var discount *string
	if label := FindFirst(item, "div.discount__label"); label.Length() > 0 {
		text := Text(label)
		discount = &text
	}

	return Product{
		Title:           Text(FindFirst(item, "h2.product-title")),
		Price:           price,
		Discount:        discount,
		Link:            Attr(item.Find("a"), "href"),
		PriceNoDiscount: price,
		ImageURL:        Attr(item.Find("img"), "src"),
	}
}

// FindFirst returns the first element below sel matching selector.
func FindFirst(sel *goquery.Selection, selector string) *goquery.Selection {
	return sel.Find(selector).First()
}

// normalizeCatalogProduct maps a product object of a category page model.
func normalizeCatalogProduct(product EmbeddedModel) HappyHourProduct {
	price := product.Object("ProductPrice")
	return HappyHourProduct{
		Name:          product.String("Name"),
		Price:         price.String("Price"),
		Discount:      price.String("DiscountPercentage"),
		InStock:       product.Bool("InStock"),
		StockQuantity: product.Int("StockQuantity"),
		SeName:        "/" + strings.TrimLeft(product.String("SeName"), "/"),
		ImageURL:      product.Object("DefaultPictureModel").String("ImageUrl"),
	}
}

// normalizeProductDetail maps the productModel of a product page.
func normalizeProductDetail(model EmbeddedModel, deliveryTimes map[string]string) ProductDetail {
	price := model.Object("ProductPrice")
	return ProductDetail{
		Name:                      model.String("Name"),
		Price:                     price.Amount("Price"),
		PriceWithDiscount:         price.Amount("PriceWithDiscount"),
		InStock:                   model.Bool("InStock"),
		StockQuantity:             model.Int("StockQuantity"),
		ShortDescription:          strings.TrimSpace(stripTags(model.String("ShortDescription"))),
		FullDescription:           strings.TrimSpace(stripTags(model.String("FullDescription"))),
		ProductSpecificationModel: flattenSpecification(model),
		DeliveryTimes:             deliveryTimes,
		ImageModels:               imageModels(model),
	}
}

// flattenSpecification turns the grouped specification into attribute name
// to raw value. The first value of the first attribute with a name wins.
func flattenSpecification(model EmbeddedModel) map[string]string {
	attributes := make(map[string]string)
	for _, group := range model.Object("ProductSpecificationModel").Objects("Groups") {
		for _, attribute := range group.Objects("Attributes") {
			name := attribute.String("Name")
			if name == "" {
				continue
			}
			if _, seen := attributes[name]; seen {
				continue
			}
			values := attribute.Objects("Values")
			if len(values) == 0 {
				continue
			}
			attributes[name] = values[0].String("ValueRaw")
		}
	}
	return attributes
}

func imageModels(model EmbeddedModel) ImageModels {
	pictures := model.Objects("PictureModels")
	images := ImageModels{
		DefaultPictureModel: pictureModel(model.Object("DefaultPictureModel")),
		PictureModels:       make([]PictureModel, 0, len(pictures)),
	}
	for _, picture := range pictures {
		images.PictureModels = append(images.PictureModels, pictureModel(picture))
	}
	return images
}

func pictureModel(picture EmbeddedModel) PictureModel {
	return PictureModel{
		ID:       picture.Int("Id"),
		ImageURL: picture.String("ImageUrl"),
	}
}
