package scraper

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Delivery windows are rendered inside two boxes told apart only by their
// full class attribute.
const (
	deliveryClassPrishtine = "flex flex-col justify-center pl-2 text-xs font-medium pr-2 mr-2 tablet:border-r"
	deliveryClassOther     = "flex flex-col justify-center pl-2 text-xs font-medium"
)

// deliveryRegions maps a region label to the class of its delivery box
var deliveryRegions = []struct {
	Label string
	Class string
}{
	{Label: "Prishtinë", Class: deliveryClassPrishtine},
	{Label: "tjera", Class: deliveryClassOther},
}

// dateRangePattern matches "12 Nëntor 2024 - 14 Nëntor 2024"
var dateRangePattern = regexp.MustCompile(`\d+\s+\p{L}+\s+\d+\s*-\s*\d+\s+\p{L}+\s+\d+`)

// FindByClass returns the first tag below sel whose class attribute is
// exactly class. The result is empty when nothing matches.
func FindByClass(sel *goquery.Selection, tag, class string) *goquery.Selection {
	return sel.Find(tag).FilterFunction(func(_ int, s *goquery.Selection) bool {
		value, ok := s.Attr("class")
		return ok && value == class
	}).First()
}

// Text returns the text of sel with runs of whitespace collapsed.
func Text(sel *goquery.Selection) string {
	return strings.Join(strings.Fields(sel.Text()), " ")
}

// Attr returns the named attribute of the first element in sel, or "".
func Attr(sel *goquery.Selection, name string) string {
	value, _ := sel.First().Attr(name)
	return strings.TrimSpace(value)
}

// DeliveryWindow reads the date range out of the delivery box with the given
// class. found is false when the box is missing; window is empty when the box
// holds no date range.
func DeliveryWindow(sel *goquery.Selection, class string) (window string, found bool) {
	box := FindByClass(sel, "div", class)
	if box.Length() == 0 {
		return "", false
	}
	return dateRangePattern.FindString(stripTags(Text(box))), true
}

// DeliveryTimes collects the delivery window of every known region.
// Regions without a box or without a date range are left out.
func (s *Scraper) DeliveryTimes(doc *goquery.Document) map[string]string {
	times := make(map[string]string, len(deliveryRegions))
	for _, region := range deliveryRegions {
		window, found := DeliveryWindow(doc.Selection, region.Class)
		if !found {
			s.log.Warn().Str("region", region.Label).Msg("Delivery date element not found on the page")
			continue
		}
		if window == "" {
			s.log.Debug().Str("region", region.Label).Msg("Delivery date element has no date range")
			continue
		}
		times[region.Label] = window
	}
	return times
}
