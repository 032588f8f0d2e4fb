package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const deliveryHTML = `<html><body>
	<div class="flex flex-col justify-center pl-2 text-xs font-medium pr-2 mr-2 tablet:border-r">
		<span>Prishtinë</span>
		<span>12 Nëntor 2024 - 14 Nëntor 2024</span>
	</div>
	<div class="flex flex-col justify-center pl-2 text-xs font-medium">
		<span>Kosovë, të tjera</span>
		<span>13   Nëntor 2024-16 Nëntor 2024</span>
	</div>
</body></html>`

func TestFindByClassMatchesWholeAttribute(t *testing.T) {
	doc := mustDocument(t, `<div class="box wide">a</div><div class="box">b</div>`)

	assert.Equal(t, "b", Text(FindByClass(doc.Selection, "div", "box")))
	assert.Equal(t, "a", Text(FindByClass(doc.Selection, "div", "box wide")))
	assert.Equal(t, 0, FindByClass(doc.Selection, "div", "wide").Length())
}

func TestTextAndAttr(t *testing.T) {
	doc := mustDocument(t, `<a href=" /laptop " title="x">  Laptop
		Gaming </a>`)

	assert.Equal(t, "Laptop Gaming", Text(doc.Find("a")))
	assert.Equal(t, "/laptop", Attr(doc.Find("a"), "href"))
	assert.Equal(t, "", Attr(doc.Find("a"), "rel"))
	assert.Equal(t, "", Attr(doc.Find("img"), "src"))
}

func TestDeliveryWindow(t *testing.T) {
	doc := mustDocument(t, deliveryHTML)

	window, found := DeliveryWindow(doc.Selection, deliveryClassPrishtine)
	assert.True(t, found)
	assert.Equal(t, "12 Nëntor 2024 - 14 Nëntor 2024", window)

	window, found = DeliveryWindow(doc.Selection, deliveryClassOther)
	assert.True(t, found)
	assert.Equal(t, "13 Nëntor 2024-16 Nëntor 2024", window)
}

func TestDeliveryWindowWithoutRange(t *testing.T) {
	doc := mustDocument(t, `<div class="flex flex-col justify-center pl-2 text-xs font-medium">Së shpejti</div>`)

	window, found := DeliveryWindow(doc.Selection, deliveryClassOther)
	assert.True(t, found)
	assert.Equal(t, "", window)

	_, found = DeliveryWindow(doc.Selection, deliveryClassPrishtine)
	assert.False(t, found)
}

func TestDeliveryTimes(t *testing.T) {
	s := newTestScraper(NewMockFetcher())

	times := s.DeliveryTimes(mustDocument(t, deliveryHTML))
	assert.Equal(t, map[string]string{
		"Prishtinë": "12 Nëntor 2024 - 14 Nëntor 2024",
		"tjera":     "13 Nëntor 2024-16 Nëntor 2024",
	}, times)

	times = s.DeliveryTimes(mustDocument(t, `<html><body></body></html>`))
	assert.Empty(t, times)
	assert.NotNil(t, times)
}
