package scraper

import (
	"testing"

	apperrors "github.com/slumbersage/gjirafa50/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractEmbeddedModel(t *testing.T) {
	model, err := ExtractEmbeddedModel(`var productModel = {"Name":"x"};`, "productModel")
	require.NoError(t, err)
	assert.Equal(t, "x", model.String("Name"))
}

func TestExtractEmbeddedModelMissing(t *testing.T) {
	_, err := ExtractEmbeddedModel(`<script>var otherModel = {"Name":"x"};</script>`, "productModel")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeModelNotFound))

	_, err = ExtractEmbeddedModel(`var productModel = null;`, "productModel")
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeModelNotFound))

	_, err = ExtractEmbeddedModel(`var productModel = {"Name":"x"`, "productModel")
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeModelNotFound))
}

func TestExtractEmbeddedModelNestedObjects(t *testing.T) {
	page := `<script>
		var productModel = {
			"Name": "Laptop",
			"ProductPrice": {"Price": "999.00 €", "Meta": {"Note": "};"}},
			"Tags": ["a}", "{b"]
		};
		var other = {"x": 1};
	</script>`

	model, err := ExtractEmbeddedModel(page, "productModel")
	require.NoError(t, err)
	assert.Equal(t, "Laptop", model.String("Name"))
	assert.Equal(t, "999.00 €", model.Object("ProductPrice").String("Price"))
	assert.Equal(t, "};", model.Object("ProductPrice").Object("Meta").String("Note"))
	assert.Len(t, model["Tags"], 2)
}

func TestExtractEmbeddedModelEscapedQuotes(t *testing.T) {
	page := `var categoryModel = {"Name":"24\" monitor \\","Id":7};`

	model, err := ExtractEmbeddedModel(page, "categoryModel")
	require.NoError(t, err)
	assert.Equal(t, `24" monitor \`, model.String("Name"))
	assert.Equal(t, int64(7), model.Int("Id"))
}

func TestExtractEmbeddedModelInvalidJSON(t *testing.T) {
	_, err := ExtractEmbeddedModel(`var productModel = {Name: 'x'};`, "productModel")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeParsing))
}

func TestEmbeddedModelAccessorsDefault(t *testing.T) {
	model := EmbeddedModel{}
	assert.Equal(t, "", model.String("Name"))
	assert.False(t, model.Bool("InStock"))
	assert.Equal(t, int64(0), model.Int("StockQuantity"))
	assert.Equal(t, 0.0, model.Amount("Price"))
	assert.Nil(t, model.Object("ProductPrice"))
	assert.Empty(t, model.Objects("PictureModels"))
}
