package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestT(t *testing.T) {
	require.NoError(t, Initialize())

	assert.Equal(t, "Invalid email or password", T("en", KeyAuthInvalidCredentials))
	assert.Equal(t, "Invalid input", T("en", KeyValidationInvalid, "input"))
	assert.Equal(t, "Product not found", T("fr", KeyProductNotFound), "falls back to English")
	assert.Equal(t, "missing.key", T("en", "missing.key"))
}

func TestT_TraditionalChinese(t *testing.T) {
	require.NoError(t, Initialize())

	assert.Equal(t, "找不到商品", T("zh_TW", KeyProductNotFound))
	assert.Equal(t, "已建立 categories 項目", T("zh_TW", KeyTaxonomyCreated, "categories"))
}

func TestLocalesShareKeys(t *testing.T) {
	require.NoError(t, Initialize())

	en := instance.translations["en"]
	for lang, translations := range instance.translations {
		for key := range en {
			assert.Contains(t, translations, key, "%s is missing %s", lang, key)
		}
	}
}
