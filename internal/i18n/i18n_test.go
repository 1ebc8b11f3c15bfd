package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBundledCatalog(t *testing.T) {
	require.NoError(t, Initialize("", "en"))

	assert.Equal(t, "Something went wrong.", T("en", KeySomethingWentWrong))
	assert.Equal(t, "Only 3 quantity can be added for this item", T("en", KeyCartOutOfStock, 3))
	assert.NotEqual(t, T("en", KeyCartNotFound), T("hi", KeyCartNotFound))

	// Unknown languages fall back to the default, unknown keys to themselves.
	assert.Equal(t, T("en", KeyOrderNotFound), T("fr", KeyOrderNotFound))
	assert.Equal(t, "no.such.key", T("en", "no.such.key"))
}

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"":               "en",
		"hi-IN,hi;q=0.9": "hi",
		"en-GB":          "en",
		"fr-FR,fr;q=0.9": "en",
		"HI":             "hi",
		"hi_IN":          "hi",
	}
	for header, want := range cases {
		assert.Equal(t, want, Normalize(header), header)
	}
}
