package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountryTableIsComplete(t *testing.T) {
	seen := map[int]bool{}
	for _, c := range Countries() {
		assert.NotEmpty(t, c.String())
		assert.NotEmpty(t, c.Label())
		require.NotZero(t, c.Storefront(), c.String())
		assert.False(t, seen[c.Storefront()], "duplicate storefront for %s", c)
		seen[c.Storefront()] = true
	}
	assert.Len(t, Countries(), 11)
}

func TestParseCountry(t *testing.T) {
	tests := []struct {
		code       string
		ok         bool
		storefront int
	}{
		{"JP", true, 143462},
		{"US", true, 143441},
		{"CN", true, 143465},
		{"jp", false, 0},
		{"BR", false, 0},
		{"", false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			c, ok := ParseCountry(tt.code)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.storefront, c.Storefront())
				assert.Equal(t, tt.code, c.String())
			}
		})
	}
}

func TestCountryText(t *testing.T) {
	var c Country
	require.NoError(t, c.UnmarshalText([]byte("KR")))
	assert.Equal(t, KR, c)
	assert.Equal(t, "kr", c.Lower())

	err := c.UnmarshalText([]byte("XX"))
	var unknown *UnknownCountryError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "XX", unknown.Code)
}

func TestLanguageAppleLang(t *testing.T) {
	assert.Equal(t, "ja_jp", Language("ja").AppleLang())
	assert.Equal(t, "en_us", DefaultLanguage.AppleLang())
	assert.Equal(t, "pt_br", Language("pt-BR").AppleLang())
	assert.True(t, Language("zh-tw").Known())
	assert.False(t, Language("pt-br").Known())
	assert.Len(t, Languages(), 10)
	for _, l := range Languages() {
		assert.True(t, l.Known(), l)
	}
}
