package locale

import "strings"

// Country is one of the App Store storefronts the system can query.
type Country uint8

const (
	US Country = iota
	JP
	GB
	DE
	FR
	IT
	ES
	CA
	AU
	KR
	CN
	countryCount
)

// DefaultCountry is used when a request omits the country parameter.
const DefaultCountry = US

type countryInfo struct {
	code       string
	label      string
	storefront int
}

var countries = [...]countryInfo{
	US: {code: "US", label: "アメリカ", storefront: 143441},
	JP: {code: "JP", label: "日本", storefront: 143462},
	GB: {code: "GB", label: "イギリス", storefront: 143444},
	DE: {code: "DE", label: "ドイツ", storefront: 143443},
	FR: {code: "FR", label: "フランス", storefront: 143442},
	IT: {code: "IT", label: "イタリア", storefront: 143450},
	ES: {code: "ES", label: "スペイン", storefront: 143454},
	CA: {code: "CA", label: "カナダ", storefront: 143455},
	AU: {code: "AU", label: "オーストラリア", storefront: 143460},
	KR: {code: "KR", label: "韓国", storefront: 143466},
	CN: {code: "CN", label: "中国", storefront: 143465},
}

// Fails to compile when a Country constant is added without a table entry.
func _() {
	var x [1]struct{}
	_ = x[len(countries)-int(countryCount)]
}

// ParseCountry maps an upper-case ISO code ("JP") to its Country.
func ParseCountry(code string) (Country, bool) {
	for i, c := range countries {
		if c.code == code {
			return Country(i), true
		}
	}
	return 0, false
}

// Countries returns every supported country in display order.
func Countries() []Country {
	out := make([]Country, 0, countryCount)
	for i := Country(0); i < countryCount; i++ {
		out = append(out, i)
	}
	return out
}

func (c Country) valid() bool { return c < countryCount }

// String returns the upper-case ISO code.
func (c Country) String() string {
	if !c.valid() {
		return ""
	}
	return countries[c].code
}

// Lower returns the lower-case ISO code used in App Store URLs.
func (c Country) Lower() string { return strings.ToLower(c.String()) }

// Label is the Japanese display name.
func (c Country) Label() string {
	if !c.valid() {
		return ""
	}
	return countries[c].label
}

// Storefront is the numeric App Store front id sent in X-Apple-Store-Front.
func (c Country) Storefront() int {
	if !c.valid() {
		return 0
	}
	return countries[c].storefront
}

func (c Country) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *Country) UnmarshalText(b []byte) error {
	v, ok := ParseCountry(string(b))
	if !ok {
		return &UnknownCountryError{Code: string(b)}
	}
	*c = v
	return nil
}

// UnknownCountryError reports a code outside the supported set.
type UnknownCountryError struct {
	Code string
}

func (e *UnknownCountryError) Error() string { return "unknown country code: " + e.Code }
