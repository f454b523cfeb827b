package locale

import "strings"

// Language is a review/search language code such as "ja" or "en-us".
// Codes outside the known table are passed through to the store as-is.
type Language string

const DefaultLanguage Language = "en-us"

type languageInfo struct {
	label     string
	appleLang string
}

var languages = map[Language]languageInfo{
	"en-us": {label: "英語 (US)", appleLang: "en_us"},
	"ja":    {label: "日本語", appleLang: "ja_jp"},
	"en-gb": {label: "英語 (UK)", appleLang: "en_gb"},
	"de-de": {label: "ドイツ語", appleLang: "de_de"},
	"fr-fr": {label: "フランス語", appleLang: "fr_fr"},
	"it":    {label: "イタリア語", appleLang: "it_it"},
	"es-es": {label: "スペイン語", appleLang: "es_es"},
	"ko":    {label: "韓国語", appleLang: "ko_kr"},
	"zh-cn": {label: "中国語 (簡体)", appleLang: "zh_cn"},
	"zh-tw": {label: "中国語 (繁体)", appleLang: "zh_tw"},
}

var languageOrder = []Language{"en-us", "ja", "en-gb", "de-de", "fr-fr", "it", "es-es", "ko", "zh-cn", "zh-tw"}

// Languages returns the known languages in display order.
func Languages() []Language {
	out := make([]Language, len(languageOrder))
	copy(out, languageOrder)
	return out
}

// Known reports whether l is in the lookup table.
func (l Language) Known() bool {
	_, ok := languages[l]
	return ok
}

func (l Language) Label() string {
	if info, ok := languages[l]; ok {
		return info.label
	}
	return string(l)
}

// AppleLang converts the code to the `lang` query value of the search API.
func (l Language) AppleLang() string {
	if info, ok := languages[l]; ok {
		return info.appleLang
	}
	return strings.ReplaceAll(strings.ToLower(string(l)), "-", "_")
}
