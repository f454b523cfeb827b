package httpserver

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/bryanwahyu/review-miner/internal/domain/locale"
	"github.com/bryanwahyu/review-miner/internal/middleware"
)

const maxBodyBytes = 4 << 20

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

func decodeJSON(w http.ResponseWriter, req *http.Request, v any) error {
	req.Body = http.MaxBytesReader(w, req.Body, maxBodyBytes)
	if err := json.NewDecoder(req.Body).Decode(v); err != nil {
		return badRequest(msgBadBody)
	}
	return nil
}

// localeQuery holds the parameters shared by every marketplace endpoint.
type localeQuery struct {
	Country  string `validate:"country"`
	Language string
}

func readLocale(q url.Values) localeQuery {
	lq := localeQuery{
		Country:  strings.TrimSpace(q.Get("country")),
		Language: strings.TrimSpace(q.Get("language")),
	}
	if lq.Country == "" {
		lq.Country = locale.DefaultCountry.String()
	}
	if lq.Language == "" {
		lq.Language = string(locale.DefaultLanguage)
	}
	return lq
}

// resolve converts a locale that already passed validation.
func (lq localeQuery) resolve() (locale.Country, locale.Language) {
	c, _ := locale.ParseCountry(lq.Country)
	return c, locale.Language(lq.Language)
}

func intParam(q url.Values, key string) int {
	n, err := strconv.Atoi(q.Get(key))
	if err != nil {
		return 0
	}
	return n
}

// validate runs the struct rules and converts the first failure into a
// 400. messages maps a struct field to its message; the country rule always
// reports the offending code.
func validate(v any, country string, messages map[string]string) error {
	err := middleware.Validator().Struct(v)
	if err == nil {
		return nil
	}
	field, tag := middleware.FirstInvalidField(err)
	if tag == "country" {
		return invalidCountry(country)
	}
	if msg, ok := messages[field]; ok {
		return badRequest(msg)
	}
	return badRequest(msgBadBody)
}
