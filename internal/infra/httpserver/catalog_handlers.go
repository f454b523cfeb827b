package httpserver

import (
	"net/http"

	appcatalog "github.com/bryanwahyu/review-miner/internal/application/catalog"
	"github.com/bryanwahyu/review-miner/internal/domain/catalog"
	"github.com/bryanwahyu/review-miner/internal/middleware"
)

type searchRequest struct {
	Term string `validate:"required"`
	localeQuery
	Num int
}

// GET /api/search?term=&country=&language=&num=
func (r *Router) handleSearch(w http.ResponseWriter, req *http.Request) error {
	q := req.URL.Query()
	in := searchRequest{
		Term:        middleware.SanitizeString(q.Get("term")),
		localeQuery: readLocale(q),
		Num:         middleware.Clamp(intParam(q, "num"), appcatalog.DefaultSearchLimit, appcatalog.MaxSearchLimit),
	}
	if err := validate(in, in.Country, map[string]string{"Term": msgMissingSearchTerm}); err != nil {
		return err
	}
	country, lang := in.resolve()

	r.metrics.Searches.Add(1)
	apps, err := r.catalog.Search(req.Context(), appcatalog.SearchCommand{
		Term:     in.Term,
		Country:  country,
		Language: lang,
		Limit:    in.Num,
	})
	if err != nil {
		return serverError(err, msgSearchFailed)
	}
	return writeJSON(w, http.StatusOK, map[string]any{"apps": apps})
}

// reviewsRequest takes the numeric store id, or a bundle id to resolve.
// The store id ends up in the feed path, so it must be digits only.
type reviewsRequest struct {
	ID    string `validate:"omitempty,number"`
	AppID string `validate:"required_without=ID"`
	localeQuery
	Page int
}

// GET /api/reviews?id=|appId=&country=&language=&page=
func (r *Router) handleReviews(w http.ResponseWriter, req *http.Request) error {
	q := req.URL.Query()
	in := reviewsRequest{
		ID:          middleware.SanitizeString(q.Get("id")),
		AppID:       middleware.SanitizeString(q.Get("appId")),
		localeQuery: readLocale(q),
		Page:        intParam(q, "page"),
	}
	if in.Page < 1 {
		in.Page = 1
	}
	if err := validate(in, in.Country, map[string]string{"ID": msgInvalidAppID, "AppID": msgMissingAppID}); err != nil {
		return err
	}
	country, lang := in.resolve()

	r.metrics.ReviewPages.Add(1)
	res, err := r.catalog.Reviews(req.Context(), appcatalog.ReviewsCommand{
		ID:       in.ID,
		AppID:    in.AppID,
		Country:  country,
		Language: lang,
		Page:     in.Page,
	})
	if err != nil {
		return serverError(err, msgReviewsFailed)
	}
	if res.Exhausted {
		r.metrics.ExhaustedPages.Add(1)
	}
	r.metrics.NegativeReviews.Add(uint64(len(res.Reviews)))
	return writeJSON(w, http.StatusOK, res)
}

type appRequest struct {
	ID string `validate:"number"`
	localeQuery
}

// GET /api/app?id=&country=&language=
func (r *Router) handleApp(w http.ResponseWriter, req *http.Request) error {
	q := req.URL.Query()
	in := appRequest{
		ID:          middleware.SanitizeString(q.Get("id")),
		localeQuery: readLocale(q),
	}
	if in.ID == "" {
		return badRequest(msgMissingAppID)
	}
	if err := validate(in, in.Country, map[string]string{"ID": msgInvalidAppID}); err != nil {
		return err
	}
	country, lang := in.resolve()

	app, err := r.catalog.App(req.Context(), appcatalog.AppCommand{ID: in.ID, Country: country, Language: lang})
	if err != nil {
		if catalog.KindOf(err) == catalog.KindNotFound {
			return &httpError{status: http.StatusNotFound, msg: msgAppNotFound, err: err}
		}
		return serverError(err, msgLookupFailed)
	}
	return writeJSON(w, http.StatusOK, map[string]any{"app": app})
}

type suggestRequest struct {
	Term string `validate:"required"`
	localeQuery
}

// GET /api/suggest?term=&country=&language=
func (r *Router) handleSuggest(w http.ResponseWriter, req *http.Request) error {
	q := req.URL.Query()
	in := suggestRequest{
		Term:        middleware.SanitizeString(q.Get("term")),
		localeQuery: readLocale(q),
	}
	if err := validate(in, in.Country, map[string]string{"Term": msgMissingTerm}); err != nil {
		return err
	}
	country, lang := in.resolve()

	r.metrics.Suggestions.Add(1)
	terms, err := r.catalog.Suggest(req.Context(), appcatalog.SuggestCommand{
		Term:     in.Term,
		Country:  country,
		Language: lang,
	})
	if err != nil {
		return serverError(err, msgSuggestFailed)
	}
	return writeJSON(w, http.StatusOK, map[string]any{"suggestions": terms})
}
