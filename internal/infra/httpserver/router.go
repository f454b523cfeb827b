package httpserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	appanalysis "github.com/bryanwahyu/review-miner/internal/application/analysis"
	appcatalog "github.com/bryanwahyu/review-miner/internal/application/catalog"
	"github.com/bryanwahyu/review-miner/internal/domain/analysis"
	"github.com/bryanwahyu/review-miner/internal/domain/catalog"
	"github.com/bryanwahyu/review-miner/internal/middleware"
)

// Deps are the collaborators of the HTTP layer. Catalog and Analysis are
// required; the rest may be left zero.
type Deps struct {
	Catalog  *appcatalog.Service
	Analysis *appanalysis.Service
	Metrics  *middleware.Metrics
	Logger   *zap.SugaredLogger
	Health   map[string]middleware.HealthChecker

	CORSOrigins    []string
	APIKeys        map[string]string
	RateLimiter    *middleware.RateLimiter
	RequestTimeout time.Duration
}

type Router struct {
	catalog  *appcatalog.Service
	analysis *appanalysis.Service
	metrics  *middleware.Metrics
	log      *zap.SugaredLogger
}

func NewRouter(d Deps) http.Handler {
	if d.Metrics == nil {
		d.Metrics = middleware.NewMetrics()
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop().Sugar()
	}
	if d.RequestTimeout <= 0 {
		d.RequestTimeout = 55 * time.Second
	}
	origins := d.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := &Router{catalog: d.Catalog, analysis: d.Analysis, metrics: d.Metrics, log: d.Logger}
	mux := chi.NewRouter()

	mux.Use(chimw.RequestID)
	mux.Use(chimw.RealIP)
	mux.Use(middleware.Logging(d.Logger))
	mux.Use(chimw.Recoverer)
	mux.Use(d.Metrics.Middleware)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-API-Key"},
		MaxAge:         300,
	}))

	mux.Get("/health", middleware.HealthHandler(d.Health))
	mux.Get("/ready", middleware.ReadinessHandler)
	mux.Get("/live", middleware.LivenessHandler)

	mux.Group(func(rt chi.Router) {
		if len(d.APIKeys) > 0 {
			rt.Use(middleware.APIKeyAuth(d.APIKeys))
		}
		if d.RateLimiter != nil {
			rt.Use(d.RateLimiter.Middleware)
		}

		rt.Get("/metrics", d.Metrics.Handler)

		rt.Route("/api", func(api chi.Router) {
			api.Use(chimw.Timeout(d.RequestTimeout))
			api.Get("/search", r.wrap(r.handleSearch))
			api.Get("/reviews", r.wrap(r.handleReviews))
			api.Get("/app", r.wrap(r.handleApp))
			api.Get("/suggest", r.wrap(r.handleSuggest))
			api.Post("/analyze", r.wrap(r.handleAnalyze))
			api.Get("/analyses", r.wrap(r.handleAnalyses))
		})
	})

	mux.NotFound(func(w http.ResponseWriter, req *http.Request) {
		middleware.WriteError(w, http.StatusNotFound, "見つかりません")
	})
	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}

		var he *httpError
		switch {
		case errors.As(err, &he):
		case errors.Is(err, analysis.ErrNoReviews):
			he = badRequest(msgNoReviews)
		case errors.Is(err, analysis.ErrHistoryDisabled):
			he = &httpError{status: http.StatusNotFound, msg: msgHistoryDisabled}
		case errors.Is(err, catalog.ErrMissingTerm):
			he = badRequest(msgMissingTerm)
		case errors.Is(err, catalog.ErrMissingAppID):
			he = badRequest(msgMissingAppID)
		default:
			he = serverError(err, msgInternal)
		}

		if he.status >= http.StatusInternalServerError {
			r.metrics.UpstreamErrors.Add(1)
			r.log.Errorw("request failed", "path", req.URL.Path, "error", err)
		}
		middleware.WriteError(w, he.status, he.msg)
	}
}
