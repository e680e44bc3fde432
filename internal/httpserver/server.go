package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"animedb/client/internal/config"
	"animedb/client/internal/service"
)

// Config holds runtime options for the browser front end.
type Config struct {
	Address    string
	API        config.APIConfig
	Locale     string
	CookieName string
	SessionTTL time.Duration
}

// New constructs the HTTP server with its middleware stack.
func New(cfg Config, svc *service.Service) *http.Server {
	return &http.Server{
		Addr:         cfg.Address,
		Handler:      NewRouter(cfg, svc),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func NewRouter(cfg Config, svc *service.Service) http.Handler {
	h := &handlers{cfg: cfg, svc: svc}

	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(HTMX())
	router.Use(RequestLogger())
	router.Use(chimw.Recoverer)
	router.Use(NoStore())
	router.Use(Session(cfg.CookieName, cfg.SessionTTL))

	router.Get("/", h.index)
	router.Get("/anime/{id}", h.detail)

	router.Post("/search", h.search)
	router.Post("/filters", h.filters)
	router.Post("/reset", h.reset)
	router.Post("/page", h.page)

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return router
}
