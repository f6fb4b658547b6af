// Package httpapi serves the game over a small JSON API.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/moorebrett0/wonderpets/internal/game"
)

type Options struct {
	Service *game.Service
	Metrics http.Handler // optional, mounted at /metrics
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics)
	}

	h := &handlers{svc: opts.Service}
	r.Route("/api", func(ar chi.Router) {
		ar.Get("/state", h.state)
		ar.Get("/species", h.species)
		ar.Get("/achievements", h.achievements)

		ar.Route("/pets", func(pr chi.Router) {
			pr.Post("/", h.adopt)
			pr.Post("/{petID}/select", h.selectPet)
		})

		ar.Post("/actions", h.action)
		ar.Get("/reaction", h.reaction)

		ar.Get("/settings/music", h.music)
		ar.Post("/settings/music", h.toggleMusic)
	})

	return r
}
