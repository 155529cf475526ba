package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/travelinfo/travel-api/internal/api"
	apiMiddleware "github.com/travelinfo/travel-api/internal/api/middleware"
	"github.com/travelinfo/travel-api/internal/api/shared"
)

// setupRouter mounts the RPC router and the health check behind the
// middleware chain.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.Trace(app.logger))
	r.Use(apiMiddleware.RequestLog)
	r.Use(apiMiddleware.Identity(app.jwtService))

	r.Handle("/trpc/{"+api.ProcedureParam+"}", app.rpc)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})

	return r
}
