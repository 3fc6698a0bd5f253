package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/tcp_snm/algodex/middleware"
)

// V1Router configures every endpoint served under /v1. Reads are public,
// writes go through auth.
func (a *Api) V1Router(auth middleware.JWTAuth) *chi.Mux {
	v1 := chi.NewRouter()

	v1.Get("/healthz", a.HandlerReadiness)

	// session
	v1.Get("/me", auth.JWTMiddleware(a.HandlerGetMe))
	v1.Post("/logout", a.HandlerLogout)

	// problems layer
	// search
	v1.Get("/problems", a.HandlerGetProblems)
	v1.Get("/problems/{slug}", a.HandlerGetProblemBySlug)
	// add
	v1.Post("/problems", auth.JWTMiddleware(a.HandlerAddProblem))
	v1.Post("/problems/{slug}/solutions", auth.JWTMiddleware(a.HandlerAddSolution))
	// update
	v1.Put("/problems/{slug}", auth.JWTMiddleware(a.HandlerUpdateProblem))
	// delete
	v1.Delete("/problems/{slug}", auth.JWTMiddleware(a.HandlerDeleteProblem))

	// categories layer
	v1.Get("/categories", a.HandlerGetCategories)
	v1.Post("/categories", auth.JWTMiddleware(a.HandlerCreateCategory))
	v1.Put("/categories/{name}", auth.JWTMiddleware(a.HandlerUpdateCategory))
	v1.Delete("/categories/{name}", auth.JWTMiddleware(a.HandlerDeleteCategory))

	// snapshot
	v1.Post("/refresh", auth.JWTMiddleware(a.HandlerRefresh))

	return v1
}
