package main

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/algodex/internal/api"
	"github.com/tcp_snm/algodex/middleware"
)

func setCors(router *chi.Mux) {
	router.Use(
		cors.Handler(
			cors.Options{
				AllowedOrigins:   []string{"https://*", "http://*"},
				AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
				AllowedHeaders:   []string{"*"},
				AllowCredentials: false,
				ExposedHeaders:   []string{"Link"},
				MaxAge:           300,
			},
		),
	)
	log.Info("cors options has been set")
}

func newRouter(apiConfig *api.Api, auth middleware.JWTAuth, gatherer prometheus.Gatherer) *chi.Mux {
	// initialize a new router
	router := chi.NewRouter()
	setCors(router)

	// mount v1 router
	router.Mount("/v1", apiConfig.V1Router(auth))
	log.Info("v1 router has been mounted")

	router.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	return router
}
