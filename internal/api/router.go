package api

import (
	_ "github.com/EduardoProfe666/tasas-cuba-sub000/docs"
	"github.com/EduardoProfe666/tasas-cuba-sub000/internal/rate/handler"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	swagger "github.com/swaggo/http-swagger"
)

func NewRouter(rateHandler *handler.Handler) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(middleware.Heartbeat("/healthz"))

	// Swagger UI
	router.Get("/swagger/*", swagger.WrapHandler)

	router.Get("/api/v1/sync", rateHandler.TriggerSync)
	router.Get("/api/v1/rates/supported-currencies", rateHandler.GetSupportedCodes)
	router.Get("/api/v1/rates/history", rateHandler.GetHistory)
	router.Get("/api/v1/rates/compare", rateHandler.CompareDates)
	router.Get("/api/v1/rates/trend", rateHandler.GetTrend)
	return router
}
