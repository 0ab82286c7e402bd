package routes

import (
	"github.com/Dosada05/pereval-api/handlers"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/Dosada05/pereval-api/docs" // сгенерированная swagger-спецификация
)

func SetupRoutes(
	router *chi.Mux,
	perevalHandler *handlers.PerevalHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	router.Route("/api", func(r chi.Router) {
		r.Route("/submitData", func(r chi.Router) {
			r.Post("/", perevalHandler.SubmitData)
			r.Get("/", perevalHandler.GetPerevalsByEmail) // ?user__email=
			r.Get("/{id}", perevalHandler.GetPerevalByID)
			r.Patch("/{id}", perevalHandler.UpdatePereval)
		})
	})

	router.Get("/ws/perevals", webSocketHandler.ServeFeed)

	router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
}
