package routers

import (
	"github.com/go-chi/chi/v5"

	"algoview/internal/handlers"
	"algoview/internal/middleware"
	"algoview/internal/models"
)

func SessionRoutes(router *chi.Mux, sessionHandler *handlers.SessionHandler, wsHandler *handlers.WSHandler) {
	router.Route("/api/session", func(r chi.Router) {
		r.With(middleware.ValidateRequest[*models.CreateSessionRequest]()).Post("/create", sessionHandler.CreateHandler)
		r.Get("/status/{sessionId}", sessionHandler.StatusHandler)
		r.Get("/results/{sessionId}", sessionHandler.ResultsHandler)
		r.Get("/problems", sessionHandler.ProblemsHandler)
		r.Delete("/{sessionId}", sessionHandler.DeleteHandler)
	})

	router.Get("/ws/{sessionId}", wsHandler.InterviewWS)
}
