package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.withRequestLogging)

	r.Get("/health", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/auth/login", s.handleAuthLogin)

		r.Group(func(r chi.Router) {
			r.Use(s.withAuth)

			r.Get("/auth/me", s.handleAuthMe)

			// Topics.
			r.Get("/topics", s.handleListTopics)
			r.Post("/topics", s.handleCreateTopic)
			r.Patch("/topics/{id}", s.handleRenameTopic)
			r.Delete("/topics/{id}", s.handleDeleteTopic)
			r.Get("/topics/{id}/goals", s.handleListGoals)
			r.Post("/topics/{id}/goals", s.handleCreateGoal)

			// Goals.
			r.Patch("/goals/{id}", s.handleUpdateGoal)
			r.Delete("/goals/{id}", s.handleDeleteGoal)
			r.Get("/goals/{id}/logs", s.handleListLogs)
			r.Post("/goals/{id}/logs", s.handleCreateLog)
			r.Get("/goals/{id}/content", s.handleListGoalContent)
			r.Put("/goals/{id}/content/{contentID}", s.handleLinkGoalContent)
			r.Delete("/goals/{id}/content/{contentID}", s.handleUnlinkGoalContent)

			// Logs.
			r.Patch("/logs/{id}", s.handleUpdateLog)
			r.Delete("/logs/{id}", s.handleDeleteLog)

			// Library.
			r.Get("/content", s.handleListContent)
			r.Post("/content", s.handleCreateContent)
			r.Get("/content/{id}", s.handleGetContent)
			r.Put("/content/{id}", s.handleUpdateContent)
			r.Delete("/content/{id}", s.handleDeleteContent)
			r.Get("/repertoire", s.handleListRepertoire)
			r.Post("/repertoire", s.handleCreateRepertoire)
			r.Get("/repertoire/{id}", s.handleGetRepertoire)
			r.Put("/repertoire/{id}", s.handleUpdateRepertoire)
			r.Delete("/repertoire/{id}", s.handleDeleteRepertoire)
			r.Get("/tags", s.handleListTags)

			// Sessions.
			r.Get("/sessions/{date}", s.handleGetSession)
			r.Post("/sessions/{date}/goals", s.handleAddSessionGoal)
			r.Delete("/sessions/{date}/goals", s.handleClearSession)
			r.Delete("/sessions/{date}/goals/{goalID}", s.handleRemoveSessionGoal)

			// Activity.
			r.Get("/activity/{year}", s.handleActivity)
		})
	})

	return r
}
