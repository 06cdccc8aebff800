package http

import (
	"github.com/go-chi/chi/v5"

	"github.com/studykit/mockexam/internal/session"
)

// Mount attaches the command/query surface under the given router. Command
// handlers respond with the post-transition snapshot so the UI re-renders
// from a single round trip.
func Mount(r chi.Router, s *session.Session) {
	r.Get("/state", StateHandler(s))

	r.Route("/exam", func(er chi.Router) {
		er.Post("/start", StartHandler(s))
		er.Post("/answer", AnswerHandler(s))
		er.Post("/navigate", NavigateHandler(s))
		er.Post("/mark", MarkHandler(s))
		er.Post("/submit", SubmitHandler(s))
		er.Post("/exit", ExitHandler(s))
	})

	r.Get("/history", HistoryHandler(s))
	r.Get("/history/series", SeriesHandler(s))
	r.Delete("/history", ClearHistoryHandler(s))
}
