package wire

import (
	"movie-feedback/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireActor(r chi.Router, actorHandler *adaptor.ActorHandler) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/actors", actorHandler.GetActors)
	r.Get("/api/actors/{id}", actorHandler.GetActorByID)
}
