package adaptor

import (
	"net/http"

	"movie-feedback/internal/usecase"
	"movie-feedback/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ActorHandler struct {
	service usecase.ActorService
	log     *zap.Logger
}

func NewActorHandler(service usecase.ActorService, log *zap.Logger) *ActorHandler {
	return &ActorHandler{
		service: service,
		log:     log.With(zap.String("handler", "actor")),
	}
}

// GetActors handles GET /api/actors
func (h *ActorHandler) GetActors(w http.ResponseWriter, r *http.Request) {
	actors, err := h.service.GetActors(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get actors")
		return
	}

	utils.ResponseSuccess(w, "success", actors)
}

// GetActorByID handles GET /api/actors/{id}
func (h *ActorHandler) GetActorByID(w http.ResponseWriter, r *http.Request) {
	actor, err := h.service.GetActor(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get actor by ID")
		return
	}

	utils.ResponseSuccess(w, "Actor retrieved successfully", actor)
}
