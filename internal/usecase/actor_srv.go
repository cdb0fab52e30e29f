package usecase

import (
	"context"
	"fmt"

	"movie-feedback/internal/data/repository"
	"movie-feedback/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ActorService interface {
	GetActors(ctx context.Context) ([]response.ActorResponse, error)
	GetActor(ctx context.Context, actorID string) (*response.ActorDetailResponse, error)
}

type actorService struct {
	repo repository.ActorRepository
	log  *zap.Logger
}

func NewActorService(repo repository.ActorRepository, log *zap.Logger) ActorService {
	return &actorService{
		repo: repo,
		log:  log.With(zap.String("service", "actor")),
	}
}

func (s *actorService) GetActors(ctx context.Context) ([]response.ActorResponse, error) {
	actors, err := s.repo.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to get actors", zap.Error(err))
		return nil, fmt.Errorf("get actors: %w", err)
	}
	return response.ActorsToResponse(actors), nil
}

func (s *actorService) GetActor(ctx context.Context, actorID string) (*response.ActorDetailResponse, error) {
	id, err := uuid.Parse(actorID)
	if err != nil {
		return nil, newValidationError("id", "Must be a valid UUID")
	}

	actor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get actor: %w", err)
	}
	if actor == nil {
		return nil, &NotFoundError{Resource: "actor", ID: actorID}
	}

	resp := response.ActorToDetailResponse(actor)
	return &resp, nil
}
