// internal/wire/wire.go
package wire

import (
	"net/http"

	"movie-feedback/internal/adaptor"
	"movie-feedback/internal/data/repository"
	"movie-feedback/internal/usecase"
	"movie-feedback/pkg/events"
	"movie-feedback/pkg/middleware"
	"movie-feedback/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App menyimpan semua dependencies
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring menginisialisasi semua dependencies
func Wiring(repo *repository.Repository, config *utils.Config, publisher *events.Publisher, logger *zap.Logger) *App {
	// Initialize services dan handlers
	service := usecase.NewService(repo, config, publisher, logger)
	handler := adaptor.NewHandler(service, logger)

	// Setup router
	router := setupRouter(handler, config, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

// setupRouter konfigurasi Chi router
func setupRouter(
	handler *adaptor.Handler,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	verifier := middleware.TokenVerifier{Secret: []byte(config.JWT.Secret)}
	limiter := middleware.NewRateLimiter(config.RateLimit.RPS, config.RateLimit.Burst)

	// Apply global middleware; Logger sits after Identity so it can log who asked
	r.Use(chimw.RequestID)
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.CORS.AllowedOrigins))
	r.Use(middleware.Identity(verifier, config.Proxy.Trusted, logger))
	r.Use(middleware.Logger(logger))

	// Apply routes
	wireMovie(r, handler.Movie)
	wireReview(r, handler.Review, limiter, logger)
	wireRating(r, handler.Rating, limiter, logger)
	wireActor(r, handler.Actor)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return r
}
