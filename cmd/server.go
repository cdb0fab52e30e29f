package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"movie-feedback/internal/wire"
	"movie-feedback/pkg/events"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCommand(cc *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			config, logger := cc.config, cc.log

			logger.Info("Starting application",
				zap.String("port", config.App.Port),
				zap.String("driver", config.Database.Driver),
				zap.Bool("debug", config.App.Debug),
			)

			repo, closeRepo, err := openRepository(ctx, config, logger)
			if err != nil {
				return err
			}
			defer closeRepo()

			nc, err := events.Connect(config.NATS.URL, config.App.Name, logger)
			if err != nil {
				return err
			}
			var publisher *events.Publisher
			if nc != nil {
				defer nc.Close()
				publisher = events.NewPublisher(nc, config.NATS.SubjectPrefix, logger)
			}

			app := wire.Wiring(repo, config, publisher, logger)

			return APIServer(ctx, app.Router, config.App.Port, logger)
		},
	}
}

// APIServer serves route until ctx is cancelled, then drains in-flight requests.
func APIServer(ctx context.Context, route *chi.Mux, port string, logger *zap.Logger) error {
	addr := fmt.Sprintf(":%s", port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           route,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("HTTP server stopped")
	return nil
}
