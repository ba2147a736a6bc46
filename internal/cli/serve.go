package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"orion_service/controllers"
	"orion_service/internal/config"
	"orion_service/internal/events"
	"orion_service/internal/store"
)

func (f CommandFactory) createServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.setup()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return f.serve(ctx, cfg)
		},
	}
}

func (f CommandFactory) serve(ctx context.Context, cfg *config.Config) error {
	// The API keeps serving without a store; requests report the failure.
	users, err := f.OpenUsers(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Msg("MongoDB connection failed")
		users = store.Unavailable{Err: err}
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := users.Close(closeCtx); err != nil {
			log.Error().Err(err).Msg("MongoDB disconnect failed")
		}
	}()

	mail, err := f.NewMailer(cfg)
	if err != nil {
		return err
	}

	publisher := openPublisher(cfg)
	defer publisher.Close()

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	handler := controllers.NewHandler(users, mail, publisher)
	router := controllers.NewRouter(handler, users, controllers.RouterConfig{
		RateLimitRPS:   cfg.Server.RateLimitRPS,
		RateLimitBurst: cfg.Server.RateLimitBurst,
	})

	server := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", server.Addr).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
		return err
	}
	log.Info().Msg("Server exited")
	return nil
}

func openPublisher(cfg *config.Config) events.Publisher {
	if cfg.AMQP.URL == "" {
		return events.Noop{}
	}
	p, err := events.DialAMQP(cfg.AMQP.URL, cfg.AMQP.Exchange)
	if err != nil {
		log.Error().Err(err).Msg("Order events disabled")
		return events.Noop{}
	}
	log.Info().Str("exchange", cfg.AMQP.Exchange).Msg("Publishing order events")
	return p
}
