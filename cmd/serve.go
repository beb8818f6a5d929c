package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/SAP-F-2025/assessment-console/internal/events"
	"github.com/SAP-F-2025/assessment-console/internal/handlers"
	"github.com/SAP-F-2025/assessment-console/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the JSON backend for the web console",
	Args:  cobra.NoArgs,
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		if port, _ := cmd.Flags().GetString("port"); port != "" {
			a.cfg.Port = port
		}
		if a.cfg.IsProduction() {
			gin.SetMode(gin.ReleaseMode)
		}

		router := gin.New()
		router.Use(gin.Recovery())
		handlers.NewHandlerManager(a.services, a.logger, handlers.Options{
			Emitter:        a.emitter,
			MaxUploadBytes: a.cfg.MaxUploadBytes,
		}).SetupRoutes(router)

		server := &http.Server{
			Addr:         ":" + a.cfg.Port,
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: a.cfg.HTTPTimeout + 15*time.Second,
			IdleTimeout:  60 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := a.logEvents(ctx); err != nil && !errors.Is(err, events.ErrNoSubscriber) {
			return fmt.Errorf("subscribe to events: %w", err)
		}

		errc := make(chan error, 1)
		go func() {
			a.logger.Info("Starting HTTP server", "addr", server.Addr, "api_url", a.cfg.APIURL)
			errc <- server.ListenAndServe()
		}()

		select {
		case err := <-errc:
			if !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-ctx.Done():
		}

		a.logger.Info("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}),
}

// logEvents writes every in-process event to the access log. Broker-backed
// publishers are consumed elsewhere and return events.ErrNoSubscriber.
func (a *app) logEvents(ctx context.Context) error {
	received, err := events.Consume(ctx, a.publisher, utils.ToSlogLogger(a.logger))
	if err != nil {
		return err
	}
	go func() {
		for e := range received {
			a.logger.InfoContext(ctx, "Event published",
				"event_id", e.ID,
				"event_type", e.Type,
				"data", e.Data)
		}
	}()
	return nil
}

func init() {
	serveCmd.Flags().String("port", "", "Listen port (overrides PORT)")
}
