package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/SAP-F-2025/assessment-console/internal/cache"
	"github.com/SAP-F-2025/assessment-console/internal/client"
	"github.com/SAP-F-2025/assessment-console/internal/config"
	"github.com/SAP-F-2025/assessment-console/internal/events"
	"github.com/SAP-F-2025/assessment-console/internal/models"
	"github.com/SAP-F-2025/assessment-console/internal/services"
	"github.com/SAP-F-2025/assessment-console/internal/session"
	"github.com/SAP-F-2025/assessment-console/internal/utils"
	"github.com/SAP-F-2025/assessment-console/internal/validator"
	"github.com/SAP-F-2025/assessment-console/pkg"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app is everything a command needs, built once per invocation.
type app struct {
	cfg       *config.Config
	logger    utils.Logger
	validator *validator.Validator
	hub       *events.Hub
	publisher events.EventPublisher
	emitter   *events.Emitter
	sessions  *session.Manager
	services  *services.ServiceManager
	out       io.Writer

	closers []func() error
}

func newApp(cmd *cobra.Command) (*app, error) {
	envFile, _ := cmd.Flags().GetString("env-file")
	var extra []string
	if envFile != "" {
		extra = append(extra, envFile)
	}
	cfg, err := config.LoadConfig(extra...)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if apiURL, _ := cmd.Flags().GetString("api-url"); apiURL != "" {
		cfg.APIURL = apiURL
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	logger := utils.NewNopLogger()
	if verbose || cmd.Name() == "serve" {
		logger = utils.NewLogger(cfg.Environment, os.Stderr)
	}

	a := &app{
		cfg:       cfg,
		logger:    logger,
		validator: validator.New(),
		hub:       events.NewHub(0),
		out:       cmd.OutOrStdout(),
	}

	a.publisher, err = cfg.Events.CreateEventPublisher(utils.ToSlogLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("create event publisher: %w", err)
	}
	a.closers = append(a.closers, a.publisher.Close)
	a.emitter = events.NewEmitter(a.publisher, utils.ToSlogLogger(logger))

	store, err := a.sessionStore(cmd.Context())
	if err != nil {
		a.close()
		return nil, err
	}

	base := client.New(cfg.APIURL, client.WithTimeout(cfg.HTTPTimeout), client.WithLogger(logger))
	auth := services.NewServiceManager(base, a.validator, logger).Auth()
	a.sessions = session.NewManager(store, auth,
		session.WithTTL(cfg.SessionTTL),
		session.WithEmitter(a.emitter),
		session.WithLogger(logger),
	)

	var fallback session.TokenSource = a.sessions
	if cfg.APIToken != "" {
		fallback = client.StaticToken(cfg.APIToken)
	}
	api := base.WithTokens(session.ContextTokenSource{Fallback: fallback})
	a.services = services.NewServiceManager(api, a.validator, logger)

	a.hub.Listen(a.printNotification)
	return a, nil
}

func (a *app) sessionStore(ctx context.Context) (session.Store, error) {
	switch a.cfg.SessionStore {
	case config.SessionStoreRedis:
		rdb, err := pkg.NewRedisClient(ctx, a.cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, rdb.Close)

		zl := zap.NewNop()
		if a.cfg.IsProduction() {
			if zl, err = zap.NewProduction(); err != nil {
				return nil, err
			}
		}
		return session.NewRedisStore(cache.NewRedisCache(rdb, zl, "assessment-console:")), nil
	case config.SessionStoreFile:
		dir := a.cfg.SessionDir
		if dir == "" {
			var err error
			if dir, err = session.DefaultDir(); err != nil {
				return nil, fmt.Errorf("resolve session directory: %w", err)
			}
		}
		return session.NewFileStore(dir), nil
	default:
		return session.NewMemoryStore(), nil
	}
}

func (a *app) printNotification(n models.Notification) {
	prefix := ""
	if n.Level == models.NotificationError {
		prefix = "error: "
	}
	fmt.Fprintln(os.Stderr, prefix+n.Message)
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("close failed", "error", err)
		}
	}
}

// withApp builds the app for the duration of fn.
func withApp(fn func(cmd *cobra.Command, args []string, a *app) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()
		return fn(cmd, args, a)
	}
}
