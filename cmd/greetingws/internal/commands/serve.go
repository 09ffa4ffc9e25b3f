package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/examplews/greeting-service/internal/api"
	"github.com/examplews/greeting-service/internal/api/handler"
	"github.com/examplews/greeting-service/internal/core/security"
	"github.com/examplews/greeting-service/internal/core/service"
	mongodb "github.com/examplews/greeting-service/internal/infrastructure/db/mongo"
	redisdb "github.com/examplews/greeting-service/internal/infrastructure/db/redis"
	"github.com/examplews/greeting-service/internal/infrastructure/queue"
	"github.com/examplews/greeting-service/pkg/logger"
)

type ServeCmd struct {
	ShutdownTimeout time.Duration `help:"grace period for in-flight requests on shutdown" default:"15s"`
}

func (s *ServeCmd) Run(ctx context.Context, globals *Globals) error {
	cfg, log, err := bootstrap(ctx)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, closeMongo, err := openMongo(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeMongo()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	// --- Security ---
	policy, err := security.NewAccessPolicy(cfg.Access.DefaultAllow, security.DefaultRules()...)
	if err != nil {
		return fmt.Errorf("access policy: %w", err)
	}
	resolver := security.NewAuthorityResolver()
	if cfg.Auth.FilterEffectiveRoles {
		resolver = security.NewEffectiveAuthorityResolver(time.Now)
	}
	encoder := security.NewPasswordEncoder(cfg.Auth.BcryptCost)

	// --- Services ---
	authService := service.NewAuthService(mongodb.NewAccountRepository(db), encoder, resolver, logger.Component("auth"))
	roleService := service.NewRoleService(mongodb.NewRoleRepository(db), logger.Component("roles"))
	greetingService := service.NewGreetingService(
		mongodb.NewGreetingRepository(db),
		redisdb.NewIdempotencyStore(rdb, cfg.Redis.IdempotencyTTL),
		logger.Component("greetings"),
	)

	// --- Auth audit trail ---
	// Workers outlive the signal context and are stopped only after the HTTP
	// server has drained, so attempts made during shutdown are still stored.
	// The deferred stop runs before the Mongo client is disconnected.
	dispatchCtx, stopDispatch := context.WithCancel(context.WithoutCancel(ctx))
	dispatcher := queue.NewDispatcher(
		cfg.Auth.EventWorkers,
		service.NewAuthEventService(mongodb.NewAuthEventRepository(db), logger.Component("auth_events")),
		logger.Component("dispatcher"),
	)
	dispatcher.Start(dispatchCtx)
	defer func() {
		stopDispatch()
		dispatcher.Wait()
	}()

	e := api.NewRouter(api.Deps{
		Log:       log,
		Policy:    policy,
		Auth:      authService,
		Greetings: greetingService,
		Roles:     roleService,
		Recorder:  dispatcher,
		Checks: map[string]handler.Check{
			"mongodb": mongodb.Ping(db),
			"redis":   redisdb.Ping(rdb),
		},
		Info: handler.Info{
			Name:                 serviceName,
			Version:              globals.Version,
			Env:                  cfg.Env,
			AuthRealm:            cfg.Auth.Realm,
			FilterEffectiveRoles: cfg.Auth.FilterEffectiveRoles,
			AccessDefaultAllow:   cfg.Access.DefaultAllow,
		},
		Realm:          cfg.Auth.Realm,
		WelcomeMessage: cfg.WelcomeMessage,
	})

	srv := configureHTTPServer(":"+cfg.Port, e)
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("version", globals.Version).Str("addr", srv.Addr).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
