package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/hcportal/leave-portal/internal/api"
	"github.com/hcportal/leave-portal/internal/api/handler"
	"github.com/hcportal/leave-portal/internal/core/ports"
	"github.com/hcportal/leave-portal/internal/core/service"
	"github.com/hcportal/leave-portal/internal/infrastructure/config"
	mongodb "github.com/hcportal/leave-portal/internal/infrastructure/db/mongo"
	redisdb "github.com/hcportal/leave-portal/internal/infrastructure/db/redis"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			cfg, log, err := bootstrap(ctx)
			if err != nil {
				return err
			}
			return runServer(ctx, cfg, log)
		},
	}
}

func runServer(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		Timeout:  cfg.Mongo.Timeout,
	})
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	repo := mongodb.NewIdentityRepository(db)
	if err := repo.EnsureIndexes(ctx); err != nil {
		return err
	}

	pingers := map[string]handler.Pinger{"mongodb": mongodb.NewPinger(db)}

	var throttle ports.LoginThrottle
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:    cfg.Redis.Addr,
		DB:      cfg.Redis.DB,
		Timeout: cfg.Redis.Timeout,
	})
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, login throttling disabled")
	} else {
		defer func(c *goredis.Client) { _ = c.Close() }(rdb)
		throttle = redisdb.NewLoginThrottle(rdb, redisdb.ThrottleConfig{
			MaxAttempts: cfg.Auth.LoginMaxAttempts,
			Window:      cfg.Auth.LoginWindow,
			Lockout:     cfg.Auth.LoginLockout,
		})
		pingers["redis"] = redisdb.NewPinger(rdb)
	}

	tokens, err := service.NewSessionTokens(service.TokenConfig{
		Secret: []byte(cfg.Auth.Secret),
		Issuer: cfg.Auth.Issuer,
		TTL:    cfg.Auth.TokenTTL,
	})
	if err != nil {
		return fmt.Errorf("session tokens: %w", err)
	}

	verifier := service.NewCredentialVerifier(repo, log)
	authService := service.NewAuthService(verifier, tokens, throttle, log)
	identityService := service.NewIdentityService(repo, log)

	e := api.NewRouter(ctx, api.Deps{
		Auth:            authService,
		Sessions:        tokens,
		Identities:      identityService,
		Policy:          service.DefaultRoutePolicy(),
		Pingers:         pingers,
		Cookie:          handler.CookieConfig{Name: cfg.Auth.CookieName, Secure: cfg.IsProduction()},
		LoginRatePerMin: cfg.Auth.LoginRatePerMin,
		HSTS:            cfg.IsProduction(),
		TrustedProxies:  cfg.ProxyRanges,
		Log:             log,
	})

	address := ":" + cfg.Port
	log.Info().Str("address", address).Str("version", version).Msg("starting leave portal")

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := e.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		log.Info().Msg("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	log.Info().Msg("server exited properly")
	return nil
}
