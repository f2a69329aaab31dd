// Command server runs the members-auth web application.
//
// @title        members-auth
// @version      1.0
// @description  Account signup, login and session-gated members area.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/99minutos/members-auth/internal/api"
	"github.com/99minutos/members-auth/internal/api/cookie"
	"github.com/99minutos/members-auth/internal/api/handler"
	"github.com/99minutos/members-auth/internal/api/metrics"
	"github.com/99minutos/members-auth/internal/core/ports"
	"github.com/99minutos/members-auth/internal/core/service"
	"github.com/99minutos/members-auth/internal/core/validation"
	"github.com/99minutos/members-auth/internal/infrastructure/db/mongo"
	"github.com/99minutos/members-auth/internal/infrastructure/db/redis"
	"github.com/99minutos/members-auth/internal/infrastructure/hashing"
	"github.com/99minutos/members-auth/internal/infrastructure/queue"
	"github.com/99minutos/members-auth/internal/pkg/config"
	"github.com/99minutos/members-auth/pkg/logger"
)

const (
	auditWorkers    = 4
	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg := config.MustLoad()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "members-auth",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	client, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.ConnectionURI(),
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongo")

	checks := map[string]handler.Check{
		"mongodb": func(ctx context.Context) error { return client.Ping(ctx, nil) },
	}

	accounts := mongo.NewAccountRepository(db)
	indexers := []mongo.Indexer{accounts}

	var store ports.SessionStore
	switch cfg.Session.Store {
	case config.SessionStoreRedis:
		rdb, err := redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer rdb.Close()
		log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to redis")

		store = redis.NewSessionStore(rdb)
		checks["redis"] = redisCheck(rdb)
	default:
		mongoStore := mongo.NewSessionStore(db)
		store = mongoStore
		indexers = append(indexers, mongoStore)
	}

	if err := mongo.EnsureIndexes(ctx, indexers...); err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	dispatcherCtx, stopDispatcher := context.WithCancel(context.Background())
	dispatcher := queue.NewDispatcher(auditWorkers, mongo.NewAuditRepository(db), m.AuditEventsDroppedTotal, log)
	dispatcher.Start(dispatcherCtx)
	defer func() {
		stopDispatcher()
		dispatcher.Wait()
	}()

	cookies, err := cookie.NewCodec(cfg.Session.Secret, cfg.Session.CookieSecure)
	if err != nil {
		return err
	}

	sessions := service.NewSessionManager(store, log)
	authService := service.NewAuthService(
		accounts,
		hashing.NewBcryptHasher(hashing.DefaultCost),
		validation.New(),
		sessions,
		dispatcher,
		log,
	)

	e, err := api.NewRouter(api.Deps{
		Auth:      authService,
		Sessions:  sessions,
		Gate:      service.NewAccessGate(),
		Cookies:   cookies,
		Metrics:   m,
		Registry:  reg,
		Checks:    checks,
		StaticDir: cfg.StaticDir,
		Log:       log,
	})
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		addr := net.JoinHostPort("", cfg.Port)
		log.Info().Str("addr", addr).Msg("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func redisCheck(rdb *goredis.Client) handler.Check {
	return func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	}
}
