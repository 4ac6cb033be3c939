package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"bookweb/internal/aiimage"
	"bookweb/internal/apiclient"
	"bookweb/internal/config"
	"bookweb/internal/logging"
	"bookweb/internal/router"
	"bookweb/internal/session"
	"bookweb/internal/view"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}
	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openSessionStore(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("cannot open session store")
	}
	defer store.close()

	sessions := session.NewManager(store.repo, cfg.SessionSecret, cfg.SessionTTL, cfg.CookieSecure, log)
	janitor, err := sessions.StartJanitor("@hourly")
	if err != nil {
		log.WithError(err).Fatal("cannot start session janitor")
	}
	defer janitor.Stop()

	views, err := view.NewRenderer(log)
	if err != nil {
		log.WithError(err).Fatal("cannot parse templates")
	}

	api := apiclient.NewClient(apiclient.Options{
		BaseURL:            cfg.APIBaseURL,
		Timeout:            cfg.APITimeout,
		RPS:                cfg.APIRPS,
		IncludeCredentials: cfg.IncludeCredentials(),
	})

	rt := router.New(router.Deps{
		Config:    cfg,
		Log:       log,
		Sessions:  sessions,
		API:       api,
		Views:     views,
		Generator: newGenerator(cfg),
		Ready:     store.ping,
	})
	defer rt.Close()

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      rt,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.WithFields(logrus.Fields{
			"addr":            cfg.Addr,
			"api":             cfg.APIBaseURL,
			"session_backend": cfg.SessionBackend,
			"image_provider":  cfg.ImageProvider,
		}).Info("starting server")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server error")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}

func newGenerator(cfg config.Config) aiimage.Generator {
	if cfg.ImageProvider == config.ImageHTTP {
		return aiimage.NewHTTPGenerator(cfg.ImageAPIURL, 60*time.Second)
	}
	return aiimage.NewPlaceholderGenerator()
}

type sessionStore struct {
	repo  session.Repository
	ping  func(ctx context.Context) error
	close func()
}

func openSessionStore(ctx context.Context, cfg config.Config, log *logrus.Logger) (sessionStore, error) {
	switch cfg.SessionBackend {
	case config.BackendPostgres:
		pool, err := openDB(ctx, cfg.DatabaseDSN)
		if err != nil {
			return sessionStore{}, err
		}
		log.WithField("dsn", redactDSN(cfg.DatabaseDSN)).Info("database connection OK")
		return sessionStore{
			repo:  session.NewPostgresRepo(pool, 2*time.Second),
			ping:  pool.Ping,
			close: pool.Close,
		}, nil

	case config.BackendSQLite:
		repo, err := session.OpenSQLiteRepo(cfg.SQLitePath)
		if err != nil {
			return sessionStore{}, err
		}
		return sessionStore{
			repo: repo,
			ping: repo.Ping,
			close: func() {
				if err := repo.Close(); err != nil {
					log.WithError(err).Warn("sqlite close failed")
				}
			},
		}, nil

	case config.BackendRedis:
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			_ = rdb.Close()
			return sessionStore{}, fmt.Errorf("cannot ping redis (%s): %w", cfg.RedisAddr, err)
		}
		return sessionStore{
			repo: session.NewRedisRepo(rdb),
			ping: func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
			close: func() {
				if err := rdb.Close(); err != nil {
					log.WithError(err).Warn("redis close failed")
				}
			},
		}, nil

	default:
		log.Warn("using in-memory sessions; they are lost on restart")
		return sessionStore{
			repo:  session.NewMemoryRepo(),
			ping:  func(context.Context) error { return nil },
			close: func() {},
		}, nil
	}
}

func openDB(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("cannot create db pool: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("cannot ping database (%s): %w", redactDSN(dsn), err)
	}
	return pool, nil
}

func redactDSN(dsn string) string {
	const marker = "://"
	start := strings.Index(dsn, marker)
	if start < 0 {
		return dsn
	}
	start += len(marker)
	end := strings.Index(dsn[start:], "@")
	if end < 0 {
		return dsn
	}
	return dsn[:start] + "***" + dsn[start+end:]
}
