package app

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/riskibarqy/gameday-rotation/internal/config"
	"github.com/riskibarqy/gameday-rotation/internal/domain/game"
	"github.com/riskibarqy/gameday-rotation/internal/domain/group"
	"github.com/riskibarqy/gameday-rotation/internal/domain/rotation"
	"github.com/riskibarqy/gameday-rotation/internal/infrastructure/identity/jwtauth"
	"github.com/riskibarqy/gameday-rotation/internal/infrastructure/realtime"
	repocache "github.com/riskibarqy/gameday-rotation/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/gameday-rotation/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/gameday-rotation/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/gameday-rotation/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/gameday-rotation/internal/platform/cache"
	idgen "github.com/riskibarqy/gameday-rotation/internal/platform/id"
	"github.com/riskibarqy/gameday-rotation/internal/platform/logging"
	"github.com/riskibarqy/gameday-rotation/internal/platform/metrics"
	"github.com/riskibarqy/gameday-rotation/internal/platform/resilience"
	"github.com/riskibarqy/gameday-rotation/internal/usecase"
	"github.com/sourcegraph/conc/pool"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

// App is the assembled API process: the HTTP server plus the background
// loops that feed live subscribers.
type App struct {
	Server  *http.Server
	hub     *realtime.Hub
	relay   *realtime.RedisRelay
	closers []func() error
	logger  *logging.Logger
}

type storage struct {
	tx     usecase.Transactor
	groups group.Repository
	games  game.Repository
	close  func() error
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if strings.TrimSpace(cfg.HTTPAddr) == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	a := &App{logger: logger}

	store, err := openStorage(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, store.close)

	a.hub = realtime.NewHub(logger.Named("realtime"))
	var events usecase.EventPublisher = a.hub
	if cfg.RedisEnabled {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		a.closers = append(a.closers, client.Close)
		a.relay = realtime.NewRedisRelay(client, cfg.RedisChannel, a.hub, resilience.CircuitBreakerConfig{
			Enabled:          cfg.RedisCircuitEnabled,
			FailureThreshold: cfg.RedisCircuitFailures,
			OpenTimeout:      cfg.RedisCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.RedisCircuitHalfOpenMax,
		}, logger.Named("realtime"))
		events = a.relay
		logger.Info("redis relay enabled", "addr", cfg.RedisAddr, "channel", cfg.RedisChannel)
	}

	var (
		serviceMetrics usecase.Metrics
		metricsHandler http.Handler
	)
	if cfg.MetricsEnabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		m := metrics.NewService(reg)
		serviceMetrics = m
		metricsHandler = m.Handler()
	}

	ids := idgen.NewUUIDGenerator()
	usecaseLogger := logger.Named("usecase")
	matchSvc := usecase.NewMatchService(
		store.tx,
		store.groups,
		ids,
		rotation.FairCoin{},
		events,
		serviceMetrics,
		cfg.MatchDuration,
		usecaseLogger,
	)
	gameDaySvc := usecase.NewGameDayService(
		store.tx,
		store.groups,
		ids,
		events,
		serviceMetrics,
		cfg.MatchDuration,
		usecaseLogger,
	)
	sweepSvc := usecase.NewExpirySweepService(store.games, matchSvc, serviceMetrics, cfg.ExpirySweepWorkers, usecaseLogger)

	verifier := jwtauth.NewVerifier(cfg.AuthJWTSecret, cfg.AuthJWTIssuer, logger.Named("auth"))
	handler := httpapi.NewHandler(matchSvc, gameDaySvc, sweepSvc, a.hub, cfg.CORSAllowedOrigins, logger.Named("httpapi"))
	router := httpapi.NewRouter(
		handler,
		verifier,
		logger,
		cfg.SwaggerEnabled,
		cfg.CORSAllowedOrigins,
		cfg.InternalJobToken,
		metricsHandler,
	)

	a.Server = &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.WriteTimeout,
	}

	return a, nil
}

func openStorage(ctx context.Context, cfg config.Config, logger *logging.Logger) (storage, error) {
	if cfg.StorageDriver != config.StoragePostgres {
		store := memory.NewStore()
		logger.Info("storage ready", "driver", config.StorageMemory)
		return storage{
			tx:     store,
			groups: memory.NewGroupRepository(memory.SeedGroups(), memory.SeedMemberships()),
			games:  store.Games(),
			close:  func() error { return nil },
		}, nil
	}

	dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary, cfg.ServiceName)
	db, err := otelsqlx.Open("postgres", dbURL,
		otelsql.WithDBName(dbNameFromURL(dbURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return storage{}, fmt.Errorf("open postgres: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return storage{}, fmt.Errorf("ping postgres: %w", err)
	}
	if err := postgres.BootstrapSeed(ctx, db); err != nil {
		_ = db.Close()
		return storage{}, err
	}

	store := postgres.NewStore(db)
	var groups group.Repository = postgres.NewGroupRepository(db)
	if cfg.GroupCacheTTL > 0 {
		groups = repocache.NewGroupRepository(groups, basecache.NewStore(cfg.GroupCacheTTL))
	}

	logger.Info("storage ready", "driver", config.StoragePostgres, "db_name", dbNameFromURL(dbURL))
	return storage{
		tx:     store,
		groups: groups,
		games:  store.Games(),
		close:  db.Close,
	}, nil
}

// Run drives the websocket hub and, when Redis is enabled, the relay
// subscription. It returns after ctx is cancelled and both loops exit.
func (a *App) Run(ctx context.Context) error {
	p := pool.New().WithErrors().WithContext(ctx)
	p.Go(a.hub.Run)
	if a.relay != nil {
		p.Go(a.relay.Run)
	}
	return p.Wait()
}

// Close releases the database and Redis connections.
func (a *App) Close() error {
	var firstErr error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
