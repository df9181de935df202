package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	guideadapter "homestead/internal/adapter/guide"
	httpadapter "homestead/internal/adapter/http"
	"homestead/internal/adapter/metrics"
	metricsinmem "homestead/internal/adapter/metrics/inmemory"
	metricsprom "homestead/internal/adapter/metrics/prom"
	gormrepo "homestead/internal/adapter/repo/gorm"
	"homestead/internal/adapter/repo/memory"
	redisrepo "homestead/internal/adapter/repo/redis"
	"homestead/internal/app/action"
	"homestead/internal/app/auth"
	"homestead/internal/app/guide"
	"homestead/internal/app/observe"
	"homestead/internal/app/ports"
	"homestead/internal/app/replay"
	"homestead/internal/app/status"
	"homestead/internal/config"
	"homestead/internal/logger"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type repos struct {
	States      ports.FarmStateRepository
	Actions     ports.ActionExecutionRepository
	Events      ports.EventRepository
	Credentials ports.FarmCredentialRepository
	Tx          ports.TxManager
	Close       func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	log := logger.Setup(cfg.Logger())

	content, err := cfg.Content()
	if err != nil {
		log.Error("load content", "error", err)
		os.Exit(1)
	}
	opts, err := content.Options(log)
	if err != nil {
		log.Error("build game options", "error", err)
		os.Exit(1)
	}

	r, err := buildRepos(context.Background(), cfg)
	if err != nil {
		log.Error("open store", "store", cfg.Store, "error", err)
		os.Exit(1)
	}
	defer r.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	promRecorder := metricsprom.NewRecorder(registry)
	kpiRecorder := metricsinmem.NewRecorder()

	h := httpadapter.Handler{
		RegisterUC: auth.RegisterUseCase{
			Credentials: r.Credentials,
			StateRepo:   r.States,
			TxManager:   r.Tx,
			Content:     opts,
		},
		AuthUC: auth.VerifyUseCase{
			Credentials: r.Credentials,
			Cache:       auth.NewCredentialCache(cfg.CacheSize, cfg.CacheTTL),
		},
		ObserveUC: observe.UseCase{StateRepo: r.States, Content: opts, MaxSettle: cfg.MaxSettle},
		ActionUC: action.UseCase{
			TxManager:  r.Tx,
			StateRepo:  r.States,
			ActionRepo: r.Actions,
			EventRepo:  r.Events,
			Metrics:    metrics.NewFanout(kpiRecorder, promRecorder),
			Content:    opts,
			MaxSettle:  cfg.MaxSettle,
		},
		ReplayUC: replay.UseCase{Events: r.Events},
		StatusUC: status.UseCase{StateRepo: r.States, Content: opts, MaxSettle: cfg.MaxSettle},
		GuideUC:  guide.UseCase{Provider: guideadapter.Provider{Root: cfg.GuideDir}, Catalog: opts.Catalog},
		KPI:      kpiRecorder,
		CORS:     cfg.CORSOrigin,
		Requests: promRecorder,
		Metrics:  promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	s := server.Default(server.WithHostPorts(addr))
	h.RegisterRoutes(s)

	log.Info("homestead server listening", "addr", addr, "store", cfg.Store)
	s.Spin()
}

func buildRepos(ctx context.Context, cfg *config.Config) (repos, error) {
	switch cfg.Store {
	case config.StorePostgres:
		db, err := gormrepo.OpenPostgres(ctx, cfg.DBDSN, gormrepo.PoolConfig{
			MaxOpenConns:    cfg.DBMaxConns,
			MaxIdleConns:    cfg.DBMaxConns / 2,
			ConnMaxLifetime: 30 * time.Minute,
		})
		if err != nil {
			return repos{}, err
		}
		if err := gormrepo.ApplyMigrations(ctx, db, cfg.MigrationsDir); err != nil {
			_ = gormrepo.Close(db)
			return repos{}, fmt.Errorf("migrate: %w", err)
		}
		return repos{
			States:      gormrepo.NewFarmStateRepo(db),
			Actions:     gormrepo.NewActionExecutionRepo(db),
			Events:      gormrepo.NewEventRepo(db),
			Credentials: gormrepo.NewFarmCredentialRepo(db),
			Tx:          gormrepo.NewTxManager(db),
			Close:       func() { _ = gormrepo.Close(db) },
		}, nil
	case config.StoreRedis:
		client, err := redisrepo.Open(ctx, cfg.RedisURL)
		if err != nil {
			return repos{}, err
		}
		store := redisrepo.NewStore(client, "")
		return repos{
			States:      redisrepo.NewFarmStateRepo(store),
			Actions:     redisrepo.NewActionExecutionRepo(store),
			Events:      redisrepo.NewEventRepo(store),
			Credentials: redisrepo.NewFarmCredentialRepo(store),
			Tx:          redisrepo.NewTxManager(store),
			Close:       func() { _ = client.Close() },
		}, nil
	default:
		slog.Warn("using in-memory store; farms are lost on restart")
		store := memory.NewStore()
		return repos{
			States:      memory.NewFarmStateRepo(store),
			Actions:     memory.NewActionExecutionRepo(store),
			Events:      memory.NewEventRepo(store),
			Credentials: memory.NewFarmCredentialRepo(store),
			Tx:          memory.NewTxManager(store),
			Close:       func() {},
		}, nil
	}
}
