package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	httpadapter "onepager-generator/internal/adapter/http"
	repo "onepager-generator/internal/adapter/repository"
	"onepager-generator/internal/config"
	"onepager-generator/internal/infrastructure/migration"
	"onepager-generator/internal/logger"
	"onepager-generator/internal/onepager"
	"onepager-generator/internal/usecase"
	ai "onepager-generator/pkg/ai"
	infra "onepager-generator/pkg/infrastructure"
)

func main() {
	configPath := flag.String("config", "", "path to a config.yaml (default: search ./configs)")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	defer func() { _ = log.Sync() }()

	ctx := context.Background()

	registry, err := onepager.NewRegistry(log)
	if err != nil {
		log.Fatal("failed to load templates", zap.Error(err))
	}

	jobsPool, err := infra.NewJobsPool(ctx, cfg.Database.URL)
	if err != nil {
		log.Warn("jobs DB not available, renders will not be recorded", zap.Error(err))
		jobsPool = nil
	} else {
		defer jobsPool.Close()
		if err := migration.RunMigrations(ctx, jobsPool, log); err != nil {
			log.Fatal("database migrations failed", zap.Error(err))
		}
	}

	var redisClient *redis.Client
	if cfg.Redis.Address != "" {
		redisClient, err = infra.NewRedisClient(ctx, cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Warn("redis not available, caching disabled", zap.String("address", cfg.Redis.Address), zap.Error(err))
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	store, err := newArtifactStore(ctx, cfg)
	if err != nil {
		log.Fatal("failed to set up artifact storage", zap.Error(err))
	}

	hosted, closeHosted, err := newHostedSource(ctx, cfg, jobsPool)
	if err != nil {
		log.Fatal("failed to set up hosted one-pager source", zap.Error(err))
	}
	defer closeHosted()

	var aiClient *ai.Client
	if cfg.AI.ServiceURL != "" {
		aiClient = ai.NewClient(cfg.AI.ServiceURL, cfg.AI.Timeout, log.Named("ai"))
	}

	deps := usecase.Deps{
		Registry:  registry,
		Labels:    newLabelsResolver(cfg, aiClient, redisClient, log),
		PDF:       infra.NewChromedpRenderer(cfg.Render.ChromePath, cfg.Render.Timeout),
		Pages:     infra.NewFitzInspector(),
		Store:     store,
		Jobs:      repo.NewJobsRepo(jobsPool),
		Hosted:    hosted,
		Watermark: cfg.Render.Watermark,
		Attempts:  cfg.Render.PDFAttempts,
		Logger:    log,
	}
	if aiClient != nil {
		deps.Suggester = aiClient
	}
	if redisClient != nil {
		deps.PDFCache = infra.NewRedisCache(redisClient, "onepager:pdf:", cfg.Redis.TTL)
	}
	processor := usecase.NewProcessor(deps)

	app := httpadapter.NewApp(httpadapter.NewHandler(processor, log), log)

	addr := ":" + strconv.Itoa(cfg.Server.Port)
	go func() {
		log.Info("server listening", zap.String("addr", addr), zap.Int("templates", len(registry.List())))
		if err := app.Listen(addr); err != nil {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Info("shutdown signal received")
	if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}
	log.Info("server exited")
}

func newArtifactStore(ctx context.Context, cfg *config.Config) (usecase.ArtifactStore, error) {
	switch cfg.Storage.Backend {
	case config.StorageS3:
		client, err := infra.NewS3Client(ctx, cfg.Storage.Region)
		if err != nil {
			return nil, err
		}
		return infra.NewS3ArtifactStore(client, cfg.Storage.Bucket, cfg.Storage.Prefix), nil
	default:
		return infra.NewFSArtifactStore(cfg.Storage.Dir), nil
	}
}

func newHostedSource(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool) (usecase.HostedSource, func(), error) {
	if cfg.Hosted.Backend == config.HostedFirestore {
		client, err := repo.NewFirestoreClient(ctx, cfg.Firestore.ProjectID)
		if err != nil {
			return nil, nil, err
		}
		return repo.NewFirestoreHosted(client, cfg.Firestore.Collection), func() { _ = client.Close() }, nil
	}
	return repo.NewHostedRepo(pool), func() {}, nil
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

func newLabelsResolver(cfg *config.Config, client *ai.Client, rc *redis.Client, log *zap.Logger) *usecase.LabelsResolver {
	if client == nil {
		return usecase.NewLabelsResolver(nil, nil, log)
	}
	translator := usecase.NewAITranslator(client)
	var cache usecase.Cache
	if rc != nil {
		cache = infra.NewRedisCache(rc, "onepager:labels:", cfg.AI.LabelsTTL)
	}
	return usecase.NewLabelsResolver(translator, cache, log)
}
