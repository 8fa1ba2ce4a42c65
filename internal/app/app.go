package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"petchat/internal/config"
	"petchat/internal/logger"
	"petchat/internal/model"
	"petchat/internal/repository"
	"petchat/internal/service"

	"github.com/redis/go-redis/v9"
)

// App holds the wired chat pipeline shared by the server and the CLI
type App struct {
	Config    *config.Config
	Log       *logger.Logger
	Catalog   *model.Catalog
	Chat      *service.ChatService
	Generator *service.GuardedGenerator // nil in canned mode

	closers []func() error
}

// New loads the catalog and builds every service. Catalog and context store
// failures degrade instead of aborting.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	a := &App{Config: cfg, Log: log}

	var (
		products repository.ProductStore
		sqlStore *repository.SQLProductStore
	)
	if cfg.Catalog.ProductSource != config.ProductSourceJSON {
		store, err := OpenProductStore(cfg)
		if err != nil {
			log.Error("failed to open product store, using training file products", "source", cfg.Catalog.ProductSource, "error", err)
		} else {
			a.closers = append(a.closers, store.Close)
			products = store
			sqlStore = store
		}
	}
	a.Catalog = repository.NewCatalogLoader(cfg.Catalog.TrainingFile, products, log).Load(ctx)

	store := a.openContextStore(ctx)

	var generator service.Generator
	if cfg.Generator.Mode == config.GeneratorModeGenerate {
		a.Generator = NewGenerator(cfg, log)
		generator = a.Generator
		log.Info("generator enabled",
			"api_base", cfg.Generator.APIBase,
			"model", cfg.Generator.ChatModel,
			"max_new_tokens", cfg.Generator.MaxNewTokens,
		)
	} else {
		log.Info("generator disabled, care and delivery replies are canned")
	}

	extractor := service.NewAttributeExtractor()
	picker := service.NewPicker(cfg.Responses.Seed)
	matcher := service.NewIntentMatcher(a.Catalog, extractor, picker, log)
	composer := service.NewResponseComposer(a.Catalog, matcher, extractor, picker, generator, service.ComposerOptions{
		Mode: cfg.Generator.Mode,
		Params: service.GenerationParams{
			MaxNewTokens: cfg.Generator.MaxNewTokens,
			Truncation:   cfg.Generator.Truncation,
		},
	}, log)
	a.Chat = service.NewChatService(a.Catalog, composer, store, log)
	if sqlStore != nil {
		a.Chat.WithProductLookup(sqlStore)
	}

	return a, nil
}

// Close releases database and Redis connections
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// OpenProductStore opens the SQL store named by CATALOG_PRODUCT_SOURCE
func OpenProductStore(cfg *config.Config) (*repository.SQLProductStore, error) {
	switch cfg.Catalog.ProductSource {
	case config.ProductSourceSQLite:
		return repository.NewSQLiteStore(cfg.Catalog.SQLitePath)
	case config.ProductSourcePostgres:
		return repository.NewPostgresStore(
			cfg.GetPostgreSQLDSN(),
			cfg.PostgreSQL.MaxConnections,
			cfg.PostgreSQL.MaxIdleConnections,
		)
	default:
		return nil, fmt.Errorf("product source %q has no SQL store", cfg.Catalog.ProductSource)
	}
}

// NewGenerator builds the guarded, refreshable OpenAI-compatible generator
func NewGenerator(cfg *config.Config, log *logger.Logger) *service.GuardedGenerator {
	handle := service.NewModelHandle(
		service.OpenAIFactory(&cfg.Generator, log),
		cfg.Generator.RefreshInterval,
		nil,
		log,
	)
	return service.NewGuardedGenerator(handle, &cfg.Generator, log)
}

func (a *App) openContextStore(ctx context.Context) service.ContextStore {
	cfg := a.Config
	memory := service.NewMemoryContextStore(cfg.Context.WindowSize, cfg.Context.TTL).
		WithMaxSessions(cfg.Context.MaxSessions)
	if cfg.Context.Store != config.ContextStoreRedis {
		return memory
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		a.Log.Warn("redis unavailable, keeping context in memory", "addr", cfg.Redis.Addr, "error", err)
		return memory
	}

	a.closers = append(a.closers, client.Close)
	a.Log.Info("context store connected", "store", "redis", "addr", cfg.Redis.Addr)
	return service.NewRedisContextStore(client, cfg.Redis.Prefix, cfg.Context.WindowSize, cfg.Context.TTL)
}
