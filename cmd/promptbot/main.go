package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kitbuilder587/prompt-optimizer/internal/config"
	"github.com/kitbuilder587/prompt-optimizer/internal/httpapi"
	"github.com/kitbuilder587/prompt-optimizer/internal/llm"
	"github.com/kitbuilder587/prompt-optimizer/internal/llm/mock"
	"github.com/kitbuilder587/prompt-optimizer/internal/llm/openrouter"
	"github.com/kitbuilder587/prompt-optimizer/internal/metrics"
	"github.com/kitbuilder587/prompt-optimizer/internal/prompt"
	"github.com/kitbuilder587/prompt-optimizer/internal/ratelimit"
	"github.com/kitbuilder587/prompt-optimizer/internal/repository"
	pgRepo "github.com/kitbuilder587/prompt-optimizer/internal/repository/postgres"
	"github.com/kitbuilder587/prompt-optimizer/internal/service"
	"github.com/kitbuilder587/prompt-optimizer/internal/telegram"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("prompt optimizer stopped with error", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("prompt optimizer stopped")
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	client := newLLMClient(cfg, logger)

	users, closeUsers, err := newUserRepository(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeUsers()

	promptSvc := service.NewPromptService(service.PromptServiceDeps{
		LLM: client,
		Templates: prompt.Templates{
			Fast:     cfg.Prompt.FastInstruction,
			Advanced: cfg.Prompt.AdvancedInstruction,
		},
		Logger:         logger,
		Metrics:        m,
		Provider:       cfg.LLM.Provider,
		MaxInputLength: cfg.Prompt.MaxInputLength,
	})
	userSvc := service.NewUserService(users, logger)

	limiter := ratelimit.New(ratelimit.Config{RequestsPerMinute: cfg.RateLimit.RequestsPerMinute})

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		limiter.Run(ctx, 5*time.Minute)
		return nil
	})

	if cfg.HTTP.Addr != "" {
		srv := httpapi.New(httpapi.Config{
			Addr:         cfg.HTTP.Addr,
			WriteTimeout: cfg.LLM.Timeout + 30*time.Second,
		}, httpapi.Deps{
			Prompts:     promptSvc,
			RateLimiter: limiter,
			Logger:      logger.Named("http"),
			Metrics:     m,
			Gatherer:    reg,
			MaxInput:    cfg.Prompt.MaxInputLength,
		})
		g.Go(func() error {
			logger.Info("http api listening", zap.String("addr", cfg.HTTP.Addr))
			return ignoreCanceled(srv.Run(ctx))
		})
	}

	if cfg.Telegram.Enabled() {
		bot, err := telegram.New(telegram.BotConfig{
			Token:          cfg.Telegram.Token,
			Debug:          cfg.Telegram.Debug,
			DefaultMode:    cfg.Mode(),
			MaxInputLength: cfg.Prompt.MaxInputLength,
		}, userSvc, promptSvc, limiter, logger.Named("telegram"), m)
		if err != nil {
			return err
		}
		g.Go(func() error {
			return ignoreCanceled(bot.Run(ctx))
		})
	}

	logger.Info("prompt optimizer started",
		zap.String("provider", cfg.LLM.Provider),
		zap.String("default_mode", cfg.DefaultMode),
		zap.Bool("http", cfg.HTTP.Addr != ""),
		zap.Bool("telegram", cfg.Telegram.Enabled()),
	)

	return g.Wait()
}

func newLLMClient(cfg *config.Config, logger *zap.Logger) llm.Client {
	if cfg.LLM.Provider == config.ProviderMock {
		logger.Warn("using mock LLM provider")
		return mock.New()
	}

	client := openrouter.New(openrouter.Config{
		APIKey:  cfg.LLM.OpenRouter.APIKey,
		Model:   cfg.LLM.OpenRouter.Model,
		BaseURL: cfg.LLM.OpenRouter.BaseURL,
		Timeout: cfg.LLM.Timeout,
		Referer: cfg.LLM.OpenRouter.Referer,
		Title:   cfg.LLM.OpenRouter.Title,
	}, logger.Named("openrouter"))

	if !client.Configured() {
		logger.Warn("OPENROUTER_API_KEY is not set, every generation will fail with a configuration error")
	}
	logger.Info("llm client ready", zap.String("model", client.Model()))
	return client
}

// newUserRepository picks postgres when DATABASE_URL is set and memory otherwise.
func newUserRepository(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.UserRepository, func(), error) {
	if cfg.Database.URL == "" {
		logger.Info("DATABASE_URL not set, keeping users in memory")
		return repository.NewMemoryUserRepository(), func() {}, nil
	}

	db, err := pgRepo.New(ctx, cfg.Database.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}
	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("migrate database: %w", err)
	}

	logger.Info("connected to database")
	return pgRepo.NewUserRepo(db), db.Close, nil
}

func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
