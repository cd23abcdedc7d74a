package bootstrap

import (
	"context"
	"fmt"
	"log"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"github.com/Lauramora262/agente-onboarding-b-one/internal/ai"
	appsvc "github.com/Lauramora262/agente-onboarding-b-one/internal/app"
	"github.com/Lauramora262/agente-onboarding-b-one/internal/auth"
	"github.com/Lauramora262/agente-onboarding-b-one/internal/cache"
	"github.com/Lauramora262/agente-onboarding-b-one/internal/config"
	driveClient "github.com/Lauramora262/agente-onboarding-b-one/internal/platform/drive"
	redisClient "github.com/Lauramora262/agente-onboarding-b-one/internal/platform/redis"
	"github.com/Lauramora262/agente-onboarding-b-one/internal/unanswered"
)

type App struct {
	Config     *config.Config
	Redis      *redisv9.Client // nil when the redis tier is disabled
	ContextSvc *appsvc.ContextService
	QA         *appsvc.QAService

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	redisCli, err := redisClient.New(ctx, cfg.Redis)
	if err != nil {
		return nil, err
	}

	contextCache := cache.NewContextCache(redisCli, time.Duration(cfg.Redis.ContextTTLSeconds)*time.Second)

	// Credentials are resolved eagerly. A failure halts the session but not
	// the process: the page stays up and reports the error.
	var exporter appsvc.DocumentExporter
	var authErr error
	strategy, err := auth.FromConfig(cfg)
	if err != nil {
		authErr = err
	} else {
		httpClient, err := strategy.Client(ctx)
		if err != nil {
			authErr = fmt.Errorf("strategy %s: %w", strategy.Name(), err)
		} else {
			drv, err := driveClient.New(ctx, httpClient)
			if err != nil {
				authErr = err
			} else {
				exporter = drv
			}
		}
	}

	contextSvc := appsvc.NewContextService(exporter, contextCache, cfg.DocumentIDs())
	qa := appsvc.NewQAService(
		contextSvc,
		ai.NewGeminiClient(),
		ai.GenerateConfig{
			BaseURL: cfg.LLM.BaseURL,
			APIKey:  cfg.LLM.APIKey,
			Model:   cfg.LLM.Model,
		},
		cfg.Assistant.Persona,
		cfg.Assistant.FallbackPhrase,
		unanswered.NewLog(cfg.Assistant.UnansweredLog),
	)
	if authErr != nil {
		qa.FailSession(authErr)
		log.Printf("credential acquisition failed, session halted: %v", authErr)
	}

	return &App{
		Config:     cfg,
		Redis:      redisCli,
		ContextSvc: contextSvc,
		QA:         qa,
		StartedAt:  time.Now(),
	}, nil
}

func (a *App) Close() error {
	if a.Redis != nil {
		return a.Redis.Close()
	}
	return nil
}
