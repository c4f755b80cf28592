package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"artify/internal/adapter/repo"
	"artify/internal/fulfillment"
	"artify/internal/http/handlers"
	"artify/internal/http/httpapi"
	"artify/internal/infra"
	"artify/internal/notify"
	"artify/internal/providers/style"
	"artify/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	runner := infra.NewSQLRunner(dbpool, logger)
	orders := repo.NewOrderRepository(runner)
	resultImages := repo.NewResultImageRepository(runner)
	sourceImages := repo.NewSourceImageRepository(runner)

	files, err := storage.NewFileStore(cfg.StoragePath)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.StoragePath).Msg("failed to open storage")
	}

	results := storage.NewResultStore(storage.ResultStoreOptions{
		Images:        resultImages,
		Files:         files,
		Logger:        &logger,
		PublicBaseURL: cfg.PublicBaseURL,
	})

	primary, fallback := buildProviders(cfg, &logger)

	var notifier notify.Notifier
	if cfg.ResendAPIKey != "" {
		notifier = notify.NewEmailNotifier(notify.EmailOptions{
			APIKey:    cfg.ResendAPIKey,
			FromEmail: cfg.FromEmail,
			FromName:  cfg.FromName,
			Logger:    &logger,
		})
	} else {
		logger.Warn().Msg("RESEND_API_KEY not set, customer emails disabled")
		notifier = notify.NopNotifier{}
	}

	service := fulfillment.NewService(fulfillment.Options{
		Orders:   orders,
		Sources:  repo.NewSourceResolver(sourceImages, cfg.PublicBaseURL),
		Results:  results,
		Notifier: notifier,
		Lock:     fulfillment.NewOrderLock(dbpool, &logger),
		Primary:  primary,
		Fallback: fallback,
		Config: fulfillment.Config{
			UnitAttempts:  cfg.UnitAttempts,
			UnitRetryWait: cfg.UnitRetryWait,
			UnitPacing:    cfg.UnitPacing,
			PublicBaseURL: cfg.PublicBaseURL,
		},
		Logger: &logger,
	})

	go fulfillment.NewSupervisor(service, cfg.SupervisorInterval).Run(ctx)
	go fulfillment.NewJanitor(orders, resultImages,
		time.Duration(cfg.OrderTTLDays)*24*time.Hour,
		time.Duration(cfg.ResultImageTTLDays)*24*time.Hour,
		&logger).Run(ctx)

	app := &handlers.App{
		Orders:       orders,
		ResultImages: resultImages,
		SourceImages: sourceImages,
		Fulfillment:  service,
		Notifier:     notifier,
		Files:        files,
		Config:       cfg,
		Logger:       &logger,
	}
	router := httpapi.NewRouter(app, logger)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && err != os.ErrClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}

// buildProviders picks the primary generator from STYLE_PROVIDER and, when
// the primary is OpenAI and a Replicate token is present, keeps Replicate
// around as the per-unit fallback.
func buildProviders(cfg *infra.Config, logger *infra.Logger) (style.Generator, style.Generator) {
	newReplicate := func() style.Generator {
		c, err := style.NewReplicateClient(style.ReplicateOptions{
			APIToken:          cfg.ReplicateAPIToken,
			BaseURL:           cfg.ReplicateBaseURL,
			Logger:            logger,
			RequestTimeout:    cfg.APITimeout,
			PollInterval:      cfg.PollInterval,
			PollTimeout:       cfg.PollTimeout,
			RateLimitRetries:  cfg.RateLimitRetries,
			RateLimitBaseWait: cfg.RateLimitBaseWait,
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("replicate client")
		}
		return c
	}

	if cfg.StyleProvider == "replicate" {
		return newReplicate(), nil
	}

	openai, err := style.NewOpenAIClient(style.OpenAIOptions{
		APIKey:            cfg.OpenAIAPIKey,
		BaseURL:           cfg.OpenAIBaseURL,
		Model:             cfg.OpenAIModel,
		Quality:           cfg.OpenAIQuality,
		Logger:            logger,
		RequestTimeout:    cfg.APITimeout,
		RateLimitRetries:  cfg.RateLimitRetries,
		RateLimitBaseWait: cfg.RateLimitBaseWait,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("openai client")
	}
	if cfg.ReplicateAPIToken != "" {
		return openai, newReplicate()
	}
	return openai, nil
}
