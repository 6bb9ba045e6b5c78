package cmd

import (
	"context"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/getsentry/sentry-go"

	"github.com/DotRPM/dot-image/api"
	"github.com/DotRPM/dot-image/infra"
	"github.com/DotRPM/dot-image/repositories"
	"github.com/DotRPM/dot-image/usecases"
	"github.com/DotRPM/dot-image/utils"
)

func RunServer() error {
	apiConfig := api.Configuration{
		Env:            utils.GetEnv("ENV", "development"),
		Port:           utils.GetRequiredEnv[string]("PORT"),
		AppHost:        utils.GetEnv("APP_HOST", ""),
		DefaultTimeout: time.Duration(utils.GetEnv("DEFAULT_TIMEOUT_SECOND", 5)) * time.Second,
	}
	pgConfig := infra.PgConfig{
		ConnectionString:   utils.GetEnv("PG_CONNECTION_STRING", ""),
		Database:           "dot_image",
		Hostname:           utils.GetEnv("PG_HOSTNAME", ""),
		Password:           utils.GetEnv("PG_PASSWORD", ""),
		Port:               utils.GetEnv("PG_PORT", "5432"),
		User:               utils.GetEnv("PG_USER", ""),
		SslMode:            utils.GetEnv("PG_SSL_MODE", "prefer"),
		MaxPoolConnections: utils.GetEnv("PG_MAX_POOL_SIZE", infra.DEFAULT_MAX_CONNECTIONS),
	}
	shopifyConfig := infra.ShopifyConfig{
		ApiKey:     utils.GetEnv("SHOPIFY_API_KEY", ""),
		ApiSecret:  utils.GetRequiredEnv[string]("SHOPIFY_API_SECRET"),
		AdminToken: utils.GetRequiredEnv[string]("SHOPIFY_ADMIN_TOKEN"),
		ApiVersion: utils.GetEnv("SHOPIFY_API_VERSION", "2023-04"),
		AppHost:    apiConfig.AppHost,
		Test:       apiConfig.Env != "production",
	}
	openAiConfig := infra.OpenAiConfig{
		BaseUrl: utils.GetEnv("OPENAI_BASE_URL", repositories.OPENAI_DEFAULT_BASE_URL),
		ApiKey:  utils.GetRequiredEnv[string]("OPENAI_API_KEY"),
	}
	loggingFormat := utils.GetEnv("LOGGING_FORMAT", "text")
	sentryDsn := utils.GetEnv("SENTRY_DSN", "")

	logger := utils.NewLogger(loggingFormat)
	ctx := utils.StoreLoggerInContext(context.Background(), logger)

	if err := shopifyConfig.Validate(); err != nil {
		logger.ErrorContext(ctx, "invalid shopify configuration", "error", err.Error())
		return err
	}

	infra.SetupSentry(sentryDsn, apiConfig.Env)
	defer sentry.Flush(3 * time.Second)

	pool, err := infra.NewPostgresConnectionPool(ctx, pgConfig.GetConnectionString(),
		pgConfig.MaxPoolConnections)
	if err != nil {
		logger.ErrorContext(ctx, "failed to create connection pool", "error", err.Error())
		return err
	}

	repos := repositories.NewRepositories(pool, shopifyConfig, openAiConfig)

	uc := usecases.NewUsecases(repos,
		usecases.WithAppHost(apiConfig.AppHost),
		usecases.WithTestCharges(shopifyConfig.Test),
	)

	auth := api.NewAuthentication(repos.ShopifyJwtRepository)

	router := api.InitRouterMiddlewares(ctx, apiConfig)
	server := api.NewServer(router, apiConfig, uc, auth, shopifyConfig.ApiSecret)

	notify, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.InfoContext(ctx, "starting server", slog.String("port", apiConfig.Port))
		err := server.ListenAndServe()
		if !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorContext(ctx, "error while serving the app", "error", err.Error())
		}
		logger.InfoContext(ctx, "server returned")
	}()

	<-notify.Done()
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.ErrorContext(ctx, "error while shutting down the server", "error", err.Error())
		return err
	}

	return nil
}
