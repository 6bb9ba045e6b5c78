package api

import (
	"context"
	"net/http"
	"net/url"
	"slices"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/DotRPM/dot-image/api/middleware"
	"github.com/DotRPM/dot-image/utils"
)

func corsOption(ctx context.Context, conf Configuration) cors.Config {
	logger := utils.LoggerFromContext(ctx)

	// The UI is embedded in the Shopify admin, so requests come from the
	// admin origin as well as from our own host.
	allowedOrigins := []string{"https://admin.shopify.com"}

	parsedUrl, err := url.Parse(conf.AppHost)
	switch {
	case err != nil:
		logger.Error("Failed to parse the app host for CORS. Requests made from the browser to the API will be rejected.",
			"url", conf.AppHost)
	case !slices.Contains([]string{"http", "https"}, parsedUrl.Scheme):
		logger.Error("The app host does not carry an http or https scheme, so it cannot be used for CORS.",
			"url", conf.AppHost)
	default:
		u := url.URL{
			Scheme: parsedUrl.Scheme,
			Host:   parsedUrl.Host,
		}
		allowedOrigins = append(allowedOrigins, u.String())
	}

	if conf.Env == "development" {
		allowedOrigins = append(allowedOrigins,
			"http://localhost:3000", "http://localhost:5173")
	}

	return cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{
			http.MethodOptions, http.MethodHead, http.MethodGet,
			http.MethodPost, http.MethodDelete,
		},
		AllowHeaders:     []string{"Authorization", "Content-Type", "baggage", "sentry-trace"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
}

func InitRouterMiddlewares(ctx context.Context, conf Configuration) *gin.Engine {
	if conf.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger := utils.LoggerFromContext(ctx)

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	r.Use(cors.New(corsOption(ctx, conf)))
	r.Use(middleware.NewLogging(logger, middleware.WithIgnorePath([]string{"/liveness"})))
	r.Use(utils.StoreLoggerInContextMiddleware(logger))

	return r
}
