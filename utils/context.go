package utils

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/DotRPM/dot-image/models"
)

type ContextKey int

const (
	ContextKeyLogger ContextKey = iota
	ContextKeyCredentials
)

func StoreLoggerInContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ContextKeyLogger, logger)
}

// LoggerFromContext returns the request-scoped logger, falling back to the
// default logger so call sites never get a nil.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	logger, found := ctx.Value(ContextKeyLogger).(*slog.Logger)
	if !found {
		return slog.Default()
	}
	return logger
}

func StoreLoggerInContextMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(
			StoreLoggerInContext(c.Request.Context(), logger))
	}
}

func StoreCredentialsInContext(ctx context.Context, creds models.Credentials) context.Context {
	return context.WithValue(ctx, ContextKeyCredentials, creds)
}

func CredentialsFromCtx(ctx context.Context) models.Credentials {
	creds, _ := ctx.Value(ContextKeyCredentials).(models.Credentials)
	return creds
}

// ShopDomainFromContext returns the authenticated shop domain, or an
// UnAuthorizedError when the request carries no session.
func ShopDomainFromContext(ctx context.Context) (string, error) {
	creds := CredentialsFromCtx(ctx)
	if creds.ShopDomain == "" {
		return "", models.UnAuthorizedError
	}
	return creds.ShopDomain, nil
}
