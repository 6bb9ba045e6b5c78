package api

import (
	"context"
	"net/http"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"github.com/DotRPM/dot-image/models"
	"github.com/DotRPM/dot-image/utils"
)

// presentError translates domain errors to HTTP responses. The numeric error
// codes on 402 and 5xx are part of the contract with the embedded UI: 1 means
// the quota is spent, 2 is any other failure.
func presentError(ctx context.Context, c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	switch {
	case errors.Is(err, models.ErrQuotaExceeded):
		c.JSON(http.StatusPaymentRequired, gin.H{"error": 1})
	case errors.Is(err, models.ErrEntitlementCheckFailed):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": 2})
	case errors.Is(err, models.ErrShopNotFound):
		// The row is provisioned on authentication, so its absence is a
		// server fault, not a 404.
		utils.LoggerFromContext(ctx).ErrorContext(ctx, "shop record missing", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": 2})
	case errors.Is(err, models.BadParameterError):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, models.UnAuthorizedError):
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
	case errors.Is(err, models.NotFoundError):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	case errors.Is(err, models.ConflictError):
		c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
	default:
		utils.LoggerFromContext(ctx).ErrorContext(ctx, "unexpected error", "error", err.Error())
		if hub := sentrygin.GetHubFromContext(c); hub != nil {
			hub.CaptureException(err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": 2})
	}
	return true
}
