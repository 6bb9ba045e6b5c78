package api

import (
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"github.com/DotRPM/dot-image/dto"
	"github.com/DotRPM/dot-image/models"
	"github.com/DotRPM/dot-image/usecases"
)

func handleGetPlan(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		domain, err := shopDomain(c)
		if presentError(ctx, c, err) {
			return
		}

		usecase := uc.NewBillingUseCase()
		status, err := usecase.CurrentPlan(ctx, domain)
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{"plan": dto.AdaptPlanStatusDto(status)})
	}
}

func handleStartPlan(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		domain, err := shopDomain(c)
		if presentError(ctx, c, err) {
			return
		}

		usecase := uc.NewBillingUseCase()
		confirmationUrl, err := usecase.StartProPlan(ctx, domain)
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{"confirmation_url": confirmationUrl})
	}
}

func handleBuyCredits(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		domain, err := shopDomain(c)
		if presentError(ctx, c, err) {
			return
		}

		var body dto.BuyCreditsBody
		if err := c.ShouldBindJSON(&body); err != nil {
			presentError(ctx, c, errors.Wrap(models.BadParameterError, err.Error()))
			return
		}

		usecase := uc.NewBillingUseCase()
		confirmationUrl, err := usecase.BuyCredits(ctx, domain, body.Credits)
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{"confirmation_url": confirmationUrl})
	}
}

// handleActivateCharge reconciles a settled one-time charge after the billing
// provider redirects the merchant back into the app. Safe to call any number
// of times with the same charge id.
func handleActivateCharge(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		domain, err := shopDomain(c)
		if presentError(ctx, c, err) {
			return
		}

		chargeId := c.Param("charge_id")
		if chargeId == "" {
			presentError(ctx, c, errors.Wrap(models.BadParameterError, "missing charge id"))
			return
		}

		usecase := uc.NewBillingUseCase()
		application, err := usecase.ActivateCharge(ctx, domain, chargeId)
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, dto.AdaptChargeApplicationDto(application))
	}
}

func handleTerminatePlan(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		domain, err := shopDomain(c)
		if presentError(ctx, c, err) {
			return
		}

		usecase := uc.NewBillingUseCase()
		if err := usecase.TerminatePlan(ctx, domain); presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{"terminated": true})
	}
}
