package usecases

import (
	"context"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/cockroachdb/errors"

	"github.com/DotRPM/dot-image/models"
	"github.com/DotRPM/dot-image/utils"
)

type entitlementGate interface {
	CanConsume(ctx context.Context, domain string) (models.EntitlementDecision, error)
	ReserveCredit(ctx context.Context, domain string) (int, error)
	ReleaseCredit(ctx context.Context, domain string) (int, error)
	RecordConsumption(ctx context.Context, domain string) (int, error)
}

type imageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (models.GeneratedImage, error)
}

// GenerationUseCase runs the metered operation: gate, reserve, call the image
// provider, then commit or roll back the reservation.
type GenerationUseCase struct {
	billing        entitlementGate
	imageGenerator imageGenerator
}

// GenerateProductImage produces one image for the shop. Credit-backed shops
// pay one credit per image: the credit is reserved up front and given back if
// the provider call ultimately fails, so a failed generation costs nothing.
// Shops running on an active subscription generate without touching the
// ledger.
func (uc GenerationUseCase) GenerateProductImage(ctx context.Context, domain string,
	prompt string,
) (models.GeneratedImage, error) {
	logger := utils.LoggerFromContext(ctx)

	decision, err := uc.billing.CanConsume(ctx, domain)
	if err != nil {
		return models.GeneratedImage{}, err
	}
	if !decision.Allowed {
		return models.GeneratedImage{}, errors.Wrapf(models.ErrQuotaExceeded,
			"shop %s is out of credits", domain)
	}

	metered := decision.Reason == models.EntitlementReasonCreditBalance
	if metered {
		if _, err := uc.billing.ReserveCredit(ctx, domain); err != nil {
			if !errors.Is(err, models.ErrQuotaExceeded) {
				return models.GeneratedImage{}, err
			}
			// Lost the last credit to a concurrent request; an active
			// subscription still covers the generation unmetered.
			recheck, recheckErr := uc.billing.CanConsume(ctx, domain)
			if recheckErr != nil {
				return models.GeneratedImage{}, recheckErr
			}
			if recheck.Reason != models.EntitlementReasonActiveSubscription {
				return models.GeneratedImage{}, err
			}
			metered = false
		}
	}

	image, err := uc.generateWithRetry(ctx, prompt)
	if err != nil {
		if metered {
			if _, releaseErr := uc.billing.ReleaseCredit(ctx, domain); releaseErr != nil {
				logger.ErrorContext(ctx, "failed to release reserved credit",
					"shop", domain, "error", releaseErr.Error())
			}
		}
		return models.GeneratedImage{}, errors.Wrap(err, "image generation failed")
	}

	if metered {
		if _, err := uc.billing.RecordConsumption(ctx, domain); err != nil {
			// The image was produced and the credit consumed; a stale usage
			// counter is not worth failing the request over.
			logger.ErrorContext(ctx, "failed to record consumption",
				"shop", domain, "error", err.Error())
		}
	}
	return image, nil
}

func (uc GenerationUseCase) generateWithRetry(ctx context.Context, prompt string) (models.GeneratedImage, error) {
	var image models.GeneratedImage
	err := retry.Do(
		func() error {
			var err error
			image, err = uc.imageGenerator.GenerateImage(ctx, prompt)
			return err
		},
		retry.Attempts(3),
		retry.LastErrorOnly(true),
		retry.Delay(200*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.Context(ctx),
	)
	return image, err
}
