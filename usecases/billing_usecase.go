package usecases

import (
	"context"
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/DotRPM/dot-image/models"
	"github.com/DotRPM/dot-image/repositories"
	"github.com/DotRPM/dot-image/usecases/executor_factory"
)

// proPlanAmountCents is the monthly price of the unmetered plan.
const proPlanAmountCents = 600

type billingLedgerRepository interface {
	GetShopByDomain(ctx context.Context, exec repositories.Executor, domain string) (models.Shop, error)
	ConsumeCredit(ctx context.Context, exec repositories.Executor, domain string) (int, bool, error)
	RestoreCredit(ctx context.Context, exec repositories.Executor, domain string) (int, error)
	RecordConsumption(ctx context.Context, exec repositories.Executor, domain string) (int, error)
	ApplyCharge(ctx context.Context, exec repositories.Executor, domain string,
		chargeId string, credits int) (int, bool, error)
}

type billingProviderRepository interface {
	ActiveSubscriptions(ctx context.Context, shopDomain string) ([]models.Subscription, error)
	CreateRecurringCharge(ctx context.Context, shopDomain string, charge models.ChargeRequest) (string, error)
	CreateOneTimeCharge(ctx context.Context, shopDomain string, charge models.ChargeRequest) (string, error)
	GetOneTimeCharge(ctx context.Context, shopDomain string, chargeId string) (models.OneTimeCharge, error)
	CancelSubscription(ctx context.Context, shopDomain string, subscriptionId string) error
}

// BillingUseCase is both the entitlement gate and the payment reconciler. The
// credit ledger lives in our database; subscriptions live on the billing
// provider and are read live, never persisted.
type BillingUseCase struct {
	executorFactory   executor_factory.ExecutorFactory
	shopRepository    billingLedgerRepository
	billingRepository billingProviderRepository
	appHost           string
	testCharges       bool
}

// CanConsume answers whether the shop may consume one more unit, without
// consuming anything. A positive credit balance decides locally; only an
// exhausted balance consults the provider's subscription list. A provider
// failure at that point is surfaced as ErrEntitlementCheckFailed, distinct
// from a firm denial.
func (uc BillingUseCase) CanConsume(ctx context.Context, domain string) (models.EntitlementDecision, error) {
	shop, err := uc.shopRepository.GetShopByDomain(ctx, uc.executorFactory.NewExecutor(), domain)
	if err != nil {
		return models.EntitlementDecision{}, err
	}
	if shop.Credits > 0 {
		return models.EntitlementDecision{
			Allowed: true,
			Reason:  models.EntitlementReasonCreditBalance,
		}, nil
	}

	subscriptions, err := uc.billingRepository.ActiveSubscriptions(ctx, domain)
	if err != nil {
		return models.EntitlementDecision{}, errors.Wrap(models.ErrEntitlementCheckFailed, err.Error())
	}
	for _, subscription := range subscriptions {
		if subscription.IsActivePro() {
			return models.EntitlementDecision{
				Allowed: true,
				Reason:  models.EntitlementReasonActiveSubscription,
			}, nil
		}
	}

	return models.EntitlementDecision{
		Allowed: false,
		Reason:  models.EntitlementReasonQuotaExceeded,
	}, nil
}

// ReserveCredit atomically takes one credit off the balance and returns the
// remainder. The decrement is conditional on a positive balance, in a single
// statement, so two concurrent reservations of the last credit admit exactly
// one winner.
func (uc BillingUseCase) ReserveCredit(ctx context.Context, domain string) (int, error) {
	exec := uc.executorFactory.NewExecutor()

	remaining, ok, err := uc.shopRepository.ConsumeCredit(ctx, exec, domain)
	if err != nil {
		return 0, err
	}
	if !ok {
		// The guarded update matches neither a missing shop nor an empty
		// balance; a read tells the two apart.
		if _, err := uc.shopRepository.GetShopByDomain(ctx, exec, domain); err != nil {
			return 0, err
		}
		return 0, errors.Wrapf(models.ErrQuotaExceeded, "shop %s has no credit left", domain)
	}
	return remaining, nil
}

// ReleaseCredit undoes a reservation whose paid downstream call failed.
func (uc BillingUseCase) ReleaseCredit(ctx context.Context, domain string) (int, error) {
	return uc.shopRepository.RestoreCredit(ctx, uc.executorFactory.NewExecutor(), domain)
}

// RecordConsumption bumps the lifetime usage counter after a successful
// generation.
func (uc BillingUseCase) RecordConsumption(ctx context.Context, domain string) (int, error) {
	return uc.shopRepository.RecordConsumption(ctx, uc.executorFactory.NewExecutor(), domain)
}

// ApplyCharge reconciles a settled one-time charge into the ledger. Replays of
// a charge id already recorded come back with Applied false and the balance
// unchanged; crediting and recording the id happen in one atomic statement so
// no retry can double-credit.
func (uc BillingUseCase) ApplyCharge(ctx context.Context, domain string,
	chargeId string, amountCents int,
) (models.ChargeApplication, error) {
	credits := models.CreditsForAmount(amountCents)
	if credits <= 0 {
		return models.ChargeApplication{}, errors.Wrapf(models.ErrInvalidChargeAmount,
			"amount %d cents grants no credit", amountCents)
	}

	exec := uc.executorFactory.NewExecutor()

	balance, applied, err := uc.shopRepository.ApplyCharge(ctx, exec, domain, chargeId, credits)
	if err != nil {
		return models.ChargeApplication{}, err
	}
	if !applied {
		shop, err := uc.shopRepository.GetShopByDomain(ctx, exec, domain)
		if err != nil {
			return models.ChargeApplication{}, err
		}
		return models.ChargeApplication{Applied: false, Balance: shop.Credits}, nil
	}
	return models.ChargeApplication{Applied: true, Balance: balance}, nil
}

// ActivateCharge completes the purchase flow the provider redirects back to:
// it fetches the charge from the provider, then reconciles it. The provider is
// the source of truth for the amount; the redirect only carries the id.
func (uc BillingUseCase) ActivateCharge(ctx context.Context, domain string,
	chargeId string,
) (models.ChargeApplication, error) {
	charge, err := uc.billingRepository.GetOneTimeCharge(ctx, domain, chargeId)
	if err != nil {
		return models.ChargeApplication{}, err
	}
	return uc.ApplyCharge(ctx, domain, chargeId, charge.AmountCents)
}

// CurrentPlan returns the active subscription when one exists, otherwise the
// shop's consumption snapshot.
func (uc BillingUseCase) CurrentPlan(ctx context.Context, domain string) (models.PlanStatus, error) {
	shop, err := uc.shopRepository.GetShopByDomain(ctx, uc.executorFactory.NewExecutor(), domain)
	if err != nil {
		return models.PlanStatus{}, err
	}

	status := models.PlanStatus{
		Credits: shop.Credits,
		Usage:   shop.Usage,
	}

	subscriptions, err := uc.billingRepository.ActiveSubscriptions(ctx, domain)
	if err != nil {
		return models.PlanStatus{}, errors.Wrap(err, "listing active subscriptions")
	}
	for _, subscription := range subscriptions {
		if subscription.IsActivePro() {
			status.Subscription = &subscription
			break
		}
	}
	return status, nil
}

// StartProPlan asks the provider for a recurring charge and returns the URL
// the merchant must visit to confirm it. Nothing is persisted locally: once
// confirmed, the subscription shows up in the provider's live list.
func (uc BillingUseCase) StartProPlan(ctx context.Context, domain string) (string, error) {
	return uc.billingRepository.CreateRecurringCharge(ctx, domain, models.ChargeRequest{
		Name:        models.ProPlanName,
		AmountCents: proPlanAmountCents,
		Currency:    "USD",
		Interval:    "EVERY_30_DAYS",
		ReturnUrl:   fmt.Sprintf("%s/?shop=%s", uc.appHost, domain),
		Test:        uc.testCharges,
	})
}

// BuyCredits asks the provider for a one-time charge priced at the credit
// rate and returns the confirmation URL. The credits are granted only when
// the settled charge is reconciled through ActivateCharge.
func (uc BillingUseCase) BuyCredits(ctx context.Context, domain string, credits int) (string, error) {
	if credits <= 0 {
		return "", errors.Wrapf(models.BadParameterError, "can't buy %d credits", credits)
	}
	return uc.billingRepository.CreateOneTimeCharge(ctx, domain, models.ChargeRequest{
		Name:        fmt.Sprintf("%d credits", credits),
		AmountCents: credits * models.CreditRateCents / 100,
		Currency:    "USD",
		ReturnUrl:   fmt.Sprintf("%s/plans?shop=%s", uc.appHost, domain),
		Test:        uc.testCharges,
	})
}

// TerminatePlan cancels the shop's active subscription on the provider.
func (uc BillingUseCase) TerminatePlan(ctx context.Context, domain string) error {
	subscriptions, err := uc.billingRepository.ActiveSubscriptions(ctx, domain)
	if err != nil {
		return errors.Wrap(err, "listing active subscriptions")
	}
	for _, subscription := range subscriptions {
		if subscription.IsActivePro() {
			return uc.billingRepository.CancelSubscription(ctx, domain, subscription.Id)
		}
	}
	return errors.Wrapf(models.NotFoundError, "shop %s has no active subscription", domain)
}
