package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/DotRPM/dot-image/models"
)

type ShopifyBillingRepository struct {
	mock.Mock
}

func (r *ShopifyBillingRepository) ActiveSubscriptions(ctx context.Context,
	shopDomain string,
) ([]models.Subscription, error) {
	args := r.Called(shopDomain)
	return args.Get(0).([]models.Subscription), args.Error(1)
}

func (r *ShopifyBillingRepository) CreateRecurringCharge(ctx context.Context,
	shopDomain string, charge models.ChargeRequest,
) (string, error) {
	args := r.Called(shopDomain, charge)
	return args.String(0), args.Error(1)
}

func (r *ShopifyBillingRepository) CreateOneTimeCharge(ctx context.Context,
	shopDomain string, charge models.ChargeRequest,
) (string, error) {
	args := r.Called(shopDomain, charge)
	return args.String(0), args.Error(1)
}

func (r *ShopifyBillingRepository) GetOneTimeCharge(ctx context.Context,
	shopDomain string, chargeId string,
) (models.OneTimeCharge, error) {
	args := r.Called(shopDomain, chargeId)
	return args.Get(0).(models.OneTimeCharge), args.Error(1)
}

func (r *ShopifyBillingRepository) CancelSubscription(ctx context.Context,
	shopDomain string, subscriptionId string,
) error {
	args := r.Called(shopDomain, subscriptionId)
	return args.Error(0)
}
