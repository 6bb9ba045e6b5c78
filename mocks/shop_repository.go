package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/DotRPM/dot-image/models"
	"github.com/DotRPM/dot-image/repositories"
)

type ShopRepository struct {
	mock.Mock
}

func (r *ShopRepository) UpsertShop(ctx context.Context, exec repositories.Executor,
	attributes models.UpsertShopAttributes, newShopId string,
) (models.Shop, error) {
	args := r.Called(exec, attributes, newShopId)
	return args.Get(0).(models.Shop), args.Error(1)
}

func (r *ShopRepository) GetShopByDomain(ctx context.Context, exec repositories.Executor,
	domain string,
) (models.Shop, error) {
	args := r.Called(exec, domain)
	return args.Get(0).(models.Shop), args.Error(1)
}

func (r *ShopRepository) ConsumeCredit(ctx context.Context, exec repositories.Executor,
	domain string,
) (int, bool, error) {
	args := r.Called(exec, domain)
	return args.Int(0), args.Bool(1), args.Error(2)
}

func (r *ShopRepository) RestoreCredit(ctx context.Context, exec repositories.Executor,
	domain string,
) (int, error) {
	args := r.Called(exec, domain)
	return args.Int(0), args.Error(1)
}

func (r *ShopRepository) RecordConsumption(ctx context.Context, exec repositories.Executor,
	domain string,
) (int, error) {
	args := r.Called(exec, domain)
	return args.Int(0), args.Error(1)
}

func (r *ShopRepository) ApplyCharge(ctx context.Context, exec repositories.Executor,
	domain string, chargeId string, credits int,
) (int, bool, error) {
	args := r.Called(exec, domain, chargeId, credits)
	return args.Int(0), args.Bool(1), args.Error(2)
}
