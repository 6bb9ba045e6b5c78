package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/DotRPM/dot-image/models"
)

type ShopifyShopRepository struct {
	mock.Mock
}

func (r *ShopifyShopRepository) GetShopDetails(ctx context.Context,
	shopDomain string,
) (models.ShopDetails, error) {
	args := r.Called(shopDomain)
	return args.Get(0).(models.ShopDetails), args.Error(1)
}
