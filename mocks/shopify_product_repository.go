package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/DotRPM/dot-image/models"
)

type ShopifyProductRepository struct {
	mock.Mock
}

func (r *ShopifyProductRepository) ListProducts(ctx context.Context,
	shopDomain string, limit int,
) ([]models.Product, error) {
	args := r.Called(shopDomain, limit)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (r *ShopifyProductRepository) AttachImage(ctx context.Context,
	shopDomain string, attachment models.ProductImageAttachment,
) error {
	args := r.Called(shopDomain, attachment)
	return args.Error(0)
}
