package usecases

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/guregu/null/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/DotRPM/dot-image/mocks"
	"github.com/DotRPM/dot-image/models"
	"github.com/DotRPM/dot-image/usecases/executor_factory"
)

func TestShopUsecaseEnsureShop(t *testing.T) {
	factory := executor_factory.NewExecutorFactoryStub()
	exec := factory.NewExecutor()
	domain := "test-store.myshopify.com"

	details := models.ShopDetails{
		Name:  "Test Store",
		Email: null.StringFrom("owner@example.com"),
	}
	attrs := models.UpsertShopAttributes{
		Domain: domain,
		Name:   details.Name,
		Email:  details.Email,
	}
	shop := models.Shop{
		Id:      "63e14eaf-37d8-4a50-9e3b-1a9f6ded7b45",
		Domain:  domain,
		Name:    details.Name,
		Email:   details.Email,
		Credits: models.FreeCredits,
	}

	shopifyShop := new(mocks.ShopifyShopRepository)
	shopifyShop.On("GetShopDetails", domain).Return(details, nil)
	repo := new(mocks.ShopRepository)
	repo.On("UpsertShop", exec, attrs, mock.AnythingOfType("string")).Return(shop, nil)

	uc := ShopUseCase{executorFactory: factory, shopRepository: repo, shopifyShop: shopifyShop}

	got, err := uc.EnsureShop(context.Background(), domain)
	assert.NoError(t, err)
	assert.Equal(t, shop, got)
	repo.AssertExpectations(t)
	shopifyShop.AssertExpectations(t)
}

func TestShopUsecaseEnsureShopToleratesDetailsFetchFailure(t *testing.T) {
	factory := executor_factory.NewExecutorFactoryStub()
	exec := factory.NewExecutor()
	domain := "test-store.myshopify.com"

	shopifyShop := new(mocks.ShopifyShopRepository)
	shopifyShop.On("GetShopDetails", domain).
		Return(models.ShopDetails{}, errors.New("shopify API returned status 503"))
	repo := new(mocks.ShopRepository)
	repo.On("UpsertShop", exec, models.UpsertShopAttributes{Domain: domain},
		mock.AnythingOfType("string")).
		Return(models.Shop{Domain: domain, Credits: models.FreeCredits}, nil)

	uc := ShopUseCase{executorFactory: factory, shopRepository: repo, shopifyShop: shopifyShop}

	shop, err := uc.EnsureShop(context.Background(), domain)
	assert.NoError(t, err)
	assert.Equal(t, models.FreeCredits, shop.Credits)
	repo.AssertExpectations(t)
	shopifyShop.AssertExpectations(t)
}

func TestShopUsecaseGetCredits(t *testing.T) {
	factory := executor_factory.NewExecutorFactoryStub()
	exec := factory.NewExecutor()
	domain := "test-store.myshopify.com"

	repo := new(mocks.ShopRepository)
	repo.On("GetShopByDomain", exec, domain).
		Return(models.Shop{Domain: domain, Credits: 17}, nil)

	uc := ShopUseCase{executorFactory: factory, shopRepository: repo}

	credits, err := uc.GetCredits(context.Background(), domain)
	assert.NoError(t, err)
	assert.Equal(t, 17, credits)
	repo.AssertExpectations(t)
}
