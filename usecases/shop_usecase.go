package usecases

import (
	"context"

	"github.com/google/uuid"

	"github.com/DotRPM/dot-image/models"
	"github.com/DotRPM/dot-image/repositories"
	"github.com/DotRPM/dot-image/usecases/executor_factory"
	"github.com/DotRPM/dot-image/utils"
)

type shopRepository interface {
	UpsertShop(ctx context.Context, exec repositories.Executor,
		attributes models.UpsertShopAttributes, newShopId string) (models.Shop, error)
	GetShopByDomain(ctx context.Context, exec repositories.Executor, domain string) (models.Shop, error)
}

type shopDetailsRepository interface {
	GetShopDetails(ctx context.Context, shopDomain string) (models.ShopDetails, error)
}

type ShopUseCase struct {
	executorFactory executor_factory.ExecutorFactory
	shopRepository  shopRepository
	shopifyShop     shopDetailsRepository
}

// EnsureShop creates the shop row on first sight of a domain, granting the
// free credit allowance through the schema default. Subsequent calls refresh
// the stored name and email from the provider without touching the balance;
// a failed details lookup never blocks loading the app.
func (uc ShopUseCase) EnsureShop(ctx context.Context, domain string) (models.Shop, error) {
	attrs := models.UpsertShopAttributes{Domain: domain}

	details, err := uc.shopifyShop.GetShopDetails(ctx, domain)
	if err != nil {
		utils.LoggerFromContext(ctx).WarnContext(ctx, "could not fetch shop details",
			"shop", domain, "error", err.Error())
	} else {
		attrs.Name = details.Name
		attrs.Email = details.Email
	}

	return uc.shopRepository.UpsertShop(ctx, uc.executorFactory.NewExecutor(), attrs, uuid.NewString())
}

func (uc ShopUseCase) GetShop(ctx context.Context, domain string) (models.Shop, error) {
	return uc.shopRepository.GetShopByDomain(ctx, uc.executorFactory.NewExecutor(), domain)
}

func (uc ShopUseCase) GetCredits(ctx context.Context, domain string) (int, error) {
	shop, err := uc.shopRepository.GetShopByDomain(ctx, uc.executorFactory.NewExecutor(), domain)
	if err != nil {
		return 0, err
	}
	return shop.Credits, nil
}
