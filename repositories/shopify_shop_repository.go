package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/cockroachdb/errors"

	"github.com/DotRPM/dot-image/infra"
	"github.com/DotRPM/dot-image/models"
	"github.com/DotRPM/dot-image/repositories/httpmodels"
)

// ShopifyShopRepository reads the store's own identity from the Shopify Admin
// shop endpoint, used to keep the local shop record's name and email fresh.
type ShopifyShopRepository struct {
	config infra.ShopifyConfig
	client *http.Client
}

func NewShopifyShopRepository(config infra.ShopifyConfig, client *http.Client) ShopifyShopRepository {
	if client == nil {
		client = http.DefaultClient
	}
	return ShopifyShopRepository{
		config: config,
		client: client,
	}
}

func (repo ShopifyShopRepository) GetShopDetails(ctx context.Context,
	shopDomain string,
) (models.ShopDetails, error) {
	endpoint := fmt.Sprintf("https://%s/admin/api/%s/shop.json",
		shopDomain, repo.config.ApiVersion)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return models.ShopDetails{}, err
	}
	req.Header.Set("X-Shopify-Access-Token", repo.config.AdminToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := repo.client.Do(req)
	if err != nil {
		return models.ShopDetails{}, errors.Wrap(err, "could not fetch shop details")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.ShopDetails{}, errors.Newf("shopify API returned status %d", resp.StatusCode)
	}

	var response httpmodels.HTTPShopResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return models.ShopDetails{}, errors.Wrap(err, "could not decode shop response")
	}
	return httpmodels.AdaptShopDetails(response.Shop), nil
}
