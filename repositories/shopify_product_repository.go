package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/cockroachdb/errors"

	"github.com/DotRPM/dot-image/infra"
	"github.com/DotRPM/dot-image/models"
	"github.com/DotRPM/dot-image/pure_utils"
	"github.com/DotRPM/dot-image/repositories/httpmodels"
)

// ShopifyProductRepository is a thin passthrough over the Shopify Admin
// product endpoints, used by the generation UI.
type ShopifyProductRepository struct {
	config infra.ShopifyConfig
	client *http.Client
}

func NewShopifyProductRepository(config infra.ShopifyConfig, client *http.Client) ShopifyProductRepository {
	if client == nil {
		client = http.DefaultClient
	}
	return ShopifyProductRepository{
		config: config,
		client: client,
	}
}

func (repo ShopifyProductRepository) ListProducts(ctx context.Context,
	shopDomain string, limit int,
) ([]models.Product, error) {
	endpoint := fmt.Sprintf("https://%s/admin/api/%s/products.json?%s",
		shopDomain, repo.config.ApiVersion,
		url.Values{"limit": []string{fmt.Sprint(limit)}}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	repo.setHeaders(req)

	resp, err := repo.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "could not list products")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Newf("shopify API returned status %d", resp.StatusCode)
	}

	var response httpmodels.HTTPProductsResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, errors.Wrap(err, "could not decode products response")
	}
	return pure_utils.Map(response.Products, httpmodels.AdaptProduct), nil
}

// AttachImage sets the image as the lead image of the product.
func (repo ShopifyProductRepository) AttachImage(ctx context.Context,
	shopDomain string, attachment models.ProductImageAttachment,
) error {
	endpoint := fmt.Sprintf("https://%s/admin/api/%s/products/%d/images.json",
		shopDomain, repo.config.ApiVersion, attachment.ProductId)

	body, err := json.Marshal(map[string]any{
		"image": map[string]any{
			"position": 1,
			"src":      attachment.ImageSrc,
		},
	})
	if err != nil {
		return errors.Wrap(err, "could not marshal image payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	repo.setHeaders(req)

	resp, err := repo.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "could not attach product image")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return errors.Newf("shopify API returned status %d", resp.StatusCode)
	}
	return nil
}

func (repo ShopifyProductRepository) setHeaders(req *http.Request) {
	req.Header.Set("X-Shopify-Access-Token", repo.config.AdminToken)
	req.Header.Set("Content-Type", "application/json")
}
