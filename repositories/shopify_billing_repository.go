package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/DotRPM/dot-image/infra"
	"github.com/DotRPM/dot-image/models"
	"github.com/DotRPM/dot-image/repositories/httpmodels"
)

const activeSubscriptionsQuery = `
  query appSubscription {
    currentAppInstallation {
      activeSubscriptions {
        id
        name
        status
        createdAt
        currentPeriodEnd
        test
      }
    }
  }
`

const recurringChargeCreateMutation = `
  mutation AppSubscriptionCreate(
    $name: String!
    $lineItems: [AppSubscriptionLineItemInput!]!
    $returnUrl: URL!
    $test: Boolean
  ) {
    appSubscriptionCreate(
      name: $name
      lineItems: $lineItems
      returnUrl: $returnUrl
      test: $test
    ) {
      confirmationUrl
      userErrors {
        field
        message
      }
    }
  }
`

const oneTimeChargeCreateMutation = `
  mutation AppPurchaseOneTimeCreate($name: String!, $price: MoneyInput!, $returnUrl: URL!, $test: Boolean) {
    appPurchaseOneTimeCreate(name: $name, returnUrl: $returnUrl, price: $price, test: $test) {
      confirmationUrl
      userErrors {
        field
        message
      }
    }
  }
`

// ShopifyBillingRepository talks to the Shopify Admin API for everything
// charge related. Charge records are owned by Shopify; this repository never
// persists anything locally.
type ShopifyBillingRepository struct {
	config infra.ShopifyConfig
	client *http.Client
}

func NewShopifyBillingRepository(config infra.ShopifyConfig, client *http.Client) ShopifyBillingRepository {
	if client == nil {
		client = http.DefaultClient
	}
	return ShopifyBillingRepository{
		config: config,
		client: client,
	}
}

func (repo ShopifyBillingRepository) ActiveSubscriptions(ctx context.Context,
	shopDomain string,
) ([]models.Subscription, error) {
	var response httpmodels.HTTPActiveSubscriptionsResponse
	err := repo.graphql(ctx, shopDomain, map[string]any{
		"query": activeSubscriptionsQuery,
	}, &response)
	if err != nil {
		return nil, err
	}

	return httpmodels.AdaptActiveSubscriptions(response)
}

func (repo ShopifyBillingRepository) CreateRecurringCharge(ctx context.Context,
	shopDomain string, charge models.ChargeRequest,
) (string, error) {
	var response httpmodels.HTTPAppSubscriptionCreateResponse
	err := repo.graphql(ctx, shopDomain, map[string]any{
		"query": recurringChargeCreateMutation,
		"variables": map[string]any{
			"name": charge.Name,
			"lineItems": []map[string]any{{
				"plan": map[string]any{
					"appRecurringPricingDetails": map[string]any{
						"interval": charge.Interval,
						"price": map[string]any{
							"amount":       formatAmount(charge.AmountCents),
							"currencyCode": charge.Currency,
						},
					},
				},
			}},
			"returnUrl": charge.ReturnUrl,
			"test":      charge.Test,
		},
	}, &response)
	if err != nil {
		return "", err
	}

	result := response.Data.AppSubscriptionCreate
	if len(result.UserErrors) > 0 {
		return "", errors.Newf("error while billing the store: %s", result.UserErrors[0].Message)
	}
	return result.ConfirmationUrl, nil
}

func (repo ShopifyBillingRepository) CreateOneTimeCharge(ctx context.Context,
	shopDomain string, charge models.ChargeRequest,
) (string, error) {
	var response httpmodels.HTTPAppPurchaseOneTimeCreateResponse
	err := repo.graphql(ctx, shopDomain, map[string]any{
		"query": oneTimeChargeCreateMutation,
		"variables": map[string]any{
			"name": charge.Name,
			"price": map[string]any{
				"amount":       formatAmount(charge.AmountCents),
				"currencyCode": charge.Currency,
			},
			"returnUrl": charge.ReturnUrl,
			"test":      charge.Test,
		},
	}, &response)
	if err != nil {
		return "", err
	}

	result := response.Data.AppPurchaseOneTimeCreate
	if len(result.UserErrors) > 0 {
		return "", errors.Newf("error while billing the store: %s", result.UserErrors[0].Message)
	}
	return result.ConfirmationUrl, nil
}

func (repo ShopifyBillingRepository) GetOneTimeCharge(ctx context.Context,
	shopDomain string, chargeId string,
) (models.OneTimeCharge, error) {
	url := repo.adminUrl(shopDomain, fmt.Sprintf("application_charges/%s.json", chargeId))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return models.OneTimeCharge{}, err
	}
	repo.setHeaders(req)

	resp, err := repo.client.Do(req)
	if err != nil {
		return models.OneTimeCharge{}, errors.Wrap(err, "could not fetch application charge")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return models.OneTimeCharge{}, errors.Wrapf(models.NotFoundError, "charge %s", chargeId)
	}
	if resp.StatusCode != http.StatusOK {
		return models.OneTimeCharge{}, errors.Newf("shopify API returned status %d", resp.StatusCode)
	}

	var response httpmodels.HTTPApplicationChargeResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return models.OneTimeCharge{}, errors.Wrap(err, "could not decode application charge")
	}
	return httpmodels.AdaptOneTimeCharge(response.ApplicationCharge)
}

func (repo ShopifyBillingRepository) CancelSubscription(ctx context.Context,
	shopDomain string, subscriptionId string,
) error {
	// Subscriptions created through GraphQL carry a gid, the REST cancel
	// endpoint wants the bare numeric id.
	id := strings.TrimPrefix(subscriptionId, "gid://shopify/AppSubscription/")

	url := repo.adminUrl(shopDomain, fmt.Sprintf("recurring_application_charges/%s.json", id))
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return err
	}
	repo.setHeaders(req)

	resp, err := repo.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "could not cancel subscription")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return errors.Newf("shopify API returned status %d", resp.StatusCode)
	}
	return nil
}

func (repo ShopifyBillingRepository) graphql(ctx context.Context, shopDomain string,
	payload any, out any,
) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "could not marshal graphql payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		repo.adminUrl(shopDomain, "graphql.json"), bytes.NewReader(body))
	if err != nil {
		return err
	}
	repo.setHeaders(req)

	resp, err := repo.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "could not reach the billing API")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Newf("shopify API returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "could not decode billing API response")
	}
	return nil
}

func (repo ShopifyBillingRepository) adminUrl(shopDomain, path string) string {
	return fmt.Sprintf("https://%s/admin/api/%s/%s", shopDomain, repo.config.ApiVersion, path)
}

func (repo ShopifyBillingRepository) setHeaders(req *http.Request) {
	req.Header.Set("X-Shopify-Access-Token", repo.config.AdminToken)
	req.Header.Set("Content-Type", "application/json")
}

func formatAmount(amountCents int) string {
	return fmt.Sprintf("%d.%02d", amountCents/100, amountCents%100)
}
