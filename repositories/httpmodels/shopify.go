package httpmodels

import (
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/guregu/null/v5"

	"github.com/DotRPM/dot-image/models"
	"github.com/DotRPM/dot-image/pure_utils"
)

type HTTPGraphqlUserError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}

type HTTPAppSubscription struct {
	Id               string `json:"id"`
	Name             string `json:"name"`
	Status           string `json:"status"`
	CreatedAt        string `json:"createdAt"`
	CurrentPeriodEnd string `json:"currentPeriodEnd"`
	Test             bool   `json:"test"`
}

func AdaptAppSubscription(dto HTTPAppSubscription) (models.Subscription, error) {
	periodEnd := time.Time{}
	if dto.CurrentPeriodEnd != "" {
		parsed, err := time.Parse(time.RFC3339, dto.CurrentPeriodEnd)
		if err != nil {
			return models.Subscription{}, errors.Wrap(err, "invalid currentPeriodEnd")
		}
		periodEnd = parsed
	}

	return models.Subscription{
		Id:               dto.Id,
		Name:             dto.Name,
		Status:           models.SubscriptionStatus(dto.Status),
		CurrentPeriodEnd: periodEnd,
		Test:             dto.Test,
	}, nil
}

type HTTPActiveSubscriptionsResponse struct {
	Data struct {
		CurrentAppInstallation struct {
			ActiveSubscriptions []HTTPAppSubscription `json:"activeSubscriptions"`
		} `json:"currentAppInstallation"`
	} `json:"data"`
}

func AdaptActiveSubscriptions(dto HTTPActiveSubscriptionsResponse) ([]models.Subscription, error) {
	return pure_utils.MapErr(
		dto.Data.CurrentAppInstallation.ActiveSubscriptions, AdaptAppSubscription)
}

type HTTPAppSubscriptionCreateResponse struct {
	Data struct {
		AppSubscriptionCreate struct {
			ConfirmationUrl string                 `json:"confirmationUrl"`
			UserErrors      []HTTPGraphqlUserError `json:"userErrors"`
		} `json:"appSubscriptionCreate"`
	} `json:"data"`
}

type HTTPAppPurchaseOneTimeCreateResponse struct {
	Data struct {
		AppPurchaseOneTimeCreate struct {
			ConfirmationUrl string                 `json:"confirmationUrl"`
			UserErrors      []HTTPGraphqlUserError `json:"userErrors"`
		} `json:"appPurchaseOneTimeCreate"`
	} `json:"data"`
}

type HTTPApplicationCharge struct {
	Id       int64  `json:"id"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Status   string `json:"status"`
	Currency string `json:"currency"`
}

type HTTPApplicationChargeResponse struct {
	ApplicationCharge HTTPApplicationCharge `json:"application_charge"`
}

func AdaptOneTimeCharge(dto HTTPApplicationCharge) (models.OneTimeCharge, error) {
	amountCents, err := parsePriceCents(dto.Price)
	if err != nil {
		return models.OneTimeCharge{}, err
	}

	currency := dto.Currency
	if currency == "" {
		currency = "USD"
	}

	return models.OneTimeCharge{
		Id:          strconv.FormatInt(dto.Id, 10),
		Name:        dto.Name,
		Status:      dto.Status,
		AmountCents: amountCents,
		Currency:    currency,
	}, nil
}

// parsePriceCents converts a decimal price string like "6.00" into cents
// without going through floats.
func parsePriceCents(price string) (int, error) {
	whole, frac, _ := strings.Cut(strings.TrimSpace(price), ".")
	if whole == "" {
		whole = "0"
	}

	units, err := strconv.Atoi(whole)
	if err != nil {
		return 0, errors.Newf("invalid charge price: %q", price)
	}

	cents := units * 100
	if frac != "" {
		if len(frac) > 2 {
			frac = frac[:2]
		}
		for len(frac) < 2 {
			frac += "0"
		}
		fracCents, err := strconv.Atoi(frac)
		if err != nil {
			return 0, errors.Newf("invalid charge price: %q", price)
		}
		cents += fracCents
	}
	return cents, nil
}

type HTTPShop struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type HTTPShopResponse struct {
	Shop HTTPShop `json:"shop"`
}

func AdaptShopDetails(dto HTTPShop) models.ShopDetails {
	details := models.ShopDetails{Name: dto.Name}
	if dto.Email != "" {
		details.Email = null.StringFrom(dto.Email)
	}
	return details
}

type HTTPProductImage struct {
	Src string `json:"src"`
}

type HTTPProduct struct {
	Id    int64             `json:"id"`
	Title string            `json:"title"`
	Image *HTTPProductImage `json:"image"`
}

type HTTPProductsResponse struct {
	Products []HTTPProduct `json:"products"`
}

func AdaptProduct(dto HTTPProduct) models.Product {
	imageSrc := ""
	if dto.Image != nil {
		imageSrc = dto.Image.Src
	}
	return models.Product{
		Id:       dto.Id,
		Title:    dto.Title,
		ImageSrc: imageSrc,
	}
}
