package api

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"github.com/DotRPM/dot-image/models"
	"github.com/DotRPM/dot-image/usecases"
	"github.com/DotRPM/dot-image/utils"
)

const oneTimePurchaseGidPrefix = "gid://shopify/AppPurchaseOneTime/"

type oneTimePurchaseWebhook struct {
	AppPurchaseOneTime struct {
		AdminGraphqlApiId string `json:"admin_graphql_api_id"`
		Status            string `json:"status"`
	} `json:"app_purchase_one_time"`
}

// handleWebhook receives Shopify webhooks. These are authenticated by HMAC,
// not by session token: Shopify signs the raw body with the app secret.
// Reconciliation through this path and through the activation redirect share
// the same idempotent charge application, so receiving both is harmless.
func handleWebhook(uc usecases.Usecases, webhookSecret string) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		logger := utils.LoggerFromContext(ctx)

		body, err := c.GetRawData()
		if err != nil {
			presentError(ctx, c, errors.Wrap(models.BadParameterError, "can't read webhook body"))
			return
		}

		signature := c.GetHeader("X-Shopify-Hmac-Sha256")
		if !verifyWebhookSignature(webhookSecret, body, signature) {
			presentError(ctx, c, errors.Wrap(models.UnAuthorizedError, "invalid webhook signature"))
			return
		}

		topic := c.GetHeader("X-Shopify-Topic")
		domain := c.GetHeader("X-Shopify-Shop-Domain")

		switch topic {
		case "app_purchases_one_time/update":
			var payload oneTimePurchaseWebhook
			if err := json.Unmarshal(body, &payload); err != nil {
				presentError(ctx, c, errors.Wrap(models.BadParameterError, "can't parse webhook body"))
				return
			}
			purchase := payload.AppPurchaseOneTime
			if !strings.EqualFold(purchase.Status, "active") {
				break
			}

			chargeId := strings.TrimPrefix(purchase.AdminGraphqlApiId, oneTimePurchaseGidPrefix)
			usecase := uc.NewBillingUseCase()
			application, err := usecase.ActivateCharge(ctx, domain, chargeId)
			// A non-2xx answer makes Shopify redeliver, which is what we want
			// if the reconciliation could not run.
			if presentError(ctx, c, err) {
				return
			}
			logger.InfoContext(ctx, "reconciled one-time purchase from webhook",
				"shop", domain, "charge_id", chargeId, "applied", application.Applied)

		case "app/uninstalled":
			// The ledger row is kept: reinstalling restores the balance.
			logger.InfoContext(ctx, "app uninstalled", "shop", domain)

		default:
			logger.DebugContext(ctx, "ignoring webhook", "topic", topic, "shop", domain)
		}

		c.JSON(http.StatusOK, gin.H{"received": true})
	}
}

func verifyWebhookSignature(secret string, body []byte, signature string) bool {
	expected, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hmac.Equal(mac.Sum(nil), expected)
}
