package api

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/DotRPM/dot-image/usecases"
)

func signBody(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func TestVerifyWebhookSignature(t *testing.T) {
	body := []byte(`{"app_purchase_one_time":{"status":"active"}}`)

	assert.True(t, verifyWebhookSignature("secret", body, signBody("secret", body)))
	assert.False(t, verifyWebhookSignature("secret", body, signBody("wrong", body)))
	assert.False(t, verifyWebhookSignature("secret", body, "not base64!!"))
	assert.False(t, verifyWebhookSignature("secret", []byte("tampered"), signBody("secret", body)))
}

func TestHandleWebhookRejectsBadSignature(t *testing.T) {
	gin.SetMode(gin.TestMode)

	body := `{"app_purchase_one_time":{"status":"active"}}`
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/webhooks", strings.NewReader(body))
	c.Request.Header.Set("X-Shopify-Hmac-Sha256", signBody("wrong-secret", []byte(body)))
	c.Request.Header.Set("X-Shopify-Topic", "app_purchases_one_time/update")

	handleWebhook(usecases.Usecases{}, "secret")(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandleWebhookIgnoresUnknownTopics(t *testing.T) {
	gin.SetMode(gin.TestMode)

	body := `{"collection":{"id":1}}`
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/webhooks", strings.NewReader(body))
	c.Request.Header.Set("X-Shopify-Hmac-Sha256", signBody("secret", []byte(body)))
	c.Request.Header.Set("X-Shopify-Topic", "collections/update")
	c.Request.Header.Set("X-Shopify-Shop-Domain", "test-store.myshopify.com")

	handleWebhook(usecases.Usecases{}, "secret")(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"received":true}`, w.Body.String())
}
