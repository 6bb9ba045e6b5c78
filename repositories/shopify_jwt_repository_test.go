package repositories

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"github.com/DotRPM/dot-image/infra"
	"github.com/DotRPM/dot-image/models"
)

func makeJwtRepository() ShopifyJwtRepository {
	return NewShopifyJwtRepository(infra.ShopifyConfig{
		ApiKey:    "api-key",
		ApiSecret: "api-secret",
	})
}

func signSessionToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatal(err)
	}
	return signed
}

func sessionClaims(dest string) jwt.MapClaims {
	return jwt.MapClaims{
		"dest": dest,
		"aud":  "api-key",
		"iss":  dest + "/admin",
		"exp":  time.Now().Add(time.Minute).Unix(),
		"nbf":  time.Now().Add(-time.Minute).Unix(),
	}
}

func TestValidateSessionToken(t *testing.T) {
	token := signSessionToken(t, "api-secret", sessionClaims("https://test-store.myshopify.com"))

	credentials, err := makeJwtRepository().ValidateSessionToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "test-store.myshopify.com", credentials.ShopDomain)
}

func TestValidateSessionTokenWrongSecret(t *testing.T) {
	token := signSessionToken(t, "not-the-secret", sessionClaims("https://test-store.myshopify.com"))

	_, err := makeJwtRepository().ValidateSessionToken(token)
	assert.ErrorIs(t, err, models.UnAuthorizedError)
}

func TestValidateSessionTokenWrongAudience(t *testing.T) {
	claims := sessionClaims("https://test-store.myshopify.com")
	claims["aud"] = "someone-else"
	token := signSessionToken(t, "api-secret", claims)

	_, err := makeJwtRepository().ValidateSessionToken(token)
	assert.ErrorIs(t, err, models.UnAuthorizedError)
}

func TestValidateSessionTokenExpired(t *testing.T) {
	claims := sessionClaims("https://test-store.myshopify.com")
	claims["exp"] = time.Now().Add(-time.Minute).Unix()
	token := signSessionToken(t, "api-secret", claims)

	_, err := makeJwtRepository().ValidateSessionToken(token)
	assert.ErrorIs(t, err, models.UnAuthorizedError)
}

func TestValidateSessionTokenBadDestination(t *testing.T) {
	token := signSessionToken(t, "api-secret", sessionClaims("https://evil.example.com"))

	_, err := makeJwtRepository().ValidateSessionToken(token)
	assert.ErrorIs(t, err, models.UnAuthorizedError)
}
