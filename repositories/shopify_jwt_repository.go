package repositories

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/golang-jwt/jwt/v5"

	"github.com/DotRPM/dot-image/infra"
	"github.com/DotRPM/dot-image/models"
)

// ShopifyJwtRepository validates the session tokens App Bridge attaches to
// every request from the embedded admin UI. Tokens are HS256, signed with the
// app's shared secret, with the app's api key as audience.
type ShopifyJwtRepository struct {
	config infra.ShopifyConfig
}

func NewShopifyJwtRepository(config infra.ShopifyConfig) ShopifyJwtRepository {
	return ShopifyJwtRepository{config: config}
}

type shopifySessionClaims struct {
	// Dest carries the shop's admin URL, e.g. "https://{shop}.myshopify.com".
	Dest string `json:"dest"`
	jwt.RegisteredClaims
}

func (repo ShopifyJwtRepository) ValidateSessionToken(sessionToken string) (models.Credentials, error) {
	keyFunc := func(token *jwt.Token) (any, error) {
		return []byte(repo.config.ApiSecret), nil
	}

	token, err := jwt.ParseWithClaims(sessionToken, &shopifySessionClaims{}, keyFunc,
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithAudience(repo.config.ApiKey),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return models.Credentials{}, errors.Join(
			models.UnAuthorizedError,
			errors.Wrap(err, "parsing session token"),
		)
	}

	claims, ok := token.Claims.(*shopifySessionClaims)
	if !ok || !token.Valid {
		return models.Credentials{}, errors.Wrap(models.UnAuthorizedError, "invalid session token")
	}

	domain := strings.TrimPrefix(claims.Dest, "https://")
	if domain == "" || !strings.HasSuffix(domain, ".myshopify.com") {
		return models.Credentials{}, errors.Wrapf(models.UnAuthorizedError,
			"unexpected session token destination %q", claims.Dest)
	}

	return models.Credentials{ShopDomain: domain}, nil
}
