package api

import (
	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"github.com/DotRPM/dot-image/models"
	"github.com/DotRPM/dot-image/utils"
)

type sessionTokenValidator interface {
	ValidateSessionToken(sessionToken string) (models.Credentials, error)
}

// Authentication guards the /api routes: every request from the embedded UI
// must carry a valid App Bridge session token.
type Authentication struct {
	validator sessionTokenValidator
}

func NewAuthentication(validator sessionTokenValidator) Authentication {
	return Authentication{validator: validator}
}

func (a Authentication) Middleware(c *gin.Context) {
	ctx := c.Request.Context()

	token, err := utils.ParseAuthorizationBearerHeader(c.Request.Header)
	if err == nil && token == "" {
		err = errors.Wrap(models.UnAuthorizedError, "missing session token")
	}
	if err != nil {
		presentError(ctx, c, err)
		c.Abort()
		return
	}

	credentials, err := a.validator.ValidateSessionToken(token)
	if err != nil {
		presentError(ctx, c, err)
		c.Abort()
		return
	}

	ctx = utils.StoreCredentialsInContext(ctx, credentials)
	c.Request = c.Request.WithContext(ctx)
	c.Next()
}

// shopDomain pulls the authenticated shop out of the request context. The
// authentication middleware guarantees it is set on /api routes.
func shopDomain(c *gin.Context) (string, error) {
	return utils.ShopDomainFromContext(c.Request.Context())
}
