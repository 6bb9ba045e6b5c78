package utils

import (
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/DotRPM/dot-image/models"
)

func ParseAuthorizationBearerHeader(header http.Header) (string, error) {
	authorization := header.Get("Authorization")
	if authorization == "" {
		return "", nil
	}

	parts := strings.Split(authorization, "Bearer ")
	if len(parts) != 2 {
		return "", errors.Wrap(models.UnAuthorizedError, "malformed authorization header")
	}
	return parts[1], nil
}
