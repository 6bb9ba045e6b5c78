package api

import (
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"github.com/DotRPM/dot-image/dto"
	"github.com/DotRPM/dot-image/models"
	"github.com/DotRPM/dot-image/usecases"
)

func handleGenerateImage(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		domain, err := shopDomain(c)
		if presentError(ctx, c, err) {
			return
		}

		prompt := strings.TrimSpace(c.Param("prompt"))
		if prompt == "" {
			presentError(ctx, c, errors.Wrap(models.BadParameterError, "missing prompt"))
			return
		}

		usecase := uc.NewGenerationUseCase()
		image, err := usecase.GenerateProductImage(ctx, domain, prompt)
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{"image": dto.AdaptGeneratedImageDto(image)})
	}
}
