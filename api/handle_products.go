package api

import (
	"net/http"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"

	"github.com/DotRPM/dot-image/dto"
	"github.com/DotRPM/dot-image/models"
	"github.com/DotRPM/dot-image/pure_utils"
	"github.com/DotRPM/dot-image/usecases"
)

func handleListProducts(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		domain, err := shopDomain(c)
		if presentError(ctx, c, err) {
			return
		}

		limit := 0
		if raw := c.Query("limit"); raw != "" {
			limit, err = strconv.Atoi(raw)
			if err != nil {
				presentError(ctx, c, errors.Wrap(models.BadParameterError, "limit must be an integer"))
				return
			}
		}

		usecase := uc.NewProductUseCase()
		products, err := usecase.ListProducts(ctx, domain, limit)
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"products": pure_utils.Map(products, dto.AdaptProductDto),
		})
	}
}

func handleAttachProductImages(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		domain, err := shopDomain(c)
		if presentError(ctx, c, err) {
			return
		}

		var body dto.AttachImagesBody
		if err := c.ShouldBindJSON(&body); err != nil {
			presentError(ctx, c, errors.Wrap(models.BadParameterError, err.Error()))
			return
		}

		usecase := uc.NewProductUseCase()
		err = usecase.AttachImages(ctx, domain,
			pure_utils.Map(body.Images, dto.AdaptProductImageAttachment))
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{"attached": len(body.Images)})
	}
}
