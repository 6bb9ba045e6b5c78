package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DotRPM/dot-image/dto"
	"github.com/DotRPM/dot-image/usecases"
)

// handleGetShop upserts the shop on first sight, so simply loading the
// embedded app is enough to provision the free credit allowance.
func handleGetShop(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		domain, err := shopDomain(c)
		if presentError(ctx, c, err) {
			return
		}

		usecase := uc.NewShopUseCase()
		shop, err := usecase.EnsureShop(ctx, domain)
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{"shop": dto.AdaptShopDto(shop)})
	}
}

func handleGetCredits(uc usecases.Usecases) func(c *gin.Context) {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		domain, err := shopDomain(c)
		if presentError(ctx, c, err) {
			return
		}

		usecase := uc.NewShopUseCase()
		credits, err := usecase.GetCredits(ctx, domain)
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, gin.H{"credits": credits})
	}
}
