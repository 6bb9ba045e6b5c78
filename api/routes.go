package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/timeout"
	"github.com/gin-gonic/gin"

	"github.com/DotRPM/dot-image/usecases"
)

// Image generation calls a slow upstream, everything else answers fast.
const generationTimeout = 60 * time.Second

func timeoutMiddleware(duration time.Duration) gin.HandlerFunc {
	return timeout.New(
		timeout.WithTimeout(duration),
		timeout.WithHandler(func(c *gin.Context) {
			c.Next()
		}),
		timeout.WithResponse(func(c *gin.Context) {
			c.String(http.StatusRequestTimeout, "timeout")
		}),
	)
}

func addRoutes(r *gin.Engine, uc usecases.Usecases, auth Authentication, webhookSecret string) {
	r.GET("/liveness", handleLivenessProbe(uc))
	r.POST("/webhooks", handleWebhook(uc, webhookSecret))

	router := r.Group("/api")
	router.Use(auth.Middleware)

	router.GET("/shop", handleGetShop(uc))
	router.GET("/shop/credits", handleGetCredits(uc))

	router.GET("/plans", handleGetPlan(uc))
	router.GET("/plans/start", handleStartPlan(uc))
	router.POST("/plans/buy", handleBuyCredits(uc))
	router.POST("/plans/activate/:charge_id", handleActivateCharge(uc))
	router.GET("/plans/terminate", handleTerminatePlan(uc))

	router.GET("/image/:prompt", timeoutMiddleware(generationTimeout), handleGenerateImage(uc))

	router.GET("/products", handleListProducts(uc))
	router.POST("/products/images", handleAttachProductImages(uc))
}
