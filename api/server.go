package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DotRPM/dot-image/usecases"
)

func NewServer(
	router *gin.Engine,
	conf Configuration,
	uc usecases.Usecases,
	auth Authentication,
	webhookSecret string,
) *http.Server {
	addRoutes(router, uc, auth, webhookSecret)

	// Add 5 seconds to the handler timeout so the timeout middleware answers
	// before the connection is cut.
	maxTimeout := max(conf.DefaultTimeout, generationTimeout) + 5*time.Second

	return &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%s", conf.Port),
		WriteTimeout: maxTimeout,
		ReadTimeout:  maxTimeout,
		IdleTimeout:  maxTimeout,
		Handler:      router,
	}
}
