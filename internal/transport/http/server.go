package http

import (
	"github.com/gin-gonic/gin"

	"github.com/Lauramora262/agente-onboarding-b-one/internal/bootstrap"
	"github.com/Lauramora262/agente-onboarding-b-one/internal/transport/http/handler"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	router.StaticFile("/", "web/index.html")

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	askHandler := handler.NewAskHandler(app.QA)
	v1 := router.Group("/api/v1")
	v1.POST("/ask", askHandler.Ask)
	v1.GET("/status", askHandler.Status)

	return router
}
