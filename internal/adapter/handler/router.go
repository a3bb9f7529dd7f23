package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/meetinglens/meetinglens/internal/infrastructure/http/middleware"
	"github.com/meetinglens/meetinglens/pkg/config"
)

// RegisterRoutes wires all endpoints. The health probe stays outside the
// authenticated group so load balancers can reach it without credentials.
func RegisterRoutes(
	e *echo.Echo,
	cfg *config.Config,
	analysisCtrl *AnalysisController,
	sessionCtrl *SessionController,
	statusCtrl *StatusController,
) {
	e.GET("/health", statusCtrl.Health)

	v1 := e.Group("/v1", middleware.JWTAuth(cfg.Auth.Secret))
	v1.GET("/status", statusCtrl.Status)
	v1.POST("/analyze", analysisCtrl.Analyze)
	v1.GET("/sessions/:id", sessionCtrl.Get)
	v1.DELETE("/sessions/:id", sessionCtrl.Delete)
}
