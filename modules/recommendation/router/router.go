package router

import (
	"room-booking-api/core/middleware"
	"room-booking-api/modules/recommendation/controller"

	"github.com/labstack/echo/v4"
)

type RecommendationRouter struct {
	RecommendationController *controller.RecommendationController
}

func NewRecommendationRouter(ctrl *controller.RecommendationController) *RecommendationRouter {
	return &RecommendationRouter{RecommendationController: ctrl}
}

// Setup registers recommendation routes
func (r *RecommendationRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	public := v1.Group("/public/recommendations")
	public.GET("/health", r.RecommendationController.Health)

	private := v1.Group("/private/recommendations", mw.AuthMiddleware())
	private.POST("", r.RecommendationController.Recommend)
	private.POST("/directory/refresh", r.RecommendationController.RefreshDirectory)
	private.DELETE("/directory", r.RecommendationController.InvalidateDirectory)
}
