package controller

import (
	"room-booking-api/core/controller"
	"room-booking-api/core/errors"
	"room-booking-api/modules/recommendation/dto"
	"room-booking-api/modules/recommendation/service"

	"github.com/labstack/echo/v4"
)

// RecommendationController handles recommendation HTTP requests
type RecommendationController struct {
	controller.BaseController
	RecommendationService service.RecommendationServiceInterface
}

func NewRecommendationController(svc service.RecommendationServiceInterface) *RecommendationController {
	return &RecommendationController{
		BaseController:        controller.NewBaseController(),
		RecommendationService: svc,
	}
}

// Recommend handles POST /private/recommendations
func (c *RecommendationController) Recommend(ctx echo.Context) error {
	var req dto.RecommendationRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}
	if err := ctx.Validate(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request data", controller.ValidationDetails(err))
	}

	result, appErr := c.RecommendationService.Recommend(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Recommendations generated successfully")
}

// RefreshDirectory handles POST /private/recommendations/directory/refresh?date=YYYY-MM-DD
func (c *RecommendationController) RefreshDirectory(ctx echo.Context) error {
	result, appErr := c.RecommendationService.RefreshDirectory(ctx.Request().Context(), ctx.QueryParam("date"))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Directory refreshed")
}

// InvalidateDirectory handles DELETE /private/recommendations/directory
func (c *RecommendationController) InvalidateDirectory(ctx echo.Context) error {
	if appErr := c.RecommendationService.InvalidateDirectory(ctx.Request().Context()); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Directory cache invalidated")
}

// Health handles GET /public/recommendations/health
func (c *RecommendationController) Health(ctx echo.Context) error {
	return c.SuccessResponse(ctx, c.RecommendationService.Health(ctx.Request().Context()), "OK")
}
