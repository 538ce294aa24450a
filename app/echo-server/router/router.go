package router

import (
	"marketReviews/internal/middleware"
	"marketReviews/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupReviewRoutes(api *echo.Group, handler *rest.ReviewHandler, authRequired echo.MiddlewareFunc) {
	reviews := api.Group("/reviews", authRequired)
	reviews.POST("", handler.CreateReview)
	reviews.GET("", handler.GetMyReviews)

	products := api.Group("/products")
	products.GET("/:id/reviews", handler.GetProductReviews)
	products.GET("/:id/reviews/summary", handler.GetSummary)
	products.GET("/:id/reviews/eligibility", handler.CheckEligibility, authRequired)
}

func SetupAdminReviewRoutes(api *echo.Group, handler *rest.ReviewHandler, authRequired echo.MiddlewareFunc) {
	admin := api.Group("/admin/reviews", authRequired, middleware.AdminOnly())
	admin.POST("/:id/reconcile", handler.ForceReconcile)
}
