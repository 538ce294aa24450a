package rest

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"marketReviews/business/review"
	"marketReviews/domain"
	"marketReviews/pkg/logger"
	"marketReviews/pkg/metrics"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

type ResponseError struct {
	Message string `json:"message"`
}

type (
	ReviewHandler struct {
		validate      *validator.Validate
		reviewService ReviewService
		timeout       time.Duration
	}

	ReviewService interface {
		CreateReview(ctx context.Context, input review.CreateReviewInput) (string, error)
		GetReviewsForProduct(ctx context.Context, productID uint64) ([]domain.Review, error)
		GetReviewsForUser(ctx context.Context, userID uint) ([]domain.Review, error)
		GetSummary(ctx context.Context, productID uint64) (*domain.ReviewSummary, error)
		CheckEligibility(ctx context.Context, userID uint, productID, orderID uint64) (bool, error)
		ForceReconcile(ctx context.Context, productID uint64) (*domain.ReconcileReport, error)
	}

	CreateReviewRequest struct {
		OrderID        uint64 `json:"order_id" validate:"required"`
		ProductID      uint64 `json:"product_id" validate:"required"`
		UserName       string `json:"user_name" validate:"required"`
		ProductName    string `json:"product_name" validate:"required"`
		ProductImage   string `json:"product_image"`
		Rating         int    `json:"rating" validate:"required,min=1,max=5"`
		ShippingRating int    `json:"shipping_rating" validate:"required,min=1,max=5"`
		Comment        string `json:"comment" validate:"required,min=3"`
	}
)

func NewReviewHandler(reviewService ReviewService) *ReviewHandler {
	return &ReviewHandler{
		validate:      validator.New(),
		reviewService: reviewService,
		timeout:       10 * time.Second,
	}
}

func (h *ReviewHandler) CreateReview(c echo.Context) error {
	timer := prometheus.NewTimer(metrics.ReviewCreateLatency)
	defer timer.ObserveDuration()

	userID := c.Get("user_id").(uint)

	var request CreateReviewRequest
	if err := c.Bind(&request); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validate.Struct(&request); err != nil {
		logger.Error("Failed review request validation", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	id, err := h.reviewService.CreateReview(ctx, review.CreateReviewInput{
		UserID:         userID,
		UserName:       request.UserName,
		OrderID:        request.OrderID,
		ProductID:      request.ProductID,
		ProductName:    request.ProductName,
		ProductImage:   request.ProductImage,
		Rating:         request.Rating,
		ShippingRating: request.ShippingRating,
		Comment:        request.Comment,
	})
	if err != nil {
		return h.mapCreateError(c, err)
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(map[string]interface{}{
		"review_id": id,
	}))
}

func (h *ReviewHandler) mapCreateError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicateReview):
		return c.JSON(http.StatusConflict, ResponseError{Message: "you have already reviewed this product for this order"})
	case errors.Is(err, domain.ErrIneligible):
		return c.JSON(http.StatusUnprocessableEntity, ResponseError{Message: err.Error()})
	case errors.Is(err, domain.ErrOrderLookup):
		logger.Error("Order lookup failed during review creation", err)
		return c.JSON(http.StatusUnprocessableEntity, ResponseError{Message: "unable to verify order eligibility, try again later"})
	default:
		logger.Error("Failed to create review", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "something went wrong, please retry"})
	}
}

func (h *ReviewHandler) GetProductReviews(c echo.Context) error {
	productID, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	reviews, err := h.reviewService.GetReviewsForProduct(ctx, productID)
	if err != nil {
		logger.Error("Failed to get product reviews", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "something went wrong, please retry"})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(reviews))
}

func (h *ReviewHandler) GetMyReviews(c echo.Context) error {
	userID := c.Get("user_id").(uint)

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	reviews, err := h.reviewService.GetReviewsForUser(ctx, userID)
	if err != nil {
		logger.Error("Failed to get user reviews", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "something went wrong, please retry"})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(reviews))
}

func (h *ReviewHandler) GetSummary(c echo.Context) error {
	productID, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	summary, err := h.reviewService.GetSummary(ctx, productID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: "no reviews for this product yet"})
		}
		logger.Error("Failed to get review summary", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "something went wrong, please retry"})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(summary))
}

func (h *ReviewHandler) CheckEligibility(c echo.Context) error {
	userID := c.Get("user_id").(uint)

	productID, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	orderID, err := strconv.ParseUint(c.QueryParam("order_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid order_id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	eligible, err := h.reviewService.CheckEligibility(ctx, userID, productID, orderID)
	if err != nil {
		logger.Error("Eligibility check failed", err)
		return c.JSON(http.StatusServiceUnavailable, ResponseError{Message: "unable to verify eligibility, try again later"})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(map[string]interface{}{
		"eligible": eligible,
	}))
}

func (h *ReviewHandler) ForceReconcile(c echo.Context) error {
	productID, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	report, err := h.reviewService.ForceReconcile(ctx, productID)
	if err != nil {
		logger.Error("Forced reconcile failed", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: "something went wrong, please retry"})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(report))
}

func parseIDParam(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}
