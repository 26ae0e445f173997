package handlers

import (
	"errors"
	"net/http"

	"markethub/internal/dto"
	"markethub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// respondServiceError переводит ошибку сервисного слоя в HTTP-ответ с envelope.
func respondServiceError(c *gin.Context, log *zap.Logger, err error) {
	var stock *service.InsufficientStockError
	var trans *service.InvalidTransitionError

	switch {
	case errors.As(err, &stock):
		c.JSON(http.StatusBadRequest, dto.NewInsufficientStockError(stock.Error()))
	case errors.As(err, &trans):
		c.JSON(http.StatusBadRequest, dto.NewInvalidTransitionError(trans.Error()))
	case errors.Is(err, service.ErrNotPending):
		c.JSON(http.StatusBadRequest, dto.NewInvalidTransitionError(err.Error()))
	case errors.Is(err, service.ErrUnauthorized),
		errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, dto.NewUnauthorizedError(err.Error()))
	case errors.Is(err, service.ErrForbidden),
		errors.Is(err, service.ErrEditWindowExpired):
		c.JSON(http.StatusForbidden, dto.NewForbiddenError(err.Error()))
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrReviewNotFound):
		c.JSON(http.StatusNotFound, dto.NewNotFoundError(err.Error()))
	case errors.Is(err, service.ErrUsernameExists),
		errors.Is(err, service.ErrEmailExists),
		errors.Is(err, service.ErrSlugExists),
		errors.Is(err, service.ErrReviewExists),
		errors.Is(err, service.ErrProductInUse):
		c.JSON(http.StatusConflict, dto.NewConflictError(err.Error()))
	case errors.Is(err, service.ErrEmptyItems),
		errors.Is(err, service.ErrQuantityInvalid),
		errors.Is(err, service.ErrNotCustomer),
		errors.Is(err, service.ErrTargetUserDenied),
		errors.Is(err, service.ErrReviewNotEligible),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrRatingOutOfRange),
		errors.Is(err, service.ErrPriceNegative),
		errors.Is(err, service.ErrStockNegative),
		errors.Is(err, service.ErrPasswordMismatch),
		errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, service.ErrInvalidRole):
		c.JSON(http.StatusBadRequest, dto.NewValidationError(err.Error(), nil))
	default:
		log.Error("unhandled service error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.NewInternalError(""))
	}
}

func respondBindError(c *gin.Context, log *zap.Logger, err error) {
	log.Warn("invalid request body", zap.Error(err))
	c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid request body", []dto.FieldError{}))
}

// parseIDParam читает path-параметр как UUID; при ошибке сам пишет 400-ответ.
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid "+name, nil))
		return uuid.Nil, false
	}
	return id, true
}
