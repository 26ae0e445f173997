package handlers

import (
	"net/http"

	"markethub/internal/dto"
	"markethub/internal/models"
	"markethub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReviewHandler struct {
	reviews service.ReviewService
	log     *zap.Logger
}

func NewReviewHandler(reviews service.ReviewService, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, log: log}
}

func toReviewResponse(r *models.Review) dto.ReviewResponse {
	return dto.ReviewResponse{
		ID:        r.ID,
		UserID:    r.UserID,
		ProductID: r.ProductID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// CreateReview godoc
// @Summary Создание отзыва
// @Description Отзыв доступен после доставленного заказа с этим товаром; один на пару (пользователь, товар)
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param review body dto.CreateReviewRequest true "Отзыв"
// @Success 201 {object} dto.ReviewResponse
// @Failure 400 {object} dto.BaseError "Нет доставленного заказа с товаром или рейтинг вне диапазона"
// @Failure 409 {object} dto.BaseError "Отзыв уже существует"
// @Failure 429 {object} dto.BaseError
// @Router /api/v1/reviews [post]
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var req dto.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, h.log, err)
		return
	}

	r, err := h.reviews.CreateReview(c.Request.Context(), service.CreateReviewInput{
		ProductID: req.ProductID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	h.log.Info("review created",
		zap.String("review_id", r.ID.String()),
		zap.String("product_id", r.ProductID.String()))
	c.JSON(http.StatusCreated, toReviewResponse(r))
}

// GetReview godoc
// @Summary Отзыв по ID
// @Tags reviews
// @Produce json
// @Param id path string true "ID отзыва"
// @Success 200 {object} dto.ReviewResponse
// @Failure 404 {object} dto.BaseError
// @Router /api/v1/reviews/{id} [get]
func (h *ReviewHandler) GetReview(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	r, err := h.reviews.GetReview(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toReviewResponse(r))
}

// ListReviews godoc
// @Summary Список отзывов
// @Tags reviews
// @Produce json
// @Param product_id query string false "Фильтр по товару"
// @Param user_id query string false "Фильтр по автору"
// @Param limit query int false "Размер страницы"
// @Param offset query int false "Смещение"
// @Success 200 {object} dto.ReviewListResponse
// @Router /api/v1/reviews [get]
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	var in service.ReviewListInput
	in.Limit, in.Offset = parsePage(c)
	if v := c.Query("product_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid product_id", nil))
			return
		}
		in.ProductID = &id
	}
	if v := c.Query("user_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid user_id", nil))
			return
		}
		in.UserID = &id
	}

	items, total, err := h.reviews.ListReviews(c.Request.Context(), in)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	resp := dto.ReviewListResponse{Items: make([]dto.ReviewResponse, 0, len(items)), Total: total}
	for i := range items {
		resp.Items = append(resp.Items, toReviewResponse(&items[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateReview godoc
// @Summary Изменение отзыва
// @Description Автору доступно в течение 15 минут после создания, staff — всегда
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID отзыва"
// @Param review body dto.UpdateReviewRequest true "Изменяемые поля"
// @Success 200 {object} dto.ReviewResponse
// @Failure 403 {object} dto.BaseError "Окно редактирования истекло"
// @Router /api/v1/reviews/{id} [patch]
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, h.log, err)
		return
	}
	r, err := h.reviews.UpdateReview(c.Request.Context(), id, service.UpdateReviewInput{
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toReviewResponse(r))
}

// DeleteReview godoc
// @Summary Удаление отзыва
// @Tags reviews
// @Security BearerAuth
// @Param id path string true "ID отзыва"
// @Success 204 "Удалено"
// @Failure 403 {object} dto.BaseError
// @Router /api/v1/reviews/{id} [delete]
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.reviews.DeleteReview(c.Request.Context(), id); err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
