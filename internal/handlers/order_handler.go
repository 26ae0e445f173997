package handlers

import (
	"net/http"

	"markethub/internal/dto"
	"markethub/internal/models"
	"markethub/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type OrderHandler struct {
	orders service.OrderService
	log    *zap.Logger
}

func NewOrderHandler(orders service.OrderService, log *zap.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, log: log}
}

func toOrderResponse(o *models.Order) dto.OrderResponse {
	resp := dto.OrderResponse{
		ID:              o.ID,
		UserID:          o.UserID,
		Status:          string(o.Status),
		TotalPriceCents: o.TotalPriceCents,
		Items:           make([]dto.OrderItemResponse, 0, len(o.Items)),
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
	for i := range o.Items {
		it := &o.Items[i]
		resp.Items = append(resp.Items, dto.OrderItemResponse{
			ProductID:      it.ProductID,
			Quantity:       it.Quantity,
			PriceCents:     it.PriceCents,
			LineTotalCents: it.LineTotalCents(),
		})
	}
	return resp
}

// PlaceOrder godoc
// @Summary Оформление заказа
// @Description Атомарно списывает остатки и создаёт заказ; при нехватке — откат целиком
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param order body dto.PlaceOrderRequest true "Позиции заказа"
// @Success 201 {object} dto.OrderResponse
// @Failure 400 {object} dto.BaseError "Нехватка остатков или неверные данные"
// @Failure 429 {object} dto.BaseError
// @Router /api/v1/orders [post]
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var req dto.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, h.log, err)
		return
	}

	in := service.PlaceOrderInput{TargetUserID: req.UserID}
	for _, it := range req.Items {
		in.Items = append(in.Items, service.PlaceOrderItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		})
	}

	o, err := h.orders.PlaceOrder(c.Request.Context(), in)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	h.log.Info("order placed",
		zap.String("order_id", o.ID.String()),
		zap.Int64("total_cents", o.TotalPriceCents))
	c.JSON(http.StatusCreated, toOrderResponse(o))
}

// GetOrder godoc
// @Summary Заказ по ID (владелец или staff)
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID заказа"
// @Success 200 {object} dto.OrderResponse
// @Failure 404 {object} dto.BaseError
// @Router /api/v1/orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	o, err := h.orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(o))
}

// ListOrders godoc
// @Summary Список заказов (свои; staff видит все)
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param status query string false "Фильтр по статусу"
// @Param limit query int false "Размер страницы"
// @Param offset query int false "Смещение"
// @Success 200 {object} dto.OrderListResponse
// @Router /api/v1/orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	var in service.OrderListInput
	in.Limit, in.Offset = parsePage(c)
	if v := c.Query("status"); v != "" {
		st := models.OrderStatus(v)
		in.Status = &st
	}

	items, total, err := h.orders.ListOrders(c.Request.Context(), in)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	resp := dto.OrderListResponse{Items: make([]dto.OrderResponse, 0, len(items)), Total: total}
	for i := range items {
		resp.Items = append(resp.Items, toOrderResponse(&items[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateStatus godoc
// @Summary Смена статуса заказа (staff или seller)
// @Description Допустимые переходы заданы матрицей статусов для роли актора
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID заказа"
// @Param status body dto.UpdateOrderStatusRequest true "Новый статус"
// @Success 200 {object} dto.OrderResponse
// @Failure 400 {object} dto.BaseError "Недопустимый переход"
// @Failure 403 {object} dto.BaseError
// @Failure 429 {object} dto.BaseError
// @Router /api/v1/orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, h.log, err)
		return
	}

	o, err := h.orders.UpdateStatus(c.Request.Context(), id, models.OrderStatus(req.Status))
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	h.log.Info("order status updated",
		zap.String("order_id", o.ID.String()),
		zap.String("status", string(o.Status)))
	c.JSON(http.StatusOK, toOrderResponse(o))
}

// CancelOrder godoc
// @Summary Отмена заказа (владелец, только pending)
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID заказа"
// @Success 200 {object} dto.OrderResponse
// @Failure 400 {object} dto.BaseError "Заказ уже в обработке"
// @Router /api/v1/orders/{id}/cancel [post]
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	o, err := h.orders.CancelOrder(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(o))
}
