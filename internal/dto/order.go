package dto

import (
	"time"

	"github.com/google/uuid"
)

type PlaceOrderItem struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int32     `json:"quantity" binding:"required,min=1"`
}

type PlaceOrderRequest struct {
	Items []PlaceOrderItem `json:"items" binding:"required,min=1,dive"`
	// UserID — только для staff: оформить заказ от имени другого пользователя.
	UserID *uuid.UUID `json:"user_id"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type OrderItemResponse struct {
	ProductID      uuid.UUID `json:"product_id"`
	Quantity       int32     `json:"quantity"`
	PriceCents     int64     `json:"price_cents"`
	LineTotalCents int64     `json:"line_total_cents"`
}

type OrderResponse struct {
	ID              uuid.UUID           `json:"id"`
	UserID          uuid.UUID           `json:"user_id"`
	Status          string              `json:"status"`
	TotalPriceCents int64               `json:"total_price_cents"`
	Items           []OrderItemResponse `json:"items"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Total int64           `json:"total"`
}
