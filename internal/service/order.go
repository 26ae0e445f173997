package service

import (
	"context"

	"markethub/internal/models"

	"github.com/google/uuid"
)

type PlaceOrderItem struct {
	ProductID uuid.UUID
	Quantity  int32
}

type PlaceOrderInput struct {
	Items []PlaceOrderItem
	// TargetUserID — заказ от имени другого пользователя; только для staff.
	TargetUserID *uuid.UUID
}

type OrderListInput struct {
	Status *models.OrderStatus
	Limit  int
	Offset int
}

type OrderService interface {
	PlaceOrder(ctx context.Context, in PlaceOrderInput) (*models.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListOrders(ctx context.Context, in OrderListInput) ([]models.Order, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, next models.OrderStatus) (*models.Order, error)
	CancelOrder(ctx context.Context, id uuid.UUID) (*models.Order, error)
}
