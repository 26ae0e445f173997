package service

import (
	"context"
	"time"

	"markethub/internal/models"
	"markethub/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type orderService struct {
	repo   *repository.Repository
	events EventBus
	now    func() time.Time
	log    *zap.Logger
}

func NewOrderService(repo *repository.Repository, events EventBus, log *zap.Logger) OrderService {
	return &orderService{
		repo:   repo,
		events: events,
		now:    time.Now,
		log:    log,
	}
}

func (s *orderService) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*models.Order, error) {
	actor, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	if in.TargetUserID != nil && !actor.IsStaff {
		return nil, ErrTargetUserDenied
	}
	if !actor.IsStaff && actor.Role != models.RoleCustomer {
		return nil, ErrNotCustomer
	}
	if len(in.Items) == 0 {
		return nil, ErrEmptyItems
	}
	for _, it := range in.Items {
		if it.Quantity <= 0 {
			return nil, ErrQuantityInvalid
		}
	}

	// Повторные строки одного товара склеиваем в одну позицию: на пару
	// (заказ, товар) приходится одна строка order_items, количества суммируются.
	lines := make([]PlaceOrderItem, 0, len(in.Items))
	byProduct := make(map[uuid.UUID]int, len(in.Items))
	for _, it := range in.Items {
		if j, ok := byProduct[it.ProductID]; ok {
			lines[j].Quantity += it.Quantity
			continue
		}
		byProduct[it.ProductID] = len(lines)
		lines = append(lines, it)
	}

	orderUser := actor.UserID
	if in.TargetUserID != nil {
		orderUser = *in.TargetUserID
	}

	var order *models.Order

	// Всё размещение — одна транзакция: заказ, позиции и списания склада
	// коммитятся вместе или не коммитятся вовсе.
	err = s.repo.Orders.WithTx(ctx, func(txOrders repository.OrderRepo, txItems repository.OrderItemRepo, txProducts repository.ProductRepo) error {
		now := s.now()

		order = &models.Order{
			UserID:    orderUser,
			Status:    models.OrderStatusPending,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := txOrders.Create(ctx, order); err != nil {
			return err
		}

		var (
			items []models.OrderItem
			total int64
		)
		for _, it := range lines {
			// Остаток перечитываем внутри транзакции; значениям,
			// прочитанным до неё, не доверяем.
			p, err := txProducts.GetByID(ctx, it.ProductID)
			if err != nil {
				return err
			}
			if p == nil {
				return ErrProductNotFound
			}
			if p.Stock < it.Quantity {
				return &InsufficientStockError{
					ProductID: p.ID,
					Name:      p.Name,
					Available: p.Stock,
					Requested: it.Quantity,
				}
			}

			// Условный UPDATE сериализует конкурирующие списания: из двух
			// одновременных заказов на последний остаток пройдёт один.
			ok, err := txProducts.DecrementStock(ctx, p.ID, it.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				fresh, err := txProducts.GetByID(ctx, p.ID)
				if err != nil {
					return err
				}
				avail := int32(0)
				if fresh != nil {
					avail = fresh.Stock
				}
				return &InsufficientStockError{
					ProductID: p.ID,
					Name:      p.Name,
					Available: avail,
					Requested: it.Quantity,
				}
			}

			items = append(items, models.OrderItem{
				OrderID:    order.ID,
				ProductID:  p.ID,
				Quantity:   it.Quantity,
				PriceCents: p.PriceCents, // снимок цены на момент заказа
				CreatedAt:  now,
			})
			total += p.PriceCents * int64(it.Quantity)
		}

		if err := txItems.BulkCreate(ctx, items); err != nil {
			return err
		}
		if err := txOrders.UpdateTotal(ctx, order.ID, total); err != nil {
			return err
		}

		full, err := txOrders.GetByID(ctx, order.ID)
		if err != nil {
			return err
		}
		order = full
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.events != nil {
		evItems := make([]OrderItemEvent, 0, len(order.Items))
		for _, it := range order.Items {
			evItems = append(evItems, OrderItemEvent{
				ProductID:  it.ProductID,
				Quantity:   it.Quantity,
				PriceCents: it.PriceCents,
				LineTotal:  it.LineTotalCents(),
			})
		}
		if err := s.events.PublishOrderPlaced(ctx, OrderPlacedEvent{
			OrderID:    order.ID,
			UserID:     order.UserID,
			Items:      evItems,
			TotalCents: order.TotalPriceCents,
			CreatedAt:  order.CreatedAt,
		}); err != nil {
			s.log.Warn("publish order placed", zap.Error(err))
		}
	}

	return order, nil
}

func (s *orderService) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	actor, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	var ord *models.Order
	if actor.IsStaff {
		ord, err = s.repo.Orders.GetByID(ctx, id)
	} else {
		ord, err = s.repo.Orders.GetByIDForUser(ctx, id, actor.UserID)
	}
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, ErrOrderNotFound
	}
	return ord, nil
}

func (s *orderService) ListOrders(ctx context.Context, in OrderListInput) ([]models.Order, int64, error) {
	actor, err := requireAuth(ctx)
	if err != nil {
		return nil, 0, err
	}

	f := repository.OrderListFilter{
		Status: in.Status,
		Limit:  in.Limit,
		Offset: in.Offset,
	}
	if !actor.IsStaff {
		f.UserID = &actor.UserID
	}

	ordersPtr, total, err := s.repo.Orders.List(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	orders := make([]models.Order, len(ordersPtr))
	for i, o := range ordersPtr {
		orders[i] = *o
	}
	return orders, total, nil
}

func (s *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, next models.OrderStatus) (*models.Order, error) {
	actor, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}
	kind, ok := actorKindOf(actor)
	if !ok {
		return nil, ErrForbidden
	}
	if !isValidStatus(next) {
		return nil, ErrInvalidStatus
	}

	ord, err := s.repo.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, ErrOrderNotFound
	}

	if !CanTransition(kind, ord.Status, next) {
		return nil, &InvalidTransitionError{From: ord.Status, To: next, Actor: string(kind)}
	}

	from := ord.Status
	ok, err = s.repo.Orders.UpdateStatus(ctx, id, from, next)
	if err != nil {
		return nil, err
	}
	if !ok {
		// статус сменился под нами; перечитываем и отвечаем по фактическому
		cur, err := s.repo.Orders.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if cur == nil {
			return nil, ErrOrderNotFound
		}
		return nil, &InvalidTransitionError{From: cur.Status, To: next, Actor: string(kind)}
	}
	ord, err = s.repo.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.publishStatusChanged(ctx, ord, from, next)
	return ord, nil
}

// CancelOrder — узкая self-service операция владельца (или staff):
// допустима только пока заказ pending.
func (s *orderService) CancelOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	actor, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	ord, err := s.repo.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, ErrOrderNotFound
	}
	if !actor.IsStaff && ord.UserID != actor.UserID {
		return nil, ErrForbidden
	}
	if ord.Status != models.OrderStatusPending {
		return nil, ErrNotPending
	}

	from := ord.Status
	ok, err := s.repo.Orders.UpdateStatus(ctx, id, models.OrderStatusPending, models.OrderStatusCanceled)
	if err != nil {
		return nil, err
	}
	if !ok {
		// конкурирующее обновление увело заказ из pending
		return nil, ErrNotPending
	}
	ord, err = s.repo.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.publishStatusChanged(ctx, ord, from, models.OrderStatusCanceled)
	return ord, nil
}

func (s *orderService) publishStatusChanged(ctx context.Context, ord *models.Order, from, to models.OrderStatus) {
	if s.events == nil || ord == nil {
		return
	}
	if err := s.events.PublishOrderStatusChanged(ctx, OrderStatusChangedEvent{
		OrderID:   ord.ID,
		UserID:    ord.UserID,
		From:      string(from),
		To:        string(to),
		ChangedAt: s.now(),
	}); err != nil {
		s.log.Warn("publish order status changed", zap.Error(err))
	}
}
