package service

import "markethub/internal/models"

// ActorKind — кто меняет статус заказа. У покупателя общего права на смену
// статуса нет, ему доступна только отмена собственного pending-заказа.
type ActorKind string

const (
	ActorAdmin  ActorKind = "admin"
	ActorSeller ActorKind = "seller"
)

type statusSet map[models.OrderStatus]struct{}

// transitions — единственный источник истины для машины статусов:
// (роль актора, текущий статус) -> множество допустимых следующих.
// delivered и canceled терминальны для всех.
var transitions = map[ActorKind]map[models.OrderStatus]statusSet{
	ActorAdmin: {
		models.OrderStatusPending:    {models.OrderStatusProcessing: {}, models.OrderStatusCanceled: {}},
		models.OrderStatusProcessing: {models.OrderStatusShipped: {}, models.OrderStatusCanceled: {}},
		models.OrderStatusShipped:    {models.OrderStatusDelivered: {}},
		models.OrderStatusDelivered:  {},
		models.OrderStatusCanceled:   {},
	},
	ActorSeller: {
		models.OrderStatusPending:    {models.OrderStatusProcessing: {}},
		models.OrderStatusProcessing: {models.OrderStatusShipped: {}},
		models.OrderStatusShipped:    {},
		models.OrderStatusDelivered:  {},
		models.OrderStatusCanceled:   {},
	},
}

// CanTransition проверяет переход по таблице. Неизвестный статус или роль
// без общего права на смену статуса — всегда false.
func CanTransition(actor ActorKind, from, to models.OrderStatus) bool {
	byStatus, ok := transitions[actor]
	if !ok {
		return false
	}
	allowed, ok := byStatus[from]
	if !ok {
		return false
	}
	_, ok = allowed[to]
	return ok
}

func actorKindOf(a Actor) (ActorKind, bool) {
	switch {
	case a.IsStaff:
		return ActorAdmin, true
	case a.Role == models.RoleSeller:
		return ActorSeller, true
	default:
		return "", false
	}
}

func isValidStatus(s models.OrderStatus) bool {
	switch s {
	case models.OrderStatusPending, models.OrderStatusProcessing,
		models.OrderStatusShipped, models.OrderStatusDelivered,
		models.OrderStatusCanceled:
		return true
	}
	return false
}
