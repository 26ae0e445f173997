package service_test

import (
	"testing"

	"markethub/internal/models"
	"markethub/internal/service"
)

// Полный перебор матрицы переходов: таблица в transitions.go —
// единственный источник истины, проверяем её поэлементно.
func TestCanTransition_FullMatrix(t *testing.T) {
	statuses := []models.OrderStatus{
		models.OrderStatusPending,
		models.OrderStatusProcessing,
		models.OrderStatusShipped,
		models.OrderStatusDelivered,
		models.OrderStatusCanceled,
	}

	allowed := map[service.ActorKind]map[models.OrderStatus][]models.OrderStatus{
		service.ActorAdmin: {
			models.OrderStatusPending:    {models.OrderStatusProcessing, models.OrderStatusCanceled},
			models.OrderStatusProcessing: {models.OrderStatusShipped, models.OrderStatusCanceled},
			models.OrderStatusShipped:    {models.OrderStatusDelivered},
		},
		service.ActorSeller: {
			models.OrderStatusPending:    {models.OrderStatusProcessing},
			models.OrderStatusProcessing: {models.OrderStatusShipped},
		},
	}

	for _, actor := range []service.ActorKind{service.ActorAdmin, service.ActorSeller} {
		for _, from := range statuses {
			for _, to := range statuses {
				want := false
				for _, a := range allowed[actor][from] {
					if a == to {
						want = true
					}
				}
				if got := service.CanTransition(actor, from, to); got != want {
					t.Errorf("%s: %s => %s = %v, want %v", actor, from, to, got, want)
				}
			}
		}
	}
}

func TestCanTransition_UnknownActorOrStatus(t *testing.T) {
	if service.CanTransition("customer", models.OrderStatusPending, models.OrderStatusProcessing) {
		t.Error("unknown actor kind must not transition")
	}
	if service.CanTransition(service.ActorAdmin, "lost", models.OrderStatusProcessing) {
		t.Error("unknown from-status must not transition")
	}
	if service.CanTransition(service.ActorAdmin, models.OrderStatusPending, "lost") {
		t.Error("unknown to-status must not transition")
	}
}
