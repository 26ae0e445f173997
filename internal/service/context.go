package service

import (
	"context"

	"markethub/internal/models"

	"github.com/google/uuid"
)

type ctxKey string

const (
	ctxUserIDKey ctxKey = "userID"
	ctxRoleKey   ctxKey = "role"
	ctxStaffKey  ctxKey = "staff"
)

func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, ctxUserIDKey, id)
}

func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	v, ok := ctx.Value(ctxUserIDKey).(uuid.UUID)
	return v, ok
}

func WithRole(ctx context.Context, r models.Role) context.Context {
	return context.WithValue(ctx, ctxRoleKey, r)
}

func RoleFromContext(ctx context.Context) (models.Role, bool) {
	v, ok := ctx.Value(ctxRoleKey).(models.Role)
	return v, ok
}

func WithStaff(ctx context.Context, staff bool) context.Context {
	return context.WithValue(ctx, ctxStaffKey, staff)
}

func StaffFromContext(ctx context.Context) bool {
	v, _ := ctx.Value(ctxStaffKey).(bool)
	return v
}

// Actor — кто выполняет запрос; собирается из контекста запроса.
type Actor struct {
	UserID  uuid.UUID
	Role    models.Role
	IsStaff bool
}

func requireAuth(ctx context.Context) (Actor, error) {
	uid, ok := UserIDFromContext(ctx)
	if !ok {
		return Actor{}, ErrUnauthorized
	}
	role, _ := RoleFromContext(ctx) // если роли нет — ни customer-, ни seller-прав
	return Actor{
		UserID:  uid,
		Role:    role,
		IsStaff: StaffFromContext(ctx),
	}, nil
}
