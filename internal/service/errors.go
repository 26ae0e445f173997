package service

import (
	"errors"
	"fmt"

	"markethub/internal/models"

	"github.com/google/uuid"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameExists     = errors.New("username already registered")
	ErrEmailExists        = errors.New("email already registered")
	ErrPasswordMismatch   = errors.New("repeat password does not match")
	ErrPasswordTooShort   = errors.New("password is too short")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrCategoryNotFound = errors.New("category not found")
	ErrSlugExists       = errors.New("category slug already exists")
	ErrProductNotFound  = errors.New("product not found")
	ErrProductInUse     = errors.New("product is referenced by order items")
	ErrPriceNegative    = errors.New("price must be non-negative")
	ErrStockNegative    = errors.New("stock must be non-negative")

	ErrOrderNotFound    = errors.New("order not found")
	ErrEmptyItems       = errors.New("order must contain at least one item")
	ErrQuantityInvalid  = errors.New("quantity must be > 0")
	ErrNotCustomer      = errors.New("only customers can place orders")
	ErrTargetUserDenied = errors.New("only staff may place an order for another user")
	ErrNotPending       = errors.New("order is no longer pending")
	ErrInvalidStatus    = errors.New("invalid status")

	ErrReviewNotFound    = errors.New("review not found")
	ErrRatingOutOfRange  = errors.New("rating must be between 1 and 5")
	ErrReviewExists      = errors.New("review for this product already exists")
	ErrReviewNotEligible = errors.New("product can be reviewed only after it is delivered")
	ErrEditWindowExpired = errors.New("review edit window has expired")
)

// InsufficientStockError называет товар и доступный остаток;
// весь заказ при этом откатывается.
type InsufficientStockError struct {
	ProductID uuid.UUID
	Name      string
	Available int32
	Requested int32
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: available %d, requested %d",
		e.Name, e.Available, e.Requested)
}

// InvalidTransitionError называет запрошенный переход и роль актора.
type InvalidTransitionError struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("transition %s => %s is not allowed for %s", e.From, e.To, e.Actor)
}
