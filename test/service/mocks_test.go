package service_test

import (
	"context"

	"markethub/internal/models"
	"markethub/internal/repository"

	"github.com/google/uuid"
)

// Моки для всех зависимостей сервисов

// MockUserRepo
type MockUserRepo struct {
	CreateFunc           func(ctx context.Context, u *models.User) error
	GetByIDFunc          func(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByUsernameFunc    func(ctx context.Context, username string) (*models.User, error)
	ExistsByUsernameFunc func(ctx context.Context, username string) (bool, error)
	ExistsByEmailFunc    func(ctx context.Context, email string) (bool, error)
}

func (m *MockUserRepo) Create(ctx context.Context, u *models.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, u)
	}
	return nil
}

func (m *MockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if m.GetByUsernameFunc != nil {
		return m.GetByUsernameFunc(ctx, username)
	}
	return nil, nil
}

func (m *MockUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	if m.ExistsByUsernameFunc != nil {
		return m.ExistsByUsernameFunc(ctx, username)
	}
	return false, nil
}

func (m *MockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.ExistsByEmailFunc != nil {
		return m.ExistsByEmailFunc(ctx, email)
	}
	return false, nil
}

// MockCategoryRepo
type MockCategoryRepo struct {
	CreateFunc       func(ctx context.Context, c *models.Category) error
	GetByIDFunc      func(ctx context.Context, id uuid.UUID) (*models.Category, error)
	GetBySlugFunc    func(ctx context.Context, slug string) (*models.Category, error)
	ListFunc         func(ctx context.Context) ([]models.Category, error)
	UpdateFieldsFunc func(ctx context.Context, id uuid.UUID, fields map[string]any) error
	DeleteFunc       func(ctx context.Context, id uuid.UUID) (bool, error)
}

func (m *MockCategoryRepo) Create(ctx context.Context, c *models.Category) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, c)
	}
	return nil
}

func (m *MockCategoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockCategoryRepo) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	if m.GetBySlugFunc != nil {
		return m.GetBySlugFunc(ctx, slug)
	}
	return nil, nil
}

func (m *MockCategoryRepo) List(ctx context.Context) ([]models.Category, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *MockCategoryRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	if m.UpdateFieldsFunc != nil {
		return m.UpdateFieldsFunc(ctx, id, fields)
	}
	return nil
}

func (m *MockCategoryRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return false, nil
}

// MockProductRepo
type MockProductRepo struct {
	CreateFunc         func(ctx context.Context, p *models.Product) error
	GetByIDFunc        func(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListFunc           func(ctx context.Context, f repository.ProductListFilter) ([]models.Product, int64, error)
	UpdateFieldsFunc   func(ctx context.Context, id uuid.UUID, fields map[string]any) error
	DeleteFunc         func(ctx context.Context, id uuid.UUID) (bool, error)
	DecrementStockFunc func(ctx context.Context, id uuid.UUID, qty int32) (bool, error)
}

func (m *MockProductRepo) Create(ctx context.Context, p *models.Product) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, p)
	}
	return nil
}

func (m *MockProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockProductRepo) List(ctx context.Context, f repository.ProductListFilter) ([]models.Product, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, f)
	}
	return nil, 0, nil
}

func (m *MockProductRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	if m.UpdateFieldsFunc != nil {
		return m.UpdateFieldsFunc(ctx, id, fields)
	}
	return nil
}

func (m *MockProductRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return false, nil
}

func (m *MockProductRepo) DecrementStock(ctx context.Context, id uuid.UUID, qty int32) (bool, error) {
	if m.DecrementStockFunc != nil {
		return m.DecrementStockFunc(ctx, id, qty)
	}
	return true, nil
}

// MockOrderRepo
type MockOrderRepo struct {
	CreateFunc                  func(ctx context.Context, o *models.Order) error
	GetByIDFunc                 func(ctx context.Context, id uuid.UUID) (*models.Order, error)
	GetByIDForUserFunc          func(ctx context.Context, id, userID uuid.UUID) (*models.Order, error)
	UpdateStatusFunc            func(ctx context.Context, id uuid.UUID, from, to models.OrderStatus) (bool, error)
	UpdateTotalFunc             func(ctx context.Context, id uuid.UUID, totalCents int64) error
	ListFunc                    func(ctx context.Context, f repository.OrderListFilter) ([]*models.Order, int64, error)
	WithTxFunc                  func(ctx context.Context, fn func(repository.OrderRepo, repository.OrderItemRepo, repository.ProductRepo) error) error
	HasDeliveredWithProductFunc func(ctx context.Context, userID, productID uuid.UUID) (bool, error)
}

func (m *MockOrderRepo) Create(ctx context.Context, o *models.Order) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, o)
	}
	return nil
}

func (m *MockOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockOrderRepo) GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (*models.Order, error) {
	if m.GetByIDForUserFunc != nil {
		return m.GetByIDForUserFunc(ctx, id, userID)
	}
	return nil, nil
}

func (m *MockOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to models.OrderStatus) (bool, error) {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, from, to)
	}
	return true, nil
}

func (m *MockOrderRepo) UpdateTotal(ctx context.Context, id uuid.UUID, totalCents int64) error {
	if m.UpdateTotalFunc != nil {
		return m.UpdateTotalFunc(ctx, id, totalCents)
	}
	return nil
}

func (m *MockOrderRepo) List(ctx context.Context, f repository.OrderListFilter) ([]*models.Order, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, f)
	}
	return nil, 0, nil
}

func (m *MockOrderRepo) WithTx(ctx context.Context, fn func(repository.OrderRepo, repository.OrderItemRepo, repository.ProductRepo) error) error {
	if m.WithTxFunc != nil {
		return m.WithTxFunc(ctx, fn)
	}
	return fn(m, &MockOrderItemRepo{}, &MockProductRepo{})
}

func (m *MockOrderRepo) HasDeliveredWithProduct(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	if m.HasDeliveredWithProductFunc != nil {
		return m.HasDeliveredWithProductFunc(ctx, userID, productID)
	}
	return false, nil
}

// MockOrderItemRepo
type MockOrderItemRepo struct {
	BulkCreateFunc   func(ctx context.Context, items []models.OrderItem) error
	GetByOrderIDFunc func(ctx context.Context, orderID uuid.UUID) ([]models.OrderItem, error)
	SumByOrderFunc   func(ctx context.Context, orderID uuid.UUID) (int64, error)
}

func (m *MockOrderItemRepo) BulkCreate(ctx context.Context, items []models.OrderItem) error {
	if m.BulkCreateFunc != nil {
		return m.BulkCreateFunc(ctx, items)
	}
	return nil
}

func (m *MockOrderItemRepo) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]models.OrderItem, error) {
	if m.GetByOrderIDFunc != nil {
		return m.GetByOrderIDFunc(ctx, orderID)
	}
	return nil, nil
}

func (m *MockOrderItemRepo) SumByOrder(ctx context.Context, orderID uuid.UUID) (int64, error) {
	if m.SumByOrderFunc != nil {
		return m.SumByOrderFunc(ctx, orderID)
	}
	return 0, nil
}

// MockReviewRepo
type MockReviewRepo struct {
	CreateFunc                 func(ctx context.Context, rev *models.Review) error
	GetByIDFunc                func(ctx context.Context, id uuid.UUID) (*models.Review, error)
	ExistsByUserAndProductFunc func(ctx context.Context, userID, productID uuid.UUID) (bool, error)
	ListFunc                   func(ctx context.Context, f repository.ReviewListFilter) ([]models.Review, int64, error)
	UpdateFieldsFunc           func(ctx context.Context, id uuid.UUID, fields map[string]any) error
	DeleteFunc                 func(ctx context.Context, id uuid.UUID) (bool, error)
}

func (m *MockReviewRepo) Create(ctx context.Context, rev *models.Review) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, rev)
	}
	return nil
}

func (m *MockReviewRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockReviewRepo) ExistsByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	if m.ExistsByUserAndProductFunc != nil {
		return m.ExistsByUserAndProductFunc(ctx, userID, productID)
	}
	return false, nil
}

func (m *MockReviewRepo) List(ctx context.Context, f repository.ReviewListFilter) ([]models.Review, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, f)
	}
	return nil, 0, nil
}

func (m *MockReviewRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	if m.UpdateFieldsFunc != nil {
		return m.UpdateFieldsFunc(ctx, id, fields)
	}
	return nil
}

func (m *MockReviewRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return false, nil
}
