package repository_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"markethub/internal/migrate"
	"markethub/internal/models"
	"markethub/internal/repository"
	"markethub/pkg/testutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := testutil.SetupTestPostgres(t)
	if err := migrate.MigrateDB(context.Background(), db, zap.NewNop(), migrate.DefaultMigrateOptions()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

var userSeq int

func createUser(t *testing.T, repo *repository.Repository, role models.Role) *models.User {
	t.Helper()
	userSeq++
	u := &models.User{
		Username:     fmt.Sprintf("user%d", userSeq),
		Email:        fmt.Sprintf("user%d@example.com", userSeq),
		PasswordHash: "x",
		Role:         role,
	}
	if err := repo.Users.Create(context.Background(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func createProduct(t *testing.T, repo *repository.Repository, priceCents int64, stock int32) *models.Product {
	t.Helper()
	ctx := context.Background()
	seller := createUser(t, repo, models.RoleSeller)
	cat := &models.Category{Name: "Посуда", Slug: fmt.Sprintf("posuda-%s", uuid.NewString()[:8])}
	if err := repo.Categories.Create(ctx, cat); err != nil {
		t.Fatalf("create category: %v", err)
	}
	p := &models.Product{
		Name:       "чайник",
		PriceCents: priceCents,
		Stock:      stock,
		CategoryID: cat.ID,
		SellerID:   seller.ID,
	}
	if err := repo.Products.Create(ctx, p); err != nil {
		t.Fatalf("create product: %v", err)
	}
	return p
}

func TestProductRepo_DecrementStock(t *testing.T) {
	db := setupDB(t)
	repo := repository.New(db)
	ctx := context.Background()

	p := createProduct(t, repo, 999, 10)

	ok, err := repo.Products.DecrementStock(ctx, p.ID, 4)
	if err != nil || !ok {
		t.Fatalf("DecrementStock: ok=%v err=%v", ok, err)
	}
	got, _ := repo.Products.GetByID(ctx, p.ID)
	if got.Stock != 6 {
		t.Fatalf("stock = %d, want 6", got.Stock)
	}

	// больше остатка — отказ без изменения строки
	ok, err = repo.Products.DecrementStock(ctx, p.ID, 7)
	if err != nil {
		t.Fatalf("DecrementStock over: %v", err)
	}
	if ok {
		t.Fatal("decrement beyond stock succeeded")
	}
	got, _ = repo.Products.GetByID(ctx, p.ID)
	if got.Stock != 6 {
		t.Fatalf("stock after refused decrement = %d, want 6", got.Stock)
	}
}

func TestProductRepo_DecrementStock_Concurrent(t *testing.T) {
	db := setupDB(t)
	repo := repository.New(db)
	ctx := context.Background()

	// stock=5, два конкурирующих списания по 3 — пройти должно ровно одно
	p := createProduct(t, repo, 999, 5)

	var wg sync.WaitGroup
	results := make([]bool, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ok, err := repo.Products.DecrementStock(ctx, p.ID, 3)
			if err != nil {
				t.Errorf("DecrementStock: %v", err)
			}
			results[i] = ok
		}(i)
	}
	wg.Wait()

	if results[0] == results[1] {
		t.Fatalf("want exactly one success, got %v and %v", results[0], results[1])
	}
	got, _ := repo.Products.GetByID(ctx, p.ID)
	if got.Stock != 2 {
		t.Fatalf("final stock = %d, want 2", got.Stock)
	}
}

func TestOrderRepo_WithTx_Rollback(t *testing.T) {
	db := setupDB(t)
	repo := repository.New(db)
	ctx := context.Background()

	user := createUser(t, repo, models.RoleCustomer)
	p := createProduct(t, repo, 999, 10)

	boom := errors.New("boom")
	var orderID uuid.UUID
	err := repo.Orders.WithTx(ctx, func(txOrders repository.OrderRepo, txItems repository.OrderItemRepo, txProducts repository.ProductRepo) error {
		ord := &models.Order{UserID: user.ID, Status: models.OrderStatusPending}
		if err := txOrders.Create(ctx, ord); err != nil {
			return err
		}
		orderID = ord.ID
		if ok, err := txProducts.DecrementStock(ctx, p.ID, 3); err != nil || !ok {
			t.Fatalf("in-tx decrement: ok=%v err=%v", ok, err)
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("WithTx err = %v, want boom", err)
	}

	// откат целиком: ни заказа, ни списания
	ord, err := repo.Orders.GetByID(ctx, orderID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if ord != nil {
		t.Fatal("rolled-back order is visible")
	}
	got, _ := repo.Products.GetByID(ctx, p.ID)
	if got.Stock != 10 {
		t.Fatalf("stock after rollback = %d, want 10", got.Stock)
	}
}

func TestOrderItemRepo_FKRestrictsProductDelete(t *testing.T) {
	db := setupDB(t)
	repo := repository.New(db)
	ctx := context.Background()

	user := createUser(t, repo, models.RoleCustomer)
	p := createProduct(t, repo, 999, 10)

	ord := &models.Order{UserID: user.ID, Status: models.OrderStatusPending}
	if err := repo.Orders.Create(ctx, ord); err != nil {
		t.Fatalf("create order: %v", err)
	}
	items := []models.OrderItem{{OrderID: ord.ID, ProductID: p.ID, Quantity: 1, PriceCents: 999}}
	if err := repo.OrderItems.BulkCreate(ctx, items); err != nil {
		t.Fatalf("BulkCreate: %v", err)
	}

	_, err := repo.Products.Delete(ctx, p.ID)
	if !errors.Is(err, gorm.ErrForeignKeyViolated) {
		t.Fatalf("err = %v, want ErrForeignKeyViolated", err)
	}

	// заказ удаляется каскадом вместе с позициями, после чего товар свободен
	if err := db.WithContext(ctx).Delete(&models.Order{}, "id = ?", ord.ID).Error; err != nil {
		t.Fatalf("delete order: %v", err)
	}
	if ok, err := repo.Products.Delete(ctx, p.ID); err != nil || !ok {
		t.Fatalf("delete product after cascade: ok=%v err=%v", ok, err)
	}
}

func TestReviewRepo_UniqueUserProduct(t *testing.T) {
	db := setupDB(t)
	repo := repository.New(db)
	ctx := context.Background()

	user := createUser(t, repo, models.RoleCustomer)
	p := createProduct(t, repo, 999, 10)

	rev := &models.Review{UserID: user.ID, ProductID: p.ID, Rating: 5}
	if err := repo.Reviews.Create(ctx, rev); err != nil {
		t.Fatalf("Create: %v", err)
	}

	dup := &models.Review{UserID: user.ID, ProductID: p.ID, Rating: 1}
	err := repo.Reviews.Create(ctx, dup)
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("err = %v, want ErrDuplicatedKey", err)
	}

	if exists, err := repo.Reviews.ExistsByUserAndProduct(ctx, user.ID, p.ID); err != nil || !exists {
		t.Fatalf("ExistsByUserAndProduct: exists=%v err=%v", exists, err)
	}
}

func TestOrderRepo_HasDeliveredWithProduct(t *testing.T) {
	db := setupDB(t)
	repo := repository.New(db)
	ctx := context.Background()

	user := createUser(t, repo, models.RoleCustomer)
	p := createProduct(t, repo, 999, 10)

	ord := &models.Order{UserID: user.ID, Status: models.OrderStatusPending}
	if err := repo.Orders.Create(ctx, ord); err != nil {
		t.Fatalf("create order: %v", err)
	}
	items := []models.OrderItem{{OrderID: ord.ID, ProductID: p.ID, Quantity: 1, PriceCents: 999}}
	if err := repo.OrderItems.BulkCreate(ctx, items); err != nil {
		t.Fatalf("BulkCreate: %v", err)
	}

	got, err := repo.Orders.HasDeliveredWithProduct(ctx, user.ID, p.ID)
	if err != nil {
		t.Fatalf("HasDeliveredWithProduct: %v", err)
	}
	if got {
		t.Fatal("pending order must not count as delivered")
	}

	ok, err := repo.Orders.UpdateStatus(ctx, ord.ID, models.OrderStatusPending, models.OrderStatusDelivered)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if !ok {
		t.Fatal("conditional update from pending did not match")
	}
	got, err = repo.Orders.HasDeliveredWithProduct(ctx, user.ID, p.ID)
	if err != nil {
		t.Fatalf("HasDeliveredWithProduct: %v", err)
	}
	if !got {
		t.Fatal("delivered order with the product not found")
	}

	// чужой пользователь права не получает
	other := createUser(t, repo, models.RoleCustomer)
	if got, _ := repo.Orders.HasDeliveredWithProduct(ctx, other.ID, p.ID); got {
		t.Fatal("stranger is eligible")
	}
}

func TestOrderRepo_UpdateStatus_Conditional(t *testing.T) {
	db := setupDB(t)
	repo := repository.New(db)
	ctx := context.Background()

	user := createUser(t, repo, models.RoleCustomer)
	ord := &models.Order{UserID: user.ID, Status: models.OrderStatusPending}
	if err := repo.Orders.Create(ctx, ord); err != nil {
		t.Fatalf("create order: %v", err)
	}

	ok, err := repo.Orders.UpdateStatus(ctx, ord.ID, models.OrderStatusPending, models.OrderStatusCanceled)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if !ok {
		t.Fatal("pending -> canceled did not match the row")
	}

	// заказ уже отменён: перевод из pending строку больше не находит
	ok, err = repo.Orders.UpdateStatus(ctx, ord.ID, models.OrderStatusPending, models.OrderStatusProcessing)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if ok {
		t.Fatal("stale pending -> processing matched a canceled order")
	}

	got, err := repo.Orders.GetByID(ctx, ord.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != models.OrderStatusCanceled {
		t.Errorf("status = %s, want canceled to stay terminal", got.Status)
	}
}

func TestOrderRepo_ListAndScope(t *testing.T) {
	db := setupDB(t)
	repo := repository.New(db)
	ctx := context.Background()

	u1 := createUser(t, repo, models.RoleCustomer)
	u2 := createUser(t, repo, models.RoleCustomer)

	for i := 0; i < 3; i++ {
		if err := repo.Orders.Create(ctx, &models.Order{UserID: u1.ID, Status: models.OrderStatusPending}); err != nil {
			t.Fatalf("create order: %v", err)
		}
	}
	if err := repo.Orders.Create(ctx, &models.Order{UserID: u2.ID, Status: models.OrderStatusPending}); err != nil {
		t.Fatalf("create order: %v", err)
	}

	list, total, err := repo.Orders.List(ctx, repository.OrderListFilter{UserID: &u1.ID, Limit: 2})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 3 {
		t.Fatalf("total = %d, want 3", total)
	}
	if len(list) != 2 {
		t.Fatalf("page len = %d, want 2", len(list))
	}

	st := models.OrderStatusDelivered
	_, total, err = repo.Orders.List(ctx, repository.OrderListFilter{Status: &st})
	if err != nil {
		t.Fatalf("List by status: %v", err)
	}
	if total != 0 {
		t.Fatalf("delivered total = %d, want 0", total)
	}
}
