package router_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"markethub/internal/models"
	"markethub/internal/router"
	"markethub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type stubTokens struct{ claims service.Claims }

func (s *stubTokens) SignAccess(ctx context.Context, u *models.User, ttl time.Duration) (string, time.Time, error) {
	return "", time.Time{}, nil
}

func (s *stubTokens) ParseAndValidateAccess(ctx context.Context, token string) (*service.Claims, error) {
	c := s.claims
	return &c, nil
}

type stubOrders struct{}

func (stubOrders) PlaceOrder(ctx context.Context, in service.PlaceOrderInput) (*models.Order, error) {
	return nil, service.ErrOrderNotFound
}

func (stubOrders) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return nil, service.ErrOrderNotFound
}

func (stubOrders) ListOrders(ctx context.Context, in service.OrderListInput) ([]models.Order, int64, error) {
	return nil, 0, nil
}

func (stubOrders) UpdateStatus(ctx context.Context, id uuid.UUID, next models.OrderStatus) (*models.Order, error) {
	return nil, service.ErrOrderNotFound
}

func (stubOrders) CancelOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return nil, service.ErrOrderNotFound
}

// memCounter — счётчик окна в памяти вместо Redis.
type memCounter struct{ hits map[string]int64 }

func (m *memCounter) IncrRate(ctx context.Context, scope, subject string, window time.Duration) (int64, error) {
	if m.hits == nil {
		m.hits = map[string]int64{}
	}
	key := scope + ":" + subject
	m.hits[key]++
	return m.hits[key], nil
}

func TestOrdersScopeCoversMutations(t *testing.T) {
	gin.SetMode(gin.TestMode)

	counter := &memCounter{}
	r := router.Router(router.Deps{
		Orders: stubOrders{},
		Tokens: &stubTokens{claims: service.Claims{UserID: uuid.New(), IsStaff: true}},
		Redis:  counter,
		Limits: router.RateLimits{OrdersPerWindow: 1, ReviewsPerWindow: 1, Window: time.Minute},
		Log:    zap.NewNop(),
	})

	do := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Authorization", "Bearer t")
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	statusPath := "/api/v1/orders/" + uuid.NewString() + "/status"

	// первый запрос проходит лимитер и доходит до обработчика
	if w := do(http.MethodPatch, statusPath, `{"status":"processing"}`); w.Code != http.StatusNotFound {
		t.Fatalf("first status update: code = %d, want 404", w.Code)
	}

	// смена статуса, размещение и отмена делят scope "orders":
	// квота исчерпана первым же запросом
	if w := do(http.MethodPatch, statusPath, `{"status":"processing"}`); w.Code != http.StatusTooManyRequests {
		t.Errorf("second status update: code = %d, want 429", w.Code)
	}
	if w := do(http.MethodPost, "/api/v1/orders", `{"items":[{"product_id":"`+uuid.NewString()+`","quantity":1}]}`); w.Code != http.StatusTooManyRequests {
		t.Errorf("place after exhausted scope: code = %d, want 429", w.Code)
	}
	if w := do(http.MethodPost, "/api/v1/orders/"+uuid.NewString()+"/cancel", ""); w.Code != http.StatusTooManyRequests {
		t.Errorf("cancel after exhausted scope: code = %d, want 429", w.Code)
	}

	// чтение не троттлится
	if w := do(http.MethodGet, "/api/v1/orders", ""); w.Code != http.StatusOK {
		t.Errorf("list orders: code = %d, want 200", w.Code)
	}
}
