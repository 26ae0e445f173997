package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"markethub/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func TestRespondServiceError_StatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name string
		err  error
		code int
	}{
		{"review eligibility is a validation failure", service.ErrReviewNotEligible, http.StatusBadRequest},
		{"non-customer placement is a validation failure", service.ErrNotCustomer, http.StatusBadRequest},
		{"target user without staff is a validation failure", service.ErrTargetUserDenied, http.StatusBadRequest},
		{"ownership violation is forbidden", service.ErrForbidden, http.StatusForbidden},
		{"expired edit window is forbidden", service.ErrEditWindowExpired, http.StatusForbidden},
		{"bad credentials are unauthorized", service.ErrInvalidCredentials, http.StatusUnauthorized},
		{"missing order is not found", service.ErrOrderNotFound, http.StatusNotFound},
		{"duplicate review is a conflict", service.ErrReviewExists, http.StatusConflict},
		{"stale cancel is an invalid transition", service.ErrNotPending, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			respondServiceError(c, zap.NewNop(), tt.err)

			if w.Code != tt.code {
				t.Errorf("status = %d, want %d", w.Code, tt.code)
			}
		})
	}
}
