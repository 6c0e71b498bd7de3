package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"stock_valuation/internal/feature/auth/domain"
)

// mockAuthUsecase is a mock implementation of the AuthUsecase interface.
type mockAuthUsecase struct {
	LoginFunc func(ctx context.Context, username, password string) (string, error)
}

// Login is the mock implementation of the Login method.
func (m *mockAuthUsecase) Login(ctx context.Context, username, password string) (string, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, username, password)
	}
	return "", errors.New("login failed") // Default: failure
}

func TestAuthHandler_Login(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		requestBody    gin.H
		mockLoginFunc  func(ctx context.Context, username, password string) (string, error)
		expectedStatus int
		expectedBody   gin.H
	}{
		{
			name:           "success: admin login",
			requestBody:    gin.H{"username": "admin", "password": "password123"},
			mockLoginFunc:  func(ctx context.Context, username, password string) (string, error) { return "dummy-jwt-token", nil },
			expectedStatus: http.StatusOK,
			expectedBody:   gin.H{"token": "dummy-jwt-token"},
		},
		{
			name:           "failure: missing password",
			requestBody:    gin.H{"username": "admin"},
			mockLoginFunc:  nil, // Usecase is not called
			expectedStatus: http.StatusBadRequest,
			expectedBody:   gin.H{"error": "invalid request"},
		},
		{
			name:        "failure: invalid credentials",
			requestBody: gin.H{"username": "admin", "password": "wrong-password"},
			mockLoginFunc: func(ctx context.Context, username, password string) (string, error) {
				return "", domain.ErrInvalidCredentials
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   gin.H{"error": "invalid username or password"},
		},
		{
			name:        "failure: token signing error is hidden",
			requestBody: gin.H{"username": "admin", "password": "password123"},
			mockLoginFunc: func(ctx context.Context, username, password string) (string, error) {
				return "", errors.New("failed to generate token: jwt secret is not set")
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   gin.H{"error": "login failed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockAuthUsecase{LoginFunc: tt.mockLoginFunc}
			handler := NewAuthHandler(mockUC)

			router := gin.New()
			router.POST("/login", handler.Login)

			body, _ := json.Marshal(tt.requestBody)
			req, _ := http.NewRequest(http.MethodPost, "/login", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var responseBody gin.H
			err := json.Unmarshal(w.Body.Bytes(), &responseBody)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedBody, responseBody)
		})
	}
}
