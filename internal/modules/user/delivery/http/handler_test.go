package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"titlerate/backend/internal/modules/user/dto"
	"titlerate/backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuthService struct {
	signUpErr   error
	exchangeErr error
}

func (s *stubAuthService) SignUp(_ context.Context, input dto.SignUpInput) (*dto.SignUpResponse, error) {
	if s.signUpErr != nil {
		return nil, s.signUpErr
	}
	return &dto.SignUpResponse{Email: input.Email, Username: input.Username}, nil
}

func (s *stubAuthService) ExchangeToken(_ context.Context, _ dto.TokenInput) (*dto.TokenResponse, error) {
	if s.exchangeErr != nil {
		return nil, s.exchangeErr
	}
	return &dto.TokenResponse{Token: "signed-token"}, nil
}

func newAuthRouter(svc *stubAuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAuthHandler(svc)

	router := gin.New()
	router.POST("/auth/signup", h.SignUp)
	router.POST("/auth/token", h.ExchangeToken)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSignUpEchoesAcceptedPair(t *testing.T) {
	router := newAuthRouter(&stubAuthService{})

	w := postJSON(t, router, "/auth/signup", gin.H{"email": "alice@example.com", "username": "alice"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.SignUpResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "alice", resp.Username)
	assert.Equal(t, "alice@example.com", resp.Email)
}

func TestSignUpRejectsMalformedBody(t *testing.T) {
	router := newAuthRouter(&stubAuthService{})

	w := postJSON(t, router, "/auth/signup", gin.H{"email": "not-an-email", "username": "alice"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "Email")
}

func TestSignUpMapsConflictToBadRequest(t *testing.T) {
	router := newAuthRouter(&stubAuthService{
		signUpErr: fmt.Errorf("%w: email is already taken", apperror.ErrConflict),
	})

	w := postJSON(t, router, "/auth/signup", gin.H{"email": "alice@example.com", "username": "alice"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSignUpMapsDeliveryFailureToBadGateway(t *testing.T) {
	router := newAuthRouter(&stubAuthService{
		signUpErr: fmt.Errorf("%w: smtp unreachable", apperror.ErrDelivery),
	})

	w := postJSON(t, router, "/auth/signup", gin.H{"email": "alice@example.com", "username": "alice"})
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestExchangeTokenReturnsToken(t *testing.T) {
	router := newAuthRouter(&stubAuthService{})

	w := postJSON(t, router, "/auth/token", gin.H{"username": "alice", "confirmation_code": "XK3P9"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "signed-token", resp.Token)
}

func TestExchangeTokenRequiresCode(t *testing.T) {
	router := newAuthRouter(&stubAuthService{})

	w := postJSON(t, router, "/auth/token", gin.H{"username": "alice"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExchangeTokenUnknownUser(t *testing.T) {
	router := newAuthRouter(&stubAuthService{
		exchangeErr: fmt.Errorf("%w: user %q", apperror.ErrNotFound, "ghost"),
	})

	w := postJSON(t, router, "/auth/token", gin.H{"username": "ghost", "confirmation_code": "XK3P9"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
