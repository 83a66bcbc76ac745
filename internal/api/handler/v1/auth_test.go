package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/achadosdoados/backend/internal/domain"
	"github.com/achadosdoados/backend/internal/service"
)

type mockAuthService struct {
	loginFn        func(ctx context.Context, email, senha string) (domain.Usuario, string, error)
	logoutFn       func(ctx context.Context, token string)
	resolveTokenFn func(ctx context.Context, token string) (domain.Usuario, error)
}

func (m *mockAuthService) Login(ctx context.Context, email, senha string) (domain.Usuario, string, error) {
	return m.loginFn(ctx, email, senha)
}

func (m *mockAuthService) Logout(ctx context.Context, token string) {
	m.logoutFn(ctx, token)
}

func (m *mockAuthService) ResolveToken(ctx context.Context, token string) (domain.Usuario, error) {
	return m.resolveTokenFn(ctx, token)
}

func authRouter(h *AuthHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/login", h.HandleLogin)
	router.POST("/api/logout", h.HandleLogout)
	router.GET("/api/me", h.HandleMe)

	return router
}

func TestAuthHandler_HandleLogin(t *testing.T) {
	svc := &mockAuthService{
		loginFn: func(_ context.Context, email, senha string) (domain.Usuario, string, error) {
			if email == "ana@example.com" && senha == "segredo" {
				return domain.Usuario{ID: 3, Nome: "Ana", Email: email, Tipo: domain.TipoDoador}, "tok-123", nil
			}

			return domain.Usuario{}, "", service.ErrCredenciaisInvalidas
		},
	}
	router := authRouter(NewAuthHandler(svc))

	t.Run("success returns token and user without senha", func(t *testing.T) {
		body := strings.NewReader(`{"email": "ana@example.com", "senha": "segredo"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/login", body)
		req.Header.Set("Content-Type", "application/json")

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Token string `json:"token"`
			User  struct {
				ID   uint   `json:"id"`
				Nome string `json:"nome"`
				Tipo string `json:"tipo"`
			} `json:"user"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "tok-123", resp.Token)
		assert.Equal(t, uint(3), resp.User.ID)
		assert.Equal(t, domain.TipoDoador, resp.User.Tipo)
		assert.NotContains(t, rec.Body.String(), "senha")
	})

	t.Run("wrong credentials are 401", func(t *testing.T) {
		body := strings.NewReader(`{"email": "ana@example.com", "senha": "errada"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/login", body)
		req.Header.Set("Content-Type", "application/json")

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "message")
	})

	t.Run("malformed email is 400", func(t *testing.T) {
		body := strings.NewReader(`{"email": "not-an-email", "senha": "segredo"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/login", body)
		req.Header.Set("Content-Type", "application/json")

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAuthHandler_HandleLogout_AlwaysNoContent(t *testing.T) {
	var invalidated string
	svc := &mockAuthService{
		logoutFn: func(_ context.Context, token string) {
			invalidated = token
		},
	}
	router := authRouter(NewAuthHandler(svc))

	t.Run("with token", func(t *testing.T) {
		body := strings.NewReader(`{"token": "tok-123"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/logout", body)
		req.Header.Set("Content-Type", "application/json")

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "tok-123", invalidated)
	})

	t.Run("without body", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/logout", nil))

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestAuthHandler_HandleMe(t *testing.T) {
	svc := &mockAuthService{
		resolveTokenFn: func(_ context.Context, tok string) (domain.Usuario, error) {
			if tok == "tok-123" {
				return domain.Usuario{ID: 3, Nome: "Ana", Tipo: domain.TipoDoador}, nil
			}

			return domain.Usuario{}, service.ErrTokenInvalido
		},
	}
	router := authRouter(NewAuthHandler(svc))

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
		req.Header.Set("Authorization", "Bearer tok-123")

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"nome":"Ana"`)
	})

	t.Run("missing header is 401", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/me", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("stale token is 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
		req.Header.Set("Authorization", "Bearer expired")

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
