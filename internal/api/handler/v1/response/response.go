package response

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/achadosdoados/backend/internal/domain"
)

// Err is the single error body shape of the API: {"message": ...}.
type Err struct {
	StatusCode int    `json:"-"`
	Message    string `json:"message"`
}

func (e *Err) Error() string {
	return e.Message
}

func ErrBadRequest(err error) *Err {
	return &Err{
		StatusCode: http.StatusBadRequest,
		Message:    err.Error(),
	}
}

func ErrUnauthorized(msg string) *Err {
	return &Err{
		StatusCode: http.StatusUnauthorized,
		Message:    msg,
	}
}

func ErrPermissionDenied(err error) *Err {
	return &Err{
		StatusCode: http.StatusForbidden,
		Message:    err.Error(),
	}
}

func ErrNotFound(resource, key string, value interface{}) *Err {
	return &Err{
		StatusCode: http.StatusNotFound,
		Message:    fmt.Sprintf("%v não encontrado(a) (%v=%v)", resource, key, value),
	}
}

func ErrInternalServerError(err error) *Err {
	return &Err{
		StatusCode: http.StatusInternalServerError,
		Message:    err.Error(),
	}
}

// RenderErr writes the error body. 5xx errors are logged; 4xx are the
// client's problem.
func RenderErr(ctx *gin.Context, err *Err) {
	if err.StatusCode >= http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.Int("status", err.StatusCode),
			zap.String("path", ctx.FullPath()),
			zap.String("message", err.Message),
		)
	}

	ctx.AbortWithStatusJSON(err.StatusCode, err)
}

// UserInfo is the public projection of a user: what /login and /me
// return, never carrying credentials.
type UserInfo struct {
	ID    uint   `json:"id"`
	Nome  string `json:"nome"`
	Email string `json:"email"`
	Tipo  string `json:"tipo"`
}

func NewUserInfo(u domain.Usuario) UserInfo {
	return UserInfo{
		ID:    u.ID,
		Nome:  u.Nome,
		Email: u.Email,
		Tipo:  u.Tipo,
	}
}

type LoginResponse struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}

type FotoResponse struct {
	FotoURL string `json:"fotoUrl"`
}
