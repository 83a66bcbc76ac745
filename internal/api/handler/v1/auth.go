package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/achadosdoados/backend/internal/api/handler/v1/request"
	"github.com/achadosdoados/backend/internal/api/handler/v1/response"
	"github.com/achadosdoados/backend/internal/api/middleware"
	"github.com/achadosdoados/backend/internal/domain"
	"github.com/achadosdoados/backend/internal/service"
)

type AuthService interface {
	Login(ctx context.Context, email, senha string) (domain.Usuario, string, error)
	Logout(ctx context.Context, token string)
	ResolveToken(ctx context.Context, token string) (domain.Usuario, error)
}

type AuthHandler struct {
	svc AuthService
}

func NewAuthHandler(svc AuthService) *AuthHandler {
	return &AuthHandler{
		svc: svc,
	}
}

// HandleLogin godoc
// @Summary      Login com e-mail e senha
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body request.LoginRequest true "credenciais"
// @Success      200 {object} response.LoginResponse
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /login [post]
func (h *AuthHandler) HandleLogin(ctx *gin.Context) {
	req := request.LoginRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	usuario, tok, err := h.svc.Login(ctx.Request.Context(), req.Email, req.Senha)
	if err != nil {
		if errors.Is(err, service.ErrCredenciaisInvalidas) {
			response.RenderErr(ctx, response.ErrUnauthorized("credenciais inválidas"))
			return
		}

		err = fmt.Errorf("v1.HandleLogin -> h.svc.Login -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.LoginResponse{
		Token: tok,
		User:  response.NewUserInfo(usuario),
	})
}

// HandleLogout godoc
// @Summary      Invalida um token de sessão
// @Tags         auth
// @Accept       json
// @Param        request body request.LogoutRequest true "token"
// @Success      204
// @Router       /logout [post]
func (h *AuthHandler) HandleLogout(ctx *gin.Context) {
	req := request.LogoutRequest{}
	// An unreadable body is treated as "no token": logout never fails.
	_ = ctx.ShouldBindJSON(&req)

	h.svc.Logout(ctx.Request.Context(), req.Token)

	ctx.Status(http.StatusNoContent)
}

// HandleMe godoc
// @Summary      Dados do usuário autenticado
// @Tags         auth
// @Produce      json
// @Success      200 {object} response.UserInfo
// @Failure      401 {object} response.Err
// @Router       /me [get]
// @Security     BearerAuth
func (h *AuthHandler) HandleMe(ctx *gin.Context) {
	tok, ok := middleware.BearerToken(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrUnauthorized("token ausente"))
		return
	}

	usuario, err := h.svc.ResolveToken(ctx.Request.Context(), tok)
	if err != nil {
		if errors.Is(err, service.ErrTokenInvalido) {
			response.RenderErr(ctx, response.ErrUnauthorized("token inválido"))
			return
		}

		err = fmt.Errorf("v1.HandleMe -> h.svc.ResolveToken -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewUserInfo(usuario))
}
