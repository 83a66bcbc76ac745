package v1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/achadosdoados/backend/internal/api/handler/v1/response"
	"github.com/achadosdoados/backend/internal/api/middleware"
	"github.com/achadosdoados/backend/internal/domain"
)

// UsuarioService is what handlers need to turn an authenticated user ID
// back into a user record for role and ownership checks.
type UsuarioService interface {
	GetUsuario(ctx context.Context, id uint) (domain.Usuario, error)
	GetDoador(ctx context.Context, id uint) (domain.Doador, error)
	GetInstituicao(ctx context.Context, id uint) (domain.Instituicao, error)
	ListInstituicoes(ctx context.Context) ([]domain.Instituicao, error)
	AtualizarFotoInstituicao(ctx context.Context, id uint, fotoURL string) (string, error)
}

// usuarioFromContext loads the user the authenticator resolved. It is
// tier two of the authorization ladder: tier one (the token) already
// passed, this one answers "who is it".
func usuarioFromContext(ctx *gin.Context, svc UsuarioService) (domain.Usuario, *response.Err) {
	raw, ok := ctx.Get(middleware.ContextKeyUserID)
	if !ok {
		return domain.Usuario{}, response.ErrUnauthorized("token ausente")
	}

	userID, ok := raw.(uint)
	if !ok {
		return domain.Usuario{}, response.ErrUnauthorized("token inválido")
	}

	usuario, err := svc.GetUsuario(ctx.Request.Context(), userID)
	if err != nil {
		return domain.Usuario{}, response.ErrUnauthorized("usuário não encontrado")
	}

	return usuario, nil
}

// instituicaoFromContext additionally enforces the role and, when
// instituicaoID is nonzero, that the caller IS that institution.
func instituicaoFromContext(ctx *gin.Context, svc UsuarioService, instituicaoID uint) (domain.Usuario, *response.Err) {
	usuario, respErr := usuarioFromContext(ctx, svc)
	if respErr != nil {
		return domain.Usuario{}, respErr
	}

	if usuario.Tipo != domain.TipoInstituicao {
		return domain.Usuario{}, response.ErrPermissionDenied(fmt.Errorf("usuário %v não é uma instituição", usuario.ID))
	}

	if instituicaoID != 0 && usuario.ID != instituicaoID {
		return domain.Usuario{}, response.ErrPermissionDenied(fmt.Errorf("token não pertence à instituição %v", instituicaoID))
	}

	return usuario, nil
}

// HandleHealthcheck godoc
// @Summary      Healthcheck
// @Produce      plain
// @Success      200 {string} string "."
// @Router       / [get]
func HandleHealthcheck(ctx *gin.Context) {
	ctx.String(http.StatusOK, ".")
}
