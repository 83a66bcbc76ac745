package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/achadosdoados/backend/internal/api/handler/v1/request"
	"github.com/achadosdoados/backend/internal/api/handler/v1/response"
	"github.com/achadosdoados/backend/internal/domain"
	"github.com/achadosdoados/backend/internal/service"
)

type CadastroService interface {
	CadastrarDoador(ctx context.Context, doador domain.Doador) (domain.Doador, error)
	CadastrarInstituicao(ctx context.Context, instituicao domain.Instituicao) (domain.Instituicao, error)
}

type CadastroHandler struct {
	svc  CadastroService
	uSvc UsuarioService
}

func NewCadastroHandler(svc CadastroService, uSvc UsuarioService) *CadastroHandler {
	return &CadastroHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleCadastroDoador godoc
// @Summary      Cadastra um doador
// @Tags         cadastro
// @Accept       json
// @Produce      json
// @Param        request body request.CadastroDoadorRequest true "dados do doador"
// @Success      201 {object} domain.Doador
// @Failure      400 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /cadastro/doador [post]
func (h *CadastroHandler) HandleCadastroDoador(ctx *gin.Context) {
	var req request.CadastroDoadorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	doador, err := h.svc.CadastrarDoador(ctx.Request.Context(), req.ToDomain())
	if err != nil {
		renderCadastroErr(ctx, "v1.HandleCadastroDoador", err)
		return
	}

	ctx.JSON(http.StatusCreated, doador)
}

// HandleCadastroInstituicao godoc
// @Summary      Cadastra uma instituição
// @Tags         cadastro
// @Accept       json
// @Produce      json
// @Param        request body request.CadastroInstituicaoRequest true "dados da instituição"
// @Success      201 {object} domain.Instituicao
// @Failure      400 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /cadastro/instituicao [post]
func (h *CadastroHandler) HandleCadastroInstituicao(ctx *gin.Context) {
	var req request.CadastroInstituicaoRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	instituicao, err := h.svc.CadastrarInstituicao(ctx.Request.Context(), req.ToDomain())
	if err != nil {
		renderCadastroErr(ctx, "v1.HandleCadastroInstituicao", err)
		return
	}

	ctx.JSON(http.StatusCreated, instituicao)
}

// HandleListInstituicoes godoc
// @Summary      Lista as instituições cadastradas
// @Tags         cadastro
// @Produce      json
// @Success      200 {array} domain.Instituicao
// @Failure      500 {object} response.Err
// @Router       /instituicoes [get]
func (h *CadastroHandler) HandleListInstituicoes(ctx *gin.Context) {
	instituicoes, err := h.uSvc.ListInstituicoes(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListInstituicoes -> h.uSvc.ListInstituicoes -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, instituicoes)
}

// Duplicate e-mail and missing required fields share the 400 mapping.
func renderCadastroErr(ctx *gin.Context, op string, err error) {
	if errors.Is(err, service.ErrCamposObrigatorios) || errors.Is(err, service.ErrUsuarioEmailExists) {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("%v -> %w", op, err)))
}
