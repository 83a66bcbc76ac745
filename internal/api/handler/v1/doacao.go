package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/achadosdoados/backend/internal/api/handler/v1/response"
	"github.com/achadosdoados/backend/internal/api/middleware"
	"github.com/achadosdoados/backend/internal/domain"
	"github.com/achadosdoados/backend/internal/service"
)

type DoacaoService interface {
	RegistrarIntencao(ctx context.Context, doadorID, demandaID uint) (domain.Doacao, error)
	AtualizarStatus(ctx context.Context, doacaoID uint, status string) (domain.Doacao, error)
	BuscarDoacoesPorDoador(ctx context.Context, doadorID uint) ([]domain.Doacao, error)
	BuscarDoacoesPorInstituicao(ctx context.Context, instituicaoID uint) ([]domain.Doacao, error)
}

type DoacaoAuthService interface {
	ResolveToken(ctx context.Context, token string) (domain.Usuario, error)
}

type DoacaoHandler struct {
	svc     DoacaoService
	uSvc    UsuarioService
	authSvc DoacaoAuthService
}

func NewDoacaoHandler(svc DoacaoService, uSvc UsuarioService, authSvc DoacaoAuthService) *DoacaoHandler {
	return &DoacaoHandler{
		svc:     svc,
		uSvc:    uSvc,
		authSvc: authSvc,
	}
}

// HandleRegistrarDoacao godoc
// @Summary      Registra a intenção de uma doação
// @Description  O doador vem do token Bearer quando presente; o parâmetro doadorId é o fallback para clientes antigos.
// @Tags         doacoes
// @Produce      json
// @Param        doadorId query int false "ID do doador (fallback sem token)"
// @Param        demandaId query int true "ID da demanda"
// @Success      201 {object} domain.Doacao
// @Failure      400 {object} response.Err
// @Failure      403 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /doacoes [post]
// @Security     BearerAuth
func (h *DoacaoHandler) HandleRegistrarDoacao(ctx *gin.Context) {
	demandaID, err := strconv.ParseUint(ctx.Query("demandaId"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("parâmetro demandaId inválido")))
		return
	}

	doadorID, ok := h.resolveDoador(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrPermissionDenied(errors.New("doador não identificado")))
		return
	}

	doacao, err := h.svc.RegistrarIntencao(ctx.Request.Context(), doadorID, uint(demandaID))
	if err != nil {
		if errors.Is(err, service.ErrDoadorNotFound) || errors.Is(err, service.ErrDemandaNotFound) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleRegistrarDoacao -> h.svc.RegistrarIntencao -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, doacao)
}

// resolveDoador identifies the donor: first from the bearer token, then
// from the explicit doadorId query parameter. Either way the resolved
// user must actually be a donor.
func (h *DoacaoHandler) resolveDoador(ctx *gin.Context) (uint, bool) {
	if tok, ok := middleware.BearerToken(ctx); ok {
		usuario, err := h.authSvc.ResolveToken(ctx.Request.Context(), tok)
		if err == nil && usuario.Tipo == domain.TipoDoador {
			return usuario.ID, true
		}
	}

	raw := ctx.Query("doadorId")
	if raw == "" {
		return 0, false
	}

	doadorID, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, false
	}

	usuario, err := h.uSvc.GetUsuario(ctx.Request.Context(), uint(doadorID))
	if err != nil || usuario.Tipo != domain.TipoDoador {
		return 0, false
	}

	return usuario.ID, true
}

// HandleAtualizarStatus godoc
// @Summary      Atualiza o status de uma doação
// @Tags         doacoes
// @Produce      json
// @Param        doacaoId path int true "ID da doação"
// @Param        status query string true "novo status"
// @Success      200 {object} domain.Doacao
// @Failure      400 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /doacoes/{doacaoId}/status [put]
func (h *DoacaoHandler) HandleAtualizarStatus(ctx *gin.Context) {
	doacaoID, err := parseIDParam(ctx, "doacaoId")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	doacao, err := h.svc.AtualizarStatus(ctx.Request.Context(), doacaoID, ctx.Query("status"))
	if err != nil {
		if errors.Is(err, service.ErrDoacaoNotFound) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleAtualizarStatus -> h.svc.AtualizarStatus -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, doacao)
}

// HandleListDoacoesDoador godoc
// @Summary      Histórico de doações de um doador
// @Tags         doacoes
// @Produce      json
// @Param        doadorId path int true "ID do doador"
// @Success      200 {array} domain.Doacao
// @Failure      400 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /doacoes/doador/{doadorId} [get]
func (h *DoacaoHandler) HandleListDoacoesDoador(ctx *gin.Context) {
	doadorID, err := parseIDParam(ctx, "doadorId")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	doacoes, err := h.svc.BuscarDoacoesPorDoador(ctx.Request.Context(), doadorID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListDoacoesDoador -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, doacoes)
}

// HandleListDoacoesInstituicao godoc
// @Summary      Doações recebidas por uma instituição
// @Tags         doacoes
// @Produce      json
// @Param        instituicaoId path int true "ID da instituição"
// @Success      200 {array} domain.Doacao
// @Failure      400 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /doacoes/instituicao/{instituicaoId} [get]
func (h *DoacaoHandler) HandleListDoacoesInstituicao(ctx *gin.Context) {
	instituicaoID, err := parseIDParam(ctx, "instituicaoId")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	doacoes, err := h.svc.BuscarDoacoesPorInstituicao(ctx.Request.Context(), instituicaoID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListDoacoesInstituicao -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, doacoes)
}
