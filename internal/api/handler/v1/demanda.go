package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/achadosdoados/backend/internal/api/handler/v1/request"
	"github.com/achadosdoados/backend/internal/api/handler/v1/response"
	"github.com/achadosdoados/backend/internal/domain"
	"github.com/achadosdoados/backend/internal/service"
)

type DemandaService interface {
	CriarDemanda(ctx context.Context, demanda domain.Demanda, instituicaoID uint) (domain.Demanda, error)
	BuscarTodasDemandas(ctx context.Context) ([]domain.Demanda, error)
	BuscarDemandasPorTitulo(ctx context.Context, titulo string) ([]domain.Demanda, error)
	BuscarDemandaPorID(ctx context.Context, id uint) (domain.Demanda, error)
	BuscarDemandasPorInstituicao(ctx context.Context, instituicaoID uint) ([]domain.Demanda, error)
	AtualizarDemanda(ctx context.Context, id uint, dados domain.Demanda) (domain.Demanda, error)
	ExcluirDemanda(ctx context.Context, id uint) error
}

type DemandaHandler struct {
	svc  DemandaService
	uSvc UsuarioService
}

func NewDemandaHandler(svc DemandaService, uSvc UsuarioService) *DemandaHandler {
	return &DemandaHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleListDemandas godoc
// @Summary      Busca demandas públicas
// @Description  Sem filtro, lista todas as demandas ativas. Com ?titulo=, filtra pelo título (case-insensitive).
// @Tags         demandas
// @Produce      json
// @Param        titulo query string false "termo de busca no título"
// @Success      200 {array} domain.Demanda
// @Failure      500 {object} response.Err
// @Router       /demandas [get]
func (h *DemandaHandler) HandleListDemandas(ctx *gin.Context) {
	titulo := ctx.Query("titulo")

	var (
		demandas []domain.Demanda
		err      error
	)

	if titulo != "" {
		demandas, err = h.svc.BuscarDemandasPorTitulo(ctx.Request.Context(), titulo)
	} else {
		demandas, err = h.svc.BuscarTodasDemandas(ctx.Request.Context())
	}
	if err != nil {
		err = fmt.Errorf("v1.HandleListDemandas -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, demandas)
}

// HandleGetDemanda godoc
// @Summary      Busca uma demanda pelo ID
// @Tags         demandas
// @Produce      json
// @Param        id path int true "ID da demanda"
// @Success      200 {object} domain.Demanda
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /demandas/{id} [get]
func (h *DemandaHandler) HandleGetDemanda(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		response.RenderErr(ctx, response.ErrNotFound("demanda", "id", ctx.Param("id")))
		return
	}

	demanda, err := h.svc.BuscarDemandaPorID(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrDemandaNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("demanda", "id", id))
			return
		}

		err = fmt.Errorf("v1.HandleGetDemanda -> h.svc.BuscarDemandaPorID -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, demanda)
}

// HandleCreateDemanda godoc
// @Summary      Cria uma demanda no portal da instituição
// @Tags         portal
// @Accept       json
// @Produce      json
// @Param        instituicaoId path int true "ID da instituição"
// @Param        request body request.DemandaRequest true "dados da demanda"
// @Success      201 {object} domain.Demanda
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      403 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /portal/instituicoes/{instituicaoId}/demandas [post]
// @Security     BearerAuth
func (h *DemandaHandler) HandleCreateDemanda(ctx *gin.Context) {
	instituicaoID, err := parseIDParam(ctx, "instituicaoId")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if _, respErr := instituicaoFromContext(ctx, h.uSvc, instituicaoID); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.DemandaRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	demanda, err := h.svc.CriarDemanda(ctx.Request.Context(), req.ToDomain(), instituicaoID)
	if err != nil {
		if errors.Is(err, service.ErrCamposObrigatorios) || errors.Is(err, service.ErrInstituicaoNotFound) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleCreateDemanda -> h.svc.CriarDemanda -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, demanda)
}

// HandleListDemandasInstituicao godoc
// @Summary      Lista as demandas de uma instituição (painel "Meus Pedidos")
// @Tags         portal
// @Produce      json
// @Param        instituicaoId path int true "ID da instituição"
// @Success      200 {array} domain.Demanda
// @Failure      500 {object} response.Err
// @Router       /portal/instituicoes/{instituicaoId}/demandas [get]
func (h *DemandaHandler) HandleListDemandasInstituicao(ctx *gin.Context) {
	instituicaoID, err := parseIDParam(ctx, "instituicaoId")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	demandas, err := h.svc.BuscarDemandasPorInstituicao(ctx.Request.Context(), instituicaoID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListDemandasInstituicao -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, demandas)
}

// HandleGetDemandaPortal godoc
// @Summary      Busca uma demanda do portal, validando a posse
// @Tags         portal
// @Produce      json
// @Param        instituicaoId path int true "ID da instituição"
// @Param        demandaId path int true "ID da demanda"
// @Success      200 {object} domain.Demanda
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      403 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /portal/instituicoes/{instituicaoId}/demandas/{demandaId} [get]
// @Security     BearerAuth
func (h *DemandaHandler) HandleGetDemandaPortal(ctx *gin.Context) {
	demanda, respErr := h.demandaDaInstituicao(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	ctx.JSON(http.StatusOK, demanda)
}

// HandleUpdateDemanda godoc
// @Summary      Atualiza uma demanda (sobrescrita completa)
// @Description  Todos os campos mutáveis são sobrescritos; campos omitidos são anulados.
// @Tags         portal
// @Accept       json
// @Produce      json
// @Param        instituicaoId path int true "ID da instituição"
// @Param        demandaId path int true "ID da demanda"
// @Param        request body request.DemandaRequest true "novos dados"
// @Success      200 {object} domain.Demanda
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      403 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /portal/instituicoes/{instituicaoId}/demandas/{demandaId} [put]
// @Security     BearerAuth
func (h *DemandaHandler) HandleUpdateDemanda(ctx *gin.Context) {
	demanda, respErr := h.demandaDaInstituicao(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	// No Validate() here: update is a full overwrite and accepts any
	// field combination, mirroring the create/update asymmetry of the
	// API's consumers.
	var req request.DemandaRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	atualizada, err := h.svc.AtualizarDemanda(ctx.Request.Context(), demanda.ID, req.ToDomain())
	if err != nil {
		if errors.Is(err, service.ErrDemandaNotFound) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateDemanda -> h.svc.AtualizarDemanda -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, atualizada)
}

// HandleDeleteDemanda godoc
// @Summary      Exclui (logicamente) uma demanda
// @Description  A linha permanece no banco com status "Inativo".
// @Tags         portal
// @Param        instituicaoId path int true "ID da instituição"
// @Param        demandaId path int true "ID da demanda"
// @Success      204
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      403 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /portal/instituicoes/{instituicaoId}/demandas/{demandaId} [delete]
// @Security     BearerAuth
func (h *DemandaHandler) HandleDeleteDemanda(ctx *gin.Context) {
	demanda, respErr := h.demandaDaInstituicao(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.ExcluirDemanda(ctx.Request.Context(), demanda.ID); err != nil {
		if errors.Is(err, service.ErrDemandaNotFound) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteDemanda -> h.svc.ExcluirDemanda -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// demandaDaInstituicao runs the full authorization ladder for demand
// mutation routes: authenticated caller, institution role, path id
// matches the caller, and the target demand belongs to the caller.
func (h *DemandaHandler) demandaDaInstituicao(ctx *gin.Context) (domain.Demanda, *response.Err) {
	instituicaoID, err := parseIDParam(ctx, "instituicaoId")
	if err != nil {
		return domain.Demanda{}, response.ErrBadRequest(err)
	}

	demandaID, err := parseIDParam(ctx, "demandaId")
	if err != nil {
		return domain.Demanda{}, response.ErrBadRequest(err)
	}

	if _, respErr := instituicaoFromContext(ctx, h.uSvc, instituicaoID); respErr != nil {
		return domain.Demanda{}, respErr
	}

	demanda, err := h.svc.BuscarDemandaPorID(ctx.Request.Context(), demandaID)
	if err != nil {
		if errors.Is(err, service.ErrDemandaNotFound) {
			return domain.Demanda{}, response.ErrPermissionDenied(fmt.Errorf("demanda %v não pertence à instituição %v", demandaID, instituicaoID))
		}

		return domain.Demanda{}, response.ErrInternalServerError(fmt.Errorf("v1.demandaDaInstituicao -> %w", err))
	}

	if demanda.Instituicao.ID != instituicaoID {
		return domain.Demanda{}, response.ErrPermissionDenied(fmt.Errorf("demanda %v não pertence à instituição %v", demandaID, instituicaoID))
	}

	return demanda, nil
}

func parseIDParam(ctx *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("parâmetro %v inválido", name)
	}

	return uint(id), nil
}
