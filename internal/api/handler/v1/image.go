package v1

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/achadosdoados/backend/internal/api/handler/v1/response"
	"github.com/achadosdoados/backend/internal/storage"
)

type ImageHandler struct {
	uSvc  UsuarioService
	store *storage.ImageStore
}

func NewImageHandler(uSvc UsuarioService, store *storage.ImageStore) *ImageHandler {
	return &ImageHandler{
		uSvc:  uSvc,
		store: store,
	}
}

// HandleUploadFotoInstituicao godoc
// @Summary      Envia ou substitui a foto de perfil da instituição autenticada
// @Tags         instituicoes
// @Accept       multipart/form-data
// @Produce      json
// @Param        foto formData file true "imagem de perfil"
// @Success      200 {object} response.FotoResponse
// @Failure      400 {object} response.Err
// @Failure      401 {object} response.Err
// @Failure      403 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /portal/instituicoes/foto [post]
// @Security     BearerAuth
func (h *ImageHandler) HandleUploadFotoInstituicao(ctx *gin.Context) {
	usuario, respErr := instituicaoFromContext(ctx, h.uSvc, 0)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	fileHeader, err := ctx.FormFile("foto")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("arquivo de foto ausente")))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("não foi possível ler o arquivo enviado")))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(errors.New("não foi possível ler o arquivo enviado")))
		return
	}

	// The new file is stored before anything is removed, so a rejected
	// upload leaves the current photo untouched.
	filename, err := h.store.Store(data, fileHeader.Filename, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		if errors.Is(err, storage.ErrEmptyFile) || errors.Is(err, storage.ErrNotAnImage) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleUploadFotoInstituicao -> h.store.Store -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	fotoURL := "/api/images/" + filename
	anterior, err := h.uSvc.AtualizarFotoInstituicao(ctx.Request.Context(), usuario.ID, fotoURL)
	if err != nil {
		err = fmt.Errorf("v1.HandleUploadFotoInstituicao -> h.uSvc.AtualizarFotoInstituicao -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	// A failed removal only leaves an orphan file behind, never a broken
	// profile.
	if old := imageFilename(anterior); old != "" {
		if err := h.store.Delete(old); err != nil {
			zap.L().Warn("falha ao remover foto antiga", zap.String("arquivo", old), zap.Error(err))
		}
	}

	ctx.JSON(http.StatusOK, response.FotoResponse{FotoURL: fotoURL})
}

// HandleServeImage godoc
// @Summary      Serve uma imagem previamente enviada
// @Tags         instituicoes
// @Produce      image/*
// @Param        filename path string true "nome do arquivo"
// @Success      200
// @Failure      404 {object} response.Err
// @Router       /images/{filename} [get]
func (h *ImageHandler) HandleServeImage(ctx *gin.Context) {
	filename := ctx.Param("filename")

	path, err := h.store.Path(filename)
	if err != nil {
		response.RenderErr(ctx, response.ErrNotFound("imagem", "arquivo", filename))
		return
	}

	ctx.Header("Content-Disposition", "inline")
	ctx.File(path)
}

// imageFilename strips the serving prefix from a stored photo URL,
// returning "" for external or empty URLs.
func imageFilename(fotoURL string) string {
	const prefix = "/api/images/"
	if !strings.HasPrefix(fotoURL, prefix) {
		return ""
	}

	return strings.TrimPrefix(fotoURL, prefix)
}
