package v1

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/achadosdoados/backend/internal/api/middleware"
	"github.com/achadosdoados/backend/internal/domain"
	"github.com/achadosdoados/backend/internal/service"
	"github.com/achadosdoados/backend/internal/token"
)

type mockUsuarioService struct {
	getUsuarioFn               func(ctx context.Context, id uint) (domain.Usuario, error)
	getDoadorFn                func(ctx context.Context, id uint) (domain.Doador, error)
	getInstituicaoFn           func(ctx context.Context, id uint) (domain.Instituicao, error)
	listInstituicoesFn         func(ctx context.Context) ([]domain.Instituicao, error)
	atualizarFotoInstituicaoFn func(ctx context.Context, id uint, fotoURL string) (string, error)
}

func (m *mockUsuarioService) GetUsuario(ctx context.Context, id uint) (domain.Usuario, error) {
	return m.getUsuarioFn(ctx, id)
}

func (m *mockUsuarioService) GetDoador(ctx context.Context, id uint) (domain.Doador, error) {
	return m.getDoadorFn(ctx, id)
}

func (m *mockUsuarioService) GetInstituicao(ctx context.Context, id uint) (domain.Instituicao, error) {
	return m.getInstituicaoFn(ctx, id)
}

func (m *mockUsuarioService) ListInstituicoes(ctx context.Context) ([]domain.Instituicao, error) {
	return m.listInstituicoesFn(ctx)
}

func (m *mockUsuarioService) AtualizarFotoInstituicao(ctx context.Context, id uint, fotoURL string) (string, error) {
	return m.atualizarFotoInstituicaoFn(ctx, id, fotoURL)
}

type mockDemandaService struct {
	criarDemandaFn                 func(ctx context.Context, demanda domain.Demanda, instituicaoID uint) (domain.Demanda, error)
	buscarTodasDemandasFn          func(ctx context.Context) ([]domain.Demanda, error)
	buscarDemandasPorTituloFn      func(ctx context.Context, titulo string) ([]domain.Demanda, error)
	buscarDemandaPorIDFn           func(ctx context.Context, id uint) (domain.Demanda, error)
	buscarDemandasPorInstituicaoFn func(ctx context.Context, instituicaoID uint) ([]domain.Demanda, error)
	atualizarDemandaFn             func(ctx context.Context, id uint, dados domain.Demanda) (domain.Demanda, error)
	excluirDemandaFn               func(ctx context.Context, id uint) error
}

func (m *mockDemandaService) CriarDemanda(ctx context.Context, demanda domain.Demanda, instituicaoID uint) (domain.Demanda, error) {
	return m.criarDemandaFn(ctx, demanda, instituicaoID)
}

func (m *mockDemandaService) BuscarTodasDemandas(ctx context.Context) ([]domain.Demanda, error) {
	return m.buscarTodasDemandasFn(ctx)
}

func (m *mockDemandaService) BuscarDemandasPorTitulo(ctx context.Context, titulo string) ([]domain.Demanda, error) {
	return m.buscarDemandasPorTituloFn(ctx, titulo)
}

func (m *mockDemandaService) BuscarDemandaPorID(ctx context.Context, id uint) (domain.Demanda, error) {
	return m.buscarDemandaPorIDFn(ctx, id)
}

func (m *mockDemandaService) BuscarDemandasPorInstituicao(ctx context.Context, instituicaoID uint) ([]domain.Demanda, error) {
	return m.buscarDemandasPorInstituicaoFn(ctx, instituicaoID)
}

func (m *mockDemandaService) AtualizarDemanda(ctx context.Context, id uint, dados domain.Demanda) (domain.Demanda, error) {
	return m.atualizarDemandaFn(ctx, id, dados)
}

func (m *mockDemandaService) ExcluirDemanda(ctx context.Context, id uint) error {
	return m.excluirDemandaFn(ctx, id)
}

// portalRouter mounts the portal demand routes behind the bearer-token
// middleware the same way the server does.
func portalRouter(h *DemandaHandler, tokens *token.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	portal := router.Group("/api/portal", middleware.NewAuthenticator(tokens).RequireToken())
	portal.POST("/instituicoes/:instituicaoId/demandas", h.HandleCreateDemanda)
	portal.PUT("/instituicoes/:instituicaoId/demandas/:demandaId", h.HandleUpdateDemanda)
	portal.DELETE("/instituicoes/:instituicaoId/demandas/:demandaId", h.HandleDeleteDemanda)

	router.GET("/api/demandas/:id", h.HandleGetDemanda)
	router.GET("/api/demandas", h.HandleListDemandas)

	return router
}

func usuarioService(usuarios map[uint]domain.Usuario) *mockUsuarioService {
	return &mockUsuarioService{
		getUsuarioFn: func(_ context.Context, id uint) (domain.Usuario, error) {
			u, ok := usuarios[id]
			if !ok {
				return domain.Usuario{}, service.ErrUsuarioNotFound
			}

			return u, nil
		},
	}
}

func TestDemandaHandler_AuthorizationLadder(t *testing.T) {
	usuarios := map[uint]domain.Usuario{
		5: {ID: 5, Nome: "Lar Esperança", Tipo: domain.TipoInstituicao},
		6: {ID: 6, Nome: "Outra Casa", Tipo: domain.TipoInstituicao},
		9: {ID: 9, Nome: "Ana", Tipo: domain.TipoDoador},
	}
	svc := &mockDemandaService{
		buscarDemandaPorIDFn: func(_ context.Context, id uint) (domain.Demanda, error) {
			if id != 1 {
				return domain.Demanda{}, service.ErrDemandaNotFound
			}

			return domain.Demanda{ID: 1, Titulo: "Cobertores", Instituicao: domain.Instituicao{Usuario: domain.Usuario{ID: 5}}}, nil
		},
		excluirDemandaFn: func(_ context.Context, _ uint) error {
			return nil
		},
	}
	tokens := token.NewStore()
	router := portalRouter(NewDemandaHandler(svc, usuarioService(usuarios)), tokens)

	tokenInstituicao := tokens.Issue(5)
	tokenOutra := tokens.Issue(6)
	tokenDoador := tokens.Issue(9)

	tests := []struct {
		name       string
		authHeader string
		path       string
		wantCode   int
	}{
		{
			name:     "no token is 401",
			path:     "/api/portal/instituicoes/5/demandas/1",
			wantCode: http.StatusUnauthorized,
		},
		{
			name:       "garbage token is 401",
			authHeader: "Bearer nonsense",
			path:       "/api/portal/instituicoes/5/demandas/1",
			wantCode:   http.StatusUnauthorized,
		},
		{
			name:       "donor token is 403",
			authHeader: "Bearer " + tokenDoador,
			path:       "/api/portal/instituicoes/5/demandas/1",
			wantCode:   http.StatusForbidden,
		},
		{
			name:       "institution acting on another institution's path is 403",
			authHeader: "Bearer " + tokenOutra,
			path:       "/api/portal/instituicoes/5/demandas/1",
			wantCode:   http.StatusForbidden,
		},
		{
			name:       "demand owned by someone else is 403",
			authHeader: "Bearer " + tokenOutra,
			path:       "/api/portal/instituicoes/6/demandas/1",
			wantCode:   http.StatusForbidden,
		},
		{
			name:       "unknown demand is 403, not 404",
			authHeader: "Bearer " + tokenInstituicao,
			path:       "/api/portal/instituicoes/5/demandas/99",
			wantCode:   http.StatusForbidden,
		},
		{
			name:       "owner passes every tier",
			authHeader: "Bearer " + tokenInstituicao,
			path:       "/api/portal/instituicoes/5/demandas/1",
			wantCode:   http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodDelete, tt.path, nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantCode != http.StatusNoContent {
				assert.Contains(t, rec.Body.String(), "message")
			}
		})
	}
}

func TestDemandaHandler_HandleGetDemanda_NotFoundIs404(t *testing.T) {
	svc := &mockDemandaService{
		buscarDemandaPorIDFn: func(_ context.Context, _ uint) (domain.Demanda, error) {
			return domain.Demanda{}, service.ErrDemandaNotFound
		},
	}
	router := portalRouter(NewDemandaHandler(svc, usuarioService(nil)), token.NewStore())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/demandas/99", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDemandaHandler_HandleListDemandas_TituloSwitchesQuery(t *testing.T) {
	var filtered, unfiltered bool
	svc := &mockDemandaService{
		buscarTodasDemandasFn: func(_ context.Context) ([]domain.Demanda, error) {
			unfiltered = true

			return []domain.Demanda{}, nil
		},
		buscarDemandasPorTituloFn: func(_ context.Context, titulo string) ([]domain.Demanda, error) {
			filtered = true
			assert.Equal(t, "cobertor", titulo)

			return []domain.Demanda{}, nil
		},
	}
	router := portalRouter(NewDemandaHandler(svc, usuarioService(nil)), token.NewStore())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/demandas?titulo=cobertor", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, filtered)
	assert.False(t, unfiltered)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/demandas", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, unfiltered)
}

func TestDemandaHandler_HandleCreateDemanda_InvalidBody(t *testing.T) {
	usuarios := map[uint]domain.Usuario{
		5: {ID: 5, Tipo: domain.TipoInstituicao},
	}
	tokens := token.NewStore()
	router := portalRouter(NewDemandaHandler(&mockDemandaService{}, usuarioService(usuarios)), tokens)

	body := strings.NewReader(`{"categoria": "Vestuário"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/portal/instituicoes/5/demandas", body)
	req.Header.Set("Authorization", "Bearer "+tokens.Issue(5))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
