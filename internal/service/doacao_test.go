package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/achadosdoados/backend/internal/domain"
	"github.com/achadosdoados/backend/internal/repository"
)

type mockDoacaoRepo struct {
	createFn                 func(ctx context.Context, doacao domain.Doacao) (domain.Doacao, error)
	updateStatusFn           func(ctx context.Context, id uint, status string) (domain.Doacao, error)
	findAllByDoadorIDFn      func(ctx context.Context, doadorID uint) ([]domain.Doacao, error)
	findAllByInstituicaoIDFn func(ctx context.Context, instituicaoID uint) ([]domain.Doacao, error)
}

func (m *mockDoacaoRepo) Create(ctx context.Context, doacao domain.Doacao) (domain.Doacao, error) {
	return m.createFn(ctx, doacao)
}

func (m *mockDoacaoRepo) UpdateStatus(ctx context.Context, id uint, status string) (domain.Doacao, error) {
	return m.updateStatusFn(ctx, id, status)
}

func (m *mockDoacaoRepo) FindAllByDoadorID(ctx context.Context, doadorID uint) ([]domain.Doacao, error) {
	return m.findAllByDoadorIDFn(ctx, doadorID)
}

func (m *mockDoacaoRepo) FindAllByInstituicaoID(ctx context.Context, instituicaoID uint) ([]domain.Doacao, error) {
	return m.findAllByInstituicaoIDFn(ctx, instituicaoID)
}

type mockDoadorRepo struct {
	findDoadorByIDFn func(ctx context.Context, id uint) (domain.Doador, error)
}

func (m *mockDoadorRepo) FindDoadorByID(ctx context.Context, id uint) (domain.Doador, error) {
	return m.findDoadorByIDFn(ctx, id)
}

type mockDoacaoDemandaRepo struct {
	findByIDFn func(ctx context.Context, id uint) (domain.Demanda, error)
}

func (m *mockDoacaoDemandaRepo) FindByID(ctx context.Context, id uint) (domain.Demanda, error) {
	return m.findByIDFn(ctx, id)
}

func doadorExiste(id uint) *mockDoadorRepo {
	return &mockDoadorRepo{
		findDoadorByIDFn: func(_ context.Context, got uint) (domain.Doador, error) {
			if got != id {
				return domain.Doador{}, repository.ErrDoadorNotFound
			}

			return domain.Doador{Usuario: domain.Usuario{ID: id, Tipo: domain.TipoDoador}}, nil
		},
	}
}

func demandaExiste(id uint) *mockDoacaoDemandaRepo {
	return &mockDoacaoDemandaRepo{
		findByIDFn: func(_ context.Context, got uint) (domain.Demanda, error) {
			if got != id {
				return domain.Demanda{}, repository.ErrDemandaNotFound
			}

			return domain.Demanda{ID: id, Status: domain.DemandaStatusAtivo}, nil
		},
	}
}

func TestDoacaoService_RegistrarIntencao(t *testing.T) {
	t.Run("stamps time and starts Aguardando", func(t *testing.T) {
		repo := &mockDoacaoRepo{
			createFn: func(_ context.Context, d domain.Doacao) (domain.Doacao, error) {
				d.ID = 1

				return d, nil
			},
		}
		svc := NewDoacaoService(repo, doadorExiste(3), demandaExiste(7))

		inicio := time.Now()
		doacao, err := svc.RegistrarIntencao(context.Background(), 3, 7)

		require.NoError(t, err)
		assert.Equal(t, domain.DoacaoStatusAguardando, doacao.Status)
		assert.Equal(t, uint(3), doacao.Doador.ID)
		assert.Equal(t, uint(7), doacao.Demanda.ID)
		assert.False(t, doacao.Data.Before(inicio))
	})

	t.Run("unknown doador", func(t *testing.T) {
		svc := NewDoacaoService(&mockDoacaoRepo{}, doadorExiste(3), demandaExiste(7))

		_, err := svc.RegistrarIntencao(context.Background(), 99, 7)

		assert.ErrorIs(t, err, ErrDoadorNotFound)
	})

	t.Run("unknown demanda", func(t *testing.T) {
		svc := NewDoacaoService(&mockDoacaoRepo{}, doadorExiste(3), demandaExiste(7))

		_, err := svc.RegistrarIntencao(context.Background(), 3, 99)

		assert.ErrorIs(t, err, ErrDemandaNotFound)
	})
}

func TestDoacaoService_AtualizarStatus(t *testing.T) {
	t.Run("stores the string verbatim", func(t *testing.T) {
		var gotStatus string
		repo := &mockDoacaoRepo{
			updateStatusFn: func(_ context.Context, id uint, status string) (domain.Doacao, error) {
				gotStatus = status

				return domain.Doacao{ID: id, Status: status}, nil
			},
		}
		svc := NewDoacaoService(repo, doadorExiste(3), demandaExiste(7))

		doacao, err := svc.AtualizarStatus(context.Background(), 1, "Entregue parcialmente")

		require.NoError(t, err)
		assert.Equal(t, "Entregue parcialmente", gotStatus)
		assert.Equal(t, "Entregue parcialmente", doacao.Status)
	})

	t.Run("unknown doacao", func(t *testing.T) {
		repo := &mockDoacaoRepo{
			updateStatusFn: func(_ context.Context, _ uint, _ string) (domain.Doacao, error) {
				return domain.Doacao{}, repository.ErrDoacaoNotFound
			},
		}
		svc := NewDoacaoService(repo, doadorExiste(3), demandaExiste(7))

		_, err := svc.AtualizarStatus(context.Background(), 99, domain.DoacaoStatusRecebida)

		assert.ErrorIs(t, err, ErrDoacaoNotFound)
	})
}

func TestDoacaoService_Listagens(t *testing.T) {
	doacoes := []domain.Doacao{
		{ID: 1, Status: domain.DoacaoStatusAguardando},
		{ID: 2, Status: domain.DoacaoStatusRecebida},
	}
	repo := &mockDoacaoRepo{
		findAllByDoadorIDFn: func(_ context.Context, _ uint) ([]domain.Doacao, error) {
			return doacoes, nil
		},
		findAllByInstituicaoIDFn: func(_ context.Context, _ uint) ([]domain.Doacao, error) {
			return doacoes, nil
		},
	}
	svc := NewDoacaoService(repo, doadorExiste(3), demandaExiste(7))

	porDoador, err := svc.BuscarDoacoesPorDoador(context.Background(), 3)
	require.NoError(t, err)
	assert.Len(t, porDoador, 2)

	porInstituicao, err := svc.BuscarDoacoesPorInstituicao(context.Background(), 5)
	require.NoError(t, err)
	assert.Len(t, porInstituicao, 2)
}
