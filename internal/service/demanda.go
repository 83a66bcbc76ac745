package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/achadosdoados/backend/internal/domain"
	"github.com/achadosdoados/backend/internal/repository"
)

var ErrDemandaNotFound = repository.ErrDemandaNotFound

type DemandaRepository interface {
	Create(ctx context.Context, demanda domain.Demanda) (domain.Demanda, error)
	Update(ctx context.Context, demanda domain.Demanda) (domain.Demanda, error)
	FindByID(ctx context.Context, id uint) (domain.Demanda, error)
	FindAll(ctx context.Context) ([]domain.Demanda, error)
	FindAllByTitulo(ctx context.Context, titulo string) ([]domain.Demanda, error)
	FindAllByInstituicaoID(ctx context.Context, instituicaoID uint) ([]domain.Demanda, error)
}

type DemandaInstituicaoRepository interface {
	FindInstituicaoByID(ctx context.Context, id uint) (domain.Instituicao, error)
}

type DemandaService struct {
	repo            DemandaRepository
	instituicaoRepo DemandaInstituicaoRepository
}

func NewDemandaService(repo DemandaRepository, instituicaoRepo DemandaInstituicaoRepository) *DemandaService {
	return &DemandaService{
		repo:            repo,
		instituicaoRepo: instituicaoRepo,
	}
}

// CriarDemanda creates a demand owned by the given institution. Status
// defaults to "Ativo" when the caller does not supply one.
func (s *DemandaService) CriarDemanda(ctx context.Context, demanda domain.Demanda, instituicaoID uint) (domain.Demanda, error) {
	if demanda.Titulo == "" || demanda.Categoria == "" || demanda.QuantidadeDescricao == "" {
		return domain.Demanda{}, ErrCamposObrigatorios
	}

	instituicao, err := s.instituicaoRepo.FindInstituicaoByID(ctx, instituicaoID)
	if err != nil {
		if errors.Is(err, repository.ErrInstituicaoNotFound) {
			return domain.Demanda{}, ErrInstituicaoNotFound
		}

		return domain.Demanda{}, fmt.Errorf("s.instituicaoRepo.FindInstituicaoByID -> %w", err)
	}

	demanda.Instituicao = instituicao
	if demanda.Status == "" {
		demanda.Status = domain.DemandaStatusAtivo
	}

	created, err := s.repo.Create(ctx, demanda)
	if err != nil {
		return domain.Demanda{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// BuscarTodasDemandas lists every demand that has not been logically
// deleted.
func (s *DemandaService) BuscarTodasDemandas(ctx context.Context) ([]domain.Demanda, error) {
	demandas, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return semInativas(demandas), nil
}

// BuscarDemandasPorTitulo filters by a case-insensitive title substring.
// Unlike the unfiltered listing it does not exclude "Inativo" rows; the
// asymmetry is kept for compatibility with existing clients.
func (s *DemandaService) BuscarDemandasPorTitulo(ctx context.Context, titulo string) ([]domain.Demanda, error) {
	demandas, err := s.repo.FindAllByTitulo(ctx, titulo)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAllByTitulo -> %w", err)
	}

	return demandas, nil
}

func (s *DemandaService) BuscarDemandaPorID(ctx context.Context, id uint) (domain.Demanda, error) {
	demanda, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrDemandaNotFound) {
			return domain.Demanda{}, ErrDemandaNotFound
		}

		return domain.Demanda{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return demanda, nil
}

func (s *DemandaService) BuscarDemandasPorInstituicao(ctx context.Context, instituicaoID uint) ([]domain.Demanda, error) {
	demandas, err := s.repo.FindAllByInstituicaoID(ctx, instituicaoID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAllByInstituicaoID -> %w", err)
	}

	return semInativas(demandas), nil
}

// AtualizarDemanda overwrites every mutable field with the supplied
// values. This is not a patch: fields the caller omitted arrive
// zero-valued and are persisted as such. The owner institution never
// changes.
func (s *DemandaService) AtualizarDemanda(ctx context.Context, id uint, dados domain.Demanda) (domain.Demanda, error) {
	existente, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrDemandaNotFound) {
			return domain.Demanda{}, ErrDemandaNotFound
		}

		return domain.Demanda{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	existente.Titulo = dados.Titulo
	existente.Categoria = dados.Categoria
	existente.Descricao = dados.Descricao
	existente.QuantidadeDescricao = dados.QuantidadeDescricao
	existente.Status = dados.Status
	existente.NivelUrgencia = dados.NivelUrgencia
	existente.PrazoDesejado = dados.PrazoDesejado
	existente.MetaNumerica = dados.MetaNumerica

	atualizada, err := s.repo.Update(ctx, existente)
	if err != nil {
		return domain.Demanda{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return atualizada, nil
}

// ExcluirDemanda performs the logical delete: the row stays, its status
// becomes "Inativo". Deleting an already inactive demand succeeds.
func (s *DemandaService) ExcluirDemanda(ctx context.Context, id uint) error {
	demanda, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrDemandaNotFound) {
			return ErrDemandaNotFound
		}

		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	demanda.Status = domain.DemandaStatusInativo
	if _, err = s.repo.Update(ctx, demanda); err != nil {
		return fmt.Errorf("s.repo.Update -> %w", err)
	}

	return nil
}

func semInativas(demandas []domain.Demanda) []domain.Demanda {
	ativas := make([]domain.Demanda, 0, len(demandas))
	for _, d := range demandas {
		if d.Status != domain.DemandaStatusInativo {
			ativas = append(ativas, d)
		}
	}

	return ativas
}
