package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/achadosdoados/backend/internal/domain"
	"github.com/achadosdoados/backend/internal/repository"
)

var ErrDoacaoNotFound = repository.ErrDoacaoNotFound

type DoacaoRepository interface {
	Create(ctx context.Context, doacao domain.Doacao) (domain.Doacao, error)
	UpdateStatus(ctx context.Context, id uint, status string) (domain.Doacao, error)
	FindAllByDoadorID(ctx context.Context, doadorID uint) ([]domain.Doacao, error)
	FindAllByInstituicaoID(ctx context.Context, instituicaoID uint) ([]domain.Doacao, error)
}

type DoacaoDoadorRepository interface {
	FindDoadorByID(ctx context.Context, id uint) (domain.Doador, error)
}

type DoacaoDemandaRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Demanda, error)
}

type DoacaoService struct {
	repo        DoacaoRepository
	doadorRepo  DoacaoDoadorRepository
	demandaRepo DoacaoDemandaRepository
}

func NewDoacaoService(repo DoacaoRepository, doadorRepo DoacaoDoadorRepository, demandaRepo DoacaoDemandaRepository) *DoacaoService {
	return &DoacaoService{
		repo:        repo,
		doadorRepo:  doadorRepo,
		demandaRepo: demandaRepo,
	}
}

// RegistrarIntencao records a donor's intent against a demand. Both ends
// must exist; the entry is stamped with the current time and starts in
// "Aguardando".
func (s *DoacaoService) RegistrarIntencao(ctx context.Context, doadorID, demandaID uint) (domain.Doacao, error) {
	doador, err := s.doadorRepo.FindDoadorByID(ctx, doadorID)
	if err != nil {
		if errors.Is(err, repository.ErrDoadorNotFound) {
			return domain.Doacao{}, ErrDoadorNotFound
		}

		return domain.Doacao{}, fmt.Errorf("s.doadorRepo.FindDoadorByID -> %w", err)
	}

	demanda, err := s.demandaRepo.FindByID(ctx, demandaID)
	if err != nil {
		if errors.Is(err, repository.ErrDemandaNotFound) {
			return domain.Doacao{}, ErrDemandaNotFound
		}

		return domain.Doacao{}, fmt.Errorf("s.demandaRepo.FindByID -> %w", err)
	}

	created, err := s.repo.Create(ctx, domain.Doacao{
		Data:    time.Now(),
		Status:  domain.DoacaoStatusAguardando,
		Doador:  doador,
		Demanda: demanda,
	})
	if err != nil {
		return domain.Doacao{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// AtualizarStatus overwrites the donation status with the caller's
// string verbatim. The vocabulary is open; no transition rules apply.
func (s *DoacaoService) AtualizarStatus(ctx context.Context, doacaoID uint, status string) (domain.Doacao, error) {
	atualizada, err := s.repo.UpdateStatus(ctx, doacaoID, status)
	if err != nil {
		if errors.Is(err, repository.ErrDoacaoNotFound) {
			return domain.Doacao{}, ErrDoacaoNotFound
		}

		return domain.Doacao{}, fmt.Errorf("s.repo.UpdateStatus -> %w", err)
	}

	return atualizada, nil
}

func (s *DoacaoService) BuscarDoacoesPorDoador(ctx context.Context, doadorID uint) ([]domain.Doacao, error) {
	doacoes, err := s.repo.FindAllByDoadorID(ctx, doadorID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAllByDoadorID -> %w", err)
	}

	return doacoes, nil
}

func (s *DoacaoService) BuscarDoacoesPorInstituicao(ctx context.Context, instituicaoID uint) ([]domain.Doacao, error) {
	doacoes, err := s.repo.FindAllByInstituicaoID(ctx, instituicaoID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAllByInstituicaoID -> %w", err)
	}

	return doacoes, nil
}
