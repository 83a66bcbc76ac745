package repository

import (
	"context"
	"fmt"

	"github.com/achadosdoados/backend/internal/domain"
	"github.com/achadosdoados/backend/internal/repository/dao"
)

var ErrDoacaoNotFound = dao.ErrDoacaoNotFound

type DoacaoDAO interface {
	Insert(ctx context.Context, doacao dao.Doacao) (dao.Doacao, error)
	FindByID(ctx context.Context, id uint) (dao.Doacao, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	FindAllByDoadorID(ctx context.Context, doadorID uint) ([]dao.Doacao, error)
	FindAllByInstituicaoID(ctx context.Context, instituicaoID uint) ([]dao.Doacao, error)
}

type DoacaoRepository struct {
	dao DoacaoDAO
}

func NewDoacaoRepository(dao DoacaoDAO) *DoacaoRepository {
	return &DoacaoRepository{
		dao: dao,
	}
}

func (r *DoacaoRepository) Create(ctx context.Context, doacao domain.Doacao) (domain.Doacao, error) {
	created, err := r.dao.Insert(ctx, dao.Doacao{
		Data:      doacao.Data,
		Status:    doacao.Status,
		DoadorID:  doacao.Doador.ID,
		DemandaID: doacao.Demanda.ID,
	})
	if err != nil {
		return domain.Doacao{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return doacaoDAOToDomain(created), nil
}

func (r *DoacaoRepository) FindByID(ctx context.Context, id uint) (domain.Doacao, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Doacao{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return doacaoDAOToDomain(found), nil
}

func (r *DoacaoRepository) UpdateStatus(ctx context.Context, id uint, status string) (domain.Doacao, error) {
	if err := r.dao.UpdateStatus(ctx, id, status); err != nil {
		return domain.Doacao{}, fmt.Errorf("r.dao.UpdateStatus -> %w", err)
	}

	updated, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Doacao{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return doacaoDAOToDomain(updated), nil
}

func (r *DoacaoRepository) FindAllByDoadorID(ctx context.Context, doadorID uint) ([]domain.Doacao, error) {
	found, err := r.dao.FindAllByDoadorID(ctx, doadorID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAllByDoadorID -> %w", err)
	}

	return doacoesDAOToDomain(found), nil
}

func (r *DoacaoRepository) FindAllByInstituicaoID(ctx context.Context, instituicaoID uint) ([]domain.Doacao, error) {
	found, err := r.dao.FindAllByInstituicaoID(ctx, instituicaoID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAllByInstituicaoID -> %w", err)
	}

	return doacoesDAOToDomain(found), nil
}

func doacaoDAOToDomain(d dao.Doacao) domain.Doacao {
	return domain.Doacao{
		ID:      d.ID,
		Data:    d.Data,
		Status:  d.Status,
		Doador:  doadorDAOToDomain(d.Doador),
		Demanda: demandaDAOToDomain(d.Demanda),
	}
}

func doacoesDAOToDomain(ds []dao.Doacao) []domain.Doacao {
	doacoes := make([]domain.Doacao, 0, len(ds))
	for _, d := range ds {
		doacoes = append(doacoes, doacaoDAOToDomain(d))
	}

	return doacoes
}
