package repository

import (
	"context"
	"fmt"

	"github.com/achadosdoados/backend/internal/domain"
	"github.com/achadosdoados/backend/internal/repository/dao"
)

var ErrDemandaNotFound = dao.ErrDemandaNotFound

type DemandaDAO interface {
	Insert(ctx context.Context, demanda dao.Demanda) (dao.Demanda, error)
	Update(ctx context.Context, demanda dao.Demanda) (dao.Demanda, error)
	FindByID(ctx context.Context, id uint) (dao.Demanda, error)
	FindAll(ctx context.Context) ([]dao.Demanda, error)
	FindAllByTituloContaining(ctx context.Context, titulo string) ([]dao.Demanda, error)
	FindAllByInstituicaoID(ctx context.Context, instituicaoID uint) ([]dao.Demanda, error)
}

type DemandaRepository struct {
	dao DemandaDAO
}

func NewDemandaRepository(dao DemandaDAO) *DemandaRepository {
	return &DemandaRepository{
		dao: dao,
	}
}

func (r *DemandaRepository) Create(ctx context.Context, demanda domain.Demanda) (domain.Demanda, error) {
	created, err := r.dao.Insert(ctx, demandaDomainToDAO(demanda))
	if err != nil {
		return domain.Demanda{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return demandaDAOToDomain(created), nil
}

func (r *DemandaRepository) Update(ctx context.Context, demanda domain.Demanda) (domain.Demanda, error) {
	updated, err := r.dao.Update(ctx, demandaDomainToDAO(demanda))
	if err != nil {
		return domain.Demanda{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return demandaDAOToDomain(updated), nil
}

func (r *DemandaRepository) FindByID(ctx context.Context, id uint) (domain.Demanda, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Demanda{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return demandaDAOToDomain(found), nil
}

func (r *DemandaRepository) FindAll(ctx context.Context) ([]domain.Demanda, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return demandasDAOToDomain(found), nil
}

func (r *DemandaRepository) FindAllByTitulo(ctx context.Context, titulo string) ([]domain.Demanda, error) {
	found, err := r.dao.FindAllByTituloContaining(ctx, titulo)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAllByTituloContaining -> %w", err)
	}

	return demandasDAOToDomain(found), nil
}

func (r *DemandaRepository) FindAllByInstituicaoID(ctx context.Context, instituicaoID uint) ([]domain.Demanda, error) {
	found, err := r.dao.FindAllByInstituicaoID(ctx, instituicaoID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAllByInstituicaoID -> %w", err)
	}

	return demandasDAOToDomain(found), nil
}

func demandaDomainToDAO(d domain.Demanda) dao.Demanda {
	return dao.Demanda{
		ID:                  d.ID,
		Titulo:              d.Titulo,
		Categoria:           d.Categoria,
		Descricao:           d.Descricao,
		QuantidadeDescricao: d.QuantidadeDescricao,
		Status:              d.Status,
		NivelUrgencia:       d.NivelUrgencia,
		PrazoDesejado:       d.PrazoDesejado,
		MetaNumerica:        d.MetaNumerica,
		InstituicaoID:       d.Instituicao.ID,
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           d.UpdatedAt,
	}
}

func demandaDAOToDomain(d dao.Demanda) domain.Demanda {
	return domain.Demanda{
		ID:                  d.ID,
		Titulo:              d.Titulo,
		Categoria:           d.Categoria,
		Descricao:           d.Descricao,
		QuantidadeDescricao: d.QuantidadeDescricao,
		Status:              d.Status,
		NivelUrgencia:       d.NivelUrgencia,
		PrazoDesejado:       d.PrazoDesejado,
		MetaNumerica:        d.MetaNumerica,
		Instituicao:         instituicaoDAOToDomain(d.Instituicao),
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           d.UpdatedAt,
	}
}

func demandasDAOToDomain(ds []dao.Demanda) []domain.Demanda {
	demandas := make([]domain.Demanda, 0, len(ds))
	for _, d := range ds {
		demandas = append(demandas, demandaDAOToDomain(d))
	}

	return demandas
}
