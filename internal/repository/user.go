package repository

import (
	"context"
	"fmt"

	"github.com/achadosdoados/backend/internal/domain"
	"github.com/achadosdoados/backend/internal/repository/dao"
)

var (
	ErrUsuarioEmailExists  = dao.ErrUsuarioEmailExists
	ErrUsuarioNotFound     = dao.ErrUsuarioNotFound
	ErrDoadorNotFound      = dao.ErrDoadorNotFound
	ErrInstituicaoNotFound = dao.ErrInstituicaoNotFound
)

type UsuarioDAO interface {
	InsertDoador(ctx context.Context, doador dao.Doador) (dao.Doador, error)
	InsertInstituicao(ctx context.Context, instituicao dao.Instituicao) (dao.Instituicao, error)
	FindByID(ctx context.Context, id uint) (dao.Usuario, error)
	FindByEmail(ctx context.Context, email string) (dao.Usuario, error)
	FindDoadorByUsuarioID(ctx context.Context, id uint) (dao.Doador, error)
	FindInstituicaoByUsuarioID(ctx context.Context, id uint) (dao.Instituicao, error)
	FindAllInstituicoes(ctx context.Context) ([]dao.Instituicao, error)
	UpdateInstituicaoFotoURL(ctx context.Context, id uint, fotoURL string) error
}

type UsuarioRepository struct {
	dao UsuarioDAO
}

func NewUsuarioRepository(dao UsuarioDAO) *UsuarioRepository {
	return &UsuarioRepository{
		dao: dao,
	}
}

func (r *UsuarioRepository) CreateDoador(ctx context.Context, doador domain.Doador) (domain.Doador, error) {
	created, err := r.dao.InsertDoador(ctx, dao.Doador{
		Usuario: dao.Usuario{
			Nome:  doador.Nome,
			Email: doador.Email,
			Senha: doador.Senha,
			Tipo:  domain.TipoDoador,
		},
		Cep:       doador.Cep,
		Cidade:    doador.Cidade,
		Estado:    doador.Estado,
		Latitude:  doador.Latitude,
		Longitude: doador.Longitude,
	})
	if err != nil {
		return domain.Doador{}, fmt.Errorf("r.dao.InsertDoador -> %w", err)
	}

	return doadorDAOToDomain(created), nil
}

func (r *UsuarioRepository) CreateInstituicao(ctx context.Context, instituicao domain.Instituicao) (domain.Instituicao, error) {
	created, err := r.dao.InsertInstituicao(ctx, dao.Instituicao{
		Usuario: dao.Usuario{
			Nome:  instituicao.Nome,
			Email: instituicao.Email,
			Senha: instituicao.Senha,
			Tipo:  domain.TipoInstituicao,
		},
		Endereco:  instituicao.Endereco,
		Telefone:  instituicao.Telefone,
		FotoURL:   instituicao.FotoURL,
		Cep:       instituicao.Cep,
		Cidade:    instituicao.Cidade,
		Estado:    instituicao.Estado,
		Numero:    instituicao.Numero,
		Latitude:  instituicao.Latitude,
		Longitude: instituicao.Longitude,
	})
	if err != nil {
		return domain.Instituicao{}, fmt.Errorf("r.dao.InsertInstituicao -> %w", err)
	}

	return instituicaoDAOToDomain(created), nil
}

func (r *UsuarioRepository) FindByID(ctx context.Context, id uint) (domain.Usuario, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Usuario{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return usuarioDAOToDomain(found), nil
}

func (r *UsuarioRepository) FindByEmail(ctx context.Context, email string) (domain.Usuario, error) {
	found, err := r.dao.FindByEmail(ctx, email)
	if err != nil {
		return domain.Usuario{}, fmt.Errorf("r.dao.FindByEmail -> %w", err)
	}

	return usuarioDAOToDomain(found), nil
}

func (r *UsuarioRepository) FindDoadorByID(ctx context.Context, id uint) (domain.Doador, error) {
	found, err := r.dao.FindDoadorByUsuarioID(ctx, id)
	if err != nil {
		return domain.Doador{}, fmt.Errorf("r.dao.FindDoadorByUsuarioID -> %w", err)
	}

	return doadorDAOToDomain(found), nil
}

func (r *UsuarioRepository) FindInstituicaoByID(ctx context.Context, id uint) (domain.Instituicao, error) {
	found, err := r.dao.FindInstituicaoByUsuarioID(ctx, id)
	if err != nil {
		return domain.Instituicao{}, fmt.Errorf("r.dao.FindInstituicaoByUsuarioID -> %w", err)
	}

	return instituicaoDAOToDomain(found), nil
}

func (r *UsuarioRepository) FindAllInstituicoes(ctx context.Context) ([]domain.Instituicao, error) {
	found, err := r.dao.FindAllInstituicoes(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAllInstituicoes -> %w", err)
	}

	instituicoes := make([]domain.Instituicao, 0, len(found))
	for _, i := range found {
		instituicoes = append(instituicoes, instituicaoDAOToDomain(i))
	}

	return instituicoes, nil
}

func (r *UsuarioRepository) UpdateInstituicaoFotoURL(ctx context.Context, id uint, fotoURL string) error {
	if err := r.dao.UpdateInstituicaoFotoURL(ctx, id, fotoURL); err != nil {
		return fmt.Errorf("r.dao.UpdateInstituicaoFotoURL -> %w", err)
	}

	return nil
}

func usuarioDAOToDomain(u dao.Usuario) domain.Usuario {
	return domain.Usuario{
		ID:        u.ID,
		Nome:      u.Nome,
		Email:     u.Email,
		Senha:     u.Senha,
		Tipo:      u.Tipo,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func doadorDAOToDomain(d dao.Doador) domain.Doador {
	usuario := usuarioDAOToDomain(d.Usuario)
	usuario.ID = d.UsuarioID

	return domain.Doador{
		Usuario:   usuario,
		Cep:       d.Cep,
		Cidade:    d.Cidade,
		Estado:    d.Estado,
		Latitude:  d.Latitude,
		Longitude: d.Longitude,
	}
}

func instituicaoDAOToDomain(i dao.Instituicao) domain.Instituicao {
	usuario := usuarioDAOToDomain(i.Usuario)
	usuario.ID = i.UsuarioID

	return domain.Instituicao{
		Usuario:   usuario,
		Endereco:  i.Endereco,
		Telefone:  i.Telefone,
		FotoURL:   i.FotoURL,
		Cep:       i.Cep,
		Cidade:    i.Cidade,
		Estado:    i.Estado,
		Numero:    i.Numero,
		Latitude:  i.Latitude,
		Longitude: i.Longitude,
	}
}
