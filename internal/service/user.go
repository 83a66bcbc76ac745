package service

import (
	"context"
	"fmt"

	"github.com/achadosdoados/backend/internal/domain"
	"github.com/achadosdoados/backend/internal/repository"
)

var (
	ErrDoadorNotFound      = repository.ErrDoadorNotFound
	ErrInstituicaoNotFound = repository.ErrInstituicaoNotFound
)

type UsuarioRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Usuario, error)
	FindDoadorByID(ctx context.Context, id uint) (domain.Doador, error)
	FindInstituicaoByID(ctx context.Context, id uint) (domain.Instituicao, error)
	FindAllInstituicoes(ctx context.Context) ([]domain.Instituicao, error)
	UpdateInstituicaoFotoURL(ctx context.Context, id uint, fotoURL string) error
}

type UsuarioService struct {
	repo UsuarioRepository
}

func NewUsuarioService(repo UsuarioRepository) *UsuarioService {
	return &UsuarioService{
		repo: repo,
	}
}

func (s *UsuarioService) GetUsuario(ctx context.Context, id uint) (domain.Usuario, error) {
	usuario, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Usuario{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return usuario, nil
}

func (s *UsuarioService) GetDoador(ctx context.Context, id uint) (domain.Doador, error) {
	doador, err := s.repo.FindDoadorByID(ctx, id)
	if err != nil {
		return domain.Doador{}, fmt.Errorf("s.repo.FindDoadorByID -> %w", err)
	}

	return doador, nil
}

func (s *UsuarioService) GetInstituicao(ctx context.Context, id uint) (domain.Instituicao, error) {
	instituicao, err := s.repo.FindInstituicaoByID(ctx, id)
	if err != nil {
		return domain.Instituicao{}, fmt.Errorf("s.repo.FindInstituicaoByID -> %w", err)
	}

	return instituicao, nil
}

func (s *UsuarioService) ListInstituicoes(ctx context.Context) ([]domain.Instituicao, error) {
	instituicoes, err := s.repo.FindAllInstituicoes(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAllInstituicoes -> %w", err)
	}

	return instituicoes, nil
}

// AtualizarFotoInstituicao records the public URL of a newly stored
// profile photo and returns the previous one so the caller can discard
// the orphaned file.
func (s *UsuarioService) AtualizarFotoInstituicao(ctx context.Context, id uint, fotoURL string) (string, error) {
	instituicao, err := s.repo.FindInstituicaoByID(ctx, id)
	if err != nil {
		return "", fmt.Errorf("s.repo.FindInstituicaoByID -> %w", err)
	}

	if err = s.repo.UpdateInstituicaoFotoURL(ctx, id, fotoURL); err != nil {
		return "", fmt.Errorf("s.repo.UpdateInstituicaoFotoURL -> %w", err)
	}

	return instituicao.FotoURL, nil
}
