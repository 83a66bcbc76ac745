package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/achadosdoados/backend/internal/domain"
	"github.com/achadosdoados/backend/internal/repository"
	"github.com/achadosdoados/backend/internal/token"
)

var (
	ErrUsuarioEmailExists   = repository.ErrUsuarioEmailExists
	ErrUsuarioNotFound      = repository.ErrUsuarioNotFound
	ErrCredenciaisInvalidas = errors.New("credenciais inválidas")
	ErrTokenInvalido        = errors.New("token inválido")
	ErrCamposObrigatorios   = errors.New("dados inválidos ou ausentes, campos obrigatórios não podem ser nulos")
)

type AuthUsuarioRepository interface {
	CreateDoador(ctx context.Context, doador domain.Doador) (domain.Doador, error)
	CreateInstituicao(ctx context.Context, instituicao domain.Instituicao) (domain.Instituicao, error)
	FindByID(ctx context.Context, id uint) (domain.Usuario, error)
	FindByEmail(ctx context.Context, email string) (domain.Usuario, error)
}

// AuthService owns registration, login and token resolution. The token
// store is injected at construction; there is no package-level session
// state.
type AuthService struct {
	repo   AuthUsuarioRepository
	tokens *token.Store
}

func NewAuthService(repo AuthUsuarioRepository, tokens *token.Store) *AuthService {
	return &AuthService{
		repo:   repo,
		tokens: tokens,
	}
}

// CadastrarDoador registers a donor. Required fields must be present,
// the email must be unique platform-wide, and the password is stored
// only as a bcrypt hash.
func (s *AuthService) CadastrarDoador(ctx context.Context, doador domain.Doador) (domain.Doador, error) {
	if doador.Nome == "" || doador.Email == "" || doador.Senha == "" {
		return domain.Doador{}, ErrCamposObrigatorios
	}

	if err := s.checkEmailExists(ctx, doador.Email); err != nil {
		return domain.Doador{}, err
	}

	hash, err := hashSenha(doador.Senha)
	if err != nil {
		return domain.Doador{}, err
	}
	doador.Senha = hash
	doador.Tipo = domain.TipoDoador

	created, err := s.repo.CreateDoador(ctx, doador)
	if err != nil {
		if errors.Is(err, repository.ErrUsuarioEmailExists) {
			return domain.Doador{}, ErrUsuarioEmailExists
		}

		return domain.Doador{}, fmt.Errorf("s.repo.CreateDoador -> %w", err)
	}

	return created, nil
}

// CadastrarInstituicao registers an institution. Same rules as donor
// registration, with endereco and telefone added to the required set.
func (s *AuthService) CadastrarInstituicao(ctx context.Context, instituicao domain.Instituicao) (domain.Instituicao, error) {
	if instituicao.Nome == "" || instituicao.Email == "" || instituicao.Senha == "" ||
		instituicao.Endereco == "" || instituicao.Telefone == "" {
		return domain.Instituicao{}, ErrCamposObrigatorios
	}

	if err := s.checkEmailExists(ctx, instituicao.Email); err != nil {
		return domain.Instituicao{}, err
	}

	hash, err := hashSenha(instituicao.Senha)
	if err != nil {
		return domain.Instituicao{}, err
	}
	instituicao.Senha = hash
	instituicao.Tipo = domain.TipoInstituicao

	created, err := s.repo.CreateInstituicao(ctx, instituicao)
	if err != nil {
		if errors.Is(err, repository.ErrUsuarioEmailExists) {
			return domain.Instituicao{}, ErrUsuarioEmailExists
		}

		return domain.Instituicao{}, fmt.Errorf("s.repo.CreateInstituicao -> %w", err)
	}

	return created, nil
}

// Login verifies the credentials and issues a session token.
func (s *AuthService) Login(ctx context.Context, email, senha string) (domain.Usuario, string, error) {
	usuario, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUsuarioNotFound) {
			return domain.Usuario{}, "", ErrCredenciaisInvalidas
		}

		return domain.Usuario{}, "", fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(usuario.Senha), []byte(senha)); err != nil {
		return domain.Usuario{}, "", ErrCredenciaisInvalidas
	}

	return usuario, s.tokens.Issue(usuario.ID), nil
}

// Logout invalidates a session token. Unknown tokens are ignored.
func (s *AuthService) Logout(_ context.Context, t string) {
	s.tokens.Invalidate(t)
}

// ResolveToken maps a bearer token back to its user record.
func (s *AuthService) ResolveToken(ctx context.Context, t string) (domain.Usuario, error) {
	userID, ok := s.tokens.Resolve(t)
	if !ok {
		return domain.Usuario{}, ErrTokenInvalido
	}

	usuario, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUsuarioNotFound) {
			return domain.Usuario{}, ErrTokenInvalido
		}

		return domain.Usuario{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return usuario, nil
}

func (s *AuthService) checkEmailExists(ctx context.Context, email string) error {
	_, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		return ErrUsuarioEmailExists
	}
	if !errors.Is(err, repository.ErrUsuarioNotFound) {
		return err
	}

	return nil
}

func hashSenha(senha string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}
