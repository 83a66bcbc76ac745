package request

import (
	"errors"

	"github.com/dlclark/regexp2"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/achadosdoados/backend/internal/domain"
)

var (
	cepExp        = regexp2.MustCompile(`^\d{5}-?\d{3}$`, regexp2.None)
	errInvalidCEP = errors.New("CEP inválido, use o formato 00000-000")
)

// validCEP accepts the empty string; CEP is optional everywhere, it just
// has to parse when present.
func validCEP(value interface{}) error {
	cep, _ := value.(string)
	if cep == "" {
		return nil
	}

	if ok, err := cepExp.MatchString(cep); err != nil || !ok {
		return errInvalidCEP
	}

	return nil
}

type CadastroDoadorRequest struct {
	Nome      string   `json:"nome"`
	Email     string   `json:"email"`
	Senha     string   `json:"senha"`
	Cep       string   `json:"cep"`
	Cidade    string   `json:"cidade"`
	Estado    string   `json:"estado"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func (req *CadastroDoadorRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Nome, validation.Required),
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Senha, validation.Required),
		validation.Field(&req.Cep, validation.By(validCEP)),
	)
}

func (req *CadastroDoadorRequest) ToDomain() domain.Doador {
	return domain.Doador{
		Usuario: domain.Usuario{
			Nome:  req.Nome,
			Email: req.Email,
			Senha: req.Senha,
		},
		Cep:       req.Cep,
		Cidade:    req.Cidade,
		Estado:    req.Estado,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}
}

type CadastroInstituicaoRequest struct {
	Nome      string   `json:"nome"`
	Email     string   `json:"email"`
	Senha     string   `json:"senha"`
	Endereco  string   `json:"endereco"`
	Telefone  string   `json:"telefone"`
	Cep       string   `json:"cep"`
	Cidade    string   `json:"cidade"`
	Estado    string   `json:"estado"`
	Numero    string   `json:"numero"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func (req *CadastroInstituicaoRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Nome, validation.Required),
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Senha, validation.Required),
		validation.Field(&req.Endereco, validation.Required),
		validation.Field(&req.Telefone, validation.Required),
		validation.Field(&req.Cep, validation.By(validCEP)),
	)
}

func (req *CadastroInstituicaoRequest) ToDomain() domain.Instituicao {
	return domain.Instituicao{
		Usuario: domain.Usuario{
			Nome:  req.Nome,
			Email: req.Email,
			Senha: req.Senha,
		},
		Endereco:  req.Endereco,
		Telefone:  req.Telefone,
		Cep:       req.Cep,
		Cidade:    req.Cidade,
		Estado:    req.Estado,
		Numero:    req.Numero,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}
}
