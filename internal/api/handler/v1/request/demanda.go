package request

import (
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/achadosdoados/backend/internal/domain"
)

// DemandaRequest is the body of both demand creation and demand update.
// Updates overwrite every field, so there is a single shape for both.
type DemandaRequest struct {
	Titulo              string       `json:"titulo"`
	Categoria           string       `json:"categoria"`
	Descricao           string       `json:"descricao"`
	QuantidadeDescricao string       `json:"quantidadeDescricao"`
	Status              string       `json:"status"`
	NivelUrgencia       string       `json:"nivelUrgencia"`
	PrazoDesejado       *domain.Date `json:"prazoDesejado"`
	MetaNumerica        *int         `json:"metaNumerica"`
}

func (req *DemandaRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Titulo, validation.Required, validation.Length(1, 150)),
		validation.Field(&req.Categoria, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.QuantidadeDescricao, validation.Required, validation.Length(1, 100)),
	)
}

func (req *DemandaRequest) ToDomain() domain.Demanda {
	return domain.Demanda{
		Titulo:              req.Titulo,
		Categoria:           req.Categoria,
		Descricao:           req.Descricao,
		QuantidadeDescricao: req.QuantidadeDescricao,
		Status:              req.Status,
		NivelUrgencia:       req.NivelUrgencia,
		PrazoDesejado:       req.PrazoDesejado,
		MetaNumerica:        req.MetaNumerica,
	}
}
