package domain

import "time"

// Demand status vocabulary. The set is open: callers may send other
// values and existing rows may carry them. "Inativo" marks a logically
// deleted demand.
const (
	DemandaStatusAtivo   = "Ativo"
	DemandaStatusInativo = "Inativo"
)

// Demanda is a donation request published and owned by an institution.
type Demanda struct {
	ID                  uint        `json:"id"`
	Titulo              string      `json:"titulo"`
	Categoria           string      `json:"categoria"`
	Descricao           string      `json:"descricao"`
	QuantidadeDescricao string      `json:"quantidadeDescricao"`
	Status              string      `json:"status"`
	NivelUrgencia       string      `json:"nivelUrgencia"`
	PrazoDesejado       *Date       `json:"prazoDesejado"`
	MetaNumerica        *int        `json:"metaNumerica"`
	Instituicao         Instituicao `json:"instituicao"`
	CreatedAt           time.Time   `json:"created_at"`
	UpdatedAt           time.Time   `json:"updated_at"`
}
