package domain

import "time"

// Tipo discriminates the two user variants on the wire and in storage.
const (
	TipoDoador      = "DOADOR"
	TipoInstituicao = "INSTITUICAO"
)

type Usuario struct {
	ID        uint      `json:"id"`
	Nome      string    `json:"nome"`
	Email     string    `json:"email"`
	Senha     string    `json:"-"`
	Tipo      string    `json:"tipo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Doador struct {
	Usuario
	Cep       string   `json:"cep,omitempty"`
	Cidade    string   `json:"cidade,omitempty"`
	Estado    string   `json:"estado,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

type Instituicao struct {
	Usuario
	Endereco  string   `json:"endereco"`
	Telefone  string   `json:"telefone"`
	FotoURL   string   `json:"fotoUrl,omitempty"`
	Cep       string   `json:"cep,omitempty"`
	Cidade    string   `json:"cidade,omitempty"`
	Estado    string   `json:"estado,omitempty"`
	Numero    string   `json:"numero,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}
