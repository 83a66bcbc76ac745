package domain

import "time"

// Donation status vocabulary. Open set: status updates store the caller's
// string verbatim.
const (
	DoacaoStatusAguardando = "Aguardando"
	DoacaoStatusRecebida   = "Recebida"
	DoacaoStatusCancelada  = "Cancelada"
)

// Doacao is a donor's registered intent to fulfill a demand. It is a
// ledger entry: created once, mutated only through status changes, never
// deleted.
type Doacao struct {
	ID      uint      `json:"id"`
	Data    time.Time `json:"data"`
	Status  string    `json:"status"`
	Doador  Doador    `json:"doador"`
	Demanda Demanda   `json:"demanda"`
}
