package entity

// DiariaValor is one row of the per-category daily-allowance table.
type DiariaValor struct {
	ID    int64   `json:"id"`
	Cargo string  `json:"cargo"`
	Valor float64 `json:"valor"`
}

// DeslocamentoValor is one row of the per-distance-band travel table.
type DeslocamentoValor struct {
	ID    int64   `json:"id"`
	Faixa string  `json:"faixa"`
	Valor float64 `json:"valor"`
}

// TipoEvento is an admin-extendable reference entry for event types.
type TipoEvento struct {
	ID   int64  `json:"id"`
	Nome string `json:"nome"`
}

// InstituicaoExecutora is an admin-extendable reference entry for executing
// institutions.
type InstituicaoExecutora struct {
	ID   int64  `json:"id"`
	Nome string `json:"nome"`
}
