package valuation

import (
	"fmt"
	"time"

	"github.com/cosems/auxilio-viagens/internal/domain/entity"
)

// QtdDiarias derives the allowance-day count from the departure and return
// dates (calendar dates, UTC). Missing dates or a return before departure
// yield 0. A same-day trip counts as half a day; anything longer counts the
// whole-day difference plus one. The half day applies only to same-day trips;
// that asymmetry is intentional and mirrors the paying rules.
func QtdDiarias(partida, retorno *time.Time) float64 {
	if partida == nil || retorno == nil {
		return 0
	}
	p := toUTCDate(*partida)
	r := toUTCDate(*retorno)
	if r.Before(p) {
		return 0
	}
	days := r.Sub(p).Hours() / 24
	if days == 0 {
		return 0.5
	}
	return days + 1
}

// PeriodoEvento formats the free-text event period from the two dates, e.g.
// "01/05/2024 a 03/05/2024", or a single date for same-day trips.
func PeriodoEvento(partida, retorno *time.Time) string {
	if partida == nil || retorno == nil {
		return ""
	}
	p := partida.UTC().Format("02/01/2006")
	r := retorno.UTC().Format("02/01/2006")
	if p == r {
		return p
	}
	return fmt.Sprintf("%s a %s", p, r)
}

// Resultado holds the derived numeric fields of a request.
type Resultado struct {
	QtdDiaria         float64
	ValorDiaria       float64
	ValorDeslocamento float64
}

// Engine derives reimbursable amounts from the two lookup tables. It holds a
// snapshot of the tables and is a pure function over its inputs.
type Engine struct {
	diariaPorCargo       map[string]float64
	deslocamentoPorFaixa map[string]float64
}

// NewEngine builds a valuation engine over the current lookup-table rows.
func NewEngine(diarias []entity.DiariaValor, deslocamentos []entity.DeslocamentoValor) *Engine {
	e := &Engine{
		diariaPorCargo:       make(map[string]float64, len(diarias)),
		deslocamentoPorFaixa: make(map[string]float64, len(deslocamentos)),
	}
	for _, d := range diarias {
		e.diariaPorCargo[d.Cargo] = d.Valor
	}
	for _, d := range deslocamentos {
		e.deslocamentoPorFaixa[d.Faixa] = d.Valor
	}
	return e
}

// Calcular computes the derived fields for a request given the requester's
// category. Unknown categories or distance bands value to 0; travel value is
// 0 unless the overland flag is set.
func (e *Engine) Calcular(s *entity.Solicitacao, categoria string) Resultado {
	res := Resultado{QtdDiaria: QtdDiarias(s.DataPartida, s.DataRetorno)}
	res.ValorDiaria = e.diariaPorCargo[categoria] * res.QtdDiaria
	if s.DeslocamentoTerrestre {
		res.ValorDeslocamento = e.deslocamentoPorFaixa[s.CategoriaDeslocamento]
	}
	return res
}

// Aplicar recomputes the calculated fields in place. Approved values are
// reseeded to the calculated ones and the discretionary cost assistance is
// zeroed; the authorizer overrides them later, during approval only.
func (e *Engine) Aplicar(s *entity.Solicitacao, categoria string) {
	res := e.Calcular(s, categoria)
	s.QtdDiaria = res.QtdDiaria
	s.ValorDiariaCalculado = res.ValorDiaria
	s.ValorDeslocamentoCalculado = res.ValorDeslocamento
	s.ValorDiariaAprovado = res.ValorDiaria
	s.ValorDeslocamentoAprovado = res.ValorDeslocamento
	s.ValorAjudaCusto = 0
	s.ValorTotalAprovado = res.ValorDeslocamento + res.ValorDiaria
	s.PeriodoEvento = PeriodoEvento(s.DataPartida, s.DataRetorno)
}

func toUTCDate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
