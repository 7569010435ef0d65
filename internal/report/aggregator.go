package report

import (
	"sort"
	"strings"
	"time"

	"github.com/cosems/auxilio-viagens/internal/domain/entity"
)

// Column identifies a sortable report column.
type Column string

const (
	ColProtocolo     Column = "protocolo"
	ColSolicitante   Column = "solicitante"
	ColCPF           Column = "cpf"
	ColPeriodoEvento Column = "periodo_evento"
	ColDataPagamento Column = "data_pagamento"
	ColDeslocamento  Column = "valor_deslocamento_aprovado"
	ColDiarias       Column = "valor_diaria_aprovado"
	ColAjudaCusto    Column = "valor_ajuda_custo"
	ColTotal         Column = "valor_total_aprovado"
)

var sortableColumns = map[Column]bool{
	ColProtocolo:     true,
	ColSolicitante:   true,
	ColCPF:           true,
	ColPeriodoEvento: true,
	ColDataPagamento: true,
	ColDeslocamento:  true,
	ColDiarias:       true,
	ColAjudaCusto:    true,
	ColTotal:         true,
}

// IsSortable returns true for columns the report can be ordered by.
func (c Column) IsSortable() bool {
	return sortableColumns[c]
}

// Direction is the sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Linha is one row of the financial report in the fixed export order.
type Linha struct {
	Protocolo     string
	Solicitante   string
	CPF           string
	NomeEvento    string
	PeriodoEvento string
	DataPagamento *time.Time

	Deslocamento float64
	Diarias      float64
	AjudaCusto   float64
	Total        float64
}

// Totais are the per-column sums over the filtered set, computed regardless
// of the active sort.
type Totais struct {
	Deslocamento float64
	Diarias      float64
	AjudaCusto   float64
	Total        float64
}

// UsuarioResolver maps a requester id to their profile; nil means unknown.
type UsuarioResolver func(usuarioID string) *entity.Usuario

// Filtrar keeps the requests whose payment date falls inside the inclusive
// window [inicio 00:00:00 UTC, fim 23:59:59.999 UTC]. Requests without a
// payment date are excluded.
func Filtrar(sols []entity.Solicitacao, inicio, fim time.Time) []entity.Solicitacao {
	start := time.Date(inicio.Year(), inicio.Month(), inicio.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(fim.Year(), fim.Month(), fim.Day(), 23, 59, 59, 999000000, time.UTC)

	var out []entity.Solicitacao
	for _, s := range sols {
		if s.DataPagamento == nil {
			continue
		}
		pago := s.DataPagamento.UTC()
		if pago.Before(start) || pago.After(end) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// MontarLinhas projects requests into report rows, resolving requester name
// and CPF through the given resolver.
func MontarLinhas(sols []entity.Solicitacao, resolver UsuarioResolver) []Linha {
	linhas := make([]Linha, 0, len(sols))
	for _, s := range sols {
		linha := Linha{
			Protocolo:     s.Protocolo,
			NomeEvento:    s.NomeEvento,
			PeriodoEvento: s.PeriodoEvento,
			DataPagamento: s.DataPagamento,
			Deslocamento:  s.ValorDeslocamentoAprovado,
			Diarias:       s.ValorDiariaAprovado,
			AjudaCusto:    s.ValorAjudaCusto,
			Total:         s.ValorTotalAprovado,
		}
		if u := resolver(s.UsuarioID); u != nil {
			linha.Solicitante = u.Nome
			linha.CPF = u.CPF
		}
		linhas = append(linhas, linha)
	}
	return linhas
}

// Ordenar sorts the rows by a single column. Dates and monetary columns
// compare numerically, everything else as case-insensitive strings. Missing
// values sort last in both directions.
func Ordenar(linhas []Linha, col Column, dir Direction) {
	sort.SliceStable(linhas, func(i, j int) bool {
		a, b := linhas[i], linhas[j]

		aMissing, bMissing := faltando(a, col), faltando(b, col)
		if aMissing != bMissing {
			return !aMissing
		}
		if aMissing {
			return false
		}

		cmp := comparar(a, b, col)
		if dir == Desc {
			cmp = -cmp
		}
		return cmp < 0
	})
}

// Somar computes the four monetary totals over the given rows.
func Somar(linhas []Linha) Totais {
	var t Totais
	for _, l := range linhas {
		t.Deslocamento += l.Deslocamento
		t.Diarias += l.Diarias
		t.AjudaCusto += l.AjudaCusto
		t.Total += l.Total
	}
	return t
}

func faltando(l Linha, col Column) bool {
	switch col {
	case ColProtocolo:
		return l.Protocolo == ""
	case ColSolicitante:
		return l.Solicitante == ""
	case ColCPF:
		return l.CPF == ""
	case ColPeriodoEvento:
		return l.PeriodoEvento == ""
	case ColDataPagamento:
		return l.DataPagamento == nil
	default:
		return false
	}
}

func comparar(a, b Linha, col Column) int {
	switch col {
	case ColDataPagamento:
		return a.DataPagamento.Compare(*b.DataPagamento)
	case ColDeslocamento:
		return compararFloat(a.Deslocamento, b.Deslocamento)
	case ColDiarias:
		return compararFloat(a.Diarias, b.Diarias)
	case ColAjudaCusto:
		return compararFloat(a.AjudaCusto, b.AjudaCusto)
	case ColTotal:
		return compararFloat(a.Total, b.Total)
	case ColSolicitante:
		return compararString(a.Solicitante, b.Solicitante)
	case ColCPF:
		return compararString(a.CPF, b.CPF)
	case ColPeriodoEvento:
		return compararString(a.PeriodoEvento, b.PeriodoEvento)
	default:
		return compararString(a.Protocolo, b.Protocolo)
	}
}

func compararFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compararString(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}
