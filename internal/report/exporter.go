package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
)

// Cabecalho is the fixed export column order. Renderers must not reorder it.
var Cabecalho = []string{
	"Protocolo",
	"Solicitante",
	"CPF",
	"Evento",
	"Período Evento",
	"Data Pagamento",
	"Deslocamento (R$)",
	"Diárias (R$)",
	"Ajuda de Custo (R$)",
	"Total (R$)",
}

func formatarData(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format("02/01/2006")
}

func valores(l Linha) []string {
	return []string{
		l.Protocolo,
		l.Solicitante,
		l.CPF,
		l.NomeEvento,
		l.PeriodoEvento,
		formatarData(l.DataPagamento),
		fmt.Sprintf("%.2f", l.Deslocamento),
		fmt.Sprintf("%.2f", l.Diarias),
		fmt.Sprintf("%.2f", l.AjudaCusto),
		fmt.Sprintf("%.2f", l.Total),
	}
}

func linhaTotais(t Totais) []string {
	return []string{
		"TOTAIS", "", "", "", "", "",
		fmt.Sprintf("%.2f", t.Deslocamento),
		fmt.Sprintf("%.2f", t.Diarias),
		fmt.Sprintf("%.2f", t.AjudaCusto),
		fmt.Sprintf("%.2f", t.Total),
	}
}

// EscreverCSV renders the filtered/sorted rows plus the totals row as CSV in
// the fixed column order.
func EscreverCSV(w io.Writer, linhas []Linha, totais Totais) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Cabecalho); err != nil {
		return fmt.Errorf("falha ao escrever cabeçalho: %w", err)
	}
	for _, l := range linhas {
		if err := cw.Write(valores(l)); err != nil {
			return fmt.Errorf("falha ao escrever linha: %w", err)
		}
	}
	if err := cw.Write(linhaTotais(totais)); err != nil {
		return fmt.Errorf("falha ao escrever totais: %w", err)
	}
	cw.Flush()
	return cw.Error()
}

// EscreverXLSX renders the same contract as a single-sheet workbook.
func EscreverXLSX(w io.Writer, linhas []Linha, totais Totais) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Relatório"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("falha ao criar planilha: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("falha ao remover planilha padrão: %w", err)
	}

	escrever := func(row int, cols []string) error {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		rowData := make([]interface{}, len(cols))
		for i, c := range cols {
			rowData[i] = c
		}
		return f.SetSheetRow(sheet, cell, &rowData)
	}

	if err := escrever(1, Cabecalho); err != nil {
		return fmt.Errorf("falha ao escrever cabeçalho: %w", err)
	}
	for i, l := range linhas {
		if err := escrever(i+2, valores(l)); err != nil {
			return fmt.Errorf("falha ao escrever linha %d: %w", i+1, err)
		}
	}
	if err := escrever(len(linhas)+2, linhaTotais(totais)); err != nil {
		return fmt.Errorf("falha ao escrever totais: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("falha ao gravar planilha: %w", err)
	}
	return nil
}
