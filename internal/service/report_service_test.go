package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cosems/auxilio-viagens/internal/domain/entity"
	"github.com/cosems/auxilio-viagens/internal/report"
)

func seedPaidRequests(t *testing.T, sols *fakeSolicitacaoStore) {
	t.Helper()
	pagamentos := map[string]*time.Time{
		"A": ptrTime(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)),
		"B": ptrTime(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)),
		"C": nil,
		"D": ptrTime(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)),
	}
	for proto, data := range pagamentos {
		sols.nextID++
		sols.rows[sols.nextID] = &entity.Solicitacao{
			ID:                 sols.nextID,
			Protocolo:          proto,
			UsuarioID:          "u1",
			DataPagamento:      data,
			ValorTotalAprovado: 100,
		}
	}
}

func ptrTime(t time.Time) *time.Time {
	return &t
}

func reportParams() RelatorioParams {
	return RelatorioParams{
		Inicio: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Fim:    time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
	}
}

func TestReportService_Gerar(t *testing.T) {
	sols := newFakeSolicitacaoStore()
	seedPaidRequests(t, sols)
	usuarios := newFakeUsuarioStore()
	usuarios.rows["u1"] = &entity.Usuario{ID: "u1", Nome: "Maria", CPF: "123.456.789-00"}
	svc := NewReportService(sols, usuarios, zap.NewNop())

	rel, err := svc.Gerar(context.Background(), entity.TipoAutorizador, reportParams())
	require.NoError(t, err)

	// Unpaid and out-of-window requests are excluded; default order is
	// payment date descending.
	require.Len(t, rel.Linhas, 2)
	assert.Equal(t, "A", rel.Linhas[0].Protocolo)
	assert.Equal(t, "B", rel.Linhas[1].Protocolo)
	assert.Equal(t, "Maria", rel.Linhas[0].Solicitante)
	assert.Equal(t, 200.0, rel.Totais.Total)
}

func TestReportService_Gerar_TotalsIgnoreSort(t *testing.T) {
	sols := newFakeSolicitacaoStore()
	seedPaidRequests(t, sols)
	svc := NewReportService(sols, newFakeUsuarioStore(), zap.NewNop())

	params := reportParams()
	params.Coluna = report.ColProtocolo
	params.Direcao = report.Asc
	asc, err := svc.Gerar(context.Background(), entity.TipoAdministrador, params)
	require.NoError(t, err)

	params.Direcao = report.Desc
	desc, err := svc.Gerar(context.Background(), entity.TipoAdministrador, params)
	require.NoError(t, err)

	assert.Equal(t, asc.Totais, desc.Totais)
	assert.Equal(t, asc.Linhas[0].Protocolo, desc.Linhas[len(desc.Linhas)-1].Protocolo)
}

func TestReportService_Gerar_RequiresReviewerRole(t *testing.T) {
	svc := NewReportService(newFakeSolicitacaoStore(), newFakeUsuarioStore(), zap.NewNop())

	_, err := svc.Gerar(context.Background(), entity.TipoSolicitante, reportParams())
	assert.ErrorIs(t, err, ErrRelatorioNaoPermitido)
}

func TestReportService_Gerar_UnknownSortFallsBack(t *testing.T) {
	sols := newFakeSolicitacaoStore()
	seedPaidRequests(t, sols)
	svc := NewReportService(sols, newFakeUsuarioStore(), zap.NewNop())

	params := reportParams()
	params.Coluna = report.Column("senha")
	rel, err := svc.Gerar(context.Background(), entity.TipoAutorizador, params)
	require.NoError(t, err)
	assert.Equal(t, "A", rel.Linhas[0].Protocolo)
}

func TestReportService_ExportarCSV(t *testing.T) {
	sols := newFakeSolicitacaoStore()
	seedPaidRequests(t, sols)
	svc := NewReportService(sols, newFakeUsuarioStore(), zap.NewNop())

	var buf bytes.Buffer
	require.NoError(t, svc.ExportarCSV(context.Background(), entity.TipoAutorizador, reportParams(), &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4) // header + 2 rows + totals
	assert.Equal(t, report.Cabecalho, records[0])
	assert.Equal(t, "TOTAIS", records[3][0])
}
