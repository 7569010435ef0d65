package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/cosems/auxilio-viagens/internal/domain/entity"
	"github.com/cosems/auxilio-viagens/internal/report"
	"github.com/cosems/auxilio-viagens/internal/session"
	"go.uber.org/zap"
)

// ErrRelatorioNaoPermitido is returned when the acting role has no access to
// the financial report.
var ErrRelatorioNaoPermitido = fmt.Errorf("perfil sem acesso ao relatório")

// RelatorioParams selects and orders the report window.
type RelatorioParams struct {
	Inicio  time.Time
	Fim     time.Time
	Coluna  report.Column
	Direcao report.Direction
}

// Relatorio is the computed report: ordered rows plus totals over the same
// filtered set.
type Relatorio struct {
	Linhas []report.Linha
	Totais report.Totais
}

// ReportService builds the paid-requests financial report for reviewer roles.
type ReportService struct {
	solicitacoes SolicitacaoStore
	usuarios     UsuarioStore
	logger       *zap.Logger
}

// NewReportService creates a report service
func NewReportService(solicitacoes SolicitacaoStore, usuarios UsuarioStore, logger *zap.Logger) *ReportService {
	return &ReportService{solicitacoes: solicitacoes, usuarios: usuarios, logger: logger}
}

func (p *RelatorioParams) normalize() {
	if p.Coluna == "" || !p.Coluna.IsSortable() {
		p.Coluna = report.ColDataPagamento
		p.Direcao = report.Desc
	}
	if p.Direcao != report.Asc && p.Direcao != report.Desc {
		p.Direcao = report.Asc
	}
}

// Gerar computes the report over all requests paid inside the window. Totals
// are taken over the filtered set before sorting, so reordering never changes
// them.
func (svc *ReportService) Gerar(ctx context.Context, perfil entity.TipoUsuario, params RelatorioParams) (*Relatorio, error) {
	if !session.CapabilitiesFor(perfil).PodeVerRelatorio {
		return nil, ErrRelatorioNaoPermitido
	}
	params.normalize()

	sols, err := svc.solicitacoes.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	usuarios, err := svc.usuarios.List(ctx)
	if err != nil {
		return nil, err
	}
	porID := make(map[string]*entity.Usuario, len(usuarios))
	for i := range usuarios {
		porID[usuarios[i].ID] = &usuarios[i]
	}

	filtradas := report.Filtrar(sols, params.Inicio, params.Fim)
	linhas := report.MontarLinhas(filtradas, func(id string) *entity.Usuario {
		return porID[id]
	})
	totais := report.Somar(linhas)
	report.Ordenar(linhas, params.Coluna, params.Direcao)

	svc.logger.Debug("Relatório gerado",
		zap.Int("linhas", len(linhas)),
		zap.Time("inicio", params.Inicio),
		zap.Time("fim", params.Fim))
	return &Relatorio{Linhas: linhas, Totais: totais}, nil
}

// ExportarCSV writes the report as CSV in the fixed column order.
func (svc *ReportService) ExportarCSV(ctx context.Context, perfil entity.TipoUsuario, params RelatorioParams, w io.Writer) error {
	rel, err := svc.Gerar(ctx, perfil, params)
	if err != nil {
		return err
	}
	return report.EscreverCSV(w, rel.Linhas, rel.Totais)
}

// ExportarXLSX writes the report as a single-sheet workbook.
func (svc *ReportService) ExportarXLSX(ctx context.Context, perfil entity.TipoUsuario, params RelatorioParams, w io.Writer) error {
	rel, err := svc.Gerar(ctx, perfil, params)
	if err != nil {
		return err
	}
	return report.EscreverXLSX(w, rel.Linhas, rel.Totais)
}
