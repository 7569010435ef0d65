package api

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cosems/auxilio-viagens/internal/report"
	"github.com/cosems/auxilio-viagens/internal/service"
)

// RelatorioQuery binds the report window and ordering from the query string.
type RelatorioQuery struct {
	Inicio  string `form:"inicio" binding:"required"`
	Fim     string `form:"fim" binding:"required"`
	Coluna  string `form:"coluna"`
	Direcao string `form:"direcao"`
	Formato string `form:"formato"`
}

func (q *RelatorioQuery) params() (service.RelatorioParams, error) {
	inicio, err := time.Parse("2006-01-02", q.Inicio)
	if err != nil {
		return service.RelatorioParams{}, fmt.Errorf("inicio deve estar no formato AAAA-MM-DD")
	}
	fim, err := time.Parse("2006-01-02", q.Fim)
	if err != nil {
		return service.RelatorioParams{}, fmt.Errorf("fim deve estar no formato AAAA-MM-DD")
	}
	if fim.Before(inicio) {
		return service.RelatorioParams{}, fmt.Errorf("fim anterior ao início")
	}
	return service.RelatorioParams{
		Inicio:  inicio,
		Fim:     fim,
		Coluna:  report.Column(q.Coluna),
		Direcao: report.Direction(q.Direcao),
	}, nil
}

// GetRelatorio handles GET /api/v1/relatorio
func (h *Handlers) GetRelatorio(c *gin.Context) {
	var q RelatorioQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.badRequest(c, "parâmetros inicio e fim são obrigatórios")
		return
	}
	params, err := q.params()
	if err != nil {
		h.badRequest(c, err.Error())
		return
	}

	rel, err := h.relatorios.Gerar(c.Request.Context(), actorFrom(c).Perfil, params)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, rel)
}

// ExportRelatorio handles GET /api/v1/relatorio/export
func (h *Handlers) ExportRelatorio(c *gin.Context) {
	var q RelatorioQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.badRequest(c, "parâmetros inicio e fim são obrigatórios")
		return
	}
	params, err := q.params()
	if err != nil {
		h.badRequest(c, err.Error())
		return
	}

	perfil := actorFrom(c).Perfil
	nome := fmt.Sprintf("relatorio_%s_%s", q.Inicio, q.Fim)

	switch q.Formato {
	case "", "csv":
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", nome))
		c.Header("Content-Type", "text/csv; charset=utf-8")
		err = h.relatorios.ExportarCSV(c.Request.Context(), perfil, params, c.Writer)
	case "xlsx":
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.xlsx", nome))
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		err = h.relatorios.ExportarXLSX(c.Request.Context(), perfil, params, c.Writer)
	default:
		h.badRequest(c, "formato deve ser csv ou xlsx")
		return
	}
	if err != nil {
		// Headers may already be out; all we can do is log and drop.
		if c.Writer.Written() {
			h.logger.Error("Falha durante a exportação do relatório", zap.Error(err))
			c.Abort()
			return
		}
		h.fail(c, err)
	}
}
