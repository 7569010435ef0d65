package api

import (
	"github.com/gin-gonic/gin"
)

// NomeRequest is the body of the reference-table POST endpoints.
type NomeRequest struct {
	Nome string `json:"nome" binding:"required"`
}

// ListDiarias handles GET /api/v1/tabelas/diarias
func (h *Handlers) ListDiarias(c *gin.Context) {
	diarias, err := h.tabelas.ListarDiarias(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, diarias)
}

// ListDeslocamentos handles GET /api/v1/tabelas/deslocamentos
func (h *Handlers) ListDeslocamentos(c *gin.Context) {
	deslocamentos, err := h.tabelas.ListarDeslocamentos(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, deslocamentos)
}

// ListTiposEvento handles GET /api/v1/tabelas/tipos-evento
func (h *Handlers) ListTiposEvento(c *gin.Context) {
	tipos, err := h.tabelas.ListarTiposEvento(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, tipos)
}

// AddTipoEvento handles POST /api/v1/tabelas/tipos-evento
func (h *Handlers) AddTipoEvento(c *gin.Context) {
	var req NomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "corpo da requisição inválido")
		return
	}

	tipo, err := h.tabelas.AdicionarTipoEvento(c.Request.Context(), actorFrom(c).Perfil, req.Nome)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.created(c, tipo)
}

// ListInstituicoes handles GET /api/v1/tabelas/instituicoes
func (h *Handlers) ListInstituicoes(c *gin.Context) {
	instituicoes, err := h.tabelas.ListarInstituicoes(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, instituicoes)
}

// AddInstituicao handles POST /api/v1/tabelas/instituicoes
func (h *Handlers) AddInstituicao(c *gin.Context) {
	var req NomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "corpo da requisição inválido")
		return
	}

	inst, err := h.tabelas.AdicionarInstituicao(c.Request.Context(), actorFrom(c).Perfil, req.Nome)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.created(c, inst)
}
