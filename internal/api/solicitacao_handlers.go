package api

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cosems/auxilio-viagens/internal/lifecycle"
	"github.com/cosems/auxilio-viagens/internal/service"
)

// TransicaoRequest is the body of POST /api/v1/solicitacoes/:id/transicao.
type TransicaoRequest struct {
	Acao          string  `json:"acao" binding:"required"`
	Justificativa string  `json:"justificativa"`
	Valores       *struct {
		Deslocamento float64 `json:"deslocamento"`
		Diaria       float64 `json:"diaria"`
		AjudaCusto   float64 `json:"ajuda_custo"`
	} `json:"valores"`
	Prestacao *struct {
		Atividades  string `json:"atividades"`
		Observacoes string `json:"observacoes"`
		Arquivos    string `json:"arquivos"`
	} `json:"prestacao"`
}

// PagamentoRequest is the body of POST /api/v1/solicitacoes/:id/pagamento.
type PagamentoRequest struct {
	DataPagamento string `json:"data_pagamento" binding:"required"`
}

func solicitacaoID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// ListSolicitacoes handles GET /api/v1/solicitacoes
func (h *Handlers) ListSolicitacoes(c *gin.Context) {
	sols, err := h.solicitacoes.Listar(c.Request.Context(), actorFrom(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, sols)
}

// CreateSolicitacao handles POST /api/v1/solicitacoes
func (h *Handlers) CreateSolicitacao(c *gin.Context) {
	var in service.SolicitacaoInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.logger.Warn("Invalid request body", zap.Error(err))
		h.badRequest(c, "corpo da requisição inválido")
		return
	}

	s, err := h.solicitacoes.Criar(c.Request.Context(), actorFrom(c), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.created(c, s)
}

// GetSolicitacao handles GET /api/v1/solicitacoes/:id
func (h *Handlers) GetSolicitacao(c *gin.Context) {
	id, ok := solicitacaoID(c)
	if !ok {
		h.badRequest(c, "id inválido")
		return
	}

	s, err := h.solicitacoes.Obter(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, s)
}

// UpdateAndResubmit handles PUT /api/v1/solicitacoes/:id
func (h *Handlers) UpdateAndResubmit(c *gin.Context) {
	id, ok := solicitacaoID(c)
	if !ok {
		h.badRequest(c, "id inválido")
		return
	}

	var in service.SolicitacaoInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.badRequest(c, "corpo da requisição inválido")
		return
	}

	s, err := h.solicitacoes.AtualizarEReenviar(c.Request.Context(), actorFrom(c), id, in)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, s)
}

// ListAcoes handles GET /api/v1/solicitacoes/:id/acoes
func (h *Handlers) ListAcoes(c *gin.Context) {
	id, ok := solicitacaoID(c)
	if !ok {
		h.badRequest(c, "id inválido")
		return
	}

	actor := actorFrom(c)
	s, err := h.solicitacoes.Obter(c.Request.Context(), actor, id)
	if err != nil {
		h.fail(c, err)
		return
	}

	acoes := h.solicitacoes.AcoesPermitidas(s, actor)
	if acoes == nil {
		acoes = []lifecycle.Action{}
	}
	h.ok(c, acoes)
}

// Transicao handles POST /api/v1/solicitacoes/:id/transicao
func (h *Handlers) Transicao(c *gin.Context) {
	id, ok := solicitacaoID(c)
	if !ok {
		h.badRequest(c, "id inválido")
		return
	}

	var req TransicaoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "corpo da requisição inválido")
		return
	}

	in := lifecycle.Input{Justificativa: req.Justificativa}
	if req.Valores != nil {
		in.Valores = &lifecycle.ValoresAprovados{
			Deslocamento: req.Valores.Deslocamento,
			Diaria:       req.Valores.Diaria,
			AjudaCusto:   req.Valores.AjudaCusto,
		}
	}
	if req.Prestacao != nil {
		in.Prestacao = &lifecycle.PrestacaoContas{
			Atividades:  req.Prestacao.Atividades,
			Observacoes: req.Prestacao.Observacoes,
			Arquivos:    req.Prestacao.Arquivos,
		}
	}

	s, err := h.solicitacoes.Transicionar(c.Request.Context(), actorFrom(c), id, lifecycle.Action(req.Acao), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, s)
}

// RegistrarPagamento handles POST /api/v1/solicitacoes/:id/pagamento
func (h *Handlers) RegistrarPagamento(c *gin.Context) {
	id, ok := solicitacaoID(c)
	if !ok {
		h.badRequest(c, "id inválido")
		return
	}

	var req PagamentoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "corpo da requisição inválido")
		return
	}
	data, err := time.Parse("2006-01-02", req.DataPagamento)
	if err != nil {
		h.badRequest(c, "data_pagamento deve estar no formato AAAA-MM-DD")
		return
	}

	s, err := h.solicitacoes.RegistrarPagamento(c.Request.Context(), actorFrom(c), id, data)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, s)
}
