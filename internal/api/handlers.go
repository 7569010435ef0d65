package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cosems/auxilio-viagens/internal/lifecycle"
	"github.com/cosems/auxilio-viagens/internal/repository"
	"github.com/cosems/auxilio-viagens/internal/service"
)

// Handlers contains all HTTP request handlers
type Handlers struct {
	solicitacoes *service.SolicitacaoService
	usuarios     *service.UsuarioService
	tabelas      *service.TabelasService
	relatorios   *service.ReportService
	logger       *zap.Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(
	solicitacoes *service.SolicitacaoService,
	usuarios *service.UsuarioService,
	tabelas *service.TabelasService,
	relatorios *service.ReportService,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		solicitacoes: solicitacoes,
		usuarios:     usuarios,
		tabelas:      tabelas,
		relatorios:   relatorios,
		logger:       logger,
	}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Version:   "1.0.0",
		},
	})
}

func (h *Handlers) ok(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

func (h *Handlers) created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{Success: true, Data: data})
}

func (h *Handlers) badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, Response{Success: false, Error: msg})
}

// fail maps service errors onto HTTP status codes. Unrecognized errors are
// logged and reported as a generic 500 so internals never leak to clients.
func (h *Handlers) fail(c *gin.Context, err error) {
	var status int
	switch {
	case errors.Is(err, repository.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, repository.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, lifecycle.ErrNotAuthorized),
		errors.Is(err, service.ErrRelatorioNaoPermitido):
		status = http.StatusForbidden
	case errors.Is(err, lifecycle.ErrInvalidTransition),
		errors.Is(err, lifecycle.ErrPaymentAlreadySet):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, lifecycle.ErrValidation),
		errors.Is(err, service.ErrCampoObrigatorio):
		status = http.StatusBadRequest
	default:
		h.logger.Error("Unhandled service error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "erro interno",
		})
		return
	}
	c.JSON(status, Response{Success: false, Error: err.Error()})
}
