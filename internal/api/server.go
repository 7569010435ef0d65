// Package api is the HTTP adapter: it translates requests into service calls
// and service errors into status codes. No business rule lives here.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cosems/auxilio-viagens/internal/config"
	"github.com/cosems/auxilio-viagens/internal/service"
)

// Server is the HTTP server adapter
type Server struct {
	config     config.ServerConfig
	httpServer *http.Server
	router     *gin.Engine

	solicitacoes *service.SolicitacaoService
	usuarios     *service.UsuarioService
	tabelas      *service.TabelasService
	relatorios   *service.ReportService
	logger       *zap.Logger
}

// NewServer creates a new HTTP server with the given services
func NewServer(
	cfg config.ServerConfig,
	solicitacoes *service.SolicitacaoService,
	usuarios *service.UsuarioService,
	tabelas *service.TabelasService,
	relatorios *service.ReportService,
	logger *zap.Logger,
) *Server {
	gin.SetMode(gin.ReleaseMode)

	server := &Server{
		config:       cfg,
		router:       gin.New(),
		solicitacoes: solicitacoes,
		usuarios:     usuarios,
		tabelas:      tabelas,
		relatorios:   relatorios,
		logger:       logger,
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}

// setupMiddleware configures middleware for the router
func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(s.loggingMiddleware())
	s.router.Use(corsMiddleware())
}

// loggingMiddleware creates a logging middleware
func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		s.logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.String("latency", time.Since(start).String()),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, X-User-ID, X-User-Email, X-Acting-Role")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	handlers := NewHandlers(s.solicitacoes, s.usuarios, s.tabelas, s.relatorios, s.logger)

	// Health check
	s.router.GET("/health", handlers.HealthCheck)

	// API routes, all behind the identity projection
	api := s.router.Group("/api/v1")
	api.Use(identityMiddleware(s.usuarios))
	{
		api.GET("/solicitacoes", handlers.ListSolicitacoes)
		api.POST("/solicitacoes", handlers.CreateSolicitacao)
		api.GET("/solicitacoes/:id", handlers.GetSolicitacao)
		api.PUT("/solicitacoes/:id", handlers.UpdateAndResubmit)
		api.GET("/solicitacoes/:id/acoes", handlers.ListAcoes)
		api.POST("/solicitacoes/:id/transicao", handlers.Transicao)
		api.POST("/solicitacoes/:id/pagamento", handlers.RegistrarPagamento)

		api.GET("/perfil", handlers.GetPerfil)
		api.PUT("/perfil", handlers.SavePerfil)
		api.GET("/usuarios", handlers.ListUsuarios)
		api.PUT("/usuarios/:id", handlers.SaveUsuario)

		api.GET("/tabelas/diarias", handlers.ListDiarias)
		api.GET("/tabelas/deslocamentos", handlers.ListDeslocamentos)
		api.GET("/tabelas/tipos-evento", handlers.ListTiposEvento)
		api.POST("/tabelas/tipos-evento", handlers.AddTipoEvento)
		api.GET("/tabelas/instituicoes", handlers.ListInstituicoes)
		api.POST("/tabelas/instituicoes", handlers.AddInstituicao)

		api.GET("/relatorio", handlers.GetRelatorio)
		api.GET("/relatorio/export", handlers.ExportRelatorio)
	}
}

// Start starts the HTTP server and blocks until the context is canceled or
// the listener fails.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	s.logger.Info("Starting HTTP server", zap.String("address", addr))

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("HTTP server shutdown requested")
		return s.Stop()
	case err := <-errCh:
		s.logger.Error("HTTP server error", zap.Error(err))
		return err
	}
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("HTTP server shutdown error", zap.Error(err))
		return err
	}

	s.logger.Info("HTTP server stopped")
	return nil
}

// Router returns the underlying gin router (for testing)
func (s *Server) Router() *gin.Engine {
	return s.router
}
