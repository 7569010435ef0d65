package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	"github.com/cosems/auxilio-viagens/internal/api"
	"github.com/cosems/auxilio-viagens/internal/config"
	"github.com/cosems/auxilio-viagens/internal/repository"
	"github.com/cosems/auxilio-viagens/internal/service"
	"github.com/cosems/auxilio-viagens/pkg/database"
	"github.com/cosems/auxilio-viagens/pkg/utils"
)

func main() {
	// Local overrides; absent in production, where the environment is real.
	_ = gotenv.Load()

	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting travel allowance service",
		zap.String("version", "1.0.0"),
		zap.Int("port", cfg.Server.Port))

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		logger.Fatal("Failed to create data directory", zap.Error(err))
	}

	db, err := database.New(database.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	migrator := database.NewMigrator(db, logger)
	if err := migrator.Apply(cfg.Database.MigrationsDir); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	solicitacaoRepo := repository.NewSolicitacaoRepository(db.DB, logger)
	usuarioRepo := repository.NewUsuarioRepository(db.DB, logger)
	tabelasRepo := repository.NewTabelasRepository(db.DB, logger)

	solicitacaoService := service.NewSolicitacaoService(solicitacaoRepo, usuarioRepo, tabelasRepo, logger)
	usuarioService := service.NewUsuarioService(usuarioRepo, logger)
	tabelasService := service.NewTabelasService(tabelasRepo, logger)
	reportService := service.NewReportService(solicitacaoRepo, usuarioRepo, logger)

	server := api.NewServer(
		cfg.Server,
		solicitacaoService,
		usuarioService,
		tabelasService,
		reportService,
		logger,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil {
		logger.Fatal("HTTP server failed", zap.Error(err))
	}

	logger.Info("Server exited successfully")
}
