package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/cosems/auxilio-viagens/internal/domain/entity"
	"github.com/cosems/auxilio-viagens/internal/lifecycle"
	"github.com/cosems/auxilio-viagens/internal/session"
	"go.uber.org/zap"
)

// TabelasService exposes the rate tables and the reference lists backing the
// request form. Reads are open to any authenticated role; additions require
// the table-management capability.
type TabelasService struct {
	tabelas TabelasStore
	logger  *zap.Logger
}

// NewTabelasService creates a lookup-table service
func NewTabelasService(tabelas TabelasStore, logger *zap.Logger) *TabelasService {
	return &TabelasService{tabelas: tabelas, logger: logger}
}

func (svc *TabelasService) ListarDiarias(ctx context.Context) ([]entity.DiariaValor, error) {
	return svc.tabelas.ListDiarias(ctx)
}

func (svc *TabelasService) ListarDeslocamentos(ctx context.Context) ([]entity.DeslocamentoValor, error) {
	return svc.tabelas.ListDeslocamentos(ctx)
}

func (svc *TabelasService) ListarTiposEvento(ctx context.Context) ([]entity.TipoEvento, error) {
	return svc.tabelas.ListTiposEvento(ctx)
}

func (svc *TabelasService) ListarInstituicoes(ctx context.Context) ([]entity.InstituicaoExecutora, error) {
	return svc.tabelas.ListInstituicoes(ctx)
}

// AdicionarTipoEvento registers a new event type. Adding a name that already
// exists (case-insensitive) returns the surviving row.
func (svc *TabelasService) AdicionarTipoEvento(ctx context.Context, perfil entity.TipoUsuario, nome string) (*entity.TipoEvento, error) {
	if !session.CapabilitiesFor(perfil).PodeGerenciarTabelas {
		return nil, lifecycle.ErrNotAuthorized
	}
	nome = strings.TrimSpace(nome)
	if nome == "" {
		return nil, fmt.Errorf("%w: nome", ErrCampoObrigatorio)
	}
	t, err := svc.tabelas.AddTipoEvento(ctx, nome)
	if err != nil {
		return nil, err
	}
	svc.logger.Info("Tipo de evento adicionado", zap.String("nome", t.Nome))
	return t, nil
}

// AdicionarInstituicao registers a new executing institution with the same
// dedup behavior as AdicionarTipoEvento.
func (svc *TabelasService) AdicionarInstituicao(ctx context.Context, perfil entity.TipoUsuario, nome string) (*entity.InstituicaoExecutora, error) {
	if !session.CapabilitiesFor(perfil).PodeGerenciarTabelas {
		return nil, lifecycle.ErrNotAuthorized
	}
	nome = strings.TrimSpace(nome)
	if nome == "" {
		return nil, fmt.Errorf("%w: nome", ErrCampoObrigatorio)
	}
	i, err := svc.tabelas.AddInstituicao(ctx, nome)
	if err != nil {
		return nil, err
	}
	svc.logger.Info("Instituição executora adicionada", zap.String("nome", i.Nome))
	return i, nil
}
