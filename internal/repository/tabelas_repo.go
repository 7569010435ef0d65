package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/cosems/auxilio-viagens/internal/domain/entity"
	"go.uber.org/zap"
)

// TabelasRepository reads the two rate lookup tables and manages the
// admin-extendable reference lists (event types, executing institutions).
// The rate tables are read-only from the core's perspective.
type TabelasRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewTabelasRepository creates a lookup-table repository
func NewTabelasRepository(db *sql.DB, logger *zap.Logger) *TabelasRepository {
	return &TabelasRepository{db: db, logger: logger}
}

// ListDiarias returns the per-category daily-allowance rates.
func (r *TabelasRepository) ListDiarias(ctx context.Context) ([]entity.DiariaValor, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, cargo, valor FROM diaria_valores ORDER BY cargo")
	if err != nil {
		return nil, fmt.Errorf("falha ao listar valores de diária: %w", err)
	}
	defer rows.Close()

	var out []entity.DiariaValor
	for rows.Next() {
		var d entity.DiariaValor
		if err := rows.Scan(&d.ID, &d.Cargo, &d.Valor); err != nil {
			return nil, fmt.Errorf("falha ao ler valor de diária: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// ListDeslocamentos returns the per-distance-band travel rates.
func (r *TabelasRepository) ListDeslocamentos(ctx context.Context) ([]entity.DeslocamentoValor, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, faixa, valor FROM deslocamento_valores ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("falha ao listar valores de deslocamento: %w", err)
	}
	defer rows.Close()

	var out []entity.DeslocamentoValor
	for rows.Next() {
		var d entity.DeslocamentoValor
		if err := rows.Scan(&d.ID, &d.Faixa, &d.Valor); err != nil {
			return nil, fmt.Errorf("falha ao ler valor de deslocamento: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// ListTiposEvento returns the known event types.
func (r *TabelasRepository) ListTiposEvento(ctx context.Context) ([]entity.TipoEvento, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, nome FROM tipos_evento ORDER BY nome")
	if err != nil {
		return nil, fmt.Errorf("falha ao listar tipos de evento: %w", err)
	}
	defer rows.Close()

	var out []entity.TipoEvento
	for rows.Next() {
		var t entity.TipoEvento
		if err := rows.Scan(&t.ID, &t.Nome); err != nil {
			return nil, fmt.Errorf("falha ao ler tipo de evento: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// AddTipoEvento inserts a new event type unless one with the same name
// (case-insensitive) already exists. Returns the surviving row either way.
func (r *TabelasRepository) AddTipoEvento(ctx context.Context, nome string) (*entity.TipoEvento, error) {
	var t entity.TipoEvento
	err := r.db.QueryRowContext(ctx,
		"SELECT id, nome FROM tipos_evento WHERE lower(nome) = lower(?)", nome).
		Scan(&t.ID, &t.Nome)
	if err == nil {
		return &t, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("falha ao verificar tipo de evento: %w", err)
	}

	result, err := r.db.ExecContext(ctx, "INSERT INTO tipos_evento (nome) VALUES (?)", nome)
	if err != nil {
		r.logger.Error("Falha ao criar tipo de evento", zap.String("nome", nome), zap.Error(err))
		return nil, fmt.Errorf("falha ao criar tipo de evento: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("falha ao obter id gerado: %w", err)
	}
	return &entity.TipoEvento{ID: id, Nome: nome}, nil
}

// ListInstituicoes returns the known executing institutions.
func (r *TabelasRepository) ListInstituicoes(ctx context.Context) ([]entity.InstituicaoExecutora, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, nome FROM instituicoes_executoras ORDER BY nome")
	if err != nil {
		return nil, fmt.Errorf("falha ao listar instituições: %w", err)
	}
	defer rows.Close()

	var out []entity.InstituicaoExecutora
	for rows.Next() {
		var i entity.InstituicaoExecutora
		if err := rows.Scan(&i.ID, &i.Nome); err != nil {
			return nil, fmt.Errorf("falha ao ler instituição: %w", err)
		}
		out = append(out, i)
	}
	return out, rows.Err()
}

// AddInstituicao inserts a new executing institution unless one with the
// same name (case-insensitive) already exists.
func (r *TabelasRepository) AddInstituicao(ctx context.Context, nome string) (*entity.InstituicaoExecutora, error) {
	var i entity.InstituicaoExecutora
	err := r.db.QueryRowContext(ctx,
		"SELECT id, nome FROM instituicoes_executoras WHERE lower(nome) = lower(?)", nome).
		Scan(&i.ID, &i.Nome)
	if err == nil {
		return &i, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("falha ao verificar instituição: %w", err)
	}

	result, err := r.db.ExecContext(ctx, "INSERT INTO instituicoes_executoras (nome) VALUES (?)", nome)
	if err != nil {
		r.logger.Error("Falha ao criar instituição", zap.String("nome", nome), zap.Error(err))
		return nil, fmt.Errorf("falha ao criar instituição: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("falha ao obter id gerado: %w", err)
	}
	return &entity.InstituicaoExecutora{ID: id, Nome: nome}, nil
}
