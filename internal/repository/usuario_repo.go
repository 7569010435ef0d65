package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/cosems/auxilio-viagens/internal/domain/entity"
	"go.uber.org/zap"
)

// UsuarioRepository persists requester profiles. Identity ids come from the
// external authentication provider; no credentials live here.
type UsuarioRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewUsuarioRepository creates a profile repository
func NewUsuarioRepository(db *sql.DB, logger *zap.Logger) *UsuarioRepository {
	return &UsuarioRepository{db: db, logger: logger}
}

const usuarioColumns = `id, nome, cpf, categoria, dados_bancarios, necessidades_especiais, tipo_usuario, foto_url`

func scanUsuario(row interface{ Scan(...any) error }) (*entity.Usuario, error) {
	var u entity.Usuario
	err := row.Scan(
		&u.ID, &u.Nome, &u.CPF, &u.Categoria,
		&u.DadosBancarios, &u.NecessidadesEspeciais, &u.TipoUsuario, &u.FotoURL,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByID returns one profile or ErrNotFound. A missing profile is normal
// for a freshly authenticated identity and must not abort initialization.
func (r *UsuarioRepository) GetByID(ctx context.Context, id string) (*entity.Usuario, error) {
	query := fmt.Sprintf("SELECT %s FROM usuarios WHERE id = ?", usuarioColumns)

	u, err := scanUsuario(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		r.logger.Error("Falha ao buscar perfil", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("falha ao buscar perfil: %w", err)
	}
	return u, nil
}

// List returns every profile ordered by name.
func (r *UsuarioRepository) List(ctx context.Context) ([]entity.Usuario, error) {
	query := fmt.Sprintf("SELECT %s FROM usuarios ORDER BY nome", usuarioColumns)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Falha ao listar perfis", zap.Error(err))
		return nil, fmt.Errorf("falha ao listar perfis: %w", err)
	}
	defer rows.Close()

	var out []entity.Usuario
	for rows.Next() {
		u, err := scanUsuario(rows)
		if err != nil {
			return nil, fmt.Errorf("falha ao ler perfil: %w", err)
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

// Insert stores a new profile.
func (r *UsuarioRepository) Insert(ctx context.Context, u *entity.Usuario) error {
	query := `
		INSERT INTO usuarios (id, nome, cpf, categoria, dados_bancarios, necessidades_especiais, tipo_usuario, foto_url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		u.ID, u.Nome, u.CPF, u.Categoria,
		u.DadosBancarios, u.NecessidadesEspeciais, u.TipoUsuario, u.FotoURL,
	)
	if err != nil {
		r.logger.Error("Falha ao criar perfil", zap.String("id", u.ID), zap.Error(err))
		return fmt.Errorf("falha ao criar perfil: %w", err)
	}
	return nil
}

// Update rewrites a profile. ErrNotFound when the id is unknown.
func (r *UsuarioRepository) Update(ctx context.Context, u *entity.Usuario) error {
	query := `
		UPDATE usuarios SET
			nome = ?, cpf = ?, categoria = ?, dados_bancarios = ?,
			necessidades_especiais = ?, tipo_usuario = ?, foto_url = ?
		WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		u.Nome, u.CPF, u.Categoria, u.DadosBancarios,
		u.NecessidadesEspeciais, u.TipoUsuario, u.FotoURL, u.ID,
	)
	if err != nil {
		r.logger.Error("Falha ao atualizar perfil", zap.String("id", u.ID), zap.Error(err))
		return fmt.Errorf("falha ao atualizar perfil: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("falha ao verificar atualização: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
