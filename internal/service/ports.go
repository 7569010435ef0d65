package service

import (
	"context"

	"github.com/cosems/auxilio-viagens/internal/domain/entity"
)

// SolicitacaoStore is the persistence boundary for requests. Every call is a
// network round-trip that may fail independently; implementations surface
// repository.ErrNotFound, ErrConflict and ErrDuplicateProtocol.
type SolicitacaoStore interface {
	Insert(ctx context.Context, s *entity.Solicitacao) error
	GetByID(ctx context.Context, id int64) (*entity.Solicitacao, error)
	ListByUsuario(ctx context.Context, usuarioID string) ([]entity.Solicitacao, error)
	ListAll(ctx context.Context) ([]entity.Solicitacao, error)
	Update(ctx context.Context, s *entity.Solicitacao) error
}

// UsuarioStore is the persistence boundary for requester profiles.
type UsuarioStore interface {
	GetByID(ctx context.Context, id string) (*entity.Usuario, error)
	List(ctx context.Context) ([]entity.Usuario, error)
	Insert(ctx context.Context, u *entity.Usuario) error
	Update(ctx context.Context, u *entity.Usuario) error
}

// TabelasStore reads the rate lookup tables and reference lists.
type TabelasStore interface {
	ListDiarias(ctx context.Context) ([]entity.DiariaValor, error)
	ListDeslocamentos(ctx context.Context) ([]entity.DeslocamentoValor, error)
	ListTiposEvento(ctx context.Context) ([]entity.TipoEvento, error)
	AddTipoEvento(ctx context.Context, nome string) (*entity.TipoEvento, error)
	ListInstituicoes(ctx context.Context) ([]entity.InstituicaoExecutora, error)
	AddInstituicao(ctx context.Context, nome string) (*entity.InstituicaoExecutora, error)
}
