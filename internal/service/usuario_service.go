package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/cosems/auxilio-viagens/internal/domain/entity"
	"github.com/cosems/auxilio-viagens/internal/lifecycle"
	"github.com/cosems/auxilio-viagens/internal/repository"
	"github.com/cosems/auxilio-viagens/pkg/utils"
	"go.uber.org/zap"
)

// UsuarioService manages requester profiles. A profile belongs to the
// identity it describes; administrators may edit any profile, including its
// role. Credentials never pass through here.
type UsuarioService struct {
	usuarios UsuarioStore
	logger   *zap.Logger
}

// NewUsuarioService creates a profile service
func NewUsuarioService(usuarios UsuarioStore, logger *zap.Logger) *UsuarioService {
	return &UsuarioService{usuarios: usuarios, logger: logger}
}

// Obter loads a profile. A missing row means "no profile yet" and returns
// (nil, nil) so initialization can proceed.
func (svc *UsuarioService) Obter(ctx context.Context, id string) (*entity.Usuario, error) {
	u, err := svc.usuarios.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Listar returns every profile. Reviewer roles use it to resolve requester
// names on requests and reports.
func (svc *UsuarioService) Listar(ctx context.Context) ([]entity.Usuario, error) {
	return svc.usuarios.List(ctx)
}

// Salvar creates or updates a profile on behalf of the actor. Only an
// administrator may edit someone else's profile or change a role; a
// non-admin saving their own profile keeps whatever role is already
// persisted.
func (svc *UsuarioService) Salvar(ctx context.Context, actorID string, actorPerfil entity.TipoUsuario, u *entity.Usuario) (*entity.Usuario, error) {
	u.Nome = utils.SanitizeString(u.Nome)
	u.Categoria = utils.SanitizeString(u.Categoria)
	u.DadosBancarios = utils.SanitizeString(u.DadosBancarios)
	u.NecessidadesEspeciais = utils.SanitizeString(u.NecessidadesEspeciais)

	if u.CPF != "" {
		if err := utils.ValidateCPF(u.CPF); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrCampoObrigatorio, err)
		}
	}

	isAdmin := actorPerfil == entity.TipoAdministrador
	if u.ID != actorID && !isAdmin {
		return nil, lifecycle.ErrNotAuthorized
	}

	atual, err := svc.usuarios.GetByID(ctx, u.ID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		if u.TipoUsuario == "" || !isAdmin {
			u.TipoUsuario = entity.TipoSolicitante
		}
		if !u.TipoUsuario.IsValid() {
			return nil, fmt.Errorf("%w: tipo_usuario", ErrCampoObrigatorio)
		}
		if err := svc.usuarios.Insert(ctx, u); err != nil {
			return nil, err
		}
		svc.logger.Info("Perfil criado", zap.String("id", u.ID))
		return u, nil
	case err != nil:
		return nil, err
	}

	if !isAdmin {
		u.TipoUsuario = atual.TipoUsuario
	} else if u.TipoUsuario == "" {
		u.TipoUsuario = atual.TipoUsuario
	}
	if !u.TipoUsuario.IsValid() {
		return nil, fmt.Errorf("%w: tipo_usuario", ErrCampoObrigatorio)
	}

	if err := svc.usuarios.Update(ctx, u); err != nil {
		return nil, err
	}
	svc.logger.Info("Perfil atualizado", zap.String("id", u.ID))
	return u, nil
}
