package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cosems/auxilio-viagens/internal/domain/entity"
	"github.com/cosems/auxilio-viagens/internal/lifecycle"
)

func TestUsuarioService_Obter_MissingProfileIsNotAnError(t *testing.T) {
	svc := NewUsuarioService(newFakeUsuarioStore(), zap.NewNop())

	u, err := svc.Obter(context.Background(), "novo")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestUsuarioService_Salvar_CreatesOwnProfile(t *testing.T) {
	store := newFakeUsuarioStore()
	svc := NewUsuarioService(store, zap.NewNop())

	u := &entity.Usuario{ID: "u1", Nome: "Maria", CPF: "123.456.789-00", Categoria: "Técnico"}
	saved, err := svc.Salvar(context.Background(), "u1", entity.TipoSolicitante, u)
	require.NoError(t, err)

	assert.Equal(t, entity.TipoSolicitante, saved.TipoUsuario)
	assert.Equal(t, "Maria", store.rows["u1"].Nome)
}

func TestUsuarioService_Salvar_NonAdminCannotChangeRole(t *testing.T) {
	store := newFakeUsuarioStore()
	store.rows["u1"] = &entity.Usuario{ID: "u1", Nome: "Maria", TipoUsuario: entity.TipoSolicitante}
	svc := NewUsuarioService(store, zap.NewNop())

	u := &entity.Usuario{ID: "u1", Nome: "Maria", TipoUsuario: entity.TipoAdministrador}
	saved, err := svc.Salvar(context.Background(), "u1", entity.TipoSolicitante, u)
	require.NoError(t, err)

	assert.Equal(t, entity.TipoSolicitante, saved.TipoUsuario, "role must stay as persisted")
}

func TestUsuarioService_Salvar_NonAdminCannotEditOthers(t *testing.T) {
	store := newFakeUsuarioStore()
	store.rows["u2"] = &entity.Usuario{ID: "u2", TipoUsuario: entity.TipoSolicitante}
	svc := NewUsuarioService(store, zap.NewNop())

	u := &entity.Usuario{ID: "u2", Nome: "Intruso"}
	_, err := svc.Salvar(context.Background(), "u1", entity.TipoAutorizador, u)
	assert.ErrorIs(t, err, lifecycle.ErrNotAuthorized)
}

func TestUsuarioService_Salvar_AdminChangesRole(t *testing.T) {
	store := newFakeUsuarioStore()
	store.rows["u2"] = &entity.Usuario{ID: "u2", Nome: "João", TipoUsuario: entity.TipoSolicitante}
	svc := NewUsuarioService(store, zap.NewNop())

	u := &entity.Usuario{ID: "u2", Nome: "João", TipoUsuario: entity.TipoAutorizador}
	saved, err := svc.Salvar(context.Background(), "admin", entity.TipoAdministrador, u)
	require.NoError(t, err)

	assert.Equal(t, entity.TipoAutorizador, saved.TipoUsuario)
}

func TestUsuarioService_Salvar_RejectsUnknownRoleOnCreate(t *testing.T) {
	store := newFakeUsuarioStore()
	svc := NewUsuarioService(store, zap.NewNop())

	u := &entity.Usuario{ID: "u9", Nome: "Ana", TipoUsuario: "gestor"}
	_, err := svc.Salvar(context.Background(), "admin", entity.TipoAdministrador, u)
	require.ErrorIs(t, err, ErrCampoObrigatorio)

	assert.NotContains(t, store.rows, "u9", "invalid role must never be inserted")
}

func TestUsuarioService_Salvar_StripsControlCharacters(t *testing.T) {
	store := newFakeUsuarioStore()
	svc := NewUsuarioService(store, zap.NewNop())

	u := &entity.Usuario{ID: "u1", Nome: "Maria\x00Silva", DadosBancarios: "Banco X\x1f Ag 1"}
	saved, err := svc.Salvar(context.Background(), "u1", entity.TipoSolicitante, u)
	require.NoError(t, err)

	assert.Equal(t, "MariaSilva", saved.Nome)
	assert.Equal(t, "Banco X Ag 1", saved.DadosBancarios)
}

func TestUsuarioService_Salvar_RejectsMalformedCPF(t *testing.T) {
	svc := NewUsuarioService(newFakeUsuarioStore(), zap.NewNop())

	u := &entity.Usuario{ID: "u1", Nome: "Maria", CPF: "12345"}
	_, err := svc.Salvar(context.Background(), "u1", entity.TipoSolicitante, u)
	assert.ErrorIs(t, err, ErrCampoObrigatorio)
}
