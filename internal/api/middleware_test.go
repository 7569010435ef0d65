package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cosems/auxilio-viagens/internal/domain/entity"
	"github.com/cosems/auxilio-viagens/internal/lifecycle"
	"github.com/cosems/auxilio-viagens/internal/repository"
	"github.com/cosems/auxilio-viagens/internal/service"
)

type perfilStore struct {
	rows map[string]*entity.Usuario
}

func (s perfilStore) GetByID(_ context.Context, id string) (*entity.Usuario, error) {
	u, ok := s.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (s perfilStore) List(context.Context) ([]entity.Usuario, error) { return nil, nil }
func (s perfilStore) Insert(_ context.Context, u *entity.Usuario) error {
	s.rows[u.ID] = u
	return nil
}
func (s perfilStore) Update(_ context.Context, u *entity.Usuario) error {
	s.rows[u.ID] = u
	return nil
}

func identityRouter(store perfilStore) (*gin.Engine, *lifecycle.Actor) {
	gin.SetMode(gin.TestMode)
	usuarios := service.NewUsuarioService(store, zap.NewNop())

	var captured lifecycle.Actor
	r := gin.New()
	r.Use(identityMiddleware(usuarios))
	r.GET("/ping", func(c *gin.Context) {
		captured = actorFrom(c)
		c.Status(http.StatusOK)
	})
	return r, &captured
}

func TestIdentityMiddleware_RequiresUserID(t *testing.T) {
	r, _ := identityRouter(perfilStore{rows: map[string]*entity.Usuario{}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestIdentityMiddleware_DefaultsToSolicitante(t *testing.T) {
	r, actor := identityRouter(perfilStore{rows: map[string]*entity.Usuario{}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(headerUserID, "novo-usuario")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "novo-usuario", actor.UsuarioID)
	assert.Equal(t, entity.TipoSolicitante, actor.Perfil)
}

func TestIdentityMiddleware_ProjectsActingRole(t *testing.T) {
	store := perfilStore{rows: map[string]*entity.Usuario{
		"admin-1": {ID: "admin-1", TipoUsuario: entity.TipoAdministrador},
	}}
	r, actor := identityRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(headerUserID, "admin-1")
	req.Header.Set(headerActingRole, "solicitante")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, entity.TipoSolicitante, actor.Perfil)
}

func TestIdentityMiddleware_IgnoresDisallowedSwitch(t *testing.T) {
	store := perfilStore{rows: map[string]*entity.Usuario{
		"aut-1": {ID: "aut-1", TipoUsuario: entity.TipoAutorizador},
	}}
	r, actor := identityRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(headerUserID, "aut-1")
	req.Header.Set(headerActingRole, "administrador")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, entity.TipoAutorizador, actor.Perfil)
}
