package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cosems/auxilio-viagens/internal/domain/entity"
	"github.com/cosems/auxilio-viagens/internal/service"
)

func perfilRouter(store perfilStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	usuarios := service.NewUsuarioService(store, zap.NewNop())
	handlers := NewHandlers(nil, usuarios, nil, nil, zap.NewNop())

	r := gin.New()
	r.Use(identityMiddleware(usuarios))
	r.GET("/perfil", handlers.GetPerfil)
	return r
}

func getPerfil(t *testing.T, r *gin.Engine, headers map[string]string) entity.Usuario {
	t.Helper()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/perfil", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data struct {
			Usuario entity.Usuario `json:"usuario"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Data.Usuario
}

func TestGetPerfil_FirstLoginSeedsEmail(t *testing.T) {
	r := perfilRouter(perfilStore{rows: map[string]*entity.Usuario{}})

	u := getPerfil(t, r, map[string]string{
		headerUserID:    "novo-usuario",
		headerUserEmail: "maria@cosems.org.br",
	})

	assert.Equal(t, "novo-usuario", u.ID)
	assert.Equal(t, "maria@cosems.org.br", u.Email)
	assert.Equal(t, entity.TipoSolicitante, u.TipoUsuario)
}

func TestGetPerfil_FirstLoginDropsMalformedEmail(t *testing.T) {
	r := perfilRouter(perfilStore{rows: map[string]*entity.Usuario{}})

	u := getPerfil(t, r, map[string]string{
		headerUserID:    "novo-usuario",
		headerUserEmail: "não-é-email",
	})

	assert.Empty(t, u.Email, "gateway header that is not an e-mail must not seed the profile")
}
