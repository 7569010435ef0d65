package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cosems/auxilio-viagens/internal/domain/entity"
	"github.com/cosems/auxilio-viagens/internal/lifecycle"
	"github.com/cosems/auxilio-viagens/internal/service"
	"github.com/cosems/auxilio-viagens/internal/session"
)

const (
	headerUserID     = "X-User-ID"
	headerUserEmail  = "X-User-Email"
	headerActingRole = "X-Acting-Role"

	ctxActor = "actor"
)

// identityMiddleware resolves the authenticated identity and its effective
// role for this request. Authentication itself happens upstream; the gateway
// forwards the verified identity in headers. An identity without a profile is
// a valid first-time user acting as solicitante.
func identityMiddleware(usuarios *service.UsuarioService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader(headerUserID)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, Response{
				Success: false,
				Error:   "identidade ausente",
			})
			return
		}

		persisted := entity.TipoSolicitante
		perfil, err := usuarios.Obter(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, Response{
				Success: false,
				Error:   "falha ao carregar perfil",
			})
			return
		}
		if perfil != nil && perfil.TipoUsuario.IsValid() {
			persisted = perfil.TipoUsuario
		}

		// The effective role is projected per request and never stored. A
		// switch the persisted role does not allow is silently ignored.
		requested := entity.TipoUsuario(c.GetHeader(headerActingRole))
		efetivo := session.EffectiveRole(persisted, requested)

		c.Set(ctxActor, lifecycle.Actor{UsuarioID: userID, Perfil: efetivo})
		c.Next()
	}
}

func actorFrom(c *gin.Context) lifecycle.Actor {
	v, _ := c.Get(ctxActor)
	actor, _ := v.(lifecycle.Actor)
	return actor
}
