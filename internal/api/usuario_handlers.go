package api

import (
	"github.com/gin-gonic/gin"

	"github.com/cosems/auxilio-viagens/internal/domain/entity"
	"github.com/cosems/auxilio-viagens/internal/lifecycle"
	"github.com/cosems/auxilio-viagens/internal/session"
	"github.com/cosems/auxilio-viagens/pkg/utils"
)

// PerfilResponse bundles the profile with the projection the session runs
// under, so the client can render role-dependent UI without re-deriving it.
type PerfilResponse struct {
	Usuario       *entity.Usuario      `json:"usuario"`
	PerfilEfetivo entity.TipoUsuario   `json:"perfil_efetivo"`
	Capacidades   session.Capabilities `json:"capacidades"`
}

// GetPerfil handles GET /api/v1/perfil
func (h *Handlers) GetPerfil(c *gin.Context) {
	actor := actorFrom(c)

	u, err := h.usuarios.Obter(c.Request.Context(), actor.UsuarioID)
	if err != nil {
		h.fail(c, err)
		return
	}
	if u == nil {
		// First login: no profile row yet. The client shows the profile form
		// pre-filled with whatever the identity provider supplied.
		email := c.GetHeader(headerUserEmail)
		if utils.ValidateEmail(email) != nil {
			email = ""
		}
		u = &entity.Usuario{
			ID:          actor.UsuarioID,
			Email:       email,
			TipoUsuario: entity.TipoSolicitante,
		}
	}

	h.ok(c, PerfilResponse{
		Usuario:       u,
		PerfilEfetivo: actor.Perfil,
		Capacidades:   session.CapabilitiesFor(actor.Perfil),
	})
}

// SavePerfil handles PUT /api/v1/perfil
func (h *Handlers) SavePerfil(c *gin.Context) {
	actor := actorFrom(c)

	var u entity.Usuario
	if err := c.ShouldBindJSON(&u); err != nil {
		h.badRequest(c, "corpo da requisição inválido")
		return
	}
	u.ID = actor.UsuarioID

	saved, err := h.usuarios.Salvar(c.Request.Context(), actor.UsuarioID, actor.Perfil, &u)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, saved)
}

// ListUsuarios handles GET /api/v1/usuarios
func (h *Handlers) ListUsuarios(c *gin.Context) {
	actor := actorFrom(c)
	if !session.CapabilitiesFor(actor.Perfil).PodeAvaliar {
		h.fail(c, lifecycle.ErrNotAuthorized)
		return
	}

	usuarios, err := h.usuarios.Listar(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, usuarios)
}

// SaveUsuario handles PUT /api/v1/usuarios/:id
func (h *Handlers) SaveUsuario(c *gin.Context) {
	actor := actorFrom(c)

	var u entity.Usuario
	if err := c.ShouldBindJSON(&u); err != nil {
		h.badRequest(c, "corpo da requisição inválido")
		return
	}
	u.ID = c.Param("id")

	saved, err := h.usuarios.Salvar(c.Request.Context(), actor.UsuarioID, actor.Perfil, &u)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, saved)
}
