// Package session projects the acting role of an authenticated identity.
//
// An identity has one persisted role; for the current session it may request
// a lower effective role ("view as"). The projection is recomputed on every
// request from the persisted role plus the requested role, never stored, and
// never changes the persisted role or any request data.
package session

import "github.com/cosems/auxilio-viagens/internal/domain/entity"

// CanSwitch reports whether the persisted role may act as the requested one.
// Administrators may act as any role, authorizers as autorizador or
// solicitante, solicitantes only as themselves.
func CanSwitch(persisted, requested entity.TipoUsuario) bool {
	if persisted == requested {
		return true
	}
	switch persisted {
	case entity.TipoAdministrador:
		return requested.IsValid()
	case entity.TipoAutorizador:
		return requested == entity.TipoSolicitante
	default:
		return false
	}
}

// EffectiveRole resolves the role used for permission checks. A disallowed
// switch is a no-op: the persisted role stands.
func EffectiveRole(persisted, requested entity.TipoUsuario) entity.TipoUsuario {
	if requested == "" || !CanSwitch(persisted, requested) {
		return persisted
	}
	return requested
}

// Capabilities is the permission set implied by an effective role.
type Capabilities struct {
	PodeAvaliar            bool // review requests and fire authorizer transitions
	PodeRegistrarPagamento bool
	PodeGerenciarUsuarios  bool // edit other profiles, including their role
	PodeGerenciarTabelas   bool // extend reference tables
	VeTodasSolicitacoes    bool // fetch scope: all requests vs own only
	PodeVerRelatorio       bool
}

// CapabilitiesFor derives the capability set for an effective role.
func CapabilitiesFor(role entity.TipoUsuario) Capabilities {
	switch role {
	case entity.TipoAdministrador:
		return Capabilities{
			PodeAvaliar:            true,
			PodeRegistrarPagamento: true,
			PodeGerenciarUsuarios:  true,
			PodeGerenciarTabelas:   true,
			VeTodasSolicitacoes:    true,
			PodeVerRelatorio:       true,
		}
	case entity.TipoAutorizador:
		return Capabilities{
			PodeAvaliar:            true,
			PodeRegistrarPagamento: true,
			VeTodasSolicitacoes:    true,
			PodeVerRelatorio:       true,
		}
	default:
		return Capabilities{}
	}
}
