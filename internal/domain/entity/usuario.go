package entity

// TipoUsuario is the persisted role of an identity.
type TipoUsuario string

const (
	TipoSolicitante   TipoUsuario = "solicitante"
	TipoAutorizador   TipoUsuario = "autorizador"
	TipoAdministrador TipoUsuario = "administrador"
)

var validTipos = map[TipoUsuario]bool{
	TipoSolicitante:   true,
	TipoAutorizador:   true,
	TipoAdministrador: true,
}

// IsValid returns true for one of the three known roles. Anything else in a
// persisted record is a data-integrity error, not an unrecognized state.
func (t TipoUsuario) IsValid() bool {
	return validTipos[t]
}

func (t TipoUsuario) String() string {
	return string(t)
}

// Usuario is a requester profile. The id comes from the external
// authentication provider; the e-mail lives there too and is never persisted
// alongside the profile.
type Usuario struct {
	ID                    string      `json:"id"`
	Email                 string      `json:"email,omitempty"`
	Nome                  string      `json:"nome"`
	CPF                   string      `json:"cpf"`
	Categoria             string      `json:"categoria"`
	DadosBancarios        string      `json:"dados_bancarios"`
	NecessidadesEspeciais string      `json:"necessidades_especiais"`
	TipoUsuario           TipoUsuario `json:"tipo_usuario"`
	FotoURL               string      `json:"foto_url,omitempty"`
}
