package lifecycle

// Action is a caller-initiated lifecycle transition. The engine never moves a
// request on its own; every status change is one of these actions.
type Action string

const (
	// Authorizer/administrator actions.
	ActionSolicitarCorrecao Action = "SOLICITAR_CORRECAO"
	ActionReprovar          Action = "REPROVAR"
	// Approving is a composite action: the request never rests at "Aprovada"
	// when fired through the engine, it lands directly on the accountability
	// phase carrying the approved values.
	ActionAprovarEAvancar  Action = "APROVAR_E_AVANCAR"
	ActionSolicitarAjustes Action = "SOLICITAR_AJUSTES_PRESTACAO"
	ActionFinalizar        Action = "FINALIZAR"

	// Requester (owner) actions.
	ActionReenviar           Action = "REENVIAR"
	ActionCancelar           Action = "CANCELAR"
	ActionEnviarPrestacao    Action = "ENVIAR_PRESTACAO"
	ActionReenviarPrestacao  Action = "REENVIAR_PRESTACAO"
)

// String returns the string representation of the action.
func (a Action) String() string {
	return string(a)
}
