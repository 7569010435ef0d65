package lifecycle

import "errors"

var (
	// ErrInvalidTransition is returned when the action is not permitted from
	// the request's current status.
	ErrInvalidTransition = errors.New("transição de status inválida")

	// ErrNotAuthorized is returned when the acting role (or a non-owner on an
	// owner-only action) may not fire the transition.
	ErrNotAuthorized = errors.New("ação não autorizada para este perfil")

	// ErrValidation is returned when required transition input is missing or
	// malformed. Nothing is mutated.
	ErrValidation = errors.New("dados da transição inválidos")

	// ErrPaymentAlreadySet is returned when a payment date is registered a
	// second time. The first write is final.
	ErrPaymentAlreadySet = errors.New("data de pagamento já registrada")
)
