package lifecycle

// Status represents a request status in the reimbursement lifecycle. The
// string values match what the persistence backend stores.
type Status string

const (
	StatusPendenteAprovacao   Status = "Pendente de Aprovação"
	StatusAguardandoCorrecao  Status = "Aguardando Correção"
	StatusAprovada            Status = "Aprovada"
	StatusReprovada           Status = "Reprovada"
	StatusCancelada           Status = "Cancelada"
	StatusAguardandoPrestacao Status = "Aguardando Prestação de Contas"
	StatusPrestacaoEmAnalise  Status = "Prestação de Contas em Análise"
	StatusPendenciaPrestacao  Status = "Pendência na Prestação de Contas"
	StatusFinalizada          Status = "Finalizada"
)

var validStatuses = map[Status]bool{
	StatusPendenteAprovacao:   true,
	StatusAguardandoCorrecao:  true,
	StatusAprovada:            true,
	StatusReprovada:           true,
	StatusCancelada:           true,
	StatusAguardandoPrestacao: true,
	StatusPrestacaoEmAnalise:  true,
	StatusPendenciaPrestacao:  true,
	StatusFinalizada:          true,
}

var terminalStatuses = map[Status]bool{
	StatusReprovada:  true,
	StatusCancelada:  true,
	StatusFinalizada: true,
}

// postApprovalStatuses are the statuses a request can hold once the
// authorizer has approved it. Payment registration is only valid here.
var postApprovalStatuses = map[Status]bool{
	StatusAprovada:            true,
	StatusAguardandoPrestacao: true,
	StatusPrestacaoEmAnalise:  true,
	StatusPendenciaPrestacao:  true,
	StatusFinalizada:          true,
}

// IsValid returns true if the status is a known lifecycle status.
func (s Status) IsValid() bool {
	return validStatuses[s]
}

// IsTerminal returns true if no further transitions are allowed.
func (s Status) IsTerminal() bool {
	return terminalStatuses[s]
}

// IsPostApproval returns true once the request passed approval.
func (s Status) IsPostApproval() bool {
	return postApprovalStatuses[s]
}

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}
