package lifecycle

import (
	"fmt"
	"strings"
	"time"

	"github.com/cosems/auxilio-viagens/internal/domain/entity"
)

// Actor identifies who is firing a transition: the identity id from the
// authentication provider and the effective role projected for the session.
type Actor struct {
	UsuarioID string
	Perfil    entity.TipoUsuario
}

func (a Actor) isAvaliador() bool {
	return a.Perfil == entity.TipoAutorizador || a.Perfil == entity.TipoAdministrador
}

// ValoresAprovados are the three approved-amount overrides an authorizer may
// set while approving. The total is always recomputed, never taken as input.
type ValoresAprovados struct {
	Deslocamento float64
	Diaria       float64
	AjudaCusto   float64
}

// PrestacaoContas carries the accountability submission of the requester.
// Arquivos holds opaque attachment references; storage and rendering of the
// files themselves happen elsewhere.
type PrestacaoContas struct {
	Atividades  string
	Observacoes string
	Arquivos    string
}

// Input is the action-specific payload of a transition.
type Input struct {
	Justificativa string
	Valores       *ValoresAprovados
	Prestacao     *PrestacaoContas
	// CorpoEditado asserts that the requester edited the request body before
	// resubmitting. Resubmission without an edit is rejected.
	CorpoEditado bool
}

// ChangeSet enumerates exactly the fields a transition is allowed to write.
// Nil pointers are left untouched on merge; there is no other mutation path.
type ChangeSet struct {
	Status Status

	JustificativaAvaliador *string

	ValorDeslocamentoAprovado *float64
	ValorDiariaAprovado       *float64
	ValorAjudaCusto           *float64
	ValorTotalAprovado        *float64

	PrestacaoAtividades  *string
	PrestacaoObservacoes *string
	PrestacaoArquivos    *string

	DataPagamento *time.Time
}

// ApplyTo merges the change set into the request. The caller persists the
// result in a single conditional update.
func (cs *ChangeSet) ApplyTo(s *entity.Solicitacao) {
	if cs.Status != "" {
		s.Status = cs.Status.String()
	}
	if cs.JustificativaAvaliador != nil {
		s.JustificativaAvaliador = *cs.JustificativaAvaliador
	}
	if cs.ValorDeslocamentoAprovado != nil {
		s.ValorDeslocamentoAprovado = *cs.ValorDeslocamentoAprovado
	}
	if cs.ValorDiariaAprovado != nil {
		s.ValorDiariaAprovado = *cs.ValorDiariaAprovado
	}
	if cs.ValorAjudaCusto != nil {
		s.ValorAjudaCusto = *cs.ValorAjudaCusto
	}
	if cs.ValorTotalAprovado != nil {
		s.ValorTotalAprovado = *cs.ValorTotalAprovado
	}
	if cs.PrestacaoAtividades != nil {
		s.PrestacaoAtividades = *cs.PrestacaoAtividades
	}
	if cs.PrestacaoObservacoes != nil {
		s.PrestacaoObservacoes = *cs.PrestacaoObservacoes
	}
	if cs.PrestacaoArquivos != nil {
		s.PrestacaoArquivos = *cs.PrestacaoArquivos
	}
	if cs.DataPagamento != nil {
		s.DataPagamento = cs.DataPagamento
	}
}

// rule describes one row of the transition table.
type rule struct {
	from          []Status
	to            Status
	avaliador     bool // autorizador/administrador only
	owner         bool // request owner only
	justificativa bool // non-empty free-text reason required
}

var transitions = map[Action]rule{
	ActionSolicitarCorrecao: {
		from:          []Status{StatusPendenteAprovacao},
		to:            StatusAguardandoCorrecao,
		avaliador:     true,
		justificativa: true,
	},
	ActionReprovar: {
		from:          []Status{StatusPendenteAprovacao},
		to:            StatusReprovada,
		avaliador:     true,
		justificativa: true,
	},
	ActionAprovarEAvancar: {
		from:      []Status{StatusPendenteAprovacao},
		to:        StatusAguardandoPrestacao,
		avaliador: true,
	},
	ActionReenviar: {
		from:  []Status{StatusAguardandoCorrecao},
		to:    StatusPendenteAprovacao,
		owner: true,
	},
	ActionCancelar: {
		from:  []Status{StatusPendenteAprovacao, StatusAguardandoCorrecao},
		to:    StatusCancelada,
		owner: true,
	},
	ActionEnviarPrestacao: {
		from:  []Status{StatusAprovada, StatusAguardandoPrestacao},
		to:    StatusPrestacaoEmAnalise,
		owner: true,
	},
	ActionSolicitarAjustes: {
		from:          []Status{StatusPrestacaoEmAnalise},
		to:            StatusPendenciaPrestacao,
		avaliador:     true,
		justificativa: true,
	},
	ActionFinalizar: {
		from:      []Status{StatusPrestacaoEmAnalise},
		to:        StatusFinalizada,
		avaliador: true,
	},
	ActionReenviarPrestacao: {
		from:  []Status{StatusPendenciaPrestacao},
		to:    StatusPrestacaoEmAnalise,
		owner: true,
	},
}

// Engine validates and applies lifecycle transitions. It is pure: it never
// touches storage and never changes state without a caller-initiated action.
type Engine struct{}

// NewEngine creates a lifecycle engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Apply validates the action against the transition table and returns the
// change set to persist. On any error the request is left untouched.
func (e *Engine) Apply(s *entity.Solicitacao, actor Actor, action Action, in Input) (*ChangeSet, error) {
	r, ok := transitions[action]
	if !ok {
		return nil, fmt.Errorf("%w: ação desconhecida %s", ErrInvalidTransition, action)
	}

	current := Status(s.Status)
	if !current.IsValid() {
		return nil, fmt.Errorf("%w: status persistido desconhecido %q", ErrInvalidTransition, s.Status)
	}
	if !statusIn(current, r.from) {
		return nil, fmt.Errorf("%w: %s a partir de %s", ErrInvalidTransition, action, current)
	}

	if r.avaliador && !actor.isAvaliador() {
		return nil, fmt.Errorf("%w: %s exige perfil avaliador", ErrNotAuthorized, action)
	}
	if r.owner && actor.UsuarioID != s.UsuarioID {
		return nil, fmt.Errorf("%w: %s é restrita ao dono da solicitação", ErrNotAuthorized, action)
	}

	if r.justificativa && strings.TrimSpace(in.Justificativa) == "" {
		return nil, fmt.Errorf("%w: justificativa é obrigatória", ErrValidation)
	}

	cs := &ChangeSet{Status: r.to}

	switch action {
	case ActionSolicitarCorrecao, ActionReprovar, ActionSolicitarAjustes:
		cs.JustificativaAvaliador = ptr(strings.TrimSpace(in.Justificativa))

	case ActionAprovarEAvancar:
		// Approved values are captured here and only here. Defaults are the
		// values already seeded from the valuation engine.
		valores := ValoresAprovados{
			Deslocamento: s.ValorDeslocamentoAprovado,
			Diaria:       s.ValorDiariaAprovado,
			AjudaCusto:   s.ValorAjudaCusto,
		}
		if in.Valores != nil {
			valores = *in.Valores
		}
		if valores.Deslocamento < 0 || valores.Diaria < 0 || valores.AjudaCusto < 0 {
			return nil, fmt.Errorf("%w: valores aprovados não podem ser negativos", ErrValidation)
		}
		cs.ValorDeslocamentoAprovado = ptr(valores.Deslocamento)
		cs.ValorDiariaAprovado = ptr(valores.Diaria)
		cs.ValorAjudaCusto = ptr(valores.AjudaCusto)
		cs.ValorTotalAprovado = ptr(valores.Deslocamento + valores.Diaria + valores.AjudaCusto)

	case ActionReenviar:
		if !in.CorpoEditado {
			return nil, fmt.Errorf("%w: reenvio exige edição prévia da solicitação", ErrValidation)
		}
		cs.JustificativaAvaliador = ptr("")

	case ActionEnviarPrestacao, ActionReenviarPrestacao:
		if in.Prestacao == nil || strings.TrimSpace(in.Prestacao.Atividades) == "" {
			return nil, fmt.Errorf("%w: descrição das atividades é obrigatória", ErrValidation)
		}
		cs.PrestacaoAtividades = ptr(in.Prestacao.Atividades)
		cs.PrestacaoObservacoes = ptr(in.Prestacao.Observacoes)
		cs.PrestacaoArquivos = ptr(in.Prestacao.Arquivos)
	}

	return cs, nil
}

// RegistrarPagamento records the payment date of an approved request. It is
// not a status transition: the status stays put and the date is written once.
func (e *Engine) RegistrarPagamento(s *entity.Solicitacao, actor Actor, data time.Time) (*ChangeSet, error) {
	if !actor.isAvaliador() {
		return nil, fmt.Errorf("%w: registro de pagamento exige perfil avaliador", ErrNotAuthorized)
	}
	current := Status(s.Status)
	if !current.IsPostApproval() {
		return nil, fmt.Errorf("%w: pagamento a partir de %s", ErrInvalidTransition, current)
	}
	if s.DataPagamento != nil {
		return nil, ErrPaymentAlreadySet
	}
	d := data.UTC().Truncate(24 * time.Hour)
	return &ChangeSet{DataPagamento: &d}, nil
}

// PermittedActions returns the actions the actor could fire on the request
// in its current status. Used by the API to expose the transition set.
func (e *Engine) PermittedActions(s *entity.Solicitacao, actor Actor) []Action {
	var actions []Action
	current := Status(s.Status)
	for action, r := range transitions {
		if !statusIn(current, r.from) {
			continue
		}
		if r.avaliador && !actor.isAvaliador() {
			continue
		}
		if r.owner && actor.UsuarioID != s.UsuarioID {
			continue
		}
		actions = append(actions, action)
	}
	return actions
}

func statusIn(s Status, list []Status) bool {
	for _, candidate := range list {
		if s == candidate {
			return true
		}
	}
	return false
}

func ptr[T any](v T) *T {
	return &v
}
