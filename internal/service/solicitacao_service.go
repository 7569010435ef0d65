package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cosems/auxilio-viagens/internal/domain/entity"
	"github.com/cosems/auxilio-viagens/internal/lifecycle"
	"github.com/cosems/auxilio-viagens/internal/protocol"
	"github.com/cosems/auxilio-viagens/internal/repository"
	"github.com/cosems/auxilio-viagens/internal/session"
	"github.com/cosems/auxilio-viagens/internal/valuation"
	"go.uber.org/zap"
)

// ErrCampoObrigatorio is returned when a required request field is blank.
var ErrCampoObrigatorio = errors.New("campo obrigatório ausente")

// protocolAttempts bounds the regenerate-and-retry loop on a protocol
// collision.
const protocolAttempts = 3

// SolicitacaoInput carries the requester-editable body of a request. It is
// the only shape through which create and edit mutate a request; derived and
// approved values never come from the caller.
type SolicitacaoInput struct {
	MesAnoRef             string                  `json:"mes_ano_ref"`
	TipoEvento            string                  `json:"tipo_evento"`
	NomeEvento            string                  `json:"nome_evento"`
	LocalEvento           string                  `json:"local_evento"`
	InstituicaoExecutora  string                  `json:"instituicao_executora"`
	CidadeOrigem          string                  `json:"cidade_origem"`
	CidadeDestino         string                  `json:"cidade_destino"`
	DataPartida           *time.Time              `json:"data_partida"`
	DataRetorno           *time.Time              `json:"data_retorno"`
	HospedagemCosems      bool                    `json:"hospedagem_cosems"`
	DeslocamentoTerrestre bool                    `json:"deslocamento_terrestre"`
	DeslocamentoAereo     bool                    `json:"deslocamento_aereo"`
	VooIda                string                  `json:"voo_ida"`
	VooVolta              string                  `json:"voo_volta"`
	CategoriaDeslocamento string                  `json:"categoria_deslocamento"`
	Observacoes           string                  `json:"observacoes"`
	Custeios              entity.CusteiosExternos `json:"custeios"`
}

// SolicitacaoService orchestrates request creation, edits, lifecycle
// transitions and payment registration. All computation happens in memory;
// only the final conditional write can fail, leaving the stored row intact.
type SolicitacaoService struct {
	solicitacoes SolicitacaoStore
	usuarios     UsuarioStore
	tabelas      TabelasStore
	engine       *lifecycle.Engine
	logger       *zap.Logger
	now          func() time.Time
}

// NewSolicitacaoService creates a request service
func NewSolicitacaoService(
	solicitacoes SolicitacaoStore,
	usuarios UsuarioStore,
	tabelas TabelasStore,
	logger *zap.Logger,
) *SolicitacaoService {
	return &SolicitacaoService{
		solicitacoes: solicitacoes,
		usuarios:     usuarios,
		tabelas:      tabelas,
		engine:       lifecycle.NewEngine(),
		logger:       logger,
		now:          time.Now,
	}
}

func (in *SolicitacaoInput) validate() error {
	required := map[string]string{
		"nome_evento":           in.NomeEvento,
		"tipo_evento":           in.TipoEvento,
		"local_evento":          in.LocalEvento,
		"instituicao_executora": in.InstituicaoExecutora,
		"cidade_origem":         in.CidadeOrigem,
		"cidade_destino":        in.CidadeDestino,
		"mes_ano_ref":           in.MesAnoRef,
	}
	for campo, valor := range required {
		if strings.TrimSpace(valor) == "" {
			return fmt.Errorf("%w: %s", ErrCampoObrigatorio, campo)
		}
	}
	if in.DataPartida == nil || in.DataRetorno == nil {
		return fmt.Errorf("%w: data_partida/data_retorno", ErrCampoObrigatorio)
	}
	return in.Custeios.Validate()
}

func (in *SolicitacaoInput) applyTo(s *entity.Solicitacao) {
	s.MesAnoRef = in.MesAnoRef
	s.TipoEvento = in.TipoEvento
	s.NomeEvento = in.NomeEvento
	s.LocalEvento = in.LocalEvento
	s.InstituicaoExecutora = in.InstituicaoExecutora
	s.CidadeOrigem = in.CidadeOrigem
	s.CidadeDestino = in.CidadeDestino
	s.DataPartida = in.DataPartida
	s.DataRetorno = in.DataRetorno
	s.HospedagemCosems = in.HospedagemCosems
	s.DeslocamentoTerrestre = in.DeslocamentoTerrestre
	s.DeslocamentoAereo = in.DeslocamentoAereo
	s.VooIda = in.VooIda
	s.VooVolta = in.VooVolta
	s.CategoriaDeslocamento = in.CategoriaDeslocamento
	s.Observacoes = in.Observacoes
	s.Custeios = in.Custeios
	if !s.DeslocamentoAereo {
		s.VooIda = ""
		s.VooVolta = ""
	}
	if !s.DeslocamentoTerrestre {
		s.CategoriaDeslocamento = ""
	}
}

func (svc *SolicitacaoService) valuationEngine(ctx context.Context) (*valuation.Engine, error) {
	diarias, err := svc.tabelas.ListDiarias(ctx)
	if err != nil {
		return nil, fmt.Errorf("falha ao carregar tabela de diárias: %w", err)
	}
	deslocamentos, err := svc.tabelas.ListDeslocamentos(ctx)
	if err != nil {
		return nil, fmt.Errorf("falha ao carregar tabela de deslocamentos: %w", err)
	}
	return valuation.NewEngine(diarias, deslocamentos), nil
}

func (svc *SolicitacaoService) categoriaDe(ctx context.Context, usuarioID string) (string, error) {
	u, err := svc.usuarios.GetByID(ctx, usuarioID)
	if errors.Is(err, repository.ErrNotFound) {
		// No profile yet: the category is unknown, the allowance values to 0.
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return u.Categoria, nil
}

// Criar registers a new request: derives the calculated values, seeds the
// approved values, assigns the initial status and a fresh protocol. The
// protocol is generated here, exactly once per request; collisions against
// the store's uniqueness constraint retry with a new suffix.
func (svc *SolicitacaoService) Criar(ctx context.Context, actor lifecycle.Actor, in SolicitacaoInput) (*entity.Solicitacao, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	engine, err := svc.valuationEngine(ctx)
	if err != nil {
		return nil, err
	}
	categoria, err := svc.categoriaDe(ctx, actor.UsuarioID)
	if err != nil {
		return nil, err
	}

	s := &entity.Solicitacao{
		UsuarioID: actor.UsuarioID,
		Status:    lifecycle.StatusPendenteAprovacao.String(),
		CreatedAt: svc.now().UTC(),
	}
	in.applyTo(s)
	engine.Aplicar(s, categoria)

	for attempt := 0; attempt < protocolAttempts; attempt++ {
		s.Protocolo = protocol.Generate(svc.now())
		err = svc.solicitacoes.Insert(ctx, s)
		if err == nil {
			svc.logger.Info("Solicitação criada",
				zap.Int64("id", s.ID),
				zap.String("protocolo", s.Protocolo),
				zap.String("usuario_id", s.UsuarioID))
			return s, nil
		}
		if !errors.Is(err, repository.ErrDuplicateProtocol) {
			return nil, err
		}
		svc.logger.Warn("Colisão de protocolo, gerando novamente",
			zap.String("protocolo", s.Protocolo))
	}
	return nil, fmt.Errorf("falha ao gerar protocolo único após %d tentativas: %w", protocolAttempts, err)
}

// AtualizarEReenviar lets the owner fix a request awaiting correction. The
// body is merged, values are recalculated (approved values reseeded), the
// evaluator justification is cleared and the request returns to the
// approval queue. The protocol never changes.
func (svc *SolicitacaoService) AtualizarEReenviar(ctx context.Context, actor lifecycle.Actor, id int64, in SolicitacaoInput) (*entity.Solicitacao, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	s, err := svc.solicitacoes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	cs, err := svc.engine.Apply(s, actor, lifecycle.ActionReenviar, lifecycle.Input{CorpoEditado: true})
	if err != nil {
		return nil, err
	}

	engine, err := svc.valuationEngine(ctx)
	if err != nil {
		return nil, err
	}
	categoria, err := svc.categoriaDe(ctx, s.UsuarioID)
	if err != nil {
		return nil, err
	}

	in.applyTo(s)
	engine.Aplicar(s, categoria)
	cs.ApplyTo(s)

	if err := svc.solicitacoes.Update(ctx, s); err != nil {
		return nil, err
	}
	svc.logger.Info("Solicitação corrigida e reenviada", zap.Int64("id", s.ID))
	return s, nil
}

// Transicionar fires a lifecycle action on a request. Invalid transitions
// and unauthorized actors are rejected with no side effect; a version
// conflict on the write surfaces as repository.ErrConflict.
func (svc *SolicitacaoService) Transicionar(ctx context.Context, actor lifecycle.Actor, id int64, action lifecycle.Action, in lifecycle.Input) (*entity.Solicitacao, error) {
	s, err := svc.solicitacoes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	cs, err := svc.engine.Apply(s, actor, action, in)
	if err != nil {
		return nil, err
	}
	cs.ApplyTo(s)

	if err := svc.solicitacoes.Update(ctx, s); err != nil {
		return nil, err
	}
	svc.logger.Info("Transição aplicada",
		zap.Int64("id", s.ID),
		zap.String("acao", action.String()),
		zap.String("status", s.Status))
	return s, nil
}

// RegistrarPagamento writes the payment date once. There is no retraction
// path: a second registration is rejected.
func (svc *SolicitacaoService) RegistrarPagamento(ctx context.Context, actor lifecycle.Actor, id int64, data time.Time) (*entity.Solicitacao, error) {
	s, err := svc.solicitacoes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	cs, err := svc.engine.RegistrarPagamento(s, actor, data)
	if err != nil {
		return nil, err
	}
	cs.ApplyTo(s)

	if err := svc.solicitacoes.Update(ctx, s); err != nil {
		return nil, err
	}
	svc.logger.Info("Pagamento registrado",
		zap.Int64("id", s.ID),
		zap.Time("data_pagamento", *s.DataPagamento))
	return s, nil
}

// Listar returns the requests visible to the actor: all of them for
// reviewing roles, only their own otherwise.
func (svc *SolicitacaoService) Listar(ctx context.Context, actor lifecycle.Actor) ([]entity.Solicitacao, error) {
	if session.CapabilitiesFor(actor.Perfil).VeTodasSolicitacoes {
		return svc.solicitacoes.ListAll(ctx)
	}
	return svc.solicitacoes.ListByUsuario(ctx, actor.UsuarioID)
}

// Obter returns one request if the actor may see it.
func (svc *SolicitacaoService) Obter(ctx context.Context, actor lifecycle.Actor, id int64) (*entity.Solicitacao, error) {
	s, err := svc.solicitacoes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	caps := session.CapabilitiesFor(actor.Perfil)
	if !caps.VeTodasSolicitacoes && s.UsuarioID != actor.UsuarioID {
		return nil, lifecycle.ErrNotAuthorized
	}
	return s, nil
}

// AcoesPermitidas lists the transitions the actor could fire right now.
func (svc *SolicitacaoService) AcoesPermitidas(s *entity.Solicitacao, actor lifecycle.Actor) []lifecycle.Action {
	return svc.engine.PermittedActions(s, actor)
}
