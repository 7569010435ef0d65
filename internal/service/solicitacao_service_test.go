package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cosems/auxilio-viagens/internal/domain/entity"
	"github.com/cosems/auxilio-viagens/internal/lifecycle"
	"github.com/cosems/auxilio-viagens/internal/repository"
)

type fakeSolicitacaoStore struct {
	rows   map[int64]*entity.Solicitacao
	nextID int64

	protocolos map[string]bool
	// duplicateFirst forces the first N inserts to fail with
	// ErrDuplicateProtocol, regardless of the generated protocol.
	duplicateFirst int
	inserts        int
	// conflictNext makes the stored row advance right before the next
	// update, simulating a concurrent writer winning the race.
	conflictNext bool
}

func newFakeSolicitacaoStore() *fakeSolicitacaoStore {
	return &fakeSolicitacaoStore{
		rows:       make(map[int64]*entity.Solicitacao),
		protocolos: make(map[string]bool),
	}
}

func (f *fakeSolicitacaoStore) Insert(_ context.Context, s *entity.Solicitacao) error {
	f.inserts++
	if f.inserts <= f.duplicateFirst || f.protocolos[s.Protocolo] {
		return repository.ErrDuplicateProtocol
	}
	f.nextID++
	s.ID = f.nextID
	s.Version = 1
	copia := *s
	f.rows[s.ID] = &copia
	f.protocolos[s.Protocolo] = true
	return nil
}

func (f *fakeSolicitacaoStore) GetByID(_ context.Context, id int64) (*entity.Solicitacao, error) {
	s, ok := f.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copia := *s
	return &copia, nil
}

func (f *fakeSolicitacaoStore) ListByUsuario(_ context.Context, usuarioID string) ([]entity.Solicitacao, error) {
	var out []entity.Solicitacao
	for _, s := range f.rows {
		if s.UsuarioID == usuarioID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeSolicitacaoStore) ListAll(_ context.Context) ([]entity.Solicitacao, error) {
	var out []entity.Solicitacao
	for _, s := range f.rows {
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeSolicitacaoStore) Update(_ context.Context, s *entity.Solicitacao) error {
	atual, ok := f.rows[s.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if f.conflictNext {
		f.conflictNext = false
		atual.Version++
	}
	if atual.Version != s.Version {
		return repository.ErrConflict
	}
	s.Version++
	copia := *s
	f.rows[s.ID] = &copia
	return nil
}

type fakeUsuarioStore struct {
	rows map[string]*entity.Usuario
}

func newFakeUsuarioStore() *fakeUsuarioStore {
	return &fakeUsuarioStore{rows: make(map[string]*entity.Usuario)}
}

func (f *fakeUsuarioStore) GetByID(_ context.Context, id string) (*entity.Usuario, error) {
	u, ok := f.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copia := *u
	return &copia, nil
}

func (f *fakeUsuarioStore) List(_ context.Context) ([]entity.Usuario, error) {
	var out []entity.Usuario
	for _, u := range f.rows {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUsuarioStore) Insert(_ context.Context, u *entity.Usuario) error {
	copia := *u
	f.rows[u.ID] = &copia
	return nil
}

func (f *fakeUsuarioStore) Update(_ context.Context, u *entity.Usuario) error {
	if _, ok := f.rows[u.ID]; !ok {
		return repository.ErrNotFound
	}
	copia := *u
	f.rows[u.ID] = &copia
	return nil
}

type fakeTabelasStore struct{}

func (fakeTabelasStore) ListDiarias(context.Context) ([]entity.DiariaValor, error) {
	return []entity.DiariaValor{{ID: 1, Cargo: "Técnico", Valor: 300}}, nil
}

func (fakeTabelasStore) ListDeslocamentos(context.Context) ([]entity.DeslocamentoValor, error) {
	return []entity.DeslocamentoValor{{ID: 1, Faixa: "Até 100km", Valor: 80}}, nil
}

func (fakeTabelasStore) ListTiposEvento(context.Context) ([]entity.TipoEvento, error) {
	return nil, nil
}

func (fakeTabelasStore) AddTipoEvento(_ context.Context, nome string) (*entity.TipoEvento, error) {
	return &entity.TipoEvento{ID: 1, Nome: nome}, nil
}

func (fakeTabelasStore) ListInstituicoes(context.Context) ([]entity.InstituicaoExecutora, error) {
	return nil, nil
}

func (fakeTabelasStore) AddInstituicao(_ context.Context, nome string) (*entity.InstituicaoExecutora, error) {
	return &entity.InstituicaoExecutora{ID: 1, Nome: nome}, nil
}

func validInput() SolicitacaoInput {
	partida := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	retorno := time.Date(2024, 5, 12, 0, 0, 0, 0, time.UTC)
	return SolicitacaoInput{
		MesAnoRef:             "05/2024",
		TipoEvento:            "Congresso",
		NomeEvento:            "Congresso Estadual de Saúde",
		LocalEvento:           "Centro de Convenções",
		InstituicaoExecutora:  "COSEMS",
		CidadeOrigem:          "Campinas",
		CidadeDestino:         "São Paulo",
		DataPartida:           &partida,
		DataRetorno:           &retorno,
		DeslocamentoTerrestre: true,
		CategoriaDeslocamento: "Até 100km",
	}
}

func newTestService(sols *fakeSolicitacaoStore, usuarios *fakeUsuarioStore) *SolicitacaoService {
	return NewSolicitacaoService(sols, usuarios, fakeTabelasStore{}, zap.NewNop())
}

func solicitante(id string) lifecycle.Actor {
	return lifecycle.Actor{UsuarioID: id, Perfil: entity.TipoSolicitante}
}

func avaliador() lifecycle.Actor {
	return lifecycle.Actor{UsuarioID: "aut-1", Perfil: entity.TipoAutorizador}
}

func TestSolicitacaoService_Criar(t *testing.T) {
	ctx := context.Background()
	sols := newFakeSolicitacaoStore()
	usuarios := newFakeUsuarioStore()
	usuarios.rows["u1"] = &entity.Usuario{ID: "u1", Nome: "Maria", Categoria: "Técnico"}
	svc := newTestService(sols, usuarios)

	s, err := svc.Criar(ctx, solicitante("u1"), validInput())
	require.NoError(t, err)

	assert.Equal(t, lifecycle.StatusPendenteAprovacao.String(), s.Status)
	assert.Regexp(t, `^\d{14}-[A-Z0-9]{6}$`, s.Protocolo)
	assert.Equal(t, int64(1), s.Version)

	// Derived and seeded values: 3 days x 300 + 80 travel.
	assert.Equal(t, 3.0, s.QtdDiaria)
	assert.Equal(t, 900.0, s.ValorDiariaCalculado)
	assert.Equal(t, 80.0, s.ValorDeslocamentoCalculado)
	assert.Equal(t, 980.0, s.ValorTotalAprovado)
	assert.Equal(t, "10/05/2024 a 12/05/2024", s.PeriodoEvento)
}

func TestSolicitacaoService_Criar_RequiredFields(t *testing.T) {
	svc := newTestService(newFakeSolicitacaoStore(), newFakeUsuarioStore())

	in := validInput()
	in.NomeEvento = "  "
	_, err := svc.Criar(context.Background(), solicitante("u1"), in)
	assert.ErrorIs(t, err, ErrCampoObrigatorio)

	in = validInput()
	in.DataRetorno = nil
	_, err = svc.Criar(context.Background(), solicitante("u1"), in)
	assert.ErrorIs(t, err, ErrCampoObrigatorio)
}

func TestSolicitacaoService_Criar_UnknownCategoryValuesToZero(t *testing.T) {
	// No profile row: the allowance values are 0, creation still succeeds.
	sols := newFakeSolicitacaoStore()
	svc := newTestService(sols, newFakeUsuarioStore())

	s, err := svc.Criar(context.Background(), solicitante("sem-perfil"), validInput())
	require.NoError(t, err)
	assert.Equal(t, 3.0, s.QtdDiaria)
	assert.Equal(t, 0.0, s.ValorDiariaCalculado)
	assert.Equal(t, 80.0, s.ValorDeslocamentoCalculado)
}

func TestSolicitacaoService_Criar_RetriesOnProtocolCollision(t *testing.T) {
	sols := newFakeSolicitacaoStore()
	sols.duplicateFirst = 2
	svc := newTestService(sols, newFakeUsuarioStore())

	s, err := svc.Criar(context.Background(), solicitante("u1"), validInput())
	require.NoError(t, err)
	assert.Equal(t, 3, sols.inserts)
	assert.NotEmpty(t, s.Protocolo)
}

func TestSolicitacaoService_Criar_GivesUpAfterRetries(t *testing.T) {
	sols := newFakeSolicitacaoStore()
	sols.duplicateFirst = 10
	svc := newTestService(sols, newFakeUsuarioStore())

	_, err := svc.Criar(context.Background(), solicitante("u1"), validInput())
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrDuplicateProtocol)
	assert.Equal(t, protocolAttempts, sols.inserts)
}

func TestSolicitacaoService_AtualizarEReenviar(t *testing.T) {
	ctx := context.Background()
	sols := newFakeSolicitacaoStore()
	usuarios := newFakeUsuarioStore()
	usuarios.rows["u1"] = &entity.Usuario{ID: "u1", Categoria: "Técnico"}
	svc := newTestService(sols, usuarios)

	s, err := svc.Criar(ctx, solicitante("u1"), validInput())
	require.NoError(t, err)
	protocolo := s.Protocolo

	_, err = svc.Transicionar(ctx, avaliador(), s.ID, lifecycle.ActionSolicitarCorrecao,
		lifecycle.Input{Justificativa: "datas erradas"})
	require.NoError(t, err)

	in := validInput()
	novaPartida := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	novoRetorno := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	in.DataPartida = &novaPartida
	in.DataRetorno = &novoRetorno

	s2, err := svc.AtualizarEReenviar(ctx, solicitante("u1"), s.ID, in)
	require.NoError(t, err)

	assert.Equal(t, lifecycle.StatusPendenteAprovacao.String(), s2.Status)
	assert.Equal(t, protocolo, s2.Protocolo, "protocol must never be regenerated")
	assert.Empty(t, s2.JustificativaAvaliador)
	assert.Equal(t, 0.5, s2.QtdDiaria, "values recalculated for the edited dates")
}

func TestSolicitacaoService_AtualizarEReenviar_OnlyOwner(t *testing.T) {
	ctx := context.Background()
	sols := newFakeSolicitacaoStore()
	svc := newTestService(sols, newFakeUsuarioStore())

	s, err := svc.Criar(ctx, solicitante("u1"), validInput())
	require.NoError(t, err)
	_, err = svc.Transicionar(ctx, avaliador(), s.ID, lifecycle.ActionSolicitarCorrecao,
		lifecycle.Input{Justificativa: "x"})
	require.NoError(t, err)

	_, err = svc.AtualizarEReenviar(ctx, solicitante("outra"), s.ID, validInput())
	assert.ErrorIs(t, err, lifecycle.ErrNotAuthorized)
}

func TestSolicitacaoService_Transicionar_Conflict(t *testing.T) {
	ctx := context.Background()
	sols := newFakeSolicitacaoStore()
	svc := newTestService(sols, newFakeUsuarioStore())

	s, err := svc.Criar(ctx, solicitante("u1"), validInput())
	require.NoError(t, err)

	// Another session wins the race between this read and write.
	sols.conflictNext = true

	_, err = svc.Transicionar(ctx, avaliador(), s.ID, lifecycle.ActionAprovarEAvancar, lifecycle.Input{})
	assert.ErrorIs(t, err, repository.ErrConflict)
}

func TestSolicitacaoService_RegistrarPagamento(t *testing.T) {
	ctx := context.Background()
	sols := newFakeSolicitacaoStore()
	svc := newTestService(sols, newFakeUsuarioStore())

	s, err := svc.Criar(ctx, solicitante("u1"), validInput())
	require.NoError(t, err)
	_, err = svc.Transicionar(ctx, avaliador(), s.ID, lifecycle.ActionAprovarEAvancar, lifecycle.Input{})
	require.NoError(t, err)

	data := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	s2, err := svc.RegistrarPagamento(ctx, avaliador(), s.ID, data)
	require.NoError(t, err)
	require.NotNil(t, s2.DataPagamento)

	// Write-once: a second registration fails and changes nothing.
	_, err = svc.RegistrarPagamento(ctx, avaliador(), s.ID, data.AddDate(0, 0, 1))
	assert.ErrorIs(t, err, lifecycle.ErrPaymentAlreadySet)

	atual, err := svc.Obter(ctx, avaliador(), s.ID)
	require.NoError(t, err)
	assert.True(t, atual.DataPagamento.Equal(data))
}

func TestSolicitacaoService_Listar_Scope(t *testing.T) {
	ctx := context.Background()
	sols := newFakeSolicitacaoStore()
	svc := newTestService(sols, newFakeUsuarioStore())

	_, err := svc.Criar(ctx, solicitante("u1"), validInput())
	require.NoError(t, err)
	_, err = svc.Criar(ctx, solicitante("u2"), validInput())
	require.NoError(t, err)

	own, err := svc.Listar(ctx, solicitante("u1"))
	require.NoError(t, err)
	assert.Len(t, own, 1)

	all, err := svc.Listar(ctx, avaliador())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestSolicitacaoService_Obter_HiddenFromStrangers(t *testing.T) {
	ctx := context.Background()
	sols := newFakeSolicitacaoStore()
	svc := newTestService(sols, newFakeUsuarioStore())

	s, err := svc.Criar(ctx, solicitante("u1"), validInput())
	require.NoError(t, err)

	_, err = svc.Obter(ctx, solicitante("u2"), s.ID)
	assert.ErrorIs(t, err, lifecycle.ErrNotAuthorized)

	_, err = svc.Obter(ctx, avaliador(), s.ID)
	assert.NoError(t, err)
}
