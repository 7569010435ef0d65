package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/cosems/auxilio-viagens/internal/domain/entity"
	"github.com/cosems/auxilio-viagens/pkg/database"
	"go.uber.org/zap"
)

// SolicitacaoRepository persists reimbursement requests. Updates are
// conditional on the version read by the caller; a lost race surfaces as
// ErrConflict instead of a silent overwrite. Rows are never deleted.
type SolicitacaoRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSolicitacaoRepository creates a request repository
func NewSolicitacaoRepository(db *sql.DB, logger *zap.Logger) *SolicitacaoRepository {
	return &SolicitacaoRepository{db: db, logger: logger}
}

const solicitacaoColumns = `
	id, protocolo, usuario_id, status, version,
	mes_ano_ref, periodo_evento, tipo_evento, nome_evento, local_evento,
	instituicao_executora, cidade_origem, cidade_destino,
	data_partida, data_retorno, data_pagamento,
	hospedagem_cosems, deslocamento_terrestre, deslocamento_aereo,
	voo_ida, voo_volta, categoria_deslocamento,
	qtd_diaria, valor_deslocamento_calculado, valor_diaria_calculado,
	valor_deslocamento_aprovado, valor_diaria_aprovado, valor_ajuda_custo, valor_total_aprovado,
	observacoes, prestacao_contas_atividades, prestacao_contas_observacoes,
	prestacao_contas_arquivos, justificativa_avaliador,
	custeio_transfer_aeroporto_hotel, custeio_transfer_aeroporto_hotel_qtd,
	custeio_transfer_hotel_local_evento, custeio_transfer_hotel_local_evento_qtd,
	custeio_adicional_deslocamento, custeio_adicional_deslocamento_qtd,
	custeio_passagem_aerea, custeio_passagem_aerea_qtd,
	custeio_passagem_rodoviaria, custeio_passagem_rodoviaria_qtd,
	custeio_hospedagem, custeio_hospedagem_qtd,
	custeio_diarias, custeio_diarias_qtd,
	custeio_cafe_manha, custeio_cafe_manha_qtd,
	custeio_almoco, custeio_almoco_qtd,
	custeio_jantar, custeio_jantar_qtd,
	created_at`

func scanSolicitacao(row interface{ Scan(...any) error }) (*entity.Solicitacao, error) {
	var s entity.Solicitacao
	var partida, retorno, pagamento sql.NullTime
	var qtds [10]sql.NullInt64

	err := row.Scan(
		&s.ID, &s.Protocolo, &s.UsuarioID, &s.Status, &s.Version,
		&s.MesAnoRef, &s.PeriodoEvento, &s.TipoEvento, &s.NomeEvento, &s.LocalEvento,
		&s.InstituicaoExecutora, &s.CidadeOrigem, &s.CidadeDestino,
		&partida, &retorno, &pagamento,
		&s.HospedagemCosems, &s.DeslocamentoTerrestre, &s.DeslocamentoAereo,
		&s.VooIda, &s.VooVolta, &s.CategoriaDeslocamento,
		&s.QtdDiaria, &s.ValorDeslocamentoCalculado, &s.ValorDiariaCalculado,
		&s.ValorDeslocamentoAprovado, &s.ValorDiariaAprovado, &s.ValorAjudaCusto, &s.ValorTotalAprovado,
		&s.Observacoes, &s.PrestacaoAtividades, &s.PrestacaoObservacoes,
		&s.PrestacaoArquivos, &s.JustificativaAvaliador,
		&s.Custeios.TransferAeroportoHotel, &qtds[0],
		&s.Custeios.TransferHotelLocalEvento, &qtds[1],
		&s.Custeios.AdicionalDeslocamento, &qtds[2],
		&s.Custeios.PassagemAerea, &qtds[3],
		&s.Custeios.PassagemRodoviaria, &qtds[4],
		&s.Custeios.Hospedagem, &qtds[5],
		&s.Custeios.Diarias, &qtds[6],
		&s.Custeios.CafeManha, &qtds[7],
		&s.Custeios.Almoco, &qtds[8],
		&s.Custeios.Jantar, &qtds[9],
		&s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if partida.Valid {
		s.DataPartida = &partida.Time
	}
	if retorno.Valid {
		s.DataRetorno = &retorno.Time
	}
	if pagamento.Valid {
		s.DataPagamento = &pagamento.Time
	}

	setQtd := func(dst **int, v sql.NullInt64) {
		if v.Valid {
			q := int(v.Int64)
			*dst = &q
		}
	}
	setQtd(&s.Custeios.TransferAeroportoHotelQtd, qtds[0])
	setQtd(&s.Custeios.TransferHotelLocalEventoQtd, qtds[1])
	setQtd(&s.Custeios.AdicionalDeslocamentoQtd, qtds[2])
	setQtd(&s.Custeios.PassagemAereaQtd, qtds[3])
	setQtd(&s.Custeios.PassagemRodoviariaQtd, qtds[4])
	setQtd(&s.Custeios.HospedagemQtd, qtds[5])
	setQtd(&s.Custeios.DiariasQtd, qtds[6])
	setQtd(&s.Custeios.CafeManhaQtd, qtds[7])
	setQtd(&s.Custeios.AlmocoQtd, qtds[8])
	setQtd(&s.Custeios.JantarQtd, qtds[9])

	return &s, nil
}

func args(s *entity.Solicitacao) []any {
	qtd := func(p *int) any {
		if p == nil {
			return nil
		}
		return *p
	}

	var partida, retorno, pagamento any
	if s.DataPartida != nil {
		partida = s.DataPartida.UTC()
	}
	if s.DataRetorno != nil {
		retorno = s.DataRetorno.UTC()
	}
	if s.DataPagamento != nil {
		pagamento = s.DataPagamento.UTC()
	}

	return []any{
		s.Protocolo, s.UsuarioID, s.Status,
		s.MesAnoRef, s.PeriodoEvento, s.TipoEvento, s.NomeEvento, s.LocalEvento,
		s.InstituicaoExecutora, s.CidadeOrigem, s.CidadeDestino,
		partida, retorno, pagamento,
		s.HospedagemCosems, s.DeslocamentoTerrestre, s.DeslocamentoAereo,
		s.VooIda, s.VooVolta, s.CategoriaDeslocamento,
		s.QtdDiaria, s.ValorDeslocamentoCalculado, s.ValorDiariaCalculado,
		s.ValorDeslocamentoAprovado, s.ValorDiariaAprovado, s.ValorAjudaCusto, s.ValorTotalAprovado,
		s.Observacoes, s.PrestacaoAtividades, s.PrestacaoObservacoes,
		s.PrestacaoArquivos, s.JustificativaAvaliador,
		s.Custeios.TransferAeroportoHotel, qtd(s.Custeios.TransferAeroportoHotelQtd),
		s.Custeios.TransferHotelLocalEvento, qtd(s.Custeios.TransferHotelLocalEventoQtd),
		s.Custeios.AdicionalDeslocamento, qtd(s.Custeios.AdicionalDeslocamentoQtd),
		s.Custeios.PassagemAerea, qtd(s.Custeios.PassagemAereaQtd),
		s.Custeios.PassagemRodoviaria, qtd(s.Custeios.PassagemRodoviariaQtd),
		s.Custeios.Hospedagem, qtd(s.Custeios.HospedagemQtd),
		s.Custeios.Diarias, qtd(s.Custeios.DiariasQtd),
		s.Custeios.CafeManha, qtd(s.Custeios.CafeManhaQtd),
		s.Custeios.Almoco, qtd(s.Custeios.AlmocoQtd),
		s.Custeios.Jantar, qtd(s.Custeios.JantarQtd),
	}
}

const insertQuery = `
	INSERT INTO solicitacoes (
		protocolo, usuario_id, status,
		mes_ano_ref, periodo_evento, tipo_evento, nome_evento, local_evento,
		instituicao_executora, cidade_origem, cidade_destino,
		data_partida, data_retorno, data_pagamento,
		hospedagem_cosems, deslocamento_terrestre, deslocamento_aereo,
		voo_ida, voo_volta, categoria_deslocamento,
		qtd_diaria, valor_deslocamento_calculado, valor_diaria_calculado,
		valor_deslocamento_aprovado, valor_diaria_aprovado, valor_ajuda_custo, valor_total_aprovado,
		observacoes, prestacao_contas_atividades, prestacao_contas_observacoes,
		prestacao_contas_arquivos, justificativa_avaliador,
		custeio_transfer_aeroporto_hotel, custeio_transfer_aeroporto_hotel_qtd,
		custeio_transfer_hotel_local_evento, custeio_transfer_hotel_local_evento_qtd,
		custeio_adicional_deslocamento, custeio_adicional_deslocamento_qtd,
		custeio_passagem_aerea, custeio_passagem_aerea_qtd,
		custeio_passagem_rodoviaria, custeio_passagem_rodoviaria_qtd,
		custeio_hospedagem, custeio_hospedagem_qtd,
		custeio_diarias, custeio_diarias_qtd,
		custeio_cafe_manha, custeio_cafe_manha_qtd,
		custeio_almoco, custeio_almoco_qtd,
		custeio_jantar, custeio_jantar_qtd
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?,
		?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// Insert stores a new request. The protocol column carries a UNIQUE
// constraint; callers detect the violation and retry with a new protocol.
func (r *SolicitacaoRepository) Insert(ctx context.Context, s *entity.Solicitacao) error {
	result, err := r.db.ExecContext(ctx, insertQuery, args(s)...)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return fmt.Errorf("%w: %s", ErrDuplicateProtocol, s.Protocolo)
		}
		r.logger.Error("Falha ao inserir solicitação", zap.Error(err))
		return fmt.Errorf("falha ao inserir solicitação: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("falha ao obter id gerado: %w", err)
	}
	s.ID = id
	s.Version = 1
	return nil
}

// GetByID returns one request or ErrNotFound.
func (r *SolicitacaoRepository) GetByID(ctx context.Context, id int64) (*entity.Solicitacao, error) {
	query := fmt.Sprintf("SELECT %s FROM solicitacoes WHERE id = ?", solicitacaoColumns)

	s, err := scanSolicitacao(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		r.logger.Error("Falha ao buscar solicitação", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("falha ao buscar solicitação: %w", err)
	}
	return s, nil
}

// ListByUsuario returns the requests owned by one requester, newest first.
func (r *SolicitacaoRepository) ListByUsuario(ctx context.Context, usuarioID string) ([]entity.Solicitacao, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM solicitacoes WHERE usuario_id = ? ORDER BY created_at DESC", solicitacaoColumns)
	return r.list(ctx, query, usuarioID)
}

// ListAll returns every request, newest first.
func (r *SolicitacaoRepository) ListAll(ctx context.Context) ([]entity.Solicitacao, error) {
	query := fmt.Sprintf("SELECT %s FROM solicitacoes ORDER BY created_at DESC", solicitacaoColumns)
	return r.list(ctx, query)
}

func (r *SolicitacaoRepository) list(ctx context.Context, query string, params ...any) ([]entity.Solicitacao, error) {
	rows, err := r.db.QueryContext(ctx, query, params...)
	if err != nil {
		r.logger.Error("Falha ao listar solicitações", zap.Error(err))
		return nil, fmt.Errorf("falha ao listar solicitações: %w", err)
	}
	defer rows.Close()

	var out []entity.Solicitacao
	for rows.Next() {
		s, err := scanSolicitacao(rows)
		if err != nil {
			return nil, fmt.Errorf("falha ao ler solicitação: %w", err)
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

const updateQuery = `
	UPDATE solicitacoes SET
		protocolo = ?, usuario_id = ?, status = ?,
		mes_ano_ref = ?, periodo_evento = ?, tipo_evento = ?, nome_evento = ?, local_evento = ?,
		instituicao_executora = ?, cidade_origem = ?, cidade_destino = ?,
		data_partida = ?, data_retorno = ?, data_pagamento = ?,
		hospedagem_cosems = ?, deslocamento_terrestre = ?, deslocamento_aereo = ?,
		voo_ida = ?, voo_volta = ?, categoria_deslocamento = ?,
		qtd_diaria = ?, valor_deslocamento_calculado = ?, valor_diaria_calculado = ?,
		valor_deslocamento_aprovado = ?, valor_diaria_aprovado = ?, valor_ajuda_custo = ?, valor_total_aprovado = ?,
		observacoes = ?, prestacao_contas_atividades = ?, prestacao_contas_observacoes = ?,
		prestacao_contas_arquivos = ?, justificativa_avaliador = ?,
		custeio_transfer_aeroporto_hotel = ?, custeio_transfer_aeroporto_hotel_qtd = ?,
		custeio_transfer_hotel_local_evento = ?, custeio_transfer_hotel_local_evento_qtd = ?,
		custeio_adicional_deslocamento = ?, custeio_adicional_deslocamento_qtd = ?,
		custeio_passagem_aerea = ?, custeio_passagem_aerea_qtd = ?,
		custeio_passagem_rodoviaria = ?, custeio_passagem_rodoviaria_qtd = ?,
		custeio_hospedagem = ?, custeio_hospedagem_qtd = ?,
		custeio_diarias = ?, custeio_diarias_qtd = ?,
		custeio_cafe_manha = ?, custeio_cafe_manha_qtd = ?,
		custeio_almoco = ?, custeio_almoco_qtd = ?,
		custeio_jantar = ?, custeio_jantar_qtd = ?,
		version = version + 1
	WHERE id = ? AND version = ?`

// Update writes the full row conditioned on the version the caller read.
// A stale version yields ErrConflict; an unknown id yields ErrNotFound.
// On success the in-memory version is bumped to match the row.
func (r *SolicitacaoRepository) Update(ctx context.Context, s *entity.Solicitacao) error {
	params := append(args(s), s.ID, s.Version)

	result, err := r.db.ExecContext(ctx, updateQuery, params...)
	if err != nil {
		r.logger.Error("Falha ao atualizar solicitação", zap.Int64("id", s.ID), zap.Error(err))
		return fmt.Errorf("falha ao atualizar solicitação: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("falha ao verificar atualização: %w", err)
	}
	if affected == 0 {
		var exists int
		err := r.db.QueryRowContext(ctx,
			"SELECT 1 FROM solicitacoes WHERE id = ?", s.ID).Scan(&exists)
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("falha ao verificar atualização: %w", err)
		}
		return ErrConflict
	}

	s.Version++
	return nil
}
