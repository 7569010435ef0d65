package entity

import (
	"fmt"
	"time"
)

// Solicitacao represents a travel/event reimbursement request tracked from
// creation through accountability. Monetary values are in BRL.
type Solicitacao struct {
	ID        int64  `json:"id"`
	Protocolo string `json:"protocolo"`
	UsuarioID string `json:"usuario_id"`
	Status    string `json:"status"`
	Version   int64  `json:"version"`

	MesAnoRef            string `json:"mes_ano_ref"`
	PeriodoEvento        string `json:"periodo_evento"`
	TipoEvento           string `json:"tipo_evento"`
	NomeEvento           string `json:"nome_evento"`
	LocalEvento          string `json:"local_evento"`
	InstituicaoExecutora string `json:"instituicao_executora"`
	CidadeOrigem         string `json:"cidade_origem"`
	CidadeDestino        string `json:"cidade_destino"`

	DataPartida   *time.Time `json:"data_partida,omitempty"`
	DataRetorno   *time.Time `json:"data_retorno,omitempty"`
	DataPagamento *time.Time `json:"data_pagamento,omitempty"`

	HospedagemCosems      bool   `json:"hospedagem_cosems"`
	DeslocamentoTerrestre bool   `json:"deslocamento_terrestre"`
	DeslocamentoAereo     bool   `json:"deslocamento_aereo"`
	VooIda                string `json:"voo_ida,omitempty"`
	VooVolta              string `json:"voo_volta,omitempty"`
	CategoriaDeslocamento string `json:"categoria_deslocamento"`

	QtdDiaria                  float64 `json:"qtd_diaria"`
	ValorDeslocamentoCalculado float64 `json:"valor_deslocamento_calculado"`
	ValorDiariaCalculado       float64 `json:"valor_diaria_calculado"`
	ValorDeslocamentoAprovado  float64 `json:"valor_deslocamento_aprovado"`
	ValorDiariaAprovado        float64 `json:"valor_diaria_aprovado"`
	ValorAjudaCusto            float64 `json:"valor_ajuda_custo"`
	ValorTotalAprovado         float64 `json:"valor_total_aprovado"`

	Observacoes             string `json:"observacoes,omitempty"`
	PrestacaoAtividades     string `json:"prestacao_contas_atividades,omitempty"`
	PrestacaoObservacoes    string `json:"prestacao_contas_observacoes,omitempty"`
	PrestacaoArquivos       string `json:"prestacao_contas_arquivos,omitempty"`
	JustificativaAvaliador  string `json:"justificativa_avaliador,omitempty"`

	Custeios CusteiosExternos `json:"custeios"`

	CreatedAt time.Time `json:"created_at"`
}

// CusteiosExternos records aid already covered by other institutions, one
// (flag, count) pair per funding category. A count is meaningful only while
// its flag is set; Validate enforces the pairing.
type CusteiosExternos struct {
	TransferAeroportoHotel      bool `json:"custeio_transfer_aeroporto_hotel"`
	TransferAeroportoHotelQtd   *int `json:"custeio_transfer_aeroporto_hotel_qtd,omitempty"`
	TransferHotelLocalEvento    bool `json:"custeio_transfer_hotel_local_evento"`
	TransferHotelLocalEventoQtd *int `json:"custeio_transfer_hotel_local_evento_qtd,omitempty"`
	AdicionalDeslocamento       bool `json:"custeio_adicional_deslocamento"`
	AdicionalDeslocamentoQtd    *int `json:"custeio_adicional_deslocamento_qtd,omitempty"`
	PassagemAerea               bool `json:"custeio_passagem_aerea"`
	PassagemAereaQtd            *int `json:"custeio_passagem_aerea_qtd,omitempty"`
	PassagemRodoviaria          bool `json:"custeio_passagem_rodoviaria"`
	PassagemRodoviariaQtd       *int `json:"custeio_passagem_rodoviaria_qtd,omitempty"`
	Hospedagem                  bool `json:"custeio_hospedagem"`
	HospedagemQtd               *int `json:"custeio_hospedagem_qtd,omitempty"`
	Diarias                     bool `json:"custeio_diarias"`
	DiariasQtd                  *int `json:"custeio_diarias_qtd,omitempty"`
	CafeManha                   bool `json:"custeio_cafe_manha"`
	CafeManhaQtd                *int `json:"custeio_cafe_manha_qtd,omitempty"`
	Almoco                      bool `json:"custeio_almoco"`
	AlmocoQtd                   *int `json:"custeio_almoco_qtd,omitempty"`
	Jantar                      bool `json:"custeio_jantar"`
	JantarQtd                   *int `json:"custeio_jantar_qtd,omitempty"`
}

type custeioPar struct {
	nome string
	flag bool
	qtd  *int
}

func (c *CusteiosExternos) pares() []custeioPar {
	return []custeioPar{
		{"custeio_transfer_aeroporto_hotel", c.TransferAeroportoHotel, c.TransferAeroportoHotelQtd},
		{"custeio_transfer_hotel_local_evento", c.TransferHotelLocalEvento, c.TransferHotelLocalEventoQtd},
		{"custeio_adicional_deslocamento", c.AdicionalDeslocamento, c.AdicionalDeslocamentoQtd},
		{"custeio_passagem_aerea", c.PassagemAerea, c.PassagemAereaQtd},
		{"custeio_passagem_rodoviaria", c.PassagemRodoviaria, c.PassagemRodoviariaQtd},
		{"custeio_hospedagem", c.Hospedagem, c.HospedagemQtd},
		{"custeio_diarias", c.Diarias, c.DiariasQtd},
		{"custeio_cafe_manha", c.CafeManha, c.CafeManhaQtd},
		{"custeio_almoco", c.Almoco, c.AlmocoQtd},
		{"custeio_jantar", c.Jantar, c.JantarQtd},
	}
}

// Validate checks that every funding count is present exactly when its flag
// is set, and within the accepted 1..10 range.
func (c *CusteiosExternos) Validate() error {
	for _, p := range c.pares() {
		if p.flag {
			if p.qtd == nil {
				return fmt.Errorf("%s: quantidade obrigatória quando o custeio está marcado", p.nome)
			}
			if *p.qtd < 1 || *p.qtd > 10 {
				return fmt.Errorf("%s: quantidade deve estar entre 1 e 10", p.nome)
			}
		} else if p.qtd != nil {
			return fmt.Errorf("%s: quantidade informada sem o custeio marcado", p.nome)
		}
	}
	return nil
}
