package models

import "time"

// NotaFiscal is the full representation of one NF-e document: the header row
// plus every child structure extracted from the XML. The parser fills it,
// the repository persists it, and query responses reuse it (denormalized).
type NotaFiscal struct {
	ID                         int64      `json:"id" db:"id"`
	ChaveAcesso                string     `json:"chave_acesso" db:"chave_acesso"`
	Versao                     string     `json:"versao" db:"versao"`
	CodigoUF                   int        `json:"codigo_uf" db:"codigo_uf"`
	CodigoNF                   string     `json:"codigo_nf" db:"codigo_nf"`
	NaturezaOperacao           string     `json:"natureza_operacao" db:"natureza_operacao"`
	IndicadorPagamento         *int64     `json:"indicador_pagamento,omitempty" db:"indicador_pagamento"`
	Modelo                     int        `json:"modelo" db:"modelo"`
	Serie                      int        `json:"serie" db:"serie"`
	Numero                     int        `json:"numero" db:"numero"`
	DataEmissao                *time.Time `json:"data_emissao" db:"data_emissao"`
	DataSaidaEntrada           *time.Time `json:"data_saida_entrada,omitempty" db:"data_saida_entrada"`
	TipoNF                     int        `json:"tipo_nf" db:"tipo_nf"`
	CodigoMunicipioFatoGerador string     `json:"codigo_municipio_fato_gerador" db:"codigo_municipio_fato_gerador"`
	TipoImpressao              int        `json:"tipo_impressao" db:"tipo_impressao"`
	TipoEmissao                int        `json:"tipo_emissao" db:"tipo_emissao"`
	DigitoVerificador          int        `json:"digito_verificador" db:"digito_verificador"`
	Ambiente                   int        `json:"ambiente" db:"ambiente"`
	FinalidadeNF               int        `json:"finalidade_nf" db:"finalidade_nf"`
	ProcessoEmissao            int        `json:"processo_emissao" db:"processo_emissao"`
	VersaoProcesso             string     `json:"versao_processo" db:"versao_processo"`

	// Nested objects (extraction output / query responses)
	Emitente               *Pessoa                `json:"emitente,omitempty"`
	EmitenteEndereco       *Endereco              `json:"emitente_endereco,omitempty"`
	Destinatario           *Pessoa                `json:"destinatario,omitempty"`
	DestinatarioEndereco   *Endereco              `json:"destinatario_endereco,omitempty"`
	Transportadora         *Pessoa                `json:"transportadora,omitempty"`
	TransportadoraEndereco *Endereco              `json:"transportadora_endereco,omitempty"`
	Itens                  []ItemNFe              `json:"itens"`
	Totais                 *TotaisNFe             `json:"totais,omitempty"`
	Transporte             *Transporte            `json:"transporte,omitempty"`
	InformacoesAdicionais  *InformacoesAdicionais `json:"informacoes_adicionais,omitempty"`

	// Raw document, carried along for the audit trail. Never serialized.
	XMLOriginal string `json:"-"`
}

// NFeResumo is the listing projection returned by GET /nfe.
type NFeResumo struct {
	ID               int64      `json:"id" db:"id"`
	ChaveAcesso      string     `json:"chave_acesso" db:"chave_acesso"`
	Numero           int        `json:"numero" db:"numero"`
	Serie            int        `json:"serie" db:"serie"`
	DataEmissao      *time.Time `json:"data_emissao" db:"data_emissao"`
	NaturezaOperacao string     `json:"natureza_operacao" db:"natureza_operacao"`
	EmitenteNome     *string    `json:"emitente_nome,omitempty"`
	DestinatarioNome *string    `json:"destinatario_nome,omitempty"`
}
