package parser

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"watchman/models"
)

const docCompleto = `<?xml version="1.0" encoding="UTF-8"?>
<nfeProc xmlns="http://www.portalfiscal.inf.br/nfe" versao="4.00">
  <NFe>
    <infNFe Id="NFe35230512345678000199550010000000011000000015" versao="4.00">
      <ide>
        <cUF>35</cUF>
        <cNF>00000001</cNF>
        <natOp>VENDA DE MERCADORIA</natOp>
        <mod>55</mod>
        <serie>1</serie>
        <nNF>1</nNF>
        <dhEmi>2023-05-15T10:30:00-03:00</dhEmi>
        <dhSaiEnt>2023-05-16T08:00:00-03:00</dhSaiEnt>
        <tpNF>1</tpNF>
        <cMunFG>3550308</cMunFG>
        <tpImp>1</tpImp>
        <tpEmis>1</tpEmis>
        <cDV>5</cDV>
        <tpAmb>1</tpAmb>
        <finNFe>1</finNFe>
        <procEmi>0</procEmi>
        <verProc>4.00</verProc>
      </ide>
      <emit>
        <CNPJ>12345678000199</CNPJ>
        <xNome>EMPRESA EMITENTE LTDA</xNome>
        <xFant>EMITENTE</xFant>
        <IE>123456789</IE>
        <CRT>3</CRT>
        <enderEmit>
          <xLgr>RUA DAS FLORES</xLgr>
          <nro>100</nro>
          <xBairro>CENTRO</xBairro>
          <cMun>3550308</cMun>
          <xMun>SAO PAULO</xMun>
          <UF>SP</UF>
          <CEP>01001000</CEP>
          <cPais>1058</cPais>
          <xPais>BRASIL</xPais>
          <fone>1133334444</fone>
        </enderEmit>
      </emit>
      <dest>
        <CNPJ>98765432000188</CNPJ>
        <xNome>CLIENTE DESTINATARIO SA</xNome>
        <email>fiscal@cliente.com.br</email>
        <enderDest>
          <xLgr>AV BRASIL</xLgr>
          <nro>2000</nro>
          <xBairro>JARDINS</xBairro>
          <cMun>3304557</cMun>
          <xMun>RIO DE JANEIRO</xMun>
          <UF>RJ</UF>
          <CEP>20040002</CEP>
        </enderDest>
      </dest>
      <det nItem="1">
        <prod>
          <cProd>SKU-001</cProd>
          <cEAN>7891234567895</cEAN>
          <xProd>PARAFUSO SEXTAVADO</xProd>
          <NCM>73181500</NCM>
          <CFOP>5102</CFOP>
          <uCom>CX</uCom>
          <qCom>10.0000</qCom>
          <vUnCom>25.5000000000</vUnCom>
          <vProd>255.00</vProd>
          <cEANTrib>7891234567895</cEANTrib>
          <uTrib>CX</uTrib>
          <qTrib>10.0000</qTrib>
          <vUnTrib>25.5000000000</vUnTrib>
        </prod>
        <imposto>
          <ICMS>
            <ICMS00>
              <orig>0</orig>
              <CST>00</CST>
              <modBC>3</modBC>
              <vBC>255.00</vBC>
              <pICMS>18.00</pICMS>
              <vICMS>45.90</vICMS>
            </ICMS00>
          </ICMS>
          <IPI>
            <cEnq>999</cEnq>
            <IPITrib>
              <CST>50</CST>
            </IPITrib>
          </IPI>
          <PIS>
            <PISAliq>
              <CST>01</CST>
              <vBC>255.00</vBC>
              <pPIS>1.65</pPIS>
              <vPIS>4.21</vPIS>
            </PISAliq>
          </PIS>
          <COFINS>
            <COFINSAliq>
              <CST>01</CST>
              <vBC>255.00</vBC>
              <pCOFINS>7.60</pCOFINS>
              <vCOFINS>19.38</vCOFINS>
            </COFINSAliq>
          </COFINS>
        </imposto>
      </det>
      <det nItem="2">
        <prod>
          <cProd>SKU-002</cProd>
          <xProd>PORCA SEXTAVADA</xProd>
          <CFOP>5102</CFOP>
          <uCom>UN</uCom>
          <qCom>100.0000</qCom>
          <vUnCom>0.5000000000</vUnCom>
          <vProd>50.00</vProd>
          <uTrib>UN</uTrib>
          <qTrib>100.0000</qTrib>
          <vUnTrib>0.5000000000</vUnTrib>
        </prod>
      </det>
      <total>
        <ICMSTot>
          <vBC>255.00</vBC>
          <vICMS>45.90</vICMS>
          <vBCST>0.00</vBCST>
          <vST>0.00</vST>
          <vProd>305.00</vProd>
          <vFrete>12.50</vFrete>
          <vDesc>0.00</vDesc>
          <vNF>317.50</vNF>
        </ICMSTot>
      </total>
      <transp>
        <modFrete>0</modFrete>
        <transporta>
          <CNPJ>11222333000144</CNPJ>
          <xNome>TRANSPORTES RAPIDOS LTDA</xNome>
          <IE>987654321</IE>
          <xEnder>ROD BR-116 KM 20</xEnder>
          <xMun>GUARULHOS</xMun>
          <UF>SP</UF>
        </transporta>
        <veicTransp>
          <placa>ABC1D23</placa>
          <UF>SP</UF>
          <RNTC>12345678</RNTC>
        </veicTransp>
        <vol>
          <qVol>5</qVol>
          <esp>CAIXA</esp>
          <marca>ACME</marca>
          <nVol>001</nVol>
          <pesoL>50.000</pesoL>
          <pesoB>52.500</pesoB>
          <lacres>
            <nLacre>LACRE-01</nLacre>
          </lacres>
          <lacres>
            <nLacre>LACRE-02</nLacre>
          </lacres>
        </vol>
      </transp>
      <infAdic>
        <infAdFisco>ICMS RECOLHIDO POR SUBSTITUICAO</infAdFisco>
        <infCpl>PEDIDO 4455</infCpl>
      </infAdic>
    </infNFe>
  </NFe>
</nfeProc>`

const docSimplesNacional = `<?xml version="1.0" encoding="UTF-8"?>
<NFe xmlns="http://www.portalfiscal.inf.br/nfe">
  <infNFe Id="NFe35230698765432000188550020000000021000000023" versao="4.00">
    <ide>
      <cUF>35</cUF>
      <natOp>VENDA</natOp>
      <mod>55</mod>
      <serie>2</serie>
      <nNF>2</nNF>
      <dhEmi>2023-06-01T09:00:00-03:00</dhEmi>
      <tpNF>1</tpNF>
      <tpAmb>1</tpAmb>
    </ide>
    <emit>
      <CNPJ>98765432000188</CNPJ>
      <xNome>PEQUENA EMPRESA ME</xNome>
      <CRT>1</CRT>
    </emit>
    <dest>
      <CPF>12345678901</CPF>
      <xNome>PESSOA FISICA</xNome>
    </dest>
    <det>
      <prod>
        <cProd>P1</cProd>
        <xProd>PRODUTO UNICO</xProd>
        <CFOP>5101</CFOP>
        <uCom>UN</uCom>
        <qCom>1.0000</qCom>
        <vUnCom>99.90</vUnCom>
        <vProd>99.90</vProd>
        <uTrib>UN</uTrib>
        <qTrib>1.0000</qTrib>
        <vUnTrib>99.90</vUnTrib>
      </prod>
      <imposto>
        <ICMS>
          <ICMSSN101>
            <orig>0</orig>
            <CSOSN>101</CSOSN>
            <pCredSN>2.8255</pCredSN>
            <vCredICMSSN>2.82</vCredICMSSN>
          </ICMSSN101>
        </ICMS>
      </imposto>
    </det>
  </infNFe>
</NFe>`

const docSemItens = `<?xml version="1.0" encoding="UTF-8"?>
<nfeProc xmlns="http://www.portalfiscal.inf.br/nfe">
  <NFe>
    <infNFe Id="NFe35230712345678000199550010000000031000000031" versao="4.00">
      <ide>
        <cUF>35</cUF>
        <natOp>AJUSTE</natOp>
        <mod>55</mod>
        <serie>1</serie>
        <nNF>3</nNF>
        <dhEmi>2023-07-01T12:00:00-03:00</dhEmi>
      </ide>
      <emit>
        <CNPJ>12345678000199</CNPJ>
        <xNome>EMPRESA EMITENTE LTDA</xNome>
      </emit>
      <dest>
        <CNPJ>98765432000188</CNPJ>
        <xNome>CLIENTE DESTINATARIO SA</xNome>
      </dest>
    </infNFe>
  </NFe>
</nfeProc>`

const docSemIde = `<?xml version="1.0" encoding="UTF-8"?>
<NFe xmlns="http://www.portalfiscal.inf.br/nfe">
  <infNFe Id="NFe35230712345678000199550010000000041000000040" versao="4.00">
    <emit>
      <CNPJ>12345678000199</CNPJ>
      <xNome>EMPRESA SEM IDE</xNome>
    </emit>
  </infNFe>
</NFe>`

func newTestExtractor() *Extractor {
	return NewExtractor(zap.NewNop())
}

func TestExtractDocumentoCompleto(t *testing.T) {
	nf, err := newTestExtractor().Extract([]byte(docCompleto))
	require.NoError(t, err)
	require.NotNil(t, nf)

	assert.Equal(t, "35230512345678000199550010000000011000000015", nf.ChaveAcesso)
	assert.Equal(t, "4.00", nf.Versao)
	assert.Equal(t, 35, nf.CodigoUF)
	assert.Equal(t, "VENDA DE MERCADORIA", nf.NaturezaOperacao)
	assert.Equal(t, 55, nf.Modelo)
	assert.Equal(t, 1, nf.Serie)
	assert.Equal(t, 1, nf.Numero)
	assert.Equal(t, 5, nf.DigitoVerificador)

	// indPag absent, contingency default applies
	require.NotNil(t, nf.IndicadorPagamento)
	assert.Equal(t, int64(9), *nf.IndicadorPagamento)

	require.NotNil(t, nf.DataEmissao)
	assert.Equal(t, time.Date(2023, 5, 15, 0, 0, 0, 0, time.UTC), *nf.DataEmissao)
	require.NotNil(t, nf.DataSaidaEntrada)
	assert.Equal(t, time.Date(2023, 5, 16, 0, 0, 0, 0, time.UTC), *nf.DataSaidaEntrada)
}

func TestExtractPartes(t *testing.T) {
	nf, err := newTestExtractor().Extract([]byte(docCompleto))
	require.NoError(t, err)

	require.NotNil(t, nf.Emitente)
	assert.Equal(t, models.TipoPessoaEmitente, nf.Emitente.TipoPessoa)
	assert.Equal(t, "12345678000199", *nf.Emitente.CNPJ)
	assert.Equal(t, "EMPRESA EMITENTE LTDA", *nf.Emitente.Nome)
	assert.Equal(t, "EMITENTE", *nf.Emitente.NomeFantasia)
	assert.Equal(t, int64(3), *nf.Emitente.RegimeTributario)

	require.NotNil(t, nf.EmitenteEndereco)
	assert.Equal(t, "RUA DAS FLORES", nf.EmitenteEndereco.Logradouro)
	assert.Equal(t, "SP", nf.EmitenteEndereco.UF)
	assert.True(t, nf.EmitenteEndereco.Completo())

	require.NotNil(t, nf.Destinatario)
	assert.Equal(t, models.TipoPessoaDestinatario, nf.Destinatario.TipoPessoa)
	assert.Equal(t, "fiscal@cliente.com.br", *nf.Destinatario.Email)

	require.NotNil(t, nf.Transportadora)
	assert.Equal(t, models.TipoPessoaTransportadora, nf.Transportadora.TipoPessoa)
	assert.Equal(t, "11222333000144", *nf.Transportadora.CNPJ)
}

func TestExtractEnderecoTransportadoraComPlaceholders(t *testing.T) {
	nf, err := newTestExtractor().Extract([]byte(docCompleto))
	require.NoError(t, err)

	end := nf.TransportadoraEndereco
	require.NotNil(t, end)
	assert.Equal(t, "ROD BR-116 KM 20", end.Logradouro)
	assert.Equal(t, "S/N", end.Numero)
	assert.Equal(t, "N/A", end.Bairro)
	assert.Equal(t, "0000000", end.CodigoMunicipio)
	assert.Equal(t, "GUARULHOS", end.Municipio)
	assert.Equal(t, "00000000", end.CEP)
	assert.True(t, end.Completo())
}

func TestExtractItensEImpostos(t *testing.T) {
	nf, err := newTestExtractor().Extract([]byte(docCompleto))
	require.NoError(t, err)
	require.Len(t, nf.Itens, 2)

	primeiro := nf.Itens[0]
	assert.Equal(t, 1, primeiro.NumeroItem)
	assert.Equal(t, "SKU-001", primeiro.CodigoProduto)
	assert.Equal(t, "PARAFUSO SEXTAVADO", primeiro.Descricao)
	assert.Equal(t, "73181500", *primeiro.NCM)
	assert.Equal(t, "5102", primeiro.CFOP)
	assert.Equal(t, "10.0000", primeiro.QuantidadeComercial.String())
	assert.Equal(t, "255.00", primeiro.ValorTotalBruto.String())
	require.NotNil(t, primeiro.OrigemMercadoria)
	assert.Equal(t, int64(0), *primeiro.OrigemMercadoria)

	require.Len(t, primeiro.Impostos, 4)

	icms := primeiro.Impostos[0]
	assert.Equal(t, models.TipoImpostoICMS, icms.TipoImposto)
	assert.Equal(t, "00", *icms.CST)
	assert.Equal(t, int64(3), *icms.ModalidadeBaseCalculo)
	assert.Equal(t, "45.90", icms.Valor.Decimal.String())

	ipi := primeiro.Impostos[1]
	assert.Equal(t, models.TipoImpostoIPI, ipi.TipoImposto)
	assert.Equal(t, "50", *ipi.CST)
	assert.Equal(t, "999", *ipi.CodigoEnquadramento)

	pis := primeiro.Impostos[2]
	assert.Equal(t, models.TipoImpostoPIS, pis.TipoImposto)
	assert.Equal(t, "4.21", pis.Valor.Decimal.String())

	cofins := primeiro.Impostos[3]
	assert.Equal(t, models.TipoImpostoCOFINS, cofins.TipoImposto)
	assert.Equal(t, "19.38", cofins.Valor.Decimal.String())

	segundo := nf.Itens[1]
	assert.Equal(t, 2, segundo.NumeroItem)
	assert.Empty(t, segundo.Impostos)
	assert.Nil(t, segundo.NCM)
}

func TestExtractTotais(t *testing.T) {
	nf, err := newTestExtractor().Extract([]byte(docCompleto))
	require.NoError(t, err)

	require.NotNil(t, nf.Totais)
	assert.False(t, nf.Totais.Vazio())
	assert.Equal(t, "317.50", nf.Totais.ValorTotalNFe.Decimal.String())
	assert.Equal(t, "12.50", nf.Totais.ValorFrete.Decimal.String())
	assert.False(t, nf.Totais.ValorII.Valid)
}

func TestExtractTransporte(t *testing.T) {
	nf, err := newTestExtractor().Extract([]byte(docCompleto))
	require.NoError(t, err)

	tr := nf.Transporte
	require.NotNil(t, tr)
	require.NotNil(t, tr.ModalidadeFrete)
	assert.Equal(t, int64(0), *tr.ModalidadeFrete)

	require.Len(t, tr.Volumes, 1)
	vol := tr.Volumes[0]
	assert.Equal(t, models.TipoItemVolume, vol.TipoItem)
	assert.Equal(t, int64(5), *vol.Quantidade)
	assert.Equal(t, "CAIXA", *vol.Especie)
	assert.Equal(t, "52.500", vol.PesoBruto.Decimal.String())

	require.Len(t, vol.Lacres, 2)
	assert.Equal(t, models.TipoItemLacre, vol.Lacres[0].TipoItem)
	assert.Equal(t, "LACRE-01", *vol.Lacres[0].NumeroLacre)
	assert.Equal(t, "LACRE-02", *vol.Lacres[1].NumeroLacre)

	require.Len(t, tr.Veiculos, 1)
	veic := tr.Veiculos[0]
	assert.Equal(t, models.TipoItemVeiculo, veic.TipoItem)
	assert.Equal(t, "ABC1D23", *veic.Placa)
	assert.Equal(t, "12345678", *veic.RNTC)
}

func TestExtractInformacoesAdicionais(t *testing.T) {
	nf, err := newTestExtractor().Extract([]byte(docCompleto))
	require.NoError(t, err)

	info := nf.InformacoesAdicionais
	require.NotNil(t, info)
	assert.False(t, info.Vazia())
	assert.Equal(t, "PEDIDO 4455", *info.InfoContribuinte)
	assert.Equal(t, "ICMS RECOLHIDO POR SUBSTITUICAO", *info.InfoFisco)
}

func TestExtractSimplesNacional(t *testing.T) {
	nf, err := newTestExtractor().Extract([]byte(docSimplesNacional))
	require.NoError(t, err)

	assert.Equal(t, "35230698765432000188550020000000021000000023", nf.ChaveAcesso)
	require.NotNil(t, nf.Destinatario)
	assert.Equal(t, "12345678901", *nf.Destinatario.CPF)
	assert.Nil(t, nf.Destinatario.CNPJ)

	require.Len(t, nf.Itens, 1)
	// nItem attribute absent, 1-based position applies
	assert.Equal(t, 1, nf.Itens[0].NumeroItem)

	require.Len(t, nf.Itens[0].Impostos, 1)
	icms := nf.Itens[0].Impostos[0]
	assert.Equal(t, models.TipoImpostoICMS, icms.TipoImposto)
	// CST absent in Simples regimes, CSOSN takes its place
	assert.Equal(t, "101", *icms.CST)
	assert.Equal(t, "2.8255", icms.PercentualCreditoSN.Decimal.String())
	assert.Equal(t, "2.82", icms.ValorCreditoSN.Decimal.String())
}

func TestExtractDocumentoSemItens(t *testing.T) {
	nf, err := newTestExtractor().Extract([]byte(docSemItens))
	require.NoError(t, err)

	assert.Equal(t, "35230712345678000199550010000000031000000031", nf.ChaveAcesso)
	assert.Empty(t, nf.Itens)
	assert.Nil(t, nf.Totais)
	assert.Nil(t, nf.Transporte)
	require.NotNil(t, nf.Emitente)
	require.NotNil(t, nf.Destinatario)
}

func TestExtractFalhas(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed xml", "<nfeProc><NFe><infNFe>"},
		{"not xml at all", "definitely not xml"},
		{"no infNFe element", "<other><doc/></other>"},
		{"ide missing", docSemIde},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nf, err := newTestExtractor().Extract([]byte(tt.content))
			assert.Nil(t, nf)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrExtracao))
		})
	}
}

func TestExtractPreservaXMLOriginal(t *testing.T) {
	nf, err := newTestExtractor().Extract([]byte(docSimplesNacional))
	require.NoError(t, err)
	assert.Equal(t, docSimplesNacional, nf.XMLOriginal)
}
