package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPessoaTemDocumento(t *testing.T) {
	cnpj := "12345678000199"
	cpf := "12345678901"
	vazio := ""

	tests := []struct {
		name string
		p    Pessoa
		want bool
	}{
		{"cnpj", Pessoa{CNPJ: &cnpj}, true},
		{"cpf", Pessoa{CPF: &cpf}, true},
		{"both", Pessoa{CNPJ: &cnpj, CPF: &cpf}, true},
		{"none", Pessoa{}, false},
		{"empty strings", Pessoa{CNPJ: &vazio, CPF: &vazio}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.p.TemDocumento())
		})
	}
}

func TestEnderecoCompleto(t *testing.T) {
	completo := Endereco{
		Logradouro:      "RUA A",
		Numero:          "1",
		Bairro:          "CENTRO",
		CodigoMunicipio: "3550308",
		Municipio:       "SAO PAULO",
		UF:              "SP",
		CEP:             "01001000",
	}
	assert.True(t, completo.Completo())

	semCEP := completo
	semCEP.CEP = ""
	assert.False(t, semCEP.Completo())

	semNumero := completo
	semNumero.Numero = ""
	assert.False(t, semNumero.Completo())
}

func TestTotaisVazio(t *testing.T) {
	var t1 TotaisNFe
	assert.True(t, t1.Vazio())

	t1.ValorTotalNFe = decimal.NewNullDecimal(decimal.NewFromInt(10))
	assert.False(t, t1.Vazio())

	var t2 TotaisNFe
	t2.ValorFrete = decimal.NewNullDecimal(decimal.Zero)
	assert.False(t, t2.Vazio())
}

func TestInformacoesAdicionaisVazia(t *testing.T) {
	var i1 InformacoesAdicionais
	assert.True(t, i1.Vazia())

	texto := "PEDIDO 1"
	vazio := ""
	i2 := InformacoesAdicionais{InfoContribuinte: &texto}
	assert.False(t, i2.Vazia())

	i3 := InformacoesAdicionais{InfoContribuinte: &vazio, InfoFisco: &vazio}
	assert.True(t, i3.Vazia())
}
