package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

var unidades = []string{
	"", "Um", "Dois", "Três", "Quatro", "Cinco", "Seis", "Sete", "Oito", "Nove",
	"Dez", "Onze", "Doze", "Treze", "Quatorze", "Quinze",
	"Dezesseis", "Dezessete", "Dezoito", "Dezenove",
}

var dezenas = []string{
	"", "", "Vinte", "Trinta", "Quarenta", "Cinquenta", "Sessenta", "Setenta", "Oitenta", "Noventa",
}

var centenas = []string{
	"", "Cento", "Duzentos", "Trezentos", "Quatrocentos", "Quinhentos",
	"Seiscentos", "Setecentos", "Oitocentos", "Novecentos",
}

func NumeroPorExtenso(num int64) string {
	switch {
	case num == 0:
		return ""
	case num == 100:
		return "Cem"
	case num < 20:
		return unidades[num]
	case num < 100:
		resto := num % 10
		if resto == 0 {
			return dezenas[num/10]
		}
		return dezenas[num/10] + " e " + unidades[resto]
	case num < 1000:
		resto := num % 100
		if resto == 0 {
			return centenas[num/100]
		}
		return centenas[num/100] + " e " + NumeroPorExtenso(resto)
	case num < 1000000:
		milhares := num / 1000
		resto := num % 1000
		prefixo := "Mil"
		if milhares > 1 {
			prefixo = NumeroPorExtenso(milhares) + " Mil"
		}
		if resto == 0 {
			return prefixo
		}
		return prefixo + " e " + NumeroPorExtenso(resto)
	default:
		milhoes := num / 1000000
		resto := num % 1000000
		prefixo := "Um Milhão"
		if milhoes > 1 {
			prefixo = NumeroPorExtenso(milhoes) + " Milhões"
		}
		if resto == 0 {
			return prefixo
		}
		return prefixo + " e " + NumeroPorExtenso(resto)
	}
}

// ValorPorExtenso renders a monetary amount in words for the DANFE footer.
func ValorPorExtenso(valor decimal.Decimal) string {
	reais := valor.IntPart()
	centavos := valor.Sub(decimal.NewFromInt(reais)).Mul(decimal.NewFromInt(100)).Round(0).IntPart()

	var partes []string

	if reais > 0 {
		moeda := "Reais"
		if reais == 1 {
			moeda = "Real"
		}
		partes = append(partes, strings.TrimSpace(NumeroPorExtenso(reais))+" "+moeda)
	}
	if centavos > 0 {
		moeda := "Centavos"
		if centavos == 1 {
			moeda = "Centavo"
		}
		partes = append(partes, strings.TrimSpace(NumeroPorExtenso(centavos))+" "+moeda)
	}

	if len(partes) == 0 {
		return "Zero Reais"
	}

	return strings.Join(partes, " e ")
}
