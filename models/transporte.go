package models

import "github.com/shopspring/decimal"

// Transport item kinds stored in transporte_item.
const (
	TipoItemVolume  = "VOLUME"
	TipoItemVeiculo = "VEICULO"
	TipoItemLacre   = "LACRE"
)

// Transporte is the freight block of the invoice, zero or one per document.
type Transporte struct {
	ID               int64  `json:"id" db:"id"`
	NFeID            int64  `json:"nfe_id" db:"nfe_id"`
	ModalidadeFrete  *int64 `json:"modalidade_frete,omitempty" db:"modalidade_frete"`
	TransportadoraID *int64 `json:"transportadora_id,omitempty" db:"transportadora_id"`

	Volumes  []TransporteItem `json:"volumes,omitempty"`
	Veiculos []TransporteItem `json:"veiculos,omitempty"`
}

// TransporteItem is a tagged variant: a volume, a vehicle or a seal.
// Seals hang off their owning volume through ItemPaiID, which is only
// known after the parent row is inserted.
type TransporteItem struct {
	ID           int64  `json:"id" db:"id"`
	TransporteID int64  `json:"transporte_id" db:"transporte_id"`
	ItemPaiID    *int64 `json:"item_pai_id,omitempty" db:"item_pai_id"`
	TipoItem     string `json:"tipo_item" db:"tipo_item"`

	// VOLUME
	Quantidade  *int64              `json:"quantidade,omitempty" db:"quantidade"`
	Especie     *string             `json:"especie,omitempty" db:"especie"`
	Marca       *string             `json:"marca,omitempty" db:"marca"`
	Numeracao   *string             `json:"numeracao,omitempty" db:"numeracao"`
	PesoLiquido decimal.NullDecimal `json:"peso_liquido,omitempty" db:"peso_liquido"`
	PesoBruto   decimal.NullDecimal `json:"peso_bruto,omitempty" db:"peso_bruto"`

	// VEICULO
	Placa *string `json:"placa,omitempty" db:"placa"`
	UF    *string `json:"uf,omitempty" db:"uf"`
	RNTC  *string `json:"rntc,omitempty" db:"rntc"`

	// LACRE
	NumeroLacre *string `json:"numero_lacre,omitempty" db:"numero_lacre"`

	// Seals of a volume, nested for extraction and query responses.
	Lacres []TransporteItem `json:"lacres,omitempty"`
}
