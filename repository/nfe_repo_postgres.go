package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"watchman/models"
)

type PostgresNFeRepo struct {
	DB  *sql.DB
	Log *zap.Logger
}

func NewPostgresNFeRepo(db *sql.DB, log *zap.Logger) *PostgresNFeRepo {
	return &PostgresNFeRepo{DB: db, Log: log}
}

// ------------------------ Salvar ------------------------

// Salvar writes the full document across all tables inside one transaction.
// Ordering matters: parties first (their ids feed links and transport),
// then the header upsert that decides between "new" and "duplicate", then
// every child structure keyed to the new surrogate id.
func (r *PostgresNFeRepo) Salvar(ctx context.Context, nf *models.NotaFiscal) (int64, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	emitenteID, err := r.upsertPessoa(ctx, tx, nf.Emitente)
	if err != nil {
		return 0, fmt.Errorf("emitente: %w", err)
	}
	destinatarioID, err := r.upsertPessoa(ctx, tx, nf.Destinatario)
	if err != nil {
		return 0, fmt.Errorf("destinatario: %w", err)
	}

	// The carrier is optional twice over: the node may be absent, and a
	// carrier without a tax id simply is not linked.
	var transportadoraID *int64
	if nf.Transportadora != nil {
		id, err := r.upsertPessoa(ctx, tx, nf.Transportadora)
		switch {
		case errors.Is(err, ErrPessoaSemDocumento):
			r.Log.Warn("transportadora without CNPJ/CPF, skipping party link",
				zap.String("chave_acesso", nf.ChaveAcesso))
		case err != nil:
			return 0, fmt.Errorf("transportadora: %w", err)
		default:
			transportadoraID = &id
		}
	}

	nfeID, err := r.insertNFe(ctx, tx, nf)
	if err != nil {
		return 0, err
	}

	r.insertEndereco(ctx, tx, nf.EmitenteEndereco, emitenteID)
	r.insertEndereco(ctx, tx, nf.DestinatarioEndereco, destinatarioID)
	if transportadoraID != nil {
		r.insertEndereco(ctx, tx, nf.TransportadoraEndereco, *transportadoraID)
	}

	if err := r.insertVinculos(ctx, tx, nfeID, emitenteID, destinatarioID, transportadoraID); err != nil {
		return 0, err
	}
	if err := r.insertItens(ctx, tx, nfeID, nf.Itens); err != nil {
		return 0, err
	}
	if err := r.insertTotais(ctx, tx, nfeID, nf.Totais); err != nil {
		return 0, err
	}
	if err := r.insertTransporte(ctx, tx, nfeID, transportadoraID, nf.Transporte); err != nil {
		return 0, err
	}
	if err := r.insertInformacoesAdicionais(ctx, tx, nfeID, nf.InformacoesAdicionais); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	nf.ID = nfeID
	return nfeID, nil
}

// upsertPessoa resolves a party to its surrogate id, deduplicated by tax id.
// The insert is constraint backed: under concurrency two workers inserting
// the same CNPJ converge on the same row instead of racing a select.
func (r *PostgresNFeRepo) upsertPessoa(ctx context.Context, tx *sql.Tx, p *models.Pessoa) (int64, error) {
	if p == nil || !p.TemDocumento() {
		return 0, ErrPessoaSemDocumento
	}

	col := "cnpj"
	if p.CNPJ == nil || *p.CNPJ == "" {
		col = "cpf"
	}
	// The no-op DO UPDATE makes RETURNING yield the id on conflict too.
	query := fmt.Sprintf(`
		INSERT INTO nfe.pessoa (tipo_pessoa, cnpj, cpf, nome, nome_fantasia, inscricao_estadual, regime_tributario, email)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (%s) WHERE %s IS NOT NULL DO UPDATE SET %s = EXCLUDED.%s
		RETURNING id
	`, col, col, col, col)

	err := tx.QueryRowContext(ctx, query,
		p.TipoPessoa, p.CNPJ, p.CPF, p.Nome, p.NomeFantasia,
		p.InscricaoEstadual, p.RegimeTributario, p.Email,
	).Scan(&p.ID)
	if err != nil {
		return 0, err
	}
	return p.ID, nil
}

// insertNFe upserts the header row on the unique access key. A conflict
// means the document was processed before: committed data is never
// overwritten and the caller gets ErrDuplicateChaveAcesso.
func (r *PostgresNFeRepo) insertNFe(ctx context.Context, tx *sql.Tx, nf *models.NotaFiscal) (int64, error) {
	var id int64
	err := tx.QueryRowContext(ctx, `
		INSERT INTO nfe.nfe (
			chave_acesso, versao, codigo_uf, codigo_nf, natureza_operacao,
			indicador_pagamento, modelo, serie, numero, data_emissao,
			data_saida_entrada, tipo_nf, codigo_municipio_fato_gerador,
			tipo_impressao, tipo_emissao, digito_verificador, ambiente,
			finalidade_nf, processo_emissao, versao_processo
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)
		ON CONFLICT (chave_acesso) DO NOTHING
		RETURNING id
	`,
		nf.ChaveAcesso, nf.Versao, nf.CodigoUF, nf.CodigoNF, nf.NaturezaOperacao,
		nf.IndicadorPagamento, nf.Modelo, nf.Serie, nf.Numero, nf.DataEmissao,
		nf.DataSaidaEntrada, nf.TipoNF, nf.CodigoMunicipioFatoGerador,
		nf.TipoImpressao, nf.TipoEmissao, nf.DigitoVerificador, nf.Ambiente,
		nf.FinalidadeNF, nf.ProcessoEmissao, nf.VersaoProcesso,
	).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, ErrDuplicateChaveAcesso
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}

// insertEndereco writes one address for a resolved party. An address with
// missing required subfields is dropped with a warning instead of being
// persisted malformed; address problems never abort the invoice.
func (r *PostgresNFeRepo) insertEndereco(ctx context.Context, tx *sql.Tx, end *models.Endereco, pessoaID int64) {
	if end == nil {
		return
	}
	if !end.Completo() {
		r.Log.Warn("incomplete address, skipping",
			zap.Int64("pessoa_id", pessoaID),
			zap.String("municipio", end.Municipio))
		return
	}
	_, err := tx.ExecContext(ctx, `
		INSERT INTO nfe.endereco (
			pessoa_id, tipo_endereco, logradouro, numero, complemento, bairro,
			codigo_municipio, municipio, uf, cep, codigo_pais, pais, telefone
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`, pessoaID, end.TipoEndereco, end.Logradouro, end.Numero, end.Complemento,
		end.Bairro, end.CodigoMunicipio, end.Municipio, end.UF, end.CEP,
		end.CodigoPais, end.Pais, end.Telefone)
	if err != nil {
		r.Log.Warn("address insert failed, skipping",
			zap.Int64("pessoa_id", pessoaID), zap.Error(err))
	}
}

func (r *PostgresNFeRepo) insertVinculos(ctx context.Context, tx *sql.Tx, nfeID, emitenteID, destinatarioID int64, transportadoraID *int64) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO nfe.nfe_pessoa (nfe_id, pessoa_id, tipo_relacao)
		VALUES ($1,$2,'EMITENTE'), ($1,$3,'DESTINATARIO')
	`, nfeID, emitenteID, destinatarioID)
	if err != nil {
		return err
	}
	if transportadoraID != nil {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO nfe.nfe_pessoa (nfe_id, pessoa_id, tipo_relacao)
			VALUES ($1,$2,'TRANSPORTADORA')
		`, nfeID, *transportadoraID)
	}
	return err
}

func (r *PostgresNFeRepo) insertItens(ctx context.Context, tx *sql.Tx, nfeID int64, itens []models.ItemNFe) error {
	for i := range itens {
		item := &itens[i]
		err := tx.QueryRowContext(ctx, `
			INSERT INTO nfe.item_nfe (
				nfe_id, numero_item, codigo_produto, gtin, descricao, ncm, cfop,
				unidade_comercial, quantidade_comercial, valor_unitario_comercial,
				valor_total_bruto, gtin_tributavel, unidade_tributavel,
				quantidade_tributavel, valor_unitario_tributavel, origem_mercadoria
			)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
			RETURNING id
		`, nfeID, item.NumeroItem, item.CodigoProduto, item.GTIN, item.Descricao,
			item.NCM, item.CFOP, item.UnidadeComercial, item.QuantidadeComercial,
			item.ValorUnitarioComercial, item.ValorTotalBruto, item.GTINTributavel,
			item.UnidadeTributavel, item.QuantidadeTributavel,
			item.ValorUnitarioTributavel, item.OrigemMercadoria,
		).Scan(&item.ID)
		if err != nil {
			return fmt.Errorf("item %d: %w", item.NumeroItem, err)
		}
		item.NFeID = nfeID

		if err := r.insertImpostos(ctx, tx, item); err != nil {
			return err
		}
	}
	return nil
}

// insertImpostos writes each tax row under a savepoint: a rejected tax
// entry is rolled back to the savepoint, logged and skipped, so the rest
// of the document still persists.
func (r *PostgresNFeRepo) insertImpostos(ctx context.Context, tx *sql.Tx, item *models.ItemNFe) error {
	for j := range item.Impostos {
		imp := &item.Impostos[j]
		imp.ItemNFeID = item.ID

		sp := fmt.Sprintf("sp_imposto_%d_%d", item.ID, j)
		if _, err := tx.ExecContext(ctx, "SAVEPOINT "+sp); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO nfe.imposto (
				item_nfe_id, tipo_imposto, origem, cst, codigo_enquadramento,
				modalidade_base_calculo, valor_base_calculo, aliquota_percentual,
				valor, percentual_reducao_base_calculo, percentual_mva_st,
				valor_base_calculo_st, aliquota_st, valor_st,
				percentual_credito_sn, valor_credito_sn
			)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
		`, imp.ItemNFeID, imp.TipoImposto, imp.Origem, imp.CST,
			imp.CodigoEnquadramento, imp.ModalidadeBaseCalculo,
			imp.ValorBaseCalculo, imp.AliquotaPercentual, imp.Valor,
			imp.PercentualReducaoBaseCalculo, imp.PercentualMVAST,
			imp.ValorBaseCalculoST, imp.AliquotaST, imp.ValorST,
			imp.PercentualCreditoSN, imp.ValorCreditoSN)
		if err != nil {
			r.Log.Warn("tax entry rejected, skipping",
				zap.Int("numero_item", item.NumeroItem),
				zap.String("tipo_imposto", imp.TipoImposto),
				zap.Error(err))
			if _, rbErr := tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT "+sp); rbErr != nil {
				return rbErr
			}
			continue
		}
		if _, err := tx.ExecContext(ctx, "RELEASE SAVEPOINT "+sp); err != nil {
			return err
		}
	}
	return nil
}

func (r *PostgresNFeRepo) insertTotais(ctx context.Context, tx *sql.Tx, nfeID int64, t *models.TotaisNFe) error {
	if t == nil || t.Vazio() {
		return nil
	}
	_, err := tx.ExecContext(ctx, `
		INSERT INTO nfe.totais_nfe (
			nfe_id, base_calculo_icms, valor_icms, base_calculo_icms_st,
			valor_icms_st, valor_produtos, valor_frete, valor_seguro,
			valor_desconto, valor_ii, valor_ipi, valor_pis, valor_cofins,
			valor_outros, valor_total_nfe
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
	`, nfeID, t.BaseCalculoICMS, t.ValorICMS, t.BaseCalculoICMSST,
		t.ValorICMSST, t.ValorProdutos, t.ValorFrete, t.ValorSeguro,
		t.ValorDesconto, t.ValorII, t.ValorIPI, t.ValorPIS, t.ValorCOFINS,
		t.ValorOutros, t.ValorTotalNFe)
	return err
}

// insertTransporte writes the freight row and its items. Seals reference
// their owning volume, so the volume row goes in first and its new id is
// stamped on each seal (two-phase insert).
func (r *PostgresNFeRepo) insertTransporte(ctx context.Context, tx *sql.Tx, nfeID int64, transportadoraID *int64, t *models.Transporte) error {
	if t == nil {
		return nil
	}
	var transporteID int64
	err := tx.QueryRowContext(ctx, `
		INSERT INTO nfe.transporte (nfe_id, modalidade_frete, transportadora_id)
		VALUES ($1,$2,$3)
		RETURNING id
	`, nfeID, t.ModalidadeFrete, transportadoraID).Scan(&transporteID)
	if err != nil {
		return err
	}

	for i := range t.Volumes {
		vol := &t.Volumes[i]
		volumeID, err := r.insertTransporteItem(ctx, tx, transporteID, nil, vol)
		if err != nil {
			return err
		}
		for j := range vol.Lacres {
			if _, err := r.insertTransporteItem(ctx, tx, transporteID, &volumeID, &vol.Lacres[j]); err != nil {
				return err
			}
		}
	}
	for i := range t.Veiculos {
		if _, err := r.insertTransporteItem(ctx, tx, transporteID, nil, &t.Veiculos[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *PostgresNFeRepo) insertTransporteItem(ctx context.Context, tx *sql.Tx, transporteID int64, paiID *int64, item *models.TransporteItem) (int64, error) {
	err := tx.QueryRowContext(ctx, `
		INSERT INTO nfe.transporte_item (
			transporte_id, item_pai_id, tipo_item, quantidade, especie, marca,
			numeracao, peso_liquido, peso_bruto, placa, uf, rntc, numero_lacre
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		RETURNING id
	`, transporteID, paiID, item.TipoItem, item.Quantidade, item.Especie,
		item.Marca, item.Numeracao, item.PesoLiquido, item.PesoBruto,
		item.Placa, item.UF, item.RNTC, item.NumeroLacre,
	).Scan(&item.ID)
	if err != nil {
		return 0, err
	}
	item.TransporteID = transporteID
	item.ItemPaiID = paiID
	return item.ID, nil
}

func (r *PostgresNFeRepo) insertInformacoesAdicionais(ctx context.Context, tx *sql.Tx, nfeID int64, info *models.InformacoesAdicionais) error {
	if info == nil || info.Vazia() {
		return nil
	}
	_, err := tx.ExecContext(ctx, `
		INSERT INTO nfe.informacoes_adicionais (nfe_id, info_contribuinte, info_fisco)
		VALUES ($1,$2,$3)
	`, nfeID, info.InfoContribuinte, info.InfoFisco)
	return err
}

// ------------------------ Queries ------------------------

func (r *PostgresNFeRepo) BuscarPorID(ctx context.Context, id int64) (*models.NotaFiscal, error) {
	return r.buscar(ctx, "id = $1", id)
}

func (r *PostgresNFeRepo) BuscarPorChaveAcesso(ctx context.Context, chave string) (*models.NotaFiscal, error) {
	return r.buscar(ctx, "chave_acesso = $1", chave)
}

// buscar reassembles the full nested document. It mirrors the persistence
// order: header, parties with addresses, items with taxes, totals,
// transport with volumes/seals/vehicles, additional info.
func (r *PostgresNFeRepo) buscar(ctx context.Context, where string, arg interface{}) (*models.NotaFiscal, error) {
	nf := &models.NotaFiscal{}
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, chave_acesso, versao, codigo_uf, codigo_nf, natureza_operacao,
		       indicador_pagamento, modelo, serie, numero, data_emissao,
		       data_saida_entrada, tipo_nf, codigo_municipio_fato_gerador,
		       tipo_impressao, tipo_emissao, digito_verificador, ambiente,
		       finalidade_nf, processo_emissao, versao_processo
		FROM nfe.nfe
		WHERE `+where,
		arg,
	).Scan(&nf.ID, &nf.ChaveAcesso, &nf.Versao, &nf.CodigoUF, &nf.CodigoNF,
		&nf.NaturezaOperacao, &nf.IndicadorPagamento, &nf.Modelo, &nf.Serie,
		&nf.Numero, &nf.DataEmissao, &nf.DataSaidaEntrada, &nf.TipoNF,
		&nf.CodigoMunicipioFatoGerador, &nf.TipoImpressao, &nf.TipoEmissao,
		&nf.DigitoVerificador, &nf.Ambiente, &nf.FinalidadeNF,
		&nf.ProcessoEmissao, &nf.VersaoProcesso)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := r.carregarPessoas(ctx, nf); err != nil {
		return nil, err
	}
	if err := r.carregarItens(ctx, nf); err != nil {
		return nil, err
	}
	if err := r.carregarTotais(ctx, nf); err != nil {
		return nil, err
	}
	if err := r.carregarTransporte(ctx, nf); err != nil {
		return nil, err
	}
	if err := r.carregarInformacoesAdicionais(ctx, nf); err != nil {
		return nil, err
	}
	return nf, nil
}

func (r *PostgresNFeRepo) carregarPessoas(ctx context.Context, nf *models.NotaFiscal) error {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT pessoa_id, tipo_relacao FROM nfe.nfe_pessoa WHERE nfe_id = $1
	`, nf.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	vinculos := map[string]int64{}
	for rows.Next() {
		var pessoaID int64
		var tipo string
		if err := rows.Scan(&pessoaID, &tipo); err != nil {
			return err
		}
		vinculos[tipo] = pessoaID
	}
	if err := rows.Err(); err != nil {
		return err
	}

	if id, ok := vinculos[models.TipoPessoaEmitente]; ok {
		if nf.Emitente, nf.EmitenteEndereco, err = r.carregarPessoa(ctx, id); err != nil {
			return err
		}
	}
	if id, ok := vinculos[models.TipoPessoaDestinatario]; ok {
		if nf.Destinatario, nf.DestinatarioEndereco, err = r.carregarPessoa(ctx, id); err != nil {
			return err
		}
	}
	if id, ok := vinculos[models.TipoPessoaTransportadora]; ok {
		if nf.Transportadora, nf.TransportadoraEndereco, err = r.carregarPessoa(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (r *PostgresNFeRepo) carregarPessoa(ctx context.Context, id int64) (*models.Pessoa, *models.Endereco, error) {
	p := &models.Pessoa{}
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, tipo_pessoa, cnpj, cpf, nome, nome_fantasia,
		       inscricao_estadual, regime_tributario, email
		FROM nfe.pessoa WHERE id = $1
	`, id).Scan(&p.ID, &p.TipoPessoa, &p.CNPJ, &p.CPF, &p.Nome,
		&p.NomeFantasia, &p.InscricaoEstadual, &p.RegimeTributario, &p.Email)
	if err == sql.ErrNoRows {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}

	end := &models.Endereco{}
	err = r.DB.QueryRowContext(ctx, `
		SELECT id, pessoa_id, tipo_endereco, logradouro, numero, complemento,
		       bairro, codigo_municipio, municipio, uf, cep, codigo_pais,
		       pais, telefone
		FROM nfe.endereco
		WHERE pessoa_id = $1 AND tipo_endereco = 'PRINCIPAL'
		LIMIT 1
	`, id).Scan(&end.ID, &end.PessoaID, &end.TipoEndereco, &end.Logradouro,
		&end.Numero, &end.Complemento, &end.Bairro, &end.CodigoMunicipio,
		&end.Municipio, &end.UF, &end.CEP, &end.CodigoPais, &end.Pais,
		&end.Telefone)
	if err == sql.ErrNoRows {
		return p, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return p, end, nil
}

func (r *PostgresNFeRepo) carregarItens(ctx context.Context, nf *models.NotaFiscal) error {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, nfe_id, numero_item, codigo_produto, gtin, descricao, ncm,
		       cfop, unidade_comercial, quantidade_comercial,
		       valor_unitario_comercial, valor_total_bruto, gtin_tributavel,
		       unidade_tributavel, quantidade_tributavel,
		       valor_unitario_tributavel, origem_mercadoria
		FROM nfe.item_nfe
		WHERE nfe_id = $1
		ORDER BY numero_item
	`, nf.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item models.ItemNFe
		if err := rows.Scan(&item.ID, &item.NFeID, &item.NumeroItem,
			&item.CodigoProduto, &item.GTIN, &item.Descricao, &item.NCM,
			&item.CFOP, &item.UnidadeComercial, &item.QuantidadeComercial,
			&item.ValorUnitarioComercial, &item.ValorTotalBruto,
			&item.GTINTributavel, &item.UnidadeTributavel,
			&item.QuantidadeTributavel, &item.ValorUnitarioTributavel,
			&item.OrigemMercadoria); err != nil {
			return err
		}
		nf.Itens = append(nf.Itens, item)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range nf.Itens {
		if err := r.carregarImpostos(ctx, &nf.Itens[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *PostgresNFeRepo) carregarImpostos(ctx context.Context, item *models.ItemNFe) error {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, item_nfe_id, tipo_imposto, origem, cst, codigo_enquadramento,
		       modalidade_base_calculo, valor_base_calculo, aliquota_percentual,
		       valor, percentual_reducao_base_calculo, percentual_mva_st,
		       valor_base_calculo_st, aliquota_st, valor_st,
		       percentual_credito_sn, valor_credito_sn
		FROM nfe.imposto
		WHERE item_nfe_id = $1
		ORDER BY id
	`, item.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var imp models.Imposto
		if err := rows.Scan(&imp.ID, &imp.ItemNFeID, &imp.TipoImposto,
			&imp.Origem, &imp.CST, &imp.CodigoEnquadramento,
			&imp.ModalidadeBaseCalculo, &imp.ValorBaseCalculo,
			&imp.AliquotaPercentual, &imp.Valor,
			&imp.PercentualReducaoBaseCalculo, &imp.PercentualMVAST,
			&imp.ValorBaseCalculoST, &imp.AliquotaST, &imp.ValorST,
			&imp.PercentualCreditoSN, &imp.ValorCreditoSN); err != nil {
			return err
		}
		item.Impostos = append(item.Impostos, imp)
	}
	return rows.Err()
}

func (r *PostgresNFeRepo) carregarTotais(ctx context.Context, nf *models.NotaFiscal) error {
	t := &models.TotaisNFe{}
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, nfe_id, base_calculo_icms, valor_icms, base_calculo_icms_st,
		       valor_icms_st, valor_produtos, valor_frete, valor_seguro,
		       valor_desconto, valor_ii, valor_ipi, valor_pis, valor_cofins,
		       valor_outros, valor_total_nfe
		FROM nfe.totais_nfe WHERE nfe_id = $1
	`, nf.ID).Scan(&t.ID, &t.NFeID, &t.BaseCalculoICMS, &t.ValorICMS,
		&t.BaseCalculoICMSST, &t.ValorICMSST, &t.ValorProdutos, &t.ValorFrete,
		&t.ValorSeguro, &t.ValorDesconto, &t.ValorII, &t.ValorIPI,
		&t.ValorPIS, &t.ValorCOFINS, &t.ValorOutros, &t.ValorTotalNFe)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return err
	}
	nf.Totais = t
	return nil
}

func (r *PostgresNFeRepo) carregarTransporte(ctx context.Context, nf *models.NotaFiscal) error {
	t := &models.Transporte{}
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, nfe_id, modalidade_frete, transportadora_id
		FROM nfe.transporte WHERE nfe_id = $1
	`, nf.ID).Scan(&t.ID, &t.NFeID, &t.ModalidadeFrete, &t.TransportadoraID)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return err
	}

	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, transporte_id, item_pai_id, tipo_item, quantidade, especie,
		       marca, numeracao, peso_liquido, peso_bruto, placa, uf, rntc,
		       numero_lacre
		FROM nfe.transporte_item
		WHERE transporte_id = $1
		ORDER BY id
	`, t.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	var lacres []models.TransporteItem
	for rows.Next() {
		var item models.TransporteItem
		if err := rows.Scan(&item.ID, &item.TransporteID, &item.ItemPaiID,
			&item.TipoItem, &item.Quantidade, &item.Especie, &item.Marca,
			&item.Numeracao, &item.PesoLiquido, &item.PesoBruto, &item.Placa,
			&item.UF, &item.RNTC, &item.NumeroLacre); err != nil {
			return err
		}
		switch item.TipoItem {
		case models.TipoItemVolume:
			t.Volumes = append(t.Volumes, item)
		case models.TipoItemVeiculo:
			t.Veiculos = append(t.Veiculos, item)
		case models.TipoItemLacre:
			lacres = append(lacres, item)
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	// Reattach seals to their owning volume.
	for _, lacre := range lacres {
		if lacre.ItemPaiID == nil {
			continue
		}
		for i := range t.Volumes {
			if t.Volumes[i].ID == *lacre.ItemPaiID {
				t.Volumes[i].Lacres = append(t.Volumes[i].Lacres, lacre)
				break
			}
		}
	}

	nf.Transporte = t
	return nil
}

func (r *PostgresNFeRepo) carregarInformacoesAdicionais(ctx context.Context, nf *models.NotaFiscal) error {
	info := &models.InformacoesAdicionais{}
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, nfe_id, info_contribuinte, info_fisco
		FROM nfe.informacoes_adicionais WHERE nfe_id = $1
	`, nf.ID).Scan(&info.ID, &info.NFeID, &info.InfoContribuinte, &info.InfoFisco)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return err
	}
	nf.InformacoesAdicionais = info
	return nil
}

func (r *PostgresNFeRepo) ListarResumos(ctx context.Context) ([]*models.NFeResumo, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT n.id, n.chave_acesso, n.numero, n.serie, n.data_emissao,
		       n.natureza_operacao, pe.nome, pd.nome
		FROM nfe.nfe n
		LEFT JOIN nfe.nfe_pessoa npe ON npe.nfe_id = n.id AND npe.tipo_relacao = 'EMITENTE'
		LEFT JOIN nfe.pessoa pe ON pe.id = npe.pessoa_id
		LEFT JOIN nfe.nfe_pessoa npd ON npd.nfe_id = n.id AND npd.tipo_relacao = 'DESTINATARIO'
		LEFT JOIN nfe.pessoa pd ON pd.id = npd.pessoa_id
		ORDER BY n.data_emissao DESC, n.numero DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*models.NFeResumo
	for rows.Next() {
		resumo := &models.NFeResumo{}
		if err := rows.Scan(&resumo.ID, &resumo.ChaveAcesso, &resumo.Numero,
			&resumo.Serie, &resumo.DataEmissao, &resumo.NaturezaOperacao,
			&resumo.EmitenteNome, &resumo.DestinatarioNome); err != nil {
			return nil, err
		}
		result = append(result, resumo)
	}
	return result, rows.Err()
}
