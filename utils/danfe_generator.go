package utils

import (
	"bytes"
	"context"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/shopspring/decimal"

	"watchman/models"
	"watchman/repository"
)

// GenerateDANFEPDF renders the simplified DANFE for a persisted NF-e and
// returns the PDF bytes. A nil, nil return means the document was not found.
func GenerateDANFEPDF(repo repository.NFeRepository, nfeID int64) ([]byte, error) {
	nf, err := repo.BuscarPorID(context.Background(), nfeID)
	if err != nil {
		return nil, err
	}
	if nf == nil {
		return nil, nil
	}

	formattedDate := "-"
	if nf.DataEmissao != nil {
		formattedDate = nf.DataEmissao.Format("02/01/2006")
	}

	total := decimal.Zero
	if nf.Totais != nil && nf.Totais.ValorTotalNFe.Valid {
		total = nf.Totais.ValorTotalNFe.Decimal
	}

	tmpl, err := template.ParseFiles("templates/danfe_template.html")
	if err != nil {
		return nil, err
	}

	data := models.DANFEData{
		NFe:          nf,
		DataEmissao:  formattedDate,
		TotalExtenso: ValorPorExtenso(total),
		ItemCount:    len(nf.Itens),
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return nil, err
	}

	finalHTML := `
		<!DOCTYPE html>
		<html>
		<head>
		<meta charset="UTF-8">
		<style>
		@page {
			size: A4;
			margin: 20px;
		}
		body {
			font-family: Arial, Helvetica, sans-serif;
			font-size: 11px;
			margin: 0;
			padding: 0;
		}
		.danfe {
			page-break-inside: avoid;
			border: none;
		}
		</style>
		</head>
		<body><div class='danfe'>` + body.String() + `</div></body></html>`

	tmpDir := os.TempDir()
	tmpHTML := filepath.Join(tmpDir, "danfe_"+time.Now().Format("20060102150405")+".html")
	if err := os.WriteFile(tmpHTML, []byte(finalHTML), 0644); err != nil {
		return nil, err
	}
	defer os.Remove(tmpHTML)

	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuf []byte
	fileURL := "file://" + tmpHTML

	err = chromedp.Run(ctx,
		chromedp.Navigate(fileURL),
		chromedp.Sleep(1*time.Second),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.7).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, err
	}

	return pdfBuf, nil
}
