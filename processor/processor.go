package processor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"watchman/models"
	"watchman/parser"
	"watchman/repository"
)

// Processor runs the per-document pipeline: read, extract, persist, move,
// record. One document maps to exactly one repository call and one audit row;
// a failing document never aborts the batch.
type Processor struct {
	Extractor  *parser.Extractor
	NFeRepo    repository.NFeRepository
	StatusRepo repository.StatusRepository
	Archive    repository.ArchiveRepository

	SourceDir string
	DestDir   string
	Log       *zap.Logger
}

func New(ext *parser.Extractor, nfeRepo repository.NFeRepository, statusRepo repository.StatusRepository, archive repository.ArchiveRepository, sourceDir, destDir string, log *zap.Logger) *Processor {
	return &Processor{
		Extractor:  ext,
		NFeRepo:    nfeRepo,
		StatusRepo: statusRepo,
		Archive:    archive,
		SourceDir:  sourceDir,
		DestDir:    destDir,
		Log:        log,
	}
}

// ProcessFile handles one XML file end to end. Outcomes:
//   - extraction failure: FALHA_EXTRACAO, file stays for inspection
//   - persisted: SUCESSO, file moves to the processed folder
//   - already persisted: DUPLICADA, file moves (leaving it would loop forever)
//   - db failure: FALHA_DB, file stays for retry
//   - panic: ERRO_CRITICO
func (p *Processor) ProcessFile(ctx context.Context, path string) {
	filename := filepath.Base(path)

	defer func() {
		if rec := recover(); rec != nil {
			p.Log.Error("panic while processing",
				zap.String("file", filename),
				zap.Any("panic", rec))
			p.registrar(ctx, &models.ProcessamentoNFe{
				Status:   models.StatusErroCritico,
				Mensagem: fmt.Sprintf("panic processing %s: %v", filename, rec),
			})
		}
	}()

	content, err := os.ReadFile(path)
	if err != nil {
		p.Log.Error("cannot read file", zap.String("file", filename), zap.Error(err))
		p.registrar(ctx, &models.ProcessamentoNFe{
			Status:   models.StatusErroCritico,
			Mensagem: fmt.Sprintf("read %s: %v", filename, err),
		})
		return
	}

	nf, err := p.Extractor.Extract(content)
	if err != nil {
		p.Log.Warn("extraction failed",
			zap.String("file", filename), zap.Error(err))
		p.registrar(ctx, &models.ProcessamentoNFe{
			Status:      models.StatusFalhaExtracao,
			Mensagem:    fmt.Sprintf("extract %s: %v", filename, err),
			XMLOriginal: string(content),
		})
		return
	}

	nfeID, err := p.NFeRepo.Salvar(ctx, nf)
	switch {
	case errors.Is(err, repository.ErrDuplicateChaveAcesso):
		p.Log.Info("duplicate nfe, skipping",
			zap.String("file", filename),
			zap.String("chave_acesso", nf.ChaveAcesso))
		p.moveProcessed(path)
		p.registrar(ctx, &models.ProcessamentoNFe{
			Status:   models.StatusDuplicada,
			Mensagem: fmt.Sprintf("chave %s already persisted (%s)", nf.ChaveAcesso, filename),
		})
		return

	case err != nil:
		p.Log.Error("persistence failed",
			zap.String("file", filename),
			zap.String("chave_acesso", nf.ChaveAcesso),
			zap.Error(err))
		p.registrar(ctx, &models.ProcessamentoNFe{
			Status:      models.StatusFalhaDB,
			Mensagem:    fmt.Sprintf("persist %s: %v", filename, err),
			XMLOriginal: string(content),
		})
		return
	}

	p.Log.Info("nfe persisted",
		zap.String("file", filename),
		zap.String("chave_acesso", nf.ChaveAcesso),
		zap.Int64("nfe_id", nfeID))

	p.moveProcessed(path)
	p.registrar(ctx, &models.ProcessamentoNFe{
		NFeID:    &nfeID,
		Status:   models.StatusSucesso,
		Mensagem: fmt.Sprintf("processed %s", filename),
	})
	p.arquivar(ctx, nf, filename, string(content))
}

// registrar writes the audit row outside the document transaction. Failures
// are logged, never propagated.
func (p *Processor) registrar(ctx context.Context, row *models.ProcessamentoNFe) {
	if err := p.StatusRepo.Registrar(ctx, row); err != nil {
		p.Log.Error("cannot record processing status",
			zap.String("status", row.Status), zap.Error(err))
	}
}

// arquivar keeps the raw XML in the archive store when one is configured.
func (p *Processor) arquivar(ctx context.Context, nf *models.NotaFiscal, filename, content string) {
	if p.Archive == nil {
		return
	}
	err := p.Archive.Arquivar(ctx, &repository.ArquivoXML{
		ChaveAcesso: nf.ChaveAcesso,
		NFeID:       nf.ID,
		NomeArquivo: filename,
		Conteudo:    content,
	})
	if err != nil {
		p.Log.Warn("cannot archive raw xml",
			zap.String("chave_acesso", nf.ChaveAcesso), zap.Error(err))
	}
}

func (p *Processor) moveProcessed(path string) {
	if err := os.MkdirAll(p.DestDir, os.ModePerm); err != nil {
		p.Log.Error("cannot create processed folder", zap.Error(err))
		return
	}
	dest := filepath.Join(p.DestDir, filepath.Base(path))
	if err := os.Rename(path, dest); err != nil {
		p.Log.Error("cannot move processed file",
			zap.String("file", filepath.Base(path)), zap.Error(err))
	}
}
