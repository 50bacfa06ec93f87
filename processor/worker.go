package processor

import (
	"context"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"watchman/utils"
)

// Run scans the source folder every pollInterval and fans the XML files out
// to workerCount workers. It blocks until ctx is cancelled.
func (p *Processor) Run(ctx context.Context, pollInterval time.Duration, workerCount int) {
	if workerCount < 1 {
		workerCount = 1
	}

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	p.Log.Info("worker started",
		zap.String("source", p.SourceDir),
		zap.Duration("poll_interval", pollInterval),
		zap.Int("workers", workerCount))

	for {
		p.runBatch(ctx, workerCount)
		select {
		case <-ctx.Done():
			p.Log.Info("worker stopped")
			return
		case <-ticker.C:
		}
	}
}

func (p *Processor) runBatch(ctx context.Context, workerCount int) {
	if utils.S3Configured() {
		fetched, err := utils.FetchInboundXML(ctx, p.SourceDir)
		if err != nil {
			p.Log.Error("inbound bucket fetch failed", zap.Error(err))
		} else if fetched > 0 {
			p.Log.Info("fetched inbound files", zap.Int("count", fetched))
		}
	}

	files, err := p.scan()
	if err != nil {
		p.Log.Error("cannot scan source folder", zap.Error(err))
		return
	}
	if len(files) == 0 {
		return
	}
	p.Log.Info("processing batch", zap.Int("files", len(files)))

	jobs := make(chan string)
	var wg sync.WaitGroup
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				p.ProcessFile(ctx, path)
			}
		}()
	}

	for _, path := range files {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return
		case jobs <- path:
		}
	}
	close(jobs)
	wg.Wait()
}

func (p *Processor) scan() ([]string, error) {
	files, err := filepath.Glob(filepath.Join(p.SourceDir, "*.xml"))
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
