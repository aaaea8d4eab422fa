package main

import (
	"context"

	"github.com/joseph-ayodele/report-filer/internal/document"
	"github.com/joseph-ayodele/report-filer/internal/extract"
	"github.com/joseph-ayodele/report-filer/internal/filer"
	"github.com/joseph-ayodele/report-filer/internal/manifest"
	"github.com/joseph-ayodele/report-filer/internal/notify"
	repo "github.com/joseph-ayodele/report-filer/internal/repository"
	"github.com/joseph-ayodele/report-filer/internal/rosters"
)

func (e *env) newExtractor() (*extract.Extractor, error) {
	vocab, err := rosters.Load(e.cfg.Rosters.File)
	if err != nil {
		return nil, err
	}
	reader := document.NewReader(document.Config{
		Pdftotext:   e.cfg.Document.Pdftotext,
		Antiword:    e.cfg.Document.Antiword,
		MaxPages:    e.cfg.Document.MaxPages,
		MaxFileSize: e.cfg.Document.MaxFileSize,
	}, e.logger)
	return extract.NewExtractor(reader, vocab, e.logger), nil
}

func (e *env) openRegistry(ctx context.Context) (*repo.DB, error) {
	r := e.cfg.Registry
	return repo.Open(ctx, repo.Config{
		Driver:           r.Driver,
		DSN:              r.DSN,
		MaxConns:         r.MaxConns,
		MinConns:         r.MinConns,
		MaxConnLifetime:  r.MaxConnLifetime,
		MaxConnIdleTime:  r.MaxConnIdleTime,
		DialTimeout:      r.DialTimeout,
		StatementTimeout: r.StatementTimeout,
	}, e.logger)
}

// newFiler wires the filer and prepares its folders. The caller closes db.
func (e *env) newFiler(ctx context.Context) (*filer.Filer, *repo.DB, error) {
	extractor, err := e.newExtractor()
	if err != nil {
		return nil, nil, err
	}
	db, err := e.openRegistry(ctx)
	if err != nil {
		return nil, nil, err
	}

	f := filer.New(filer.Config{
		Inbox:       e.cfg.Paths.Inbox,
		FileTree:    e.cfg.Paths.FileTree,
		ErrorFolder: e.cfg.Paths.ErrorFolder,
		Settle:      e.cfg.Watch.Settle,
	}, filer.Deps{
		Extractor: extractor,
		Manifest:  manifest.New(e.cfg.Paths.Manifest),
		Registry:  repo.NewDropRepository(db, e.logger),
		Notifier:  notify.New(e.cfg.Notify.Command, document.ExecRunner{Logger: e.logger}, e.logger),
	}, e.logger)
	if err := f.Prepare(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}
	return f, db, nil
}
