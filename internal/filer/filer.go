// Package filer moves dictation drops from the inbox into the filing tree,
// indexing each one in the manifest and the registry.
package filer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/report-filer/constants"
	"github.com/joseph-ayodele/report-filer/internal/common"
	"github.com/joseph-ayodele/report-filer/internal/extract"
	"github.com/joseph-ayodele/report-filer/internal/ingest"
	"github.com/joseph-ayodele/report-filer/internal/manifest"
	"github.com/joseph-ayodele/report-filer/internal/notify"
	"github.com/joseph-ayodele/report-filer/internal/repository"
)

const notifyTitle = "File Processing Error"

// RecordExtractor is satisfied by *extract.Extractor.
type RecordExtractor interface {
	Extract(ctx context.Context, path string) (extract.Record, error)
}

type Config struct {
	Inbox       string
	FileTree    string
	ErrorFolder string
	// Settle is how long a lone file waits for its partner; 0 rejects at once.
	Settle time.Duration
}

// Deps are the collaborators of a Filer. Registry may be nil.
type Deps struct {
	Extractor RecordExtractor
	Manifest  *manifest.Manifest
	Registry  repository.DropRepository
	Notifier  notify.Notifier
}

// Outcome reports what happened to one drop.
type Outcome struct {
	DropID     uuid.UUID
	Status     constants.DropStatus
	ManifestID int
	Record     extract.Record
	Folder     string
	Files      []string // final locations
	Reason     string
}

type Filer struct {
	cfg    Config
	deps   Deps
	logger *slog.Logger
	now    func() time.Time
}

func New(cfg Config, deps Deps, logger *slog.Logger) *Filer {
	if logger == nil {
		logger = slog.Default()
	}
	if deps.Notifier == nil {
		deps.Notifier = notify.LogNotifier{Logger: logger}
	}
	return &Filer{cfg: cfg, deps: deps, logger: logger, now: time.Now}
}

// Prepare creates the working folders and the manifest header.
func (f *Filer) Prepare(ctx context.Context) error {
	for _, dir := range []string{f.cfg.FileTree, f.cfg.ErrorFolder, f.cfg.Inbox} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := f.deps.Manifest.Ensure(); err != nil {
		return err
	}
	if f.deps.Registry != nil {
		if err := f.deps.Registry.EnsureSchema(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Run inspects the inbox on every signal until ctx is done or signals closes.
func (f *Filer) Run(ctx context.Context, signals <-chan struct{}) error {
	f.logger.Info("filer.run.start", "inbox", f.cfg.Inbox)
	for {
		select {
		case <-ctx.Done():
			f.logger.Info("filer.run.stop")
			return nil
		case _, ok := <-signals:
			if !ok {
				return nil
			}
			if _, err := f.Poll(ctx); err != nil {
				f.logger.Error("filer.poll.failed", "error", err)
			}
		}
	}
}

// Poll inspects the inbox once and acts on what it finds. It returns nil
// when there was nothing to do.
func (f *Filer) Poll(ctx context.Context) (*Outcome, error) {
	in, err := ingest.Inspect(f.cfg.Inbox)
	if err != nil {
		return nil, err
	}

	switch in.State {
	case ingest.StateEmpty:
		return nil, nil
	case ingest.StatePair:
		f.logger.Info("watcher.pair.detected", "document", in.Drop.Document, "audio", in.Drop.Audio)
		out, err := f.Process(ctx, in.Drop)
		return &out, err
	case ingest.StateWaiting:
		age := f.now().Sub(in.Oldest)
		if age < f.cfg.Settle {
			f.logger.Debug("watcher.pair.waiting", "file", in.Files[0], "age", age)
			return nil, nil
		}
		in.Reason = fmt.Sprintf("no partner for %s after %s", filepath.Base(in.Files[0]), f.cfg.Settle)
	}

	reason := errors.New(in.Reason)
	f.logger.Warn("watcher.drop.invalid", "files", in.Files, "reason", in.Reason)
	out := f.reject(ctx, uuid.New(), in.Files, constants.DropStatusRejected, reason, nil)
	return &out, reason
}

// Process files one drop. On failure both files end up in the error folder
// and the returned error carries the cause.
func (f *Filer) Process(ctx context.Context, drop ingest.Drop) (Outcome, error) {
	start := f.now()
	dropID := uuid.New()
	ctx = common.WithDropID(ctx, dropID.String())
	log := f.logger.With("drop_id", dropID.String())

	rec := &repository.DropRecord{
		ID:             dropID,
		SourceDocument: drop.Document,
		SourceAudio:    drop.Audio,
	}
	var err error
	if rec.DocumentHash, err = hashFile(drop.Document); err != nil {
		return f.fail(ctx, drop.Files(), constants.DropStatusRejected, common.WrapError(err, "hash document"), rec)
	}
	if rec.AudioHash, err = hashFile(drop.Audio); err != nil {
		return f.fail(ctx, drop.Files(), constants.DropStatusRejected, common.WrapError(err, "hash audio"), rec)
	}

	if f.deps.Registry != nil {
		prior, err := f.deps.Registry.GetFiledByDocumentHash(ctx, rec.DocumentHash)
		switch {
		case err == nil:
			dup := common.NewAppError("DUPLICATE_DROP",
				fmt.Sprintf("document already filed as manifest ID %d in %s", prior.ManifestID, prior.Folder),
				common.ErrDuplicate)
			return f.fail(ctx, drop.Files(), constants.DropStatusDuplicate, dup, rec)
		case !repository.IsNotFound(err):
			log.Warn("filer.registry.lookup.failed", "error", err)
		}
	}

	record, err := f.deps.Extractor.Extract(ctx, drop.Document)
	if err != nil {
		return f.fail(ctx, drop.Files(), constants.DropStatusRejected, err, rec)
	}
	fillRecord(rec, record)
	if err := ValidateRecord(record); err != nil {
		return f.fail(ctx, drop.Files(), constants.DropStatusRejected, err, rec)
	}

	id, err := f.deps.Manifest.NextID()
	if err != nil {
		return f.fail(ctx, drop.Files(), constants.DropStatusRejected, common.WrapError(err, "next manifest id"), rec)
	}
	folder := TargetFolder(f.cfg.FileTree, record)
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return f.fail(ctx, drop.Files(), constants.DropStatusRejected, common.WrapError(err, "create target folder"), rec)
	}

	docDst := filepath.Join(folder, FileName(record, id, filepath.Ext(drop.Document)))
	audioDst := filepath.Join(folder, FileName(record, id, filepath.Ext(drop.Audio)))
	if err := moveFile(drop.Document, docDst); err != nil {
		return f.fail(ctx, drop.Files(), constants.DropStatusRejected, fmt.Errorf("move document: %w", err), rec)
	}
	if err := moveFile(drop.Audio, audioDst); err != nil {
		if backErr := moveFile(docDst, drop.Document); backErr != nil {
			log.Error("filer.rollback.failed", "path", docDst, "error", backErr)
			return f.fail(ctx, []string{docDst, drop.Audio}, constants.DropStatusRejected, fmt.Errorf("move audio: %w", err), rec)
		}
		return f.fail(ctx, drop.Files(), constants.DropStatusRejected, fmt.Errorf("move audio: %w", err), rec)
	}

	if err := f.deps.Manifest.Append(manifest.Row{ID: id, Record: record, Folder: folder}); err != nil {
		return f.fail(ctx, []string{docDst, audioDst}, constants.DropStatusRejected, fmt.Errorf("append manifest: %w", err), rec)
	}

	rec.ManifestID = int64(id)
	rec.Status = constants.DropStatusFiled
	rec.FiledDocument, rec.FiledAudio, rec.Folder = docDst, audioDst, folder
	f.register(ctx, rec)

	log.Info("filer.process.ok",
		"manifest_id", id,
		"folder", folder,
		"elapsed_ms", f.now().Sub(start).Milliseconds(),
	)
	return Outcome{
		DropID:     dropID,
		Status:     constants.DropStatusFiled,
		ManifestID: id,
		Record:     record,
		Folder:     folder,
		Files:      []string{docDst, audioDst},
	}, nil
}

func (f *Filer) fail(ctx context.Context, files []string, status constants.DropStatus, cause error, rec *repository.DropRecord) (Outcome, error) {
	return f.reject(ctx, rec.ID, files, status, cause, rec), cause
}

// reject moves files to the error folder, notifies and records the drop.
func (f *Filer) reject(ctx context.Context, dropID uuid.UUID, files []string, status constants.DropStatus, cause error, rec *repository.DropRecord) Outcome {
	log := f.logger.With("drop_id", dropID.String())
	log.Warn("filer.process.rejected", "status", status, "files", files, "error", cause)

	var moved []string
	for _, src := range files {
		dst, err := freePath(f.cfg.ErrorFolder, filepath.Base(src))
		if err != nil {
			log.Error("filer.error_folder.name.failed", "path", src, "error", err)
			continue
		}
		if err := moveFile(src, dst); err != nil {
			log.Error("filer.error_folder.move.failed", "path", src, "error", err)
			continue
		}
		moved = append(moved, dst)
	}

	if err := f.deps.Notifier.Notify(ctx, notifyTitle, cause.Error()); err != nil {
		log.Warn("filer.notify.failed", "error", err)
	}

	if rec == nil {
		rec = &repository.DropRecord{ID: dropID}
	}
	rec.Status = status
	rec.Reason = cause.Error()
	rec.Folder = f.cfg.ErrorFolder
	f.register(ctx, rec)

	out := Outcome{
		DropID: dropID,
		Status: status,
		Folder: f.cfg.ErrorFolder,
		Files:  moved,
		Reason: cause.Error(),
		Record: extract.Record{
			PatientName:       rec.PatientName,
			TranscriptionDate: rec.TranscriptionDate,
			Transcriber:       rec.Transcriber,
			ExamType:          rec.ExamType,
			Doctor:            rec.Doctor,
		},
	}
	return out
}

func (f *Filer) register(ctx context.Context, rec *repository.DropRecord) {
	if f.deps.Registry == nil {
		return
	}
	rec.CreatedAt = f.now().UTC()
	if err := f.deps.Registry.Create(ctx, rec); err != nil {
		f.logger.Error("filer.registry.create.failed", "drop_id", rec.ID, "error", err)
	}
}

func fillRecord(rec *repository.DropRecord, r extract.Record) {
	rec.PatientName = r.PatientName
	rec.ExamType = r.ExamType
	rec.Doctor = r.Doctor
	rec.Transcriber = r.Transcriber
	rec.TranscriptionDate = r.TranscriptionDate
}
