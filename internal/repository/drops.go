package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/joseph-ayodele/report-filer/constants"
	"github.com/joseph-ayodele/report-filer/internal/common"
)

const dropsTable = "drops"

// DropRecord is one processed drop in the registry.
type DropRecord struct {
	ID                uuid.UUID
	ManifestID        int64 // 0 when the drop never reached the manifest
	Status            constants.DropStatus
	DocumentHash      string // hex SHA-256
	AudioHash         string
	SourceDocument    string
	SourceAudio       string
	FiledDocument     string
	FiledAudio        string
	Folder            string
	PatientName       string
	ExamType          string
	Doctor            string
	Transcriber       string
	TranscriptionDate string
	Reason            string
	CreatedAt         time.Time
}

var dropColumns = []string{
	"id", "manifest_id", "status", "document_hash", "audio_hash",
	"source_document", "source_audio", "filed_document", "filed_audio", "folder",
	"patient_name", "exam_type", "doctor", "transcriber", "transcription_date",
	"reason", "created_at",
}

type DropRepository interface {
	EnsureSchema(ctx context.Context) error
	Create(ctx context.Context, rec *DropRecord) error
	GetFiledByDocumentHash(ctx context.Context, hash string) (*DropRecord, error)
	List(ctx context.Context, limit int) ([]DropRecord, error)
	CountByStatus(ctx context.Context) (map[constants.DropStatus]int, error)
}

type dropRepo struct {
	drv     *entsql.Driver
	dialect string
	logger  *slog.Logger
}

func NewDropRepository(db *DB, logger *slog.Logger) DropRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &dropRepo{drv: db.Driver, dialect: db.Dialect, logger: logger}
}

// EnsureSchema creates the drops table and its indexes when missing.
func (r *dropRepo) EnsureSchema(ctx context.Context) error {
	tsType := "DATETIME"
	if r.dialect == dialect.Postgres {
		tsType = "TIMESTAMPTZ"
	}

	cols := []string{
		"id TEXT NOT NULL PRIMARY KEY",
		"manifest_id BIGINT NOT NULL DEFAULT 0",
		"status TEXT NOT NULL",
	}
	for _, name := range dropColumns[3 : len(dropColumns)-1] {
		cols = append(cols, name+" TEXT NOT NULL DEFAULT ''")
	}
	cols = append(cols, "created_at "+tsType+" NOT NULL")

	stmts := []string{
		fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", dropsTable, strings.Join(cols, ", ")),
		fmt.Sprintf("CREATE INDEX IF NOT EXISTS drops_document_hash ON %s (document_hash)", dropsTable),
		fmt.Sprintf("CREATE INDEX IF NOT EXISTS drops_created_at ON %s (created_at)", dropsTable),
	}
	for _, query := range stmts {
		if err := r.drv.Exec(ctx, query, []any{}, nil); err != nil {
			r.logger.Error("failed to ensure registry schema", "error", err)
			return fmt.Errorf("%w: ensure schema: %w", common.ErrDatabase, err)
		}
	}
	return nil
}

// Create inserts rec, assigning ID and CreatedAt when unset.
func (r *dropRepo) Create(ctx context.Context, rec *DropRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	query, args := entsql.Dialect(r.dialect).
		Insert(dropsTable).
		Columns(dropColumns...).
		Values(
			rec.ID.String(), rec.ManifestID, string(rec.Status), rec.DocumentHash, rec.AudioHash,
			rec.SourceDocument, rec.SourceAudio, rec.FiledDocument, rec.FiledAudio, rec.Folder,
			rec.PatientName, rec.ExamType, rec.Doctor, rec.Transcriber, rec.TranscriptionDate,
			rec.Reason, rec.CreatedAt,
		).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		r.logger.Error("failed to create drop record", "id", rec.ID, "status", rec.Status, "error", err)
		return fmt.Errorf("%w: insert drop: %w", common.ErrDatabase, err)
	}
	return nil
}

// GetFiledByDocumentHash returns the filed drop whose document has hash,
// or an error wrapping common.ErrNotFound.
func (r *dropRepo) GetFiledByDocumentHash(ctx context.Context, hash string) (*DropRecord, error) {
	b := entsql.Dialect(r.dialect)
	sel := b.Select(dropColumns...).
		From(b.Table(dropsTable)).
		Where(entsql.And(
			entsql.EQ("document_hash", hash),
			entsql.EQ("status", string(constants.DropStatusFiled)),
		)).
		OrderBy(entsql.Asc("created_at")).
		Limit(1)

	recs, err := r.query(ctx, sel)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("drop with document hash %s: %w", hash, common.ErrNotFound)
	}
	return &recs[0], nil
}

// List returns the newest drops first. limit <= 0 means no limit.
func (r *dropRepo) List(ctx context.Context, limit int) ([]DropRecord, error) {
	b := entsql.Dialect(r.dialect)
	sel := b.Select(dropColumns...).
		From(b.Table(dropsTable)).
		OrderBy(entsql.Desc("created_at"))
	if limit > 0 {
		sel.Limit(limit)
	}
	return r.query(ctx, sel)
}

func (r *dropRepo) CountByStatus(ctx context.Context) (map[constants.DropStatus]int, error) {
	b := entsql.Dialect(r.dialect)
	sel := b.Select("status", entsql.Count("*")).
		From(b.Table(dropsTable)).
		GroupBy("status")
	query, args := sel.Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		r.logger.Error("failed to count drops", "error", err)
		return nil, fmt.Errorf("%w: count drops: %w", common.ErrDatabase, err)
	}
	defer rows.Close()

	out := map[constants.DropStatus]int{}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("%w: scan count: %w", common.ErrDatabase, err)
		}
		out[constants.DropStatus(status)] = n
	}
	return out, rows.Err()
}

func (r *dropRepo) query(ctx context.Context, sel *entsql.Selector) ([]DropRecord, error) {
	query, args := sel.Query()
	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		r.logger.Error("failed to query drops", "error", err)
		return nil, fmt.Errorf("%w: query drops: %w", common.ErrDatabase, err)
	}
	defer rows.Close()

	var out []DropRecord
	for rows.Next() {
		var (
			rec    DropRecord
			id     string
			status string
		)
		if err := rows.Scan(
			&id, &rec.ManifestID, &status, &rec.DocumentHash, &rec.AudioHash,
			&rec.SourceDocument, &rec.SourceAudio, &rec.FiledDocument, &rec.FiledAudio, &rec.Folder,
			&rec.PatientName, &rec.ExamType, &rec.Doctor, &rec.Transcriber, &rec.TranscriptionDate,
			&rec.Reason, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: scan drop: %w", common.ErrDatabase, err)
		}
		parsed, err := uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("%w: bad drop id %q: %w", common.ErrDatabase, id, err)
		}
		rec.ID = parsed
		rec.Status = constants.DropStatus(status)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate drops: %w", common.ErrDatabase, err)
	}
	return out, nil
}

// IsNotFound reports whether err means the row does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, common.ErrNotFound)
}
