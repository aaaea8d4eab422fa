// Package manifest maintains the CSV index of filed drops.
package manifest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/joseph-ayodele/report-filer/internal/extract"
)

// Header is the first row of every manifest.
var Header = []string{
	"ID",
	"patient_name",
	"creation_date",
	"transcription_date",
	"transcriber",
	"exam_type",
	"doctor",
	"folder_address",
}

// Row is one filed drop.
type Row struct {
	ID     int
	Record extract.Record
	Folder string
}

func (r Row) fields() []string {
	return []string{
		strconv.Itoa(r.ID),
		r.Record.PatientName,
		r.Record.CreationDate,
		r.Record.TranscriptionDate,
		r.Record.Transcriber,
		r.Record.ExamType,
		r.Record.Doctor,
		r.Folder,
	}
}

// Manifest is safe for use by one process; calls are serialised.
type Manifest struct {
	path string
	mu   sync.Mutex
}

func New(path string) *Manifest {
	return &Manifest{path: path}
}

func (m *Manifest) Path() string { return m.path }

// Ensure creates the manifest with its header when missing or empty.
func (m *Manifest) Ensure() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ensure()
}

func (m *Manifest) ensure() error {
	info, err := os.Stat(m.path)
	switch {
	case err == nil && info.Size() > 0:
		return nil
	case err != nil && !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("stat manifest: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return fmt.Errorf("create manifest dir: %w", err)
	}
	f, err := os.Create(m.path)
	if err != nil {
		return fmt.Errorf("create manifest: %w", err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		_ = f.Close()
		return fmt.Errorf("write header: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return fmt.Errorf("write header: %w", err)
	}
	return f.Close()
}

// NextID returns one more than the largest ID in the manifest, or 1 when
// there are no rows. Rows whose ID does not parse are skipped.
func (m *Manifest) NextID() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.nextID()
}

func (m *Manifest) nextID() (int, error) {
	maxID := 0
	err := m.scan(func(rec []string) {
		if id, err := strconv.Atoi(strings.TrimSpace(rec[0])); err == nil && id > maxID {
			maxID = id
		}
	})
	if err != nil {
		return 0, err
	}
	return maxID + 1, nil
}

// Append writes row, creating the manifest first when needed.
func (m *Manifest) Append(row Row) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ensure(); err != nil {
		return err
	}
	f, err := os.OpenFile(m.path, os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open manifest: %w", err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(row.fields()); err != nil {
		_ = f.Close()
		return fmt.Errorf("append row %d: %w", row.ID, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return fmt.Errorf("append row %d: %w", row.ID, err)
	}
	return f.Close()
}

// Rows returns every row in file order. Rows with an unparsable ID keep
// ID 0; short rows are padded.
func (m *Manifest) Rows() ([]Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []Row
	err := m.scan(func(rec []string) {
		for len(rec) < len(Header) {
			rec = append(rec, "")
		}
		id, _ := strconv.Atoi(strings.TrimSpace(rec[0]))
		out = append(out, Row{
			ID: id,
			Record: extract.Record{
				PatientName:       rec[1],
				CreationDate:      rec[2],
				TranscriptionDate: rec[3],
				Transcriber:       rec[4],
				ExamType:          rec[5],
				Doctor:            rec[6],
			},
			Folder: rec[7],
		})
	})
	return out, err
}

// scan calls fn for every non-empty data row. A missing file has no rows.
func (m *Manifest) scan(fn func([]string)) error {
	f, err := os.Open(m.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("open manifest: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	if _, err := r.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("read header: %w", err)
	}
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read manifest: %w", err)
		}
		if len(rec) == 0 || (len(rec) == 1 && rec[0] == "") {
			continue
		}
		fn(rec)
	}
}
