// ABOUTME: Catalog metadata table aligned row-for-row with the vector index
// ABOUTME: CSV persistence with a fixed column set and ingestion cleaning rules
package catalog

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/harper/assessment-recommender/internal/models"
	"github.com/harper/assessment-recommender/internal/util"
)

// Columns is the fixed CSV schema. Row order must match the index blob's
// vector order exactly; the two files are only valid as a pair.
var Columns = []string{"name", "url", "description", "duration", "remote", "adaptive", "test_type"}

// Defaults for blank free-text fields after ingestion.
const (
	DefaultDuration = "Not specified"
	DefaultTestType = "Unknown"
)

// Table is an ordered collection of assessments.
type Table []models.Assessment

// Clean applies the ingestion rules: rows missing a name or url are dropped,
// duplicate urls keep the first occurrence, tri-state fields are normalized,
// and blank free-text fields get their documented defaults.
func Clean(records []models.Assessment, log *zap.Logger) Table {
	if log == nil {
		log = zap.NewNop()
	}
	seen := make(map[string]bool, len(records))
	out := make(Table, 0, len(records))
	for i, r := range records {
		r.Name = strings.TrimSpace(r.Name)
		r.URL = strings.TrimSpace(r.URL)
		if r.Name == "" || r.URL == "" {
			log.Warn("dropping catalog row with empty name or url", zap.Int("row", i))
			continue
		}
		if seen[r.URL] {
			log.Warn("dropping catalog row with duplicate url",
				zap.Int("row", i), zap.String("url", r.URL))
			continue
		}
		seen[r.URL] = true

		r.Remote = models.NormalizeTriState(r.Remote)
		r.Adaptive = models.NormalizeTriState(r.Adaptive)
		if strings.TrimSpace(r.Duration) == "" {
			r.Duration = DefaultDuration
		}
		if strings.TrimSpace(r.TestType) == "" {
			r.TestType = DefaultTestType
		}
		out = append(out, r)
	}
	return out
}

// WriteFile saves the table as CSV atomically (temp file + rename).
func (t Table) WriteFile(path string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(Columns); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, a := range t {
		row := []string{a.Name, a.URL, a.Description, a.Duration, a.Remote, a.Adaptive, a.TestType}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing csv row for %s: %w", a.URL, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}
	return util.AtomicWriteFile(path, buf.Bytes())
}

// ReadFile loads a table written by WriteFile, validating the header.
func ReadFile(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}
	if err := validateHeader(header); err != nil {
		return nil, err
	}

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv rows: %w", err)
	}

	t := make(Table, 0, len(rows))
	for _, rec := range rows {
		t = append(t, models.Assessment{
			Name:        rec[0],
			URL:         rec[1],
			Description: rec[2],
			Duration:    rec[3],
			Remote:      rec[4],
			Adaptive:    rec[5],
			TestType:    rec[6],
		})
	}
	return t, nil
}

func validateHeader(header []string) error {
	if len(header) != len(Columns) {
		return fmt.Errorf("catalog header has %d columns, want %d", len(header), len(Columns))
	}
	for i, col := range Columns {
		if strings.TrimSpace(header[i]) != col {
			return fmt.Errorf("catalog column %d is %q, want %q", i, header[i], col)
		}
	}
	return nil
}
