// Package metadata reads the job-posting CSV's display columns (title,
// job_posting_url) for the ranker's join stage (spec §4.7 Stage C,
// §6 "Metadata CSV"). The pack carries no third-party CSV library
// (checked every go.mod under _examples/), so this uses encoding/csv.
package metadata

import (
	"encoding/csv"
	"io"
	"log/slog"
	"os"

	"github.com/oss-search/barrelsearch/internal/forwardindex"
)

// Row is one document's display metadata.
type Row struct {
	Title string
	URL   string
}

// naValue is substituted for out-of-range doc ids, per spec §4.7 Stage
// C: "substitute N/A when out of range."
const naValue = "N/A"

// Table is the row-index-addressed metadata table. Row index equals
// DocumentID, per spec §6 ("queried by row index (= docID)").
type Table struct {
	rows []Row
}

// Load reads the metadata CSV, tolerating missing title/description/
// company_name/location/skills_desc/job_posting_url columns by treating
// them as empty (spec §6). Only title and job_posting_url are kept.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		slog.Warn("metadata csv missing, starting empty", slog.String("path", path))
		return &Table{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // tolerate ragged rows rather than failing the batch

	header, err := r.Read()
	if err == io.EOF {
		return &Table{}, nil
	}
	if err != nil {
		return nil, err
	}

	titleCol, urlCol := -1, -1
	for i, col := range header {
		switch col {
		case "title":
			titleCol = i
		case "job_posting_url":
			urlCol = i
		}
	}

	var t Table
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		t.rows = append(t.rows, Row{
			Title: field(rec, titleCol),
			URL:   field(rec, urlCol),
		})
	}
	return &t, nil
}

func field(rec []string, col int) string {
	if col < 0 || col >= len(rec) {
		return ""
	}
	return rec[col]
}

// Lookup returns the title and url for docID, or "N/A" for both when
// docID is out of range (spec §4.7 Stage C).
func (t *Table) Lookup(docID forwardindex.DocumentID) (title, url string) {
	i := int(docID)
	if i < 0 || i >= len(t.rows) {
		return naValue, naValue
	}
	row := t.rows[i]
	return row.Title, row.URL
}
