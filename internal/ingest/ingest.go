// Package ingest parses the job-posting CSV and splits it into the two
// passes spec §6 distinguishes: a wide lexicon-building pass over all
// five text columns, and a narrower title+description pass that feeds
// the forward index. The wider pass is the distillation-dropped
// behavior SPEC_FULL.md §4 supplements from the original
// LexiconGenerator.clean_text: strip "@"/"#" and punctuation, collapse
// whitespace, across title, description, company_name, location, and
// skills_desc before tokenizing.
package ingest

import (
	"encoding/csv"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/oss-search/barrelsearch/internal/forwardindex"
)

// Row is one parsed CSV record. Missing columns are tolerated as empty
// strings (spec §6).
type Row struct {
	Title       string
	Description string
	CompanyName string
	Location    string
	SkillsDesc  string
	JobPostingURL string
}

var punctuation = regexp.MustCompile(`[@#!?.,;:()\[\]{}"'/\\|~` + "`" + `^*_+=<>]`)
var whitespace = regexp.MustCompile(`\s+`)

// cleanText strips "@"/"#" and punctuation and collapses whitespace,
// matching LexiconGenerator.clean_text's wider cleaning pass.
func cleanText(s string) string {
	s = punctuation.ReplaceAllString(s, " ")
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}

// LexiconText returns the wide, cleaned text spec §6's lexicon-building
// phase consumes: all five text columns.
func (r Row) LexiconText() string {
	return cleanText(strings.Join([]string{
		r.Title, r.Description, r.CompanyName, r.Location, r.SkillsDesc,
	}, " "))
}

// ForwardIndexDocument returns the narrower title+description pair the
// forward index is built from (spec §4.3, §6).
func (r Row) ForwardIndexDocument() forwardindex.Document {
	return forwardindex.Document{Title: r.Title, Description: r.Description}
}

// columnIndex maps a CSV header name to its column position, or -1 if absent.
type columnIndex map[string]int

func buildColumnIndex(header []string) columnIndex {
	idx := make(columnIndex, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	return idx
}

func (idx columnIndex) field(rec []string, name string) string {
	i, ok := idx[name]
	if !ok || i >= len(rec) {
		return ""
	}
	return rec[i]
}

// ParseCSV reads the job-posting CSV at path. A missing or malformed
// input CSV is fatal (spec §4.3/§7: "Missing input CSV -> fatal").
func ParseCSV(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, err
	}
	idx := buildColumnIndex(header)

	var rows []Row
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, Row{
			Title:         idx.field(rec, "title"),
			Description:   idx.field(rec, "description"),
			CompanyName:   idx.field(rec, "company_name"),
			Location:      idx.field(rec, "location"),
			SkillsDesc:    idx.field(rec, "skills_desc"),
			JobPostingURL: idx.field(rec, "job_posting_url"),
		})
	}
	return rows, nil
}
