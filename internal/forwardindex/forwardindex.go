// Package forwardindex builds and persists the per-document term
// occurrence map described in spec §4.3: for each ingested row, which
// lexicon terms appear, how often, and at what pre-filter positions.
package forwardindex

import (
	"encoding/json"
	"log/slog"
	"os"

	"github.com/oss-search/barrelsearch/internal/lexicon"
	"github.com/oss-search/barrelsearch/internal/text"
)

// DocumentID is the process-assigned, monotonically increasing row
// identifier from spec §3. It is never reused.
type DocumentID uint64

// Occurrence is one term's occurrence record within a single document.
// Frequency always equals len(Positions) (spec §3 invariant).
type Occurrence struct {
	Frequency uint32   `json:"frequency"`
	Positions []uint32 `json:"positions"`
}

// Record is a single document's forward index entry: term id -> occurrence.
type Record map[lexicon.TermID]Occurrence

// Index is the full forward index, keyed by document id. The same type
// represents both the combined (existing ∪ new) and delta (new-only)
// files spec §4.3 requires.
type Index struct {
	Docs map[DocumentID]Record
}

// New returns an empty forward index.
func New() *Index {
	return &Index{Docs: make(map[DocumentID]Record)}
}

// MarshalJSON serializes the forward index as the bare
// {"<docID>": {"<term_id>": {...}}} object spec §6 specifies — no
// wrapper key.
func (idx *Index) MarshalJSON() ([]byte, error) {
	return json.Marshal(idx.Docs)
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (idx *Index) UnmarshalJSON(data []byte) error {
	docs := make(map[DocumentID]Record)
	if err := json.Unmarshal(data, &docs); err != nil {
		return err
	}
	idx.Docs = docs
	return nil
}

// NextDocID computes the next document id to assign, derived from the
// existing combined index (spec §4.3 step 1): max(existing)+1, or 0 if
// empty.
func (idx *Index) NextDocID() DocumentID {
	var max DocumentID
	var any bool
	for id := range idx.Docs {
		if !any || id > max {
			max = id
			any = true
		}
	}
	if !any {
		return 0
	}
	return max + 1
}

// Document is the pair of text columns the forward index is built from
// (spec §6: "the forward index uses only title + description").
type Document struct {
	Title       string
	Description string
}

// Build runs spec §4.3's algorithm over a batch of documents against the
// current lexicon state, returning the combined and delta indexes. It
// does not persist anything; callers decide when/where to write.
func Build(existing *Index, docs []Document, lex *lexicon.Lexicon) (combined, delta *Index) {
	if existing == nil {
		existing = New()
	}

	combined = &Index{Docs: make(map[DocumentID]Record, len(existing.Docs)+len(docs))}
	for id, rec := range existing.Docs {
		combined.Docs[id] = rec
	}
	delta = New()

	nextID := existing.NextDocID()
	for _, doc := range docs {
		full := doc.Title + " " + doc.Description
		tokens := text.Normalize(full)

		positions := make(map[lexicon.TermID][]uint32)
		for _, tok := range tokens {
			id, ok := lex.Get(tok.Lemma)
			if !ok {
				continue // not in the lexicon snapshot taken at ingest time
			}
			positions[id] = append(positions[id], uint32(tok.Position))
		}

		rec := make(Record, len(positions))
		for termID, pos := range positions {
			rec[termID] = Occurrence{Frequency: uint32(len(pos)), Positions: pos}
		}

		combined.Docs[nextID] = rec
		delta.Docs[nextID] = rec
		nextID++
	}

	slog.Info("forward index built", slog.Int("batch_size", len(docs)), slog.Int("combined_docs", len(combined.Docs)))
	return combined, delta
}

// Load reads a forward index JSON file. A missing file yields an empty
// index (spec §4.3: "Missing prior combined forward index -> treat as
// empty, next_doc_id = 0").
func Load(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return New(), nil
	}
	if err != nil {
		return nil, err
	}
	var idx Index
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, err
	}
	if idx.Docs == nil {
		idx.Docs = make(map[DocumentID]Record)
	}
	return &idx, nil
}

// Save atomically persists the forward index as JSON (temp file + rename).
func (idx *Index) Save(path string) error {
	data, err := json.Marshal(idx)
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
