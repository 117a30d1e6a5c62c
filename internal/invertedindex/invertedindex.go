// Package invertedindex inverts a forward index delta into per-term
// posting lists, per spec §4.4. It is a pure transform plus a
// replace-the-file persistence step; the barrel store, not this file,
// is the authoritative long-lived structure (spec §4.4: "the historical
// combined inverted index is not retained").
package invertedindex

import (
	"encoding/json"
	"log/slog"
	"os"
	"sort"

	"github.com/oss-search/barrelsearch/internal/forwardindex"
	"github.com/oss-search/barrelsearch/internal/lexicon"
)

// Posting is one document's occurrence record for a term (spec §3).
type Posting struct {
	DocID     forwardindex.DocumentID `json:"docID"`
	Frequency uint32                  `json:"frequency"`
	Positions []uint32                `json:"positions"`
}

// Index is term_id -> postings, the inverted-index shape of spec §4.4/§6.
type Index map[lexicon.TermID][]Posting

// Build inverts a forward index (typically the delta, per §4.3 step 4)
// into per-term posting lists, sorted descending by frequency. The sort
// is a hint for top-k consumers, not an invariant the barrel store
// preserves across merges (spec §9 "Ordering of inverted postings").
func Build(fwd *forwardindex.Index) Index {
	inv := make(Index)

	// Iterate doc ids in ascending order so ties in frequency keep a
	// stable, reproducible insertion order.
	docIDs := make([]forwardindex.DocumentID, 0, len(fwd.Docs))
	for id := range fwd.Docs {
		docIDs = append(docIDs, id)
	}
	sort.Slice(docIDs, func(i, j int) bool { return docIDs[i] < docIDs[j] })

	for _, docID := range docIDs {
		rec := fwd.Docs[docID]
		for termID, occ := range rec {
			inv[termID] = append(inv[termID], Posting{
				DocID:     docID,
				Frequency: occ.Frequency,
				Positions: occ.Positions,
			})
		}
	}

	for termID, postings := range inv {
		sort.SliceStable(postings, func(i, j int) bool {
			return postings[i].Frequency > postings[j].Frequency
		})
		inv[termID] = postings
	}

	slog.Info("inverted index built", slog.Int("terms", len(inv)), slog.Int("docs", len(docIDs)))
	return inv
}

// Save replaces the inverted index file at path with idx, atomically
// (temp file + rename). Spec §4.4: "This replaces the file."
func Save(path string, idx Index) error {
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

// Load reads an inverted index file. A missing file yields an empty
// index rather than an error, matching the "output-like artifact"
// recovery policy spec §7 applies to the rest of the pipeline's
// produced files.
func Load(path string) (Index, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return make(Index), nil
	}
	if err != nil {
		return nil, err
	}
	idx := make(Index)
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, err
	}
	return idx, nil
}
