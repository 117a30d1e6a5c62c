// Package barrel implements the two-level sharded, on-disk posting
// store described in spec §4.5: one JSON file per barrel, each holding
// up to ten buckets, each bucket holding the postings for the term ids
// that hash into it.
//
// Addressing is deliberately preserved exactly as spec §9's "barrel
// addressing surprise" design note requires: barrel = term_id/100,
// bucket = term_id%10. Term ids 5 and 15 share bucket 5 of barrel 0,
// and 105 uses bucket key 5 again in barrel 1; this is not a bug to
// fix, it is the on-disk format.
package barrel

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/oss-search/barrelsearch/internal/invertedindex"
	"github.com/oss-search/barrelsearch/internal/lexicon"
)

// Addr is the physical location a term id's postings live at.
type Addr struct {
	Barrel int
	Bucket int
}

// Address computes a term id's (barrel, bucket) per spec §4.5.
func Address(t lexicon.TermID) Addr {
	return Addr{Barrel: int(t) / 100, Bucket: int(t) % 10}
}

// bucket is term_id -> postings within one bucket key.
type bucket map[lexicon.TermID][]invertedindex.Posting

// barrelFile is the on-disk shape of one <barrel>.json file:
// {"<bucket>": {"<term_id>": [Posting, ...]}}.
type barrelFile map[int]bucket

// Store is the on-disk barrel directory. It carries its root path
// explicitly (spec §9 Design Note 1: no ambient global state).
type Store struct {
	Dir string
}

// Open returns a Store rooted at dir, creating the directory if absent.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{Dir: dir}, nil
}

func (s *Store) path(b int) string {
	return filepath.Join(s.Dir, fmt.Sprintf("%d.json", b))
}

func (s *Store) load(b int) (barrelFile, error) {
	data, err := os.ReadFile(s.path(b))
	if os.IsNotExist(err) {
		return make(barrelFile), nil
	}
	if err != nil {
		return nil, err
	}
	bf := make(barrelFile)
	if err := json.Unmarshal(data, &bf); err != nil {
		return nil, err
	}
	return bf, nil
}

func (s *Store) save(b int, bf barrelFile) error {
	data, err := json.Marshal(bf)
	if err != nil {
		return err
	}
	path := s.path(b)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Update merges an inverted-index delta into the barrel store, per
// spec §4.5's update algorithm: one barrel file per affected barrel
// number, each written atomically (temp file + rename) after every
// term in that barrel has been merged in.
//
// On a per-barrel write failure, Update returns immediately; barrels
// already written remain on disk (spec §4.8/§9: recovery is re-running
// the same delta). A re-run leaves positions unchanged, because they are
// unioned per docID, but adds the delta's frequencies a second time.
func (s *Store) Update(delta invertedindex.Index) error {
	byBarrel := make(map[int][]lexicon.TermID)
	for termID := range delta {
		addr := Address(termID)
		byBarrel[addr.Barrel] = append(byBarrel[addr.Barrel], termID)
	}

	barrels := make([]int, 0, len(byBarrel))
	for b := range byBarrel {
		barrels = append(barrels, b)
	}
	sort.Ints(barrels)

	for _, b := range barrels {
		bf, err := s.load(b)
		if err != nil {
			return fmt.Errorf("barrel %d: load: %w", b, err)
		}

		for _, termID := range byBarrel[b] {
			addr := Address(termID)
			bkt := bf[addr.Bucket]
			if bkt == nil {
				bkt = make(bucket)
			}
			bkt[termID] = mergePostings(bkt[termID], delta[termID])
			bf[addr.Bucket] = bkt
		}

		if err := s.save(b, bf); err != nil {
			return fmt.Errorf("barrel %d: save: %w", b, err)
		}
		slog.Info("barrel updated", slog.Int("barrel", b), slog.Int("terms", len(byBarrel[b])))
	}

	return nil
}

// mergePostings applies spec §4.5 step 3: postings sharing a docID have
// frequencies summed and positions unioned (sorted, deduplicated);
// postings for new docIDs are appended.
func mergePostings(existing, incoming []invertedindex.Posting) []invertedindex.Posting {
	byDoc := make(map[uint64]int, len(existing))
	for i, p := range existing {
		byDoc[uint64(p.DocID)] = i
	}

	for _, np := range incoming {
		if i, ok := byDoc[uint64(np.DocID)]; ok {
			existing[i].Frequency += np.Frequency
			existing[i].Positions = unionSortedUnique(existing[i].Positions, np.Positions)
		} else {
			byDoc[uint64(np.DocID)] = len(existing)
			existing = append(existing, np)
		}
	}
	return existing
}

func unionSortedUnique(a, b []uint32) []uint32 {
	seen := make(map[uint32]struct{}, len(a)+len(b))
	out := make([]uint32, 0, len(a)+len(b))
	for _, v := range a {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	for _, v := range b {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Lookup returns the postings for a term id, per spec §4.5's O(1)
// file-open-plus-map-get contract.
func (s *Store) Lookup(termID lexicon.TermID) ([]invertedindex.Posting, bool, error) {
	addr := Address(termID)
	bf, err := s.load(addr.Barrel)
	if err != nil {
		return nil, false, err
	}
	bkt, ok := bf[addr.Bucket]
	if !ok {
		return nil, false, nil
	}
	postings, ok := bkt[termID]
	return postings, ok, nil
}
