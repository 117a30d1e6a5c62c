// Package lexicon implements the persistent, monotonically increasing
// word-to-term-id dictionary described in spec §4.2.
//
// Ids are assigned on first sight, never reassigned, and never reused.
// The whole table lives in memory and round-trips to a CSV file with
// header "Word,Index" (spec §6).
package lexicon

import (
	"encoding/csv"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"
)

// TermID is the dense-ish, monotonically assigned identifier spec §3
// calls LexiconEntry.term_id.
type TermID uint32

// Entry is one row of the lexicon.
type Entry struct {
	Word string
	ID   TermID
}

// Lexicon is the in-memory, mutex-guarded word -> term-id table.
type Lexicon struct {
	mu      sync.RWMutex
	byWord  map[string]TermID
	entries []Entry // append-only, ordered by ID
	nextID  TermID
}

// New returns an empty lexicon, used when no on-disk file exists yet
// (spec §7: "Missing lexicon ... create an empty one").
func New() *Lexicon {
	return &Lexicon{byWord: make(map[string]TermID)}
}

// Load reads a lexicon CSV file. A missing file is not an error: it
// yields a fresh empty Lexicon per the "output-like artifact" recovery
// policy in spec §7.
func Load(path string) (*Lexicon, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		slog.Warn("lexicon file missing, starting empty", slog.String("path", path))
		return New(), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	lex := New()
	for i, row := range rows {
		if i == 0 && len(row) > 0 && strings.EqualFold(row[0], "Word") {
			continue // header
		}
		if len(row) < 2 {
			continue
		}
		idx, err := strconv.ParseUint(row[1], 10, 32)
		if err != nil {
			continue
		}
		word := row[0]
		id := TermID(idx)
		lex.byWord[word] = id
		lex.entries = append(lex.entries, Entry{Word: word, ID: id})
		if id+1 > lex.nextID {
			lex.nextID = id + 1
		}
	}

	sort.Slice(lex.entries, func(i, j int) bool { return lex.entries[i].ID < lex.entries[j].ID })

	return lex, nil
}

// Save writes the lexicon back out as "Word,Index", atomically (temp
// file + rename), so a crash mid-write never leaves a half-written
// lexicon on disk.
func (l *Lexicon) Save(path string) error {
	l.mu.RLock()
	defer l.mu.RUnlock()

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Word", "Index"}); err != nil {
		f.Close()
		return err
	}
	for _, e := range l.entries {
		if err := w.Write([]string{e.Word, strconv.FormatUint(uint64(e.ID), 10)}); err != nil {
			f.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// AddOrGet case-folds word, returns its existing id if present,
// otherwise assigns and persists the next monotonic id in memory
// (duplicate inserts are no-ops per spec §4.2's invariant).
func (l *Lexicon) AddOrGet(word string) TermID {
	word = strings.ToLower(word)

	l.mu.Lock()
	defer l.mu.Unlock()

	if id, ok := l.byWord[word]; ok {
		return id
	}

	id := l.nextID
	l.nextID++
	l.byWord[word] = id
	l.entries = append(l.entries, Entry{Word: word, ID: id})
	return id
}

// Get looks up a word's term id without creating a new entry.
func (l *Lexicon) Get(word string) (TermID, bool) {
	word = strings.ToLower(word)
	l.mu.RLock()
	defer l.mu.RUnlock()
	id, ok := l.byWord[word]
	return id, ok
}

// Len reports the number of distinct words in the lexicon.
func (l *Lexicon) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Closest returns the lexically closest word to the query by edit-
// distance ratio, but only if that ratio is at or above cutoff (single-
// word query policy, spec §4.2/§4.6, default cutoff 0.8).
func (l *Lexicon) Closest(word string, cutoff float64) (string, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	bestWord := ""
	bestRatio := -1.0
	for _, e := range l.entries {
		r := ratio(word, e.Word)
		if r > bestRatio {
			bestRatio = r
			bestWord = e.Word
		}
	}
	if bestWord == "" || bestRatio < cutoff {
		return "", false
	}
	return bestWord, true
}

// ClosestAny returns the lexicon word with the smallest edit distance to
// word, unconditionally (multi-word query policy, spec §4.2/§4.6: "plain
// minimum edit distance. Single-mode and multi-mode intentionally apply
// different acceptance policies — see spec §9's "fuzzy-match policy
// divergence" design note and SPEC_FULL.md §5.
func (l *Lexicon) ClosestAny(word string) (string, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if len(l.entries) == 0 {
		return "", false
	}

	bestWord := l.entries[0].Word
	bestDist := levenshtein.ComputeDistance(word, bestWord)
	for _, e := range l.entries[1:] {
		d := levenshtein.ComputeDistance(word, e.Word)
		if d < bestDist {
			bestDist = d
			bestWord = e.Word
		}
	}
	return bestWord, true
}

// ratio converts an edit distance into a 0..1 similarity score, the way
// Python's difflib.get_close_matches reports match quality.
func ratio(a, b string) float64 {
	if a == "" && b == "" {
		return 1.0
	}
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 1.0
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(dist)/float64(maxLen)
}
