// Package rank implements the consolidation, scoring, and metadata
// join stages of spec §4.7. It eliminates the original's runtime
// result-shape sniffing (spec §9 "Polymorphism by shape") with an
// explicit FilteredResults sum type: Single carries one term's raw
// postings, Multi carries per-term postings keyed for AND-consolidation.
package rank

import (
	"sort"

	"github.com/RoaringBitmap/roaring"

	"github.com/oss-search/barrelsearch/internal/forwardindex"
	"github.com/oss-search/barrelsearch/internal/invertedindex"
	"github.com/oss-search/barrelsearch/internal/lexicon"
	"github.com/oss-search/barrelsearch/internal/metadata"
)

// FilteredResults is the sum type spec §9's "polymorphism by shape"
// note calls for: the query resolver + barrel fetch stage decide which
// variant applies, and the ranker never has to sniff a JSON shape to
// tell them apart.
type FilteredResults struct {
	// Single holds the one term's postings directly (single-word mode).
	Single []invertedindex.Posting
	// PerTerm holds one posting list per query term (multi-word mode);
	// consolidation applies AND semantics across its keys.
	PerTerm map[lexicon.TermID][]invertedindex.Posting
	IsMulti bool
}

// consolidatedDoc is one retained document after Stage A.
type consolidatedDoc struct {
	DocID     forwardindex.DocumentID
	Frequency uint32
	Positions []uint32
}

// consolidate implements spec §4.7 Stage A.
func consolidate(fr FilteredResults) []consolidatedDoc {
	if !fr.IsMulti {
		out := make([]consolidatedDoc, 0, len(fr.Single))
		for _, p := range fr.Single {
			out = append(out, consolidatedDoc{DocID: p.DocID, Frequency: p.Frequency, Positions: p.Positions})
		}
		return out
	}
	return consolidateMulti(fr.PerTerm)
}

// consolidateMulti applies AND semantics across every query term's
// posting list using roaring-bitmap intersection (one bitmap of doc ids
// per term, intersected the same way the teacher's QueryBuilder.Execute
// ANDs per-term bitmaps — here feeding the ranker instead of a boolean
// result set), then merges frequency/positions for the surviving docs.
func consolidateMulti(perTerm map[lexicon.TermID][]invertedindex.Posting) []consolidatedDoc {
	if len(perTerm) == 0 {
		return nil
	}

	byTermDoc := make(map[lexicon.TermID]map[forwardindex.DocumentID]invertedindex.Posting, len(perTerm))
	var intersection *roaring.Bitmap

	for termID, postings := range perTerm {
		bmp := roaring.NewBitmap()
		byDoc := make(map[forwardindex.DocumentID]invertedindex.Posting, len(postings))
		for _, p := range postings {
			bmp.Add(uint32(p.DocID))
			byDoc[p.DocID] = p
		}
		byTermDoc[termID] = byDoc

		if intersection == nil {
			intersection = bmp
		} else {
			intersection = roaring.And(intersection, bmp)
		}
	}
	if intersection == nil || intersection.IsEmpty() {
		return nil
	}

	out := make([]consolidatedDoc, 0, intersection.GetCardinality())
	it := intersection.Iterator()
	for it.HasNext() {
		docID := forwardindex.DocumentID(it.Next())

		var freq uint32
		var positions []uint32
		for _, byDoc := range byTermDoc {
			p := byDoc[docID]
			freq += p.Frequency
			positions = append(positions, p.Positions...)
		}
		sort.Slice(positions, func(i, j int) bool { return positions[i] < positions[j] })
		positions = dedupeSorted(positions)

		out = append(out, consolidatedDoc{DocID: docID, Frequency: freq, Positions: positions})
	}
	return out
}

func dedupeSorted(in []uint32) []uint32 {
	if len(in) == 0 {
		return in
	}
	out := in[:1]
	for _, v := range in[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}

// score implements spec §4.7 Stage B.
func score(d consolidatedDoc) float64 {
	if len(d.Positions) == 0 {
		return 0.7 * float64(d.Frequency)
	}
	var sum uint64
	for _, p := range d.Positions {
		sum += uint64(p)
	}
	meanPos := float64(sum) / float64(len(d.Positions))
	return 0.7*float64(d.Frequency) + 0.3*(1/meanPos)
}

// RankedHit is the final joined-and-scored result, spec §3/§4.7 Stage C.
type RankedHit struct {
	DocID forwardindex.DocumentID `json:"docID"`
	Score float64                 `json:"score"`
	Title string                  `json:"title"`
	URL   string                  `json:"url"`
}

// Rank runs all three stages of spec §4.7: consolidate, score, join
// with metadata, then sort descending by score (ties ascending by
// docID). No truncation — pagination is the caller's concern.
func Rank(fr FilteredResults, meta *metadata.Table) []RankedHit {
	docs := consolidate(fr)

	hits := make([]RankedHit, 0, len(docs))
	for _, d := range docs {
		title, url := meta.Lookup(d.DocID)
		hits = append(hits, RankedHit{
			DocID: d.DocID,
			Score: score(d),
			Title: title,
			URL:   url,
		})
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].DocID < hits[j].DocID
	})
	return hits
}
