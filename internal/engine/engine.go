// Package engine is the pipeline orchestrator of spec §4.8 (C8): it
// sequences C1→C5 on ingest and C6→C7 on query, holding the directory
// and file paths as an explicit Store value rather than ambient global
// state (spec §9 Design Note "Cyclic/implicit global state").
package engine

import (
	"fmt"
	"log/slog"

	"github.com/oss-search/barrelsearch/internal/barrel"
	"github.com/oss-search/barrelsearch/internal/config"
	"github.com/oss-search/barrelsearch/internal/forwardindex"
	"github.com/oss-search/barrelsearch/internal/ingest"
	"github.com/oss-search/barrelsearch/internal/invertedindex"
	"github.com/oss-search/barrelsearch/internal/lexicon"
	"github.com/oss-search/barrelsearch/internal/metadata"
	"github.com/oss-search/barrelsearch/internal/query"
	"github.com/oss-search/barrelsearch/internal/rank"
	"github.com/oss-search/barrelsearch/internal/text"
)

// Engine is the capability set the orchestrator composes: a lexicon,
// a forward index, a barrel store, and a metadata table, all addressed
// through cfg's explicit paths.
type Engine struct {
	cfg     config.Config
	lex     *lexicon.Lexicon
	forward *forwardindex.Index
	barrels *barrel.Store
	meta    *metadata.Table
}

// Open loads (or creates empty) every persistent component named by
// cfg's data directory layout.
func Open(cfg config.Config) (*Engine, error) {
	lex, err := lexicon.Load(cfg.LexiconPath())
	if err != nil {
		return nil, fmt.Errorf("engine: open lexicon: %w", err)
	}

	fwd, err := forwardindex.Load(cfg.ForwardIndexPath())
	if err != nil {
		return nil, fmt.Errorf("engine: open forward index: %w", err)
	}

	barrels, err := barrel.Open(cfg.BarrelDir())
	if err != nil {
		return nil, fmt.Errorf("engine: open barrel store: %w", err)
	}

	meta, err := metadata.Load(cfg.MetadataPath())
	if err != nil {
		return nil, fmt.Errorf("engine: open metadata: %w", err)
	}

	return &Engine{cfg: cfg, lex: lex, forward: fwd, barrels: barrels, meta: meta}, nil
}

// IngestResult summarizes one Ingest call for callers/logging.
type IngestResult struct {
	RowsIngested int
	NewTerms     int
}

// Ingest runs spec §4.8's ingest sequence: accept CSV -> lexicon
// add_or_get for every in-vocabulary lemma -> ForwardIndexBuilder ->
// InvertedIndexBuilder (over delta) -> BarrelStore.update (over delta).
// On any stage failure, later stages are skipped and the error
// surfaces to the caller, identifying which stage failed.
func (e *Engine) Ingest(csvPath string) (IngestResult, error) {
	rows, err := ingest.ParseCSV(csvPath)
	if err != nil {
		return IngestResult{}, fmt.Errorf("engine: ingest: parse csv: %w", err)
	}

	termsBefore := e.lex.Len()
	docs := make([]forwardindex.Document, len(rows))
	for i, row := range rows {
		for _, tok := range text.Normalize(row.LexiconText()) {
			e.lex.AddOrGet(tok.Lemma)
		}
		docs[i] = row.ForwardIndexDocument()
	}
	if err := e.lex.Save(e.cfg.LexiconPath()); err != nil {
		return IngestResult{}, fmt.Errorf("engine: ingest: save lexicon: %w", err)
	}

	combined, delta := forwardindex.Build(e.forward, docs, e.lex)
	if err := combined.Save(e.cfg.ForwardIndexPath()); err != nil {
		return IngestResult{}, fmt.Errorf("engine: ingest: save combined forward index: %w", err)
	}
	if err := delta.Save(e.cfg.ForwardDeltaPath()); err != nil {
		return IngestResult{}, fmt.Errorf("engine: ingest: save delta forward index: %w", err)
	}
	e.forward = combined

	inv := invertedindex.Build(delta)
	if err := invertedindex.Save(e.cfg.InvertedDeltaPath(), inv); err != nil {
		return IngestResult{}, fmt.Errorf("engine: ingest: save inverted delta: %w", err)
	}

	if err := e.barrels.Update(inv); err != nil {
		return IngestResult{}, fmt.Errorf("engine: ingest: update barrel store: %w", err)
	}

	result := IngestResult{RowsIngested: len(rows), NewTerms: e.lex.Len() - termsBefore}
	slog.Info("ingest complete", slog.Int("rows", result.RowsIngested), slog.Int("new_terms", result.NewTerms))
	return result, nil
}

// Query runs spec §4.8's query sequence: QueryResolver -> BarrelStore
// lookup per term -> Ranker -> metadata join -> return.
func (e *Engine) Query(rawQuery string) ([]rank.RankedHit, error) {
	resolved, err := query.Resolve(rawQuery, e.lex, query.Config{SingleCutoff: e.cfg.Fuzzy.SingleCutoff})
	if err != nil {
		return nil, err
	}

	var fr rank.FilteredResults
	switch resolved.Mode {
	case query.Single:
		postings, _, err := e.barrels.Lookup(resolved.Term.TermID)
		if err != nil {
			return nil, fmt.Errorf("engine: query: barrel lookup: %w", err)
		}
		fr = rank.FilteredResults{Single: postings}

	case query.Multi:
		perTerm := make(map[lexicon.TermID][]invertedindex.Posting, len(resolved.Terms))
		for _, t := range resolved.Terms {
			postings, _, err := e.barrels.Lookup(t.TermID)
			if err != nil {
				return nil, fmt.Errorf("engine: query: barrel lookup: %w", err)
			}
			perTerm[t.TermID] = postings
		}
		fr = rank.FilteredResults{IsMulti: true, PerTerm: perTerm}
	}

	return rank.Rank(fr, e.meta), nil
}
