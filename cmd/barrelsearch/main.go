// Command barrelsearch is a job-posting full-text search engine: it
// ingests a CSV of job postings into a lexicon, forward index, inverted
// index, and a sharded barrel store, then answers single- and
// multi-word queries against that store.
//
// Usage:
//
//	barrelsearch ingest jobs.csv
//	barrelsearch query "java engineer"
//	barrelsearch serve
package main

import (
	"fmt"
	"os"

	"github.com/oss-search/barrelsearch/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
