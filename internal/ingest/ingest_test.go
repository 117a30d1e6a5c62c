package ingest

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseCSV_ToleratesMissingColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.csv")
	contents := "title,description\nJava Engineer,Build things\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	rows, err := ParseCSV(path)
	if err != nil {
		t.Fatalf("ParseCSV() error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].Title != "Java Engineer" || rows[0].CompanyName != "" {
		t.Errorf("row = %+v", rows[0])
	}
}

func TestParseCSV_MissingFileIsError(t *testing.T) {
	_, err := ParseCSV(filepath.Join(t.TempDir(), "absent.csv"))
	if err == nil {
		t.Error("ParseCSV() on missing file should return an error")
	}
}

func TestLexiconText_CleansAllFiveColumns(t *testing.T) {
	row := Row{
		Title:       "Java Engineer!",
		Description: "Build #1 things @scale.",
		CompanyName: "Acme, Inc.",
		Location:    "Remote (US)",
		SkillsDesc:  "Go; Python.",
	}

	got := row.LexiconText()
	for _, forbidden := range []string{"#", "@", "!", ",", ";", "(", ")"} {
		if containsRune(got, forbidden) {
			t.Errorf("LexiconText() = %q, should not contain %q", got, forbidden)
		}
	}
	for _, want := range []string{"Java", "Engineer", "Acme", "Remote", "Python"} {
		if !containsRune(got, want) {
			t.Errorf("LexiconText() = %q, missing %q", got, want)
		}
	}
}

func TestForwardIndexDocument_OnlyTitleAndDescription(t *testing.T) {
	row := Row{Title: "Java Engineer", Description: "java analytics", CompanyName: "Acme"}
	doc := row.ForwardIndexDocument()
	if doc.Title != "Java Engineer" || doc.Description != "java analytics" {
		t.Errorf("ForwardIndexDocument() = %+v", doc)
	}
}

func containsRune(s, substr string) bool {
	return len(s) >= len(substr) && indexOf(s, substr) >= 0
}

func indexOf(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}
