package httpapi

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/oss-search/barrelsearch/internal/config"
	"github.com/oss-search/barrelsearch/internal/engine"
)

func newTestServer(t *testing.T) *httptest.Server {
	cfg := config.Default()
	cfg.DataDir = t.TempDir()

	e, err := engine.Open(cfg)
	if err != nil {
		t.Fatalf("engine.Open() error: %v", err)
	}
	return httptest.NewServer(NewRouter(e, cfg))
}

func uploadCSV(t *testing.T, url, contents string) *http.Response {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "jobs.csv")
	if err != nil {
		t.Fatalf("CreateFormFile() error: %v", err)
	}
	part.Write([]byte(contents))
	mw.Close()

	resp, err := http.Post(url+"/api/process-csv", mw.FormDataContentType(), &buf)
	if err != nil {
		t.Fatalf("POST /api/process-csv error: %v", err)
	}
	return resp
}

func TestProcessCSV_SuccessResponse(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	resp := uploadCSV(t, srv.URL, "title,description\nJava Engineer,java analytics\n")
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body messageResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if body.Message == "" {
		t.Errorf("expected a message, got %+v", body)
	}
}

func TestGetQueryResult_NotFoundForEmptyQuery(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	reqBody, _ := json.Marshal(queryRequest{Text: "to"})
	resp, err := http.Post(srv.URL+"/api/get-query-result", "application/json", bytes.NewReader(reqBody))
	if err != nil {
		t.Fatalf("POST error: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestGetQueryResult_SuccessAfterIngest(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	uploadResp := uploadCSV(t, srv.URL, "title,description\nJava Engineer,java analytics\n")
	uploadResp.Body.Close()

	reqBody, _ := json.Marshal(queryRequest{Text: "engineers"})
	resp, err := http.Post(srv.URL+"/api/get-query-result", "application/json", bytes.NewReader(reqBody))
	if err != nil {
		t.Fatalf("POST error: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body queryResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if body.Query != "engineers" {
		t.Errorf("Query = %q, want %q", body.Query, "engineers")
	}
}

func TestFavicon_ReturnsNoContent(t *testing.T) {
	srv := newTestServer(t)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/favicon.ico")
	if err != nil {
		t.Fatalf("GET /favicon.ico error: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("status = %d, want 204", resp.StatusCode)
	}
}
