package preview

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	return newLoggedTestServer(t, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newLoggedTestServer(t *testing.T, log *slog.Logger) *httptest.Server {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"index.html":    "<html>index</html>",
		"feed.xml":      "<feed></feed>",
		".poemgen.lock": "",
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	srv := httptest.NewServer(NewServer(dir, log))
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, string(body)
}

func TestServer_Health(t *testing.T) {
	srv := newTestServer(t)
	resp, body := get(t, srv.URL+"/health")
	if resp.StatusCode != http.StatusOK || !strings.Contains(body, `"ok"`) {
		t.Errorf("unexpected health response: %d %q", resp.StatusCode, body)
	}
}

func TestServer_IndexAndNoCache(t *testing.T) {
	srv := newTestServer(t)
	resp, body := get(t, srv.URL+"/")
	if resp.StatusCode != http.StatusOK || body != "<html>index</html>" {
		t.Errorf("unexpected index response: %d %q", resp.StatusCode, body)
	}
	if resp.Header.Get("Cache-Control") != "no-store" {
		t.Errorf("expected no-store, got %q", resp.Header.Get("Cache-Control"))
	}
}

func TestServer_FeedContentType(t *testing.T) {
	srv := newTestServer(t)
	resp, _ := get(t, srv.URL+"/feed.xml")
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/atom+xml") {
		t.Errorf("expected atom content type, got %q", ct)
	}
}

func TestServer_HidesDotFiles(t *testing.T) {
	srv := newTestServer(t)
	resp, _ := get(t, srv.URL+"/.poemgen.lock")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for lock file, got %d", resp.StatusCode)
	}
}

func TestServer_RequestLog(t *testing.T) {
	var buf bytes.Buffer
	srv := newLoggedTestServer(t, slog.New(slog.NewJSONHandler(&buf, nil)))
	get(t, srv.URL+"/")
	get(t, srv.URL+"/missing.jpg")
	srv.Close()

	var records []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var rec map[string]any
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			t.Fatalf("decode log line %q: %v", line, err)
		}
		records = append(records, rec)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 request logs, got %d", len(records))
	}
	for _, rec := range records {
		if id, _ := rec["request_id"].(string); id == "" {
			t.Errorf("expected request id in %v", rec)
		}
	}
	if records[0]["level"] != "INFO" || records[0]["bytes"] != float64(len("<html>index</html>")) {
		t.Errorf("unexpected index log %v", records[0])
	}
	if records[1]["level"] != "WARN" || records[1]["status"] != float64(http.StatusNotFound) {
		t.Errorf("unexpected miss log %v", records[1])
	}
}
