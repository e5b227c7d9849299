package cellar

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const sampleResults = `{
  "results": {
    "bindings": [
      {
        "cellarURIs": {"value": "http://publications.europa.eu/resource/cellar/aaa-111"},
        "format": {"value": "fmx4"}
      },
      {
        "cellarURIs": {"value": "http://publications.europa.eu/resource/cellar/bbb-222"},
        "format": {"value": "xhtml"}
      },
      {
        "cellarURIs": {"value": "http://publications.europa.eu/resource/cellar/ccc-333"},
        "format": {"value": "fmx4"}
      }
    ]
  }
}`

func TestIDsFromResults(t *testing.T) {
	cases := []struct {
		name   string
		format string
		want   []string
	}{
		{name: "formex ids", format: "fmx4", want: []string{"aaa-111", "ccc-333"}},
		{name: "xhtml ids", format: "xhtml", want: []string{"bbb-222"}},
		{name: "no matches", format: "pdf", want: nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ids, err := IDsFromResults([]byte(sampleResults), tc.format)
			if err != nil {
				t.Fatalf("IDsFromResults() error = %v", err)
			}
			if len(ids) != len(tc.want) {
				t.Fatalf("IDsFromResults() = %v, want %v", ids, tc.want)
			}
			for i := range ids {
				if ids[i] != tc.want[i] {
					t.Errorf("IDsFromResults()[%d] = %q, want %q", i, ids[i], tc.want[i])
				}
			}
		})
	}
}

func TestIDsFromResultsInvalidJSON(t *testing.T) {
	if _, err := IDsFromResults([]byte("not json"), "fmx4"); err == nil {
		t.Fatal("IDsFromResults() error = nil, want parse error")
	}
}

func TestContentCacheExpiry(t *testing.T) {
	cache := NewContentCache(20 * time.Millisecond)
	cache.Set("id-1", Payload{ID: "id-1", Body: []byte("data")})

	if _, found := cache.Get("id-1"); !found {
		t.Fatal("Get() found = false immediately after Set")
	}

	time.Sleep(40 * time.Millisecond)

	if _, found := cache.Get("id-1"); found {
		t.Error("Get() found = true after TTL expiry")
	}
	if cache.Len() != 0 {
		t.Errorf("Len() = %d after lazy expiry, want 0", cache.Len())
	}
}

func TestContentCacheInvalidate(t *testing.T) {
	cache := NewContentCache(time.Hour)
	cache.Set("id-1", Payload{ID: "id-1"})
	cache.Invalidate("id-1")

	if _, found := cache.Get("id-1"); found {
		t.Error("Get() found = true after Invalidate")
	}
}

// mockHTTPClient records requests and returns canned responses per URL
// suffix.
type mockHTTPClient struct {
	requests  []*http.Request
	responses map[string]mockResponse
}

type mockResponse struct {
	status      int
	contentType string
	body        []byte
}

func (mockClient *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	mockClient.requests = append(mockClient.requests, req)

	for suffix, canned := range mockClient.responses {
		if strings.HasSuffix(req.URL.Path, suffix) {
			header := http.Header{}
			if canned.contentType != "" {
				header.Set("Content-Type", canned.contentType)
			}
			return &http.Response{
				StatusCode: canned.status,
				Header:     header,
				Body:       io.NopCloser(bytes.NewReader(canned.body)),
			}, nil
		}
	}
	return &http.Response{
		StatusCode: http.StatusNotFound,
		Header:     http.Header{},
		Body:       io.NopCloser(strings.NewReader("not found")),
	}, nil
}

func newTestClient(mockClient *mockHTTPClient) *Client {
	config := DefaultConfig()
	config.HTTPClient = mockClient
	config.RateLimit = 0
	return NewClient(config)
}

func TestClientFetch(t *testing.T) {
	mockClient := &mockHTTPClient{responses: map[string]mockResponse{
		"aaa-111": {status: http.StatusOK, contentType: "application/xml", body: []byte("<doc/>")},
	}}
	client := newTestClient(mockClient)

	payload, err := client.Fetch(context.Background(), "aaa-111")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if string(payload.Body) != "<doc/>" {
		t.Errorf("Fetch() body = %q, want %q", payload.Body, "<doc/>")
	}
	if payload.IsZip() {
		t.Error("IsZip() = true for xml payload")
	}

	request := mockClient.requests[0]
	if got := request.Header.Get("Accept-Language"); got != "eng" {
		t.Errorf("Accept-Language = %q, want %q", got, "eng")
	}
	if got := request.Header.Get("User-Agent"); got != DefaultUserAgent {
		t.Errorf("User-Agent = %q, want %q", got, DefaultUserAgent)
	}
}

func TestClientFetchCacheHit(t *testing.T) {
	mockClient := &mockHTTPClient{responses: map[string]mockResponse{
		"aaa-111": {status: http.StatusOK, body: []byte("<doc/>")},
	}}
	client := newTestClient(mockClient)

	if _, err := client.Fetch(context.Background(), "aaa-111"); err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if _, err := client.Fetch(context.Background(), "aaa-111"); err != nil {
		t.Fatalf("second Fetch() error = %v", err)
	}

	if len(mockClient.requests) != 1 {
		t.Errorf("requests = %d, want 1 (second fetch should hit the cache)", len(mockClient.requests))
	}
}

func TestClientFetchErrors(t *testing.T) {
	mockClient := &mockHTTPClient{responses: map[string]mockResponse{
		"gone": {status: http.StatusGone, body: []byte("gone")},
	}}
	client := newTestClient(mockClient)

	if _, err := client.Fetch(context.Background(), "gone"); err == nil {
		t.Error("Fetch() error = nil for HTTP 410")
	}
	if _, err := client.Fetch(context.Background(), "  "); err == nil {
		t.Error("Fetch() error = nil for blank id")
	}
}

func TestRateLimitedClientInterval(t *testing.T) {
	mockClient := &mockHTTPClient{responses: map[string]mockResponse{
		"x": {status: http.StatusOK},
	}}
	limited := NewRateLimitedHTTPClient(mockClient, 30*time.Millisecond)

	request, err := http.NewRequest(http.MethodGet, "http://example.invalid/x", nil)
	if err != nil {
		t.Fatalf("NewRequest() error = %v", err)
	}

	start := time.Now()
	for i := 0; i < 3; i++ {
		response, err := limited.Do(request)
		if err != nil {
			t.Fatalf("Do() error = %v", err)
		}
		response.Body.Close()
	}
	elapsed := time.Since(start)

	if elapsed < 60*time.Millisecond {
		t.Errorf("3 requests took %v, want at least 60ms with a 30ms interval", elapsed)
	}
}

func buildZip(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)
	for name, content := range files {
		entry, err := writer.Create(name)
		if err != nil {
			t.Fatalf("zip Create() error = %v", err)
		}
		if _, err := entry.Write([]byte(content)); err != nil {
			t.Fatalf("zip Write() error = %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("zip Close() error = %v", err)
	}
	return buf.Bytes()
}

func TestClientDownload(t *testing.T) {
	archive := buildZip(t, map[string]string{
		"DOC_1.xml": "<FORMEX/>",
		"DOC_2.xml": "<FORMEX/>",
	})
	mockClient := &mockHTTPClient{responses: map[string]mockResponse{
		"zip-id":    {status: http.StatusOK, contentType: "application/zip", body: archive},
		"single-id": {status: http.StatusOK, contentType: "application/xhtml+xml", body: []byte("<html/>")},
	}}
	client := newTestClient(mockClient)
	dir := t.TempDir()

	report, err := client.Download(context.Background(), []string{"zip-id", "single-id", "missing-id"}, dir, "xhtml")
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}

	if report.ZipFiles != 1 {
		t.Errorf("ZipFiles = %d, want 1", report.ZipFiles)
	}
	if report.SingleFiles != 1 {
		t.Errorf("SingleFiles = %d, want 1", report.SingleFiles)
	}
	if len(report.Failed) != 1 || report.Failed[0] != "missing-id" {
		t.Errorf("Failed = %v, want [missing-id]", report.Failed)
	}

	extracted := filepath.Join(dir, "zip-id", "DOC_1.xml")
	if _, err := os.Stat(extracted); err != nil {
		t.Errorf("extracted file %s missing: %v", extracted, err)
	}
	single := filepath.Join(dir, "single-id.xhtml")
	data, err := os.ReadFile(single)
	if err != nil {
		t.Fatalf("reading %s: %v", single, err)
	}
	if string(data) != "<html/>" {
		t.Errorf("single file content = %q, want %q", data, "<html/>")
	}
	if report.Paths["zip-id"] != filepath.Join(dir, "zip-id") {
		t.Errorf("Paths[zip-id] = %q, want %q", report.Paths["zip-id"], filepath.Join(dir, "zip-id"))
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "user_agent: research-bot/2.0\nrate_limit: 2s\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if config.UserAgent != "research-bot/2.0" {
		t.Errorf("UserAgent = %q, want %q", config.UserAgent, "research-bot/2.0")
	}
	if config.RateLimit != 2*time.Second {
		t.Errorf("RateLimit = %v, want 2s", config.RateLimit)
	}
	if config.BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL = %q, want default %q", config.BaseURL, DefaultBaseURL)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("LoadConfig() error = nil for missing file")
	}
}

func TestLoadConfigBadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("timeout: soon\n"), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("LoadConfig() error = nil for invalid duration")
	}
}
