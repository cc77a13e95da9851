package assets

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/jotspot/inktex/log"
)

func TestFetchDownloadsAndCaches(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte("model-bytes"))
	}))
	defer srv.Close()

	s := NewSource(WithCacheDir(t.TempDir()))

	for i := 0; i < 2; i++ {
		data, err := s.Fetch(context.Background(), srv.URL+"/model.onnx")
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != "model-bytes" {
			t.Fatalf("wrong payload: %q", data)
		}
	}
	if hits != 1 {
		t.Errorf("expected a single download, got %d", hits)
	}
}

func TestFetchSendsBearerToken(t *testing.T) {
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	s := NewSource(WithCacheDir(t.TempDir()), WithToken("sometoken"))
	if _, err := s.Fetch(context.Background(), srv.URL); err != nil {
		t.Fatal(err)
	}
	if auth != "Bearer sometoken" {
		t.Errorf("wrong auth header: %q", auth)
	}
}

func TestFetchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusInternalServerError)
	}))
	defer srv.Close()

	s := NewSource(WithCacheDir(t.TempDir()))
	_, err := s.Fetch(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "Status 500") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestFetchEmptyURL(t *testing.T) {
	s := NewSource(WithCacheDir(t.TempDir()))
	if _, err := s.Fetch(context.Background(), ""); err == nil {
		t.Fatal("expected error")
	}
}

func TestCachePathsDiffer(t *testing.T) {
	s := NewSource(WithCacheDir(t.TempDir()))
	a := s.cachePath("https://example.com/model.onnx")
	b := s.cachePath("https://example.com/vocab.json")
	if a == b {
		t.Error("distinct urls share a cache path")
	}
}

func unsignedToken(t *testing.T, claims map[string]interface{}) string {
	t.Helper()
	header, err := json.Marshal(map[string]string{"alg": "none", "typ": "JWT"})
	if err != nil {
		t.Fatal(err)
	}
	body, err := json.Marshal(claims)
	if err != nil {
		t.Fatal(err)
	}
	return base64.RawURLEncoding.EncodeToString(header) + "." +
		base64.RawURLEncoding.EncodeToString(body) + "."
}

func TestWarnIfExpired(t *testing.T) {
	var buf bytes.Buffer
	log.Warning.SetOutput(&buf)
	defer log.Warning.SetOutput(os.Stdout)

	warnIfExpired(unsignedToken(t, map[string]interface{}{"exp": 1}))
	if !strings.Contains(buf.String(), "expired") {
		t.Error("expected expiry warning")
	}

	buf.Reset()
	warnIfExpired(unsignedToken(t, map[string]interface{}{"exp": 95617584000}))
	if buf.Len() != 0 {
		t.Errorf("unexpected warning: %s", buf.String())
	}

	buf.Reset()
	warnIfExpired("not-a-jwt")
	if buf.Len() != 0 {
		t.Errorf("unexpected warning: %s", buf.String())
	}
}
