package util

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestEnsureParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "booth.db")
	if err := EnsureParentDir(path); err != nil {
		t.Fatal(err)
	}
	if fi, err := os.Stat(filepath.Dir(path)); err != nil || !fi.IsDir() {
		t.Errorf("parent dir missing: %v", err)
	}
	for _, p := range []string{":memory:", "file::memory:?cache=shared", "booth.db", ""} {
		if err := EnsureParentDir(p); err != nil {
			t.Errorf("EnsureParentDir(%q) = %v", p, err)
		}
	}
}

func TestGetBytes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{"photos":[]}`))
	}))
	defer srv.Close()

	b, err := GetBytes(context.Background(), srv.URL+"/session.json")
	if err != nil || string(b) != `{"photos":[]}` {
		t.Errorf("GetBytes = %q, %v", b, err)
	}
	if _, err := GetBytes(context.Background(), srv.URL+"/missing"); err == nil {
		t.Error("404 accepted")
	}
	if !IsURL(srv.URL) || IsURL("/tmp/session.json") {
		t.Error("IsURL mismatch")
	}
}
