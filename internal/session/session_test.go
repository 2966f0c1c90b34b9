package session

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const blob = `{
  "photos": [
    {"dataUrl": "data:image/jpeg;base64,AAAA", "timestamp": "2024-05-01T10:00:00.000Z", "shotNumber": 1},
    {"dataUrl": "data:image/jpeg;base64,BBBB", "timestamp": "2024-05-01T10:00:03.000Z", "shotNumber": 2},
    {"dataUrl": "data:image/jpeg;base64,CCCC", "timestamp": "2024-05-01T10:00:06.000Z", "shotNumber": 3}
  ],
  "layout": "3",
  "email": "guest@example.com",
  "timestamp": "2024-05-01T10:00:07.000Z",
  "totalShots": 3
}`

func TestParse(t *testing.T) {
	s, err := Parse([]byte(blob))
	if err != nil {
		t.Fatal(err)
	}
	if s.ID == "" {
		t.Error("missing generated ID")
	}
	if s.Email != "guest@example.com" || s.Layout != "3" || s.TotalShots != 3 {
		t.Errorf("session = %+v", s)
	}
	if len(s.Photos) != 3 || s.Photos[2].ShotNumber != 3 {
		t.Errorf("photos = %+v", s.Photos)
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := Parse([]byte(`{"photos": []}`)); !errors.Is(err, ErrNoPhotos) {
		t.Errorf("empty photos: err = %v", err)
	}
	if _, err := Parse([]byte(`{`)); err == nil {
		t.Error("truncated json accepted")
	}
	if _, err := Load(context.Background(), filepath.Join(t.TempDir(), "missing.json")); !errors.Is(err, ErrNoSession) {
		t.Errorf("missing file: err = %v", err)
	}
}

func TestLoadFileAndURL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte(blob), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := Load(context.Background(), path)
	if err != nil || len(s.Photos) != 3 {
		t.Fatalf("Load(file) = %+v, %v", s, err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/session.json" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(blob))
	}))
	defer srv.Close()
	if s, err = Load(context.Background(), srv.URL+"/session.json"); err != nil || s.Email != "guest@example.com" {
		t.Errorf("Load(url) = %+v, %v", s, err)
	}
	if _, err := Load(context.Background(), srv.URL+"/gone"); !errors.Is(err, ErrNoSession) {
		t.Errorf("Load(404) err = %v", err)
	}
}

func TestSelectionToggle(t *testing.T) {
	s, err := Parse([]byte(blob))
	if err != nil {
		t.Fatal(err)
	}
	sel := NewSelection(s.Photos)
	if len(sel.Photos()) != 3 {
		t.Fatalf("default selection = %d photos", len(sel.Photos()))
	}
	if sel.ToggleShot(2) {
		t.Error("ToggleShot(2) reported selected after removal")
	}
	if got := sel.Photos(); len(got) != 2 || got[1].ShotNumber != 3 {
		t.Errorf("after removing 2: %+v", got)
	}
	if !sel.ToggleShot(2) {
		t.Error("ToggleShot(2) reported unselected after re-adding")
	}
	// re-added photos go to the end
	got := sel.Photos()
	if got[2].ShotNumber != 2 {
		t.Errorf("order after re-add = %d,%d,%d", got[0].ShotNumber, got[1].ShotNumber, got[2].ShotNumber)
	}
	sel.ToggleShot(99)
	sel.Reset()
	got = sel.Photos()
	if len(got) != 3 || got[1].ShotNumber != 2 {
		t.Errorf("after reset: %+v", got)
	}
}

func TestSelectionSharedTimestamp(t *testing.T) {
	// burst shots taken within the same EXIF second
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	sel := NewSelection([]CapturedPhoto{
		{ShotNumber: 1, Timestamp: ts},
		{ShotNumber: 2, Timestamp: ts},
		{ShotNumber: 3, Timestamp: ts},
	})
	if sel.ToggleShot(2) {
		t.Fatal("ToggleShot(2) reported selected after removal")
	}
	got := sel.Photos()
	if len(got) != 2 || got[0].ShotNumber != 1 || got[1].ShotNumber != 3 {
		t.Errorf("after removing 2: %+v", got)
	}
	if sel.Contains(CapturedPhoto{ShotNumber: 2, Timestamp: ts}) {
		t.Error("shot 2 still selected")
	}
	if !sel.Contains(CapturedPhoto{ShotNumber: 1, Timestamp: ts}) {
		t.Error("shot 1 lost")
	}
}

func TestSelectionPhotosIsCopy(t *testing.T) {
	sel := NewSelection([]CapturedPhoto{{ShotNumber: 1, Timestamp: time.Unix(1, 0)}})
	p := sel.Photos()
	p[0].ShotNumber = 42
	if sel.Photos()[0].ShotNumber != 1 {
		t.Error("Photos() exposed internal slice")
	}
}

func writePNG(t *testing.T, path string) {
	t.Helper()
	im := image.NewRGBA(image.Rect(0, 0, 4, 3))
	im.SetRGBA(1, 1, color.RGBA{255, 0, 0, 255})
	fp, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer fp.Close()
	if err := png.Encode(fp, im); err != nil {
		t.Fatal(err)
	}
}

func TestFromFiles(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"b.png", "a.png", "notes.txt"} {
		if strings.HasSuffix(n, ".png") {
			writePNG(t, filepath.Join(dir, n))
		} else if err := os.WriteFile(filepath.Join(dir, n), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	paths, err := ImagesInDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 2 || filepath.Base(paths[0]) != "a.png" {
		t.Fatalf("ImagesInDir = %v", paths)
	}
	s, err := FromFiles("me@example.com", paths)
	if err != nil {
		t.Fatal(err)
	}
	if s.Layout != "2" || s.TotalShots != 2 || s.Photos[1].ShotNumber != 2 {
		t.Errorf("session = %+v", s)
	}
	if !strings.HasPrefix(s.Photos[0].DataURL, "data:image/jpeg;base64,") {
		t.Errorf("photo data url prefix: %.30s", s.Photos[0].DataURL)
	}
	if s.Photos[0].Timestamp.IsZero() {
		t.Error("photo timestamp not set")
	}
	if _, err := FromFiles("", nil); !errors.Is(err, ErrNoPhotos) {
		t.Errorf("no paths: err = %v", err)
	}
}

func TestValidLayout(t *testing.T) {
	if !ValidLayout("4") || ValidLayout("5") {
		t.Error("ValidLayout mismatch")
	}
}
