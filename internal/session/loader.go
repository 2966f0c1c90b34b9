package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	imagepkg "github.com/youruser/photobooth/internal/image"
	"github.com/youruser/photobooth/internal/util"
)

var (
	ErrNoSession = errors.New("no photo session found")
	ErrNoPhotos  = errors.New("session has no photos")
)

// Load reads a session blob as stored by the capture page, from a file or an
// http(s) URL. A missing ID is filled with a fresh UUID.
func Load(ctx context.Context, path string) (*Session, error) {
	if util.IsURL(path) {
		b, err := util.GetBytes(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNoSession, err)
		}
		return Parse(b)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNoSession, path)
		}
		return nil, err
	}
	return Parse(b)
}

// Parse decodes a session blob.
func Parse(b []byte) (*Session, error) {
	var s Session
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("parsing session: %w", err)
	}
	if len(s.Photos) == 0 {
		return nil, ErrNoPhotos
	}
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.TotalShots == 0 {
		s.TotalShots = len(s.Photos)
	}
	return &s, nil
}

// FromFiles builds a session from image files in the given order. Each
// photo's timestamp comes from its EXIF capture time, else the file mtime.
func FromFiles(email string, paths []string) (*Session, error) {
	if len(paths) == 0 {
		return nil, ErrNoPhotos
	}
	s := &Session{
		ID:         uuid.NewString(),
		Email:      email,
		Layout:     strconv.Itoa(len(paths)),
		TotalShots: len(paths),
		Timestamp:  time.Now().UTC(),
	}
	for i, p := range paths {
		photo, err := loadPhoto(p)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", p, err)
		}
		photo.ShotNumber = i + 1
		s.Photos = append(s.Photos, photo)
	}
	return s, nil
}

func loadPhoto(path string) (CapturedPhoto, error) {
	fp, err := os.Open(path)
	if err != nil {
		return CapturedPhoto{}, err
	}
	defer fp.Close()

	ts, ok := imagepkg.CaptureTime(fp)
	if !ok {
		info, err := fp.Stat()
		if err != nil {
			return CapturedPhoto{}, err
		}
		ts = info.ModTime()
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return CapturedPhoto{}, err
	}
	img, err := imagepkg.Decode(b)
	if err != nil {
		return CapturedPhoto{}, err
	}
	u, err := imagepkg.JPEGDataURL(img, imagepkg.DefaultJPEGQuality)
	if err != nil {
		return CapturedPhoto{}, err
	}
	return CapturedPhoto{DataURL: u, Timestamp: ts.UTC()}, nil
}

// ImagesInDir lists the .jpg/.jpeg/.png files directly inside dir, sorted by
// name.
func ImagesInDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch filepath.Ext(e.Name()) {
		case ".jpg", ".jpeg", ".png", ".JPG", ".JPEG", ".PNG":
			out = append(out, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(out)
	return out, nil
}
