// Package gallery persists saved strips and the download log in SQLite.
package gallery

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	imagepkg "github.com/youruser/photobooth/internal/image"
	"github.com/youruser/photobooth/internal/session"
)

// ErrNotFound is returned for unknown entry ids.
var ErrNotFound = errors.New("gallery entry not found")

// DefaultMaxDownloads is how many download records are kept.
const DefaultMaxDownloads = 100

const schema = `
CREATE TABLE IF NOT EXISTS entries (
	seq           INTEGER PRIMARY KEY AUTOINCREMENT,
	id            TEXT NOT NULL UNIQUE,
	session_id    TEXT NOT NULL DEFAULT '',
	email         TEXT NOT NULL DEFAULT '',
	layout        TEXT NOT NULL DEFAULT '',
	total_shots   INTEGER NOT NULL DEFAULT 0,
	photos        TEXT NOT NULL DEFAULT '[]',
	photo_count   INTEGER NOT NULL DEFAULT 0,
	strip         TEXT NOT NULL DEFAULT '',
	filter        TEXT NOT NULL DEFAULT '',
	theme         TEXT NOT NULL DEFAULT '',
	text_overlays INTEGER NOT NULL DEFAULT 0,
	session_date  INTEGER NOT NULL DEFAULT 0,
	saved_at      INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS downloads (
	seq           INTEGER PRIMARY KEY AUTOINCREMENT,
	ts            INTEGER NOT NULL,
	session_id    TEXT NOT NULL DEFAULT '',
	email         TEXT NOT NULL DEFAULT '',
	type          TEXT NOT NULL,
	filename      TEXT NOT NULL DEFAULT '',
	theme         TEXT NOT NULL DEFAULT '',
	filter        TEXT NOT NULL DEFAULT '',
	photo_count   INTEGER NOT NULL DEFAULT 0,
	text_overlays INTEGER NOT NULL DEFAULT 0
);`

// Store is a gallery backed by one SQLite database.
type Store struct {
	db           *sql.DB
	maxDownloads int
	now          func() time.Time
}

// Open opens or creates the database at path. ":memory:" style paths work
// and keep everything on a single connection.
func Open(path string, maxDownloads int) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open gallery db: %w", err)
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=10000",
		"PRAGMA synchronous=NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("set pragma: %w", err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create gallery schema: %w", err)
	}
	if maxDownloads <= 0 {
		maxDownloads = DefaultMaxDownloads
	}
	return &Store{db: db, maxDownloads: maxDownloads, now: time.Now}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores e and returns it with ID and SavedAt filled in.
func (s *Store) Save(ctx context.Context, e Entry) (Entry, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.SavedAt.IsZero() {
		e.SavedAt = s.now().UTC()
	}
	if e.Photos == nil {
		e.Photos = []session.CapturedPhoto{}
	}
	photos, err := json.Marshal(e.Photos)
	if err != nil {
		return Entry{}, fmt.Errorf("encode photos: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO entries
		(id, session_id, email, layout, total_shots, photos, photo_count, strip, filter, theme, text_overlays, session_date, saved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.SessionID, e.Email, e.Layout, e.TotalShots, string(photos), len(e.Photos), e.PhotoStrip,
		e.Filter, e.Theme, e.TextOverlayCount, unixMilli(e.SessionDate), unixMilli(e.SavedAt))
	if err != nil {
		return Entry{}, fmt.Errorf("save entry: %w", err)
	}
	log.Info().Str("id", e.ID).Str("email", e.Email).Int("photos", len(e.Photos)).Msg("gallery entry saved")
	return e, nil
}

const entryColumns = `id, session_id, email, layout, total_shots, photos, strip, filter, theme, text_overlays, session_date, saved_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (Entry, error) {
	var (
		e                 Entry
		photos            string
		sessionDate, save int64
	)
	err := row.Scan(&e.ID, &e.SessionID, &e.Email, &e.Layout, &e.TotalShots, &photos, &e.PhotoStrip,
		&e.Filter, &e.Theme, &e.TextOverlayCount, &sessionDate, &save)
	if err != nil {
		return Entry{}, err
	}
	if err := json.Unmarshal([]byte(photos), &e.Photos); err != nil {
		return Entry{}, fmt.Errorf("decode photos of %s: %w", e.ID, err)
	}
	e.SessionDate = fromMilli(sessionDate)
	e.SavedAt = fromMilli(save)
	return e, nil
}

// List returns entries in save order, oldest first, filtered by opt.
// Corrupt entries are deleted as they are found.
func (s *Store) List(ctx context.Context, opt ListOptions) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+entryColumns+` FROM entries ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	var (
		out     []Entry
		corrupt []string
	)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		if e.corrupt() {
			corrupt = append(corrupt, e.ID)
			continue
		}
		if opt.match(e) {
			out = append(out, e)
		}
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return nil, err
	}

	for _, id := range corrupt {
		if _, err := s.db.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, id); err != nil {
			return nil, fmt.Errorf("remove corrupt entry %s: %w", id, err)
		}
	}
	if len(corrupt) > 0 {
		log.Warn().Int("count", len(corrupt)).Msg("removed corrupt gallery entries")
	}
	if opt.Limit > 0 && len(out) > opt.Limit {
		out = out[len(out)-opt.Limit:]
	}
	return out, nil
}

func (s *Store) Get(ctx context.Context, id string) (Entry, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+entryColumns+` FROM entries WHERE id = ?`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, ErrNotFound
	}
	if err != nil {
		return Entry{}, fmt.Errorf("get entry %s: %w", id, err)
	}
	return e, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete entry %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	log.Info().Str("id", id).Msg("gallery entry deleted")
	return nil
}

// Clear removes every entry. The download log is kept.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM entries`); err != nil {
		return fmt.Errorf("clear gallery: %w", err)
	}
	log.Info().Msg("gallery cleared")
	return nil
}

func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var (
		st     Stats
		latest sql.NullInt64
	)
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*), COALESCE(SUM(photo_count), 0),
		COALESCE(SUM(CASE WHEN strip != '' THEN 1 ELSE 0 END), 0), MAX(saved_at)
		FROM entries WHERE photo_count > 0 OR strip != ''`).Scan(&st.Sessions, &st.Photos, &st.Strips, &latest)
	if err != nil {
		return Stats{}, fmt.Errorf("gallery stats: %w", err)
	}
	if latest.Valid {
		st.LatestAt = fromMilli(latest.Int64)
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM downloads`).Scan(&st.Downloads); err != nil {
		return Stats{}, fmt.Errorf("download stats: %w", err)
	}
	return st, nil
}

// Strip decodes the saved strip of entry id.
func (s *Store) Strip(ctx context.Context, id string) (image.Image, error) {
	e, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if e.PhotoStrip == "" {
		return nil, fmt.Errorf("entry %s: %w", id, ErrNoStrip)
	}
	return imagepkg.DecodeDataURL(e.PhotoStrip)
}

// Thumbnail returns a size x size crop of the saved strip.
func (s *Store) Thumbnail(ctx context.Context, id string, size int) (image.Image, error) {
	im, err := s.Strip(ctx, id)
	if err != nil {
		return nil, err
	}
	if size <= 0 {
		size = imagepkg.ThumbnailSize
	}
	return imagepkg.Thumbnail(im, size), nil
}

// ErrNoStrip is returned for entries saved without a rendered strip.
var ErrNoStrip = errors.New("entry has no strip")

func unixMilli(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func fromMilli(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}
