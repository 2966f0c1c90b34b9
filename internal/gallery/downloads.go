package gallery

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

// LogDownload appends d and drops the oldest records beyond the limit.
func (s *Store) LogDownload(ctx context.Context, d Download) error {
	if d.Timestamp.IsZero() {
		d.Timestamp = s.now().UTC()
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("log download: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `INSERT INTO downloads
		(ts, session_id, email, type, filename, theme, filter, photo_count, text_overlays)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.Timestamp.UnixMilli(), d.SessionID, d.Email, d.Type, d.Filename, d.Theme, d.Filter, d.PhotoCount, d.TextOverlays)
	if err != nil {
		return fmt.Errorf("log download: %w", err)
	}
	_, err = tx.ExecContext(ctx, `DELETE FROM downloads WHERE seq NOT IN
		(SELECT seq FROM downloads ORDER BY seq DESC LIMIT ?)`, s.maxDownloads)
	if err != nil {
		return fmt.Errorf("trim download log: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("log download: %w", err)
	}
	log.Debug().Str("type", d.Type).Str("filename", d.Filename).Msg("download logged")
	return nil
}

// Downloads returns the kept log, oldest first.
func (s *Store) Downloads(ctx context.Context) ([]Download, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT ts, session_id, email, type, filename, theme, filter, photo_count, text_overlays
		FROM downloads ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list downloads: %w", err)
	}
	defer rows.Close()

	var out []Download
	for rows.Next() {
		var (
			d  Download
			ts int64
		)
		if err := rows.Scan(&ts, &d.SessionID, &d.Email, &d.Type, &d.Filename, &d.Theme, &d.Filter, &d.PhotoCount, &d.TextOverlays); err != nil {
			return nil, err
		}
		d.Timestamp = time.UnixMilli(ts).UTC()
		out = append(out, d)
	}
	return out, rows.Err()
}

var downloadHeader = []string{"timestamp", "sessionId", "email", "type", "filename", "theme", "filter", "photoCount", "textOverlays"}

// WriteDownloadsCSV writes logs with a header row.
func WriteDownloadsCSV(w io.Writer, logs []Download) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(downloadHeader); err != nil {
		return err
	}
	for _, d := range logs {
		row := []string{
			d.Timestamp.Format(time.RFC3339Nano),
			d.SessionID,
			d.Email,
			d.Type,
			d.Filename,
			d.Theme,
			d.Filter,
			strconv.Itoa(d.PhotoCount),
			strconv.Itoa(d.TextOverlays),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
