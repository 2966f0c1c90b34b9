package gallery

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"image"
	"image/color"
	"net/url"
	"strings"
	"testing"
	"time"

	imagepkg "github.com/youruser/photobooth/internal/image"
	"github.com/youruser/photobooth/internal/session"
)

var t0 = time.Date(2024, 5, 1, 10, 30, 15, 123e6, time.UTC)

func openTest(t *testing.T, maxDownloads int) *Store {
	t.Helper()
	s, err := Open(":memory:", maxDownloads)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	tick := t0
	s.now = func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}
	return s
}

func stripURL(t *testing.T) string {
	t.Helper()
	im := image.NewRGBA(image.Rect(0, 0, 60, 180))
	for i := range im.Pix {
		im.Pix[i] = 200
	}
	im.SetRGBA(30, 90, color.RGBA{255, 0, 0, 255})
	u, err := imagepkg.PNGDataURL(im)
	if err != nil {
		t.Fatal(err)
	}
	return u
}

func photos(n int) []session.CapturedPhoto {
	var out []session.CapturedPhoto
	for i := 1; i <= n; i++ {
		out = append(out, session.CapturedPhoto{DataURL: "data:image/jpeg;base64,AAAA", ShotNumber: i, Timestamp: t0.Add(time.Duration(i) * time.Second)})
	}
	return out
}

func TestSaveGetDelete(t *testing.T) {
	ctx := context.Background()
	s := openTest(t, 0)

	saved, err := s.Save(ctx, Entry{Email: "a@b.c", Layout: "3", Photos: photos(3), PhotoStrip: stripURL(t), Filter: "sepia", Theme: "gradient1", TextOverlayCount: 2})
	if err != nil {
		t.Fatal(err)
	}
	if saved.ID == "" || saved.SavedAt.IsZero() {
		t.Fatalf("saved = %+v", saved)
	}
	got, err := s.Get(ctx, saved.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Email != "a@b.c" || len(got.Photos) != 3 || got.Photos[2].ShotNumber != 3 || got.Filter != "sepia" || got.TextOverlayCount != 2 {
		t.Errorf("got = %+v", got)
	}
	if !got.SavedAt.Equal(saved.SavedAt.Truncate(time.Millisecond)) {
		t.Errorf("SavedAt = %v, want %v", got.SavedAt, saved.SavedAt)
	}
	if sum := got.Summary(); sum.PhotoCount != 3 || !sum.HasStrip {
		t.Errorf("summary = %+v", sum)
	}

	if err := s.Delete(ctx, saved.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Get(ctx, saved.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after delete: %v", err)
	}
	if err := s.Delete(ctx, saved.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete: %v", err)
	}
}

func TestListOrderFilterAndCorruptCleanup(t *testing.T) {
	ctx := context.Background()
	s := openTest(t, 0)
	strip := stripURL(t)

	in := []Entry{
		{Email: "one@x.io", Photos: photos(2), Theme: "classic", Filter: "none"},
		{Email: "broken@x.io"},
		{Email: "two@x.io", PhotoStrip: strip, Theme: "gradient2", Filter: "sepia"},
		{Email: "three@x.io", Photos: photos(4), PhotoStrip: strip, Theme: "classic", Filter: "sepia"},
	}
	for _, e := range in {
		if _, err := s.Save(ctx, e); err != nil {
			t.Fatal(err)
		}
	}

	all, err := s.List(ctx, ListOptions{})
	if err != nil {
		t.Fatal(err)
	}
	var emails []string
	for _, e := range all {
		emails = append(emails, e.Email)
	}
	if got := strings.Join(emails, ","); got != "one@x.io,two@x.io,three@x.io" {
		t.Errorf("list = %s", got)
	}

	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM entries`).Scan(&n); err != nil || n != 3 {
		t.Errorf("rows after cleanup = %d, %v", n, err)
	}

	cases := []struct {
		opt  ListOptions
		want int
	}{
		{ListOptions{Themes: []string{"classic"}}, 2},
		{ListOptions{Filters: []string{"sepia"}, Themes: []string{"classic"}}, 1},
		{ListOptions{Email: "TWO@x.io"}, 1},
		{ListOptions{FreeWords: "x.io sepia"}, 2},
		{ListOptions{Limit: 1}, 1},
	}
	for _, c := range cases {
		got, err := s.List(ctx, c.opt)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != c.want {
			t.Errorf("List(%+v) = %d entries, want %d", c.opt, len(got), c.want)
		}
	}
	if last, _ := s.List(ctx, ListOptions{Limit: 1}); last[0].Email != "three@x.io" {
		t.Errorf("Limit kept %s, want newest", last[0].Email)
	}
}

func TestStatsAndClear(t *testing.T) {
	ctx := context.Background()
	s := openTest(t, 0)
	s.Save(ctx, Entry{Photos: photos(2)})
	last, _ := s.Save(ctx, Entry{Photos: photos(3), PhotoStrip: stripURL(t)})
	s.Save(ctx, Entry{})
	s.LogDownload(ctx, Download{Type: DownloadStrip})

	st, err := s.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if st.Sessions != 2 || st.Photos != 5 || st.Strips != 1 || st.Downloads != 1 {
		t.Errorf("stats = %+v", st)
	}
	if !st.LatestAt.Equal(last.SavedAt.Truncate(time.Millisecond)) {
		t.Errorf("LatestAt = %v, want %v", st.LatestAt, last.SavedAt)
	}

	if err := s.Clear(ctx); err != nil {
		t.Fatal(err)
	}
	st, _ = s.Stats(ctx)
	if st.Sessions != 0 || !st.LatestAt.IsZero() || st.Downloads != 1 {
		t.Errorf("stats after clear = %+v", st)
	}
}

func TestStripAndThumbnail(t *testing.T) {
	ctx := context.Background()
	s := openTest(t, 0)
	withStrip, _ := s.Save(ctx, Entry{PhotoStrip: stripURL(t)})
	without, _ := s.Save(ctx, Entry{Photos: photos(1)})

	th, err := s.Thumbnail(ctx, withStrip.ID, 32)
	if err != nil {
		t.Fatal(err)
	}
	if th.Bounds() != image.Rect(0, 0, 32, 32) {
		t.Errorf("thumbnail bounds = %v", th.Bounds())
	}
	if _, err := s.Strip(ctx, without.ID); !errors.Is(err, ErrNoStrip) {
		t.Errorf("Strip without strip: %v", err)
	}
	if _, err := s.Thumbnail(ctx, "nope", 0); !errors.Is(err, ErrNotFound) {
		t.Errorf("Thumbnail unknown id: %v", err)
	}
}

func TestDownloadLogKeepsNewest(t *testing.T) {
	ctx := context.Background()
	s := openTest(t, 3)
	for i := 0; i < 5; i++ {
		err := s.LogDownload(ctx, Download{Type: DownloadStrip, Filename: string(rune('a' + i)), PhotoCount: i})
		if err != nil {
			t.Fatal(err)
		}
	}
	logs, err := s.Downloads(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(logs) != 3 || logs[0].Filename != "c" || logs[2].Filename != "e" {
		t.Fatalf("logs = %+v", logs)
	}
	if logs[0].Timestamp.IsZero() {
		t.Error("timestamp not defaulted")
	}

	var buf bytes.Buffer
	if err := WriteDownloadsCSV(&buf, logs); err != nil {
		t.Fatal(err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 4 || rows[0][0] != "timestamp" || rows[3][4] != "e" || rows[3][7] != "4" {
		t.Errorf("csv = %v", rows)
	}
}

func TestFilenames(t *testing.T) {
	got := StripFilename("jo.doe+1@mail.com", "gradient1", "sepia", t0)
	want := "photobooth_jo_doe_1_mail_com_gradient1_sepia_2024-05-01T10-30-15-123Z.png"
	if got != want {
		t.Errorf("StripFilename = %s, want %s", got, want)
	}
	if got := PhotoFilename("a@b", 2, t0); got != "photobooth_a_b_photo_2_2024-05-01T10-30-15-123Z.jpg" {
		t.Errorf("PhotoFilename = %s", got)
	}
	if got := ShareText(4, "classic"); got != "Created with Digital Photobooth - 4 photos, classic theme" {
		t.Errorf("ShareText = %s", got)
	}
}

func TestEmailShare(t *testing.T) {
	e := Entry{Email: "guest@example.com", Layout: "4", Photos: photos(4), Theme: "pattern1", Filter: "vintage", TextOverlayCount: 1, SessionDate: t0}
	sh := NewEmailShare(e, "", "https://booth.example/api/gallery/x/strip", t0)
	if sh.To != "guest@example.com" || sh.Subject != "Your Photobooth Strip - 5/1/2024" {
		t.Errorf("share = %+v", sh)
	}
	for _, want := range []string{"Photos taken: 4", "Layout: 4 shots", "Theme: pattern1", "Filter: vintage", "Session ID: N/A", "https://booth.example/"} {
		if !strings.Contains(sh.Body, want) {
			t.Errorf("body missing %q", want)
		}
	}
	u, err := url.Parse(sh.Mailto)
	if err != nil {
		t.Fatal(err)
	}
	if u.Scheme != "mailto" || u.Opaque != "guest@example.com" {
		t.Errorf("mailto = %s", sh.Mailto)
	}
	if u.Query().Get("body") != sh.Body || strings.Contains(u.RawQuery, "+") {
		t.Errorf("mailto query does not round trip: %s", u.RawQuery)
	}
}

func TestEmailShareEscapesRecipient(t *testing.T) {
	e := Entry{Email: "guest@example.com?cc=other@example.com&bcc=x@example.com", Photos: photos(1)}
	sh := NewEmailShare(e, "", "", t0)
	u, err := url.Parse(sh.Mailto)
	if err != nil {
		t.Fatal(err)
	}
	q := u.Query()
	if q.Get("cc") != "" || q.Get("bcc") != "" {
		t.Errorf("recipient leaked into query: %s", sh.Mailto)
	}
	if q.Get("subject") != sh.Subject || q.Get("body") != sh.Body {
		t.Errorf("mailto query = %v", q)
	}
	if to, err := url.PathUnescape(u.Opaque); err != nil || to != e.Email {
		t.Errorf("recipient = %q, %v", to, err)
	}
}
