package gallery

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"
)

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9]`)

// fileTimestamp is an ISO-8601 millisecond timestamp with ':' and '.'
// replaced so it is safe in file names.
func fileTimestamp(t time.Time) string {
	s := t.UTC().Format("2006-01-02T15:04:05.000Z")
	return strings.NewReplacer(":", "-", ".", "-").Replace(s)
}

// StripFilename names a downloaded strip.
func StripFilename(email, theme, filter string, t time.Time) string {
	return fmt.Sprintf("photobooth_%s_%s_%s_%s.png", unsafeChars.ReplaceAllString(email, "_"), theme, filter, fileTimestamp(t))
}

// PhotoFilename names one downloaded source photo.
func PhotoFilename(email string, shot int, t time.Time) string {
	return fmt.Sprintf("photobooth_%s_photo_%d_%s.jpg", unsafeChars.ReplaceAllString(email, "_"), shot, fileTimestamp(t))
}

// ShareText is the caption attached to a shared strip.
func ShareText(photos int, theme string) string {
	return fmt.Sprintf("Created with Digital Photobooth - %d photos, %s theme", photos, theme)
}

// EmailShare is a ready-to-open email for a saved strip.
type EmailShare struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	Mailto  string `json:"mailto"`
}

// NewEmailShare builds the email for e. link, if set, is appended as the
// place the strip can be downloaded from.
func NewEmailShare(e Entry, dateLayout, link string, now time.Time) EmailShare {
	if dateLayout == "" {
		dateLayout = "1/2/2006"
	}
	when := e.SessionDate
	if when.IsZero() {
		when = e.SavedAt
	}
	shots := e.TotalShots
	if shots == 0 {
		shots = len(e.Photos)
	}
	id := e.SessionID
	if id == "" {
		id = "N/A"
	}

	var b strings.Builder
	b.WriteString("Hi there!\n\nYour photobooth session is complete!\n\nSESSION DETAILS:\n")
	fmt.Fprintf(&b, "Photos taken: %d\n", shots)
	fmt.Fprintf(&b, "Layout: %s shots\n", e.Layout)
	fmt.Fprintf(&b, "Theme: %s\n", e.Theme)
	fmt.Fprintf(&b, "Filter: %s\n", e.Filter)
	fmt.Fprintf(&b, "Text overlays: %d\n", e.TextOverlayCount)
	fmt.Fprintf(&b, "Date: %s at %s\n", when.Format(dateLayout), when.Format("3:04:05 PM"))
	fmt.Fprintf(&b, "Session ID: %s\n\n", id)
	b.WriteString("Your photo strip is attached! Share it with friends and family.\n\nThanks for using our photobooth!\n\n---\nGenerated by Digital Photobooth")
	if link != "" {
		b.WriteString("\n" + link)
	}

	share := EmailShare{
		To:      e.Email,
		Subject: "Your Photobooth Strip - " + now.Format(dateLayout),
		Body:    b.String(),
	}
	q := url.Values{}
	q.Set("subject", share.Subject)
	q.Set("body", share.Body)
	share.Mailto = "mailto:" + url.PathEscape(e.Email) + "?" + strings.ReplaceAll(q.Encode(), "+", "%20")
	return share
}
