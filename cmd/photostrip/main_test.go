package main

import (
	"testing"
	"time"

	"github.com/youruser/photobooth/internal/filter"
	"github.com/youruser/photobooth/internal/strip"
	"github.com/youruser/photobooth/internal/theme"
)

func TestParseTextFlags(t *testing.T) {
	got, err := parseTextFlags([]string{
		"top:horizontal:28:#ffffff:Happy Birthday",
		"left:vertical:::Time: 10:30",
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d overlays", len(got))
	}
	want := strip.OverlaySpec{Text: "Happy Birthday", Color: "#ffffff", Size: 28, Position: "top", Orientation: "horizontal"}
	if got[0] != want {
		t.Errorf("first = %+v", got[0])
	}
	if got[1].Text != "Time: 10:30" || got[1].Size != 0 || got[1].Color != "" {
		t.Errorf("second = %+v", got[1])
	}

	for _, bad := range []string{"top:Hello", "top:horizontal:big:#fff:x"} {
		if _, err := parseTextFlags([]string{bad}); err == nil {
			t.Errorf("%q accepted", bad)
		}
	}
}

func TestOutputName(t *testing.T) {
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	req := strip.Request{Theme: theme.Theme{ID: theme.Forest}, Filter: filter.Vintage}
	if got := outputName("me@x.io", req, false, now); got != "photobooth_me_x_io_gradient3_vintage_2024-05-01T09-00-00-000Z.png" {
		t.Errorf("png name = %s", got)
	}
	if got := outputName("", req, true, now); got != "photobooth__gradient3_vintage_2024-05-01T09-00-00-000Z.jpg" {
		t.Errorf("jpeg name = %s", got)
	}
}
