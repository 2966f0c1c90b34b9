package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/youruser/photobooth/internal/config"
	"github.com/youruser/photobooth/internal/gallery"
	imagepkg "github.com/youruser/photobooth/internal/image"
	"github.com/youruser/photobooth/internal/logging"
	"github.com/youruser/photobooth/internal/session"
	"github.com/youruser/photobooth/internal/strip"
	"github.com/youruser/photobooth/internal/util"
)

// CLI flags
var (
	themeFlag   string
	colorFlag   string
	filterFlag  string
	textFlags   []string
	outFlag     string
	jpegFlag    bool
	emailFlag   string
	sessionFlag string
	dirFlag     string
	qualityFlag int
)

var rootCmd = &cobra.Command{
	Use:   "photostrip",
	Short: "Compose photobooth strips from photos",
}

var renderCmd = &cobra.Command{
	Use:   "render [photos...]",
	Short: "Render a photo strip",
	Long: `Render composes photos into a 600x1800 strip with a themed border, an
optional color filter and text overlays.

Photos come from positional arguments, a directory (--dir) or a saved
capture session (--session, a JSON file or http(s) URL).

Examples:
  photostrip render a.jpg b.jpg c.jpg --theme gradient2 --filter sepia
  photostrip render --dir ./shots --text top:horizontal:28:#ffffff:Happy Birthday
  photostrip render --session session.json --theme custom --color #ffd6e0 --jpeg`,
	RunE: runRender,
}

func init() {
	f := renderCmd.Flags()
	f.StringVarP(&themeFlag, "theme", "t", "classic", "Background theme (classic, gradient1-3, pattern1-2, custom)")
	f.StringVar(&colorFlag, "color", "", "Custom theme color as #rrggbb")
	f.StringVarP(&filterFlag, "filter", "f", "none", "Photo filter (none, sepia, grayscale, vintage, bright, contrast)")
	f.StringArrayVar(&textFlags, "text", nil, "Text overlay as position:orientation:size:#color:text (repeatable)")
	f.StringVarP(&outFlag, "out", "o", "", "Output file (default: generated photobooth_ name)")
	f.BoolVar(&jpegFlag, "jpeg", false, "Write JPEG instead of PNG")
	f.IntVar(&qualityFlag, "quality", imagepkg.DefaultJPEGQuality, "JPEG quality")
	f.StringVar(&emailFlag, "email", "", "Guest email, used in the output name")
	f.StringVar(&sessionFlag, "session", "", "Session JSON file or URL to render")
	f.StringVarP(&dirFlag, "dir", "d", "", "Directory of photos to render")
	rootCmd.AddCommand(renderCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadSession(ctx context.Context, args []string) (*session.Session, error) {
	switch {
	case sessionFlag != "":
		return session.Load(ctx, sessionFlag)
	case dirFlag != "":
		paths, err := session.ImagesInDir(dirFlag)
		if err != nil {
			return nil, err
		}
		return session.FromFiles(emailFlag, append(paths, args...))
	default:
		return session.FromFiles(emailFlag, args)
	}
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logging.Init(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	s, err := loadSession(ctx, args)
	if err != nil {
		return err
	}
	overlays, err := parseTextFlags(textFlags)
	if err != nil {
		return err
	}
	req, err := strip.NewRequest(strip.RequestSpec{
		Photos:      s.Photos,
		Theme:       themeFlag,
		CustomColor: colorFlag,
		Filter:      filterFlag,
		Overlays:    overlays,
	})
	if err != nil {
		return err
	}

	out, err := strip.New(cfg.StripOptions()).Render(ctx, req)
	if err != nil {
		return err
	}
	for _, f := range out.Failures {
		log.Warn().Err(f.Err).Int("shot", f.ShotNumber).Msg("photo left blank")
	}

	path := outFlag
	if path == "" {
		path = outputName(s.Email, req, jpegFlag, time.Now())
	}
	if err := util.EnsureParentDir(path); err != nil {
		return err
	}
	fp, err := os.Create(path)
	if err != nil {
		return err
	}
	if jpegFlag {
		err = out.EncodeJPEG(fp, qualityFlag)
	} else {
		err = out.EncodePNG(fp)
	}
	if cerr := fp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	log.Info().
		Str("out", path).
		Int("photos", out.PhotoCount).
		Int("failed", len(out.Failures)).
		Str("theme", out.Theme.String()).
		Str("filter", string(out.Filter)).
		Msg("strip written")
	return nil
}

func outputName(email string, req strip.Request, jpeg bool, now time.Time) string {
	name := gallery.StripFilename(email, string(req.Theme.ID), string(req.Filter), now)
	if jpeg {
		name = strings.TrimSuffix(name, filepath.Ext(name)) + ".jpg"
	}
	return name
}

// parseTextFlags reads position:orientation:size:#color:text values. Empty
// fields take the overlay defaults; the text itself may contain colons.
func parseTextFlags(values []string) ([]strip.OverlaySpec, error) {
	var out []strip.OverlaySpec
	for _, v := range values {
		parts := strings.SplitN(v, ":", 5)
		if len(parts) != 5 {
			return nil, fmt.Errorf("--text %q: want position:orientation:size:#color:text", v)
		}
		o := strip.OverlaySpec{
			Position:    parts[0],
			Orientation: parts[1],
			Color:       parts[3],
			Text:        parts[4],
		}
		if parts[2] != "" {
			n, err := strconv.Atoi(parts[2])
			if err != nil {
				return nil, fmt.Errorf("--text %q: bad size %q", v, parts[2])
			}
			o.Size = n
		}
		out = append(out, o)
	}
	return out, nil
}
