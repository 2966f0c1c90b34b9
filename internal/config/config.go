// Package config loads the photobooth settings from an optional YAML file
// and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/youruser/photobooth/internal/filter"
	"github.com/youruser/photobooth/internal/layout"
	"github.com/youruser/photobooth/internal/strip"
)

type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Canvas       CanvasConfig       `yaml:"canvas"`
	Filters      FiltersConfig      `yaml:"filters"`
	Render       RenderConfig       `yaml:"render"`
	Capabilities CapabilitiesConfig `yaml:"capabilities"`
	Gallery      GalleryConfig      `yaml:"gallery"`
	Branding     BrandingConfig     `yaml:"branding"`
	LogLevel     string             `yaml:"log_level"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
	// PublicURL prefixes links in QR codes and share emails.
	PublicURL string `yaml:"public_url"`
}

// CanvasConfig keeps BorderWidth and Spacing as pointers since 0 is a valid
// choice for both.
type CanvasConfig struct {
	Width       int  `yaml:"width"`
	Height      int  `yaml:"height"`
	BorderWidth *int `yaml:"border_width"`
	Spacing     *int `yaml:"spacing"`
}

type FiltersConfig struct {
	BrightFactor   float64 `yaml:"bright_factor"`
	ContrastFactor float64 `yaml:"contrast_factor"`
	ContrastMode   string  `yaml:"contrast_mode"`
}

type RenderConfig struct {
	DecodeWorkers int `yaml:"decode_workers"`
}

// CapabilitiesConfig uses pointers so an explicit false survives defaults.
type CapabilitiesConfig struct {
	Themes       *bool `yaml:"themes"`
	EmailSharing *bool `yaml:"email_sharing"`
}

type GalleryConfig struct {
	DBPath          string `yaml:"db_path"`
	MaxDownloadLogs int    `yaml:"max_download_logs"`
}

type BrandingConfig struct {
	Text       string `yaml:"text"`
	DateLayout string `yaml:"date_layout"`
}

func (c *Config) defaults() {
	if c.Server.Port <= 0 {
		c.Server.Port = 8080
	}
	def := layout.DefaultSpec()
	if c.Canvas.Width == 0 {
		c.Canvas.Width = def.Width
	}
	if c.Canvas.Height == 0 {
		c.Canvas.Height = def.Height
	}
	if c.Canvas.BorderWidth == nil {
		c.Canvas.BorderWidth = intPtr(def.BorderWidth)
	}
	if c.Canvas.Spacing == nil {
		c.Canvas.Spacing = intPtr(def.Spacing)
	}
	if c.Filters.BrightFactor <= 0 {
		c.Filters.BrightFactor = filter.DefaultBrightFactor
	}
	if c.Filters.ContrastFactor <= 0 {
		c.Filters.ContrastFactor = filter.DefaultContrastFactor
	}
	if c.Filters.ContrastMode == "" {
		c.Filters.ContrastMode = string(filter.ContrastLiteral)
	}
	if c.Render.DecodeWorkers <= 0 {
		c.Render.DecodeWorkers = 4
	}
	if c.Capabilities.Themes == nil {
		c.Capabilities.Themes = boolPtr(true)
	}
	if c.Capabilities.EmailSharing == nil {
		c.Capabilities.EmailSharing = boolPtr(true)
	}
	if c.Gallery.DBPath == "" {
		c.Gallery.DBPath = "data/photobooth.db"
	}
	if c.Gallery.MaxDownloadLogs <= 0 {
		c.Gallery.MaxDownloadLogs = 100
	}
	if c.Branding.Text == "" {
		c.Branding.Text = "Photobooth"
	}
	if c.Branding.DateLayout == "" {
		c.Branding.DateLayout = "1/2/2006"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

func boolPtr(b bool) *bool { return &b }

func intPtr(n int) *int { return &n }

// Default returns the configuration used when no file is given.
func Default() *Config {
	c := &Config{}
	c.defaults()
	return c
}

// LoadFile reads a YAML config file and fills in defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := &Config{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	c.defaults()
	return c, nil
}

// Load reads the file named by PHOTOBOOTH_CONFIG, if any, then applies
// environment overrides and validates the result.
func Load() (*Config, error) {
	c := Default()
	if path := os.Getenv("PHOTOBOOTH_CONFIG"); path != "" {
		var err error
		if c, err = LoadFile(path); err != nil {
			return nil, err
		}
	}
	if err := c.applyEnv(); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PORT: %w", err)
		}
		c.Server.Port = p
	}
	if v := os.Getenv("PHOTOBOOTH_DB"); v != "" {
		c.Gallery.DBPath = v
	}
	if v := os.Getenv("PHOTOBOOTH_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("PHOTOBOOTH_PUBLIC_URL"); v != "" {
		c.Server.PublicURL = v
	}
	return nil
}

// Validate rejects geometry that cannot hold a frame and unknown modes.
func (c *Config) Validate() error {
	cv := c.Canvas
	if cv.Width <= 0 || cv.Height <= 0 {
		return fmt.Errorf("canvas %dx%d must be positive", cv.Width, cv.Height)
	}
	if cv.BorderWidth == nil || cv.Spacing == nil {
		return errors.New("canvas border_width and spacing must be set")
	}
	bw, sp := *cv.BorderWidth, *cv.Spacing
	if bw < 0 || sp < 0 {
		return errors.New("canvas border_width and spacing must not be negative")
	}
	if 2*bw >= cv.Width || 2*bw >= cv.Height {
		return fmt.Errorf("border %d leaves no frame in a %dx%d canvas", bw, cv.Width, cv.Height)
	}
	if _, err := filter.ParseContrastMode(c.Filters.ContrastMode); err != nil {
		return err
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range", c.Server.Port)
	}
	return nil
}

// StripOptions converts the config into compositor options.
func (c *Config) StripOptions() strip.Options {
	opt := strip.DefaultOptions()
	opt.Layout = layout.Spec{
		Width:       c.Canvas.Width,
		Height:      c.Canvas.Height,
		BorderWidth: *c.Canvas.BorderWidth,
		Spacing:     *c.Canvas.Spacing,
	}
	mode, _ := filter.ParseContrastMode(c.Filters.ContrastMode)
	opt.Filters = filter.Options{
		BrightFactor:   c.Filters.BrightFactor,
		ContrastFactor: c.Filters.ContrastFactor,
		ContrastMode:   mode,
	}
	opt.DecodeWorkers = c.Render.DecodeWorkers
	opt.Capabilities = strip.Capabilities{
		Themes:       *c.Capabilities.Themes,
		EmailSharing: *c.Capabilities.EmailSharing,
	}
	opt.Branding = strip.Branding{Text: c.Branding.Text, DateLayout: c.Branding.DateLayout}
	return opt
}
