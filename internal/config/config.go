package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/danmuck/midcrack/internal/logging"
	"github.com/danmuck/midcrack/internal/lzw"
	"github.com/danmuck/midcrack/internal/pipeline"
	"github.com/danmuck/midcrack/internal/raster"
	"github.com/pelletier/go-toml/v2"
)

var ErrConfigExists = errors.New("config: file already exists")

// File is the TOML layout read by midcrack.
type File struct {
	LogLevel        string `toml:"log_level,omitempty"`
	Orientation     string `toml:"orientation"`
	WidthPolicy     string `toml:"width_policy"`
	OutlineOnly     bool   `toml:"outline_only"`
	MaxPixels       int64  `toml:"max_pixels"`
	MetricsTextfile string `toml:"metrics_textfile,omitempty"`
}

// Defaults mirrors pipeline.DefaultConfig in file form.
func Defaults() File {
	cfg := pipeline.DefaultConfig()
	return File{
		Orientation: cfg.Raster.Orientation.String(),
		WidthPolicy: cfg.WidthPolicy.String(),
		OutlineOnly: cfg.Decode.OutlineOnly,
		MaxPixels:   cfg.Raster.MaxPixels,
	}
}

// Check reports the first value that midcrack would reject.
func (f File) Check() error {
	if level := strings.TrimSpace(f.LogLevel); level != "" {
		if _, ok := logging.ParseLevel(level); !ok {
			return fmt.Errorf("log_level: unknown level %q", level)
		}
	}
	if _, err := raster.ParseOrientation(strings.TrimSpace(f.Orientation)); err != nil {
		return fmt.Errorf("orientation: %w", err)
	}
	if _, err := lzw.ParseWidthPolicy(strings.TrimSpace(f.WidthPolicy)); err != nil {
		return fmt.Errorf("width_policy: %w", err)
	}
	if f.MaxPixels < 0 {
		return fmt.Errorf("max_pixels: must not be negative, got %d", f.MaxPixels)
	}
	return nil
}

func Template() ([]byte, error) {
	return toml.Marshal(Defaults())
}

func WriteTemplate(path string, overwrite bool) error {
	template, err := Template()
	if err != nil {
		return err
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrConfigExists, path)
		}
	}
	return os.WriteFile(path, template, 0o600)
}

// Validate decodes path strictly and checks every value.
func Validate(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	var f File
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return File{}, fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	if err := f.Check(); err != nil {
		return File{}, fmt.Errorf("config invalid (%s): %w", path, err)
	}
	return f, nil
}
