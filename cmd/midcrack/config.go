package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/midcrack/internal/config"
	"github.com/danmuck/midcrack/internal/lzw"
	"github.com/danmuck/midcrack/internal/pipeline"
	"github.com/danmuck/midcrack/internal/raster"
)

type appConfig struct {
	LogLevel string
	Pipeline pipeline.Config
}

func defaultAppConfig() appConfig {
	return appConfig{Pipeline: pipeline.DefaultConfig()}
}

// loadConfig overlays the keys present in path onto the defaults.
func loadConfig(path string) (appConfig, error) {
	cfg := defaultAppConfig()

	var raw config.File
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return appConfig{}, fmt.Errorf("load midcrack config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return appConfig{}, fmt.Errorf("load midcrack config: unknown key %q", undecoded[0].String())
	}
	if err := raw.Check(); err != nil {
		return appConfig{}, fmt.Errorf("load midcrack config: %w", err)
	}

	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}
	if meta.IsDefined("orientation") {
		cfg.Pipeline.Raster.Orientation, _ = raster.ParseOrientation(strings.TrimSpace(raw.Orientation))
	}
	if meta.IsDefined("width_policy") {
		cfg.Pipeline.WidthPolicy, _ = lzw.ParseWidthPolicy(strings.TrimSpace(raw.WidthPolicy))
	}
	if meta.IsDefined("outline_only") {
		cfg.Pipeline.Decode.OutlineOnly = raw.OutlineOnly
	}
	if meta.IsDefined("max_pixels") {
		cfg.Pipeline.Raster.MaxPixels = raw.MaxPixels
	}
	if meta.IsDefined("metrics_textfile") {
		cfg.Pipeline.MetricsTextfile = strings.TrimSpace(raw.MetricsTextfile)
	}

	return cfg, nil
}
