// Package config holds the settings of a TPI run and resolves them from
// defaults, a JSON file, environment variables and command flags.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-terrain/neighborhood"
	"github.com/cwbudde/algo-terrain/tpi"
	"github.com/cwbudde/algo-terrain/window"
)

// Errors returned by Validate and LoadFile.
var (
	ErrInvalidWindowSize = errors.New("config: invalid window size")
	ErrInvalidShape      = errors.New("config: invalid window shape")
	ErrInvalidParam      = errors.New("config: invalid window parameter")
	ErrInvalidStrategy   = errors.New("config: invalid strategy")
	ErrInvalidLogLevel   = errors.New("config: invalid log level")
	ErrInvalidLogFormat  = errors.New("config: invalid log format")
	ErrInvalidFile       = errors.New("config: invalid config file")
)

const maxFileSize = 1 * 1024 * 1024 // 1MB

// Config holds the settings of a TPI run. Zero Sigma and InnerRadius select
// the window defaults.
type Config struct {
	WindowSize   int     `json:"window_size"`
	Shape        string  `json:"shape"`
	Sigma        float64 `json:"sigma,omitempty"`
	InnerRadius  float64 `json:"inner_radius,omitempty"`
	Strategy     string  `json:"strategy"`
	OutNoData    float64 `json:"out_nodata"`
	ZeroAsNoData bool    `json:"zero_as_nodata"`
	Standardize  bool    `json:"standardize"`
	Compress     string  `json:"compress,omitempty"` // GTiff COMPRESS creation option
	LogLevel     string  `json:"log_level"`
	LogFormat    string  `json:"log_format"`
}

// Defaults returns the settings used when nothing else is given.
func Defaults() Config {
	return Config{
		WindowSize: 3,
		Shape:      window.TypeSquare.String(),
		Strategy:   neighborhood.StrategyOverlap.String(),
		OutNoData:  0,
		LogLevel:   logrus.InfoLevel.String(),
		LogFormat:  "text",
	}
}

// LoadFile overlays the JSON file at path onto base. Keys missing from the
// file keep their base value. The file must have a .json extension and be
// at most 1MB.
func LoadFile(path string, base Config) (Config, error) {
	cleanPath := filepath.Clean(path)

	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return base, fmt.Errorf("%w: must have .json extension, got %q", ErrInvalidFile, ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return base, fmt.Errorf("failed to stat config file: %w", err)
	}
	if fileInfo.Size() > maxFileSize {
		return base, fmt.Errorf("%w: too large: %d bytes (max %d)", ErrInvalidFile, fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return base, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := base
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return base, fmt.Errorf("%w: %v", ErrInvalidFile, err)
	}
	return cfg, nil
}

// Validate checks every setting and returns the first problem found.
func (c Config) Validate() error {
	if c.WindowSize <= 0 || c.WindowSize%2 == 0 {
		return fmt.Errorf("%w: %d (must be a positive odd number)", ErrInvalidWindowSize, c.WindowSize)
	}
	if _, err := window.ParseType(c.Shape); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidShape, err)
	}
	if c.Sigma < 0 {
		return fmt.Errorf("%w: sigma %v", ErrInvalidParam, c.Sigma)
	}
	if c.InnerRadius < 0 {
		return fmt.Errorf("%w: inner radius %v", ErrInvalidParam, c.InnerRadius)
	}
	if _, err := neighborhood.ParseStrategy(c.Strategy); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidStrategy, err)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidLogLevel, err)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("%w: %q (want text or json)", ErrInvalidLogFormat, c.LogFormat)
	}
	return nil
}

// Window builds the neighborhood window described by c.
func (c Config) Window() (*window.Window, error) {
	t, err := window.ParseType(c.Shape)
	if err != nil {
		return nil, err
	}
	var opts []window.Option
	if c.Sigma > 0 {
		opts = append(opts, window.WithSigma(c.Sigma))
	}
	if c.InnerRadius > 0 {
		opts = append(opts, window.WithInnerRadius(c.InnerRadius))
	}
	return window.Generate(t, c.WindowSize, opts...)
}

// TPIOptions returns the compositor options for c, forwarding the strategy
// and any extra aggregation options.
func (c Config) TPIOptions(extra ...neighborhood.Option) ([]tpi.Option, error) {
	s, err := neighborhood.ParseStrategy(c.Strategy)
	if err != nil {
		return nil, err
	}
	agg := append([]neighborhood.Option{neighborhood.WithStrategy(s)}, extra...)
	return []tpi.Option{
		tpi.WithNoData(c.OutNoData),
		tpi.WithAggregateOptions(agg...),
	}, nil
}

// CreationOptions returns the GTiff creation options implied by c.
func (c Config) CreationOptions() []string {
	if c.Compress == "" {
		return nil
	}
	return []string{"COMPRESS=" + strings.ToUpper(c.Compress)}
}
