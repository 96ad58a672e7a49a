// SPDX-License-Identifier: EPL-2.0

// Package config layers defaults, a JSON file and BEATSWAP_* environment
// variables into the settings shared by the CLI and the HTTP server.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/mitchellh/go-homedir"

	"github.com/ik5/beatswap/assemble"
	"github.com/ik5/beatswap/beatmap"
)

// EnvPrefix starts every environment variable read by ApplyEnv.
const EnvPrefix = "BEATSWAP_"

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	LogLevel  string `json:"log_level"`
	CacheDir  string `json:"cache_dir"`
	Workers   int    `json:"workers"`
	Smoothing int    `json:"smoothing"`
	Mode      string `json:"mode"`
	Tracker   string `json:"tracker"`
	Split     int    `json:"split"`
	BitDepth  int    `json:"bit_depth"`
	Port      int    `json:"port"`
}

func Default() Config {
	return Config{
		LogLevel:  "info",
		CacheDir:  beatmap.DefaultCacheDir,
		Smoothing: assemble.DefaultSmoothing,
		Mode:      assemble.Replace.String(),
		Tracker:   "flux",
		Split:     16,
		BitDepth:  16,
		Port:      8080,
	}
}

// Load returns the defaults overlaid with the JSON file at path (skipped
// when path is empty) and then the environment. The result is validated.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		p, err := homedir.Expand(path)
		if err != nil {
			return cfg, fmt.Errorf("expand config path: %w", err)
		}

		f, err := os.Open(p)
		if err != nil {
			return cfg, fmt.Errorf("open config: %w", err)
		}
		defer f.Close()

		if err := cfg.Decode(f); err != nil {
			return cfg, err
		}
	}

	cfg.ApplyEnv(os.Getenv)

	return cfg, cfg.Validate()
}

// Decode overlays the JSON object in r. Missing keys keep their value.
func (c *Config) Decode(r io.Reader) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}

	return nil
}

// ApplyEnv overlays BEATSWAP_* variables. Values that do not parse are
// ignored.
func (c *Config) ApplyEnv(getenv func(string) string) {
	str := func(name string, dst *string) {
		if v := getenv(EnvPrefix + name); v != "" {
			*dst = v
		}
	}
	num := func(name string, dst *int) {
		if v := getenv(EnvPrefix + name); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}

	str("LOG_LEVEL", &c.LogLevel)
	str("CACHE_DIR", &c.CacheDir)
	str("MODE", &c.Mode)
	str("TRACKER", &c.Tracker)
	num("WORKERS", &c.Workers)
	num("SMOOTHING", &c.Smoothing)
	num("SPLIT", &c.Split)
	num("BIT_DEPTH", &c.BitDepth)
	num("PORT", &c.Port)
}

func (c Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}
	if _, ok := assemble.ParseSmoothingMode(c.Mode); !ok {
		return fmt.Errorf("%w: mode %q", ErrInvalid, c.Mode)
	}

	switch {
	case c.Smoothing < 0:
		return fmt.Errorf("%w: smoothing %d", ErrInvalid, c.Smoothing)
	case c.Split <= 0:
		return fmt.Errorf("%w: split %d", ErrInvalid, c.Split)
	case c.BitDepth != 16 && c.BitDepth != 24 && c.BitDepth != 32:
		return fmt.Errorf("%w: bit depth %d", ErrInvalid, c.BitDepth)
	case c.Port < 0 || c.Port > 65535:
		return fmt.Errorf("%w: port %d", ErrInvalid, c.Port)
	}

	return nil
}

// Level maps LogLevel (debug, info, warn, error) to a slog level.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: log level %q", ErrInvalid, c.LogLevel)
	}

	return l, nil
}

// Logger writes text records at the configured level to w.
func (c Config) Logger(w io.Writer) *slog.Logger {
	l, err := c.Level()
	if err != nil {
		l = slog.LevelInfo
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l}))
}

// SmoothingMode returns the parsed Mode, falling back to Replace.
func (c Config) SmoothingMode() assemble.SmoothingMode {
	m, _ := assemble.ParseSmoothingMode(c.Mode)
	return m
}

// AssembleOptions builds assembler options from Smoothing, Mode and
// Workers.
func (c Config) AssembleOptions(log *slog.Logger) assemble.Options {
	return assemble.Options{
		Smoothing: c.Smoothing,
		Mode:      c.SmoothingMode(),
		Workers:   c.Workers,
		Logger:    log,
	}
}
