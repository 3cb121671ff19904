// Package config loads toolkit settings from a TOML file: the poll
// cycle wait, audio feedback, log destination, and color pair
// overrides.
package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/gdamore/tcell/v2"
)

// Duration wraps time.Duration for TOML strings like "200ms".
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for TOML decoding.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("config: bad duration %q: %w", text, err)
	}
	*d = Duration(v)
	return nil
}

// Std returns the wrapped standard duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Pair overrides one color pair by id.
type Pair struct {
	ID int    `toml:"id"`
	Fg string `toml:"fg"`
	Bg string `toml:"bg"`
}

// Colors resolves the pair's color names. Unknown names fall back to
// the terminal default.
func (p Pair) Colors() (fg, bg tcell.Color) {
	return tcell.GetColor(p.Fg), tcell.GetColor(p.Bg)
}

// Config is the full settings file.
type Config struct {
	// PollWait bounds the per-cycle non-blocking key read.
	PollWait Duration `toml:"poll_wait"`
	// Bell enables audio key feedback where the embedding app
	// supports it.
	Bell bool `toml:"bell"`
	// LogFile receives diagnostics; empty disables logging.
	LogFile string `toml:"log_file"`
	// Pairs overrides registered color pairs.
	Pairs []Pair `toml:"pairs"`
}

// Default returns the settings used when no file is present.
func Default() Config {
	return Config{
		PollWait: Duration(200 * time.Millisecond),
		Bell:     true,
	}
}

// Load reads a TOML file over the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
