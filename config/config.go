package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/minesim/parameter"
)

// Config is the full run configuration, decoded from TOML
type Config struct {
	World      WorldConfig      `toml:"world"`
	Simulation SimulationConfig `toml:"simulation"`
	Render     RenderConfig     `toml:"render"`
	Audio      AudioConfig      `toml:"audio"`
	Network    NetworkConfig    `toml:"network"`
	Database   DatabaseConfig   `toml:"database"`
}

type WorldConfig struct {
	Rows       int    `toml:"rows"`
	Cols       int    `toml:"cols"`
	File       string `toml:"file"`
	Images     string `toml:"images"`
	Background string `toml:"background"`

	// Strict aborts loading on unrecognized world lines
	Strict bool `toml:"strict"`
}

type SimulationConfig struct {
	Seed  uint64  `toml:"seed"`
	Speed float64 `toml:"speed"`

	// Step is the wall-clock interval between drains
	Step Duration `toml:"step"`

	// Duration stops a headless run at this virtual time; zero runs until interrupted
	Duration Duration `toml:"duration"`

	// Check verifies world invariants after every drain
	Check bool `toml:"check"`
}

type RenderConfig struct {
	Frame      Duration `toml:"frame"`
	StatusLine bool     `toml:"status_line"`
}

type AudioConfig struct {
	Enabled bool    `toml:"enabled"`
	Volume  float64 `toml:"volume"`
}

type NetworkConfig struct {
	// Listen is the spectator address, empty disables the websocket server
	Listen   string   `toml:"listen"`
	Interval Duration `toml:"interval"`
}

type DatabaseConfig struct {
	// DSN of a PostgreSQL database holding world_lines; empty uses World.File
	DSN   string `toml:"dsn"`
	World string `toml:"world"`
}

// Duration wraps time.Duration for TOML strings like "250ms"
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the configuration used when no file is given
func Default() Config {
	return Config{
		World: WorldConfig{
			Rows:       parameter.DefaultWorldRows,
			Cols:       parameter.DefaultWorldCols,
			File:       "assets/world.txt",
			Images:     "assets/images.txt",
			Background: parameter.DefaultBackgroundKey,
		},
		Simulation: SimulationConfig{
			Seed:  1,
			Speed: parameter.DefaultSpeed,
			Step:  Duration{parameter.SimulationStepInterval},
		},
		Render: RenderConfig{
			Frame:      Duration{parameter.FrameUpdateInterval},
			StatusLine: true,
		},
		Audio: AudioConfig{
			Volume: 0.3,
		},
		Network: NetworkConfig{
			Interval: Duration{250 * time.Millisecond},
		},
		Database: DatabaseConfig{
			World: "default",
		},
	}
}

// Load reads path over the defaults
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes TOML from r over the defaults; unknown keys are an error
func Parse(r io.Reader) (Config, error) {
	cfg := Default()
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every out-of-range value
func (c Config) Validate() error {
	var errs []error
	if c.World.Rows <= 0 || c.World.Cols <= 0 {
		errs = append(errs, fmt.Errorf("world size %dx%d must be positive", c.World.Rows, c.World.Cols))
	}
	if c.Simulation.Speed < 0 {
		errs = append(errs, fmt.Errorf("speed %v is negative", c.Simulation.Speed))
	}
	if c.Simulation.Step.Duration <= 0 {
		errs = append(errs, fmt.Errorf("step %v must be positive", c.Simulation.Step.Duration))
	}
	if c.Simulation.Duration.Duration < 0 {
		errs = append(errs, fmt.Errorf("duration %v is negative", c.Simulation.Duration.Duration))
	}
	if c.Render.Frame.Duration <= 0 {
		errs = append(errs, fmt.Errorf("frame interval %v must be positive", c.Render.Frame.Duration))
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		errs = append(errs, fmt.Errorf("volume %v outside [0,1]", c.Audio.Volume))
	}
	if c.Network.Interval.Duration <= 0 {
		errs = append(errs, fmt.Errorf("network interval %v must be positive", c.Network.Interval.Duration))
	}
	return errors.Join(errs...)
}

// Encode writes c as TOML
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
