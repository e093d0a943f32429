// Package config holds the tunables threaded explicitly through voicing
// and sequencing. A Config is plain data; callers never mutate one after
// loading, so the pipeline stays a pure function of (request, config).
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jackdreilly/jammer/constants"
	"github.com/jackdreilly/jammer/model"
)

// Generation bounds the voicing search and shapes sequencing.
type Generation struct {
	// ReferenceOctave anchors the first chord's root; 4 puts C at middle C.
	ReferenceOctave int `yaml:"reference_octave"`
	// SearchWindow is how far in semitones a candidate pitch may sit from
	// the previous voicing's centroid.
	SearchWindow int `yaml:"search_window"`
	// RegisterLow and RegisterHigh clamp every voiced pitch. The span must
	// cover at least an octave or some pitch classes become unreachable.
	RegisterLow  uint8 `yaml:"register_low"`
	RegisterHigh uint8 `yaml:"register_high"`
	// GapFraction shortens each note so consecutive chords never collide
	// on the same channel.
	GapFraction float64 `yaml:"gap_fraction"`

	Velocities map[model.TrackRole]uint8 `yaml:"velocities"`
	Channels   map[model.TrackRole]uint8 `yaml:"channels"`
	Programs   map[model.TrackRole]int   `yaml:"programs"`

	// Jitter amounts applied only when a request carries a seed.
	VelocityJitter   int `yaml:"velocity_jitter"`
	TimingJitterTick int `yaml:"timing_jitter_ticks"`
}

type Server struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

type Config struct {
	Generation Generation `yaml:"generation"`
	Server     Server     `yaml:"server"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Generation: Generation{
			ReferenceOctave: 4,
			SearchWindow:    12,
			RegisterLow:     36,
			RegisterHigh:    84,
			GapFraction:     0.05,
			Velocities: map[model.TrackRole]uint8{
				model.RoleComping: 88,
				model.RoleBass:    96,
				model.RoleLead:    84,
			},
			Channels: map[model.TrackRole]uint8{
				model.RoleComping:    0,
				model.RoleBass:       1,
				model.RoleLead:       2,
				model.RolePercussion: constants.DrumChannel,
			},
			Programs: map[model.TrackRole]int{
				model.RoleComping:    constants.ProgramAcousticGrandPiano,
				model.RoleBass:       constants.ProgramAcousticBass,
				model.RoleLead:       constants.ProgramElectricPiano1,
				model.RolePercussion: -1,
			},
			VelocityJitter:   6,
			TimingJitterTick: 8,
		},
		Server: Server{
			Addr:         ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
	}
}

// Load overlays a YAML file on the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config %v: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %v: %w", path, err)
	}
	if err := cfg.Generation.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the pipeline cannot honor.
func (g Generation) Validate() error {
	if g.ReferenceOctave < 0 || g.ReferenceOctave > 8 {
		return fmt.Errorf("%w: reference octave %d outside 0..8", model.ErrInvalidSpec, g.ReferenceOctave)
	}
	if g.SearchWindow < 6 || g.SearchWindow > 48 {
		return fmt.Errorf("%w: search window %d outside 6..48", model.ErrInvalidSpec, g.SearchWindow)
	}
	if g.RegisterLow < 12 || g.RegisterHigh > 120 || int(g.RegisterHigh)-int(g.RegisterLow) < 11 {
		return fmt.Errorf("%w: register %d..%d cannot hold every pitch class", model.ErrInvalidSpec, g.RegisterLow, g.RegisterHigh)
	}
	if g.GapFraction < 0 || g.GapFraction >= 0.5 {
		return fmt.Errorf("%w: gap fraction %v outside 0..0.5", model.ErrInvalidSpec, g.GapFraction)
	}
	for role, v := range g.Velocities {
		if v < 1 || v > 127 {
			return fmt.Errorf("%w: velocity %d for %v track", model.ErrInvalidSpec, v, role)
		}
	}
	for role, ch := range g.Channels {
		if ch > 15 {
			return fmt.Errorf("%w: channel %d for %v track", model.ErrInvalidSpec, ch, role)
		}
	}
	for role, p := range g.Programs {
		if p < -1 || p > 127 {
			return fmt.Errorf("%w: program %d for %v track", model.ErrInvalidSpec, p, role)
		}
	}
	if g.VelocityJitter < 0 || g.VelocityJitter > 32 {
		return fmt.Errorf("%w: velocity jitter %d outside 0..32", model.ErrInvalidSpec, g.VelocityJitter)
	}
	if g.TimingJitterTick < 0 || g.TimingJitterTick > 120 {
		return fmt.Errorf("%w: timing jitter %d outside 0..120", model.ErrInvalidSpec, g.TimingJitterTick)
	}
	return nil
}
