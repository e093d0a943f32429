package sequence

import (
	"fmt"

	"github.com/jackdreilly/jammer/constants"
	"github.com/jackdreilly/jammer/model"
	"github.com/jackdreilly/jammer/util"
)

// PatternHit is one stroke within a repeating percussion figure. Offset
// and Beats count beats from the figure start.
type PatternHit struct {
	Offset   float64
	Key      uint8
	Velocity uint8
	Beats    float64
}

// Pattern is a fixed percussion figure repeated for the whole song,
// independent of chord content and tempo. Hits are ordered by offset.
type Pattern struct {
	Name  string
	Beats float64
	Hits  []PatternHit
}

var patterns = map[string]Pattern{
	"straight": {
		Name:  "straight",
		Beats: 1,
		Hits: []PatternHit{
			{Offset: 0, Key: constants.KeyRideCymbal1, Velocity: 96, Beats: 0.5},
		},
	},
	// Ride-led jazz figure over four beats, skip notes on the back of
	// two and four.
	"swing": {
		Name:  "swing",
		Beats: 4,
		Hits: []PatternHit{
			{Offset: 0, Key: constants.KeyAcousticBassDrum, Velocity: 100, Beats: 0.5},
			{Offset: 0, Key: constants.KeyRideCymbal1, Velocity: 96, Beats: 0.5},
			{Offset: 1, Key: constants.KeyRideCymbal1, Velocity: 88, Beats: 2.0 / 3.0},
			{Offset: 1 + 2.0/3.0, Key: constants.KeyRideCymbal1, Velocity: 80, Beats: 1.0 / 3.0},
			{Offset: 2, Key: constants.KeyAcousticBassDrum, Velocity: 100, Beats: 0.5},
			{Offset: 2, Key: constants.KeyRideCymbal1, Velocity: 96, Beats: 0.5},
			{Offset: 2 + 2.0/3.0, Key: constants.KeyAcousticSnare, Velocity: 72, Beats: 1.0 / 3.0},
			{Offset: 3, Key: constants.KeyRideCymbal1, Velocity: 88, Beats: 2.0 / 3.0},
			{Offset: 3 + 2.0/3.0, Key: constants.KeyAcousticSnare, Velocity: 72, Beats: 1.0 / 3.0},
			{Offset: 3 + 2.0/3.0, Key: constants.KeyRideCymbal1, Velocity: 80, Beats: 1.0 / 3.0},
		},
	},
}

// LookupPattern finds a built-in percussion figure by name.
func LookupPattern(name string) (Pattern, error) {
	p, ok := patterns[name]
	if !ok {
		return Pattern{}, fmt.Errorf("%w: unknown percussion pattern %q", model.ErrInvalidSpec, name)
	}
	return p, nil
}

// PatternNames lists the built-in figures, sorted.
func PatternNames() []string {
	return util.SortedKeys(patterns)
}
