package theory

import (
	"fmt"
	"strings"

	"github.com/jackdreilly/jammer/model"
	"github.com/jackdreilly/jammer/util"
)

// Interval patterns per quality, in semitones from the root. The table is
// the single source of truth: adding a quality is an entry here plus an
// alias below, never a new code path.
var qualityIntervals = map[model.ChordQuality][]int{
	model.QualityMajor:          {0, 4, 7},
	model.QualityMinor:          {0, 3, 7},
	model.QualityDominant7:      {0, 4, 7, 10},
	model.QualityMajor7:         {0, 4, 7, 11},
	model.QualityMinor7:         {0, 3, 7, 10},
	model.QualityDiminished:     {0, 3, 6},
	model.QualityDiminished7:    {0, 3, 6, 9},
	model.QualityHalfDiminished: {0, 3, 6, 10},
	model.QualityAugmented:      {0, 4, 8},
	model.QualityAugmented7:     {0, 4, 8, 10},
	model.QualitySus2:           {0, 2, 7},
	model.QualitySus4:           {0, 5, 7},
	model.QualitySixth:          {0, 4, 7, 9},
	model.QualityMinor6:         {0, 3, 7, 9},
}

// Written spellings accepted for each quality. Case matters: "M7" is a
// major seventh, "m7" a minor seventh.
var qualityAliases = map[string]model.ChordQuality{
	"":       model.QualityMajor,
	"maj":    model.QualityMajor,
	"M":      model.QualityMajor,
	"m":      model.QualityMinor,
	"min":    model.QualityMinor,
	"-":      model.QualityMinor,
	"7":      model.QualityDominant7,
	"dom7":   model.QualityDominant7,
	"maj7":   model.QualityMajor7,
	"M7":     model.QualityMajor7,
	"Δ":      model.QualityMajor7,
	"Δ7":     model.QualityMajor7,
	"m7":     model.QualityMinor7,
	"min7":   model.QualityMinor7,
	"-7":     model.QualityMinor7,
	"dim":    model.QualityDiminished,
	"°":      model.QualityDiminished,
	"o":      model.QualityDiminished,
	"dim7":   model.QualityDiminished7,
	"°7":     model.QualityDiminished7,
	"o7":     model.QualityDiminished7,
	"m7b5":   model.QualityHalfDiminished,
	"min7b5": model.QualityHalfDiminished,
	"ø":      model.QualityHalfDiminished,
	"ø7":     model.QualityHalfDiminished,
	"aug":    model.QualityAugmented,
	"+":      model.QualityAugmented,
	"aug7":   model.QualityAugmented7,
	"+7":     model.QualityAugmented7,
	"7#5":    model.QualityAugmented7,
	"sus":    model.QualitySus4,
	"sus4":   model.QualitySus4,
	"sus2":   model.QualitySus2,
	"6":      model.QualitySixth,
	"maj6":   model.QualitySixth,
	"m6":     model.QualityMinor6,
	"min6":   model.QualityMinor6,
}

func init() {
	for quality := range qualityIntervals {
		qualityAliases[string(quality)] = quality
	}
}

// ResolveChord expands a chord spec into its ordered tone set.
func ResolveChord(spec model.ChordSpec) (model.ResolvedChord, error) {
	intervals, ok := qualityIntervals[spec.Quality]
	if !ok {
		return model.ResolvedChord{}, fmt.Errorf("%w: unknown chord quality %q", model.ErrInvalidSpec, spec.Quality)
	}
	if spec.Root < 0 || spec.Root > 11 {
		return model.ResolvedChord{}, fmt.Errorf("%w: root pitch class %d out of range", model.ErrInvalidSpec, spec.Root)
	}
	tones := make([]model.PitchClass, len(intervals))
	for i, interval := range intervals {
		tones[i] = (spec.Root + model.PitchClass(interval)) % 12
	}
	return model.ResolvedChord{Root: spec.Root, Tones: tones}, nil
}

// ParseQuality resolves a written quality tag like "m7" or "maj".
func ParseQuality(tag string) (model.ChordQuality, error) {
	q, ok := qualityAliases[strings.TrimSpace(tag)]
	if !ok {
		return "", fmt.Errorf("%w: unknown chord quality %q", model.ErrInvalidSpec, tag)
	}
	return q, nil
}

// ParseChordSymbol splits a symbol like "F#m7" into root and quality. The
// root is the leading letter plus any accidentals; the remainder must be a
// known quality spelling.
func ParseChordSymbol(symbol string) (model.ChordSpec, error) {
	s := strings.TrimSpace(symbol)
	if s == "" {
		return model.ChordSpec{}, fmt.Errorf("%w: empty chord symbol", model.ErrInvalidSpec)
	}
	split := 1
	for _, r := range s[1:] {
		if r != '#' && r != 'b' && r != '♯' && r != '♭' {
			break
		}
		split += len(string(r))
	}
	root, err := ParseNote(s[:split])
	if err != nil {
		return model.ChordSpec{}, fmt.Errorf("chord symbol %q: %w", symbol, err)
	}
	quality, err := ParseQuality(s[split:])
	if err != nil {
		return model.ChordSpec{}, fmt.Errorf("chord symbol %q: %w", symbol, err)
	}
	return model.ChordSpec{Root: root, Quality: quality}, nil
}

// DegreeTriad stacks two thirds on the given 1-based scale degree.
func DegreeTriad(scale [7]model.PitchClass, degree int) (model.ResolvedChord, error) {
	return stackThirds(scale, degree, 3)
}

// DegreeSeventh stacks three thirds on the given 1-based scale degree.
func DegreeSeventh(scale [7]model.PitchClass, degree int) (model.ResolvedChord, error) {
	return stackThirds(scale, degree, 4)
}

func stackThirds(scale [7]model.PitchClass, degree, count int) (model.ResolvedChord, error) {
	if degree < 1 || degree > 7 {
		return model.ResolvedChord{}, fmt.Errorf("%w: scale degree %d outside 1..7", model.ErrInvalidSpec, degree)
	}
	tones := make([]model.PitchClass, count)
	for i := range tones {
		tones[i] = scale[(degree-1+2*i)%7]
	}
	return model.ResolvedChord{Root: tones[0], Tones: tones}, nil
}

// Qualities lists the canonical quality names, sorted.
func Qualities() []string {
	qualities := util.SortedKeys(qualityIntervals)
	res := make([]string, len(qualities))
	for i, quality := range qualities {
		res[i] = string(quality)
	}
	return res
}
