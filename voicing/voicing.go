// Package voicing realizes resolved chords at concrete pitches, keeping
// the movement between consecutive voicings as small as possible.
package voicing

import (
	"fmt"
	"math"
	"sort"

	"github.com/jackdreilly/jammer/model"
	"github.com/jackdreilly/jammer/util"
)

// Options bound the search. config.Generation carries the defaults.
type Options struct {
	ReferenceOctave int
	SearchWindow    int
	RegisterLow     uint8
	RegisterHigh    uint8
}

// Voice chooses pitches for every chord of a progression. The first chord
// is stacked in close position from the reference octave. Each later chord
// enumerates all octave placements of its tones near the previous
// voicing's centroid and keeps the set that moves least from the previous
// voicing, slot by slot. Ties fall to the lower pitch sum, then to the
// lexicographically smaller pitch list, so the result is deterministic.
// The optimization is greedy chord to chord, not global over the song.
func Voice(chords []model.ResolvedChord, opts Options) ([]model.VoicedChord, error) {
	if len(chords) == 0 {
		return nil, fmt.Errorf("%w: empty progression", model.ErrInvalidSpec)
	}
	res := make([]model.VoicedChord, len(chords))
	first, err := closePosition(chords[0], opts)
	if err != nil {
		return nil, err
	}
	res[0] = first
	for i := 1; i < len(chords); i++ {
		next, err := nextVoicing(chords[i], res[i-1], opts)
		if err != nil {
			return nil, err
		}
		res[i] = next
	}
	return res, nil
}

// closePosition stacks the tones upward from the root at the reference
// octave, then shifts whole octaves until the voicing fits the register.
func closePosition(chord model.ResolvedChord, opts Options) (model.VoicedChord, error) {
	pitches := make([]int, len(chord.Tones))
	pitches[0] = 12*(opts.ReferenceOctave+1) + int(chord.Root)
	for i := 1; i < len(pitches); i++ {
		step := (int(chord.Tones[i])-int(chord.Tones[i-1])+11)%12 + 1
		pitches[i] = pitches[i-1] + step
	}
	lo, hi := int(opts.RegisterLow), int(opts.RegisterHigh)
	for pitches[len(pitches)-1] > hi {
		shift(pitches, -12)
	}
	for pitches[0] < lo {
		shift(pitches, 12)
	}
	if pitches[len(pitches)-1] > hi {
		return model.VoicedChord{}, fmt.Errorf("%w: register %d..%d cannot hold a close voicing", model.ErrInvalidSpec, lo, hi)
	}
	return toVoiced(pitches, pitches[0]), nil
}

func nextVoicing(chord model.ResolvedChord, prev model.VoicedChord, opts Options) (model.VoicedChord, error) {
	center := centroid(prev.Pitches)
	candidates := make([][]int, len(chord.Tones))
	for i, tone := range chord.Tones {
		c := candidatePitches(tone, center, opts)
		if len(c) == 0 {
			return model.VoicedChord{}, fmt.Errorf("%w: no pitch for class %d in register %d..%d",
				model.ErrInvalidSpec, tone, opts.RegisterLow, opts.RegisterHigh)
		}
		candidates[i] = c
	}

	// Voicings stay ascending: pairing sorted pitches against the sorted
	// previous voicing is the slot assignment with minimal displacement.
	var best []int
	var bestRoot, bestCost, bestSum int
	combo := make([]int, len(candidates))
	var walk func(i int)
	walk = func(i int) {
		if i < len(candidates) {
			for _, p := range candidates[i] {
				combo[i] = p
				walk(i + 1)
			}
			return
		}
		slots := append([]int(nil), combo...)
		sort.Ints(slots)
		cost := displacement(slots, prev.Pitches)
		sum := pitchSum(slots)
		if best == nil || cost < bestCost ||
			(cost == bestCost && (sum < bestSum || (sum == bestSum && lexLess(slots, best)))) {
			best, bestRoot = slots, combo[0]
			bestCost, bestSum = cost, sum
		}
	}
	walk(0)
	return toVoiced(best, bestRoot), nil
}

// candidatePitches lists every in-register pitch of the class within the
// search window of the centroid, ascending. When the window turns up
// nothing, the in-register pitch closest to the centroid stands in, so a
// voicing always exists while the register spans a full octave.
func candidatePitches(tone model.PitchClass, center float64, opts Options) []int {
	lo, hi := int(opts.RegisterLow), int(opts.RegisterHigh)
	first := lo + ((int(tone)-lo)%12+12)%12
	var res []int
	closest, closestDist := -1, math.MaxFloat64
	for p := first; p <= hi; p += 12 {
		dist := math.Abs(float64(p) - center)
		if dist <= float64(opts.SearchWindow) {
			res = append(res, p)
		}
		if dist < closestDist {
			closest, closestDist = p, dist
		}
	}
	if len(res) == 0 && closest >= 0 {
		res = append(res, closest)
	}
	return res
}

// displacement sums the absolute slot-by-slot movement from prev. When the
// tone counts differ, extra slots pair with prev's top slot.
func displacement(pitches []int, prev []uint8) int {
	var total int
	for i, p := range pitches {
		d := p - int(prev[util.Min(i, len(prev)-1)])
		if d < 0 {
			d = -d
		}
		total += d
	}
	return total
}

func centroid(pitches []uint8) float64 {
	var sum int
	for _, p := range pitches {
		sum += int(p)
	}
	return float64(sum) / float64(len(pitches))
}

func pitchSum(pitches []int) int {
	var sum int
	for _, p := range pitches {
		sum += p
	}
	return sum
}

func lexLess(a, b []int) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

func shift(pitches []int, by int) {
	for i := range pitches {
		pitches[i] += by
	}
}

func toVoiced(pitches []int, root int) model.VoicedChord {
	res := model.VoicedChord{Pitches: make([]uint8, len(pitches)), Root: uint8(root)}
	for i, p := range pitches {
		res.Pitches[i] = uint8(p)
	}
	return res
}
