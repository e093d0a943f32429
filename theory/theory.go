// Package theory resolves musical vocabulary: note names to pitch classes,
// modes to scales and chord qualities to tone sets. Everything here is a
// pure table lookup; unknown tags fail immediately so nothing downstream
// ever sees vocabulary it cannot express.
package theory

import (
	"fmt"
	"strings"

	"github.com/jackdreilly/jammer/model"
	"github.com/jackdreilly/jammer/util"
)

// Semitone offsets of the natural note letters from C.
var naturalOffsets = map[byte]model.PitchClass{
	'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11,
}

var noteNames = []string{
	"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B",
}

var modeOffsets = map[model.Mode][7]model.PitchClass{
	model.ModeMajor:         {0, 2, 4, 5, 7, 9, 11},
	model.ModeDorian:        {0, 2, 3, 5, 7, 9, 10},
	model.ModePhrygian:      {0, 1, 3, 5, 7, 8, 10},
	model.ModeLydian:        {0, 2, 4, 6, 7, 9, 11},
	model.ModeMixolydian:    {0, 2, 4, 5, 7, 9, 10},
	model.ModeMinor:         {0, 2, 3, 5, 7, 8, 10},
	model.ModeLocrian:       {0, 1, 3, 5, 6, 8, 10},
	model.ModeHarmonicMinor: {0, 2, 3, 5, 7, 8, 11},
	model.ModeMelodicMinor:  {0, 2, 3, 5, 7, 9, 11},
}

var modeAliases = map[string]model.Mode{
	"ionian":        model.ModeMajor,
	"aeolian":       model.ModeMinor,
	"minor":         model.ModeMinor,
	"natural_minor": model.ModeMinor,
}

func init() {
	for mode := range modeOffsets {
		modeAliases[string(mode)] = mode
	}
}

// ParseNote converts a written note name like "C", "f#" or "Bb" into its
// pitch class. Unicode accidentals are accepted.
func ParseNote(name string) (model.PitchClass, error) {
	s := strings.TrimSpace(name)
	if s == "" {
		return 0, fmt.Errorf("%w: empty note name", model.ErrInvalidSpec)
	}
	letter := s[0]
	if letter >= 'a' && letter <= 'g' {
		letter -= 'a' - 'A'
	}
	pc, ok := naturalOffsets[letter]
	if !ok {
		return 0, fmt.Errorf("%w: unknown note name %q", model.ErrInvalidSpec, name)
	}
	for _, r := range s[1:] {
		switch r {
		case '#', '♯':
			pc++
		case 'b', '♭':
			pc--
		case 'n', '♮':
		default:
			return 0, fmt.Errorf("%w: unknown note name %q", model.ErrInvalidSpec, name)
		}
	}
	return ((pc % 12) + 12) % 12, nil
}

// NoteName renders a pitch class with the sharp spelling.
func NoteName(pc model.PitchClass) string {
	return noteNames[((pc%12)+12)%12]
}

// ParseMode resolves a mode tag, accepting the common synonyms
// (ionian, aeolian, natural_minor).
func ParseMode(tag string) (model.Mode, error) {
	m, ok := modeAliases[strings.ToLower(strings.TrimSpace(tag))]
	if !ok {
		return "", fmt.Errorf("%w: unknown mode %q", model.ErrInvalidSpec, tag)
	}
	return m, nil
}

// ResolveScale returns the seven pitch classes of the mode built on root.
func ResolveScale(root model.PitchClass, mode model.Mode) ([7]model.PitchClass, error) {
	offsets, ok := modeOffsets[mode]
	if !ok {
		return [7]model.PitchClass{}, fmt.Errorf("%w: unknown mode %q", model.ErrInvalidSpec, mode)
	}
	if root < 0 || root > 11 {
		return [7]model.PitchClass{}, fmt.Errorf("%w: root pitch class %d out of range", model.ErrInvalidSpec, root)
	}
	var scale [7]model.PitchClass
	for i, off := range offsets {
		scale[i] = (root + off) % 12
	}
	return scale, nil
}

// Modes lists the canonical mode names, sorted.
func Modes() []string {
	modes := util.SortedKeys(modeOffsets)
	res := make([]string, len(modes))
	for i, mode := range modes {
		res[i] = string(mode)
	}
	return res
}

// NoteNames lists the twelve pitch classes with sharp spellings.
func NoteNames() []string {
	res := make([]string, len(noteNames))
	copy(res, noteNames)
	return res
}
