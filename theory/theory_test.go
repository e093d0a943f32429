package theory

import (
	"fmt"
	"testing"

	"github.com/jackdreilly/jammer/model"
	"github.com/stretchr/testify/assert"
)

func TestParsesNaturalNotes(t *testing.T) {
	assert := assert.New(t)
	expected := map[string]model.PitchClass{
		"C": 0, "D": 2, "E": 4, "F": 5, "G": 7, "A": 9, "B": 11,
	}
	for name, want := range expected {
		got, err := ParseNote(name)
		assert.NoError(err)
		assert.Equal(want, got)
	}
}

func TestParsesAccidentals(t *testing.T) {
	assert := assert.New(t)
	cases := map[string]model.PitchClass{
		"C#": 1,
		"Db": 1,
		"f#": 6,
		"Bb": 10,
		"Cb": 11,
		"B#": 0,
		"E♭": 3,
		"G♯": 8,
	}
	for name, want := range cases {
		got, err := ParseNote(name)
		assert.NoError(err)
		assert.Equal(want, got, "note %q", name)
	}
}

func TestRejectsUnknownNotes(t *testing.T) {
	assert := assert.New(t)
	for _, name := range []string{"", "H", "C%", "#", "do"} {
		_, err := ParseNote(name)
		assert.ErrorIs(err, model.ErrInvalidSpec, "note %q", name)
	}
}

func TestEveryModeHasSevenDistinctClasses(t *testing.T) {
	assert := assert.New(t)
	for _, mode := range Modes() {
		parsed, err := ParseMode(mode)
		assert.NoError(err)
		for root := model.PitchClass(0); root < 12; root++ {
			name := fmt.Sprintf("%v %v", NoteName(root), mode)
			scale, err := ResolveScale(root, parsed)
			assert.NoError(err, name)

			seen := make(map[model.PitchClass]bool)
			for _, pc := range scale {
				seen[pc] = true
			}
			assert.Len(seen, 7, name)
		}
	}
}

func TestModeOffsetsStrictlyIncrease(t *testing.T) {
	assert := assert.New(t)
	for mode, offsets := range modeOffsets {
		for i := 1; i < len(offsets); i++ {
			assert.Greater(offsets[i], offsets[i-1], "mode %v", mode)
		}
		assert.Equal(model.PitchClass(0), offsets[0], "mode %v", mode)
		assert.Less(offsets[6], model.PitchClass(12), "mode %v", mode)
	}
}

func TestCMajorScale(t *testing.T) {
	scale, err := ResolveScale(0, model.ModeMajor)

	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal([7]model.PitchClass{0, 2, 4, 5, 7, 9, 11}, scale)
}

func TestDorianIsRotatedMajor(t *testing.T) {
	scale, err := ResolveScale(2, model.ModeDorian)

	assert := assert.New(t)
	assert.NoError(err)
	// D dorian carries the same classes as C major.
	assert.Equal([7]model.PitchClass{2, 4, 5, 7, 9, 11, 0}, scale)
}

func TestModeAliases(t *testing.T) {
	assert := assert.New(t)
	cases := map[string]model.Mode{
		"ionian":        model.ModeMajor,
		"major":         model.ModeMajor,
		"aeolian":       model.ModeMinor,
		"natural_minor": model.ModeMinor,
		"MINOR":         model.ModeMinor,
		" dorian ":      model.ModeDorian,
	}
	for tag, want := range cases {
		got, err := ParseMode(tag)
		assert.NoError(err)
		assert.Equal(want, got, "tag %q", tag)
	}

	_, err := ParseMode("klezmer")
	assert.ErrorIs(err, model.ErrInvalidSpec)
}
