package theory

import (
	"testing"

	"github.com/jackdreilly/jammer/model"
	"github.com/stretchr/testify/assert"
)

func TestResolvesCommonQualities(t *testing.T) {
	assert := assert.New(t)
	cases := []struct {
		spec  model.ChordSpec
		tones []model.PitchClass
	}{
		{model.ChordSpec{Root: 0, Quality: model.QualityMajor7}, []model.PitchClass{0, 4, 7, 11}},
		{model.ChordSpec{Root: 9, Quality: model.QualityMinor7}, []model.PitchClass{9, 0, 4, 7}},
		{model.ChordSpec{Root: 2, Quality: model.QualityMinor7}, []model.PitchClass{2, 5, 9, 0}},
		{model.ChordSpec{Root: 7, Quality: model.QualityDominant7}, []model.PitchClass{7, 11, 2, 5}},
		{model.ChordSpec{Root: 4, Quality: model.QualityMinor}, []model.PitchClass{4, 7, 11}},
		{model.ChordSpec{Root: 11, Quality: model.QualityHalfDiminished}, []model.PitchClass{11, 2, 5, 9}},
		{model.ChordSpec{Root: 5, Quality: model.QualitySus4}, []model.PitchClass{5, 10, 0}},
	}
	for _, c := range cases {
		resolved, err := ResolveChord(c.spec)
		assert.NoError(err)
		assert.Equal(c.tones, resolved.Tones)
		assert.Equal(c.spec.Root, resolved.Root)
	}
}

func TestRejectsUnknownQuality(t *testing.T) {
	_, err := ResolveChord(model.ChordSpec{Root: 0, Quality: "invalid"})

	assert := assert.New(t)
	assert.ErrorIs(err, model.ErrInvalidSpec)
}

func TestEveryQualityHasThreeOrFourTones(t *testing.T) {
	assert := assert.New(t)
	for quality, intervals := range qualityIntervals {
		assert.GreaterOrEqual(len(intervals), 3, "quality %v", quality)
		assert.LessOrEqual(len(intervals), 4, "quality %v", quality)
		assert.Equal(0, intervals[0], "quality %v", quality)
		for i := 1; i < len(intervals); i++ {
			assert.Greater(intervals[i], intervals[i-1], "quality %v", quality)
		}
	}
}

func TestParsesChordSymbols(t *testing.T) {
	assert := assert.New(t)
	cases := map[string]model.ChordSpec{
		"C":      {Root: 0, Quality: model.QualityMajor},
		"Cmaj7":  {Root: 0, Quality: model.QualityMajor7},
		"Am7":    {Root: 9, Quality: model.QualityMinor7},
		"F#m7":   {Root: 6, Quality: model.QualityMinor7},
		"Bbm":    {Root: 10, Quality: model.QualityMinor},
		"G7":     {Root: 7, Quality: model.QualityDominant7},
		"Dsus4":  {Root: 2, Quality: model.QualitySus4},
		"Eø":     {Root: 4, Quality: model.QualityHalfDiminished},
		"Bm7b5":  {Root: 11, Quality: model.QualityHalfDiminished},
		"C+":     {Root: 0, Quality: model.QualityAugmented},
		"Ebdim7": {Root: 3, Quality: model.QualityDiminished7},
		"A6":     {Root: 9, Quality: model.QualitySixth},
		"dm7":    {Root: 2, Quality: model.QualityMinor7},
	}
	for symbol, want := range cases {
		got, err := ParseChordSymbol(symbol)
		assert.NoError(err, "symbol %q", symbol)
		assert.Equal(want, got, "symbol %q", symbol)
	}
}

func TestRejectsMalformedSymbols(t *testing.T) {
	assert := assert.New(t)
	for _, symbol := range []string{"", "Hmaj7", "Cmaj9", "xyz", "C##q"} {
		_, err := ParseChordSymbol(symbol)
		assert.ErrorIs(err, model.ErrInvalidSpec, "symbol %q", symbol)
	}
}

func TestMajorScaleDegreeSevenths(t *testing.T) {
	scale, err := ResolveScale(0, model.ModeMajor)

	assert := assert.New(t)
	assert.NoError(err)

	// The classic ii V I in C.
	two, err := DegreeSeventh(scale, 2)
	assert.NoError(err)
	assert.Equal([]model.PitchClass{2, 5, 9, 0}, two.Tones)

	five, err := DegreeSeventh(scale, 5)
	assert.NoError(err)
	assert.Equal([]model.PitchClass{7, 11, 2, 5}, five.Tones)

	one, err := DegreeSeventh(scale, 1)
	assert.NoError(err)
	assert.Equal([]model.PitchClass{0, 4, 7, 11}, one.Tones)
}

func TestDegreeTriad(t *testing.T) {
	scale, err := ResolveScale(0, model.ModeMajor)

	assert := assert.New(t)
	assert.NoError(err)

	six, err := DegreeTriad(scale, 6)
	assert.NoError(err)
	assert.Equal([]model.PitchClass{9, 0, 4}, six.Tones)
	assert.Equal(model.PitchClass(9), six.Root)
}

func TestDegreeOutOfRange(t *testing.T) {
	scale, _ := ResolveScale(0, model.ModeMajor)

	assert := assert.New(t)
	for _, degree := range []int{0, 8, -1} {
		_, err := DegreeSeventh(scale, degree)
		assert.ErrorIs(err, model.ErrInvalidSpec, "degree %d", degree)
	}
}
