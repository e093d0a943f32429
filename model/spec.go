package model

// PitchClass identifies a note irrespective of octave, 0 = C up to 11 = B.
type PitchClass int

// Mode names a scale shape built from seven semitone offsets.
type Mode string

const (
	ModeMajor         Mode = "major"
	ModeDorian        Mode = "dorian"
	ModePhrygian      Mode = "phrygian"
	ModeLydian        Mode = "lydian"
	ModeMixolydian    Mode = "mixolydian"
	ModeMinor         Mode = "minor"
	ModeLocrian       Mode = "locrian"
	ModeHarmonicMinor Mode = "harmonic_minor"
	ModeMelodicMinor  Mode = "melodic_minor"
)

// ChordQuality tags a fixed interval pattern stacked on a chord root.
type ChordQuality string

const (
	QualityMajor          ChordQuality = "major"
	QualityMinor          ChordQuality = "minor"
	QualityDominant7      ChordQuality = "dominant7"
	QualityMajor7         ChordQuality = "major7"
	QualityMinor7         ChordQuality = "minor7"
	QualityDiminished     ChordQuality = "diminished"
	QualityDiminished7    ChordQuality = "diminished7"
	QualityHalfDiminished ChordQuality = "half_diminished"
	QualityAugmented      ChordQuality = "augmented"
	QualityAugmented7     ChordQuality = "augmented7"
	QualitySus2           ChordQuality = "sus2"
	QualitySus4           ChordQuality = "sus4"
	QualitySixth          ChordQuality = "sixth"
	QualityMinor6         ChordQuality = "minor6"
)

// ChordSpec is a chord as the request names it, before resolution.
type ChordSpec struct {
	Root    PitchClass
	Quality ChordQuality
}

// ResolvedChord is a ChordSpec expanded into its tones, ordered as stacked
// from the root.
type ResolvedChord struct {
	Root  PitchClass
	Tones []PitchClass
}

// Region holds one resolved chord for a duration in beats.
type Region struct {
	Chord ResolvedChord
	Beats float64
}

// VoicedChord realizes a resolved chord at concrete pitches, low to high.
// Root is the pitch chosen for the chord root within the voicing.
type VoicedChord struct {
	Pitches []uint8
	Root    uint8
}
