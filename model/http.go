package model

// RegionSpec is one step of a requested progression. Chord carries a
// symbol like "Am7" or "F#maj7"; alternatively Root and Quality name the
// parts separately. Beats must be positive.
type RegionSpec struct {
	Chord   string  `json:"chord,omitempty"`
	Root    string  `json:"root,omitempty"`
	Quality string  `json:"quality,omitempty"`
	Beats   float64 `json:"beats"`
}

// JamRequest is the full rendering request. Exactly one of Progression
// and Degrees must be set. Omitted fields fall back to defaults: key C,
// major mode, 120 BPM, 4/4, comping+bass tracks. Tempo is a pointer so
// an explicit zero stays distinguishable from an absent field.
type JamRequest struct {
	Key           string       `json:"key,omitempty"`
	Mode          string       `json:"mode,omitempty"`
	Tempo         *int         `json:"tempo,omitempty"`
	TimeSignature string       `json:"time_signature,omitempty"`
	Progression   []RegionSpec `json:"progression,omitempty"`
	Degrees       []int        `json:"degrees,omitempty"`
	BeatsPerChord float64      `json:"beats_per_chord,omitempty"`
	Tracks        []string     `json:"tracks,omitempty"`
	Pattern       string       `json:"pattern,omitempty"`
	Seed          *int64       `json:"seed,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}

// VocabResponse lists every tag the request vocabulary accepts.
type VocabResponse struct {
	Keys      []string `json:"keys"`
	Modes     []string `json:"modes"`
	Qualities []string `json:"qualities"`
	Patterns  []string `json:"patterns"`
	Roles     []string `json:"roles"`
}
