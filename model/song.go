package model

// TrackRole selects the rhythmic expansion applied to a track.
type TrackRole string

const (
	RoleComping    TrackRole = "comping"
	RoleBass       TrackRole = "bass"
	RoleLead       TrackRole = "lead"
	RolePercussion TrackRole = "percussion"
)

// Note is one sounded pitch. Times are in ticks.
type Note struct {
	Key      uint8
	Velocity uint8
	Start    uint32
	Duration uint32
}

// Track owns an ordered run of notes on a single channel. Note starts are
// non-decreasing. Program < 0 means no program change is emitted.
type Track struct {
	Role    TrackRole
	Name    string
	Channel uint8
	Program int
	Notes   []Note
}

// TimeSignature as written in the meta event. The denominator is a
// power of two.
type TimeSignature struct {
	Numerator   uint8
	Denominator uint8
}

// Song is a fully sequenced performance ready for encoding. TotalTicks is
// the musical length; every track's end-of-track marker lands there.
type Song struct {
	Tempo      int
	TimeSig    TimeSignature
	Resolution uint16
	TotalTicks uint32
	Tracks     []Track
}
