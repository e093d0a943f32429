package constants

// TicksPerQuarter is the tick resolution of every song we produce.
const TicksPerQuarter = 480

const MicrosPerMinute = 60_000_000

// Tempo bounds in beats per minute. The tempo meta event stores
// microseconds per quarter in 3 bytes, so anything below 4 BPM
// cannot be represented.
const (
	MinTempoBPM = 4
	MaxTempoBPM = 1000
)

// Time signature bounds. Denominators must be a power of two.
const (
	MaxTimeSigNumerator   = 32
	MaxTimeSigDenominator = 32
)

// DrumChannel is the fixed General MIDI percussion channel (0-based).
const DrumChannel = 9

// General MIDI program numbers.
const (
	ProgramAcousticGrandPiano = 0
	ProgramElectricPiano1     = 4
	ProgramAcousticBass       = 32
)

// General MIDI percussion keys.
const (
	KeyAcousticBassDrum = 35
	KeyAcousticSnare    = 38
	KeyRideCymbal1      = 51
)
