// Package jam turns rendering requests into standard MIDI files. It is the
// only package that sees a JamRequest; everything below it works on
// resolved types, so the pipeline is a pure function of (request, config).
package jam

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jackdreilly/jammer/config"
	"github.com/jackdreilly/jammer/constants"
	"github.com/jackdreilly/jammer/midifile"
	"github.com/jackdreilly/jammer/model"
	"github.com/jackdreilly/jammer/sequence"
	"github.com/jackdreilly/jammer/theory"
	"github.com/jackdreilly/jammer/voicing"
)

const (
	DefaultKey           = "C"
	DefaultMode          = string(model.ModeMajor)
	DefaultTempo         = 120
	DefaultTimeSignature = "4/4"
	DefaultPattern       = "swing"
	DefaultBeatsPerChord = 4.0
)

var trackOrder = []model.TrackRole{
	model.RoleComping,
	model.RoleBass,
	model.RoleLead,
	model.RolePercussion,
}

// DefaultRoles is what a request without a tracks list gets.
func DefaultRoles() []model.TrackRole {
	return []model.TrackRole{model.RoleComping, model.RoleBass}
}

// RoleNames lists the accepted track tags in playback order.
func RoleNames() []string {
	names := make([]string, len(trackOrder))
	for i, role := range trackOrder {
		names[i] = string(role)
	}
	return names
}

// Generate renders a request straight to standard MIDI file bytes.
func Generate(req model.JamRequest, cfg config.Config) ([]byte, error) {
	song, err := BuildSong(req, cfg)
	if err != nil {
		return nil, err
	}
	return midifile.Encode(song)
}

// BuildSong resolves, voices and sequences a request. Empty request fields
// fall back to the package defaults; everything else is validated and
// rejected with ErrInvalidSpec before any note is placed.
func BuildSong(req model.JamRequest, cfg config.Config) (model.Song, error) {
	tempo := DefaultTempo
	if req.Tempo != nil {
		tempo = *req.Tempo
	}
	if tempo < constants.MinTempoBPM || tempo > constants.MaxTempoBPM {
		return model.Song{}, fmt.Errorf("%w: tempo %d outside %d..%d",
			model.ErrInvalidSpec, tempo, constants.MinTempoBPM, constants.MaxTempoBPM)
	}

	timeSig, err := parseTimeSignature(req.TimeSignature)
	if err != nil {
		return model.Song{}, err
	}

	key := req.Key
	if key == "" {
		key = DefaultKey
	}
	root, err := theory.ParseNote(key)
	if err != nil {
		return model.Song{}, err
	}
	modeTag := req.Mode
	if modeTag == "" {
		modeTag = DefaultMode
	}
	mode, err := theory.ParseMode(modeTag)
	if err != nil {
		return model.Song{}, err
	}
	scale, err := theory.ResolveScale(root, mode)
	if err != nil {
		return model.Song{}, err
	}

	regions, err := resolveRegions(req, scale)
	if err != nil {
		return model.Song{}, err
	}
	roles, err := parseRoles(req.Tracks)
	if err != nil {
		return model.Song{}, err
	}
	pattern := req.Pattern
	if pattern == "" {
		pattern = DefaultPattern
	}

	chords := make([]model.ResolvedChord, len(regions))
	for i, region := range regions {
		chords[i] = region.Chord
	}
	voicings, err := voicing.Voice(chords, voicing.Options{
		ReferenceOctave: cfg.Generation.ReferenceOctave,
		SearchWindow:    cfg.Generation.SearchWindow,
		RegisterLow:     cfg.Generation.RegisterLow,
		RegisterHigh:    cfg.Generation.RegisterHigh,
	})
	if err != nil {
		return model.Song{}, err
	}

	return sequence.ExpandSong(regions, voicings, sequence.Params{
		Tempo:   tempo,
		TimeSig: timeSig,
		Roles:   roles,
		Pattern: pattern,
		Seed:    req.Seed,
	}, cfg.Generation)
}

// resolveRegions builds the progression from whichever of the two request
// shapes is present. A chord-symbol progression and a degree list are
// mutually exclusive.
func resolveRegions(req model.JamRequest, scale [7]model.PitchClass) ([]model.Region, error) {
	if len(req.Progression) > 0 && len(req.Degrees) > 0 {
		return nil, fmt.Errorf("%w: request carries both a progression and degrees", model.ErrInvalidSpec)
	}

	if len(req.Degrees) > 0 {
		beats := req.BeatsPerChord
		if beats == 0 {
			beats = DefaultBeatsPerChord
		}
		if beats < 0 {
			return nil, fmt.Errorf("%w: beats per chord %v", model.ErrInvalidSpec, beats)
		}
		regions := make([]model.Region, 0, len(req.Degrees))
		for _, degree := range req.Degrees {
			chord, err := theory.DegreeSeventh(scale, degree)
			if err != nil {
				return nil, err
			}
			regions = append(regions, model.Region{Chord: chord, Beats: beats})
		}
		return regions, nil
	}

	if len(req.Progression) == 0 {
		return nil, fmt.Errorf("%w: empty progression", model.ErrInvalidSpec)
	}
	regions := make([]model.Region, 0, len(req.Progression))
	for i, step := range req.Progression {
		spec, err := regionChordSpec(step)
		if err != nil {
			return nil, fmt.Errorf("region %d: %w", i, err)
		}
		chord, err := theory.ResolveChord(spec)
		if err != nil {
			return nil, fmt.Errorf("region %d: %w", i, err)
		}
		if step.Beats <= 0 {
			return nil, fmt.Errorf("%w: region %d lasts %v beats", model.ErrInvalidSpec, i, step.Beats)
		}
		regions = append(regions, model.Region{Chord: chord, Beats: step.Beats})
	}
	return regions, nil
}

func regionChordSpec(step model.RegionSpec) (model.ChordSpec, error) {
	if step.Chord != "" {
		if step.Root != "" || step.Quality != "" {
			return model.ChordSpec{}, fmt.Errorf("%w: chord symbol %q conflicts with root/quality fields",
				model.ErrInvalidSpec, step.Chord)
		}
		return theory.ParseChordSymbol(step.Chord)
	}
	if step.Root == "" {
		return model.ChordSpec{}, fmt.Errorf("%w: region names neither a chord symbol nor a root", model.ErrInvalidSpec)
	}
	root, err := theory.ParseNote(step.Root)
	if err != nil {
		return model.ChordSpec{}, err
	}
	quality, err := theory.ParseQuality(step.Quality)
	if err != nil {
		return model.ChordSpec{}, err
	}
	return model.ChordSpec{Root: root, Quality: quality}, nil
}

func parseRoles(tags []string) ([]model.TrackRole, error) {
	if len(tags) == 0 {
		return DefaultRoles(), nil
	}
	seen := map[model.TrackRole]bool{}
	for _, tag := range tags {
		role := model.TrackRole(strings.ToLower(strings.TrimSpace(tag)))
		switch role {
		case model.RoleComping, model.RoleBass, model.RoleLead, model.RolePercussion:
			seen[role] = true
		default:
			return nil, fmt.Errorf("%w: unknown track %q", model.ErrInvalidSpec, tag)
		}
	}
	// Duplicates collapse and the output order is fixed, so equivalent
	// requests render byte-identical files.
	roles := make([]model.TrackRole, 0, len(seen))
	for _, role := range trackOrder {
		if seen[role] {
			roles = append(roles, role)
		}
	}
	return roles, nil
}

func parseTimeSignature(tag string) (model.TimeSignature, error) {
	if tag == "" {
		tag = DefaultTimeSignature
	}
	parts := strings.Split(tag, "/")
	if len(parts) != 2 {
		return model.TimeSignature{}, fmt.Errorf("%w: time signature %q", model.ErrInvalidSpec, tag)
	}
	num, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return model.TimeSignature{}, fmt.Errorf("%w: time signature %q", model.ErrInvalidSpec, tag)
	}
	den, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return model.TimeSignature{}, fmt.Errorf("%w: time signature %q", model.ErrInvalidSpec, tag)
	}
	if num < 1 || num > constants.MaxTimeSigNumerator {
		return model.TimeSignature{}, fmt.Errorf("%w: time signature numerator %d", model.ErrInvalidSpec, num)
	}
	if den < 1 || den > constants.MaxTimeSigDenominator || den&(den-1) != 0 {
		return model.TimeSignature{}, fmt.Errorf("%w: time signature denominator %d must be a power of two", model.ErrInvalidSpec, den)
	}
	return model.TimeSignature{Numerator: uint8(num), Denominator: uint8(den)}, nil
}
