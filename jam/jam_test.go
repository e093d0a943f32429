package jam

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/jackdreilly/jammer/config"
	"github.com/jackdreilly/jammer/midifile"
	"github.com/jackdreilly/jammer/model"
)

func turnaroundRequest() model.JamRequest {
	return model.JamRequest{
		Key:  "C",
		Mode: "major",
		Progression: []model.RegionSpec{
			{Chord: "Cmaj7", Beats: 4},
			{Chord: "Am7", Beats: 4},
			{Chord: "Dm7", Beats: 4},
			{Chord: "G7", Beats: 4},
		},
		Tracks: []string{"comping", "bass"},
	}
}

func tempoOf(bpm int) *int {
	return &bpm
}

type heardNote struct {
	tick uint32
	key  uint8
}

func noteOns(t *testing.T, track smf.Track) []heardNote {
	t.Helper()
	var abs uint32
	var ons []heardNote
	for _, ev := range track {
		abs += ev.Delta
		var ch, key, vel uint8
		if ev.Message.GetNoteOn(&ch, &key, &vel) {
			ons = append(ons, heardNote{abs, key})
		}
	}
	return ons
}

func TestTurnaroundRendersTwoTracks(t *testing.T) {
	data, err := Generate(turnaroundRequest(), config.Default())
	require.NoError(t, err)

	s, err := midifile.Parse(data)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal(smf.MetricTicks(480), s.TimeFormat)
	require.Len(t, s.Tracks, 2)

	comping := noteOns(t, s.Tracks[0])
	require.Len(t, comping, 16)
	wantVoicings := [][]uint8{
		{60, 64, 67, 71},
		{60, 64, 67, 69},
		{60, 62, 65, 69},
		{59, 62, 65, 67},
	}
	for i, note := range comping {
		region := i / 4
		assert.Equal(uint32(region)*1920, note.tick, "comping note %d", i)
		assert.Equal(wantVoicings[region][i%4], note.key, "comping note %d", i)
	}

	bass := noteOns(t, s.Tracks[1])
	require.Len(t, bass, 16)
	wantRoots := []uint8{48, 57, 50, 55}
	for i, note := range bass {
		assert.Equal(uint32(i)*480, note.tick, "bass hit %d", i)
		assert.Equal(wantRoots[i/4], note.key, "bass hit %d", i)
	}
}

func TestTempoAndMeterLandInTheFile(t *testing.T) {
	req := turnaroundRequest()
	req.Tempo = tempoOf(180)
	req.TimeSignature = "3/4"
	data, err := Generate(req, config.Default())
	require.NoError(t, err)

	s, err := midifile.Parse(data)
	require.NoError(t, err)

	assert := assert.New(t)
	foundTempo, foundMeter := false, false
	for _, ev := range s.Tracks[0] {
		var bpm float64
		var num, den, cpc, dsq uint8
		if ev.Message.GetMetaTempo(&bpm) {
			foundTempo = true
			assert.InDelta(180.0, bpm, 0.001)
		}
		if ev.Message.GetMetaTimeSig(&num, &den, &cpc, &dsq) {
			foundMeter = true
			assert.Equal(uint8(3), num)
			assert.Equal(uint8(4), den)
		}
	}
	assert.True(foundTempo)
	assert.True(foundMeter)
}

func TestDefaultsFillEveryGap(t *testing.T) {
	req := model.JamRequest{Progression: []model.RegionSpec{{Chord: "C", Beats: 2}}}
	data, err := Generate(req, config.Default())
	require.NoError(t, err)

	s, err := midifile.Parse(data)
	require.NoError(t, err)
	// Default tracks are comping and bass.
	assert.Len(t, s.Tracks, 2)
}

func TestRootAndQualityFieldsWork(t *testing.T) {
	req := model.JamRequest{
		Progression: []model.RegionSpec{
			{Root: "Eb", Quality: "m7", Beats: 4},
		},
		Tracks: []string{"bass"},
	}
	data, err := Generate(req, config.Default())
	require.NoError(t, err)

	s, err := midifile.Parse(data)
	require.NoError(t, err)
	for _, note := range noteOns(t, s.Tracks[0]) {
		assert.Equal(t, uint8(3), note.key%12)
	}
}

func TestDegreesWalkTheScale(t *testing.T) {
	req := model.JamRequest{
		Key:     "C",
		Mode:    "major",
		Degrees: []int{2, 5, 1},
		Tracks:  []string{"bass"},
	}
	data, err := Generate(req, config.Default())
	require.NoError(t, err)

	s, err := midifile.Parse(data)
	require.NoError(t, err)

	bass := noteOns(t, s.Tracks[0])
	require.Len(t, bass, 12)
	wantClasses := []uint8{2, 7, 0} // D, G, C
	for i, note := range bass {
		assert.Equal(t, wantClasses[i/4], note.key%12, "hit %d", i)
	}
}

func TestBeatsPerChordStretchesDegrees(t *testing.T) {
	req := model.JamRequest{
		Degrees:       []int{2, 5, 1},
		BeatsPerChord: 2,
		Tracks:        []string{"bass"},
	}
	data, err := Generate(req, config.Default())
	require.NoError(t, err)

	s, err := midifile.Parse(data)
	require.NoError(t, err)
	assert.Len(t, noteOns(t, s.Tracks[0]), 6)
}

func TestPercussionTrackHasNoProgramChange(t *testing.T) {
	req := turnaroundRequest()
	req.Tracks = []string{"percussion"}
	data, err := Generate(req, config.Default())
	require.NoError(t, err)

	s, err := midifile.Parse(data)
	require.NoError(t, err)
	require.Len(t, s.Tracks, 1)

	assert := assert.New(t)
	sawNote := false
	for _, ev := range s.Tracks[0] {
		var ch, key, vel, prog uint8
		assert.False(ev.Message.GetProgramChange(&ch, &prog), "drum track carries no program change")
		if ev.Message.GetNoteOn(&ch, &key, &vel) {
			sawNote = true
			assert.Equal(uint8(9), ch)
		}
	}
	assert.True(sawNote)
}

func TestTrackTagsFoldToCanonicalOrder(t *testing.T) {
	req := turnaroundRequest()
	req.Tracks = []string{"BASS", "comping", "bass"}
	first, err := Generate(req, config.Default())
	require.NoError(t, err)

	second, err := Generate(turnaroundRequest(), config.Default())
	require.NoError(t, err)
	assert.Equal(t, second, first)
}

func TestSameRequestRendersIdenticalBytes(t *testing.T) {
	first, err := Generate(turnaroundRequest(), config.Default())
	require.NoError(t, err)
	second, err := Generate(turnaroundRequest(), config.Default())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSeededRequestsReproduce(t *testing.T) {
	seed := int64(42)
	req := turnaroundRequest()
	req.Seed = &seed

	first, err := Generate(req, config.Default())
	require.NoError(t, err)
	second, err := Generate(req, config.Default())
	require.NoError(t, err)
	assert.Equal(t, first, second)

	other := int64(43)
	req.Seed = &other
	third, err := Generate(req, config.Default())
	require.NoError(t, err)
	assert.NotEqual(t, first, third)
}

func TestRequestValidation(t *testing.T) {
	assert := assert.New(t)
	cfg := config.Default()

	bad := turnaroundRequest()
	bad.Tempo = tempoOf(2000)
	_, err := Generate(bad, cfg)
	assert.ErrorIs(err, model.ErrInvalidSpec)

	bad = turnaroundRequest()
	bad.Tempo = tempoOf(0)
	_, err = Generate(bad, cfg)
	assert.ErrorIs(err, model.ErrInvalidSpec)

	bad = turnaroundRequest()
	bad.TimeSignature = "4/3"
	_, err = Generate(bad, cfg)
	assert.ErrorIs(err, model.ErrInvalidSpec)

	bad = turnaroundRequest()
	bad.TimeSignature = "waltz"
	_, err = Generate(bad, cfg)
	assert.ErrorIs(err, model.ErrInvalidSpec)

	bad = turnaroundRequest()
	bad.Key = "H"
	_, err = Generate(bad, cfg)
	assert.ErrorIs(err, model.ErrInvalidSpec)

	bad = turnaroundRequest()
	bad.Mode = "klezmer"
	_, err = Generate(bad, cfg)
	assert.ErrorIs(err, model.ErrInvalidSpec)

	bad = turnaroundRequest()
	bad.Progression[2].Chord = "Dzz7"
	_, err = Generate(bad, cfg)
	assert.ErrorIs(err, model.ErrInvalidSpec)

	bad = turnaroundRequest()
	bad.Progression[0].Beats = 0
	_, err = Generate(bad, cfg)
	assert.ErrorIs(err, model.ErrInvalidSpec)

	bad = turnaroundRequest()
	bad.Progression[0].Root = "C"
	_, err = Generate(bad, cfg)
	assert.ErrorIs(err, model.ErrInvalidSpec)

	bad = turnaroundRequest()
	bad.Tracks = []string{"theremin"}
	_, err = Generate(bad, cfg)
	assert.ErrorIs(err, model.ErrInvalidSpec)

	bad = turnaroundRequest()
	bad.Degrees = []int{2, 5, 1}
	_, err = Generate(bad, cfg)
	assert.ErrorIs(err, model.ErrInvalidSpec)

	_, err = Generate(model.JamRequest{}, cfg)
	assert.ErrorIs(err, model.ErrInvalidSpec)

	deg := model.JamRequest{Degrees: []int{8}}
	_, err = Generate(deg, cfg)
	assert.ErrorIs(err, model.ErrInvalidSpec)
}

func TestRoleNames(t *testing.T) {
	assert.Equal(t, []string{"comping", "bass", "lead", "percussion"}, RoleNames())
}
