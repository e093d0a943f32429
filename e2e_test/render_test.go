//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jackdreilly/jammer/cmd"
	"github.com/jackdreilly/jammer/midifile"
	"github.com/jackdreilly/jammer/model"
)

func TestMain(m *testing.M) {
	cmd.LoadServeConfig()

	exitVal := m.Run()

	os.Exit(exitVal)
}

func createRenderReqBody(jr model.JamRequest) io.Reader {
	data, err := json.Marshal(jr)
	if err != nil {
		panic(err.Error())
	}
	return bytes.NewReader(data)
}

func TestRenderTurnaroundE2E(t *testing.T) {
	body := createRenderReqBody(model.JamRequest{
		Key:  "C",
		Mode: "major",
		Progression: []model.RegionSpec{
			{Chord: "Cmaj7", Beats: 4},
			{Chord: "Am7", Beats: 4},
			{Chord: "Dm7", Beats: 4},
			{Chord: "G7", Beats: 4},
		},
		Tracks: []string{"comping", "bass", "percussion"},
	})
	req := httptest.NewRequest(http.MethodPost, "/render", body)
	w := httptest.NewRecorder()
	cmd.HandleRender(w, req)

	resp := w.Result()
	respBody, _ := io.ReadAll(resp.Body)

	assert := assert.New(t)
	assert.Equal(200, resp.StatusCode)
	assert.Equal("audio/midi", resp.Header.Get("Content-Type"))
	assert.True(bytes.HasPrefix(respBody, []byte("MThd")))

	s, err := midifile.Parse(respBody)
	assert.NoError(err)
	assert.Len(s.Tracks, 3)
}

func TestRenderViaQueryE2E(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/render?degrees=2,5,1&tracks=bass&tempo=140", nil)
	w := httptest.NewRecorder()
	cmd.HandleRender(w, req)

	resp := w.Result()
	respBody, _ := io.ReadAll(resp.Body)

	assert := assert.New(t)
	assert.Equal(200, resp.StatusCode)
	assert.True(bytes.HasPrefix(respBody, []byte("MThd")))
}

func TestRenderRejectsUnknownChordE2E(t *testing.T) {
	body := createRenderReqBody(model.JamRequest{
		Progression: []model.RegionSpec{{Chord: "Czz9", Beats: 4}},
	})
	req := httptest.NewRequest(http.MethodPost, "/render", body)
	w := httptest.NewRecorder()
	cmd.HandleRender(w, req)

	resp := w.Result()
	respBody, _ := io.ReadAll(resp.Body)

	assert := assert.New(t)
	assert.Equal(400, resp.StatusCode)

	var errResponse model.ErrorResponse
	err := json.Unmarshal(respBody, &errResponse)
	if err != nil {
		panic(err.Error())
	}
	assert.Contains(errResponse.Error, "Czz9")
}

func TestVocabE2E(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/vocab", nil)
	w := httptest.NewRecorder()
	cmd.HandleVocab(w, req)

	resp := w.Result()
	respBody, _ := io.ReadAll(resp.Body)

	assert := assert.New(t)
	assert.Equal(200, resp.StatusCode)

	var vocabResponse model.VocabResponse
	err := json.Unmarshal(respBody, &vocabResponse)
	if err != nil {
		panic(err.Error())
	}
	assert.Contains(vocabResponse.Keys, "C")
	assert.Contains(vocabResponse.Modes, "dorian")
	assert.Contains(vocabResponse.Qualities, "minor7")
	assert.Contains(vocabResponse.Patterns, "swing")
	assert.Contains(vocabResponse.Roles, "comping")
}
