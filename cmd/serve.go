package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jackdreilly/jammer/config"
	"github.com/jackdreilly/jammer/jam"
	"github.com/jackdreilly/jammer/logger"
	"github.com/jackdreilly/jammer/model"
	"github.com/jackdreilly/jammer/sequence"
	"github.com/jackdreilly/jammer/theory"
)

var (
	serveConfig = config.Default()
	serveAddr   string
)

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address, overriding the config file")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves jam tracks over HTTP",
	Long:  `Serves jam tracks over HTTP`,
	Run: func(cmd *cobra.Command, args []string) {
		serve()
	},
}

// LoadServeConfig primes the handler configuration without binding a port,
// so tests can hit the handlers directly.
func LoadServeConfig() {
	serveConfig = loadConfig()
}

func statusFor(err error) int {
	if errors.Is(err, model.ErrInvalidSpec) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: err.Error()})
}

// HandleRender renders a jam track. POST carries a JSON JamRequest; GET
// carries the same fields as query parameters.
func HandleRender(w http.ResponseWriter, r *http.Request) {
	var req model.JamRequest
	if r.Method == http.MethodPost {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("decoding request: %v", err))
			return
		}
	} else {
		parsed, err := requestFromQuery(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		req = parsed
	}

	data, err := jam.Generate(req, serveConfig)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	w.Header().Set("Content-Type", "audio/midi")
	w.Header().Set("Content-Disposition", `attachment; filename="jam.mid"`)
	w.Write(data)
}

// HandleVocab lists every tag a request may carry.
func HandleVocab(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(model.VocabResponse{
		Keys:      theory.NoteNames(),
		Modes:     theory.Modes(),
		Qualities: theory.Qualities(),
		Patterns:  sequence.PatternNames(),
		Roles:     jam.RoleNames(),
	})
}

func requestFromQuery(r *http.Request) (model.JamRequest, error) {
	q := r.URL.Query()
	req := model.JamRequest{
		Key:           q.Get("key"),
		Mode:          q.Get("mode"),
		TimeSignature: q.Get("time_sig"),
		Pattern:       q.Get("pattern"),
	}
	if raw := q.Get("tempo"); raw != "" {
		tempo, err := strconv.Atoi(raw)
		if err != nil {
			return model.JamRequest{}, fmt.Errorf("%w: tempo %q", model.ErrInvalidSpec, raw)
		}
		req.Tempo = &tempo
	}
	if raw := q.Get("seed"); raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return model.JamRequest{}, fmt.Errorf("%w: seed %q", model.ErrInvalidSpec, raw)
		}
		req.Seed = &seed
	}
	if raw := q.Get("tracks"); raw != "" {
		req.Tracks = strings.Split(raw, ",")
	}
	if raw := q.Get("progression"); raw != "" {
		steps, err := parseProgressionParam(raw)
		if err != nil {
			return model.JamRequest{}, err
		}
		req.Progression = steps
	}
	if raw := q.Get("degrees"); raw != "" {
		degrees, err := parseDegreesParam(raw)
		if err != nil {
			return model.JamRequest{}, err
		}
		req.Degrees = degrees
	}
	if raw := q.Get("beats_per_chord"); raw != "" {
		beats, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return model.JamRequest{}, fmt.Errorf("%w: beats_per_chord %q", model.ErrInvalidSpec, raw)
		}
		req.BeatsPerChord = beats
	}
	return req, nil
}

// parseProgressionParam reads "Cmaj7:4,Am7:2.5". A step without a beat
// count plays for four beats.
func parseProgressionParam(raw string) ([]model.RegionSpec, error) {
	var steps []model.RegionSpec
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		symbol, beatsTag, found := strings.Cut(part, ":")
		step := model.RegionSpec{Chord: symbol, Beats: jam.DefaultBeatsPerChord}
		if found {
			beats, err := strconv.ParseFloat(beatsTag, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: beats %q in step %q", model.ErrInvalidSpec, beatsTag, part)
			}
			step.Beats = beats
		}
		steps = append(steps, step)
	}
	return steps, nil
}

func parseDegreesParam(raw string) ([]int, error) {
	var degrees []int
	for _, part := range strings.Split(raw, ",") {
		degree, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("%w: degree %q", model.ErrInvalidSpec, part)
		}
		degrees = append(degrees, degree)
	}
	return degrees, nil
}

func requestLogging(log *logrus.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r)
		log.WithFields(logrus.Fields{
			"request_id": id,
			"method":     r.Method,
			"path":       r.URL.Path,
		}).Info("handled request")
	})
}

func serve() {
	LoadServeConfig()
	if serveAddr != "" {
		serveConfig.Server.Addr = serveAddr
	}
	log := logger.GetProjectLogger()

	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/render", HandleRender).Methods("GET", "POST")
	router.HandleFunc("/vocab", HandleVocab).Methods("GET")

	handler := cors.AllowAll().Handler(handlers.CompressHandler(requestLogging(log, router)))
	server := &http.Server{
		Addr:         serveConfig.Server.Addr,
		Handler:      handler,
		ReadTimeout:  serveConfig.Server.ReadTimeout,
		WriteTimeout: serveConfig.Server.WriteTimeout,
	}
	log.WithFields(logrus.Fields{"addr": serveConfig.Server.Addr}).Info("serving jam tracks")
	log.Fatal(server.ListenAndServe())
}
