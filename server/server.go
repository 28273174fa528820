// Package server exposes the transmutation engine over HTTP. Every request
// runs an independent, stateless engine invocation.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"gcsst/misc"
	"gcsst/state"
	"gcsst/transmute"
)

type cssInput struct {
	CSS string `json:"css"`
}

type jsonResponse struct {
	Duration string `json:"duration"`
	JSON     string `json:"json"`
}

type versionsResponse struct {
	GcsstVersion string `json:"gcsst_version"`
}

type server struct {
	log          *zap.Logger
	rec          transmute.Recognizer
	withOneliner bool
}

// New builds the HTTP handler: POST /transmute runs the engine over the CSS
// from the request body, GET /versions reports build information.
func New(log *zap.Logger, rec transmute.Recognizer, withOneliner bool) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	s := &server{log: log.Named("server"), rec: rec, withOneliner: withOneliner}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /transmute", s.handleTransmute)
	mux.HandleFunc("GET /versions", s.handleVersions)
	return mux
}

func (s *server) handleTransmute(w http.ResponseWriter, r *http.Request) {
	log := s.log.With(zap.String("request_id", uuid.NewString()))

	var in cssInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		log.Warn("Malformed request body", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, jsonResponse{Duration: "N/A", JSON: "Error: " + err.Error()})
		return
	}

	res, elapsed, err := transmute.Transmute(transmute.CleanContent(in.CSS), s.rec, log)
	if err != nil {
		log.Warn("Transmutation failed", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, jsonResponse{Duration: "N/A", JSON: "Error: " + err.Error()})
		return
	}

	data, err := transmute.Assemble(res, s.withOneliner).JSON()
	if err != nil {
		log.Error("Unable to serialize result", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, jsonResponse{Duration: "N/A", JSON: "Error: " + err.Error()})
		return
	}

	log.Info("Transmutation completed", zap.Duration("elapsed", elapsed), zap.Int("classes", len(res)))
	writeJSON(w, http.StatusOK, jsonResponse{Duration: transmute.Elapsed(elapsed), JSON: string(data)})
}

func (s *server) handleVersions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, versionsResponse{GcsstVersion: misc.GetVersion()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Run is the "serve" subcommand action: it serves the HTTP surface until the
// command context is canceled, then shuts down gracefully.
func Run(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	log := env.Log.Named("server")

	addr := cmd.String("listen")
	if len(addr) == 0 {
		addr = env.Cfg.Server.Listen
	}

	var rec transmute.Recognizer
	if env.Recognize != nil {
		rec = transmute.RecognizerFunc(env.Recognize)
	}

	srv := &http.Server{
		Addr:    addr,
		Handler: New(env.Log, rec, env.Cfg.Transmute.WithOneliner),
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	log.Info("Listening", zap.String("addr", addr))

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		err := srv.Shutdown(shctx)
		if serr := <-errc; serr != nil && !errors.Is(serr, http.ErrServerClosed) {
			err = multierr.Append(err, serr)
		}
		log.Info("Server stopped")
		return err
	}
}
