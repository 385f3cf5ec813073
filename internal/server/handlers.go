package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/matzehuels/hexhalftone/pkg/buildinfo"
	errs "github.com/matzehuels/hexhalftone/pkg/errors"
	"github.com/matzehuels/hexhalftone/pkg/pipeline"
	"github.com/matzehuels/hexhalftone/pkg/render/sink"
)

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
	ID    string `json:"id,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: buildinfo.Version})
}

func (s *Server) handleHalftone(w http.ResponseWriter, r *http.Request) {
	id := uuid.NewString()
	w.Header().Set(HeaderJobID, id)
	logger := s.logger.With("job", id)

	opts, format, err := s.parseQuery(r)
	if err != nil {
		s.writeError(w, id, err)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{
				Error: "source image exceeds " + strconv.FormatInt(tooLarge.Limit, 10) + " bytes",
				Code:  string(errs.ErrCodeInvalidInput),
				ID:    id,
			})
			return
		}
		s.writeError(w, id, errs.Wrap(errs.ErrCodeInvalidInput, err, "read request body"))
		return
	}

	res, err := s.runner.Execute(r.Context(), pipeline.Request{
		Source:  body,
		Format:  format,
		Options: opts,
	})
	if err != nil {
		logger.Warn("render failed", "error", err)
		s.writeError(w, id, err)
		return
	}

	cacheState := "miss"
	if res.CacheHit {
		cacheState = "hit"
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Length", strconv.Itoa(len(res.Artifact)))
	w.Header().Set(HeaderDots, strconv.Itoa(res.Dots))
	w.Header().Set(HeaderCache, cacheState)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(res.Artifact); err != nil {
		logger.Debug("write response", "error", err)
	}
	logger.Info("served halftone", "format", format, "dots", res.Dots, "cache", cacheState)
}

// parseQuery overlays the query parameters on the server defaults.
func (s *Server) parseQuery(r *http.Request) (pipeline.Options, sink.Target, error) {
	q := r.URL.Query()
	opts := s.cfg.Defaults

	for _, p := range []struct {
		name string
		dst  *int
	}{
		{"radius", &opts.Radius},
		{"threshold", &opts.Threshold},
	} {
		v := q.Get(p.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return opts, sink.Target{}, errs.New(errs.ErrCodeInvalidConfig, "%s must be an integer, got %q", p.name, v)
		}
		*p.dst = n
	}

	if v := q.Get("color"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, sink.Target{}, errs.New(errs.ErrCodeInvalidConfig, "color must be a boolean, got %q", v)
		}
		opts.ColorMode = b
	}

	format := sink.SVGTarget
	if v := q.Get("format"); v != "" {
		var err error
		if format, err = sink.TargetFromName(v); err != nil {
			return opts, sink.Target{}, err
		}
	}

	return opts, format, opts.Validate()
}

func (s *Server) writeError(w http.ResponseWriter, id string, err error) {
	code := errs.GetCode(err)
	if code == "" {
		code = errs.ErrCodeInternal
	}
	writeJSON(w, statusFor(err), errorResponse{
		Error: errs.UserMessage(err),
		Code:  string(code),
		ID:    id,
	})
}

// statusFor maps an error to an HTTP status code.
func statusFor(err error) int {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	case errs.IsConfig(err), errs.Is(err, errs.ErrCodeInvalidInput):
		return http.StatusBadRequest
	case errs.Is(err, errs.ErrCodeFileNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
