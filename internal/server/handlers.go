package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/matzehuels/linkrank/pkg/errors"
	"github.com/matzehuels/linkrank/pkg/pipeline"
)

// errorResponse is the JSON body for failed requests.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleRank runs the ranking pipeline over the request body.
//
// Query parameters:
//
//	method     stochastic | distribution (default stochastic)
//	steps      walk transitions or iterations depending on method
//	top        number of returned entries
//	seed       pinned RNG seed (stochastic only)
//	refresh    "true" bypasses the cache
func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, s.cfg.MaxBodyBytes+1))
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "read request body"))
		return
	}
	if int64(len(body)) > s.cfg.MaxBodyBytes {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "request body exceeds %d bytes", s.cfg.MaxBodyBytes))
		return
	}

	opts, err := optionsFromQuery(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Input = body
	opts.Logger = s.logger

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res.ID = RequestID(r.Context())

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(res)
}

// optionsFromQuery parses pipeline options from query parameters.
func optionsFromQuery(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{
		Method:  q.Get("method"),
		Refresh: q.Get("refresh") == "true",
	}

	steps, err := intParam(q.Get("steps"), "steps")
	if err != nil {
		return opts, err
	}
	// The steps parameter maps to whichever budget the method uses.
	opts.WalkSteps = steps
	opts.Iterations = steps

	if opts.TopN, err = intParam(q.Get("top"), "top"); err != nil {
		return opts, err
	}

	if raw := q.Get("seed"); raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidParameter, "seed must be an integer, got %q", raw)
		}
		opts.Seed = &seed
	}

	return opts, nil
}

func intParam(raw, name string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidParameter, "%s must be an integer, got %q", name, raw)
	}
	return v, nil
}

// writeError maps error codes to HTTP statuses and writes the JSON body.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)

	status := http.StatusInternalServerError
	switch code {
	case errors.ErrCodeMalformedInput,
		errors.ErrCodeInvalidInput,
		errors.ErrCodeInvalidParameter,
		errors.ErrCodeInvalidMethod,
		errors.ErrCodeEmptyGraph:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "id", RequestID(r.Context()), "err", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Error: errors.UserMessage(err),
		Code:  string(code),
	})
}
