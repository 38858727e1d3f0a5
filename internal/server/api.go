package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"rotator/internal/batch"
	"rotator/internal/ctxlog"
	"rotator/internal/history"
	"rotator/internal/rotate"
	"slices"
	"strconv"
)

// Store persists rotations served by the API.
type Store interface {
	batch.Recorder
	Recent(limit int) ([]history.Record, error)
}

type rotateRequest struct {
	Values    []json.RawMessage `json:"values"`
	D         int               `json:"d"`
	Direction batch.Direction   `json:"direction"`
}

type rotateResponse struct {
	Values []json.RawMessage `json:"values"`
	Shift  int               `json:"shift"`
}

const defaultHistoryLimit = 20

type api struct {
	store        Store
	metrics      *metrics
	maxValues    int
	maxBodyBytes int64
}

func (a *api) rotate(w http.ResponseWriter, r *http.Request) {
	log := ctxlog.Get(r.Context())

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, a.maxBodyBytes))
	dec.DisallowUnknownFields()

	var req rotateRequest
	if err := dec.Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, r, http.StatusRequestEntityTooLarge, fmt.Sprintf("body larger than %d bytes", maxErr.Limit))
			return
		}
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("decode request: %v", err))
		return
	}

	if len(req.Values) > a.maxValues {
		writeError(w, r, http.StatusRequestEntityTooLarge, fmt.Sprintf("more than %d values", a.maxValues))
		return
	}

	shift, err := req.Direction.Shift(len(req.Values), req.D)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if req.Values == nil {
		req.Values = []json.RawMessage{}
	}

	var before []json.RawMessage
	if a.store != nil {
		before = slices.Clone(req.Values)
	}

	rotate.Left(req.Values, shift)

	direction := req.Direction
	if direction == "" {
		direction = batch.Left
	}
	a.metrics.rotations.WithLabelValues(string(direction)).Inc()
	a.metrics.rotatedElements.Add(float64(len(req.Values)))

	if a.store != nil {
		if _, err := a.store.Add("api", "", req.D, shift, before, req.Values); err != nil {
			log.Error("failed to record rotation", "error", err)
		}
	}

	writeJSON(w, r, http.StatusOK, rotateResponse{
		Values: req.Values,
		Shift:  shift,
	})
}

func (a *api) history(w http.ResponseWriter, r *http.Request) {
	if a.store == nil {
		writeError(w, r, http.StatusNotFound, "history is not enabled")
		return
	}

	limit := defaultHistoryLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			writeError(w, r, http.StatusBadRequest, fmt.Sprintf("invalid limit %q", s))
			return
		}
		limit = n
	}

	records, err := a.store.Recent(limit)
	if err != nil {
		log := ctxlog.Get(r.Context())
		log.Error("failed to load history", "error", err)
		writeError(w, r, http.StatusInternalServerError, "failed to load history")
		return
	}
	if records == nil {
		records = []history.Record{}
	}

	writeJSON(w, r, http.StatusOK, records)
}
