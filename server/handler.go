package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tumichaels/oramd/api"
	"github.com/tumichaels/oramd/oram"
)

// Handler exposes the four store operations over HTTP+JSON.
type Handler struct {
	impl *ServerImpl
	log  *slog.Logger
}

// NewHandler creates a handler for the given server.
func NewHandler(impl *ServerImpl, log *slog.Logger) *Handler {
	return &Handler{impl: impl, log: log}
}

// RegisterRoutes registers the operation routes with the router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/oram/setup", h.handleSetup)
	r.Post("/oram/read", h.handleReadBlock)
	r.Post("/oram/write", h.handleWriteBlock)
	r.Get("/oram/print", h.handlePrint)
}

func (h *Handler) handleSetup(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	req, err := api.DecodeMessage[api.SetupRequest](r.Body)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	cfg := oram.Config{
		NumLayers:  req.NumLayers,
		BucketSize: req.BucketSize,
		BlockSize:  req.BlockSize,
		StashLimit: req.StashLimit,
	}
	if err := h.impl.Setup(cfg, req.BlockIDs); err != nil {
		h.writeError(w, statusFor(err), err)
		return
	}

	h.writeJSON(w, http.StatusOK, &api.SetupResponse{Success: true})
}

func (h *Handler) handleReadBlock(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	req, err := api.DecodeMessage[api.ReadBlockRequest](r.Body)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	results, status, err := h.impl.ReadBlocks(req.Indices)
	if err != nil {
		h.writeError(w, statusFor(err), err)
		return
	}

	blocks := make([]api.WireBlock, len(results))
	for i, res := range results {
		blocks[i] = api.WireBlock{Index: res.Index, Value: res.Value}
	}
	h.writeJSON(w, http.StatusOK, &api.ReadBlockResponse{
		Blocks:     blocks,
		StashSize:  status.StashSize,
		StashAlarm: status.StashAlarm,
	})
}

func (h *Handler) handleWriteBlock(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	req, err := api.DecodeMessage[api.WriteBlockRequest](r.Body)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	values := make([][]byte, len(req.Blocks))
	for i, b := range req.Blocks {
		values[i] = b.Value
	}
	status, err := h.impl.WriteBlocks(req.Indices, values)
	if err != nil {
		h.writeError(w, statusFor(err), err)
		return
	}

	h.writeJSON(w, http.StatusOK, &api.WriteBlockResponse{
		Success:    true,
		StashSize:  status.StashSize,
		StashAlarm: status.StashAlarm,
	})
}

func (h *Handler) handlePrint(w http.ResponseWriter, r *http.Request) {
	dump, err := h.impl.Dump()
	if err != nil {
		h.writeError(w, statusFor(err), err)
		return
	}
	h.writeJSON(w, http.StatusOK, &api.PrintResponse{Success: true, Dump: dump})
}

// statusFor maps the error taxonomy onto HTTP statuses: bad parameters to
// 400, initialization-state conflicts to 409, unknown ids to 404, and
// internal consistency faults to 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, oram.ErrUnknownBlock):
		return http.StatusNotFound
	case errors.Is(err, ErrAlreadyInitialized), errors.Is(err, ErrNotInitialized):
		return http.StatusConflict
	case errors.Is(err, oram.ErrInvalidConfig),
		errors.Is(err, oram.ErrInvalidDataSize),
		errors.Is(err, oram.ErrDuplicateBlock),
		errors.Is(err, ErrLengthMismatch):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, obj any) {
	data, err := api.SerializeMessage(&obj)
	if err != nil {
		h.log.Error("Failed to serialize response", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}

func (h *Handler) writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		h.log.Error("Request failed", "status", status, "err", err)
	} else {
		h.log.Debug("Request rejected", "status", status, "err", err)
	}
	h.writeJSON(w, status, &api.ErrorResponse{Error: err.Error()})
}
