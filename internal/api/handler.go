package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/eugenenazirov/distribution/internal/options"
	"github.com/eugenenazirov/distribution/internal/render"
	"github.com/eugenenazirov/distribution/internal/storage"
	"github.com/eugenenazirov/distribution/internal/webpack"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

const maxBodyBytes = 1 << 20

// Handler wires option storage and the config factory into HTTP handlers.
type Handler struct {
	storage storage.Storage
	logger  *zap.Logger

	root   string
	minify bool
	clock  func() time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// WithRoot sets the project root handed to the config factory.
func WithRoot(root string) HandlerOption {
	return func(h *Handler) {
		h.root = root
	}
}

// WithMinify minifies configs served as javascript.
func WithMinify(enabled bool) HandlerOption {
	return func(h *Handler) {
		h.minify = enabled
	}
}

// WithFactoryLogger passes a logger on to the config factory.
func WithFactoryLogger(logger *zap.Logger) HandlerOption {
	return func(h *Handler) {
		h.logger = logger
	}
}

// NewHandler constructs a Handler with the provided dependencies.
func NewHandler(store storage.Storage, opts ...HandlerOption) *Handler {
	h := &Handler{
		storage: store,
		logger:  zap.NewNop(),
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = r
	resp := healthResponse{
		Status:    "ok",
		Timestamp: h.clock(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetOptions(w http.ResponseWriter, r *http.Request) {
	_ = r
	opts, updatedAt, err := h.storage.GetOptions()
	if err != nil {
		writeStorageError(w, err)
		return
	}

	resp := optionsResponse{
		Options:    opts,
		Production: options.IsProduction(opts),
		UpdatedAt:  updatedAt,
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handlePutOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := decodeOptions(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse options payload")
		return
	}
	if opts == nil {
		writeError(w, http.StatusBadRequest, "Invalid options", "request body must contain an options object")
		return
	}

	if err := h.storage.SetOptions(opts); err != nil {
		writeInternalError(w, err)
		return
	}

	stored, updatedAt, err := h.storage.GetOptions()
	if err != nil {
		writeInternalError(w, err)
		return
	}

	resp := optionsResponse{
		Options:    stored,
		Production: options.IsProduction(stored),
		UpdatedAt:  updatedAt,
		Message:    "Options updated successfully",
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleBuildConfig builds the webpack config for the stored options, merged
// with an optional override bag in the request body.
func (h *Handler) handleBuildConfig(format render.Format) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		override, err := decodeOptions(w, r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse options payload")
			return
		}

		fixed, _, err := h.storage.GetOptions()
		if err != nil {
			writeStorageError(w, err)
			return
		}

		factory := webpack.New(fixed, webpack.WithRoot(h.root), webpack.WithLogger(h.logger))
		out, err := render.Render(factory.Build(override), format, h.minify)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "Cannot render config", err.Error())
			return
		}

		switch format {
		case render.FormatJS:
			w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
		default:
			w.Header().Set("Content-Type", "application/json")
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(out)
	}
}

// decodeOptions reads an options bag from the request body. An empty body
// yields nil.
func decodeOptions(w http.ResponseWriter, r *http.Request) (*options.Options, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}

	var opts options.Options
	if err := json.Unmarshal(body, &opts); err != nil {
		return nil, err
	}
	return &opts, nil
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

type optionsResponse struct {
	Options    *options.Options `json:"options"`
	Production bool             `json:"production"`
	UpdatedAt  time.Time        `json:"updatedAt"`
	Message    string           `json:"message,omitempty"`
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type errorResponse struct {
	Error      string `json:"error"`
	Details    string `json:"details,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string, suggestion ...string) {
	resp := errorResponse{
		Error:   message,
		Details: details,
	}
	if len(suggestion) > 0 {
		resp.Suggestion = suggestion[0]
	}
	writeJSON(w, status, resp)
}

func writeStorageError(w http.ResponseWriter, err error) {
	if errors.Is(err, storage.ErrNoOptions) {
		writeError(w, http.StatusConflict, "No options configured", err.Error(), "PUT /api/options or start the service with --options")
		return
	}
	writeInternalError(w, err)
}

func writeInternalError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusInternalServerError, "Internal error", err.Error())
}
