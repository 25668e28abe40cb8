package v1

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/kurochkinivan/image_sorter/internal/domain"
)

const maxMoveBodyBytes = 64 << 10

type TriageService interface {
	Directory() string
	ListImages(ctx context.Context) ([]string, error)
	Move(ctx context.Context, filename, decision string) (*domain.MoveResult, error)
}

type TriageHandler struct {
	log     *slog.Logger
	service TriageService
}

func NewTriageHandler(log *slog.Logger, service TriageService) *TriageHandler {
	return &TriageHandler{
		log:     log,
		service: service,
	}
}

type GetConfigResponse struct {
	Directory string `json:"directory"`
}

type MoveImageRequest struct {
	Filename string `json:"filename"`
	Decision string `json:"decision"`
}

type MoveImageResponse struct {
	Status  string `json:"status"`
	MovedTo string `json:"moved_to"`
}

type ErrorResponse struct {
	Detail string `json:"detail"`
}

func (h *TriageHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, GetConfigResponse{Directory: h.service.Directory()})
}

func (h *TriageHandler) ListImages(w http.ResponseWriter, r *http.Request) {
	images, err := h.service.ListImages(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if images == nil {
		images = []string{}
	}

	h.writeJSON(w, r, http.StatusOK, images)
}

func (h *TriageHandler) MoveImage(w http.ResponseWriter, r *http.Request) {
	var req MoveImageRequest

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxMoveBodyBytes))
	if err := dec.Decode(&req); err != nil {
		h.writeJSON(w, r, http.StatusBadRequest, ErrorResponse{Detail: "invalid request body: " + err.Error()})
		return
	}

	result, err := h.service.Move(r.Context(), req.Filename, req.Decision)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, MoveImageResponse{
		Status:  "success",
		MovedTo: result.RelativePath,
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (h *TriageHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.log.ErrorContext(r.Context(), "request failed",
			slog.String("path", r.URL.Path),
			slog.String("err", err.Error()),
		)
	}

	h.writeJSON(w, r, status, ErrorResponse{Detail: err.Error()})
}

func (h *TriageHandler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		h.log.ErrorContext(r.Context(), "failed to encode response", slog.String("err", err.Error()))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}
