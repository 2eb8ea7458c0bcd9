package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/fadedpez/tucobet/internal/logging"
	"github.com/fadedpez/tucobet/internal/types"
	"github.com/fadedpez/tucobet/pkg/entities"
	"github.com/fadedpez/tucobet/pkg/services/bacbo"
	"github.com/fadedpez/tucobet/pkg/services/session"
	"github.com/go-chi/chi/v5"
)

// maxBodyBytes bounds request payloads
const maxBodyBytes = 1 << 16

// SessionService is the part of the session service the dashboard drives
type SessionService interface {
	StartProgression(ctx context.Context, userID string, p session.Params) (*entities.ProgressionSession, error)
	CurrentProgression(ctx context.Context, userID string) (*entities.ProgressionSession, error)
	ReportResult(ctx context.Context, userID string, won bool) (*session.ResultReport, error)
	StopProgression(ctx context.Context, userID string) (*entities.ProgressionSession, error)
	PlayBacBo(ctx context.Context, userID string, wager entities.Wager) (*session.RoundReport, error)
	ExitBacBo(ctx context.Context, userID string) (bacbo.Summary, error)
}

type Handler struct {
	service  SessionService
	defaults session.Params
	log      *logging.Logger
}

func NewHandler(service SessionService, defaults session.Params, logger *logging.Logger) *Handler {
	return &Handler{service: service, defaults: defaults, log: logger}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) StartProgression(w http.ResponseWriter, r *http.Request) {
	payload, err := decode[StartRequest](r.Body, true)
	if err != nil {
		h.writeError(w, err)
		return
	}

	s, err := h.service.StartProgression(r.Context(), chi.URLParam(r, "userID"), payload.params(h.defaults))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toProgressionResponse(s))
}

func (h *Handler) GetProgression(w http.ResponseWriter, r *http.Request) {
	s, err := h.service.CurrentProgression(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProgressionResponse(s))
}

func (h *Handler) ReportResult(w http.ResponseWriter, r *http.Request) {
	payload, err := decode[ResultRequest](r.Body, false)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if payload.Won == nil {
		h.writeError(w, types.NewGameError(types.ErrInvalidArgument, "won is required"))
		return
	}

	report, err := h.service.ReportResult(r.Context(), chi.URLParam(r, "userID"), *payload.Won)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toResultResponse(*payload.Won, report))
}

func (h *Handler) StopProgression(w http.ResponseWriter, r *http.Request) {
	s, err := h.service.StopProgression(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProgressionResponse(s))
}

func (h *Handler) PlayRound(w http.ResponseWriter, r *http.Request) {
	payload, err := decode[RoundRequest](r.Body, false)
	if err != nil {
		h.writeError(w, err)
		return
	}
	wager, err := entities.ParseWager(payload.Wager)
	if err != nil {
		h.writeError(w, types.WrapError(types.ErrInvalidWager, "choose player, banker or tie", err))
		return
	}

	report, err := h.service.PlayBacBo(r.Context(), chi.URLParam(r, "userID"), wager)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRoundResponse(report))
}

func (h *Handler) ExitBacBo(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.ExitBacBo(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSummaryResponse(summary))
}

// statusFor maps a session error code to an HTTP status
func statusFor(code types.ErrorCode) int {
	switch code {
	case types.ErrSessionNotFound:
		return http.StatusNotFound
	case types.ErrSessionInProgress:
		return http.StatusConflict
	case types.ErrInvalidArgument, types.ErrInvalidWager, types.ErrInvalidCommand:
		return http.StatusBadRequest
	case types.ErrBankrupt, types.ErrSessionEnded, types.ErrStopLoss:
		return http.StatusGone
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var gameErr *types.GameError
	if !types.As(err, &gameErr) {
		gameErr = types.WrapError(types.ErrInternalError, "unexpected error", err)
	}

	status := statusFor(gameErr.Code)
	message := gameErr.Message
	if status == http.StatusInternalServerError {
		h.log.LogError(err)
		message = "internal error"
	}
	writeJSON(w, status, ErrorResponse{Code: string(gameErr.Code), Message: message})
}

// decode reads a JSON body. An empty body is accepted when allowEmpty is set.
func decode[T any](body io.Reader, allowEmpty bool) (T, error) {
	var payload T
	dec := json.NewDecoder(io.LimitReader(body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&payload); err != nil {
		if allowEmpty && errors.Is(err, io.EOF) {
			return payload, nil
		}
		return payload, types.WrapError(types.ErrInvalidArgument, "malformed request body", err)
	}
	return payload, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
