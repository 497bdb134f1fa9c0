package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-hotseat/pkg/handlers"
)

type sessionManager interface {
	Create(ctx context.Context, cells int) (*usecase.Session, error)
	Get(id string) (*usecase.Session, error)
	Delete(id string) error
	List() []entity.Session
}

type createRequest struct {
	Cells int `json:"cells"`
}

type markRequest struct {
	Mark string `json:"mark"`
}

type moveResponse struct {
	Result  entity.MatchResult `json:"result"`
	Message string             `json:"message,omitempty"`
	Session entity.Session     `json:"session"`
}

type sessionHandlers struct {
	logger       *slog.Logger
	sessions     sessionManager
	defaultCells int
}

func (that *sessionHandlers) create(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "create")

	request := createRequest{Cells: that.defaultCells}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil && !errors.Is(err, io.EOF) {
		handlers.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := that.sessions.Create(r.Context(), request.Cells)
	if err != nil {
		log.Debug("could not create session", "cells", request.Cells, "error", err)
		that.writeError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, session.Snapshot())
}

func (that *sessionHandlers) list(w http.ResponseWriter, _ *http.Request) {
	handlers.WriteJSON(w, http.StatusOK, that.sessions.List())
}

func (that *sessionHandlers) get(w http.ResponseWriter, r *http.Request) {
	session, ok := that.session(w, r)
	if !ok {
		return
	}

	handlers.WriteJSON(w, http.StatusOK, session.Snapshot())
}

func (that *sessionHandlers) remove(w http.ResponseWriter, r *http.Request) {
	if err := that.sessions.Delete(chi.URLParam(r, "id")); err != nil {
		that.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *sessionHandlers) selectCell(w http.ResponseWriter, r *http.Request) {
	session, ok := that.session(w, r)
	if !ok {
		return
	}

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "cell index must be a number")
		return
	}

	result, err := session.SelectCell(r.Context(), index)
	if err != nil {
		that.writeError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, moveResponse{
		Result:  result,
		Message: result.Message(),
		Session: session.Snapshot(),
	})
}

func (that *sessionHandlers) reset(w http.ResponseWriter, r *http.Request) {
	that.command(w, r, (*usecase.Session).Reset)
}

func (that *sessionHandlers) restart(w http.ResponseWriter, r *http.Request) {
	that.command(w, r, (*usecase.Session).Restart)
}

func (that *sessionHandlers) replay(w http.ResponseWriter, r *http.Request) {
	that.command(w, r, (*usecase.Session).Replay)
}

func (that *sessionHandlers) chooseMark(w http.ResponseWriter, r *http.Request) {
	session, ok := that.session(w, r)
	if !ok {
		return
	}

	var request markRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	mark, err := entity.ParseMark(request.Mark)
	if err != nil {
		that.writeError(w, err)
		return
	}

	if err = session.ChooseMark(r.Context(), mark); err != nil {
		that.writeError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, session.Snapshot())
}

func (that *sessionHandlers) command(w http.ResponseWriter, r *http.Request, run func(*usecase.Session, context.Context)) {
	session, ok := that.session(w, r)
	if !ok {
		return
	}

	run(session, r.Context())

	handlers.WriteJSON(w, http.StatusOK, session.Snapshot())
}

func (that *sessionHandlers) session(w http.ResponseWriter, r *http.Request) (*usecase.Session, bool) {
	session, err := that.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, err)
		return nil, false
	}

	return session, true
}

func (that *sessionHandlers) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperror.ErrSessionNotFound):
		handlers.WriteError(w, http.StatusNotFound, apperror.ErrSessionNotFound.Error())
	case errors.Is(err, apperror.ErrInvalidGridSize):
		handlers.WriteError(w, http.StatusBadRequest, apperror.ErrInvalidGridSize.Error())
	case errors.Is(err, apperror.ErrGameFinished),
		errors.Is(err, apperror.ErrCellOccupied),
		errors.Is(err, apperror.ErrInvalidCell),
		errors.Is(err, apperror.ErrInvalidMark):
		handlers.WriteError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		that.logger.Error("unexpected error", "error", err)
		handlers.WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}
