package httpapi

import (
	"net/http"

	"github.com/riskibarqy/gameday-rotation/internal/usecase"
)

func (h *Handler) GetGameState(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGameState")
	defer span.End()

	actor, err := requestActor(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	gameID := pathParam(span, r, "gameID")
	state, err := h.matchService.GetState(ctx, actor, gameID)
	if err != nil {
		h.logRejected(ctx, "get game state failed", err, "game_id", gameID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameStateToDTO(state))
}

func (h *Handler) ListRotationCandidates(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRotationCandidates")
	defer span.End()

	actor, err := requestActor(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	gameID := pathParam(span, r, "gameID")
	view, err := h.matchService.ListCandidates(ctx, actor, gameID)
	if err != nil {
		h.logRejected(ctx, "list rotation candidates failed", err, "game_id", gameID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, candidatesToDTO(view))
}

func (h *Handler) StartTimer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.StartTimer")
	defer span.End()

	actor, err := requestActor(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	gameID := pathParam(span, r, "gameID")
	g, err := h.matchService.StartTimer(ctx, actor, gameID)
	if err != nil {
		h.logRejected(ctx, "start timer failed", err, "game_id", gameID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameToDTO(g, g.Timer.RemainingSeconds))
}

func (h *Handler) AssignReferee(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AssignReferee")
	defer span.End()

	actor, err := requestActor(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req assignRefereeRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	gameID := pathParam(span, r, "gameID")
	g, err := h.matchService.AssignReferee(ctx, actor, gameID, usecase.AssignRefereeInput{UserID: req.UserID})
	if err != nil {
		h.logRejected(ctx, "assign referee failed", err, "game_id", gameID, "user_id", req.UserID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameToDTO(g, g.Timer.RemainingSeconds))
}

func (h *Handler) PauseTimer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PauseTimer")
	defer span.End()

	actor, err := requestActor(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	gameID := pathParam(span, r, "gameID")
	g, err := h.matchService.PauseTimer(ctx, actor, gameID)
	if err != nil {
		h.logRejected(ctx, "pause timer failed", err, "game_id", gameID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameToDTO(g, g.Timer.RemainingSeconds))
}

func (h *Handler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateMatch")
	defer span.End()

	actor, err := requestActor(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req createMatchRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	gameID := pathParam(span, r, "gameID")
	m, err := h.matchService.CreateMatch(ctx, actor, gameID, usecase.CreateMatchInput{
		TeamAID: req.TeamAID,
		TeamBID: req.TeamBID,
	})
	if err != nil {
		h.logRejected(ctx, "create match failed", err, "game_id", gameID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, matchToDTO(m))
}

func (h *Handler) StartScheduledMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.StartScheduledMatch")
	defer span.End()

	actor, err := requestActor(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	gameID := pathParam(span, r, "gameID")
	m, err := h.matchService.StartScheduledMatch(ctx, actor, gameID)
	if err != nil {
		h.logRejected(ctx, "start scheduled match failed", err, "game_id", gameID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(m))
}

func (h *Handler) UpdateScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateScore")
	defer span.End()

	actor, err := requestActor(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req scoreRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	gameID := pathParam(span, r, "gameID")
	m, err := h.matchService.UpdateScore(ctx, actor, gameID, usecase.ScoreInput{
		TeamID: req.TeamID,
		Action: req.Action,
		Value:  req.Value,
	})
	if err != nil {
		h.logRejected(ctx, "update score failed", err, "game_id", gameID, "team_id", req.TeamID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(m))
}

func (h *Handler) EndMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.EndMatch")
	defer span.End()

	actor, err := requestActor(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	gameID := pathParam(span, r, "gameID")
	result, err := h.matchService.EndMatch(ctx, actor, gameID)
	if err != nil {
		h.logRejected(ctx, "end match failed", err, "game_id", gameID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, endMatchDTO{
		Match:            matchToDTO(result.Match),
		Stage:            string(result.Stage),
		NextMatch:        matchPtrToDTO(result.NextMatch),
		CoinTossRequired: result.CoinTossRequired,
	})
}

func (h *Handler) CancelMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CancelMatch")
	defer span.End()

	actor, err := requestActor(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	gameID := pathParam(span, r, "gameID")
	m, err := h.matchService.CancelMatch(ctx, actor, gameID)
	if err != nil {
		h.logRejected(ctx, "cancel match failed", err, "game_id", gameID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(m))
}

func (h *Handler) ResolveCoinToss(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResolveCoinToss")
	defer span.End()

	actor, err := requestActor(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req coinTossRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	gameID := pathParam(span, r, "gameID")
	result, err := h.matchService.ResolveCoinToss(ctx, actor, gameID, usecase.CoinTossInput{
		TeamAChoice: req.TeamAChoice,
		TeamBChoice: req.TeamBChoice,
		Type:        req.Type,
	})
	if err != nil {
		h.logRejected(ctx, "resolve coin toss failed", err, "game_id", gameID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, coinTossResultDTO{
		Match:     matchToDTO(result.Match),
		Toss:      coinTossToDTO(result.Toss),
		NextMatch: matchPtrToDTO(result.NextMatch),
	})
}
