package httpapi

import (
	"net/http"

	"github.com/riskibarqy/gameday-rotation/internal/domain/player"
	"github.com/riskibarqy/gameday-rotation/internal/usecase"
)

func (h *Handler) CheckIn(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CheckIn")
	defer span.End()

	actor, err := requestActor(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	groupID := pathParam(span, r, "groupID")
	result, err := h.gameDayService.CheckIn(ctx, actor, groupID)
	if err != nil {
		h.logRejected(ctx, "check in failed", err, "group_id", groupID, "user_id", actor.UserID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, checkInDTO{
		Game:       gameToDTO(result.Game, result.Game.Timer.RemainingSeconds),
		Player:     playerToDTO(result.Player),
		TeamNumber: result.TeamNumber,
		IsCaptain:  result.IsCaptain,
	})
}

func (h *Handler) AddManualParticipant(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddManualParticipant")
	defer span.End()

	actor, err := requestActor(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req manualParticipantRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	gameID := pathParam(span, r, "gameID")
	participant, err := h.gameDayService.AddManualParticipant(ctx, actor, gameID, usecase.ManualParticipantInput{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		TeamNumber: req.TeamNumber,
	})
	if err != nil {
		h.logRejected(ctx, "add manual participant failed", err, "game_id", gameID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, manualParticipantToDTO(participant))
}

func (h *Handler) AssignPlayerTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AssignPlayerTeam")
	defer span.End()

	actor, err := requestActor(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req assignTeamRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	gameID := pathParam(span, r, "gameID")
	playerID := pathParam(span, r, "playerID")
	p, err := h.gameDayService.AssignPlayerTeam(ctx, actor, gameID, playerID, req.TeamNumber)
	if err != nil {
		h.logRejected(ctx, "assign player team failed", err, "game_id", gameID, "player_id", playerID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(p))
}

func (h *Handler) AssignManualParticipantTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AssignManualParticipantTeam")
	defer span.End()

	actor, err := requestActor(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req assignTeamRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	gameID := pathParam(span, r, "gameID")
	participantID := pathParam(span, r, "participantID")
	m, err := h.gameDayService.AssignManualParticipantTeam(ctx, actor, gameID, participantID, req.TeamNumber)
	if err != nil {
		h.logRejected(ctx, "assign manual participant team failed", err, "game_id", gameID, "participant_id", participantID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, manualParticipantToDTO(m))
}

func (h *Handler) AssignCaptain(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AssignCaptain")
	defer span.End()

	actor, err := requestActor(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req assignCaptainRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	gameID := pathParam(span, r, "gameID")
	t, err := h.gameDayService.AssignCaptain(ctx, actor, gameID, usecase.AssignCaptainInput{
		MemberID:   req.MemberID,
		TeamNumber: req.TeamNumber,
	})
	if err != nil {
		h.logRejected(ctx, "assign captain failed", err, "game_id", gameID, "member_id", req.MemberID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(t))
}

func (h *Handler) SelectPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SelectPlayers")
	defer span.End()

	actor, err := requestActor(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req selectPlayersRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	gameID := pathParam(span, r, "gameID")
	result, err := h.gameDayService.SelectPlayers(ctx, actor, gameID, usecase.SelectPlayersInput{
		TeamNumber: req.TeamNumber,
		MemberIDs:  req.MemberIDs,
	})
	if err != nil {
		h.logRejected(ctx, "select players failed", err, "game_id", gameID, "team_number", req.TeamNumber)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, selectPlayersToDTO(result))
}

func (h *Handler) UpdatePlayerStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdatePlayerStats")
	defer span.End()

	actor, err := requestActor(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req playerStatsRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	gameID := pathParam(span, r, "gameID")
	playerID := pathParam(span, r, "playerID")
	p, err := h.gameDayService.UpdatePlayerStats(ctx, actor, gameID, playerID, player.Stats{
		Goals:       req.Goals,
		Assists:     req.Assists,
		YellowCards: req.YellowCards,
		RedCards:    req.RedCards,
	})
	if err != nil {
		h.logRejected(ctx, "update player stats failed", err, "game_id", gameID, "player_id", playerID)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(p))
}
