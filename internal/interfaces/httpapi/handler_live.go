package httpapi

import (
	"fmt"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/gameday-rotation/internal/usecase"
)

// LiveGame upgrades to a websocket that first carries the current game state
// and then one frame per committed change of that game.
func (h *Handler) LiveGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.LiveGame")
	defer span.End()

	if h.live == nil {
		writeError(ctx, w, fmt.Errorf("%w: live feed is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	actor, err := requestActor(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	gameID := pathParam(span, r, "gameID")
	state, err := h.matchService.GetState(ctx, actor, gameID)
	if err != nil {
		h.logRejected(ctx, "open live feed failed", err, "game_id", gameID)
		writeError(ctx, w, err)
		return
	}

	initial, err := sonic.Marshal(liveSnapshotDTO{
		Type:       "state",
		GameID:     gameID,
		OccurredAt: time.Now().UTC(),
		Data:       gameStateToDTO(state),
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "encode live snapshot failed", "game_id", gameID, "error", err)
		writeInternalError(ctx, w)
		return
	}

	// Upgrade writes its own HTTP error response on failure.
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WarnContext(ctx, "websocket upgrade failed", "game_id", gameID, "error", err)
		return
	}

	h.logger.InfoContext(ctx, "live subscriber connected", "game_id", gameID, "user_id", actor.UserID)
	h.live.Serve(conn, gameID, initial)
}
