package httpapi

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/gameday-rotation/internal/usecase"
)

func (h *Handler) RunExpirySweepJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunExpirySweepJob")
	defer span.End()

	if h.sweepService == nil {
		writeError(ctx, w, fmt.Errorf("%w: expiry sweep is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	result, err := h.sweepService.Run(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "run expiry sweep job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "expiry sweep job finished",
		"checked", result.Checked,
		"completed", result.Completed,
		"failed", result.Failed,
		"duration_ms", result.DurationMs,
	)
	writeSuccess(ctx, w, http.StatusOK, expirySweepToDTO(result))
}
