package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"
	"github.com/riskibarqy/gameday-rotation/internal/platform/logging"
	"github.com/riskibarqy/gameday-rotation/internal/usecase"
)

const maxRequestBodyBytes = 64 << 10

// LiveHub attaches an upgraded websocket to a game's live room.
type LiveHub interface {
	Serve(conn *websocket.Conn, gameID string, initial []byte)
}

type Handler struct {
	matchService   *usecase.MatchService
	gameDayService *usecase.GameDayService
	sweepService   *usecase.ExpirySweepService
	live           LiveHub
	upgrader       websocket.Upgrader
	logger         *logging.Logger
	validator      *validator.Validate
}

func NewHandler(
	matchService *usecase.MatchService,
	gameDayService *usecase.GameDayService,
	sweepService *usecase.ExpirySweepService,
	live LiveHub,
	corsAllowedOrigins []string,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	origins := newOriginPolicy(corsAllowedOrigins)
	return &Handler{
		matchService:   matchService,
		gameDayService: gameDayService,
		sweepService:   sweepService,
		live:           live,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				// non-browser clients send no Origin.
				return origin == "" || origins.allows(origin)
			},
		},
		logger:    logger,
		validator: validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeRequest reads a JSON body into dst and validates it. An empty body is
// accepted for requests whose fields are all optional.
func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: read request body: %v", usecase.ErrInvalidInput, err)
	}
	if len(body) > 0 {
		if err := sonic.Unmarshal(body, dst); err != nil {
			return fmt.Errorf("%w: invalid JSON payload", usecase.ErrInvalidInput)
		}
	}
	return h.validateRequest(ctx, dst)
}

func requestActor(ctx context.Context) (usecase.Actor, error) {
	actor, ok := actorFromContext(ctx)
	if !ok || actor.UserID == "" {
		return usecase.Actor{}, fmt.Errorf("%w: missing authenticated actor", usecase.ErrUnauthorized)
	}
	return actor, nil
}

// logRejected logs client mistakes at warn and everything else at error.
func (h *Handler) logRejected(ctx context.Context, msg string, err error, args ...any) {
	args = append(args, "error", err)
	if mapError(ctx, err).HTTPStatus >= http.StatusInternalServerError && !errors.Is(err, usecase.ErrDependencyUnavailable) {
		h.logger.ErrorContext(ctx, msg, args...)
		return
	}
	h.logger.WarnContext(ctx, msg, args...)
}
