package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/gameday-rotation/internal/domain/game"
	"github.com/riskibarqy/gameday-rotation/internal/platform/logging"
)

const defaultSweepWorkers = 4

type ExpirySweepResult struct {
	Checked    int
	Completed  int
	Failed     int
	DurationMs int64
	Games      []ExpirySweepGame
}

type ExpirySweepGame struct {
	GameID    string
	Completed bool
	Error     string
}

type expiryRunner interface {
	ExpireIfDue(ctx context.Context, gameID string) (bool, error)
}

// ExpirySweepService proactively completes matches whose timer ran out, so
// live subscribers see the result without waiting for the next request.
type ExpirySweepService struct {
	games   game.Repository
	runner  expiryRunner
	metrics Metrics
	logger  *logging.Logger
	workers int
}

func NewExpirySweepService(games game.Repository, runner *MatchService, metrics Metrics, workers int, logger *logging.Logger) *ExpirySweepService {
	if logger == nil {
		logger = logging.Default()
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}
	if workers <= 0 {
		workers = defaultSweepWorkers
	}

	return &ExpirySweepService{
		games:   games,
		runner:  runner,
		metrics: metrics,
		logger:  logger,
		workers: workers,
	}
}

func (s *ExpirySweepService) Run(ctx context.Context) (ExpirySweepResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ExpirySweepService.Run")
	defer span.End()

	start := time.Now()
	gameIDs, err := s.games.ListRunningTimerIDs(ctx)
	if err != nil {
		return ExpirySweepResult{}, fmt.Errorf("list running timers: %w", err)
	}

	result := ExpirySweepResult{Checked: len(gameIDs)}
	if len(gameIDs) == 0 {
		s.metrics.ExpirySweep(0, 0, 0)
		return result, nil
	}

	rows := make(chan ExpirySweepGame, len(gameIDs))
	var completedCount atomic.Int32
	var failedCount atomic.Int32

	pool, err := ants.NewPool(min(s.workers, len(gameIDs)))
	if err != nil {
		return ExpirySweepResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, gameID := range gameIDs {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			row := ExpirySweepGame{GameID: gameID}
			completed, err := s.runner.ExpireIfDue(ctx, gameID)
			switch {
			case err != nil:
				row.Error = err.Error()
				failedCount.Add(1)
				s.logger.WarnContext(ctx, "expire timer failed", "game_id", gameID, "error", err)
			case completed:
				row.Completed = true
				completedCount.Add(1)
			}
			rows <- row
		}); err != nil {
			workers.Done()
			return ExpirySweepResult{}, fmt.Errorf("submit game to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(rows)

	for row := range rows {
		result.Games = append(result.Games, row)
	}
	sort.SliceStable(result.Games, func(i, j int) bool { return result.Games[i].GameID < result.Games[j].GameID })

	result.Completed = int(completedCount.Load())
	result.Failed = int(failedCount.Load())
	result.DurationMs = time.Since(start).Milliseconds()

	s.metrics.ExpirySweep(result.Checked, result.Completed, result.Failed)
	s.logger.InfoContext(ctx, "expiry sweep finished",
		"checked", result.Checked,
		"completed", result.Completed,
		"failed", result.Failed,
		"duration_ms", result.DurationMs,
	)
	return result, nil
}
