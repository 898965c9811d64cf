package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/riskibarqy/gameday-rotation/internal/domain/game"
	"github.com/riskibarqy/gameday-rotation/internal/domain/group"
	"github.com/riskibarqy/gameday-rotation/internal/domain/match"
	"github.com/riskibarqy/gameday-rotation/internal/domain/rotation"
	idgen "github.com/riskibarqy/gameday-rotation/internal/platform/id"
	"github.com/riskibarqy/gameday-rotation/internal/platform/logging"
)

const (
	ScoreIncrement = "increment"
	ScoreDecrement = "decrement"
	ScoreSet       = "set"
)

type CreateMatchInput struct {
	TeamAID string
	TeamBID string
}

// ScoreInput changes one team's score in the running match.
// Value defaults to 1 for increment and decrement.
type ScoreInput struct {
	TeamID string
	Action string
	Value  int
}

type AssignRefereeInput struct {
	UserID string
}

type CoinTossInput struct {
	TeamAChoice string
	TeamBChoice string
	Type        string
}

type EndMatchResult struct {
	Match            match.Match
	Stage            rotation.Stage
	NextMatch        *match.Match
	CoinTossRequired bool
}

type CoinTossResult struct {
	Match     match.Match
	Toss      match.CoinToss
	NextMatch *match.Match
}

// MatchService runs the rotation: timer, match lifecycle and coin tosses.
// Every operation first settles an expired timer, so a stale countdown is
// completed exactly once no matter which request observes it.
type MatchService struct {
	tx       Transactor
	access   accessPolicy
	idGen    idgen.Generator
	coin     rotation.Coin
	events   EventPublisher
	metrics  Metrics
	logger   *logging.Logger
	duration time.Duration
	now      func() time.Time
}

func NewMatchService(
	tx Transactor,
	groups group.Repository,
	idGen idgen.Generator,
	coin rotation.Coin,
	events EventPublisher,
	metrics Metrics,
	matchDuration time.Duration,
	logger *logging.Logger,
) *MatchService {
	if logger == nil {
		logger = logging.Default()
	}
	if coin == nil {
		coin = rotation.FairCoin{}
	}
	if events == nil {
		events = nopPublisher{}
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}
	if matchDuration <= 0 {
		matchDuration = game.DefaultMatchDuration
	}

	return &MatchService{
		tx:       tx,
		access:   accessPolicy{groups: groups},
		idGen:    idGen,
		coin:     coin,
		events:   events,
		metrics:  metrics,
		logger:   logger,
		duration: matchDuration,
		now:      time.Now,
	}
}

type gameOp func(ctx context.Context, repos Repositories, day *gameDay, member group.Membership, batch *eventBatch) error

// inGame settles timer expiry in its own transaction, then runs op in a second
// one. A rejected op therefore never rolls back an auto-completion.
func (s *MatchService) inGame(ctx context.Context, actor Actor, gameID string, op gameOp) (bool, error) {
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return false, fmt.Errorf("%w: game id is required", ErrInvalidInput)
	}

	autoCompleted, err := s.ExpireIfDue(ctx, gameID)
	if err != nil {
		return false, err
	}

	now := s.now().UTC()
	batch := &eventBatch{gameID: gameID, now: now}
	err = s.tx.WithinTx(ctx, func(ctx context.Context, repos Repositories) error {
		batch.events = nil
		day, err := loadGameDay(ctx, repos, gameID)
		if err != nil {
			return err
		}
		member, err := s.access.member(ctx, day.game.GroupID, actor)
		if err != nil {
			return err
		}
		expired, err := s.expireIfDue(ctx, repos, day, now, batch)
		if err != nil {
			return err
		}
		autoCompleted = autoCompleted || expired
		return op(ctx, repos, day, member, batch)
	})
	if err != nil {
		return false, err
	}

	s.publish(ctx, batch.events)
	return autoCompleted, nil
}

// ExpireIfDue completes the in-progress match if the shared timer ran out.
// It reports whether a match was completed by this call.
func (s *MatchService) ExpireIfDue(ctx context.Context, gameID string) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ExpireIfDue", gameIDAttr(gameID))
	defer span.End()

	now := s.now().UTC()
	batch := &eventBatch{gameID: gameID, now: now}
	completed := false
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos Repositories) error {
		batch.events = nil
		day, err := loadGameDay(ctx, repos, gameID)
		if err != nil {
			return err
		}
		completed, err = s.expireIfDue(ctx, repos, day, now, batch)
		return err
	})
	if err != nil {
		return false, err
	}

	s.publish(ctx, batch.events)
	return completed, nil
}

func (s *MatchService) expireIfDue(ctx context.Context, repos Repositories, day *gameDay, now time.Time, batch *eventBatch) (bool, error) {
	if !day.game.IsInProgress() || !day.game.Timer.Expired(now) {
		return false, nil
	}

	current, ok := day.matchWithStatus(match.StatusInProgress)
	if !ok {
		day.game.Timer = day.game.Timer.Reset()
		return false, saveGame(ctx, repos, day, now)
	}

	if _, err := s.completeMatch(ctx, repos, day, current, now, true, batch); err != nil {
		return false, fmt.Errorf("auto-complete expired match: %w", err)
	}
	s.logger.InfoContext(ctx, "match auto-completed on timer expiry",
		"game_id", day.game.ID,
		"match_id", current.ID,
	)
	return true, nil
}

func (s *MatchService) StartTimer(ctx context.Context, actor Actor, gameID string) (game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.StartTimer", gameIDAttr(gameID))
	defer span.End()

	var out game.Game
	_, err := s.inGame(ctx, actor, gameID, func(ctx context.Context, repos Repositories, day *gameDay, member group.Membership, batch *eventBatch) error {
		if err := requireOfficial(member, day.game); err != nil {
			return err
		}
		if err := ensureGameOpen(day.game); err != nil {
			return err
		}

		if day.game.Status == game.StatusScheduled {
			day.game.Status = game.StatusInProgress
		}
		day.game.Timer = day.game.Timer.Start(batch.now)
		batch.add(EventTimerStarted, "")

		if !day.hasStartedRotation() {
			populated := day.populated()
			if len(populated) >= 2 {
				if _, err := s.createMatch(ctx, repos, day, populated[0].ID, populated[1].ID, batch); err != nil {
					return err
				}
			}
		}

		if err := saveGame(ctx, repos, day, batch.now); err != nil {
			return err
		}
		out = day.game
		return nil
	})
	return out, err
}

func (s *MatchService) PauseTimer(ctx context.Context, actor Actor, gameID string) (game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.PauseTimer", gameIDAttr(gameID))
	defer span.End()

	var out game.Game
	_, err := s.inGame(ctx, actor, gameID, func(ctx context.Context, repos Repositories, day *gameDay, member group.Membership, batch *eventBatch) error {
		if err := requireOfficial(member, day.game); err != nil {
			return err
		}
		if !day.game.Timer.Running {
			return preconditionf("start the timer first", "timer is not running")
		}

		day.game.Timer = day.game.Timer.Pause(batch.now)
		batch.add(EventTimerPaused, "")
		if err := saveGame(ctx, repos, day, batch.now); err != nil {
			return err
		}
		out = day.game
		return nil
	})
	return out, err
}

func (s *MatchService) CreateMatch(ctx context.Context, actor Actor, gameID string, input CreateMatchInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.CreateMatch", gameIDAttr(gameID))
	defer span.End()

	input.TeamAID = strings.TrimSpace(input.TeamAID)
	input.TeamBID = strings.TrimSpace(input.TeamBID)
	if input.TeamAID == "" || input.TeamBID == "" {
		return match.Match{}, fmt.Errorf("%w: team_a_id and team_b_id are required", ErrInvalidInput)
	}
	if input.TeamAID == input.TeamBID {
		return match.Match{}, fmt.Errorf("%w: a team cannot play itself", ErrInvalidInput)
	}

	var out match.Match
	_, err := s.inGame(ctx, actor, gameID, func(ctx context.Context, repos Repositories, day *gameDay, member group.Membership, batch *eventBatch) error {
		if err := requireOfficial(member, day.game); err != nil {
			return err
		}
		if err := ensureGameOpen(day.game); err != nil {
			return err
		}
		for _, id := range []string{input.TeamAID, input.TeamBID} {
			if _, ok := day.teamByID(id); !ok {
				return fmt.Errorf("%w: team=%s", ErrNotFound, id)
			}
		}
		if pending, ok := day.pendingToss(); ok && pending.CoinTossType == match.CoinTossDrawDecider {
			return preconditionf("resolve the coin toss first", "match=%s is waiting on a draw decider", pending.ID)
		}

		created, err := s.createMatch(ctx, repos, day, input.TeamAID, input.TeamBID, batch)
		if err != nil {
			return err
		}
		if err := saveGame(ctx, repos, day, batch.now); err != nil {
			return err
		}
		out = created
		return nil
	})
	return out, err
}

func (s *MatchService) StartScheduledMatch(ctx context.Context, actor Actor, gameID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.StartScheduledMatch", gameIDAttr(gameID))
	defer span.End()

	var out match.Match
	_, err := s.inGame(ctx, actor, gameID, func(ctx context.Context, repos Repositories, day *gameDay, member group.Membership, batch *eventBatch) error {
		if err := requireOfficial(member, day.game); err != nil {
			return err
		}
		if err := ensureGameOpen(day.game); err != nil {
			return err
		}
		if current, ok := day.matchWithStatus(match.StatusInProgress); ok {
			return fmt.Errorf("%w: match=%s is already in progress", ErrConflict, current.ID)
		}
		m, ok := day.matchWithStatus(match.StatusScheduled)
		if !ok {
			return fmt.Errorf("%w: no scheduled match", ErrNotFound)
		}
		if !day.game.Timer.Running {
			return preconditionf("start the timer first", "timer is not running")
		}
		if m.PendingCoinToss() {
			return preconditionf("resolve the coin toss first", "match=%s requires a coin toss", m.ID)
		}

		startedAt := batch.now
		m.Status = match.StatusInProgress
		m.StartedAt = &startedAt
		if err := repos.Matches.Update(ctx, m); err != nil {
			return fmt.Errorf("update match: %w", err)
		}
		day.putMatch(m)

		day.game.Status = game.StatusInProgress
		day.game.Timer.DurationSeconds = int(s.duration / time.Second)
		day.game.Timer = day.game.Timer.Restart(batch.now)
		if err := saveGame(ctx, repos, day, batch.now); err != nil {
			return err
		}

		batch.add(EventMatchStarted, m.ID)
		out = m
		return nil
	})
	return out, err
}

func (s *MatchService) UpdateScore(ctx context.Context, actor Actor, gameID string, input ScoreInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.UpdateScore", gameIDAttr(gameID))
	defer span.End()

	input.TeamID = strings.TrimSpace(input.TeamID)
	input.Action = strings.ToLower(strings.TrimSpace(input.Action))
	if input.TeamID == "" {
		return match.Match{}, fmt.Errorf("%w: team_id is required", ErrInvalidInput)
	}
	if input.Value < 0 {
		return match.Match{}, fmt.Errorf("%w: value must be >= 0", ErrInvalidInput)
	}
	switch input.Action {
	case ScoreIncrement, ScoreDecrement:
		if input.Value == 0 {
			input.Value = 1
		}
	case ScoreSet:
	default:
		return match.Match{}, fmt.Errorf("%w: unknown score action %q", ErrInvalidInput, input.Action)
	}

	var out match.Match
	_, err := s.inGame(ctx, actor, gameID, func(ctx context.Context, repos Repositories, day *gameDay, member group.Membership, batch *eventBatch) error {
		if err := requireOfficial(member, day.game); err != nil {
			return err
		}
		m, ok := day.matchWithStatus(match.StatusInProgress)
		if !ok {
			return preconditionf("start the scheduled match first", "no match in progress")
		}
		if !m.Involves(input.TeamID) {
			return fmt.Errorf("%w: team=%s is not playing match=%s", ErrInvalidInput, input.TeamID, m.ID)
		}

		score := &m.ScoreA
		if input.TeamID == m.TeamBID {
			score = &m.ScoreB
		}
		previous := *score
		switch input.Action {
		case ScoreIncrement:
			*score += input.Value
		case ScoreDecrement:
			*score = max(0, *score-input.Value)
		case ScoreSet:
			*score = input.Value
		}
		delta := *score - previous

		if err := repos.Matches.Update(ctx, m); err != nil {
			return fmt.Errorf("update match: %w", err)
		}
		day.putMatch(m)

		if delta != 0 {
			t, _ := day.teamByID(input.TeamID)
			t.Goals = max(0, t.Goals+delta)
			if err := repos.Teams.Update(ctx, t); err != nil {
				return fmt.Errorf("update team goals: %w", err)
			}
			day.putTeam(t)
		}

		batch.add(EventScoreUpdated, m.ID)
		out = m
		return nil
	})
	return out, err
}

func (s *MatchService) EndMatch(ctx context.Context, actor Actor, gameID string) (EndMatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.EndMatch", gameIDAttr(gameID))
	defer span.End()

	var out EndMatchResult
	_, err := s.inGame(ctx, actor, gameID, func(ctx context.Context, repos Repositories, day *gameDay, member group.Membership, batch *eventBatch) error {
		if err := requireOfficial(member, day.game); err != nil {
			return err
		}
		m, ok := day.matchWithStatus(match.StatusInProgress)
		if !ok {
			return preconditionf("start the scheduled match first", "no match in progress")
		}

		result, err := s.completeMatch(ctx, repos, day, m, batch.now, false, batch)
		if err != nil {
			return err
		}
		out = result
		return nil
	})
	return out, err
}

func (s *MatchService) CancelMatch(ctx context.Context, actor Actor, gameID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.CancelMatch", gameIDAttr(gameID))
	defer span.End()

	var out match.Match
	_, err := s.inGame(ctx, actor, gameID, func(ctx context.Context, repos Repositories, day *gameDay, member group.Membership, batch *eventBatch) error {
		if err := requireAdmin(member); err != nil {
			return err
		}
		m, ok := day.activeMatch()
		if !ok {
			return fmt.Errorf("%w: no active match", ErrNotFound)
		}

		if m.Status == match.StatusInProgress {
			day.game.Timer = day.game.Timer.Reset()
			if err := saveGame(ctx, repos, day, batch.now); err != nil {
				return err
			}
		}
		cancelledAt := batch.now
		m.Status = match.StatusCancelled
		m.CompletedAt = &cancelledAt
		if err := repos.Matches.Update(ctx, m); err != nil {
			return fmt.Errorf("update match: %w", err)
		}
		day.putMatch(m)

		batch.add(EventMatchCancelled, m.ID)
		s.logger.InfoContext(ctx, "match cancelled", "game_id", day.game.ID, "match_id", m.ID)
		out = m
		return nil
	})
	return out, err
}

func (s *MatchService) ResolveCoinToss(ctx context.Context, actor Actor, gameID string, input CoinTossInput) (CoinTossResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ResolveCoinToss", gameIDAttr(gameID))
	defer span.End()

	choiceA, choiceB, err := rotation.ParseChoices(input.TeamAChoice, input.TeamBChoice)
	if err != nil {
		return CoinTossResult{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	wantType, err := match.ParseCoinTossType(input.Type)
	if err != nil {
		return CoinTossResult{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	var out CoinTossResult
	_, err = s.inGame(ctx, actor, gameID, func(ctx context.Context, repos Repositories, day *gameDay, member group.Membership, batch *eventBatch) error {
		if err := requireAdmin(member); err != nil {
			return err
		}
		pending, ok := day.pendingToss()
		if !ok {
			return preconditionf("a toss is only needed after a drawn match", "no coin toss pending")
		}
		if wantType != match.CoinTossNone && wantType != pending.CoinTossType {
			return fmt.Errorf("%w: pending toss is %s, not %s", ErrInvalidInput, pending.CoinTossType, wantType)
		}

		toss := rotation.Toss(s.coin, pending.TeamAID, choiceA, pending.TeamBID)
		audit := match.CoinToss{
			Type:         pending.CoinTossType,
			TeamAChoice:  choiceA,
			TeamBChoice:  choiceB,
			Result:       toss.Result,
			WinnerTeamID: toss.WinnerTeamID,
			LoserTeamID:  toss.LoserTeamID,
			TossedAt:     batch.now,
		}
		pending.CoinToss = &audit

		if pending.CoinTossType == match.CoinTossStartingTeam && pending.TeamAID != toss.WinnerTeamID {
			pending.TeamAID, pending.TeamBID = pending.TeamBID, pending.TeamAID
			pending.ScoreA, pending.ScoreB = pending.ScoreB, pending.ScoreA
		}
		if err := repos.Matches.Update(ctx, pending); err != nil {
			return fmt.Errorf("update match: %w", err)
		}
		day.putMatch(pending)
		batch.add(EventCoinTossResolved, pending.ID)
		out = CoinTossResult{Match: pending, Toss: audit}

		if pending.CoinTossType == match.CoinTossDrawDecider {
			opponent, ok := rotation.NextOpponent(day.populated(), day.stats(), toss.WinnerTeamID, toss.LoserTeamID)
			if ok {
				next, err := s.createMatch(ctx, repos, day, toss.WinnerTeamID, opponent.ID, batch)
				if err != nil {
					return err
				}
				out.NextMatch = &next
			}
			if err := saveGame(ctx, repos, day, batch.now); err != nil {
				return err
			}
		}

		s.metrics.CoinTossResolved(string(pending.CoinTossType))
		s.logger.InfoContext(ctx, "coin toss resolved",
			"game_id", day.game.ID,
			"match_id", pending.ID,
			"type", pending.CoinTossType,
			"result", toss.Result,
			"winner_team_id", toss.WinnerTeamID,
		)
		return nil
	})
	return out, err
}

// completeMatch finishes m, applies the stage's win condition and hands the
// rotation on: a winner stays on against the next candidate, a draw goes to
// the coin toss rules.
func (s *MatchService) completeMatch(ctx context.Context, repos Repositories, day *gameDay, m match.Match, now time.Time, automatic bool, batch *eventBatch) (EndMatchResult, error) {
	populated := day.populated()
	stage := day.stage()
	outcome := rotation.DecideOutcome(stage, m)

	completedAt := now
	m.Status = match.StatusCompleted
	m.CompletedAt = &completedAt
	m.AutoCompleted = automatic
	m.WinnerID = outcome.WinnerID
	m.IsDraw = outcome.IsDraw

	var resolution rotation.DrawResolution
	if m.IsDraw {
		resolution = rotation.ClassifyDraw(m, stage, day.matches)
		m.DrawType = resolution.DrawType
		if resolution.CoinTossType == match.CoinTossDrawDecider {
			m.RequiresCoinToss = true
			m.CoinTossType = match.CoinTossDrawDecider
		}
	}
	if err := repos.Matches.Update(ctx, m); err != nil {
		return EndMatchResult{}, fmt.Errorf("update match: %w", err)
	}
	day.putMatch(m)
	day.game.Timer = day.game.Timer.Reset()
	batch.add(EventMatchCompleted, m.ID)

	result := EndMatchResult{Match: m, Stage: stage}
	switch {
	case !m.IsDraw:
		opponent, ok := rotation.NextOpponent(populated, day.stats(), m.WinnerID, m.TeamAID, m.TeamBID)
		if ok {
			next, err := s.createMatch(ctx, repos, day, m.WinnerID, opponent.ID, batch)
			if err != nil {
				return EndMatchResult{}, err
			}
			result.NextMatch = &next
		}
	case resolution.CoinTossType == match.CoinTossDrawDecider:
		result.CoinTossRequired = true
		batch.add(EventCoinTossRequested, m.ID)
	case resolution.CoinTossType == match.CoinTossStartingTeam:
		next, err := s.createMatch(ctx, repos, day, m.TeamAID, m.TeamBID, batch)
		if err != nil {
			return EndMatchResult{}, err
		}
		result.NextMatch = &next
		result.CoinTossRequired = true
		batch.add(EventCoinTossRequested, next.ID)
	default:
		a, b, ok := rotation.PairingAfterKnockoutDraw(populated, day.stats(), m.TeamAID, m.TeamBID)
		if ok {
			next, err := s.createMatch(ctx, repos, day, a.ID, b.ID, batch)
			if err != nil {
				return EndMatchResult{}, err
			}
			result.NextMatch = &next
		}
	}

	if err := saveGame(ctx, repos, day, now); err != nil {
		return EndMatchResult{}, err
	}

	outcomeLabel := "win"
	if m.IsDraw {
		outcomeLabel = "draw"
	}
	s.metrics.MatchCompleted(outcomeLabel, automatic)
	s.logger.InfoContext(ctx, "match completed",
		"game_id", day.game.ID,
		"match_id", m.ID,
		"stage", stage,
		"score", fmt.Sprintf("%d-%d", m.ScoreA, m.ScoreB),
		"winner_team_id", m.WinnerID,
		"draw_type", m.DrawType,
		"coin_toss", resolution.CoinTossType,
		"automatic", automatic,
	)
	return result, nil
}

// AssignReferee hands the whistle to an approved member of the group. The
// scheduled or running match follows the game's referee.
func (s *MatchService) AssignReferee(ctx context.Context, actor Actor, gameID string, input AssignRefereeInput) (game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.AssignReferee", gameIDAttr(gameID))
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	if input.UserID == "" {
		return game.Game{}, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}

	var out game.Game
	_, err := s.inGame(ctx, actor, gameID, func(ctx context.Context, repos Repositories, day *gameDay, member group.Membership, batch *eventBatch) error {
		if err := requireAdmin(member); err != nil {
			return err
		}
		if err := ensureGameOpen(day.game); err != nil {
			return err
		}
		referee, err := s.access.member(ctx, day.game.GroupID, Actor{UserID: input.UserID})
		if errors.Is(err, ErrForbidden) {
			return fmt.Errorf("%w: user=%s is not an approved member of the group", ErrInvalidInput, input.UserID)
		}
		if err != nil {
			return err
		}

		day.game.RefereeID = referee.ID
		if active, ok := day.activeMatch(); ok && active.RefereeID != referee.ID {
			active.RefereeID = referee.ID
			if err := repos.Matches.Update(ctx, active); err != nil {
				return fmt.Errorf("update match referee: %w", err)
			}
			day.putMatch(active)
		}
		if err := saveGame(ctx, repos, day, batch.now); err != nil {
			return err
		}
		batch.add(EventRefereeAssigned, "")

		s.logger.InfoContext(ctx, "referee assigned",
			"game_id", day.game.ID,
			"referee_id", referee.ID,
		)
		out = day.game
		return nil
	})
	return out, err
}

// createMatch schedules teamA against teamB. A pairing that already drew today
// must toss for the starting side before kick-off.
func (s *MatchService) createMatch(ctx context.Context, repos Repositories, day *gameDay, teamAID, teamBID string, batch *eventBatch) (match.Match, error) {
	if active, ok := day.activeMatch(); ok {
		return match.Match{}, fmt.Errorf("%w: match=%s is already %s", ErrConflict, active.ID, active.Status)
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return match.Match{}, fmt.Errorf("generate match id: %w", err)
	}

	m := match.Match{
		ID:        id,
		GameID:    day.game.ID,
		Sequence:  day.nextSequence(),
		TeamAID:   teamAID,
		TeamBID:   teamBID,
		Status:    match.StatusScheduled,
		CreatedAt: batch.now,
	}
	if rotation.PreviouslyDrew(day.matches, teamAID, teamBID, "") {
		m.RequiresCoinToss = true
		m.CoinTossType = match.CoinTossStartingTeam
	}
	if referee, ok := rotation.PickReferee(day.teams, teamAID, teamBID); ok {
		day.game.RefereeID = referee.CaptainID
		m.RefereeID = referee.CaptainID
	} else if day.playsFor(day.game.RefereeID, teamAID, teamBID) {
		day.game.RefereeID = ""
	}

	if err := repos.Matches.Create(ctx, m); err != nil {
		return match.Match{}, fmt.Errorf("create match: %w", err)
	}
	day.putMatch(m)
	batch.add(EventMatchCreated, m.ID)
	return m, nil
}

func (s *MatchService) publish(ctx context.Context, events []GameEvent) {
	for _, event := range events {
		if err := s.events.PublishGameEvent(ctx, event); err != nil {
			s.logger.WarnContext(ctx, "publish game event failed",
				"game_id", event.GameID,
				"type", event.Type,
				"error", err,
			)
		}
	}
}

func saveGame(ctx context.Context, repos Repositories, day *gameDay, now time.Time) error {
	day.game.UpdatedAt = now
	if err := repos.Games.Update(ctx, day.game); err != nil {
		return fmt.Errorf("update game: %w", err)
	}
	return nil
}

func ensureGameOpen(g game.Game) error {
	switch g.Status {
	case game.StatusCompleted, game.StatusCancelled:
		return preconditionf("the game day is over", "game=%s is %s", g.ID, g.Status)
	default:
		return nil
	}
}
