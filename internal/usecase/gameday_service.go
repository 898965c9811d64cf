package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/gameday-rotation/internal/domain/game"
	"github.com/riskibarqy/gameday-rotation/internal/domain/group"
	"github.com/riskibarqy/gameday-rotation/internal/domain/player"
	"github.com/riskibarqy/gameday-rotation/internal/domain/team"
	idgen "github.com/riskibarqy/gameday-rotation/internal/platform/id"
	"github.com/riskibarqy/gameday-rotation/internal/platform/logging"
)

type CheckInResult struct {
	Game       game.Game
	Player     player.Player
	TeamNumber int
	IsCaptain  bool
}

type ManualParticipantInput struct {
	Name       string
	Email      string
	Phone      string
	TeamNumber int
}

type AssignCaptainInput struct {
	MemberID   string
	TeamNumber int
}

// SelectPlayersInput lists the member ids a captain picks, in order of preference.
type SelectPlayersInput struct {
	TeamNumber int
	MemberIDs  []string
}

// SelectPlayersResult reports who joined the team. Picks that were not arrived,
// already on a team or past the team's capacity are returned in Skipped.
type SelectPlayersResult struct {
	Team     team.Team
	Selected []player.Player
	Skipped  []string
}

const (
	captainDraftFirstTeam = 1
	captainDraftLastTeam  = 2
	firstOverflowTeam     = captainDraftLastTeam + 1
)

// GameDayService manages who is at the game and which team they play for.
type GameDayService struct {
	tx       Transactor
	access   accessPolicy
	idGen    idgen.Generator
	events   EventPublisher
	metrics  Metrics
	logger   *logging.Logger
	duration time.Duration
	now      func() time.Time
}

func NewGameDayService(
	tx Transactor,
	groups group.Repository,
	idGen idgen.Generator,
	events EventPublisher,
	metrics Metrics,
	matchDuration time.Duration,
	logger *logging.Logger,
) *GameDayService {
	if logger == nil {
		logger = logging.Default()
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

	return &GameDayService{
		tx:       tx,
		access:   accessPolicy{groups: groups},
		idGen:    idGen,
		events:   events,
		metrics:  metrics,
		logger:   logger,
		duration: matchDuration,
		now:      time.Now,
	}
}

// CheckIn marks the caller as arrived at today's game of the group, creating
// the game on first arrival. Arrivals past the captains' draft pool go
// straight to the first overflow team with space, and the first player on a
// captain-less overflow team becomes its captain.
func (s *GameDayService) CheckIn(ctx context.Context, actor Actor, groupID string) (CheckInResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameDayService.CheckIn", groupIDAttr(groupID))
	defer span.End()

	groupID = strings.TrimSpace(groupID)
	if groupID == "" {
		return CheckInResult{}, fmt.Errorf("%w: group id is required", ErrInvalidInput)
	}
	member, err := s.access.member(ctx, groupID, actor)
	if err != nil {
		return CheckInResult{}, err
	}
	grp, err := s.access.group(ctx, groupID)
	if err != nil {
		return CheckInResult{}, err
	}

	now := s.now().UTC()
	date := grp.LocalDate(now)
	var out CheckInResult
	batch := &eventBatch{now: now}
	err = s.tx.WithinTx(ctx, func(ctx context.Context, repos Repositories) error {
		batch.events = nil
		g, err := s.getOrCreateGame(ctx, repos, groupID, date, now)
		if err != nil {
			return err
		}
		batch.gameID = g.ID

		day, err := loadGameDay(ctx, repos, g.ID)
		if err != nil {
			return err
		}

		existing, registered := day.playerByMember(member.ID)
		if registered && existing.HasArrived() {
			return fmt.Errorf("%w: member=%s already checked in", ErrConflict, member.ID)
		}
		arrivalsBefore := len(day.arrivals())

		arrivedAt := now
		p := existing
		if !registered {
			p.ID, err = s.idGen.NewID()
			if err != nil {
				return fmt.Errorf("generate player id: %w", err)
			}
			p.GameID = g.ID
			p.MemberID = member.ID
		}
		p.Name = member.Name
		p.Status = player.StatusArrived
		p.ArrivedAt = &arrivedAt

		out = CheckInResult{Game: day.game}
		if arrivalsBefore >= grp.OpenPoolSize() && p.TeamID == "" {
			t, placed, err := s.placeOverflow(ctx, repos, day, grp, member.ID, now)
			if err != nil {
				return err
			}
			if placed {
				p.TeamID = t.ID
				out.TeamNumber = t.Number
				out.IsCaptain = t.CaptainID == member.ID
			}
		}

		if registered {
			err = repos.Players.Update(ctx, p)
		} else {
			err = repos.Players.Create(ctx, p)
		}
		if err != nil {
			return fmt.Errorf("save player: %w", err)
		}
		day.putPlayer(p)

		out.Player = p
		batch.add(EventPlayerCheckedIn, "")
		return nil
	})
	if err != nil {
		return CheckInResult{}, err
	}

	kind := "pool"
	if out.TeamNumber > 0 {
		kind = "overflow"
	}
	s.metrics.CheckIn(kind)
	s.logger.InfoContext(ctx, "player checked in",
		"game_id", out.Game.ID,
		"member_id", member.ID,
		"team_number", out.TeamNumber,
		"captain", out.IsCaptain,
	)
	s.publish(ctx, batch.events)
	return out, nil
}

func (s *GameDayService) getOrCreateGame(ctx context.Context, repos Repositories, groupID, date string, now time.Time) (game.Game, error) {
	if err := repos.Games.LockGroupDay(ctx, groupID, date); err != nil {
		return game.Game{}, fmt.Errorf("lock group day: %w", err)
	}
	g, exists, err := repos.Games.GetByGroupDate(ctx, groupID, date)
	if err != nil {
		return game.Game{}, fmt.Errorf("get game by group date: %w", err)
	}
	if exists {
		return g, nil
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return game.Game{}, fmt.Errorf("generate game id: %w", err)
	}
	g = game.Game{
		ID:        id,
		GroupID:   groupID,
		Date:      date,
		Status:    game.StatusScheduled,
		Timer:     game.NewTimer(s.duration),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := g.Validate(); err != nil {
		return game.Game{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := repos.Games.Create(ctx, g); err != nil {
		return game.Game{}, fmt.Errorf("create game: %w", err)
	}
	return g, nil
}

// placeOverflow finds the first team numbered 3 or higher with space,
// creating it when needed. It reports false once every allowed team is full.
func (s *GameDayService) placeOverflow(ctx context.Context, repos Repositories, day *gameDay, grp group.Group, memberID string, now time.Time) (team.Team, bool, error) {
	for number := firstOverflowTeam; number <= grp.MaxTeams; number++ {
		t, exists := day.teamByNumber(number)
		if exists && day.rosterSize(t) >= grp.MaxPlayersPerTeam {
			continue
		}

		var err error
		if !exists {
			t, err = s.ensureTeam(ctx, repos, day, number, now)
			if err != nil {
				return team.Team{}, false, err
			}
		}
		if !t.HasCaptain() {
			t.CaptainID = memberID
			if err := repos.Teams.Update(ctx, t); err != nil {
				return team.Team{}, false, fmt.Errorf("update team captain: %w", err)
			}
			day.putTeam(t)
		}
		return t, true, nil
	}
	return team.Team{}, false, nil
}

func (s *GameDayService) AddManualParticipant(ctx context.Context, actor Actor, gameID string, input ManualParticipantInput) (player.ManualParticipant, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameDayService.AddManualParticipant", gameIDAttr(gameID))
	defer span.End()

	participant := player.ManualParticipant{
		Name:       strings.TrimSpace(input.Name),
		Email:      strings.TrimSpace(input.Email),
		Phone:      strings.TrimSpace(input.Phone),
		TeamNumber: input.TeamNumber,
	}
	if err := participant.Validate(); err != nil {
		return player.ManualParticipant{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var out player.ManualParticipant
	err := s.inGame(ctx, actor, gameID, func(ctx context.Context, repos Repositories, day *gameDay, grp group.Group, member group.Membership, batch *eventBatch) error {
		if err := requireAdmin(member); err != nil {
			return err
		}
		if participant.TeamNumber > 0 {
			if _, err := s.teamWithSpace(ctx, repos, day, grp, participant.TeamNumber, batch.now); err != nil {
				return err
			}
		}

		id, err := s.idGen.NewID()
		if err != nil {
			return fmt.Errorf("generate participant id: %w", err)
		}
		participant.ID = id
		participant.GameID = day.game.ID
		participant.CreatedAt = batch.now
		if err := repos.Manual.Create(ctx, participant); err != nil {
			return fmt.Errorf("create manual participant: %w", err)
		}
		day.putManual(participant)

		batch.add(EventRosterUpdated, "")
		out = participant
		return nil
	})
	if err != nil {
		return player.ManualParticipant{}, err
	}
	s.metrics.CheckIn("manual")
	return out, nil
}

// AssignPlayerTeam moves a registered player to a team; team number 0 sends
// them back to the unassigned pool.
func (s *GameDayService) AssignPlayerTeam(ctx context.Context, actor Actor, gameID, playerID string, teamNumber int) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameDayService.AssignPlayerTeam", gameIDAttr(gameID))
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	var out player.Player
	err := s.inGame(ctx, actor, gameID, func(ctx context.Context, repos Repositories, day *gameDay, grp group.Group, member group.Membership, batch *eventBatch) error {
		if err := requireAdmin(member); err != nil {
			return err
		}
		p, ok := day.playerByID(playerID)
		if !ok {
			return fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
		}

		if teamNumber == 0 {
			p.TeamID = ""
		} else {
			if current, ok := day.teamByID(p.TeamID); ok && current.Number == teamNumber {
				out = p
				return nil
			}
			t, err := s.teamWithSpace(ctx, repos, day, grp, teamNumber, batch.now)
			if err != nil {
				return err
			}
			p.TeamID = t.ID
		}
		if err := s.releaseCaptaincy(ctx, repos, day, p); err != nil {
			return err
		}
		if err := repos.Players.Update(ctx, p); err != nil {
			return fmt.Errorf("update player: %w", err)
		}
		day.putPlayer(p)

		batch.add(EventRosterUpdated, "")
		out = p
		return nil
	})
	return out, err
}

func (s *GameDayService) AssignManualParticipantTeam(ctx context.Context, actor Actor, gameID, participantID string, teamNumber int) (player.ManualParticipant, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameDayService.AssignManualParticipantTeam", gameIDAttr(gameID))
	defer span.End()

	participantID = strings.TrimSpace(participantID)
	if participantID == "" {
		return player.ManualParticipant{}, fmt.Errorf("%w: participant id is required", ErrInvalidInput)
	}

	var out player.ManualParticipant
	err := s.inGame(ctx, actor, gameID, func(ctx context.Context, repos Repositories, day *gameDay, grp group.Group, member group.Membership, batch *eventBatch) error {
		if err := requireAdmin(member); err != nil {
			return err
		}
		var participant player.ManualParticipant
		found := false
		for _, m := range day.manuals {
			if m.ID == participantID {
				participant, found = m, true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: participant=%s", ErrNotFound, participantID)
		}
		if participant.TeamNumber == teamNumber {
			out = participant
			return nil
		}
		if teamNumber != 0 {
			if _, err := s.teamWithSpace(ctx, repos, day, grp, teamNumber, batch.now); err != nil {
				return err
			}
		}

		participant.TeamNumber = teamNumber
		if err := repos.Manual.Update(ctx, participant); err != nil {
			return fmt.Errorf("update manual participant: %w", err)
		}
		day.putManual(participant)

		batch.add(EventRosterUpdated, "")
		out = participant
		return nil
	})
	return out, err
}

// AssignCaptain names the captains of teams 1 and 2 once the draft pool is
// full. Admins and the players in the pool may do it.
func (s *GameDayService) AssignCaptain(ctx context.Context, actor Actor, gameID string, input AssignCaptainInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameDayService.AssignCaptain", gameIDAttr(gameID))
	defer span.End()

	input.MemberID = strings.TrimSpace(input.MemberID)
	if input.MemberID == "" {
		return team.Team{}, fmt.Errorf("%w: member_id is required", ErrInvalidInput)
	}
	if input.TeamNumber < captainDraftFirstTeam || input.TeamNumber > captainDraftLastTeam {
		return team.Team{}, fmt.Errorf("%w: captains are drafted for teams %d and %d only", ErrInvalidInput, captainDraftFirstTeam, captainDraftLastTeam)
	}

	var out team.Team
	err := s.inGame(ctx, actor, gameID, func(ctx context.Context, repos Repositories, day *gameDay, grp group.Group, member group.Membership, batch *eventBatch) error {
		arrivals := day.arrivals()
		poolSize := grp.OpenPoolSize()
		if !member.IsAdmin() && !inFirstArrivals(arrivals, member.ID, poolSize) {
			return fmt.Errorf("%w: only admins or the first %d arrivals can assign captains", ErrForbidden, poolSize)
		}
		if len(arrivals) < poolSize {
			return preconditionf(fmt.Sprintf("wait until %d players have checked in", poolSize), "only %d of %d players have arrived", len(arrivals), poolSize)
		}

		p, ok := day.playerByMember(input.MemberID)
		if !ok {
			return fmt.Errorf("%w: member=%s is not playing today", ErrNotFound, input.MemberID)
		}
		if !p.HasArrived() {
			return preconditionf("the player must check in first", "member=%s has not arrived", input.MemberID)
		}
		for _, t := range day.teams {
			if t.CaptainID == input.MemberID && t.Number != input.TeamNumber {
				return fmt.Errorf("%w: member=%s already captains team %d", ErrConflict, input.MemberID, t.Number)
			}
		}

		t, err := s.ensureTeam(ctx, repos, day, input.TeamNumber, batch.now)
		if err != nil {
			return err
		}
		t.CaptainID = input.MemberID
		if err := repos.Teams.Update(ctx, t); err != nil {
			return fmt.Errorf("update team captain: %w", err)
		}
		day.putTeam(t)

		if p.TeamID != t.ID {
			p.TeamID = t.ID
			if err := repos.Players.Update(ctx, p); err != nil {
				return fmt.Errorf("update player: %w", err)
			}
			day.putPlayer(p)
		}

		batch.add(EventRosterUpdated, "")
		out = t
		return nil
	})
	return out, err
}

// SelectPlayers lets a team's captain, or an admin, pull arrived players from
// the unassigned pool onto the team until it is full.
func (s *GameDayService) SelectPlayers(ctx context.Context, actor Actor, gameID string, input SelectPlayersInput) (SelectPlayersResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameDayService.SelectPlayers", gameIDAttr(gameID))
	defer span.End()

	picks := make([]string, 0, len(input.MemberIDs))
	seen := make(map[string]struct{}, len(input.MemberIDs))
	for _, id := range input.MemberIDs {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		picks = append(picks, id)
	}
	if len(picks) == 0 {
		return SelectPlayersResult{}, fmt.Errorf("%w: member_ids is required", ErrInvalidInput)
	}

	var out SelectPlayersResult
	err := s.inGame(ctx, actor, gameID, func(ctx context.Context, repos Repositories, day *gameDay, grp group.Group, member group.Membership, batch *eventBatch) error {
		if err := ensureGameOpen(day.game); err != nil {
			return err
		}
		t, ok := day.teamByNumber(input.TeamNumber)
		if !ok {
			return fmt.Errorf("%w: team %d does not exist yet", ErrNotFound, input.TeamNumber)
		}
		if !member.IsAdmin() && t.CaptainID != member.ID {
			return fmt.Errorf("%w: only the captain of team %d or an admin can select its players", ErrForbidden, t.Number)
		}

		result := SelectPlayersResult{Team: t}
		size := day.rosterSize(t)
		for _, memberID := range picks {
			p, ok := day.playerByMember(memberID)
			if !ok || !p.HasArrived() || p.TeamID != "" || size >= grp.MaxPlayersPerTeam {
				result.Skipped = append(result.Skipped, memberID)
				continue
			}
			p.TeamID = t.ID
			if err := repos.Players.Update(ctx, p); err != nil {
				return fmt.Errorf("update player: %w", err)
			}
			day.putPlayer(p)
			size++
			result.Selected = append(result.Selected, p)
		}

		if len(result.Selected) > 0 {
			batch.add(EventRosterUpdated, "")
		}
		out = result
		return nil
	})
	return out, err
}

func (s *GameDayService) UpdatePlayerStats(ctx context.Context, actor Actor, gameID, playerID string, stats player.Stats) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameDayService.UpdatePlayerStats", gameIDAttr(gameID))
	defer span.End()

	if err := stats.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var out player.Player
	err := s.inGame(ctx, actor, gameID, func(ctx context.Context, repos Repositories, day *gameDay, _ group.Group, member group.Membership, batch *eventBatch) error {
		if err := requireOfficial(member, day.game); err != nil {
			return err
		}
		p, ok := day.playerByID(strings.TrimSpace(playerID))
		if !ok {
			return fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
		}
		p.Goals = stats.Goals
		p.Assists = stats.Assists
		p.YellowCards = stats.YellowCards
		p.RedCards = stats.RedCards
		if err := repos.Players.Update(ctx, p); err != nil {
			return fmt.Errorf("update player stats: %w", err)
		}
		day.putPlayer(p)

		batch.add(EventRosterUpdated, "")
		out = p
		return nil
	})
	return out, err
}

type rosterOp func(ctx context.Context, repos Repositories, day *gameDay, grp group.Group, member group.Membership, batch *eventBatch) error

func (s *GameDayService) inGame(ctx context.Context, actor Actor, gameID string, op rosterOp) error {
	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return fmt.Errorf("%w: game id is required", ErrInvalidInput)
	}

	now := s.now().UTC()
	batch := &eventBatch{gameID: gameID, now: now}
	err := s.tx.WithinTx(ctx, func(ctx context.Context, repos Repositories) error {
		batch.events = nil
		day, err := loadGameDay(ctx, repos, gameID)
		if err != nil {
			return err
		}
		member, err := s.access.member(ctx, day.game.GroupID, actor)
		if err != nil {
			return err
		}
		grp, err := s.access.group(ctx, day.game.GroupID)
		if err != nil {
			return err
		}
		return op(ctx, repos, day, grp, member, batch)
	})
	if err != nil {
		return err
	}

	s.publish(ctx, batch.events)
	return nil
}

// teamWithSpace validates a team-number target and returns the team, created
// on demand, as long as it is not full.
func (s *GameDayService) teamWithSpace(ctx context.Context, repos Repositories, day *gameDay, grp group.Group, number int, now time.Time) (team.Team, error) {
	if number < 1 || number > grp.MaxTeams {
		return team.Team{}, fmt.Errorf("%w: team number must be between 1 and %d", ErrInvalidInput, grp.MaxTeams)
	}
	t, err := s.ensureTeam(ctx, repos, day, number, now)
	if err != nil {
		return team.Team{}, err
	}
	if day.rosterSize(t) >= grp.MaxPlayersPerTeam {
		return team.Team{}, fmt.Errorf("%w: team %d is full", ErrConflict, number)
	}
	return t, nil
}

func (s *GameDayService) ensureTeam(ctx context.Context, repos Repositories, day *gameDay, number int, now time.Time) (team.Team, error) {
	if t, ok := day.teamByNumber(number); ok {
		return t, nil
	}

	id, err := s.idGen.NewID()
	if err != nil {
		return team.Team{}, fmt.Errorf("generate team id: %w", err)
	}
	t := team.Team{
		ID:        id,
		GameID:    day.game.ID,
		Name:      team.DefaultName(number),
		Number:    number,
		CreatedAt: now,
	}
	if err := repos.Teams.Create(ctx, t); err != nil {
		return team.Team{}, fmt.Errorf("create team: %w", err)
	}
	day.putTeam(t)
	return t, nil
}

// releaseCaptaincy clears the captain slot of any team p no longer plays for.
func (s *GameDayService) releaseCaptaincy(ctx context.Context, repos Repositories, day *gameDay, p player.Player) error {
	for _, t := range day.teams {
		if t.CaptainID != p.MemberID || t.ID == p.TeamID {
			continue
		}
		t.CaptainID = ""
		if err := repos.Teams.Update(ctx, t); err != nil {
			return fmt.Errorf("release captaincy: %w", err)
		}
		day.putTeam(t)
	}
	return nil
}

func (s *GameDayService) publish(ctx context.Context, events []GameEvent) {
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

func inFirstArrivals(arrivals []player.Player, memberID string, n int) bool {
	for i, p := range arrivals {
		if i >= n {
			return false
		}
		if p.MemberID == memberID {
			return true
		}
	}
	return false
}
