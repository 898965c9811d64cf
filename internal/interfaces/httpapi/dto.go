package httpapi

import (
	"time"

	"github.com/riskibarqy/gameday-rotation/internal/domain/game"
	"github.com/riskibarqy/gameday-rotation/internal/domain/match"
	"github.com/riskibarqy/gameday-rotation/internal/domain/player"
	"github.com/riskibarqy/gameday-rotation/internal/domain/rotation"
	"github.com/riskibarqy/gameday-rotation/internal/domain/team"
	"github.com/riskibarqy/gameday-rotation/internal/usecase"
)

type manualParticipantRequest struct {
	Name       string `json:"name" validate:"required,max=120"`
	Email      string `json:"email" validate:"omitempty,email,max=200"`
	Phone      string `json:"phone" validate:"omitempty,max=40"`
	TeamNumber int    `json:"team_number" validate:"gte=0"`
}

type assignTeamRequest struct {
	TeamNumber int `json:"team_number" validate:"required,gt=0"`
}

type assignCaptainRequest struct {
	MemberID   string `json:"member_id" validate:"required"`
	TeamNumber int    `json:"team_number" validate:"required,oneof=1 2"`
}

type selectPlayersRequest struct {
	TeamNumber int      `json:"team_number" validate:"required,gt=0"`
	MemberIDs  []string `json:"member_ids" validate:"required,min=1,dive,required"`
}

type assignRefereeRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

type playerStatsRequest struct {
	Goals       int `json:"goals" validate:"gte=0"`
	Assists     int `json:"assists" validate:"gte=0"`
	YellowCards int `json:"yellow_cards" validate:"gte=0"`
	RedCards    int `json:"red_cards" validate:"gte=0"`
}

type createMatchRequest struct {
	TeamAID string `json:"team_a_id" validate:"required"`
	TeamBID string `json:"team_b_id" validate:"required,nefield=TeamAID"`
}

type scoreRequest struct {
	TeamID string `json:"team_id" validate:"required"`
	Action string `json:"action" validate:"required,oneof=increment decrement set"`
	Value  int    `json:"value" validate:"gte=0"`
}

// Choices are validated by the coin toss itself so callers get the
// heads/tails specific messages.
type coinTossRequest struct {
	TeamAChoice string `json:"team_a_choice"`
	TeamBChoice string `json:"team_b_choice"`
	Type        string `json:"type"`
}

type timerDTO struct {
	DurationSeconds  int        `json:"duration_seconds"`
	RemainingSeconds int        `json:"remaining_seconds"`
	Running          bool       `json:"running"`
	StartedAt        *time.Time `json:"started_at,omitempty"`
}

type gameDTO struct {
	ID        string    `json:"id"`
	GroupID   string    `json:"group_id"`
	Date      string    `json:"date"`
	Status    string    `json:"status"`
	RefereeID string    `json:"referee_id,omitempty"`
	Timer     timerDTO  `json:"timer"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type teamDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Number    int    `json:"number"`
	CaptainID string `json:"captain_id,omitempty"`
	Goals     int    `json:"goals"`
}

type selectPlayersDTO struct {
	Team     teamDTO     `json:"team"`
	Selected []playerDTO `json:"selected"`
	Skipped  []string    `json:"skipped"`
}

type playerDTO struct {
	ID          string     `json:"id"`
	MemberID    string     `json:"member_id"`
	Name        string     `json:"name"`
	Status      string     `json:"status"`
	ArrivedAt   *time.Time `json:"arrived_at,omitempty"`
	TeamID      string     `json:"team_id,omitempty"`
	Goals       int        `json:"goals"`
	Assists     int        `json:"assists"`
	YellowCards int        `json:"yellow_cards"`
	RedCards    int        `json:"red_cards"`
}

type manualParticipantDTO struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	TeamNumber int       `json:"team_number"`
	CreatedAt  time.Time `json:"created_at"`
}

type coinTossDTO struct {
	Type         string    `json:"type"`
	TeamAChoice  string    `json:"team_a_choice"`
	TeamBChoice  string    `json:"team_b_choice"`
	Result       string    `json:"result"`
	WinnerTeamID string    `json:"winner_team_id"`
	LoserTeamID  string    `json:"loser_team_id"`
	TossedAt     time.Time `json:"tossed_at"`
}

type matchDTO struct {
	ID               string       `json:"id"`
	Sequence         int          `json:"sequence"`
	TeamAID          string       `json:"team_a_id"`
	TeamBID          string       `json:"team_b_id"`
	ScoreA           int          `json:"score_a"`
	ScoreB           int          `json:"score_b"`
	Status           string       `json:"status"`
	WinnerID         string       `json:"winner_id,omitempty"`
	IsDraw           bool         `json:"is_draw"`
	DrawType         string       `json:"draw_type,omitempty"`
	RequiresCoinToss bool         `json:"requires_coin_toss"`
	CoinTossType     string       `json:"coin_toss_type,omitempty"`
	CoinToss         *coinTossDTO `json:"coin_toss,omitempty"`
	RefereeID        string       `json:"referee_id,omitempty"`
	AutoCompleted    bool         `json:"auto_completed"`
	StartedAt        *time.Time   `json:"started_at,omitempty"`
	CompletedAt      *time.Time   `json:"completed_at,omitempty"`
	CreatedAt        time.Time    `json:"created_at"`
}

type statsDTO struct {
	HasPlayed bool   `json:"has_played"`
	Played    int    `json:"played"`
	Wins      int    `json:"wins"`
	Losses    int    `json:"losses"`
	Draws     int    `json:"draws"`
	Tier      string `json:"tier"`
}

type teamRosterDTO struct {
	Team      teamDTO                `json:"team"`
	Stats     statsDTO               `json:"stats"`
	Populated bool                   `json:"populated"`
	Players   []playerDTO            `json:"players"`
	Manual    []manualParticipantDTO `json:"manual_participants"`
}

type pendingCoinTossDTO struct {
	MatchID  string `json:"match_id"`
	Type     string `json:"type"`
	TeamAID  string `json:"team_a_id"`
	TeamBID  string `json:"team_b_id"`
	DrawType string `json:"draw_type,omitempty"`
}

type gameStateDTO struct {
	Game              gameDTO                `json:"game"`
	RemainingSeconds  int                    `json:"remaining_seconds"`
	Stage             string                 `json:"stage"`
	CurrentMatch      *matchDTO              `json:"current_match"`
	UpcomingMatch     *matchDTO              `json:"upcoming_match"`
	CompletedMatches  []matchDTO             `json:"completed_matches"`
	PendingCoinToss   *pendingCoinTossDTO    `json:"pending_coin_toss"`
	Teams             []teamRosterDTO        `json:"teams"`
	UnassignedPlayers []playerDTO            `json:"unassigned_players"`
	ParticipantPool   []manualParticipantDTO `json:"participant_pool"`
	AutoCompleted     bool                   `json:"auto_completed"`
}

type candidateDTO struct {
	Team  teamDTO  `json:"team"`
	Stats statsDTO `json:"stats"`
}

type candidatesDTO struct {
	Stage      string         `json:"stage"`
	Candidates []candidateDTO `json:"candidates"`
}

type checkInDTO struct {
	Game       gameDTO   `json:"game"`
	Player     playerDTO `json:"player"`
	TeamNumber int       `json:"team_number"`
	IsCaptain  bool      `json:"is_captain"`
}

type endMatchDTO struct {
	Match            matchDTO  `json:"match"`
	Stage            string    `json:"stage"`
	NextMatch        *matchDTO `json:"next_match"`
	CoinTossRequired bool      `json:"coin_toss_required"`
}

type coinTossResultDTO struct {
	Match     matchDTO    `json:"match"`
	Toss      coinTossDTO `json:"toss"`
	NextMatch *matchDTO   `json:"next_match"`
}

type expirySweepGameDTO struct {
	GameID    string `json:"game_id"`
	Completed bool   `json:"completed"`
	Error     string `json:"error,omitempty"`
}

type expirySweepDTO struct {
	Checked    int                  `json:"checked"`
	Completed  int                  `json:"completed"`
	Failed     int                  `json:"failed"`
	DurationMs int64                `json:"duration_ms"`
	Games      []expirySweepGameDTO `json:"games"`
}

// liveSnapshotDTO is the first frame on a live connection. Its shape matches
// the event frames the hub sends afterwards.
type liveSnapshotDTO struct {
	Type       string       `json:"type"`
	GameID     string       `json:"game_id"`
	OccurredAt time.Time    `json:"occurred_at"`
	Data       gameStateDTO `json:"data"`
}

func gameToDTO(g game.Game, remaining int) gameDTO {
	return gameDTO{
		ID:        g.ID,
		GroupID:   g.GroupID,
		Date:      g.Date,
		Status:    g.Status,
		RefereeID: g.RefereeID,
		Timer: timerDTO{
			DurationSeconds:  g.Timer.DurationSeconds,
			RemainingSeconds: remaining,
			Running:          g.Timer.Running,
			StartedAt:        g.Timer.StartedAt,
		},
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
}

func teamToDTO(t team.Team) teamDTO {
	return teamDTO{
		ID:        t.ID,
		Name:      t.Name,
		Number:    t.Number,
		CaptainID: t.CaptainID,
		Goals:     t.Goals,
	}
}

func playerToDTO(p player.Player) playerDTO {
	return playerDTO{
		ID:          p.ID,
		MemberID:    p.MemberID,
		Name:        p.Name,
		Status:      string(p.Status),
		ArrivedAt:   p.ArrivedAt,
		TeamID:      p.TeamID,
		Goals:       p.Goals,
		Assists:     p.Assists,
		YellowCards: p.YellowCards,
		RedCards:    p.RedCards,
	}
}

func playersToDTO(players []player.Player) []playerDTO {
	out := make([]playerDTO, 0, len(players))
	for _, p := range players {
		out = append(out, playerToDTO(p))
	}
	return out
}

func selectPlayersToDTO(result usecase.SelectPlayersResult) selectPlayersDTO {
	skipped := result.Skipped
	if skipped == nil {
		skipped = []string{}
	}
	return selectPlayersDTO{
		Team:     teamToDTO(result.Team),
		Selected: playersToDTO(result.Selected),
		Skipped:  skipped,
	}
}

func manualParticipantToDTO(m player.ManualParticipant) manualParticipantDTO {
	return manualParticipantDTO{
		ID:         m.ID,
		Name:       m.Name,
		Email:      m.Email,
		Phone:      m.Phone,
		TeamNumber: m.TeamNumber,
		CreatedAt:  m.CreatedAt,
	}
}

func manualParticipantsToDTO(items []player.ManualParticipant) []manualParticipantDTO {
	out := make([]manualParticipantDTO, 0, len(items))
	for _, m := range items {
		out = append(out, manualParticipantToDTO(m))
	}
	return out
}

func coinTossToDTO(c match.CoinToss) coinTossDTO {
	return coinTossDTO{
		Type:         string(c.Type),
		TeamAChoice:  string(c.TeamAChoice),
		TeamBChoice:  string(c.TeamBChoice),
		Result:       string(c.Result),
		WinnerTeamID: c.WinnerTeamID,
		LoserTeamID:  c.LoserTeamID,
		TossedAt:     c.TossedAt,
	}
}

func matchToDTO(m match.Match) matchDTO {
	out := matchDTO{
		ID:               m.ID,
		Sequence:         m.Sequence,
		TeamAID:          m.TeamAID,
		TeamBID:          m.TeamBID,
		ScoreA:           m.ScoreA,
		ScoreB:           m.ScoreB,
		Status:           m.Status,
		WinnerID:         m.WinnerID,
		IsDraw:           m.IsDraw,
		DrawType:         m.DrawType,
		RequiresCoinToss: m.RequiresCoinToss,
		CoinTossType:     string(m.CoinTossType),
		RefereeID:        m.RefereeID,
		AutoCompleted:    m.AutoCompleted,
		StartedAt:        m.StartedAt,
		CompletedAt:      m.CompletedAt,
		CreatedAt:        m.CreatedAt,
	}
	if m.CoinToss != nil {
		toss := coinTossToDTO(*m.CoinToss)
		out.CoinToss = &toss
	}
	return out
}

func matchPtrToDTO(m *match.Match) *matchDTO {
	if m == nil {
		return nil
	}
	out := matchToDTO(*m)
	return &out
}

func statsToDTO(s rotation.Stats) statsDTO {
	return statsDTO{
		HasPlayed: s.HasPlayed,
		Played:    s.Played,
		Wins:      s.Wins,
		Losses:    s.Losses,
		Draws:     s.Draws,
		Tier:      s.Tier().String(),
	}
}

func gameStateToDTO(state usecase.GameState) gameStateDTO {
	completed := make([]matchDTO, 0, len(state.CompletedMatches))
	for _, m := range state.CompletedMatches {
		completed = append(completed, matchToDTO(m))
	}

	teams := make([]teamRosterDTO, 0, len(state.Teams))
	for _, roster := range state.Teams {
		teams = append(teams, teamRosterDTO{
			Team:      teamToDTO(roster.Team),
			Stats:     statsToDTO(roster.Stats),
			Populated: roster.Populated,
			Players:   playersToDTO(roster.Players),
			Manual:    manualParticipantsToDTO(roster.Manual),
		})
	}

	var pending *pendingCoinTossDTO
	if state.PendingCoinToss != nil {
		pending = &pendingCoinTossDTO{
			MatchID:  state.PendingCoinToss.MatchID,
			Type:     string(state.PendingCoinToss.Type),
			TeamAID:  state.PendingCoinToss.TeamAID,
			TeamBID:  state.PendingCoinToss.TeamBID,
			DrawType: state.PendingCoinToss.DrawType,
		}
	}

	return gameStateDTO{
		Game:              gameToDTO(state.Game, state.RemainingSeconds),
		RemainingSeconds:  state.RemainingSeconds,
		Stage:             string(state.Stage),
		CurrentMatch:      matchPtrToDTO(state.CurrentMatch),
		UpcomingMatch:     matchPtrToDTO(state.UpcomingMatch),
		CompletedMatches:  completed,
		PendingCoinToss:   pending,
		Teams:             teams,
		UnassignedPlayers: playersToDTO(state.UnassignedPlayers),
		ParticipantPool:   manualParticipantsToDTO(state.ParticipantPool),
		AutoCompleted:     state.AutoCompleted,
	}
}

func candidatesToDTO(view usecase.CandidatesView) candidatesDTO {
	items := make([]candidateDTO, 0, len(view.Candidates))
	for _, c := range view.Candidates {
		items = append(items, candidateDTO{
			Team:  teamToDTO(c.Team),
			Stats: statsToDTO(c.Stats),
		})
	}
	return candidatesDTO{Stage: string(view.Stage), Candidates: items}
}

func expirySweepToDTO(result usecase.ExpirySweepResult) expirySweepDTO {
	games := make([]expirySweepGameDTO, 0, len(result.Games))
	for _, g := range result.Games {
		games = append(games, expirySweepGameDTO{
			GameID:    g.GameID,
			Completed: g.Completed,
			Error:     g.Error,
		})
	}
	return expirySweepDTO{
		Checked:    result.Checked,
		Completed:  result.Completed,
		Failed:     result.Failed,
		DurationMs: result.DurationMs,
		Games:      games,
	}
}
