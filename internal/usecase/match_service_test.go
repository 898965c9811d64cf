package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/gameday-rotation/internal/domain/game"
	"github.com/riskibarqy/gameday-rotation/internal/domain/match"
	"github.com/riskibarqy/gameday-rotation/internal/domain/rotation"
	"github.com/riskibarqy/gameday-rotation/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchService_RotationScenario(t *testing.T) {
	h := newHarness(t, harnessOptions{members: 5, maxTeams: 5, maxPlayersPerTeam: 1})
	gameID, teams := h.setupOnePlayerTeams(5)
	require.Len(t, teams, 5)

	// Team 1 beats team 2 and stays on against the lowest-numbered newcomer.
	first := h.play(gameID, 2, 0)
	assert.Equal(t, rotation.StageFirstRotation, first.Stage)
	assert.Equal(t, teams[1], first.Match.WinnerID)
	assert.False(t, first.Match.IsDraw)
	assert.False(t, first.CoinTossRequired)
	require.NotNil(t, first.NextMatch)
	assert.Equal(t, teams[1], first.NextMatch.TeamAID)
	assert.Equal(t, teams[3], first.NextMatch.TeamBID)

	// A goalless draw schedules a rematch that tosses for the starting side.
	second := h.play(gameID, 0, 0)
	assert.True(t, second.Match.IsDraw)
	assert.Equal(t, match.DrawTypeGoalless, second.Match.DrawType)
	assert.True(t, second.CoinTossRequired)
	require.NotNil(t, second.NextMatch)
	assert.True(t, second.NextMatch.Pairs(teams[1], teams[3]))
	assert.Equal(t, match.CoinTossStartingTeam, second.NextMatch.CoinTossType)

	state, err := h.matches.GetState(h.ctx, admin, gameID)
	require.NoError(t, err)
	require.NotNil(t, state.PendingCoinToss)
	assert.Equal(t, second.NextMatch.ID, state.PendingCoinToss.MatchID)
	assert.Equal(t, match.CoinTossStartingTeam, state.PendingCoinToss.Type)
	assert.Nil(t, state.UpcomingMatch)
	assert.Len(t, state.CompletedMatches, 2)

	_, err = h.matches.StartTimer(h.ctx, admin, gameID)
	require.NoError(t, err)
	_, err = h.matches.StartScheduledMatch(h.ctx, admin, gameID)
	require.ErrorIs(t, err, usecase.ErrPrecondition)
	assert.Equal(t, "resolve the coin toss first", usecase.RemediationHint(err))

	// Team 3 calls heads and wins the toss, so it becomes the starting side.
	h.coin.faces = []match.Face{match.Heads}
	toss, err := h.matches.ResolveCoinToss(h.ctx, admin, gameID, usecase.CoinTossInput{TeamAChoice: "tails", TeamBChoice: "heads"})
	require.NoError(t, err)
	assert.Equal(t, match.Heads, toss.Toss.Result)
	assert.Equal(t, teams[3], toss.Toss.WinnerTeamID)
	assert.Equal(t, teams[3], toss.Match.TeamAID)
	assert.Equal(t, teams[1], toss.Match.TeamBID)
	assert.Nil(t, toss.NextMatch)

	state, err = h.matches.GetState(h.ctx, admin, gameID)
	require.NoError(t, err)
	assert.Nil(t, state.PendingCoinToss)
	require.NotNil(t, state.UpcomingMatch)
	assert.Equal(t, teams[3], state.UpcomingMatch.TeamAID)

	// The rematch draws again; the earlier draw makes it a draw decider.
	third := h.play(gameID, 1, 1)
	assert.True(t, third.Match.IsDraw)
	assert.Equal(t, match.DrawTypeWithGoals, third.Match.DrawType)
	assert.Equal(t, match.CoinTossDrawDecider, third.Match.CoinTossType)
	assert.True(t, third.CoinTossRequired)
	assert.Nil(t, third.NextMatch)

	_, err = h.matches.CreateMatch(h.ctx, admin, gameID, usecase.CreateMatchInput{TeamAID: teams[4], TeamBID: teams[5]})
	require.ErrorIs(t, err, usecase.ErrPrecondition)

	_, err = h.matches.ResolveCoinToss(h.ctx, admin, gameID, usecase.CoinTossInput{TeamAChoice: "heads", TeamBChoice: "tails", Type: "starting_team"})
	require.ErrorIs(t, err, usecase.ErrInvalidInput)

	h.coin.faces = []match.Face{match.Heads}
	decider, err := h.matches.ResolveCoinToss(h.ctx, admin, gameID, usecase.CoinTossInput{TeamAChoice: "heads", TeamBChoice: "tails", Type: "DRAW_DECIDER"})
	require.NoError(t, err)
	assert.Equal(t, teams[3], decider.Toss.WinnerTeamID)
	require.NotNil(t, decider.Match.CoinToss)
	require.NotNil(t, decider.NextMatch)
	assert.Equal(t, teams[3], decider.NextMatch.TeamAID)
	assert.Equal(t, teams[4], decider.NextMatch.TeamBID)

	candidates, err := h.matches.ListCandidates(h.ctx, member(2), gameID)
	require.NoError(t, err)
	assert.Equal(t, rotation.StageFirstRotation, candidates.Stage)
	require.Len(t, candidates.Candidates, 3)
	assert.Equal(t, teams[5], candidates.Candidates[0].Team.ID)
	assert.Equal(t, rotation.TierNeverPlayed, candidates.Candidates[0].Tier)
	assert.Equal(t, teams[2], candidates.Candidates[1].Team.ID)
	assert.Equal(t, rotation.TierLossOnly, candidates.Candidates[1].Tier)
	assert.Equal(t, teams[1], candidates.Candidates[2].Team.ID)
	assert.Equal(t, rotation.TierWinner, candidates.Candidates[2].Tier)
}

func TestMatchService_KnockoutAfterEveryTeamPlayed(t *testing.T) {
	h := newHarness(t, harnessOptions{members: 3, maxTeams: 3, maxPlayersPerTeam: 1})
	gameID, teams := h.setupOnePlayerTeams(3)

	first := h.play(gameID, 3, 0)
	require.NotNil(t, first.NextMatch)
	assert.True(t, first.NextMatch.Pairs(teams[1], teams[3]))

	second := h.play(gameID, 0, 2)
	assert.Equal(t, rotation.StageFirstRotation, second.Stage)
	assert.Equal(t, teams[3], second.Match.WinnerID)
	require.NotNil(t, second.NextMatch)
	assert.Equal(t, teams[3], second.NextMatch.TeamAID)
	assert.Equal(t, teams[2], second.NextMatch.TeamBID)

	// Every team has played: a single-goal lead now wins.
	third := h.play(gameID, 1, 0)
	assert.Equal(t, rotation.StageKnockout, third.Stage)
	assert.Equal(t, teams[3], third.Match.WinnerID)
	require.NotNil(t, third.NextMatch)
	assert.Equal(t, teams[3], third.NextMatch.TeamAID)

	// Knockout draw with goals: no toss, waiting teams go next.
	fourth := h.play(gameID, 2, 2)
	assert.Equal(t, rotation.StageKnockout, fourth.Stage)
	assert.True(t, fourth.Match.IsDraw)
	assert.False(t, fourth.CoinTossRequired)
	assert.Equal(t, match.CoinTossNone, fourth.Match.CoinTossType)
	require.NotNil(t, fourth.NextMatch)
	assert.False(t, fourth.NextMatch.RequiresCoinToss)
}

func TestMatchService_NarrowFirstRotationWinIsDrawDecider(t *testing.T) {
	h := newHarness(t, harnessOptions{members: 3, maxTeams: 3, maxPlayersPerTeam: 1})
	gameID, _ := h.setupOnePlayerTeams(3)

	result := h.play(gameID, 1, 0)
	assert.True(t, result.Match.IsDraw)
	assert.Empty(t, result.Match.WinnerID)
	assert.Equal(t, match.CoinTossDrawDecider, result.Match.CoinTossType)
	assert.True(t, result.CoinTossRequired)
	assert.Nil(t, result.NextMatch)
}

func TestMatchService_TimerExpiryCompletesOnce(t *testing.T) {
	h := newHarness(t, harnessOptions{members: 3, maxTeams: 3, maxPlayersPerTeam: 1})
	gameID, teams := h.setupOnePlayerTeams(3)

	_, err := h.matches.StartTimer(h.ctx, admin, gameID)
	require.NoError(t, err)
	_, err = h.matches.StartScheduledMatch(h.ctx, admin, gameID)
	require.NoError(t, err)
	_, err = h.matches.UpdateScore(h.ctx, admin, gameID, usecase.ScoreInput{TeamID: teams[1], Action: usecase.ScoreIncrement})
	require.NoError(t, err)

	h.clock.Advance(8 * time.Minute)

	state, err := h.matches.GetState(h.ctx, member(2), gameID)
	require.NoError(t, err)
	assert.True(t, state.AutoCompleted)
	assert.Nil(t, state.CurrentMatch)
	require.Len(t, state.CompletedMatches, 1)
	assert.True(t, state.CompletedMatches[0].AutoCompleted)
	assert.True(t, state.CompletedMatches[0].IsDraw)
	assert.False(t, state.Game.Timer.Running)
	assert.Equal(t, 420, state.RemainingSeconds)
	require.NotNil(t, state.PendingCoinToss)

	again, err := h.matches.GetState(h.ctx, member(2), gameID)
	require.NoError(t, err)
	assert.False(t, again.AutoCompleted)
	assert.Len(t, again.CompletedMatches, 1)
}

func TestMatchService_ExpiryWithoutRunningMatchResetsTimer(t *testing.T) {
	h := newHarness(t, harnessOptions{members: 3, maxTeams: 3, maxPlayersPerTeam: 1})
	gameID, _ := h.setupOnePlayerTeams(3)

	_, err := h.matches.StartTimer(h.ctx, admin, gameID)
	require.NoError(t, err)
	h.clock.Advance(10 * time.Minute)

	state, err := h.matches.GetState(h.ctx, admin, gameID)
	require.NoError(t, err)
	assert.False(t, state.AutoCompleted)
	assert.False(t, state.Game.Timer.Running)
	assert.Empty(t, state.CompletedMatches)
	require.NotNil(t, state.UpcomingMatch)
}

func TestExpirySweepService_Run(t *testing.T) {
	h := newHarness(t, harnessOptions{members: 3, maxTeams: 3, maxPlayersPerTeam: 1})
	gameID, _ := h.setupOnePlayerTeams(3)

	_, err := h.matches.StartTimer(h.ctx, admin, gameID)
	require.NoError(t, err)
	_, err = h.matches.StartScheduledMatch(h.ctx, admin, gameID)
	require.NoError(t, err)

	idle, err := h.sweep.Run(h.ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, idle.Checked)
	assert.Zero(t, idle.Completed)

	h.clock.Advance(8 * time.Minute)

	result, err := h.sweep.Run(h.ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Checked)
	assert.Equal(t, 1, result.Completed)
	assert.Zero(t, result.Failed)
	require.Len(t, result.Games, 1)
	assert.Equal(t, gameID, result.Games[0].GameID)

	after, err := h.sweep.Run(h.ctx)
	require.NoError(t, err)
	assert.Zero(t, after.Checked)

	state, err := h.matches.GetState(h.ctx, admin, gameID)
	require.NoError(t, err)
	assert.False(t, state.AutoCompleted)
	assert.Len(t, state.CompletedMatches, 1)
}

func TestMatchService_SingleActiveMatch(t *testing.T) {
	h := newHarness(t, harnessOptions{members: 3, maxTeams: 3, maxPlayersPerTeam: 1})
	gameID, teams := h.setupOnePlayerTeams(3)

	created, err := h.matches.CreateMatch(h.ctx, admin, gameID, usecase.CreateMatchInput{TeamAID: teams[2], TeamBID: teams[3]})
	require.NoError(t, err)
	assert.Equal(t, 1, created.Sequence)
	assert.Equal(t, match.StatusScheduled, created.Status)

	_, err = h.matches.CreateMatch(h.ctx, admin, gameID, usecase.CreateMatchInput{TeamAID: teams[1], TeamBID: teams[2]})
	require.ErrorIs(t, err, usecase.ErrConflict)

	_, err = h.matches.StartScheduledMatch(h.ctx, admin, gameID)
	require.ErrorIs(t, err, usecase.ErrPrecondition)
	assert.Equal(t, "start the timer first", usecase.RemediationHint(err))

	// The timer must not spawn a second match once one is scheduled.
	_, err = h.matches.StartTimer(h.ctx, admin, gameID)
	require.NoError(t, err)
	started, err := h.matches.StartScheduledMatch(h.ctx, admin, gameID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, started.ID)

	_, err = h.matches.StartScheduledMatch(h.ctx, admin, gameID)
	require.ErrorIs(t, err, usecase.ErrConflict)
}

func TestMatchService_CreateMatchValidation(t *testing.T) {
	h := newHarness(t, harnessOptions{members: 3, maxTeams: 3, maxPlayersPerTeam: 1})
	gameID, teams := h.setupOnePlayerTeams(3)

	_, err := h.matches.CreateMatch(h.ctx, admin, gameID, usecase.CreateMatchInput{TeamAID: teams[1], TeamBID: teams[1]})
	require.ErrorIs(t, err, usecase.ErrInvalidInput)

	_, err = h.matches.CreateMatch(h.ctx, admin, gameID, usecase.CreateMatchInput{TeamAID: teams[1]})
	require.ErrorIs(t, err, usecase.ErrInvalidInput)

	_, err = h.matches.CreateMatch(h.ctx, admin, gameID, usecase.CreateMatchInput{TeamAID: teams[1], TeamBID: "missing"})
	require.ErrorIs(t, err, usecase.ErrNotFound)
}

func TestMatchService_UpdateScore(t *testing.T) {
	h := newHarness(t, harnessOptions{members: 3, maxTeams: 3, maxPlayersPerTeam: 1})
	gameID, teams := h.setupOnePlayerTeams(3)

	_, err := h.matches.UpdateScore(h.ctx, admin, gameID, usecase.ScoreInput{TeamID: teams[1], Action: usecase.ScoreIncrement})
	require.ErrorIs(t, err, usecase.ErrPrecondition)

	_, err = h.matches.StartTimer(h.ctx, admin, gameID)
	require.NoError(t, err)
	_, err = h.matches.StartScheduledMatch(h.ctx, admin, gameID)
	require.NoError(t, err)

	m, err := h.matches.UpdateScore(h.ctx, admin, gameID, usecase.ScoreInput{TeamID: teams[1], Action: usecase.ScoreIncrement, Value: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, m.ScoreA)
	assert.Zero(t, m.ScoreB)

	m, err = h.matches.UpdateScore(h.ctx, admin, gameID, usecase.ScoreInput{TeamID: teams[1], Action: usecase.ScoreDecrement, Value: 5})
	require.NoError(t, err)
	assert.Zero(t, m.ScoreA)

	m, err = h.matches.UpdateScore(h.ctx, admin, gameID, usecase.ScoreInput{TeamID: teams[2], Action: "SET", Value: 4})
	require.NoError(t, err)
	assert.Equal(t, 4, m.ScoreB)
	assert.Equal(t, match.StatusInProgress, m.Status)

	_, err = h.matches.UpdateScore(h.ctx, admin, gameID, usecase.ScoreInput{TeamID: teams[3], Action: usecase.ScoreIncrement})
	require.ErrorIs(t, err, usecase.ErrInvalidInput)

	_, err = h.matches.UpdateScore(h.ctx, admin, gameID, usecase.ScoreInput{TeamID: teams[1], Action: "double"})
	require.ErrorIs(t, err, usecase.ErrInvalidInput)

	state, err := h.matches.GetState(h.ctx, admin, gameID)
	require.NoError(t, err)
	goals := make(map[string]int)
	for _, roster := range state.Teams {
		goals[roster.Team.ID] = roster.Team.Goals
	}
	assert.Zero(t, goals[teams[1]])
	assert.Equal(t, 4, goals[teams[2]])
}

func TestMatchService_Permissions(t *testing.T) {
	h := newHarness(t, harnessOptions{members: 3, maxTeams: 3, maxPlayersPerTeam: 1})
	gameID, teams := h.setupOnePlayerTeams(3)

	_, err := h.matches.GetState(h.ctx, usecase.Actor{}, gameID)
	require.ErrorIs(t, err, usecase.ErrUnauthorized)

	_, err = h.matches.GetState(h.ctx, usecase.Actor{UserID: "user-pending"}, gameID)
	require.ErrorIs(t, err, usecase.ErrForbidden)

	_, err = h.matches.GetState(h.ctx, admin, "missing-game")
	require.ErrorIs(t, err, usecase.ErrNotFound)

	_, err = h.matches.StartTimer(h.ctx, member(1), gameID)
	require.ErrorIs(t, err, usecase.ErrForbidden)

	g, err := h.matches.StartTimer(h.ctx, admin, gameID)
	require.NoError(t, err)
	// Team 3 sits out the opening match, so its captain referees.
	assert.Equal(t, memberID(3), g.RefereeID)

	_, err = h.matches.StartScheduledMatch(h.ctx, member(3), gameID)
	require.NoError(t, err)
	_, err = h.matches.UpdateScore(h.ctx, member(3), gameID, usecase.ScoreInput{TeamID: teams[2], Action: usecase.ScoreIncrement})
	require.NoError(t, err)

	_, err = h.matches.EndMatch(h.ctx, member(1), gameID)
	require.ErrorIs(t, err, usecase.ErrForbidden)

	_, err = h.matches.CancelMatch(h.ctx, member(3), gameID)
	require.ErrorIs(t, err, usecase.ErrForbidden)

	cancelled, err := h.matches.CancelMatch(h.ctx, admin, gameID)
	require.NoError(t, err)
	assert.Equal(t, match.StatusCancelled, cancelled.Status)

	state, err := h.matches.GetState(h.ctx, admin, gameID)
	require.NoError(t, err)
	assert.Nil(t, state.CurrentMatch)
	assert.Empty(t, state.CompletedMatches)
	assert.False(t, state.Game.Timer.Running)

	_, err = h.matches.CancelMatch(h.ctx, admin, gameID)
	require.ErrorIs(t, err, usecase.ErrNotFound)
}

func TestMatchService_ResolveCoinTossValidation(t *testing.T) {
	h := newHarness(t, harnessOptions{members: 3, maxTeams: 3, maxPlayersPerTeam: 1})
	gameID, _ := h.setupOnePlayerTeams(3)

	_, err := h.matches.ResolveCoinToss(h.ctx, admin, gameID, usecase.CoinTossInput{TeamAChoice: "heads", TeamBChoice: "heads"})
	require.ErrorIs(t, err, usecase.ErrInvalidInput)
	require.True(t, errors.Is(err, rotation.ErrIdenticalChoices))

	_, err = h.matches.ResolveCoinToss(h.ctx, admin, gameID, usecase.CoinTossInput{TeamAChoice: "heads"})
	require.ErrorIs(t, err, rotation.ErrMissingChoice)

	_, err = h.matches.ResolveCoinToss(h.ctx, admin, gameID, usecase.CoinTossInput{TeamAChoice: "edge", TeamBChoice: "tails"})
	require.ErrorIs(t, err, rotation.ErrInvalidChoice)

	_, err = h.matches.ResolveCoinToss(h.ctx, admin, gameID, usecase.CoinTossInput{TeamAChoice: "heads", TeamBChoice: "tails", Type: "best_of_three"})
	require.ErrorIs(t, err, match.ErrUnknownCoinTossType)

	_, err = h.matches.ResolveCoinToss(h.ctx, admin, gameID, usecase.CoinTossInput{TeamAChoice: "heads", TeamBChoice: "tails"})
	require.ErrorIs(t, err, usecase.ErrPrecondition)

	h.play(gameID, 0, 0)

	_, err = h.matches.ResolveCoinToss(h.ctx, member(1), gameID, usecase.CoinTossInput{TeamAChoice: "heads", TeamBChoice: "tails"})
	require.ErrorIs(t, err, usecase.ErrForbidden)
}

func TestMatchService_RefereeNeverCaptainsAPlayingTeam(t *testing.T) {
	h := newHarness(t, harnessOptions{members: 3, maxTeams: 3, maxPlayersPerTeam: 1})

	var gameID string
	playerIDs := map[int]string{}
	for i := 1; i <= 3; i++ {
		out, err := h.roster.CheckIn(h.ctx, member(i), testGroupID)
		require.NoError(t, err)
		gameID, playerIDs[i] = out.Game.ID, out.Player.ID
		h.clock.Advance(time.Minute)
	}
	for number := 1; number <= 2; number++ {
		_, err := h.roster.AssignPlayerTeam(h.ctx, admin, gameID, playerIDs[number], number)
		require.NoError(t, err)
	}
	teams := h.teamIDs(gameID)
	require.Len(t, teams, 3)

	// Only team 3 has a captain, so it referees 1 v 2.
	first := h.play(gameID, 2, 0)
	assert.Equal(t, memberID(3), first.Match.RefereeID)
	require.NotNil(t, first.NextMatch)
	assert.True(t, first.NextMatch.Pairs(teams[1], teams[3]))
	assert.Empty(t, first.NextMatch.RefereeID)

	state, err := h.matches.GetState(h.ctx, admin, gameID)
	require.NoError(t, err)
	assert.Empty(t, state.Game.RefereeID)

	_, err = h.matches.StartTimer(h.ctx, member(3), gameID)
	require.ErrorIs(t, err, usecase.ErrForbidden)

	_, err = h.matches.AssignReferee(h.ctx, member(3), gameID, usecase.AssignRefereeInput{UserID: userID(3)})
	require.ErrorIs(t, err, usecase.ErrForbidden)
	_, err = h.matches.AssignReferee(h.ctx, admin, gameID, usecase.AssignRefereeInput{UserID: "user-pending"})
	require.ErrorIs(t, err, usecase.ErrInvalidInput)
	_, err = h.matches.AssignReferee(h.ctx, admin, gameID, usecase.AssignRefereeInput{UserID: " "})
	require.ErrorIs(t, err, usecase.ErrInvalidInput)

	g, err := h.matches.AssignReferee(h.ctx, admin, gameID, usecase.AssignRefereeInput{UserID: userID(2)})
	require.NoError(t, err)
	assert.Equal(t, memberID(2), g.RefereeID)

	state, err = h.matches.GetState(h.ctx, admin, gameID)
	require.NoError(t, err)
	require.NotNil(t, state.UpcomingMatch)
	assert.Equal(t, memberID(2), state.UpcomingMatch.RefereeID)

	_, err = h.matches.StartTimer(h.ctx, member(2), gameID)
	require.NoError(t, err)
	_, err = h.matches.StartScheduledMatch(h.ctx, member(2), gameID)
	require.NoError(t, err)
}

func TestMatchService_PairingThatDrewEarlierTossesBeforeRematch(t *testing.T) {
	h := newHarness(t, harnessOptions{members: 3, maxTeams: 3, maxPlayersPerTeam: 1})
	gameID, teams := h.setupOnePlayerTeams(3)

	drawn := h.play(gameID, 1, 1)
	require.True(t, drawn.Match.IsDraw)
	assert.Equal(t, match.CoinTossDrawDecider, drawn.Match.CoinTossType)

	h.coin.faces = []match.Face{match.Heads}
	decider, err := h.matches.ResolveCoinToss(h.ctx, admin, gameID, usecase.CoinTossInput{TeamAChoice: "heads", TeamBChoice: "tails"})
	require.NoError(t, err)
	require.NotNil(t, decider.NextMatch)
	assert.True(t, decider.NextMatch.Pairs(teams[1], teams[3]))
	assert.False(t, decider.NextMatch.RequiresCoinToss)

	// Team 1 wins outright and is pinned against team 2, which it drew with.
	decisive := h.play(gameID, 3, 0)
	assert.Equal(t, teams[1], decisive.Match.WinnerID)
	require.NotNil(t, decisive.NextMatch)
	rematch := decisive.NextMatch
	assert.Equal(t, teams[1], rematch.TeamAID)
	assert.Equal(t, teams[2], rematch.TeamBID)
	assert.True(t, rematch.RequiresCoinToss)
	assert.Equal(t, match.CoinTossStartingTeam, rematch.CoinTossType)

	_, err = h.matches.StartTimer(h.ctx, admin, gameID)
	require.NoError(t, err)
	_, err = h.matches.StartScheduledMatch(h.ctx, admin, gameID)
	require.ErrorIs(t, err, usecase.ErrPrecondition)
	assert.Equal(t, "resolve the coin toss first", usecase.RemediationHint(err))

	state, err := h.matches.GetState(h.ctx, admin, gameID)
	require.NoError(t, err)
	require.NotNil(t, state.PendingCoinToss)
	assert.Equal(t, rematch.ID, state.PendingCoinToss.MatchID)
	assert.Equal(t, match.CoinTossStartingTeam, state.PendingCoinToss.Type)
	assert.Nil(t, state.UpcomingMatch)

	h.coin.faces = []match.Face{match.Heads}
	toss, err := h.matches.ResolveCoinToss(h.ctx, admin, gameID, usecase.CoinTossInput{TeamAChoice: "tails", TeamBChoice: "heads"})
	require.NoError(t, err)
	assert.Equal(t, teams[2], toss.Toss.WinnerTeamID)
	assert.Equal(t, teams[2], toss.Match.TeamAID)

	started, err := h.matches.StartScheduledMatch(h.ctx, admin, gameID)
	require.NoError(t, err)
	assert.Equal(t, rematch.ID, started.ID)
	assert.Equal(t, match.StatusInProgress, started.Status)
}

func TestMatchService_ExpiryIgnoresGameThatIsNotInProgress(t *testing.T) {
	h := newHarness(t, harnessOptions{members: 3, maxTeams: 3, maxPlayersPerTeam: 1})
	gameID, _ := h.setupOnePlayerTeams(3)

	_, err := h.matches.StartTimer(h.ctx, admin, gameID)
	require.NoError(t, err)
	_, err = h.matches.StartScheduledMatch(h.ctx, admin, gameID)
	require.NoError(t, err)

	err = h.store.WithinTx(h.ctx, func(ctx context.Context, repos usecase.Repositories) error {
		g, _, err := repos.Games.Get(ctx, gameID)
		if err != nil {
			return err
		}
		g.Status = game.StatusCompleted
		return repos.Games.Update(ctx, g)
	})
	require.NoError(t, err)

	h.clock.Advance(8 * time.Minute)

	completed, err := h.matches.ExpireIfDue(h.ctx, gameID)
	require.NoError(t, err)
	assert.False(t, completed)

	state, err := h.matches.GetState(h.ctx, admin, gameID)
	require.NoError(t, err)
	assert.False(t, state.AutoCompleted)
	require.NotNil(t, state.CurrentMatch)
	assert.Empty(t, state.CompletedMatches)
}
