package usecase_test

import (
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/gameday-rotation/internal/domain/game"
	"github.com/riskibarqy/gameday-rotation/internal/domain/player"
	usecasemock "github.com/riskibarqy/gameday-rotation/internal/mocks/usecase"
	"github.com/riskibarqy/gameday-rotation/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGameDayService_CheckInOverflow(t *testing.T) {
	h := newHarness(t, harnessOptions{members: 8, maxTeams: 3, maxPlayersPerTeam: 2})

	var results []usecase.CheckInResult
	for i := 1; i <= 7; i++ {
		out, err := h.roster.CheckIn(h.ctx, member(i), testGroupID)
		require.NoError(t, err)
		results = append(results, out)
	}

	for i := 0; i < 4; i++ {
		assert.Zero(t, results[i].TeamNumber, "arrival %d should wait for the draft", i+1)
		assert.Equal(t, player.StatusArrived, results[i].Player.Status)
	}
	assert.Equal(t, 3, results[4].TeamNumber)
	assert.True(t, results[4].IsCaptain)
	assert.Equal(t, 3, results[5].TeamNumber)
	assert.False(t, results[5].IsCaptain)
	assert.Zero(t, results[6].TeamNumber, "team 3 is full and the group allows no team 4")

	gameID := results[0].Game.ID
	assert.Equal(t, game.StatusScheduled, results[0].Game.Status)
	assert.Equal(t, "2026-10-18", results[0].Game.Date)
	for _, out := range results {
		assert.Equal(t, gameID, out.Game.ID, "one game per group and day")
	}

	state, err := h.matches.GetState(h.ctx, admin, gameID)
	require.NoError(t, err)
	require.Len(t, state.Teams, 1)
	assert.Equal(t, 3, state.Teams[0].Team.Number)
	assert.Equal(t, memberID(5), state.Teams[0].Team.CaptainID)
	assert.Len(t, state.Teams[0].Players, 2)
	assert.True(t, state.Teams[0].Populated)
	assert.Len(t, state.UnassignedPlayers, 5)

	_, err = h.roster.CheckIn(h.ctx, member(1), testGroupID)
	require.ErrorIs(t, err, usecase.ErrConflict)
}

func TestGameDayService_CheckInAccess(t *testing.T) {
	h := newHarness(t, harnessOptions{members: 1, maxTeams: 2, maxPlayersPerTeam: 5})

	_, err := h.roster.CheckIn(h.ctx, usecase.Actor{UserID: "user-pending"}, testGroupID)
	require.ErrorIs(t, err, usecase.ErrForbidden)

	_, err = h.roster.CheckIn(h.ctx, usecase.Actor{}, testGroupID)
	require.ErrorIs(t, err, usecase.ErrUnauthorized)

	_, err = h.roster.CheckIn(h.ctx, member(1), " ")
	require.ErrorIs(t, err, usecase.ErrInvalidInput)

	_, err = h.roster.CheckIn(h.ctx, member(1), "other-group")
	require.ErrorIs(t, err, usecase.ErrForbidden)
}

func TestGameDayService_AssignCaptain(t *testing.T) {
	h := newHarness(t, harnessOptions{members: 6, maxTeams: 3, maxPlayersPerTeam: 2})
	gameID := h.checkIn(3)

	_, err := h.roster.AssignCaptain(h.ctx, admin, gameID, usecase.AssignCaptainInput{MemberID: memberID(1), TeamNumber: 1})
	require.ErrorIs(t, err, usecase.ErrPrecondition)
	assert.Equal(t, "wait until 4 players have checked in", usecase.RemediationHint(err))

	for i := 4; i <= 5; i++ {
		_, err := h.roster.CheckIn(h.ctx, member(i), testGroupID)
		require.NoError(t, err)
		h.clock.Advance(time.Minute)
	}

	_, err = h.roster.AssignCaptain(h.ctx, member(5), gameID, usecase.AssignCaptainInput{MemberID: memberID(1), TeamNumber: 1})
	require.ErrorIs(t, err, usecase.ErrForbidden)

	captained, err := h.roster.AssignCaptain(h.ctx, member(2), gameID, usecase.AssignCaptainInput{MemberID: memberID(1), TeamNumber: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, captained.Number)
	assert.Equal(t, memberID(1), captained.CaptainID)

	_, err = h.roster.AssignCaptain(h.ctx, admin, gameID, usecase.AssignCaptainInput{MemberID: memberID(1), TeamNumber: 2})
	require.ErrorIs(t, err, usecase.ErrConflict)

	_, err = h.roster.AssignCaptain(h.ctx, admin, gameID, usecase.AssignCaptainInput{MemberID: memberID(2), TeamNumber: 3})
	require.ErrorIs(t, err, usecase.ErrInvalidInput)

	_, err = h.roster.AssignCaptain(h.ctx, admin, gameID, usecase.AssignCaptainInput{MemberID: memberID(6), TeamNumber: 2})
	require.ErrorIs(t, err, usecase.ErrNotFound)

	state, err := h.matches.GetState(h.ctx, admin, gameID)
	require.NoError(t, err)
	require.Len(t, state.Teams, 2)
	assert.Equal(t, 1, state.Teams[0].Team.Number)
	require.Len(t, state.Teams[0].Players, 1)
	assert.Equal(t, memberID(1), state.Teams[0].Players[0].MemberID)
}

func TestGameDayService_AssignPlayerTeam(t *testing.T) {
	h := newHarness(t, harnessOptions{members: 5, maxTeams: 3, maxPlayersPerTeam: 2})

	var players []player.Player
	var gameID string
	for i := 1; i <= 5; i++ {
		out, err := h.roster.CheckIn(h.ctx, member(i), testGroupID)
		require.NoError(t, err)
		players = append(players, out.Player)
		gameID = out.Game.ID
	}

	_, err := h.roster.AssignPlayerTeam(h.ctx, member(1), gameID, players[0].ID, 3)
	require.ErrorIs(t, err, usecase.ErrForbidden)

	moved, err := h.roster.AssignPlayerTeam(h.ctx, admin, gameID, players[0].ID, 3)
	require.NoError(t, err)
	assert.NotEmpty(t, moved.TeamID)

	_, err = h.roster.AssignPlayerTeam(h.ctx, admin, gameID, players[1].ID, 3)
	require.ErrorIs(t, err, usecase.ErrConflict)

	_, err = h.roster.AssignPlayerTeam(h.ctx, admin, gameID, players[1].ID, 9)
	require.ErrorIs(t, err, usecase.ErrInvalidInput)

	_, err = h.roster.AssignPlayerTeam(h.ctx, admin, gameID, "missing", 1)
	require.ErrorIs(t, err, usecase.ErrNotFound)

	// The overflow captain loses the armband when moved off team 3.
	captain, err := h.roster.AssignPlayerTeam(h.ctx, admin, gameID, players[4].ID, 0)
	require.NoError(t, err)
	assert.Empty(t, captain.TeamID)

	state, err := h.matches.GetState(h.ctx, admin, gameID)
	require.NoError(t, err)
	require.Len(t, state.Teams, 1)
	assert.Empty(t, state.Teams[0].Team.CaptainID)
	require.Len(t, state.Teams[0].Players, 1)
	assert.Equal(t, players[0].ID, state.Teams[0].Players[0].ID)
}

func TestGameDayService_ManualParticipants(t *testing.T) {
	h := newHarness(t, harnessOptions{members: 2, maxTeams: 2, maxPlayersPerTeam: 1})
	gameID := h.checkIn(1)

	_, err := h.roster.AddManualParticipant(h.ctx, admin, gameID, usecase.ManualParticipantInput{Name: "  "})
	require.ErrorIs(t, err, usecase.ErrInvalidInput)

	_, err = h.roster.AddManualParticipant(h.ctx, member(1), gameID, usecase.ManualParticipantInput{Name: "Walk-in"})
	require.ErrorIs(t, err, usecase.ErrForbidden)

	walkIn, err := h.roster.AddManualParticipant(h.ctx, admin, gameID, usecase.ManualParticipantInput{Name: "Walk-in", Phone: "0812", TeamNumber: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, walkIn.TeamNumber)
	assert.Equal(t, gameID, walkIn.GameID)

	_, err = h.roster.AddManualParticipant(h.ctx, admin, gameID, usecase.ManualParticipantInput{Name: "Late walk-in", TeamNumber: 2})
	require.ErrorIs(t, err, usecase.ErrConflict)

	pooled, err := h.roster.AddManualParticipant(h.ctx, admin, gameID, usecase.ManualParticipantInput{Name: "Late walk-in"})
	require.NoError(t, err)
	assert.Zero(t, pooled.TeamNumber)

	state, err := h.matches.GetState(h.ctx, admin, gameID)
	require.NoError(t, err)
	require.Len(t, state.Teams, 1)
	assert.True(t, state.Teams[0].Populated, "a manual participant populates the team")
	assert.Len(t, state.ParticipantPool, 1)

	moved, err := h.roster.AssignManualParticipantTeam(h.ctx, admin, gameID, walkIn.ID, 0)
	require.NoError(t, err)
	assert.Zero(t, moved.TeamNumber)

	_, err = h.roster.AssignManualParticipantTeam(h.ctx, admin, gameID, "missing", 1)
	require.ErrorIs(t, err, usecase.ErrNotFound)

	state, err = h.matches.GetState(h.ctx, admin, gameID)
	require.NoError(t, err)
	assert.False(t, state.Teams[0].Populated)
	assert.Len(t, state.ParticipantPool, 2)
}

func TestGameDayService_UpdatePlayerStats(t *testing.T) {
	h := newHarness(t, harnessOptions{members: 2, maxTeams: 2, maxPlayersPerTeam: 5})

	out, err := h.roster.CheckIn(h.ctx, member(1), testGroupID)
	require.NoError(t, err)
	gameID := out.Game.ID

	_, err = h.roster.UpdatePlayerStats(h.ctx, admin, gameID, out.Player.ID, player.Stats{Goals: -1})
	require.ErrorIs(t, err, usecase.ErrInvalidInput)

	_, err = h.roster.UpdatePlayerStats(h.ctx, member(2), gameID, out.Player.ID, player.Stats{Goals: 1})
	require.ErrorIs(t, err, usecase.ErrForbidden)

	updated, err := h.roster.UpdatePlayerStats(h.ctx, admin, gameID, out.Player.ID, player.Stats{Goals: 2, Assists: 1, YellowCards: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Goals)
	assert.Equal(t, 1, updated.Assists)
	assert.Equal(t, 1, updated.YellowCards)
	assert.Zero(t, updated.RedCards)
}

func TestGameDayService_PublishesAfterCommit(t *testing.T) {
	events := usecasemock.NewEventPublisher(t)
	h := newHarness(t, harnessOptions{members: 2, maxTeams: 2, maxPlayersPerTeam: 5, events: events})

	isCheckIn := mock.MatchedBy(func(e usecase.GameEvent) bool {
		return e.Type == usecase.EventPlayerCheckedIn && e.GameID != ""
	})
	events.On("PublishGameEvent", mock.Anything, isCheckIn).Return(nil).Once()

	_, err := h.roster.CheckIn(h.ctx, member(1), testGroupID)
	require.NoError(t, err)

	// A rejected check-in publishes nothing.
	_, err = h.roster.CheckIn(h.ctx, member(1), testGroupID)
	require.ErrorIs(t, err, usecase.ErrConflict)

	// Publishing is best effort.
	events.On("PublishGameEvent", mock.Anything, isCheckIn).Return(errors.New("relay down")).Once()
	_, err = h.roster.CheckIn(h.ctx, member(2), testGroupID)
	require.NoError(t, err)
}

func TestGameDayService_SelectPlayers(t *testing.T) {
	h := newHarness(t, harnessOptions{members: 4, maxTeams: 2, maxPlayersPerTeam: 2})
	gameID := h.checkIn(4)
	for number := 1; number <= 2; number++ {
		_, err := h.roster.AssignCaptain(h.ctx, admin, gameID, usecase.AssignCaptainInput{MemberID: memberID(number), TeamNumber: number})
		require.NoError(t, err)
	}

	_, err := h.roster.SelectPlayers(h.ctx, member(2), gameID, usecase.SelectPlayersInput{TeamNumber: 1, MemberIDs: []string{memberID(3)}})
	require.ErrorIs(t, err, usecase.ErrForbidden)

	_, err = h.roster.SelectPlayers(h.ctx, member(1), gameID, usecase.SelectPlayersInput{TeamNumber: 1, MemberIDs: []string{" ", ""}})
	require.ErrorIs(t, err, usecase.ErrInvalidInput)

	_, err = h.roster.SelectPlayers(h.ctx, admin, gameID, usecase.SelectPlayersInput{TeamNumber: 3, MemberIDs: []string{memberID(3)}})
	require.ErrorIs(t, err, usecase.ErrNotFound)

	// Team 1 has room for one more; the second pick is over capacity.
	picked, err := h.roster.SelectPlayers(h.ctx, member(1), gameID, usecase.SelectPlayersInput{
		TeamNumber: 1,
		MemberIDs:  []string{memberID(3), memberID(3), memberID(4), "mem-unknown"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, picked.Team.Number)
	require.Len(t, picked.Selected, 1)
	assert.Equal(t, memberID(3), picked.Selected[0].MemberID)
	assert.Equal(t, []string{memberID(4), "mem-unknown"}, picked.Skipped)

	picked, err = h.roster.SelectPlayers(h.ctx, admin, gameID, usecase.SelectPlayersInput{
		TeamNumber: 2,
		MemberIDs:  []string{memberID(3), memberID(4)},
	})
	require.NoError(t, err)
	require.Len(t, picked.Selected, 1)
	assert.Equal(t, memberID(4), picked.Selected[0].MemberID)
	assert.Equal(t, []string{memberID(3)}, picked.Skipped)

	state, err := h.matches.GetState(h.ctx, admin, gameID)
	require.NoError(t, err)
	assert.Empty(t, state.UnassignedPlayers)
	for _, roster := range state.Teams {
		assert.Len(t, roster.Players, 2)
	}
}
