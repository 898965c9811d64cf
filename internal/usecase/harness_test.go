package usecase_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/riskibarqy/gameday-rotation/internal/domain/group"
	"github.com/riskibarqy/gameday-rotation/internal/domain/match"
	"github.com/riskibarqy/gameday-rotation/internal/infrastructure/repository/memory"
	idgen "github.com/riskibarqy/gameday-rotation/internal/platform/id"
	"github.com/riskibarqy/gameday-rotation/internal/platform/logging"
	"github.com/riskibarqy/gameday-rotation/internal/usecase"
	"github.com/stretchr/testify/require"
)

const (
	testGroupID = "grp-test"
	adminUserID = "user-admin"
)

var admin = usecase.Actor{UserID: adminUserID}

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time {
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// scriptedCoin returns the queued faces in order, then heads.
type scriptedCoin struct {
	faces []match.Face
}

func (c *scriptedCoin) Flip() match.Face {
	if len(c.faces) == 0 {
		return match.Heads
	}
	face := c.faces[0]
	c.faces = c.faces[1:]
	return face
}

type harness struct {
	t       *testing.T
	ctx     context.Context
	clock   *testClock
	coin    *scriptedCoin
	store   *memory.Store
	groups  *memory.GroupRepository
	matches *usecase.MatchService
	roster  *usecase.GameDayService
	sweep   *usecase.ExpirySweepService
}

type harnessOptions struct {
	members           int
	maxTeams          int
	maxPlayersPerTeam int
	events            usecase.EventPublisher
}

func newHarness(t *testing.T, opts harnessOptions) *harness {
	t.Helper()

	grp := group.Group{
		ID:                testGroupID,
		Name:              "Test Group",
		MaxTeams:          opts.maxTeams,
		MaxPlayersPerTeam: opts.maxPlayersPerTeam,
		Timezone:          "UTC",
	}
	require.NoError(t, grp.Validate())

	memberships := []group.Membership{
		{ID: "mem-admin", GroupID: testGroupID, UserID: adminUserID, Name: "Admin", Role: group.RoleAdmin, Approved: true},
		{ID: "mem-pending", GroupID: testGroupID, UserID: "user-pending", Name: "Pending", Role: group.RoleMember, Approved: false},
	}
	for i := 1; i <= opts.members; i++ {
		memberships = append(memberships, group.Membership{
			ID:       memberID(i),
			GroupID:  testGroupID,
			UserID:   userID(i),
			Name:     fmt.Sprintf("Player %d", i),
			Role:     group.RoleMember,
			Approved: true,
		})
	}

	clock := &testClock{now: time.Date(2026, time.October, 18, 9, 0, 0, 0, time.UTC)}
	coin := &scriptedCoin{}
	store := memory.NewStore()
	groups := memory.NewGroupRepository([]group.Group{grp}, memberships)
	ids := idgen.NewSequenceGenerator("id")
	logger := logging.NewNop()

	matches := usecase.NewMatchService(store, groups, ids, coin, opts.events, nil, 7*time.Minute, logger)
	usecase.SetMatchClock(matches, clock.Now)
	roster := usecase.NewGameDayService(store, groups, ids, opts.events, nil, 7*time.Minute, logger)
	usecase.SetGameDayClock(roster, clock.Now)

	return &harness{
		t:       t,
		ctx:     context.Background(),
		clock:   clock,
		coin:    coin,
		store:   store,
		groups:  groups,
		matches: matches,
		roster:  roster,
		sweep:   usecase.NewExpirySweepService(store.Games(), matches, nil, 2, logger),
	}
}

func memberID(i int) string {
	return fmt.Sprintf("mem-%d", i)
}

func userID(i int) string {
	return fmt.Sprintf("user-%d", i)
}

func member(i int) usecase.Actor {
	return usecase.Actor{UserID: userID(i)}
}

// checkIn registers members 1..n in order, a minute apart.
func (h *harness) checkIn(n int) string {
	h.t.Helper()

	var gameID string
	for i := 1; i <= n; i++ {
		out, err := h.roster.CheckIn(h.ctx, member(i), testGroupID)
		require.NoError(h.t, err)
		gameID = out.Game.ID
		h.clock.Advance(time.Minute)
	}
	return gameID
}

// setupOnePlayerTeams fills teams 1..n with one player each. Members 1 and 2
// are drafted as captains, the rest overflow into teams 3 and up.
func (h *harness) setupOnePlayerTeams(n int) (string, map[int]string) {
	h.t.Helper()

	gameID := h.checkIn(n)
	for number := 1; number <= 2; number++ {
		_, err := h.roster.AssignCaptain(h.ctx, admin, gameID, usecase.AssignCaptainInput{
			MemberID:   memberID(number),
			TeamNumber: number,
		})
		require.NoError(h.t, err)
	}
	return gameID, h.teamIDs(gameID)
}

func (h *harness) teamIDs(gameID string) map[int]string {
	h.t.Helper()

	state, err := h.matches.GetState(h.ctx, admin, gameID)
	require.NoError(h.t, err)
	out := make(map[int]string, len(state.Teams))
	for _, roster := range state.Teams {
		out[roster.Team.Number] = roster.Team.ID
	}
	return out
}

// play starts the scheduled match, sets the final score and ends it.
func (h *harness) play(gameID string, scoreA, scoreB int) usecase.EndMatchResult {
	h.t.Helper()

	_, err := h.matches.StartTimer(h.ctx, admin, gameID)
	require.NoError(h.t, err)
	m, err := h.matches.StartScheduledMatch(h.ctx, admin, gameID)
	require.NoError(h.t, err)

	h.clock.Advance(time.Minute)
	_, err = h.matches.UpdateScore(h.ctx, admin, gameID, usecase.ScoreInput{TeamID: m.TeamAID, Action: usecase.ScoreSet, Value: scoreA})
	require.NoError(h.t, err)
	_, err = h.matches.UpdateScore(h.ctx, admin, gameID, usecase.ScoreInput{TeamID: m.TeamBID, Action: usecase.ScoreSet, Value: scoreB})
	require.NoError(h.t, err)

	h.clock.Advance(time.Minute)
	result, err := h.matches.EndMatch(h.ctx, admin, gameID)
	require.NoError(h.t, err)
	return result
}
