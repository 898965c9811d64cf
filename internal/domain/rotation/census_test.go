package rotation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/gameday-rotation/internal/domain/player"
	"github.com/riskibarqy/gameday-rotation/internal/domain/team"
)

func TestTeamsWithPlayers(t *testing.T) {
	all := []team.Team{
		{ID: "t3", Number: 3},
		{ID: "t1", Number: 1},
		{ID: "t2", Number: 2},
		{ID: "t4", Number: 4},
	}
	players := []player.Player{
		{ID: "p1", TeamID: "t3"},
		{ID: "p2", TeamID: ""},
	}
	manuals := []player.ManualParticipant{
		{ID: "m1", Name: "Walk-in", TeamNumber: 1},
		{ID: "m2", Name: "Pool", TeamNumber: 0},
	}

	got := TeamsWithPlayers(all, players, manuals)

	require.Len(t, got, 2)
	assert.Equal(t, []string{"t1", "t3"}, []string{got[0].ID, got[1].ID})
}

func TestTeamsWithPlayers_Empty(t *testing.T) {
	got := TeamsWithPlayers(teams(1, 2), nil, nil)
	if len(got) != 0 {
		t.Fatalf("expected no populated teams, got %d", len(got))
	}
}

func TestRosterSize(t *testing.T) {
	tm := team.Team{ID: "t2", Number: 2}
	players := []player.Player{{TeamID: "t2"}, {TeamID: "t2"}, {TeamID: "t1"}}
	manuals := []player.ManualParticipant{{TeamNumber: 2}, {TeamNumber: 3}}

	if got := RosterSize(tm, players, manuals); got != 3 {
		t.Fatalf("unexpected roster size %d", got)
	}
}
