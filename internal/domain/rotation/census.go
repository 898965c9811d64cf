package rotation

import (
	"github.com/riskibarqy/gameday-rotation/internal/domain/player"
	"github.com/riskibarqy/gameday-rotation/internal/domain/team"
)

// TeamsWithPlayers returns the teams that currently field at least one
// registered player or manual participant, ordered by team number.
// Empty teams never enter rotation.
func TeamsWithPlayers(teams []team.Team, players []player.Player, manuals []player.ManualParticipant) []team.Team {
	byID := make(map[string]int, len(players))
	for _, p := range players {
		if p.TeamID != "" {
			byID[p.TeamID]++
		}
	}
	byNumber := make(map[int]int, len(manuals))
	for _, m := range manuals {
		if m.TeamNumber > 0 {
			byNumber[m.TeamNumber]++
		}
	}

	out := make([]team.Team, 0, len(teams))
	for _, t := range teams {
		if byID[t.ID]+byNumber[t.Number] > 0 {
			out = append(out, t)
		}
	}
	team.SortByNumber(out)
	return out
}

// RosterSize counts members assigned to t, registered and manual.
func RosterSize(t team.Team, players []player.Player, manuals []player.ManualParticipant) int {
	n := 0
	for _, p := range players {
		if p.TeamID == t.ID {
			n++
		}
	}
	for _, m := range manuals {
		if m.TeamNumber == t.Number {
			n++
		}
	}
	return n
}
