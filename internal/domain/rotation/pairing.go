package rotation

import "github.com/riskibarqy/gameday-rotation/internal/domain/team"

// NextOpponent picks the challenger for a team pinned as team A of the next
// match. Every id in exclude sits out this pairing.
func NextOpponent(populated []team.Team, stats map[string]Stats, exclude ...string) (team.Team, bool) {
	candidates := NextCandidates(populated, stats, exclude...)
	if len(candidates) == 0 {
		return team.Team{}, false
	}
	return candidates[0].Team, true
}

// PairingAfterKnockoutDraw chooses the next match when a knockout draw needs
// no toss: the two highest-priority teams that did not just play. When fewer
// than two are waiting the drawn teams fill the gap in priority order.
func PairingAfterKnockoutDraw(populated []team.Team, stats map[string]Stats, drawnA, drawnB string) (team.Team, team.Team, bool) {
	waiting := NextCandidates(populated, stats, drawnA, drawnB)
	if len(waiting) < 2 {
		drawn := make([]team.Team, 0, 2)
		for _, t := range populated {
			if t.ID == drawnA || t.ID == drawnB {
				drawn = append(drawn, t)
			}
		}
		waiting = append(waiting, NextCandidates(drawn, stats)...)
	}
	if len(waiting) < 2 {
		return team.Team{}, team.Team{}, false
	}
	return waiting[0].Team, waiting[1].Team, true
}
