package rotation

import "github.com/riskibarqy/gameday-rotation/internal/domain/team"

// PickReferee returns the lowest-numbered team that sits out the match and has a captain.
func PickReferee(teams []team.Team, teamAID, teamBID string) (team.Team, bool) {
	sorted := append([]team.Team(nil), teams...)
	team.SortByNumber(sorted)
	for _, t := range sorted {
		if t.ID == teamAID || t.ID == teamBID {
			continue
		}
		if t.HasCaptain() {
			return t, true
		}
	}
	return team.Team{}, false
}
