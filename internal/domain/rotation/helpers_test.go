package rotation

import (
	"fmt"

	"github.com/riskibarqy/gameday-rotation/internal/domain/match"
	"github.com/riskibarqy/gameday-rotation/internal/domain/team"
)

func teams(numbers ...int) []team.Team {
	out := make([]team.Team, 0, len(numbers))
	for _, n := range numbers {
		out = append(out, team.Team{ID: fmt.Sprintf("t%d", n), GameID: "g1", Number: n})
	}
	return out
}

func completed(id, a, b string, scoreA, scoreB int, winner string) match.Match {
	return match.Match{
		ID:       id,
		GameID:   "g1",
		TeamAID:  a,
		TeamBID:  b,
		ScoreA:   scoreA,
		ScoreB:   scoreB,
		Status:   match.StatusCompleted,
		WinnerID: winner,
		IsDraw:   winner == "",
	}
}

func ids(candidates []Candidate) []string {
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.Team.ID)
	}
	return out
}
