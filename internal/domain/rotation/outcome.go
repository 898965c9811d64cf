package rotation

import "github.com/riskibarqy/gameday-rotation/internal/domain/match"

const (
	firstRotationMinLead  = 2
	firstRotationMinGoals = 2
)

// Outcome is the result of evaluating a finished match.
type Outcome struct {
	WinnerID string
	IsDraw   bool
}

// DecideOutcome applies the stage's win condition to the final score.
//
// Knockout: any strict lead with at least one goal wins.
// First rotation: the winner needs a lead of two and at least two goals;
// narrower results are draws.
func DecideOutcome(stage Stage, m match.Match) Outcome {
	a, b := m.ScoreA, m.ScoreB
	lead := a - b
	if lead < 0 {
		lead = -lead
	}
	top := max(a, b)

	decisive := false
	switch stage {
	case StageKnockout:
		decisive = lead > 0 && top >= 1
	default:
		decisive = lead >= firstRotationMinLead && top >= firstRotationMinGoals
	}
	if !decisive {
		return Outcome{IsDraw: true}
	}
	if a > b {
		return Outcome{WinnerID: m.TeamAID}
	}
	return Outcome{WinnerID: m.TeamBID}
}
