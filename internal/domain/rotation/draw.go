package rotation

import "github.com/riskibarqy/gameday-rotation/internal/domain/match"

// DrawResolution says whether a drawn match needs a coin toss and of which kind.
type DrawResolution struct {
	RequiresCoinToss bool
	CoinTossType     match.CoinTossType
	DrawType         string
}

// ClassifyDraw decides how a drawn match is settled. Rules, first match wins:
//  1. the pair already drew today: draw decider toss
//  2. 0-0: toss for the starting side of the rematch
//  3. knockout draw with goals: no toss
//  4. first-rotation draw with goals: draw decider toss
func ClassifyDraw(m match.Match, stage Stage, history []match.Match) DrawResolution {
	drawType := match.DrawTypeWithGoals
	if m.ScoreA == 0 && m.ScoreB == 0 {
		drawType = match.DrawTypeGoalless
	}

	switch {
	case PreviouslyDrew(history, m.TeamAID, m.TeamBID, m.ID):
		return DrawResolution{RequiresCoinToss: true, CoinTossType: match.CoinTossDrawDecider, DrawType: drawType}
	case drawType == match.DrawTypeGoalless:
		return DrawResolution{RequiresCoinToss: true, CoinTossType: match.CoinTossStartingTeam, DrawType: drawType}
	case stage == StageKnockout:
		return DrawResolution{DrawType: drawType}
	default:
		return DrawResolution{RequiresCoinToss: true, CoinTossType: match.CoinTossDrawDecider, DrawType: drawType}
	}
}

// PreviouslyDrew reports a completed draw between a and b, ignoring skipMatchID.
func PreviouslyDrew(history []match.Match, a, b, skipMatchID string) bool {
	for _, m := range history {
		if m.ID == skipMatchID || !m.IsCompleted() || !m.IsDraw {
			continue
		}
		if m.Pairs(a, b) {
			return true
		}
	}
	return false
}
