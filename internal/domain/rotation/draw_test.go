package rotation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/riskibarqy/gameday-rotation/internal/domain/match"
)

func TestClassifyDraw(t *testing.T) {
	priorDraw := []match.Match{completed("m1", "t3", "t1", 1, 1, "")}

	tests := []struct {
		name    string
		scoreA  int
		scoreB  int
		stage   Stage
		history []match.Match
		want    DrawResolution
	}{
		{
			name:  "goalless draw decides the starting team",
			stage: StageFirstRotation,
			want:  DrawResolution{RequiresCoinToss: true, CoinTossType: match.CoinTossStartingTeam, DrawType: match.DrawTypeGoalless},
		},
		{
			name:  "goalless knockout draw decides the starting team",
			stage: StageKnockout,
			want:  DrawResolution{RequiresCoinToss: true, CoinTossType: match.CoinTossStartingTeam, DrawType: match.DrawTypeGoalless},
		},
		{
			name:   "knockout draw with goals needs no toss",
			scoreA: 2, scoreB: 2,
			stage: StageKnockout,
			want:  DrawResolution{DrawType: match.DrawTypeWithGoals},
		},
		{
			name:   "first rotation draw with goals goes to the draw decider",
			scoreA: 1, scoreB: 1,
			stage: StageFirstRotation,
			want:  DrawResolution{RequiresCoinToss: true, CoinTossType: match.CoinTossDrawDecider, DrawType: match.DrawTypeWithGoals},
		},
		{
			name:   "repeat draw goes to the draw decider in knockout",
			scoreA: 1, scoreB: 1,
			stage:   StageKnockout,
			history: priorDraw,
			want:    DrawResolution{RequiresCoinToss: true, CoinTossType: match.CoinTossDrawDecider, DrawType: match.DrawTypeWithGoals},
		},
		{
			name:    "repeat draw outranks the goalless rule",
			stage:   StageFirstRotation,
			history: priorDraw,
			want:    DrawResolution{RequiresCoinToss: true, CoinTossType: match.CoinTossDrawDecider, DrawType: match.DrawTypeGoalless},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := match.Match{ID: "m9", TeamAID: "t1", TeamBID: "t3", ScoreA: tc.scoreA, ScoreB: tc.scoreB, Status: match.StatusCompleted, IsDraw: true}
			assert.Equal(t, tc.want, ClassifyDraw(m, tc.stage, tc.history))
		})
	}
}

func TestPreviouslyDrew(t *testing.T) {
	history := []match.Match{
		completed("m1", "t1", "t2", 2, 0, "t1"),
		completed("m2", "t2", "t3", 1, 1, ""),
		{ID: "m3", TeamAID: "t1", TeamBID: "t3", Status: match.StatusCancelled, IsDraw: true},
	}

	if !PreviouslyDrew(history, "t3", "t2", "") {
		t.Fatalf("expected t2/t3 prior draw")
	}
	if PreviouslyDrew(history, "t2", "t3", "m2") {
		t.Fatalf("skipped match must not count")
	}
	if PreviouslyDrew(history, "t1", "t3", "") {
		t.Fatalf("cancelled match must not count")
	}
	if PreviouslyDrew(history, "t1", "t2", "") {
		t.Fatalf("decisive match is not a draw")
	}
}
