package rotation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/gameday-rotation/internal/domain/match"
)

func TestComputeStats(t *testing.T) {
	populated := teams(1, 2, 3, 4)
	history := []match.Match{
		completed("m1", "t1", "t2", 2, 0, "t1"),
		completed("m2", "t1", "t3", 1, 1, ""),
		{ID: "m3", TeamAID: "t4", TeamBID: "t2", Status: match.StatusCancelled},
		{ID: "m4", TeamAID: "t4", TeamBID: "t3", Status: match.StatusInProgress, ScoreA: 3},
	}

	stats := ComputeStats(populated, history)

	assert.Equal(t, Stats{HasPlayed: true, Played: 2, Wins: 1, Draws: 1}, stats["t1"])
	assert.Equal(t, Stats{HasPlayed: true, Played: 1, Losses: 1}, stats["t2"])
	assert.Equal(t, Stats{HasPlayed: true, Played: 1, Draws: 1}, stats["t3"])
	assert.Equal(t, Stats{}, stats["t4"])
}

func TestStats_Tier(t *testing.T) {
	tests := []struct {
		name  string
		stats Stats
		want  Tier
	}{
		{name: "never played", stats: Stats{}, want: TierNeverPlayed},
		{name: "losses only", stats: Stats{HasPlayed: true, Losses: 2}, want: TierLossOnly},
		{name: "losses and draws", stats: Stats{HasPlayed: true, Losses: 1, Draws: 1}, want: TierLossOnly},
		{name: "draws only", stats: Stats{HasPlayed: true, Draws: 1}, want: TierDrawOnly},
		{name: "one win", stats: Stats{HasPlayed: true, Wins: 1, Losses: 3}, want: TierWinner},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.stats.Tier(); got != tc.want {
				t.Fatalf("Tier()=%s want %s", got, tc.want)
			}
		})
	}
}

func TestNextCandidates_OrdersByTierThenNumber(t *testing.T) {
	populated := teams(1, 2, 3, 4, 5, 6)
	stats := map[string]Stats{
		"t1": {HasPlayed: true, Wins: 1},
		"t2": {HasPlayed: true, Losses: 1},
		"t3": {HasPlayed: true, Draws: 1},
		"t4": {},
		"t5": {HasPlayed: true, Losses: 1},
		"t6": {},
	}

	got := NextCandidates(populated, stats)

	assert.Equal(t, []string{"t4", "t6", "t2", "t5", "t3", "t1"}, ids(got))
	assert.Equal(t, TierNeverPlayed, got[0].Tier)
	assert.Equal(t, TierWinner, got[5].Tier)
}

func TestNextCandidates_Exclusions(t *testing.T) {
	populated := teams(1, 2, 3)
	stats := ComputeStats(populated, nil)

	got := NextCandidates(populated, stats, "t1", "t2", "")
	require.Len(t, got, 1)
	assert.Equal(t, "t3", got[0].Team.ID)

	assert.Empty(t, NextCandidates(populated, stats, "t1", "t2", "t3"))
}

func TestNextCandidates_Deterministic(t *testing.T) {
	populated := teams(5, 3, 1)
	stats := ComputeStats(populated, nil)

	first := ids(NextCandidates(populated, stats))
	for i := 0; i < 10; i++ {
		if got := ids(NextCandidates(populated, stats)); !assert.ObjectsAreEqual(first, got) {
			t.Fatalf("non-deterministic order: %v vs %v", first, got)
		}
	}
	assert.Equal(t, []string{"t1", "t3", "t5"}, first)
}

func TestCurrentStage(t *testing.T) {
	populated := teams(1, 2, 3)
	history := []match.Match{completed("m1", "t1", "t2", 2, 0, "t1")}

	if got := CurrentStage(populated, ComputeStats(populated, history)); got != StageFirstRotation {
		t.Fatalf("expected first rotation, got %s", got)
	}

	history = append(history, completed("m2", "t1", "t3", 1, 0, "t1"))
	if got := CurrentStage(populated, ComputeStats(populated, history)); got != StageKnockout {
		t.Fatalf("expected knockout, got %s", got)
	}

	if got := CurrentStage(nil, nil); got != StageFirstRotation {
		t.Fatalf("empty census must stay in first rotation, got %s", got)
	}
}
