package rotation

import (
	"github.com/riskibarqy/gameday-rotation/internal/domain/match"
	"github.com/riskibarqy/gameday-rotation/internal/domain/team"
)

// Stats is a team's record for the day, derived from completed matches.
type Stats struct {
	HasPlayed bool
	Played    int
	Wins      int
	Losses    int
	Draws     int
}

// Tier is the rotation priority bucket; lower tiers play first.
type Tier int

const (
	TierNeverPlayed Tier = iota + 1
	TierLossOnly
	TierDrawOnly
	TierWinner
)

func (t Tier) String() string {
	switch t {
	case TierNeverPlayed:
		return "never_played"
	case TierLossOnly:
		return "loss_only"
	case TierDrawOnly:
		return "draw_only"
	case TierWinner:
		return "winner"
	default:
		return "unknown"
	}
}

func (s Stats) Tier() Tier {
	switch {
	case !s.HasPlayed:
		return TierNeverPlayed
	case s.Wins > 0:
		return TierWinner
	case s.Losses > 0:
		return TierLossOnly
	default:
		return TierDrawOnly
	}
}

// ComputeStats tallies every team's record from the completed matches.
// Scheduled, in-progress and cancelled matches are ignored.
func ComputeStats(teams []team.Team, matches []match.Match) map[string]Stats {
	out := make(map[string]Stats, len(teams))
	for _, t := range teams {
		out[t.ID] = Stats{}
	}

	record := func(teamID string, fn func(*Stats)) {
		s := out[teamID]
		s.HasPlayed = true
		s.Played++
		fn(&s)
		out[teamID] = s
	}

	for _, m := range matches {
		if !m.IsCompleted() {
			continue
		}
		switch {
		case m.IsDraw:
			record(m.TeamAID, func(s *Stats) { s.Draws++ })
			record(m.TeamBID, func(s *Stats) { s.Draws++ })
		case m.WinnerID != "":
			record(m.WinnerID, func(s *Stats) { s.Wins++ })
			record(m.LoserID(), func(s *Stats) { s.Losses++ })
		}
	}
	return out
}
