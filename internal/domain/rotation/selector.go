package rotation

import (
	"sort"

	"github.com/riskibarqy/gameday-rotation/internal/domain/team"
)

// Candidate is a team eligible for the next pairing together with the
// record that placed it in its tier.
type Candidate struct {
	Team  team.Team
	Stats Stats
	Tier  Tier
}

// NextCandidates orders populated teams by rotation priority: teams that
// have not played, then teams with only losses, then teams with only draws,
// then teams with a win. Ties break on team number. Excluded team ids are
// dropped. The result is deterministic for the same inputs.
func NextCandidates(populated []team.Team, stats map[string]Stats, exclude ...string) []Candidate {
	skip := make(map[string]struct{}, len(exclude))
	for _, id := range exclude {
		if id != "" {
			skip[id] = struct{}{}
		}
	}

	out := make([]Candidate, 0, len(populated))
	for _, t := range populated {
		if _, ok := skip[t.ID]; ok {
			continue
		}
		s := stats[t.ID]
		out = append(out, Candidate{Team: t, Stats: s, Tier: s.Tier()})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Tier != out[j].Tier {
			return out[i].Tier < out[j].Tier
		}
		return out[i].Team.Number < out[j].Team.Number
	})
	return out
}
