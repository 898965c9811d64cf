package rotation

import "github.com/riskibarqy/gameday-rotation/internal/domain/team"

type Stage string

const (
	StageFirstRotation Stage = "first_rotation"
	StageKnockout      Stage = "knockout"
)

// CurrentStage is knockout once every populated team has completed at least one match.
func CurrentStage(populated []team.Team, stats map[string]Stats) Stage {
	if len(populated) == 0 {
		return StageFirstRotation
	}
	for _, t := range populated {
		if !stats[t.ID].HasPlayed {
			return StageFirstRotation
		}
	}
	return StageKnockout
}
