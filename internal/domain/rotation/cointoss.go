package rotation

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/riskibarqy/gameday-rotation/internal/domain/match"
)

var (
	ErrMissingChoice    = errors.New("both teams must choose heads or tails")
	ErrInvalidChoice    = errors.New("coin toss choice must be heads or tails")
	ErrIdenticalChoices = errors.New("teams must choose different sides of the coin")
)

// Coin produces a toss result.
type Coin interface {
	Flip() match.Face
}

// FairCoin flips with equal probability.
type FairCoin struct{}

func (FairCoin) Flip() match.Face {
	if rand.IntN(2) == 0 {
		return match.Heads
	}
	return match.Tails
}

// ParseChoices validates the two teams' calls.
func ParseChoices(teamA, teamB string) (match.Face, match.Face, error) {
	a, err := parseFace(teamA)
	if err != nil {
		return "", "", err
	}
	b, err := parseFace(teamB)
	if err != nil {
		return "", "", err
	}
	if a == b {
		return "", "", fmt.Errorf("%w: both chose %s", ErrIdenticalChoices, a)
	}
	return a, b, nil
}

func parseFace(v string) (match.Face, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch match.Face(value) {
	case match.Heads, match.Tails:
		return match.Face(value), nil
	case "":
		return "", ErrMissingChoice
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidChoice, v)
	}
}

// TossResult names the toss winner and loser.
type TossResult struct {
	Result       match.Face
	WinnerTeamID string
	LoserTeamID  string
}

// Toss flips coin and awards the toss to the team whose call came up.
// Choices must already be validated with ParseChoices.
func Toss(coin Coin, teamAID string, choiceA match.Face, teamBID string) TossResult {
	if coin == nil {
		coin = FairCoin{}
	}
	face := coin.Flip()
	if face == choiceA {
		return TossResult{Result: face, WinnerTeamID: teamAID, LoserTeamID: teamBID}
	}
	return TossResult{Result: face, WinnerTeamID: teamBID, LoserTeamID: teamAID}
}
