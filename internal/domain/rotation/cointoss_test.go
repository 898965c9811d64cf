package rotation

import (
	"errors"
	"testing"

	"github.com/riskibarqy/gameday-rotation/internal/domain/match"
)

type fixedCoin match.Face

func (c fixedCoin) Flip() match.Face { return match.Face(c) }

func TestParseChoices(t *testing.T) {
	tests := []struct {
		name    string
		a, b    string
		wantErr error
	}{
		{name: "valid", a: "heads", b: "Tails"},
		{name: "missing", a: "", b: "tails", wantErr: ErrMissingChoice},
		{name: "missing b", a: "heads", b: "  ", wantErr: ErrMissingChoice},
		{name: "invalid", a: "edge", b: "tails", wantErr: ErrInvalidChoice},
		{name: "identical", a: "heads", b: "HEADS", wantErr: ErrIdenticalChoices},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a, b, err := ParseChoices(tc.a, tc.b)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("err=%v want %v", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if a != match.Heads || b != match.Tails {
				t.Fatalf("unexpected faces %s/%s", a, b)
			}
		})
	}
}

func TestToss(t *testing.T) {
	got := Toss(fixedCoin(match.Heads), "t1", match.Tails, "t3")
	if got.WinnerTeamID != "t3" || got.LoserTeamID != "t1" || got.Result != match.Heads {
		t.Fatalf("unexpected toss result: %+v", got)
	}

	got = Toss(fixedCoin(match.Tails), "t1", match.Tails, "t3")
	if got.WinnerTeamID != "t1" || got.LoserTeamID != "t3" {
		t.Fatalf("unexpected toss result: %+v", got)
	}
}

func TestFairCoin_ProducesBothFaces(t *testing.T) {
	seen := map[match.Face]bool{}
	coin := FairCoin{}
	for i := 0; i < 200 && len(seen) < 2; i++ {
		seen[coin.Flip()] = true
	}
	if !seen[match.Heads] || !seen[match.Tails] {
		t.Fatalf("expected both faces, got %v", seen)
	}
}
