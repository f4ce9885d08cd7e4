package holdem

import (
	"testing"

	"github.com/xuliu-cyber/texas-poker/card"
)

func board5(t *testing.T) []card.Card {
	t.Helper()
	return []card.Card{
		card.MustParseCard("2c"),
		card.MustParseCard("7d"),
		card.MustParseCard("9h"),
		card.MustParseCard("Js"),
		card.MustParseCard("Qc"),
	}
}

// TestResolveShowdownEqualContributionSingleWinner covers spec.md §8 scenario 4:
// three equal contributions, no folds, one clear winner takes the pot.
func TestResolveShowdownEqualContributionSingleWinner(t *testing.T) {
	players := map[Seat]*Player{
		1: {Seat: 1, TotalBet: 300, Hand: []card.Card{card.MustParseCard("Ah"), card.MustParseCard("Ad")}},
		2: {Seat: 2, TotalBet: 300, Hand: []card.Card{card.MustParseCard("Kh"), card.MustParseCard("Kd")}},
		3: {Seat: 3, TotalBet: 300, Hand: []card.Card{card.MustParseCard("3h"), card.MustParseCard("4d")}},
	}
	res, err := resolveShowdown(players, board5(t))
	if err != nil {
		t.Fatalf("resolveShowdown: %v", err)
	}
	if len(res.Winners) != 1 || res.Winners[0] != 1 {
		t.Fatalf("Winners = %v, want [1]", res.Winners)
	}
	if res.Payouts[1] != 900 {
		t.Fatalf("Payouts[1] = %d, want 900", res.Payouts[1])
	}
	if res.Payouts[2] != 0 || res.Payouts[3] != 0 {
		t.Fatalf("losers should receive 0, got %v", res.Payouts)
	}
	if players[1].Chips != 900 {
		t.Fatalf("winner chips = %d, want 900", players[1].Chips)
	}
}

// TestResolveShowdownUnevenContributionWithFold covers spec.md §8 scenario
// 5: a short stack and a fold produce a side pot, with an uneven split
// remainder going to the lowest seat.
func TestResolveShowdownUnevenContributionWithFold(t *testing.T) {
	ace := []card.Card{card.MustParseCard("Ah"), card.MustParseCard("Ad")}
	// Seats 2, 3 and 4 hold an identical king-high pair (suits differ but
	// ranks don't), so the evaluator scores them as an exact three-way tie.
	players := map[Seat]*Player{
		1: {Seat: 1, TotalBet: 50, Folded: true, Hand: ace},
		2: {Seat: 2, TotalBet: 200, Hand: []card.Card{card.MustParseCard("Kh"), card.MustParseCard("2s")}},
		3: {Seat: 3, TotalBet: 200, Hand: []card.Card{card.MustParseCard("Kd"), card.MustParseCard("2h")}},
		4: {Seat: 4, TotalBet: 200, Hand: []card.Card{card.MustParseCard("Ks"), card.MustParseCard("2d")}},
	}

	res, err := resolveShowdown(players, board5(t))
	if err != nil {
		t.Fatalf("resolveShowdown: %v", err)
	}

	total := int64(0)
	for _, amt := range res.Payouts {
		total += amt
	}
	if total != 650 {
		t.Fatalf("total payouts = %d, want 650", total)
	}
	if res.Payouts[1] != 0 {
		t.Fatalf("folded seat should receive 0, got %d", res.Payouts[1])
	}
	// 650 split three ways: 217, 217, 216, remainder to the two lowest seats.
	if res.Payouts[2] != 217 || res.Payouts[3] != 217 || res.Payouts[4] != 216 {
		t.Fatalf("Payouts = %v, want {2:217,3:217,4:216}", res.Payouts)
	}
}

func TestResolveShowdownSingleContenderSkipsEvaluation(t *testing.T) {
	players := map[Seat]*Player{
		1: {Seat: 1, TotalBet: 40},
		2: {Seat: 2, TotalBet: 40, Folded: true},
	}
	res, err := resolveShowdown(players, board5(t))
	if err != nil {
		t.Fatalf("resolveShowdown: %v", err)
	}
	if len(res.Winners) != 1 || res.Winners[0] != 1 {
		t.Fatalf("Winners = %v, want [1]", res.Winners)
	}
	if res.Payouts[1] != 80 {
		t.Fatalf("Payouts[1] = %d, want 80", res.Payouts[1])
	}
}

func TestResolveShowdownRequiresCompleteBoard(t *testing.T) {
	players := map[Seat]*Player{1: {Seat: 1, TotalBet: 10}}
	if _, err := resolveShowdown(players, board5(t)[:3]); err == nil {
		t.Fatalf("expected an error for an incomplete board")
	}
}
