package holdem

import (
	"sort"

	"github.com/xuliu-cyber/texas-poker/card"
)

// SeatScore pairs a contender's seat with its showdown score (lower wins).
type SeatScore struct {
	Seat  Seat
	Score int32
}

// ShowdownResult is what resolveShowdown returns (spec.md §4.4 step 6).
type ShowdownResult struct {
	Winners  []Seat
	Payouts  map[Seat]int64
	Ranking  []SeatScore
	BestFive map[Seat][5]card.Card
}

// resolveShowdown implements spec.md §4.4 over a snapshot of per-player
// state: Folded, TotalBet (all players, folded included — their chips
// still fund lower pots) and Hand (2 hole cards, contenders only). board
// must already hold 5 community cards.
func resolveShowdown(players map[Seat]*Player, board []card.Card) (*ShowdownResult, error) {
	if len(board) != 5 {
		return nil, errInvalidState("resolveShowdown requires a complete 5-card board, got %d", len(board))
	}

	var contenders []Seat
	for seat, p := range players {
		if !p.Folded {
			contenders = append(contenders, seat)
		}
	}
	if len(contenders) == 0 {
		return nil, errInvalidState("resolveShowdown: no contenders")
	}
	sort.Slice(contenders, func(i, j int) bool { return contenders[i] < contenders[j] })

	payouts := make(map[Seat]int64, len(players))
	for seat := range players {
		payouts[seat] = 0
	}

	// Single contender: no evaluation needed, award the whole pot.
	if len(contenders) == 1 {
		winner := contenders[0]
		total := int64(0)
		for _, p := range players {
			total += p.TotalBet
		}
		payouts[winner] = total
		players[winner].Chips += total
		return &ShowdownResult{
			Winners:  []Seat{winner},
			Payouts:  payouts,
			Ranking:  []SeatScore{{Seat: winner, Score: 0}},
			BestFive: map[Seat][5]card.Card{},
		}, nil
	}

	scores := make(map[Seat]int32, len(contenders))
	bestFive := make(map[Seat][5]card.Card, len(contenders))
	for _, seat := range contenders {
		p := players[seat]
		if len(p.Hand) != 2 {
			return nil, errInvalidState("contender seat %d has %d hole cards, want 2", seat, len(p.Hand))
		}
		seven := make([]card.Card, 0, 7)
		seven = append(seven, p.Hand...)
		seven = append(seven, board...)
		res := BestOfSeven(seven)
		if res == nil {
			return nil, errInvalidState("hand evaluation failed for seat %d", seat)
		}
		scores[seat] = res.Score
		bestFive[seat] = res.Best
	}

	// Build side pots by contribution level (spec.md §4.4 step 4).
	totals := make(map[Seat]int64, len(players))
	levelSet := make(map[int64]bool)
	for seat, p := range players {
		totals[seat] = p.TotalBet
		if p.TotalBet > 0 {
			levelSet[p.TotalBet] = true
		}
	}
	levels := make([]int64, 0, len(levelSet))
	for l := range levelSet {
		levels = append(levels, l)
	}
	sort.Slice(levels, func(i, j int) bool { return levels[i] < levels[j] })

	winnerSet := make(map[Seat]bool)
	var prev int64
	for _, level := range levels {
		var contributors []Seat
		for seat, t := range totals {
			if t >= level {
				contributors = append(contributors, seat)
			}
		}
		potAmount := (level - prev) * int64(len(contributors))
		prev = level

		var eligible []Seat
		for _, seat := range contributors {
			if !players[seat].Folded {
				eligible = append(eligible, seat)
			}
		}
		if len(eligible) == 0 {
			continue
		}

		var bestScore int32
		var winners []Seat
		for i, seat := range eligible {
			s := scores[seat]
			if i == 0 || s < bestScore {
				bestScore = s
				winners = []Seat{seat}
			} else if s == bestScore {
				winners = append(winners, seat)
			}
		}
		sort.Slice(winners, func(i, j int) bool { return winners[i] < winners[j] })

		share := potAmount / int64(len(winners))
		remainder := potAmount % int64(len(winners))
		for i, seat := range winners {
			amt := share
			if int64(i) < remainder {
				amt++
			}
			payouts[seat] += amt
			winnerSet[seat] = true
		}
	}

	for seat, amt := range payouts {
		if amt > 0 {
			players[seat].Chips += amt
		}
	}

	ranking := make([]SeatScore, 0, len(contenders))
	for _, seat := range contenders {
		ranking = append(ranking, SeatScore{Seat: seat, Score: scores[seat]})
	}
	sort.Slice(ranking, func(i, j int) bool { return ranking[i].Score < ranking[j].Score })

	winners := make([]Seat, 0, len(winnerSet))
	for seat := range winnerSet {
		winners = append(winners, seat)
	}
	sort.Slice(winners, func(i, j int) bool { return winners[i] < winners[j] })

	return &ShowdownResult{
		Winners:  winners,
		Payouts:  payouts,
		Ranking:  ranking,
		BestFive: bestFive,
	}, nil
}
