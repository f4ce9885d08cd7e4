package holdem

import (
	"github.com/chehsunliu/poker"

	"github.com/xuliu-cyber/texas-poker/card"
)

// HandClass names one of the ten standard hand categories (spec.md §4.3).
type HandClass byte

const (
	HighCard HandClass = iota + 1
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

func (c HandClass) String() string {
	switch c {
	case HighCard:
		return "high card"
	case OnePair:
		return "one pair"
	case TwoPair:
		return "two pair"
	case ThreeOfAKind:
		return "three of a kind"
	case Straight:
		return "straight"
	case Flush:
		return "flush"
	case FullHouse:
		return "full house"
	case FourOfAKind:
		return "four of a kind"
	case StraightFlush:
		return "straight flush"
	case RoyalFlush:
		return "royal flush"
	default:
		return "unknown"
	}
}

// EvalResult is the outcome of scoring one 5-card hand: lower Score is
// stronger, matching spec.md §4.3 and github.com/chehsunliu/poker's own
// convention (rank 1 = royal flush, rank 7462 = worst high card), so no
// sign flip is needed between this package and the library underneath it.
type EvalResult struct {
	Score int32
	Class HandClass
	Best  [5]card.Card
}

func toPokerCard(c card.Card) poker.Card {
	return poker.NewCard(c.String())
}

// evalFive scores exactly five cards.
func evalFive(cards [5]card.Card) (score int32, class HandClass) {
	hand := make([]poker.Card, 5)
	for i, c := range cards {
		hand[i] = toPokerCard(c)
	}
	rank := poker.Evaluate(hand)
	return rank, classFromRank(rank)
}

// classFromRank maps a chehsunliu/poker rank (1 best..7462 worst) onto the
// spec's ten hand classes. The library exports RankClass(rank) as a plain
// integer index (1=straight flush .. 9=high card) with no named constants,
// so this switches on the same integer literals as the pack's own consumer
// (vctt94-pokerbisonrelay/pkg/poker/hand_evaluator.go), splitting the royal
// flush out of the generic straight-flush bucket (class 1) at rank 1, the
// one rank that class never shares with any other straight flush.
func classFromRank(rank int32) HandClass {
	switch poker.RankClass(rank) {
	case 1: // straight flush
		if rank == 1 {
			return RoyalFlush
		}
		return StraightFlush
	case 2:
		return FourOfAKind
	case 3:
		return FullHouse
	case 4:
		return Flush
	case 5:
		return Straight
	case 6:
		return ThreeOfAKind
	case 7:
		return TwoPair
	case 8:
		return OnePair
	default: // 9: high card
		return HighCard
	}
}

// combos5of7 enumerates the C(7,5)=21 index combinations, matching the
// teacher evaluator's nested-loop shape.
var combos5of7 = build5of7Combos()

func build5of7Combos() [][5]int {
	out := make([][5]int, 0, 21)
	for a := 0; a < 3; a++ {
		for b := a + 1; b < 4; b++ {
			for c := b + 1; c < 5; c++ {
				for d := c + 1; d < 6; d++ {
					for e := d + 1; e < 7; e++ {
						out = append(out, [5]int{a, b, c, d, e})
					}
				}
			}
		}
	}
	return out
}

// BestOfSeven evaluates every 5-card subset of a 7-card set (2 hole + 5
// board) and returns the strongest (lowest-score) one, for use both in
// showdown scoring and in BestFive display.
func BestOfSeven(cards []card.Card) *EvalResult {
	if len(cards) != 7 {
		return nil
	}
	var best *EvalResult
	for _, idx := range combos5of7 {
		five := [5]card.Card{cards[idx[0]], cards[idx[1]], cards[idx[2]], cards[idx[3]], cards[idx[4]]}
		score, class := evalFive(five)
		if best == nil || score < best.Score {
			best = &EvalResult{Score: score, Class: class, Best: five}
		}
	}
	return best
}
