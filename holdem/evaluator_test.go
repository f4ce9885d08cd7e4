package holdem

import (
	"testing"

	"github.com/xuliu-cyber/texas-poker/card"
)

func sevenCards(t *testing.T, strs ...string) []card.Card {
	t.Helper()
	if len(strs) != 7 {
		t.Fatalf("sevenCards: want 7 cards, got %d", len(strs))
	}
	out := make([]card.Card, 7)
	for i, s := range strs {
		out[i] = card.MustParseCard(s)
	}
	return out
}

func TestBestOfSevenRoyalFlush(t *testing.T) {
	cards := sevenCards(t, "Ah", "Kh", "Qh", "Jh", "Th", "2c", "3d")
	res := BestOfSeven(cards)
	if res == nil {
		t.Fatalf("BestOfSeven returned nil")
	}
	if res.Class != RoyalFlush {
		t.Fatalf("Class = %v, want RoyalFlush", res.Class)
	}
}

func TestBestOfSevenFullHouseBeatsFlush(t *testing.T) {
	fullHouse := sevenCards(t, "Ah", "Ad", "As", "Kh", "Kd", "2c", "3d")
	flush := sevenCards(t, "2h", "4h", "6h", "8h", "Th", "3c", "5d")

	fhRes := BestOfSeven(fullHouse)
	flRes := BestOfSeven(flush)
	if fhRes.Class != FullHouse {
		t.Fatalf("Class = %v, want FullHouse", fhRes.Class)
	}
	if flRes.Class != Flush {
		t.Fatalf("Class = %v, want Flush", flRes.Class)
	}
	if fhRes.Score >= flRes.Score {
		t.Fatalf("full house score %d should beat (be lower than) flush score %d", fhRes.Score, flRes.Score)
	}
}

func TestBestOfSevenPicksBestFiveOfSeven(t *testing.T) {
	// 2-3-4-5-6 straight is available even though the pair of deuces and
	// the stray 9 are not part of it.
	cards := sevenCards(t, "2c", "2d", "3h", "4h", "5h", "6h", "9s")
	res := BestOfSeven(cards)
	if res.Class != Straight {
		t.Fatalf("Class = %v, want Straight", res.Class)
	}
}

func TestBestOfSevenRequiresSevenCards(t *testing.T) {
	if BestOfSeven(sevenCards(t, "2c", "2d", "3h", "4h", "5h", "6h", "9s")[:6]) != nil {
		t.Fatalf("BestOfSeven with 6 cards should return nil")
	}
}
