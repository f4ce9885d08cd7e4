// Package card implements the standard 52-card deck used by the holdem
// engine: a compact Card encoding, its 2-character wire format, and an
// ordered Deck suitable for a single shuffle-and-draw per hand.
package card

import "fmt"

// Card packs a suit into the high 4 bits and a rank into the low 4 bits.
// Rank is 1 (Ace) through 13 (King); see ParseCard and String for the
// rank-then-suit text form ("Ah", "Td", "2s") that crosses the wire.
type Card byte

const (
	// Invalid is the zero value; no real card encodes to it.
	Invalid Card = 0
)

func makeCard(s Suit, rank byte) Card {
	return Card(byte(s)<<4 | rank)
}

// Rank returns the card's rank, 1 (Ace) through 13 (King).
func (c Card) Rank() byte {
	return byte(c) & 0x0F
}

// Suit returns the card's suit.
func (c Card) Suit() Suit {
	return Suit(byte(c) >> 4)
}

// HighRank returns the rank with Ace valued 14, for high-to-low comparisons.
func (c Card) HighRank() int {
	r := int(c.Rank())
	if r == 1 {
		return 14
	}
	return r
}

func rankLetter(rank byte) string {
	switch rank {
	case 1:
		return "A"
	case 10:
		return "T"
	case 11:
		return "J"
	case 12:
		return "Q"
	case 13:
		return "K"
	default:
		return fmt.Sprintf("%d", rank)
	}
}

// String renders the spec wire format: rank then suit, e.g. "Ah", "Td".
func (c Card) String() string {
	if c == Invalid {
		return "??"
	}
	return rankLetter(c.Rank()) + string(c.Suit().Letter())
}

// ParseCard parses the 2-character wire format ("Ah", "Td", "2s") into a Card.
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return Invalid, fmt.Errorf("card: invalid length %q", s)
	}
	suit, ok := suitFromLetter(s[1])
	if !ok {
		return Invalid, fmt.Errorf("card: invalid suit in %q", s)
	}
	var rank byte
	switch s[0] {
	case 'A', 'a':
		rank = 1
	case '2':
		rank = 2
	case '3':
		rank = 3
	case '4':
		rank = 4
	case '5':
		rank = 5
	case '6':
		rank = 6
	case '7':
		rank = 7
	case '8':
		rank = 8
	case '9':
		rank = 9
	case 'T', 't':
		rank = 10
	case 'J', 'j':
		rank = 11
	case 'Q', 'q':
		rank = 12
	case 'K', 'k':
		rank = 13
	default:
		return Invalid, fmt.Errorf("card: invalid rank in %q", s)
	}
	return makeCard(suit, rank), nil
}

// MustParseCard is ParseCard for literals known to be valid (tests, tables).
func MustParseCard(s string) Card {
	c, err := ParseCard(s)
	if err != nil {
		panic(err)
	}
	return c
}
