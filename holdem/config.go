package holdem

import (
	"fmt"

	"github.com/xuliu-cyber/texas-poker/card"
)

// Config holds the fixed-for-the-life-of-the-table parameters (spec.md §6).
// Blinds never change once a Table is constructed.
type Config struct {
	SmallBlind    int64
	BigBlind      int64
	StartingBuyIn int64

	// ShortAllInReopens controls whether an accepted all-in below the
	// current minimum raise reopens action to players who already acted
	// this round. The source this spec distills from always reopens
	// (true); tournament ruleset implementations would set it false.
	// spec.md §9 "All-in raise reopens action (open question)".
	ShortAllInReopens bool

	// Seed pins the RNG (0 => cryptographically seeded). ForcedDealerSeat
	// and DeckOverride pin the rest of StartHand's randomness. All three
	// exist purely to make the "Determinism" testable property
	// (spec.md §8) exercisable in tests and replays; production tables
	// leave them zero.
	Seed             int64
	ForcedDealerSeat *Seat
	DeckOverride     []card.Card
}

// DefaultConfig returns the spec.md §6 defaults.
func DefaultConfig() Config {
	return Config{
		SmallBlind:        5,
		BigBlind:          10,
		StartingBuyIn:     1000,
		ShortAllInReopens: true,
	}
}

func (c Config) validate() error {
	if c.BigBlind <= 0 {
		return fmt.Errorf("holdem: BigBlind must be > 0")
	}
	if c.SmallBlind < 0 || c.SmallBlind > c.BigBlind {
		return fmt.Errorf("holdem: invalid blinds sb=%d bb=%d", c.SmallBlind, c.BigBlind)
	}
	if c.StartingBuyIn < 0 {
		return fmt.Errorf("holdem: StartingBuyIn must be >= 0")
	}
	if len(c.DeckOverride) != 0 && len(c.DeckOverride) != len(card.FullSet) {
		return fmt.Errorf("holdem: DeckOverride must contain %d cards, got %d", len(card.FullSet), len(c.DeckOverride))
	}
	if len(c.DeckOverride) != 0 {
		seen := make(map[card.Card]bool, len(c.DeckOverride))
		for i, cd := range c.DeckOverride {
			if seen[cd] {
				return fmt.Errorf("holdem: DeckOverride has duplicate card at index %d: %v", i, cd)
			}
			seen[cd] = true
		}
	}
	return nil
}
