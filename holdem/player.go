package holdem

import "github.com/xuliu-cyber/texas-poker/card"

// Player is one seated occupant of a Table, tracked across hands
// (spec.md §3). Identity, DisplayName, Seat, Chips, Ready and BuyInTotal
// persist between hands; Hand, Bet, TotalBet, Folded, AllIn and
// LastAction are cleared by resetForHand when StartHand deals the player in.
type Player struct {
	ID          string // opaque session token
	DisplayName string
	Seat        Seat

	Chips int64
	Ready bool

	Hand []card.Card

	Bet      int64
	TotalBet int64

	Folded bool
	AllIn  bool

	LastAction ActionKind

	BuyInTotal int64
}

// resetForHand clears everything that is scoped to a single hand, per
// spec.md §4.1 step 1.
func (p *Player) resetForHand() {
	p.Hand = nil
	p.Bet = 0
	p.TotalBet = 0
	p.Folded = false
	p.AllIn = false
	p.LastAction = ActionNone
}

// placeBet moves up to amount chips from stack to the current-round bet,
// clamping to the player's stack and marking all-in on exhaustion. It
// never takes more than the player has (spec.md invariant: chips >= 0).
func (p *Player) placeBet(amount int64) int64 {
	if amount <= 0 {
		return 0
	}
	if amount > p.Chips {
		amount = p.Chips
	}
	p.Chips -= amount
	p.Bet += amount
	p.TotalBet += amount
	if p.Chips == 0 {
		p.AllIn = true
	}
	return amount
}
