package holdem

import "github.com/xuliu-cyber/texas-poker/card"

// PublicPlayer is the observer-visible view of one seated player
// (spec.md §6). Hole cards are never included here; they travel either
// in PrivateState (to their own holder) or in PublicState.Showdown
// (revealed to everyone once a hand reaches showdown).
type PublicPlayer struct {
	Seat       Seat
	Name       string
	Chips      int64
	BuyInTotal int64
	Net        int64
	Bet        int64
	TotalBet   int64
	Folded     bool
	AllIn      bool
	Ready      bool
	LastAction ActionKind
}

// PublicState is everything about a Table any observer may see
// (spec.md §6).
type PublicState struct {
	HandNo     uint64
	Stage      Stage
	DealerSeat Seat
	SBSeat     Seat
	BBSeat     Seat
	UTGSeat    Seat
	ActionSeat Seat
	Pot        int64
	Board      []card.Card
	CurrentBet int64
	MinRaise   int64
	Players    []PublicPlayer
	Showdown   map[Seat][]card.Card
}

// PrivateState is the slice of state only the named seat's own session
// may see: its own hole cards.
type PrivateState struct {
	SID  string
	Hand []card.Card
}

// PublicState snapshots the table for broadcast to every observer.
func (t *Table) PublicState() PublicState {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := PublicState{
		HandNo:     t.handNo,
		Stage:      t.stage,
		DealerSeat: t.dealerSeat,
		SBSeat:     t.sbSeat,
		BBSeat:     t.bbSeat,
		UTGSeat:    t.utgSeat,
		ActionSeat: t.actionSeat,
		Pot:        t.pot,
		Board:      append([]card.Card(nil), t.board...),
		CurrentBet: t.currentBet,
		MinRaise:   t.minRaise,
	}
	if t.showdownReveal != nil {
		out.Showdown = make(map[Seat][]card.Card, len(t.showdownReveal))
		for seat, hand := range t.showdownReveal {
			out.Showdown[seat] = append([]card.Card(nil), hand...)
		}
	}

	for _, seat := range sortedSeats(t.players) {
		p := t.players[seat]
		out.Players = append(out.Players, PublicPlayer{
			Seat:       seat,
			Name:       p.DisplayName,
			Chips:      p.Chips,
			BuyInTotal: p.BuyInTotal,
			Net:        p.Chips + p.TotalBet - p.BuyInTotal,
			Bet:        p.Bet,
			TotalBet:   p.TotalBet,
			Folded:     p.Folded,
			AllIn:      p.AllIn,
			Ready:      p.Ready,
			LastAction: p.LastAction,
		})
	}
	return out
}

// PrivateState snapshots the hole cards belonging to seat, for delivery
// to that seat's own session only.
func (t *Table) PrivateState(seat Seat) (PrivateState, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	p, ok := t.players[seat]
	if !ok {
		return PrivateState{}, false
	}
	return PrivateState{
		SID:  p.ID,
		Hand: append([]card.Card(nil), p.Hand...),
	}, true
}
