// Package holdem implements a deterministic multi-room No-Limit Texas
// Hold'em engine: a Table ingests player actions and advances a hand
// through betting rounds, community-card dealing and showdown with
// side-pot settlement (spec.md §1-§4).
package holdem

import (
	"sort"
	"sync"

	"github.com/xuliu-cyber/texas-poker/card"
)

// Table is the engine's single logical component (spec.md §2). All
// mutating entry points are serialized by an internal mutex; the
// concurrency model (spec.md §5) requires callers not to invoke them
// concurrently on the same Table from multiple goroutines expecting
// interleaved fairness, but the mutex makes that merely slow, not unsafe.
type Table struct {
	cfg Config

	mu sync.Mutex

	handNo uint64
	stage  Stage
	board  []card.Card
	pot    int64

	players map[Seat]*Player

	dealerSeat Seat
	sbSeat     Seat
	bbSeat     Seat
	utgSeat    Seat
	actionSeat Seat

	currentBet int64
	minRaise   int64

	toAct []Seat

	deck *card.Deck

	// handSeats is the sorted roster of seats dealt into the current
	// hand (chips > 0 at StartHand time). It is the "seats" universe for
	// every seat-cyclic computation for the rest of the hand, and its
	// length is what decides the heads-up rules (spec.md §4.1), not the
	// live non-folded count, which shrinks as players fold.
	handSeats []Seat

	showdownReveal map[Seat][]card.Card
	lastResult     *ShowdownResult
}

// NewTable constructs an idle Table (stage = waiting).
func NewTable(cfg Config) (*Table, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Table{
		cfg:     cfg,
		players: make(map[Seat]*Player),
		stage:   Waiting,
	}, nil
}

// Seat occupies seat with a newly seated player. The seat must be free.
func (t *Table) Seat(seat Seat, id, displayName string, chips int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.players[seat]; ok {
		return errInvalidState("seat %d already occupied", seat)
	}
	t.players[seat] = &Player{
		ID:          id,
		DisplayName: displayName,
		Seat:        seat,
		Chips:       chips,
		BuyInTotal:  chips,
	}
	return nil
}

// Leave removes a seated player between hands. Mid-hand removal is
// rejected: the caller (Room) is responsible for auto-folding first and
// deferring the seat removal until the hand has finished (spec.md §9,
// "Disconnect during own turn").
func (t *Table) Leave(seat Seat) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.players[seat]; !ok {
		return newError(NotSeated, "seat %d is empty", seat)
	}
	if t.stage != Waiting {
		return newError(NotStarted, "cannot leave seat %d mid-hand", seat)
	}
	delete(t.players, seat)
	if t.dealerSeat == seat {
		t.dealerSeat = NoSeat
	}
	return nil
}

// BuyIn adds amount chips to a seated player's stack, on top of whatever
// they already hold. Disallowed while a hand is running, matching Leave.
func (t *Table) BuyIn(seat Seat, amount int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	p, ok := t.players[seat]
	if !ok {
		return newError(NotSeated, "seat %d is empty", seat)
	}
	if amount <= 0 {
		return newError(InvalidAmount, "buy-in amount must be positive, got %d", amount)
	}
	if t.stage != Waiting {
		return newError(BuyInInProgress, "cannot buy in while a hand is in progress")
	}
	p.Chips += amount
	p.BuyInTotal += amount
	return nil
}

// SetReady toggles a seated player's readiness for the next hand to start.
func (t *Table) SetReady(seat Seat, ready bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	p, ok := t.players[seat]
	if !ok {
		return newError(NotSeated, "seat %d is empty", seat)
	}
	p.Ready = ready
	return nil
}

// ResetReadyAll clears every seated player's readiness flag, used after a
// hand settles to force an explicit re-ready before the next one starts.
func (t *Table) ResetReadyAll() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, p := range t.players {
		p.Ready = false
	}
}

// Player returns the seated player at seat, or nil if the seat is empty.
func (t *Table) Player(seat Seat) *Player {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.players[seat]
}

// StartHand begins a new hand (spec.md §4.1).
func (t *Table) StartHand() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stage != Waiting {
		return errInvalidState("StartHand called while stage=%s", t.stage)
	}

	active := make([]Seat, 0, len(t.players))
	for seat, p := range t.players {
		if p.Chips > 0 {
			active = append(active, seat)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i] < active[j] })
	if len(active) < 2 {
		return newError(MinPlayers, "need >= 2 seated players with chips, have %d", len(active))
	}

	t.handNo++
	t.stage = Preflop
	t.board = nil
	t.pot = 0
	t.showdownReveal = make(map[Seat][]card.Card)
	t.lastResult = nil
	t.handSeats = active

	for _, seat := range active {
		t.players[seat].resetForHand()
	}

	switch {
	case len(t.cfg.DeckOverride) != 0:
		t.deck = card.NewOrderedDeck(t.cfg.DeckOverride)
	case t.cfg.Seed != 0:
		t.deck = card.NewSeededShuffledDeck(t.cfg.Seed)
	default:
		t.deck = card.NewShuffledDeck()
	}

	// Rotate the button.
	if t.cfg.ForcedDealerSeat != nil {
		t.dealerSeat = *t.cfg.ForcedDealerSeat
	} else if t.dealerSeat == NoSeat {
		t.dealerSeat = active[0]
	} else {
		t.dealerSeat = nextSeat(active, t.dealerSeat)
	}

	if len(active) == 2 {
		t.sbSeat = t.dealerSeat
		t.bbSeat = nextSeat(active, t.dealerSeat)
	} else {
		t.sbSeat = nextSeat(active, t.dealerSeat)
		t.bbSeat = nextSeat(active, t.sbSeat)
	}

	// Deal hole cards one at a time, two rounds, seat-cyclic from the
	// seat after the dealer (spec.md §4.1 step 5).
	dealOrder := cyclicFrom(active, nextSeat(active, t.dealerSeat), true)
	for round := 0; round < 2; round++ {
		for _, seat := range dealOrder {
			t.players[seat].Hand = append(t.players[seat].Hand, t.deck.Draw())
		}
	}

	t.postBlind(t.sbSeat, t.cfg.SmallBlind)
	t.postBlind(t.bbSeat, t.cfg.BigBlind)
	t.currentBet = maxInt64(t.players[t.sbSeat].Bet, t.players[t.bbSeat].Bet)
	t.minRaise = t.cfg.BigBlind

	if len(active) == 2 {
		t.utgSeat = t.sbSeat
	} else {
		t.utgSeat = nextSeat(active, t.bbSeat)
	}

	t.startBettingRound(t.utgSeat)

	// A blind-only all-in (e.g. a short-stacked BB) can leave nobody to
	// act even before any voluntary action; run the street out exactly
	// as if it had happened through ApplyAction.
	if _, err := t.driveAutoAdvanceLocked(); err != nil {
		return err
	}
	return nil
}

func (t *Table) postBlind(seat Seat, amount int64) {
	t.players[seat].placeBet(amount)
	t.pot += t.players[seat].Bet
}

// startBettingRound seeds toAct with the non-folded, non-all-in seats of
// the hand, seat-cyclic starting at first. A single such seat cannot bet
// against anyone (every other live hand is already all-in), so that case
// leaves toAct empty too: driveAutoAdvanceLocked treats it the same as an
// ordinary closed round and deals on through (spec.md §4.1 "Auto-run-out").
func (t *Table) startBettingRound(first Seat) {
	var seats []Seat
	for _, seat := range t.handSeats {
		p := t.players[seat]
		if !p.Folded && !p.AllIn {
			seats = append(seats, seat)
		}
	}
	if len(seats) < 2 {
		t.toAct = nil
		t.actionSeat = NoSeat
		return
	}
	t.toAct = cyclicFrom(seats, first, true)
	t.actionSeat = t.toAct[0]
}

func (t *Table) removeFromToAct(seat Seat) {
	for i, s := range t.toAct {
		if s == seat {
			t.toAct = append(t.toAct[:i], t.toAct[i+1:]...)
			break
		}
	}
	if len(t.toAct) > 0 {
		t.actionSeat = t.toAct[0]
	} else {
		t.actionSeat = NoSeat
	}
}

// rebuildToActAfterRaise reopens action to every non-folded, non-all-in
// seat other than the raiser, cyclic from the seat after the raiser
// (spec.md §4.2 step 5).
func (t *Table) rebuildToActAfterRaise(raiser Seat) {
	var seats []Seat
	for _, seat := range t.handSeats {
		if seat == raiser {
			continue
		}
		p := t.players[seat]
		if !p.Folded && !p.AllIn {
			seats = append(seats, seat)
		}
	}
	if len(seats) == 0 {
		t.toAct = nil
		t.actionSeat = NoSeat
		return
	}
	t.toAct = cyclicFrom(seats, nextSeat(t.handSeats, raiser), true)
	t.actionSeat = t.toAct[0]
}

// ApplyAction applies one player action to the hand in progress
// (spec.md §4.2). It returns a non-nil ShowdownResult exactly when the
// action causes the hand to reach showdown or an early, single-survivor
// resolution.
func (t *Table) ApplyAction(seat Seat, action Action) (*ShowdownResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	p, ok := t.players[seat]
	if !ok {
		return nil, newError(NotSeated, "seat %d is empty", seat)
	}
	if t.stage == Waiting || t.stage == Showdown {
		return nil, newError(NotStarted, "no hand in progress")
	}
	if seat != t.actionSeat {
		return nil, newError(NotYourTurn, "seat %d acted, waiting on seat %d", seat, t.actionSeat)
	}
	if p.Folded {
		return nil, newError(AlreadyFolded, "seat %d already folded", seat)
	}

	switch action.Kind {
	case ActionFold:
		p.Folded = true
		p.LastAction = ActionFold
		t.removeFromToAct(seat)

		if res := t.checkEarlyTermination(); res != nil {
			return res, nil
		}

	case ActionCheck:
		if p.Bet != t.currentBet {
			return nil, newError(CannotCheck, "seat %d faces a bet of %d", seat, t.currentBet)
		}
		p.LastAction = ActionCheck
		t.removeFromToAct(seat)

	case ActionCall:
		need := t.currentBet - p.Bet
		if need < 0 {
			need = 0
		}
		if need == 0 {
			p.LastAction = ActionCheck
		} else {
			p.placeBet(minInt64(need, p.Chips))
			p.LastAction = ActionCall
		}
		t.removeFromToAct(seat)

	case ActionRaise:
		if action.Amount < 0 {
			return nil, newError(InvalidAmount, "negative raise amount %d", action.Amount)
		}
		if err := t.applyRaise(p, seat, action.Amount); err != nil {
			return nil, err
		}

	default:
		return nil, newError(UnknownAction, "unknown action kind %v", action.Kind)
	}

	t.recomputePot()
	return t.driveAutoAdvanceLocked()
}

// applyRaise implements spec.md §4.2's raise rules, including the
// raise-to <= currentBet degrades-to-call rule and the minimum-raise law.
func (t *Table) applyRaise(p *Player, seat Seat, amount int64) error {
	if amount <= t.currentBet {
		need := t.currentBet - p.Bet
		if need < 0 {
			need = 0
		}
		if need == 0 {
			p.LastAction = ActionCheck
		} else {
			p.placeBet(minInt64(need, p.Chips))
			p.LastAction = ActionCall
		}
		t.removeFromToAct(seat)
		return nil
	}

	if amount > p.Bet+p.Chips {
		return newError(InsufficientChips, "seat %d cannot raise to %d with %d chips behind", seat, amount, p.Chips)
	}

	raiseSize := amount - t.currentBet
	isAllIn := amount == p.Bet+p.Chips
	if raiseSize < t.minRaise && !isAllIn {
		return newError(BelowMinRaise, "raise of %d is below the minimum raise of %d", raiseSize, t.minRaise)
	}

	delta := amount - p.Bet
	p.placeBet(delta)
	t.minRaise = maxInt64(t.minRaise, raiseSize)
	t.currentBet = amount
	p.LastAction = ActionRaise

	wasShortAllIn := isAllIn && raiseSize < t.minRaise
	if wasShortAllIn && !t.cfg.ShortAllInReopens {
		t.removeFromToAct(seat)
	} else {
		t.rebuildToActAfterRaise(seat)
	}
	return nil
}

func (t *Table) recomputePot() {
	var total int64
	for _, p := range t.players {
		total += p.TotalBet
	}
	t.pot = total
}

// checkEarlyTermination resolves the hand immediately if a fold leaves a
// single non-folded player (spec.md §4.1, "Early termination").
func (t *Table) checkEarlyTermination() *ShowdownResult {
	var remaining []Seat
	for _, seat := range t.handSeats {
		if !t.players[seat].Folded {
			remaining = append(remaining, seat)
		}
	}
	if len(remaining) != 1 {
		return nil
	}
	winner := remaining[0]
	var total int64
	payouts := make(map[Seat]int64, len(t.players))
	for seat, p := range t.players {
		total += p.TotalBet
		payouts[seat] = 0
	}
	payouts[winner] = total
	t.players[winner].Chips += total

	result := &ShowdownResult{
		Winners:  []Seat{winner},
		Payouts:  payouts,
		Ranking:  []SeatScore{{Seat: winner, Score: 0}},
		BestFive: map[Seat][5]card.Card{},
	}
	t.lastResult = result
	t.finishHand()
	return result
}

// driveAutoAdvanceLocked advances stages (dealing community cards and
// resetting the betting round) for as long as toAct is empty, which
// covers both an ordinary round closing out and the all-in auto-run-out
// case (spec.md §4.1, "Auto-run-out"). Caller must hold t.mu.
func (t *Table) driveAutoAdvanceLocked() (*ShowdownResult, error) {
	for len(t.toAct) == 0 && t.stage != Showdown && t.stage != Waiting {
		if err := t.advanceStage(); err != nil {
			return nil, err
		}
		if t.stage == Showdown {
			result, err := t.resolveShowdownAndFinish()
			if err != nil {
				return nil, err
			}
			return result, nil
		}
	}
	return nil, nil
}

// advanceStage deals the next street (or, from the river, moves to
// showdown without dealing) and, for a betting street, resets per-round
// state and opens a new betting round.
func (t *Table) advanceStage() error {
	switch t.stage {
	case Preflop:
		t.dealCommunity(3)
		t.stage = Flop
	case Flop:
		t.dealCommunity(1)
		t.stage = Turn
	case Turn:
		t.dealCommunity(1)
		t.stage = River
	case River:
		t.stage = Showdown
		return nil
	default:
		return errInvalidState("advanceStage called from stage=%s", t.stage)
	}

	for _, seat := range t.handSeats {
		t.players[seat].Bet = 0
		t.players[seat].LastAction = ActionNone
	}
	t.currentBet = 0
	t.minRaise = t.cfg.BigBlind

	first := t.dealerSeat
	if len(t.handSeats) != 2 {
		first = nextSeat(t.handSeats, t.dealerSeat)
	}
	t.startBettingRound(first)
	return nil
}

func (t *Table) dealCommunity(n int) {
	t.board = append(t.board, t.deck.DrawN(n)...)
}

func (t *Table) resolveShowdownAndFinish() (*ShowdownResult, error) {
	result, err := resolveShowdown(t.players, t.board)
	if err != nil {
		return nil, err
	}
	t.showdownReveal = make(map[Seat][]card.Card, len(t.players))
	for _, sc := range result.Ranking {
		t.showdownReveal[sc.Seat] = append([]card.Card(nil), t.players[sc.Seat].Hand...)
	}
	t.lastResult = result
	t.finishHand()
	return result, nil
}

// finishHand resets lifecycle fields to the between-hands idle state.
// The board, the blind/UTG seat designations, the showdown reveal and
// lastResult are left in place for observers; StartHand replaces them
// when the next hand begins. Every seat's Bet/TotalBet is cleared along with the
// pot: payouts have already been credited to Chips by this point, so an
// idle PublicState must show pot=0 and must not have PublicPlayer.Net
// double-count a settled hand's contribution via a stale TotalBet.
func (t *Table) finishHand() {
	t.stage = Waiting
	t.toAct = nil
	t.actionSeat = NoSeat
	t.currentBet = 0
	t.minRaise = 0
	t.pot = 0
	for _, seat := range t.handSeats {
		p := t.players[seat]
		p.Bet = 0
		p.TotalBet = 0
	}
}

// LastResult returns the settlement of the most recently completed hand,
// or nil if no hand has finished yet.
func (t *Table) LastResult() *ShowdownResult {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastResult
}

// BestFive returns a contender's best 5-card hand once the board is
// complete. It is for display only (spec.md §4.3).
func (t *Table) BestFive(seat Seat) ([5]card.Card, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	p, ok := t.players[seat]
	if !ok || len(p.Hand) != 2 || len(t.board) != 5 {
		return [5]card.Card{}, false
	}
	seven := append(append([]card.Card{}, p.Hand...), t.board...)
	res := BestOfSeven(seven)
	if res == nil {
		return [5]card.Card{}, false
	}
	return res.Best, true
}

// LegalActions reports which action kinds are presently legal for seat,
// along with the smallest legal raise-to amount. It is a read-only
// projection used by callers to drive UI affordances; ApplyAction itself
// re-derives legality rather than trusting this.
func (t *Table) LegalActions(seat Seat) ([]ActionKind, int64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	p, ok := t.players[seat]
	if !ok {
		return nil, 0, newError(NotSeated, "seat %d is empty", seat)
	}
	if t.stage == Waiting || t.stage == Showdown {
		return nil, 0, newError(NotStarted, "no hand in progress")
	}

	acts := []ActionKind{ActionFold}
	if p.Bet == t.currentBet {
		acts = append(acts, ActionCheck)
	} else if p.Chips > 0 {
		acts = append(acts, ActionCall)
	}
	if p.Chips > 0 {
		acts = append(acts, ActionRaise)
	}
	return acts, t.currentBet + t.minRaise, nil
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

func minInt64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
