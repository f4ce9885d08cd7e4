// Package room implements the thin per-table coordination layer around a
// holdem.Table: session bookkeeping, seat assignment, ready-gating and a
// bounded activity log (spec.md §4.5). It deliberately does not carry the
// teacher's actor/event-channel machinery, matchmaking lobby, ledger or
// persistence — those are sized for a production multi-table server, not
// a single coordination shell around one engine instance.
package room

import (
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/xuliu-cyber/texas-poker/holdem"
)

const (
	maxSeats       = 9
	logBufferCap   = 200
	chatBufferCap  = 200
	chatTextMaxLen = 300
)

// LogEntry is one bounded activity-log line (spec.md §7, supplemented
// from original_source's add_log).
type LogEntry struct {
	At      time.Time
	Message string
}

// ChatMessage is one bounded chat line.
type ChatMessage struct {
	At   time.Time
	SID  string
	Name string
	Text string
}

// Room owns one holdem.Table plus everything the engine itself has no
// opinion about: which session occupies which seat, chat, and the
// activity log shown to observers.
type Room struct {
	ID string

	mu       sync.Mutex
	table    *holdem.Table
	sessions map[string]holdem.Seat // sid -> seat
	leaving  map[holdem.Seat]string // seats auto-folded mid-hand, pending removal once the hand ends

	logs []LogEntry
	chat []ChatMessage
}

// New creates an empty Room around a fresh Table built from cfg.
func New(id string, cfg holdem.Config) (*Room, error) {
	tbl, err := holdem.NewTable(cfg)
	if err != nil {
		return nil, err
	}
	return &Room{
		ID:       id,
		table:    tbl,
		sessions: make(map[string]holdem.Seat),
		leaving:  make(map[holdem.Seat]string),
	}, nil
}

// Table exposes the underlying engine instance (e.g. for LegalActions,
// BestFive display queries that don't need session resolution).
func (r *Room) Table() *holdem.Table { return r.table }

// SeatOf returns sid's current seat, if any.
func (r *Room) SeatOf(sid string) (holdem.Seat, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seat, ok := r.sessions[sid]
	return seat, ok
}

// MemberCount returns the number of currently seated sessions.
func (r *Room) MemberCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// View bundles a PublicState snapshot with the room-level log and chat,
// the shape a transport layer broadcasts to every connected observer.
type View struct {
	State holdem.PublicState
	Logs  []LogEntry
	Chat  []ChatMessage
}

// PublicState returns the broadcastable snapshot of the room.
func (r *Room) PublicState() View {
	r.mu.Lock()
	logs := append([]LogEntry(nil), r.logs...)
	chat := append([]ChatMessage(nil), r.chat...)
	r.mu.Unlock()
	return View{State: r.table.PublicState(), Logs: logs, Chat: chat}
}

// PrivateState returns sid's own hole cards, if seated.
func (r *Room) PrivateState(sid string) (holdem.PrivateState, bool) {
	seat, ok := r.SeatOf(sid)
	if !ok {
		return holdem.PrivateState{}, false
	}
	return r.table.PrivateState(seat)
}

func (r *Room) addLog(format string, args ...any) {
	r.logs = append(r.logs, LogEntry{At: time.Now(), Message: fmt.Sprintf(format, args...)})
	if len(r.logs) > logBufferCap {
		r.logs = r.logs[len(r.logs)-logBufferCap:]
	}
}

// Logs returns a copy of the bounded activity log, oldest first.
func (r *Room) Logs() []LogEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]LogEntry(nil), r.logs...)
}

// AddChat appends a chat line from sid, trimmed and length-capped, and
// drops it silently if sid isn't seated or the text is empty (spec.md §7).
func (r *Room) AddChat(sid, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	seat, ok := r.sessions[sid]
	if !ok {
		return
	}
	text = trimToLen(text, chatTextMaxLen)
	if text == "" {
		return
	}
	name := sid
	if p := r.table.Player(seat); p != nil {
		name = p.DisplayName
	}
	r.chat = append(r.chat, ChatMessage{At: time.Now(), SID: sid, Name: name, Text: text})
	if len(r.chat) > chatBufferCap {
		r.chat = r.chat[len(r.chat)-chatBufferCap:]
	}
}

// Chat returns a copy of the bounded chat log, oldest first.
func (r *Room) Chat() []ChatMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ChatMessage(nil), r.chat...)
}

// Join seats sid at the lowest free seat in [1,9], buying in for
// startingChips. Rejoining with the same sid that
// is already seated is a no-op that returns its existing seat.
func (r *Room) Join(sid, displayName string, startingChips int64) (holdem.Seat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if seat, ok := r.sessions[sid]; ok {
		return seat, nil
	}

	taken := make(map[holdem.Seat]bool, len(r.sessions))
	for _, seat := range r.sessions {
		taken[seat] = true
	}
	var free holdem.Seat
	for s := holdem.Seat(1); s <= maxSeats; s++ {
		if !taken[s] {
			free = s
			break
		}
	}
	if free == holdem.NoSeat {
		return holdem.NoSeat, holdem.NewError(holdem.RoomFull, "room %s has no free seats", r.ID)
	}

	if err := r.table.Seat(free, sid, displayName, startingChips); err != nil {
		return holdem.NoSeat, err
	}
	r.sessions[sid] = free
	r.addLog("%s joined at seat %d", displayName, free)
	return free, nil
}

// BuyIn adds amount chips to sid's stack, refused while a hand is running.
func (r *Room) BuyIn(sid string, amount int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	seat, ok := r.sessions[sid]
	if !ok {
		return holdem.NewError(holdem.NotSeated, "sid %s is not in room %s", sid, r.ID)
	}
	if err := r.table.BuyIn(seat, amount); err != nil {
		return err
	}
	if p := r.table.Player(seat); p != nil {
		r.addLog("%s bought in +%d, now holding %d", p.DisplayName, amount, p.Chips)
	}
	return nil
}

// SetReady toggles sid's readiness for the next hand.
func (r *Room) SetReady(sid string, ready bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	seat, ok := r.sessions[sid]
	if !ok {
		return holdem.NewError(holdem.NotSeated, "sid %s is not in room %s", sid, r.ID)
	}
	if err := r.table.SetReady(seat, ready); err != nil {
		return err
	}
	if p := r.table.Player(seat); p != nil {
		word := "ready"
		if !ready {
			word = "not ready"
		}
		r.addLog("%s is %s", p.DisplayName, word)
	}
	return nil
}

// StartHand begins a new hand once every seated session is ready and at
// least two are seated (spec.md §4.5).
func (r *Room) StartHand(sid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[sid]; !ok {
		return holdem.NewError(holdem.NotSeated, "sid %s is not in room %s", sid, r.ID)
	}
	if len(r.sessions) < 2 {
		return holdem.NewError(holdem.MinPlayers, "room %s needs >= 2 players, has %d", r.ID, len(r.sessions))
	}
	for otherSID, seat := range r.sessions {
		p := r.table.Player(seat)
		if p == nil || !p.Ready {
			return holdem.NewError(holdem.NotReady, "sid %s has not readied up", otherSID)
		}
	}

	if err := r.table.StartHand(); err != nil {
		return err
	}
	pub := r.table.PublicState()
	r.addLog("hand #%d begins", pub.HandNo)
	return nil
}

// Action resolves sid to its seat and applies the action. When the action
// settles the hand, it logs the showdown/early-termination narrative
// (mirroring the teacher's per-event logging), resets readiness, and
// vacates any seats that disconnected mid-hand.
func (r *Room) Action(sid string, action holdem.Action) (*holdem.ShowdownResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	seat, ok := r.sessions[sid]
	if !ok {
		return nil, holdem.NewError(holdem.NotSeated, "sid %s is not in room %s", sid, r.ID)
	}

	result, err := r.table.ApplyAction(seat, action)
	if err != nil {
		return nil, err
	}
	if result != nil {
		r.logSettlement(result)
		r.table.ResetReadyAll()
		r.flushPendingLeaves()
	}
	return result, nil
}

func (r *Room) logSettlement(result *holdem.ShowdownResult) {
	for _, sc := range result.Ranking {
		p := r.table.Player(sc.Seat)
		if p == nil {
			continue
		}
		r.addLog("seat %d (%s) shows score %d", sc.Seat, p.DisplayName, sc.Score)
	}
	for _, seat := range result.Winners {
		p := r.table.Player(seat)
		if p == nil {
			continue
		}
		r.addLog("%s wins %d", p.DisplayName, result.Payouts[seat])
	}
}

// Leave removes sid from the room. If sid is mid-action in a running
// hand it is auto-folded first; the seat itself is only vacated once that
// hand finishes, since the engine still needs the leaving player's
// contributed chips to settle any side pots they funded.
func (r *Room) Leave(sid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.leaveLocked(sid)
}

func (r *Room) leaveLocked(sid string) error {
	seat, ok := r.sessions[sid]
	if !ok {
		return nil
	}

	pub := r.table.PublicState()
	if pub.Stage != holdem.Waiting {
		if pub.ActionSeat == seat {
			if result, err := r.table.ApplyAction(seat, holdem.Action{Kind: holdem.ActionFold}); err == nil {
				r.addLog("seat %d folded on disconnect", seat)
				if result != nil {
					r.logSettlement(result)
					r.table.ResetReadyAll()
				}
			}
		}
		delete(r.sessions, sid)
		r.leaving[seat] = sid
		r.flushPendingLeaves()
		return nil
	}

	delete(r.sessions, sid)
	if name := r.playerName(seat); name != "" {
		r.addLog("%s left seat %d", name, seat)
	}
	return r.table.Leave(seat)
}

// flushPendingLeaves vacates seats whose session disconnected mid-hand,
// now that the hand they were auto-folded out of has finished.
func (r *Room) flushPendingLeaves() {
	if len(r.leaving) == 0 {
		return
	}
	seats := make([]holdem.Seat, 0, len(r.leaving))
	for seat := range r.leaving {
		seats = append(seats, seat)
	}
	sort.Slice(seats, func(i, j int) bool { return seats[i] < seats[j] })
	for _, seat := range seats {
		name := r.playerName(seat)
		if err := r.table.Leave(seat); err != nil {
			log.Printf("[room %s] deferred leave of seat %d failed: %v", r.ID, seat, err)
			continue
		}
		delete(r.leaving, seat)
		if name != "" {
			r.addLog("%s left seat %d", name, seat)
		}
	}
}

func (r *Room) playerName(seat holdem.Seat) string {
	if p := r.table.Player(seat); p != nil {
		return p.DisplayName
	}
	return ""
}

func trimToLen(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n]
}
