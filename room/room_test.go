package room

import (
	"testing"

	"github.com/xuliu-cyber/texas-poker/holdem"
)

func newTestRoom(t *testing.T) *Room {
	t.Helper()
	r, err := New("table-1", holdem.DefaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return r
}

func mustJoin(t *testing.T, r *Room, sid, name string) holdem.Seat {
	t.Helper()
	seat, err := r.Join(sid, name, 1000)
	if err != nil {
		t.Fatalf("Join(%s): %v", sid, err)
	}
	return seat
}

func TestJoinAssignsLowestFreeSeat(t *testing.T) {
	r := newTestRoom(t)
	if seat := mustJoin(t, r, "sid-a", "Alice"); seat != 1 {
		t.Fatalf("first join seat = %d, want 1", seat)
	}
	if seat := mustJoin(t, r, "sid-b", "Bob"); seat != 2 {
		t.Fatalf("second join seat = %d, want 2", seat)
	}
	if r.MemberCount() != 2 {
		t.Fatalf("MemberCount = %d, want 2", r.MemberCount())
	}
}

func TestJoinRejoinIsNoOp(t *testing.T) {
	r := newTestRoom(t)
	first := mustJoin(t, r, "sid-a", "Alice")
	again, err := r.Join("sid-a", "Alice", 1000)
	if err != nil {
		t.Fatalf("rejoin: %v", err)
	}
	if again != first {
		t.Fatalf("rejoin seat = %d, want %d", again, first)
	}
}

func TestJoinFailsWhenRoomFull(t *testing.T) {
	r := newTestRoom(t)
	for i := 0; i < maxSeats; i++ {
		mustJoin(t, r, sidFor(i), nameFor(i))
	}
	_, err := r.Join("sid-overflow", "Overflow", 1000)
	he, ok := err.(*holdem.Error)
	if !ok || he.Kind != holdem.RoomFull {
		t.Fatalf("err = %v, want Kind=RoomFull", err)
	}
}

func sidFor(i int) string  { return string(rune('a' + i)) }
func nameFor(i int) string { return "player-" + string(rune('a'+i)) }

func TestStartHandRequiresAllReady(t *testing.T) {
	r := newTestRoom(t)
	mustJoin(t, r, "sid-a", "Alice")
	mustJoin(t, r, "sid-b", "Bob")

	err := r.StartHand("sid-a")
	he, ok := err.(*holdem.Error)
	if !ok || he.Kind != holdem.NotReady {
		t.Fatalf("err = %v, want Kind=NotReady", err)
	}

	if err := r.SetReady("sid-a", true); err != nil {
		t.Fatalf("SetReady(a): %v", err)
	}
	if err := r.SetReady("sid-b", true); err != nil {
		t.Fatalf("SetReady(b): %v", err)
	}
	if err := r.StartHand("sid-a"); err != nil {
		t.Fatalf("StartHand: %v", err)
	}
	if r.Table().PublicState().Stage != holdem.Preflop {
		t.Fatalf("stage = %v, want Preflop", r.Table().PublicState().Stage)
	}
}

func TestStartHandRequiresTwoMembers(t *testing.T) {
	r := newTestRoom(t)
	mustJoin(t, r, "sid-a", "Alice")
	if err := r.SetReady("sid-a", true); err != nil {
		t.Fatalf("SetReady: %v", err)
	}
	err := r.StartHand("sid-a")
	he, ok := err.(*holdem.Error)
	if !ok || he.Kind != holdem.MinPlayers {
		t.Fatalf("err = %v, want Kind=MinPlayers", err)
	}
}

func readyBothAndStart(t *testing.T, r *Room, a, b string) {
	t.Helper()
	if err := r.SetReady(a, true); err != nil {
		t.Fatalf("SetReady(%s): %v", a, err)
	}
	if err := r.SetReady(b, true); err != nil {
		t.Fatalf("SetReady(%s): %v", b, err)
	}
	if err := r.StartHand(a); err != nil {
		t.Fatalf("StartHand: %v", err)
	}
}

func TestActionSettlesHandAndResetsReady(t *testing.T) {
	r := newTestRoom(t)
	mustJoin(t, r, "sid-a", "Alice")
	mustJoin(t, r, "sid-b", "Bob")
	readyBothAndStart(t, r, "sid-a", "sid-b")

	// Heads-up: seat 1 (SB/dealer) acts first preflop; sid-a is seat 1.
	res, err := r.Action("sid-a", holdem.Action{Kind: holdem.ActionFold})
	if err != nil {
		t.Fatalf("Action(fold): %v", err)
	}
	if res == nil || len(res.Winners) != 1 {
		t.Fatalf("expected a settlement, got %+v", res)
	}

	pub := r.Table().PublicState()
	for _, p := range pub.Players {
		if p.Ready {
			t.Fatalf("seat %d still ready after settlement, want reset", p.Seat)
		}
	}
	if len(r.Logs()) == 0 {
		t.Fatalf("expected settlement to append activity log entries")
	}
}

func TestLeaveMidHandAutoFoldsActorAndDefersSeatRemoval(t *testing.T) {
	r := newTestRoom(t)
	mustJoin(t, r, "sid-a", "Alice")
	mustJoin(t, r, "sid-b", "Bob")
	mustJoin(t, r, "sid-c", "Carol")
	if err := r.SetReady("sid-a", true); err != nil {
		t.Fatalf("SetReady(a): %v", err)
	}
	if err := r.SetReady("sid-b", true); err != nil {
		t.Fatalf("SetReady(b): %v", err)
	}
	if err := r.SetReady("sid-c", true); err != nil {
		t.Fatalf("SetReady(c): %v", err)
	}
	if err := r.StartHand("sid-a"); err != nil {
		t.Fatalf("StartHand: %v", err)
	}
	// 3-handed: dealer (seat 1) acts first preflop as UTG.
	if r.Table().PublicState().ActionSeat != 1 {
		t.Fatalf("ActionSeat = %d, want 1", r.Table().PublicState().ActionSeat)
	}

	// sid-a (seat 1) disconnects on their own turn; this should auto-fold
	// them, but two live players remain so the hand keeps going, meaning
	// the seat can't be vacated yet.
	if err := r.Leave("sid-a"); err != nil {
		t.Fatalf("Leave: %v", err)
	}
	if _, ok := r.SeatOf("sid-a"); ok {
		t.Fatalf("sid-a should no longer resolve to a session-level seat")
	}
	if p := r.Table().Player(1); p == nil {
		t.Fatalf("seat 1 should still be occupied at the engine level while the hand they left mid-way continues")
	}
	if r.Table().PublicState().Stage == holdem.Waiting {
		t.Fatalf("hand should still be running with two live players left")
	}

	// Finish the hand: seat 2 calls and seat 3 folds, which leaves seat 2
	// alone; once it settles the deferred leave should flush.
	if _, err := r.Action("sid-b", holdem.Action{Kind: holdem.ActionCall}); err != nil {
		t.Fatalf("seat2 call: %v", err)
	}
	if _, err := r.Action("sid-c", holdem.Action{Kind: holdem.ActionFold}); err != nil {
		t.Fatalf("seat3 fold: %v", err)
	}

	if r.Table().PublicState().Stage != holdem.Waiting {
		t.Fatalf("stage = %v, want Waiting once the hand concludes", r.Table().PublicState().Stage)
	}
	if p := r.Table().Player(1); p != nil {
		t.Fatalf("seat 1 should have been vacated once the pending leave flushed")
	}
}

func TestLeaveWhileWaitingRemovesSeatImmediately(t *testing.T) {
	r := newTestRoom(t)
	mustJoin(t, r, "sid-a", "Alice")
	mustJoin(t, r, "sid-b", "Bob")

	if err := r.Leave("sid-a"); err != nil {
		t.Fatalf("Leave: %v", err)
	}
	if p := r.Table().Player(1); p != nil {
		t.Fatalf("seat 1 should be vacated immediately while the table is idle")
	}
	if r.MemberCount() != 1 {
		t.Fatalf("MemberCount = %d, want 1", r.MemberCount())
	}
}

func TestBuyInRejectedMidHand(t *testing.T) {
	r := newTestRoom(t)
	mustJoin(t, r, "sid-a", "Alice")
	mustJoin(t, r, "sid-b", "Bob")
	readyBothAndStart(t, r, "sid-a", "sid-b")

	err := r.BuyIn("sid-a", 500)
	he, ok := err.(*holdem.Error)
	if !ok || he.Kind != holdem.BuyInInProgress {
		t.Fatalf("err = %v, want Kind=BuyInInProgress", err)
	}
}

func TestAddChatTrimsAndIgnoresUnknownSID(t *testing.T) {
	r := newTestRoom(t)
	mustJoin(t, r, "sid-a", "Alice")

	r.AddChat("sid-a", "  gg  ")
	r.AddChat("sid-ghost", "should be dropped")

	chat := r.Chat()
	if len(chat) != 1 {
		t.Fatalf("len(Chat()) = %d, want 1", len(chat))
	}
	if chat[0].Text != "gg" {
		t.Fatalf("chat text = %q, want trimmed %q", chat[0].Text, "gg")
	}
}
