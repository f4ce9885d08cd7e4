package card

import "testing"

func TestParseCardRoundTrip(t *testing.T) {
	cases := []string{"Ah", "Td", "2s", "Kc", "9h"}
	for _, s := range cases {
		c, err := ParseCard(s)
		if err != nil {
			t.Fatalf("ParseCard(%q): %v", s, err)
		}
		if got := c.String(); got != s {
			t.Fatalf("String() = %q, want %q", got, s)
		}
	}
}

func TestParseCardInvalid(t *testing.T) {
	for _, s := range []string{"", "A", "Zh", "Ax", "10h"} {
		if _, err := ParseCard(s); err == nil {
			t.Fatalf("ParseCard(%q): expected error", s)
		}
	}
}

func TestFullSetHas52DistinctCards(t *testing.T) {
	seen := make(map[Card]bool, 52)
	for _, c := range FullSet {
		if seen[c] {
			t.Fatalf("duplicate card %v in FullSet", c)
		}
		seen[c] = true
	}
	if len(seen) != 52 {
		t.Fatalf("FullSet has %d cards, want 52", len(seen))
	}
}

func TestDeckDrawNRemoves(t *testing.T) {
	d := NewShuffledDeck()
	if d.Remaining() != 52 {
		t.Fatalf("Remaining() = %d, want 52", d.Remaining())
	}
	drawn := d.DrawN(7)
	if len(drawn) != 7 || d.Remaining() != 45 {
		t.Fatalf("after DrawN(7): drawn=%d remaining=%d", len(drawn), d.Remaining())
	}
	seen := make(map[Card]bool)
	for _, c := range drawn {
		if seen[c] {
			t.Fatalf("DrawN produced duplicate card %v", c)
		}
		seen[c] = true
	}
}

func TestHighRankAceIs14(t *testing.T) {
	if MustParseCard("Ah").HighRank() != 14 {
		t.Fatalf("ace HighRank should be 14")
	}
	if MustParseCard("2h").HighRank() != 2 {
		t.Fatalf("deuce HighRank should be 2")
	}
}
