package card

import (
	"crypto/rand"
	"math/big"
	mrand "math/rand"
	"time"
)

var ranks = [13]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13}
var suits = [4]Suit{Spade, Heart, Club, Diamond}

// FullSet is the 52 distinct cards of a standard deck, spade-ace-first,
// in a fixed enumeration order. It is never mutated; the deck constructors
// copy it.
var FullSet = buildFullSet()

func buildFullSet() []Card {
	out := make([]Card, 0, 52)
	for _, s := range suits {
		for _, r := range ranks {
			out = append(out, makeCard(s, r))
		}
	}
	return out
}

// Deck is an ordered sequence of cards; Draw removes from the top (index 0).
type Deck struct {
	cards []Card
}

// NewShuffledDeck returns a full 52-card deck shuffled uniformly at random
// using a cryptographically seeded RNG (never bare process-start time).
func NewShuffledDeck() *Deck {
	d := &Deck{cards: append([]Card(nil), FullSet...)}
	d.shuffle(newSecureRand())
	return d
}

// NewOrderedDeck builds a deck from an explicit, already-ordered card list
// (for deterministic replay); it does not reshuffle.
func NewOrderedDeck(cards []Card) *Deck {
	return &Deck{cards: append([]Card(nil), cards...)}
}

// NewSeededShuffledDeck shuffles a full 52-card deck from an explicit seed,
// for reproducible test runs and replay (spec.md "Determinism"). Real play
// should use NewShuffledDeck instead.
func NewSeededShuffledDeck(seed int64) *Deck {
	d := &Deck{cards: append([]Card(nil), FullSet...)}
	d.shuffle(mrand.New(mrand.NewSource(seed)))
	return d
}

func (d *Deck) shuffle(rng *mrand.Rand) {
	rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Remaining returns the number of undrawn cards.
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// Draw removes and returns the top card. It panics on an empty deck: a
// correctly driven 2-9 player hand never exhausts 52 cards.
func (d *Deck) Draw() Card {
	if len(d.cards) == 0 {
		panic("card: draw from empty deck")
	}
	c := d.cards[0]
	d.cards = d.cards[1:]
	return c
}

// DrawN draws n cards in order.
func (d *Deck) DrawN(n int) []Card {
	out := make([]Card, n)
	for i := 0; i < n; i++ {
		out[i] = d.Draw()
	}
	return out
}

// newSecureRand seeds a math/rand source from crypto/rand so shuffles are
// suitable for fair play rather than merely reproducible.
func newSecureRand() *mrand.Rand {
	seed := time.Now().UnixNano()
	if n, err := rand.Int(rand.Reader, big.NewInt(1<<62)); err == nil {
		seed = n.Int64()
	}
	return mrand.New(mrand.NewSource(seed))
}
