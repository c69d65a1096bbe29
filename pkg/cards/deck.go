package cards

import "github.com/fadedpez/cardroyale/pkg/rng"

// DefaultReshuffleThreshold is the low-water mark below which a shoe is
// replaced before the next draw.
const DefaultReshuffleThreshold = 15

// Deck is a shoe of one or more shuffled 52-card decks. Draw never fails:
// once fewer than threshold cards remain, the whole shoe is replaced by a
// freshly shuffled one before drawing.
type Deck struct {
	src        rng.Source
	subDecks   int
	threshold  int
	cards      []Card
	reshuffles int
}

// Option configures a Deck
type Option func(*Deck)

// WithThreshold overrides the reshuffle low-water mark.
func WithThreshold(n int) Option {
	return func(d *Deck) {
		if n < 0 {
			n = 0
		}
		d.threshold = n
	}
}

// WithStack moves the given cards to the top of the freshly built shoe, in
// order, so they are drawn first. Cards are taken out of the shoe rather than
// added, keeping its composition intact; a card with no copy left is skipped.
func WithStack(stack ...Card) Option {
	return func(d *Deck) {
		top := make([]Card, 0, len(stack))
		for _, c := range stack {
			for i := range d.cards {
				if d.cards[i] == c {
					d.cards = append(d.cards[:i], d.cards[i+1:]...)
					top = append(top, c)
					break
				}
			}
		}
		d.cards = append(top, d.cards...)
	}
}

// NewDeck builds a shuffled shoe of subDecks x 52 cards.
func NewDeck(src rng.Source, subDecks int, opts ...Option) *Deck {
	if subDecks < 1 {
		subDecks = 1
	}
	d := &Deck{
		src:       src,
		subDecks:  subDecks,
		threshold: DefaultReshuffleThreshold,
	}
	d.cards = d.fresh()
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Deck) fresh() []Card {
	shoe := make([]Card, 0, d.subDecks*52)
	for i := 0; i < d.subDecks; i++ {
		shoe = append(shoe, Standard()...)
	}
	rng.Shuffle(d.src, shoe)
	return shoe
}

// Draw removes and returns the top card
func (d *Deck) Draw() Card {
	if len(d.cards) < d.threshold || len(d.cards) == 0 {
		d.cards = d.fresh()
		d.reshuffles++
	}
	card := d.cards[0]
	d.cards = d.cards[1:]
	return card
}

// Remaining returns the number of undrawn cards
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// Size is the full shoe size.
func (d *Deck) Size() int {
	return d.subDecks * 52
}

// Reshuffles counts how many times the shoe was silently replaced.
func (d *Deck) Reshuffles() int {
	return d.reshuffles
}
