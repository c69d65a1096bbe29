package cards

import "fmt"

// Suit represents a card suit
type Suit string

const (
	Hearts   Suit = "hearts"
	Diamonds Suit = "diamonds"
	Clubs    Suit = "clubs"
	Spades   Suit = "spades"
)

// Symbol returns the suit glyph.
func (s Suit) Symbol() string {
	switch s {
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	case Spades:
		return "♠"
	}
	return "?"
}

// Rank represents a card rank
type Rank string

const (
	Two   Rank = "2"
	Three Rank = "3"
	Four  Rank = "4"
	Five  Rank = "5"
	Six   Rank = "6"
	Seven Rank = "7"
	Eight Rank = "8"
	Nine  Rank = "9"
	Ten   Rank = "10"
	Jack  Rank = "J"
	Queen Rank = "Q"
	King  Rank = "K"
	Ace   Rank = "A"
)

// Suits and Ranks in deck construction order.
var (
	Suits = []Suit{Hearts, Diamonds, Clubs, Spades}
	Ranks = []Rank{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}
)

var ordinals = map[Rank]int{
	Two: 2, Three: 3, Four: 4, Five: 5, Six: 6, Seven: 7, Eight: 8,
	Nine: 9, Ten: 10, Jack: 11, Queen: 12, King: 13, Ace: 14,
}

// Ordinal ranks cards for poker: 2..10, J=11, Q=12, K=13, A=14.
func (r Rank) Ordinal() int {
	return ordinals[r]
}

// IsFace reports whether the rank is J, Q or K.
func (r Rank) IsFace() bool {
	return r == Jack || r == Queen || r == King
}

// BlackjackValue counts an ace as 11; callers reduce soft aces.
func (r Rank) BlackjackValue() int {
	switch {
	case r == Ace:
		return 11
	case r == Ten || r.IsFace():
		return 10
	default:
		return ordinals[r]
	}
}

// BaccaratValue: tens and faces are 0, ace is 1.
func (r Rank) BaccaratValue() int {
	switch {
	case r == Ace:
		return 1
	case r == Ten || r.IsFace():
		return 0
	default:
		return ordinals[r]
	}
}

// Card represents a playing card
type Card struct {
	Suit Suit `json:"suit"`
	Rank Rank `json:"rank"`
}

// New creates a card
func New(rank Rank, suit Suit) Card {
	return Card{Suit: suit, Rank: rank}
}

// String returns a string representation of the card, e.g. "10♥"
func (c Card) String() string {
	return string(c.Rank) + c.Suit.Symbol()
}

// GoString helps test failure output.
func (c Card) GoString() string {
	return fmt.Sprintf("cards.New(%q, %q)", c.Rank, c.Suit)
}

// Standard returns one ordered 52-card deck.
func Standard() []Card {
	deck := make([]Card, 0, len(Suits)*len(Ranks))
	for _, suit := range Suits {
		for _, rank := range Ranks {
			deck = append(deck, Card{Suit: suit, Rank: rank})
		}
	}
	return deck
}
