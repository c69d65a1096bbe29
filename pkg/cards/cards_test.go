package cards

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/fadedpez/cardroyale/pkg/rng"
)

type CardsTestSuite struct {
	suite.Suite
}

func TestCardsSuite(t *testing.T) {
	suite.Run(t, new(CardsTestSuite))
}

func (s *CardsTestSuite) TestCardString() {
	testCases := []struct {
		name     string
		card     Card
		expected string
	}{
		{name: "ace of hearts", card: New(Ace, Hearts), expected: "A♥"},
		{name: "ten of diamonds", card: New(Ten, Diamonds), expected: "10♦"},
		{name: "king of clubs", card: New(King, Clubs), expected: "K♣"},
		{name: "queen of spades", card: New(Queen, Spades), expected: "Q♠"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.expected, tc.card.String())
		})
	}
}

func (s *CardsTestSuite) TestOrdinal() {
	s.Equal(2, Two.Ordinal())
	s.Equal(10, Ten.Ordinal())
	s.Equal(11, Jack.Ordinal())
	s.Equal(14, Ace.Ordinal())
	s.True(King.IsFace())
	s.False(Ace.IsFace())
}

func (s *CardsTestSuite) TestGameValues() {
	s.Equal(11, Ace.BlackjackValue())
	s.Equal(10, King.BlackjackValue())
	s.Equal(10, Ten.BlackjackValue())
	s.Equal(7, Seven.BlackjackValue())

	s.Equal(1, Ace.BaccaratValue())
	s.Equal(0, Queen.BaccaratValue())
	s.Equal(0, Ten.BaccaratValue())
	s.Equal(9, Nine.BaccaratValue())
}

func (s *CardsTestSuite) TestStandard() {
	deck := Standard()
	s.Len(deck, 52)

	seen := map[Card]bool{}
	for _, c := range deck {
		s.False(seen[c], "duplicate %s", c)
		seen[c] = true
	}
}

func (s *CardsTestSuite) TestNewDeckComposition() {
	for _, n := range []int{1, 2, 6} {
		deck := NewDeck(rng.NewSeeded(3), n)
		s.Equal(52*n, deck.Remaining())
		s.Equal(52*n, deck.Size())

		counts := map[Card]int{}
		for deck.Remaining() > 0 {
			counts[deck.Draw()]++
			if deck.Remaining() < DefaultReshuffleThreshold {
				break
			}
		}
		for c, count := range counts {
			s.LessOrEqual(count, n, "card %s drawn more than %d times", c, n)
		}
	}
}

func (s *CardsTestSuite) TestDrawReshufflesBelowThreshold() {
	deck := NewDeck(rng.NewSeeded(9), 1)

	for i := 0; i < 52-DefaultReshuffleThreshold; i++ {
		deck.Draw()
	}
	s.Equal(DefaultReshuffleThreshold, deck.Remaining())
	s.Equal(0, deck.Reshuffles())

	deck.Draw()
	s.Equal(DefaultReshuffleThreshold-1, deck.Remaining())
	s.Equal(0, deck.Reshuffles())

	deck.Draw()
	s.Equal(51, deck.Remaining())
	s.Equal(1, deck.Reshuffles())
}

func (s *CardsTestSuite) TestDrawNeverEmpty() {
	deck := NewDeck(rng.NewSeeded(1), 1, WithThreshold(0))
	for i := 0; i < 200; i++ {
		deck.Draw()
	}
	s.Equal(3, deck.Reshuffles())
}

func (s *CardsTestSuite) TestWithStack() {
	stack := []Card{New(Ace, Spades), New(King, Hearts), New(Ace, Spades)}
	deck := NewDeck(rng.NewSeeded(5), 2, WithStack(stack...))

	s.Equal(104, deck.Remaining())
	for _, want := range stack {
		s.Equal(want, deck.Draw())
	}

	counts := map[Card]int{}
	for deck.Remaining() >= DefaultReshuffleThreshold {
		counts[deck.Draw()]++
	}
	s.Zero(counts[New(Ace, Spades)])
}

func (s *CardsTestSuite) TestWithStackSkipsExhaustedCards() {
	deck := NewDeck(rng.NewSeeded(5), 1, WithStack(New(Two, Clubs), New(Two, Clubs)))

	s.Equal(52, deck.Remaining())
	s.Equal(New(Two, Clubs), deck.Draw())
	s.NotEqual(New(Two, Clubs), deck.Draw())
}
