package poker

import (
	"slices"

	"github.com/fadedpez/cardroyale/pkg/cards"
)

// HandSize is the number of cards in a draw poker hand
const HandSize = 5

// HandRank is a paying poker hand, weakest first
type HandRank int

const (
	NoWin HandRank = iota
	JacksOrBetter
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

var rankNames = map[HandRank]string{
	NoWin:         "No Win",
	JacksOrBetter: "Jacks or Better",
	TwoPair:       "Two Pair",
	ThreeOfAKind:  "Three of a Kind",
	Straight:      "Straight",
	Flush:         "Flush",
	FullHouse:     "Full House",
	FourOfAKind:   "Four of a Kind",
	StraightFlush: "Straight Flush",
	RoyalFlush:    "Royal Flush",
}

var multipliers = map[HandRank]int64{
	JacksOrBetter: 1,
	TwoPair:       2,
	ThreeOfAKind:  3,
	Straight:      4,
	Flush:         6,
	FullHouse:     9,
	FourOfAKind:   25,
	StraightFlush: 50,
	RoyalFlush:    250,
}

func (r HandRank) String() string {
	if name, ok := rankNames[r]; ok {
		return name
	}
	return "Unknown"
}

// Multiplier is the pay table entry for the hand
func (r HandRank) Multiplier() int64 {
	return multipliers[r]
}

// IsWin reports whether the hand pays
func (r HandRank) IsWin() bool {
	return r.Multiplier() > 0
}

// Evaluate returns the best paying rank of a five card hand. Checks run from
// the strongest hand down and the first match wins.
func Evaluate(hand []cards.Card) HandRank {
	if len(hand) != HandSize {
		return NoWin
	}

	values := make([]int, HandSize)
	counts := make(map[int]int, HandSize)
	flush := true
	for i, card := range hand {
		values[i] = card.Rank.Ordinal()
		counts[values[i]]++
		if card.Suit != hand[0].Suit {
			flush = false
		}
	}
	slices.Sort(values)

	straight := isStraight(values)

	groups := make([]int, 0, len(counts))
	for _, n := range counts {
		groups = append(groups, n)
	}
	slices.SortFunc(groups, func(a, b int) int { return b - a })

	switch {
	case flush && straight && values[0] == 10:
		return RoyalFlush
	case flush && straight:
		return StraightFlush
	case groups[0] == 4:
		return FourOfAKind
	case groups[0] == 3 && groups[1] == 2:
		return FullHouse
	case flush:
		return Flush
	case straight:
		return Straight
	case groups[0] == 3:
		return ThreeOfAKind
	case groups[0] == 2 && groups[1] == 2:
		return TwoPair
	case groups[0] == 2 && pairValue(counts) >= cards.Jack.Ordinal():
		return JacksOrBetter
	}
	return NoWin
}

// isStraight takes sorted ordinals; the wheel A-2-3-4-5 counts with the ace low.
func isStraight(values []int) bool {
	if slices.Equal(values, []int{2, 3, 4, 5, 14}) {
		return true
	}
	for i := 1; i < len(values); i++ {
		if values[i] != values[i-1]+1 {
			return false
		}
	}
	return true
}

func pairValue(counts map[int]int) int {
	for value, n := range counts {
		if n == 2 {
			return value
		}
	}
	return 0
}
