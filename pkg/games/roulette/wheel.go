package roulette

import (
	"fmt"
	"strings"
)

// Pockets on a European single-zero wheel, numbered 0..36
const Pockets = 37

// Color of a pocket
type Color int

const (
	Green Color = iota
	Red
	Black
)

func (c Color) String() string {
	switch c {
	case Red:
		return "red"
	case Black:
		return "black"
	default:
		return "green"
	}
}

var redNumbers = map[int]bool{
	1: true, 3: true, 5: true, 7: true, 9: true, 12: true,
	14: true, 16: true, 18: true, 19: true, 21: true, 23: true,
	25: true, 27: true, 30: true, 32: true, 34: true, 36: true,
}

// Pocket is a classified wheel result
type Pocket struct {
	Number int
	Color  Color
}

// Classify colors a pocket number. 0 is green; the 18 red numbers are fixed
// and every other number is black.
func Classify(n int) Pocket {
	switch {
	case n == 0:
		return Pocket{Number: 0, Color: Green}
	case redNumbers[n]:
		return Pocket{Number: n, Color: Red}
	default:
		return Pocket{Number: n, Color: Black}
	}
}

// IsEven is false for zero, which is neither even nor odd for betting
func (p Pocket) IsEven() bool {
	return p.Number != 0 && p.Number%2 == 0
}

// IsOdd reports an odd pocket
func (p Pocket) IsOdd() bool {
	return p.Number%2 == 1
}

func (p Pocket) String() string {
	return fmt.Sprintf("%d %s", p.Number, p.Color)
}

// BetType is an even-money outside bet
type BetType int

const (
	BetRed BetType = iota + 1
	BetBlack
	BetEven
	BetOdd
)

var betNames = map[BetType]string{
	BetRed:   "red",
	BetBlack: "black",
	BetEven:  "even",
	BetOdd:   "odd",
}

func (b BetType) String() string {
	if name, ok := betNames[b]; ok {
		return name
	}
	return fmt.Sprintf("BetType(%d)", int(b))
}

// Valid reports whether b is a known bet type. The zero value is not.
func (b BetType) Valid() bool {
	_, ok := betNames[b]
	return ok
}

// ParseBetType reads a bet type name, case insensitive
func ParseBetType(s string) (BetType, error) {
	for b, name := range betNames {
		if strings.EqualFold(s, name) {
			return b, nil
		}
	}
	return 0, fmt.Errorf("unknown roulette bet type %q", s)
}

// Wins reports whether the bet matches the pocket's color or parity
func (b BetType) Wins(p Pocket) bool {
	switch b {
	case BetRed:
		return p.Color == Red
	case BetBlack:
		return p.Color == Black
	case BetEven:
		return p.IsEven()
	case BetOdd:
		return p.IsOdd()
	}
	return false
}
