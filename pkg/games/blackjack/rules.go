package blackjack

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fadedpez/cardroyale/pkg/cards"
	"github.com/fadedpez/cardroyale/pkg/entities"
	"github.com/fadedpez/cardroyale/pkg/games/common"
)

const (
	StandardDecks = 6  // Decks in the shoe
	DealerStandOn = 17 // Dealer draws while under this
	Blackjack     = 21
)

// Hand is an ordered set of cards held by the player or the dealer
type Hand []cards.Card

// Score returns the best total: aces count 11 and are reduced to 1, one at a
// time, while the total is over 21.
func (h Hand) Score() int {
	score, _ := h.score()
	return score
}

// IsSoft reports whether an ace is still counted as 11
func (h Hand) IsSoft() bool {
	_, soft := h.score()
	return soft > 0
}

func (h Hand) score() (total int, softAces int) {
	for _, card := range h {
		total += card.Rank.BlackjackValue()
		if card.Rank == cards.Ace {
			softAces++
		}
	}
	for total > Blackjack && softAces > 0 {
		total -= 10
		softAces--
	}
	return total, softAces
}

// IsBlackjack is 21 on the first two cards
func (h Hand) IsBlackjack() bool {
	return len(h) == 2 && h.Score() == Blackjack
}

// IsBust checks if a hand exceeds 21
func (h Hand) IsBust() bool {
	return h.Score() > Blackjack
}

// String lists the cards, e.g. "A♥ K♠"
func (h Hand) String() string {
	parts := make([]string, len(h))
	for i, card := range h {
		parts[i] = card.String()
	}
	return strings.Join(parts, " ")
}

// DealerShouldDraw is the dealer policy: draw while under 17, soft or hard
func DealerShouldDraw(dealer Hand) bool {
	return dealer.Score() < DealerStandOn
}

// Resolve compares a finished player hand against the dealer's final hand
func Resolve(player, dealer Hand) entities.Outcome {
	playerScore := player.Score()
	dealerScore := dealer.Score()

	switch {
	case playerScore > Blackjack:
		return entities.OutcomeBust
	case dealerScore > Blackjack:
		return entities.OutcomeWin
	case playerScore > dealerScore:
		return entities.OutcomeWin
	case playerScore == dealerScore:
		return entities.OutcomePush
	default:
		return entities.OutcomeLose
	}
}

var blackjackMultiplier = decimal.RequireFromString("2.5")

// PayoutMultiplier returns what a blackjack bet returns per chip
func PayoutMultiplier(outcome entities.Outcome) decimal.Decimal {
	switch outcome {
	case entities.OutcomeBlackjack:
		return blackjackMultiplier
	case entities.OutcomeWin:
		return common.EvenMoney
	case entities.OutcomePush:
		return common.Push
	default:
		return common.Lose
	}
}

// XPFor returns the experience awarded for an outcome
func XPFor(outcome entities.Outcome) int64 {
	switch outcome {
	case entities.OutcomeBlackjack:
		return 100
	case entities.OutcomeWin:
		return 50
	case entities.OutcomePush:
		return 0
	default:
		return 10
	}
}
