package gamify

import (
	"fmt"

	"github.com/abhisek/lingua/internal/state"
)

// GemReason identifies why gems were credited.
type GemReason string

const (
	GemQuizComplete GemReason = "quiz_complete"
	GemPerfectQuiz  GemReason = "perfect_quiz"
	GemLevelUp      GemReason = "level_up"
	GemBadgeEarned  GemReason = "badge_earned"
)

// gemAmounts maps award reasons to their standard amounts. Badge awards
// carry per-badge amounts instead.
var gemAmounts = map[GemReason]int{
	GemQuizComplete: 5,
	GemPerfectQuiz:  10,
	GemLevelUp:      25,
}

// GemItem is a purchasable consumable.
type GemItem string

const (
	ItemStreakFreeze GemItem = "streak_freeze"
	ItemHint         GemItem = "hint"
)

// itemCosts maps purchasable items to their gem prices.
var itemCosts = map[GemItem]int{
	ItemStreakFreeze: 50,
	ItemHint:         10,
}

// ItemCost returns the gem price of an item, or 0 for unknown items.
func ItemCost(item GemItem) int {
	return itemCosts[item]
}

// AwardGems credits the standard amount for the reason. Unknown reasons
// credit nothing.
func AwardGems(st *state.UserState, reason GemReason) int {
	amount := gemAmounts[reason]
	st.User.Gems += amount
	return amount
}

// SpendGems debits the item's cost. Purchases with an insufficient
// balance are rejected and the balance is untouched. Buying a streak
// freeze increments the freeze inventory.
func SpendGems(st *state.UserState, item GemItem) (int, error) {
	cost, ok := itemCosts[item]
	if !ok {
		return 0, fmt.Errorf("unknown item %q", item)
	}
	if st.User.Gems < cost {
		return 0, fmt.Errorf("not enough gems: %s costs %d, balance is %d", item, cost, st.User.Gems)
	}
	st.User.Gems -= cost
	if item == ItemStreakFreeze {
		st.User.StreakFreeze++
	}
	return cost, nil
}
