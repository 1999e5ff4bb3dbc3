package scheduling

import "github.com/omnihero1/allegro-ads-zarzadzanie/internal/domain"

// NewAmount applies change to current. Percentage changes scale current by
// change/100, amount changes add change. The result is neither rounded nor
// clamped.
func NewAmount(current, change float64, mode domain.ChangeMode) float64 {
	switch mode {
	case domain.ChangeModePercentage:
		return current * (1 + change/100)
	case domain.ChangeModeAmount:
		return current + change
	default:
		return current
	}
}
