package model

// Bot strategy constants
const (
	BotStrategySafe   = "safe"
	BotStrategyRandom = "random"
)

// DefaultBotStrategy is used when a bot game does not name a strategy
const DefaultBotStrategy = BotStrategySafe

// BotStrategyDisplayName returns a human-readable label for a strategy
func BotStrategyDisplayName(strategy string) string {
	switch strategy {
	case BotStrategySafe:
		return "Safe"
	case BotStrategyRandom:
		return "Random"
	default:
		return strategy
	}
}

// ValidBotStrategies returns all valid bot strategy names
func ValidBotStrategies() []string {
	return []string{BotStrategySafe, BotStrategyRandom}
}

// IsValidBotStrategy reports whether the name is a known strategy
func IsValidBotStrategy(strategy string) bool {
	for _, s := range ValidBotStrategies() {
		if s == strategy {
			return true
		}
	}
	return false
}
