package text

// EstimateTokens approximates the token cost of a string for prompt-budget
// decisions. One token per four characters is a cheap proxy, not real
// tokenization; budgets built on it carry their own safety margin.
func EstimateTokens(s string) int {
	return len(s) / 4
}
