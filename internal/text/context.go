package text

import "strings"

// RemoveFollowingSentences strips the "[Following Sentences:]" block from a
// context window, leaving only what precedes it. Disambiguation and
// decomposition reason on past context only, so anything after the sentence
// of interest must not leak into their prompts. Idempotent; a context with
// no following block is returned unchanged.
func RemoveFollowingSentences(contextForJudge string) string {
	before, _, found := strings.Cut(contextForJudge, "\n"+MarkerFollowing)
	if !found {
		return contextForJudge
	}
	return before
}
