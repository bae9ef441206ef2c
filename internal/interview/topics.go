package interview

import "github.com/abinishjha1/ai-interviewHackathon/internal/ai"

// SelectNextTopic decides the focus of the next question. Pure and
// deterministic: the inputs are never mutated.
//
// A "deepen" action keeps the current topic and leaves coverage untouched.
// Anything else, including unknown actions, pivots: the current topic joins
// topicsCovered (idempotently) and the next focus is the first known
// technology not yet covered, or the fallback sentinel once all are.
func SelectNextTopic(action, currentTopic string, knownTechnologies, topicsCovered []string) ([]string, string) {
	if action == ai.ActionDeepen {
		return append([]string(nil), topicsCovered...), currentTopic
	}

	covered := append([]string(nil), topicsCovered...)
	if currentTopic != "" && !contains(covered, currentTopic) {
		covered = append(covered, currentTopic)
	}

	for _, tech := range knownTechnologies {
		if !contains(covered, tech) {
			return covered, tech
		}
	}

	return covered, exhaustedFallbackTopic
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
