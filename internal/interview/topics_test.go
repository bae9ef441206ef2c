package interview

import (
	"reflect"
	"testing"

	"github.com/abinishjha1/ai-interviewHackathon/internal/ai"
)

func TestSelectNextTopicDeepenKeepsCurrentTopic(t *testing.T) {
	known := []string{"Go", "Postgres", "Docker"}
	covered := []string{"Go"}

	newCovered, focus := SelectNextTopic(ai.ActionDeepen, "Postgres", known, covered)

	if focus != "Postgres" {
		t.Fatalf("expected focus to stay on Postgres, got %q", focus)
	}

	if !reflect.DeepEqual(newCovered, covered) {
		t.Fatalf("expected covered topics unchanged, got %v", newCovered)
	}

	// Deepening twice must still not mutate coverage.
	again, _ := SelectNextTopic(ai.ActionDeepen, "Postgres", known, newCovered)
	if !reflect.DeepEqual(again, covered) {
		t.Fatalf("expected covered topics unchanged after second deepen, got %v", again)
	}
}

func TestSelectNextTopicPivotAppendsAndPicksNext(t *testing.T) {
	known := []string{"A", "B", "C"}

	covered, focus := SelectNextTopic(ai.ActionNewTopic, "A", known, nil)

	if !reflect.DeepEqual(covered, []string{"A"}) {
		t.Fatalf("expected covered [A], got %v", covered)
	}

	if focus != "B" {
		t.Fatalf("expected next focus B, got %q", focus)
	}
}

func TestSelectNextTopicPivotIsIdempotent(t *testing.T) {
	known := []string{"A", "B"}
	covered := []string{"A"}

	newCovered, _ := SelectNextTopic(ai.ActionNewTopic, "A", known, covered)

	if !reflect.DeepEqual(newCovered, []string{"A"}) {
		t.Fatalf("expected no duplicate append, got %v", newCovered)
	}
}

func TestSelectNextTopicUnknownActionPivots(t *testing.T) {
	known := []string{"A", "B"}

	covered, focus := SelectNextTopic("escalate", "A", known, nil)

	if !reflect.DeepEqual(covered, []string{"A"}) {
		t.Fatalf("expected covered [A], got %v", covered)
	}

	if focus != "B" {
		t.Fatalf("expected next focus B, got %q", focus)
	}
}

func TestSelectNextTopicExhaustionAlwaysFallsBack(t *testing.T) {
	known := []string{"A", "B"}
	covered := []string{"A", "B"}

	for _, current := range []string{"A", "B", exhaustedFallbackTopic} {
		newCovered, focus := SelectNextTopic(ai.ActionNewTopic, current, known, covered)
		if focus != exhaustedFallbackTopic {
			t.Fatalf("expected fallback topic for current %q, got %q", current, focus)
		}
		covered = newCovered
	}
}

func TestSelectNextTopicDoesNotMutateInputs(t *testing.T) {
	known := []string{"A", "B"}
	covered := make([]string, 1, 4)
	covered[0] = "A"

	SelectNextTopic(ai.ActionNewTopic, "B", known, covered)

	if !reflect.DeepEqual(covered, []string{"A"}) {
		t.Fatalf("input covered slice mutated: %v", covered)
	}
}
