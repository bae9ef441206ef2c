package interview

import (
	"strings"

	"github.com/abinishjha1/ai-interviewHackathon/internal/ai"
)

// Transcript speakers.
const (
	SpeakerAssistant = "assistant"
	SpeakerCandidate = "candidate"
)

const (
	// seedFallbackTopic is used when the presentation analysis detected no
	// missing concepts to open with.
	seedFallbackTopic = "General"
	// exhaustedFallbackTopic is used once every known technology has been
	// covered.
	exhaustedFallbackTopic = "Advanced Architecture"
)

// recentHistorySize caps the transcript slice passed into question
// generation. A context-size limit, not a completeness requirement.
const recentHistorySize = 3

// Session is the single source of truth for one interview. One instance per
// connection, owned exclusively by its orchestrator, never shared.
type Session struct {
	initialized bool

	transcript     []ai.TranscriptEntry
	projectSummary string
	technologies   []string
	topicsCovered  []string
	currentTopic   string
	nextTopicFocus string
	questionCount  int
	questionBudget int
}

// Initialize resets all fields and fixes the question budget. Must be called
// exactly once before any turn is processed.
func (s *Session) Initialize(budget int) error {
	if s.initialized {
		return NewInvalidState("session is already initialized")
	}
	if budget <= 0 {
		return NewInvalidState("question budget must be positive")
	}

	*s = Session{initialized: true, questionBudget: budget}
	return nil
}

// RecordPresentation stores the presentation analysis results: the project
// summary, the order-preserved union of detected technologies, and the first
// missing concept as the seed topic focus.
func (s *Session) RecordPresentation(summary string, technologies, missingConcepts []string) error {
	if !s.initialized {
		return NewInvalidState("session is not initialized")
	}

	s.projectSummary = strings.TrimSpace(summary)
	s.technologies = dedupe(technologies)

	s.nextTopicFocus = seedFallbackTopic
	for _, concept := range missingConcepts {
		if concept = strings.TrimSpace(concept); concept != "" {
			s.nextTopicFocus = concept
			break
		}
	}

	return nil
}

// AppendTurn appends one transcript entry. The transcript strictly alternates
// assistant and candidate entries, starting with the assistant.
func (s *Session) AppendTurn(speaker, text string) error {
	if !s.initialized {
		return NewInvalidState("session is not initialized")
	}

	if speaker != SpeakerAssistant && speaker != SpeakerCandidate {
		return NewInvalidState("unknown transcript speaker: " + speaker)
	}

	expected := SpeakerAssistant
	if len(s.transcript)%2 == 1 {
		expected = SpeakerCandidate
	}
	if speaker != expected {
		return NewInvalidState("transcript must alternate speakers starting with the assistant")
	}

	s.transcript = append(s.transcript, ai.TranscriptEntry{Role: speaker, Content: text})
	return nil
}

// LastAssistantMessage returns the most recent assistant entry. Guards the
// precondition for answer evaluation; failing here means the flow is broken.
func (s *Session) LastAssistantMessage() (string, error) {
	for i := len(s.transcript) - 1; i >= 0; i-- {
		if s.transcript[i].Role == SpeakerAssistant {
			return s.transcript[i].Content, nil
		}
	}
	return "", NewInvalidState("transcript has no assistant entry")
}

// RecordQuestion appends the generated question as an assistant turn, makes
// its topic current and consumes one unit of the question budget.
func (s *Session) RecordQuestion(topic, text string) error {
	if s.questionCount >= s.questionBudget {
		return NewInvalidState("question budget is exhausted")
	}

	if err := s.AppendTurn(SpeakerAssistant, text); err != nil {
		return err
	}

	s.currentTopic = topic
	s.questionCount++
	return nil
}

// ApplyTopicSelection installs the topic selector's decision.
func (s *Session) ApplyTopicSelection(topicsCovered []string, nextFocus string) {
	s.topicsCovered = topicsCovered
	s.nextTopicFocus = nextFocus
}

// QuestionContext builds the bounded projection of session state passed into
// question generation.
func (s *Session) QuestionContext() *ai.QuestionContext {
	history := s.transcript
	if len(history) > recentHistorySize {
		history = history[len(history)-recentHistorySize:]
	}

	return &ai.QuestionContext{
		ProjectSummary: s.projectSummary,
		Technologies:   append([]string(nil), s.technologies...),
		RecentHistory:  append([]ai.TranscriptEntry(nil), history...),
		TopicsCovered:  append([]string(nil), s.topicsCovered...),
		TargetTopic:    s.nextTopicFocus,
	}
}

// Transcript returns a copy of the full transcript.
func (s *Session) Transcript() []ai.TranscriptEntry {
	return append([]ai.TranscriptEntry(nil), s.transcript...)
}

func (s *Session) Technologies() []string {
	return append([]string(nil), s.technologies...)
}

func (s *Session) TopicsCovered() []string {
	return append([]string(nil), s.topicsCovered...)
}

func (s *Session) CurrentTopic() string { return s.currentTopic }

func (s *Session) NextTopicFocus() string { return s.nextTopicFocus }

func (s *Session) QuestionCount() int { return s.questionCount }

func (s *Session) QuestionBudget() int { return s.questionBudget }

// BudgetExhausted reports whether no further questions may be asked.
func (s *Session) BudgetExhausted() bool {
	return s.questionCount >= s.questionBudget
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}
