package gemini

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/abinishjha1/ai-interviewHackathon/internal/ai"
	"go.uber.org/zap"
)

type stubGenerator struct {
	response   string
	err        error
	lastSystem string
	lastPrompt string
}

func (s *stubGenerator) GenerateContent(_ context.Context, system, prompt string) (string, error) {
	s.lastSystem = system
	s.lastPrompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func (s *stubGenerator) Model() string {
	return "stub-model"
}

func newStubInterviewer(response string) (*Interviewer, *stubGenerator) {
	stub := &stubGenerator{response: response}
	return NewInterviewer(stub, zap.NewNop(), 0, time.Minute), stub
}

func TestAnalyzePresentation(t *testing.T) {
	interviewer, stub := newStubInterviewer(`{
		"summary": "A chat app",
		"technologies": ["Go", "Redis"],
		"missing_concepts": ["scaling"],
		"initial_difficulty": "high"
	}`)

	analysis, err := interviewer.AnalyzePresentation(context.Background(), "screen text", "spoken intro")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if analysis.Summary != "A chat app" {
		t.Fatalf("unexpected summary: %q", analysis.Summary)
	}

	if len(analysis.Technologies) != 2 || analysis.Technologies[0] != "Go" {
		t.Fatalf("unexpected technologies: %v", analysis.Technologies)
	}

	if analysis.InitialDifficulty != "high" {
		t.Fatalf("unexpected difficulty: %q", analysis.InitialDifficulty)
	}

	if !strings.Contains(stub.lastPrompt, "screen text") || !strings.Contains(stub.lastPrompt, "spoken intro") {
		t.Fatalf("expected inputs in prompt: %s", stub.lastPrompt)
	}

	if !strings.Contains(stub.lastSystem, "technical interviewer") {
		t.Fatalf("expected analyze system prompt, got: %s", stub.lastSystem)
	}
}

func TestAnalyzePresentationDefaultsOptionalFields(t *testing.T) {
	interviewer, _ := newStubInterviewer(`{"summary": "A chat app"}`)

	analysis, err := interviewer.AnalyzePresentation(context.Background(), "s", "p")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(analysis.Technologies) != 0 {
		t.Fatalf("expected empty technologies, got %v", analysis.Technologies)
	}

	if len(analysis.MissingConcepts) != 0 {
		t.Fatalf("expected empty missing concepts, got %v", analysis.MissingConcepts)
	}

	if analysis.InitialDifficulty != ai.UnderstandingMedium {
		t.Fatalf("expected medium difficulty default, got %q", analysis.InitialDifficulty)
	}
}

func TestGenerateQuestion(t *testing.T) {
	interviewer, stub := newStubInterviewer(`{"topic": "Redis", "question": "How does eviction work?"}`)

	qctx := &ai.QuestionContext{
		ProjectSummary: "A chat app",
		Technologies:   []string{"Go", "Redis"},
		RecentHistory: []ai.TranscriptEntry{
			{Role: "assistant", Content: "previous question"},
		},
		TopicsCovered: []string{"Go"},
		TargetTopic:   "Redis",
	}

	question, err := interviewer.GenerateQuestion(context.Background(), qctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if question.Topic != "Redis" {
		t.Fatalf("unexpected topic: %q", question.Topic)
	}

	if question.Question != "How does eviction work?" {
		t.Fatalf("unexpected question: %q", question.Question)
	}

	for _, expected := range []string{"target_topic", "Redis", "topics_covered", "previous question"} {
		if !strings.Contains(stub.lastPrompt, expected) {
			t.Fatalf("expected %q in context prompt: %s", expected, stub.lastPrompt)
		}
	}
}

func TestGenerateQuestionMissingRequiredFields(t *testing.T) {
	cases := []struct {
		name     string
		response string
	}{
		{name: "missing question", response: `{"topic": "Redis"}`},
		{name: "blank question", response: `{"topic": "Redis", "question": "  "}`},
		{name: "missing topic", response: `{"question": "How does eviction work?"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			interviewer, _ := newStubInterviewer(tc.response)

			_, err := interviewer.GenerateQuestion(context.Background(), &ai.QuestionContext{TargetTopic: "Redis"})
			if err == nil {
				t.Fatal("expected error for missing required field")
			}
		})
	}
}

func TestEvaluateAnswer(t *testing.T) {
	interviewer, stub := newStubInterviewer(`{"understanding": "High", "suggested_action": "deepen"}`)

	evaluation, err := interviewer.EvaluateAnswer(context.Background(), "what is a goroutine?", "a lightweight thread")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if evaluation.Understanding != ai.UnderstandingHigh {
		t.Fatalf("unexpected understanding: %q", evaluation.Understanding)
	}

	if evaluation.SuggestedAction != ai.ActionDeepen {
		t.Fatalf("unexpected action: %q", evaluation.SuggestedAction)
	}

	if !strings.Contains(stub.lastPrompt, "what is a goroutine?") {
		t.Fatalf("expected question in prompt: %s", stub.lastPrompt)
	}
}

func TestEvaluateAnswerDefaultsMalformedFields(t *testing.T) {
	interviewer, _ := newStubInterviewer(`{"understanding": "superb", "feedback_internal": "ok"}`)

	evaluation, err := interviewer.EvaluateAnswer(context.Background(), "q", "a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if evaluation.Understanding != ai.UnderstandingMedium {
		t.Fatalf("expected medium default, got %q", evaluation.Understanding)
	}

	if evaluation.SuggestedAction != ai.ActionNewTopic {
		t.Fatalf("expected new_topic default, got %q", evaluation.SuggestedAction)
	}
}

func TestGenerateReport(t *testing.T) {
	interviewer, stub := newStubInterviewer(`{
		"scores": {"technical_depth": 8, "clarity": "7", "originality": 6, "implementation": 7},
		"feedback_summary": "Strong candidate"
	}`)

	transcript := []ai.TranscriptEntry{
		{Role: "assistant", Content: "q1"},
		{Role: "candidate", Content: "a1"},
	}

	report, err := interviewer.GenerateReport(context.Background(), transcript)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Scores.TechnicalDepth != 8 {
		t.Fatalf("unexpected technical depth: %d", report.Scores.TechnicalDepth)
	}

	// Numeric strings are coerced.
	if report.Scores.Clarity != 7 {
		t.Fatalf("unexpected clarity: %d", report.Scores.Clarity)
	}

	if report.FeedbackSummary != "Strong candidate" {
		t.Fatalf("unexpected feedback: %q", report.FeedbackSummary)
	}

	if !strings.Contains(stub.lastPrompt, "q1") || !strings.Contains(stub.lastPrompt, "a1") {
		t.Fatalf("expected transcript in prompt: %s", stub.lastPrompt)
	}
}

func TestCallHandlesCodeFences(t *testing.T) {
	interviewer, _ := newStubInterviewer("```json\n{\"topic\": \"Go\", \"question\": \"Why channels?\"}\n```")

	question, err := interviewer.GenerateQuestion(context.Background(), &ai.QuestionContext{TargetTopic: "Go"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if question.Question != "Why channels?" {
		t.Fatalf("unexpected question: %q", question.Question)
	}
}

func TestCallRejectsInvalidJSON(t *testing.T) {
	interviewer, _ := newStubInterviewer("I cannot answer that.")

	_, err := interviewer.GenerateQuestion(context.Background(), &ai.QuestionContext{TargetTopic: "Go"})
	if err == nil {
		t.Fatal("expected error for non-JSON response")
	}
}

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain", input: `{"a": 1}`, expected: `{"a": 1}`},
		{name: "fenced", input: "```json\n{\"a\": 1}\n```", expected: `{"a": 1}`},
		{name: "fenced no lang", input: "```\n{\"a\": 1}\n```", expected: `{"a": 1}`},
		{name: "backticks", input: "`{\"a\": 1}`", expected: `{"a": 1}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := extractJSON(tc.input); got != tc.expected {
				t.Fatalf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}
