package ai

import "context"

// Understanding levels reported by answer evaluation.
const (
	UnderstandingLow    = "low"
	UnderstandingMedium = "medium"
	UnderstandingHigh   = "high"
)

// Suggested follow-up actions reported by answer evaluation.
const (
	ActionDeepen   = "deepen"
	ActionNewTopic = "new_topic"
)

// TranscriptEntry is a single interview turn passed to and from the inference provider.
type TranscriptEntry struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Analysis is the result of analyzing the candidate's project presentation.
type Analysis struct {
	Summary           string
	Technologies      []string
	MissingConcepts   []string
	InitialDifficulty string
}

// Question is a single generated interview question.
type Question struct {
	Topic    string
	Question string
}

// Evaluation is the assessment of one candidate answer.
type Evaluation struct {
	Understanding   string
	SuggestedAction string
}

// ReportScores holds the 0-10 scores of the final report.
type ReportScores struct {
	TechnicalDepth int `json:"technical_depth"`
	Clarity        int `json:"clarity"`
	Originality    int `json:"originality"`
	Implementation int `json:"implementation"`
}

// Report is the final interview scorecard.
type Report struct {
	Scores          ReportScores `json:"scores"`
	FeedbackSummary string       `json:"feedback_summary"`
}

// QuestionContext is the bounded projection of session state passed into
// question generation. RecentHistory carries at most the last few transcript
// entries; providers are expected to be stateless per call.
type QuestionContext struct {
	ProjectSummary string
	Technologies   []string
	RecentHistory  []TranscriptEntry
	TopicsCovered  []string
	TargetTopic    string
}

// Interviewer is the inference capability driving an interview: presentation
// analysis, question generation, answer evaluation and the final report.
type Interviewer interface {
	AnalyzePresentation(ctx context.Context, screenText, studentSpeech string) (*Analysis, error)
	GenerateQuestion(ctx context.Context, qctx *QuestionContext) (*Question, error)
	EvaluateAnswer(ctx context.Context, question, answer string) (*Evaluation, error)
	GenerateReport(ctx context.Context, transcript []TranscriptEntry) (*Report, error)
}
