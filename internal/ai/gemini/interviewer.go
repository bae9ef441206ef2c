package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	_ "embed"

	"github.com/abinishjha1/ai-interviewHackathon/internal/ai"
	"github.com/abinishjha1/ai-interviewHackathon/internal/logger"
	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

//go:embed prompts/analyze.md
var analyzePrompt string

//go:embed prompts/question.md
var questionPrompt string

//go:embed prompts/evaluate.md
var evaluatePrompt string

//go:embed prompts/report.md
var reportPrompt string

const (
	defaultMaxLogLength = 200
	defaultCallTimeout  = 60 * time.Second
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, prompt string) (string, error)
	Model() string
}

// Interviewer implements ai.Interviewer on top of the Gemini content
// generator. It holds no per-session state and tolerates concurrent calls
// from unrelated sessions.
type Interviewer struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
	timeout   time.Duration
}

// NewInterviewer creates a Gemini-backed interviewer.
func NewInterviewer(generator contentGenerator, log *zap.Logger, maxLogLength int, timeout time.Duration) *Interviewer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if timeout <= 0 {
		timeout = defaultCallTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Interviewer{
		generator: generator,
		logger:    logger.WithFields(log, logger.CommonFields("gemini", generator.Model())...),
		maxLogLen: maxLogLength,
		timeout:   timeout,
	}
}

// AnalyzePresentation extracts the project summary, technologies and missing
// concepts from the candidate's presentation. All analysis fields are
// optional and default to empty values.
func (i *Interviewer) AnalyzePresentation(ctx context.Context, screenText, studentSpeech string) (*ai.Analysis, error) {
	prompt := fmt.Sprintf("Screen Content:\n%s\n\nStudent Speech:\n%s", screenText, studentSpeech)

	data, err := i.call(ctx, "analyze_presentation", analyzePrompt, prompt)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Summary           string   `json:"summary"`
		Technologies      []string `json:"technologies"`
		MissingConcepts   []string `json:"missing_concepts"`
		InitialDifficulty string   `json:"initial_difficulty"`
	}
	if err := decodePayload(data, &payload); err != nil {
		return nil, fmt.Errorf("analyze presentation: %w", err)
	}

	difficulty := strings.TrimSpace(payload.InitialDifficulty)
	if difficulty == "" {
		difficulty = ai.UnderstandingMedium
	}

	return &ai.Analysis{
		Summary:           strings.TrimSpace(payload.Summary),
		Technologies:      payload.Technologies,
		MissingConcepts:   payload.MissingConcepts,
		InitialDifficulty: difficulty,
	}, nil
}

// GenerateQuestion produces the next question for the given session context
// projection. The question text and topic are required fields.
func (i *Interviewer) GenerateQuestion(ctx context.Context, qctx *ai.QuestionContext) (*ai.Question, error) {
	contextJSON, err := json.Marshal(map[string]any{
		"project_summary": qctx.ProjectSummary,
		"technologies":    qctx.Technologies,
		"recent_history":  qctx.RecentHistory,
		"topics_covered":  qctx.TopicsCovered,
		"target_topic":    qctx.TargetTopic,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal question context: %w", err)
	}

	data, err := i.call(ctx, "generate_question", questionPrompt, "Context: "+string(contextJSON))
	if err != nil {
		return nil, err
	}

	var payload struct {
		Topic    string `json:"topic"`
		Question string `json:"question"`
	}
	if err := decodePayload(data, &payload); err != nil {
		return nil, fmt.Errorf("generate question: %w", err)
	}

	if strings.TrimSpace(payload.Question) == "" {
		return nil, fmt.Errorf("generate question: response is missing the question text")
	}
	if strings.TrimSpace(payload.Topic) == "" {
		return nil, fmt.Errorf("generate question: response is missing the topic")
	}

	return &ai.Question{
		Topic:    strings.TrimSpace(payload.Topic),
		Question: strings.TrimSpace(payload.Question),
	}, nil
}

// EvaluateAnswer assesses one answer against the question it replies to.
// Malformed categorical values fall back to the permissive defaults.
func (i *Interviewer) EvaluateAnswer(ctx context.Context, question, answer string) (*ai.Evaluation, error) {
	prompt := fmt.Sprintf("Question: %s\nAnswer: %s", question, answer)

	data, err := i.call(ctx, "evaluate_answer", evaluatePrompt, prompt)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Understanding   string `json:"understanding"`
		SuggestedAction string `json:"suggested_action"`
	}
	if err := decodePayload(data, &payload); err != nil {
		return nil, fmt.Errorf("evaluate answer: %w", err)
	}

	understanding := strings.ToLower(strings.TrimSpace(payload.Understanding))
	switch understanding {
	case ai.UnderstandingLow, ai.UnderstandingMedium, ai.UnderstandingHigh:
	default:
		understanding = ai.UnderstandingMedium
	}

	action := strings.ToLower(strings.TrimSpace(payload.SuggestedAction))
	if action == "" {
		action = ai.ActionNewTopic
	}

	return &ai.Evaluation{
		Understanding:   understanding,
		SuggestedAction: action,
	}, nil
}

// GenerateReport produces the final scorecard from the full transcript.
func (i *Interviewer) GenerateReport(ctx context.Context, transcript []ai.TranscriptEntry) (*ai.Report, error) {
	transcriptJSON, err := json.MarshalIndent(transcript, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal transcript: %w", err)
	}

	data, err := i.call(ctx, "generate_report", reportPrompt, "Interview Transcript:\n"+string(transcriptJSON))
	if err != nil {
		return nil, err
	}

	var payload ai.Report
	if err := decodePayload(data, &payload); err != nil {
		return nil, fmt.Errorf("generate report: %w", err)
	}

	return &payload, nil
}

func (i *Interviewer) call(ctx context.Context, step, system, prompt string) (map[string]any, error) {
	ctx, cancel := context.WithTimeout(ctx, i.timeout)
	defer cancel()

	i.logger.Debug("gemini request",
		zap.String("step", step),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, i.maxLogLen)),
	)

	raw, err := i.generator.GenerateContent(ctx, system, prompt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", step, err)
	}

	i.logger.Debug("gemini response",
		zap.String("step", step),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, i.maxLogLen)),
	)

	var data map[string]any
	if err := json.Unmarshal([]byte(extractJSON(raw)), &data); err != nil {
		return nil, fmt.Errorf("%s: parse gemini response: %w", step, err)
	}

	return data, nil
}

// decodePayload maps the duck-typed model payload into the typed result,
// coercing scalar mismatches such as numeric strings.
func decodePayload(data map[string]any, result any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           result,
		TagName:          "json",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("build payload decoder: %w", err)
	}

	if err := decoder.Decode(data); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}

	return nil
}

// extractJSON strips markdown code fences some models wrap around JSON output.
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}
