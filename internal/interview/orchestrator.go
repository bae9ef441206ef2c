package interview

import (
	"context"
	"errors"
	"strings"

	"github.com/abinishjha1/ai-interviewHackathon/internal/ai"
	"go.uber.org/zap"
)

// State identifies where the turn state machine currently holds. Question
// generation is a synchronous step inside a transition, never a state of its
// own: between an outbound question and the inbound answer the machine sits
// at StateAwaitingAnswer.
type State string

const (
	StateAwaitingStart  State = "awaiting_start"
	StateAwaitingAnswer State = "awaiting_answer"
	StateTerminated     State = "terminated"
)

// Status messages emitted before long-running inference steps.
const (
	statusAnalyzing = "Analyzing presentation..."
	statusReporting = "Generating feedback..."
)

// Emitter delivers outbound turn events to the connection.
type Emitter interface {
	EmitStatus(message string) error
	EmitQuestion(text, topic string) error
	EmitReport(report *ai.Report) error
}

// Orchestrator drives one interview session: it consumes inbound turn events,
// invokes the interviewer in the correct order, mutates the session through
// the topic selector and decides termination. Events are processed strictly
// sequentially; a transition fully completes before the next event is
// accepted.
type Orchestrator struct {
	interviewer ai.Interviewer
	emitter     Emitter
	session     *Session
	state       State
	budget      int
	logger      *zap.Logger
}

// NewOrchestrator creates an orchestrator holding at StateAwaitingStart.
func NewOrchestrator(interviewer ai.Interviewer, emitter Emitter, budget int, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Orchestrator{
		interviewer: interviewer,
		emitter:     emitter,
		session:     &Session{},
		state:       StateAwaitingStart,
		budget:      budget,
		logger:      logger,
	}
}

// State returns the current state of the session.
func (o *Orchestrator) State() State { return o.state }

// Session exposes the session state for inspection.
func (o *Orchestrator) Session() *Session { return o.session }

// HandleStart processes the start event: analyze the presentation, seed the
// session and ask the first question. Valid only in StateAwaitingStart.
func (o *Orchestrator) HandleStart(ctx context.Context, screenContent, studentSpeech string) error {
	if o.state != StateAwaitingStart {
		return NewInvalidState("start event is only valid before the interview begins")
	}

	if err := o.emitter.EmitStatus(statusAnalyzing); err != nil {
		return err
	}

	if err := o.session.Initialize(o.budget); err != nil {
		return err
	}

	analysis, err := o.interviewer.AnalyzePresentation(ctx, screenContent, studentSpeech)
	if err != nil {
		return NewUpstream("analyze presentation", err)
	}

	o.logger.Debug("presentation analyzed",
		zap.Strings("technologies", analysis.Technologies),
		zap.Strings("missing_concepts", analysis.MissingConcepts),
		zap.String("initial_difficulty", analysis.InitialDifficulty),
	)

	if err := o.session.RecordPresentation(analysis.Summary, analysis.Technologies, analysis.MissingConcepts); err != nil {
		return err
	}

	if err := o.askNextQuestion(ctx); err != nil {
		return err
	}

	o.state = StateAwaitingAnswer
	return nil
}

// HandleAnswer processes the answer event: record and evaluate the answer,
// then either terminate into a report once the budget is spent, or pivot or
// deepen and ask the next question. Valid only in StateAwaitingAnswer.
func (o *Orchestrator) HandleAnswer(ctx context.Context, content string) error {
	if o.state != StateAwaitingAnswer {
		return NewInvalidState("answer event is only valid while a question is pending")
	}

	if err := o.session.AppendTurn(SpeakerCandidate, content); err != nil {
		return err
	}

	lastQuestion, err := o.session.LastAssistantMessage()
	if err != nil {
		return err
	}

	evaluation, err := o.interviewer.EvaluateAnswer(ctx, lastQuestion, content)
	if err != nil {
		return NewUpstream("evaluate answer", err)
	}

	o.logger.Info("answer evaluated",
		zap.String("topic", o.session.CurrentTopic()),
		zap.String("understanding", evaluation.Understanding),
		zap.String("suggested_action", evaluation.SuggestedAction),
	)

	// Termination is driven purely by the question counter, never by answer
	// quality. The final evaluation's suggested action is discarded.
	if o.session.BudgetExhausted() {
		return o.finish(ctx)
	}

	covered, focus := SelectNextTopic(
		evaluation.SuggestedAction,
		o.session.CurrentTopic(),
		o.session.Technologies(),
		o.session.TopicsCovered(),
	)
	o.session.ApplyTopicSelection(covered, focus)

	return o.askNextQuestion(ctx)
}

func (o *Orchestrator) askNextQuestion(ctx context.Context) error {
	question, err := o.interviewer.GenerateQuestion(ctx, o.session.QuestionContext())
	if err != nil {
		return NewUpstream("generate question", err)
	}

	if strings.TrimSpace(question.Question) == "" {
		return NewUpstream("generate question", errors.New("response is missing the question text"))
	}

	if err := o.session.RecordQuestion(question.Topic, question.Question); err != nil {
		return err
	}

	o.logger.Info("question asked",
		zap.String("topic", question.Topic),
		zap.Int("question_count", o.session.QuestionCount()),
		zap.Int("question_budget", o.session.QuestionBudget()),
	)

	return o.emitter.EmitQuestion(question.Question, question.Topic)
}

func (o *Orchestrator) finish(ctx context.Context) error {
	if err := o.emitter.EmitStatus(statusReporting); err != nil {
		return err
	}

	report, err := o.interviewer.GenerateReport(ctx, o.session.Transcript())
	if err != nil {
		return NewUpstream("generate report", err)
	}

	o.state = StateTerminated

	o.logger.Info("interview finished",
		zap.Int("questions_asked", o.session.QuestionCount()),
		zap.Int("transcript_entries", len(o.session.Transcript())),
	)

	return o.emitter.EmitReport(report)
}
