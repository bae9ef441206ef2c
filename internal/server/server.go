package server

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/abinishjha1/ai-interviewHackathon/internal/ai"
	"github.com/abinishjha1/ai-interviewHackathon/internal/interview"
	"github.com/abinishjha1/ai-interviewHackathon/internal/logger"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	// InterviewPath is the websocket endpoint serving one interview per connection.
	InterviewPath = "/ws/interview"

	defaultAddress        = ":8000"
	defaultQuestionBudget = 5
	maxInboundFrameBytes  = 1 << 20

	shutdownGracePeriod = 10 * time.Second
)

// Config holds the server settings.
type Config struct {
	// Address is the listen address, e.g. ":8000".
	Address string
	// QuestionBudget fixes the number of questions per interview session.
	QuestionBudget int
}

// Server accepts interview websocket connections and runs one orchestrator
// per connection. Sessions share only the stateless interviewer.
type Server struct {
	cfg         Config
	interviewer ai.Interviewer
	logger      *zap.Logger
	upgrader    websocket.Upgrader
}

// New creates a Server with defaults applied for unset config values.
func New(cfg Config, interviewer ai.Interviewer, log *zap.Logger) *Server {
	if cfg.Address == "" {
		cfg.Address = defaultAddress
	}
	if cfg.QuestionBudget <= 0 {
		cfg.QuestionBudget = defaultQuestionBudget
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Server{
		cfg:         cfg,
		interviewer: interviewer,
		logger:      log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Handler returns the HTTP handler serving the health endpoint and the
// interview websocket.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleHealth)
	mux.HandleFunc(InterviewPath, s.handleInterview)
	return mux
}

// Run serves until the context is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	httpSrv := &http.Server{
		Addr:              s.cfg.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	listenErr := make(chan error, 1)
	go func() {
		err := httpSrv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			listenErr <- err
			return
		}
		listenErr <- nil
	}()

	s.logger.Info("server started",
		zap.String("address", s.cfg.Address),
		zap.Int("question_budget", s.cfg.QuestionBudget),
	)

	select {
	case err := <-listenErr:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGracePeriod)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if err := <-listenErr; err != nil {
		return err
	}

	s.logger.Info("server stopped")
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"message": "AI Interviewer Backend Running",
	})
}

// handleInterview runs one interview session over a websocket connection.
// Inbound events are processed strictly sequentially: a transition completes,
// including all inference calls, before the next frame is read.
func (s *Server) handleInterview(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	conn.SetReadLimit(maxInboundFrameBytes)

	log := logger.WithSession(s.logger, newSessionID())
	log.Info("interview session opened", zap.String("remote_addr", r.RemoteAddr))

	emitter := &wsEmitter{conn: conn}
	orch := interview.NewOrchestrator(s.interviewer, emitter, s.cfg.QuestionBudget, log)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			log.Info("interview session closed", zap.Error(err))
			return
		}

		event, err := DecodeInbound(data)
		if err != nil {
			s.failSession(conn, log, err)
			return
		}

		switch event.Type {
		case EventStart:
			err = orch.HandleStart(r.Context(), event.ScreenContent, event.StudentSpeech)
		case EventAnswer:
			err = orch.HandleAnswer(r.Context(), event.Content)
		}

		if err != nil {
			s.failSession(conn, log, err)
			return
		}

		if orch.State() == interview.StateTerminated {
			log.Info("interview session completed",
				zap.Int("questions_asked", orch.Session().QuestionCount()),
			)
			return
		}
	}
}

// failSession surfaces the failure as a single error event, then the
// connection is closed. The in-progress turn is abandoned entirely.
func (s *Server) failSession(conn *websocket.Conn, log *zap.Logger, err error) {
	log.Error("interview session failed",
		zap.String("error_kind", string(interview.KindOf(err))),
		zap.Error(err),
	)

	writeErr := conn.WriteJSON(ErrorEvent{Type: EventError, Message: err.Error()})
	if writeErr != nil {
		log.Debug("writing error event", zap.Error(writeErr))
	}
}

// wsEmitter delivers outbound turn events as JSON text frames. Session events
// are emitted from a single goroutine, so no write lock is needed.
type wsEmitter struct {
	conn *websocket.Conn
}

func (e *wsEmitter) EmitStatus(message string) error {
	return e.conn.WriteJSON(StatusEvent{Type: EventStatus, Message: message})
}

func (e *wsEmitter) EmitQuestion(text, topic string) error {
	return e.conn.WriteJSON(QuestionEvent{Type: EventQuestion, Text: text, Topic: topic})
}

func (e *wsEmitter) EmitReport(report *ai.Report) error {
	return e.conn.WriteJSON(EndEvent{Type: EventEnd, Report: report})
}

func newSessionID() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "unknown"
	}
	return hex.EncodeToString(buf)
}
