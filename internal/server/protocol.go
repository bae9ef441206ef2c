package server

import (
	"encoding/json"
	"strings"

	"github.com/abinishjha1/ai-interviewHackathon/internal/ai"
	"github.com/abinishjha1/ai-interviewHackathon/internal/interview"
)

// Inbound event types.
const (
	EventStart  = "start"
	EventAnswer = "answer"
)

// Outbound event types.
const (
	EventStatus   = "status"
	EventQuestion = "question"
	EventEnd      = "end"
	EventError    = "error"
)

// InboundEvent is one client frame. Exactly one of the payload field sets is
// meaningful depending on Type.
type InboundEvent struct {
	Type string `json:"type"`

	// start payload
	ScreenContent string `json:"screen_content"`
	StudentSpeech string `json:"student_speech"`

	// answer payload
	Content string `json:"content"`
}

// StatusEvent is an informational outbound event sent before long-running steps.
type StatusEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// QuestionEvent delivers one generated question.
type QuestionEvent struct {
	Type  string `json:"type"`
	Text  string `json:"text"`
	Topic string `json:"topic"`
}

// EndEvent is terminal; no further events follow it.
type EndEvent struct {
	Type   string     `json:"type"`
	Report *ai.Report `json:"report"`
}

// ErrorEvent is sent on any unhandled failure; the connection is closed
// afterwards.
type ErrorEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// DecodeInbound parses a client frame, rejecting malformed payloads and
// unknown event types with a protocol error.
func DecodeInbound(data []byte) (*InboundEvent, error) {
	var event InboundEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, interview.NewProtocol("inbound event is not valid JSON")
	}

	event.Type = strings.TrimSpace(event.Type)

	switch event.Type {
	case EventStart, EventAnswer:
		return &event, nil
	case "":
		return nil, interview.NewProtocol("inbound event is missing the type field")
	default:
		return nil, interview.NewProtocol("unknown inbound event type: " + event.Type)
	}
}
