package provisioning

import (
	"fmt"
	"log"
	"strings"
	"time"
)

// Logger is the minimal printf-style logging interface.
type Logger interface {
	Printf(format string, v ...interface{})
}

// Observer defines the interface for structured observability during
// provisioning.
type Observer interface {
	Logger

	// Event emits a structured event
	Event(event Event)

	// WithFields returns a new Observer with additional context fields
	WithFields(fields map[string]string) Observer
}

// Event represents a structured provisioning event.
type Event struct {
	Type      EventType
	Phase     Phase
	Message   string
	Instance  int // instance id, 0 when not applicable
	Timestamp time.Time
	Fields    map[string]string
}

// EventType represents the type of provisioning event.
type EventType string

const (
	// EventPhaseStarted indicates an orchestration phase has started.
	EventPhaseStarted EventType = "phase.started"
	// EventPhaseCompleted indicates an orchestration phase completed.
	EventPhaseCompleted EventType = "phase.completed"
	// EventPhaseFailed indicates an orchestration phase failed.
	EventPhaseFailed EventType = "phase.failed"

	// EventStepStarted indicates an install step has started.
	EventStepStarted EventType = "step.started"
	// EventStepCompleted indicates an install step succeeded.
	EventStepCompleted EventType = "step.completed"
	// EventStepFailed indicates an install step failed.
	EventStepFailed EventType = "step.failed"
	// EventStepSwallowed indicates a best-effort step failed and the
	// failure was discarded.
	EventStepSwallowed EventType = "step.swallowed"

	// EventInstanceCreated indicates an instance was created.
	EventInstanceCreated EventType = "instance.created"
	// EventInstanceDestroyed indicates an instance was destroyed.
	EventInstanceDestroyed EventType = "instance.destroyed"
)

// ConsoleObserver implements Observer using the standard log package.
type ConsoleObserver struct {
	contextFields map[string]string
}

// NewConsoleObserver creates a new console-based observer.
func NewConsoleObserver() *ConsoleObserver {
	return &ConsoleObserver{
		contextFields: make(map[string]string),
	}
}

// Printf implements the Logger interface.
func (o *ConsoleObserver) Printf(format string, v ...interface{}) {
	log.Printf(format, v...)
}

// Event implements the Observer interface.
func (o *ConsoleObserver) Event(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	if event.Fields == nil {
		event.Fields = make(map[string]string)
	}
	for k, v := range o.contextFields {
		if _, exists := event.Fields[k]; !exists {
			event.Fields[k] = v
		}
	}

	log.Print(o.formatEvent(event))
}

// WithFields implements the Observer interface.
func (o *ConsoleObserver) WithFields(fields map[string]string) Observer {
	newFields := make(map[string]string, len(o.contextFields)+len(fields))
	for k, v := range o.contextFields {
		newFields[k] = v
	}
	for k, v := range fields {
		newFields[k] = v
	}

	return &ConsoleObserver{
		contextFields: newFields,
	}
}

// formatEvent formats an event for console output.
func (o *ConsoleObserver) formatEvent(event Event) string {
	var parts []string

	parts = append(parts, string(event.Type))

	if event.Phase != "" {
		parts = append(parts, fmt.Sprintf("[%s]", event.Phase))
	}
	if event.Instance != 0 {
		parts = append(parts, fmt.Sprintf("instance=%d", event.Instance))
	}

	parts = append(parts, event.Message)

	if len(event.Fields) > 0 {
		var fieldParts []string
		for k, v := range event.Fields {
			fieldParts = append(fieldParts, fmt.Sprintf("%s=%s", k, v))
		}
		parts = append(parts, fmt.Sprintf("(%s)", strings.Join(fieldParts, ", ")))
	}

	return strings.Join(parts, " ")
}
