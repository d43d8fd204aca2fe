package queue

import (
	"encoding/json"
	"math"
	"time"

	"github.com/google/uuid"
)

// Priority represents task priority (0-255, higher is more important).
// The same value selects the execution path, see WithSlowThreshold.
type Priority uint8

// Priority constants
const (
	PriorityMin Priority = 0
	PriorityMax Priority = math.MaxUint8

	// DefaultSlowThreshold is the priority above which a task takes the slow path.
	DefaultSlowThreshold Priority = 100
)

// Outcome is the terminal or intermediate result of a dispatch.
type Outcome string

const (
	OutcomeSucceeded Outcome = "succeeded"
	OutcomeRetrying  Outcome = "retrying"
	OutcomeExhausted Outcome = "exhausted"
	OutcomeFailed    Outcome = "failed"
)

// Path identifies the execution strategy a task was routed to.
type Path string

const (
	PathFast Path = "fast"
	PathSlow Path = "slow"
)

// Task is a unit of queued work.
// Only RetryCount changes after creation, and only the Scheduler changes it.
type Task struct {
	ID         uuid.UUID       `json:"id"`
	Payload    json.RawMessage `json:"payload"`
	Priority   Priority        `json:"priority"`
	RetryCount uint8           `json:"retry_count"`
	CreatedAt  time.Time       `json:"created_at"`
}

// NewTask creates a task with a fresh identifier and a zero retry count.
func NewTask(payload json.RawMessage, priority Priority) *Task {
	return &Task{
		ID:         uuid.New(),
		Payload:    payload,
		Priority:   priority,
		RetryCount: 0,
		CreatedAt:  time.Now(),
	}
}
