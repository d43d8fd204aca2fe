package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/taskd/pkg/logger"
	"github.com/dmitrymomot/taskd/pkg/queue"
)

// TaskEnqueuer accepts submitted tasks. *queue.Enqueuer satisfies it.
type TaskEnqueuer interface {
	Enqueue(ctx context.Context, payload json.RawMessage, priority queue.Priority) (*queue.Task, error)
}

// CreateTaskRequest is the body of POST /tasks.
type CreateTaskRequest struct {
	Payload  json.RawMessage `json:"payload"`
	Priority *int            `json:"priority"`
}

// CreateTaskResponse is returned with 202 Accepted.
type CreateTaskResponse struct {
	ID string `json:"id"`
}

func (req CreateTaskRequest) validate() ValidationError {
	verr := ValidationError{}
	if len(req.Payload) == 0 {
		verr.Add("payload", "is required")
	}
	switch {
	case req.Priority == nil:
		verr.Add("priority", "is required")
	case *req.Priority < int(queue.PriorityMin) || *req.Priority > int(queue.PriorityMax):
		verr.Add("priority", "must be between 0 and 255")
	}
	return verr
}

type tasksHandler struct {
	enqueuer TaskEnqueuer
	maxBytes int64
	logger   *slog.Logger
}

func (h *tasksHandler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if err := bindJSON(w, r, h.maxBytes, &req); err != nil {
		writeBindError(w, err)
		return
	}

	if verr := req.validate(); len(verr) > 0 {
		writeValidationError(w, verr)
		return
	}

	task, err := h.enqueuer.Enqueue(r.Context(), req.Payload, queue.Priority(*req.Priority))
	if err != nil {
		if errors.Is(err, queue.ErrPayloadNil) || errors.Is(err, queue.ErrPayloadInvalid) {
			writeValidationError(w, ValidationError{"payload": {err.Error()}})
			return
		}
		h.logger.ErrorContext(r.Context(), "failed to enqueue task", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", http.StatusText(http.StatusInternalServerError))
		return
	}

	writeData(w, http.StatusAccepted, CreateTaskResponse{ID: task.ID.String()})
}
