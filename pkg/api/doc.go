// Package api exposes task submission and health probes over HTTP.
//
// Submitting a task:
//
//	POST /tasks
//	Content-Type: application/json
//
//	{"payload": {"order_id": 42}, "priority": 150}
//
// The task is queued and the request answered with 202 Accepted and the task
// id. Processing happens later in the scheduler, so the response says nothing
// about whether the payload was stored.
//
// Error answers share one envelope:
//
//	{"error": {"code": "validation_error", "message": "...", "details": {"priority": ["is required"]}}}
//
// Missing or non-JSON Content-Type yields 415, malformed JSON 400, and a
// missing payload or a priority outside 0-255 yields 422.
package api
