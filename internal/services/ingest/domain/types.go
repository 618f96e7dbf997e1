// Package domain defines the core types and interfaces for log ingestion and query (C6/C8)
package domain

import "time"

// Level enumerates the accepted log levels
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
	LevelFatal Level = "fatal"
)

// LogEvent is one in-flight, client-submitted event (§3)
type LogEvent struct {
	TS        *time.Time     `json:"ts,omitempty"`
	Level     string         `json:"level" validate:"required,oneof=debug info warn error fatal"`
	Message   string         `json:"message" validate:"required,max=1024"`
	Source    string         `json:"source,omitempty" validate:"omitempty,max=64"`
	Env       string         `json:"env,omitempty" validate:"omitempty,max=32"`
	Ctx       map[string]any `json:"ctx,omitempty"`
	UserID    string         `json:"user_id,omitempty" validate:"omitempty,max=64"`
	RequestID string         `json:"request_id,omitempty" validate:"omitempty,max=64"`
	Tags      string         `json:"tags,omitempty" validate:"omitempty,max=128"`
}

// IngestRequest is the canonical wrapped ingest body: {"events": [...]}
type IngestRequest struct {
	Events []LogEvent `json:"events" validate:"required,min=1,dive"`
}

// IngestResult is the success response shape for a batch
type IngestResult struct {
	Received  int    `json:"received"`
	Processed int    `json:"processed"`
	RequestID string `json:"requestId"`
}

// StoredLog is an immutable persisted row
type StoredLog struct {
	ID          int64
	ProjectID   int64
	TS          time.Time
	Level       string
	Message     string
	Source      string
	Env         string
	CtxJSON     *string
	UserID      string
	RequestID   string
	Tags        string
	Fingerprint string
	DayID       int
	CreatedAt   time.Time
}

// Filter scopes a query to one tenant (§4.5 C8)
type Filter struct {
	Level  string     // empty means no filter
	Since  *time.Time // nil means no filter
	Limit  int        // hard-capped at 1000 by the service
	Offset int
}
