package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidPriority = errors.New("model: invalid task priority")
	ErrInvalidStatus   = errors.New("model: invalid task status")
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// DefaultPriority is applied when a task is created without an explicit one.
const DefaultPriority = PriorityMedium

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

type Status string

const (
	StatusActive Status = "active"
	StatusDone   Status = "done"
	// StatusExpired is reserved in the schema; nothing transitions a task into it yet.
	StatusExpired Status = "expired"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusDone, StatusExpired:
		return true
	default:
		return false
	}
}

// Task is a user-owned to-do item. DueDate and DueTime are validated opaque
// strings (YYYY-MM-DD and HH:MM); no calendar arithmetic is performed on them.
type Task struct {
	ID          int64
	UserID      int64
	Title       string
	Description string
	DueDate     string
	DueTime     string
	Priority    Priority
	Status      Status
	CreatedAt   time.Time
}

func (t Task) Validate() error {
	if t.UserID == 0 {
		return errors.New("model: task user id is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("model: task title is required")
	}
	if !t.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, t.Priority)
	}
	if !t.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, t.Status)
	}
	if t.CreatedAt.IsZero() {
		return errors.New("model: task created_at is required")
	}
	return nil
}
