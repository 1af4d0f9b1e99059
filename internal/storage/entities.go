package storage

import (
	"time"

	"github.com/mester0723/plannerbot/internal/model"
)

// User is one chat identity. The id comes from the transport and is never
// generated here; rows are created once and never mutated.
type User struct {
	ID        int64
	Username  string
	CreatedAt time.Time
}

// Task is the persisted row shape. DueDate and DueTime stay TEXT columns in
// their command formats; the schema CHECK constraints back the enum fields.
type Task struct {
	ID          int64
	UserID      int64
	Title       string
	Description string
	DueDate     string
	DueTime     string
	Priority    model.Priority
	Status      model.Status
	CreatedAt   time.Time
}
