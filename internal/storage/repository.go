package storage

import "context"

// Repository is durable CRUD over users and tasks, scoped per user. The
// mutating bulk operations report how many rows they touched; ids that do not
// exist or belong to someone else are skipped, not errors.
type Repository interface {
	// RegisterUser inserts the user if absent. Calling it again with the
	// same id is a no-op.
	RegisterUser(ctx context.Context, in User) error

	// CreateTask inserts a task and returns its assigned id. Inputs are
	// assumed validated by the caller; the schema still rejects
	// out-of-enumeration priority or status values.
	CreateTask(ctx context.Context, in Task) (int64, error)

	// ListTasks returns all tasks owned by userID ordered by task id.
	// A user with no tasks yields an empty slice, not an error.
	ListTasks(ctx context.Context, userID int64) ([]Task, error)

	// MarkDone sets status to done for the given ids owned by userID and
	// returns the number of rows changed. An empty id list returns 0.
	MarkDone(ctx context.Context, userID int64, taskIDs []int64) (int64, error)

	// DeleteTasks removes the given ids owned by userID and returns the
	// number of rows removed. An empty id list returns 0.
	DeleteTasks(ctx context.Context, userID int64, taskIDs []int64) (int64, error)
}
