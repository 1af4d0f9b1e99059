package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mester0723/plannerbot/internal/model"
)

const sqliteTimeLayout = time.RFC3339Nano

type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository wraps an open sqlite handle. Foreign keys stay at the
// sqlite default (off): the tasks→users reference is declared but not
// enforced. A busy timeout is set because concurrent command deliveries
// share one database file.
func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) RegisterUser(ctx context.Context, in User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (user_id, username, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT (user_id) DO NOTHING`,
		in.ID, in.Username, mustTime(in.CreatedAt),
	)
	return err
}

func (r *SQLiteRepository) CreateTask(ctx context.Context, in Task) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (user_id, title, description, due_date, due_time, priority, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		in.UserID, in.Title, in.Description, in.DueDate, in.DueTime,
		string(in.Priority), string(in.Status), mustTime(in.CreatedAt),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *SQLiteRepository) ListTasks(ctx context.Context, userID int64) ([]Task, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT task_id, user_id, title, description, due_date, due_time, priority, status, created_at
		FROM tasks WHERE user_id = ? ORDER BY task_id ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Task, 0)
	for rows.Next() {
		task, scanErr := scanTask(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, task)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) MarkDone(ctx context.Context, userID int64, taskIDs []int64) (int64, error) {
	if len(taskIDs) == 0 {
		return 0, nil
	}
	query := fmt.Sprintf(
		`UPDATE tasks SET status = 'done' WHERE user_id = ? AND task_id IN (%s)`,
		idPlaceholders(len(taskIDs)),
	)
	res, err := r.db.ExecContext(ctx, query, idArgs(userID, taskIDs)...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *SQLiteRepository) DeleteTasks(ctx context.Context, userID int64, taskIDs []int64) (int64, error) {
	if len(taskIDs) == 0 {
		return 0, nil
	}
	query := fmt.Sprintf(
		`DELETE FROM tasks WHERE user_id = ? AND task_id IN (%s)`,
		idPlaceholders(len(taskIDs)),
	)
	res, err := r.db.ExecContext(ctx, query, idArgs(userID, taskIDs)...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func idPlaceholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func idArgs(userID int64, taskIDs []int64) []any {
	args := make([]any, 0, len(taskIDs)+1)
	args = append(args, userID)
	for _, id := range taskIDs {
		args = append(args, id)
	}
	return args
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func parseRequiredTime(v string) (time.Time, error) {
	return time.Parse(sqliteTimeLayout, v)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (Task, error) {
	var out Task
	var desc sql.NullString
	var priority, status string
	var created string
	if err := s.Scan(&out.ID, &out.UserID, &out.Title, &desc, &out.DueDate, &out.DueTime, &priority, &status, &created); err != nil {
		return Task{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return Task{}, err
	}
	out.Description = desc.String
	out.Priority = model.Priority(priority)
	out.Status = model.Status(status)
	out.CreatedAt = createdAt
	return out, nil
}
