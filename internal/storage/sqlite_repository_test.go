package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/mester0723/plannerbot/internal/model"
)

func setupRepo(t *testing.T) (*SQLiteRepository, *sql.DB) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "planner-test.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := MigrateUp(db); err != nil {
		t.Fatalf("migrate up: %v", err)
	}

	repo, err := NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	return repo, db
}

func testUser(id int64) User {
	return User{
		ID:        id,
		Username:  "tester",
		CreatedAt: time.Date(2025, 8, 20, 10, 0, 0, 0, time.UTC),
	}
}

func testTask(userID int64) Task {
	return Task{
		UserID:      userID,
		Title:       "Buy milk",
		Description: "two liters",
		DueDate:     "2025-08-24",
		DueTime:     "18:30",
		Priority:    model.PriorityLow,
		Status:      model.StatusActive,
		CreatedAt:   time.Date(2025, 8, 20, 10, 0, 0, 0, time.UTC),
	}
}

func TestRegisterUserIdempotent(t *testing.T) {
	repo, db := setupRepo(t)
	ctx := context.Background()

	if err := repo.RegisterUser(ctx, testUser(1)); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if err := repo.RegisterUser(ctx, testUser(1)); err != nil {
		t.Fatalf("second register: %v", err)
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM users WHERE user_id = 1`).Scan(&count); err != nil {
		t.Fatalf("count users: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one user row, got %d", count)
	}
}

func TestCreateAndListRoundTrip(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	if err := repo.RegisterUser(ctx, testUser(1)); err != nil {
		t.Fatalf("register: %v", err)
	}

	in := testTask(1)
	id, err := repo.CreateTask(ctx, in)
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	if id == 0 {
		t.Fatal("expected a non-zero task id")
	}

	tasks, err := repo.ListTasks(ctx, 1)
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected one task, got %d", len(tasks))
	}
	got := tasks[0]
	if got.ID != id {
		t.Fatalf("listed id = %d, want %d", got.ID, id)
	}
	if got.Title != in.Title || got.Description != in.Description ||
		got.DueDate != in.DueDate || got.DueTime != in.DueTime ||
		got.Priority != in.Priority || got.Status != model.StatusActive {
		t.Fatalf("round trip mismatch: %#v", got)
	}
}

func TestListTasksEmpty(t *testing.T) {
	repo, _ := setupRepo(t)

	tasks, err := repo.ListTasks(context.Background(), 999)
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("expected empty slice, got %#v", tasks)
	}
}

func TestListTasksOrderedByID(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	if err := repo.RegisterUser(ctx, testUser(1)); err != nil {
		t.Fatalf("register: %v", err)
	}
	for _, title := range []string{"first", "second", "third"} {
		task := testTask(1)
		task.Title = title
		if _, err := repo.CreateTask(ctx, task); err != nil {
			t.Fatalf("create %q: %v", title, err)
		}
	}

	tasks, err := repo.ListTasks(ctx, 1)
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(tasks))
	}
	for i := 1; i < len(tasks); i++ {
		if tasks[i].ID <= tasks[i-1].ID {
			t.Fatalf("tasks not ordered by id: %#v", tasks)
		}
	}
}

func TestMarkDone(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	if err := repo.RegisterUser(ctx, testUser(1)); err != nil {
		t.Fatalf("register: %v", err)
	}
	first, err := repo.CreateTask(ctx, testTask(1))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := repo.CreateTask(ctx, testTask(1))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// 9999 does not exist and must be skipped silently.
	n, err := repo.MarkDone(ctx, 1, []int64{first, second, 9999})
	if err != nil {
		t.Fatalf("mark done: %v", err)
	}
	if n != 2 {
		t.Fatalf("marked %d rows, want 2", n)
	}

	tasks, err := repo.ListTasks(ctx, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, task := range tasks {
		if task.Status != model.StatusDone {
			t.Fatalf("task %d status = %s, want done", task.ID, task.Status)
		}
	}
}

func TestMarkDoneAndDeleteEmptyIDs(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	n, err := repo.MarkDone(ctx, 1, nil)
	if err != nil || n != 0 {
		t.Fatalf("mark done with no ids: n=%d err=%v", n, err)
	}
	n, err = repo.DeleteTasks(ctx, 1, []int64{})
	if err != nil || n != 0 {
		t.Fatalf("delete with no ids: n=%d err=%v", n, err)
	}
}

func TestOwnershipIsolation(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	if err := repo.RegisterUser(ctx, testUser(1)); err != nil {
		t.Fatalf("register owner: %v", err)
	}
	if err := repo.RegisterUser(ctx, testUser(2)); err != nil {
		t.Fatalf("register other: %v", err)
	}
	id, err := repo.CreateTask(ctx, testTask(1))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	n, err := repo.MarkDone(ctx, 2, []int64{id})
	if err != nil {
		t.Fatalf("mark done as other user: %v", err)
	}
	if n != 0 {
		t.Fatalf("other user marked %d rows, want 0", n)
	}

	n, err = repo.DeleteTasks(ctx, 2, []int64{id})
	if err != nil {
		t.Fatalf("delete as other user: %v", err)
	}
	if n != 0 {
		t.Fatalf("other user deleted %d rows, want 0", n)
	}

	tasks, err := repo.ListTasks(ctx, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Status != model.StatusActive {
		t.Fatalf("owner's task was affected: %#v", tasks)
	}
}

func TestDeleteTasks(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	if err := repo.RegisterUser(ctx, testUser(1)); err != nil {
		t.Fatalf("register: %v", err)
	}
	id, err := repo.CreateTask(ctx, testTask(1))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	n, err := repo.DeleteTasks(ctx, 1, []int64{id})
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if n != 1 {
		t.Fatalf("deleted %d rows, want 1", n)
	}

	tasks, err := repo.ListTasks(ctx, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("expected no tasks after delete, got %#v", tasks)
	}
}

func TestCreateTaskRejectsUnknownPriority(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	if err := repo.RegisterUser(ctx, testUser(1)); err != nil {
		t.Fatalf("register: %v", err)
	}
	task := testTask(1)
	task.Priority = "urgent"
	if _, err := repo.CreateTask(ctx, task); err == nil {
		t.Fatal("expected the priority CHECK constraint to reject the insert")
	}
}
