// Package bot implements the command handlers: it parses incoming command
// text, invokes the task store, and formats a reply. Handlers are stateless
// between invocations; all state lives in the store.
package bot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mester0723/plannerbot/internal/commands"
	"github.com/mester0723/plannerbot/internal/model"
	"github.com/mester0723/plannerbot/internal/storage"
)

type Bot struct {
	repo storage.Repository
	log  *zap.Logger
	now  func() time.Time
}

func New(repo storage.Repository, log *zap.Logger) *Bot {
	return &Bot{repo: repo, log: log, now: time.Now}
}

// HandleMessage processes one command invocation and always produces a reply.
// Malformed input, storage failures and handler panics come back as formatted
// error replies, never as an error to the caller.
func (b *Bot) HandleMessage(ctx context.Context, userID int64, username, text string) (res commands.Result) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("handler panic",
				zap.Int64("user_id", userID),
				zap.String("text", text),
				zap.Any("panic", r),
			)
			res = commands.Result{Text: genericErrorText(fmt.Errorf("%v", r))}
		}
	}()

	cmd, err := commands.Parse(text)
	if err != nil {
		return b.errorReply(userID, text, err)
	}

	res, err = commands.Execute(cmd, commands.Handlers{
		Start:  func() (commands.Result, error) { return b.handleStart(ctx, userID, username) },
		Help:   func() (commands.Result, error) { return commands.Result{Text: helpText, Markdown: true}, nil },
		Add:    func(a commands.AddArgs) (commands.Result, error) { return b.handleAdd(ctx, userID, a) },
		List:   func() (commands.Result, error) { return b.handleList(ctx, userID) },
		Done:   func(a commands.IDArgs) (commands.Result, error) { return b.handleDone(ctx, userID, a) },
		Delete: func(a commands.IDArgs) (commands.Result, error) { return b.handleDelete(ctx, userID, a) },
	})
	if err != nil {
		return b.errorReply(userID, text, err)
	}
	return res
}

func (b *Bot) handleStart(ctx context.Context, userID int64, username string) (commands.Result, error) {
	err := b.repo.RegisterUser(ctx, storage.User{
		ID:        userID,
		Username:  username,
		CreatedAt: b.now(),
	})
	if err != nil {
		return commands.Result{}, err
	}
	return commands.Result{Text: greetingText, Markdown: true}, nil
}

func (b *Bot) handleAdd(ctx context.Context, userID int64, args commands.AddArgs) (commands.Result, error) {
	task := model.Task{
		UserID:      userID,
		Title:       args.Title,
		Description: args.Description,
		DueDate:     args.DueDate,
		DueTime:     args.DueTime,
		Priority:    args.Priority,
		Status:      model.StatusActive,
		CreatedAt:   b.now(),
	}
	if err := task.Validate(); err != nil {
		return commands.Result{}, err
	}
	_, err := b.repo.CreateTask(ctx, storage.Task{
		UserID:      task.UserID,
		Title:       task.Title,
		Description: task.Description,
		DueDate:     task.DueDate,
		DueTime:     task.DueTime,
		Priority:    task.Priority,
		Status:      task.Status,
		CreatedAt:   task.CreatedAt,
	})
	if err != nil {
		return commands.Result{}, err
	}
	return commands.Result{Text: addConfirmationText(task.Title, task.Priority)}, nil
}

func (b *Bot) handleList(ctx context.Context, userID int64) (commands.Result, error) {
	tasks, err := b.repo.ListTasks(ctx, userID)
	if err != nil {
		return commands.Result{}, err
	}
	if len(tasks) == 0 {
		return commands.Result{Text: noTasksText}, nil
	}
	return commands.Result{Text: taskListText(tasks)}, nil
}

func (b *Bot) handleDone(ctx context.Context, userID int64, args commands.IDArgs) (commands.Result, error) {
	n, err := b.repo.MarkDone(ctx, userID, args.IDs)
	if err != nil {
		return commands.Result{}, err
	}
	if n == 0 {
		return commands.Result{Text: notFoundText}, nil
	}
	return commands.Result{Text: doneCountText(n)}, nil
}

func (b *Bot) handleDelete(ctx context.Context, userID int64, args commands.IDArgs) (commands.Result, error) {
	n, err := b.repo.DeleteTasks(ctx, userID, args.IDs)
	if err != nil {
		return commands.Result{}, err
	}
	if n == 0 {
		return commands.Result{Text: notFoundText}, nil
	}
	return commands.Result{Text: deletedCountText(n)}, nil
}

// errorReply maps a failure to its user-facing text. Command errors get their
// dedicated messages; everything else renders the generic reply with the
// underlying detail.
func (b *Bot) errorReply(userID int64, text string, err error) commands.Result {
	var ce *commands.CommandError
	if errors.As(err, &ce) {
		switch ce.Code {
		case commands.ErrCodeFieldCount:
			return commands.Result{Text: addFormatErrorText}
		case commands.ErrCodeBadDate:
			return commands.Result{Text: badDateText}
		case commands.ErrCodeBadTime:
			return commands.Result{Text: badTimeText}
		case commands.ErrCodeBadPriority:
			return commands.Result{Text: badPriorityText}
		case commands.ErrCodeMissingIDs:
			return commands.Result{Text: missingIDsText(ce.Command)}
		case commands.ErrCodeUnknownCommand, commands.ErrCodeEmptyInput:
			return commands.Result{Text: unknownCommandText}
		}
	}
	b.log.Error("command failed",
		zap.Int64("user_id", userID),
		zap.String("text", text),
		zap.Error(err),
	)
	return commands.Result{Text: genericErrorText(err)}
}
