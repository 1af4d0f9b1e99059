package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/mester0723/plannerbot/internal/model"
)

type Type string

const (
	TypeStart  Type = "start"
	TypeHelp   Type = "help"
	TypeAdd    Type = "add"
	TypeList   Type = "list"
	TypeDone   Type = "done"
	TypeDelete Type = "delete"
)

type ErrorCode string

const (
	ErrCodeEmptyInput     ErrorCode = "empty_input"
	ErrCodeUnknownCommand ErrorCode = "unknown_command"
	ErrCodeFieldCount     ErrorCode = "field_count"
	ErrCodeBadDate        ErrorCode = "bad_date"
	ErrCodeBadTime        ErrorCode = "bad_time"
	ErrCodeBadPriority    ErrorCode = "bad_priority"
	ErrCodeMissingIDs     ErrorCode = "missing_ids"
	ErrCodeBadID          ErrorCode = "bad_id"
	ErrCodeHandlerMissing ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Command Type
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// priorityLabels maps the accepted human-readable labels to canonical
// priorities. Labels match case-insensitively, with or without the leading
// indicator glyph; both English and Russian wordings are accepted.
var priorityLabels = map[string]model.Priority{
	"low":       model.PriorityLow,
	"🟢 low":     model.PriorityLow,
	"низкий":    model.PriorityLow,
	"🟢 низкий":  model.PriorityLow,
	"medium":    model.PriorityMedium,
	"🟡 medium":  model.PriorityMedium,
	"средний":   model.PriorityMedium,
	"🟡 средний": model.PriorityMedium,
	"high":      model.PriorityHigh,
	"🔴 high":    model.PriorityHigh,
	"высокий":   model.PriorityHigh,
	"🔴 высокий": model.PriorityHigh,
}

// ParsePriorityLabel resolves a display label to its canonical priority.
func ParsePriorityLabel(label string) (model.Priority, bool) {
	p, ok := priorityLabels[strings.ToLower(strings.TrimSpace(label))]
	return p, ok
}

type AddArgs struct {
	Title       string
	Description string
	DueDate     string
	DueTime     string
	Priority    model.Priority
}

type IDArgs struct {
	IDs []int64
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Done   *IDArgs
	Delete *IDArgs
}

// Parse turns raw command text into a validated Command. Commands must start
// with a slash; bare chat text is rejected so a conversational message never
// mutates state. Every validation failure comes back as a *CommandError
// carrying a distinct code.
func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if !strings.HasPrefix(raw, "/") {
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: "bare text is not a command"}
	}
	raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	head, rest := raw, ""
	if i := strings.IndexFunc(raw, unicode.IsSpace); i >= 0 {
		head, rest = raw[:i], strings.TrimSpace(raw[i:])
	}
	head = strings.ToLower(head)
	// Group chats address commands as /cmd@botname.
	if at := strings.Index(head, "@"); at >= 0 {
		head = head[:at]
	}

	switch Type(head) {
	case TypeStart:
		return Command{Type: TypeStart, Raw: input}, nil
	case TypeHelp:
		return Command{Type: TypeHelp, Raw: input}, nil
	case TypeList:
		return Command{Type: TypeList, Raw: input}, nil
	case TypeAdd:
		return parseAdd(input, rest)
	case TypeDone:
		ids, err := parseIDs(TypeDone, rest)
		if err != nil {
			return Command{}, err
		}
		return Command{Type: TypeDone, Raw: input, Done: ids}, nil
	case TypeDelete:
		ids, err := parseIDs(TypeDelete, rest)
		if err != nil {
			return Command{}, err
		}
		return Command{Type: TypeDelete, Raw: input, Delete: ids}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw, rest string) (Command, error) {
	parts := strings.Split(rest, ";")
	if rest == "" || len(parts) != 5 {
		return Command{}, &CommandError{
			Code:    ErrCodeFieldCount,
			Command: TypeAdd,
			Message: fmt.Sprintf("add expects 5 semicolon-separated fields, got %d", len(parts)),
		}
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	title, description, dueDate, dueTime, label := parts[0], parts[1], parts[2], parts[3], parts[4]

	if title == "" {
		return Command{}, &CommandError{Code: ErrCodeFieldCount, Command: TypeAdd, Message: "add requires a non-empty title"}
	}
	if _, err := time.Parse(dateLayout, dueDate); err != nil {
		return Command{}, &CommandError{Code: ErrCodeBadDate, Command: TypeAdd, Message: fmt.Sprintf("invalid date %q", dueDate)}
	}
	if _, err := time.Parse(timeLayout, dueTime); err != nil {
		return Command{}, &CommandError{Code: ErrCodeBadTime, Command: TypeAdd, Message: fmt.Sprintf("invalid time %q", dueTime)}
	}
	priority, ok := ParsePriorityLabel(label)
	if !ok {
		return Command{}, &CommandError{Code: ErrCodeBadPriority, Command: TypeAdd, Message: fmt.Sprintf("unknown priority label %q", label)}
	}

	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{
		Title:       title,
		Description: description,
		DueDate:     dueDate,
		DueTime:     dueTime,
		Priority:    priority,
	}}, nil
}

func parseIDs(cmd Type, rest string) (*IDArgs, error) {
	if rest == "" {
		return nil, &CommandError{Code: ErrCodeMissingIDs, Command: cmd, Message: fmt.Sprintf("%s requires at least one task id", cmd)}
	}
	fields := strings.Fields(rest)
	ids := make([]int64, 0, len(fields))
	for _, f := range fields {
		id, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return nil, &CommandError{Code: ErrCodeBadID, Command: cmd, Message: fmt.Sprintf("task id %q is not an integer", f)}
		}
		ids = append(ids, id)
	}
	return &IDArgs{IDs: ids}, nil
}
