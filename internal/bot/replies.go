package bot

import (
	"fmt"
	"strings"

	"github.com/mester0723/plannerbot/internal/commands"
	"github.com/mester0723/plannerbot/internal/model"
	"github.com/mester0723/plannerbot/internal/storage"
)

// Every error reply ends with this pointer so the user can self-correct.
const helpPointer = "📃 For more details about commands, send /help"

const greetingText = "👋 Hi! I am your *personal planner bot!*\n\n" +
	"✏️ Available commands:\n" +
	"/add - add a task\n" +
	"/list - show your tasks\n" +
	"/done - mark a task as done\n" +
	"/delete - delete a task\n\n" +
	helpPointer

const helpText = "📚 *How to use this bot:*\n\n" +
	"1. /add Title; Description; YYYY-MM-DD; HH:MM; Priority\n" +
	"   - Add a new task.\n" +
	"   - Example: /add Buy groceries; Milk, bread; 2025-08-24; 18:30; High\n\n" +
	"2. /list\n" +
	"   - Show all your tasks.\n\n" +
	"3. /done ID [ID ...]\n" +
	"   - Mark one or more tasks as done.\n" +
	"   - Example: /done 1 or /done 1 2\n\n" +
	"4. /delete ID [ID ...]\n" +
	"   - Delete one or more tasks.\n" +
	"   - Example: /delete 1 or /delete 1 2\n\n" +
	"⚠️ *Date and time format:* YYYY-MM-DD for dates and HH:MM for times.\n" +
	"⚠️ *Priorities:* 🟢 Low, 🟡 Medium, 🔴 High."

const addFormatErrorText = "⚠️ Error!\n\n" +
	"💿 Format: /add Title; Description; YYYY-MM-DD; HH:MM; Priority\n" +
	"📀 Example: /add Buy groceries; Milk, bread; 2025-08-24; 18:30; High\n\n" +
	helpPointer

const badDateText = "⚠️ Error!\n" +
	"📅 The date must be in YYYY-MM-DD format (for example, 2025-08-24).\n\n" +
	helpPointer

const badTimeText = "⚠️ Error!\n" +
	"⌚ The time must be in HH:MM format (for example, 18:30).\n\n" +
	helpPointer

const badPriorityText = "⚠️ Error!\n" +
	"⭐ The priority must be one of: 🟢 Low / 🟡 Medium / 🔴 High\n\n" +
	helpPointer

const noTasksText = "📭 You have no tasks yet"

const notFoundText = "⚠️ No matching tasks found.\n\n" + helpPointer

const unknownCommandText = "❓ Unknown command.\n\n" + helpPointer

var priorityDisplay = map[model.Priority]string{
	model.PriorityLow:    "🟢 Low",
	model.PriorityMedium: "🟡 Medium",
	model.PriorityHigh:   "🔴 High",
}

func missingIDsText(cmd commands.Type) string {
	verb := "complete"
	if cmd == commands.TypeDelete {
		verb = "delete"
	}
	return fmt.Sprintf("❌ Specify the id(s) of the task(s) to %s. Example: /%s 1 or /%s 1 2\n\n%s",
		verb, cmd, cmd, helpPointer)
}

func genericErrorText(err error) string {
	return fmt.Sprintf("⚠️ Unexpected error: %v\n\n%s", err, helpPointer)
}

// GenericErrorReply is the catch-all failure reply. The gateway uses it when
// a fault escapes the handler entirely, so the user still gets an answer.
func GenericErrorReply(err error) commands.Result {
	return commands.Result{Text: genericErrorText(err)}
}

func addConfirmationText(title string, priority model.Priority) string {
	return fmt.Sprintf("✅ Task '%s' added with priority %s!", title, priorityDisplay[priority])
}

func taskListText(tasks []storage.Task) string {
	var b strings.Builder
	b.WriteString("📌 Your tasks:\n\n")
	for _, t := range tasks {
		icon := "⌛"
		if t.Status == model.StatusDone {
			icon = "✅"
		}
		fmt.Fprintf(&b, "%s #%d %s ⏰ %s %s\n", icon, t.ID, t.Title, t.DueDate, t.DueTime)
	}
	return b.String()
}

func doneCountText(n int64) string {
	return fmt.Sprintf("✅ Tasks completed: %d", n)
}

func deletedCountText(n int64) string {
	return fmt.Sprintf("🗑️ Tasks deleted: %d", n)
}
