package commands

import (
	"fmt"
	"strconv"
	"strings"
)

type Type string

const (
	TypeAddTask        Type = "add_task"
	TypeToggleTask     Type = "toggle_task"
	TypeDeleteTask     Type = "delete_task"
	TypeOpenTaskForm   Type = "open_task_form"
	TypeCancelTaskForm Type = "cancel_task_form"
	TypeSaveNote       Type = "save_note"
	TypeDeleteNote     Type = "delete_note"
	TypeOpenNoteForm   Type = "open_note_form"
	TypeCancelNoteForm Type = "cancel_note_form"
	TypeToggleTimer    Type = "toggle_timer"
	TypeStartTimer     Type = "start_timer"
	TypePauseTimer     Type = "pause_timer"
	TypeResetTimer     Type = "reset_timer"
	TypeSelectDuration Type = "select_duration"
	TypeTick           Type = "tick"
	TypeToggleTheme    Type = "toggle_theme"
	TypeSelectView     Type = "select_view"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Command is a single user intent. Only the fields relevant to Type are set.
// Index is a 1-based row position typed by the user; Resolve turns it into ID.
type Command struct {
	Type    Type
	Raw     string
	Text    string
	ID      int64
	Index   int
	Minutes int
	View    string
	Seq     uint64
}

func AddTask(text string) Command {
	return Command{Type: TypeAddTask, Text: text}
}

func ToggleTask(id int64) Command {
	return Command{Type: TypeToggleTask, ID: id}
}

func DeleteTask(id int64) Command {
	return Command{Type: TypeDeleteTask, ID: id}
}

func OpenTaskForm() Command {
	return Command{Type: TypeOpenTaskForm}
}

func CancelTaskForm() Command {
	return Command{Type: TypeCancelTaskForm}
}

func SaveNote(content string) Command {
	return Command{Type: TypeSaveNote, Text: content}
}

func DeleteNote(id int64) Command {
	return Command{Type: TypeDeleteNote, ID: id}
}

func OpenNoteForm() Command {
	return Command{Type: TypeOpenNoteForm}
}

func CancelNoteForm() Command {
	return Command{Type: TypeCancelNoteForm}
}

func ToggleTimer() Command {
	return Command{Type: TypeToggleTimer}
}

func ResetTimer() Command {
	return Command{Type: TypeResetTimer}
}

func SelectDuration(minutes int) Command {
	return Command{Type: TypeSelectDuration, Minutes: minutes}
}

func Tick(seq uint64) Command {
	return Command{Type: TypeTick, Seq: seq}
}

func ToggleTheme() Command {
	return Command{Type: TypeToggleTheme}
}

func SelectView(view string) Command {
	return Command{Type: TypeSelectView, View: view}
}

// Parse reads a palette or CLI command line such as "add buy milk",
// "done 2" or "timer 15". A leading slash is accepted.
func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]
	rest := strings.TrimSpace(strings.TrimPrefix(raw, parts[0]))

	var (
		cmd Command
		err error
	)
	switch head {
	case "add":
		cmd, err = parseText(TypeAddTask, "add requires task text", rest)
	case "note":
		cmd, err = parseText(TypeSaveNote, "note requires content", rest)
	case "done":
		cmd, err = parseIndex(TypeToggleTask, head, args)
	case "rm":
		cmd, err = parseIndex(TypeDeleteTask, head, args)
	case "unnote":
		cmd, err = parseIndex(TypeDeleteNote, head, args)
	case "timer":
		cmd, err = parseTimer(args)
	case "theme":
		cmd = ToggleTheme()
	case "view":
		cmd, err = parseView(args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
	if err != nil {
		return Command{}, err
	}
	cmd.Raw = input
	return cmd, nil
}

func parseText(t Type, msg, rest string) (Command, error) {
	if rest == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: msg}
	}
	return Command{Type: t, Text: rest}, nil
}

func parseIndex(t Type, head string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: head + " requires a row number"}
	}
	n, err := strconv.Atoi(strings.TrimPrefix(args[0], "#"))
	if err != nil || n < 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid row number: %s", args[0])}
	}
	return Command{Type: t, Index: n}, nil
}

func parseTimer(args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "timer requires start, pause, reset or minutes"}
	}
	switch sub := strings.ToLower(args[0]); sub {
	case "start":
		return Command{Type: TypeStartTimer}, nil
	case "pause", "stop":
		return Command{Type: TypePauseTimer}, nil
	case "reset":
		return ResetTimer(), nil
	default:
		m, err := strconv.Atoi(strings.TrimSuffix(sub, "m"))
		if err != nil || m <= 0 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid timer argument: %s", args[0])}
		}
		return SelectDuration(m), nil
	}
}

func parseView(args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "view requires a name"}
	}
	return SelectView(strings.ToLower(args[0])), nil
}
