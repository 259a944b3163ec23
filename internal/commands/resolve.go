package commands

import "fmt"

// Rows lists the ids currently displayed, in display order.
type Rows struct {
	Tasks []int64
	Notes []int64
}

// Resolve replaces a 1-based Index with the id of that row. Commands that
// already carry an id, or that do not address a row, are returned unchanged.
func Resolve(cmd Command, rows Rows) (Command, error) {
	if cmd.Index == 0 || cmd.ID != 0 {
		return cmd, nil
	}
	var ids []int64
	switch cmd.Type {
	case TypeToggleTask, TypeDeleteTask:
		ids = rows.Tasks
	case TypeDeleteNote:
		ids = rows.Notes
	default:
		return cmd, nil
	}
	if cmd.Index < 1 || cmd.Index > len(ids) {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("no row #%d", cmd.Index)}
	}
	cmd.ID = ids[cmd.Index-1]
	return cmd, nil
}
