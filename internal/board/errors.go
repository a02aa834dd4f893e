package board

import (
	"errors"
	"fmt"
)

// ErrInvalidMove is matched by every *InvalidMoveError via errors.Is.
var ErrInvalidMove = errors.New("invalid move")

// Reason names the precondition a rejected move violated.
type Reason string

const (
	ReasonUnknownColumn   Reason = "unknown_column"
	ReasonIndexOutOfRange Reason = "index_out_of_range"
	ReasonTaskMismatch    Reason = "task_mismatch"
	ReasonTaskNotFound    Reason = "task_not_found"
	ReasonDuplicateTask   Reason = "duplicate_task"
	ReasonInvalidBoard    Reason = "invalid_board"
	ReasonLayoutChanged   Reason = "layout_changed"
)

// InvalidMoveError is returned when a board mutation is rejected. The board
// passed in is left exactly as it was.
type InvalidMoveError struct {
	Reason   Reason
	TaskID   string
	ColumnID string
	Index    int
	Detail   string
}

func (e *InvalidMoveError) Error() string {
	msg := fmt.Sprintf("invalid move of task %q: %s", e.TaskID, e.Reason)
	if e.ColumnID != "" {
		msg += fmt.Sprintf(" (column %q, index %d)", e.ColumnID, e.Index)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *InvalidMoveError) Is(target error) bool {
	return target == ErrInvalidMove
}

// Stale reports whether the error most likely comes from a drag gesture made
// against an outdated board, which callers usually drop without logging.
func (e *InvalidMoveError) Stale() bool {
	return e.Reason == ReasonTaskMismatch || e.Reason == ReasonIndexOutOfRange
}
