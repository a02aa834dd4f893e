// Package board holds the Kanban board model and the pure operations that
// reorder tasks on it. Nothing in this package performs I/O; every operation
// takes a Board value and returns a new one, leaving its input untouched.
package board

import (
	"fmt"
	"slices"
)

// Column is one status lane of a board.
type Column struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	TaskIDs []string `json:"taskIds"`
}

// Board is the placement of task ids into ordered columns.
// It is exchanged with the web client and stored as-is in a jsonb column.
type Board struct {
	Columns     map[string]Column `json:"columns"`
	ColumnOrder []string          `json:"columnOrder"`
}

// Status labels in display order.
const (
	StatusToDo       = "To Do"
	StatusInProgress = "In Progress"
	StatusReview     = "Review"
	StatusDone       = "Done"
)

// Statuses lists the recognized status values in the order their columns are shown.
var Statuses = []string{StatusToDo, StatusInProgress, StatusReview, StatusDone}

// IsStatus reports whether s is one of the recognized statuses.
func IsStatus(s string) bool {
	return slices.Contains(Statuses, s)
}

// Column returns the column with the given id.
func (b Board) Column(id string) (Column, bool) {
	c, ok := b.Columns[id]
	return c, ok
}

// Ordered returns the columns in display order.
func (b Board) Ordered() []Column {
	cols := make([]Column, 0, len(b.ColumnOrder))
	for _, id := range b.ColumnOrder {
		if c, ok := b.Columns[id]; ok {
			cols = append(cols, c)
		}
	}
	return cols
}

// Clone returns a deep copy of the board.
func (b Board) Clone() Board {
	out := Board{
		Columns:     make(map[string]Column, len(b.Columns)),
		ColumnOrder: slices.Clone(b.ColumnOrder),
	}
	for id, c := range b.Columns {
		c.TaskIDs = slices.Clone(c.TaskIDs)
		out.Columns[id] = c
	}
	return out
}

// Locate returns the column id and position of a task.
func (b Board) Locate(taskID string) (columnID string, index int, ok bool) {
	for _, id := range b.ColumnOrder {
		if i := slices.Index(b.Columns[id].TaskIDs, taskID); i >= 0 {
			return id, i, true
		}
	}
	return "", -1, false
}

// ColumnForStatus returns the column whose title equals status.
func (b Board) ColumnForStatus(status string) (Column, bool) {
	for _, id := range b.ColumnOrder {
		if c := b.Columns[id]; c.Title == status {
			return c, true
		}
	}
	return Column{}, false
}

// TaskCount is the number of task ids placed on the board.
func (b Board) TaskCount() int {
	n := 0
	for _, c := range b.Columns {
		n += len(c.TaskIDs)
	}
	return n
}

// Validate checks the structural invariants of a board: columnOrder and the
// column map describe the same set of ids, no column id repeats, every column
// is keyed by its own id, and no task id appears twice anywhere on the board.
func Validate(b Board) error {
	if len(b.ColumnOrder) != len(b.Columns) {
		return fmt.Errorf("board: column order has %d ids but %d columns exist", len(b.ColumnOrder), len(b.Columns))
	}

	seenCols := make(map[string]struct{}, len(b.ColumnOrder))
	seenTasks := make(map[string]string)
	for _, id := range b.ColumnOrder {
		if _, dup := seenCols[id]; dup {
			return fmt.Errorf("board: duplicate column %q in column order", id)
		}
		seenCols[id] = struct{}{}

		col, ok := b.Columns[id]
		if !ok {
			return fmt.Errorf("board: column %q is ordered but missing", id)
		}
		if col.ID != id {
			return fmt.Errorf("board: column keyed %q carries id %q", id, col.ID)
		}
		for _, taskID := range col.TaskIDs {
			if prev, dup := seenTasks[taskID]; dup {
				return fmt.Errorf("board: task %q appears in both %q and %q", taskID, prev, id)
			}
			seenTasks[taskID] = id
		}
	}
	return nil
}
