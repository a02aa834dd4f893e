package board

import (
	"fmt"
	"maps"
	"slices"
)

// New returns an empty board with one column per status.
func New() Board {
	b := Board{
		Columns:     make(map[string]Column, len(Statuses)),
		ColumnOrder: make([]string, 0, len(Statuses)),
	}
	for i, status := range Statuses {
		id := fmt.Sprintf("column-%d", i+1)
		b.ColumnOrder = append(b.ColumnOrder, id)
		b.Columns[id] = Column{ID: id, Title: status, TaskIDs: []string{}}
	}
	return b
}

// Bootstrap partitions tasks by status into a fresh board. Tasks keep their
// input order within a column; tasks with an unrecognized status are left off.
func Bootstrap[T any](tasks []T, idOf func(T) string, statusOf func(T) string) Board {
	b := New()
	for _, t := range tasks {
		col, ok := b.ColumnForStatus(statusOf(t))
		if !ok {
			continue
		}
		id := idOf(t)
		if _, _, placed := b.Locate(id); placed {
			continue
		}
		col.TaskIDs = append(col.TaskIDs, id)
		b.Columns[col.ID] = col
	}
	return b
}

// InsertTask places a new task id into a column at index. An index of -1
// appends. The task must not already be on the board.
func InsertTask(b Board, columnID, taskID string, index int) (Board, error) {
	col, ok := b.Columns[columnID]
	if !ok {
		return b, &InvalidMoveError{Reason: ReasonUnknownColumn, TaskID: taskID, ColumnID: columnID, Index: index}
	}
	if at, _, exists := b.Locate(taskID); exists {
		return b, &InvalidMoveError{Reason: ReasonDuplicateTask, TaskID: taskID, ColumnID: at, Index: index, Detail: "task already on board"}
	}
	if index == -1 {
		index = len(col.TaskIDs)
	}
	if index < 0 || index > len(col.TaskIDs) {
		return b, &InvalidMoveError{Reason: ReasonIndexOutOfRange, TaskID: taskID, ColumnID: columnID, Index: index}
	}

	next := Board{Columns: maps.Clone(b.Columns), ColumnOrder: b.ColumnOrder}
	col.TaskIDs = slices.Insert(slices.Clone(col.TaskIDs), index, taskID)
	next.Columns[columnID] = col
	return next, nil
}

// RemoveTask drops a task id from every column. The boolean reports whether
// the id was found.
func RemoveTask(b Board, taskID string) (Board, bool) {
	var next Board
	removed := false
	for id, col := range b.Columns {
		if !slices.Contains(col.TaskIDs, taskID) {
			continue
		}
		if !removed {
			next = Board{Columns: maps.Clone(b.Columns), ColumnOrder: b.ColumnOrder}
			removed = true
		}
		col.TaskIDs = slices.DeleteFunc(slices.Clone(col.TaskIDs), func(s string) bool { return s == taskID })
		next.Columns[id] = col
	}
	if !removed {
		return b, false
	}
	return next, true
}

// Rearrange checks that next only rearranges the tasks of b and returns one
// StatusChange per task that ended up in a different column, in the display
// order of next. Column order, ids and titles must be unchanged and both
// boards must hold the same task ids.
func Rearrange(b, next Board) ([]StatusChange, error) {
	if err := Validate(next); err != nil {
		return nil, &InvalidMoveError{Reason: ReasonInvalidBoard, Detail: err.Error()}
	}
	if !slices.Equal(b.ColumnOrder, next.ColumnOrder) {
		return nil, &InvalidMoveError{Reason: ReasonLayoutChanged, Detail: "column order differs from the stored board"}
	}
	for _, id := range b.ColumnOrder {
		if b.Columns[id].Title != next.Columns[id].Title {
			return nil, &InvalidMoveError{Reason: ReasonLayoutChanged, ColumnID: id, Detail: fmt.Sprintf("column title %q cannot be changed", b.Columns[id].Title)}
		}
	}
	if b.TaskCount() != next.TaskCount() {
		return nil, &InvalidMoveError{Reason: ReasonTaskNotFound, Detail: "board must contain exactly the project's tasks"}
	}

	var changes []StatusChange
	for _, id := range next.ColumnOrder {
		col := next.Columns[id]
		for i, taskID := range col.TaskIDs {
			from, _, ok := b.Locate(taskID)
			if !ok {
				return nil, &InvalidMoveError{Reason: ReasonTaskNotFound, TaskID: taskID, ColumnID: id, Index: i, Detail: "board must contain exactly the project's tasks"}
			}
			if from != id {
				changes = append(changes, StatusChange{TaskID: taskID, FromColumnID: from, ToColumnID: id, DestinationTitle: col.Title})
			}
		}
	}
	return changes, nil
}
