package board

import (
	"maps"
	"slices"
)

// MoveRequest describes a finished drag gesture: where the task was picked up
// and where it was dropped.
type MoveRequest struct {
	TaskID         string `json:"taskId" binding:"required"`
	SourceColumnID string `json:"sourceColumnId" binding:"required"`
	SourceIndex    int    `json:"sourceIndex" binding:"min=0"`
	DestColumnID   string `json:"destColumnId" binding:"required"`
	DestIndex      int    `json:"destIndex" binding:"min=0"`
}

// CrossColumn reports whether the request changes the task's column.
func (r MoveRequest) CrossColumn() bool {
	return r.SourceColumnID != r.DestColumnID
}

// StatusChange is produced by a cross-column move. The caller resolves the
// task title and forwards it to the notification emitter.
type StatusChange struct {
	TaskID           string
	FromColumnID     string
	ToColumnID       string
	DestinationTitle string
}

// MoveTask applies req to b and returns the resulting board. A non-nil
// StatusChange is returned only when the task lands in a different column.
//
// Indices follow splice semantics: the task is removed first and then
// inserted at DestIndex of the resulting sequence. On error the returned
// board is the unmodified input.
func MoveTask(b Board, req MoveRequest) (Board, *StatusChange, error) {
	src, ok := b.Columns[req.SourceColumnID]
	if !ok {
		return b, nil, &InvalidMoveError{Reason: ReasonUnknownColumn, TaskID: req.TaskID, ColumnID: req.SourceColumnID, Index: req.SourceIndex, Detail: "source column does not exist"}
	}
	dest, ok := b.Columns[req.DestColumnID]
	if !ok {
		return b, nil, &InvalidMoveError{Reason: ReasonUnknownColumn, TaskID: req.TaskID, ColumnID: req.DestColumnID, Index: req.DestIndex, Detail: "destination column does not exist"}
	}

	if err := checkSource(src, req); err != nil {
		return b, nil, err
	}
	if req.DestIndex < 0 || req.DestIndex > len(dest.TaskIDs) {
		return b, nil, &InvalidMoveError{Reason: ReasonIndexOutOfRange, TaskID: req.TaskID, ColumnID: dest.ID, Index: req.DestIndex, Detail: "destination index outside column"}
	}

	if !req.CrossColumn() && req.SourceIndex == req.DestIndex {
		return b, nil, nil
	}

	next := Board{
		Columns:     maps.Clone(b.Columns),
		ColumnOrder: b.ColumnOrder,
	}

	if !req.CrossColumn() {
		ids := slices.Delete(slices.Clone(src.TaskIDs), req.SourceIndex, req.SourceIndex+1)
		src.TaskIDs = slices.Insert(ids, min(req.DestIndex, len(ids)), req.TaskID)
		next.Columns[src.ID] = src
		return next, nil, nil
	}

	src.TaskIDs = slices.Delete(slices.Clone(src.TaskIDs), req.SourceIndex, req.SourceIndex+1)
	dest.TaskIDs = slices.Insert(slices.Clone(dest.TaskIDs), req.DestIndex, req.TaskID)
	next.Columns[src.ID] = src
	next.Columns[dest.ID] = dest

	return next, &StatusChange{
		TaskID:           req.TaskID,
		FromColumnID:     src.ID,
		ToColumnID:       dest.ID,
		DestinationTitle: dest.Title,
	}, nil
}

func checkSource(src Column, req MoveRequest) error {
	if req.SourceIndex < 0 || req.SourceIndex >= len(src.TaskIDs) {
		if !slices.Contains(src.TaskIDs, req.TaskID) {
			return &InvalidMoveError{Reason: ReasonTaskNotFound, TaskID: req.TaskID, ColumnID: src.ID, Index: req.SourceIndex, Detail: "task is not in the source column"}
		}
		return &InvalidMoveError{Reason: ReasonIndexOutOfRange, TaskID: req.TaskID, ColumnID: src.ID, Index: req.SourceIndex, Detail: "source index outside column"}
	}
	if src.TaskIDs[req.SourceIndex] != req.TaskID {
		if !slices.Contains(src.TaskIDs, req.TaskID) {
			return &InvalidMoveError{Reason: ReasonTaskNotFound, TaskID: req.TaskID, ColumnID: src.ID, Index: req.SourceIndex, Detail: "task is not in the source column"}
		}
		return &InvalidMoveError{Reason: ReasonTaskMismatch, TaskID: req.TaskID, ColumnID: src.ID, Index: req.SourceIndex, Detail: "found " + src.TaskIDs[req.SourceIndex]}
	}
	return nil
}
