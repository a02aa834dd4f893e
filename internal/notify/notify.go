// Package notify delivers board notifications and live board snapshots to
// connected clients.
package notify

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"visionflow/internal/board"
)

// Event types.
const (
	TypeStatusChanged = "task.status_changed"
	TypeMoveFailed    = "board.move_failed"
)

// Event is a transient user-facing notification.
type Event struct {
	Type                   string    `json:"type"`
	ProjectID              uuid.UUID `json:"projectId"`
	TaskID                 string    `json:"taskId,omitempty"`
	Title                  string    `json:"title,omitempty"`
	DestinationColumnTitle string    `json:"destinationColumnTitle,omitempty"`
	Message                string    `json:"message"`
	At                     time.Time `json:"at"`
}

// Emitter accepts notifications.
type Emitter interface {
	Emit(ctx context.Context, ev Event) error
}

// Broadcaster pushes the latest board snapshot to live viewers.
type Broadcaster interface {
	PublishBoard(ctx context.Context, projectID uuid.UUID, b board.Board) error
}

// Multi fans an event out to every emitter and joins their errors.
type Multi []Emitter

func (m Multi) Emit(ctx context.Context, ev Event) error {
	var errs []error
	for _, e := range m {
		if err := e.Emit(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Discard drops everything. Useful when Redis is not configured.
type Discard struct{}

func (Discard) Emit(context.Context, Event) error { return nil }

func (Discard) PublishBoard(context.Context, uuid.UUID, board.Board) error { return nil }
