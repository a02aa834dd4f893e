package notify

import (
	"context"

	"github.com/rs/zerolog"
)

// LogEmitter writes every event to a zerolog logger.
type LogEmitter struct {
	logger zerolog.Logger
}

func NewLogEmitter(logger zerolog.Logger) *LogEmitter {
	return &LogEmitter{logger: logger}
}

func (l *LogEmitter) Emit(_ context.Context, ev Event) error {
	lvl := zerolog.InfoLevel
	if ev.Type == TypeMoveFailed {
		lvl = zerolog.WarnLevel
	}
	l.logger.WithLevel(lvl).
		Str("type", ev.Type).
		Str("project_id", ev.ProjectID.String()).
		Str("task_id", ev.TaskID).
		Str("destination", ev.DestinationColumnTitle).
		Msg(ev.Message)
	return nil
}
