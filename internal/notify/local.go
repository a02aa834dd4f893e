package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"visionflow/internal/board"
)

// LocalHub fans envelopes out to subscribers inside this process. It is used
// when no Redis server is configured.
type LocalHub struct {
	mu   sync.RWMutex
	subs map[uuid.UUID]map[chan []byte]struct{}
}

func NewLocalHub() *LocalHub {
	return &LocalHub{subs: make(map[uuid.UUID]map[chan []byte]struct{})}
}

func (h *LocalHub) Emit(_ context.Context, ev Event) error {
	return h.publish(ev.ProjectID, Envelope{Kind: KindNotification, Event: &ev})
}

func (h *LocalHub) PublishBoard(_ context.Context, projectID uuid.UUID, b board.Board) error {
	return h.publish(projectID, Envelope{Kind: KindBoard, Board: &b})
}

func (h *LocalHub) publish(projectID uuid.UUID, env Envelope) error {
	payload, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("notify.LocalHub.publish: marshal: %w", err)
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs[projectID] {
		select {
		case ch <- payload:
		default:
			log.Warn().Str("project_id", projectID.String()).Msg("notify.LocalHub: slow subscriber, dropping message")
		}
	}
	return nil
}

func (h *LocalHub) Subscribe(ctx context.Context, projectID uuid.UUID) (<-chan []byte, func(), error) {
	ch := make(chan []byte, 64)

	h.mu.Lock()
	if h.subs[projectID] == nil {
		h.subs[projectID] = make(map[chan []byte]struct{})
	}
	h.subs[projectID][ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs[projectID], ch)
			if len(h.subs[projectID]) == 0 {
				delete(h.subs, projectID)
			}
			h.mu.Unlock()
			close(ch)
		})
	}
	context.AfterFunc(ctx, cleanup)
	return ch, cleanup, nil
}
