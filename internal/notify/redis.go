package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"visionflow/internal/board"
)

// Envelope kinds carried on a board channel.
const (
	KindNotification = "notification"
	KindBoard        = "board"
)

// Envelope is the JSON message published on a board channel.
type Envelope struct {
	Kind  string       `json:"kind"`
	Event *Event       `json:"event,omitempty"`
	Board *board.Board `json:"board,omitempty"`
}

// RedisHub publishes notifications and board snapshots over Redis pub/sub so
// every API instance can relay them to its WebSocket clients.
type RedisHub struct {
	client *redis.Client
}

func NewRedisHub(client *redis.Client) *RedisHub {
	return &RedisHub{client: client}
}

// Dial connects to Redis and verifies the connection.
func Dial(ctx context.Context, addr, password string, db int) (*RedisHub, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("notify.Dial: ping: %w", err)
	}
	return &RedisHub{client: client}, nil
}

// Client exposes the underlying connection for other Redis-backed components.
func (h *RedisHub) Client() *redis.Client {
	return h.client
}

func (h *RedisHub) Close() error {
	if err := h.client.Close(); err != nil {
		return fmt.Errorf("notify.RedisHub.Close: %w", err)
	}
	return nil
}

// BoardChannel returns the Redis channel name for a project board.
func BoardChannel(projectID uuid.UUID) string {
	return "board:" + projectID.String()
}

func (h *RedisHub) Emit(ctx context.Context, ev Event) error {
	return h.publish(ctx, ev.ProjectID, Envelope{Kind: KindNotification, Event: &ev})
}

func (h *RedisHub) PublishBoard(ctx context.Context, projectID uuid.UUID, b board.Board) error {
	return h.publish(ctx, projectID, Envelope{Kind: KindBoard, Board: &b})
}

func (h *RedisHub) publish(ctx context.Context, projectID uuid.UUID, env Envelope) error {
	payload, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("notify.RedisHub.publish: marshal: %w", err)
	}
	if err := h.client.Publish(ctx, BoardChannel(projectID), payload).Err(); err != nil {
		return fmt.Errorf("notify.RedisHub.publish: %w", err)
	}
	return nil
}

// Subscribe streams raw envelopes published for a project until ctx ends or
// the returned cleanup func is called.
func (h *RedisHub) Subscribe(ctx context.Context, projectID uuid.UUID) (<-chan []byte, func(), error) {
	sub := h.client.Subscribe(ctx, BoardChannel(projectID))

	// Wait for subscription confirmation.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, nil, fmt.Errorf("notify.RedisHub.Subscribe: receive confirmation: %w", err)
	}

	out := make(chan []byte, 64)
	redisCh := sub.Channel()

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-redisCh:
				if !ok {
					return
				}
				select {
				case out <- []byte(msg.Payload):
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	cleanup := func() {
		_ = sub.Close()
	}
	return out, cleanup, nil
}
