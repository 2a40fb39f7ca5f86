package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis channel naming: one channel per recipient so every API process can
// publish and every process running a websocket hub sees the event via a
// pattern subscription. This is what lets horizontally scaled instances share
// one broadcast source.
const userChannelPrefix = "notify:user:"

func userChannel(userID string) string {
	return userChannelPrefix + userID
}

// RedisPublisher implements Publisher over Redis pub/sub. Publishing is
// routed through the worker pool so request handlers never wait on the broker.
type RedisPublisher struct {
	client *redis.Client
	pool   *WorkerPool
}

// NewRedisClient builds a client with the same timeouts the rest of the
// codebase uses and verifies connectivity before returning it.
func NewRedisClient(addr, password string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return rdb, nil
}

func NewRedisPublisher(client *redis.Client, pool *WorkerPool) *RedisPublisher {
	return &RedisPublisher{client: client, pool: pool}
}

func (p *RedisPublisher) Publish(ctx context.Context, userID string, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	p.pool.Submit(func(taskCtx context.Context) error {
		publishCtx, cancel := context.WithTimeout(taskCtx, 3*time.Second)
		defer cancel()
		return p.client.Publish(publishCtx, userChannel(userID), data).Err()
	})
	return nil
}

// UserEventSink receives events for a specific user; the websocket hub
// implements this to forward broker traffic to local connections.
type UserEventSink interface {
	DeliverToUser(userID string, data []byte)
}

// Subscriber bridges the Redis pattern subscription onto a local sink.
// Run one per process that terminates websocket connections.
type Subscriber struct {
	client *redis.Client
	sink   UserEventSink
	cancel context.CancelFunc
}

func NewSubscriber(client *redis.Client, sink UserEventSink) *Subscriber {
	return &Subscriber{client: client, sink: sink}
}

// Start consumes the pattern subscription until Stop is called. Reconnection
// on broker hiccups is handled inside go-redis's PSubscribe channel.
func (s *Subscriber) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	pubsub := s.client.PSubscribe(ctx, userChannelPrefix+"*")

	go func() {
		defer pubsub.Close()
		ch := pubsub.Channel()
		for {
			select {
			case msg, ok := <-ch:
				if !ok {
					return
				}
				userID := strings.TrimPrefix(msg.Channel, userChannelPrefix)
				if userID == "" || userID == msg.Channel {
					slog.Warn("unexpected pubsub channel", "channel", msg.Channel)
					continue
				}
				s.sink.DeliverToUser(userID, []byte(msg.Payload))
			case <-ctx.Done():
				return
			}
		}
	}()

	slog.Info("notification subscriber started", "pattern", userChannelPrefix+"*")
}

func (s *Subscriber) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
}
