package publisher

import (
	"context"
	"encoding/base64"
	"math/rand/v2"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/slumbersage/gjirafa50/logger"
	apperrors "github.com/slumbersage/gjirafa50/pkg/errors"
)

// RedisOptions configures a RedisPublisher
type RedisOptions struct {
	Addr            string
	DB              int
	StreamPrefix    string
	StreamCount     int
	StreamMaxLength int
}

// RedisPublisher writes messages to a set of Redis streams
type RedisPublisher struct {
	client          *redis.Client
	streamPrefix    string
	streamCount     int
	streamMaxLength int
	log             *logger.Logger
}

var _ Publisher = (*RedisPublisher)(nil)

// NewRedisPublisher creates a new Redis publisher
func NewRedisPublisher(opts RedisOptions) *RedisPublisher {
	client := redis.NewClient(&redis.Options{
		Addr: opts.Addr,
		DB:   opts.DB,
	})

	count := opts.StreamCount
	if count < 1 {
		count = 1
	}

	return &RedisPublisher{
		client:          client,
		streamPrefix:    opts.StreamPrefix,
		streamCount:     count,
		streamMaxLength: opts.StreamMaxLength,
		log:             logger.ForPublisher(),
	}
}

// Ping checks that the Redis server is reachable
func (p *RedisPublisher) Ping(ctx context.Context) error {
	if err := p.client.Ping(ctx).Err(); err != nil {
		return apperrors.NewPublisher("redis", "redis is not reachable", err)
	}
	return nil
}

// Publish base64 encodes message and appends it to one of the streams
// prefix:0 .. prefix:N-1, chosen at random.
func (p *RedisPublisher) Publish(ctx context.Context, key string, message []byte) error {
	encoded := base64.StdEncoding.EncodeToString(message)
	stream := p.streamName(rand.IntN(p.streamCount))

	err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]interface{}{
			key: encoded,
		},
	}).Err()
	if err != nil {
		return apperrors.NewPublisher("redis", "failed to publish to "+stream, err)
	}

	p.log.Debug().Str("stream", stream).Str("key", key).Int("bytes", len(message)).Msg("Published message")
	return nil
}

// TrimStreams trims all streams to the configured maximum length
func (p *RedisPublisher) TrimStreams(ctx context.Context) error {
	streams, err := p.client.Keys(ctx, p.streamPrefix+":*").Result()
	if err != nil {
		return apperrors.NewPublisher("redis", "failed to list streams", err)
	}

	for _, stream := range streams {
		if err := p.client.XTrimMaxLen(ctx, stream, int64(p.streamMaxLength)).Err(); err != nil {
			return apperrors.NewPublisher("redis", "failed to trim "+stream, err)
		}
	}
	return nil
}

// Close closes the Redis connection
func (p *RedisPublisher) Close() error {
	return p.client.Close()
}

func (p *RedisPublisher) streamName(i int) string {
	return p.streamPrefix + ":" + strconv.Itoa(i)
}
