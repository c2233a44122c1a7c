package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/triage-run/faultline"
	"github.com/triage-run/faultline/trend"
)

// Defaults for the publisher.
const (
	// DefaultOutcomeChannel receives one OutcomeReport per event.
	DefaultOutcomeChannel = "faultline:outcomes"

	// DefaultSpikeChannel receives one SpikeReport per spike signal.
	DefaultSpikeChannel = "faultline:spikes"

	// DefaultBuffer is the bounded queue between Process and the worker.
	DefaultBuffer = 256

	// DefaultPublishTimeout bounds each Redis publish.
	DefaultPublishTimeout = 5 * time.Second
)

// Options configures a Publisher.
type Options struct {
	// URL is the Redis connection string (e.g., "redis://localhost:6379").
	URL string

	// OutcomeChannel overrides the outcome pub/sub channel.
	OutcomeChannel string

	// SpikeChannel overrides the spike pub/sub channel.
	SpikeChannel string

	// Buffer bounds the in-flight message queue.
	Buffer int

	// PublishTimeout bounds each publish operation.
	PublishTimeout time.Duration
}

type message struct {
	channel string
	payload []byte
}

// Publisher ships outcomes and spikes to Redis pub/sub channels without
// ever blocking the classification path. It implements faultline.Observer.
type Publisher struct {
	client  *redis.Client
	opts    Options
	queue   chan message
	done    chan struct{}
	closed  sync.Once
	dropped atomic.Int64
}

// NewPublisher connects to Redis and starts the publishing worker.
func NewPublisher(opts Options) (*Publisher, error) {
	if opts.URL == "" {
		opts.URL = "redis://localhost:6379"
	}
	if opts.OutcomeChannel == "" {
		opts.OutcomeChannel = DefaultOutcomeChannel
	}
	if opts.SpikeChannel == "" {
		opts.SpikeChannel = DefaultSpikeChannel
	}
	if opts.Buffer <= 0 {
		opts.Buffer = DefaultBuffer
	}
	if opts.PublishTimeout <= 0 {
		opts.PublishTimeout = DefaultPublishTimeout
	}

	redisOpts, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}

	p := &Publisher{
		client: redis.NewClient(redisOpts),
		opts:   opts,
		queue:  make(chan message, opts.Buffer),
		done:   make(chan struct{}),
	}
	go p.run()
	return p, nil
}

// ObserveOutcome implements faultline.Observer.
func (p *Publisher) ObserveOutcome(_ context.Context, o faultline.Outcome) {
	payload, err := json.Marshal(newOutcomeReport(o))
	if err != nil {
		return
	}
	p.enqueue(p.opts.OutcomeChannel, payload)
}

// ObserveSpike implements faultline.Observer.
func (p *Publisher) ObserveSpike(_ context.Context, s trend.SpikeSignal) {
	payload, err := json.Marshal(newSpikeReport(s))
	if err != nil {
		return
	}
	p.enqueue(p.opts.SpikeChannel, payload)
}

// Dropped returns the number of messages discarded because the buffer was
// full.
func (p *Publisher) Dropped() int64 {
	return p.dropped.Load()
}

// Close stops the worker and closes the Redis connection. Messages still
// queued are discarded.
func (p *Publisher) Close() error {
	var err error
	p.closed.Do(func() {
		close(p.done)
		err = p.client.Close()
	})
	return err
}

// enqueue hands a message to the worker, dropping it when the buffer is
// full. Never blocks.
func (p *Publisher) enqueue(channel string, payload []byte) {
	select {
	case p.queue <- message{channel: channel, payload: payload}:
	default:
		p.dropped.Add(1)
	}
}

func (p *Publisher) run() {
	for {
		select {
		case <-p.done:
			return
		case m := <-p.queue:
			ctx, cancel := context.WithTimeout(context.Background(), p.opts.PublishTimeout)
			// Publish errors are dropped: delivery is best-effort and the
			// consumers are advisory.
			_ = p.client.Publish(ctx, m.channel, m.payload).Err()
			cancel()
		}
	}
}
