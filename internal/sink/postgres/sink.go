// Package postgres is a reference sink.Sink that batches decoded
// syslog events and bulk-loads them into a Postgres/TimescaleDB table
// with COPY.
package postgres

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/netweaver/syslogcollector/internal/sink"
)

// Options configures batching and connection pool sizing.
type Options struct {
	PoolSize      int
	BatchSize     int
	FlushInterval time.Duration
}

// DefaultOptions returns sane batching defaults: 500-row batches,
// flushed at least every 2 seconds.
func DefaultOptions() Options {
	return Options{PoolSize: 10, BatchSize: 500, FlushInterval: 2 * time.Second}
}

// Sink bulk-inserts decoded messages into the syslog_events table.
type Sink struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
	opts   Options

	mu    sync.Mutex
	batch []sink.DecodedMessage

	cancel context.CancelFunc
	done   chan struct{}
}

// New opens a connection pool against connString and starts the
// background flush ticker.
func New(ctx context.Context, connString string, opts Options, logger *zap.Logger) (*Sink, error) {
	if opts.PoolSize <= 0 {
		opts = DefaultOptions()
	}

	poolConfig, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("postgres sink: parsing connection string: %w", err)
	}
	poolConfig.MaxConns = int32(opts.PoolSize)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("postgres sink: creating pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres sink: ping: %w", err)
	}

	flushCtx, cancel := context.WithCancel(context.Background())
	s := &Sink{
		pool:   pool,
		logger: logger,
		opts:   opts,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go s.flushLoop(flushCtx)

	return s, nil
}

// Emit appends msg to the pending batch, flushing immediately if the
// batch has reached its configured size.
func (s *Sink) Emit(ctx context.Context, msg sink.DecodedMessage) error {
	s.mu.Lock()
	s.batch = append(s.batch, msg)
	full := len(s.batch) >= s.opts.BatchSize
	s.mu.Unlock()

	if full {
		return s.flush(ctx)
	}
	return nil
}

func (s *Sink) flushLoop(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.opts.FlushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.flush(context.Background())
			return
		case <-ticker.C:
			if err := s.flush(ctx); err != nil {
				s.logger.Error("periodic flush failed", zap.Error(err))
			}
		}
	}
}

func (s *Sink) flush(ctx context.Context) error {
	s.mu.Lock()
	batch := s.batch
	s.batch = nil
	s.mu.Unlock()

	if len(batch) == 0 {
		return nil
	}

	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("postgres sink: acquiring connection: %w", err)
	}
	defer conn.Release()

	columns := []string{
		"occurred_at", "received_at", "source_ip",
		"severity", "facility", "message", "raw_payload",
	}

	_, err = conn.Conn().CopyFrom(
		ctx,
		pgx.Identifier{"syslog_events"},
		columns,
		pgx.CopyFromSlice(len(batch), func(i int) ([]interface{}, error) {
			m := batch[i]
			return []interface{}{
				m.OccurredAt, m.ReceivedAt, m.Event.SourceIP,
				m.Event.Severity, m.Event.Facility, m.Event.Message, m.Payload,
			}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("postgres sink: bulk insert: %w", err)
	}

	s.logger.Debug("flushed syslog events", zap.Int("count", len(batch)))
	return nil
}

// Close stops the flush ticker, flushes any remaining batch and closes
// the connection pool.
func (s *Sink) Close() error {
	s.cancel()
	<-s.done
	s.pool.Close()
	return nil
}
