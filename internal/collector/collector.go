// Package collector wires the raw-socket receiver, the decode worker
// and the sink dispatcher into one life-cycle-managed pipeline.
package collector

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/netweaver/syslogcollector/internal/bufferpool"
	"github.com/netweaver/syslogcollector/internal/config"
	"github.com/netweaver/syslogcollector/internal/ipframe"
	"github.com/netweaver/syslogcollector/internal/metrics"
	"github.com/netweaver/syslogcollector/internal/rawsock"
	"github.com/netweaver/syslogcollector/internal/sink"
	"github.com/netweaver/syslogcollector/internal/syslogmsg"
	"github.com/netweaver/syslogcollector/internal/udpframe"
)

// State is a collector life-cycle state.
type State int

const (
	StateCreated State = iota
	StateRunning
	StateStopping
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// recvTimeout bounds how long a raw-socket receive blocks before the
// receive loop re-checks for cancellation.
const recvTimeout = 1 * time.Second

// frame is one leased buffer filled by a receive operation, awaiting
// decode.
type frame struct {
	buf        []byte
	n          int
	receivedAt time.Time
}

// Collector owns the receive goroutines, the decode worker and the
// sink dispatcher for one configured listen address.
type Collector struct {
	cfg        config.Config
	logger     *zap.Logger
	dispatcher *sink.Dispatcher
	counters   *metrics.Counters

	mu    sync.Mutex
	state State

	sock   *rawsock.Socket
	pool   *bufferpool.Pool
	frames chan frame

	ctx    context.Context
	cancel context.CancelFunc

	recvWG     sync.WaitGroup
	decodeDone chan struct{}
}

// New creates a Collector in StateCreated. It does not open any socket
// or start any goroutine until Start is called.
func New(cfg config.Config, logger *zap.Logger, dispatcher *sink.Dispatcher) *Collector {
	return &Collector{
		cfg:        cfg,
		logger:     logger,
		dispatcher: dispatcher,
		counters:   metrics.New(),
		state:      StateCreated,
	}
}

// Metrics returns a snapshot of the pipeline counters.
func (c *Collector) Metrics() metrics.Snapshot {
	return c.counters.Snapshot()
}

// State reports the current life-cycle state.
func (c *Collector) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Start opens the raw socket and launches the receive and decode
// goroutines. Calling Start while already running is a no-op that logs
// a warning; it never returns an error in that case.
func (c *Collector) Start() error {
	c.mu.Lock()
	if c.state == StateRunning {
		c.mu.Unlock()
		c.logger.Warn("collector already running, ignoring Start")
		return nil
	}
	if c.state == StateStopping || c.state == StateStopped {
		c.mu.Unlock()
		return fmt.Errorf("collector: cannot start from state %s", c.state)
	}

	sock, err := rawsock.Open(c.cfg.BindAddress())
	if err != nil {
		c.mu.Unlock()
		return fmt.Errorf("collector: opening raw socket: %w", err)
	}
	if err := sock.SetRecvTimeout(recvTimeout); err != nil {
		sock.Close()
		c.mu.Unlock()
		return fmt.Errorf("collector: setting receive timeout: %w", err)
	}

	c.sock = sock
	c.pool = bufferpool.New(c.cfg.BufferSize, c.cfg.BufferPoolSize)
	c.frames = make(chan frame, c.cfg.ChannelCapacity)
	c.ctx, c.cancel = context.WithCancel(context.Background())
	c.decodeDone = make(chan struct{})
	c.state = StateRunning
	c.mu.Unlock()

	c.logger.Info("starting collector",
		zap.String("bind_address", c.cfg.BindAddress()),
		zap.Uint16("udp_port", c.cfg.UDPPort),
		zap.Int("receivers", c.cfg.Receivers),
		zap.Int("channel_capacity", c.cfg.ChannelCapacity),
		zap.Int("buffer_pool_size", c.cfg.BufferPoolSize),
	)

	for i := 0; i < c.cfg.Receivers; i++ {
		c.recvWG.Add(1)
		go c.receiveLoop()
	}

	go func() {
		c.recvWG.Wait()
		close(c.frames)
	}()

	go c.decodeLoop()

	return nil
}

// Stop cancels the receive and decode goroutines, drains what is
// in-flight and closes the socket. Stopping from StateCreated or an
// already-stopped collector is a no-op. Stop blocks until shutdown is
// complete and logs a final metrics snapshot.
func (c *Collector) Stop() error {
	c.mu.Lock()
	if c.state == StateCreated || c.state == StateStopped {
		c.mu.Unlock()
		return nil
	}
	c.state = StateStopping
	cancel := c.cancel
	sock := c.sock
	done := c.decodeDone
	c.mu.Unlock()

	c.logger.Info("stopping collector")
	cancel()
	<-done

	var err error
	if sock != nil {
		err = sock.Close()
	}

	c.mu.Lock()
	c.state = StateStopped
	c.mu.Unlock()

	snap := c.counters.Snapshot()
	c.logger.Info("collector stopped",
		zap.Uint64("datagrams_received", snap.DatagramsReceived),
		zap.Uint64("bytes_received", snap.BytesReceived),
		zap.Uint64("parse_errors_ip", snap.ParseErrorsIP),
		zap.Uint64("parse_errors_udp", snap.ParseErrorsUDP),
		zap.Uint64("parse_errors_syslog", snap.ParseErrorsSyslog),
		zap.Uint64("dispatched", snap.Dispatched),
		zap.Duration("elapsed", snap.ElapsedTime),
	)

	if err != nil {
		return multierr.Append(nil, fmt.Errorf("collector: closing socket: %w", err))
	}
	return nil
}

// receiveLoop leases a buffer, blocks on one raw-socket receive and
// hands the result to the decode worker, until the collector's context
// is cancelled.
func (c *Collector) receiveLoop() {
	defer c.recvWG.Done()

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
		}

		buf, err := c.pool.Lease(c.ctx)
		if err != nil {
			return
		}

		n, _, err := c.sock.Recv(buf)
		if err != nil {
			c.pool.Release(buf)
			if err == rawsock.ErrTimeout || err == rawsock.ErrInterrupted {
				continue
			}
			c.logger.Error("raw socket receive failed", zap.Error(err))
			continue
		}

		receivedAt := time.Now()
		c.counters.AddDatagramReceived(n)

		select {
		case c.frames <- frame{buf: buf, n: n, receivedAt: receivedAt}:
		case <-c.ctx.Done():
			c.pool.Release(buf)
			return
		}
	}
}

// decodeLoop consumes frames in arrival order, running each through the
// IP, UDP and syslog parsers before handing the result to the sink
// dispatcher. It drains any frames still in the channel after
// cancellation before returning.
func (c *Collector) decodeLoop() {
	defer close(c.decodeDone)

	for fr := range c.frames {
		c.decodeFrame(fr)
	}
}

func (c *Collector) decodeFrame(fr frame) {
	defer c.pool.Release(fr.buf)

	pkt, err := ipframe.Parse(fr.buf[:fr.n], fr.receivedAt, true)
	if err != nil {
		c.counters.AddParseErrorIP()
		c.logger.Debug("dropping datagram: IP parse failed", zap.Error(err))
		return
	}

	if pkt.Protocol() != ipframe.ProtocolUDP {
		return
	}

	if pkt.IsFragment() || pkt.HasExtensionChain() {
		c.counters.AddParseErrorIP()
		c.logger.Debug("dropping datagram: opaque fragment or extension chain",
			zap.Bool("is_fragment", pkt.IsFragment()),
			zap.Bool("has_extension_chain", pkt.HasExtensionChain()),
		)
		return
	}

	if bind := c.cfg.BindAddress(); bind != "0.0.0.0" {
		if pkt.DestinationIP().String() != bind {
			return
		}
	}

	dgram, err := udpframe.Parse(pkt.Payload())
	if err != nil {
		c.counters.AddParseErrorUDP()
		c.logger.Debug("dropping datagram: UDP parse failed", zap.Error(err))
		return
	}

	if dgram.DestinationPort != c.cfg.UDPPort {
		return
	}

	srcIP := pkt.SourceIP().String()
	evt, err := syslogmsg.Parse(dgram.Payload, fr.receivedAt, srcIP)
	if err != nil {
		c.counters.AddParseErrorSyslog()
		c.logger.Debug("dropping datagram: syslog parse failed",
			zap.Error(err), zap.String("source_ip", srcIP))
		return
	}

	payload := append([]byte(nil), dgram.Payload...)
	msg := sink.DecodedMessage{
		OccurredAt: fr.receivedAt,
		ReceivedAt: fr.receivedAt,
		Payload:    payload,
		Event:      evt,
	}

	c.dispatcher.Dispatch(c.ctx, msg)
	c.counters.AddDispatched()
}
