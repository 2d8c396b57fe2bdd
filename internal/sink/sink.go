// Package sink defines the pluggable event-sink interface the decode
// worker calls with decoded syslog events, and a dispatcher that
// invokes registered sinks while suppressing their faults so one sink's
// failure cannot destabilize delivery to the others.
package sink

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/netweaver/syslogcollector/internal/syslogmsg"
)

// DecodedMessage is the unit handed to sinks: the occurrence and
// reception times, the original payload (copied, owned independently
// of any leased buffer), and the parsed SyslogEvent.
type DecodedMessage struct {
	OccurredAt time.Time
	ReceivedAt time.Time
	Payload    []byte
	Event      *syslogmsg.Event
}

// Sink is implemented by a concrete downstream consumer of decoded
// events. Emit must be non-blocking or yield promptly: the decode
// worker calls sinks sequentially and a slow sink delays every other
// registered sink and the next frame in the channel.
type Sink interface {
	Emit(ctx context.Context, msg DecodedMessage) error
}

// Dispatcher invokes a sequence of registered sinks in registration
// order, logging and suppressing any fault so the pipeline continues.
type Dispatcher struct {
	sinks  []Sink
	logger *zap.Logger
}

// NewDispatcher creates a Dispatcher over sinks, invoked in the given
// order on every Dispatch call.
func NewDispatcher(logger *zap.Logger, sinks ...Sink) *Dispatcher {
	return &Dispatcher{sinks: sinks, logger: logger}
}

// Dispatch calls Emit on every registered sink in order. A sink error
// is logged at Warn and does not prevent the remaining sinks from
// running.
func (d *Dispatcher) Dispatch(ctx context.Context, msg DecodedMessage) {
	for _, s := range d.sinks {
		if err := s.Emit(ctx, msg); err != nil {
			d.logger.Warn("sink emit failed", zap.Error(err))
		}
	}
}
