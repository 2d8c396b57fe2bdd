// Package logsink is a reference sink.Sink that logs each decoded
// syslog event through zap, with no external dependency beyond
// logging.
package logsink

import (
	"context"

	"go.uber.org/zap"

	"github.com/netweaver/syslogcollector/internal/sink"
)

// Sink writes one structured log line per decoded message.
type Sink struct {
	logger *zap.Logger
}

// New returns a Sink that logs through logger.
func New(logger *zap.Logger) *Sink {
	return &Sink{logger: logger}
}

// Emit logs msg's event fields at info level. It never returns an
// error: a logging sink has no failure mode the dispatcher needs to
// react to.
func (s *Sink) Emit(ctx context.Context, msg sink.DecodedMessage) error {
	s.logger.Info("syslog event",
		zap.Time("occurred_at", msg.OccurredAt),
		zap.String("source_ip", msg.Event.SourceIP),
		zap.Uint8("severity", msg.Event.Severity),
		zap.Uint16("facility", msg.Event.Facility),
		zap.String("message", msg.Event.Message),
	)
	return nil
}
