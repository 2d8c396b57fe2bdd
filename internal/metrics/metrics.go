// Package metrics tracks atomic pipeline counters and produces a
// point-in-time snapshot on shutdown.
package metrics

import (
	"sync/atomic"
	"time"
)

// Counters are the atomic pipeline counters. All fields are updated
// with atomic increments and must only be accessed through the methods
// below (never read/written directly), so they remain safe to share
// across the receive operations and the decode worker.
type Counters struct {
	datagramsReceived atomic.Uint64
	bytesReceived     atomic.Uint64
	parseErrorsIP     atomic.Uint64
	parseErrorsUDP    atomic.Uint64
	parseErrorsSyslog atomic.Uint64
	dispatched        atomic.Uint64

	startedAt time.Time
}

// New creates a fresh, zeroed Counters set with its elapsed-time clock
// started now.
func New() *Counters {
	return &Counters{startedAt: time.Now()}
}

func (c *Counters) AddDatagramReceived(bytes int) {
	c.datagramsReceived.Add(1)
	c.bytesReceived.Add(uint64(bytes))
}

func (c *Counters) AddParseErrorIP()     { c.parseErrorsIP.Add(1) }
func (c *Counters) AddParseErrorUDP()    { c.parseErrorsUDP.Add(1) }
func (c *Counters) AddParseErrorSyslog() { c.parseErrorsSyslog.Add(1) }
func (c *Counters) AddDispatched()       { c.dispatched.Add(1) }

// Snapshot is a point-in-time read of all counters plus total elapsed
// time since New.
type Snapshot struct {
	DatagramsReceived uint64
	BytesReceived     uint64
	ParseErrorsIP     uint64
	ParseErrorsUDP    uint64
	ParseErrorsSyslog uint64
	Dispatched        uint64
	ElapsedTime       time.Duration
}

// Snapshot reads all counters. Safe to call concurrently with the
// increment methods; individual fields may be marginally inconsistent
// with one another under concurrent updates, which is acceptable for a
// shutdown-time report.
func (c *Counters) Snapshot() Snapshot {
	return Snapshot{
		DatagramsReceived: c.datagramsReceived.Load(),
		BytesReceived:     c.bytesReceived.Load(),
		ParseErrorsIP:     c.parseErrorsIP.Load(),
		ParseErrorsUDP:    c.parseErrorsUDP.Load(),
		ParseErrorsSyslog: c.parseErrorsSyslog.Load(),
		Dispatched:        c.dispatched.Load(),
		ElapsedTime:       time.Since(c.startedAt),
	}
}
