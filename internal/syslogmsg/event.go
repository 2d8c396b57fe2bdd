// Package syslogmsg extracts PRI/severity/facility and the message body
// from a UDP payload carrying a syslog message, per RFC 3164 / RFC 5424,
// with the baseline PRI parse always attempted and structured-field
// capture best-effort on top of it.
package syslogmsg

import (
	"strconv"
	"strings"
	"time"
)

// Event is a decoded syslog message: baseline PRI fields plus whatever
// named components the structured parsers captured.
type Event struct {
	ReceivedAt time.Time
	SourceIP   string
	Severity   uint8  // priority & 0x7, 0..7
	Facility   uint16 // priority >> 3, unbounded per spec but practically small
	Message    string
	Captures   Captures
}

// Parse extracts the baseline PRI/severity/facility/message fields from
// data and, best-effort, the named components of whichever of RFC 5424
// or RFC 3164 the message body matches. A structured-capture mismatch
// is not fatal: only the baseline fields are required for a Event to
// be returned.
func Parse(data []byte, receivedAt time.Time, sourceIP string) (*Event, error) {
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}

	if data[0] != '<' {
		return nil, ErrInvalidFormat
	}

	scanLimit := len(data)
	if scanLimit > 1+5 { // PRI digits are bounded in practice; cap the scan
		scanLimit = 1 + 5
	}
	closeIdx := -1
	for i := 1; i < scanLimit; i++ {
		if data[i] == '>' {
			closeIdx = i
			break
		}
	}
	if closeIdx == -1 {
		return nil, ErrInvalidFormat
	}

	priStr := string(data[1:closeIdx])
	if priStr == "" {
		return nil, ErrInvalidFormat
	}
	pri, err := strconv.Atoi(priStr)
	if err != nil || pri < 0 {
		return nil, ErrInvalidPriority
	}

	body := strings.TrimLeft(string(data[closeIdx+1:]), " \t")

	evt := &Event{
		ReceivedAt: receivedAt,
		SourceIP:   sourceIP,
		Severity:   uint8(pri & 0x7),
		Facility:   uint16(pri >> 3),
		Message:    body,
		Captures:   newCaptures(),
	}

	if caps, ok := parseRFC5424(body); ok {
		evt.Captures = caps
	} else if caps, ok := parseRFC3164(body); ok {
		evt.Captures = caps
	}

	return evt, nil
}
