package syslogmsg

import "errors"

// Sentinel errors returned by Parse.
var (
	// ErrEmptyInput is returned for a zero-length message.
	ErrEmptyInput = errors.New("syslogmsg: empty input")

	// ErrInvalidFormat is returned when no <PRI> prefix is present.
	ErrInvalidFormat = errors.New("syslogmsg: missing <PRI> prefix")

	// ErrInvalidPriority is returned when the PRI value is present but
	// not a valid non-negative integer.
	ErrInvalidPriority = errors.New("syslogmsg: non-numeric priority")
)
