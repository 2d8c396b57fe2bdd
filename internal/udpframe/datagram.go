// Package udpframe decodes RFC 768 UDP headers from the payload slice
// an IP datagram yields.
package udpframe

import (
	"encoding/binary"
	"errors"
)

// MinHeaderLength is the fixed UDP header size.
const MinHeaderLength = 8

// ErrTruncatedPayload is returned when fewer than MinHeaderLength bytes
// are available.
var ErrTruncatedPayload = errors.New("udpframe: truncated payload")

// Datagram is a decoded UDP header plus its payload slice.
type Datagram struct {
	SourcePort      uint16
	DestinationPort uint16
	Length          uint16
	Checksum        uint16
	Payload         []byte
}

// Parse decodes data as a single UDP datagram. The payload slice
// references data directly; callers that need to retain it beyond the
// lifetime of the underlying buffer must copy it themselves.
func Parse(data []byte) (*Datagram, error) {
	if len(data) < MinHeaderLength {
		return nil, ErrTruncatedPayload
	}

	d := &Datagram{
		SourcePort:      binary.BigEndian.Uint16(data[0:2]),
		DestinationPort: binary.BigEndian.Uint16(data[2:4]),
		Length:          binary.BigEndian.Uint16(data[4:6]),
		Checksum:        binary.BigEndian.Uint16(data[6:8]),
		Payload:         data[8:],
	}
	return d, nil
}
