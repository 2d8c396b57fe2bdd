package ipframe

import "encoding/binary"

const (
	// MinHeaderLength is the smallest legal IPv4 header (IHL=5).
	MinHeaderLength = 20

	// MaxHeaderLength is the largest legal IPv4 header (IHL=15).
	MaxHeaderLength = 60
)

// IPv4Flags are the three flag bits carried alongside the fragment offset.
type IPv4Flags uint8

const (
	FlagDontFragment  IPv4Flags = 1 << 1
	FlagMoreFragments IPv4Flags = 1 << 0
)

// IPv4Header is a decoded RFC 791 header.
type IPv4Header struct {
	Version        uint8
	IHL            uint8 // header length in 32-bit words
	DSCP           uint8
	ECN            uint8
	TotalLength    uint16
	Identification uint16
	Flags          IPv4Flags
	FragmentOffset uint16 // in 8-byte blocks, 13 bits
	TTL            uint8
	Protocol       Protocol
	Checksum       uint16
	Source         [4]byte
	Destination    [4]byte
}

// HeaderLen returns IHL*4, the header length in bytes.
func (h *IPv4Header) HeaderLen() int { return int(h.IHL) * 4 }

// parseIPv4 decodes an IPv4 header plus options/payload from data, which
// must be exactly one IP datagram. When reuseBuffer is true, Options and
// Payload reference data directly; otherwise they are copied.
func parseIPv4(data []byte, reuseBuffer bool) (*IPv4Header, []byte, []byte, error) {
	if len(data) < MinHeaderLength {
		return nil, nil, nil, ErrMalformedHeader
	}

	h := &IPv4Header{}
	h.Version = data[0] >> 4
	h.IHL = data[0] & 0x0F

	headerLen := int(h.IHL) * 4
	if headerLen < MinHeaderLength {
		return nil, nil, nil, ErrMalformedHeader
	}
	if len(data) < headerLen {
		return nil, nil, nil, ErrMalformedHeader
	}

	h.DSCP = data[1] >> 2
	h.ECN = data[1] & 0x3
	h.TotalLength = binary.BigEndian.Uint16(data[2:4])
	h.Identification = binary.BigEndian.Uint16(data[4:6])

	flagsOffset := binary.BigEndian.Uint16(data[6:8])
	h.Flags = IPv4Flags(flagsOffset >> 13)
	h.FragmentOffset = flagsOffset & 0x1FFF

	h.TTL = data[8]
	h.Protocol = Protocol(data[9])
	h.Checksum = binary.BigEndian.Uint16(data[10:12])
	copy(h.Source[:], data[12:16])
	copy(h.Destination[:], data[16:20])

	if int(h.TotalLength) < headerLen {
		return nil, nil, nil, ErrMalformedHeader
	}

	options := data[20:headerLen]

	payloadEnd := int(h.TotalLength)
	if payloadEnd > len(data) {
		payloadEnd = len(data)
	}
	payload := data[headerLen:payloadEnd]

	if !reuseBuffer {
		options = append([]byte(nil), options...)
		payload = append([]byte(nil), payload...)
	}

	return h, options, payload, nil
}
