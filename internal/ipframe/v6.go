package ipframe

import "encoding/binary"

// FixedHeaderLength is the size of the non-extensible IPv6 header.
const FixedHeaderLength = 40

// IPv6Header is a decoded RFC 8200 fixed header.
type IPv6Header struct {
	Version       uint8
	TrafficClass  uint8
	FlowLabel     uint32 // 20 bits
	PayloadLength uint16
	NextHeader    Protocol
	HopLimit      uint8
	Source        [16]byte
	Destination   [16]byte
}

// ExtensionHeader is one (type, length) capture in a traversed chain.
type ExtensionHeader struct {
	Type Protocol
	// Length is the total size of this extension header in bytes.
	Length int
}

func extensionHeaderLength(extType Protocol, lenField byte) int {
	switch extType {
	case ProtocolFragment:
		return 8
	case ProtocolAH:
		return (int(lenField) + 2) * 4
	default:
		return (int(lenField) + 1) * 8
	}
}

// parseIPv6 decodes the fixed header and walks the extension header
// chain, returning the chain, the final protocol, and the payload slice.
// The chain stops when the current type is not an extension type, is
// NoNxt, or would run past the input.
func parseIPv6(data []byte, reuseBuffer bool) (*IPv6Header, []ExtensionHeader, Protocol, []byte, error) {
	if len(data) < FixedHeaderLength {
		return nil, nil, 0, nil, ErrMalformedHeader
	}

	h := &IPv6Header{}
	h.Version = data[0] >> 4
	h.TrafficClass = (data[0]&0x0F)<<4 | (data[1] >> 4)
	h.FlowLabel = (uint32(data[1]&0x0F) << 16) | uint32(binary.BigEndian.Uint16(data[2:4]))
	h.PayloadLength = binary.BigEndian.Uint16(data[4:6])
	h.NextHeader = Protocol(data[6])
	h.HopLimit = data[7]
	copy(h.Source[:], data[8:24])
	copy(h.Destination[:], data[24:40])

	var chain []ExtensionHeader
	protocol := h.NextHeader
	offset := FixedHeaderLength

	for isExtensionHeader(protocol) {
		if offset+2 > len(data) {
			// Next extension would run past the input: stop, surface
			// the remainder (if any) as opaque under the current protocol.
			break
		}

		nextType := Protocol(data[offset])
		lenField := data[offset+1]
		extLen := extensionHeaderLength(protocol, lenField)

		if offset+extLen > len(data) {
			break
		}

		chain = append(chain, ExtensionHeader{Type: protocol, Length: extLen})
		offset += extLen
		protocol = nextType

		if protocol == ProtocolNoNxt {
			break
		}
	}

	payloadStart := offset
	payloadEnd := FixedHeaderLength + int(h.PayloadLength)
	if payloadEnd > len(data) {
		payloadEnd = len(data)
	}
	if payloadEnd < payloadStart {
		payloadEnd = payloadStart
	}

	payload := data[payloadStart:payloadEnd]
	if !reuseBuffer {
		payload = append([]byte(nil), payload...)
	}

	return h, chain, protocol, payload, nil
}
