// Package ipframe decodes IPv4 and IPv6 headers, including the IPv6
// extension header chain, from a raw IP datagram and yields the
// transport-layer payload plus the final protocol number.
package ipframe

import (
	"net"
	"time"
)

// Packet is a tagged variant over the IPv4 and IPv6 cases, sharing a
// received-at timestamp and exposing a derived final protocol.
type Packet struct {
	receivedAt time.Time

	v4        *IPv4Header
	v4Options []byte

	v6           *IPv6Header
	extensions   []ExtensionHeader
	v6FinalProto Protocol

	payload []byte
}

// ReceivedAt returns the wall-clock instant the datagram was received.
func (p *Packet) ReceivedAt() time.Time { return p.receivedAt }

// IsV4 reports whether this packet is the IPv4 variant.
func (p *Packet) IsV4() bool { return p.v4 != nil }

// IsV6 reports whether this packet is the IPv6 variant.
func (p *Packet) IsV6() bool { return p.v6 != nil }

// V4 returns the IPv4 header and options. Only valid when IsV4.
func (p *Packet) V4() (*IPv4Header, []byte) { return p.v4, p.v4Options }

// V6 returns the IPv6 header and its traversed extension chain. Only
// valid when IsV6.
func (p *Packet) V6() (*IPv6Header, []ExtensionHeader) { return p.v6, p.extensions }

// Protocol returns the final protocol: for V4, the header's Protocol
// field; for V6, the protocol after the extension chain.
func (p *Packet) Protocol() Protocol {
	if p.v4 != nil {
		return p.v4.Protocol
	}
	return p.v6FinalProto
}

// Payload returns the transport-layer payload slice.
func (p *Packet) Payload() []byte { return p.payload }

// SourceIP returns the datagram's source address, V4 or V6 as appropriate.
func (p *Packet) SourceIP() net.IP {
	if p.v4 != nil {
		return net.IP(p.v4.Source[:])
	}
	return net.IP(p.v6.Source[:])
}

// DestinationIP returns the datagram's destination address, V4 or V6 as
// appropriate.
func (p *Packet) DestinationIP() net.IP {
	if p.v4 != nil {
		return net.IP(p.v4.Destination[:])
	}
	return net.IP(p.v6.Destination[:])
}

// HasExtensionChain reports whether this packet carried a non-empty
// IPv6 extension header chain. The decode worker uses this, together
// with the IPv4 fragment offset, to decide whether to surface the
// payload as opaque instead of UDP-parsing it.
func (p *Packet) HasExtensionChain() bool { return len(p.extensions) > 0 }

// IsFragment reports whether this is an IPv4 datagram with a non-zero
// fragment offset.
func (p *Packet) IsFragment() bool {
	return p.v4 != nil && p.v4.FragmentOffset > 0
}

// Parse decodes data as a single IP datagram. The high 4 bits of byte 0
// select IPv4 vs IPv6; anything else fails with ErrUnsupportedVersion.
// reuseBuffer controls whether produced sub-slices reference data
// directly (true) or are copied (false).
func Parse(data []byte, receivedAt time.Time, reuseBuffer bool) (*Packet, error) {
	if len(data) == 0 {
		return nil, ErrTruncatedPayload
	}

	version := data[0] >> 4
	switch version {
	case 4:
		h, options, payload, err := parseIPv4(data, reuseBuffer)
		if err != nil {
			return nil, err
		}
		return &Packet{receivedAt: receivedAt, v4: h, v4Options: options, payload: payload}, nil

	case 6:
		h, chain, finalProtocol, payload, err := parseIPv6(data, reuseBuffer)
		if err != nil {
			return nil, err
		}
		pkt := &Packet{
			receivedAt:   receivedAt,
			v6:           h,
			extensions:   chain,
			v6FinalProto: finalProtocol,
			payload:      payload,
		}
		return pkt, nil

	default:
		return nil, ErrUnsupportedVersion
	}
}
