package ipframe

import "fmt"

// Protocol is an IP protocol / IPv6 next-header number.
type Protocol uint8

// Protocol numbers relevant to this pipeline. Extension header types are
// the subset the IPv6 chain walker knows how to traverse; NoNxt marks a
// chain with no upper-layer payload at all.
const (
	ProtocolHopByHop    Protocol = 0
	ProtocolICMP        Protocol = 1
	ProtocolTCP         Protocol = 6
	ProtocolUDP         Protocol = 17
	ProtocolRouting     Protocol = 43
	ProtocolFragment    Protocol = 44
	ProtocolESP         Protocol = 50
	ProtocolAH          Protocol = 51
	ProtocolICMPv6      Protocol = 58
	ProtocolNoNxt       Protocol = 59
	ProtocolDestOptions Protocol = 60
	ProtocolMobility    Protocol = 135
)

func (p Protocol) String() string {
	switch p {
	case ProtocolHopByHop:
		return "HopByHop"
	case ProtocolICMP:
		return "ICMP"
	case ProtocolTCP:
		return "TCP"
	case ProtocolUDP:
		return "UDP"
	case ProtocolRouting:
		return "Routing"
	case ProtocolFragment:
		return "Fragment"
	case ProtocolESP:
		return "ESP"
	case ProtocolAH:
		return "AH"
	case ProtocolICMPv6:
		return "ICMPv6"
	case ProtocolNoNxt:
		return "NoNxt"
	case ProtocolDestOptions:
		return "DestOptions"
	case ProtocolMobility:
		return "Mobility"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(p))
	}
}

// isExtensionHeader reports whether p is one of the IPv6 extension
// header types the chain walker traverses.
func isExtensionHeader(p Protocol) bool {
	switch p {
	case ProtocolHopByHop, ProtocolRouting, ProtocolFragment,
		ProtocolESP, ProtocolAH, ProtocolDestOptions, ProtocolMobility:
		return true
	default:
		return false
	}
}
