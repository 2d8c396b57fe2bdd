package ipframe

import (
	"errors"
	"testing"
	"time"
)

// buildIPv4 constructs a minimal IPv4 header (no options) followed by body.
func buildIPv4(t *testing.T, proto Protocol, fragOffset uint16, body []byte) []byte {
	t.Helper()
	total := 20 + len(body)
	pkt := make([]byte, total)
	pkt[0] = 0x45 // version 4, IHL 5
	pkt[1] = 0
	pkt[2] = byte(total >> 8)
	pkt[3] = byte(total)
	pkt[4], pkt[5] = 0, 1 // identification
	offsetField := fragOffset & 0x1FFF
	pkt[6] = byte(offsetField >> 8)
	pkt[7] = byte(offsetField)
	pkt[8] = 64 // TTL
	pkt[9] = byte(proto)
	pkt[10], pkt[11] = 0, 0 // checksum (unchecked by parser)
	copy(pkt[12:16], []byte{192, 168, 1, 10})
	copy(pkt[16:20], []byte{192, 168, 1, 20})
	copy(pkt[20:], body)
	return pkt
}

func TestParseIPv4(t *testing.T) {
	body := []byte("hello-udp-payload")
	pkt := buildIPv4(t, ProtocolUDP, 0, body)

	p, err := Parse(pkt, time.Now(), true)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !p.IsV4() {
		t.Fatalf("IsV4() = false, want true")
	}
	if p.Protocol() != ProtocolUDP {
		t.Errorf("Protocol() = %v, want UDP", p.Protocol())
	}
	if string(p.Payload()) != string(body) {
		t.Errorf("Payload() = %q, want %q", p.Payload(), body)
	}
	if p.IsFragment() {
		t.Errorf("IsFragment() = true, want false")
	}
}

func TestParseIPv4Fragment(t *testing.T) {
	pkt := buildIPv4(t, ProtocolUDP, 10, []byte("frag"))
	p, err := Parse(pkt, time.Now(), true)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !p.IsFragment() {
		t.Errorf("IsFragment() = false, want true")
	}
}

func TestParseIPv4MalformedIHL(t *testing.T) {
	pkt := buildIPv4(t, ProtocolUDP, 0, []byte("x"))
	pkt[0] = 0x43 // IHL = 3 -> header_bytes = 12 < 20
	if _, err := Parse(pkt, time.Now(), true); !errors.Is(err, ErrMalformedHeader) {
		t.Errorf("Parse() error = %v, want ErrMalformedHeader", err)
	}
}

func TestParseUnsupportedVersion(t *testing.T) {
	pkt := make([]byte, 20)
	pkt[0] = 0x55 // version 5
	if _, err := Parse(pkt, time.Now(), true); !errors.Is(err, ErrUnsupportedVersion) {
		t.Errorf("Parse() error = %v, want ErrUnsupportedVersion", err)
	}
}

// buildIPv6 constructs a fixed IPv6 header with an optional single
// extension header before the final next-header / payload.
func buildIPv6(body []byte, nextHeader Protocol, ext []byte, extType Protocol) []byte {
	total := 40 + len(ext) + len(body)
	pkt := make([]byte, total)
	pkt[0] = 0x60 // version 6
	pkt[1] = 0
	pkt[2], pkt[3] = 0, 0
	payloadLen := len(ext) + len(body)
	pkt[4] = byte(payloadLen >> 8)
	pkt[5] = byte(payloadLen)
	if len(ext) > 0 {
		pkt[6] = byte(extType)
	} else {
		pkt[6] = byte(nextHeader)
	}
	pkt[7] = 64 // hop limit
	copy(pkt[8:24], []byte{0x20, 0x01, 0x0d, 0xb8, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 1})
	copy(pkt[24:40], []byte{0x20, 0x01, 0x0d, 0xb8, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 2})
	copy(pkt[40:], ext)
	copy(pkt[40+len(ext):], body)
	return pkt
}

func TestParseIPv6NoExtensions(t *testing.T) {
	body := []byte("udp-body")
	pkt := buildIPv6(body, ProtocolUDP, nil, 0)

	p, err := Parse(pkt, time.Now(), true)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !p.IsV6() {
		t.Fatalf("IsV6() = false, want true")
	}
	if p.Protocol() != ProtocolUDP {
		t.Errorf("Protocol() = %v, want UDP", p.Protocol())
	}
	if p.HasExtensionChain() {
		t.Errorf("HasExtensionChain() = true, want false")
	}
	if string(p.Payload()) != string(body) {
		t.Errorf("Payload() = %q, want %q", p.Payload(), body)
	}
}

func TestParseIPv6HopByHopThenUDP(t *testing.T) {
	// Hop-by-Hop: next-header=UDP, hdr-ext-len=0 -> 8 bytes total.
	ext := make([]byte, 8)
	ext[0] = byte(ProtocolUDP)
	ext[1] = 0

	body := []byte("<0>X")
	pkt := buildIPv6(body, ProtocolUDP, ext, ProtocolHopByHop)

	p, err := Parse(pkt, time.Now(), true)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !p.HasExtensionChain() {
		t.Errorf("HasExtensionChain() = false, want true")
	}
	if p.Protocol() != ProtocolUDP {
		t.Errorf("Protocol() = %v, want UDP", p.Protocol())
	}
	if string(p.Payload()) != string(body) {
		t.Errorf("Payload() = %q, want %q", p.Payload(), body)
	}
}

func TestParseIPv6FragmentExtension(t *testing.T) {
	// Fragment header is a fixed 8 bytes regardless of the length field.
	ext := make([]byte, 8)
	ext[0] = byte(ProtocolUDP)

	pkt := buildIPv6([]byte("payload"), ProtocolUDP, ext, ProtocolFragment)
	p, err := Parse(pkt, time.Now(), true)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !p.HasExtensionChain() {
		t.Errorf("HasExtensionChain() = false, want true")
	}
}

func TestParseIPv6TooShort(t *testing.T) {
	pkt := make([]byte, 39)
	pkt[0] = 0x60
	if _, err := Parse(pkt, time.Now(), true); !errors.Is(err, ErrMalformedHeader) {
		t.Errorf("Parse() error = %v, want ErrMalformedHeader", err)
	}
}
