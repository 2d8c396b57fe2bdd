//go:build linux

// Package rawsock owns a raw IPv4 socket bound to a configured address,
// filtered at the kernel to UDP-encapsulated datagrams. Each Recv
// yields one full IP datagram, header included.
package rawsock

import (
	"fmt"
	"net"
	"time"

	"golang.org/x/sys/unix"
)

// Socket is a single raw AF_INET/SOCK_RAW/IPPROTO_UDP socket. Multiple
// goroutines may call Recv on the same Socket concurrently: the kernel
// serializes dequeues from the shared receive queue, so each call gets
// a distinct datagram.
type Socket struct {
	fd int
}

// Open creates, binds and returns a raw IPv4 socket for bindAddr
// ("0.0.0.0" for any address). Requires CAP_NET_RAW.
func Open(bindAddr string) (*Socket, error) {
	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_RAW, unix.IPPROTO_UDP)
	if err != nil {
		return nil, fmt.Errorf("rawsock: socket: %w", err)
	}

	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("rawsock: setsockopt SO_REUSEADDR: %w", err)
	}

	ip := net.ParseIP(bindAddr)
	if ip == nil {
		unix.Close(fd)
		return nil, fmt.Errorf("rawsock: invalid bind address %q", bindAddr)
	}
	ip4 := ip.To4()
	if ip4 == nil {
		unix.Close(fd)
		return nil, fmt.Errorf("rawsock: bind address %q is not IPv4", bindAddr)
	}

	sa := &unix.SockaddrInet4{}
	copy(sa.Addr[:], ip4)
	if err := unix.Bind(fd, sa); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("rawsock: bind %s: %w", bindAddr, err)
	}

	return &Socket{fd: fd}, nil
}

// SetRecvTimeout sets SO_RCVTIMEO so Recv returns ErrTimeout
// periodically, letting callers poll a cancellation signal between
// attempts instead of blocking indefinitely.
func (s *Socket) SetRecvTimeout(d time.Duration) error {
	tv := unix.NsecToTimeval(d.Nanoseconds())
	if err := unix.SetsockoptTimeval(s.fd, unix.SOL_SOCKET, unix.SO_RCVTIMEO, &tv); err != nil {
		return fmt.Errorf("rawsock: setsockopt SO_RCVTIMEO: %w", err)
	}
	return nil
}

// Recv reads one datagram into buf, returning the number of bytes
// written and the source IPv4 address. ErrTimeout is returned when
// SetRecvTimeout's deadline elapses with nothing received.
func (s *Socket) Recv(buf []byte) (int, net.IP, error) {
	n, from, err := unix.Recvfrom(s.fd, buf, 0)
	if err != nil {
		if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
			return 0, nil, ErrTimeout
		}
		if err == unix.EINTR {
			return 0, nil, ErrInterrupted
		}
		return 0, nil, fmt.Errorf("rawsock: recvfrom: %w", err)
	}

	sa4, ok := from.(*unix.SockaddrInet4)
	if !ok {
		return n, nil, fmt.Errorf("rawsock: unexpected sockaddr type %T", from)
	}
	return n, net.IP(sa4.Addr[:]), nil
}

// Close releases the socket.
func (s *Socket) Close() error {
	return unix.Close(s.fd)
}
