//go:build linux

package rawsock

import "errors"

// ErrTimeout is returned by Recv when SetRecvTimeout's deadline elapses
// with no datagram received.
var ErrTimeout = errors.New("rawsock: receive timed out")

// ErrInterrupted is returned by Recv when the underlying syscall was
// interrupted (EINTR); callers should simply retry.
var ErrInterrupted = errors.New("rawsock: receive interrupted")
