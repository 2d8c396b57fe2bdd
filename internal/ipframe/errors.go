package ipframe

import "errors"

// Sentinel errors returned by Parse. Wrap with fmt.Errorf("...: %w", err)
// at call sites that need to attach context; compare with errors.Is.
var (
	// ErrUnsupportedVersion is returned when the high nibble of byte 0
	// is neither 4 nor 6.
	ErrUnsupportedVersion = errors.New("ipframe: unsupported ip version")

	// ErrMalformedHeader is returned when a header field is internally
	// inconsistent (IHL too small, input shorter than the declared
	// header length, and similar).
	ErrMalformedHeader = errors.New("ipframe: malformed header")

	// ErrTruncatedPayload is returned for zero-length input. A declared
	// payload extent that runs past the bytes actually present is not an
	// error: the payload is clamped to the available bytes.
	ErrTruncatedPayload = errors.New("ipframe: truncated payload")
)
