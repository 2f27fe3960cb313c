package dns

import "errors"

// Errors produced by the packet buffer and the message codec. Buffer-level
// failures (ErrOutOfBounds, ErrBufferFull) are wrapped into
// ErrMalformedPacket at the message boundary; ErrMalformedName is kept
// distinct so the dispatcher can answer FORMERR instead of dropping.
var (
	ErrOutOfBounds     = errors.New("dns: read past end of packet buffer")
	ErrBufferFull      = errors.New("dns: packet buffer is full")
	ErrMalformedName   = errors.New("dns: malformed domain name")
	ErrMalformedPacket = errors.New("dns: malformed packet")
)
