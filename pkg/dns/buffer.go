package dns

import "fmt"

// PacketSize is the maximum size of a DNS message carried over UDP
// without EDNS(0), per RFC 1035.
const PacketSize = 512

// maxPointerHops bounds compression pointer chains during name reads.
// Legitimate names need at most a couple of hops; anything deeper is a
// crafted loop.
const maxPointerHops = 5

// maxPointerOffset is the largest offset a 14-bit compression pointer
// can address.
const maxPointerOffset = 0x3FFF

// PacketBuffer is a fixed-size read/write cursor over a single DNS
// packet. Sequential reads and writes advance the position; absolute
// accessors do not. Reads are bounded by the number of bytes written
// (or received), writes by the packet capacity.
type PacketBuffer struct {
	buf   [PacketSize]byte
	pos   int
	limit int
}

// NewPacketBuffer returns an empty buffer for encoding a packet.
func NewPacketBuffer() *PacketBuffer {
	return &PacketBuffer{}
}

// NewPacketBufferFrom copies an incoming datagram into a fresh buffer
// positioned at the start.
func NewPacketBufferFrom(raw []byte) (*PacketBuffer, error) {
	if len(raw) > PacketSize {
		return nil, fmt.Errorf("%w: datagram of %d bytes exceeds %d", ErrBufferFull, len(raw), PacketSize)
	}
	pb := &PacketBuffer{limit: len(raw)}
	copy(pb.buf[:], raw)
	return pb, nil
}

// Pos returns the current cursor position.
func (p *PacketBuffer) Pos() int {
	return p.pos
}

// Len returns the number of valid bytes in the buffer.
func (p *PacketBuffer) Len() int {
	return p.limit
}

// Bytes returns the valid portion of the buffer. The slice aliases the
// buffer and is only valid until the next write.
func (p *PacketBuffer) Bytes() []byte {
	return p.buf[:p.limit]
}

// Seek moves the cursor to an absolute position.
func (p *PacketBuffer) Seek(pos int) error {
	if pos < 0 || pos > PacketSize {
		return fmt.Errorf("%w: seek to %d", ErrOutOfBounds, pos)
	}
	p.pos = pos
	return nil
}

// Step advances the cursor past n bytes of already-present data.
func (p *PacketBuffer) Step(n int) error {
	if p.pos+n > p.limit {
		return fmt.Errorf("%w: step of %d from %d", ErrOutOfBounds, n, p.pos)
	}
	p.pos += n
	return nil
}

// ReadUint8 reads one byte at the cursor and advances.
func (p *PacketBuffer) ReadUint8() (uint8, error) {
	if p.pos >= p.limit {
		return 0, fmt.Errorf("%w: read at %d", ErrOutOfBounds, p.pos)
	}
	v := p.buf[p.pos]
	p.pos++
	return v, nil
}

// ReadUint16 reads a big-endian 16-bit value at the cursor and advances.
func (p *PacketBuffer) ReadUint16() (uint16, error) {
	hi, err := p.ReadUint8()
	if err != nil {
		return 0, err
	}
	lo, err := p.ReadUint8()
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

// ReadUint32 reads a big-endian 32-bit value at the cursor and advances.
func (p *PacketBuffer) ReadUint32() (uint32, error) {
	hi, err := p.ReadUint16()
	if err != nil {
		return 0, err
	}
	lo, err := p.ReadUint16()
	if err != nil {
		return 0, err
	}
	return uint32(hi)<<16 | uint32(lo), nil
}

// GetUint8 reads one byte at an absolute position without moving the
// cursor.
func (p *PacketBuffer) GetUint8(pos int) (uint8, error) {
	if pos < 0 || pos >= p.limit {
		return 0, fmt.Errorf("%w: get at %d", ErrOutOfBounds, pos)
	}
	return p.buf[pos], nil
}

// GetRange returns n bytes starting at an absolute position without
// moving the cursor. The slice aliases the buffer.
func (p *PacketBuffer) GetRange(start, n int) ([]byte, error) {
	if start < 0 || n < 0 || start+n > p.limit {
		return nil, fmt.Errorf("%w: range [%d, %d)", ErrOutOfBounds, start, start+n)
	}
	return p.buf[start : start+n], nil
}

// WriteUint8 writes one byte at the cursor and advances.
func (p *PacketBuffer) WriteUint8(v uint8) error {
	if p.pos >= PacketSize {
		return fmt.Errorf("%w: write at %d", ErrBufferFull, p.pos)
	}
	p.buf[p.pos] = v
	p.pos++
	if p.pos > p.limit {
		p.limit = p.pos
	}
	return nil
}

// WriteUint16 writes a big-endian 16-bit value at the cursor and advances.
func (p *PacketBuffer) WriteUint16(v uint16) error {
	if err := p.WriteUint8(uint8(v >> 8)); err != nil {
		return err
	}
	return p.WriteUint8(uint8(v))
}

// WriteUint32 writes a big-endian 32-bit value at the cursor and advances.
func (p *PacketBuffer) WriteUint32(v uint32) error {
	if err := p.WriteUint16(uint16(v >> 16)); err != nil {
		return err
	}
	return p.WriteUint16(uint16(v))
}

// WriteBytes writes a byte slice at the cursor and advances.
func (p *PacketBuffer) WriteBytes(b []byte) error {
	if p.pos+len(b) > PacketSize {
		return fmt.Errorf("%w: write of %d bytes at %d", ErrBufferFull, len(b), p.pos)
	}
	copy(p.buf[p.pos:], b)
	p.pos += len(b)
	if p.pos > p.limit {
		p.limit = p.pos
	}
	return nil
}

// SetUint16 patches a big-endian 16-bit value at an absolute position
// without moving the cursor. Used to back-fill RDLENGTH once a
// record's payload has been written.
func (p *PacketBuffer) SetUint16(pos int, v uint16) error {
	if pos < 0 || pos+2 > p.limit {
		return fmt.Errorf("%w: set at %d", ErrOutOfBounds, pos)
	}
	p.buf[pos] = uint8(v >> 8)
	p.buf[pos+1] = uint8(v)
	return nil
}

// ReadName reads a label sequence at the cursor, eagerly resolving
// compression pointers into a fully materialized name. After the first
// pointer the cursor is left two bytes past it, so the net effect is as
// if the whole name had been present inline. Pointer chains longer than
// maxPointerHops fail with ErrMalformedName: packets come from the
// network and a pair of pointers referencing each other would otherwise
// loop forever.
func (p *PacketBuffer) ReadName() (DomainName, error) {
	var labels []string
	namePos := p.pos
	jumped := false
	hops := 0

	for {
		length, err := p.GetUint8(namePos)
		if err != nil {
			return DomainName{}, err
		}

		if length&0xC0 == 0xC0 {
			if hops >= maxPointerHops {
				return DomainName{}, fmt.Errorf("%w: more than %d compression hops", ErrMalformedName, maxPointerHops)
			}
			if !jumped {
				if err := p.Seek(namePos + 2); err != nil {
					return DomainName{}, err
				}
			}
			low, err := p.GetUint8(namePos + 1)
			if err != nil {
				return DomainName{}, err
			}
			namePos = int(uint16(length&0x3F)<<8 | uint16(low))
			jumped = true
			hops++
			continue
		}

		namePos++
		if length == 0 {
			break
		}

		raw, err := p.GetRange(namePos, int(length))
		if err != nil {
			return DomainName{}, err
		}
		labels = append(labels, string(raw))
		namePos += int(length)
	}

	if !jumped {
		if err := p.Seek(namePos); err != nil {
			return DomainName{}, err
		}
	}
	return DomainName{labels: labels}, nil
}

// WriteName writes a label sequence at the cursor, compressing against
// names already written into the same packet. For every label it first
// checks whether the remaining suffix was seen before: if so it emits a
// pointer, otherwise it records the suffix's offset and writes the
// label literally. The table is per-message; passing nil disables
// compression.
func (p *PacketBuffer) WriteName(name DomainName, table *CompressionMap) error {
	labels := name.labels
	for i := range labels {
		if table != nil {
			suffix := nameKey(labels[i:])
			if offset, ok := table.offsets[suffix]; ok {
				return p.WriteUint16(compressionPointerMask | uint16(offset))
			}
			if p.pos <= maxPointerOffset {
				table.offsets[suffix] = p.pos
			}
		}
		if err := p.writeLabel(labels[i]); err != nil {
			return err
		}
	}
	return p.WriteUint8(0)
}

func (p *PacketBuffer) writeLabel(label string) error {
	if len(label) == 0 || len(label) > maxLabelLength {
		return fmt.Errorf("%w: label of %d bytes", ErrMalformedName, len(label))
	}
	if err := p.WriteUint8(uint8(len(label))); err != nil {
		return err
	}
	return p.WriteBytes([]byte(label))
}

const compressionPointerMask = 0xC000 // top two bits set, 14-bit offset

// CompressionMap tracks where each name suffix was written within one
// packet so later occurrences can be replaced by pointers. Reset at the
// start of every encode.
type CompressionMap struct {
	offsets map[string]int
}

// NewCompressionMap returns an empty per-message compression table.
func NewCompressionMap() *CompressionMap {
	return &CompressionMap{offsets: make(map[string]int)}
}
