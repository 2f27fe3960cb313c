package dns

import (
	"github.com/dnslab/recursor/pkg/dns/types"
)

// HeaderSize is the fixed size of a DNS message header.
const HeaderSize = 12

// Header is the fixed 12-byte message header with the flag word decoded
// into individual fields. The four counts describe the wire layout only:
// DecodeMessage checks them against what is actually present and Encode
// derives them from section lengths, so hand-set counts never reach the
// wire.
type Header struct {
	ID uint16

	Response           bool
	Opcode             types.DNSOpcode
	Authoritative      bool
	Truncated          bool
	RecursionDesired   bool
	RecursionAvailable bool
	Z                  uint8
	RCode              types.DNSRCode

	QuestionCount   uint16
	AnswerCount     uint16
	AuthorityCount  uint16
	AdditionalCount uint16
}

func decodeHeader(buf *PacketBuffer) (Header, error) {
	id, err := buf.ReadUint16()
	if err != nil {
		return Header{}, err
	}
	flags, err := buf.ReadUint16()
	if err != nil {
		return Header{}, err
	}

	h := Header{
		ID:                 id,
		Response:           flags&(1<<15) != 0,
		Opcode:             types.DNSOpcode(flags >> 11 & 0xF),
		Authoritative:      flags&(1<<10) != 0,
		Truncated:          flags&(1<<9) != 0,
		RecursionDesired:   flags&(1<<8) != 0,
		RecursionAvailable: flags&(1<<7) != 0,
		Z:                  uint8(flags >> 4 & 0x7),
		RCode:              types.DNSRCode(flags & 0xF),
	}

	if h.QuestionCount, err = buf.ReadUint16(); err != nil {
		return Header{}, err
	}
	if h.AnswerCount, err = buf.ReadUint16(); err != nil {
		return Header{}, err
	}
	if h.AuthorityCount, err = buf.ReadUint16(); err != nil {
		return Header{}, err
	}
	if h.AdditionalCount, err = buf.ReadUint16(); err != nil {
		return Header{}, err
	}
	return h, nil
}

func (h Header) encode(buf *PacketBuffer) error {
	if err := buf.WriteUint16(h.ID); err != nil {
		return err
	}
	if err := buf.WriteUint16(h.flagWord()); err != nil {
		return err
	}
	for _, count := range []uint16{h.QuestionCount, h.AnswerCount, h.AuthorityCount, h.AdditionalCount} {
		if err := buf.WriteUint16(count); err != nil {
			return err
		}
	}
	return nil
}

func (h Header) flagWord() uint16 {
	var flags uint16
	if h.Response {
		flags |= 1 << 15
	}
	flags |= uint16(h.Opcode&0xF) << 11
	if h.Authoritative {
		flags |= 1 << 10
	}
	if h.Truncated {
		flags |= 1 << 9
	}
	if h.RecursionDesired {
		flags |= 1 << 8
	}
	if h.RecursionAvailable {
		flags |= 1 << 7
	}
	flags |= uint16(h.Z&0x7) << 4
	flags |= uint16(h.RCode & 0xF)
	return flags
}
