package dns

import (
	"errors"
	"fmt"
)

// Message is a full DNS message: header plus the four ordered sections.
// It owns all of its questions and records; the packet buffer used to
// decode it is never retained.
type Message struct {
	Header      Header
	Questions   []Question
	Answers     []ResourceRecord
	Authorities []ResourceRecord
	Additionals []ResourceRecord
}

// DecodeMessage reads a whole message at the buffer's cursor. The
// declared section counts drive the parse; counts pointing past the end
// of the packet fail with ErrMalformedPacket, corrupt names with
// ErrMalformedName. Record types the codec does not know are preserved
// as opaque RDATA rather than aborting the decode.
func DecodeMessage(buf *PacketBuffer) (*Message, error) {
	header, err := decodeHeader(buf)
	if err != nil {
		return nil, malformed(err)
	}

	msg := &Message{Header: header}
	for range header.QuestionCount {
		question, err := decodeQuestion(buf)
		if err != nil {
			return nil, malformed(err)
		}
		msg.Questions = append(msg.Questions, question)
	}

	if msg.Answers, err = decodeSection(buf, header.AnswerCount); err != nil {
		return nil, err
	}
	if msg.Authorities, err = decodeSection(buf, header.AuthorityCount); err != nil {
		return nil, err
	}
	if msg.Additionals, err = decodeSection(buf, header.AdditionalCount); err != nil {
		return nil, err
	}
	return msg, nil
}

func decodeSection(buf *PacketBuffer, count uint16) ([]ResourceRecord, error) {
	var records []ResourceRecord
	for range count {
		rr, err := decodeRecord(buf)
		if err != nil {
			return nil, malformed(err)
		}
		records = append(records, rr)
	}
	return records, nil
}

// malformed maps buffer-level failures to ErrMalformedPacket while
// keeping ErrMalformedName distinct for the dispatcher.
func malformed(err error) error {
	if errors.Is(err, ErrMalformedName) || errors.Is(err, ErrMalformedPacket) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrMalformedPacket, err)
}

// Encode writes the message at the buffer's cursor, deriving the header
// counts from the actual section lengths and compressing names against a
// fresh per-message table. Flag bits and the response code are written
// verbatim; the codec applies no protocol policy.
func (m *Message) Encode(buf *PacketBuffer) error {
	header := m.Header
	header.QuestionCount = uint16(len(m.Questions))
	header.AnswerCount = uint16(len(m.Answers))
	header.AuthorityCount = uint16(len(m.Authorities))
	header.AdditionalCount = uint16(len(m.Additionals))

	if err := header.encode(buf); err != nil {
		return err
	}

	table := NewCompressionMap()
	for _, question := range m.Questions {
		if err := question.encode(buf, table); err != nil {
			return err
		}
	}
	for _, section := range [][]ResourceRecord{m.Answers, m.Authorities, m.Additionals} {
		for _, rr := range section {
			if err := rr.encode(buf, table); err != nil {
				return err
			}
		}
	}
	return nil
}

// Pack encodes the message into a fresh buffer and returns the raw
// datagram bytes.
func (m *Message) Pack() ([]byte, error) {
	buf := NewPacketBuffer()
	if err := m.Encode(buf); err != nil {
		return nil, err
	}
	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out, nil
}

// ParseMessage decodes a raw datagram into a message.
func ParseMessage(raw []byte) (*Message, error) {
	buf, err := NewPacketBufferFrom(raw)
	if err != nil {
		return nil, malformed(err)
	}
	return DecodeMessage(buf)
}
