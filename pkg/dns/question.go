package dns

import (
	"fmt"

	"github.com/dnslab/recursor/pkg/dns/types"
)

// Question is a single entry of the question section.
type Question struct {
	Name  DomainName
	Type  types.DNSType
	Class types.DNSClass
}

func decodeQuestion(buf *PacketBuffer) (Question, error) {
	name, err := buf.ReadName()
	if err != nil {
		return Question{}, err
	}
	qtype, err := buf.ReadUint16()
	if err != nil {
		return Question{}, err
	}
	class, err := buf.ReadUint16()
	if err != nil {
		return Question{}, err
	}
	return Question{
		Name:  name,
		Type:  types.DNSType(qtype),
		Class: types.DNSClass(class),
	}, nil
}

func (q Question) encode(buf *PacketBuffer, table *CompressionMap) error {
	if err := buf.WriteName(q.Name, table); err != nil {
		return err
	}
	if err := buf.WriteUint16(uint16(q.Type)); err != nil {
		return err
	}
	return buf.WriteUint16(uint16(q.Class))
}

// String returns the question in dig-like form.
func (q Question) String() string {
	return fmt.Sprintf("%s %s %s", q.Name, q.Class, q.Type)
}
