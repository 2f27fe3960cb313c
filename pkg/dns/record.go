package dns

import (
	"fmt"
	"net"

	"github.com/dnslab/recursor/pkg/dns/types"
)

// RData is the type-specific payload of a resource record. Implementations
// cover the types the resolver understands; everything else round-trips
// through UnknownData untouched.
type RData interface {
	encode(buf *PacketBuffer, table *CompressionMap) error
}

// AData is an IPv4 host address.
type AData struct {
	Addr net.IP
}

func (d AData) encode(buf *PacketBuffer, _ *CompressionMap) error {
	ip := d.Addr.To4()
	if ip == nil {
		return fmt.Errorf("%w: A record with non-IPv4 address %v", ErrMalformedPacket, d.Addr)
	}
	return buf.WriteBytes(ip)
}

// AAAAData is an IPv6 host address.
type AAAAData struct {
	Addr net.IP
}

func (d AAAAData) encode(buf *PacketBuffer, _ *CompressionMap) error {
	ip := d.Addr.To16()
	if ip == nil {
		return fmt.Errorf("%w: AAAA record with invalid address %v", ErrMalformedPacket, d.Addr)
	}
	return buf.WriteBytes(ip)
}

// NSData names an authoritative server for the owner's zone.
type NSData struct {
	Host DomainName
}

func (d NSData) encode(buf *PacketBuffer, table *CompressionMap) error {
	return buf.WriteName(d.Host, table)
}

// CNAMEData is the canonical name of an alias.
type CNAMEData struct {
	Target DomainName
}

func (d CNAMEData) encode(buf *PacketBuffer, table *CompressionMap) error {
	return buf.WriteName(d.Target, table)
}

// MXData is a mail exchange with its preference.
type MXData struct {
	Preference uint16
	Exchange   DomainName
}

func (d MXData) encode(buf *PacketBuffer, table *CompressionMap) error {
	if err := buf.WriteUint16(d.Preference); err != nil {
		return err
	}
	return buf.WriteName(d.Exchange, table)
}

// UnknownData carries the raw RDATA of a record type the codec does not
// interpret. Kept verbatim so unknown types survive a decode/encode
// round-trip.
type UnknownData struct {
	Raw []byte
}

func (d UnknownData) encode(buf *PacketBuffer, _ *CompressionMap) error {
	return buf.WriteBytes(d.Raw)
}

// ResourceRecord is one entry of the answer, authority or additional
// section.
type ResourceRecord struct {
	Name  DomainName
	Type  types.DNSType
	Class types.DNSClass
	TTL   uint32
	Data  RData
}

func decodeRecord(buf *PacketBuffer) (ResourceRecord, error) {
	name, err := buf.ReadName()
	if err != nil {
		return ResourceRecord{}, err
	}

	rtype, err := buf.ReadUint16()
	if err != nil {
		return ResourceRecord{}, err
	}
	class, err := buf.ReadUint16()
	if err != nil {
		return ResourceRecord{}, err
	}
	ttl, err := buf.ReadUint32()
	if err != nil {
		return ResourceRecord{}, err
	}
	rdLength, err := buf.ReadUint16()
	if err != nil {
		return ResourceRecord{}, err
	}

	rr := ResourceRecord{
		Name:  name,
		Type:  types.DNSType(rtype),
		Class: types.DNSClass(class),
		TTL:   ttl,
	}

	rdataEnd := buf.Pos() + int(rdLength)
	if rr.Data, err = decodeRData(buf, rr.Type, int(rdLength)); err != nil {
		return ResourceRecord{}, err
	}

	// Names inside RDATA may be compressed; the cursor then lands short
	// of the declared length. RDLENGTH is authoritative for the record's
	// extent, so realign.
	if buf.Pos() != rdataEnd {
		if rdataEnd > buf.Len() {
			return ResourceRecord{}, fmt.Errorf("%w: RDLENGTH %d overruns packet", ErrOutOfBounds, rdLength)
		}
		if err := buf.Seek(rdataEnd); err != nil {
			return ResourceRecord{}, err
		}
	}
	return rr, nil
}

func decodeRData(buf *PacketBuffer, rtype types.DNSType, rdLength int) (RData, error) {
	switch rtype {
	case types.TYPE_A:
		if rdLength != net.IPv4len {
			return nil, fmt.Errorf("%w: A record with RDLENGTH %d", ErrMalformedPacket, rdLength)
		}
		raw, err := buf.GetRange(buf.Pos(), net.IPv4len)
		if err != nil {
			return nil, err
		}
		addr := make(net.IP, net.IPv4len)
		copy(addr, raw)
		return AData{Addr: addr}, buf.Step(net.IPv4len)

	case types.TYPE_AAAA:
		if rdLength != net.IPv6len {
			return nil, fmt.Errorf("%w: AAAA record with RDLENGTH %d", ErrMalformedPacket, rdLength)
		}
		raw, err := buf.GetRange(buf.Pos(), net.IPv6len)
		if err != nil {
			return nil, err
		}
		addr := make(net.IP, net.IPv6len)
		copy(addr, raw)
		return AAAAData{Addr: addr}, buf.Step(net.IPv6len)

	case types.TYPE_NS:
		host, err := buf.ReadName()
		if err != nil {
			return nil, err
		}
		return NSData{Host: host}, nil

	case types.TYPE_CNAME:
		target, err := buf.ReadName()
		if err != nil {
			return nil, err
		}
		return CNAMEData{Target: target}, nil

	case types.TYPE_MX:
		preference, err := buf.ReadUint16()
		if err != nil {
			return nil, err
		}
		exchange, err := buf.ReadName()
		if err != nil {
			return nil, err
		}
		return MXData{Preference: preference, Exchange: exchange}, nil

	default:
		raw, err := buf.GetRange(buf.Pos(), rdLength)
		if err != nil {
			return nil, err
		}
		data := make([]byte, rdLength)
		copy(data, raw)
		return UnknownData{Raw: data}, buf.Step(rdLength)
	}
}

func (rr ResourceRecord) encode(buf *PacketBuffer, table *CompressionMap) error {
	if err := buf.WriteName(rr.Name, table); err != nil {
		return err
	}
	if err := buf.WriteUint16(uint16(rr.Type)); err != nil {
		return err
	}
	if err := buf.WriteUint16(uint16(rr.Class)); err != nil {
		return err
	}
	if err := buf.WriteUint32(rr.TTL); err != nil {
		return err
	}

	// Placeholder RDLENGTH, patched once the payload size is known.
	lengthPos := buf.Pos()
	if err := buf.WriteUint16(0); err != nil {
		return err
	}
	payloadStart := buf.Pos()
	if err := rr.Data.encode(buf, table); err != nil {
		return err
	}
	return buf.SetUint16(lengthPos, uint16(buf.Pos()-payloadStart))
}

// String returns the record in zone-file-like form.
func (rr ResourceRecord) String() string {
	value := ""
	switch data := rr.Data.(type) {
	case AData:
		value = data.Addr.String()
	case AAAAData:
		value = data.Addr.String()
	case NSData:
		value = data.Host.String()
	case CNAMEData:
		value = data.Target.String()
	case MXData:
		value = fmt.Sprintf("%d %s", data.Preference, data.Exchange)
	case UnknownData:
		value = fmt.Sprintf("\\# %d", len(data.Raw))
	}
	return fmt.Sprintf("%s %d %s %s %s", rr.Name, rr.TTL, rr.Class, rr.Type, value)
}
