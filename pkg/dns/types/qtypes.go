package types

import "fmt"

// DNSType represents a DNS record type
type DNSType uint16

// DNS record type constants
const (
	TYPE_A     DNSType = 1  // a host address
	TYPE_NS    DNSType = 2  // an authoritative name server
	TYPE_CNAME DNSType = 5  // the canonical name for an alias
	TYPE_SOA   DNSType = 6  // marks the start of a zone of authority
	TYPE_PTR   DNSType = 12 // a domain name pointer
	TYPE_MX    DNSType = 15 // mail exchange
	TYPE_TXT   DNSType = 16 // text strings
	TYPE_AAAA  DNSType = 28 // IPv6 host address
	TYPE_OPT   DNSType = 41 // EDNS(0) pseudo record
)

// String returns the string representation of a DNS record type
func (t DNSType) String() string {
	switch t {
	case TYPE_A:
		return "A"
	case TYPE_NS:
		return "NS"
	case TYPE_CNAME:
		return "CNAME"
	case TYPE_SOA:
		return "SOA"
	case TYPE_PTR:
		return "PTR"
	case TYPE_MX:
		return "MX"
	case TYPE_TXT:
		return "TXT"
	case TYPE_AAAA:
		return "AAAA"
	case TYPE_OPT:
		return "OPT"
	default:
		return fmt.Sprintf("TYPE%d", uint16(t))
	}
}

// ParseType converts a textual record type such as "A" or "AAAA"
// into its numeric form.
func ParseType(s string) (DNSType, error) {
	for _, t := range []DNSType{TYPE_A, TYPE_NS, TYPE_CNAME, TYPE_SOA, TYPE_PTR, TYPE_MX, TYPE_TXT, TYPE_AAAA} {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown record type %q", s)
}
