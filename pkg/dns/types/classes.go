package types

import "fmt"

// DNSClass represents a DNS class
type DNSClass uint16

// DNS class constants
const (
	CLASS_IN DNSClass = 1 // Internet
	CLASS_CH DNSClass = 3 // the CHAOS class
	CLASS_HS DNSClass = 4 // Hesiod
)

// String returns the string representation of a DNS class
func (c DNSClass) String() string {
	switch c {
	case CLASS_IN:
		return "IN"
	case CLASS_CH:
		return "CH"
	case CLASS_HS:
		return "HS"
	default:
		return fmt.Sprintf("CLASS%d", uint16(c))
	}
}
