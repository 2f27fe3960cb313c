package types

import "fmt"

// DNSRCode represents a DNS response code
type DNSRCode uint16

// DNS response code constants
const (
	RCODE_NO_ERROR        DNSRCode = 0 // No error
	RCODE_FORMAT_ERROR    DNSRCode = 1 // Format error
	RCODE_SERVER_FAILURE  DNSRCode = 2 // Server failure
	RCODE_NAME_ERROR      DNSRCode = 3 // Name error (domain doesn't exist)
	RCODE_NOT_IMPLEMENTED DNSRCode = 4 // Not implemented
	RCODE_REFUSED         DNSRCode = 5 // Refused
)

// String returns the string representation of a DNS response code
func (r DNSRCode) String() string {
	switch r {
	case RCODE_NO_ERROR:
		return "NOERROR"
	case RCODE_FORMAT_ERROR:
		return "FORMERR"
	case RCODE_SERVER_FAILURE:
		return "SERVFAIL"
	case RCODE_NAME_ERROR:
		return "NXDOMAIN"
	case RCODE_NOT_IMPLEMENTED:
		return "NOTIMP"
	case RCODE_REFUSED:
		return "REFUSED"
	default:
		return fmt.Sprintf("RCODE%d", uint16(r))
	}
}
