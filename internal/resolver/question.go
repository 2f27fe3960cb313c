package resolver

import (
	"fmt"
	"strings"

	"golang.org/x/net/idna"

	"github.com/dnslab/recursor/pkg/dns"
	"github.com/dnslab/recursor/pkg/dns/types"
)

// NewQuestion builds an INTERNET-class question from a human-entered
// name, mapping it through IDNA so unicode names query their punycode
// form.
func NewQuestion(name string, qtype types.DNSType) (dns.Question, error) {
	trimmed := strings.TrimSuffix(name, ".")
	if trimmed != "" {
		ascii, err := idna.Lookup.ToASCII(trimmed)
		if err != nil {
			return dns.Question{}, fmt.Errorf("invalid name %q: %w", name, err)
		}
		trimmed = ascii
	}

	parsed, err := dns.ParseName(trimmed)
	if err != nil {
		return dns.Question{}, err
	}
	return dns.Question{Name: parsed, Type: qtype, Class: types.CLASS_IN}, nil
}
