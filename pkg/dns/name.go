package dns

import (
	"fmt"
	"strings"
)

const (
	// maxLabelLength is the longest single label allowed by RFC 1035.
	maxLabelLength = 63
	// maxNameLength is the longest encoded name, length bytes and the
	// terminating zero included.
	maxNameLength = 255
)

// DomainName is an ordered sequence of owned labels. Decoding resolves
// compression pointers eagerly, so a DomainName never references the
// buffer it was read from. Label case is preserved for echo-back;
// comparisons are case-insensitive.
type DomainName struct {
	labels []string
}

// ParseName parses a dotted name such as "www.example.com". A trailing
// dot is accepted; "" and "." denote the root.
func ParseName(s string) (DomainName, error) {
	s = strings.TrimSuffix(s, ".")
	if s == "" {
		return DomainName{}, nil
	}

	labels := strings.Split(s, ".")
	encodedLen := 1 // terminating zero byte
	for _, label := range labels {
		if len(label) == 0 || len(label) > maxLabelLength {
			return DomainName{}, fmt.Errorf("%w: label %q in %q", ErrMalformedName, label, s)
		}
		encodedLen += len(label) + 1
	}
	if encodedLen > maxNameLength {
		return DomainName{}, fmt.Errorf("%w: name %q exceeds %d bytes", ErrMalformedName, s, maxNameLength)
	}
	return DomainName{labels: labels}, nil
}

// Labels returns a copy of the name's labels.
func (d DomainName) Labels() []string {
	out := make([]string, len(d.labels))
	copy(out, d.labels)
	return out
}

// IsRoot reports whether the name is the DNS root.
func (d DomainName) IsRoot() bool {
	return len(d.labels) == 0
}

// String returns the dotted representation, "." for the root.
func (d DomainName) String() string {
	if len(d.labels) == 0 {
		return "."
	}
	return strings.Join(d.labels, ".")
}

// Equal compares two names label by label, ignoring case.
func (d DomainName) Equal(other DomainName) bool {
	if len(d.labels) != len(other.labels) {
		return false
	}
	for i := range d.labels {
		if !strings.EqualFold(d.labels[i], other.labels[i]) {
			return false
		}
	}
	return true
}

// HasSuffix reports whether the name lies within the given zone, i.e.
// the zone's labels are a trailing match. Every name lies within the
// root zone.
func (d DomainName) HasSuffix(zone DomainName) bool {
	if len(zone.labels) > len(d.labels) {
		return false
	}
	offset := len(d.labels) - len(zone.labels)
	for i := range zone.labels {
		if !strings.EqualFold(d.labels[offset+i], zone.labels[i]) {
			return false
		}
	}
	return true
}

// nameKey is the case-folded lookup key used by the compression table.
func nameKey(labels []string) string {
	return strings.ToLower(strings.Join(labels, "."))
}
