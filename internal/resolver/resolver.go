package resolver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dnslab/recursor/pkg/dns"
	"github.com/dnslab/recursor/pkg/dns/types"
)

// Resolver answers one DNS question with a complete message: answers,
// authorities, additionals and a response code. Resolution failures are
// not surfaced as Go errors; exhausted targets and loop bounds come back
// as SERVFAIL messages so the dispatcher can always answer the client.
type Resolver interface {
	Resolve(ctx context.Context, question dns.Question) (*dns.Message, error)

	// Close releases any resources held by the resolver.
	Close() error
}

// Config holds the knobs shared by the resolution strategies. It is
// passed in explicitly rather than read from process-wide state so tests
// can inject deterministic target lists.
type Config struct {
	// Timeout bounds a single query attempt against one server.
	Timeout time.Duration

	// Retries is how many extra sweeps over a server tier are made
	// after the first one failed entirely.
	Retries int

	// Upstreams are the recursors used in forwarding mode.
	Upstreams []string

	// RootServers seed iterative resolution.
	RootServers []string

	// MaxDepth bounds CNAME chains, referral steps and nested
	// lookups of unglued nameserver names.
	MaxDepth int
}

// DefaultConfig returns a configuration usable out of the box.
func DefaultConfig() *Config {
	return &Config{
		Timeout:     5 * time.Second,
		Retries:     2,
		Upstreams:   []string{"8.8.8.8:53", "8.8.4.4:53"},
		RootServers: RootServers(),
		MaxDepth:    10,
	}
}

// RootServers returns the well-known addresses of the thirteen root
// nameservers, a through m.
func RootServers() []string {
	return []string{
		"198.41.0.4:53",     // a.root-servers.net
		"199.9.14.201:53",   // b.root-servers.net
		"192.33.4.12:53",    // c.root-servers.net
		"199.7.91.13:53",    // d.root-servers.net
		"192.203.230.10:53", // e.root-servers.net
		"192.5.5.241:53",    // f.root-servers.net
		"192.112.36.4:53",   // g.root-servers.net
		"198.97.190.53:53",  // h.root-servers.net
		"192.36.148.17:53",  // i.root-servers.net
		"192.58.128.30:53",  // j.root-servers.net
		"193.0.14.129:53",   // k.root-servers.net
		"199.7.83.42:53",    // l.root-servers.net
		"202.12.27.33:53",   // m.root-servers.net
	}
}

var (
	// ErrCNAMELoop means a CNAME chain exceeded the configured depth.
	ErrCNAMELoop = errors.New("resolver: cname chain too long")

	// ErrReferralLoop means referral following exceeded the configured depth.
	ErrReferralLoop = errors.New("resolver: referral depth exceeded")

	// ErrAllServersFailed means every target in a tier was exhausted.
	ErrAllServersFailed = errors.New("resolver: all servers failed")
)

// ResolutionError reports a terminal resolution outcome as an error, for
// callers that need a Go error rather than a response message.
type ResolutionError struct {
	RCode types.DNSRCode
	Cause error
}

// Error implements the error interface.
func (e *ResolutionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("resolution failed with %s: %v", e.RCode, e.Cause)
	}
	return fmt.Sprintf("resolution failed with %s", e.RCode)
}

// Unwrap exposes the underlying cause to errors.Is and errors.As.
func (e *ResolutionError) Unwrap() error {
	return e.Cause
}

// failure synthesizes a terminal response carrying the given code and an
// empty answer section.
func failure(question dns.Question, rcode types.DNSRCode) *dns.Message {
	return &dns.Message{
		Header: dns.Header{
			Response: true,
			RCode:    rcode,
		},
		Questions: []dns.Question{question},
	}
}
