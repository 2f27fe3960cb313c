package resolver

import (
	"context"
	"errors"

	"github.com/dnslab/recursor/pkg/dns"
	"github.com/dnslab/recursor/pkg/dns/types"
)

// ForwardResolver hands every question to a fixed set of upstream
// recursors and relays whatever they answer.
type ForwardResolver struct {
	config    *Config
	exchanger Exchanger
}

// NewForwardResolver creates a forwarding resolver. A nil exchanger
// selects the UDP transport with the configured per-attempt timeout.
func NewForwardResolver(config *Config, exchanger Exchanger) *ForwardResolver {
	if config == nil {
		config = DefaultConfig()
	}
	if exchanger == nil {
		exchanger = &UDPExchanger{Timeout: config.Timeout}
	}
	return &ForwardResolver{config: config, exchanger: exchanger}
}

// Resolve implements Resolver by querying each upstream in order until
// one replies. Exhausting every upstream degrades to SERVFAIL.
func (r *ForwardResolver) Resolve(ctx context.Context, question dns.Question) (*dns.Message, error) {
	reply, err := exchangeAny(ctx, r.exchanger, question, r.config.Upstreams, r.config.Retries)
	if err != nil {
		if errors.Is(err, ErrAllServersFailed) {
			return failure(question, types.RCODE_SERVER_FAILURE), nil
		}
		return nil, err
	}
	return reply, nil
}

// Close implements Resolver.
func (r *ForwardResolver) Close() error {
	return nil
}
