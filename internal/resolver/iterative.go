package resolver

import (
	"context"
	"errors"
	"log"
	"net"

	"github.com/dnslab/recursor/pkg/dns"
	"github.com/dnslab/recursor/pkg/dns/types"
)

// IterativeResolver walks the delegation tree from the root servers,
// following referrals and CNAMEs until it reaches an authoritative
// answer. One resolution is a strictly sequential state machine; its
// only suspension points are the outbound round-trips.
type IterativeResolver struct {
	config    *Config
	exchanger Exchanger
}

// NewIterativeResolver creates an iterative resolver. A nil exchanger
// selects the UDP transport with the configured per-attempt timeout.
func NewIterativeResolver(config *Config, exchanger Exchanger) *IterativeResolver {
	if config == nil {
		config = DefaultConfig()
	}
	if exchanger == nil {
		exchanger = &UDPExchanger{Timeout: config.Timeout}
	}
	return &IterativeResolver{config: config, exchanger: exchanger}
}

// Resolve implements Resolver. Loop bounds and exhausted tiers degrade
// to SERVFAIL; only context cancellation propagates as an error.
func (r *IterativeResolver) Resolve(ctx context.Context, question dns.Question) (*dns.Message, error) {
	reply, err := r.resolve(ctx, question, 0)
	if err != nil {
		if errors.Is(err, ErrAllServersFailed) || errors.Is(err, ErrCNAMELoop) || errors.Is(err, ErrReferralLoop) {
			log.Printf("[resolver] %s: %v", question, err)
			return failure(question, types.RCODE_SERVER_FAILURE), nil
		}
		return nil, err
	}
	return reply, nil
}

// Close implements Resolver.
func (r *IterativeResolver) Close() error {
	return nil
}

// resolve is one nesting level of the engine; depth counts nested
// lookups of unglued nameserver names, step counts referral and CNAME
// transitions within this level. Both are bounded by MaxDepth so a
// malicious delegation chain terminates instead of recursing forever.
func (r *IterativeResolver) resolve(ctx context.Context, question dns.Question, depth int) (*dns.Message, error) {
	if depth > r.config.MaxDepth {
		return nil, ErrReferralLoop
	}

	servers := r.config.RootServers
	current := question
	var chain []dns.ResourceRecord // CNAME records crossed so far
	cnames := 0

	for step := 0; step <= r.config.MaxDepth; step++ {
		reply, err := exchangeAny(ctx, r.exchanger, current, servers, r.config.Retries)
		if err != nil {
			return nil, err
		}

		// Records matching the current name and type: done.
		if len(matchingAnswers(reply, current)) > 0 {
			return finish(reply, chain), nil
		}

		// Terminal codes propagate as-is, empty answer section included.
		if rcode := reply.Header.RCode; rcode == types.RCODE_NAME_ERROR || rcode == types.RCODE_SERVER_FAILURE {
			return finish(reply, chain), nil
		}

		// Alias: restart from the roots with the canonical name,
		// keeping the original query type.
		if target, rr, ok := cnameTarget(reply, current.Name); ok {
			cnames++
			if cnames > r.config.MaxDepth {
				return nil, ErrCNAMELoop
			}
			chain = append(chain, rr)
			current = dns.Question{Name: target, Type: question.Type, Class: question.Class}
			servers = r.config.RootServers
			continue
		}

		// Referral with glue: descend to the delegated server.
		if addr, ok := resolvedNS(reply, current.Name); ok {
			servers = []string{net.JoinHostPort(addr.String(), "53")}
			continue
		}

		// Referral without glue: resolve the nameserver's own address
		// first, then descend.
		if host, ok := unresolvedNS(reply, current.Name); ok {
			nested, err := r.resolve(ctx, dns.Question{Name: host, Type: types.TYPE_A, Class: types.CLASS_IN}, depth+1)
			if err != nil {
				return nil, err
			}
			if addr, ok := firstA(nested); ok {
				servers = []string{net.JoinHostPort(addr.String(), "53")}
				continue
			}
		}

		// Nothing to follow: hand back what the last server said.
		return finish(reply, chain), nil
	}
	return nil, ErrReferralLoop
}

// finish prepends the CNAME records crossed during resolution so the
// caller sees the full alias chain ahead of the final answers.
func finish(reply *dns.Message, chain []dns.ResourceRecord) *dns.Message {
	if len(chain) == 0 {
		return reply
	}
	merged := *reply
	merged.Answers = append(append([]dns.ResourceRecord{}, chain...), reply.Answers...)
	return &merged
}
