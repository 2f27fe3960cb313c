package resolver

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"time"

	mdns "github.com/miekg/dns"

	"github.com/dnslab/recursor/pkg/dns"
)

// Exchanger performs one blocking query round-trip against a single
// server. It is the only outbound primitive the resolvers need, which
// keeps the engines testable with a scripted implementation.
type Exchanger interface {
	Exchange(ctx context.Context, addr string, packet []byte) ([]byte, error)
}

// UDPExchanger sends each query from a fresh ephemeral UDP socket with a
// per-attempt deadline. Cancellation is implicit via the deadline; a
// context deadline tightens it further.
type UDPExchanger struct {
	Timeout time.Duration
}

// Exchange implements Exchanger.
func (e *UDPExchanger) Exchange(ctx context.Context, addr string, packet []byte) ([]byte, error) {
	dialer := net.Dialer{Timeout: e.Timeout}
	conn, err := dialer.DialContext(ctx, "udp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", addr, err)
	}
	defer conn.Close()

	deadline := time.Now().Add(e.Timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	if err := conn.SetDeadline(deadline); err != nil {
		return nil, fmt.Errorf("failed to set deadline: %w", err)
	}

	if _, err := conn.Write(packet); err != nil {
		return nil, fmt.Errorf("failed to send query to %s: %w", addr, err)
	}

	reply := make([]byte, dns.PacketSize)
	n, err := conn.Read(reply)
	if err != nil {
		return nil, fmt.Errorf("failed to receive reply from %s: %w", addr, err)
	}
	return reply[:n], nil
}

// exchangeQuestion packs a fresh query for the question, with a new
// random transaction id, and parses the reply. A reply that fails to
// parse or echoes the wrong id counts as a failed attempt at that
// server, not a fatal resolution error.
func exchangeQuestion(ctx context.Context, exchanger Exchanger, addr string, question dns.Question) (*dns.Message, error) {
	query := &dns.Message{
		Header: dns.Header{
			ID:               mdns.Id(),
			RecursionDesired: true,
		},
		Questions: []dns.Question{question},
	}
	packet, err := query.Pack()
	if err != nil {
		return nil, fmt.Errorf("failed to encode query: %w", err)
	}

	rawReply, err := exchanger.Exchange(ctx, addr, packet)
	if err != nil {
		return nil, err
	}

	reply, err := dns.ParseMessage(rawReply)
	if err != nil {
		return nil, fmt.Errorf("bad reply from %s: %w", addr, err)
	}
	if reply.Header.ID != query.Header.ID {
		return nil, fmt.Errorf("transaction id mismatch from %s", addr)
	}
	return reply, nil
}

// exchangeAny tries every server in the tier in order, sweeping the list
// again up to retries times, and returns the first usable reply. Only
// when the whole tier is exhausted does it give up.
func exchangeAny(ctx context.Context, exchanger Exchanger, question dns.Question, servers []string, retries int) (*dns.Message, error) {
	var lastErr error
	for attempt := 0; attempt <= retries; attempt++ {
		for _, addr := range servers {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			reply, err := exchangeQuestion(ctx, exchanger, addr, question)
			if err != nil {
				log.Printf("[resolver] query %s against %s failed: %v", question, addr, err)
				lastErr = err
				continue
			}
			return reply, nil
		}
	}
	if lastErr == nil {
		lastErr = errors.New("no servers configured")
	}
	return nil, fmt.Errorf("%w: %v", ErrAllServersFailed, lastErr)
}
