package server

import (
	"context"
	"fmt"
	"log"

	"github.com/dnslab/recursor/internal/resolver"
	"github.com/dnslab/recursor/pkg/dns"
	"github.com/dnslab/recursor/pkg/dns/types"
)

// Handler turns one raw datagram into one raw reply: decode, resolve,
// encode. It is the only entry point the core exposes to the listen
// loop, and it never returns a reply-building failure to the client —
// the worst outcomes are FORMERR, SERVFAIL or a dropped datagram.
type Handler struct {
	resolver resolver.Resolver
}

// NewHandler creates a handler backed by the given resolver.
func NewHandler(r resolver.Resolver) *Handler {
	return &Handler{resolver: r}
}

// HandleDatagram processes one client query. A datagram too short to
// carry a transaction id is dropped by returning an error; any other
// malformed query is answered with FORMERR.
func (h *Handler) HandleDatagram(ctx context.Context, raw []byte) ([]byte, error) {
	request, err := dns.ParseMessage(raw)
	if err != nil {
		if len(raw) < dns.HeaderSize {
			return nil, fmt.Errorf("dropping undecodable datagram: %w", err)
		}
		id := uint16(raw[0])<<8 | uint16(raw[1])
		log.Printf("Malformed query %#04x: %v", id, err)
		return formatError(id).Pack()
	}

	response := &dns.Message{
		Header: dns.Header{
			ID:                 request.Header.ID,
			Response:           true,
			Opcode:             request.Header.Opcode,
			RecursionDesired:   request.Header.RecursionDesired,
			RecursionAvailable: true,
		},
	}

	if len(request.Questions) == 0 {
		response.Header.RCode = types.RCODE_FORMAT_ERROR
		return response.Pack()
	}

	question := request.Questions[0]
	response.Questions = []dns.Question{question}

	result, err := h.resolver.Resolve(ctx, question)
	if err != nil {
		log.Printf("Resolution of %s failed: %v", question, err)
		response.Header.RCode = types.RCODE_SERVER_FAILURE
		return response.Pack()
	}

	response.Header.RCode = result.Header.RCode
	response.Answers = result.Answers
	response.Authorities = result.Authorities
	response.Additionals = result.Additionals

	packet, err := response.Pack()
	if err != nil {
		// The assembled response does not fit one datagram and TCP
		// fallback is out of scope. Strip the records and set TC so
		// the client knows the answer was cut short.
		log.Printf("Response to %s overflows a datagram: %v", question, err)
		response.Answers = nil
		response.Authorities = nil
		response.Additionals = nil
		response.Header.Truncated = true
		return response.Pack()
	}
	return packet, nil
}

func formatError(id uint16) *dns.Message {
	return &dns.Message{
		Header: dns.Header{
			ID:       id,
			Response: true,
			RCode:    types.RCODE_FORMAT_ERROR,
		},
	}
}
