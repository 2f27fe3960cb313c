package resolver

import (
	"net"

	"github.com/dnslab/recursor/pkg/dns"
)

// matchingAnswers returns the answer records whose name and type match
// the question.
func matchingAnswers(msg *dns.Message, question dns.Question) []dns.ResourceRecord {
	var out []dns.ResourceRecord
	for _, rr := range msg.Answers {
		if rr.Type == question.Type && rr.Name.Equal(question.Name) {
			out = append(out, rr)
		}
	}
	return out
}

// cnameTarget returns the alias target if the answer section holds a
// CNAME for the given name.
func cnameTarget(msg *dns.Message, name dns.DomainName) (dns.DomainName, dns.ResourceRecord, bool) {
	for _, rr := range msg.Answers {
		if data, ok := rr.Data.(dns.CNAMEData); ok && rr.Name.Equal(name) {
			return data.Target, rr, true
		}
	}
	return dns.DomainName{}, dns.ResourceRecord{}, false
}

// resolvedNS picks a referral nameserver that came with IPv4 glue. Only
// NS records whose zone actually covers the queried name are considered,
// and the first glued IPv4 address in authority order wins.
func resolvedNS(msg *dns.Message, qname dns.DomainName) (net.IP, bool) {
	for _, auth := range msg.Authorities {
		ns, ok := auth.Data.(dns.NSData)
		if !ok || !qname.HasSuffix(auth.Name) {
			continue
		}
		for _, extra := range msg.Additionals {
			if a, ok := extra.Data.(dns.AData); ok && extra.Name.Equal(ns.Host) {
				return a.Addr, true
			}
		}
	}
	return nil, false
}

// unresolvedNS returns the first referral nameserver covering the
// queried name, glued or not. Used when resolvedNS found no glue.
func unresolvedNS(msg *dns.Message, qname dns.DomainName) (dns.DomainName, bool) {
	for _, auth := range msg.Authorities {
		ns, ok := auth.Data.(dns.NSData)
		if ok && qname.HasSuffix(auth.Name) {
			return ns.Host, true
		}
	}
	return dns.DomainName{}, false
}

// firstA returns the first IPv4 address in the answer section.
func firstA(msg *dns.Message) (net.IP, bool) {
	for _, rr := range msg.Answers {
		if a, ok := rr.Data.(dns.AData); ok {
			return a.Addr, true
		}
	}
	return nil, false
}
