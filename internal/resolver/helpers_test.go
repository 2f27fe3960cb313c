package resolver

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/bassosimone/runtimex"

	"github.com/dnslab/recursor/pkg/dns"
	"github.com/dnslab/recursor/pkg/dns/types"
)

// fakeExchanger replays scripted replies keyed by "addr qname qtype".
// Queries with no script entry fail, which is how tests model a target
// that times out.
type fakeExchanger struct {
	script map[string]*dns.Message
	calls  []string
}

func newFakeExchanger() *fakeExchanger {
	return &fakeExchanger{script: make(map[string]*dns.Message)}
}

func (f *fakeExchanger) on(addr, qname string, qtype types.DNSType, reply *dns.Message) {
	f.script[exchangeKey(addr, qname, qtype)] = reply
}

func (f *fakeExchanger) Exchange(_ context.Context, addr string, packet []byte) ([]byte, error) {
	query := runtimex.PanicOnError1(dns.ParseMessage(packet))
	question := query.Questions[0]
	key := exchangeKey(addr, question.Name.String(), question.Type)
	f.calls = append(f.calls, key)

	reply, ok := f.script[key]
	if !ok {
		return nil, fmt.Errorf("i/o timeout waiting for %s", addr)
	}
	out := *reply
	out.Header.ID = query.Header.ID
	out.Header.Response = true
	return out.Pack()
}

func exchangeKey(addr, qname string, qtype types.DNSType) string {
	return fmt.Sprintf("%s %s %s", addr, strings.ToLower(qname), qtype)
}

func testConfig(servers ...string) *Config {
	return &Config{
		Timeout:     time.Second,
		Retries:     0,
		Upstreams:   servers,
		RootServers: servers,
		MaxDepth:    5,
	}
}

func testName(s string) dns.DomainName {
	return runtimex.PanicOnError1(dns.ParseName(s))
}

func aRecord(owner string, ip net.IP) dns.ResourceRecord {
	return dns.ResourceRecord{
		Name:  testName(owner),
		Type:  types.TYPE_A,
		Class: types.CLASS_IN,
		TTL:   300,
		Data:  dns.AData{Addr: ip},
	}
}

func nsRecord(zone, host string) dns.ResourceRecord {
	return dns.ResourceRecord{
		Name:  testName(zone),
		Type:  types.TYPE_NS,
		Class: types.CLASS_IN,
		TTL:   86400,
		Data:  dns.NSData{Host: testName(host)},
	}
}

func cnameRecord(owner, target string) dns.ResourceRecord {
	return dns.ResourceRecord{
		Name:  testName(owner),
		Type:  types.TYPE_CNAME,
		Class: types.CLASS_IN,
		TTL:   300,
		Data:  dns.CNAMEData{Target: testName(target)},
	}
}

func answerReply(answers ...dns.ResourceRecord) *dns.Message {
	return &dns.Message{Answers: answers}
}

func referralReply(authorities, additionals []dns.ResourceRecord) *dns.Message {
	return &dns.Message{Authorities: authorities, Additionals: additionals}
}

func rcodeReply(rcode types.DNSRCode) *dns.Message {
	return &dns.Message{Header: dns.Header{RCode: rcode}}
}
