package resolver

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dnslab/recursor/pkg/dns/types"
)

func TestForwardResolverRelaysUpstreamAnswer(t *testing.T) {
	exchanger := newFakeExchanger()
	exchanger.on("10.0.0.1:53", "example.com", types.TYPE_A,
		answerReply(aRecord("example.com", net.IP{93, 184, 216, 34})))

	r := NewForwardResolver(testConfig("10.0.0.1:53"), exchanger)
	defer r.Close()

	question, err := NewQuestion("example.com", types.TYPE_A)
	require.NoError(t, err)

	reply, err := r.Resolve(context.Background(), question)
	require.NoError(t, err)
	require.Len(t, reply.Answers, 1)
	assert.Equal(t, types.RCODE_NO_ERROR, reply.Header.RCode)
	assert.Equal(t, "example.com 300 IN A 93.184.216.34", reply.Answers[0].String())
}

func TestForwardResolverTriesNextUpstreamOnTimeout(t *testing.T) {
	exchanger := newFakeExchanger()
	// 10.0.0.1 has no script entry and therefore times out.
	exchanger.on("10.0.0.2:53", "example.com", types.TYPE_A,
		answerReply(aRecord("example.com", net.IP{192, 0, 2, 7})))

	r := NewForwardResolver(testConfig("10.0.0.1:53", "10.0.0.2:53"), exchanger)
	defer r.Close()

	question, err := NewQuestion("example.com", types.TYPE_A)
	require.NoError(t, err)

	reply, err := r.Resolve(context.Background(), question)
	require.NoError(t, err)
	require.Len(t, reply.Answers, 1)

	require.Len(t, exchanger.calls, 2)
	assert.Contains(t, exchanger.calls[0], "10.0.0.1:53")
	assert.Contains(t, exchanger.calls[1], "10.0.0.2:53")
}

func TestForwardResolverAllUpstreamsExhausted(t *testing.T) {
	exchanger := newFakeExchanger() // nothing scripted: every attempt times out

	config := testConfig("10.0.0.1:53", "10.0.0.2:53")
	config.Retries = 1
	r := NewForwardResolver(config, exchanger)
	defer r.Close()

	question, err := NewQuestion("example.com", types.TYPE_A)
	require.NoError(t, err)

	reply, err := r.Resolve(context.Background(), question)
	require.NoError(t, err, "exhaustion must degrade to SERVFAIL, not an error")
	assert.Equal(t, types.RCODE_SERVER_FAILURE, reply.Header.RCode)
	assert.Empty(t, reply.Answers)

	// Two upstreams, swept twice.
	assert.Len(t, exchanger.calls, 4)
}

func TestForwardResolverPropagatesNXDOMAIN(t *testing.T) {
	exchanger := newFakeExchanger()
	exchanger.on("10.0.0.1:53", "nope.example.com", types.TYPE_A,
		rcodeReply(types.RCODE_NAME_ERROR))

	r := NewForwardResolver(testConfig("10.0.0.1:53"), exchanger)
	defer r.Close()

	question, err := NewQuestion("nope.example.com", types.TYPE_A)
	require.NoError(t, err)

	reply, err := r.Resolve(context.Background(), question)
	require.NoError(t, err)
	assert.Equal(t, types.RCODE_NAME_ERROR, reply.Header.RCode)
	assert.Empty(t, reply.Answers)
}
