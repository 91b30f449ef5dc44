package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentmq/agentmq-go/pkg/addressing"
	"github.com/agentmq/agentmq-go/pkg/identity"
	"github.com/agentmq/agentmq-go/pkg/message"
)

// matchesPattern applies single-level wildcard matching the way the broker
// does, enough to check a publish topic against a subscribe pattern.
func matchesPattern(pattern, topic string) bool {
	ps := strings.Split(pattern, "/")
	ts := strings.Split(topic, "/")
	if len(ps) != len(ts) {
		return false
	}
	for i := range ps {
		if ps[i] != "+" && ps[i] != ts[i] {
			return false
		}
	}
	return true
}

func TestServeSubscriptionPatterns(t *testing.T) {
	server, err := identity.ParseAgentID("web.svc.example.org")
	require.NoError(t, err)

	var patterns []string
	for _, sub := range serveSubscriptions() {
		pattern, err := sub.SubscriptionTopic(server)
		require.NoError(t, err)
		patterns = append(patterns, pattern)
	}

	assert.Equal(t, []string{
		"agents/+/api/v1/out/svc.example.org",
		"agents/web.svc.example.org/api/v1/in/+",
	}, patterns)
}

func TestPingRequestReachesServer(t *testing.T) {
	server, err := identity.ParseAgentID("web.svc.example.org")
	require.NoError(t, err)
	pinger, err := identity.ParseAgentID("cli.usr.example.org")
	require.NoError(t, err)

	props := message.NewOutgoingRequestProperties("echo", "", "corr-1", nil)
	req := message.NewUnicastRequest(map[string]string{"text": "ping"}, props, server)
	env, err := req.IntoEnvelope()
	require.NoError(t, err)

	topic, err := env.DestinationTopic(pinger)
	require.NoError(t, err)
	assert.Equal(t, "agents/web.svc.example.org/api/v1/in/usr.example.org", topic)

	matched := false
	for _, sub := range serveSubscriptions() {
		pattern, err := sub.SubscriptionTopic(server)
		require.NoError(t, err)
		if matchesPattern(pattern, topic) {
			matched = true
		}
	}
	assert.True(t, matched, "no server subscription matches the request topic %s", topic)
}

func TestEchoResponseReachesPinger(t *testing.T) {
	server, err := identity.ParseAgentID("web.svc.example.org")
	require.NoError(t, err)
	pinger, err := identity.ParseAgentID("cli.usr.example.org")
	require.NoError(t, err)

	reqProps := message.NewIncomingRequestProperties("echo", "corr-1", "", identity.NewAuthnProperties(pinger))
	req := message.NewIncomingMessage(map[string]string{"text": "ping"}, reqProps)

	resp := message.ToResponse(req, req.Payload(), message.StatusOK)
	env, err := resp.IntoEnvelope()
	require.NoError(t, err)

	topic, err := env.DestinationTopic(server)
	require.NoError(t, err)

	from := server
	sub := addressing.NewResponseSubscription(addressing.UnicastSource{From: &from})
	pattern, err := sub.SubscriptionTopic(pinger)
	require.NoError(t, err)
	assert.True(t, matchesPattern(pattern, topic),
		"response topic %s does not match pinger subscription %s", topic, pattern)
}
