package agent

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentmq/agentmq-go/pkg/addressing"
	"github.com/agentmq/agentmq-go/pkg/identity"
	"github.com/agentmq/agentmq-go/pkg/log"
)

func testAgentID(t *testing.T) identity.AgentID {
	t.Helper()
	agentID, err := identity.ParseAgentID("web.svc.example.org")
	require.NoError(t, err)
	return agentID
}

type fakeToken struct {
	err error
}

func (f fakeToken) Wait() bool { return true }

func (f fakeToken) WaitTimeout(_ time.Duration) bool { return true }

func (f fakeToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

func (f fakeToken) Error() error { return f.err }

type fakeClient struct {
	mqtt.Client

	connectErr   error
	publishErr   error
	subscribeErr error

	publishedTopic   string
	publishedQoS     byte
	publishedPayload []byte
	publishedTopics  []string

	subscribedTopic string
	subscribedQoS   byte
	handler         mqtt.MessageHandler

	disconnected bool
}

func (c *fakeClient) Connect() mqtt.Token {
	return fakeToken{err: c.connectErr}
}

func (c *fakeClient) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	c.publishedTopic = topic
	c.publishedQoS = qos
	c.publishedPayload = payload.([]byte)
	c.publishedTopics = append(c.publishedTopics, topic)
	return fakeToken{err: c.publishErr}
}

func (c *fakeClient) Subscribe(topic string, qos byte, callback mqtt.MessageHandler) mqtt.Token {
	c.subscribedTopic = topic
	c.subscribedQoS = qos
	c.handler = callback
	return fakeToken{err: c.subscribeErr}
}

func (c *fakeClient) Disconnect(_ uint) {
	c.disconnected = true
}

type fakeMessage struct {
	topic   string
	payload []byte
}

func (m fakeMessage) Duplicate() bool { return false }
func (m fakeMessage) Qos() byte { return 1 }
func (m fakeMessage) Retained() bool { return false }
func (m fakeMessage) Topic() string { return m.topic }
func (m fakeMessage) MessageID() uint16 { return 0 }
func (m fakeMessage) Payload() []byte { return m.payload }
func (m fakeMessage) Ack() {}

func testAgent(t *testing.T, client *fakeClient, buffer int) (*Agent, *recordingLogger) {
	t.Helper()
	logger := &recordingLogger{}
	return &Agent{
		id:       testAgentID(t),
		clientID: "v1.mqtt3/agents/web.svc.example.org",
		client:   client,
		inbound:  make(chan Notification, buffer),
		logger:   logger,
	}, logger
}

type recordingLogger struct {
	events []log.Event
}

func (l *recordingLogger) Log(e log.Event) {
	l.events = append(l.events, e)
}

func (l *recordingLogger) kinds() []log.Kind {
	kinds := make([]log.Kind, 0, len(l.events))
	for _, e := range l.events {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}

type fixedTopicMessage struct {
	topic string
	body  []byte
	err   error
}

func (m fixedTopicMessage) DestinationTopic(_ identity.Addressable) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.topic, nil
}

func (m fixedTopicMessage) Bytes() ([]byte, error) {
	return m.body, nil
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "tcp://localhost:1883", cfg.URI)
	assert.Equal(t, 30, cfg.KeepAlive)
	assert.True(t, cfg.CleanSession)
	assert.Equal(t, 5, cfg.ReconnectInterval)
	assert.Equal(t, 256, cfg.InboundBuffer)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agent.yaml")
	data := []byte("uri: tcp://broker.example.org:1883\nkeep_alive: 60\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "tcp://broker.example.org:1883", cfg.URI)
	assert.Equal(t, 60, cfg.KeepAlive)

	// Unset fields keep their defaults.
	assert.True(t, cfg.CleanSession)
	assert.Equal(t, 5, cfg.ReconnectInterval)
	assert.Equal(t, 256, cfg.InboundBuffer)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agent.yaml")
	require.NoError(t, os.WriteFile(path, []byte("uri: [broken"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestBuilderClientID(t *testing.T) {
	agentID := testAgentID(t)

	assert.Equal(t, "v1.mqtt3/agents/web.svc.example.org", NewBuilder(agentID).ClientID())
	assert.Equal(t, "v2/agents/web.svc.example.org", NewBuilder(agentID).Version("v2").ClientID())
	assert.Equal(t, "v1.mqtt3/bridge-agents/web.svc.example.org",
		NewBuilder(agentID).Mode(ModeBridge).ClientID())
}

func TestBuilderStart(t *testing.T) {
	client := &fakeClient{}
	restore := newClient
	newClient = func(opts *mqtt.ClientOptions) mqtt.Client {
		assert.Equal(t, "v1.mqtt3/agents/web.svc.example.org", opts.ClientID)
		return client
	}
	defer func() { newClient = restore }()

	logger := &recordingLogger{}
	agent, inbound, err := NewBuilder(testAgentID(t)).Logger(logger).Start(Config{})
	require.NoError(t, err)
	require.NotNil(t, agent)
	require.NotNil(t, inbound)
	assert.Equal(t, testAgentID(t), agent.ID())
	assert.Equal(t, []log.Kind{log.KindConnect}, logger.kinds())

	agent.Close()
	assert.True(t, client.disconnected)

	_, open := <-inbound
	assert.False(t, open)
}

func TestBuilderStartConnectError(t *testing.T) {
	restore := newClient
	newClient = func(_ *mqtt.ClientOptions) mqtt.Client {
		return &fakeClient{connectErr: errors.New("connection refused")}
	}
	defer func() { newClient = restore }()

	_, _, err := NewBuilder(testAgentID(t)).Start(Config{})
	assert.ErrorIs(t, err, ErrConnect)
}

func TestPublish(t *testing.T) {
	client := &fakeClient{}
	agent, logger := testAgent(t, client, 1)

	msg := fixedTopicMessage{
		topic: "apps/svc.example.org/api/v1/rooms/1/events",
		body:  []byte(`{"payload":"{}","properties":{"type":"event","label":"ping"}}`),
	}
	require.NoError(t, agent.Publish(msg))

	assert.Equal(t, msg.topic, client.publishedTopic)
	assert.Equal(t, byte(AtLeastOnce), client.publishedQoS)
	assert.JSONEq(t, string(msg.body), string(client.publishedPayload))
	assert.Equal(t, []log.Kind{log.KindPublish}, logger.kinds())
}

func TestPublishQoS(t *testing.T) {
	client := &fakeClient{}
	agent, _ := testAgent(t, client, 1)

	msg := fixedTopicMessage{topic: "agents/x.a.example.org/api/v1/in/svc.example.org", body: []byte("{}")}
	require.NoError(t, agent.PublishQoS(msg, ExactlyOnce))
	assert.Equal(t, byte(2), client.publishedQoS)
}

func TestPublishBrokerError(t *testing.T) {
	client := &fakeClient{publishErr: errors.New("broker gone")}
	agent, logger := testAgent(t, client, 1)

	err := agent.Publish(fixedTopicMessage{topic: "t", body: []byte("{}")})
	assert.ErrorIs(t, err, ErrPublish)
	require.Len(t, logger.events, 1)
	assert.Equal(t, log.KindPublish, logger.events[0].Kind)
	assert.Equal(t, "broker gone", logger.events[0].Err)
}

func TestPublishTopicError(t *testing.T) {
	client := &fakeClient{}
	agent, _ := testAgent(t, client, 1)

	wantErr := errors.New("no topic")
	err := agent.Publish(fixedTopicMessage{err: wantErr})
	assert.ErrorIs(t, err, wantErr)
	assert.Empty(t, client.publishedTopic)
}

func TestSubscribe(t *testing.T) {
	client := &fakeClient{}
	agent, logger := testAgent(t, client, 1)

	sub := addressing.NewRequestSubscription(addressing.MulticastSource{})
	require.NoError(t, agent.Subscribe(sub, AtLeastOnce, nil))
	assert.Equal(t, "agents/+/api/v1/out/svc.example.org", client.subscribedTopic)
	assert.Equal(t, byte(1), client.subscribedQoS)
	assert.Equal(t, []log.Kind{log.KindSubscribe}, logger.kinds())
}

func TestSubscribeSharedGroup(t *testing.T) {
	client := &fakeClient{}
	agent, _ := testAgent(t, client, 1)

	group, err := addressing.ParseSharedGroup("loadtest")
	require.NoError(t, err)

	sub := addressing.NewRequestSubscription(addressing.MulticastSource{})
	require.NoError(t, agent.Subscribe(sub, AtLeastOnce, &group))
	assert.Equal(t, "$share/loadtest/agents/+/api/v1/out/svc.example.org", client.subscribedTopic)
}

func TestSubscribeBrokerError(t *testing.T) {
	client := &fakeClient{subscribeErr: errors.New("not authorized")}
	agent, _ := testAgent(t, client, 1)

	sub := addressing.NewRequestSubscription(addressing.MulticastSource{})
	err := agent.Subscribe(sub, AtLeastOnce, nil)
	assert.ErrorIs(t, err, ErrSubscribe)
}

func TestSubscribeIncompatibleSource(t *testing.T) {
	client := &fakeClient{}
	agent, _ := testAgent(t, client, 1)

	sub := addressing.NewEventSubscription(addressing.MulticastSource{})
	err := agent.Subscribe(sub, AtLeastOnce, nil)
	var incompatible *addressing.IncompatibleSourceError
	assert.ErrorAs(t, err, &incompatible)
	assert.Empty(t, client.subscribedTopic)
}

func TestDeliver(t *testing.T) {
	client := &fakeClient{}
	agent, logger := testAgent(t, client, 2)

	sub := addressing.NewRequestSubscription(addressing.MulticastSource{})
	require.NoError(t, agent.Subscribe(sub, AtLeastOnce, nil))
	require.NotNil(t, client.handler)

	body, err := json.Marshal(map[string]any{"payload": "{}", "properties": map[string]any{"type": "event"}})
	require.NoError(t, err)
	client.handler(nil, fakeMessage{topic: "agents/x.a.example.org/api/v1/out/svc.example.org", payload: body})

	n := <-agent.inbound
	assert.Equal(t, "agents/x.a.example.org/api/v1/out/svc.example.org", n.Topic)
	assert.Equal(t, body, n.Payload)
	assert.Equal(t, []log.Kind{log.KindSubscribe, log.KindReceive}, logger.kinds())
}

func TestDeliverDropsWhenFull(t *testing.T) {
	client := &fakeClient{}
	agent, logger := testAgent(t, client, 1)

	agent.deliver(fakeMessage{topic: "t", payload: []byte("1")})
	agent.deliver(fakeMessage{topic: "t", payload: []byte("2")})

	assert.Equal(t, []log.Kind{log.KindReceive, log.KindDrop}, logger.kinds())
	assert.Equal(t, "inbound channel full", logger.events[1].Err)

	n := <-agent.inbound
	assert.Equal(t, []byte("1"), n.Payload)
}

func TestPublishAll(t *testing.T) {
	client := &fakeClient{}
	agent, _ := testAgent(t, client, 1)

	err := agent.PublishAll(
		fixedTopicMessage{topic: "t1", body: []byte("{}")},
		fixedTopicMessage{topic: "t2", body: []byte("{}")},
		fixedTopicMessage{topic: "t3", body: []byte("{}")},
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"t1", "t2", "t3"}, client.publishedTopics)
}

func TestPublishAllStopsAtFirstError(t *testing.T) {
	client := &fakeClient{}
	agent, _ := testAgent(t, client, 1)

	wantErr := errors.New("no topic")
	err := agent.PublishAll(
		fixedTopicMessage{topic: "t1", body: []byte("{}")},
		fixedTopicMessage{err: wantErr},
		fixedTopicMessage{topic: "t3", body: []byte("{}")},
	)
	assert.ErrorIs(t, err, wantErr)
	assert.Equal(t, []string{"t1"}, client.publishedTopics)
}

func TestCloseDiscardsLateDeliveries(t *testing.T) {
	client := &fakeClient{}
	agent, logger := testAgent(t, client, 1)

	agent.Close()
	assert.True(t, client.disconnected)

	// A handler still running inside the broker client must not panic on
	// the closed channel.
	agent.deliver(fakeMessage{topic: "t", payload: []byte("late")})
	assert.Empty(t, logger.kinds())

	// Close is idempotent.
	agent.Close()

	_, open := <-agent.inbound
	assert.False(t, open)
}

func TestConnectionModeString(t *testing.T) {
	assert.Equal(t, "agents", ModeAgent.String())
	assert.Equal(t, "bridge-agents", ModeBridge.String())
}
