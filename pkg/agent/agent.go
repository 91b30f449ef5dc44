package agent

import (
	"fmt"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/agentmq/agentmq-go/pkg/addressing"
	"github.com/agentmq/agentmq-go/pkg/identity"
	"github.com/agentmq/agentmq-go/pkg/log"
)

// QoS is the MQTT delivery guarantee for publishes and subscriptions.
type QoS byte

const (
	AtMostOnce  QoS = 0
	AtLeastOnce QoS = 1
	ExactlyOnce QoS = 2
)

// ConnectionMode states the agent's relationship to the broker.
type ConnectionMode int

const (
	// ModeAgent is a regular agent session.
	ModeAgent ConnectionMode = iota

	// ModeBridge is a session forwarding traffic on behalf of other agents.
	ModeBridge
)

func (m ConnectionMode) String() string {
	switch m {
	case ModeBridge:
		return "bridge-agents"
	default:
		return "agents"
	}
}

// DefaultVersion is the connection version announced in the client id.
const DefaultVersion = "v1.mqtt3"

// Publishable is anything that can resolve its own topic and serialize
// itself for the wire. Outgoing envelopes satisfy it.
type Publishable interface {
	DestinationTopic(me identity.Addressable) (string, error)
	Bytes() ([]byte, error)
}

// Notification is a raw inbound delivery. The payload is the envelope bytes
// as received from the broker; the topic is carried for diagnostics only.
type Notification struct {
	Topic   string
	Payload []byte
}

// Test hook.
var newClient = mqtt.NewClient

// Builder assembles a broker session for an agent identity.
type Builder struct {
	agentID identity.AgentID
	version string
	mode    ConnectionMode
	logger  log.Logger
}

// NewBuilder starts a builder for the given identity with the default
// version, agent mode and no traffic logging.
func NewBuilder(agentID identity.AgentID) *Builder {
	return &Builder{
		agentID: agentID,
		version: DefaultVersion,
		logger:  log.NoopLogger{},
	}
}

// Version overrides the connection version.
func (b *Builder) Version(version string) *Builder {
	b.version = version
	return b
}

// Mode overrides the connection mode.
func (b *Builder) Mode(mode ConnectionMode) *Builder {
	b.mode = mode
	return b
}

// Logger attaches a traffic logger to the session.
func (b *Builder) Logger(logger log.Logger) *Builder {
	b.logger = logger
	return b
}

// ClientID returns the canonical MQTT client id for this session.
func (b *Builder) ClientID() string {
	return fmt.Sprintf("%s/%s/%s", b.version, b.mode, b.agentID)
}

// Start connects to the broker and returns the agent handle together with
// the channel carrying inbound deliveries.
func (b *Builder) Start(cfg Config) (*Agent, <-chan Notification, error) {
	cfg = cfg.withDefaults()

	a := &Agent{
		id:       b.agentID,
		clientID: b.ClientID(),
		inbound:  make(chan Notification, cfg.InboundBuffer),
		logger:   b.logger,
	}

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.URI).
		SetClientID(a.clientID).
		SetKeepAlive(time.Duration(cfg.KeepAlive) * time.Second).
		SetCleanSession(cfg.CleanSession).
		SetAutoReconnect(true).
		SetMaxReconnectInterval(time.Duration(cfg.ReconnectInterval) * time.Second).
		SetDefaultPublishHandler(func(_ mqtt.Client, msg mqtt.Message) {
			a.deliver(msg)
		})

	a.client = newClient(opts)

	if token := a.client.Connect(); token.Wait() && token.Error() != nil {
		a.logger.Log(log.Event{
			Timestamp: time.Now(),
			Kind:      log.KindConnect,
			ClientID:  a.clientID,
			Err:       token.Error().Error(),
		})
		return nil, nil, fmt.Errorf("%w: %v", ErrConnect, token.Error())
	}

	a.logger.Log(log.Event{
		Timestamp: time.Now(),
		Kind:      log.KindConnect,
		ClientID:  a.clientID,
	})
	return a, a.inbound, nil
}

// Agent is a live broker session bound to one agent identity.
// The mutex orders deliveries against Close: the broker client invokes
// deliver from its own goroutines, and the inbound channel must not be
// closed under an in-flight send.
type Agent struct {
	id       identity.AgentID
	clientID string
	client   mqtt.Client
	inbound  chan Notification
	logger   log.Logger

	mu     sync.Mutex
	closed bool
}

// ID returns the agent identity the session was built for.
func (a *Agent) ID() identity.AgentID {
	return a.id
}

// Publish resolves the message's topic, serializes it and hands it to the
// broker at-least-once, non-retained.
func (a *Agent) Publish(msg Publishable) error {
	return a.PublishQoS(msg, AtLeastOnce)
}

// PublishQoS publishes with an explicit delivery guarantee.
func (a *Agent) PublishQoS(msg Publishable, qos QoS) error {
	topic, err := msg.DestinationTopic(a.id)
	if err != nil {
		return err
	}
	payload, err := msg.Bytes()
	if err != nil {
		return err
	}

	token := a.client.Publish(topic, byte(qos), false, payload)
	if token.Wait(); token.Error() != nil {
		a.logger.Log(log.Event{
			Timestamp: time.Now(),
			Kind:      log.KindPublish,
			ClientID:  a.clientID,
			Topic:     topic,
			Size:      len(payload),
			Err:       token.Error().Error(),
		})
		return fmt.Errorf("%w: %v", ErrPublish, token.Error())
	}

	a.logger.Log(log.Event{
		Timestamp: time.Now(),
		Kind:      log.KindPublish,
		ClientID:  a.clientID,
		Topic:     topic,
		Size:      len(payload),
	})
	return nil
}

// PublishAll publishes the messages in order at-least-once, stopping at the
// first failure.
func (a *Agent) PublishAll(msgs ...Publishable) error {
	for _, msg := range msgs {
		if err := a.Publish(msg); err != nil {
			return err
		}
	}
	return nil
}

// Subscribe resolves the subscription's pattern against the session identity
// and registers it with the broker. When group is non-nil the pattern is
// wrapped into its "$share/{group}/..." form. Matching deliveries arrive on
// the channel returned by Start.
func (a *Agent) Subscribe(sub addressing.SubscriptionTopic, qos QoS, group *addressing.SharedGroup) error {
	pattern, err := sub.SubscriptionTopic(a.id)
	if err != nil {
		return err
	}
	if group != nil {
		pattern = group.Wrap(pattern)
	}

	token := a.client.Subscribe(pattern, byte(qos), func(_ mqtt.Client, msg mqtt.Message) {
		a.deliver(msg)
	})
	if token.Wait(); token.Error() != nil {
		a.logger.Log(log.Event{
			Timestamp: time.Now(),
			Kind:      log.KindSubscribe,
			ClientID:  a.clientID,
			Topic:     pattern,
			Err:       token.Error().Error(),
		})
		return fmt.Errorf("%w: %v", ErrSubscribe, token.Error())
	}

	a.logger.Log(log.Event{
		Timestamp: time.Now(),
		Kind:      log.KindSubscribe,
		ClientID:  a.clientID,
		Topic:     pattern,
	})
	return nil
}

// deliver pushes a broker delivery into the inbound channel. The send never
// blocks the client's network loop; when the channel is full the delivery
// is dropped and logged. Deliveries racing a Close are discarded.
func (a *Agent) deliver(msg mqtt.Message) {
	n := Notification{Topic: msg.Topic(), Payload: msg.Payload()}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return
	}

	select {
	case a.inbound <- n:
		a.logger.Log(log.Event{
			Timestamp: time.Now(),
			Kind:      log.KindReceive,
			ClientID:  a.clientID,
			Topic:     n.Topic,
			Size:      len(n.Payload),
		})
	default:
		a.logger.Log(log.Event{
			Timestamp: time.Now(),
			Kind:      log.KindDrop,
			ClientID:  a.clientID,
			Topic:     n.Topic,
			Size:      len(n.Payload),
			Err:       "inbound channel full",
		})
	}
}

// Close disconnects from the broker and closes the inbound channel. Safe to
// call multiple times; deliveries arriving after Close are discarded.
func (a *Agent) Close() {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	a.closed = true
	a.mu.Unlock()

	a.client.Disconnect(250)
	close(a.inbound)
}
