package log

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEvent() Event {
	return Event{
		Timestamp: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		Kind:      KindPublish,
		ClientID:  "v1.mqtt3/agents/web.svc.example.org",
		Topic:     "apps/svc.example.org/api/v1/rooms/1/events",
		Size:      42,
	}
}

func TestEventCBORRoundTrip(t *testing.T) {
	event := sampleEvent()

	data, err := EncodeEvent(event)
	require.NoError(t, err)

	decoded, err := DecodeEvent(data)
	require.NoError(t, err)
	assert.Equal(t, event.Kind, decoded.Kind)
	assert.Equal(t, event.ClientID, decoded.ClientID)
	assert.Equal(t, event.Topic, decoded.Topic)
	assert.Equal(t, event.Size, decoded.Size)
	assert.True(t, event.Timestamp.Equal(decoded.Timestamp))
}

func TestFileLoggerRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "traffic.cbor")

	logger, err := NewFileLogger(path)
	require.NoError(t, err)

	first := sampleEvent()
	second := sampleEvent()
	second.Kind = KindReceive
	second.Err = "boom"

	logger.Log(first)
	logger.Log(second)
	require.NoError(t, logger.Close())

	// Logging after close is a silent no-op.
	logger.Log(sampleEvent())
	require.NoError(t, logger.Close())

	events, err := ReadEvents(path)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, KindPublish, events[0].Kind)
	assert.Equal(t, KindReceive, events[1].Kind)
	assert.Equal(t, "boom", events[1].Err)
}

func TestFileLoggerConcurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "traffic.cbor")

	logger, err := NewFileLogger(path)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				logger.Log(sampleEvent())
			}
		}()
	}
	wg.Wait()
	require.NoError(t, logger.Close())

	events, err := ReadEvents(path)
	require.NoError(t, err)
	assert.Len(t, events, 200)
}

func TestSlogAdapter(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	adapter := NewSlogAdapter(slog.New(handler))

	adapter.Log(sampleEvent())
	assert.Contains(t, buf.String(), "kind=PUBLISH")
	assert.Contains(t, buf.String(), "topic=apps/svc.example.org/api/v1/rooms/1/events")

	buf.Reset()
	failed := sampleEvent()
	failed.Err = "connection refused"
	adapter.Log(failed)
	assert.Contains(t, buf.String(), "level=WARN")
}

func TestMultiLogger(t *testing.T) {
	var mu sync.Mutex
	var got []Kind
	collect := loggerFunc(func(e Event) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, e.Kind)
	})

	multi := MultiLogger{NoopLogger{}, collect, collect}
	multi.Log(Event{Kind: KindSubscribe})

	assert.Equal(t, []Kind{KindSubscribe, KindSubscribe}, got)
}

type loggerFunc func(Event)

func (f loggerFunc) Log(e Event) { f(e) }

func TestKindString(t *testing.T) {
	assert.Equal(t, "CONNECT", KindConnect.String())
	assert.Equal(t, "PUBLISH", KindPublish.String())
	assert.Equal(t, "SUBSCRIBE", KindSubscribe.String())
	assert.Equal(t, "RECEIVE", KindReceive.String())
	assert.Equal(t, "DROP", KindDrop.String())
	assert.Equal(t, "UNKNOWN", Kind(99).String())
}
