package ws

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	mu       sync.Mutex
	messages [][]byte
	failNext bool
	closed   bool
}

func (f *fakeClient) WriteMessage(_ int, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failNext {
		return errors.New("broken pipe")
	}
	f.messages = append(f.messages, data)
	return nil
}

func (f *fakeClient) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeClient) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func (f *fakeClient) received() [][]byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]byte(nil), f.messages...)
}

func TestHubBroadcastsPublishedEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(nil)
	go hub.Run(ctx)

	client := &fakeClient{}
	hub.Register <- client
	hub.Publish(Event{Type: EventSaleRecorded, Action: "created", Data: map[string]int{"quantity": 2}})

	require.Eventually(t, func() bool { return len(client.received()) == 1 }, time.Second, 5*time.Millisecond)

	var ev Event
	require.NoError(t, json.Unmarshal(client.received()[0], &ev))
	assert.Equal(t, EventSaleRecorded, ev.Type)
	assert.Equal(t, "created", ev.Action)
}

func TestHubDropsFailingClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(nil)
	go hub.Run(ctx)

	broken := &fakeClient{failNext: true}
	hub.Register <- broken
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	hub.Publish(Event{Type: EventStockUpdate})

	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 5*time.Millisecond)
	assert.True(t, broken.isClosed())
}

func TestPublishNeverBlocksWithoutRunner(t *testing.T) {
	hub := NewHub(nil)

	done := make(chan struct{})
	go func() {
		for i := 0; i < broadcastBuffer*2; i++ {
			hub.Publish(Event{Type: EventStockUpdate})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a full queue")
	}
	assert.Len(t, hub.Broadcast, broadcastBuffer)
}

func TestRunClosesClientsOnShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(nil)
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	client := &fakeClient{}
	hub.Register <- client
	cancel()
	<-stopped

	assert.True(t, client.isClosed())
	assert.Equal(t, 0, hub.ClientCount())
}

func TestAttachDoesNotHangAfterShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(nil)
	go hub.Run(ctx)

	client := &fakeClient{}
	release := make(chan struct{})
	returned := make(chan struct{})
	go func() {
		hub.attach(client, func() { <-release })
		close(returned)
	}()
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	cancel()
	<-hub.Done()
	close(release)

	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("connection loop stuck unregistering from a stopped hub")
	}
	assert.True(t, client.isClosed())

	late := &fakeClient{}
	hub.attach(late, func() { t.Error("read must not run once the hub has stopped") })
	assert.True(t, late.isClosed())
}
