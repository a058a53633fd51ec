package websocket

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/boxoffice/pkg/logging"
)

func newTestClient(hub *Hub, id string) *Client {
	return &Client{id: id, hub: hub, send: make(chan Message, 1)}
}

func closedSend(c *Client) bool {
	select {
	case _, ok := <-c.send:
		return !ok
	default:
		return false
	}
}

func TestHubBroadcastAndShutdown(t *testing.T) {
	hub := NewHub(logging.NewNopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	exited := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(exited)
	}()

	a, b := newTestClient(hub, "a"), newTestClient(hub, "b")
	hub.Register(a)
	hub.Register(b)
	assert.Equal(t, 2, hub.ClientCount())

	hub.unregister(b)
	assert.True(t, closedSend(b))
	assert.Equal(t, 1, hub.ClientCount())

	hub.Broadcast(Message{Type: "tickets.sold"})
	select {
	case m := <-a.send:
		assert.Equal(t, "tickets.sold", m.Type)
	case <-time.After(time.Second):
		t.Fatal("broadcast not delivered")
	}

	cancel()
	<-exited
	assert.True(t, closedSend(a))
	assert.Zero(t, hub.ClientCount())
}

func TestHubDoesNotBlockAfterShutdown(t *testing.T) {
	hub := NewHub(logging.NewNopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	exited := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(exited)
	}()

	var live []*Client
	for i := range 4 {
		c := newTestClient(hub, fmt.Sprintf("live-%d", i))
		hub.Register(c)
		live = append(live, c)
	}

	cancel()
	<-exited

	late := make([]*Client, 32)
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		for i := range late {
			late[i] = newTestClient(hub, fmt.Sprintf("late-%d", i))
			hub.Register(late[i])
		}
		for _, c := range append(live, late...) {
			hub.unregister(c)
		}
	}()

	select {
	case <-finished:
	case <-time.After(time.Second):
		require.FailNow(t, "register or unregister blocked after the hub stopped")
	}

	for _, c := range late {
		assert.True(t, closedSend(c), "client %s", c.id)
	}
	assert.Zero(t, hub.ClientCount())
}
