package websocket

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockClient is a test double for Client that captures sent messages
type mockClient struct {
	id       string
	messages [][]byte
	mu       sync.Mutex
	closed   bool
}

func newMockClient(id string) *mockClient {
	return &mockClient{
		id:       id,
		messages: make([][]byte, 0),
	}
}

func (m *mockClient) ID() string {
	return m.id
}

func (m *mockClient) Send(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClientClosed
	}
	m.messages = append(m.messages, data)
	return nil
}

func (m *mockClient) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *mockClient) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

func (m *mockClient) GetMessages() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := make([][]byte, len(m.messages))
	copy(copied, m.messages)
	return copied
}

func TestHub_RegisterUnregister(t *testing.T) {
	hub := NewHub()

	client := newMockClient("client-1")
	hub.Register(client)
	assert.Equal(t, 1, hub.ClientCount())

	hub.Unregister(client)
	assert.Equal(t, 0, hub.ClientCount())
}

func TestHub_BroadcastReachesAllClients(t *testing.T) {
	hub := NewHub()

	a := newMockClient("client-a")
	b := newMockClient("client-b")
	hub.Register(a)
	hub.Register(b)

	hub.Broadcast(TransactionCreated(map[string]string{"id": "t1"}))

	require.Len(t, a.GetMessages(), 1)
	require.Len(t, b.GetMessages(), 1)

	var event Event
	require.NoError(t, json.Unmarshal(a.GetMessages()[0], &event))
	assert.Equal(t, "transaction.created", event.Type)
	assert.Equal(t, EntityTypeTransaction, event.Entity)
}

func TestHub_BroadcastDropsClosedClient(t *testing.T) {
	hub := NewHub()

	healthy := newMockClient("healthy")
	broken := newMockClient("broken")
	hub.Register(healthy)
	hub.Register(broken)
	broken.Close()

	hub.Broadcast(BudgetUpdated(map[string]string{"monthKey": "2025-03"}))

	assert.Equal(t, 1, hub.ClientCount())
	assert.Len(t, healthy.GetMessages(), 1)
}

func TestHub_CloseAll(t *testing.T) {
	hub := NewHub()

	a := newMockClient("a")
	b := newMockClient("b")
	hub.Register(a)
	hub.Register(b)

	hub.CloseAll()

	assert.Equal(t, 0, hub.ClientCount())
	assert.True(t, a.IsClosed())
	assert.True(t, b.IsClosed())
}

func TestHub_PublishImplementsEventPublisher(t *testing.T) {
	hub := NewHub()
	client := newMockClient("c")
	hub.Register(client)

	var publisher EventPublisher = hub
	publisher.Publish(SubscriptionPaid(map[string]string{"id": "s1"}))

	require.Len(t, client.GetMessages(), 1)
}

func TestHub_ConcurrentBroadcast(t *testing.T) {
	hub := NewHub()
	client := newMockClient("c")
	hub.Register(client)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hub.Broadcast(RuleCreated(map[string]string{"id": "r"}))
		}()
	}
	wg.Wait()

	assert.Len(t, client.GetMessages(), 10)
}
