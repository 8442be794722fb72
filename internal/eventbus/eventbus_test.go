package eventbus

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"gridpick/internal/logger"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type collector struct {
	mu     sync.Mutex
	events []DomainEvent
}

func (c *collector) handle(e DomainEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, e)
}

func (c *collector) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.events)
}

func TestPublishDeliversInOrder(t *testing.T) {
	b := New(logger.Nop())
	defer b.Close()

	c := &collector{}
	b.Subscribe(EventSelectionChanged, c.handle)

	for i := 0; i < 5; i++ {
		b.Publish(SelectionChangedEvent{Total: i})
	}
	b.Publish(SelectionClearedEvent{})

	require.Eventually(t, func() bool { return c.len() == 5 }, time.Second, 5*time.Millisecond)
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, e := range c.events {
		assert.Equal(t, i, e.(SelectionChangedEvent).Total)
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := New(logger.Nop())

	kept := &collector{}
	dropped := &collector{}
	b.Subscribe(EventResourcesRemoved, kept.handle)
	unsubscribe := b.Subscribe(EventResourcesRemoved, dropped.handle)
	unsubscribe()
	unsubscribe()

	b.Publish(ResourcesRemovedEvent{IDs: []string{"a"}})
	b.Close()

	assert.Equal(t, 1, kept.len())
	assert.Equal(t, 0, dropped.len())
}

func TestCloseDrainsQueuedEvents(t *testing.T) {
	b := New(logger.Nop())
	c := &collector{}
	b.Subscribe(EventConfigLoaded, c.handle)

	for i := 0; i < 20; i++ {
		b.Publish(ConfigLoadedEvent{Path: "x"})
	}
	b.Close()
	b.Close()

	assert.Equal(t, 20, c.len())

	b.Publish(ConfigLoadedEvent{Path: "after close"})
	assert.Equal(t, 20, c.len())
}

func TestHandlerPanicDoesNotStopDispatch(t *testing.T) {
	b := New(logger.Nop())
	c := &collector{}
	b.Subscribe(EventError, func(DomainEvent) { panic("boom") })
	b.Subscribe(EventError, c.handle)

	b.Publish(ErrorEvent{Message: "one"})
	b.Publish(ErrorEvent{Message: "two"})
	b.Close()

	assert.Equal(t, 2, c.len())
}
