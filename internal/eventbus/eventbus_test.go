// ABOUTME: Tests for the typed pub/sub bus
// ABOUTME: Covers ordering, unsubscribe, and concurrent publish safety

package eventbus

import (
	"sync"
	"testing"
)

func TestBusDeliversInSubscriptionOrder(t *testing.T) {
	t.Parallel()

	bus := New[int]()
	var order []string

	bus.Subscribe(func(int) { order = append(order, "first") })
	bus.Subscribe(func(int) { order = append(order, "second") })

	bus.Publish(1)

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("delivery order = %v, want [first second]", order)
	}
}

func TestBusUnsubscribe(t *testing.T) {
	t.Parallel()

	bus := New[string]()
	var got []string

	unsub := bus.Subscribe(func(s string) { got = append(got, s) })
	bus.Publish("a")
	unsub()
	bus.Publish("b")
	unsub() // double unsubscribe is harmless

	if len(got) != 1 || got[0] != "a" {
		t.Errorf("got %v, want [a]", got)
	}
	if bus.Count() != 0 {
		t.Errorf("count = %d, want 0", bus.Count())
	}
}

func TestBusConcurrentPublish(t *testing.T) {
	t.Parallel()

	bus := New[int]()
	var mu sync.Mutex
	total := 0
	bus.Subscribe(func(n int) {
		mu.Lock()
		total += n
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bus.Publish(1)
		}()
	}
	wg.Wait()

	if total != 10 {
		t.Errorf("total = %d, want 10", total)
	}
}
