package binding

import (
	"testing"
	"time"

	"github.com/Workiva/go-datastructures/queue"
)

func TestQueuePopInOrder(t *testing.T) {
	iq := NewInboundQueue()
	defer iq.Dispose()

	iq.Push([]byte("first"), "coap://192.168.1.20:5683/usp")
	iq.Push([]byte("second"), "coap://192.168.1.21:5683/usp")

	if got := iq.Len(); got != 2 {
		t.Fatalf("Len() = %d, want 2", got)
	}

	item, err := iq.Pop(time.Second)
	if err != nil {
		t.Fatalf("Pop failed: %v", err)
	}
	if item == nil {
		t.Fatal("Pop returned no item")
	}
	if string(item.Payload) != "first" {
		t.Errorf("Pop payload = %q, want %q", item.Payload, "first")
	}
	if item.ReplyTo != "coap://192.168.1.20:5683/usp" {
		t.Errorf("Pop reply-to = %q", item.ReplyTo)
	}
	if item.CreatedAt.IsZero() {
		t.Error("Pop item has no creation time")
	}

	item, err = iq.Pop(time.Second)
	if err != nil {
		t.Fatalf("second Pop failed: %v", err)
	}
	if item == nil || string(item.Payload) != "second" {
		t.Fatalf("second Pop = %v, want payload %q", item, "second")
	}
}

func TestQueuePopTimesOut(t *testing.T) {
	iq := NewInboundQueue()
	defer iq.Dispose()

	start := time.Now()
	item, err := iq.Pop(50 * time.Millisecond)
	if err != nil {
		t.Fatalf("Pop failed: %v", err)
	}
	if item != nil {
		t.Fatalf("Pop on an empty queue = %v, want nil", item)
	}
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Errorf("Pop returned after %v, want at least the 50ms timeout", elapsed)
	}
}

func TestQueueDropsExpiredItems(t *testing.T) {
	iq := NewInboundQueue()
	defer iq.Dispose()

	stale := NewQueueItem([]byte("stale"), "coap://192.168.1.20:5683/usp")
	stale.CreatedAt = time.Now().Add(-2 * DefaultItemTTL)
	if !stale.Expired() {
		t.Fatal("item older than the TTL reports Expired() = false")
	}
	iq.PushItem(stale)
	iq.Push([]byte("fresh"), "coap://192.168.1.20:5683/usp")

	item, err := iq.Pop(time.Second)
	if err != nil {
		t.Fatalf("Pop failed: %v", err)
	}
	if item == nil || string(item.Payload) != "fresh" {
		t.Fatalf("Pop = %v, want the fresh item after the stale one is dropped", item)
	}

	// Nothing left once the expired item is gone.
	item, err = iq.Pop(20 * time.Millisecond)
	if err != nil {
		t.Fatalf("Pop failed: %v", err)
	}
	if item != nil {
		t.Fatalf("Pop = %v, want nil on the drained queue", item)
	}
}

func TestQueueRequeueKeepsAge(t *testing.T) {
	iq := NewInboundQueue()
	defer iq.Dispose()

	iq.Push([]byte("payload"), "coap://192.168.1.20:5683/usp")
	item, err := iq.Pop(time.Second)
	if err != nil || item == nil {
		t.Fatalf("Pop = (%v, %v), want an item", item, err)
	}

	created := item.CreatedAt
	iq.PushItem(item)

	again, err := iq.Pop(time.Second)
	if err != nil || again == nil {
		t.Fatalf("Pop after PushItem = (%v, %v), want an item", again, err)
	}
	if !again.CreatedAt.Equal(created) {
		t.Errorf("requeued item creation time = %v, want the original %v", again.CreatedAt, created)
	}
}

func TestQueueDisposeReleasesPop(t *testing.T) {
	iq := NewInboundQueue()

	errCh := make(chan error, 1)
	go func() {
		_, err := iq.Pop(10 * time.Second)
		errCh <- err
	}()

	// Let the Pop block before pulling the queue out from under it.
	time.Sleep(20 * time.Millisecond)
	iq.Dispose()

	select {
	case err := <-errCh:
		if err != queue.ErrDisposed {
			t.Fatalf("Pop after Dispose = %v, want %v", err, queue.ErrDisposed)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Pop still blocked after Dispose")
	}

	if _, err := iq.Pop(10 * time.Millisecond); err != queue.ErrDisposed {
		t.Fatalf("Pop on a disposed queue = %v, want %v", err, queue.ErrDisposed)
	}
}
