package binding

import (
	"time"

	log "github.com/golang/glog"

	"github.com/Workiva/go-datastructures/queue"
)

// DefaultItemTTL bounds how long an inbound payload may wait on the queue
// before it is considered stale and dropped instead of dispatched.
const DefaultItemTTL = 60 * time.Second

// QueueItem is one inbound USP Record payload together with the transport
// address the response has to be sent back to.
type QueueItem struct {
	Payload   []byte
	ReplyTo   string
	CreatedAt time.Time

	ttl time.Duration
}

// NewQueueItem wraps an inbound payload with the default TTL.
func NewQueueItem(payload []byte, replyTo string) *QueueItem {
	return &QueueItem{
		Payload:   payload,
		ReplyTo:   replyTo,
		CreatedAt: time.Now(),
		ttl:       DefaultItemTTL,
	}
}

// Expired reports whether the item aged past its TTL.
func (qi *QueueItem) Expired() bool {
	return time.Since(qi.CreatedAt) > qi.ttl
}

// InboundQueue is the FIFO between a transport callback (producer) and the
// binding listener (consumer).
type InboundQueue struct {
	q *queue.Queue
}

func NewInboundQueue() *InboundQueue {
	return &InboundQueue{q: queue.New(10)}
}

// Push appends a fresh item carrying the given payload.
func (iq *InboundQueue) Push(payload []byte, replyTo string) {
	iq.PushItem(NewQueueItem(payload, replyTo))
}

// PushItem appends an existing item keeping its original creation time.
// Listeners use it to put back a message addressed to somebody else.
func (iq *InboundQueue) PushItem(item *QueueItem) {
	if err := iq.q.Put(item); err != nil {
		// Put only fails once the queue is disposed, meaning we are
		// shutting down and the payload can be dropped.
		log.V(2).Infof("Inbound queue disposed, dropping %d byte payload", len(item.Payload))
	}
}

// Pop waits up to timeout for the next unexpired item. It returns a nil item
// when the timeout elapses and queue.ErrDisposed once the queue is shut down.
func (iq *InboundQueue) Pop(timeout time.Duration) (*QueueItem, error) {
	deadline := time.Now().Add(timeout)
	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, nil
		}
		items, err := iq.q.Poll(1, remaining)
		if err != nil {
			if err == queue.ErrTimeout {
				return nil, nil
			}
			return nil, err
		}
		item, ok := items[0].(*QueueItem)
		if !ok {
			continue
		}
		if item.Expired() {
			log.V(1).Infof("Popped an expired queue item, throwing it away")
			continue
		}
		return item, nil
	}
}

// Len returns the number of queued items.
func (iq *InboundQueue) Len() int64 {
	return iq.q.Len()
}

// Dispose shuts the queue down and releases any blocked Pop caller.
func (iq *InboundQueue) Dispose() {
	iq.q.Dispose()
}
