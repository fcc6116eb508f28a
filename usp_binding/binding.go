// Package binding carries serialized USP Records over a Message Transfer
// Protocol. Each binding owns an inbound queue fed by the transport and
// drained by an agent listener, so the request dispatcher never touches
// transport specifics beyond the reply-to address.
package binding

import "time"

// Binding is one MTP endpoint of the agent. Implementations exist for CoAP
// and STOMP; the agent treats them uniformly.
type Binding interface {
	// Listen starts accepting inbound Records, pushing each one on the
	// inbound queue together with its reply-to address.
	Listen() error

	// Send transmits a serialized Record to a transport specific address.
	// It blocks at most for the transport's own send timeout.
	Send(payload []byte, toAddr string) error

	// Receive waits up to timeout for the next inbound item. A nil item
	// with a nil error means the timeout elapsed; an error means the
	// binding is shut down.
	Receive(timeout time.Duration) (*QueueItem, error)

	// Requeue puts an item back on the queue tail, keeping its age.
	Requeue(item *QueueItem)

	// Close terminates the transport and disposes of the inbound queue.
	Close() error
}
