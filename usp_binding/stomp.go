package binding

import (
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	log "github.com/golang/glog"

	"github.com/gmallard/stompngo"
	"github.com/google/uuid"
)

const (
	// UspContentType labels USP Record bodies on STOMP frames.
	UspContentType = "application/vnd.bbf.usp.msg"

	// hdrEndpointID identifies the agent to the broker on CONNECT.
	hdrEndpointID = "endpoint-id"

	// hdrSubscribeDest lets the broker assign the agent's destination.
	hdrSubscribeDest = "subscribe-dest"

	// hdrReplyToDest names the destination a response must be sent to.
	hdrReplyToDest = "reply-to-dest"
)

// StompBinding carries USP Records over a persistent STOMP 1.2 connection.
// The agent subscribes to a single destination; responses go to whatever
// destination the request's reply-to-dest header names.
type StompBinding struct {
	host        string
	port        int
	username    string
	password    string
	virtualHost string
	endpointID  string

	queue *InboundQueue

	mu      sync.Mutex
	netConn net.Conn
	conn    *stompngo.Connection
	subDest string
	subID   string
	closed  bool
	done    chan struct{}
}

// NewStompBinding returns a binding for the given broker coordinates. The
// connection is not opened until Listen.
func NewStompBinding(host string, port int, username, password, virtualHost, endpointID string) *StompBinding {
	if virtualHost == "" {
		virtualHost = "/"
	}
	return &StompBinding{
		host:        host,
		port:        port,
		username:    username,
		password:    password,
		virtualHost: virtualHost,
		endpointID:  endpointID,
		queue:       NewInboundQueue(),
		done:        make(chan struct{}),
	}
}

// Destination returns the destination the agent ended up subscribed to,
// which is what outbound frames advertise as reply-to-dest.
func (b *StompBinding) Destination() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.subDest
}

// Listen connects to the broker, subscribes and starts the reader. The
// CONNECT frame carries the agent's endpoint ID; a subscribe-dest header on
// the CONNECTED frame overrides the default destination.
func (b *StompBinding) Listen() error {
	addr := net.JoinHostPort(b.host, fmt.Sprintf("%d", b.port))
	netConn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("STOMP dial %s: %w", addr, err)
	}

	ch := stompngo.Headers{
		stompngo.HK_ACCEPT_VERSION, stompngo.SPL_12,
		stompngo.HK_HOST, b.virtualHost,
		stompngo.HK_LOGIN, b.username,
		stompngo.HK_PASSCODE, b.password,
		hdrEndpointID, b.endpointID,
	}
	conn, err := stompngo.Connect(netConn, ch)
	if err != nil {
		netConn.Close()
		return fmt.Errorf("STOMP CONNECT to %s: %w", addr, err)
	}

	dest := destFor(b.endpointID)
	if conn.ConnectResponse != nil {
		if v := conn.ConnectResponse.Headers.Value(hdrSubscribeDest); v != "" {
			log.V(1).Infof("Broker assigned subscription destination %q", v)
			dest = v
		}
	}

	subID := uuid.New().String()
	sh := stompngo.Headers{
		stompngo.HK_DESTINATION, dest,
		stompngo.HK_ID, subID,
		stompngo.HK_ACK, stompngo.AckModeAuto,
	}
	sub, err := conn.Subscribe(sh)
	if err != nil {
		conn.Disconnect(stompngo.NoDiscReceipt)
		netConn.Close()
		return fmt.Errorf("STOMP SUBSCRIBE to %s: %w", dest, err)
	}

	b.mu.Lock()
	b.netConn = netConn
	b.conn = conn
	b.subDest = dest
	b.subID = subID
	b.mu.Unlock()

	go b.readLoop(sub)

	log.V(1).Infof("STOMP binding subscribed to %q on %s as %s", dest, addr, b.endpointID)
	return nil
}

// readLoop moves MESSAGE frames from the subscription channel to the
// inbound queue. It exits when the subscription channel closes.
func (b *StompBinding) readLoop(sub <-chan stompngo.MessageData) {
	defer close(b.done)
	for md := range sub {
		if md.Error != nil {
			if !b.isClosed() {
				log.Errorf("STOMP read failed: %v", md.Error)
			}
			return
		}
		if md.Message.Command == stompngo.ERROR {
			log.Errorf("STOMP broker error: %s", string(md.Message.Body))
			continue
		}
		if md.Message.Command != stompngo.MESSAGE {
			continue
		}

		ct := md.Message.Headers.Value(stompngo.HK_CONTENT_TYPE)
		if !strings.HasPrefix(ct, UspContentType) {
			log.Warningf("STOMP message with content-type %q dropped", ct)
			continue
		}
		replyTo := md.Message.Headers.Value(hdrReplyToDest)
		if replyTo == "" {
			log.Warningf("STOMP message without a reply-to-dest header dropped")
			continue
		}

		log.V(2).Infof("STOMP message of %d bytes queued, reply-to %q", len(md.Message.Body), replyTo)
		b.queue.Push(md.Message.Body, replyTo)
	}
}

// Send delivers the payload to a STOMP destination. Addresses carried in
// reply-to-dest headers are complete destinations and pass through; bare
// endpoint IDs live under /queue/.
func (b *StompBinding) Send(payload []byte, toAddr string) error {
	b.mu.Lock()
	conn := b.conn
	subDest := b.subDest
	b.mu.Unlock()
	if conn == nil {
		return fmt.Errorf("STOMP binding is not connected")
	}

	sh := stompngo.Headers{
		stompngo.HK_DESTINATION, destFor(toAddr),
		stompngo.HK_CONTENT_TYPE, UspContentType,
		hdrReplyToDest, subDest,
	}
	if err := conn.SendBytes(sh, payload); err != nil {
		return fmt.Errorf("STOMP SEND to %s: %w", toAddr, err)
	}
	log.V(2).Infof("STOMP SEND of %d bytes to %q", len(payload), destFor(toAddr))
	return nil
}

// Receive waits up to timeout for the next inbound item.
func (b *StompBinding) Receive(timeout time.Duration) (*QueueItem, error) {
	return b.queue.Pop(timeout)
}

// Requeue puts an item back for another consumer.
func (b *StompBinding) Requeue(item *QueueItem) {
	b.queue.PushItem(item)
}

// Close unsubscribes, disconnects from the broker and disposes of the queue.
func (b *StompBinding) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	conn := b.conn
	netConn := b.netConn
	subDest := b.subDest
	subID := b.subID
	b.mu.Unlock()

	if conn != nil && conn.Connected() {
		uh := stompngo.Headers{
			stompngo.HK_DESTINATION, subDest,
			stompngo.HK_ID, subID,
		}
		if err := conn.Unsubscribe(uh); err != nil {
			log.V(1).Infof("STOMP UNSUBSCRIBE failed during shutdown: %v", err)
		}
		if err := conn.Disconnect(stompngo.NoDiscReceipt); err != nil {
			log.V(1).Infof("STOMP DISCONNECT failed during shutdown: %v", err)
		}
	}
	if netConn != nil {
		netConn.Close()
		<-b.done
	}
	b.queue.Dispose()
	log.V(1).Infof("STOMP binding to %s:%d closed", b.host, b.port)
	return nil
}

func (b *StompBinding) isClosed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}

func destFor(addr string) string {
	if strings.HasPrefix(addr, "/") {
		return addr
	}
	return "/queue/" + addr
}
