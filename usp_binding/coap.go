package binding

import (
	"fmt"
	"net"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	log "github.com/golang/glog"

	coap "github.com/dustin/go-coap"
)

const (
	// DefaultCoapPort is the IANA assigned CoAP port.
	DefaultCoapPort = 5683

	// DefaultCoapResource is the resource USP Records are POSTed to.
	DefaultCoapResource = "usp"

	replyToQueryPrefix = "reply-to="
)

// CoapBinding carries USP Records over confirmable CoAP datagrams. Inbound
// Records arrive as POSTs on the usp resource; the response Record travels in
// a separate POST to the address named by the request's reply-to query
// option, not in the CoAP acknowledgement.
type CoapBinding struct {
	ipAddr   string
	port     int
	resource string
	selfURL  string

	queue *InboundQueue
	msgID uint32

	mu      sync.Mutex
	conn    *net.UDPConn
	clients map[string]*coap.Conn
	closed  bool
	done    chan struct{}
}

// NewCoapBinding returns a binding that will serve the given resource on
// port and advertise coap://ipAddr:port/resource as its own reply-to.
func NewCoapBinding(ipAddr string, port int, resource string) *CoapBinding {
	return &CoapBinding{
		ipAddr:   ipAddr,
		port:     port,
		resource: resource,
		selfURL:  fmt.Sprintf("coap://%s:%d/%s", ipAddr, port, resource),
		queue:    NewInboundQueue(),
		clients:  make(map[string]*coap.Conn),
		done:     make(chan struct{}),
	}
}

// SelfURL returns the CoAP URL controllers should reply to.
func (b *CoapBinding) SelfURL() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.selfURL
}

// Addr returns the bound UDP address once Listen has been called.
func (b *CoapBinding) Addr() *net.UDPAddr {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.conn == nil {
		return nil
	}
	return b.conn.LocalAddr().(*net.UDPAddr)
}

// Listen binds the CoAP server socket and serves it in the background.
func (b *CoapBinding) Listen() error {
	uaddr, err := net.ResolveUDPAddr("udp", fmt.Sprintf(":%d", b.port))
	if err != nil {
		return fmt.Errorf("resolve CoAP listen address: %w", err)
	}
	conn, err := net.ListenUDP("udp", uaddr)
	if err != nil {
		return fmt.Errorf("bind CoAP port %d: %w", b.port, err)
	}

	b.mu.Lock()
	b.conn = conn
	if b.port == 0 {
		// An ephemeral port is only known after the bind; the reply-to
		// URL has to carry the real one.
		b.port = conn.LocalAddr().(*net.UDPAddr).Port
		b.selfURL = fmt.Sprintf("coap://%s:%d/%s", b.ipAddr, b.port, b.resource)
	}
	b.mu.Unlock()

	mux := coap.NewServeMux()
	mux.Handle(b.resource, coap.FuncHandler(b.serveUSP))
	// The mux matches the joined Uri-Path options, which carry no
	// leading slash.
	mux.Handle(".well-known/core", coap.FuncHandler(b.serveWellKnownCore))

	go func() {
		defer close(b.done)
		err := coap.Serve(conn, mux)
		if err != nil && !b.isClosed() {
			log.Errorf("CoAP server on port %d failed: %v", b.port, err)
		}
	}()

	log.V(1).Infof("CoAP binding listening on %v, resource %q", conn.LocalAddr(), b.resource)
	return nil
}

// serveUSP accepts one USP Record per POST. The Record payload goes on the
// inbound queue and the datagram is acknowledged right away with 2.04.
func (b *CoapBinding) serveUSP(l *net.UDPConn, a *net.UDPAddr, m *coap.Message) *coap.Message {
	resp := &coap.Message{
		Type:      coap.Acknowledgement,
		Code:      coap.Changed,
		MessageID: m.MessageID,
		Token:     m.Token,
	}

	if m.Code != coap.POST {
		log.Warningf("CoAP %v from %v rejected, only POST is allowed on %q", m.Code, a, b.resource)
		resp.Code = coap.MethodNotAllowed
		return resp
	}

	cf, ok := contentFormatOf(m)
	if !ok || cf != uint32(coap.AppOctets) {
		log.Warningf("CoAP POST from %v rejected, Content-Format %d is not application/octet-stream", a, cf)
		resp.Code = coap.UnsupportedMediaType
		return resp
	}

	replyTo := replyToFromQuery(m)
	if replyTo == "" {
		log.Warningf("CoAP POST from %v rejected, no reply-to query option", a)
		resp.Code = coap.BadRequest
		return resp
	}

	log.V(2).Infof("CoAP POST from %v queued, %d bytes, reply-to %q", a, len(m.Payload), replyTo)
	b.queue.Push(m.Payload, replyTo)
	return resp
}

// serveWellKnownCore advertises the usp resource in CoRE link format so a
// resource directory can discover the agent endpoint.
func (b *CoapBinding) serveWellKnownCore(l *net.UDPConn, a *net.UDPAddr, m *coap.Message) *coap.Message {
	resp := &coap.Message{
		Type:      coap.Acknowledgement,
		Code:      coap.Content,
		MessageID: m.MessageID,
		Token:     m.Token,
	}

	if m.Code != coap.GET {
		resp.Code = coap.MethodNotAllowed
		return resp
	}

	resp.SetOption(coap.ContentFormat, coap.AppLinkFormat)
	resp.Payload = []byte(fmt.Sprintf("</%s>;rt=\"usp.endpoint\";if=\"usp.a\"", b.resource))
	return resp
}

// Send POSTs the payload to a coap:// URL and waits for the acknowledgement.
// The agent's own URL rides along as the reply-to query option.
func (b *CoapBinding) Send(payload []byte, toAddr string) error {
	hostport, path, err := splitCoapURL(toAddr)
	if err != nil {
		return fmt.Errorf("invalid CoAP address %q: %w", toAddr, err)
	}

	req := coap.Message{
		Type:      coap.Confirmable,
		Code:      coap.POST,
		MessageID: uint16(atomic.AddUint32(&b.msgID, 1)),
		Payload:   payload,
	}
	req.SetPathString(path)
	req.SetOption(coap.ContentFormat, coap.AppOctets)
	req.SetOption(coap.URIQuery, replyToQueryPrefix+b.SelfURL())

	// Sends are serialized per binding so one cached client socket per
	// destination is enough, no client context is spawned per message.
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return fmt.Errorf("CoAP binding is closed")
	}
	c, ok := b.clients[hostport]
	if !ok {
		c, err = coap.Dial("udp", hostport)
		if err != nil {
			b.mu.Unlock()
			return fmt.Errorf("CoAP dial %s: %w", hostport, err)
		}
		b.clients[hostport] = c
	}
	b.mu.Unlock()

	rv, err := c.Send(req)
	if err != nil {
		return fmt.Errorf("CoAP send to %s: %w", toAddr, err)
	}
	if rv != nil && rv.Code != coap.Changed {
		log.Warningf("CoAP POST to %s answered with %v, wanted 2.04 Changed", toAddr, rv.Code)
	}
	log.V(2).Infof("CoAP POST of %d bytes to %s acknowledged", len(payload), toAddr)
	return nil
}

// Receive waits up to timeout for the next inbound item.
func (b *CoapBinding) Receive(timeout time.Duration) (*QueueItem, error) {
	return b.queue.Pop(timeout)
}

// Requeue puts an item back for another consumer.
func (b *CoapBinding) Requeue(item *QueueItem) {
	b.queue.PushItem(item)
}

// Close stops the server socket and disposes of the inbound queue.
func (b *CoapBinding) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	conn := b.conn
	port := b.port
	b.mu.Unlock()

	if conn != nil {
		conn.Close()
		<-b.done
	}
	b.queue.Dispose()
	log.V(1).Infof("CoAP binding on port %d closed", port)
	return nil
}

func (b *CoapBinding) isClosed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}

// contentFormatOf normalizes the Content-Format option. Messages parsed off
// the wire carry it as uint32, locally built ones as coap.MediaType.
func contentFormatOf(m *coap.Message) (uint32, bool) {
	switch v := m.Option(coap.ContentFormat).(type) {
	case uint32:
		return v, true
	case coap.MediaType:
		return uint32(v), true
	case int:
		return uint32(v), true
	}
	return 0, false
}

// replyToFromQuery extracts the reply-to URI-Query option and normalizes it
// to a coap:// URL.
func replyToFromQuery(m *coap.Message) string {
	for _, o := range m.Options(coap.URIQuery) {
		q, ok := o.(string)
		if !ok || !strings.HasPrefix(q, replyToQueryPrefix) {
			continue
		}
		v := strings.TrimPrefix(q, replyToQueryPrefix)
		if v == "" {
			return ""
		}
		if !strings.Contains(v, "://") {
			v = "coap://" + v
		}
		return v
	}
	return ""
}

// splitCoapURL breaks a coap:// URL into a dialable host:port and a resource
// path, defaulting the port to 5683.
func splitCoapURL(raw string) (hostport, path string, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", err
	}
	if u.Scheme != "coap" {
		return "", "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", "", fmt.Errorf("missing host")
	}
	hostport = u.Host
	if u.Port() == "" {
		hostport = net.JoinHostPort(u.Host, fmt.Sprintf("%d", DefaultCoapPort))
	}
	path = u.Path
	if path == "" {
		path = "/" + DefaultCoapResource
	}
	return hostport, path, nil
}
