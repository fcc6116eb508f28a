// Package mdns announces the agent's CoAP endpoint over multicast DNS
// and discovers CoAP controllers registered the same way.
package mdns

import (
	"context"
	"fmt"
	"strings"
	"sync"

	log "github.com/golang/glog"

	"github.com/grandcat/zeroconf"
)

const (
	// AgentService is the service type a CoAP USP agent registers under.
	AgentService = "_usp-agt-coap._udp"

	// ControllerService is the service type CoAP USP controllers register under.
	ControllerService = "_usp-ctl-coap._udp"

	domain = "local."

	pathPrefix = "path="
)

// Announcer holds an active mDNS registration for the agent endpoint.
type Announcer struct {
	server *zeroconf.Server
}

// Announce registers endpointID as an instance of the agent service,
// advertising the CoAP port and the resource path USP Records are
// POSTed to.
func Announce(endpointID string, port int, resource string) (*Announcer, error) {
	srv, err := zeroconf.Register(endpointID, AgentService, domain, port,
		[]string{pathPrefix + resource}, nil)
	if err != nil {
		return nil, fmt.Errorf("mDNS register: %w", err)
	}
	log.V(1).Infof("Announced [%s] over mDNS on port %d, resource %q", endpointID, port, resource)
	return &Announcer{server: srv}, nil
}

// Close withdraws the registration.
func (a *Announcer) Close() {
	a.server.Shutdown()
}

// Browser resolves controller endpoint IDs to CoAP URLs as their mDNS
// registrations arrive. The instance name carries the endpoint ID and a
// path TXT record names the controller's CoAP resource.
type Browser struct {
	cancel context.CancelFunc

	mu   sync.Mutex
	urls map[string]string
}

// NewBrowser starts watching for controller registrations in the
// background.
func NewBrowser() (*Browser, error) {
	resolver, err := zeroconf.NewResolver()
	if err != nil {
		return nil, fmt.Errorf("mDNS resolver: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	entries := make(chan *zeroconf.ServiceEntry)
	b := &Browser{
		cancel: cancel,
		urls:   make(map[string]string),
	}
	go b.consume(entries)

	if err := resolver.Browse(ctx, ControllerService, domain, entries); err != nil {
		cancel()
		return nil, fmt.Errorf("mDNS browse: %w", err)
	}
	return b, nil
}

func (b *Browser) consume(entries <-chan *zeroconf.ServiceEntry) {
	for entry := range entries {
		url, err := coapURLOf(entry)
		if err != nil {
			log.Warningf("Ignoring mDNS controller registration [%s]: %v", entry.Instance, err)
			continue
		}
		b.mu.Lock()
		b.urls[entry.Instance] = url
		b.mu.Unlock()
		log.V(1).Infof("Discovered controller [%s] at %s", entry.Instance, url)
	}
}

// ResolveAddr returns the discovered CoAP URL for a controller endpoint
// ID.
func (b *Browser) ResolveAddr(endpointID string) (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	url, ok := b.urls[endpointID]
	return url, ok
}

// Close stops the browser.
func (b *Browser) Close() {
	b.cancel()
}

// coapURLOf builds a controller's CoAP URL from its registration.
func coapURLOf(entry *zeroconf.ServiceEntry) (string, error) {
	if len(entry.AddrIPv4) == 0 {
		return "", fmt.Errorf("no IPv4 address")
	}
	path, ok := txtPath(entry.Text)
	if !ok {
		return "", fmt.Errorf("no path TXT record")
	}
	return fmt.Sprintf("coap://%s:%d/%s", entry.AddrIPv4[0], entry.Port, path), nil
}

func txtPath(text []string) (string, bool) {
	for _, t := range text {
		if strings.HasPrefix(t, pathPrefix) {
			return strings.TrimPrefix(t, pathPrefix), true
		}
	}
	return "", false
}
