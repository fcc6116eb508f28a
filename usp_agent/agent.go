// Package agent wires the USP data model, request handler, transport
// bindings, and notification machinery into a runnable endpoint.
package agent

import (
	"errors"
	"fmt"
	"sync"
	"time"

	log "github.com/golang/glog"

	agentdb "github.com/johnblackford/agent/agent_db"
	"github.com/johnblackford/agent/common_utils"
	"github.com/johnblackford/agent/usp"
	binding "github.com/johnblackford/agent/usp_binding"
	handler "github.com/johnblackford/agent/usp_handler"
	mdns "github.com/johnblackford/agent/usp_mdns"
)

const (
	endpointIDPath    = "Device.LocalAgent.EndpointID"
	productClassPath  = "Device.DeviceInfo.ProductClass"
	agentIPPath       = "Device.LocalAgent.X_ARRIS-COM_IPAddr"
	localTimeZonePath = "Device.Time.LocalTimeZone"

	defaultReceiveTimeout = 15 * time.Second
	defaultUIAddr         = "0.0.0.0:8080"
)

// Config selects the data-model files and transport for one agent
// process.
type Config struct {
	DmFile  string // implemented data model (schema)
	DbFile  string // persisted instance store
	CfgFile string // service configuration, JSON or YAML

	UseCoap  bool   // serve CoAP instead of STOMP
	CoapPort int    // CoAP listen port; 0 binds an ephemeral port
	Intf     string // network interface for local IP discovery

	PollInterval   time.Duration // value-change poll cadence
	ReceiveTimeout time.Duration // binding receive wait per loop
	UIAddr         string        // camera web UI listen address
}

// Agent is a USP endpoint: it answers Controller requests arriving over
// its bindings and pushes the notifications its subscription table asks
// for.
type Agent struct {
	cfg        *Config
	db         *agentdb.Database
	endpointID string
	protocol   string
	handler    *handler.UspRequestHandler

	coap     *binding.CoapBinding
	bindings map[string]binding.Binding // listener set
	targets  map[string]*notifTarget   // controller MTP path -> outbound route

	poller   *ValueChangePoller
	periodic []*periodicNotifier
	boot     []*bootNotifier

	ui        *CameraWebUI
	motion    *MotionService
	announcer *mdns.Announcer
	browser   *mdns.Browser

	shutdown  chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup // binding listeners
	bg        sync.WaitGroup // poller, periodic notifiers, services
}

// NewAgent loads the data model, opens the configured bindings, and
// registers the subscriptions found in the store. The agent is not
// serving until Serve is called.
func NewAgent(cfg *Config) (*Agent, error) {
	if cfg == nil {
		return nil, errors.New("config not provided")
	}
	if cfg.CoapPort < 0 {
		return nil, fmt.Errorf("invalid CoAP port %d", cfg.CoapPort)
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.ReceiveTimeout <= 0 {
		cfg.ReceiveTimeout = defaultReceiveTimeout
	}
	if cfg.UIAddr == "" {
		cfg.UIAddr = defaultUIAddr
	}
	common_utils.InitCounters()

	db, err := agentdb.NewDatabase(cfg.DmFile, cfg.DbFile)
	if err != nil {
		return nil, err
	}
	if cfg.Intf != "" {
		db.SetIPInterface(cfg.Intf)
	}
	endpointID, err := db.GetStr(endpointIDPath)
	if err != nil {
		return nil, fmt.Errorf("read agent endpoint ID: %w", err)
	}

	a := &Agent{
		cfg:        cfg,
		db:         db,
		endpointID: endpointID,
		protocol:   ProtocolSTOMP,
		bindings:   make(map[string]binding.Binding),
		targets:    make(map[string]*notifTarget),
		shutdown:   make(chan struct{}),
	}
	if cfg.UseCoap {
		a.protocol = ProtocolCoAP
	}

	services, err := a.loadServices()
	if err != nil {
		return nil, err
	}
	a.handler = handler.NewUspRequestHandler(endpointID, db, services)

	if err := a.initBindings(); err != nil {
		a.closeBindings()
		return nil, err
	}
	a.poller = newValueChangePoller(db, cfg.PollInterval)
	a.initSubscriptions()

	log.V(1).Infof("Created USP Agent [%s] with %d binding(s) over %s",
		endpointID, len(a.bindings), a.protocol)
	return a, nil
}

// EndpointID returns the agent's USP endpoint ID.
func (a *Agent) EndpointID() string {
	return a.endpointID
}

// Database returns the agent's instance store.
func (a *Agent) Database() *agentdb.Database {
	return a.db
}

// Serve starts the notification machinery and one listener per binding,
// then blocks until the listeners stop.
func (a *Agent) Serve() error {
	if a.ui != nil {
		a.ui.Start()
	}
	if a.motion != nil {
		a.bg.Add(1)
		go func() {
			defer a.bg.Done()
			a.motion.Run(a.shutdown)
		}()
	}

	a.bg.Add(1)
	go func() {
		defer a.bg.Done()
		a.poller.Run(a.shutdown)
	}()
	for _, pn := range a.periodic {
		pn := pn
		a.bg.Add(1)
		go func() {
			defer a.bg.Done()
			pn.run(a.shutdown)
		}()
	}
	for _, bn := range a.boot {
		go bn.send()
	}

	for name, b := range a.bindings {
		name, b := name, b
		a.wg.Add(1)
		go func() {
			defer a.wg.Done()
			a.listen(name, b)
		}()
	}

	log.Infof("USP Agent [%s] serving over %s", a.endpointID, a.protocol)
	a.wg.Wait()
	return nil
}

// Close stops the listeners and notification tasks, closes every
// binding, and releases the mDNS registrations. It is safe to call more
// than once.
func (a *Agent) Close() error {
	a.closeOnce.Do(func() {
		close(a.shutdown)
		a.closeBindings()
		a.wg.Wait()
		a.bg.Wait()
		if a.ui != nil {
			a.ui.Close()
		}
		if a.announcer != nil {
			a.announcer.Close()
		}
		if a.browser != nil {
			a.browser.Close()
		}
		log.Infof("USP Agent [%s] shut down", a.endpointID)
	})
	return nil
}

func (a *Agent) closeBindings() {
	for name, b := range a.bindings {
		if err := b.Close(); err != nil {
			log.V(1).Infof("Closing binding [%s] failed: %v", name, err)
		}
	}
}

func (a *Agent) isShuttingDown() bool {
	select {
	case <-a.shutdown:
		return true
	default:
		return false
	}
}

// listen consumes one binding's inbound queue. A bad Record never ends
// the loop; only shutdown or a broken binding does.
func (a *Agent) listen(name string, b binding.Binding) {
	log.V(1).Infof("Listening for USP Records on binding [%s]", name)
	for {
		if a.isShuttingDown() {
			return
		}
		item, err := b.Receive(a.cfg.ReceiveTimeout)
		if err != nil {
			if !a.isShuttingDown() {
				log.Errorf("Binding [%s] receive failed: %v", name, err)
			}
			return
		}
		if item == nil {
			continue
		}
		a.dispatch(name, b, item)
	}
}

func (a *Agent) dispatch(name string, b binding.Binding, item *binding.QueueItem) {
	_, reqMsg, respMsg, respBytes, err := a.handler.HandleRequest(item.Payload)
	if err != nil {
		var violation *handler.ProtocolViolationError
		if !errors.As(err, &violation) {
			log.Errorf("Request handling failed on binding [%s]: %v", name, err)
			return
		}
		log.Warningf("Rejected a USP Record on binding [%s]: %v", name, err)
		if respBytes != nil {
			if serr := b.Send(respBytes, item.ReplyTo); serr != nil {
				log.Errorf("Failed to send the error Record to %q: %v", item.ReplyTo, serr)
			}
		}
		return
	}

	logMessages(reqMsg, respMsg)
	if err := b.Send(respBytes, item.ReplyTo); err != nil {
		log.Errorf("Failed to send a [%v] response to %q: %v",
			respMsg.Header.MsgType, item.ReplyTo, err)
	}
}

func logMessages(req, resp *usp.Msg) {
	log.V(1).Infof("Handled a [%v] Request", req.Header.MsgType)
	switch {
	case resp.Body.Response != nil:
		log.V(1).Infof("Sending a [%v] Response", resp.Header.MsgType)
	case resp.Body.Error != nil:
		log.V(1).Infof("Responding with an Error")
	default:
		log.Warningf("Sending an Unknown Response")
	}
}
