package agent

import (
	"fmt"

	log "github.com/golang/glog"

	"github.com/johnblackford/agent/common_utils"
	binding "github.com/johnblackford/agent/usp_binding"
	mdns "github.com/johnblackford/agent/usp_mdns"
)

// Protocol values used by Device.Controller.{i}.MTP.{i}.Protocol.
const (
	ProtocolCoAP  = "CoAP"
	ProtocolSTOMP = "STOMP"
)

// notifTarget is the outbound route for one controller MTP: the binding
// notifications travel over and the address they are sent to. A CoAP
// target without a configured address resolves the controller over mDNS
// at send time.
type notifTarget struct {
	binding binding.Binding
	addr    string
	resolve func() (string, bool)
}

func (t *notifTarget) send(payload []byte) error {
	addr := t.addr
	if addr == "" {
		if t.resolve == nil {
			return fmt.Errorf("no controller address")
		}
		r, ok := t.resolve()
		if !ok {
			return fmt.Errorf("controller not yet discovered over mDNS")
		}
		addr = r
	}
	if err := t.binding.Send(payload, addr); err != nil {
		return err
	}
	common_utils.IncCounter(common_utils.USP_NOTIFY)
	return nil
}

// initBindings opens the transport selected by the configuration and
// builds one outbound route per enabled controller MTP that matches it.
func (a *Agent) initBindings() error {
	if a.protocol == ProtocolCoAP {
		if err := a.openCoapBinding(); err != nil {
			return err
		}
	}

	controllers, err := a.db.FindInstances("Device.Controller.")
	if err != nil {
		return fmt.Errorf("enumerate controllers: %w", err)
	}
	for _, ctl := range controllers {
		enabled, err := a.db.GetBool(ctl + "Enable")
		if err != nil || !enabled {
			id, _ := a.db.GetStr(ctl + "EndpointID")
			log.Infof("Skipping disabled Controller [%s]", id)
			continue
		}
		mtps, err := a.db.FindInstances(ctl + "MTP.")
		if err != nil {
			log.Warningf("Controller row %s has no MTP table: %v", ctl, err)
			continue
		}
		for _, mtp := range mtps {
			if enabled, err := a.db.GetBool(mtp + "Enable"); err != nil || !enabled {
				log.V(1).Infof("Skipping disabled MTP row %s", mtp)
				continue
			}
			proto, err := a.db.GetStr(mtp + "Protocol")
			if err != nil {
				log.Warningf("Skipping MTP row %s with no Protocol: %v", mtp, err)
				continue
			}
			if proto != a.protocol {
				log.V(1).Infof("Skipping MTP row %s, protocol %q is not served", mtp, proto)
				continue
			}
			switch a.protocol {
			case ProtocolCoAP:
				a.initCoapTarget(ctl, mtp)
			case ProtocolSTOMP:
				a.initStompTarget(ctl, mtp)
			}
		}
	}

	if len(a.bindings) == 0 {
		return fmt.Errorf("no usable %s MTPs in the Controller table", a.protocol)
	}
	return nil
}

// openCoapBinding starts the agent's own CoAP server and the mDNS
// announcer and controller browser. mDNS failures are tolerated; the
// agent then serves configured controllers only.
func (a *Agent) openCoapBinding() error {
	ip := a.agentIP()
	b := binding.NewCoapBinding(ip, a.cfg.CoapPort, binding.DefaultCoapResource)
	if err := b.Listen(); err != nil {
		return err
	}
	a.coap = b
	a.bindings["coap"] = b

	port := a.cfg.CoapPort
	if addr := b.Addr(); addr != nil {
		port = addr.Port
	}
	if ann, err := mdns.Announce(a.endpointID, port, binding.DefaultCoapResource); err != nil {
		log.Warningf("mDNS announcement failed: %v", err)
	} else {
		a.announcer = ann
	}
	if br, err := mdns.NewBrowser(); err != nil {
		log.Warningf("mDNS controller discovery unavailable: %v", err)
	} else {
		a.browser = br
	}
	return nil
}

// agentIP is the address advertised in reply-to options and picture
// URLs.
func (a *Agent) agentIP() string {
	ip, err := a.db.GetStr(agentIPPath)
	if err != nil || ip == "" {
		log.Warningf("Agent IP address unavailable, falling back to 127.0.0.1")
		return "127.0.0.1"
	}
	return ip
}

func (a *Agent) initCoapTarget(ctlPath, mtpPath string) {
	host, hostErr := a.db.GetStr(mtpPath + "CoAP.Host")
	port, portErr := a.db.GetInt(mtpPath + "CoAP.Port")
	path, pathErr := a.db.GetStr(mtpPath + "CoAP.Path")

	t := &notifTarget{binding: a.coap}
	if hostErr == nil && portErr == nil && pathErr == nil {
		t.addr = fmt.Sprintf("coap://%s:%d/%s", host, port, path)
	} else if a.browser != nil {
		ctlID, err := a.db.GetStr(ctlPath + "EndpointID")
		if err != nil {
			log.Warningf("Skipping MTP row %s, controller has no EndpointID: %v", mtpPath, err)
			return
		}
		browser := a.browser
		t.resolve = func() (string, bool) { return browser.ResolveAddr(ctlID) }
		log.V(1).Infof("MTP row %s has no CoAP address, will resolve [%s] over mDNS", mtpPath, ctlID)
	} else {
		log.Warningf("Skipping MTP row %s, no CoAP address configured", mtpPath)
		return
	}
	a.targets[mtpPath] = t
}

// initStompTarget connects the broker named by the MTP's STOMP.Reference
// row, reusing an existing connection when several MTPs share it.
func (a *Agent) initStompTarget(ctlPath, mtpPath string) {
	connPath, err := a.db.GetStr(mtpPath + "STOMP.Reference")
	if err != nil {
		log.Warningf("Skipping MTP row %s with no STOMP.Reference: %v", mtpPath, err)
		return
	}
	b, ok := a.bindings[connPath]
	if !ok {
		sb, err := a.openStompConnection(connPath)
		if err != nil {
			log.Errorf("Skipping MTP row %s: %v", mtpPath, err)
			return
		}
		a.bindings[connPath] = sb
		b = sb
	}

	ctlID, err := a.db.GetStr(ctlPath + "EndpointID")
	if err != nil {
		log.Warningf("Skipping MTP row %s, controller has no EndpointID: %v", mtpPath, err)
		return
	}
	a.targets[mtpPath] = &notifTarget{binding: b, addr: ctlID}
}

func (a *Agent) openStompConnection(connPath string) (*binding.StompBinding, error) {
	enabled, err := a.db.GetBool(connPath + "Enable")
	if err != nil {
		return nil, fmt.Errorf("STOMP connection row %s: %w", connPath, err)
	}
	if !enabled {
		return nil, fmt.Errorf("STOMP connection row %s is disabled", connPath)
	}

	host, err := a.db.GetStr(connPath + "Host")
	if err != nil {
		return nil, err
	}
	port, err := a.db.GetInt(connPath + "Port")
	if err != nil {
		return nil, err
	}
	username, err := a.db.GetStr(connPath + "Username")
	if err != nil {
		return nil, err
	}
	password, err := a.db.GetStr(connPath + "Password")
	if err != nil {
		return nil, err
	}
	virtualHost, err := a.db.GetStr(connPath + "VirtualHost")
	if err != nil {
		virtualHost = "/"
	}

	sb := binding.NewStompBinding(host, port, username, password, virtualHost, a.endpointID)
	if err := sb.Listen(); err != nil {
		return nil, err
	}
	log.Infof("Connected to STOMP broker %s:%d for connection row %s", host, port, connPath)
	return sb, nil
}
