package agent

import (
	"sync"
	"time"

	log "github.com/golang/glog"

	agentdb "github.com/johnblackford/agent/agent_db"
	notify "github.com/johnblackford/agent/usp_notify"
)

// DefaultPollInterval is the value-change poll cadence when the
// configuration does not set one.
const DefaultPollInterval = 500 * time.Millisecond

// watch ties one polled parameter to the notification route its
// subscription selected.
type watch struct {
	notif  *notify.Notification
	target *notifTarget
}

// ValueChangePoller compares watched parameters against their cached
// values on a fixed cadence and sends a ValueChange notification for
// each difference. One poller serves every subscription.
type ValueChangePoller struct {
	db       *agentdb.Database
	interval time.Duration

	mu      sync.Mutex
	order   []string
	cache   map[string]string
	watches map[string]*watch
}

func newValueChangePoller(db *agentdb.Database, interval time.Duration) *ValueChangePoller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &ValueChangePoller{
		db:       db,
		interval: interval,
		cache:    make(map[string]string),
		watches:  make(map[string]*watch),
	}
}

// AddParam registers a parameter for polling. The current value seeds
// the cache so only later changes notify. A parameter registered twice
// keeps the newest route.
func (p *ValueChangePoller) AddParam(param string, notif *notify.Notification, target *notifTarget) error {
	value, err := p.db.GetStr(param)
	if err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.watches[param]; !ok {
		p.order = append(p.order, param)
	}
	p.cache[param] = value
	p.watches[param] = &watch{notif: notif, target: target}
	log.V(1).Infof("Watching %s for value changes", param)
	return nil
}

// RemoveParam drops a parameter from the poll set.
func (p *ValueChangePoller) RemoveParam(param string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.watches[param]; !ok {
		return
	}
	delete(p.watches, param)
	delete(p.cache, param)
	for i, q := range p.order {
		if q == param {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
	log.V(1).Infof("No longer watching %s for value changes", param)
}

// Run polls until shutdown.
func (p *ValueChangePoller) Run(shutdown <-chan struct{}) {
	for {
		select {
		case <-shutdown:
			return
		case <-time.After(p.interval):
		}
		p.pollOnce()
	}
}

// pollOnce walks a snapshot of the watched set; AddParam and
// RemoveParam stay callable while it runs.
func (p *ValueChangePoller) pollOnce() {
	p.mu.Lock()
	params := make([]string, len(p.order))
	copy(params, p.order)
	p.mu.Unlock()

	for _, param := range params {
		log.V(2).Infof("Checking %s for a value change", param)
		value, err := p.db.GetStr(param)
		if err != nil {
			log.Warningf("Watched parameter %s is unreadable: %v", param, err)
			continue
		}

		p.mu.Lock()
		w, ok := p.watches[param]
		changed := ok && p.cache[param] != value
		if changed {
			p.cache[param] = value
		}
		p.mu.Unlock()
		if !changed {
			continue
		}

		log.V(1).Infof("Value change detected for %s, notifying [%s]", param, w.notif.ToID)
		payload := w.notif.Wrap(w.notif.ValueChange(param, value))
		go func(w *watch) {
			if err := w.target.send(payload); err != nil {
				log.Errorf("Failed to send the ValueChange notification for Subscription [%s]: %v",
					w.notif.SubscriptionID, err)
			}
		}(w)
	}
}
