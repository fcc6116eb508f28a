package agent

import (
	"time"

	log "github.com/golang/glog"

	agentdb "github.com/johnblackford/agent/agent_db"
	notify "github.com/johnblackford/agent/usp_notify"
)

// bootNotifier sends one Boot event when the agent starts serving.
type bootNotifier struct {
	db     *agentdb.Database
	notif  *notify.Notification
	target *notifTarget
}

func (bn *bootNotifier) send() {
	msg, err := bn.notif.Boot(bn.db)
	if err != nil {
		log.Errorf("Failed to build the Boot notification for Subscription [%s]: %v",
			bn.notif.SubscriptionID, err)
		return
	}
	log.V(1).Infof("Sending a Boot notification for Subscription [%s] to [%s]",
		bn.notif.SubscriptionID, bn.notif.ToID)
	if err := bn.target.send(bn.notif.Wrap(msg)); err != nil {
		log.Errorf("Failed to send the Boot notification for Subscription [%s]: %v",
			bn.notif.SubscriptionID, err)
	}
}

// periodicNotifier sends a Periodic event every PeriodicInterval
// seconds. The interval parameter is re-read each cycle so a Set takes
// effect on the next wait; the task ends when the parameter vanishes.
type periodicNotifier struct {
	db      *agentdb.Database
	notif   *notify.Notification
	refPath string
	target  *notifTarget
}

func (pn *periodicNotifier) run(shutdown <-chan struct{}) {
	intervalParam := pn.refPath + "PeriodicInterval"
	for {
		interval, err := pn.db.GetInt(intervalParam)
		if err != nil {
			log.Warningf("Stopping Periodic notifications for Subscription [%s], no %s: %v",
				pn.notif.SubscriptionID, intervalParam, err)
			return
		}

		log.V(2).Infof("Waiting %d seconds before the next Periodic notification for Subscription [%s]",
			interval, pn.notif.SubscriptionID)
		select {
		case <-shutdown:
			return
		case <-time.After(time.Duration(interval) * time.Second):
		}

		log.V(1).Infof("Sending a Periodic notification for Subscription [%s] to [%s]",
			pn.notif.SubscriptionID, pn.notif.ToID)
		msg := pn.notif.Periodic(pn.refPath)
		if err := pn.target.send(pn.notif.Wrap(msg)); err != nil {
			log.Errorf("Failed to send the Periodic notification for Subscription [%s]: %v",
				pn.notif.SubscriptionID, err)
		}
	}
}
