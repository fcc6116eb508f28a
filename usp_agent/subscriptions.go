package agent

import (
	"strings"

	log "github.com/golang/glog"

	notify "github.com/johnblackford/agent/usp_notify"
)

// subscriptionRoots are probed in order; early data models hang the
// subscription table off Device.LocalAgent. instead of Device.
var subscriptionRoots = []string{
	"Device.Subscription.",
	"Device.LocalAgent.Subscription.",
}

var supportedNotifTypes = map[string]bool{
	"Boot":        true,
	"Periodic":    true,
	"ValueChange": true,
}

func (a *Agent) subscriptionInstances() []string {
	for _, root := range subscriptionRoots {
		insts, err := a.db.FindInstances(root)
		if err == nil {
			return insts
		}
		log.V(2).Infof("No subscription table at %s: %v", root, err)
	}
	log.Warningf("The data model declares no subscription table")
	return nil
}

// initSubscriptions scans the subscription table once and builds the
// boot senders, periodic notifiers, and value-change watches the
// enabled rows ask for. Rows are skipped, never fatal.
func (a *Agent) initSubscriptions() {
	for _, inst := range a.subscriptionInstances() {
		enabled, err := a.db.GetBool(inst + "Enable")
		if err != nil {
			log.Warningf("Skipping Subscription row %s with an unreadable Enable flag: %v", inst, err)
			continue
		}
		if !enabled {
			id, _ := a.db.GetStr(inst + "ID")
			log.Infof("Skipping disabled Subscription [%s]", id)
			continue
		}
		a.handleSubscription(inst)
	}
}

func (a *Agent) handleSubscription(subPath string) {
	subID, err := a.db.GetStr(subPath + "ID")
	if err != nil {
		log.Warningf("Skipping Subscription row %s with no ID: %v", subPath, err)
		return
	}
	notifType, err := a.db.GetStr(subPath + "NotifType")
	if err != nil || !supportedNotifTypes[notifType] {
		log.Warningf("Skipping Subscription [%s] with an unhandled notification type [%s]", subID, notifType)
		return
	}
	ctlPath, err := a.db.GetStr(subPath + "Recipient")
	if err != nil {
		log.Warningf("Skipping Subscription [%s] with no Recipient: %v", subID, err)
		return
	}
	enabled, err := a.db.GetBool(ctlPath + "Enable")
	if err != nil || !enabled {
		log.Warningf("Skipping Subscription [%s], it references a disabled controller", subID)
		return
	}
	mtps := a.validMTPPaths(ctlPath)
	if len(mtps) == 0 {
		log.Warningf("Skipping Subscription [%s], the controller has no enabled %s MTPs", subID, a.protocol)
		return
	}
	ctlID, err := a.db.GetStr(ctlPath + "EndpointID")
	if err != nil {
		log.Warningf("Skipping Subscription [%s], the controller has no EndpointID: %v", subID, err)
		return
	}

	for _, mtp := range mtps {
		target := a.targets[mtp]
		notif := &notify.Notification{
			FromID:         a.endpointID,
			ToID:           ctlID,
			SubscriptionID: subID,
		}

		switch notifType {
		case "Boot":
			a.boot = append(a.boot, &bootNotifier{db: a.db, notif: notif, target: target})
		case "Periodic":
			refPath, err := a.firstReference(subPath)
			if err != nil {
				log.Warningf("Skipping Subscription [%s] with no ReferenceList: %v", subID, err)
				continue
			}
			a.periodic = append(a.periodic, &periodicNotifier{
				db:      a.db,
				notif:   notif,
				refPath: refPath,
				target:  target,
			})
		case "ValueChange":
			refList, err := a.db.GetStr(subPath + "ReferenceList")
			if err != nil {
				log.Warningf("Skipping Subscription [%s] with no ReferenceList: %v", subID, err)
				continue
			}
			for _, ref := range strings.Split(refList, ",") {
				ref = strings.TrimSpace(ref)
				if err := a.poller.AddParam(ref, notif, target); err != nil {
					log.Warningf("Subscription [%s] watches unreadable parameter %s: %v", subID, ref, err)
				}
			}
		}
		log.Infof("Processed %s Subscription [%s] for MTP [%s] on Controller [%s]",
			notifType, subID, mtp, ctlID)
	}
}

// validMTPPaths filters the controller's MTP rows down to the enabled
// ones this agent can actually reach.
func (a *Agent) validMTPPaths(ctlPath string) []string {
	mtps, err := a.db.FindInstances(ctlPath + "MTP.")
	if err != nil {
		return nil
	}
	var out []string
	for _, mtp := range mtps {
		enabled, err := a.db.GetBool(mtp + "Enable")
		if err != nil || !enabled {
			continue
		}
		proto, err := a.db.GetStr(mtp + "Protocol")
		if err != nil || proto != a.protocol {
			continue
		}
		if _, ok := a.targets[mtp]; !ok {
			continue
		}
		out = append(out, mtp)
	}
	return out
}

func (a *Agent) firstReference(subPath string) (string, error) {
	refList, err := a.db.GetStr(subPath + "ReferenceList")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(strings.Split(refList, ",")[0]), nil
}
