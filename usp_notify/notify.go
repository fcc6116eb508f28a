// Package notify builds the USP messages the agent sends on its own
// initiative: Boot and Periodic events plus ValueChange reports. Each
// builder returns the inner Msg; Wrap seals it in the plaintext Record
// the MTP carries.
package notify

import (
	"encoding/json"
	"math/rand"
	"strconv"

	agentdb "github.com/johnblackford/agent/agent_db"
	"github.com/johnblackford/agent/usp"
)

// bootParamPaths is the fixed set of parameters reported in the Boot
// event's BootParameterMap.
var bootParamPaths = []string{
	"Device.LocalAgent.ManufacturerOUI",
	"Device.LocalAgent.ProductClass",
	"Device.LocalAgent.SerialNumber",
	"Device.LocalAgent.X_ARRIS-COM_IPAddr",
}

// NewMessageID mints a msg_id for an agent-initiated message: a random
// positive integer in decimal form. Uniqueness is best effort; the agent
// never correlates notify responses by id.
func NewMessageID() string {
	return strconv.FormatInt(1+rand.Int63n(1<<62), 10)
}

// Notification addresses the agent-initiated messages of one
// subscription: who they come from, which Controller receives them, and
// the subscription they answer to.
type Notification struct {
	FromID         string
	ToID           string
	SubscriptionID string
}

func (n *Notification) newNotifyMsg(body *usp.Notify) *usp.Msg {
	body.SubscriptionID = n.SubscriptionID
	return &usp.Msg{
		Header: &usp.Header{MsgID: NewMessageID(), MsgType: usp.MsgNotify},
		Body:   &usp.Body{Request: &usp.Request{Notify: body}},
	}
}

// Boot builds the Boot! event sent once at startup. BootParameterMap is
// a JSON object literal over the boot parameter paths, read from the
// database at build time.
func (n *Notification) Boot(db *agentdb.Database) (*usp.Msg, error) {
	bootParams := make(map[string]string, len(bootParamPaths))
	for _, path := range bootParamPaths {
		value, err := db.GetStr(path)
		if err != nil {
			return nil, err
		}
		bootParams[path] = value
	}
	paramMap, err := json.Marshal(bootParams)
	if err != nil {
		return nil, err
	}

	return n.newNotifyMsg(&usp.Notify{
		Event: &usp.Event{
			ObjPath:   "Device.LocalAgent.",
			EventName: "Boot!",
			Params: map[string]string{
				"CommandKey":       "",
				"Cause":            "LocalReboot",
				"BootParameterMap": string(paramMap),
			},
		},
	}), nil
}

// Periodic builds the Periodic! event for the object path the
// subscription references.
func (n *Notification) Periodic(objPath string) *usp.Msg {
	return n.newNotifyMsg(&usp.Notify{
		Event: &usp.Event{ObjPath: objPath, EventName: "Periodic!"},
	})
}

// ValueChange reports a watched parameter's new value.
func (n *Notification) ValueChange(paramPath, paramValue string) *usp.Msg {
	return n.newNotifyMsg(&usp.Notify{
		ValueChange: &usp.ValueChange{ParamPath: paramPath, ParamValue: paramValue},
	})
}

// Wrap seals msg in a plaintext Record addressed to the subscription's
// recipient and serializes it for the MTP.
func (n *Notification) Wrap(msg *usp.Msg) []byte {
	return usp.NewRecord(n.FromID, n.ToID, msg).Marshal()
}
