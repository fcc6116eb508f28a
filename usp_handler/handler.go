// Package handler implements the agent side of the USP request/response
// exchange. It validates the incoming Record envelope and the Msg inside
// it, routes the request by message type, executes it against the agent
// database, and wraps the response Msg in a new Record addressed back to
// the requesting Controller.
package handler

import (
	"errors"

	log "github.com/golang/glog"

	agentdb "github.com/johnblackford/agent/agent_db"
	"github.com/johnblackford/agent/common_utils"
	"github.com/johnblackford/agent/usp"
)

// Service executes one data model operation on behalf of the dispatcher
// and returns the operation's output arguments.
type Service interface {
	Invoke() (map[string]string, error)
}

// ServiceMap maps a product class to the operation commands its services
// implement.
type ServiceMap map[string]map[string]Service

// ProtocolViolationError reports an inbound payload that failed USP
// Record or Msg validation. The listener drops the request, responding
// with a best effort error Record when one could be built.
type ProtocolViolationError struct {
	Reason string
}

func (e *ProtocolViolationError) Error() string {
	return "USP Message validation failed: " + e.Reason
}

// UspRequestHandler is a USP message handler to be used by a USP Agent.
type UspRequestHandler struct {
	endpointID string
	db         *agentdb.Database
	serviceMap ServiceMap
}

// NewUspRequestHandler builds a handler that answers on behalf of the
// agent endpoint identified by endpointID.
func NewUspRequestHandler(endpointID string, db *agentdb.Database, serviceMap ServiceMap) *UspRequestHandler {
	return &UspRequestHandler{
		endpointID: endpointID,
		db:         db,
		serviceMap: serviceMap,
	}
}

// EndpointID returns the agent endpoint the handler answers for.
func (h *UspRequestHandler) EndpointID() string {
	return h.endpointID
}

// HandleRequest handles one request/response interaction. It returns the
// parsed request Record and Msg, the response Msg, and the serialized
// response Record. On a protocol violation the returned error is a
// *ProtocolViolationError; the response bytes still carry an error Record
// whenever the incoming envelope was intact enough to address one.
func (h *UspRequestHandler) HandleRequest(payload []byte) (*usp.Record, *usp.Msg, *usp.Msg, []byte, error) {
	reqRecord, err := usp.UnmarshalRecord(payload)
	if err != nil {
		log.Errorf("USP Record parsing failed: %v", err)
		return nil, nil, nil, nil, &ProtocolViolationError{Reason: err.Error()}
	}
	log.V(2).Info("Incoming payload parsed as a USP Record")

	if err = h.validateRecord(reqRecord); err != nil {
		violation := &ProtocolViolationError{Reason: err.Error()}
		log.Errorf("%v", violation)
		respMsg := newErrorMsg("", 9000, violation.Error())
		return reqRecord, nil, respMsg, h.wrapResponse(reqRecord.FromID, respMsg), violation
	}
	log.V(1).Info("Incoming USP Record passed validation")

	reqMsg, err := usp.UnmarshalMsg(reqRecord.NoSessionContext.Payload)
	if err != nil {
		violation := &ProtocolViolationError{Reason: err.Error()}
		log.Errorf("%v", violation)
		respMsg := newErrorMsg("", 9000, violation.Error())
		return reqRecord, nil, respMsg, h.wrapResponse(reqRecord.FromID, respMsg), violation
	}
	log.V(2).Info("Incoming payload parsed as a USP Msg")

	if err = validateMsg(reqMsg); err != nil {
		violation := &ProtocolViolationError{Reason: err.Error()}
		log.Errorf("%v", violation)
		msgID := ""
		if reqMsg.Header != nil {
			msgID = reqMsg.Header.MsgID
		}
		respMsg := newErrorMsg(msgID, 9000, violation.Error())
		return reqRecord, reqMsg, respMsg, h.wrapResponse(reqRecord.FromID, respMsg), violation
	}
	log.V(1).Infof("Received a [%s] Request", reqMsg.Header.MsgType)

	respMsg := h.processRequest(reqMsg)
	return reqRecord, reqMsg, respMsg, h.wrapResponse(reqRecord.FromID, respMsg), nil
}

// validateRecord rejects envelopes this agent cannot answer.
func (h *UspRequestHandler) validateRecord(rec *usp.Record) error {
	if rec.Version == "" {
		return errors.New("USP Record missing version")
	}
	if rec.ToID == "" {
		return errors.New("USP Record missing to_id")
	}
	if rec.ToID != h.endpointID {
		return errors.New("USP Record has incorrect to_id")
	}
	if rec.FromID == "" {
		return errors.New("Header missing from_id")
	}
	if rec.PayloadSecurity != usp.SecurityPlaintext {
		return errors.New("USP Record has unsupported Payload Security")
	}
	if rec.NoSessionContext == nil {
		return errors.New("USP Record has an unsupported Record Type")
	}
	return nil
}

func validateMsg(msg *usp.Msg) error {
	if msg.Header == nil || msg.Header.MsgID == "" {
		return errors.New("USP Message Header missing msg_id")
	}
	if msg.Body == nil || msg.Body.Request == nil {
		return errors.New("USP Message Body doesn't contain a Request element")
	}
	return nil
}

// processRequest routes the validated request by message type. A header
// type without the matching request body falls through to the default
// mismatch error.
func (h *UspRequestHandler) processRequest(req *usp.Msg) *usp.Msg {
	resp := newErrorMsg(req.Header.MsgID, 9000,
		"Message Failure: Request body does not match Header msg_type")

	switch req.Header.MsgType {
	case usp.MsgGet:
		if req.Body.Request.Get != nil {
			common_utils.IncCounter(common_utils.USP_GET)
			resp = h.processGet(req)
		}
	case usp.MsgSet:
		if req.Body.Request.Set != nil {
			common_utils.IncCounter(common_utils.USP_SET)
			resp = h.processSet(req)
		}
	case usp.MsgOperate:
		if req.Body.Request.Operate != nil {
			common_utils.IncCounter(common_utils.USP_OPERATE)
			resp = h.processOperate(req)
		}
	case usp.MsgGetInstances:
		if req.Body.Request.GetInstances != nil {
			common_utils.IncCounter(common_utils.USP_GET_INSTANCES)
			resp = h.processGetInstances(req)
		}
	case usp.MsgGetImplObjects:
		if req.Body.Request.GetImplObjects != nil {
			common_utils.IncCounter(common_utils.USP_GET_IMPL_OBJECTS)
			resp = h.processGetImplObjects(req)
		}
	default:
		common_utils.IncCounter(common_utils.USP_UNKNOWN)
		resp = newErrorMsg(req.Header.MsgID, 9000, "Invalid USP Message: unknown command")
	}
	return resp
}

// wrapResponse wraps the response Msg in a Record addressed to the
// requesting Controller and serializes it.
func (h *UspRequestHandler) wrapResponse(toID string, respMsg *usp.Msg) []byte {
	return usp.NewRecord(h.endpointID, toID, respMsg).Marshal()
}

// newErrorMsg builds an ERROR message echoing the request's msg_id.
func newErrorMsg(msgID string, errCode uint32, errText string) *usp.Msg {
	return &usp.Msg{
		Header: &usp.Header{MsgID: msgID, MsgType: usp.MsgError},
		Body:   &usp.Body{Error: &usp.Error{ErrCode: errCode, ErrMsg: errText}},
	}
}
