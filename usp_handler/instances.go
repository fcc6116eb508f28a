package handler

import (
	log "github.com/golang/glog"

	"github.com/johnblackford/agent/usp"
)

// processGetInstances lists the concrete rows under each requested table
// path. Paths outside the supported data model flag that one request
// path as invalid.
func (h *UspRequestHandler) processGetInstances(req *usp.Msg) *usp.Msg {
	log.V(1).Info("Processing a GetInstances Request...")

	getInstResp := &usp.GetInstancesResp{}
	for _, objPath := range req.Body.Request.GetInstances.ObjPaths {
		pathResult := &usp.InstancesPathResult{RequestedPath: objPath}

		instances, err := h.db.FindInstances(objPath)
		if err != nil {
			log.Warningf("Invalid Path encountered: %s", objPath)
			pathResult.InvalidPath = true
			pathResult.ErrMsg = "Invalid Path: " + objPath + " is not a part of the supported data model"
		} else {
			pathResult.CurrInsts = instances
		}
		getInstResp.ReqPathResults = append(getInstResp.ReqPathResults, pathResult)
	}

	return &usp.Msg{
		Header: &usp.Header{MsgID: req.Header.MsgID, MsgType: usp.MsgGetInstancesResp},
		Body:   &usp.Body{Response: &usp.Response{GetInstancesResp: getInstResp}},
	}
}

// processGetImplObjects lists the generic object paths implemented under
// each requested path, next level only when the request asks for it.
func (h *UspRequestHandler) processGetImplObjects(req *usp.Msg) *usp.Msg {
	log.V(1).Info("Processing a GetImplObjects Request...")

	nextLevel := req.Body.Request.GetImplObjects.NextLevel
	getImplResp := &usp.GetImplObjectsResp{}
	for _, objPath := range req.Body.Request.GetImplObjects.ObjPaths {
		pathResult := &usp.ImplObjectsPathResult{RequestedPath: objPath}

		implObjs, err := h.db.FindImplObjects(objPath, nextLevel)
		if err != nil {
			log.Warningf("Invalid Path encountered: %s", objPath)
			pathResult.InvalidPath = true
			pathResult.ErrMsg = "Invalid Path: " + objPath + " is not a part of the supported data model"
		} else {
			pathResult.ImplObjs = implObjs
		}
		getImplResp.ReqPathResults = append(getImplResp.ReqPathResults, pathResult)
	}

	return &usp.Msg{
		Header: &usp.Header{MsgID: req.Header.MsgID, MsgType: usp.MsgGetImplObjectsResp},
		Body:   &usp.Body{Response: &usp.Response{GetImplObjectsResp: getImplResp}},
	}
}
