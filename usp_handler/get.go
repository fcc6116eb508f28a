package handler

import (
	"strings"

	log "github.com/golang/glog"

	"github.com/johnblackford/agent/common_utils"
	"github.com/johnblackford/agent/usp"
)

// processGet resolves each requested path and reports its parameter
// values. A path outside the supported data model fails that one request
// path with error 11002; the remaining paths are still answered.
func (h *UspRequestHandler) processGet(req *usp.Msg) *usp.Msg {
	log.V(1).Info("Processing a Get Request...")

	getResp := &usp.GetResp{}
	failed := false
	for _, reqPath := range req.Body.Request.Get.ParamPaths {
		pathResult := &usp.RequestedPathResult{RequestedPath: reqPath}

		if err := h.resolveGetPath(reqPath, pathResult); err != nil {
			log.Warningf("Invalid Path encountered: %s", reqPath)
			pathResult.ErrCode = 11002
			pathResult.ErrMsg = "Invalid Path: " + reqPath + " is not a part of the supported data model"
			pathResult.ResolvedPathResults = nil
			failed = true
		}
		getResp.ReqPathResults = append(getResp.ReqPathResults, pathResult)
	}
	if failed {
		common_utils.IncCounter(common_utils.USP_GET_FAIL)
	}

	return &usp.Msg{
		Header: &usp.Header{MsgID: req.Header.MsgID, MsgType: usp.MsgGetResp},
		Body:   &usp.Body{Response: &usp.Response{GetResp: getResp}},
	}
}

// resolveGetPath fills pathResult with one ResolvedPathResult per affected
// object. Result keys are relative paths: for a partial request they are
// relative to the resolved object, for a full request relative to the
// requested partial so wildcard matches stay distinguishable.
func (h *UspRequestHandler) resolveGetPath(reqPath string, pathResult *usp.RequestedPathResult) error {
	partialPath, paramName := splitPath(reqPath)
	log.V(2).Infof("Split Path [%s] into [%s] and [%s]", reqPath, partialPath, paramName)

	affectedPaths, err := h.db.FindObjects(partialPath)
	if err != nil {
		return err
	}
	log.V(1).Infof("Found [%d] Affected Paths for %s", len(affectedPaths), partialPath)

	for _, affectedPath := range affectedPaths {
		log.V(2).Infof("Requested Path [%s] resolved to: %s", reqPath, affectedPath)
		resolved := &usp.ResolvedPathResult{
			ResolvedPath: affectedPath,
			ResultParams: make(map[string]string),
		}

		if paramName == "" {
			items, err := h.db.FindParams(affectedPath)
			if err != nil {
				return err
			}
			for _, item := range items {
				value, err := h.db.GetStr(item)
				if err != nil {
					return err
				}
				resolved.ResultParams[diffPaths(affectedPath, item)] = value
			}
		} else {
			param := affectedPath + paramName
			value, err := h.db.GetStr(param)
			if err != nil {
				return err
			}
			resolved.ResultParams[diffPaths(partialPath, param)] = value
		}
		pathResult.ResolvedPathResults = append(pathResult.ResolvedPathResults, resolved)
	}
	return nil
}

// splitPath splits a requested path into its partial path and parameter
// name. A partial request keeps its trailing dot and has no parameter.
func splitPath(path string) (string, string) {
	if strings.HasSuffix(path, ".") {
		return path, ""
	}
	parts := strings.Split(path, ".")
	last := len(parts) - 1
	return common_utils.BuildPathFromParts(parts, last), parts[last]
}

// diffPaths strips the leading segments fullPath shares with negativePath
// and returns the remainder, the parameter path relative to negativePath.
func diffPaths(negativePath, fullPath string) string {
	negativeParts := strings.Split(negativePath, ".")
	fullParts := strings.Split(fullPath, ".")

	index := 0
	for index < len(negativeParts) && index < len(fullParts) {
		if negativeParts[index] != fullParts[index] {
			break
		}
		index++
	}
	return strings.Join(fullParts[index:], ".")
}
