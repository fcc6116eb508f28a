package handler

import (
	"fmt"
	"regexp"
	"strings"

	log "github.com/golang/glog"

	"github.com/johnblackford/agent/common_utils"
	"github.com/johnblackford/agent/usp"
)

var instNumSegment = regexp.MustCompile(`\.[0-9]+\.`)

// setValidationError fails an entire obj_path of a Set request.
type setValidationError struct {
	code uint32
	text string
}

func (e *setValidationError) Error() string {
	return fmt.Sprintf("[%d] - %s", e.code, e.text)
}

// setStage collects validated writes in request order so nothing touches
// the database until the whole Set has been reconciled.
type setStage struct {
	order  []string
	values map[string]string
}

func newSetStage() *setStage {
	return &setStage{values: make(map[string]string)}
}

func (s *setStage) put(path, value string) {
	if _, ok := s.values[path]; !ok {
		s.order = append(s.order, path)
	}
	s.values[path] = value
}

func (s *setStage) merge(other *setStage) {
	for _, path := range other.order {
		s.put(path, other.values[path])
	}
}

// processSet validates every update object, then either applies all
// staged writes or fails. With allow_partial each object succeeds or
// fails on its own; without it any failure rejects the entire Set, no
// write is applied, and the error lists one ParamError per parameter
// setting: the failures themselves plus a not-applied entry for every
// write that had already validated.
func (h *UspRequestHandler) processSet(req *usp.Msg) *usp.Msg {
	log.V(1).Info("Processing a Set Request...")

	set := req.Body.Request.Set
	stage := newSetStage()
	var objResults []*usp.UpdatedObjectResult
	var errParamErrs []*usp.ErrorParamError
	var notAppliedErrs []*usp.ErrorParamError

	for _, updateObj := range set.UpdateObjs {
		objResults, errParamErrs, notAppliedErrs = h.validateUpdateObject(
			updateObj, set.AllowPartial, stage, objResults, errParamErrs, notAppliedErrs)
	}

	if len(errParamErrs) > 0 {
		common_utils.IncCounter(common_utils.USP_SET_FAIL)
		resp := newErrorMsg(req.Header.MsgID, 9000,
			"Invalid Path Found, Allow Partial Updates = False :: Fail the entire Set")
		resp.Body.Error.ParamErrs = append(errParamErrs, notAppliedErrs...)
		return resp
	}

	for _, path := range stage.order {
		if err := h.db.Update(path, stage.values[path]); err != nil {
			log.Errorf("Update of validated path %s failed: %v", path, err)
		}
	}

	return &usp.Msg{
		Header: &usp.Header{MsgID: req.Header.MsgID, MsgType: usp.MsgSetResp},
		Body: &usp.Body{Response: &usp.Response{
			SetResp: &usp.SetResp{UpdatedObjResults: objResults},
		}},
	}
}

// validateUpdateObject validates one update object. Its writes land in
// the shared stage only when every affected path validated cleanly, so a
// failing object never leaks partial writes. Clean writes are also noted
// in notAppliedErrs so a later whole-Set failure can report them.
func (h *UspRequestHandler) validateUpdateObject(updateObj *usp.UpdateObject, allowPartial bool,
	stage *setStage, objResults []*usp.UpdatedObjectResult, errParamErrs []*usp.ErrorParamError,
	notAppliedErrs []*usp.ErrorParamError) ([]*usp.UpdatedObjectResult, []*usp.ErrorParamError, []*usp.ErrorParamError) {

	objPath := updateObj.ObjPath

	affectedPaths, svErr := h.affectedPathsForSet(objPath)
	if svErr != nil {
		log.Warningf("Set validation failed for %s: %v", objPath, svErr)
		if allowPartial {
			objResults = append(objResults, &usp.UpdatedObjectResult{
				RequestedPath: objPath,
				OperFailure:   &usp.SetFailure{ErrCode: svErr.code, ErrMsg: svErr.text},
			})
		} else {
			errParamErrs = append(errParamErrs, &usp.ErrorParamError{
				ParamPath: objPath,
				ErrCode:   svErr.code,
				ErrMsg:    svErr.text,
			})
		}
		return objResults, errParamErrs, notAppliedErrs
	}

	objStage := newSetStage()
	var instResults []*usp.UpdatedInstanceResult
	var instFailures []*usp.UpdatedInstanceFailure

	for _, affectedPath := range affectedPaths {
		instResult, failedParams := h.validateSetParams(affectedPath, updateObj, objStage)
		if len(failedParams) > 0 {
			instFailures = append(instFailures, &usp.UpdatedInstanceFailure{
				AffectedPath: affectedPath,
				ParamErrs:    failedParams,
			})
		}
		instResults = append(instResults, instResult)
	}

	if len(instFailures) == 0 {
		stage.merge(objStage)
		objResults = append(objResults, &usp.UpdatedObjectResult{
			RequestedPath: objPath,
			OperSuccess:   &usp.SetSuccess{UpdatedInstResults: instResults},
		})
		if !allowPartial {
			for _, instResult := range instResults {
				for _, setting := range updateObj.ParamSettings {
					if _, ok := instResult.UpdatedParams[setting.Param]; !ok {
						continue
					}
					notAppliedErrs = append(notAppliedErrs, &usp.ErrorParamError{
						ParamPath: instResult.AffectedPath + setting.Param,
						ErrCode:   9000,
						ErrMsg:    "Parameter was not updated, Allow Partial Updates = False :: Fail the entire Set",
					})
				}
			}
		}
		return objResults, errParamErrs, notAppliedErrs
	}

	if allowPartial {
		objResults = append(objResults, &usp.UpdatedObjectResult{
			RequestedPath: objPath,
			OperFailure: &usp.SetFailure{
				ErrCode:             9000,
				ErrMsg:              "Failed to Set Required Parameters",
				UpdatedInstFailures: instFailures,
			},
		})
	} else {
		for _, failure := range instFailures {
			for _, paramErr := range failure.ParamErrs {
				errParamErrs = append(errParamErrs, &usp.ErrorParamError{
					ParamPath: failure.AffectedPath + paramErr.Param,
					ErrCode:   paramErr.ErrCode,
					ErrMsg:    paramErr.ErrMsg,
				})
			}
		}
	}
	return objResults, errParamErrs, notAppliedErrs
}

// validateSetParams validates the parameter settings against one affected
// path. Required parameter failures are returned separately because they
// fail the whole object; the rest ride along on the instance result.
func (h *UspRequestHandler) validateSetParams(affectedPath string, updateObj *usp.UpdateObject,
	stage *setStage) (*usp.UpdatedInstanceResult, []*usp.SetParamError) {

	var failedParams []*usp.SetParamError
	instResult := &usp.UpdatedInstanceResult{
		AffectedPath:  affectedPath,
		UpdatedParams: make(map[string]string),
	}

	for _, setting := range updateObj.ParamSettings {
		paramPath := affectedPath + setting.Param

		errText := h.stageParam(paramPath, setting.Value, stage)
		if errText == "" {
			instResult.UpdatedParams[setting.Param] = setting.Value
			continue
		}

		paramErr := &usp.SetParamError{Param: setting.Param, ErrCode: 9000, ErrMsg: errText}
		if setting.Required {
			failedParams = append(failedParams, paramErr)
		} else {
			instResult.ParamErrs = append(instResult.ParamErrs, paramErr)
		}
	}

	return instResult, failedParams
}

// stageParam validates one parameter write and stages it. A non-empty
// return is the parameter error text. Writes that match the current value
// are reported as updated but never staged.
func (h *UspRequestHandler) stageParam(paramPath, value string, stage *setStage) string {
	writable, err := h.db.IsParamWritable(paramPath)
	if err != nil {
		return "Parameter does not exist"
	}
	if !writable {
		return "Parameter is not writable"
	}

	currValue, err := h.db.GetStr(paramPath)
	if err != nil {
		return "Parameter does not exist"
	}
	if currValue == value {
		log.V(1).Infof("Ignoring %s: same value as current", paramPath)
		return ""
	}
	stage.put(paramPath, value)
	return ""
}

// affectedPathsForSet resolves an obj_path to the concrete rows a Set
// applies to. Only existing rows qualify; an empty resolution is legal
// for static and searching paths but fails instance addressed ones.
func (h *UspRequestHandler) affectedPathsForSet(objPath string) ([]string, *setValidationError) {
	affectedPaths, err := h.db.FindObjects(objPath)
	if err != nil {
		return nil, &setValidationError{code: 9000, text: "Invalid obj_path encountered - " + objPath}
	}
	if len(affectedPaths) == 0 && !isPathStatic(objPath) && !isPathSearching(objPath) {
		return nil, &setValidationError{code: 9000, text: "Non-existent obj_path encountered - " + objPath}
	}
	log.V(1).Infof("Found [%d] Affected Paths for %s", len(affectedPaths), objPath)
	return affectedPaths, nil
}

// isPathStatic reports whether the partial path carries no instance
// number addressing and no searching elements.
func isPathStatic(partialPath string) bool {
	return !isPathSearching(partialPath) && !instNumSegment.MatchString(partialPath)
}

// isPathSearching reports whether the partial path carries wildcard
// based searching elements.
func isPathSearching(partialPath string) bool {
	return strings.Contains(partialPath, ".*.")
}
