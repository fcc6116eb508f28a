package usp

// Msg field numbers, one block per message. The layout is fixed: changing
// a number breaks wire compatibility with every peer.
const (
	msgHeader = 1
	msgBody   = 2

	hdrMsgID   = 1
	hdrMsgType = 2

	bodyRequest  = 1
	bodyResponse = 2
	bodyError    = 3

	reqGet            = 1
	reqGetInstances   = 2
	reqGetImplObjects = 3
	reqSet            = 4
	reqOperate        = 5
	reqNotify         = 6

	respGetResp            = 1
	respGetInstancesResp   = 2
	respGetImplObjectsResp = 3
	respSetResp            = 4
	respOperateResp        = 5
	respNotifyResp         = 6

	errErrCode   = 1
	errErrMsg    = 2
	errParamErrs = 3

	errPEParamPath = 1
	errPEErrCode   = 2
	errPEErrMsg    = 3

	getParamPaths = 1

	getRespReqPathResults = 1

	rprRequestedPath       = 1
	rprErrCode             = 2
	rprErrMsg              = 3
	rprResolvedPathResults = 4

	resolvedPath = 1
	resultParams = 2

	setAllowPartial = 1
	setUpdateObjs   = 2

	updObjPath       = 1
	updParamSettings = 2

	upsParam    = 1
	upsValue    = 2
	upsRequired = 3

	setRespUpdatedObjResults = 1

	uorRequestedPath = 1
	uorOperFailure   = 2
	uorOperSuccess   = 3

	sfErrCode             = 1
	sfErrMsg              = 2
	sfUpdatedInstFailures = 3

	uifAffectedPath = 1
	uifParamErrs    = 2

	ssUpdatedInstResults = 1

	uirAffectedPath  = 1
	uirUpdatedParams = 2
	uirParamErrs     = 3

	speParam   = 1
	speErrCode = 2
	speErrMsg  = 3

	opCommand    = 1
	opCommandKey = 2
	opSendResp   = 3
	opInputArgs  = 4

	opRespOperationResults = 1

	orExecutedCommand = 1
	orOutputArgs      = 2
	orCmdFailure      = 3

	cfErrCode = 1
	cfErrMsg  = 2

	giObjPaths       = 1
	giFirstLevelOnly = 2

	giRespReqPathResults = 1

	iprRequestedPath = 1
	iprInvalidPath   = 2
	iprErrMsg        = 3
	iprCurrInsts     = 4

	gioObjPaths  = 1
	gioNextLevel = 2

	gioRespReqPathResults = 1

	ioprRequestedPath = 1
	ioprInvalidPath   = 2
	ioprErrMsg        = 3
	ioprImplObjs      = 4

	ntfSubscriptionID = 1
	ntfSendResp       = 2
	ntfEvent          = 3
	ntfValueChange    = 4

	evObjPath   = 1
	evEventName = 2
	evParams    = 3

	vcParamPath  = 1
	vcParamValue = 2

	ntfRespSubscriptionID = 1
)

// Marshal renders the Msg in its deterministic binary form.
func (m *Msg) Marshal() []byte {
	var b []byte
	if m.Header != nil {
		var h []byte
		h = appendString(h, hdrMsgID, m.Header.MsgID)
		h = appendVarint(h, hdrMsgType, uint64(m.Header.MsgType))
		b = appendMessage(b, msgHeader, h)
	}
	if m.Body != nil {
		b = appendMessage(b, msgBody, m.Body.marshal())
	}
	return b
}

func (bd *Body) marshal() []byte {
	var b []byte
	if bd.Request != nil {
		b = appendMessage(b, bodyRequest, bd.Request.marshal())
	}
	if bd.Response != nil {
		b = appendMessage(b, bodyResponse, bd.Response.marshal())
	}
	if bd.Error != nil {
		b = appendMessage(b, bodyError, bd.Error.marshal())
	}
	return b
}

func (r *Request) marshal() []byte {
	var b []byte
	if r.Get != nil {
		b = appendMessage(b, reqGet, appendStringList(nil, getParamPaths, r.Get.ParamPaths))
	}
	if r.GetInstances != nil {
		var sub []byte
		sub = appendStringList(sub, giObjPaths, r.GetInstances.ObjPaths)
		sub = appendBool(sub, giFirstLevelOnly, r.GetInstances.FirstLevelOnly)
		b = appendMessage(b, reqGetInstances, sub)
	}
	if r.GetImplObjects != nil {
		var sub []byte
		sub = appendStringList(sub, gioObjPaths, r.GetImplObjects.ObjPaths)
		sub = appendBool(sub, gioNextLevel, r.GetImplObjects.NextLevel)
		b = appendMessage(b, reqGetImplObjects, sub)
	}
	if r.Set != nil {
		b = appendMessage(b, reqSet, r.Set.marshal())
	}
	if r.Operate != nil {
		var sub []byte
		sub = appendString(sub, opCommand, r.Operate.Command)
		sub = appendString(sub, opCommandKey, r.Operate.CommandKey)
		sub = appendBool(sub, opSendResp, r.Operate.SendResp)
		sub = appendStringMap(sub, opInputArgs, r.Operate.InputArgs)
		b = appendMessage(b, reqOperate, sub)
	}
	if r.Notify != nil {
		b = appendMessage(b, reqNotify, r.Notify.marshal())
	}
	return b
}

func (r *Response) marshal() []byte {
	var b []byte
	if r.GetResp != nil {
		var sub []byte
		for _, pr := range r.GetResp.ReqPathResults {
			sub = appendMessage(sub, getRespReqPathResults, pr.marshal())
		}
		b = appendMessage(b, respGetResp, sub)
	}
	if r.GetInstancesResp != nil {
		var sub []byte
		for _, pr := range r.GetInstancesResp.ReqPathResults {
			var e []byte
			e = appendString(e, iprRequestedPath, pr.RequestedPath)
			e = appendBool(e, iprInvalidPath, pr.InvalidPath)
			e = appendString(e, iprErrMsg, pr.ErrMsg)
			e = appendStringList(e, iprCurrInsts, pr.CurrInsts)
			sub = appendMessage(sub, giRespReqPathResults, e)
		}
		b = appendMessage(b, respGetInstancesResp, sub)
	}
	if r.GetImplObjectsResp != nil {
		var sub []byte
		for _, pr := range r.GetImplObjectsResp.ReqPathResults {
			var e []byte
			e = appendString(e, ioprRequestedPath, pr.RequestedPath)
			e = appendBool(e, ioprInvalidPath, pr.InvalidPath)
			e = appendString(e, ioprErrMsg, pr.ErrMsg)
			e = appendStringList(e, ioprImplObjs, pr.ImplObjs)
			sub = appendMessage(sub, gioRespReqPathResults, e)
		}
		b = appendMessage(b, respGetImplObjectsResp, sub)
	}
	if r.SetResp != nil {
		var sub []byte
		for _, or := range r.SetResp.UpdatedObjResults {
			sub = appendMessage(sub, setRespUpdatedObjResults, or.marshal())
		}
		b = appendMessage(b, respSetResp, sub)
	}
	if r.OperateResp != nil {
		var sub []byte
		for _, or := range r.OperateResp.OperationResults {
			var e []byte
			e = appendString(e, orExecutedCommand, or.ExecutedCommand)
			e = appendStringMap(e, orOutputArgs, or.OutputArgs)
			if or.CmdFailure != nil {
				var f []byte
				f = appendVarint(f, cfErrCode, uint64(or.CmdFailure.ErrCode))
				f = appendString(f, cfErrMsg, or.CmdFailure.ErrMsg)
				e = appendMessage(e, orCmdFailure, f)
			}
			sub = appendMessage(sub, opRespOperationResults, e)
		}
		b = appendMessage(b, respOperateResp, sub)
	}
	if r.NotifyResp != nil {
		var sub []byte
		sub = appendString(sub, ntfRespSubscriptionID, r.NotifyResp.SubscriptionID)
		b = appendMessage(b, respNotifyResp, sub)
	}
	return b
}

func (e *Error) marshal() []byte {
	var b []byte
	b = appendVarint(b, errErrCode, uint64(e.ErrCode))
	b = appendString(b, errErrMsg, e.ErrMsg)
	for _, pe := range e.ParamErrs {
		var sub []byte
		sub = appendString(sub, errPEParamPath, pe.ParamPath)
		sub = appendVarint(sub, errPEErrCode, uint64(pe.ErrCode))
		sub = appendString(sub, errPEErrMsg, pe.ErrMsg)
		b = appendMessage(b, errParamErrs, sub)
	}
	return b
}

func (pr *RequestedPathResult) marshal() []byte {
	var b []byte
	b = appendString(b, rprRequestedPath, pr.RequestedPath)
	b = appendVarint(b, rprErrCode, uint64(pr.ErrCode))
	b = appendString(b, rprErrMsg, pr.ErrMsg)
	for _, rp := range pr.ResolvedPathResults {
		var sub []byte
		sub = appendString(sub, resolvedPath, rp.ResolvedPath)
		sub = appendStringMap(sub, resultParams, rp.ResultParams)
		b = appendMessage(b, rprResolvedPathResults, sub)
	}
	return b
}

func (s *Set) marshal() []byte {
	var b []byte
	b = appendBool(b, setAllowPartial, s.AllowPartial)
	for _, uo := range s.UpdateObjs {
		var sub []byte
		sub = appendString(sub, updObjPath, uo.ObjPath)
		for _, ps := range uo.ParamSettings {
			var e []byte
			e = appendString(e, upsParam, ps.Param)
			e = appendString(e, upsValue, ps.Value)
			e = appendBool(e, upsRequired, ps.Required)
			sub = appendMessage(sub, updParamSettings, e)
		}
		b = appendMessage(b, setUpdateObjs, sub)
	}
	return b
}

func (or *UpdatedObjectResult) marshal() []byte {
	var b []byte
	b = appendString(b, uorRequestedPath, or.RequestedPath)
	if or.OperFailure != nil {
		var sub []byte
		sub = appendVarint(sub, sfErrCode, uint64(or.OperFailure.ErrCode))
		sub = appendString(sub, sfErrMsg, or.OperFailure.ErrMsg)
		for _, f := range or.OperFailure.UpdatedInstFailures {
			var e []byte
			e = appendString(e, uifAffectedPath, f.AffectedPath)
			for _, pe := range f.ParamErrs {
				e = appendMessage(e, uifParamErrs, pe.marshal())
			}
			sub = appendMessage(sub, sfUpdatedInstFailures, e)
		}
		b = appendMessage(b, uorOperFailure, sub)
	}
	if or.OperSuccess != nil {
		var sub []byte
		for _, ir := range or.OperSuccess.UpdatedInstResults {
			var e []byte
			e = appendString(e, uirAffectedPath, ir.AffectedPath)
			e = appendStringMap(e, uirUpdatedParams, ir.UpdatedParams)
			for _, pe := range ir.ParamErrs {
				e = appendMessage(e, uirParamErrs, pe.marshal())
			}
			sub = appendMessage(sub, ssUpdatedInstResults, e)
		}
		b = appendMessage(b, uorOperSuccess, sub)
	}
	return b
}

func (pe *SetParamError) marshal() []byte {
	var b []byte
	b = appendString(b, speParam, pe.Param)
	b = appendVarint(b, speErrCode, uint64(pe.ErrCode))
	b = appendString(b, speErrMsg, pe.ErrMsg)
	return b
}

func (n *Notify) marshal() []byte {
	var b []byte
	b = appendString(b, ntfSubscriptionID, n.SubscriptionID)
	b = appendBool(b, ntfSendResp, n.SendResp)
	if n.Event != nil {
		var sub []byte
		sub = appendString(sub, evObjPath, n.Event.ObjPath)
		sub = appendString(sub, evEventName, n.Event.EventName)
		sub = appendStringMap(sub, evParams, n.Event.Params)
		b = appendMessage(b, ntfEvent, sub)
	}
	if n.ValueChange != nil {
		var sub []byte
		sub = appendString(sub, vcParamPath, n.ValueChange.ParamPath)
		sub = appendString(sub, vcParamValue, n.ValueChange.ParamValue)
		b = appendMessage(b, ntfValueChange, sub)
	}
	return b
}
