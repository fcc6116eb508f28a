package usp

import (
	"google.golang.org/protobuf/encoding/protowire"
)

// UnmarshalMsg parses a Msg from its binary form. Unknown fields are
// skipped; malformed input is rejected.
func UnmarshalMsg(data []byte) (*Msg, error) {
	m := &Msg{}
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, decodeErr("Msg", protowire.ParseError(n))
		}
		b = b[n:]
		switch {
		case num == msgHeader && typ == protowire.BytesType:
			v, n, err := consumeBytes(b)
			if err != nil {
				return nil, decodeErr("Msg.header", err)
			}
			h, err := unmarshalHeader(v)
			if err != nil {
				return nil, err
			}
			m.Header, b = h, b[n:]
		case num == msgBody && typ == protowire.BytesType:
			v, n, err := consumeBytes(b)
			if err != nil {
				return nil, decodeErr("Msg.body", err)
			}
			bd, err := unmarshalBody(v)
			if err != nil {
				return nil, err
			}
			m.Body, b = bd, b[n:]
		default:
			n, err := skipField(b, num, typ)
			if err != nil {
				return nil, decodeErr("Msg", err)
			}
			b = b[n:]
		}
	}
	return m, nil
}

func unmarshalHeader(data []byte) (*Header, error) {
	h := &Header{}
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, decodeErr("Header", protowire.ParseError(n))
		}
		b = b[n:]
		switch {
		case num == hdrMsgID && typ == protowire.BytesType:
			v, n, err := consumeString(b)
			if err != nil {
				return nil, decodeErr("Header.msg_id", err)
			}
			h.MsgID, b = v, b[n:]
		case num == hdrMsgType && typ == protowire.VarintType:
			v, n, err := consumeVarint(b)
			if err != nil {
				return nil, decodeErr("Header.msg_type", err)
			}
			h.MsgType, b = MsgType(v), b[n:]
		default:
			n, err := skipField(b, num, typ)
			if err != nil {
				return nil, decodeErr("Header", err)
			}
			b = b[n:]
		}
	}
	return h, nil
}

func unmarshalBody(data []byte) (*Body, error) {
	bd := &Body{}
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, decodeErr("Body", protowire.ParseError(n))
		}
		b = b[n:]
		if typ != protowire.BytesType {
			n, err := skipField(b, num, typ)
			if err != nil {
				return nil, decodeErr("Body", err)
			}
			b = b[n:]
			continue
		}
		v, n, err := consumeBytes(b)
		if err != nil {
			return nil, decodeErr("Body", err)
		}
		b = b[n:]
		switch num {
		case bodyRequest:
			req, err := unmarshalRequest(v)
			if err != nil {
				return nil, err
			}
			bd.Request = req
		case bodyResponse:
			resp, err := unmarshalResponse(v)
			if err != nil {
				return nil, err
			}
			bd.Response = resp
		case bodyError:
			e, err := unmarshalError(v)
			if err != nil {
				return nil, err
			}
			bd.Error = e
		}
	}
	return bd, nil
}

func unmarshalRequest(data []byte) (*Request, error) {
	r := &Request{}
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, decodeErr("Request", protowire.ParseError(n))
		}
		b = b[n:]
		if typ != protowire.BytesType {
			n, err := skipField(b, num, typ)
			if err != nil {
				return nil, decodeErr("Request", err)
			}
			b = b[n:]
			continue
		}
		v, n, err := consumeBytes(b)
		if err != nil {
			return nil, decodeErr("Request", err)
		}
		b = b[n:]
		switch num {
		case reqGet:
			g, err := unmarshalGet(v)
			if err != nil {
				return nil, err
			}
			r.Get = g
		case reqGetInstances:
			gi, err := unmarshalGetInstances(v)
			if err != nil {
				return nil, err
			}
			r.GetInstances = gi
		case reqGetImplObjects:
			gio, err := unmarshalGetImplObjects(v)
			if err != nil {
				return nil, err
			}
			r.GetImplObjects = gio
		case reqSet:
			s, err := unmarshalSet(v)
			if err != nil {
				return nil, err
			}
			r.Set = s
		case reqOperate:
			op, err := unmarshalOperate(v)
			if err != nil {
				return nil, err
			}
			r.Operate = op
		case reqNotify:
			ntf, err := unmarshalNotify(v)
			if err != nil {
				return nil, err
			}
			r.Notify = ntf
		}
	}
	return r, nil
}

func unmarshalResponse(data []byte) (*Response, error) {
	r := &Response{}
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, decodeErr("Response", protowire.ParseError(n))
		}
		b = b[n:]
		if typ != protowire.BytesType {
			n, err := skipField(b, num, typ)
			if err != nil {
				return nil, decodeErr("Response", err)
			}
			b = b[n:]
			continue
		}
		v, n, err := consumeBytes(b)
		if err != nil {
			return nil, decodeErr("Response", err)
		}
		b = b[n:]
		switch num {
		case respGetResp:
			gr, err := unmarshalGetResp(v)
			if err != nil {
				return nil, err
			}
			r.GetResp = gr
		case respGetInstancesResp:
			gir, err := unmarshalGetInstancesResp(v)
			if err != nil {
				return nil, err
			}
			r.GetInstancesResp = gir
		case respGetImplObjectsResp:
			gior, err := unmarshalGetImplObjectsResp(v)
			if err != nil {
				return nil, err
			}
			r.GetImplObjectsResp = gior
		case respSetResp:
			sr, err := unmarshalSetResp(v)
			if err != nil {
				return nil, err
			}
			r.SetResp = sr
		case respOperateResp:
			or, err := unmarshalOperateResp(v)
			if err != nil {
				return nil, err
			}
			r.OperateResp = or
		case respNotifyResp:
			nr, err := unmarshalNotifyResp(v)
			if err != nil {
				return nil, err
			}
			r.NotifyResp = nr
		}
	}
	return r, nil
}

func unmarshalError(data []byte) (*Error, error) {
	e := &Error{}
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, decodeErr("Error", protowire.ParseError(n))
		}
		b = b[n:]
		switch {
		case num == errErrCode && typ == protowire.VarintType:
			v, n, err := consumeVarint(b)
			if err != nil {
				return nil, decodeErr("Error.err_code", err)
			}
			e.ErrCode, b = uint32(v), b[n:]
		case num == errErrMsg && typ == protowire.BytesType:
			v, n, err := consumeString(b)
			if err != nil {
				return nil, decodeErr("Error.err_msg", err)
			}
			e.ErrMsg, b = v, b[n:]
		case num == errParamErrs && typ == protowire.BytesType:
			v, n, err := consumeBytes(b)
			if err != nil {
				return nil, decodeErr("Error.param_errs", err)
			}
			pe, err := unmarshalErrorParamError(v)
			if err != nil {
				return nil, err
			}
			e.ParamErrs, b = append(e.ParamErrs, pe), b[n:]
		default:
			n, err := skipField(b, num, typ)
			if err != nil {
				return nil, decodeErr("Error", err)
			}
			b = b[n:]
		}
	}
	return e, nil
}

func unmarshalErrorParamError(data []byte) (*ErrorParamError, error) {
	pe := &ErrorParamError{}
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, decodeErr("Error.ParamError", protowire.ParseError(n))
		}
		b = b[n:]
		switch {
		case num == errPEParamPath && typ == protowire.BytesType:
			v, n, err := consumeString(b)
			if err != nil {
				return nil, decodeErr("Error.ParamError.param_path", err)
			}
			pe.ParamPath, b = v, b[n:]
		case num == errPEErrCode && typ == protowire.VarintType:
			v, n, err := consumeVarint(b)
			if err != nil {
				return nil, decodeErr("Error.ParamError.err_code", err)
			}
			pe.ErrCode, b = uint32(v), b[n:]
		case num == errPEErrMsg && typ == protowire.BytesType:
			v, n, err := consumeString(b)
			if err != nil {
				return nil, decodeErr("Error.ParamError.err_msg", err)
			}
			pe.ErrMsg, b = v, b[n:]
		default:
			n, err := skipField(b, num, typ)
			if err != nil {
				return nil, decodeErr("Error.ParamError", err)
			}
			b = b[n:]
		}
	}
	return pe, nil
}

func unmarshalGet(data []byte) (*Get, error) {
	g := &Get{}
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, decodeErr("Get", protowire.ParseError(n))
		}
		b = b[n:]
		switch {
		case num == getParamPaths && typ == protowire.BytesType:
			v, n, err := consumeString(b)
			if err != nil {
				return nil, decodeErr("Get.param_paths", err)
			}
			g.ParamPaths, b = append(g.ParamPaths, v), b[n:]
		default:
			n, err := skipField(b, num, typ)
			if err != nil {
				return nil, decodeErr("Get", err)
			}
			b = b[n:]
		}
	}
	return g, nil
}

func unmarshalGetResp(data []byte) (*GetResp, error) {
	gr := &GetResp{}
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, decodeErr("GetResp", protowire.ParseError(n))
		}
		b = b[n:]
		switch {
		case num == getRespReqPathResults && typ == protowire.BytesType:
			v, n, err := consumeBytes(b)
			if err != nil {
				return nil, decodeErr("GetResp.req_path_results", err)
			}
			pr, err := unmarshalRequestedPathResult(v)
			if err != nil {
				return nil, err
			}
			gr.ReqPathResults, b = append(gr.ReqPathResults, pr), b[n:]
		default:
			n, err := skipField(b, num, typ)
			if err != nil {
				return nil, decodeErr("GetResp", err)
			}
			b = b[n:]
		}
	}
	return gr, nil
}

func unmarshalRequestedPathResult(data []byte) (*RequestedPathResult, error) {
	pr := &RequestedPathResult{}
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, decodeErr("RequestedPathResult", protowire.ParseError(n))
		}
		b = b[n:]
		switch {
		case num == rprRequestedPath && typ == protowire.BytesType:
			v, n, err := consumeString(b)
			if err != nil {
				return nil, decodeErr("RequestedPathResult.requested_path", err)
			}
			pr.RequestedPath, b = v, b[n:]
		case num == rprErrCode && typ == protowire.VarintType:
			v, n, err := consumeVarint(b)
			if err != nil {
				return nil, decodeErr("RequestedPathResult.err_code", err)
			}
			pr.ErrCode, b = uint32(v), b[n:]
		case num == rprErrMsg && typ == protowire.BytesType:
			v, n, err := consumeString(b)
			if err != nil {
				return nil, decodeErr("RequestedPathResult.err_msg", err)
			}
			pr.ErrMsg, b = v, b[n:]
		case num == rprResolvedPathResults && typ == protowire.BytesType:
			v, n, err := consumeBytes(b)
			if err != nil {
				return nil, decodeErr("RequestedPathResult.resolved_path_results", err)
			}
			rp, err := unmarshalResolvedPathResult(v)
			if err != nil {
				return nil, err
			}
			pr.ResolvedPathResults, b = append(pr.ResolvedPathResults, rp), b[n:]
		default:
			n, err := skipField(b, num, typ)
			if err != nil {
				return nil, decodeErr("RequestedPathResult", err)
			}
			b = b[n:]
		}
	}
	return pr, nil
}

func unmarshalResolvedPathResult(data []byte) (*ResolvedPathResult, error) {
	rp := &ResolvedPathResult{}
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, decodeErr("ResolvedPathResult", protowire.ParseError(n))
		}
		b = b[n:]
		switch {
		case num == resolvedPath && typ == protowire.BytesType:
			v, n, err := consumeString(b)
			if err != nil {
				return nil, decodeErr("ResolvedPathResult.resolved_path", err)
			}
			rp.ResolvedPath, b = v, b[n:]
		case num == resultParams && typ == protowire.BytesType:
			v, n, err := consumeBytes(b)
			if err != nil {
				return nil, decodeErr("ResolvedPathResult.result_params", err)
			}
			k, val, err := unmarshalStringMapEntry(v)
			if err != nil {
				return nil, decodeErr("ResolvedPathResult.result_params", err)
			}
			if rp.ResultParams == nil {
				rp.ResultParams = make(map[string]string)
			}
			rp.ResultParams[k], b = val, b[n:]
		default:
			n, err := skipField(b, num, typ)
			if err != nil {
				return nil, decodeErr("ResolvedPathResult", err)
			}
			b = b[n:]
		}
	}
	return rp, nil
}

func unmarshalSet(data []byte) (*Set, error) {
	s := &Set{}
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, decodeErr("Set", protowire.ParseError(n))
		}
		b = b[n:]
		switch {
		case num == setAllowPartial && typ == protowire.VarintType:
			v, n, err := consumeVarint(b)
			if err != nil {
				return nil, decodeErr("Set.allow_partial", err)
			}
			s.AllowPartial, b = v != 0, b[n:]
		case num == setUpdateObjs && typ == protowire.BytesType:
			v, n, err := consumeBytes(b)
			if err != nil {
				return nil, decodeErr("Set.update_objs", err)
			}
			uo, err := unmarshalUpdateObject(v)
			if err != nil {
				return nil, err
			}
			s.UpdateObjs, b = append(s.UpdateObjs, uo), b[n:]
		default:
			n, err := skipField(b, num, typ)
			if err != nil {
				return nil, decodeErr("Set", err)
			}
			b = b[n:]
		}
	}
	return s, nil
}

func unmarshalUpdateObject(data []byte) (*UpdateObject, error) {
	uo := &UpdateObject{}
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, decodeErr("UpdateObject", protowire.ParseError(n))
		}
		b = b[n:]
		switch {
		case num == updObjPath && typ == protowire.BytesType:
			v, n, err := consumeString(b)
			if err != nil {
				return nil, decodeErr("UpdateObject.obj_path", err)
			}
			uo.ObjPath, b = v, b[n:]
		case num == updParamSettings && typ == protowire.BytesType:
			v, n, err := consumeBytes(b)
			if err != nil {
				return nil, decodeErr("UpdateObject.param_settings", err)
			}
			ps, err := unmarshalUpdateParamSetting(v)
			if err != nil {
				return nil, err
			}
			uo.ParamSettings, b = append(uo.ParamSettings, ps), b[n:]
		default:
			n, err := skipField(b, num, typ)
			if err != nil {
				return nil, decodeErr("UpdateObject", err)
			}
			b = b[n:]
		}
	}
	return uo, nil
}

func unmarshalUpdateParamSetting(data []byte) (*UpdateParamSetting, error) {
	ps := &UpdateParamSetting{}
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, decodeErr("UpdateParamSetting", protowire.ParseError(n))
		}
		b = b[n:]
		switch {
		case num == upsParam && typ == protowire.BytesType:
			v, n, err := consumeString(b)
			if err != nil {
				return nil, decodeErr("UpdateParamSetting.param", err)
			}
			ps.Param, b = v, b[n:]
		case num == upsValue && typ == protowire.BytesType:
			v, n, err := consumeString(b)
			if err != nil {
				return nil, decodeErr("UpdateParamSetting.value", err)
			}
			ps.Value, b = v, b[n:]
		case num == upsRequired && typ == protowire.VarintType:
			v, n, err := consumeVarint(b)
			if err != nil {
				return nil, decodeErr("UpdateParamSetting.required", err)
			}
			ps.Required, b = v != 0, b[n:]
		default:
			n, err := skipField(b, num, typ)
			if err != nil {
				return nil, decodeErr("UpdateParamSetting", err)
			}
			b = b[n:]
		}
	}
	return ps, nil
}

func unmarshalSetResp(data []byte) (*SetResp, error) {
	sr := &SetResp{}
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, decodeErr("SetResp", protowire.ParseError(n))
		}
		b = b[n:]
		switch {
		case num == setRespUpdatedObjResults && typ == protowire.BytesType:
			v, n, err := consumeBytes(b)
			if err != nil {
				return nil, decodeErr("SetResp.updated_obj_results", err)
			}
			or, err := unmarshalUpdatedObjectResult(v)
			if err != nil {
				return nil, err
			}
			sr.UpdatedObjResults, b = append(sr.UpdatedObjResults, or), b[n:]
		default:
			n, err := skipField(b, num, typ)
			if err != nil {
				return nil, decodeErr("SetResp", err)
			}
			b = b[n:]
		}
	}
	return sr, nil
}

func unmarshalUpdatedObjectResult(data []byte) (*UpdatedObjectResult, error) {
	or := &UpdatedObjectResult{}
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, decodeErr("UpdatedObjectResult", protowire.ParseError(n))
		}
		b = b[n:]
		switch {
		case num == uorRequestedPath && typ == protowire.BytesType:
			v, n, err := consumeString(b)
			if err != nil {
				return nil, decodeErr("UpdatedObjectResult.requested_path", err)
			}
			or.RequestedPath, b = v, b[n:]
		case num == uorOperFailure && typ == protowire.BytesType:
			v, n, err := consumeBytes(b)
			if err != nil {
				return nil, decodeErr("UpdatedObjectResult.oper_failure", err)
			}
			sf, err := unmarshalSetFailure(v)
			if err != nil {
				return nil, err
			}
			or.OperFailure, b = sf, b[n:]
		case num == uorOperSuccess && typ == protowire.BytesType:
			v, n, err := consumeBytes(b)
			if err != nil {
				return nil, decodeErr("UpdatedObjectResult.oper_success", err)
			}
			ss, err := unmarshalSetSuccess(v)
			if err != nil {
				return nil, err
			}
			or.OperSuccess, b = ss, b[n:]
		default:
			n, err := skipField(b, num, typ)
			if err != nil {
				return nil, decodeErr("UpdatedObjectResult", err)
			}
			b = b[n:]
		}
	}
	return or, nil
}

func unmarshalSetFailure(data []byte) (*SetFailure, error) {
	sf := &SetFailure{}
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, decodeErr("SetFailure", protowire.ParseError(n))
		}
		b = b[n:]
		switch {
		case num == sfErrCode && typ == protowire.VarintType:
			v, n, err := consumeVarint(b)
			if err != nil {
				return nil, decodeErr("SetFailure.err_code", err)
			}
			sf.ErrCode, b = uint32(v), b[n:]
		case num == sfErrMsg && typ == protowire.BytesType:
			v, n, err := consumeString(b)
			if err != nil {
				return nil, decodeErr("SetFailure.err_msg", err)
			}
			sf.ErrMsg, b = v, b[n:]
		case num == sfUpdatedInstFailures && typ == protowire.BytesType:
			v, n, err := consumeBytes(b)
			if err != nil {
				return nil, decodeErr("SetFailure.updated_inst_failures", err)
			}
			f, err := unmarshalUpdatedInstanceFailure(v)
			if err != nil {
				return nil, err
			}
			sf.UpdatedInstFailures, b = append(sf.UpdatedInstFailures, f), b[n:]
		default:
			n, err := skipField(b, num, typ)
			if err != nil {
				return nil, decodeErr("SetFailure", err)
			}
			b = b[n:]
		}
	}
	return sf, nil
}

func unmarshalUpdatedInstanceFailure(data []byte) (*UpdatedInstanceFailure, error) {
	f := &UpdatedInstanceFailure{}
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, decodeErr("UpdatedInstanceFailure", protowire.ParseError(n))
		}
		b = b[n:]
		switch {
		case num == uifAffectedPath && typ == protowire.BytesType:
			v, n, err := consumeString(b)
			if err != nil {
				return nil, decodeErr("UpdatedInstanceFailure.affected_path", err)
			}
			f.AffectedPath, b = v, b[n:]
		case num == uifParamErrs && typ == protowire.BytesType:
			v, n, err := consumeBytes(b)
			if err != nil {
				return nil, decodeErr("UpdatedInstanceFailure.param_errs", err)
			}
			pe, err := unmarshalSetParamError(v)
			if err != nil {
				return nil, err
			}
			f.ParamErrs, b = append(f.ParamErrs, pe), b[n:]
		default:
			n, err := skipField(b, num, typ)
			if err != nil {
				return nil, decodeErr("UpdatedInstanceFailure", err)
			}
			b = b[n:]
		}
	}
	return f, nil
}

func unmarshalSetSuccess(data []byte) (*SetSuccess, error) {
	ss := &SetSuccess{}
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, decodeErr("SetSuccess", protowire.ParseError(n))
		}
		b = b[n:]
		switch {
		case num == ssUpdatedInstResults && typ == protowire.BytesType:
			v, n, err := consumeBytes(b)
			if err != nil {
				return nil, decodeErr("SetSuccess.updated_inst_results", err)
			}
			ir, err := unmarshalUpdatedInstanceResult(v)
			if err != nil {
				return nil, err
			}
			ss.UpdatedInstResults, b = append(ss.UpdatedInstResults, ir), b[n:]
		default:
			n, err := skipField(b, num, typ)
			if err != nil {
				return nil, decodeErr("SetSuccess", err)
			}
			b = b[n:]
		}
	}
	return ss, nil
}

func unmarshalUpdatedInstanceResult(data []byte) (*UpdatedInstanceResult, error) {
	ir := &UpdatedInstanceResult{}
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, decodeErr("UpdatedInstanceResult", protowire.ParseError(n))
		}
		b = b[n:]
		switch {
		case num == uirAffectedPath && typ == protowire.BytesType:
			v, n, err := consumeString(b)
			if err != nil {
				return nil, decodeErr("UpdatedInstanceResult.affected_path", err)
			}
			ir.AffectedPath, b = v, b[n:]
		case num == uirUpdatedParams && typ == protowire.BytesType:
			v, n, err := consumeBytes(b)
			if err != nil {
				return nil, decodeErr("UpdatedInstanceResult.updated_params", err)
			}
			k, val, err := unmarshalStringMapEntry(v)
			if err != nil {
				return nil, decodeErr("UpdatedInstanceResult.updated_params", err)
			}
			if ir.UpdatedParams == nil {
				ir.UpdatedParams = make(map[string]string)
			}
			ir.UpdatedParams[k], b = val, b[n:]
		case num == uirParamErrs && typ == protowire.BytesType:
			v, n, err := consumeBytes(b)
			if err != nil {
				return nil, decodeErr("UpdatedInstanceResult.param_errs", err)
			}
			pe, err := unmarshalSetParamError(v)
			if err != nil {
				return nil, err
			}
			ir.ParamErrs, b = append(ir.ParamErrs, pe), b[n:]
		default:
			n, err := skipField(b, num, typ)
			if err != nil {
				return nil, decodeErr("UpdatedInstanceResult", err)
			}
			b = b[n:]
		}
	}
	return ir, nil
}

func unmarshalSetParamError(data []byte) (*SetParamError, error) {
	pe := &SetParamError{}
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, decodeErr("SetResp.ParameterError", protowire.ParseError(n))
		}
		b = b[n:]
		switch {
		case num == speParam && typ == protowire.BytesType:
			v, n, err := consumeString(b)
			if err != nil {
				return nil, decodeErr("SetResp.ParameterError.param", err)
			}
			pe.Param, b = v, b[n:]
		case num == speErrCode && typ == protowire.VarintType:
			v, n, err := consumeVarint(b)
			if err != nil {
				return nil, decodeErr("SetResp.ParameterError.err_code", err)
			}
			pe.ErrCode, b = uint32(v), b[n:]
		case num == speErrMsg && typ == protowire.BytesType:
			v, n, err := consumeString(b)
			if err != nil {
				return nil, decodeErr("SetResp.ParameterError.err_msg", err)
			}
			pe.ErrMsg, b = v, b[n:]
		default:
			n, err := skipField(b, num, typ)
			if err != nil {
				return nil, decodeErr("SetResp.ParameterError", err)
			}
			b = b[n:]
		}
	}
	return pe, nil
}

func unmarshalOperate(data []byte) (*Operate, error) {
	op := &Operate{}
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, decodeErr("Operate", protowire.ParseError(n))
		}
		b = b[n:]
		switch {
		case num == opCommand && typ == protowire.BytesType:
			v, n, err := consumeString(b)
			if err != nil {
				return nil, decodeErr("Operate.command", err)
			}
			op.Command, b = v, b[n:]
		case num == opCommandKey && typ == protowire.BytesType:
			v, n, err := consumeString(b)
			if err != nil {
				return nil, decodeErr("Operate.command_key", err)
			}
			op.CommandKey, b = v, b[n:]
		case num == opSendResp && typ == protowire.VarintType:
			v, n, err := consumeVarint(b)
			if err != nil {
				return nil, decodeErr("Operate.send_resp", err)
			}
			op.SendResp, b = v != 0, b[n:]
		case num == opInputArgs && typ == protowire.BytesType:
			v, n, err := consumeBytes(b)
			if err != nil {
				return nil, decodeErr("Operate.input_args", err)
			}
			k, val, err := unmarshalStringMapEntry(v)
			if err != nil {
				return nil, decodeErr("Operate.input_args", err)
			}
			if op.InputArgs == nil {
				op.InputArgs = make(map[string]string)
			}
			op.InputArgs[k], b = val, b[n:]
		default:
			n, err := skipField(b, num, typ)
			if err != nil {
				return nil, decodeErr("Operate", err)
			}
			b = b[n:]
		}
	}
	return op, nil
}

func unmarshalOperateResp(data []byte) (*OperateResp, error) {
	or := &OperateResp{}
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, decodeErr("OperateResp", protowire.ParseError(n))
		}
		b = b[n:]
		switch {
		case num == opRespOperationResults && typ == protowire.BytesType:
			v, n, err := consumeBytes(b)
			if err != nil {
				return nil, decodeErr("OperateResp.operation_results", err)
			}
			res, err := unmarshalOperationResult(v)
			if err != nil {
				return nil, err
			}
			or.OperationResults, b = append(or.OperationResults, res), b[n:]
		default:
			n, err := skipField(b, num, typ)
			if err != nil {
				return nil, decodeErr("OperateResp", err)
			}
			b = b[n:]
		}
	}
	return or, nil
}

func unmarshalOperationResult(data []byte) (*OperationResult, error) {
	res := &OperationResult{}
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, decodeErr("OperationResult", protowire.ParseError(n))
		}
		b = b[n:]
		switch {
		case num == orExecutedCommand && typ == protowire.BytesType:
			v, n, err := consumeString(b)
			if err != nil {
				return nil, decodeErr("OperationResult.executed_command", err)
			}
			res.ExecutedCommand, b = v, b[n:]
		case num == orOutputArgs && typ == protowire.BytesType:
			v, n, err := consumeBytes(b)
			if err != nil {
				return nil, decodeErr("OperationResult.output_args", err)
			}
			k, val, err := unmarshalStringMapEntry(v)
			if err != nil {
				return nil, decodeErr("OperationResult.output_args", err)
			}
			if res.OutputArgs == nil {
				res.OutputArgs = make(map[string]string)
			}
			res.OutputArgs[k], b = val, b[n:]
		case num == orCmdFailure && typ == protowire.BytesType:
			v, n, err := consumeBytes(b)
			if err != nil {
				return nil, decodeErr("OperationResult.cmd_failure", err)
			}
			cf, err := unmarshalCommandFailure(v)
			if err != nil {
				return nil, err
			}
			res.CmdFailure, b = cf, b[n:]
		default:
			n, err := skipField(b, num, typ)
			if err != nil {
				return nil, decodeErr("OperationResult", err)
			}
			b = b[n:]
		}
	}
	return res, nil
}

func unmarshalCommandFailure(data []byte) (*CommandFailure, error) {
	cf := &CommandFailure{}
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, decodeErr("CommandFailure", protowire.ParseError(n))
		}
		b = b[n:]
		switch {
		case num == cfErrCode && typ == protowire.VarintType:
			v, n, err := consumeVarint(b)
			if err != nil {
				return nil, decodeErr("CommandFailure.err_code", err)
			}
			cf.ErrCode, b = uint32(v), b[n:]
		case num == cfErrMsg && typ == protowire.BytesType:
			v, n, err := consumeString(b)
			if err != nil {
				return nil, decodeErr("CommandFailure.err_msg", err)
			}
			cf.ErrMsg, b = v, b[n:]
		default:
			n, err := skipField(b, num, typ)
			if err != nil {
				return nil, decodeErr("CommandFailure", err)
			}
			b = b[n:]
		}
	}
	return cf, nil
}

func unmarshalGetInstances(data []byte) (*GetInstances, error) {
	gi := &GetInstances{}
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, decodeErr("GetInstances", protowire.ParseError(n))
		}
		b = b[n:]
		switch {
		case num == giObjPaths && typ == protowire.BytesType:
			v, n, err := consumeString(b)
			if err != nil {
				return nil, decodeErr("GetInstances.obj_paths", err)
			}
			gi.ObjPaths, b = append(gi.ObjPaths, v), b[n:]
		case num == giFirstLevelOnly && typ == protowire.VarintType:
			v, n, err := consumeVarint(b)
			if err != nil {
				return nil, decodeErr("GetInstances.first_level_only", err)
			}
			gi.FirstLevelOnly, b = v != 0, b[n:]
		default:
			n, err := skipField(b, num, typ)
			if err != nil {
				return nil, decodeErr("GetInstances", err)
			}
			b = b[n:]
		}
	}
	return gi, nil
}

func unmarshalGetInstancesResp(data []byte) (*GetInstancesResp, error) {
	gir := &GetInstancesResp{}
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, decodeErr("GetInstancesResp", protowire.ParseError(n))
		}
		b = b[n:]
		switch {
		case num == giRespReqPathResults && typ == protowire.BytesType:
			v, n, err := consumeBytes(b)
			if err != nil {
				return nil, decodeErr("GetInstancesResp.req_path_results", err)
			}
			pr, err := unmarshalInstancesPathResult(v)
			if err != nil {
				return nil, err
			}
			gir.ReqPathResults, b = append(gir.ReqPathResults, pr), b[n:]
		default:
			n, err := skipField(b, num, typ)
			if err != nil {
				return nil, decodeErr("GetInstancesResp", err)
			}
			b = b[n:]
		}
	}
	return gir, nil
}

func unmarshalInstancesPathResult(data []byte) (*InstancesPathResult, error) {
	pr := &InstancesPathResult{}
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, decodeErr("InstancesPathResult", protowire.ParseError(n))
		}
		b = b[n:]
		switch {
		case num == iprRequestedPath && typ == protowire.BytesType:
			v, n, err := consumeString(b)
			if err != nil {
				return nil, decodeErr("InstancesPathResult.requested_path", err)
			}
			pr.RequestedPath, b = v, b[n:]
		case num == iprInvalidPath && typ == protowire.VarintType:
			v, n, err := consumeVarint(b)
			if err != nil {
				return nil, decodeErr("InstancesPathResult.invalid_path", err)
			}
			pr.InvalidPath, b = v != 0, b[n:]
		case num == iprErrMsg && typ == protowire.BytesType:
			v, n, err := consumeString(b)
			if err != nil {
				return nil, decodeErr("InstancesPathResult.err_msg", err)
			}
			pr.ErrMsg, b = v, b[n:]
		case num == iprCurrInsts && typ == protowire.BytesType:
			v, n, err := consumeString(b)
			if err != nil {
				return nil, decodeErr("InstancesPathResult.curr_insts", err)
			}
			pr.CurrInsts, b = append(pr.CurrInsts, v), b[n:]
		default:
			n, err := skipField(b, num, typ)
			if err != nil {
				return nil, decodeErr("InstancesPathResult", err)
			}
			b = b[n:]
		}
	}
	return pr, nil
}

func unmarshalGetImplObjects(data []byte) (*GetImplObjects, error) {
	gio := &GetImplObjects{}
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, decodeErr("GetImplObjects", protowire.ParseError(n))
		}
		b = b[n:]
		switch {
		case num == gioObjPaths && typ == protowire.BytesType:
			v, n, err := consumeString(b)
			if err != nil {
				return nil, decodeErr("GetImplObjects.obj_paths", err)
			}
			gio.ObjPaths, b = append(gio.ObjPaths, v), b[n:]
		case num == gioNextLevel && typ == protowire.VarintType:
			v, n, err := consumeVarint(b)
			if err != nil {
				return nil, decodeErr("GetImplObjects.next_level", err)
			}
			gio.NextLevel, b = v != 0, b[n:]
		default:
			n, err := skipField(b, num, typ)
			if err != nil {
				return nil, decodeErr("GetImplObjects", err)
			}
			b = b[n:]
		}
	}
	return gio, nil
}

func unmarshalGetImplObjectsResp(data []byte) (*GetImplObjectsResp, error) {
	gior := &GetImplObjectsResp{}
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, decodeErr("GetImplObjectsResp", protowire.ParseError(n))
		}
		b = b[n:]
		switch {
		case num == gioRespReqPathResults && typ == protowire.BytesType:
			v, n, err := consumeBytes(b)
			if err != nil {
				return nil, decodeErr("GetImplObjectsResp.req_path_results", err)
			}
			pr, err := unmarshalImplObjectsPathResult(v)
			if err != nil {
				return nil, err
			}
			gior.ReqPathResults, b = append(gior.ReqPathResults, pr), b[n:]
		default:
			n, err := skipField(b, num, typ)
			if err != nil {
				return nil, decodeErr("GetImplObjectsResp", err)
			}
			b = b[n:]
		}
	}
	return gior, nil
}

func unmarshalImplObjectsPathResult(data []byte) (*ImplObjectsPathResult, error) {
	pr := &ImplObjectsPathResult{}
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, decodeErr("ImplObjectsPathResult", protowire.ParseError(n))
		}
		b = b[n:]
		switch {
		case num == ioprRequestedPath && typ == protowire.BytesType:
			v, n, err := consumeString(b)
			if err != nil {
				return nil, decodeErr("ImplObjectsPathResult.requested_path", err)
			}
			pr.RequestedPath, b = v, b[n:]
		case num == ioprInvalidPath && typ == protowire.VarintType:
			v, n, err := consumeVarint(b)
			if err != nil {
				return nil, decodeErr("ImplObjectsPathResult.invalid_path", err)
			}
			pr.InvalidPath, b = v != 0, b[n:]
		case num == ioprErrMsg && typ == protowire.BytesType:
			v, n, err := consumeString(b)
			if err != nil {
				return nil, decodeErr("ImplObjectsPathResult.err_msg", err)
			}
			pr.ErrMsg, b = v, b[n:]
		case num == ioprImplObjs && typ == protowire.BytesType:
			v, n, err := consumeString(b)
			if err != nil {
				return nil, decodeErr("ImplObjectsPathResult.impl_objs", err)
			}
			pr.ImplObjs, b = append(pr.ImplObjs, v), b[n:]
		default:
			n, err := skipField(b, num, typ)
			if err != nil {
				return nil, decodeErr("ImplObjectsPathResult", err)
			}
			b = b[n:]
		}
	}
	return pr, nil
}

func unmarshalNotify(data []byte) (*Notify, error) {
	ntf := &Notify{}
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, decodeErr("Notify", protowire.ParseError(n))
		}
		b = b[n:]
		switch {
		case num == ntfSubscriptionID && typ == protowire.BytesType:
			v, n, err := consumeString(b)
			if err != nil {
				return nil, decodeErr("Notify.subscription_id", err)
			}
			ntf.SubscriptionID, b = v, b[n:]
		case num == ntfSendResp && typ == protowire.VarintType:
			v, n, err := consumeVarint(b)
			if err != nil {
				return nil, decodeErr("Notify.send_resp", err)
			}
			ntf.SendResp, b = v != 0, b[n:]
		case num == ntfEvent && typ == protowire.BytesType:
			v, n, err := consumeBytes(b)
			if err != nil {
				return nil, decodeErr("Notify.event", err)
			}
			ev, err := unmarshalEvent(v)
			if err != nil {
				return nil, err
			}
			ntf.Event, b = ev, b[n:]
		case num == ntfValueChange && typ == protowire.BytesType:
			v, n, err := consumeBytes(b)
			if err != nil {
				return nil, decodeErr("Notify.value_change", err)
			}
			vc, err := unmarshalValueChange(v)
			if err != nil {
				return nil, err
			}
			ntf.ValueChange, b = vc, b[n:]
		default:
			n, err := skipField(b, num, typ)
			if err != nil {
				return nil, decodeErr("Notify", err)
			}
			b = b[n:]
		}
	}
	return ntf, nil
}

func unmarshalEvent(data []byte) (*Event, error) {
	ev := &Event{}
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, decodeErr("Notify.Event", protowire.ParseError(n))
		}
		b = b[n:]
		switch {
		case num == evObjPath && typ == protowire.BytesType:
			v, n, err := consumeString(b)
			if err != nil {
				return nil, decodeErr("Notify.Event.obj_path", err)
			}
			ev.ObjPath, b = v, b[n:]
		case num == evEventName && typ == protowire.BytesType:
			v, n, err := consumeString(b)
			if err != nil {
				return nil, decodeErr("Notify.Event.event_name", err)
			}
			ev.EventName, b = v, b[n:]
		case num == evParams && typ == protowire.BytesType:
			v, n, err := consumeBytes(b)
			if err != nil {
				return nil, decodeErr("Notify.Event.params", err)
			}
			k, val, err := unmarshalStringMapEntry(v)
			if err != nil {
				return nil, decodeErr("Notify.Event.params", err)
			}
			if ev.Params == nil {
				ev.Params = make(map[string]string)
			}
			ev.Params[k], b = val, b[n:]
		default:
			n, err := skipField(b, num, typ)
			if err != nil {
				return nil, decodeErr("Notify.Event", err)
			}
			b = b[n:]
		}
	}
	return ev, nil
}

func unmarshalValueChange(data []byte) (*ValueChange, error) {
	vc := &ValueChange{}
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, decodeErr("Notify.ValueChange", protowire.ParseError(n))
		}
		b = b[n:]
		switch {
		case num == vcParamPath && typ == protowire.BytesType:
			v, n, err := consumeString(b)
			if err != nil {
				return nil, decodeErr("Notify.ValueChange.param_path", err)
			}
			vc.ParamPath, b = v, b[n:]
		case num == vcParamValue && typ == protowire.BytesType:
			v, n, err := consumeString(b)
			if err != nil {
				return nil, decodeErr("Notify.ValueChange.param_value", err)
			}
			vc.ParamValue, b = v, b[n:]
		default:
			n, err := skipField(b, num, typ)
			if err != nil {
				return nil, decodeErr("Notify.ValueChange", err)
			}
			b = b[n:]
		}
	}
	return vc, nil
}

func unmarshalNotifyResp(data []byte) (*NotifyResp, error) {
	nr := &NotifyResp{}
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, decodeErr("NotifyResp", protowire.ParseError(n))
		}
		b = b[n:]
		switch {
		case num == ntfRespSubscriptionID && typ == protowire.BytesType:
			v, n, err := consumeString(b)
			if err != nil {
				return nil, decodeErr("NotifyResp.subscription_id", err)
			}
			nr.SubscriptionID, b = v, b[n:]
		default:
			n, err := skipField(b, num, typ)
			if err != nil {
				return nil, decodeErr("NotifyResp", err)
			}
			b = b[n:]
		}
	}
	return nr, nil
}
