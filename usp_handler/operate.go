package handler

import (
	log "github.com/golang/glog"

	"github.com/johnblackford/agent/common_utils"
	"github.com/johnblackford/agent/usp"
)

// processOperate executes an Operate command through the service map
// registered for the agent's product class.
func (h *UspRequestHandler) processOperate(req *usp.Msg) *usp.Msg {
	log.V(1).Info("Processing an Operate Request...")
	command := req.Body.Request.Operate.Command

	productClass, err := h.db.GetStr("Device.DeviceInfo.ProductClass")
	if err != nil {
		log.Warningf("Product class unavailable: %v", err)
	}

	commands, ok := h.serviceMap[productClass]
	if !ok {
		common_utils.IncCounter(common_utils.USP_OPERATE_FAIL)
		return newErrorMsg(req.Header.MsgID, 9000,
			"Operate Failure: unknown product class - "+productClass)
	}
	service, ok := commands[command]
	if !ok {
		common_utils.IncCounter(common_utils.USP_OPERATE_FAIL)
		return newErrorMsg(req.Header.MsgID, 9000,
			"Operate Failure: invalid command - "+command)
	}

	opResult := &usp.OperationResult{ExecutedCommand: command}
	outputArgs, err := service.Invoke()
	if err != nil {
		log.Errorf("Command [%s] failed: %v", command, err)
		common_utils.IncCounter(common_utils.USP_OPERATE_FAIL)
		opResult.CmdFailure = &usp.CommandFailure{
			ErrCode: 9000,
			ErrMsg:  "Operate Failure: " + err.Error(),
		}
	} else {
		opResult.OutputArgs = outputArgs
	}

	return &usp.Msg{
		Header: &usp.Header{MsgID: req.Header.MsgID, MsgType: usp.MsgOperateResp},
		Body: &usp.Body{Response: &usp.Response{
			OperateResp: &usp.OperateResp{
				OperationResults: []*usp.OperationResult{opResult},
			},
		}},
	}
}
