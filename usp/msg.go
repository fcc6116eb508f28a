package usp

// MsgType identifies the request, response, or error carried by a Msg.
type MsgType int32

const (
	MsgError MsgType = iota
	MsgGet
	MsgGetResp
	MsgNotify
	MsgSet
	MsgSetResp
	MsgOperate
	MsgOperateResp
	MsgGetInstances
	MsgGetInstancesResp
	MsgGetImplObjects
	MsgGetImplObjectsResp
	MsgNotifyResp
)

func (t MsgType) String() string {
	switch t {
	case MsgError:
		return "ERROR"
	case MsgGet:
		return "GET"
	case MsgGetResp:
		return "GET_RESP"
	case MsgNotify:
		return "NOTIFY"
	case MsgSet:
		return "SET"
	case MsgSetResp:
		return "SET_RESP"
	case MsgOperate:
		return "OPERATE"
	case MsgOperateResp:
		return "OPERATE_RESP"
	case MsgGetInstances:
		return "GET_INSTANCES"
	case MsgGetInstancesResp:
		return "GET_INSTANCES_RESP"
	case MsgGetImplObjects:
		return "GET_IMPL_OBJECTS"
	case MsgGetImplObjectsResp:
		return "GET_IMPL_OBJECTS_RESP"
	case MsgNotifyResp:
		return "NOTIFY_RESP"
	}
	return "UNKNOWN"
}

// Msg is the inner USP message.
type Msg struct {
	Header *Header
	Body   *Body
}

type Header struct {
	MsgID   string
	MsgType MsgType
}

// Body holds exactly one of Request, Response, or Error.
type Body struct {
	Request  *Request
	Response *Response
	Error    *Error
}

// Request holds exactly one concrete request.
type Request struct {
	Get            *Get
	GetInstances   *GetInstances
	GetImplObjects *GetImplObjects
	Set            *Set
	Operate        *Operate
	Notify         *Notify
}

// Response holds exactly one concrete response.
type Response struct {
	GetResp            *GetResp
	GetInstancesResp   *GetInstancesResp
	GetImplObjectsResp *GetImplObjectsResp
	SetResp            *SetResp
	OperateResp        *OperateResp
	NotifyResp         *NotifyResp
}

type Error struct {
	ErrCode   uint32
	ErrMsg    string
	ParamErrs []*ErrorParamError
}

type ErrorParamError struct {
	ParamPath string
	ErrCode   uint32
	ErrMsg    string
}

type Get struct {
	ParamPaths []string
}

type GetResp struct {
	ReqPathResults []*RequestedPathResult
}

// RequestedPathResult reports the outcome of one requested Get path.
type RequestedPathResult struct {
	RequestedPath       string
	ErrCode             uint32
	ErrMsg              string
	ResolvedPathResults []*ResolvedPathResult
}

// ResolvedPathResult maps parameter paths (relative to the requested
// partial path) to their stringified values for one resolved object.
type ResolvedPathResult struct {
	ResolvedPath string
	ResultParams map[string]string
}

type Set struct {
	AllowPartial bool
	UpdateObjs   []*UpdateObject
}

type UpdateObject struct {
	ObjPath       string
	ParamSettings []*UpdateParamSetting
}

type UpdateParamSetting struct {
	Param    string
	Value    string
	Required bool
}

type SetResp struct {
	UpdatedObjResults []*UpdatedObjectResult
}

// UpdatedObjectResult carries exactly one of OperFailure or OperSuccess.
type UpdatedObjectResult struct {
	RequestedPath string
	OperFailure   *SetFailure
	OperSuccess   *SetSuccess
}

type SetFailure struct {
	ErrCode             uint32
	ErrMsg              string
	UpdatedInstFailures []*UpdatedInstanceFailure
}

type UpdatedInstanceFailure struct {
	AffectedPath string
	ParamErrs    []*SetParamError
}

type SetSuccess struct {
	UpdatedInstResults []*UpdatedInstanceResult
}

type UpdatedInstanceResult struct {
	AffectedPath  string
	UpdatedParams map[string]string
	ParamErrs     []*SetParamError
}

type SetParamError struct {
	Param   string
	ErrCode uint32
	ErrMsg  string
}

type Operate struct {
	Command    string
	CommandKey string
	SendResp   bool
	InputArgs  map[string]string
}

type OperateResp struct {
	OperationResults []*OperationResult
}

// OperationResult carries OutputArgs on success or CmdFailure on failure.
type OperationResult struct {
	ExecutedCommand string
	OutputArgs      map[string]string
	CmdFailure      *CommandFailure
}

type CommandFailure struct {
	ErrCode uint32
	ErrMsg  string
}

type GetInstances struct {
	ObjPaths       []string
	FirstLevelOnly bool
}

type GetInstancesResp struct {
	ReqPathResults []*InstancesPathResult
}

// InstancesPathResult lists the concrete row paths under one requested
// table path, or flags the path as invalid.
type InstancesPathResult struct {
	RequestedPath string
	InvalidPath   bool
	ErrMsg        string
	CurrInsts     []string
}

type GetImplObjects struct {
	ObjPaths  []string
	NextLevel bool
}

type GetImplObjectsResp struct {
	ReqPathResults []*ImplObjectsPathResult
}

// ImplObjectsPathResult lists the generic object paths implemented under
// one requested path, or flags the path as invalid.
type ImplObjectsPathResult struct {
	RequestedPath string
	InvalidPath   bool
	ErrMsg        string
	ImplObjs      []string
}

// Notify carries exactly one of Event or ValueChange.
type Notify struct {
	SubscriptionID string
	SendResp       bool
	Event          *Event
	ValueChange    *ValueChange
}

type Event struct {
	ObjPath   string
	EventName string
	Params    map[string]string
}

type ValueChange struct {
	ParamPath  string
	ParamValue string
}

type NotifyResp struct {
	SubscriptionID string
}
