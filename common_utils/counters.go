package common_utils

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
)

type CounterType int

const (
	USP_GET CounterType = iota
	USP_GET_FAIL
	USP_SET
	USP_SET_FAIL
	USP_OPERATE
	USP_OPERATE_FAIL
	USP_GET_INSTANCES
	USP_GET_IMPL_OBJECTS
	USP_NOTIFY
	USP_UNKNOWN
	COUNTER_SIZE
)

// CountersName labels the shared memory slots dumped by usp_dump.
var CountersName = [COUNTER_SIZE]string{
	"USP get",
	"USP get fail",
	"USP set",
	"USP set fail",
	"USP operate",
	"USP operate fail",
	"USP get instances",
	"USP get impl objects",
	"USP notify",
	"USP unknown",
}

func (c CounterType) String() string {
	if c < 0 || c >= COUNTER_SIZE {
		return ""
	}
	return CountersName[c]
}

var globalCounters [COUNTER_SIZE]uint64

var promCounters = map[CounterType]prometheus.Counter{
	USP_GET: prometheus.NewCounter(prometheus.CounterOpts{
		Name: "number_of_usp_get_msgs",
		Help: "Number of USP Get Messages",
	}),
	USP_GET_FAIL: prometheus.NewCounter(prometheus.CounterOpts{
		Name: "number_of_usp_get_failures",
		Help: "Number of failed USP Get Messages",
	}),
	USP_SET: prometheus.NewCounter(prometheus.CounterOpts{
		Name: "number_of_usp_set_msgs",
		Help: "Number of USP Set Messages",
	}),
	USP_SET_FAIL: prometheus.NewCounter(prometheus.CounterOpts{
		Name: "number_of_usp_set_failures",
		Help: "Number of failed USP Set Messages",
	}),
	USP_OPERATE: prometheus.NewCounter(prometheus.CounterOpts{
		Name: "number_of_usp_operate_msgs",
		Help: "Number of USP Operate Messages",
	}),
	USP_OPERATE_FAIL: prometheus.NewCounter(prometheus.CounterOpts{
		Name: "number_of_usp_operate_failures",
		Help: "Number of failed USP Operate Messages",
	}),
	USP_GET_INSTANCES: prometheus.NewCounter(prometheus.CounterOpts{
		Name: "number_of_usp_get_instances_msgs",
		Help: "Number of USP GetInstances Messages",
	}),
	USP_GET_IMPL_OBJECTS: prometheus.NewCounter(prometheus.CounterOpts{
		Name: "number_of_usp_get_impl_objects_msgs",
		Help: "Number of USP GetImplObjects Messages",
	}),
	USP_NOTIFY: prometheus.NewCounter(prometheus.CounterOpts{
		Name: "number_of_usp_notify_msgs",
		Help: "Number of USP Notify Messages sent",
	}),
	USP_UNKNOWN: prometheus.NewCounter(prometheus.CounterOpts{
		Name: "number_of_usp_unknown_msgs",
		Help: "Number of Unknown USP Messages",
	}),
}

func init() {
	for _, c := range promCounters {
		prometheus.MustRegister(c)
	}
}

func InitCounters() {
	for i := 0; i < int(COUNTER_SIZE); i++ {
		atomic.StoreUint64(&globalCounters[i], 0)
	}
	SetMemCounters(&globalCounters)
}

func IncCounter(cnt CounterType) {
	atomic.AddUint64(&globalCounters[cnt], 1)
	if c, ok := promCounters[cnt]; ok {
		c.Inc()
	}
	SetMemCounters(&globalCounters)
}

// ReadCounter returns the current value of one counter.
func ReadCounter(cnt CounterType) uint64 {
	return atomic.LoadUint64(&globalCounters[cnt])
}
