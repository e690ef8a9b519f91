package info_flow

import (
	"time"

	"github.com/samber/lo"
)

type AlertKind string

const (
	// AlertNetworkOutput is raised when a network write sends tainted bytes.
	AlertNetworkOutput AlertKind = "network_output"
	// AlertDiskTransfer is raised when a disk transfer moves tainted bytes.
	AlertDiskTransfer AlertKind = "disk_transfer"
	// AlertTaintedJump is raised when an indirect jump target is tainted.
	AlertTaintedJump AlertKind = "tainted_jump"
)

// Alert is an exfiltration or control-flow signal. Raising it never touches
// the store.
type Alert struct {
	Kind     AlertKind `bson:"kind" json:"kind"`
	RunID    string    `bson:"runId" json:"runId"`
	OpIndex  uint64    `bson:"opIndex" json:"opIndex"`
	Op       string    `bson:"op" json:"op"`
	Address  Address   `bson:"-" json:"-"`
	Location string    `bson:"location" json:"location"`
	Size     uint64    `bson:"size" json:"size"`
	Labels   []string  `bson:"labels,omitempty" json:"labels,omitempty"`
	Time     time.Time `bson:"time" json:"time"`
}

type AlertHandler interface {
	HandleAlert(alert Alert)
}

type AlertHandlerFunc func(alert Alert)

func (f AlertHandlerFunc) HandleAlert(alert Alert) {
	f(alert)
}

// AlertCollector keeps every alert in memory.
type AlertCollector struct {
	Alerts []Alert
}

func (c *AlertCollector) HandleAlert(alert Alert) {
	c.Alerts = append(c.Alerts, alert)
}

func (c *AlertCollector) OfKind(kind AlertKind) []Alert {
	return lo.Filter(c.Alerts, func(a Alert, _ int) bool {
		return a.Kind == kind
	})
}
