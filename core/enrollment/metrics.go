package enrollment

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	approvalsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "enrollment_approvals_total",
		Help: "Applications approved end to end.",
	})
	rejectionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "enrollment_rejections_total",
		Help: "Applications rejected.",
	})
)
