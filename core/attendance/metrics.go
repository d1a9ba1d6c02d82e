package attendance

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	discoveriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "attendance_token_discoveries_total",
		Help: "Discovery rounds run against the token store.",
	})
	discoveryFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "attendance_token_discovery_failures_total",
		Help: "Discovery rounds that failed and degraded to a mint attempt.",
	})
	adoptionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "attendance_token_adoptions_total",
		Help: "Live tokens adopted from the store instead of minting.",
	})
	mintsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "attendance_token_mints_total",
		Help: "New tokens minted and persisted.",
	})
	mintFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "attendance_token_mint_failures_total",
		Help: "Token mints that failed to persist.",
	})
)
