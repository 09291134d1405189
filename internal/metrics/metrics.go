package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PackagesLoggedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dormdrop_packages_logged_total",
		Help: "Total number of packages successfully logged at the front desk.",
	})

	PackagesPickedUpTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dormdrop_packages_picked_up_total",
		Help: "Total number of packages handed over to residents.",
	})

	PickupBatchesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dormdrop_pickup_batches_total",
		Help: "Total number of signing events, regardless of batch size.",
	})

	OperationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dormdrop_operation_errors_total",
		Help: "Total number of errors encountered during specific operations.",
	},
		[]string{"operation"},
	)

	PendingPackages = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "dormdrop_pending_packages",
		Help: "Current number of packages awaiting pickup in the engine snapshot.",
	})

	EventsPublishedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dormdrop_events_published_total",
		Help: "Total number of package events published from the outbox.",
	})
)
