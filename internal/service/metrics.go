package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// paymentsCompleted counts Pending->Paid transitions. The store-level
// compare-and-set means at most one increment per order.
var paymentsCompleted = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "vending_machine",
	Subsystem: "payments",
	Name:      "completed_total",
	Help:      "Total number of orders transitioned to Paid.",
})
