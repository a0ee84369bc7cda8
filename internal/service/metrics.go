package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dispatch_requests_created_total",
			Help: "Service requests created, by service group",
		},
		[]string{"group"},
	)

	trackingFallbacksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dispatch_tracking_number_fallbacks_total",
			Help: "Tracking numbers minted locally because the store procedure failed",
		},
	)

	paymentsPaidTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dispatch_payments_paid_total",
			Help: "Payments marked paid by the simulated card flow",
		},
	)
)
