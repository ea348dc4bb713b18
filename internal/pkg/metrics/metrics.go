package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	bookingCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "salonbook",
			Name:      "booking_created_total",
			Help:      "Count of bookings created by initial status.",
		},
		[]string{"status"},
	)

	slotConflicts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "salonbook",
			Name:      "slot_conflict_total",
			Help:      "Count of booking attempts that lost the slot race.",
		},
	)

	webhookReconciled = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "salonbook",
			Name:      "webhook_reconciled_total",
			Help:      "Count of webhook reconciliations by provider status.",
		},
		[]string{"status"},
	)

	refunds = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "salonbook",
			Name:      "refund_total",
			Help:      "Count of refund attempts by result.",
		},
		[]string{"result"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(bookingCreated, slotConflicts, webhookReconciled, refunds)
	})
}

func IncBookingCreated(status string) {
	bookingCreated.WithLabelValues(status).Inc()
}

func IncSlotConflict() {
	slotConflicts.Inc()
}

func IncWebhookReconciled(status string) {
	webhookReconciled.WithLabelValues(status).Inc()
}

func IncRefund(result string) {
	refunds.WithLabelValues(result).Inc()
}
