package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "campaign"

var (
	// OrderCounter counts gateway order attempts by result
	OrderCounter *prometheus.CounterVec
	// CallbackCounter counts payment callbacks by outcome
	CallbackCounter *prometheus.CounterVec
	// DonationCounter counts committed donation records
	DonationCounter prometheus.Counter
	// NotificationCounter counts certificate mails by result
	NotificationCounter *prometheus.CounterVec
	// NotificationQueueGauge tracks jobs waiting for a notifier worker
	NotificationQueueGauge prometheus.Gauge
)

func init() {
	OrderCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_total",
		Help:      "Gateway order attempts by result",
	}, []string{"result"})

	CallbackCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payment_callbacks_total",
		Help:      "Payment completion callbacks by outcome",
	}, []string{"outcome"})

	DonationCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "donations_recorded_total",
		Help:      "Donation records committed",
	})

	NotificationCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Thank-you certificate notifications by result",
	}, []string{"result"})

	NotificationQueueGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notification_queue_length",
		Help:      "Notifications waiting for a worker",
	})

	prometheus.MustRegister(OrderCounter, CallbackCounter, DonationCounter, NotificationCounter, NotificationQueueGauge)
}
