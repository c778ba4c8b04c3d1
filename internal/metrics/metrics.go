package metrics

import (
	"sync"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Upstream call outcomes recorded by the gateway.
const (
	OutcomeOK       = "ok"
	OutcomeDegraded = "degraded"
)

var (
	upstreamCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "linkhub_upstream_calls_total",
			Help: "Gateway calls to backend capabilities by outcome",
		},
		[]string{"capability", "outcome"},
	)

	clicksTracked = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "linkhub_clicks_tracked_total",
		Help: "Clicks recorded by the analytics capability",
	})

	capabilityRejections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "linkhub_capability_rejections_total",
			Help: "Requests that reached an instance not serving the capability",
		},
		[]string{"capability"},
	)

	notifications = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "linkhub_notifications_total",
		Help: "Notifications received by the notifications capability",
	})
)

var registerOnce sync.Once

// Init registers the collectors with the default registry.
// Safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(upstreamCalls, clicksTracked, capabilityRejections, notifications)
	})
}

// Handler serves the default registry in the Prometheus text format.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}

// RecordUpstream counts one gateway call to a capability.
func RecordUpstream(capability, outcome string) {
	upstreamCalls.WithLabelValues(capability, outcome).Inc()
}

// RecordClick counts one tracked click.
func RecordClick() {
	clicksTracked.Inc()
}

// RecordRejection counts a request for a capability this instance does not serve.
func RecordRejection(capability string) {
	capabilityRejections.WithLabelValues(capability).Inc()
}

// RecordNotification counts one received notification.
func RecordNotification() {
	notifications.Inc()
}
