// Package metrics exposes desk activity as Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/supportdesk/supportdesk/internal/domain/shared/events"
	"github.com/supportdesk/supportdesk/internal/domain/ticket"
)

const namespace = "supportdesk"

// Recorder owns a private registry so tests and multiple servers in one
// process do not collide on the global one.
type Recorder struct {
	registry *prometheus.Registry

	ticketsCreated  *prometheus.CounterVec
	messagesSent    *prometheus.CounterVec
	statusChanges   *prometheus.CounterVec
	ticketsReplaced prometheus.Counter
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		ticketsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tickets_created_total",
			Help:      "Tickets opened, by priority.",
		}, []string{"priority"}),
		messagesSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_sent_total",
			Help:      "Conversation messages appended, by sender role.",
		}, []string{"role"}),
		statusChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ticket_status_changes_total",
			Help:      "Ticket status transitions.",
		}, []string{"from", "to"}),
		ticketsReplaced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tickets_replaced_total",
			Help:      "Full-record ticket replacements that matched a stored ticket.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.ticketsCreated,
		r.messagesSent,
		r.statusChanges,
		r.ticketsReplaced,
		r.httpRequests,
		r.httpDuration,
	)
	return r
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Registry exposes the underlying registry for tests.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveRequest records one finished HTTP request.
func (r *Recorder) ObserveRequest(route, method string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	r.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	r.httpDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// Handle counts ticket domain events. Unknown events are ignored.
func (r *Recorder) Handle(event events.DomainEvent) error {
	switch e := event.(type) {
	case ticket.TicketCreatedEvent:
		r.ticketsCreated.WithLabelValues(e.Priority).Inc()
	case ticket.MessageSentEvent:
		r.messagesSent.WithLabelValues(e.SenderRole).Inc()
	case ticket.TicketStatusChangedEvent:
		r.statusChanges.WithLabelValues(e.OldStatus, e.NewStatus).Inc()
	case ticket.TicketReplacedEvent:
		r.ticketsReplaced.Inc()
	}
	return nil
}

// Subscribe attaches the recorder to every ticket event.
func (r *Recorder) Subscribe(subscriber events.EventSubscriber) error {
	for _, eventType := range []string{
		ticket.EventTicketCreated,
		ticket.EventTicketMessageSent,
		ticket.EventTicketStatusChanged,
		ticket.EventTicketReplaced,
	} {
		if err := subscriber.Subscribe(eventType, r); err != nil {
			return err
		}
	}
	return nil
}
