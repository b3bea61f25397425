package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	ActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of in-flight HTTP requests",
		},
	)

	leadsSubmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "leads_submitted_total",
			Help: "Total number of leads persisted",
		},
	)

	chatbotReplies = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatbot_replies_total",
			Help: "Chatbot replies by source (preset, llm, fallback)",
		},
		[]string{"source"},
	)

	whatsappMessages = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "whatsapp_messages_total",
			Help: "Outbound WhatsApp messages by result",
		},
		[]string{"result"},
	)

	integrationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "integration_errors_total",
			Help: "Total number of integration errors",
		},
		[]string{"service"},
	)
)

func RecordLeadSubmitted() {
	leadsSubmitted.Inc()
}

func RecordChatbotReply(source string) {
	chatbotReplies.WithLabelValues(source).Inc()
}

func RecordWhatsAppMessage(delivered bool) {
	result := "failed"
	if delivered {
		result = "delivered"
	}
	whatsappMessages.WithLabelValues(result).Inc()
}

func RecordIntegrationError(service string) {
	integrationErrors.WithLabelValues(service).Inc()
}
