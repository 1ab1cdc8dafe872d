package transport

import "github.com/prometheus/client_golang/prometheus"

// metrics bundles the counters a server exposes via promhttp. A nil
// *metrics (the zero value for an unconfigured server) makes every method a
// no-op, so instrumentation stays optional.
type metrics struct {
	messagesDecoded      *prometheus.CounterVec
	messagesEncodeErrors *prometheus.CounterVec
	bytesRead            prometheus.Counter
}

// NewMetrics registers the transport's counters against reg and returns a
// value suitable for Server.UseMetrics. Pass prometheus.DefaultRegisterer for
// the global registry.
func NewMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		messagesDecoded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "binschema_messages_decoded_total",
			Help: "Messages successfully decoded, by message name.",
		}, []string{"message"}),
		messagesEncodeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "binschema_messages_encode_errors_total",
			Help: "Encode errors, by message name.",
		}, []string{"message"}),
		bytesRead: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "binschema_bytes_read_total",
			Help: "Raw bytes read off accepted connections.",
		}),
	}
	reg.MustRegister(m.messagesDecoded, m.messagesEncodeErrors, m.bytesRead)
	return m
}

func (m *metrics) decoded(name string) {
	if m == nil {
		return
	}
	m.messagesDecoded.WithLabelValues(name).Inc()
}

func (m *metrics) encodeError(name string) {
	if m == nil {
		return
	}
	m.messagesEncodeErrors.WithLabelValues(name).Inc()
}

func (m *metrics) read(n int) {
	if m == nil {
		return
	}
	m.bytesRead.Add(float64(n))
}
