package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор метрик сервиса.
// Все методы безопасны для nil-получателя: если метрики выключены, вызовы ничего не делают
type Metrics struct {
	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// База данных
	DBQueryDuration    *prometheus.HistogramVec
	DBOpenConnections  *prometheus.GaugeVec
	DBInUseConnections *prometheus.GaugeVec
	DBIdleConnections  *prometheus.GaugeVec
	DBWaitCount        *prometheus.GaugeVec

	// Движок расписания
	BookingsCreated    *prometheus.CounterVec
	ConflictsRejected  *prometheus.CounterVec
	QueueNumbersIssued prometheus.Counter
	DailyResets        *prometheus.CounterVec
	AutoPromotions     prometheus.Counter
	ConfigGapFallbacks *prometheus.CounterVec

	serviceName string
}

// New создает метрики и регистрирует их в глобальном реестре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegistry создает метрики в указанном реестре (используется в тестах)
func NewWithRegistry(reg prometheus.Registerer, serviceName string) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "route", "status"}),

		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "route"}),

		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"service", "operation"}),

		DBOpenConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_open_connections",
			Help: "Number of established connections both in use and idle",
		}, []string{"service"}),

		DBInUseConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_in_use_connections",
			Help: "Number of connections currently in use",
		}, []string{"service"}),

		DBIdleConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_idle_connections",
			Help: "Number of idle connections",
		}, []string{"service"}),

		DBWaitCount: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_wait_count",
			Help: "Total number of connections waited for",
		}, []string{"service"}),

		BookingsCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "scheduler_bookings_written_total",
			Help: "Bookings written by flow (create, move, duplicate)",
		}, []string{"service", "flow"}),

		ConflictsRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "scheduler_conflicts_rejected_total",
			Help: "Writes rejected because the staff member was already booked",
		}, []string{"service", "flow"}),

		QueueNumbersIssued: factory.NewCounter(prometheus.CounterOpts{
			Name:        "scheduler_queue_numbers_issued_total",
			Help:        "Queue numbers issued at check-in",
			ConstLabels: prometheus.Labels{"service": serviceName},
		}),

		DailyResets: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "scheduler_daily_priority_resets_total",
			Help: "Daily priority reset attempts by result (applied, skipped)",
		}, []string{"service", "result"}),

		AutoPromotions: factory.NewCounter(prometheus.CounterOpts{
			Name:        "scheduler_auto_promotions_total",
			Help:        "Confirmed bookings promoted to in_progress by the shift board",
			ConstLabels: prometheus.Labels{"service": serviceName},
		}),

		ConfigGapFallbacks: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "scheduler_config_gap_fallbacks_total",
			Help: "Availability requests served with the hard-coded fallback window",
		}, []string{"service", "reason"}),

		serviceName: serviceName,
	}
}

// ServiceName возвращает имя сервиса, используемое в лейблах
func (m *Metrics) ServiceName() string {
	if m == nil {
		return ""
	}
	return m.serviceName
}

// BookingWritten учитывает успешную запись бронирования
func (m *Metrics) BookingWritten(flow string) {
	if m == nil {
		return
	}
	m.BookingsCreated.WithLabelValues(m.serviceName, flow).Inc()
}

// ConflictRejected учитывает отказ из-за пересечения с существующим бронированием
func (m *Metrics) ConflictRejected(flow string) {
	if m == nil {
		return
	}
	m.ConflictsRejected.WithLabelValues(m.serviceName, flow).Inc()
}

// QueueNumberIssued учитывает выданный номер очереди
func (m *Metrics) QueueNumberIssued() {
	if m == nil {
		return
	}
	m.QueueNumbersIssued.Inc()
}

// DailyReset учитывает попытку ежедневного сброса приоритетов
func (m *Metrics) DailyReset(applied bool) {
	if m == nil {
		return
	}
	result := "skipped"
	if applied {
		result = "applied"
	}
	m.DailyResets.WithLabelValues(m.serviceName, result).Inc()
}

// AutoPromoted учитывает автоматически начатые записи
func (m *Metrics) AutoPromoted(count int) {
	if m == nil || count <= 0 {
		return
	}
	m.AutoPromotions.Add(float64(count))
}

// ConfigGapFallback учитывает использование окна по умолчанию из-за отсутствия настроек
func (m *Metrics) ConfigGapFallback(reason string) {
	if m == nil {
		return
	}
	m.ConfigGapFallbacks.WithLabelValues(m.serviceName, reason).Inc()
}
