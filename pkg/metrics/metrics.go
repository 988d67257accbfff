// Package metrics - Prometheus-метрики сервиса: HTTP, БД и доменные события.
// Все методы безопасны для nil-получателя, чтобы метрики можно было отключить в конфиге.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор коллекторов сервиса
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueryDuration   *prometheus.HistogramVec
	dbOpenConnections *prometheus.GaugeVec
	dbInUse           *prometheus.GaugeVec
	dbIdle            *prometheus.GaugeVec
	dbWaitCount       *prometheus.GaugeVec

	appointmentsBooked   *prometheus.CounterVec
	bookingRejections    *prometheus.CounterVec
	statusTransitions    *prometheus.CounterVec
	costsCalculated      *prometheus.CounterVec
	holidayDecisions     *prometheus.CounterVec
	registryCacheLookups *prometheus.CounterVec
}

// New регистрирует метрики в глобальном реестре Prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegistry регистрирует метрики в переданном реестре (удобно для тестов)
func NewWithRegistry(reg prometheus.Registerer, serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Общее количество HTTP-запросов",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "Длительность HTTP-запросов в секундах",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		dbQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Длительность SQL-запросов в секундах",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		dbOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Количество открытых соединений с БД",
			ConstLabels: constLabels,
		}, []string{}),
		dbInUse: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Количество используемых соединений с БД",
			ConstLabels: constLabels,
		}, []string{}),
		dbIdle: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Количество простаивающих соединений с БД",
			ConstLabels: constLabels,
		}, []string{}),
		dbWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Количество ожиданий свободного соединения",
			ConstLabels: constLabels,
		}, []string{}),
		appointmentsBooked: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "salon_appointments_booked_total",
			Help:        "Количество созданных записей",
			ConstLabels: constLabels,
		}, []string{"segments"}),
		bookingRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "salon_booking_rejections_total",
			Help:        "Количество отклонённых попыток записи по типу ошибки",
			ConstLabels: constLabels,
		}, []string{"kind"}),
		statusTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "salon_appointment_status_transitions_total",
			Help:        "Количество смен статуса записи",
			ConstLabels: constLabels,
		}, []string{"from", "to"}),
		costsCalculated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "salon_costs_calculated_total",
			Help:        "Количество расчётов стоимости по методу расчёта",
			ConstLabels: constLabels,
		}, []string{"method"}),
		holidayDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "salon_holiday_decisions_total",
			Help:        "Количество решений по заявкам на отпуск",
			ConstLabels: constLabels,
		}, []string{"decision"}),
		registryCacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "salon_registry_cache_lookups_total",
			Help:        "Обращения к кэшу реестров (hit/miss)",
			ConstLabels: constLabels,
		}, []string{"registry", "result"}),
	}

	reg.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.dbQueryDuration,
		m.dbOpenConnections,
		m.dbInUse,
		m.dbIdle,
		m.dbWaitCount,
		m.appointmentsBooked,
		m.bookingRejections,
		m.statusTransitions,
		m.costsCalculated,
		m.holidayDecisions,
		m.registryCacheLookups,
	)

	return m
}

// ObserveHTTPRequest фиксирует HTTP-запрос
func (m *Metrics) ObserveHTTPRequest(method, route, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, route, status).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveDBQuery фиксирует длительность SQL-операции
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// SetDBPoolStats обновляет показатели пула соединений
func (m *Metrics) SetDBPoolStats(open, inUse, idle int, waitCount int64) {
	if m == nil {
		return
	}
	m.dbOpenConnections.WithLabelValues().Set(float64(open))
	m.dbInUse.WithLabelValues().Set(float64(inUse))
	m.dbIdle.WithLabelValues().Set(float64(idle))
	m.dbWaitCount.WithLabelValues().Set(float64(waitCount))
}

// AppointmentBooked фиксирует созданную запись
func (m *Metrics) AppointmentBooked(segments int) {
	if m == nil {
		return
	}
	label := "multi"
	if segments == 1 {
		label = "single"
	}
	m.appointmentsBooked.WithLabelValues(label).Inc()
}

// BookingRejected фиксирует отказ в записи (validation, policy, conflict, missing)
func (m *Metrics) BookingRejected(kind string) {
	if m == nil {
		return
	}
	m.bookingRejections.WithLabelValues(kind).Inc()
}

// StatusTransition фиксирует смену статуса записи
func (m *Metrics) StatusTransition(from, to string) {
	if m == nil {
		return
	}
	m.statusTransitions.WithLabelValues(from, to).Inc()
}

// CostCalculated фиксирует расчёт стоимости; method = hourly, commission или none
func (m *Metrics) CostCalculated(method string) {
	if m == nil {
		return
	}
	m.costsCalculated.WithLabelValues(method).Inc()
}

// HolidayDecision фиксирует решение по заявке на отпуск
func (m *Metrics) HolidayDecision(decision string) {
	if m == nil {
		return
	}
	m.holidayDecisions.WithLabelValues(decision).Inc()
}

// RegistryCacheLookup фиксирует попадание или промах кэша реестра
func (m *Metrics) RegistryCacheLookup(registry string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.registryCacheLookups.WithLabelValues(registry, result).Inc()
}
