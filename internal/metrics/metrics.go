package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymdesk_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gymdesk_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	InvoicesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymdesk_invoices_total",
			Help: "Total number of sales invoices recorded",
		},
		[]string{"branch", "payment"},
	)

	InvoiceNumberRetriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gymdesk_invoice_number_retries_total",
			Help: "Invoice writes retried after an invoice number collision",
		},
	)

	PurchasesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymdesk_purchases_total",
			Help: "Total number of stock purchases recorded",
		},
		[]string{"branch"},
	)

	InternalSalesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymdesk_internal_sales_total",
			Help: "Total number of internal sales recorded",
		},
		[]string{"branch", "price_type"},
	)

	StockRejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymdesk_stock_rejections_total",
			Help: "Sales rejected because branch stock would go negative",
		},
		[]string{"branch"},
	)

	SubscribersCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymdesk_subscribers_created_total",
			Help: "Total number of subscribers created",
		},
		[]string{"kind"},
	)

	SubscriptionRenewalsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymdesk_subscription_renewals_total",
			Help: "Total number of subscription renewals",
		},
		[]string{"kind"},
	)

	SessionsUsedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gymdesk_sessions_used_total",
			Help: "Total number of session credits consumed",
		},
	)

	StatusCorrectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymdesk_subscriber_status_corrections_total",
			Help: "Stored subscriber statuses rewritten on read, by new status",
		},
		[]string{"status"},
	)

	AlertsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymdesk_alerts_total",
			Help: "Alerts by kind and outcome",
		},
		[]string{"kind", "status"},
	)

	AlertQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gymdesk_alert_queue_length",
			Help: "Current length of the alert queue",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordInvoice(branch string, isCredit bool) {
	payment := "cash"
	if isCredit {
		payment = "credit"
	}
	InvoicesTotal.WithLabelValues(branch, payment).Inc()
}

func RecordInvoiceNumberRetry() {
	InvoiceNumberRetriesTotal.Inc()
}

func RecordPurchase(branch string) {
	PurchasesTotal.WithLabelValues(branch).Inc()
}

func RecordInternalSale(branch, priceType string) {
	InternalSalesTotal.WithLabelValues(branch, priceType).Inc()
}

func RecordStockRejection(branch string) {
	StockRejectionsTotal.WithLabelValues(branch).Inc()
}

func RecordSubscriber(kind string) {
	SubscribersCreatedTotal.WithLabelValues(kind).Inc()
}

func RecordRenewal(kind string) {
	SubscriptionRenewalsTotal.WithLabelValues(kind).Inc()
}

func RecordSessionUsed() {
	SessionsUsedTotal.Inc()
}

func RecordStatusCorrection(status string) {
	StatusCorrectionsTotal.WithLabelValues(status).Inc()
}

func RecordAlert(kind, status string) {
	AlertsTotal.WithLabelValues(kind, status).Inc()
}
