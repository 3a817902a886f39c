package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BookingsConfirmedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookings_confirmed_total",
		Help: "Total number of bookings confirmed",
	})

	BookingsReplayedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookings_replayed_total",
		Help: "Total number of booking confirmations answered with an existing booking",
	})

	BookingsCanceledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bookings_canceled_total",
		Help: "Total number of bookings canceled",
	})

	SeatsReservedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "seats_reserved_total",
		Help: "Total number of seats reserved",
	})

	SeatsReleasedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "seats_released_total",
		Help: "Total number of seats returned to inventory on cancellation",
	})

	SeatReservationsFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "seat_reservations_failed_total",
		Help: "Total number of failed seat reservations",
	}, []string{"reason"})

	CouponsPurchasedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "coupons_purchased_total",
		Help: "Total number of lottery coupons confirmed",
	})

	CouponsRedeemedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "coupons_redeemed_total",
		Help: "Total number of winning coupons redeemed against a booking",
	})

	WinnersAnnouncedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "winners_announced_total",
		Help: "Total number of coupons marked as winners",
	}, []string{"mode"})

	DiscountsAppliedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "discounts_applied_total",
		Help: "Total number of discount code applications",
	})

	DiscountsRejectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "discounts_rejected_total",
		Help: "Total number of rejected discount code applications",
	}, []string{"reason"})

	PaymentGatewayLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "payment_gateway_latency_seconds",
		Help:    "Latency of payment gateway calls",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "outcome"})

	NotificationsDispatchedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notifications_dispatched_total",
		Help: "Total number of notification jobs processed by the dispatcher",
	}, []string{"topic", "outcome"})

	OffersExpiredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "offers_expired_total",
		Help: "Total number of live offers ended by the expiry sweeper",
	})

	RateLimitedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rate_limited_requests_total",
		Help: "Total number of requests rejected by the rate limiter",
	}, []string{"route"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	PanicsRecoveredTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_panics_recovered_total",
		Help: "Total number of handler panics turned into 500 responses",
	}, []string{"path"})

	TxRetriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "db_tx_retries_total",
		Help: "Write transactions retried after a serialization failure, deadlock or lock timeout",
	}, []string{"code"})
)
