package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SessionsCreated counts successful logins.
	SessionsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "socialapi_sessions_created_total",
		Help: "Total number of sessions issued by login",
	})

	// LoginFailures counts rejected credential checks.
	LoginFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "socialapi_login_failures_total",
		Help: "Total number of failed login attempts",
	})

	// LikeOperations counts like ledger calls by operation and outcome.
	LikeOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "socialapi_like_operations_total",
		Help: "Total like/unlike operations by outcome",
	}, []string{"operation", "outcome"})

	// ErrorResponses counts error responses by error code.
	ErrorResponses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "socialapi_error_responses_total",
		Help: "Total error responses by error code",
	}, []string{"code"})
)
