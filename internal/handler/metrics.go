package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	submissionsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "payam_submissions_created_total",
		Help: "Contact submissions accepted via the public form.",
	})
	statusUpdates = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payam_submission_status_updates_total",
		Help: "Admin status transitions, labeled by resulting status.",
	}, []string{"status"})
	signInFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "payam_signin_failures_total",
		Help: "Rejected sign-in attempts.",
	})
)
