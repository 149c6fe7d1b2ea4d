package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	IntakeOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "academy_intake_outcomes_total",
			Help: "Intake turns by pathway and outcome",
		},
		[]string{"pathway", "outcome"},
	)

	IntakeVerdicts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "academy_intake_verdicts_total",
			Help: "Eligibility verdicts by pathway",
		},
		[]string{"pathway", "verdict"},
	)

	AdvisoryRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "academy_advisory_requests_total",
			Help: "Advisory model calls by provider and result",
		},
		[]string{"provider", "result"},
	)

	AdvisoryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "academy_advisory_duration_seconds",
			Help:    "Duration of advisory model calls in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32},
		},
		[]string{"provider"},
	)

	MemberLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "academy_member_lookups_total",
			Help: "Talent id lookups by result",
		},
		[]string{"result"},
	)

	ActiveConversations = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "academy_conversations_active",
			Help: "Conversations currently held by the in-memory store",
		},
	)
)

func RecordIntakeOutcome(pathway, outcome string) {
	IntakeOutcomes.WithLabelValues(pathway, outcome).Inc()
}

func RecordVerdict(pathway string, accepted bool) {
	verdict := "rejected"
	if accepted {
		verdict = "accepted"
	}
	IntakeVerdicts.WithLabelValues(pathway, verdict).Inc()
}

func RecordAdvisory(provider, result string, d time.Duration) {
	AdvisoryRequests.WithLabelValues(provider, result).Inc()
	AdvisoryDuration.WithLabelValues(provider).Observe(d.Seconds())
}

func RecordMemberLookup(result string) {
	MemberLookups.WithLabelValues(result).Inc()
}
