package scoring

import (
	"time"

	k8smetrics "k8s.io/component-base/metrics"
	"k8s.io/component-base/metrics/legacyregistry"
	"k8s.io/utils/clock"
)

const (
	ScoringName        = "retirement_scoring"
	ScoringSubsystem   = "retirement"
	ScoringDurationKey = "scoring_duration_seconds"
)

var (
	scoringDuration = k8smetrics.NewHistogramVec(&k8smetrics.HistogramOpts{
		Subsystem:      ScoringSubsystem,
		Name:           ScoringDurationKey,
		StabilityLevel: k8smetrics.ALPHA,
		Help:           "How long in seconds one scoring pass over a cluster population takes.",
		Buckets:        k8smetrics.ExponentialBuckets(10e-7, 10, 10),
	}, []string{"name"})

	metrics = []k8smetrics.Registerable{
		scoringDuration,
	}
)

func init() {
	for _, m := range metrics {
		legacyregistry.MustRegister(m)
	}
}

// HistogramMetric counts individual observations.
type HistogramMetric interface {
	Observe(float64)
}

type scoreMetrics struct {
	clock clock.Clock

	scoring HistogramMetric
}

func newScoreMetrics(clock clock.Clock, name string) *scoreMetrics {
	return &scoreMetrics{
		clock:   clock,
		scoring: scoringDuration.WithLabelValues(name),
	}
}

func (m *scoreMetrics) start() time.Time {
	if m == nil {
		return time.Time{}
	}
	return m.clock.Now()
}

func (m *scoreMetrics) done(start time.Time) {
	if m == nil {
		return
	}
	m.scoring.Observe(m.clock.Since(start).Seconds())
}

var engineMetrics = newScoreMetrics(clock.RealClock{}, ScoringName)
