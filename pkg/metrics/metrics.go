// Package metrics exposes Prometheus counters for tables and ledgers.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Table metrics
var (
	RoundsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRoundsTotal,
			Help: HelpTextRoundsTotal,
		},
		[]string{LabelGame, LabelOutcome},
	)

	ChipsWagered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameChipsWagered,
			Help: HelpTextChipsWagered,
		},
		[]string{LabelGame},
	)

	ChipsPaid = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameChipsPaid,
			Help: HelpTextChipsPaid,
		},
		[]string{LabelGame},
	)

	BetsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameBetsRejected,
			Help: HelpTextBetsRejected,
		},
		[]string{LabelGame, LabelReason},
	)
)

// Ledger metrics
var (
	AchievementsUnlocked = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameAchievementsUnlocked,
			Help: HelpTextAchievementsUnlocked,
		},
		[]string{LabelAchievement},
	)

	LevelUps = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameLevelUps,
			Help: HelpTextLevelUps,
		},
	)

	ChipsGranted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameChipsGranted,
			Help: HelpTextChipsGranted,
		},
		[]string{LabelSource},
	)

	PersistFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePersistFailures,
			Help: HelpTextPersistFailures,
		},
	)

	SessionsCached = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameSessionsActive,
			Help: HelpTextSessionsActive,
		},
	)
)
