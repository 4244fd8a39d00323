// Copyright (c) 2026 Mediatrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package achievement

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels.
const (
	outcomeSuccess = "success"
	outcomeFailure = "failure"
)

var (
	// CalculationsTotal counts achievement evaluations by code name and outcome.
	CalculationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "achievement_calculations_total",
			Help: "Total number of achievement evaluations",
		},
		[]string{"code_name", "outcome"},
	)

	// CalculationDuration tracks how long one achievement takes, all tiers included.
	CalculationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "achievement_calculation_duration_seconds",
			Help:    "Duration of one achievement evaluation in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 15, 60, 300},
		},
		[]string{"code_name"},
	)

	// ProgressRowsTotal counts progress rows written by upsert branch.
	ProgressRowsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "achievement_progress_rows_total",
			Help: "Total number of progress rows written",
		},
		[]string{"branch"},
	)

	// RarityRunsTotal counts rarity recomputations by outcome.
	RarityRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "achievement_rarity_runs_total",
			Help: "Total number of rarity recomputations",
		},
		[]string{"outcome"},
	)
)

// RecordCalculation records one achievement evaluation.
func RecordCalculation(codeName string, succeeded bool, duration time.Duration, applied ApplyResult) {
	outcome := outcomeSuccess
	if !succeeded {
		outcome = outcomeFailure
	}
	CalculationsTotal.WithLabelValues(codeName, outcome).Inc()
	CalculationDuration.WithLabelValues(codeName).Observe(duration.Seconds())

	// Rolled back rows were never written
	if succeeded {
		ProgressRowsTotal.WithLabelValues("update").Add(float64(applied.Updated))
		ProgressRowsTotal.WithLabelValues("insert").Add(float64(applied.Inserted))
	}
}

// RecordRarity records one rarity recomputation.
func RecordRarity(err error) {
	if err != nil {
		RarityRunsTotal.WithLabelValues(outcomeFailure).Inc()
		return
	}
	RarityRunsTotal.WithLabelValues(outcomeSuccess).Inc()
}
