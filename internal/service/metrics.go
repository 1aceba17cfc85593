package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	pipelineRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fancynote",
		Name:      "pipeline_runs_total",
		Help:      "Enrichment pipeline runs by outcome.",
	}, []string{"outcome"})

	pipelineDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "fancynote",
		Name:      "pipeline_duration_seconds",
		Help:      "End to end enrichment pipeline duration.",
		Buckets:   prometheus.ExponentialBuckets(0.5, 2, 10),
	})

	transcriptionFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "fancynote",
		Name:      "transcription_failures_total",
		Help:      "Voice and audio-file transcriptions replaced by placeholders.",
	})

	modelFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "fancynote",
		Name:      "model_fallbacks_total",
		Help:      "Times the pipeline advanced past a failing model.",
	})
)
