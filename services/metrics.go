package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	predictionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "aqi_api_predictions_total",
		Help: "Total number of predictions scored and stored.",
	})
	predictionsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "aqi_api_predictions_failed_total",
		Help: "Total number of prediction requests that failed in the model or store.",
	})
	predictionsPublished = promauto.NewCounter(prometheus.CounterOpts{
		Name: "aqi_api_predictions_published_total",
		Help: "Total number of predictions published to the live channel.",
	})
	encoderFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aqi_api_encoder_fallbacks_total",
		Help: "Total number of categorical values encoded via the fallback policy.",
	}, []string{"field"})
	predictionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "aqi_api_prediction_duration_seconds",
		Help:    "Duration of a full predict-classify-store cycle.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
	})
)
