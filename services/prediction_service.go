package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"aqi-prediction-api/models"

	"gorm.io/gorm"
)

// PredictionsChannel is the redis pub/sub channel carrying every
// freshly stored prediction.
const PredictionsChannel = "aqi:predictions"

// DashboardCacheKey holds the cached dashboard summary. Invalidated
// on every stored prediction so the dashboard count tracks writes
// exactly.
const DashboardCacheKey = "dashboard:summary"

// AQI category bands, closed upper bounds: a boundary value belongs to
// the lower band.
const (
	CategoryGood         = "Good"
	CategorySatisfactory = "Satisfactory"
	CategoryModerate     = "Moderate"
	CategoryPoor         = "Poor"
	CategoryVeryPoor     = "Very Poor"
	CategorySevere       = "Severe"
)

// CategoryForAQI maps a predicted AQI value to its health-risk band.
func CategoryForAQI(aqi float64) string {
	switch {
	case aqi <= 50:
		return CategoryGood
	case aqi <= 100:
		return CategorySatisfactory
	case aqi <= 200:
		return CategoryModerate
	case aqi <= 300:
		return CategoryPoor
	case aqi <= 400:
		return CategoryVeryPoor
	default:
		return CategorySevere
	}
}

type PredictionInput struct {
	State    string
	Location string
	AreaType string
	SO2      float64
	NO2      float64
	RSPM     float64
}

// ScoredPrediction is the outcome of the pure scoring stage: the
// normalized categorical labels, the assembled feature vector, and
// the classified model output.
type ScoredPrediction struct {
	State        string
	Location     string
	AreaType     string
	Features     []float64
	PredictedAQI float64
	Category     string
}

// PredictionService runs the request-to-prediction pipeline. The
// vocabularies and model are loaded once at startup and never mutated,
// so a single instance is shared across all concurrent requests.
type PredictionService struct {
	db        *gorm.DB
	cache     *CacheService
	model     *AQIModel
	states    *Vocabulary
	locations *Vocabulary
	areaTypes *Vocabulary
}

func NewPredictionService(db *gorm.DB, cache *CacheService, model *AQIModel, states, locations, areaTypes *Vocabulary) *PredictionService {
	return &PredictionService{
		db:        db,
		cache:     cache,
		model:     model,
		states:    states,
		locations: locations,
		areaTypes: areaTypes,
	}
}

func (s *PredictionService) States() *Vocabulary    { return s.states }
func (s *PredictionService) Locations() *Vocabulary { return s.locations }
func (s *PredictionService) AreaTypes() *Vocabulary { return s.areaTypes }

// Score normalizes and encodes the categorical inputs, assembles the
// feature vector, evaluates the model, and classifies the result. No
// side effects; deterministic for a fixed model and vocabularies.
func (s *PredictionService) Score(in PredictionInput) (ScoredPrediction, error) {
	// No alias table exists for states; they pass through as-is.
	state := in.State
	location := NormalizeLocation(in.Location)
	areaType := NormalizeAreaType(in.AreaType)

	stateCode, fellBack := s.states.SafeEncode(state)
	if fellBack {
		encoderFallbacks.WithLabelValues("state").Inc()
	}
	locationCode, fellBack := s.locations.SafeEncode(location)
	if fellBack {
		encoderFallbacks.WithLabelValues("location").Inc()
	}
	areaTypeCode, fellBack := s.areaTypes.SafeEncode(areaType)
	if fellBack {
		encoderFallbacks.WithLabelValues("area_type").Inc()
	}

	features := []float64{
		in.SO2,
		in.NO2,
		in.RSPM,
		float64(stateCode),
		float64(locationCode),
		float64(areaTypeCode),
	}

	aqi, err := s.model.Predict(features)
	if err != nil {
		return ScoredPrediction{}, fmt.Errorf("model predict: %w", err)
	}

	return ScoredPrediction{
		State:        state,
		Location:     location,
		AreaType:     areaType,
		Features:     features,
		PredictedAQI: aqi,
		Category:     CategoryForAQI(aqi),
	}, nil
}

// Predict scores the input and durably stores the resulting record.
// Exactly one row is written per successful call; the stored row keeps
// the normalized labels. The stored prediction is published to the
// live channel best effort.
func (s *PredictionService) Predict(ctx context.Context, in PredictionInput) (*models.Prediction, error) {
	start := time.Now()

	scored, err := s.Score(in)
	if err != nil {
		predictionsFailed.Inc()
		return nil, err
	}

	record := models.Prediction{
		State:        scored.State,
		Location:     scored.Location,
		AreaType:     scored.AreaType,
		SO2:          in.SO2,
		NO2:          in.NO2,
		RSPM:         in.RSPM,
		PredictedAQI: scored.PredictedAQI,
		Category:     scored.Category,
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		predictionsFailed.Inc()
		return nil, fmt.Errorf("store prediction: %w", err)
	}

	predictionsTotal.Inc()
	predictionDuration.Observe(time.Since(start).Seconds())

	if s.cache.Available() {
		if err := s.cache.Delete(ctx, DashboardCacheKey); err != nil {
			log.Printf("invalidate dashboard cache failed: %v", err)
		}
		if err := s.cache.Publish(ctx, PredictionsChannel, record); err != nil {
			log.Printf("publish prediction failed: %v", err)
		} else {
			predictionsPublished.Inc()
		}
	}

	return &record, nil
}
