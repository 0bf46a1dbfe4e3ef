package services

import (
	"encoding/json"
	"fmt"
	"os"

	"gonum.org/v1/gonum/floats"
)

// FeatureCount is the width of the model's input vector:
// [so2, no2, rspm, stateCode, locationCode, areaTypeCode].
const FeatureCount = 6

// AQIModel evaluates the regression exported by the offline training
// step. Immutable after load, safe for concurrent readers.
type AQIModel struct {
	version   string
	intercept float64
	weights   []float64
}

func NewAQIModel(version string, intercept float64, weights []float64) (*AQIModel, error) {
	if len(weights) != FeatureCount {
		return nil, fmt.Errorf("model expects %d weights, got %d", FeatureCount, len(weights))
	}
	w := make([]float64, FeatureCount)
	copy(w, weights)
	return &AQIModel{version: version, intercept: intercept, weights: w}, nil
}

// LoadModel reads a JSON artifact of the form
// {"model_version": ..., "intercept": ..., "weights": [...]}.
func LoadModel(path string) (*AQIModel, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model %s: %w", path, err)
	}
	var artifact struct {
		ModelVersion string    `json:"model_version"`
		Intercept    float64   `json:"intercept"`
		Weights      []float64 `json:"weights"`
	}
	if err := json.Unmarshal(raw, &artifact); err != nil {
		return nil, fmt.Errorf("parse model %s: %w", path, err)
	}
	m, err := NewAQIModel(artifact.ModelVersion, artifact.Intercept, artifact.Weights)
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", path, err)
	}
	return m, nil
}

func (m *AQIModel) Version() string { return m.version }

// Predict evaluates the regression on a feature vector.
func (m *AQIModel) Predict(features []float64) (float64, error) {
	if len(features) != FeatureCount {
		return 0, fmt.Errorf("expected %d features, got %d", FeatureCount, len(features))
	}
	return floats.Dot(m.weights, features) + m.intercept, nil
}
