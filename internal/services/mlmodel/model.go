package mlmodel

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"FinRisk/internal/domain/models"
)

// Estimator is a fitted regression estimator.
type Estimator interface {
	Predict(x []float64) float64
}

// RiskModel pairs a fitted estimator with the label encoder it was trained
// against. Immutable after construction; safe for concurrent reads.
type RiskModel struct {
	est Estimator
	enc *LabelEncoder
}

// NewRiskModel wraps a fitted estimator and encoder.
func NewRiskModel(est Estimator, enc *LabelEncoder) *RiskModel {
	return &RiskModel{est: est, enc: enc}
}

// Predict maps a feature record to a risk label. The feature vector is built
// in the fixed training order [volatility, max_drawdown, mean_return]; the
// estimator output is rounded to the nearest code and decoded. A code the
// encoder cannot decode indicates a train/serve mismatch and is returned as
// an error for the caller to treat as a configuration fault.
func (m *RiskModel) Predict(features models.RiskFeatures) (models.RiskLabel, error) {
	raw := m.est.Predict(features.Vector())
	code := int(math.Round(raw))
	label, err := m.enc.Inverse(code)
	if err != nil {
		return "", fmt.Errorf("decode prediction %v: %w", raw, err)
	}
	return label, nil
}

// modelFile is the on-disk JSON layout produced by the trainer.
type modelFile struct {
	Classes []models.RiskLabel `json:"classes"`
	Forest  *Forest            `json:"forest"`
}

// Save writes a fitted forest and encoder to path as JSON.
func Save(path string, forest *Forest, enc *LabelEncoder) error {
	b, err := json.MarshalIndent(modelFile{Classes: enc.Classes, Forest: forest}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal model: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write model: %w", err)
	}
	return nil
}

// Load reads a trained model from path.
func Load(path string) (*RiskModel, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}
	var mf modelFile
	if err := json.Unmarshal(b, &mf); err != nil {
		return nil, fmt.Errorf("parse model: %w", err)
	}
	if len(mf.Classes) == 0 || mf.Forest == nil || len(mf.Forest.Trees) == 0 {
		return nil, fmt.Errorf("model file %s is incomplete", path)
	}
	return NewRiskModel(mf.Forest, &LabelEncoder{Classes: mf.Classes}), nil
}
