package mlmodel

import (
	"math"
	"path/filepath"
	"testing"

	"FinRisk/internal/domain/models"
)

func TestLabelEncoderRoundTrip(t *testing.T) {
	enc := FitLabelEncoder([]models.RiskLabel{models.RiskMedium, models.RiskHigh, models.RiskLow, models.RiskHigh})
	// sorted unique: HIGH, LOW, MEDIUM
	if len(enc.Classes) != 3 {
		t.Fatalf("expected 3 classes, got %v", enc.Classes)
	}
	for _, label := range enc.Classes {
		code, err := enc.Transform(label)
		if err != nil {
			t.Fatalf("transform %s: %v", label, err)
		}
		back, err := enc.Inverse(code)
		if err != nil {
			t.Fatalf("inverse %d: %v", code, err)
		}
		if back != label {
			t.Fatalf("round trip %s -> %d -> %s", label, code, back)
		}
	}
}

func TestLabelEncoderOutOfRange(t *testing.T) {
	enc := FitLabelEncoder([]models.RiskLabel{models.RiskLow, models.RiskHigh})
	if _, err := enc.Inverse(5); err == nil {
		t.Fatalf("expected error for out-of-range code")
	}
	if _, err := enc.Inverse(-1); err == nil {
		t.Fatalf("expected error for negative code")
	}
}

func TestForestLearnsThresholdRule(t *testing.T) {
	// target is 0 below 0.5 on the first feature, 2 above it
	var X [][]float64
	var y []float64
	for i := 0; i < 40; i++ {
		v := float64(i) / 40
		X = append(X, []float64{v, -v})
		if v < 0.5 {
			y = append(y, 0)
		} else {
			y = append(y, 2)
		}
	}
	f, err := FitForest(X, y, ForestConfig{Trees: 20, MaxDepth: 4, MinLeaf: 1, Seed: 7})
	if err != nil {
		t.Fatalf("fit: %v", err)
	}
	if got := f.Predict([]float64{0.1, -0.1}); math.Round(got) != 0 {
		t.Fatalf("expected ~0 for low input, got %v", got)
	}
	if got := f.Predict([]float64{0.9, -0.9}); math.Round(got) != 2 {
		t.Fatalf("expected ~2 for high input, got %v", got)
	}
}

func TestFitForestRejectsBadInput(t *testing.T) {
	if _, err := FitForest(nil, nil, DefaultForestConfig()); err == nil {
		t.Fatalf("expected error for empty training set")
	}
	if _, err := FitForest([][]float64{{1, 2}}, []float64{1, 2}, DefaultForestConfig()); err == nil {
		t.Fatalf("expected error for length mismatch")
	}
}

type fixedEstimator struct{ v float64 }

func (e fixedEstimator) Predict([]float64) float64 { return e.v }

func TestRiskModelPredictDecodes(t *testing.T) {
	enc := FitLabelEncoder([]models.RiskLabel{models.RiskLow, models.RiskMedium, models.RiskHigh})
	m := NewRiskModel(fixedEstimator{v: 1.2}, enc)
	label, err := m.Predict(models.RiskFeatures{Volatility: 0.01, MaxDrawdown: -0.1, MeanReturn: 0})
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if label != enc.Classes[1] {
		t.Fatalf("expected %s, got %s", enc.Classes[1], label)
	}
}

func TestRiskModelPredictOutOfRangeCode(t *testing.T) {
	enc := FitLabelEncoder([]models.RiskLabel{models.RiskLow, models.RiskHigh})
	m := NewRiskModel(fixedEstimator{v: 7}, enc)
	if _, err := m.Predict(models.RiskFeatures{}); err == nil {
		t.Fatalf("expected train/serve mismatch error")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	X := [][]float64{{0.005, -0.05, 0.001}, {0.02, -0.15, 0}, {0.05, -0.3, -0.002}, {0.004, -0.02, 0.002}}
	enc := FitLabelEncoder([]models.RiskLabel{models.RiskLow, models.RiskMedium, models.RiskHigh})
	y := make([]float64, len(X))
	labels := []models.RiskLabel{models.RiskLow, models.RiskMedium, models.RiskHigh, models.RiskLow}
	for i, l := range labels {
		code, err := enc.Transform(l)
		if err != nil {
			t.Fatalf("transform: %v", err)
		}
		y[i] = float64(code)
	}
	f, err := FitForest(X, y, ForestConfig{Trees: 10, MaxDepth: 4, MinLeaf: 1, Seed: 1})
	if err != nil {
		t.Fatalf("fit: %v", err)
	}

	path := filepath.Join(t.TempDir(), "model.json")
	if err := Save(path, f, enc); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	features := models.RiskFeatures{Volatility: 0.005, MaxDrawdown: -0.05, MeanReturn: 0.001}
	want, err := NewRiskModel(f, enc).Predict(features)
	if err != nil {
		t.Fatalf("predict original: %v", err)
	}
	got, err := loaded.Predict(features)
	if err != nil {
		t.Fatalf("predict loaded: %v", err)
	}
	if got != want {
		t.Fatalf("loaded model disagrees: %s vs %s", got, want)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
