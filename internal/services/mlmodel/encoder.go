package mlmodel

import (
	"fmt"
	"sort"

	"FinRisk/internal/domain/models"
)

// LabelEncoder is a bidirectional mapping between risk labels and the
// numeric codes the estimator is trained on. Codes are assigned by sorted
// label order, so the mapping is stable across training runs.
type LabelEncoder struct {
	Classes []models.RiskLabel `json:"classes"`
}

// FitLabelEncoder builds an encoder over the sorted unique labels.
func FitLabelEncoder(labels []models.RiskLabel) *LabelEncoder {
	seen := make(map[models.RiskLabel]struct{}, len(labels))
	classes := make([]models.RiskLabel, 0, 3)
	for _, l := range labels {
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		classes = append(classes, l)
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i] < classes[j] })
	return &LabelEncoder{Classes: classes}
}

// Transform returns the numeric code for a label.
func (e *LabelEncoder) Transform(label models.RiskLabel) (int, error) {
	for i, c := range e.Classes {
		if c == label {
			return i, nil
		}
	}
	return 0, fmt.Errorf("label %q not in encoder classes %v", label, e.Classes)
}

// Inverse decodes a numeric code back to its label. An out-of-range code
// means the estimator predicts values the encoder was never fitted on,
// which is a train/serve mismatch, not a user input problem.
func (e *LabelEncoder) Inverse(code int) (models.RiskLabel, error) {
	if code < 0 || code >= len(e.Classes) {
		return "", fmt.Errorf("code %d out of range for %d fitted classes", code, len(e.Classes))
	}
	return e.Classes[code], nil
}
