package models

import (
	"errors"
	"fmt"
)

// NoDataError is the single domain error produced by the price source: the
// provider returned nothing for the symbol/window combination. Everything
// downstream assumes a non-empty series.
type NoDataError struct {
	Symbol string
	Days   int
}

func (e *NoDataError) Error() string {
	if e.Days > 0 {
		return fmt.Sprintf("no price data found for symbol %s over %dd", e.Symbol, e.Days)
	}
	return fmt.Sprintf("no price data found for symbol %s", e.Symbol)
}

// IsNoData reports whether err is (or wraps) a NoDataError.
func IsNoData(err error) bool {
	var nde *NoDataError
	return errors.As(err, &nde)
}

// ErrModelNotLoaded is returned by the prediction path when no trained risk
// model was configured at startup.
var ErrModelNotLoaded = errors.New("risk model not loaded")
