package models

import "time"

// PricePoint is a single daily close observation.
type PricePoint struct {
	Date  time.Time
	Close float64
}

// PriceSeries is a chronologically ascending sequence of daily closes,
// one point per trading day. A successfully fetched series is never empty;
// emptiness is surfaced by the price source as NoDataError.
type PriceSeries []PricePoint

// Closes returns the close prices in series order.
func (s PriceSeries) Closes() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Close
	}
	return out
}

// Last returns the most recent close. Callers must not pass an empty series.
func (s PriceSeries) Last() PricePoint {
	return s[len(s)-1]
}
