package timeseries

import (
	"math"
	"time"
)

// FlowRecord is a single daily streamflow observation. Flow is NaN when the
// source row carried no usable value.
type FlowRecord struct {
	Date time.Time
	Flow float64
}

// HasFlow reports whether the record carries a usable flow value.
func (r FlowRecord) HasFlow() bool {
	return !math.IsNaN(r.Flow)
}

// Flows extracts the flow values from a record slice, preserving order.
func Flows(records []FlowRecord) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = r.Flow
	}
	return out
}
