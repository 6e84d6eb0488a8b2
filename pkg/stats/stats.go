// Package stats provides small statistics helpers shared by the calibration code.
package stats

import (
	"math"

	"github.com/markcheno/go-talib"
	"gonum.org/v1/gonum/stat"
)

// Mean calculates the arithmetic mean of a slice of float64 values
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.Mean(data, nil)
}

// StdDev calculates the standard deviation of a slice of float64 values
func StdDev(data []float64) float64 {
	if len(data) < 2 {
		return 0
	}
	return stat.StdDev(data, nil)
}

// SMA returns the latest simple-moving-average value over the given period.
// Falls back to the plain mean when the series is shorter than the period.
func SMA(data []float64, period int) float64 {
	if len(data) < period || period < 2 {
		return Mean(data)
	}
	out := talib.Sma(data, period)
	return out[len(out)-1]
}

// Round1 rounds to 1 decimal place
func Round1(f float64) float64 {
	return math.Round(f*10) / 10
}
