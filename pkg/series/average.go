package series

import (
	"github.com/guregu/null/v5"
	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"
)

const averageWindow = 4

// AvgPrev4 is the mean close of the four sessions before the newest one.
// It needs at least five points.
func AvgPrev4(points []ClosePoint) null.Float {
	if len(points) < averageWindow+1 {
		return null.Float{}
	}
	return meanClose(points[1 : averageWindow+1])
}

// AvgNext4 is the mean close of the four newest sessions, the projection of
// tomorrow's AvgPrev4. It needs at least four points.
func AvgNext4(points []ClosePoint) null.Float {
	if len(points) < averageWindow {
		return null.Float{}
	}
	return meanClose(points[:averageWindow])
}

func meanClose(points []ClosePoint) null.Float {
	closes := make([]float64, len(points))
	for i, p := range points {
		closes[i] = p.Close
	}
	mean := stat.Mean(closes, nil)
	rounded, _ := decimal.NewFromFloat(mean).Round(2).Float64()
	return null.FloatFrom(rounded)
}
