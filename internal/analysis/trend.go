package analysis

import (
	"math"
	"sort"
)

// Direction of the yearly average rating over time.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
	DirectionFlat Direction = "flat"
)

// Narrative keys attached to a TrendInsight.
const (
	TrendSummaryInsufficient = "trend.insufficient"
	TrendSummaryFlat         = "trend.flat"
	TrendSummaryUp           = "trend.up"
	TrendSummaryDown         = "trend.down"
)

// FlatSlopeThreshold is the absolute slope below which a trend counts as flat.
const FlatSlopeThreshold = 0.03

// TrendPoint is one year's average rating.
type TrendPoint struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// TrendInsight is a least-squares fit of yearly averages against year.
type TrendInsight struct {
	Direction Direction    `json:"direction"`
	Slope     float64      `json:"slope"`
	Points    []TrendPoint `json:"points"`
	Summary   string       `json:"summary"`
}

// BuildTrendInsight fits the yearly averages in ascending year order. Fewer
// than two points yield a flat trend with the insufficient-data summary.
func BuildTrendInsight(years []YearSummary) TrendInsight {
	points := make([]TrendPoint, 0, len(years))
	for _, y := range years {
		points = append(points, TrendPoint{Year: y.Year, Value: y.Average})
	}
	sort.SliceStable(points, func(i, j int) bool { return points[i].Year < points[j].Year })

	if len(points) < 2 {
		return TrendInsight{Direction: DirectionFlat, Points: points, Summary: TrendSummaryInsufficient}
	}

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = float64(p.Year)
		ys[i] = p.Value
	}
	slope := regressionSlope(xs, ys)

	tr := TrendInsight{Slope: slope, Points: points}
	switch {
	case math.Abs(slope) < FlatSlopeThreshold:
		tr.Direction, tr.Summary = DirectionFlat, TrendSummaryFlat
	case slope > 0:
		tr.Direction, tr.Summary = DirectionUp, TrendSummaryUp
	default:
		tr.Direction, tr.Summary = DirectionDown, TrendSummaryDown
	}
	return tr
}

// regressionSlope is the ordinary least squares slope of ys on xs, or 0 when
// all xs are equal.
func regressionSlope(xs, ys []float64) float64 {
	xAvg, yAvg := mean(xs), mean(ys)
	var num, den float64
	for i := range xs {
		dx := xs[i] - xAvg
		num += dx * (ys[i] - yAvg)
		den += dx * dx
	}
	if den == 0 {
		return 0
	}
	return num / den
}
