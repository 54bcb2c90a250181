package services

import (
	"time"

	"github.com/enricocostatorres-cloud/AnglerAtlasFishing/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Timeframe selects the scoring window for the leaderboard.
type Timeframe string

const (
	TimeframeAll   Timeframe = "all"
	TimeframeWeek  Timeframe = "week"
	TimeframeMonth Timeframe = "month"
)

// Per-catch scoring weights.
const (
	pointsPerCatch  = 100
	pointsPerLike   = 10
	pointsPerWeight = 5
)

// ParseTimeframe maps a query value to a Timeframe, defaulting to all-time.
func ParseTimeframe(s string) Timeframe {
	switch Timeframe(s) {
	case TimeframeWeek:
		return TimeframeWeek
	case TimeframeMonth:
		return TimeframeMonth
	default:
		return TimeframeAll
	}
}

// WindowStart returns the inclusive lower bound for catches counted in the
// timeframe, relative to now. Windows are rolling (now minus N days), not
// calendar-aligned. The zero time means no lower bound.
func (tf Timeframe) WindowStart(now time.Time) time.Time {
	switch tf {
	case TimeframeWeek:
		return now.AddDate(0, 0, -7)
	case TimeframeMonth:
		return now.AddDate(0, 0, -30)
	default:
		return time.Time{}
	}
}

// ComputePoints derives a score per catch owner from the given catch set:
// 100 per catch, 10 per like, 5 per pound of weight. Fractional weights
// yield fractional totals. Users with no catches in the set are absent from
// the result, not mapped to zero.
func ComputePoints(catches []models.Catch) map[primitive.ObjectID]float64 {
	points := make(map[primitive.ObjectID]float64, len(catches))
	for _, c := range catches {
		points[c.UserID] += pointsPerCatch
		points[c.UserID] += float64(len(c.Likes)) * pointsPerLike
		points[c.UserID] += c.Weight * pointsPerWeight
	}
	return points
}
