package service

import (
	"alcyxob/coach-log/internal/domain"
	"sort"
)

// TrendPoint is the best single-set load for an exercise on one day.
type TrendPoint struct {
	Date string  `json:"date"`
	Load float64 `json:"load"`
}

// ComputeTrend groups the exercise's logs by date and keeps, per date, the
// maximum weight x reps. Points are ordered by date string, which is
// chronological for YYYY-MM-DD days.
func ComputeTrend(logs []domain.LogEntry, exerciseID string) []TrendPoint {
	best := make(map[string]float64)
	for _, l := range logs {
		if l.ExerciseID != exerciseID {
			continue
		}
		load := l.Load()
		if prev, ok := best[l.Date]; !ok || load > prev {
			best[l.Date] = load
		}
	}

	points := make([]TrendPoint, 0, len(best))
	for date, load := range best {
		points = append(points, TrendPoint{Date: date, Load: load})
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Date < points[j].Date
	})
	return points
}
