// Package standing converts leaderboard ranks into percentile standings.
package standing

import (
	"fmt"
	"math"
)

const (
	full         = 100.0
	topTenth     = 99.9
	topOne       = 99.0
	labelRanked  = "ranked"
	labelTopTen  = "top 0.1%"
	labelTopOne  = "top 1%"
	labelPattern = "top %.1f%%"
)

// Standing is a competitor's position on one leaderboard. The zero value is
// the unranked placeholder; callers branch on Ranked rather than reading a
// zero percentile as the worst possible standing.
type Standing struct {
	Rank             int     `json:"rank"`
	TotalCompetitors int     `json:"totalCompetitors"`
	Percentile       float64 `json:"percentile"`
	PercentDownList  float64 `json:"percentDownList"`
	Ranked           bool    `json:"ranked"`
}

// Compute derives the standing of rank on a leaderboard of total competitors.
// Non-positive inputs yield the unranked placeholder.
func Compute(rank, total int) Standing {
	if rank <= 0 || total <= 0 {
		return Standing{}
	}
	r, n := float64(rank), float64(total)
	return Standing{
		Rank:             rank,
		TotalCompetitors: total,
		Percentile:       clamp((1-(r-1)/n)*full, 0, full),
		PercentDownList:  clamp(r/n*full, 0, full),
		Ranked:           true,
	}
}

// Label renders the display band of the standing.
func (s Standing) Label() string {
	switch {
	case s.Percentile >= topTenth:
		return labelTopTen
	case s.Percentile >= topOne:
		return labelTopOne
	case s.Percentile == 0:
		return labelRanked
	default:
		return fmt.Sprintf(labelPattern, full-s.Percentile)
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
