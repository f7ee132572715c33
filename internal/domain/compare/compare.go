// Package compare scores two competitors against each other event by event.
package compare

import (
	"github.com/okian/cubestand/internal/domain/record"
)

// Tally is the outcome of one comparison policy.
type Tally struct {
	A      int      `json:"a"`
	B      int      `json:"b"`
	Events []string `json:"events"`
}

// Comparison holds both policies. Fair only considers events both
// competitors hold; Unfair spans every event either holds and rewards
// presence where the opponent has no result.
type Comparison struct {
	Fair   Tally `json:"fair"`
	Unfair Tally `json:"unfair"`
}

// Winner identifies the side that takes a point.
type Winner int

// Winners.
const (
	Tie Winner = iota
	SideA
	SideB
)

// Better compares two rank numbers where 0 means absent. The lower rank
// wins, a present rank beats an absent one, and equal or doubly absent
// ranks tie.
func Better(rankA, rankB int) Winner {
	switch {
	case rankA > 0 && rankB > 0:
		switch {
		case rankA < rankB:
			return SideA
		case rankB < rankA:
			return SideB
		default:
			return Tie
		}
	case rankA > 0:
		return SideA
	case rankB > 0:
		return SideB
	default:
		return Tie
	}
}

// Points computes both tallies for a and b. Neither input is modified.
func Points(a, b record.CompetitorRecord) Comparison {
	all := union(a, b)
	fair := Tally{Events: []string{}}
	unfair := Tally{Events: all}

	for _, code := range all {
		prA, inA := a.PersonalRecords[code]
		prB, inB := b.PersonalRecords[code]

		switch {
		case inA && inB:
			fair.Events = append(fair.Events, code)
			pa, pb := contest(prA, prB)
			fair.A += pa
			fair.B += pb
			unfair.A += pa
			unfair.B += pb
		case inA:
			unfair.A += presence(prA)
		case inB:
			unfair.B += presence(prB)
		}
	}

	return Comparison{Fair: fair, Unfair: unfair}
}

// contest awards one point per discipline both sides have a result in.
func contest(a, b record.PersonalRecord) (pointsA, pointsB int) {
	for _, d := range record.Disciplines {
		ra, rb := a.Get(d), b.Get(d)
		if ra == nil || rb == nil {
			continue
		}
		switch Better(ra.WorldRank, rb.WorldRank) {
		case SideA:
			pointsA++
		case SideB:
			pointsB++
		case Tie:
		}
	}
	return pointsA, pointsB
}

// presence awards one point per discipline held.
func presence(pr record.PersonalRecord) int {
	points := 0
	for _, d := range record.Disciplines {
		if pr.Get(d) != nil {
			points++
		}
	}
	return points
}

func union(a, b record.CompetitorRecord) []string {
	seen := make(map[string]struct{}, len(a.PersonalRecords)+len(b.PersonalRecords))
	codes := make([]string, 0, len(a.PersonalRecords)+len(b.PersonalRecords))
	for _, rec := range []record.CompetitorRecord{a, b} {
		for code := range rec.PersonalRecords {
			if _, ok := seen[code]; ok {
				continue
			}
			seen[code] = struct{}{}
			codes = append(codes, code)
		}
	}
	record.SortEvents(codes)
	return codes
}
