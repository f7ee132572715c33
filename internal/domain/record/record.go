// Package record normalizes raw federation payloads into competitor records.
//
// Everything in this package is a pure transform over immutable values: it
// performs no I/O and keeps no state beyond static lookup tables.
package record

// Result is one personal best with the ranks it holds. A rank of 0 means the
// federation reported no rank at that scope.
type Result struct {
	Best            int `json:"best"`
	WorldRank       int `json:"worldRank,omitempty"`
	ContinentalRank int `json:"continentalRank,omitempty"`
	NationalRank    int `json:"nationalRank,omitempty"`
}

// RankAt returns the rank held at level.
func (r Result) RankAt(level Level) int {
	switch level {
	case LevelWorld:
		return r.WorldRank
	case LevelContinent:
		return r.ContinentalRank
	case LevelCountry:
		return r.NationalRank
	default:
		return 0
	}
}

// PersonalRecord holds the single and average bests for one event. At least
// one of them is set.
type PersonalRecord struct {
	Single  *Result `json:"single,omitempty"`
	Average *Result `json:"average,omitempty"`
}

// Get returns the result for discipline d, or nil.
func (p PersonalRecord) Get(d Discipline) *Result {
	switch d {
	case Single:
		return p.Single
	case Average:
		return p.Average
	default:
		return nil
	}
}

// CompetitorRecord is the normalized view of one competitor.
type CompetitorRecord struct {
	CompetitorID    string                    `json:"competitorId"`
	Name            string                    `json:"name"`
	Country         Country                   `json:"country"`
	Continent       Continent                 `json:"continent"`
	AvatarURL       string                    `json:"avatarUrl,omitempty"`
	PersonalRecords map[string]PersonalRecord `json:"personalRecords"`
}

// Events returns the event codes the competitor has results in, in catalog order.
func (c CompetitorRecord) Events() []string {
	codes := make([]string, 0, len(c.PersonalRecords))
	for code := range c.PersonalRecords {
		codes = append(codes, code)
	}
	SortEvents(codes)
	return codes
}

// Level is the breadth of a leaderboard.
type Level string

// Leaderboard levels.
const (
	LevelWorld     Level = "world"
	LevelContinent Level = "continent"
	LevelCountry   Level = "country"
)

// Levels lists all levels from broadest to narrowest.
var Levels = []Level{LevelWorld, LevelContinent, LevelCountry} //nolint:gochecknoglobals // immutable lookup

// LeaderboardKey identifies one leaderboard whose size is looked up remotely.
type LeaderboardKey struct {
	Scope      string
	Discipline Discipline
	Event      string
}

// Scope returns the leaderboard scope code for the competitor at level.
// ok is false when no leaderboard exists for the competitor at that level,
// which is the case for the national level of an unknown region.
func (c CompetitorRecord) Scope(level Level) (scope string, ok bool) {
	switch level {
	case LevelWorld:
		return ScopeWorld, true
	case LevelContinent:
		return c.Continent.ScopeCode(), true
	case LevelCountry:
		if !c.Country.Known() {
			return "", false
		}
		return c.Country.ISO2, true
	default:
		return "", false
	}
}
