package record

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// RawCompetitor is the loosely-shaped competitor payload served by the
// federation. Any field may be missing.
type RawCompetitor struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Country     json.RawMessage `json:"country,omitempty"`
	CountryISO2 string          `json:"countryIso2,omitempty"`
	Continent   string          `json:"continent,omitempty"`
	Rank        RawRanks        `json:"rank"`
}

// RawRanks carries the per-event rank entries of a competitor.
type RawRanks struct {
	Singles  []RawRankEntry `json:"singles"`
	Averages []RawRankEntry `json:"averages"`
}

// RawRankEntry is one personal best with its ranks.
type RawRankEntry struct {
	EventID string      `json:"eventId"`
	Best    int         `json:"best"`
	Rank    RawRankings `json:"rank"`
}

// RawRankings holds rank numbers that may be null or absent.
type RawRankings struct {
	World     *int `json:"world"`
	Continent *int `json:"continent"`
	Country   *int `json:"country"`
}

// RawAvatar is the result of an avatar lookup. A nil *RawAvatar means none.
type RawAvatar struct {
	URL string `json:"url"`
}

// rawCountry is the object form of the country field.
type rawCountry struct {
	ID          string `json:"id"`
	ISO2        string `json:"iso2"`
	Name        string `json:"name"`
	Continent   string `json:"continent"`
	ContinentID string `json:"continentId"`
}

// DecodeRaw parses a competitor payload.
func DecodeRaw(data []byte) (RawCompetitor, error) {
	var raw RawCompetitor
	if err := json.Unmarshal(data, &raw); err != nil {
		return RawCompetitor{}, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}
	return raw, nil
}

// countryField interprets the country field, which is either an ISO-2 or
// name string or an object.
func (r RawCompetitor) countryField() (rawCountry, bool) {
	data := bytes.TrimSpace(r.Country)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return rawCountry{}, false
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "" {
			return rawCountry{}, false
		}
		return rawCountry{ISO2: s}, true
	}

	var obj rawCountry
	if err := json.Unmarshal(data, &obj); err != nil {
		return rawCountry{}, false
	}
	if obj.ISO2 == "" && obj.ID == "" && obj.Name == "" {
		return rawCountry{}, false
	}
	return obj, true
}

func deref(p *int) int {
	if p == nil || *p < 0 {
		return 0
	}
	return *p
}
