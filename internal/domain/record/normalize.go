package record

import (
	"fmt"
	"strings"
)

// Normalize turns a raw competitor payload and an optional avatar lookup
// into a CompetitorRecord. It fails with ErrInvalidPayload when the payload
// has no name and with ErrNoRecordsFound when no usable event result remains.
func Normalize(raw RawCompetitor, avatar *RawAvatar) (CompetitorRecord, error) {
	name := strings.TrimSpace(raw.Name)
	if name == "" {
		return CompetitorRecord{}, fmt.Errorf("%w: missing name", ErrInvalidPayload)
	}

	records := make(map[string]PersonalRecord)
	mergeEntries(records, raw.Rank.Singles, Single)
	mergeEntries(records, raw.Rank.Averages, Average)
	if len(records) == 0 {
		return CompetitorRecord{}, fmt.Errorf("%w: %s", ErrNoRecordsFound, describe(raw.ID, name))
	}

	country, countryContinent := resolveCountry(raw)
	continent := ParseContinent(raw.Continent)
	if continent == ContinentUnknown {
		continent = countryContinent
	}

	rec := CompetitorRecord{
		CompetitorID:    strings.TrimSpace(raw.ID),
		Name:            name,
		Country:         country,
		Continent:       continent,
		PersonalRecords: records,
	}
	if avatar != nil {
		rec.AvatarURL = strings.TrimSpace(avatar.URL)
	}
	return rec, nil
}

// mergeEntries folds entries of one discipline into records. Entries for
// events outside the catalog or without a positive best are skipped; the
// first entry for an event wins.
func mergeEntries(records map[string]PersonalRecord, entries []RawRankEntry, d Discipline) {
	for _, e := range entries {
		code := strings.TrimSpace(e.EventID)
		if _, ok := LookupEvent(code); !ok || e.Best <= 0 {
			continue
		}
		res := &Result{
			Best:            e.Best,
			WorldRank:       deref(e.Rank.World),
			ContinentalRank: deref(e.Rank.Continent),
			NationalRank:    deref(e.Rank.Country),
		}

		pr := records[code]
		switch d {
		case Single:
			if pr.Single != nil {
				continue
			}
			pr.Single = res
		case Average:
			if pr.Average != nil {
				continue
			}
			pr.Average = res
		}
		records[code] = pr
	}
}

// resolveCountry prefers the country field, then countryIso2, then the
// unknown region.
func resolveCountry(raw RawCompetitor) (Country, Continent) {
	if field, ok := raw.countryField(); ok {
		for _, candidate := range []string{field.ISO2, field.ID, field.Name} {
			if candidate == "" {
				continue
			}
			iso, info, found := lookupCountry(candidate)
			if !found {
				continue
			}
			name := strings.TrimSpace(field.Name)
			if name == "" {
				name = info.name
			}
			continent := ParseContinent(field.Continent)
			if continent == ContinentUnknown {
				continent = ParseContinent(field.ContinentID)
			}
			if continent == ContinentUnknown {
				continent = info.continent
			}
			return Country{Name: name, ISO2: iso}, continent
		}
	}

	if raw.CountryISO2 != "" {
		if iso, info, found := lookupCountry(raw.CountryISO2); found {
			return Country{Name: info.name, ISO2: iso}, info.continent
		}
	}

	return UnknownCountry(), ContinentUnknown
}

func describe(id, name string) string {
	if id == "" {
		return name
	}
	return id
}
