package record

import "sort"

// Discipline distinguishes the two result kinds within one event.
type Discipline string

// Disciplines, in display order.
const (
	Single  Discipline = "single"
	Average Discipline = "average"
)

// Disciplines lists both disciplines in display order.
var Disciplines = []Discipline{Single, Average} //nolint:gochecknoglobals // immutable lookup

// Event describes one entry of the federation's event catalog.
type Event struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Order int    `json:"order"`
}

var catalog = []Event{ //nolint:gochecknoglobals // immutable lookup
	{Code: "333", Name: "3x3x3 Cube"},
	{Code: "222", Name: "2x2x2 Cube"},
	{Code: "444", Name: "4x4x4 Cube"},
	{Code: "555", Name: "5x5x5 Cube"},
	{Code: "666", Name: "6x6x6 Cube"},
	{Code: "777", Name: "7x7x7 Cube"},
	{Code: "333bf", Name: "3x3x3 Blindfolded"},
	{Code: "333fm", Name: "3x3x3 Fewest Moves"},
	{Code: "333oh", Name: "3x3x3 One-Handed"},
	{Code: "clock", Name: "Clock"},
	{Code: "minx", Name: "Megaminx"},
	{Code: "pyram", Name: "Pyraminx"},
	{Code: "skewb", Name: "Skewb"},
	{Code: "sq1", Name: "Square-1"},
	{Code: "444bf", Name: "4x4x4 Blindfolded"},
	{Code: "555bf", Name: "5x5x5 Blindfolded"},
	{Code: "333mbf", Name: "3x3x3 Multi-Blind"},
}

var eventIndex = func() map[string]int { //nolint:gochecknoglobals // immutable lookup
	idx := make(map[string]int, len(catalog))
	for i := range catalog {
		catalog[i].Order = i + 1
		idx[catalog[i].Code] = i
	}
	return idx
}()

// Catalog returns a copy of the event catalog in canonical order.
func Catalog() []Event {
	out := make([]Event, len(catalog))
	copy(out, catalog)
	return out
}

// LookupEvent returns the catalog entry for code.
func LookupEvent(code string) (Event, bool) {
	i, ok := eventIndex[code]
	if !ok {
		return Event{}, false
	}
	return catalog[i], true
}

// EventName returns the display name of code, or code itself when unknown.
func EventName(code string) string {
	if e, ok := LookupEvent(code); ok {
		return e.Name
	}
	return code
}

// SortEvents orders codes in place by catalog order. Codes outside the
// catalog go last in lexicographic order.
func SortEvents(codes []string) {
	sort.SliceStable(codes, func(i, j int) bool {
		oi, iok := eventIndex[codes[i]]
		oj, jok := eventIndex[codes[j]]
		switch {
		case iok && jok:
			return oi < oj
		case iok != jok:
			return iok
		default:
			return codes[i] < codes[j]
		}
	})
}
