// Package types contains the view types returned by the query service to
// the HTTP API and the lookup CLI.
package types

import (
	"github.com/okian/cubestand/internal/domain/compare"
	"github.com/okian/cubestand/internal/domain/record"
	"github.com/okian/cubestand/internal/domain/standing"
)

// StandingView is a standing together with its display label.
type StandingView struct {
	standing.Standing
	Scope string `json:"scope,omitempty"`
	Label string `json:"label"`
}

// NewStandingView labels s. Unranked standings are labelled "unranked".
func NewStandingView(scope string, s standing.Standing) StandingView {
	label := "unranked"
	if s.Ranked {
		label = s.Label()
	}
	return StandingView{Standing: s, Scope: scope, Label: label}
}

// ResultView is one personal best with its formatted value and standings at
// world, continent and country level.
type ResultView struct {
	Best      int          `json:"best"`
	Formatted string       `json:"formatted"`
	World     StandingView `json:"world"`
	Continent StandingView `json:"continent"`
	Country   StandingView `json:"country"`
}

// At returns the standing view at level.
func (r ResultView) At(level record.Level) StandingView {
	switch level {
	case record.LevelWorld:
		return r.World
	case record.LevelContinent:
		return r.Continent
	default:
		return r.Country
	}
}

// EventView groups the single and average of one event.
type EventView struct {
	Code    string      `json:"code"`
	Name    string      `json:"name"`
	Single  *ResultView `json:"single,omitempty"`
	Average *ResultView `json:"average,omitempty"`
}

// CountryView is the display form of a competitor's country.
type CountryView struct {
	Name  string `json:"name"`
	ISO2  string `json:"iso2"`
	Flag  string `json:"flag,omitempty"`
	Known bool   `json:"known"`
}

// Profile is the full answer to a single-competitor query.
type Profile struct {
	QueryID   string      `json:"queryId,omitempty"`
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Country   CountryView `json:"country"`
	Continent string      `json:"continent"`
	AvatarURL string      `json:"avatarUrl,omitempty"`
	Events    []EventView `json:"events"`
}

// Comparison is the answer to a head-to-head query.
type Comparison struct {
	QueryID string        `json:"queryId,omitempty"`
	A       Profile       `json:"a"`
	B       Profile       `json:"b"`
	Fair    compare.Tally `json:"fair"`
	Unfair  compare.Tally `json:"unfair"`
}

// EventInfo describes one catalog event.
type EventInfo struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Order int    `json:"order"`
}
