package service

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/okian/cubestand/internal/domain/record"
	"github.com/okian/cubestand/internal/domain/standing"
	"github.com/okian/cubestand/internal/domain/types"
	"github.com/okian/cubestand/pkg/logger"
	"github.com/okian/cubestand/pkg/metrics"
)

// Reasons a standing is reported unranked.
const (
	reasonNoRegion     = "no_region"
	reasonNoRank       = "no_rank"
	reasonLookupFailed = "lookup_failed"
)

// slot is one standing to fill: an event, a discipline and a level.
type slot struct {
	event      int
	discipline record.Discipline
	level      record.Level
	rank       int
	scope      string
}

// build assembles the profile view of rec, looking up every leaderboard
// size it needs through memo.
func (s *Service) build(ctx context.Context, memo *totals, queryID string, rec record.CompetitorRecord) (types.Profile, error) {
	codes := rec.Events()
	events := make([]types.EventView, len(codes))
	var slots []slot

	for i, code := range codes {
		pr := rec.PersonalRecords[code]
		events[i] = types.EventView{Code: code, Name: record.EventName(code)}
		for _, d := range record.Disciplines {
			res := pr.Get(d)
			if res == nil {
				continue
			}
			view := &types.ResultView{Best: res.Best, Formatted: record.FormatResult(code, d, res.Best)}
			if d == record.Single {
				events[i].Single = view
			} else {
				events[i].Average = view
			}
			for _, level := range record.Levels {
				scope, ok := rec.Scope(level)
				if !ok {
					scope = ""
				}
				slots = append(slots, slot{event: i, discipline: d, level: level, rank: res.RankAt(level), scope: scope})
			}
		}
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for _, sl := range slots {
		sl := sl
		g.Go(func() error {
			view := s.standing(gctx, memo, queryID, codes[sl.event], sl)
			mu.Lock()
			assign(&events[sl.event], sl, view)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return types.Profile{}, err
	}

	country := rec.Country
	return types.Profile{
		ID:   rec.CompetitorID,
		Name: rec.Name,
		Country: types.CountryView{
			Name:  country.Name,
			ISO2:  country.ISO2,
			Flag:  country.Flag(),
			Known: country.Known(),
		},
		Continent: string(rec.Continent),
		AvatarURL: rec.AvatarURL,
		Events:    events,
	}, nil
}

// standing computes one standing, degrading to unranked when no
// leaderboard applies or its size cannot be retrieved.
func (s *Service) standing(ctx context.Context, memo *totals, queryID, code string, sl slot) types.StandingView {
	switch {
	case sl.scope == "":
		s.recordUnranked(sl.level, reasonNoRegion)
		return types.NewStandingView("", standing.Standing{})
	case sl.rank <= 0:
		s.recordUnranked(sl.level, reasonNoRank)
		return types.NewStandingView(sl.scope, standing.Standing{})
	}

	key := record.LeaderboardKey{Scope: sl.scope, Discipline: sl.discipline, Event: code}
	total, err := memo.get(ctx, key)
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Warn(ctx, "leaderboard total unavailable, reporting unranked",
				logger.String("query_id", queryID),
				logger.String("scope", key.Scope),
				logger.String("discipline", string(key.Discipline)),
				logger.String("event", key.Event),
				logger.Error(err),
			)
		}
		s.recordUnranked(sl.level, reasonLookupFailed)
		return types.NewStandingView(sl.scope, standing.Standing{})
	}

	st := standing.Compute(sl.rank, total)
	if !st.Ranked {
		s.recordUnranked(sl.level, reasonNoRank)
	}
	s.logger.Debug(ctx, "standing computed",
		logger.String("query_id", queryID),
		logger.String("scope", key.Scope),
		logger.Int("rank", st.Rank),
		logger.Int("total", st.TotalCompetitors),
		logger.Float64("percentile", st.Percentile),
	)
	return types.NewStandingView(sl.scope, st)
}

func (s *Service) recordUnranked(level record.Level, reason string) {
	s.unranked.Add(1)
	metrics.RecordUnranked(string(level), reason)
}

func assign(ev *types.EventView, sl slot, view types.StandingView) {
	res := ev.Single
	if sl.discipline == record.Average {
		res = ev.Average
	}
	switch sl.level {
	case record.LevelWorld:
		res.World = view
	case record.LevelContinent:
		res.Continent = view
	case record.LevelCountry:
		res.Country = view
	}
}
