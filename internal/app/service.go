// Package service answers profile and comparison queries by retrieving
// competitor data from the federation and running it through the
// normalization, standing and comparison engines.
package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"runtime"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/okian/cubestand/internal/adapters/federation"
	"github.com/okian/cubestand/internal/domain/compare"
	"github.com/okian/cubestand/internal/domain/record"
	"github.com/okian/cubestand/internal/domain/types"
	"github.com/okian/cubestand/pkg/logger"
	"github.com/okian/cubestand/pkg/metrics"
)

const (
	modeProfile = "profile"
	modeCompare = "compare"
)

var competitorIDPattern = regexp.MustCompile(`^[0-9]{4}[A-Z]{4}[0-9]{2}$`)

// Fetcher retrieves raw federation data. *federation.Client implements it.
type Fetcher interface {
	Competitor(ctx context.Context, id string) (record.RawCompetitor, error)
	Avatar(ctx context.Context, id string) (*record.RawAvatar, error)
	LeaderboardTotal(ctx context.Context, key record.LeaderboardKey) (int, error)
}

var _ Fetcher = (*federation.Client)(nil)

// Service implements the queries served by the HTTP API and the CLI.
type Service struct {
	fetcher     Fetcher
	concurrency int
	logger      logger.Logger
	startedAt   time.Time

	profiles    atomic.Int64
	comparisons atomic.Int64
	failures    atomic.Int64
	unranked    atomic.Int64
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithFetchConcurrency bounds the leaderboard lookups in flight per query.
func WithFetchConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service reading from fetcher.
func New(fetcher Fetcher, opts ...Option) *Service {
	s := &Service{
		fetcher:     fetcher,
		concurrency: runtime.NumCPU() * 4,
		startedAt:   time.Now(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	return s
}

// Profile returns the records and standings of competitor id.
func (s *Service) Profile(ctx context.Context, id string) (types.Profile, error) {
	queryID := uuid.NewString()
	done := s.begin(ctx, modeProfile, queryID)

	profile, err := s.profile(ctx, newTotals(s.fetcher, s.concurrency), queryID, id)
	done(err)
	if err != nil {
		return types.Profile{}, err
	}

	s.profiles.Add(1)
	profile.QueryID = queryID
	return profile, nil
}

// Compare returns both competitors' profiles and the head-to-head tallies.
func (s *Service) Compare(ctx context.Context, idA, idB string) (types.Comparison, error) {
	queryID := uuid.NewString()
	done := s.begin(ctx, modeCompare, queryID)

	memo := newTotals(s.fetcher, s.concurrency)

	var (
		a, b       types.Profile
		recA, recB record.CompetitorRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		recA, a, err = s.profileRecord(gctx, memo, queryID, idA)
		return err
	})
	g.Go(func() error {
		var err error
		recB, b, err = s.profileRecord(gctx, memo, queryID, idB)
		return err
	})
	err := g.Wait()
	done(err)
	if err != nil {
		return types.Comparison{}, err
	}

	result := compare.Points(recA, recB)
	metrics.RecordComparison()
	s.comparisons.Add(1)

	return types.Comparison{
		QueryID: queryID,
		A:       a,
		B:       b,
		Fair:    result.Fair,
		Unfair:  result.Unfair,
	}, nil
}

// Events returns the event catalog in canonical order.
func (s *Service) Events() []types.EventInfo {
	catalog := record.Catalog()
	out := make([]types.EventInfo, len(catalog))
	for i, e := range catalog {
		out[i] = types.EventInfo{Code: e.Code, Name: e.Name, Order: e.Order}
	}
	return out
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	return map[string]interface{}{
		"uptimeSeconds":     int64(time.Since(s.startedAt).Seconds()),
		"fetchConcurrency":  s.concurrency,
		"profiles":          s.profiles.Load(),
		"comparisons":       s.comparisons.Load(),
		"failures":          s.failures.Load(),
		"unrankedStandings": s.unranked.Load(),
	}
}

// begin logs and counts a query and returns the function that finishes it.
func (s *Service) begin(ctx context.Context, mode, queryID string) func(error) {
	start := time.Now()
	metrics.QueryStarted()
	s.logger.Debug(ctx, "query started", logger.String("mode", mode), logger.String("query_id", queryID))

	return func(err error) {
		metrics.QueryFinished()
		outcome := Outcome(err)
		metrics.ObserveQuery(mode, outcome, float64(time.Since(start).Milliseconds()))
		if err != nil {
			s.failures.Add(1)
			s.logger.Info(ctx, "query failed",
				logger.String("mode", mode),
				logger.String("query_id", queryID),
				logger.String("outcome", outcome),
				logger.Error(err),
			)
			return
		}
		s.logger.Debug(ctx, "query finished",
			logger.String("mode", mode),
			logger.String("query_id", queryID),
			logger.Duration("elapsed", time.Since(start)),
		)
	}
}

func (s *Service) profile(ctx context.Context, memo *totals, queryID, id string) (types.Profile, error) {
	_, p, err := s.profileRecord(ctx, memo, queryID, id)
	return p, err
}

func (s *Service) profileRecord(ctx context.Context, memo *totals, queryID, id string) (record.CompetitorRecord, types.Profile, error) {
	id, err := NormalizeID(id)
	if err != nil {
		return record.CompetitorRecord{}, types.Profile{}, err
	}

	rec, err := s.retrieve(ctx, queryID, id)
	if err != nil {
		return record.CompetitorRecord{}, types.Profile{}, err
	}

	profile, err := s.build(ctx, memo, queryID, rec)
	if err != nil {
		return record.CompetitorRecord{}, types.Profile{}, err
	}
	return rec, profile, nil
}

// retrieve fetches the competitor payload and avatar concurrently and
// normalizes them. A failed avatar lookup degrades to no avatar.
func (s *Service) retrieve(ctx context.Context, queryID, id string) (record.CompetitorRecord, error) {
	var (
		raw    record.RawCompetitor
		avatar *record.RawAvatar
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		raw, err = s.fetcher.Competitor(gctx, id)
		if err != nil {
			return fmt.Errorf("fetching competitor %s: %w", id, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		avatar, err = s.fetcher.Avatar(gctx, id)
		if err != nil {
			avatar = nil
			if gctx.Err() == nil {
				s.logger.Warn(ctx, "avatar lookup failed",
					logger.String("query_id", queryID),
					logger.String("competitor", id),
					logger.Error(err),
				)
			}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return record.CompetitorRecord{}, err
	}

	rec, err := record.Normalize(raw, avatar)
	metrics.RecordNormalization(Outcome(err))
	if err != nil {
		return record.CompetitorRecord{}, fmt.Errorf("normalizing competitor %s: %w", id, err)
	}
	return rec, nil
}

// NormalizeID trims and upper-cases a competitor id and checks its shape.
func NormalizeID(id string) (string, error) {
	norm := strings.ToUpper(strings.TrimSpace(id))
	if !competitorIDPattern.MatchString(norm) {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return norm, nil
}

// Outcome maps a query error to its metrics label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, ErrInvalidID):
		return metrics.OutcomeInvalid
	case errors.Is(err, federation.ErrCompetitorNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, record.ErrNoRecordsFound):
		return metrics.OutcomeNoData
	default:
		return metrics.OutcomeError
	}
}
