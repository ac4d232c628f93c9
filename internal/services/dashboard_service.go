package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"navexa/internal/cache"
	"navexa/internal/core"
	"navexa/internal/log"
	"navexa/internal/store"
)

const (
	statsCacheSize = 8
	statsCacheTTL  = 30 * time.Second
)

// DashboardService aggregates the trip and vehicle snapshots into the
// dashboard stats and chart series. Results are cached briefly, keyed by
// calendar date so a cached value never leaks across midnight.
type DashboardService struct {
	store  store.Store
	logger *log.Logger
	now    func() time.Time

	statsCache  *cache.LRUCache[core.DashboardStats]
	seriesCache *cache.LRUCache[[]core.SeriesPoint]
}

func NewDashboardService(st store.Store, logger *log.Logger) *DashboardService {
	return &DashboardService{
		store:       st,
		logger:      logger.WithComponent(log.ComponentDashboard),
		now:         time.Now,
		statsCache:  cache.NewLRUCache[core.DashboardStats](statsCacheSize, statsCacheTTL),
		seriesCache: cache.NewLRUCache[[]core.SeriesPoint](statsCacheSize, statsCacheTTL),
	}
}

// Stats returns the dashboard summary, recomputing it from the full
// snapshot on cache miss.
func (s *DashboardService) Stats(ctx context.Context) (core.DashboardStats, error) {
	now := s.now()
	key := cacheKey("stats", now)

	if stats, ok := s.statsCache.Get(key); ok {
		return stats, nil
	}

	trips, vehicles, err := s.snapshot(ctx)
	if err != nil {
		return core.DashboardStats{}, err
	}

	stats := core.ComputeStats(trips, vehicles, now)
	s.statsCache.Set(key, stats)

	s.logger.DebugContext(ctx, "Dashboard stats recomputed",
		log.FieldOperation, log.OpStats,
		"trips", len(trips),
		"vehicles", len(vehicles))
	return stats, nil
}

// Series returns the trailing chart window, oldest day first.
func (s *DashboardService) Series(ctx context.Context) ([]core.SeriesPoint, error) {
	now := s.now()
	key := cacheKey("series", now)

	if series, ok := s.seriesCache.Get(key); ok {
		return series, nil
	}

	trips, err := s.store.ListTrips(ctx)
	if err != nil {
		return nil, fmt.Errorf("list trips: %w", err)
	}

	series := core.TrailingSeries(trips, now, core.TrailingWindowDays)
	s.seriesCache.Set(key, series)
	return series, nil
}

// Invalidate drops every cached aggregate. Trip and vehicle services
// call it after each mutation so the dashboard never serves a stale
// summary within the TTL.
func (s *DashboardService) Invalidate() {
	s.statsCache.Clear()
	s.seriesCache.Clear()
}

// Cleaners exposes the caches for the periodic cleanup manager.
func (s *DashboardService) Cleaners() []cache.Cleaner {
	return []cache.Cleaner{s.statsCache, s.seriesCache}
}

// snapshot loads trips and vehicles concurrently; both lists are needed
// for the stats roll-up.
func (s *DashboardService) snapshot(ctx context.Context) ([]core.Trip, []core.Vehicle, error) {
	var (
		trips    []core.Trip
		vehicles []core.Vehicle
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if trips, err = s.store.ListTrips(ctx); err != nil {
			return fmt.Errorf("list trips: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if vehicles, err = s.store.ListVehicles(ctx); err != nil {
			return fmt.Errorf("list vehicles: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return trips, vehicles, nil
}

func cacheKey(kind string, now time.Time) string {
	return kind + ":" + core.DateOf(now).String()
}
