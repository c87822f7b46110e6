package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"nextride/internal/ledger"
	"nextride/internal/models"
)

const summaryCacheTTL = 5 * time.Minute

type SummaryStore interface {
	ApplyDelta(ctx context.Context, userID int, d ledger.Delta) error
	GetByUserID(ctx context.Context, userID int) (models.UserSummary, error)
	UpdateRentCount(ctx context.Context, userID, count int) error
	Recompute(ctx context.Context, userID int) (models.UserSummary, error)
}

type RentCounter interface {
	CountByOwner(ctx context.Context, ownerID int) (int, error)
}

// SummaryService maintains the per-owner dashboard counters. Counter writes
// are advisory: a failed delta never fails the listing write that produced
// it, it is logged and left for recompute to repair.
type SummaryService struct {
	SummaryRepo SummaryStore
	RentRepo    RentCounter
	Redis       *redis.Client
	Logger      *slog.Logger
}

func summaryCacheKey(userID int) string {
	return fmt.Sprintf("user_summary:%d", userID)
}

func (s *SummaryService) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// Apply folds a counter delta into the owner's summary. Failures are
// swallowed by contract: the listing row is the source of truth and has
// already been written when this runs.
func (s *SummaryService) Apply(ctx context.Context, userID int, d ledger.Delta) {
	if d.IsZero() {
		return
	}
	if err := s.SummaryRepo.ApplyDelta(ctx, userID, d); err != nil {
		s.logger().Warn("summary delta failed, counters may drift until recompute",
			"user_id", userID, "delta", fmt.Sprintf("%+v", d), "error", err)
		return
	}
	s.invalidate(ctx, userID)
}

func (s *SummaryService) invalidate(ctx context.Context, userID int) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(ctx, summaryCacheKey(userID)).Err(); err != nil {
		s.logger().Warn("summary cache invalidation failed", "user_id", userID, "error", err)
	}
}

// GetUserSummary returns the owner's counters. A missing row yields zeroed
// counters rather than an error; the rent counter is reconciled against the
// rent listings table on every uncached read.
func (s *SummaryService) GetUserSummary(ctx context.Context, userID int) (models.UserSummary, error) {
	if s.Redis != nil {
		cached, err := s.Redis.Get(ctx, summaryCacheKey(userID)).Bytes()
		if err == nil {
			var summary models.UserSummary
			if err := json.Unmarshal(cached, &summary); err == nil {
				return summary, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger().Warn("summary cache read failed", "user_id", userID, "error", err)
		}
	}

	summary, err := s.SummaryRepo.GetByUserID(ctx, userID)
	if errors.Is(err, models.ErrSummaryNotFound) {
		summary = models.UserSummary{UserID: userID}
		err = nil
	}
	if err != nil {
		return models.UserSummary{}, err
	}

	rentCount, err := s.RentRepo.CountByOwner(ctx, userID)
	if err != nil {
		s.logger().Warn("rent count reconciliation skipped", "user_id", userID, "error", err)
	} else if rentCount != summary.RentVehicleCount {
		s.logger().Warn("rent counter drift detected",
			"user_id", userID, "counter", summary.RentVehicleCount, "actual", rentCount)
		summary.RentVehicleCount = rentCount
		if err := s.SummaryRepo.UpdateRentCount(ctx, userID, rentCount); err != nil {
			s.logger().Warn("rent counter repair failed", "user_id", userID, "error", err)
		}
	}

	s.cache(ctx, summary)
	return summary, nil
}

func (s *SummaryService) cache(ctx context.Context, summary models.UserSummary) {
	if s.Redis == nil {
		return
	}
	payload, err := json.Marshal(summary)
	if err != nil {
		return
	}
	if err := s.Redis.Set(ctx, summaryCacheKey(summary.UserID), payload, summaryCacheTTL).Err(); err != nil {
		s.logger().Warn("summary cache write failed", "user_id", summary.UserID, "error", err)
	}
}

// Recompute rebuilds the counters from the listing tables and replaces the
// summary row. It is the repair path for drift left behind by swallowed
// delta failures.
func (s *SummaryService) Recompute(ctx context.Context, userID int) (models.UserSummary, error) {
	summary, err := s.SummaryRepo.Recompute(ctx, userID)
	if err != nil {
		return models.UserSummary{}, err
	}
	s.invalidate(ctx, userID)
	s.cache(ctx, summary)
	return summary, nil
}
