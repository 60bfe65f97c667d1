package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingRepo "caresched/database/repository/booking"
	providerRepo "caresched/database/repository/provider"
	"caresched/models"
	"caresched/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// MaxRangeDays caps a single availability query to bound worst-case slot
// count.
const MaxRangeDays = 90

// bookingFetchBuffer widens the confirmed-booking window on both sides to
// tolerate timezone-shifted boundaries.
const bookingFetchBuffer = 24 * time.Hour

// AvailabilityService computes bookable slots for a provider.
type AvailabilityService interface {
	// ComputeAvailability materializes the provider's schedule over
	// [from, to) and annotates each slot against confirmed bookings.
	ComputeAvailability(ctx context.Context, providerID string, from, to time.Time) ([]models.Slot, error)
}

// DefaultAvailabilityEngine is the production implementation. Slot generation
// is a pure computation over one snapshot of bookings; it mutates nothing and
// is safe to run concurrently across requests.
type DefaultAvailabilityEngine struct {
	Providers providerRepo.ProviderRepository
	Bookings  bookingRepo.BookingRepository
	Cache     *redis.Client
	Logger    *zap.Logger
	// Now overrides the clock; nil means time.Now.
	Now func() time.Time
}

func (e *DefaultAvailabilityEngine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// NoticeHorizonWindow derives the bookable window from the schedule config:
// earliest = now + minimum notice, latest = now + booking horizon. The same
// window gates both slot listing and booking creation.
func NoticeHorizonWindow(cfg models.ScheduleConfig, now time.Time) (earliest, latest time.Time) {
	earliest = now.Add(time.Duration(cfg.MinNoticeMinutes) * time.Minute)
	latest = now.AddDate(0, 0, cfg.MaxDaysAhead)
	return earliest, latest
}

func (e *DefaultAvailabilityEngine) ComputeAvailability(ctx context.Context, providerID string, from, to time.Time) ([]models.Slot, error) {
	if !to.After(from) {
		return nil, utils.NewValidationError("invalid range: end must be after start")
	}
	if to.Sub(from) > MaxRangeDays*24*time.Hour {
		return nil, utils.NewValidationError("requested range exceeds %d days", MaxRangeDays)
	}

	// The provider lookup precedes the cache read so a deleted provider can
	// never keep serving cached slots for the TTL.
	provider, err := e.Providers.GetByID(providerID)
	if err != nil {
		if errors.Is(err, providerRepo.ErrNotFound) {
			return nil, utils.NewNotFoundError("provider %s not found", providerID)
		}
		return nil, fmt.Errorf("failed to load provider %s: %w", providerID, err)
	}

	if cached, ok := e.cacheGet(ctx, providerID, from, to); ok {
		return cached, nil
	}

	cfg := provider.ScheduleConfig
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, utils.NewValidationError("provider has an invalid timezone %q", cfg.Timezone)
	}

	slots, err := materialize(cfg, from, to, loc)
	if err != nil {
		return nil, utils.NewValidationError("schedule configuration is malformed: %v", err)
	}

	now := e.now().In(loc)
	slots = applyNoticeHorizon(slots, now, cfg.MinNoticeMinutes, cfg.MaxDaysAhead)

	bookings, err := e.Bookings.FindConfirmedInRange(ctx, providerID, from.Add(-bookingFetchBuffer), to.Add(bookingFetchBuffer))
	if err != nil {
		return nil, fmt.Errorf("failed to load confirmed bookings: %w", err)
	}
	annotateBookings(slots, bookings)

	e.cacheSet(ctx, providerID, from, to, slots)

	if e.Logger != nil {
		e.Logger.Debug("computed availability",
			zap.String("providerID", providerID),
			zap.Time("from", from),
			zap.Time("to", to),
			zap.Int("slots", len(slots)))
	}
	return slots, nil
}
